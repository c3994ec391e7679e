// Package script drives an engine from edit scripts.
//
// Two script forms are supported. Lua scripts run in a sandboxed
// gopher-lua state with a global doc table:
//
//	doc.insert(0, 0, "hello\n")
//	local line, offset = doc.replace(0, 0, 0, 5, "goodbye")
//	doc.undo()
//
// JSON scripts are arrays of operations:
//
//	[{"op": "insert", "at": [0, 0], "text": "hello"},
//	 {"op": "undo", "n": 1}]
//
// Positions are zero-based line and offset pairs in both forms.
package script
