// Package engine provides the text storage engine of textkernel.
//
// The engine package is a thread-safe facade over one document. It
// combines the line storage, the replace primitive, undo and redo, and a
// journal of changes.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - gap: generic gap buffer used as the line sequence
//   - buffer: positions, regions, newlines and the line store
//   - history: undo manager with change merging and compound changes
//   - document: the document, its replace algorithm, points and listeners
//   - tracking: bounded journal of applied changes
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing edits.
//
// # Basic Usage
//
//	e, _ := engine.New(engine.WithContent("Hello, World!"))
//
//	// Replace "World" with "Go"
//	e.Replace(engine.Reg(engine.Pos(0, 7), engine.Pos(0, 12)), "Go")
//
//	e.Text() // "Hello, Go!"
//
//	// Revert the replacement
//	e.Undo(1)
//
// # Undo Groups
//
// Edits that should revert together can be grouped:
//
//	e.BeginCompoundChange()
//	e.Insert(engine.Pos(0, 0), "// ")
//	e.Insert(engine.Pos(1, 0), "// ")
//	e.EndCompoundChange()
//
//	e.Undo(1) // reverts both inserts
//
// # Change Journal
//
// Every applied change is journaled, including changes made by undo and
// redo:
//
//	seq := e.Checkpoint()
//	e.Insert(engine.Pos(0, 0), "x")
//	for _, c := range e.ChangesSince(seq) {
//		fmt.Println(c)
//	}
package engine
