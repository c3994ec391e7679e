package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textkernel/internal/engine"
)

// docModule builds the doc table exposed to scripts.
func (r *Lua) docModule() *lua.LTable {
	return r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"text":           r.text,
		"line":           r.line,
		"line_count":     r.lineCount,
		"length":         r.length,
		"revision":       r.revision,
		"replace":        r.replace,
		"insert":         r.insert,
		"erase":          r.erase,
		"undo":           r.undo,
		"redo":           r.redo,
		"undoable":       r.undoable,
		"redoable":       r.redoable,
		"begin_compound": r.beginCompound,
		"end_compound":   r.endCompound,
		"boundary":       r.boundary,
		"narrow":         r.narrow,
		"widen":          r.widen,
		"set_read_only":  r.setReadOnly,
		"modified":       r.modified,
	})
}

// raise records err as the cause of the script failure and raises it.
func (r *Lua) raise(L *lua.LState, op string, err error) int {
	r.lastErr = err
	L.RaiseError("%s: %v", op, err)
	return 0
}

// checkPosition reads a line and offset pair starting at argument n.
func checkPosition(L *lua.LState, n int) engine.Position {
	return engine.Pos(L.CheckInt(n), L.CheckInt(n+1))
}

// checkRegion reads two positions starting at argument n.
func checkRegion(L *lua.LState, n int) engine.Region {
	return engine.Reg(checkPosition(L, n), checkPosition(L, n+2))
}

func pushPosition(L *lua.LState, p engine.Position) int {
	L.Push(lua.LNumber(p.Line))
	L.Push(lua.LNumber(p.Offset))
	return 2
}

// text() -> string
func (r *Lua) text(L *lua.LState) int {
	L.Push(lua.LString(r.eng.Text()))
	return 1
}

// line(i) -> string
func (r *Lua) line(L *lua.LState) int {
	text, err := r.eng.Line(L.CheckInt(1))
	if err != nil {
		return r.raise(L, "line", err)
	}
	L.Push(lua.LString(text))
	return 1
}

// line_count() -> number
func (r *Lua) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.eng.LineCount()))
	return 1
}

// length() -> number
// Characters excluding newlines.
func (r *Lua) length(L *lua.LState) int {
	L.Push(lua.LNumber(r.eng.Length()))
	return 1
}

// revision() -> number
func (r *Lua) revision(L *lua.LState) int {
	L.Push(lua.LNumber(r.eng.Revision()))
	return 1
}

// replace(l1, o1, l2, o2, text) -> line, offset
// Returns the end of the inserted text.
func (r *Lua) replace(L *lua.LState) int {
	region := checkRegion(L, 1)
	text := L.CheckString(5)

	end, err := r.eng.Replace(region, text)
	if err != nil {
		return r.raise(L, "replace", err)
	}
	return pushPosition(L, end)
}

// insert(line, offset, text) -> line, offset
func (r *Lua) insert(L *lua.LState) int {
	pos := checkPosition(L, 1)
	text := L.CheckString(3)

	end, err := r.eng.Insert(pos, text)
	if err != nil {
		return r.raise(L, "insert", err)
	}
	return pushPosition(L, end)
}

// erase(l1, o1, l2, o2)
func (r *Lua) erase(L *lua.LState) int {
	if err := r.eng.Erase(checkRegion(L, 1)); err != nil {
		return r.raise(L, "erase", err)
	}
	return 0
}

// undo([n]) -> completed
func (r *Lua) undo(L *lua.LState) int {
	ok, err := r.eng.Undo(L.OptInt(1, 1))
	if err != nil {
		return r.raise(L, "undo", err)
	}
	L.Push(lua.LBool(ok))
	return 1
}

// redo([n]) -> completed
func (r *Lua) redo(L *lua.LState) int {
	ok, err := r.eng.Redo(L.OptInt(1, 1))
	if err != nil {
		return r.raise(L, "redo", err)
	}
	L.Push(lua.LBool(ok))
	return 1
}

// undoable() -> number
func (r *Lua) undoable(L *lua.LState) int {
	L.Push(lua.LNumber(r.eng.NumberOfUndoableChanges()))
	return 1
}

// redoable() -> number
func (r *Lua) redoable(L *lua.LState) int {
	L.Push(lua.LNumber(r.eng.NumberOfRedoableChanges()))
	return 1
}

func (r *Lua) beginCompound(L *lua.LState) int {
	if err := r.eng.BeginCompoundChange(); err != nil {
		return r.raise(L, "begin_compound", err)
	}
	return 0
}

func (r *Lua) endCompound(*lua.LState) int {
	r.eng.EndCompoundChange()
	return 0
}

func (r *Lua) boundary(L *lua.LState) int {
	if err := r.eng.InsertUndoBoundary(); err != nil {
		return r.raise(L, "boundary", err)
	}
	return 0
}

// narrow(l1, o1, l2, o2)
func (r *Lua) narrow(L *lua.LState) int {
	if err := r.eng.NarrowToRegion(checkRegion(L, 1)); err != nil {
		return r.raise(L, "narrow", err)
	}
	return 0
}

func (r *Lua) widen(*lua.LState) int {
	r.eng.Widen()
	return 0
}

// set_read_only(flag)
func (r *Lua) setReadOnly(L *lua.LState) int {
	r.eng.SetReadOnly(L.CheckBool(1))
	return 0
}

// modified() -> bool
func (r *Lua) modified(L *lua.LState) int {
	L.Push(lua.LBool(r.eng.IsModified()))
	return 1
}
