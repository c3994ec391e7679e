// Package document implements an editable text document.
//
// A Document stores its text as a sequence of lines and is changed through
// a single primitive, Replace, which substitutes text for a region. Every
// successful Replace increments the document's revision and is recorded
// for undo.
//
// # Editing
//
//	doc, _ := document.NewFromString("hello")
//	doc.Insert(buffer.Pos(0, 2), "X")       // "heXllo"
//	doc.Erase(buffer.NewRegion(buffer.Pos(0, 0), buffer.Pos(0, 2)))
//
// # Undo and Redo
//
// Consecutive contiguous edits merge into one undo step. Edits between
// BeginCompoundChange and EndCompoundChange form one step, and
// InsertUndoBoundary ends the current step:
//
//	doc.BeginCompoundChange()
//	doc.Replace(r1, "a")
//	doc.Replace(r2, "b")
//	doc.EndCompoundChange()
//
//	doc.Undo(1) // reverts both edits
//
// Undo decreases the revision by the number of edits the step stands for
// and Redo restores it.
//
// # Listeners
//
// Listeners are called synchronously around every change. A listener must
// not change the document; doing so fails with ErrIllegalState.
//
// # Narrowing
//
// NarrowToRegion restricts edits to a region. Edits and undo steps
// outside it fail with ErrAccessViolation or stop early.
//
// A Document is not safe for concurrent use.
package document
