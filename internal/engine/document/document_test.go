package document

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/dshills/textkernel/internal/engine/buffer"
)

func TestContent(t *testing.T) {
	d := newDoc(t, "ab\r\ncd\nef")

	if d.NumberOfLines() != 3 {
		t.Fatalf("NumberOfLines() = %d, want 3", d.NumberOfLines())
	}
	if d.Length() != 6 {
		t.Errorf("Length() = %d, want 6", d.Length())
	}
	if d.TextLength() != 9 {
		t.Errorf("TextLength() = %d, want 9", d.TextLength())
	}
	if nl, _ := d.LineNewline(0); nl != buffer.NewlineCRLF {
		t.Errorf("LineNewline(0) = %v, want CRLF", nl)
	}

	for i, want := range []int{0, 4, 7} {
		got, err := d.LineOffset(i)
		if err != nil || got != want {
			t.Errorf("LineOffset(%d) = %d, %v; want %d", i, got, err, want)
		}
	}
	if _, err := d.LineOffset(3); !errors.Is(err, buffer.ErrLineOutOfRange) {
		t.Errorf("LineOffset(3) error = %v", err)
	}
	if _, err := d.Line(-1); !errors.Is(err, buffer.ErrLineOutOfRange) {
		t.Errorf("Line(-1) error = %v", err)
	}

	got, err := d.TextIn(reg(0, 1, 2, 1))
	if err != nil || got != "b\r\ncd\ne" {
		t.Errorf("TextIn = %q, %v", got, err)
	}
	if _, err := d.TextIn(reg(0, 0, 0, 9)); !errors.Is(err, ErrBadRegion) {
		t.Errorf("TextIn error = %v, want ErrBadRegion", err)
	}
	if d.Region() != reg(0, 0, 2, 2) {
		t.Errorf("Region() = %s", d.Region())
	}
}

type stateRecorder struct {
	accessible, modification, readOnly int
}

func (r *stateRecorder) AccessibleRegionChanged(*Document) { r.accessible++ }
func (r *stateRecorder) ModificationSignChanged(*Document) { r.modification++ }
func (r *stateRecorder) ReadOnlySignChanged(*Document)     { r.readOnly++ }

func TestModificationState(t *testing.T) {
	d := newDoc(t, "abc")
	rec := &stateRecorder{}
	if err := d.AddStateListener(rec); err != nil {
		t.Fatal(err)
	}

	mustReplace(t, d, reg(0, 0, 0, 0), "x")
	if !d.IsModified() || rec.modification != 1 {
		t.Fatalf("after edit: modified %v, notified %d", d.IsModified(), rec.modification)
	}
	mustReplace(t, d, reg(0, 1, 0, 1), "y")
	if rec.modification != 1 {
		t.Errorf("second edit notified again: %d", rec.modification)
	}

	mustUndo(t, d, 1)
	if d.IsModified() || rec.modification != 2 {
		t.Errorf("after undo: modified %v, notified %d", d.IsModified(), rec.modification)
	}
	mustRedo(t, d, 1)
	if !d.IsModified() || rec.modification != 3 {
		t.Errorf("after redo: modified %v, notified %d", d.IsModified(), rec.modification)
	}

	d.MarkUnmodified()
	if d.IsModified() || rec.modification != 4 {
		t.Errorf("after MarkUnmodified: modified %v, notified %d", d.IsModified(), rec.modification)
	}
	d.SetModified()
	if !d.IsModified() || rec.modification != 5 {
		t.Errorf("after SetModified: modified %v, notified %d", d.IsModified(), rec.modification)
	}

	d.SetReadOnly(true)
	d.SetReadOnly(true)
	if rec.readOnly != 1 {
		t.Errorf("read-only notified %d times, want 1", rec.readOnly)
	}
}

func TestNarrowing(t *testing.T) {
	d := newDoc(t, "abc\ndef\nghi")
	rec := &stateRecorder{}
	d.AddStateListener(rec)

	if err := d.NarrowToRegion(reg(1, 3, 1, 0)); err != nil {
		t.Fatal(err)
	}
	if !d.IsNarrowed() || d.AccessibleRegion() != reg(1, 0, 1, 3) {
		t.Fatalf("AccessibleRegion() = %s", d.AccessibleRegion())
	}

	_, err := d.Replace(reg(0, 0, 0, 1), "")
	if !errors.Is(err, ErrAccessViolation) {
		t.Errorf("Replace outside error = %v, want ErrAccessViolation", err)
	}

	mustReplace(t, d, reg(1, 3, 1, 3), "XY")
	if d.AccessibleRegion() != reg(1, 0, 1, 5) {
		t.Errorf("after insert at end: %s", d.AccessibleRegion())
	}
	mustReplace(t, d, reg(1, 0, 1, 5), "z\nz")
	if d.AccessibleRegion() != reg(1, 0, 2, 1) {
		t.Errorf("after multiline replace: %s", d.AccessibleRegion())
	}

	d.Widen()
	d.Widen()
	if d.IsNarrowed() || d.AccessibleRegion() != d.Region() {
		t.Errorf("after widen: %s", d.AccessibleRegion())
	}
	if rec.accessible != 2 {
		t.Errorf("AccessibleRegionChanged called %d times, want 2", rec.accessible)
	}
	if d.Text() != "abc\nz\nz\nghi" {
		t.Errorf("Text() = %q", d.Text())
	}
}

func TestListenerOrder(t *testing.T) {
	d := newDoc(t, "abc")
	var calls []string
	var changes []Change
	record := func(name string) *ListenerFuncs {
		return &ListenerFuncs{
			AboutToBeChanged: func(*Document) { calls = append(calls, name+".before") },
			Changed: func(_ *Document, c Change) {
				calls = append(calls, name+".after")
				changes = append(changes, c)
			},
		}
	}
	ordinary, prenotified := record("ordinary"), record("prenotified")
	if err := d.AddListener(ordinary); err != nil {
		t.Fatal(err)
	}
	if err := d.AddPrenotifiedListener(prenotified); err != nil {
		t.Fatal(err)
	}
	if err := d.AddListener(ordinary); !errors.Is(err, ErrListenerRegistered) {
		t.Errorf("second AddListener error = %v", err)
	}

	mustReplace(t, d, reg(0, 1, 0, 2), "XY")
	want := []string{"prenotified.before", "ordinary.before", "prenotified.after", "ordinary.after"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	wantChange := Change{Erased: reg(0, 1, 0, 2), Inserted: reg(0, 1, 0, 3)}
	if changes[1] != wantChange {
		t.Errorf("change = %+v, want %+v", changes[1], wantChange)
	}

	if err := d.RemoveListener(ordinary); err != nil {
		t.Fatal(err)
	}
	if err := d.RemovePrenotifiedListener(prenotified); err != nil {
		t.Fatal(err)
	}
	if err := d.RemoveListener(ordinary); !errors.Is(err, ErrListenerNotRegistered) {
		t.Errorf("second RemoveListener error = %v", err)
	}
	calls = nil
	mustReplace(t, d, reg(0, 0, 0, 0), "q")
	if len(calls) != 0 {
		t.Errorf("removed listeners called: %v", calls)
	}
}

func TestResetContent(t *testing.T) {
	d := newDoc(t, "abc\ndef")
	mustReplace(t, d, reg(0, 0, 0, 0), "x")
	d.NarrowToRegion(reg(1, 0, 1, 3))

	var got Change
	d.AddListener(&ListenerFuncs{Changed: func(_ *Document, c Change) { got = c }})
	if err := d.ResetContent(); err != nil {
		t.Fatal(err)
	}

	if d.Text() != "" || d.NumberOfLines() != 1 || d.Length() != 0 {
		t.Errorf("after reset: %q", d.Text())
	}
	if d.Revision() != 0 || d.IsModified() || d.IsNarrowed() {
		t.Errorf("after reset: revision %d, modified %v, narrowed %v", d.Revision(), d.IsModified(), d.IsNarrowed())
	}
	if d.NumberOfUndoableChanges() != 0 {
		t.Errorf("NumberOfUndoableChanges() = %d, want 0", d.NumberOfUndoableChanges())
	}
	if got.Erased != reg(0, 0, 1, 3) {
		t.Errorf("erased = %s", got.Erased)
	}
}

func TestLineRevision(t *testing.T) {
	d := newDoc(t, "abc")
	mustReplace(t, d, reg(0, 3, 0, 3), "\ndef\nghi")
	for i, want := range []int{0, 1, 1} {
		got, err := d.LineRevision(i)
		if err != nil || got != want {
			t.Errorf("LineRevision(%d) = %d, %v; want %d", i, got, err, want)
		}
	}
}

func ExampleDocument_Replace() {
	d, _ := NewFromString("hello world")
	end, _ := d.Replace(buffer.NewRegion(buffer.Pos(0, 6), buffer.Pos(0, 11)), "there\nfriend")
	fmt.Println(d.Text())
	fmt.Println(end, d.Revision())
	// Output:
	// hello there
	// friend
	// (1:6) 1
}
