package document

import (
	"fmt"
	"slices"

	"github.com/dshills/textkernel/internal/engine/buffer"
	"github.com/dshills/textkernel/internal/engine/history"
)

// Undo reverts the last n undo steps. It returns false if a step could
// not be completely reverted because it lies outside the accessible
// region; the steps before it stay reverted.
//
// Requesting more steps than NumberOfUndoableChanges fails with
// ErrInvalidStepCount before anything changes.
func (d *Document) Undo(n int) (bool, error) {
	return d.rollback("undo", n, d.NumberOfUndoableChanges(), d.history.Undo)
}

// Redo re-applies the last n undone steps. It returns false if a step
// could not be completely re-applied.
//
// Requesting more steps than NumberOfRedoableChanges fails with
// ErrInvalidStepCount before anything changes.
func (d *Document) Redo(n int) (bool, error) {
	return d.rollback("redo", n, d.NumberOfRedoableChanges(), d.history.Redo)
}

func (d *Document) rollback(op string, n, available int, perform func(int) (history.Result, error)) (bool, error) {
	switch {
	case n < 0:
		return false, fmt.Errorf("%s %d: %w", op, n, ErrInvalidStepCount)
	case n == 0:
		return true, nil
	case d.changing:
		return false, fmt.Errorf("%s: %w", op, ErrIllegalState)
	case d.readOnly:
		return false, fmt.Errorf("%s: %w", op, ErrReadOnly)
	case n > available:
		return false, fmt.Errorf("%s %d of %d: %w", op, n, available, ErrInvalidStepCount)
	}

	modified := d.IsModified()
	before := d.revision
	d.rollbackListeners.notify(func(l RollbackListener) { l.UndoSequenceStarted(d) })

	d.rollbacking = true
	res, err := perform(n)
	d.rollbacking = false

	if op == "undo" {
		d.revision = before - res.Revisions
	} else {
		d.revision = before + res.Revisions
	}

	d.rollbackListeners.notify(func(l RollbackListener) { l.UndoSequenceStopped(d, res.End) })
	if modified != d.IsModified() {
		d.fireModificationSignChanged()
	}

	if err != nil {
		d.logger.Debug("%s failed after %d of %d steps: %v", op, res.Steps, n, err)
		return false, fmt.Errorf("%s: %w", op, err)
	}
	d.logger.Debug("%s %d steps, revision %d -> %d", op, res.Steps, before, d.revision)
	return res.Completed, nil
}

// NumberOfUndoableChanges returns the number of undo steps available.
func (d *Document) NumberOfUndoableChanges() int {
	return d.history.UndoCount()
}

// NumberOfRedoableChanges returns the number of redo steps available.
func (d *Document) NumberOfRedoableChanges() int {
	return d.history.RedoCount()
}

// UndoInfo describes the available undo steps, oldest first.
func (d *Document) UndoInfo() []history.Info {
	return d.history.UndoInfo()
}

// RedoInfo describes the available redo steps, oldest first.
func (d *Document) RedoInfo() []history.Info {
	return d.history.RedoInfo()
}

// BeginCompoundChange starts grouping edits into one undo step.
// Calls nest; the group ends with the outermost EndCompoundChange.
func (d *Document) BeginCompoundChange() error {
	if d.readOnly {
		return fmt.Errorf("begin compound change: %w", ErrReadOnly)
	}
	d.history.BeginCompound()
	return nil
}

// EndCompoundChange ends a group started by BeginCompoundChange.
// Calling it without an open group does nothing.
func (d *Document) EndCompoundChange() {
	d.history.EndCompound()
}

// IsCompoundChanging returns true if edits are being grouped.
func (d *Document) IsCompoundChanging() bool {
	return d.history.IsCompound()
}

// InsertUndoBoundary ends the current undo step so the next edit starts
// a new one. It has no effect while edits are being grouped.
func (d *Document) InsertUndoBoundary() error {
	if d.readOnly {
		return fmt.Errorf("insert undo boundary: %w", ErrReadOnly)
	}
	d.history.InsertBoundary()
	return nil
}

// Group runs fn with its edits grouped into one undo step.
func (d *Document) Group(fn func() error) error {
	if d.readOnly {
		return fmt.Errorf("group: %w", ErrReadOnly)
	}
	return d.history.Transaction(fn)
}

// ReplaceAll replaces several regions as one undo step.
// The regions are replaced from last to first so that earlier regions
// stay valid.
func (d *Document) ReplaceAll(edits map[buffer.Region]string) error {
	regions := make([]buffer.Region, 0, len(edits))
	for r := range edits {
		regions = append(regions, r)
	}
	sortRegionsDescending(regions)

	return d.Group(func() error {
		for _, r := range regions {
			if _, err := d.Replace(r, edits[r]); err != nil {
				return err
			}
		}
		return nil
	})
}

func sortRegionsDescending(regions []buffer.Region) {
	slices.SortFunc(regions, func(a, b buffer.Region) int {
		return b.Beginning().Compare(a.Beginning())
	})
}
