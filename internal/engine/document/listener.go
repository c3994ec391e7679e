package document

import (
	"fmt"
	"slices"

	"github.com/dshills/textkernel/internal/engine/buffer"
)

// Change describes a completed change of a document.
type Change struct {
	// Erased is the region that was erased, in positions before the change.
	Erased buffer.Region

	// Inserted is the region of the inserted text, in positions after the
	// change.
	Inserted buffer.Region
}

// IsEmpty returns true if the change neither erased nor inserted text.
func (c Change) IsEmpty() bool {
	return c.Erased.IsEmpty() && c.Inserted.IsEmpty()
}

// Listener is notified around every change of a document.
// Listeners are compared by identity, so register pointer types.
type Listener interface {
	// DocumentAboutToBeChanged is called before the document changes.
	DocumentAboutToBeChanged(d *Document)

	// DocumentChanged is called after the document changed. If the change
	// failed, c is empty.
	DocumentChanged(d *Document, c Change)
}

// RollbackListener is notified around undo and redo.
type RollbackListener interface {
	// UndoSequenceStarted is called before an undo or redo.
	UndoSequenceStarted(d *Document)

	// UndoSequenceStopped is called after an undo or redo with the
	// position after the last performed change.
	UndoSequenceStopped(d *Document, end buffer.Position)
}

// StateListener is notified about changes of document state that do not
// change the text.
type StateListener interface {
	AccessibleRegionChanged(d *Document)
	ModificationSignChanged(d *Document)
	ReadOnlySignChanged(d *Document)
}

// ListenerFuncs adapts functions to the Listener interface.
// Nil functions are skipped.
type ListenerFuncs struct {
	AboutToBeChanged func(d *Document)
	Changed          func(d *Document, c Change)
}

// DocumentAboutToBeChanged implements Listener.
func (f *ListenerFuncs) DocumentAboutToBeChanged(d *Document) {
	if f.AboutToBeChanged != nil {
		f.AboutToBeChanged(d)
	}
}

// DocumentChanged implements Listener.
func (f *ListenerFuncs) DocumentChanged(d *Document, c Change) {
	if f.Changed != nil {
		f.Changed(d, c)
	}
}

// listeners is an ordered set of listeners.
type listeners[L comparable] struct {
	items []L
}

func (ls *listeners[L]) add(l L) error {
	if slices.Contains(ls.items, l) {
		return fmt.Errorf("add %T: %w", l, ErrListenerRegistered)
	}
	ls.items = append(ls.items, l)
	return nil
}

func (ls *listeners[L]) remove(l L) error {
	i := slices.Index(ls.items, l)
	if i < 0 {
		return fmt.Errorf("remove %T: %w", l, ErrListenerNotRegistered)
	}
	ls.items = slices.Delete(ls.items, i, i+1)
	return nil
}

// notify calls fn for every listener registered when notify starts.
func (ls *listeners[L]) notify(fn func(L)) {
	for _, l := range slices.Clone(ls.items) {
		fn(l)
	}
}

// AddListener registers a listener.
func (d *Document) AddListener(l Listener) error {
	return d.listeners.add(l)
}

// RemoveListener unregisters a listener.
func (d *Document) RemoveListener(l Listener) error {
	return d.listeners.remove(l)
}

// AddPrenotifiedListener registers a listener that is notified before
// the ordinary listeners.
func (d *Document) AddPrenotifiedListener(l Listener) error {
	return d.prenotified.add(l)
}

// RemovePrenotifiedListener unregisters a prenotified listener.
func (d *Document) RemovePrenotifiedListener(l Listener) error {
	return d.prenotified.remove(l)
}

// AddRollbackListener registers a rollback listener.
func (d *Document) AddRollbackListener(l RollbackListener) error {
	return d.rollbackListeners.add(l)
}

// RemoveRollbackListener unregisters a rollback listener.
func (d *Document) RemoveRollbackListener(l RollbackListener) error {
	return d.rollbackListeners.remove(l)
}

// AddStateListener registers a state listener.
func (d *Document) AddStateListener(l StateListener) error {
	return d.stateListeners.add(l)
}

// RemoveStateListener unregisters a state listener.
func (d *Document) RemoveStateListener(l StateListener) error {
	return d.stateListeners.remove(l)
}

func (d *Document) fireAboutToBeChanged() {
	d.prenotified.notify(func(l Listener) { l.DocumentAboutToBeChanged(d) })
	d.listeners.notify(func(l Listener) { l.DocumentAboutToBeChanged(d) })
}

func (d *Document) fireChanged(c Change) {
	if !c.IsEmpty() {
		for _, p := range slices.Clone(d.points) {
			p.update(c)
		}
	}
	d.prenotified.notify(func(l Listener) { l.DocumentChanged(d, c) })
	d.listeners.notify(func(l Listener) { l.DocumentChanged(d, c) })
}

func (d *Document) fireModificationSignChanged() {
	d.stateListeners.notify(func(l StateListener) { l.ModificationSignChanged(d) })
}

func (d *Document) fireReadOnlySignChanged() {
	d.stateListeners.notify(func(l StateListener) { l.ReadOnlySignChanged(d) })
}

func (d *Document) fireAccessibleRegionChanged() {
	d.stateListeners.notify(func(l StateListener) { l.AccessibleRegionChanged(d) })
}
