package history

import (
	"time"

	"github.com/dshills/textkernel/internal/logging"
)

// noCompound marks that no compound change is open on the undo stack.
const noCompound = -1

// Manager records changes and performs them for undo and redo.
type Manager struct {
	target Target

	undoStack []Change
	redoStack []Change

	// pending holds the latest atomic change while it can still merge
	// with the next one.
	pending *Atomic

	// Compound state. current indexes the open compound on the undo stack.
	depth   int
	current int

	// Rollback state.
	rollbacking     bool
	rollback        *Compound
	replayRevisions int

	maxEntries int
	logger     *logging.Logger
}

// NewManager creates a manager performing changes against target.
func NewManager(target Target, opts ...Option) *Manager {
	m := &Manager{
		target:     target,
		current:    noCompound,
		maxEntries: DefaultMaxEntries,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Record adds a change produced by an edit of the target.
//
// While an undo or redo step is running, the change is collected into the
// rollback compound instead and takes the revision count of the change
// being performed.
func (m *Manager) Record(a *Atomic) {
	if m.rollbacking {
		if m.replayRevisions > 0 {
			a.revisions = m.replayRevisions
		}
		if m.rollback == nil {
			m.rollback = &Compound{}
		}
		m.rollback.merge(a)
		return
	}

	if m.depth > 0 {
		if m.current == noCompound {
			m.commitPending()
			m.push(&Compound{})
			m.current = len(m.undoStack) - 1
		}
		m.undoStack[m.current].(*Compound).merge(a)
	} else if m.pending == nil || !m.pending.merge(a) {
		m.commitPending()
		m.pending = a
	}

	clear(m.redoStack)
	m.redoStack = m.redoStack[:0]
}

// BeginCompound opens a compound change. Calls nest.
func (m *Manager) BeginCompound() {
	if m.depth == 0 {
		m.InsertBoundary()
	}
	m.depth++
}

// EndCompound closes a compound change.
// Calling it without an open compound change does nothing, since undo
// and redo reset the nesting depth.
func (m *Manager) EndCompound() {
	if m.depth == 0 {
		return
	}
	m.depth--
	if m.depth == 0 {
		m.current = noCompound
	}
}

// IsCompound returns true if a compound change is open.
func (m *Manager) IsCompound() bool {
	return m.depth > 0
}

// InsertBoundary stops the pending change from merging with the next
// one. It has no effect inside a compound change.
func (m *Manager) InsertBoundary() {
	if m.depth == 0 {
		m.commitPending()
	}
}

// Undo performs up to n changes from the undo stack.
// It stops early when a change cannot be completely performed.
func (m *Manager) Undo(n int) (Result, error) {
	return m.rollbackN(n, &m.undoStack, &m.redoStack, "undo")
}

// Redo performs up to n changes from the redo stack.
// It stops early when a change cannot be completely performed.
func (m *Manager) Redo(n int) (Result, error) {
	return m.rollbackN(n, &m.redoStack, &m.undoStack, "redo")
}

// UndoCount returns the number of undo steps available. The pending
// change counts, but committing it drops the oldest entry once the stack
// is at its limit.
func (m *Manager) UndoCount() int {
	n := len(m.undoStack)
	if m.pending != nil {
		n++
	}
	if m.maxEntries > 0 && n > m.maxEntries {
		n = m.maxEntries
	}
	return n
}

// RedoCount returns the number of redo steps available.
func (m *Manager) RedoCount() int {
	return len(m.redoStack)
}

// Clear removes all undo and redo history.
func (m *Manager) Clear() {
	m.undoStack = nil
	m.redoStack = nil
	m.pending = nil
	m.depth = 0
	m.current = noCompound
}

// Info describes a stacked change.
type Info struct {
	Description string
	Revisions   int
	Timestamp   time.Time
}

// UndoInfo returns info about available undo steps, oldest first.
func (m *Manager) UndoInfo() []Info {
	result := infos(m.undoStack)
	if m.pending != nil {
		result = append(result, info(m.pending))
	}
	if m.maxEntries > 0 && len(result) > m.maxEntries {
		result = result[len(result)-m.maxEntries:]
	}
	return result
}

// RedoInfo returns info about available redo steps, oldest first.
func (m *Manager) RedoInfo() []Info {
	return infos(m.redoStack)
}

func infos(stack []Change) []Info {
	result := make([]Info, len(stack))
	for i, c := range stack {
		result[i] = info(c)
	}
	return result
}

func info(c Change) Info {
	var ts time.Time
	switch c := c.(type) {
	case *Atomic:
		ts = c.timestamp
	case *Compound:
		if len(c.changes) > 0 {
			ts = c.changes[len(c.changes)-1].timestamp
		}
	}
	return Info{Description: c.Description(), Revisions: c.Revisions(), Timestamp: ts}
}

// commitPending moves the pending change into the open compound, or onto
// the undo stack.
func (m *Manager) commitPending() {
	if m.pending == nil {
		return
	}
	if m.current != noCompound {
		m.undoStack[m.current].(*Compound).merge(m.pending)
	} else {
		m.push(m.pending)
	}
	m.pending = nil
}

// push adds c to the undo stack, dropping the oldest entries beyond the
// limit.
func (m *Manager) push(c Change) {
	m.undoStack = append(m.undoStack, c)
	if m.maxEntries <= 0 || len(m.undoStack) <= m.maxEntries {
		return
	}

	excess := len(m.undoStack) - m.maxEntries
	clear(m.undoStack[:excess])
	m.undoStack = m.undoStack[excess:]
	if m.current != noCompound {
		m.current -= excess
		if m.current < 0 {
			m.current = noCompound
		}
	}
	m.logger.Debug("dropped %d oldest undo entries", excess)
}

func (m *Manager) rollbackN(n int, from, to *[]Change, op string) (Result, error) {
	res := Result{Completed: true}
	for ; n > 0 && res.Completed; n-- {
		r, err := m.step(from, to)
		res.Completed = r.Completed
		res.Revisions += r.Revisions
		if r.Revisions > 0 {
			res.End = r.End
		}
		if r.Completed {
			res.Steps++
		}
		if err != nil {
			m.logger.Debug("%s stopped after %d steps: %v", op, res.Steps, err)
			return res, err
		}
	}
	m.logger.Debug("%s performed %d steps (%d revisions)", op, res.Steps, res.Revisions)
	return res, nil
}

// step performs the change on top of from. The changes recorded while
// performing it are moved onto to as one entry.
func (m *Manager) step(from, to *[]Change) (Result, error) {
	m.commitPending()
	if len(*from) == 0 {
		return Result{}, nil
	}

	m.rollbacking = true
	defer func() {
		if m.rollback != nil && m.rollback.Len() > 0 {
			var c Change = m.rollback
			if m.rollback.Len() == 1 {
				c = m.rollback.changes[0]
			}
			if to == &m.undoStack {
				m.push(c)
			} else {
				*to = append(*to, c)
			}
		}
		m.rollback = nil
		m.rollbacking = false
		m.replayRevisions = 0
		m.current = noCompound
		m.depth = 0
	}()

	top := (*from)[len(*from)-1]
	r, err := top.perform(m.target, m)
	if r.Completed {
		(*from)[len(*from)-1] = nil
		*from = (*from)[:len(*from)-1]
	}
	return r, err
}
