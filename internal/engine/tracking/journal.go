package tracking

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dshills/textkernel/internal/engine/buffer"
	"github.com/dshills/textkernel/internal/engine/document"
)

// DefaultMaxEntries is the default maximum number of entries to keep.
const DefaultMaxEntries = 10000

// ErrMarkNotFound is returned for an unknown mark name.
var ErrMarkNotFound = errors.New("mark not found")

// Option configures a Journal.
type Option func(*Journal)

// WithMaxEntries sets the maximum number of entries to keep.
// Values below one are ignored.
func WithMaxEntries(n int) Option {
	return func(j *Journal) {
		if n > 0 {
			j.maxEntries = n
		}
	}
}

// Journal records document changes for revision-based queries.
// It keeps a bounded history in a ring buffer.
// All operations are thread-safe.
type Journal struct {
	mu sync.RWMutex

	// Recent entries in a ring buffer
	entries    []Entry
	head       int // Index of oldest entry
	count      int // Number of entries
	maxEntries int

	seq   Sequence
	marks map[string]Sequence

	// rollbackFrom is the first sequence recorded by a running undo or
	// redo, or zero.
	rollbackFrom Sequence
}

// NewJournal creates an empty journal.
func NewJournal(opts ...Option) *Journal {
	j := &Journal{
		maxEntries: DefaultMaxEntries,
		marks:      make(map[string]Sequence),
	}
	for _, opt := range opts {
		opt(j)
	}
	j.entries = make([]Entry, j.maxEntries)
	return j
}

// Attach registers the journal as a listener of d.
func (j *Journal) Attach(d *document.Document) error {
	if err := d.AddListener(j); err != nil {
		return fmt.Errorf("attach journal: %w", err)
	}
	if err := d.AddRollbackListener(j); err != nil {
		_ = d.RemoveListener(j)
		return fmt.Errorf("attach journal: %w", err)
	}
	return nil
}

// Detach unregisters the journal from d.
func (j *Journal) Detach(d *document.Document) error {
	return errors.Join(d.RemoveListener(j), d.RemoveRollbackListener(j))
}

// DocumentAboutToBeChanged implements document.Listener.
func (j *Journal) DocumentAboutToBeChanged(*document.Document) {}

// DocumentChanged implements document.Listener.
func (j *Journal) DocumentChanged(d *document.Document, c document.Change) {
	if c.IsEmpty() {
		return
	}
	text := ""
	if !c.Inserted.IsEmpty() {
		text, _ = d.TextIn(c.Inserted)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.seq++
	j.recordLocked(Entry{
		Seq:       j.seq,
		Revision:  d.Revision(),
		Erased:    c.Erased,
		Inserted:  c.Inserted,
		Text:      text,
		Rollback:  j.rollbackFrom != 0,
		Timestamp: time.Now(),
	})
}

// UndoSequenceStarted implements document.RollbackListener.
func (j *Journal) UndoSequenceStarted(*document.Document) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.rollbackFrom = j.seq + 1
}

// UndoSequenceStopped implements document.RollbackListener.
// The entries recorded during the undo or redo take the final revision.
func (j *Journal) UndoSequenceStopped(d *document.Document, _ buffer.Position) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rev := d.Revision()
	for i := 0; i < j.count; i++ {
		e := &j.entries[(j.head+i)%j.maxEntries]
		if e.Seq >= j.rollbackFrom {
			e.Revision = rev
		}
	}
	j.rollbackFrom = 0
}

// recordLocked adds an entry to the ring buffer (must hold lock).
func (j *Journal) recordLocked(e Entry) {
	idx := (j.head + j.count) % j.maxEntries
	if j.count < j.maxEntries {
		j.count++
	} else {
		// Ring buffer is full, advance head
		j.head = (j.head + 1) % j.maxEntries
	}
	j.entries[idx] = e
}

// Current returns the sequence number of the latest entry, or zero if
// nothing was recorded.
func (j *Journal) Current() Sequence {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.seq
}

// ChangesSince returns the kept entries recorded after seq, oldest first.
func (j *Journal) ChangesSince(seq Sequence) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.betweenLocked(seq, j.seq)
}

// ChangesBetween returns the kept entries after from up to and including
// to, oldest first.
func (j *Journal) ChangesBetween(from, to Sequence) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.betweenLocked(from, to)
}

func (j *Journal) betweenLocked(from, to Sequence) []Entry {
	var result []Entry
	for i := 0; i < j.count; i++ {
		e := j.entries[(j.head+i)%j.maxEntries]
		if e.Seq > from && e.Seq <= to {
			result = append(result, e)
		}
	}
	return result
}

// Latest returns the most recent n entries, oldest first.
func (j *Journal) Latest(n int) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n = min(max(n, 0), j.count)
	result := make([]Entry, n)
	for i := 0; i < n; i++ {
		result[i] = j.entries[(j.head+j.count-n+i)%j.maxEntries]
	}
	return result
}

// Count returns the number of kept entries.
func (j *Journal) Count() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.count
}

// Mark remembers the current sequence number under name, replacing an
// existing mark of the same name.
func (j *Journal) Mark(name string) Sequence {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.marks[name] = j.seq
	return j.seq
}

// ChangesSinceMark returns the kept entries recorded after the mark.
func (j *Journal) ChangesSinceMark(name string) ([]Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	seq, ok := j.marks[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrMarkNotFound)
	}
	return j.betweenLocked(seq, j.seq), nil
}

// DeleteMark removes a mark.
func (j *Journal) DeleteMark(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.marks, name)
}

// Marks returns the mark names in sorted order.
func (j *Journal) Marks() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	names := make([]string, 0, len(j.marks))
	for name := range j.marks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clear removes all entries and marks. Sequence numbers keep growing.
func (j *Journal) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	clear(j.entries)
	j.head = 0
	j.count = 0
	clear(j.marks)
}
