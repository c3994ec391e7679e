package history

import (
	"fmt"
	"time"

	"github.com/dshills/textkernel/internal/engine/buffer"
)

// Kind identifies the kind of an atomic change.
type Kind uint8

const (
	Insertion   Kind = iota // insert text at a position
	Deletion                // erase a region
	Replacement             // replace a region with text
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Insertion:
		return "insertion"
	case Deletion:
		return "deletion"
	case Replacement:
		return "replacement"
	default:
		return "unknown"
	}
}

// Target is the document a change is performed against.
type Target interface {
	// ReplaceLines replaces the text in region with lines and returns the
	// end of the inserted text.
	ReplaceLines(region buffer.Region, lines []buffer.Segment) (buffer.Position, error)

	// IsNarrowed returns true if edits are restricted to AccessibleRegion.
	IsNarrowed() bool

	// AccessibleRegion returns the region edits are restricted to.
	AccessibleRegion() buffer.Region
}

// Result describes the outcome of performing changes.
type Result struct {
	// Completed is false if a change could not be performed, for example
	// because it lies outside the accessible region.
	Completed bool

	// Steps is the number of undo or redo steps that completed.
	Steps int

	// Revisions is the number of document revisions the performed
	// changes stand for.
	Revisions int

	// End is the position after the last performed change.
	End buffer.Position
}

// Change is a recorded edit. It is either an *Atomic or a *Compound.
type Change interface {
	// Revisions returns the number of document revisions the change
	// stands for.
	Revisions() int

	// Description returns a human-readable description.
	Description() string

	perform(t Target, m *Manager) (Result, error)
}

// Atomic is a single insertion, deletion or replacement.
type Atomic struct {
	kind      Kind
	region    buffer.Region
	lines     []buffer.Segment
	revisions int
	timestamp time.Time
}

// NewInsertion creates a change inserting text at pos.
func NewInsertion(pos buffer.Position, text string) *Atomic {
	return NewLinesInsertion(pos, buffer.SplitLines(text))
}

// NewLinesInsertion creates a change inserting lines at pos.
// Line breaks are kept as given: a CR line followed by an empty LF line
// stays two lines and is not read back as one CRLF.
func NewLinesInsertion(pos buffer.Position, lines []buffer.Segment) *Atomic {
	return newAtomic(Insertion, buffer.EmptyRegion(pos), lines)
}

// NewDeletion creates a change erasing region.
func NewDeletion(region buffer.Region) *Atomic {
	return newAtomic(Deletion, region.Normalized(), nil)
}

// NewReplacement creates a change replacing region with text.
func NewReplacement(region buffer.Region, text string) *Atomic {
	return NewLinesReplacement(region, buffer.SplitLines(text))
}

// NewLinesReplacement creates a change replacing region with lines.
func NewLinesReplacement(region buffer.Region, lines []buffer.Segment) *Atomic {
	return newAtomic(Replacement, region.Normalized(), lines)
}

func newAtomic(kind Kind, region buffer.Region, lines []buffer.Segment) *Atomic {
	if len(lines) == 0 {
		lines = []buffer.Segment{{}}
	}
	return &Atomic{
		kind:      kind,
		region:    region,
		lines:     lines,
		revisions: 1,
		timestamp: time.Now(),
	}
}

// Kind returns the kind of the change.
func (a *Atomic) Kind() Kind {
	return a.kind
}

// Region returns the region the change applies to.
// For an insertion it is the empty region at the insertion point.
func (a *Atomic) Region() buffer.Region {
	return a.region
}

// Position returns the beginning of the change's region.
func (a *Atomic) Position() buffer.Position {
	return a.region.First
}

// Text returns the text inserted by the change.
// It is empty for a deletion.
func (a *Atomic) Text() string {
	return buffer.JoinSegments(a.lines)
}

// Lines returns the text inserted by the change split into lines.
func (a *Atomic) Lines() []buffer.Segment {
	return a.lines
}

// Revisions returns the number of document revisions the change stands for.
func (a *Atomic) Revisions() int {
	return a.revisions
}

// Description returns a human-readable description.
func (a *Atomic) Description() string {
	switch a.kind {
	case Insertion:
		return fmt.Sprintf("insert %q at %s", a.Text(), a.region.First)
	case Deletion:
		return fmt.Sprintf("erase %s", a.region)
	default:
		return fmt.Sprintf("replace %s with %q", a.region, a.Text())
	}
}

// merge tries to absorb post, a change recorded right after a.
// It returns false if the two changes are not contiguous.
func (a *Atomic) merge(post *Atomic) bool {
	switch {
	case a.kind == Insertion && post.kind == Insertion:
		pos, p := a.region.First, post.region.First
		if p.Line != pos.Line || p.Offset > pos.Offset {
			return false
		}
		switch {
		case p.Offset == pos.Offset:
			a.lines = buffer.AppendSegments(a.lines, post.lines)
		case len(post.lines) == 1 && p.Offset+len(post.lines[0].Text) == pos.Offset:
			a.lines = buffer.AppendSegments(post.lines, a.lines)
			a.region = post.region
		default:
			return false
		}

	case (a.kind == Deletion || a.kind == Replacement) && post.kind == Deletion:
		if !post.region.IsSingleLine() || post.region.First != a.region.Second {
			return false
		}
		a.region.Second = post.region.Second

	default:
		return false
	}

	a.revisions += post.revisions
	return true
}

func (a *Atomic) perform(t Target, m *Manager) (Result, error) {
	if t.IsNarrowed() && !t.AccessibleRegion().Encompasses(a.region) {
		return Result{}, nil
	}

	m.replayRevisions = a.revisions
	end, err := t.ReplaceLines(a.region, a.lines)
	if err != nil {
		return Result{}, fmt.Errorf("perform %s: %w", a.Description(), err)
	}
	return Result{Completed: true, Revisions: a.revisions, End: end}, nil
}

// Compound is an ordered group of atomic changes performed as one unit.
type Compound struct {
	changes []*Atomic
}

// Changes returns the atomic changes in recording order.
func (c *Compound) Changes() []*Atomic {
	return c.changes
}

// Len returns the number of atomic changes.
func (c *Compound) Len() int {
	return len(c.changes)
}

// Revisions returns the total number of revisions of the contained changes.
func (c *Compound) Revisions() int {
	n := 0
	for _, a := range c.changes {
		n += a.revisions
	}
	return n
}

// Description returns a human-readable description.
func (c *Compound) Description() string {
	if len(c.changes) == 1 {
		return c.changes[0].Description()
	}
	return fmt.Sprintf("compound of %d changes", len(c.changes))
}

// merge appends a, or folds it into the last change when they are
// contiguous. It always succeeds.
func (c *Compound) merge(a *Atomic) {
	if n := len(c.changes); n > 0 && c.changes[n-1].merge(a) {
		return
	}
	c.changes = append(c.changes, a)
}

// perform performs the changes from last to first. It stops at the first
// change that cannot be performed; the changes already performed are
// removed so that only the remainder is left for the next attempt.
func (c *Compound) perform(t Target, m *Manager) (Result, error) {
	res := Result{Completed: true}
	for i := len(c.changes) - 1; i >= 0; i-- {
		r, err := c.changes[i].perform(t, m)
		if err != nil || !r.Completed {
			clear(c.changes[i+1:])
			c.changes = c.changes[:i+1]
			res.Completed = false
			return res, err
		}
		res.Revisions += r.Revisions
		res.End = r.End
	}
	return res, nil
}
