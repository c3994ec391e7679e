package buffer

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dshills/textkernel/internal/engine/gap"
)

// LineStore is the ordered sequence of lines of a document.
// A store always holds at least one line.
type LineStore struct {
	lines *gap.Buffer[*Line]
}

// NewLineStore creates a store holding a single empty line.
func NewLineStore(opts ...Option) (*LineStore, error) {
	cfg := storeConfig{
		capacity: DefaultLineCapacity,
		newline:  DefaultNewline,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	lines, err := gap.New[*Line](cfg.capacity)
	if err != nil {
		return nil, fmt.Errorf("create line store: %w", err)
	}
	if err := lines.Insert(0, NewLine("", cfg.newline, 0)); err != nil {
		return nil, fmt.Errorf("create line store: %w", err)
	}
	return &LineStore{lines: lines}, nil
}

// Count returns the number of lines.
func (s *LineStore) Count() int {
	return s.lines.Len()
}

// At returns line i. It panics if i is out of range.
func (s *LineStore) At(i int) *Line {
	return s.lines.At(i)
}

// Line returns line i.
func (s *LineStore) Line(i int) (*Line, error) {
	l, ok := s.lines.Get(i)
	if !ok {
		return nil, fmt.Errorf("line %d of %d: %w", i, s.Count(), ErrLineOutOfRange)
	}
	return l, nil
}

// Text returns the text of line i, or "" if i is out of range.
func (s *LineStore) Text(i int) string {
	if l, ok := s.lines.Get(i); ok {
		return l.text
	}
	return ""
}

// SetText replaces the text of line i.
func (s *LineStore) SetText(i int, text string) error {
	l, err := s.Line(i)
	if err != nil {
		return err
	}
	l.text = text
	return nil
}

// SetNewline replaces the newline of line i.
func (s *LineStore) SetNewline(i int, nl Newline) error {
	if !nl.IsValid() {
		return fmt.Errorf("set newline %d: %w", nl, ErrInvalidNewline)
	}
	l, err := s.Line(i)
	if err != nil {
		return err
	}
	l.newline = nl
	return nil
}

// Insert inserts lines before index i. i may equal Count to append.
func (s *LineStore) Insert(i int, lines ...*Line) error {
	if err := s.lines.Insert(i, lines...); err != nil {
		return fmt.Errorf("insert %d lines at %d: %w", len(lines), i, err)
	}
	return nil
}

// Erase removes the lines in [first, last).
// The last remaining line cannot be erased.
func (s *LineStore) Erase(first, last int) error {
	if last-first >= s.Count() {
		return fmt.Errorf("erase lines [%d:%d] of %d: %w", first, last, s.Count(), ErrLineOutOfRange)
	}
	if err := s.lines.Erase(first, last); err != nil {
		return fmt.Errorf("erase lines [%d:%d]: %w", first, last, err)
	}
	return nil
}

// Reset discards every line and leaves a single empty line.
func (s *LineStore) Reset(nl Newline, revision int) {
	s.lines.Clear()
	_ = s.lines.Insert(0, NewLine("", nl, revision))
}

// Load replaces the content of the store with text split at its
// newlines. The last line takes the newline nl.
func (s *LineStore) Load(text string, nl Newline, revision int) error {
	segments := SplitLines(text)
	lines := make([]*Line, len(segments))
	for i, seg := range segments {
		if !seg.Terminated {
			seg.Newline = nl
		}
		lines[i] = NewLine(seg.Text, seg.Newline, revision)
	}

	fresh, err := gap.From(lines)
	if err != nil {
		return fmt.Errorf("load %d lines: %w", len(lines), err)
	}
	s.lines = fresh
	return nil
}

// Length returns the total length of all lines, excluding newlines.
func (s *LineStore) Length() int {
	n := 0
	for _, l := range s.lines.All() {
		n += len(l.text)
	}
	return n
}

// All iterates over index/line pairs.
func (s *LineStore) All() iter.Seq2[int, *Line] {
	return s.lines.All()
}

// String joins all lines with their own newlines.
func (s *LineStore) String() string {
	var b strings.Builder
	last := s.Count() - 1
	for i, l := range s.lines.All() {
		b.WriteString(l.text)
		if i < last {
			b.WriteString(l.newline.Sequence())
		}
	}
	return b.String()
}
