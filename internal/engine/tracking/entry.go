package tracking

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/textkernel/internal/engine/buffer"
)

// Sequence numbers journal entries. It increases by one with every
// recorded change and is never reused.
type Sequence uint64

// Kind categorizes a journal entry.
type Kind uint8

const (
	// KindInsert indicates text was inserted into an empty region.
	KindInsert Kind = iota

	// KindDelete indicates text was erased and nothing inserted.
	KindDelete

	// KindReplace indicates text was erased and other text inserted.
	KindReplace
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Entry is one recorded change of a document.
type Entry struct {
	// Seq is the journal sequence number of the entry.
	Seq Sequence

	// Revision is the document revision after the change. Changes made
	// by undo or redo carry the revision the document had when the undo
	// or redo finished.
	Revision int

	// Erased is the erased region, in positions before the change.
	Erased buffer.Region

	// Inserted is the region of the inserted text, in positions after
	// the change.
	Inserted buffer.Region

	// Text is the inserted text.
	Text string

	// Rollback is true if the change was made by undo or redo.
	Rollback bool

	// Timestamp is when the change was recorded.
	Timestamp time.Time
}

// Kind returns the kind of the change.
func (e Entry) Kind() Kind {
	switch {
	case e.Erased.IsEmpty():
		return KindInsert
	case e.Inserted.IsEmpty():
		return KindDelete
	default:
		return KindReplace
	}
}

// String returns a human-readable representation of the entry.
func (e Entry) String() string {
	text := e.Text
	if len(text) > 20 {
		text = text[:17] + "..."
	}
	switch e.Kind() {
	case KindInsert:
		return fmt.Sprintf("#%d insert %q at %s", e.Seq, text, e.Inserted.Beginning())
	case KindDelete:
		return fmt.Sprintf("#%d delete %s", e.Seq, e.Erased)
	default:
		return fmt.Sprintf("#%d replace %s with %q", e.Seq, e.Erased, text)
	}
}

// Summary counts entries by kind.
type Summary struct {
	Inserts   int
	Deletes   int
	Replaces  int
	Rollbacks int

	// InsertedBytes is the total length of inserted text.
	InsertedBytes int
}

// Summarize counts entries by kind.
func Summarize(entries []Entry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Kind() {
		case KindInsert:
			s.Inserts++
		case KindDelete:
			s.Deletes++
		case KindReplace:
			s.Replaces++
		}
		if e.Rollback {
			s.Rollbacks++
		}
		s.InsertedBytes += len(e.Text)
	}
	return s
}

// String returns a human-readable summary.
func (s Summary) String() string {
	var parts []string
	if s.Inserts > 0 {
		parts = append(parts, fmt.Sprintf("%d inserts", s.Inserts))
	}
	if s.Deletes > 0 {
		parts = append(parts, fmt.Sprintf("%d deletes", s.Deletes))
	}
	if s.Replaces > 0 {
		parts = append(parts, fmt.Sprintf("%d replaces", s.Replaces))
	}
	if len(parts) == 0 {
		return "no changes"
	}
	out := strings.Join(parts, ", ")
	if s.InsertedBytes > 0 {
		out += fmt.Sprintf(" (+%d bytes)", s.InsertedBytes)
	}
	if s.Rollbacks > 0 {
		out += fmt.Sprintf(", %d by undo/redo", s.Rollbacks)
	}
	return out
}
