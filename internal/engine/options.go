package engine

import (
	"github.com/dshills/textkernel/internal/config"
	"github.com/dshills/textkernel/internal/engine/buffer"
	"github.com/dshills/textkernel/internal/engine/history"
	"github.com/dshills/textkernel/internal/engine/tracking"
	"github.com/dshills/textkernel/internal/logging"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = history.DefaultMaxEntries
	DefaultJournalSize    = tracking.DefaultMaxEntries
	DefaultLineCapacity   = buffer.DefaultLineCapacity
)

// Option configures an Engine during creation.
type Option func(*settings)

type settings struct {
	content        string
	readOnly       bool
	newline        buffer.Newline
	newlineSet     bool
	maxUndoEntries int
	lineCapacity   int
	journalSize    int
	logger         *logging.Logger
}

func defaultSettings() settings {
	return settings{
		newline:        buffer.DefaultNewline,
		maxUndoEntries: DefaultMaxUndoEntries,
		lineCapacity:   DefaultLineCapacity,
		journalSize:    DefaultJournalSize,
		logger:         logging.Nop(),
	}
}

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(s *settings) {
		s.content = content
	}
}

// WithReadOnly creates a read-only engine.
// Edits, undo and redo return ErrReadOnly.
func WithReadOnly(readOnly bool) Option {
	return func(s *settings) {
		s.readOnly = readOnly
	}
}

// WithNewline sets the newline of the last line of the document.
func WithNewline(nl buffer.Newline) Option {
	return func(s *settings) {
		if nl.IsValid() {
			s.newline = nl
			s.newlineSet = true
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo steps.
// Zero means unlimited.
func WithMaxUndoEntries(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.maxUndoEntries = n
		}
	}
}

// WithLineCapacity sets the initial line capacity of the document.
func WithLineCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.lineCapacity = n
		}
	}
}

// WithJournalSize sets the number of changes the journal keeps.
func WithJournalSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.journalSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// FromConfig applies the engine section of a loaded configuration.
func FromConfig(c config.Engine) Option {
	return func(s *settings) {
		s.readOnly = c.ReadOnly
		if c.Newline != "" {
			s.newline = c.NewlineKind()
			s.newlineSet = true
		}
		if c.MaxUndoEntries >= 0 {
			s.maxUndoEntries = c.MaxUndoEntries
		}
		if c.LineCapacity > 0 {
			s.lineCapacity = c.LineCapacity
		}
	}
}
