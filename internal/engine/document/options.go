package document

import (
	"github.com/dshills/textkernel/internal/engine/buffer"
	"github.com/dshills/textkernel/internal/engine/history"
	"github.com/dshills/textkernel/internal/logging"
)

// Option configures a Document.
type Option func(*config)

type config struct {
	newline        buffer.Newline
	lineCapacity   int
	maxUndoEntries int
	readOnly       bool
	recording      bool
	logger         *logging.Logger
}

func defaultConfig() config {
	return config{
		newline:        buffer.DefaultNewline,
		lineCapacity:   buffer.DefaultLineCapacity,
		maxUndoEntries: history.DefaultMaxEntries,
		recording:      true,
		logger:         logging.Nop(),
	}
}

// WithNewline sets the newline of the last line of a new document.
func WithNewline(nl buffer.Newline) Option {
	return func(c *config) {
		if nl.IsValid() {
			c.newline = nl
		}
	}
}

// WithLineCapacity sets the initial line capacity.
func WithLineCapacity(n int) Option {
	return func(c *config) {
		c.lineCapacity = n
	}
}

// WithMaxUndoEntries limits the number of undo steps kept.
// A non-positive value means no limit.
func WithMaxUndoEntries(n int) Option {
	return func(c *config) {
		c.maxUndoEntries = n
	}
}

// WithReadOnly creates the document read-only.
func WithReadOnly(readOnly bool) Option {
	return func(c *config) {
		c.readOnly = readOnly
	}
}

// WithRecording sets whether edits are recorded for undo.
func WithRecording(record bool) Option {
	return func(c *config) {
		c.recording = record
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
