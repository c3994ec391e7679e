package history

import "github.com/dshills/textkernel/internal/logging"

// DefaultMaxEntries is the default maximum number of undo entries.
const DefaultMaxEntries = 1000

// Option configures a Manager.
type Option func(*Manager)

// WithMaxEntries sets the maximum number of entries on the undo stack.
// The oldest entries are dropped when the limit is exceeded.
// A non-positive value means no limit.
func WithMaxEntries(n int) Option {
	return func(m *Manager) {
		m.maxEntries = n
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l.WithComponent("history")
		}
	}
}
