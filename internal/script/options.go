package script

import (
	"io"
	"time"

	"github.com/dshills/textkernel/internal/logging"
)

// DefaultTimeout bounds the run time of a Lua script.
const DefaultTimeout = 5 * time.Second

// Option configures a Lua runner.
type Option func(*Lua)

// WithTimeout sets the maximum run time of a script.
// Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Lua) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithOutput sets where print writes.
func WithOutput(w io.Writer) Option {
	return func(r *Lua) {
		if w != nil {
			r.out = w
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Lua) {
		if l != nil {
			r.logger = l
		}
	}
}
