package buffer

// DefaultLineCapacity is the initial line capacity of a LineStore.
const DefaultLineCapacity = 64

// Option is a functional option for configuring a LineStore.
type Option func(*storeConfig)

type storeConfig struct {
	capacity int
	newline  Newline
}

// WithCapacity sets the initial number of lines the store can hold
// before growing.
func WithCapacity(n int) Option {
	return func(c *storeConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithNewline sets the newline of the initial empty line.
func WithNewline(nl Newline) Option {
	return func(c *storeConfig) {
		if nl.IsValid() {
			c.newline = nl
		}
	}
}
