package buffer

import "errors"

var (
	// ErrLineOutOfRange indicates a line index outside the store.
	ErrLineOutOfRange = errors.New("line index out of range")

	// ErrOffsetOutOfRange indicates an offset beyond the end of a line.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrInvalidNewline indicates an unknown newline kind.
	ErrInvalidNewline = errors.New("invalid newline")
)
