package gap

import "errors"

var (
	// ErrLength indicates a requested capacity beyond MaxCapacity.
	ErrLength = errors.New("gap buffer length exceeds maximum capacity")

	// ErrCapacity indicates a requested capacity below the current length.
	ErrCapacity = errors.New("capacity is smaller than length")

	// ErrOutOfRange indicates an index or range outside the buffer.
	ErrOutOfRange = errors.New("index out of range")
)
