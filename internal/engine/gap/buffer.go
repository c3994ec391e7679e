package gap

import (
	"fmt"
	"iter"
)

const (
	// MinCapacity is the capacity of a newly created buffer when a smaller
	// one is requested.
	MinCapacity = 10

	// MaxCapacity is the largest number of elements a buffer can hold.
	MaxCapacity = 1<<31 - 1
)

// Buffer is a growable sequence backed by a gap buffer.
// The zero value is an empty buffer ready to use.
type Buffer[T any] struct {
	data     []T
	gapFirst int
	gapLast  int
}

// New creates an empty buffer with at least the given capacity.
func New[T any](capacity int) (*Buffer[T], error) {
	if capacity > MaxCapacity {
		return nil, fmt.Errorf("new buffer with capacity %d: %w", capacity, ErrLength)
	}
	capacity = max(capacity, MinCapacity)
	return &Buffer[T]{
		data:    make([]T, capacity),
		gapLast: capacity,
	}, nil
}

// From creates a buffer holding a copy of values.
func From[T any](values []T) (*Buffer[T], error) {
	b, err := New[T](len(values) * 2)
	if err != nil {
		return nil, err
	}
	copy(b.data, values)
	b.gapFirst = len(values)
	return b, nil
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.data) - b.gapLen()
}

// Cap returns the number of elements the buffer can hold without
// reallocating.
func (b *Buffer[T]) Cap() int {
	return len(b.data)
}

// IsEmpty returns true if the buffer has no elements.
func (b *Buffer[T]) IsEmpty() bool {
	return b.Len() == 0
}

func (b *Buffer[T]) gapLen() int {
	return b.gapLast - b.gapFirst
}

func (b *Buffer[T]) physical(i int) int {
	if i < b.gapFirst {
		return i
	}
	return i + b.gapLen()
}

// At returns the element at index i.
// It panics if i is out of range, like indexing a slice.
func (b *Buffer[T]) At(i int) T {
	if i < 0 || i >= b.Len() {
		panic(fmt.Sprintf("gap: index %d out of range [0:%d]", i, b.Len()))
	}
	return b.data[b.physical(i)]
}

// Get returns the element at index i, or false if i is out of range.
func (b *Buffer[T]) Get(i int) (T, bool) {
	if i < 0 || i >= b.Len() {
		var zero T
		return zero, false
	}
	return b.data[b.physical(i)], true
}

// Set replaces the element at index i.
func (b *Buffer[T]) Set(i int, v T) error {
	if i < 0 || i >= b.Len() {
		return fmt.Errorf("set %d (len %d): %w", i, b.Len(), ErrOutOfRange)
	}
	b.data[b.physical(i)] = v
	return nil
}

// Insert inserts values before index pos.
// pos may equal Len to append.
func (b *Buffer[T]) Insert(pos int, values ...T) error {
	if pos < 0 || pos > b.Len() {
		return fmt.Errorf("insert at %d (len %d): %w", pos, b.Len(), ErrOutOfRange)
	}
	n := len(values)
	if n == 0 {
		return nil
	}

	if n >= b.gapLen() {
		need := b.Len() + n
		if need > MaxCapacity {
			return fmt.Errorf("insert %d elements (len %d): %w", n, b.Len(), ErrLength)
		}
		newCap := min(max(len(b.data)*2, len(b.data)+n+1), MaxCapacity)
		if err := b.reallocate(newCap, pos); err != nil {
			return err
		}
	} else {
		b.moveGap(pos)
	}

	copy(b.data[b.gapFirst:], values)
	b.gapFirst += n
	return nil
}

// Erase removes the elements in [first, last).
func (b *Buffer[T]) Erase(first, last int) error {
	if first < 0 || last > b.Len() || first > last {
		return fmt.Errorf("erase [%d:%d] (len %d): %w", first, last, b.Len(), ErrOutOfRange)
	}
	if first == last {
		return nil
	}

	// A gap inside [first, last] is widened over the range in place.
	if b.gapFirst < first {
		b.moveGap(first)
	} else if b.gapFirst > last {
		b.moveGap(last)
	}

	before := b.gapFirst - first
	after := (last - first) - before
	clear(b.data[first:b.gapFirst])
	clear(b.data[b.gapLast : b.gapLast+after])
	b.gapFirst = first
	b.gapLast += after
	return nil
}

// Clear removes all elements, keeping the capacity.
func (b *Buffer[T]) Clear() {
	clear(b.data)
	b.gapFirst = 0
	b.gapLast = len(b.data)
}

// Reserve grows the capacity to at least n.
// It returns ErrCapacity if n is below the current length.
func (b *Buffer[T]) Reserve(n int) error {
	if n < b.Len() {
		return fmt.Errorf("reserve %d (len %d): %w", n, b.Len(), ErrCapacity)
	}
	if n <= len(b.data) {
		return nil
	}
	return b.reallocate(n, b.gapFirst)
}

// ShrinkToFit reduces the capacity to the current length.
func (b *Buffer[T]) ShrinkToFit() error {
	if len(b.data) == b.Len() {
		return nil
	}
	return b.reallocate(b.Len(), b.gapFirst)
}

// Slice returns a copy of the elements in [from, to).
func (b *Buffer[T]) Slice(from, to int) ([]T, error) {
	if from < 0 || to > b.Len() || from > to {
		return nil, fmt.Errorf("slice [%d:%d] (len %d): %w", from, to, b.Len(), ErrOutOfRange)
	}
	out := make([]T, to-from)
	b.copyOut(out, from)
	return out, nil
}

// Values returns a copy of all elements in logical order.
func (b *Buffer[T]) Values() []T {
	out := make([]T, b.Len())
	b.copyOut(out, 0)
	return out
}

// All iterates over index/element pairs in logical order.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < b.Len(); i++ {
			if !yield(i, b.data[b.physical(i)]) {
				return
			}
		}
	}
}

// Backward iterates over index/element pairs from the last element to
// the first.
func (b *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := b.Len() - 1; i >= 0; i-- {
			if !yield(i, b.data[b.physical(i)]) {
				return
			}
		}
	}
}

// moveGap relocates the gap so that it starts at logical index pos.
// Vacated slots are zeroed so the buffer does not retain references.
func (b *Buffer[T]) moveGap(pos int) {
	switch {
	case pos < b.gapFirst:
		n := b.gapFirst - pos
		copy(b.data[b.gapLast-n:b.gapLast], b.data[pos:b.gapFirst])
		clear(b.data[pos:min(b.gapFirst, b.gapLast-n)])
		b.gapFirst = pos
		b.gapLast -= n
	case pos > b.gapFirst:
		n := pos - b.gapFirst
		copy(b.data[b.gapFirst:b.gapFirst+n], b.data[b.gapLast:b.gapLast+n])
		clear(b.data[max(b.gapLast, b.gapFirst+n) : b.gapLast+n])
		b.gapFirst += n
		b.gapLast += n
	}
}

// reallocate moves the elements into a new array of newCap elements with
// the gap starting at logical index at. The receiver is only modified
// once the new array is fully populated.
func (b *Buffer[T]) reallocate(newCap, at int) error {
	size := b.Len()
	if newCap < size {
		return fmt.Errorf("reallocate to %d (len %d): %w", newCap, size, ErrCapacity)
	}
	if newCap > MaxCapacity {
		return fmt.Errorf("reallocate to %d: %w", newCap, ErrLength)
	}

	data := make([]T, newCap)
	suffix := size - at
	b.copyOut(data[:at], 0)
	b.copyOut(data[newCap-suffix:], at)

	b.data = data
	b.gapFirst = at
	b.gapLast = newCap - suffix
	return nil
}

// copyOut copies len(dst) elements starting at logical index from.
func (b *Buffer[T]) copyOut(dst []T, from int) {
	n := 0
	if from < b.gapFirst {
		n = copy(dst, b.data[from:b.gapFirst])
	}
	if n < len(dst) {
		copy(dst[n:], b.data[b.physical(from+n):])
	}
}
