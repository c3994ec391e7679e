package buffer

import "fmt"

// Region is a span of text between two positions.
// First and Second are unordered; use Beginning and End for the positions
// in document order.
type Region struct {
	First  Position
	Second Position
}

// NewRegion creates a region from two positions.
func NewRegion(first, second Position) Region {
	return Region{First: first, Second: second}
}

// EmptyRegion returns the empty region at p.
func EmptyRegion(p Position) Region {
	return Region{First: p, Second: p}
}

// String returns a human-readable representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("[%s-%s]", r.First, r.Second)
}

// Beginning returns the earlier of the two positions.
func (r Region) Beginning() Position {
	return MinPosition(r.First, r.Second)
}

// End returns the later of the two positions.
func (r Region) End() Position {
	return MaxPosition(r.First, r.Second)
}

// Normalized returns the region with First <= Second.
func (r Region) Normalized() Region {
	return Region{First: r.Beginning(), Second: r.End()}
}

// IsEmpty returns true if the region has no extent.
func (r Region) IsEmpty() bool {
	return r.First == r.Second
}

// IsSingleLine returns true if the region lies on one line.
func (r Region) IsSingleLine() bool {
	return r.First.Line == r.Second.Line
}

// Lines returns the number of lines the region touches.
func (r Region) Lines() int {
	return r.End().Line - r.Beginning().Line + 1
}

// Contains returns true if p lies within the region, ends included.
func (r Region) Contains(p Position) bool {
	return !p.Before(r.Beginning()) && !p.After(r.End())
}

// Encompasses returns true if other lies entirely within the region.
func (r Region) Encompasses(other Region) bool {
	return r.Contains(other.Beginning()) && r.Contains(other.End())
}
