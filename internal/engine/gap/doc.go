// Package gap provides a generic gap buffer.
//
// A gap buffer keeps its elements in one contiguous array split into a
// populated prefix, an unoccupied gap, and a populated suffix. Edits move
// the gap to the edit point first, so repeated edits at nearby positions
// only shift the elements between the old and the new edit point.
//
// # Layout
//
//	data: [ prefix | gap | suffix ]
//	       0        gapFirst gapLast  cap
//
// Logical index i maps to physical index i when i < gapFirst and to
// i + (gapLast - gapFirst) otherwise.
//
// # Errors
//
// Operations that would need more than MaxCapacity elements return
// ErrLength. Reserve with a capacity below the current length returns
// ErrCapacity. On any error the buffer is left exactly as it was.
//
// Buffer is not safe for concurrent use.
package gap
