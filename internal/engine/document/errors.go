package document

import (
	"errors"
	"fmt"

	"github.com/dshills/textkernel/internal/engine/buffer"
)

// Document errors.
var (
	// ErrReadOnly is returned when modifying a read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrBadPosition indicates a position outside the document.
	ErrBadPosition = errors.New("bad position")

	// ErrBadRegion indicates a region outside the document.
	ErrBadRegion = errors.New("bad region")

	// ErrAccessViolation indicates a region outside the accessible region
	// of a narrowed document.
	ErrAccessViolation = errors.New("region is outside the accessible region")

	// ErrIllegalState is returned when the document is changed from a
	// change notification.
	ErrIllegalState = errors.New("document is being changed")

	// ErrInvalidStepCount is returned when more undo or redo steps are
	// requested than are available.
	ErrInvalidStepCount = errors.New("invalid number of undo/redo steps")

	// ErrListenerRegistered is returned when adding a listener twice.
	ErrListenerRegistered = errors.New("listener already registered")

	// ErrListenerNotRegistered is returned when removing an unknown listener.
	ErrListenerNotRegistered = errors.New("listener not registered")

	// ErrPointClosed is returned when using a closed point.
	ErrPointClosed = errors.New("point is closed")
)

// PositionError reports an invalid position.
type PositionError struct {
	Position buffer.Position
	Err      error
}

// Error implements the error interface.
func (e *PositionError) Error() string {
	return fmt.Sprintf("position %s: %v", e.Position, e.Err)
}

// Unwrap returns the underlying error.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// RegionError reports an invalid or inaccessible region.
type RegionError struct {
	Region buffer.Region
	Err    error
}

// Error implements the error interface.
func (e *RegionError) Error() string {
	return fmt.Sprintf("region %s: %v", e.Region, e.Err)
}

// Unwrap returns the underlying error.
func (e *RegionError) Unwrap() error {
	return e.Err
}
