package engine

import (
	"errors"

	"github.com/dshills/textkernel/internal/engine/document"
)

// Errors returned by engine operations. Document errors are re-exported
// so callers need not import the document package to test for them.
var (
	// ErrReadOnly indicates an edit of a read-only engine.
	ErrReadOnly = document.ErrReadOnly

	// ErrBadPosition indicates a position outside the document.
	ErrBadPosition = document.ErrBadPosition

	// ErrBadRegion indicates a region outside the document.
	ErrBadRegion = document.ErrBadRegion

	// ErrAccessViolation indicates a region outside the accessible region.
	ErrAccessViolation = document.ErrAccessViolation

	// ErrInvalidStepCount indicates more undo or redo steps than available.
	ErrInvalidStepCount = document.ErrInvalidStepCount

	// ErrNilReader is returned by NewFromReader for a nil reader.
	ErrNilReader = errors.New("nil reader")
)
