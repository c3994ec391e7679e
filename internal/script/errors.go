package script

import (
	"errors"
	"fmt"
)

// Errors for script execution.
var (
	// ErrClosed is returned when running a script on a closed runner.
	ErrClosed = errors.New("script runner is closed")

	// ErrTimeout is returned when a script runs longer than allowed.
	ErrTimeout = errors.New("script timeout")

	// ErrInvalidJSON is returned for malformed JSON scripts.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNotArray is returned when a JSON script is not an array.
	ErrNotArray = errors.New("script must be an array of operations")

	// ErrUnknownOp is returned for an unknown operation name.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrBadOperand is returned for a missing or malformed operand.
	ErrBadOperand = errors.New("bad operand")
)

// Error reports a failed script.
type Error struct {
	// Script is the name of the script.
	Script string

	// Err is the error raised by the script.
	Err error

	// Cause is the engine error behind Err, if any.
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

// Unwrap returns the script error and its engine cause.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
