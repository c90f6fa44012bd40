package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a pin, value or pin list can't be encoded.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrClosed indicates the controller is already closed.
	ErrClosed = errors.New("connection closed")
	// ErrControlLineUnsupported is returned by a Transport which can't
	// drive the requested control line on the current platform.
	ErrControlLineUnsupported = errors.New("control line unsupported")
)

// ArgumentError describes a rejected argument.
type ArgumentError struct {
	Arg    string
	Value  int
	Reason string
}

// Error implements error.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%d: %s", e.Arg, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidArgument) work.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
