package pipeline

import (
	"errors"
	"fmt"
)

// Error is a handler-produced pipeline failure. The core attaches no
// meaning to it and carries it verbatim from the failing handler to the
// Invoke caller. Handlers are equally free to return any other error
// type; Error exists as a convenient default payload.
type Error struct {
	Msg string
	Err error // optional underlying cause
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error from a format string. The %w verb wraps a
// cause the same way fmt.Errorf does, so errors.Is and errors.As see
// through it.
func Errorf(format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Msg: err.Error(), Err: errors.Unwrap(err)}
}
