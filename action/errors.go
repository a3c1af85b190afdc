package action

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAction marks payloads whose shape does not match their type.
	ErrInvalidAction = errors.New("invalid action")
	// ErrNotImplemented marks action types with no handler.
	ErrNotImplemented = errors.New("not implemented")
	// ErrFailed marks handlers that panicked while applying an action.
	ErrFailed = errors.New("action failed")
)

// Code classifies an Error, loosely following gRPC status codes.
type Code int

const (
	// InvalidArgument means the payload is missing or has malformed fields.
	InvalidArgument Code = 3

	// FailedPrecondition means the action cannot run in the current state,
	// e.g. it was already applied.
	FailedPrecondition Code = 9

	// Unimplemented means no handler exists for the action type.
	Unimplemented Code = 12

	// Internal means a handler broke and the state was left untouched.
	Internal Code = 13
)

func (c Code) String() string {
	switch c {
	case InvalidArgument:
		return "invalid_argument"
	case FailedPrecondition:
		return "failed_precondition"
	case Unimplemented:
		return "unimplemented"
	case Internal:
		return "internal"
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is the user-facing error of a rejected or failed action.
type Error struct {
	Code    Code
	Type    Type
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.Type == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the sentinel matching Code so errors.Is works.
func (e *Error) Unwrap() error { return e.err }

func newError(code Code, t Type, format string, args ...any) *Error {
	e := &Error{Code: code, Type: t, Message: fmt.Sprintf(format, args...)}
	switch code {
	case InvalidArgument, FailedPrecondition:
		e.err = ErrInvalidAction
	case Unimplemented:
		e.err = ErrNotImplemented
	default:
		e.err = ErrFailed
	}
	return e
}

