package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a workflow failure.
type ErrorKind string

const (
	KindToolMissing      ErrorKind = "tool-missing"
	KindToolUnhealthy    ErrorKind = "tool-unhealthy"
	KindCommandFailed    ErrorKind = "command-failed"
	KindFilesystemFailed ErrorKind = "filesystem-failed"
	KindUnknownCommand   ErrorKind = "unknown-command"
)

// ErrCancelled marks an operation interrupted by the user.
var ErrCancelled = errors.New("operation cancelled by user")

// Error is a classified failure. Op names the step that failed.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified error.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrCancelled) {
		return 0
	}
	switch KindOf(err) {
	case KindUnknownCommand:
		return 2
	case KindToolMissing:
		return 3
	case KindToolUnhealthy:
		return 4
	case KindCommandFailed:
		return 5
	case KindFilesystemFailed:
		return 6
	default:
		return 1
	}
}
