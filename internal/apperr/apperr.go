// Package apperr defines the error type shared by tasktimer packages.
package apperr

import (
	"errors"
	"fmt"
)

// Error is an application error. Message may contain fmt verbs which are
// filled in by Fmt. Copies produced by Fmt or Wrap still match the original
// value with errors.Is.
type Error struct {
	Cause   error
	Message string
	tmpl    string
	Context []any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

// Unwrap returns the underlying cause (if any).
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the same kind of application error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e.template() == t.template()
}

func (e *Error) template() string {
	if e.tmpl != "" {
		return e.tmpl
	}

	return e.Message
}

// Fmt returns a copy of the error with the message verbs replaced by args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		tmpl:    e.template(),
		Cause:   e.Cause,
		Context: args,
	}
}

// Wrap returns a copy of the error that carries err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		tmpl:    e.template(),
		Cause:   err,
		Context: e.Context,
	}
}
