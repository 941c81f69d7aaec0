package forms

import (
	"errors"
	"fmt"

	"formgate.org/internal/frappe"
)

// Sentinels for errors.Is classification at the handler boundary.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
)

// domainError pairs a sentinel with a human-readable message; the message is
// what reaches the response body.
type domainError struct {
	kind error
	msg  string
}

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.kind }

func invalidf(format string, args ...any) error {
	return &domainError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &domainError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) error {
	return &domainError{kind: ErrAlreadyExists, msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a natural-key lookup miss or an upstream
// 404 on a direct read.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *frappe.APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
