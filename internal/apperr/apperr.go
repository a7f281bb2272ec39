// Package apperr defines the error categories used across dsgen-cli.
//
// Error taxonomy
//
//	UserError       – bad flag, unknown recipe key, malformed --set pair.
//	                  The CLI prints only the message. Exit code: 1.
//
//	ValidationError – a recipe field was empty at submit time. The submission
//	                  never leaves the client.
//
//	BackendError    – the backend answered with a non-2xx status. Carries the
//	                  backend-provided detail when there was one.
//
//	NetworkError    – the request could not complete (dial, TLS, read).
//
//	ErrCancelled    – the user deliberately aborted an interactive flow.
//	                  Exit code: 0 (not a failure).
//
// Everything else is a plain Go error propagated with fmt.Errorf("context: %w", err).
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation.  The CLI should exit 0 rather than 1 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// UserError represents an error caused by invalid or missing user input.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}

// ValidationError reports the first recipe field whose value was absent.
type ValidationError struct {
	Field  string
	Label  string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required"
	}
	return fmt.Sprintf("%s %s", e.Label, reason)
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// BackendError is returned when the backend responds with a non-2xx status.
// Detail holds the message decoded from the response body, if any.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend error (status %d)", e.StatusCode)
}

// IsNotFound reports whether err is a BackendError with HTTP 404.
func IsNotFound(err error) bool {
	var e *BackendError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// NetworkError wraps a transport failure for the named operation.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetwork reports whether err is (or wraps) a *NetworkError.
func IsNetwork(err error) bool {
	var n *NetworkError
	return errors.As(err, &n)
}
