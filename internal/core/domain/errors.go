// Package domain defines the core domain models for ztctl.
package domain

import (
	"fmt"
	"strings"
)

// DomainError represents a client-side domain error with a structured error code.
// Codes follow the format ZT-<KIND>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "ZT-NFND-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		b.WriteString(": " + e.Details)
	}
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code, so wrapped sentinels
// with details still compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of e carrying details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithDetailsf is WithDetails with a format string.
func (e *DomainError) WithDetailsf(format string, args ...any) *DomainError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// WithCause returns a copy of e wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

var (
	// ErrConfig indicates the token path could not be resolved or the
	// auth header could not be built from the token.
	ErrConfig = NewDomainError("ZT-CONF-4000", "configuration error")

	// ErrIO indicates the token file could not be read.
	ErrIO = NewDomainError("ZT-IO-5000", "cannot read auth token")

	// ErrTransport indicates the request never got a response:
	// connection refused, reset, timed out or cancelled.
	ErrTransport = NewDomainError("ZT-TRAN-5030", "cannot reach daemon")

	// ErrNotFound indicates the daemon has no such network or member.
	ErrNotFound = NewDomainError("ZT-NFND-4040", "not found")

	// ErrDecode indicates the response body did not match the expected schema.
	ErrDecode = NewDomainError("ZT-DECO-5020", "cannot decode daemon response")

	// ErrDaemon indicates the daemon accepted the request but reported a failure.
	ErrDaemon = NewDomainError("ZT-DMON-5000", "daemon reported an error")

	// ErrUnauthorized indicates the daemon rejected the auth token.
	ErrUnauthorized = NewDomainError("ZT-AUTH-4010", "daemon rejected auth token")
)
