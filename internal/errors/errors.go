package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Network errors (NET-001 to NET-099)
	ErrCodeNetwork ErrorCode = "NET-001"
	ErrCodeTimeout ErrorCode = "NET-002"

	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeNotLoggedIn        ErrorCode = "AUTH-002"
	ErrCodeForbidden          ErrorCode = "AUTH-003"

	// Validation errors (VALIDATION-001 to VALIDATION-099)
	ErrCodeValidation ErrorCode = "VALIDATION-001"

	// Lookup errors (NOTFOUND-001 to NOTFOUND-099)
	ErrCodeNotFound ErrorCode = "NOTFOUND-001"

	// Role resolution errors (ROLE-001 to ROLE-099)
	ErrCodeRoleResolution   ErrorCode = "ROLE-001"
	ErrCodeRolePayloadShape ErrorCode = "ROLE-002"

	// Session persistence errors (SESSION-001 to SESSION-099)
	ErrCodeSessionSave  ErrorCode = "SESSION-001"
	ErrCodeSessionClear ErrorCode = "SESSION-002"

	// API errors (API-001 to API-099)
	ErrCodeAPIResponse ErrorCode = "API-001"
	ErrCodeAPIDecode   ErrorCode = "API-002"
)

// AppError represents an enhanced error with code, suggestions, and cause
type AppError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// Code extracts the ErrorCode from an error chain.
// Returns an empty code when no AppError is present.
func Code(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether the error chain carries the given code
func HasCode(err error, code ErrorCode) bool {
	return Code(err) == code
}

// IsNetwork reports whether the error is a connectivity or timeout failure.
// These are retryable by user action.
func IsNetwork(err error) bool {
	code := Code(err)
	return code == ErrCodeNetwork || code == ErrCodeTimeout
}

// IsAuth reports whether the error is an authentication failure
func IsAuth(err error) bool {
	code := Code(err)
	return code == ErrCodeInvalidCredentials || code == ErrCodeNotLoggedIn
}

// IsForbidden reports whether the error is an authorization denial
func IsForbidden(err error) bool {
	return HasCode(err, ErrCodeForbidden)
}

// IsNotFound reports whether the error is an empty-result lookup.
// Rendered as an empty-result message, distinct from a hard failure.
func IsNotFound(err error) bool {
	return HasCode(err, ErrCodeNotFound)
}

// IsValidation reports whether the error is a rejected input
func IsValidation(err error) bool {
	return HasCode(err, ErrCodeValidation)
}

// Common error constructors for frequently used errors

// NewNetworkError creates a connectivity failure error
func NewNetworkError(cause error) *AppError {
	return Wrap(ErrCodeNetwork, "could not reach the events backend", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the API URL in ~/.eventsctl/config.yaml").
		WithSuggestion("Retry the operation")
}

// NewInvalidCredentialsError creates a login rejection error.
// detail is the backend's message, surfaced verbatim.
func NewInvalidCredentialsError(detail string) *AppError {
	if detail == "" {
		detail = "invalid username or password"
	}
	return New(ErrCodeInvalidCredentials, detail).
		WithSuggestion("Check your username and password").
		WithSuggestion("Use 'eventsctl auth register' to create an account")
}

// NewNotLoggedInError creates an error for operations requiring a session
func NewNotLoggedInError() *AppError {
	return New(ErrCodeNotLoggedIn, "not logged in").
		WithSuggestion("Run 'eventsctl auth login' to authenticate")
}

// NewForbiddenError creates an authorization denial error
func NewForbiddenError(required string) *AppError {
	return New(ErrCodeForbidden, fmt.Sprintf("access denied: requires role %s", required)).
		WithSuggestion("Ask an administrator to change your role").
		WithSuggestion("Log out and back in after a role change")
}

// NewValidationError creates a rejected-input error.
// detail is the backend's message, surfaced verbatim.
func NewValidationError(detail string) *AppError {
	if detail == "" {
		detail = "the server rejected the request"
	}
	return New(ErrCodeValidation, detail)
}

// NewNotFoundError creates an empty-result error
func NewNotFoundError(what string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("no %s found", what))
}
