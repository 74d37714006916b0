// Package errors provides the unified error type and factory functions for
// sitecast.  Every layer (domain, application, infrastructure, interfaces)
// uses AppError as the single carrier for structured error information, which
// keeps HTTP responses, log entries, and metrics labels consistent.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// stackDepth is the maximum number of frames captured per error.
const stackDepth = 32

// captureStack returns a formatted call-stack string starting two frames above
// the caller (skipping captureStack itself and the New/Wrap factory).
func captureStack(skip int) string {
	pcs := make([]uintptr, stackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		// Trim standard-library noise to keep traces readable.
		if !strings.Contains(f.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", f.File, f.Line, f.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// AppError is the single structured error type used throughout sitecast.
// It satisfies the standard error interface and supports Go 1.13+ wrapping so
// that errors.Is / errors.As / errors.Unwrap work transparently across layers.
//
// Usage:
//
//	return errors.New(errors.ErrCodeProjectNotFound, "project 1551 not found")
//	return errors.Wrap(repoErr, errors.ErrCodeCacheError, "failed to load snapshot")
//	return errors.NotFound("budget line not found").WithDetail("cost code 03-3000")
type AppError struct {
	// Code is the typed error code identifying the failure category.
	Code ErrorCode

	// Message is the primary human-readable description, suitable for
	// inclusion in API responses.
	Message string

	// Detail carries supplementary context (entity IDs, query parameters)
	// that aids debugging without leaking internals to end users.
	Detail string

	// Cause is the underlying error, enabling errors.Is / errors.As
	// traversal of the full chain.
	Cause error

	// Stack is the formatted call stack captured at creation.  It is not
	// part of Error() output; structured log middleware reads it directly.
	Stack string
}

// Error implements the standard error interface.
// Format: "[<code>] <message>: <detail>", detail omitted when empty.
func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As to
// traverse the full error chain.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns a shallow copy of the receiver with Detail set.
// Safe to call on a nil pointer (returns nil).
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithCause returns a shallow copy of the receiver with Cause set to err.
func (e *AppError) WithCause(err error) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Cause = err
	return &clone
}

// New constructs a fresh AppError with the given code and message.
// A call-stack snapshot is captured automatically.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Stack:   captureStack(1),
	}
}

// Newf constructs an AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(1),
	}
}

// Wrap constructs an AppError that wraps an existing error.  If err is nil,
// Wrap returns nil so it can be used inline on repository calls.
//
// When err is already an *AppError and code is ErrCodeInternal the original
// code is preserved, so domain classification survives cross-layer
// propagation when the caller is only adding context.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == ErrCodeInternal {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
		Stack:   captureStack(1),
	}
}

// IsCode reports whether the outermost *AppError in err's chain carries the
// given code.
func IsCode(err error, code ErrorCode) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// GetCode returns the ErrorCode of the outermost *AppError in err's chain,
// or ErrCodeInternal when err carries no AppError.
func GetCode(err error) ErrorCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrCodeInternal
}

// IsNotFound reports whether err represents any not-found condition.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeProjectNotFound, ErrCodeBudgetNotFound,
		ErrCodePermitNotFound, ErrCodeBuyoutNotFound, ErrCodeReportNotFound:
		return true
	}
	return false
}

// IsValidation reports whether err represents invalid caller input.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeValidation, ErrCodeBadRequest, ErrCodeForecastInvalidMethod,
		ErrCodeForecastInvalidPeriod, ErrCodeUnknownRole:
		return true
	}
	return false
}

// IsConflict reports whether err represents a state conflict.
func IsConflict(err error) bool {
	return GetCode(err) == ErrCodeConflict
}

// IsUnavailable reports whether err represents a dependency outage.
func IsUnavailable(err error) bool {
	switch GetCode(err) {
	case ErrCodeServiceUnavailable, ErrCodeCacheError, ErrCodeMailDeliveryFailed:
		return true
	}
	return false
}

// NotFound constructs a generic not-found AppError.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message, Stack: captureStack(1)}
}

// InvalidParam constructs a validation AppError.
func InvalidParam(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Stack: captureStack(1)}
}

// Internal constructs an internal AppError.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Stack: captureStack(1)}
}

// Conflict constructs a conflict AppError.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message, Stack: captureStack(1)}
}
