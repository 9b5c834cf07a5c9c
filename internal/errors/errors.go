// Package errors provides a lightweight structured error type (LinkCheckError)
// for category-based classification of infrastructure failures in the CLI.
//
// Link findings are not errors in this sense; they are reported through
// linkcheck.Finding and never travel through this package.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a LinkCheckError for classification
type ErrorCategory string

const (
	// User-facing invocation and configuration errors
	CategoryUsage      ErrorCategory = "usage"
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External systems
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryNetwork    ErrorCategory = "network"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// LinkCheckError is a structured error with category, severity and context
type LinkCheckError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for LinkCheckError
type ContextFields map[string]any

// Error implements the error interface
func (e *LinkCheckError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *LinkCheckError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *LinkCheckError) WithContext(key string, value any) *LinkCheckError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new LinkCheckError
func New(category ErrorCategory, severity ErrorSeverity, message string) *LinkCheckError {
	return &LinkCheckError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new LinkCheckError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *LinkCheckError {
	return &LinkCheckError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As extracts the first LinkCheckError in err's chain.
func As(err error) (*LinkCheckError, bool) {
	var lce *LinkCheckError
	if stderrors.As(err, &lce) {
		return lce, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if lce, ok := As(err); ok {
		return lce.Category == category
	}
	return false
}
