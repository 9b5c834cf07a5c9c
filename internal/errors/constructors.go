package errors

import "fmt"

// Convenience functions for common error patterns

func UsageError(message string) *LinkCheckError {
	return New(CategoryUsage, SeverityFatal, message)
}

// Config errors

func ConfigNotFound(path string) *LinkCheckError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *LinkCheckError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *LinkCheckError {
	return New(CategoryValidation, SeverityFatal, fmt.Sprintf("invalid %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Output errors

func ReportWriteError(cause error) *LinkCheckError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "writing report failed")
}

func MetricsWriteError(path string, cause error) *LinkCheckError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "writing metrics file failed").
		WithContext("path", path)
}

// Network errors

func EventPublishError(subject string, cause error) *LinkCheckError {
	return Wrap(cause, CategoryNetwork, SeverityWarning, "publishing link events failed").
		WithContext("subject", subject)
}

// Internal errors

func InternalError(message string, cause error) *LinkCheckError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
