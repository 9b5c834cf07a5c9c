package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
	}
}

// WithOutput redirects user-facing error messages (stderr by default).
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.stderr = w
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if lce, ok := As(err); ok {
		return a.exitCodeFromLinkCheck(lce)
	}

	return 1
}

// exitCodeFromLinkCheck maps LinkCheckError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromLinkCheck(err *LinkCheckError) int {
	switch err.Category {
	case CategoryUsage, CategoryValidation:
		return 1 // Same status as a failed check
	case CategoryConfig:
		return 7
	case CategoryNetwork:
		return 8
	case CategoryInternal:
		return 10
	case CategoryFileSystem:
		return 11
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if lce, ok := As(err); ok {
		return a.formatLinkCheck(lce)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatLinkCheck formats a LinkCheckError for display.
func (a *CLIErrorAdapter) formatLinkCheck(err *LinkCheckError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryUsage, CategoryConfig, CategoryValidation:
		if err.Cause != nil {
			return fmt.Sprintf("%s: %v", err.Message, err.Cause)
		}
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// Handle logs and prints err, returning the exit code the process should use.
func (a *CLIErrorAdapter) Handle(err error) int {
	if err == nil {
		return 0
	}

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintln(a.stderr, a.FormatError(err))
	return a.ExitCodeFor(err)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if lce, ok := As(err); ok {
		return lce.Category == CategoryInternal || lce.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if lce, ok := As(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(lce.Category)),
		}
		for k, v := range lce.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if lce.Cause != nil {
			attrs = append(attrs, slog.String("error", lce.Cause.Error()))
		}
		a.logger.LogAttrs(context.Background(), a.slogLevel(lce.Severity), lce.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevel converts LinkCheckError severity to slog level.
func (a *CLIErrorAdapter) slogLevel(severity ErrorSeverity) slog.Level {
	if severity == SeverityWarning {
		return slog.LevelWarn
	}
	return slog.LevelError
}
