package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic or calculation error.
	ExitErrorTimeout    = 2   // Indicates the operation timed out.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorValidation = 5   // Indicates rejected input values.
	ExitErrorIO         = 6   // Indicates a file read or write failure.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates a calculation error while preserving the
// original cause, such as a Pisano search that exhausted its bound.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// InvalidValue is a single rejected input value.
type InvalidValue struct {
	// Row is the 1-based row number in the source file.
	Row int
	// Value is the raw cell content.
	Value string
	// Reason explains the rejection ("not an integer", "not prime").
	Reason string
}

// String renders the value as `row 3: "4" is not prime`.
func (v InvalidValue) String() string {
	return fmt.Sprintf("row %d: %q is %s", v.Row, v.Value, v.Reason)
}

// InvalidValuesError reports every offending value of a batch input.
// A batch carrying this error must not be processed at all.
type InvalidValuesError struct {
	// Source names the input (usually a file path).
	Source string
	// Values lists the offending values in input order.
	Values []InvalidValue
}

// Error lists all offending values.
func (e *InvalidValuesError) Error() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %d invalid value(s): %s", e.Source, len(e.Values), strings.Join(parts, "; "))
}

// FileError represents a failed file operation and carries the OS-level cause.
type FileError struct {
	// Op is the attempted operation ("read", "write", "create").
	Op string
	// Path is the file involved.
	Path string
	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted message describing the file failure.
func (e FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e FileError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error chain to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		invalid    *InvalidValuesError
		validation ValidationError
		configErr  ConfigError
		fileErr    FileError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &invalid), errors.As(err, &validation):
		return ExitErrorValidation
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &fileErr):
		return ExitErrorIO
	}
	return ExitErrorGeneric
}
