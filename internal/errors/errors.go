package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates a context deadline was exceeded.
	ExitErrorMismatch = 3   // Indicates that engines disagreed beyond rounding tolerance.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the run was canceled (e.g., SIGINT).
)

// ConfigError represents an invalid run configuration: a non-positive thread
// count, iteration count or precision, an unknown engine, and so on. The run
// cannot start.
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

// ValidationError identifies a single invalid input field.
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

// CalculationError wraps a failure of an engine run while preserving the
// original cause.
type CalculationError struct {
	// Cause is the underlying error that stopped the run.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// ResourceKind names the external resource that could not be used.
type ResourceKind string

const (
	// ResourceOutputFile is the optional result file.
	ResourceOutputFile ResourceKind = "output file"
	// ResourceReference is the reference digit corpus.
	ResourceReference ResourceKind = "reference file"
	// ResourceProfile is a calibration or configuration profile.
	ResourceProfile ResourceKind = "profile"
	// ResourceListener is the metrics listen address.
	ResourceListener ResourceKind = "listen address"
)

// ResourceError reports that a file or address needed by an optional feature
// could not be opened. It is recoverable: output falls back to stdout and verification is
// reported as skipped.
type ResourceError struct {
	Kind  ResourceKind
	Path  string
	Cause error
}

// Error returns a formatted message naming the resource.
func (e ResourceError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s %q unavailable", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s %q unavailable: %v", e.Kind, e.Path, e.Cause)
}

// Unwrap returns the underlying I/O error.
func (e ResourceError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
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

// IsConfigError reports whether err is, or wraps, a ConfigError or
// ValidationError.
func IsConfigError(err error) bool {
	var ce ConfigError
	var ve ValidationError
	return errors.As(err, &ce) || errors.As(err, &ve)
}
