// Package apperrors defines the structured error types of picalc and the
// process exit codes they map to.
//
// Error Wrapping Guidelines:
// Errors are wrapped with fmt.Errorf and %w. Every type carrying a cause
// implements Unwrap so that errors.Is and errors.As see through it.
package apperrors
