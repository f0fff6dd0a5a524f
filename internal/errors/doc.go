// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// validation, file access, calculation) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types that carry a cause implement Unwrap() to support errors.Is()
// and errors.As(). ExitCode maps any error in a chain to a process exit status.
package apperrors
