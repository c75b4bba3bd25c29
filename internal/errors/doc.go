// Package apperrors defines the structured error types shared across nttmul
// and the exit codes they map to. Every wrapper implements Unwrap so callers
// can keep using errors.Is and errors.As on the original cause.
package apperrors
