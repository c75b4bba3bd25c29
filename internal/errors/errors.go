package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3 // engines disagreed on a product
	ExitErrorConfig   = 4
	ExitErrorCapacity = 5   // operands beyond the supported transform length
	ExitErrorCanceled = 130 // SIGINT convention
)

// ConfigError reports invalid flags, environment values or profile files.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError from a format string.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while an engine was multiplying.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the underlying cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports that Operation did not finish within Limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports a rejected input value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Capacity kinds.
const (
	CapacityOperand     = "operand"     // an operand holds more digits than allowed
	CapacityTransform   = "transform"   // the product needs a transform longer than the root table
	CapacityCoefficient = "coefficient" // convolution coefficients could reach the modulus
)

// CapacityError reports a multiplication that cannot be serviced because a
// size limit would be exceeded. Requested and Limit are expressed in the
// unit of Kind (digits or transform points).
type CapacityError struct {
	Kind      string
	Requested int
	Limit     int
	Cause     error
}

func (e CapacityError) Error() string {
	msg := fmt.Sprintf("%s capacity exceeded: requested %d, limit %d", e.Kind, e.Requested, e.Limit)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the sentinel that triggered the rejection, if any.
func (e CapacityError) Unwrap() error { return e.Cause }

// ServerError wraps a failure of the HTTP server lifecycle.
type ServerError struct {
	Op    string
	Cause error
}

func (e ServerError) Error() string {
	return fmt.Sprintf("server %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause.
func (e ServerError) Unwrap() error { return e.Cause }

// WrapError prefixes err with a formatted context message. A nil err stays
// nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsCapacityError reports whether err carries a CapacityError.
func IsCapacityError(err error) bool {
	var capErr CapacityError
	return errors.As(err, &capErr)
}
