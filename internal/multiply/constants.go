package multiply

import "github.com/agbru/nttmul/internal/field"

const (
	// MaxOperandDigits is the largest accepted operand, in decimal digits.
	// Two operands at this length need a 2^21-point transform, the largest
	// the root table provides.
	MaxOperandDigits = 1_000_000

	// MaxDigitProduct is the largest product of two decimal digits.
	MaxDigitProduct = 9 * 9

	// MaxCoefficientOverlap is the largest number of digit products that may
	// be summed into one convolution coefficient while keeping it below the
	// modulus. A coefficient gathers at most min(la, lb) products.
	MaxCoefficientOverlap = (field.Modulus - 1) / MaxDigitProduct

	// DefaultAutoThreshold is the shorter-operand length, in digits, at or
	// below which the auto engine picks schoolbook multiplication. It is
	// overridden by a calibration profile when one is loaded.
	DefaultAutoThreshold = 48
)

// Registered engine names.
const (
	EngineNTT        = "ntt"
	EngineSchoolbook = "schoolbook"
	EngineBigInt     = "bigint"
	EngineAuto       = "auto"
	EngineGMP        = "gmp"
)

// Share of the NTT pipeline completed after each stage, as reported to
// progress observers.
const (
	progressForwardA  = 0.30
	progressForwardB  = 0.60
	progressPointwise = 0.65
	progressInverse   = 0.95
	progressCarries   = 0.99
)
