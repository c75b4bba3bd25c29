// Package field implements modular arithmetic over the prime field used by the
// number-theoretic transform.
//
// The modulus P = 81788929 = 39·2^21 + 1 is chosen so that P−1 carries a 2^21
// factor, which makes primitive 2^k-th roots of unity exist for every k ≤ 21.
// All operations take and return values reduced into [0, P).
package field

import (
	"errors"
	"math/bits"
)

const (
	// Modulus is the prime P of the field.
	Modulus = 81788929
	// TwoAdicity is the largest k such that 2^k divides P−1.
	TwoAdicity = 21
)

// ErrDivisionByZero is the panic value raised when a reduction or division is
// asked to divide by zero. The modulus is nonzero by construction, so reaching
// it means a programming error rather than bad input.
var ErrDivisionByZero = errors.New("field: division by zero")

// Element is a field element, always stored in reduced form [0, Modulus).
type Element uint64

// Reduce maps an arbitrary machine word into the field.
func Reduce(x uint64) Element {
	return Element(x % Modulus)
}

// Add returns (a + b) mod P.
func Add(a, b Element) Element {
	s := uint64(a) + uint64(b)
	if s >= Modulus {
		s -= Modulus
	}
	return Element(s)
}

// Sub returns (a − b) mod P.
func Sub(a, b Element) Element {
	if a >= b {
		return a - b
	}
	return a + Modulus - b
}

// Mul returns (a · b) mod P.
//
// The product is formed at double width before reduction so that no operand
// pair can overflow, whatever the modulus width.
func Mul(a, b Element) Element {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return Element(bits.Rem64(hi, lo, Modulus))
}

// Pow returns base^exp mod P by binary exponentiation, scanning the bits of
// exp from least to most significant.
func Pow(base Element, exp uint64) Element {
	result := Element(1)
	b := Reduce(uint64(base))
	for exp > 0 {
		if exp&1 == 1 {
			result = Mul(result, b)
		}
		b = Mul(b, b)
		exp >>= 1
	}
	return result
}

// Inverse returns a^(−1) mod P using Fermat's little theorem.
// It panics with ErrDivisionByZero when a is zero.
func Inverse(a Element) Element {
	if a == 0 {
		panic(ErrDivisionByZero)
	}
	return Pow(a, Modulus-2)
}

// DivMod returns the quotient and remainder of a / b.
//
// The semantics are those of binary long division: a zero divisor is rejected
// immediately by panicking with ErrDivisionByZero instead of looping or
// returning an arbitrary result.
func DivMod(a, b uint64) (q, r uint64) {
	if b == 0 {
		panic(ErrDivisionByZero)
	}
	return a / b, a % b
}
