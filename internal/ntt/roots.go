// Package ntt implements an in-place number-theoretic transform over the
// prime field of package field.
//
// A forward transform followed by a pointwise product and an inverse transform
// yields the exact cyclic convolution of two sequences, provided every true
// convolution coefficient is smaller than the modulus.
package ntt

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/agbru/nttmul/internal/field"
)

const (
	// MaxLogSize is the largest supported log2 transform length.
	MaxLogSize = field.TwoAdicity
	// MaxSize is the largest supported transform length, 2^MaxLogSize.
	MaxSize = 1 << MaxLogSize
)

var (
	// ErrTransformTooLarge reports that the required transform length exceeds
	// the largest entry of the root table.
	ErrTransformTooLarge = errors.New("operands too large for the transform table")
	// ErrInvalidLength reports a buffer whose length is not a power of two.
	ErrInvalidLength = errors.New("transform length must be a power of two")
)

// Root holds the constants needed to transform a sequence of length 2^i.
type Root struct {
	// W is a primitive 2^i-th root of unity.
	W field.Element
	// WInv is the multiplicative inverse of W.
	WInv field.Element
	// NInv is the multiplicative inverse of 2^i.
	NInv field.Element
}

// rootTable is indexed by log2 of the transform length. The values were
// computed offline from a generator of the multiplicative group; they are
// checked against their defining identities in the tests.
var rootTable = [MaxLogSize + 1]Root{
	{W: 1, WInv: 1, NInv: 1},
	{W: 81788928, WInv: 81788928, NInv: 40894465},
	{W: 57807995, WInv: 23980934, NInv: 61341697},
	{W: 1977387, WInv: 1883838, NInv: 71565313},
	{W: 34192649, WInv: 49739338, NInv: 76677121},
	{W: 51800346, WInv: 76852948, NInv: 79233025},
	{W: 58177483, WInv: 23726402, NInv: 80510977},
	{W: 994921, WInv: 56705191, NInv: 81149953},
	{W: 45945133, WInv: 15230354, NInv: 81469441},
	{W: 58071073, WInv: 12699317, NInv: 81629185},
	{W: 17073102, WInv: 8917364, NInv: 81709057},
	{W: 21012575, WInv: 61080809, NInv: 81748993},
	{W: 24378151, WInv: 48391651, NInv: 81768961},
	{W: 20135734, WInv: 9933144, NInv: 81778945},
	{W: 38888378, WInv: 63213817, NInv: 81783937},
	{W: 19146616, WInv: 33297963, NInv: 81786433},
	{W: 7626772, WInv: 38697572, NInv: 81787681},
	{W: 1417215, WInv: 31050320, NInv: 81788305},
	{W: 39445061, WInv: 79275988, NInv: 81788617},
	{W: 15774326, WInv: 35354232, NInv: 81788773},
	{W: 80102761, WInv: 76650467, NInv: 81788851},
	{W: 22285958, WInv: 75577748, NInv: 81788890},
}

// Roots returns the root table entry for transforms of length 2^logSize.
// An index outside [0, MaxLogSize] is rejected with ErrTransformTooLarge.
func Roots(logSize int) (Root, error) {
	if logSize < 0 || logSize > MaxLogSize {
		return Root{}, fmt.Errorf("log size %d outside [0, %d]: %w", logSize, MaxLogSize, ErrTransformTooLarge)
	}
	return rootTable[logSize], nil
}

// LogSize returns the smallest power of two that is at least n, together with
// its base-2 logarithm. Values of n up to 1 map to a transform of length 1.
func LogSize(n int) (size, logSize int, err error) {
	if n <= 1 {
		return 1, 0, nil
	}
	logSize = bits.Len(uint(n - 1))
	if logSize > MaxLogSize {
		return 0, 0, fmt.Errorf("length %d needs 2^%d points, table stops at 2^%d: %w",
			n, logSize, MaxLogSize, ErrTransformTooLarge)
	}
	return 1 << logSize, logSize, nil
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
