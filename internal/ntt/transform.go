package ntt

import (
	"fmt"
	"math/bits"

	"github.com/agbru/nttmul/internal/field"
)

// BitReverse permutes buf so that the entry at index i moves to the index
// whose log2(len(buf))-bit binary representation is i reversed. Each pair is
// swapped once, when i < j. len(buf) must be a power of two.
func BitReverse(buf []field.Element) {
	n := len(buf)
	j := 0
	for i := 1; i < n; i++ {
		// Increment j as a reversed counter: clear the high set bits, then
		// set the first clear one.
		bit := n >> 1
		for j&bit != 0 {
			j ^= bit
			bit >>= 1
		}
		j ^= bit
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
}

// Forward replaces buf with its number-theoretic transform.
func Forward(buf []field.Element) error {
	root, err := rootFor(len(buf))
	if err != nil {
		return err
	}
	transform(buf, root.W)
	return nil
}

// Inverse undoes Forward: it runs the transform with the inverse root and
// scales every entry by the inverse of the length.
func Inverse(buf []field.Element) error {
	root, err := rootFor(len(buf))
	if err != nil {
		return err
	}
	transform(buf, root.WInv)
	for i := range buf {
		buf[i] = field.Mul(buf[i], root.NInv)
	}
	return nil
}

// PointwiseMul sets dst[k] = dst[k] · src[k] for every k. Both slices must
// have the same length.
func PointwiseMul(dst, src []field.Element) {
	src = src[:len(dst)]
	for k := range dst {
		dst[k] = field.Mul(dst[k], src[k])
	}
}

// Convolve stores the cyclic convolution of a and b (mod P) into a.
// b is left in transformed form.
func Convolve(a, b []field.Element) error {
	if len(a) != len(b) {
		return fmt.Errorf("convolution operands differ in length (%d != %d): %w", len(a), len(b), ErrInvalidLength)
	}
	if err := Forward(a); err != nil {
		return err
	}
	if err := Forward(b); err != nil {
		return err
	}
	PointwiseMul(a, b)
	return Inverse(a)
}

// rootFor validates a buffer length and returns the matching table entry.
func rootFor(n int) (Root, error) {
	if !IsPowerOfTwo(n) {
		return Root{}, fmt.Errorf("length %d: %w", n, ErrInvalidLength)
	}
	return Roots(bits.TrailingZeros(uint(n)))
}

// transform performs the iterative radix-2 decimation-in-time butterflies
// using w, a primitive len(buf)-th root of unity.
func transform(buf []field.Element, w field.Element) {
	n := len(buf)
	BitReverse(buf)

	for length := 2; length <= n; length <<= 1 {
		half := length >> 1
		wlen := field.Pow(w, uint64(n/length))
		for i := 0; i < n; i += length {
			lo := buf[i : i+half]
			hi := buf[i+half : i+length]
			wCur := field.Element(1)
			for j := range lo {
				u := lo[j]
				v := field.Mul(hi[j], wCur)
				lo[j] = field.Add(u, v)
				hi[j] = field.Sub(u, v)
				wCur = field.Mul(wCur, wlen)
			}
		}
	}
}
