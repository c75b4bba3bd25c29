// Package digits holds the decimal digit sequence exchanged between the I/O
// layer and the multiplication engines, together with its stream codec.
//
// A Sequence stores digits least significant first: index 0 is the units
// digit. Positions at or beyond the logical length read as zero.
package digits

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputOverflow reports an operand longer than the sequence capacity.
	ErrInputOverflow = errors.New("operand exceeds digit capacity")
	// ErrInvalidDigit reports a value outside 0..9 or a non-digit character.
	ErrInvalidDigit = errors.New("invalid decimal digit")
)

// Sequence is a bounded decimal digit sequence, least significant digit
// first. The zero value is an empty sequence with zero capacity.
type Sequence struct {
	digits   []byte
	capacity int
}

// New returns an empty sequence that accepts up to capacity digits.
func New(capacity int) Sequence {
	if capacity < 0 {
		capacity = 0
	}
	return Sequence{capacity: capacity}
}

// FromDigits builds a sequence from least-significant-first digit values.
// The capacity equals len(ds). The slice is copied.
func FromDigits(ds []byte) (Sequence, error) {
	out := make([]byte, len(ds))
	for i, d := range ds {
		if d > 9 {
			return Sequence{}, fmt.Errorf("position %d holds %d: %w", i, d, ErrInvalidDigit)
		}
		out[i] = d
	}
	return Sequence{digits: out, capacity: len(out)}, nil
}

// Parse reads a most-significant-first decimal string such as "000123".
// Stored leading zeros are kept; use Trim to drop them. An empty string
// yields an empty sequence.
func Parse(text string) (Sequence, error) {
	return ParseWithCapacity(text, len(text))
}

// ParseWithCapacity is Parse with an explicit capacity. Text longer than
// capacity fails with ErrInputOverflow.
func ParseWithCapacity(text string, capacity int) (Sequence, error) {
	if len(text) > capacity {
		return Sequence{}, fmt.Errorf("%d digits, capacity %d: %w", len(text), capacity, ErrInputOverflow)
	}
	s := Sequence{digits: make([]byte, len(text)), capacity: capacity}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c < '0' || c > '9' {
			return Sequence{}, fmt.Errorf("character %q at offset %d: %w", c, i, ErrInvalidDigit)
		}
		s.digits[len(text)-1-i] = c - '0'
	}
	return s, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(text string) Sequence {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the logical length, stored leading zeros included.
func (s Sequence) Len() int { return len(s.digits) }

// Cap returns the maximum number of digits the sequence accepts.
func (s Sequence) Cap() int { return s.capacity }

// Digit returns the digit at position i, or 0 beyond the logical length.
func (s Sequence) Digit(i int) byte {
	if i < 0 || i >= len(s.digits) {
		return 0
	}
	return s.digits[i]
}

// Digits returns the stored digits, least significant first. The caller must
// not modify the returned slice.
func (s Sequence) Digits() []byte { return s.digits }

// Append adds d as the new most significant digit.
func (s *Sequence) Append(d byte) error {
	if d > 9 {
		return fmt.Errorf("value %d: %w", d, ErrInvalidDigit)
	}
	if len(s.digits) >= s.capacity {
		return fmt.Errorf("capacity %d: %w", s.capacity, ErrInputOverflow)
	}
	s.digits = append(s.digits, d)
	return nil
}

// Trim returns the sequence without stored leading zeros. The zero value
// trims to an empty sequence.
func (s Sequence) Trim() Sequence {
	n := len(s.digits)
	for n > 0 && s.digits[n-1] == 0 {
		n--
	}
	return Sequence{digits: s.digits[:n:n], capacity: s.capacity}
}

// IsZero reports whether every stored digit is zero, including when the
// sequence is empty.
func (s Sequence) IsZero() bool {
	for _, d := range s.digits {
		if d != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether s and other denote the same integer.
func (s Sequence) Equal(other Sequence) bool {
	a, b := s.Trim(), other.Trim()
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.digits {
		if a.digits[i] != b.digits[i] {
			return false
		}
	}
	return true
}

// String renders the value most significant digit first without leading
// zeros, or "0".
func (s Sequence) String() string {
	return Format(s)
}

// Format renders s as WriteSequence does, without the line terminator.
func Format(s Sequence) string {
	t := s.Trim()
	if t.Len() == 0 {
		return "0"
	}
	var b strings.Builder
	b.Grow(t.Len())
	for i := t.Len() - 1; i >= 0; i-- {
		b.WriteByte('0' + t.digits[i])
	}
	return b.String()
}
