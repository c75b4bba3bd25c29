package digits

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ReadSequence consumes digit characters from r until the first non-digit
// terminator, which is consumed and discarded. A "\r\n" pair counts as a
// single terminator. End of input after at least one byte also ends the
// operand.
//
// The digits arrive most significant first and are stored least significant
// first. A terminator before any digit yields an empty sequence. If r is
// already exhausted, ReadSequence returns io.EOF. An operand longer than
// capacity fails with ErrInputOverflow before anything past capacity is
// stored.
func ReadSequence(r io.ByteScanner, capacity int) (Sequence, error) {
	s := New(capacity)
	consumed := false
	for {
		c, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			if !consumed {
				return Sequence{}, io.EOF
			}
			break
		}
		if err != nil {
			return Sequence{}, fmt.Errorf("reading operand: %w", err)
		}
		consumed = true

		if c < '0' || c > '9' {
			if c == '\r' {
				if next, err := r.ReadByte(); err == nil && next != '\n' {
					_ = r.UnreadByte()
				}
			}
			break
		}
		if len(s.digits) >= capacity {
			return Sequence{}, fmt.Errorf("more than %d digits: %w", capacity, ErrInputOverflow)
		}
		s.digits = append(s.digits, c-'0')
	}

	reverse(s.digits)
	return s, nil
}

func reverse(ds []byte) {
	for i, j := 0, len(ds)-1; i < j; i, j = i+1, j-1 {
		ds[i], ds[j] = ds[j], ds[i]
	}
}

// Reader reads successive operands from a single stream.
type Reader struct {
	r        *bufio.Reader
	capacity int
}

// NewReader returns a Reader accepting operands of up to capacity digits.
func NewReader(r io.Reader, capacity int) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br, capacity: capacity}
}

// Next reads the next operand. It returns io.EOF once the stream is
// exhausted.
func (rd *Reader) Next() (Sequence, error) {
	return ReadSequence(rd.r, rd.capacity)
}

// ReadPair reads operand A then operand B. A stream that ends before B
// yields an empty B, which multiplies as zero.
func (rd *Reader) ReadPair() (a, b Sequence, err error) {
	a, err = rd.Next()
	if err != nil {
		return Sequence{}, Sequence{}, err
	}
	b, err = rd.Next()
	if errors.Is(err, io.EOF) {
		return a, New(rd.capacity), nil
	}
	return a, b, err
}

// WriteSequence writes s most significant digit first, without leading
// zeros (a single "0" when s is zero), followed by a newline.
func WriteSequence(w io.Writer, s Sequence) error {
	_, err := io.WriteString(w, Format(s)+"\n")
	return err
}
