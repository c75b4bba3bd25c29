package multiply

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/field"
	"github.com/agbru/nttmul/internal/ntt"
)

// Buffers is the transform buffer pair owned by a single multiplication.
// A and B have the same power-of-two length.
type Buffers struct {
	A, B    []field.Element
	logSize int
}

// bufferPools holds released buffer pairs, one pool per transform length.
var bufferPools [ntt.MaxLogSize + 1]sync.Pool

// AcquireBuffers returns a zeroed buffer pair of length 2^logSize. The pair
// belongs to the caller until Release.
//
//	bufs := AcquireBuffers(plan.LogSize)
//	defer bufs.Release()
func AcquireBuffers(logSize int) *Buffers {
	if logSize < 0 || logSize > ntt.MaxLogSize {
		panic(fmt.Sprintf("multiply: buffer log size %d out of range", logSize))
	}
	if b, ok := bufferPools[logSize].Get().(*Buffers); ok {
		clear(b.A)
		clear(b.B)
		return b
	}
	n := 1 << logSize
	return &Buffers{
		A:       make([]field.Element, n),
		B:       make([]field.Element, n),
		logSize: logSize,
	}
}

// Release hands the pair back to its pool. The buffers must not be used
// afterwards. Release on nil is a no-op.
func (b *Buffers) Release() {
	if b == nil {
		return
	}
	bufferPools[b.logSize].Put(b)
}

// Size returns the transform length.
func (b *Buffers) Size() int { return len(b.A) }

// Load copies operand digits into A and B. Positions past each operand stay
// zero, which is the padding the transform needs.
func (b *Buffers) Load(x, y digits.Sequence) error {
	if x.Len() > len(b.A) || y.Len() > len(b.B) {
		return fmt.Errorf("operands of %d and %d digits do not fit %d-point buffers: %w",
			x.Len(), y.Len(), len(b.A), ntt.ErrInvalidLength)
	}
	for i, d := range x.Digits() {
		b.A[i] = field.Element(d)
	}
	for i, d := range y.Digits() {
		b.B[i] = field.Element(d)
	}
	return nil
}

// WarmBuffers pre-allocates count buffer pairs of length 2^logSize.
func WarmBuffers(logSize, count int) {
	if logSize < 0 || logSize > ntt.MaxLogSize {
		return
	}
	n := 1 << logSize
	for i := 0; i < count; i++ {
		bufferPools[logSize].Put(&Buffers{
			A:       make([]field.Element, n),
			B:       make([]field.Element, n),
			logSize: logSize,
		})
	}
}

var buffersWarmed atomic.Bool

// EnsureBuffersWarmed warms two buffer pairs sized for operands of
// maxDigits digits, once per process.
func EnsureBuffersWarmed(maxDigits int) {
	if !buffersWarmed.CompareAndSwap(false, true) {
		return
	}
	if _, logSize, err := ntt.LogSize(2 * maxDigits); err == nil {
		WarmBuffers(logSize, 2)
	}
}
