package multiply

import (
	"context"
	"math/big"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/progress"
)

// BigInt multiplies through math/big. It is the independent oracle the
// other engines are checked against.
type BigInt struct{}

// Name implements Engine.
func (BigInt) Name() string { return EngineBigInt }

// MultiplyCore implements CoreEngine.
func (BigInt) MultiplyCore(ctx context.Context, a, b digits.Sequence, _ Options, report progress.Reporter) (digits.Sequence, error) {
	x, ok := new(big.Int).SetString(digits.Format(a), 10)
	if !ok {
		return digits.Sequence{}, digits.ErrInvalidDigit
	}
	y, ok := new(big.Int).SetString(digits.Format(b), 10)
	if !ok {
		return digits.Sequence{}, digits.ErrInvalidDigit
	}
	orNoop(report)(0.5)
	if err := ctx.Err(); err != nil {
		return digits.Sequence{}, err
	}
	return digits.Parse(x.Mul(x, y).String())
}

// ToBigInt converts a digit sequence to a big.Int.
func ToBigInt(s digits.Sequence) *big.Int {
	z, _ := new(big.Int).SetString(digits.Format(s), 10)
	return z
}

// FromBigInt converts a non-negative big.Int to a digit sequence.
func FromBigInt(z *big.Int) (digits.Sequence, error) {
	return digits.Parse(z.String())
}
