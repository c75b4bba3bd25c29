//go:build gmp

// The GMP engine needs libgmp and cgo; build with -tags=gmp to include it.

package multiply

import (
	"context"

	"github.com/ncw/gmp"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/progress"
)

func init() {
	_ = RegisterEngine(EngineGMP, func() CoreEngine { return GMP{} })
}

// GMP multiplies through the GNU multiple precision library.
type GMP struct{}

// Name implements Engine.
func (GMP) Name() string { return EngineGMP }

// MultiplyCore implements CoreEngine.
func (GMP) MultiplyCore(ctx context.Context, a, b digits.Sequence, _ Options, report progress.Reporter) (digits.Sequence, error) {
	x, ok := new(gmp.Int).SetString(digits.Format(a), 10)
	if !ok {
		return digits.Sequence{}, digits.ErrInvalidDigit
	}
	y, ok := new(gmp.Int).SetString(digits.Format(b), 10)
	if !ok {
		return digits.Sequence{}, digits.ErrInvalidDigit
	}
	orNoop(report)(0.5)
	if err := ctx.Err(); err != nil {
		return digits.Sequence{}, err
	}
	return digits.Parse(x.Mul(x, y).String())
}
