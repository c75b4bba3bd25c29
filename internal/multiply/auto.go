package multiply

import (
	"context"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/progress"
)

// Auto picks schoolbook multiplication when the shorter operand, leading
// zeros excluded, is at most Options.AutoThreshold digits, and the NTT
// engine otherwise.
type Auto struct {
	ntt        Multiplier
	schoolbook Schoolbook
}

// Name implements Engine.
func (*Auto) Name() string { return EngineAuto }

// Choose returns the core engine used for operands of la and lb significant
// digits.
func (e *Auto) Choose(la, lb int, opts Options) CoreEngine {
	opts = normalizeOptions(opts)
	if min(la, lb) <= opts.AutoThreshold {
		return e.schoolbook
	}
	return &e.ntt
}

// MultiplyCore implements CoreEngine.
func (e *Auto) MultiplyCore(ctx context.Context, a, b digits.Sequence, opts Options, report progress.Reporter) (digits.Sequence, error) {
	a, b = a.Trim(), b.Trim()
	if a.Len() == 0 || b.Len() == 0 {
		return zero(), nil
	}
	return e.Choose(a.Len(), b.Len(), opts).MultiplyCore(ctx, a, b, opts, report)
}
