package multiply

import (
	"context"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/progress"
)

// cancelCheckRows is how many outer-loop rows run between context checks.
const cancelCheckRows = 256

// Schoolbook is the grade-school O(la·lb) engine. It serves as a reference
// and wins for short operands.
type Schoolbook struct{}

// Name implements Engine.
func (Schoolbook) Name() string { return EngineSchoolbook }

// MultiplyCore accumulates every digit product into its column, then
// propagates carries once. Columns stay far below 2^64: each holds at most
// 81·min(la, lb).
func (Schoolbook) MultiplyCore(ctx context.Context, a, b digits.Sequence, _ Options, report progress.Reporter) (digits.Sequence, error) {
	da, db := a.Digits(), b.Digits()
	if len(da) < len(db) {
		da, db = db, da
	}
	cols := make([]uint64, len(da)+len(db))
	report = progress.Throttle(report)

	for j, y := range db {
		if j%cancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return digits.Sequence{}, err
			}
			report(float64(j) / float64(len(db)))
		}
		if y == 0 {
			continue
		}
		row := cols[j : j+len(da)]
		for i, x := range da {
			row[i] += uint64(x) * uint64(y)
		}
	}

	return digits.FromDigits(PropagateCarries(cols, make([]byte, 0, len(cols)+1)))
}
