package calibration

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/multiply"
)

// DefaultRepetitions is the number of timed multiplications per engine and
// length; the median is kept.
const DefaultRepetitions = 7

// Measurement holds the median timings of both engines at one length.
type Measurement struct {
	Digits     int           `json:"digits"`
	Schoolbook time.Duration `json:"schoolbook_ns"`
	NTT        time.Duration `json:"ntt_ns"`
}

// NTTWins reports whether the transform engine was strictly faster.
func (m Measurement) NTTWins() bool { return m.NTT < m.Schoolbook }

// randomOperand returns n random digits with a non-zero leading digit.
func randomOperand(rng *rand.Rand, n int) digits.Sequence {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('0' + rng.Intn(10))
	}
	buf[0] = byte('1' + rng.Intn(9))
	return digits.MustParse(string(buf))
}

// medianDuration times reps multiplications of a by b on engine.
func medianDuration(ctx context.Context, engine multiply.Engine, a, b digits.Sequence, reps int) (time.Duration, error) {
	samples := make([]time.Duration, 0, reps)
	for range reps {
		start := time.Now()
		if _, err := engine.Multiply(ctx, a, b, multiply.Options{}, nil); err != nil {
			return 0, fmt.Errorf("%s at %d digits: %w", engine.Name(), a.Len(), err)
		}
		samples = append(samples, time.Since(start))
	}
	slices.Sort(samples)
	return samples[len(samples)/2], nil
}

// measureLength times both engines on the same random operands.
func measureLength(ctx context.Context, schoolbook, fast multiply.Engine, n, reps int, seed int64) (Measurement, error) {
	rng := rand.New(rand.NewSource(seed))
	a, b := randomOperand(rng, n), randomOperand(rng, n)

	sb, err := medianDuration(ctx, schoolbook, a, b, reps)
	if err != nil {
		return Measurement{}, err
	}
	nt, err := medianDuration(ctx, fast, a, b, reps)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Digits: n, Schoolbook: sb, NTT: nt}, nil
}

// Crossover returns the smallest measured length from which the transform
// engine wins at every larger length. When it never wins, the result is
// twice the largest length; ms must be sorted by length.
func Crossover(ms []Measurement) int {
	if len(ms) == 0 {
		return 0
	}
	crossover := 2 * ms[len(ms)-1].Digits
	for i := len(ms) - 1; i >= 0 && ms[i].NTTWins(); i-- {
		crossover = ms[i].Digits
	}
	return crossover
}
