package multiply

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/field"
	"github.com/agbru/nttmul/internal/ntt"
	"github.com/agbru/nttmul/internal/progress"
)

// traceWidth bounds how many buffer entries a trace event carries.
const traceWidth = 32

// Multiplier is the NTT multiplication engine. The zero value is ready to
// use and accepts operands up to MaxOperandDigits.
type Multiplier struct{}

// NewMultiplier returns an NTT engine.
func NewMultiplier() *Multiplier { return &Multiplier{} }

// Name implements Engine.
func (m *Multiplier) Name() string { return EngineNTT }

// Multiply returns a·b with default options and no progress reporting.
func (m *Multiplier) Multiply(ctx context.Context, a, b digits.Sequence) (digits.Sequence, error) {
	return NewEngine(m).Multiply(ctx, a, b, DefaultOptions(), nil)
}

// MultiplyCore runs the transform pipeline. Every limit is checked by the
// plan before a buffer is touched:
//
//  1. plan the transform length N >= la+lb and its roots,
//  2. load both operands into zero-padded buffers of length N,
//  3. forward-transform both buffers,
//  4. multiply them pointwise,
//  5. inverse-transform the product,
//  6. propagate base-10 carries.
func (m *Multiplier) MultiplyCore(ctx context.Context, a, b digits.Sequence, opts Options, report progress.Reporter) (digits.Sequence, error) {
	opts = normalizeOptions(opts)
	report = orNoop(report)
	plan, err := PlanWithCapacity(a.Len(), b.Len(), opts.MaxDigits)
	if err != nil {
		return digits.Sequence{}, err
	}
	transformLogSize.Observe(float64(plan.LogSize))
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("transform.log_size", plan.LogSize),
		attribute.Int("transform.size", plan.Size),
	)

	bufs := AcquireBuffers(plan.LogSize)
	defer bufs.Release()
	if err := bufs.Load(a, b); err != nil {
		return digits.Sequence{}, err
	}
	traceBuffer("loaded a", bufs.A)
	traceBuffer("loaded b", bufs.B)

	stages := []struct {
		name string
		run  func() error
		done float64
	}{
		{"forward transform a", func() error { return ntt.Forward(bufs.A) }, progressForwardA},
		{"forward transform b", func() error { return ntt.Forward(bufs.B) }, progressForwardB},
		{"pointwise product", func() error { ntt.PointwiseMul(bufs.A, bufs.B); return nil }, progressPointwise},
		{"inverse transform", func() error { return ntt.Inverse(bufs.A) }, progressInverse},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return digits.Sequence{}, fmt.Errorf("canceled before %s: %w", st.name, err)
		}
		if err := st.run(); err != nil {
			return digits.Sequence{}, fmt.Errorf("%s: %w", st.name, err)
		}
		traceBuffer(st.name, bufs.A)
		report(st.done)
	}

	out := PropagateCarries(bufs.A, make([]byte, 0, plan.Size+1))
	report(progressCarries)
	return digits.FromDigits(out)
}

// traceBuffer dumps the head of an intermediate buffer at trace level.
func traceBuffer(stage string, buf []field.Element) {
	if log.Logger.GetLevel() > zerolog.TraceLevel {
		return
	}
	head := buf[:min(len(buf), traceWidth)]
	values := make([]uint64, len(head))
	for i, v := range head {
		values[i] = uint64(v)
	}
	log.Trace().
		Str("stage", stage).
		Int("size", len(buf)).
		Uints64("head", values).
		Msg("transform buffer")
}
