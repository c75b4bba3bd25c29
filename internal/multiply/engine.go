// Package multiply multiplies arbitrarily long non-negative decimal integers.
//
// The main engine, Multiplier, convolves the two digit sequences with a
// number-theoretic transform over the prime field of package field and then
// propagates base-10 carries. Reference engines (schoolbook, math/big, GMP)
// share the same Engine interface so results can be cross-checked.
package multiply

//go:generate mockgen -destination=mocks/mock_engine.go -package=mocks github.com/agbru/nttmul/internal/multiply Engine

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/nttmul/internal/digits"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/progress"
)

var (
	multiplicationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nttmul_multiplications_total",
			Help: "Number of multiplications processed, by engine and outcome.",
		},
		[]string{"engine", "status"},
	)
	multiplicationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nttmul_multiplication_duration_seconds",
			Help:    "Wall-clock duration of multiplications.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		},
		[]string{"engine"},
	)
	transformLogSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nttmul_transform_log_size",
			Help:    "log2 of the transform length chosen by the NTT engine.",
			Buckets: prometheus.LinearBuckets(0, 1, 22),
		},
	)
)

// Engine multiplies two digit sequences. Implementations are safe for
// concurrent use; each call owns its working storage.
type Engine interface {
	// Multiply returns a·b. report, when non-nil, receives the completed
	// fraction of the work.
	Multiply(ctx context.Context, a, b digits.Sequence, opts Options, report progress.Reporter) (digits.Sequence, error)
	// Name returns the registry name of the engine.
	Name() string
}

// CoreEngine is a bare multiplication algorithm, free of instrumentation.
// NewEngine and the registries wrap it into an Engine.
type CoreEngine interface {
	MultiplyCore(ctx context.Context, a, b digits.Sequence, opts Options, report progress.Reporter) (digits.Sequence, error)
	Name() string
}

// instrumentedEngine adds input validation, tracing, metrics and logging
// around a CoreEngine.
type instrumentedEngine struct {
	core CoreEngine
}

// NewEngine wraps core into an Engine. It panics if core is nil.
func NewEngine(core CoreEngine) Engine {
	if core == nil {
		panic("multiply: core engine cannot be nil")
	}
	return &instrumentedEngine{core: core}
}

func (e *instrumentedEngine) Name() string { return e.core.Name() }

func (e *instrumentedEngine) Multiply(ctx context.Context, a, b digits.Sequence, opts Options, report progress.Reporter) (result digits.Sequence, err error) {
	name := e.core.Name()
	ctx, span := otel.Tracer("multiply").Start(ctx, "Multiply")
	span.SetAttributes(
		attribute.String("engine", name),
		attribute.Int("operand.a.digits", a.Len()),
		attribute.Int("operand.b.digits", b.Len()),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		multiplicationsTotal.WithLabelValues(name, status).Inc()
		multiplicationDuration.WithLabelValues(name).Observe(elapsed.Seconds())

		log.Debug().
			Str("engine", name).
			Int("len_a", a.Len()).
			Int("len_b", b.Len()).
			Int("len_result", result.Len()).
			Dur("duration", elapsed).
			Str("status", status).
			Msg("multiplication completed")
	}()

	report = orNoop(report)
	opts = normalizeOptions(opts)

	for _, l := range [...]int{a.Len(), b.Len()} {
		if l > opts.MaxDigits {
			return digits.Sequence{}, apperrors.CapacityError{
				Kind: apperrors.CapacityOperand, Requested: l, Limit: opts.MaxDigits, Cause: ErrOperandTooLarge,
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return digits.Sequence{}, err
	}

	if a.Len() == 0 || b.Len() == 0 {
		report(1.0)
		return zero(), nil
	}

	result, err = e.core.MultiplyCore(ctx, a, b, opts, report)
	if err != nil {
		return digits.Sequence{}, err
	}
	report(1.0)
	return result, nil
}

// orNoop substitutes a no-op for a nil reporter.
func orNoop(report progress.Reporter) progress.Reporter {
	if report == nil {
		return func(float64) {}
	}
	return report
}

// zero returns the one-digit sequence 0.
func zero() digits.Sequence {
	s, _ := digits.FromDigits([]byte{0})
	return s
}
