package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/nttmul/internal/digits"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/multiply"
	"github.com/agbru/nttmul/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per engine so that a
// slow display rarely drops updates.
const ProgressBufferMultiplier = 8

// progressLogStep is the progress increment between debug log lines.
const progressLogStep = 0.25

// Request is one multiplication to run.
type Request struct {
	A, B    digits.Sequence
	Options multiply.Options
}

// ExecuteMultiplications runs every engine on req concurrently and returns
// their results in engine order. Engine failures are recorded in the
// results, never returned.
func ExecuteMultiplications(ctx context.Context, engines []multiply.Engine, req Request, reporter ProgressReporter, out io.Writer) []MultiplicationResult {
	ctx, span := otel.Tracer("orchestration").Start(ctx, "ExecuteMultiplications")
	span.SetAttributes(
		attribute.Int("engines", len(engines)),
		attribute.Int("operand.a.digits", req.A.Len()),
		attribute.Int("operand.b.digits", req.B.Len()),
	)
	defer span.End()

	results := make([]MultiplicationResult, len(engines))
	progressChan := make(chan progress.ProgressUpdate, max(len(engines), 1)*ProgressBufferMultiplier)

	subject := progress.NewSubject()
	subject.Register(progress.NewChannelObserver(progressChan))
	subject.Register(progress.NewLoggingObserver(log.Logger, progressLogStep))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(engines), out)

	var g errgroup.Group
	for i, engine := range engines {
		g.Go(func() error {
			start := time.Now()
			product, err := engine.Multiply(ctx, req.A, req.B, req.Options, subject.AsReporter(i))
			results[i] = MultiplicationResult{
				Engine:   engine.Name(),
				Product:  product,
				Duration: time.Since(start),
				Err:      err,
			}
			return nil
		})
	}
	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// shows the comparison table and checks that every successful engine agrees.
// It returns the exit code of the comparison.
func AnalyzeComparisonResults(results []MultiplicationResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var (
		reference *MultiplicationResult
		firstErr  error
	)
	for i := range results {
		switch {
		case results[i].Err != nil && firstErr == nil:
			firstErr = results[i].Err
		case results[i].Err == nil && reference == nil:
			reference = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if reference == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the multiplication.\n")
		return handler.HandleError(firstErr, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !res.Product.Equal(reference.Product) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Engines %s and %s disagree on the product.\n", reference.Engine, res.Engine)
			log.Error().
				Str("reference", reference.Engine).
				Str("engine", res.Engine).
				Msg("engine products differ")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All products are identical.\n")
	presenter.PresentResult(*reference, opts, out)
	return apperrors.ExitSuccess
}
