package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/progress"
)

// MultiplicationResult is the outcome of one engine run.
type MultiplicationResult struct {
	// Engine is the registry name of the engine.
	Engine string
	// Product is the zero value when Err is set.
	Product  digits.Sequence
	Duration time.Duration
	Err      error
}

// PresentationOptions controls how a product is shown.
type PresentationOptions struct {
	// LenA and LenB are the operand lengths, in digits.
	LenA, LenB int
	Details    bool
	Quiet      bool
	// ShowValue prints the product itself; Verbose disables its truncation.
	ShowValue bool
	Verbose   bool
}

// ProgressReporter renders progress updates until the channel is closed,
// then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	f(wg, progressChan, numEngines, out)
}

// NullProgressReporter drains updates without output. Quiet mode and tests
// use it.
type NullProgressReporter struct{}

// DisplayProgress implements ProgressReporter.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable shows one row per engine.
	PresentComparisonTable(results []MultiplicationResult, out io.Writer)
	// PresentResult shows the product of a successful run.
	PresentResult(result MultiplicationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports a failed run and returns its exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
