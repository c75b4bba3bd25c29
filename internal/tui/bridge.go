package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/orchestration"
	"github.com/agbru/nttmul/internal/progress"
)

// programRef lets goroutines reach the tea.Program across model copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program messages are sent to.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. Without a program it does nothing.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards engine progress to the program as
// ProgressMsg values tagged with the run generation.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress implements orchestration.ProgressReporter.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numEngines)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			Generation:  t.generation,
			EngineIndex: ap.EngineIndex,
			Value:       ap.Value,
			Average:     ap.Average,
			ETA:         ap.ETA,
		})
	}
}

// resultCollector records what orchestration presents so the model can
// render it in its own panel.
type resultCollector struct {
	final *orchestration.MultiplicationResult
	err   error
}

var (
	_ orchestration.ResultPresenter = (*resultCollector)(nil)
	_ orchestration.ErrorHandler    = (*resultCollector)(nil)
)

func (c *resultCollector) PresentComparisonTable([]orchestration.MultiplicationResult, io.Writer) {}

func (c *resultCollector) PresentResult(result orchestration.MultiplicationResult, _ orchestration.PresentationOptions, _ io.Writer) {
	c.final = &result
}

func (c *resultCollector) HandleError(err error, duration time.Duration, _ io.Writer) int {
	c.err = err
	return apperrors.HandleCalculationError(err, duration, io.Discard, apperrors.DefaultColorProvider{})
}
