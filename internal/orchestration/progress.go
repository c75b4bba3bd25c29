package orchestration

import (
	"time"

	"github.com/agbru/nttmul/internal/format"
	"github.com/agbru/nttmul/internal/progress"
)

// ProgressAggregator folds per-engine updates into an average with an ETA.
// The CLI and the TUI share it.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numEngines int
}

// NewProgressAggregator returns nil when numEngines <= 0.
func NewProgressAggregator(numEngines int) *ProgressAggregator {
	if numEngines <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numEngines),
		numEngines: numEngines,
	}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	EngineIndex int
	Value       float64
	// Average is the mean over all engines.
	Average float64
	ETA     time.Duration
}

// Update records one engine update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.EngineIndex, update.Value)
	return AggregatedProgress{
		EngineIndex: update.EngineIndex,
		Value:       update.Value,
		Average:     avg,
		ETA:         eta,
	}
}

// Average returns the current mean without recording anything.
func (a *ProgressAggregator) Average() float64 { return a.state.CalculateAverage() }

// ETA returns the current estimate without recording anything.
func (a *ProgressAggregator) ETA() time.Duration { return a.state.GetETA() }

// NumEngines returns how many engines are tracked.
func (a *ProgressAggregator) NumEngines() int { return a.numEngines }

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
