package tui

import (
	"time"

	"github.com/agbru/nttmul/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update of a run.
type ProgressMsg struct {
	Generation  uint64
	EngineIndex int
	Value       float64
	Average     float64
	ETA         time.Duration
}

// ResultsMsg ends a run.
type ResultsMsg struct {
	Generation uint64
	// Results are sorted successes first, fastest first.
	Results []orchestration.MultiplicationResult
	// Final is the agreed product, when any engine succeeded.
	Final    *orchestration.MultiplicationResult
	ExitCode int
}

// TickMsg drives the elapsed timer and the memory sampling.
type TickMsg time.Time

// MemStatsMsg is a sample of the Go runtime memory statistics.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg is a host-wide load sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
