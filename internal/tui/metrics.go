package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/nttmul/internal/format"
)

// historySize is the number of past run durations kept for the sparkline.
const historySize = 32

// MetricsModel shows runtime memory and the history of run durations.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	cpuPercent   float64
	memPercent   float64
	durations    *RingBuffer
	runs         int
}

// NewMetricsModel returns an empty panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{durations: NewRingBuffer(historySize)}
}

// UpdateMemStats stores a runtime sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats stores a host load sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpuPercent = msg.CPUPercent
	m.memPercent = msg.MemPercent
}

// RecordRun adds the duration of a finished run to the history.
func (m *MetricsModel) RecordRun(d time.Duration) {
	m.runs++
	m.durations.Push(float64(d.Microseconds()))
}

// View renders the panel body.
func (m MetricsModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s   %s %s\n",
		labelStyle.Render("Heap:"), valueStyle.Render(format.FormatBytes(m.alloc)+" / "+format.FormatBytes(m.heapSys)),
		labelStyle.Render("Goroutines:"), valueStyle.Render(fmt.Sprint(m.numGoroutine)))
	fmt.Fprintf(&b, "%s %s   %s %s\n",
		labelStyle.Render("GC:"), valueStyle.Render(fmt.Sprint(m.numGC)),
		labelStyle.Render("Pause:"), valueStyle.Render(format.FormatExecutionDuration(time.Duration(m.pauseTotalNs))))

	fmt.Fprintf(&b, "%s %s   %s %s\n",
		labelStyle.Render("CPU:"), valueStyle.Render(fmt.Sprintf("%.0f%%", m.cpuPercent)),
		labelStyle.Render("Mem:"), valueStyle.Render(fmt.Sprintf("%.0f%%", m.memPercent)))

	last := "-"
	if m.runs > 0 {
		last = format.FormatExecutionDuration(time.Duration(m.durations.Last()) * time.Microsecond)
	}
	fmt.Fprintf(&b, "%s %s   %s %s\n",
		labelStyle.Render("Runs:"), valueStyle.Render(fmt.Sprint(m.runs)),
		labelStyle.Render("Last:"), valueStyle.Render(last))
	b.WriteString(labelStyle.Render("History: ") + sparklineStyle.Render(RenderSparkline(m.durations.Slice())))
	return b.String()
}
