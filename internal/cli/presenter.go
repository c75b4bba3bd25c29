package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/format"
	"github.com/agbru/nttmul/internal/metrics"
	"github.com/agbru/nttmul/internal/orchestration"
	"github.com/agbru/nttmul/internal/progress"
	"github.com/agbru/nttmul/internal/ui"
)

// CLIProgressReporter renders progress with DisplayProgress.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEngines int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEngines, out)
}

// CLIResultPresenter renders results and errors for a terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per engine. Padding is computed on
// the visible text so escape codes do not break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.MultiplicationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	const engineHeader, durationHeader = "Engine", "Duration"
	maxNameLen, maxDurationLen := len(engineHeader), len(durationHeader)
	durations := make([]string, len(results))
	for i, res := range results {
		maxNameLen = max(maxNameLen, len(res.Engine))
		durations[i] = displayDuration(res.Duration)
		maxDurationLen = max(maxDurationLen, len(durations[i]))
	}

	fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %sStatus%s\n",
		ui.ColorUnderline(), engineHeader, ui.ColorReset(), padRight("", maxNameLen-len(engineHeader)),
		ui.ColorUnderline(), durationHeader, ui.ColorReset(), padRight("", maxDurationLen-len(durationHeader)),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s (%d digits)", ui.ColorGreen(), ui.ColorReset(), len(FormatQuietResult(res)))
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Engine, ui.ColorReset(), padRight("", maxNameLen-len(res.Engine)),
			ui.ColorYellow(), durations[i], ui.ColorReset(), padRight("", maxDurationLen-len(durations[i])),
			status)
	}
}

// PresentResult shows the analysis and value of a successful run.
func (CLIResultPresenter) PresentResult(result orchestration.MultiplicationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		return
	}
	DisplayResult(result, opts, out)
}

// HandleError implements orchestration.ErrorHandler.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider feeds the current theme to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats shows the allocation cost of a run.
func DisplayMemoryStats(delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(delta.PeakHeap))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(delta.Allocated))
	fmt.Fprintf(out, "  Allocations:     %d\n", delta.Mallocs)
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
}

// DisplayHostInfo prints the platform the run executed on.
func DisplayHostInfo(host metrics.HostInfo, out io.Writer) {
	fmt.Fprintf(out, "Host: %s%s%s\n", ui.ColorCyan(), host, ui.ColorReset())
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}
