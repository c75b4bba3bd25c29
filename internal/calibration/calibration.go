package calibration

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agbru/nttmul/internal/cli"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/multiply"
	"github.com/agbru/nttmul/internal/parallel"
	"github.com/agbru/nttmul/internal/progress"
	"github.com/agbru/nttmul/internal/sysmon"
	"github.com/agbru/nttmul/internal/ui"
)

// Options control a calibration run. Zero values select the defaults.
type Options struct {
	// ProfilePath is where the profile is saved; empty means the default
	// path.
	ProfilePath string
	// SaveProfile writes the profile when the run succeeds.
	SaveProfile bool
	// ChartPath, when set, receives an HTML chart of the timings.
	ChartPath   string
	Lengths     []int
	Repetitions int
	// Concurrency bounds the lengths measured at once.
	Concurrency int
}

func (o Options) withDefaults() Options {
	if len(o.Lengths) == 0 {
		o.Lengths = GenerateLengths()
	}
	if o.Repetitions <= 0 {
		o.Repetitions = DefaultRepetitions
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency()
	}
	return o
}

// Measure times the schoolbook and NTT engines at every length in
// opts.Lengths and returns the measurements sorted by length. progressChan
// receives the completed fraction and may be nil.
func Measure(ctx context.Context, factory multiply.Factory, opts Options, progressChan chan<- progress.ProgressUpdate) ([]Measurement, error) {
	opts = opts.withDefaults()
	schoolbook, err := factory.Get(multiply.EngineSchoolbook)
	if err != nil {
		return nil, err
	}
	fast, err := factory.Get(multiply.EngineNTT)
	if err != nil {
		return nil, err
	}

	lengths := sortedUnique(opts.Lengths)
	results := make([]Measurement, len(lengths))
	var done atomic.Int64
	err = parallel.ForEach(ctx, len(lengths), opts.Concurrency, func(ctx context.Context, i int) error {
		m, err := measureLength(ctx, schoolbook, fast, lengths[i], opts.Repetitions, int64(lengths[i]))
		if err != nil {
			return err
		}
		results[i] = m
		if progressChan != nil {
			progressChan <- progress.ProgressUpdate{Value: float64(done.Add(1)) / float64(len(lengths))}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// RunCalibration measures the crossover, prints the results and optionally
// saves the profile and chart. It returns a process exit code.
func RunCalibration(ctx context.Context, out io.Writer, factory multiply.Factory, opts Options) int {
	opts = opts.withDefaults()
	fmt.Fprintf(out, "--- Calibration: schoolbook vs %s ---\n", multiply.EngineNTT)
	fmt.Fprintf(out, "Lengths: %v, repetitions: %d\n", opts.Lengths, opts.Repetitions)
	if load := sysmon.Sample(); load.Busy() {
		fmt.Fprintf(out, "%sWarning: host CPU is %.0f%% busy, timings may be skewed%s\n",
			ui.ColorYellow(), load.CPUPercent, ui.ColorReset())
	}

	progressChan := make(chan progress.ProgressUpdate, len(opts.Lengths))
	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, 1, out)

	start := time.Now()
	ms, err := Measure(ctx, factory, opts, progressChan)
	close(progressChan)
	wg.Wait()
	elapsed := time.Since(start)

	if err != nil {
		return apperrors.HandleCalculationError(err, elapsed, out, cli.CLIColorProvider{})
	}

	threshold := Crossover(ms)
	printCalibrationResults(out, ms, threshold)
	printCalibrationOutput(out, threshold, elapsed)

	if opts.ChartPath != "" {
		if err := WriteChartFile(opts.ChartPath, ms, threshold); err != nil {
			fmt.Fprintf(out, "Warning: %v\n", err)
		} else {
			fmt.Fprintf(out, "Chart written to %s\n", opts.ChartPath)
		}
	}

	if opts.SaveProfile {
		profile := NewProfile()
		profile.AutoThreshold = threshold
		profile.Measurements = ms
		profile.CalibrationTime = elapsed.String()
		if err := profile.SaveProfile(opts.ProfilePath); err != nil {
			fmt.Fprintf(out, "Warning: %v\n", err)
		} else {
			printProfileSaved(out, opts.ProfilePath)
		}
	}
	return apperrors.ExitSuccess
}

func sortedUnique(lengths []int) []int {
	seen := make(map[int]bool, len(lengths))
	out := make([]int, 0, len(lengths))
	for _, n := range lengths {
		if n > 0 && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}
