package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/nttmul/internal/format"
	"github.com/agbru/nttmul/internal/ui"
)

// printCalibrationResults prints one row per measured length and marks the
// crossover.
func printCalibrationResults(out io.Writer, ms []Measurement, crossover int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  Digits\t│ Schoolbook\t│ NTT\t│ Faster\n")
	fmt.Fprintf(tw, "  %s\t┼%s\t┼%s\t┼%s\n",
		strings.Repeat("─", 8), strings.Repeat("─", 12), strings.Repeat("─", 12), strings.Repeat("─", 12))
	for _, m := range ms {
		winner := "schoolbook"
		if m.NTTWins() {
			winner = "ntt"
		}
		marker := ""
		if m.Digits == crossover {
			marker = fmt.Sprintf(" %s(crossover)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %d\t│ %s\t│ %s\t│ %s%s\n",
			m.Digits, benchDuration(m.Schoolbook), benchDuration(m.NTT), winner, marker)
	}
	tw.Flush()
}

// printCalibrationOutput prints the resulting auto threshold.
func printCalibrationOutput(out io.Writer, crossover int, elapsed time.Duration) {
	fmt.Fprintf(out, "\n%sAuto threshold%s: %s%d%s digits (measured in %s)\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), crossover, ui.ColorReset(),
		format.FormatExecutionDuration(elapsed))
}

func printProfileSaved(out io.Writer, path string) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	fmt.Fprintf(out, "%s✓ Profile saved to %s%s\n", ui.ColorGreen(), path, ui.ColorReset())
}

func benchDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}
