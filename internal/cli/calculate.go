package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/nttmul/internal/config"
	"github.com/agbru/nttmul/internal/multiply"
	"github.com/agbru/nttmul/internal/orchestration"
	"github.com/agbru/nttmul/internal/ui"
)

// PrintExecutionConfig shows the operand sizes, the timeout, the runtime
// environment and the engine tuning of a run.
func PrintExecutionConfig(cfg config.AppConfig, req orchestration.Request, out io.Writer) {
	opts := req.Options
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Multiplying %s%d%s by %s%d%s digits with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), req.A.Len(), ui.ColorReset(),
		ui.ColorMagenta(), req.B.Len(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Limits: operands up to %s%d%s digits, auto crossover at %s%d%s digits.\n",
		ui.ColorCyan(), opts.MaxDigits, ui.ColorReset(), ui.ColorCyan(), opts.AutoThreshold, ui.ColorReset())
	if plan, err := multiply.PlanFor(req.A.Len(), req.B.Len()); err == nil {
		fmt.Fprintf(out, "Transform: %s2^%d%s points for a product of up to %d digits.\n",
			ui.ColorCyan(), plan.LogSize, ui.ColorReset(), plan.TargetLen)
	}
}

// PrintExecutionMode announces a single run or a comparison.
func PrintExecutionMode(engines []multiply.Engine, out io.Writer) {
	var modeDesc string
	if len(engines) > 1 {
		modeDesc = "Parallel comparison of all engines"
	} else {
		modeDesc = fmt.Sprintf("Single multiplication with the %s%s%s engine",
			ui.ColorGreen(), engines[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
