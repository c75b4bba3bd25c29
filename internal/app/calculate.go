package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/agbru/nttmul/internal/cli"
	"github.com/agbru/nttmul/internal/digits"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/metrics"
	"github.com/agbru/nttmul/internal/orchestration"
)

// runCalculate multiplies one pair of operands. Operands come from -a/-b,
// the -input file or the input stream. out carries only the product; every
// other line goes to ErrWriter.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	opts := a.Config.ToOptions().Normalize()
	prompts := a.ErrWriter
	if a.Config.Quiet || a.Config.JSONOutput {
		prompts = nil
	}

	x, y, session, err := a.readOperands(opts.MaxDigits, prompts, out)
	if err != nil {
		return a.handleInputError(err)
	}

	engines := orchestration.GetEnginesToRun(a.Config.Engine, a.Factory)
	if len(engines) == 0 {
		fmt.Fprintf(a.ErrWriter, "Configuration error: no engine named %q\n", a.Config.Engine)
		return apperrors.ExitErrorConfig
	}

	req := orchestration.Request{A: x, B: y, Options: opts}
	compare := len(engines) > 1
	msgOut := a.ErrWriter
	narrate := a.Config.Details || a.Config.Verbose || compare
	if a.Config.Quiet {
		msgOut, narrate = io.Discard, false
	}

	if narrate {
		cli.PrintExecutionConfig(a.Config, req, msgOut)
		cli.PrintExecutionMode(engines, msgOut)
	}

	var reporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	if narrate {
		reporter = cli.CLIProgressReporter{}
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	results := orchestration.ExecuteMultiplications(ctx, engines, req, reporter, msgOut)
	memory := collector.Snapshot().Since(before)

	presOpts := orchestration.PresentationOptions{
		LenA:    x.Len(),
		LenB:    y.Len(),
		Details: a.Config.Details,
		Quiet:   a.Config.Quiet,
		Verbose: a.Config.Verbose,
	}

	var code int
	if narrate || compare {
		code = orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, msgOut)
		if a.Config.Details {
			cli.DisplayMemoryStats(memory, msgOut)
			cli.DisplayHostInfo(metrics.Host(), msgOut)
		}
	} else if err := results[0].Err; err != nil {
		code = apperrors.HandleCalculationError(err, results[0].Duration, a.ErrWriter, cli.CLIColorProvider{})
	}
	if code != apperrors.ExitSuccess {
		return code
	}

	// Results are sorted fastest first once analyzed.
	best := results[0]
	if session != nil && !a.Config.JSONOutput {
		if err := session.WriteProduct(best.Product); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing product: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return a.saveResult(best, presOpts, msgOut)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		JSON:       a.Config.JSONOutput,
	}
	if err := cli.DisplayResultWithConfig(out, msgOut, best, presOpts, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// readOperands parses the -a/-b flags, or opens a stream session on the
// -input file or In. The session is nil in flag mode.
func (a *Application) readOperands(capacity int, prompts, out io.Writer) (x, y digits.Sequence, session *cli.StreamSession, err error) {
	if a.Config.HasOperands() {
		if x, err = digits.ParseWithCapacity(a.Config.A, capacity); err != nil {
			return x, y, nil, fmt.Errorf("operand -a: %w", err)
		}
		if y, err = digits.ParseWithCapacity(a.Config.B, capacity); err != nil {
			return x, y, nil, fmt.Errorf("operand -b: %w", err)
		}
		return x, y, nil, nil
	}

	in := a.In
	if a.Config.Input != "" {
		f, err := os.Open(a.Config.Input)
		if err != nil {
			return x, y, nil, apperrors.NewConfigError("cannot open input: %v", err)
		}
		defer f.Close()
		in = f
	}
	session = cli.NewStreamSession(in, out, prompts, capacity)
	x, y, err = session.ReadOperands()
	return x, y, session, err
}

func (a *Application) handleInputError(err error) int {
	if errors.Is(err, io.EOF) {
		err = errors.New("no operand on input")
	}
	fmt.Fprintf(a.ErrWriter, "%sInput error: %v%s\n", cli.CLIColorProvider{}.Red(), err, cli.CLIColorProvider{}.Reset())
	if errors.Is(err, digits.ErrInputOverflow) {
		return apperrors.ExitErrorCapacity
	}
	return apperrors.ExitCodeFor(err)
}

// saveResult writes the product file in stream mode, where the product has
// already been printed.
func (a *Application) saveResult(res orchestration.MultiplicationResult, opts orchestration.PresentationOptions, msgOut io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	if err := cli.WriteResultToFile(res, opts, a.Config.OutputFile); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	fmt.Fprintf(msgOut, "✓ Result saved to: %s\n", a.Config.OutputFile)
	return apperrors.ExitSuccess
}
