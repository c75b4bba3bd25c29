package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/format"
	"github.com/agbru/nttmul/internal/multiply"
	"github.com/agbru/nttmul/internal/orchestration"
	"github.com/agbru/nttmul/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultEngine is the engine used until the user picks another.
	DefaultEngine string
	// Timeout bounds each multiplication.
	Timeout time.Duration
	Options multiply.Options
	// Verbose prints products without truncation.
	Verbose bool
}

// REPL is an interactive multiplication session.
type REPL struct {
	config        REPLConfig
	factory       multiply.Factory
	currentEngine string
	in            io.Reader
	out           io.Writer
}

// NewREPL creates a session over the engines of factory.
func NewREPL(factory multiply.Factory, config REPLConfig) *REPL {
	current := config.DefaultEngine
	if _, err := factory.Get(current); err != nil {
		current = multiply.EngineNTT
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Minute
	}
	return &REPL{
		config:        config,
		factory:       factory,
		currentEngine: current,
		in:            os.Stdin,
		out:           os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and runs commands until "exit", end of input or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"mul> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(ctx, input) {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sNTT Multiplier - Interactive Mode%s                    %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %smul <a> <b>%s     - Multiply with the current engine\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<a> * <b>%s       - Same as mul\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sengine <name>%s   - Change engine (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %scompare <a> <b>%s - Run every engine and check they agree\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s            - List available engines\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s          - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand runs one line. It returns false when the session ends.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 3 && (parts[1] == "*" || parts[1] == "x") {
		r.cmdMul(ctx, []string{parts[0], parts[2]})
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	switch cmd {
	case "mul", "m":
		r.cmdMul(ctx, args)
	case "engine", "e":
		r.cmdEngine(args)
	case "compare", "cmp":
		r.cmdCompare(ctx, args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// parseOperands validates two decimal operands against the configured
// capacity.
func (r *REPL) parseOperands(usage string, args []string) (a, b digits.Sequence, ok bool) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return a, b, false
	}
	capacity := r.config.Options.MaxDigits
	if capacity <= 0 {
		capacity = multiply.MaxOperandDigits
	}
	var err error
	if a, err = digits.ParseWithCapacity(args[0], capacity); err == nil {
		b, err = digits.ParseWithCapacity(args[1], capacity)
	}
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid operand: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return a, b, false
	}
	return a, b, true
}

func (r *REPL) cmdMul(ctx context.Context, args []string) {
	a, b, ok := r.parseOperands("mul <a> <b>", args)
	if !ok {
		return
	}
	engine, err := r.factory.Get(r.currentEngine)
	if err != nil {
		fmt.Fprintf(r.out, "%sEngine not found: %s%s\n", ui.ColorRed(), r.currentEngine, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Multiplying %s%d%s x %s%d%s digits with %s%s%s...\n",
		ui.ColorMagenta(), a.Len(), ui.ColorReset(),
		ui.ColorMagenta(), b.Len(), ui.ColorReset(),
		ui.ColorCyan(), engine.Name(), ui.ColorReset())

	results := orchestration.ExecuteMultiplications(ctx, []multiply.Engine{engine},
		orchestration.Request{A: a, B: b, Options: r.config.Options}, CLIProgressReporter{}, r.out)
	res := results[0]
	if res.Err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		return
	}

	preview, truncated := FormatProductPreview(res.Product, r.config.Verbose)
	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits: %s%d%s\n", ui.ColorCyan(), len(FormatQuietResult(res)), ui.ColorReset())
	if truncated {
		fmt.Fprintf(r.out, "  Product = %s%s%s (truncated)\n", ui.ColorGreen(), preview, ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "  Product = %s%s%s\n", ui.ColorGreen(), preview, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdEngine(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: engine <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	if _, err := r.factory.Get(name); err != nil {
		fmt.Fprintf(r.out, "%sUnknown engine: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentEngine = name
	fmt.Fprintf(r.out, "Engine changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdCompare(ctx context.Context, args []string) {
	a, b, ok := r.parseOperands("compare <a> <b>", args)
	if !ok {
		return
	}
	engines := orchestration.GetEnginesToRun(orchestration.AllEngines, r.factory)

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "\n%sComparison for %d x %d digits:%s\n", ui.ColorBold(), a.Len(), b.Len(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	results := orchestration.ExecuteMultiplications(ctx, engines,
		orchestration.Request{A: a, B: b, Options: r.config.Options}, orchestration.NullProgressReporter{}, io.Discard)

	var reference *orchestration.MultiplicationResult
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Engine, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		if reference == nil {
			reference = &results[i]
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if !res.Product.Equal(reference.Product) {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-12s%s: %s%12s%s %s\n",
			ui.ColorYellow(), res.Engine, ui.ColorReset(),
			ui.ColorCyan(), displayDuration(res.Duration), ui.ColorReset(), status)
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable engines:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.currentEngine {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	opts := r.config.Options
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Engine:         %s%s%s\n", ui.ColorCyan(), r.currentEngine, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Max digits:     %s%d%s\n", ui.ColorCyan(), opts.MaxDigits, ui.ColorReset())
	fmt.Fprintf(r.out, "  Auto threshold: %s%d%s digits\n", ui.ColorCyan(), opts.AutoThreshold, ui.ColorReset())
	fmt.Fprintln(r.out)
}
