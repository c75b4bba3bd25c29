// Package config turns command-line flags and NTTMUL_* environment variables
// into a validated AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/multiply"
)

// EnvPrefix prefixes every environment variable read by nttmul.
const EnvPrefix = "NTTMUL_"

// Defaults applied when neither a flag nor the environment sets a value.
const (
	DefaultEngine   = multiply.EngineNTT
	DefaultTimeout  = 5 * time.Minute
	DefaultPort     = "8080"
	DefaultLogLevel = "info"
	// EngineAll runs every registered engine and compares their products.
	EngineAll = "all"
)

// SupportedShells lists the shells accepted by --completion.
var SupportedShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig holds every setting of a run.
type AppConfig struct {
	// A and B are operands given on the command line. When both are empty
	// the operands are read from Input or standard input.
	A, B string
	// Input names a file holding the two operands. Empty means stdin.
	Input string
	// Engine is a registered engine name, or "all".
	Engine  string
	Timeout time.Duration
	// MaxDigits caps each operand. It may only lower the built-in limit.
	MaxDigits int
	// AutoThreshold overrides the auto engine crossover. Zero defers to the
	// calibration profile, then to the built-in default.
	AutoThreshold int

	Verbose  bool
	Details  bool
	Quiet    bool
	LogLevel string

	OutputFile string
	JSONOutput bool
	NoColor    bool

	Interactive bool
	TUI         bool
	ServerMode  bool
	Port        string

	Calibrate          bool
	CalibrationProfile string
	// Chart is the HTML file a calibration run renders its timings to.
	Chart string

	Completion  string
	ShowVersion bool
}

// ToOptions returns the engine options for this configuration.
func (c AppConfig) ToOptions() multiply.Options {
	return multiply.Options{
		MaxDigits:     c.MaxDigits,
		AutoThreshold: c.AutoThreshold,
	}
}

// HasOperands reports whether both operands came from flags.
func (c AppConfig) HasOperands() bool {
	return c.A != "" || c.B != ""
}

// Validate checks the configuration against the registered engine names.
func (c AppConfig) Validate(engines []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be strictly positive, got %s", c.Timeout)
	}
	if c.MaxDigits < 1 || c.MaxDigits > multiply.MaxOperandDigits {
		return apperrors.NewConfigError("max-digits must be within [1, %d], got %d", multiply.MaxOperandDigits, c.MaxDigits)
	}
	if c.AutoThreshold < 0 {
		return apperrors.NewConfigError("auto threshold cannot be negative: %d", c.AutoThreshold)
	}
	if c.Engine != EngineAll && !slices.Contains(engines, c.Engine) {
		return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: 'all' or [%s]", c.Engine, strings.Join(engines, ", "))
	}
	for name, operand := range map[string]string{"a": c.A, "b": c.B} {
		if strings.TrimLeft(operand, "0123456789") != "" {
			return apperrors.NewConfigError("operand -%s must contain decimal digits only", name)
		}
	}
	if c.Completion != "" && !slices.Contains(SupportedShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q for completion, use one of %s", c.Completion, strings.Join(SupportedShells, ", "))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	if c.Input != "" && c.HasOperands() {
		return apperrors.NewConfigError("-input cannot be combined with -a/-b")
	}
	return nil
}

// ParseConfig parses args, applies environment overrides for flags left
// unset, and validates the result. Usage and errors go to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer, engines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	engineHelp := fmt.Sprintf("Engine to use: one of [%s], or 'all' to compare them.", strings.Join(engines, ", "))

	config := AppConfig{}
	fs.StringVar(&config.A, "a", "", "First operand (decimal digits).")
	fs.StringVar(&config.B, "b", "", "Second operand (decimal digits).")
	fs.StringVar(&config.Input, "input", "", "Read both operands from this file instead of stdin.")
	fs.StringVar(&config.Engine, "engine", DefaultEngine, engineHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of a multiplication.")
	fs.IntVar(&config.MaxDigits, "max-digits", multiply.MaxOperandDigits, "Largest accepted operand, in digits.")
	fs.IntVar(&config.AutoThreshold, "auto-threshold", 0, "Operand length at or below which the auto engine uses schoolbook multiplication (0 = calibrated or built-in).")

	fs.BoolVar(&config.Verbose, "v", false, "Verbose logging.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Details, "d", false, "Display timing, sizes and host details.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.Quiet, "q", false, "Print only the product.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Alias for -q.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (trace, debug, info, warn, error).")

	fs.StringVar(&config.OutputFile, "o", "", "Write the product to this file.")
	fs.StringVar(&config.OutputFile, "output", "", "Alias for -o.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Print the result as JSON.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colors (NO_COLOR is also honored).")

	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the terminal dashboard.")
	fs.BoolVar(&config.ServerMode, "server", false, "Serve multiplications over HTTP.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")

	fs.BoolVar(&config.Calibrate, "calibrate", false, "Measure the schoolbook/NTT crossover and save a profile.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Calibration profile path (default ~/.nttmul_calibration.json).")
	fs.StringVar(&config.Chart, "chart", "", "Write an HTML chart of the calibration timings to this file.")

	fs.StringVar(&config.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errorWriter, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("unexpected positional arguments")
	}

	applyEnvOverrides(&config, fs)

	config.Engine = strings.ToLower(config.Engine)
	config.LogLevel = strings.ToLower(config.LogLevel)
	if config.Verbose && !isFlagSet(fs, "log-level") && config.LogLevel == DefaultLogLevel {
		config.LogLevel = "debug"
	}
	if err := config.Validate(engines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}
