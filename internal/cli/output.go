// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatProductPreview].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agbru/nttmul/internal/digits"
	"github.com/agbru/nttmul/internal/format"
	"github.com/agbru/nttmul/internal/orchestration"
	"github.com/agbru/nttmul/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the product (empty for no file output).
	OutputFile string
	// Quiet prints the bare product only.
	Quiet bool
	// JSON prints a JSON document instead of the bare product.
	JSON bool
}

// ResultDocument is the JSON form of a multiplication result.
type ResultDocument struct {
	Engine     string `json:"engine"`
	Product    string `json:"product"`
	Digits     int    `json:"digits"`
	LenA       int    `json:"len_a"`
	LenB       int    `json:"len_b"`
	Duration   string `json:"duration"`
	DurationNs int64  `json:"duration_ns"`
}

// NewResultDocument builds the JSON form of res.
func NewResultDocument(res orchestration.MultiplicationResult, opts orchestration.PresentationOptions) ResultDocument {
	product := digits.Format(res.Product)
	return ResultDocument{
		Engine:     res.Engine,
		Product:    product,
		Digits:     len(product),
		LenA:       opts.LenA,
		LenB:       opts.LenB,
		Duration:   res.Duration.String(),
		DurationNs: res.Duration.Nanoseconds(),
	}
}

// WriteResultToFile writes the product with a commented header to path,
// creating missing parent directories.
func WriteResultToFile(res orchestration.MultiplicationResult, opts orchestration.PresentationOptions, path string) error {
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	product := digits.Format(res.Product)
	fmt.Fprintf(file, "# Multiplication Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Engine: %s\n", res.Engine)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	fmt.Fprintf(file, "# Operand digits: %d x %d\n", opts.LenA, opts.LenB)
	fmt.Fprintf(file, "# Product digits: %d\n", len(product))
	fmt.Fprintf(file, "\n%s\n", product)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult returns the product as scripts expect it: digits only.
func FormatQuietResult(res orchestration.MultiplicationResult) string {
	return digits.Format(res.Product)
}

// FormatProductPreview returns the product with thousand separators, or its
// edges when it is longer than TruncationLimit and full is false. The second
// result reports truncation.
func FormatProductPreview(product digits.Sequence, full bool) (string, bool) {
	s := digits.Format(product)
	if !full {
		if short, truncated := format.TruncateDigits(s, TruncationLimit, DisplayEdges); truncated {
			return short, true
		}
	}
	return format.FormatNumberString(s), false
}

// DisplayQuietResult writes the bare product and a newline.
func DisplayQuietResult(out io.Writer, res orchestration.MultiplicationResult) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayJSONResult writes res as an indented JSON document.
func DisplayJSONResult(out io.Writer, res orchestration.MultiplicationResult, opts orchestration.PresentationOptions) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(NewResultDocument(res, opts))
}

// DisplayResult prints the detailed analysis of a product when opts.Details
// is set, then the product itself when opts.ShowValue is set.
func DisplayResult(res orchestration.MultiplicationResult, opts orchestration.PresentationOptions, out io.Writer) {
	product := digits.Format(res.Product)
	numDigits := len(product)

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		durationStr := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			durationStr = "< 1µs"
		}
		fmt.Fprintf(out, "Engine                : %s%s%s\n", ui.ColorBlue(), res.Engine, ui.ColorReset())
		fmt.Fprintf(out, "Calculation time      : %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
		fmt.Fprintf(out, "Operand digits        : %s%s%s x %s%s%s\n",
			ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(opts.LenA)), ui.ColorReset(),
			ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(opts.LenB)), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits      : %s%s%s\n",
			ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(numDigits)), ui.ColorReset())
		if numDigits > 6 {
			fmt.Fprintf(out, "Scientific notation   : %s%c.%se%d%s\n",
				ui.ColorCyan(), product[0], product[1:6], numDigits-1, ui.ColorReset())
		}
	}

	if !opts.ShowValue {
		return
	}

	preview, truncated := FormatProductPreview(res.Product, opts.Verbose)
	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "Product (truncated) = %s%s%s\n", ui.ColorGreen(), preview, ui.ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-o%s option to save the full value)\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "Product = %s%s%s\n", ui.ColorGreen(), preview, ui.ColorReset())
}

// DisplayResultWithConfig writes the product to out in the configured form
// and saves it to the output file when one is set. Confirmation messages go
// to msgOut so that out carries only the product.
func DisplayResultWithConfig(out, msgOut io.Writer, res orchestration.MultiplicationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.JSON {
		if err := DisplayJSONResult(out, res, opts); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else {
		DisplayQuietResult(out, res)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(res, opts, config.OutputFile); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(msgOut, "%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
