package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/nttmul/internal/digits"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/format"
)

const (
	// previewEdges is the number of digits kept at each end of a long product.
	previewEdges = 30
	barWidth     = 24
)

func (m Model) renderInputs() string {
	lines := make([]string, 0, numFields+1)
	for i := range m.inputs {
		line := m.inputs[i].View()
		if n := len(m.inputs[i].Value()); n > 0 {
			line += labelStyle.Render(fmt.Sprintf("  (%s digits)", format.FormatNumberString(fmt.Sprint(n))))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderEngines lists the engines with the selection marker and, while a
// run is active, a progress bar per participating engine.
func (m Model) renderEngines() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Engines: "))
	for i, name := range m.engines {
		if i > 0 {
			b.WriteString(" ")
		}
		if i == m.engineIndex {
			b.WriteString(selectedEngineStyle.Render(name))
		} else {
			b.WriteString(engineStyle.Render(name))
		}
	}

	if !m.run.running {
		return b.String()
	}
	for i, name := range m.run.engines {
		fmt.Fprintf(&b, "\n%-12s %s %5.1f%%", name, renderBar(m.run.progress[i], barWidth), m.run.progress[i]*100)
	}
	fmt.Fprintf(&b, "\n%s %s", statusRunningStyle.Render("Running"),
		labelStyle.Render(fmt.Sprintf("%.0f%% ETA %s", m.run.average*100, format.FormatETA(m.run.eta))))
	return b.String()
}

func renderBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return barStyle.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// renderResult shows the agreed product, the per-engine timings of the
// last run, or its error.
func (m Model) renderResult(width int) string {
	switch {
	case m.run.running:
		return labelStyle.Render("Multiplying...")
	case m.run.err != nil && m.run.final == nil:
		return statusErrorStyle.Render("Error: ") + errorStyle.Render(m.run.err.Error())
	case m.run.final == nil:
		return labelStyle.Render("Enter two operands and press enter.")
	}

	var b strings.Builder
	final := m.run.final
	product := digits.Format(final.Product)
	status := statusDoneStyle.Render("Done")
	if m.run.exitCode == apperrors.ExitErrorMismatch {
		status = statusErrorStyle.Render("Engines disagree")
	}
	fmt.Fprintf(&b, "%s  %s %s  %s %s x %s  %s %s\n", status,
		labelStyle.Render("engine"), valueStyle.Render(final.Engine),
		labelStyle.Render("operands"), format.FormatNumberString(fmt.Sprint(m.run.lenA)), format.FormatNumberString(fmt.Sprint(m.run.lenB)),
		labelStyle.Render("digits"), valueStyle.Render(format.FormatNumberString(fmt.Sprint(len(product)))))

	if len(m.run.results) > 1 {
		for _, res := range m.run.results {
			outcome := successStyle.Render("ok")
			if res.Err != nil {
				outcome = errorStyle.Render(res.Err.Error())
			}
			fmt.Fprintf(&b, "  %-12s %12s  %s\n", res.Engine, format.FormatExecutionDuration(res.Duration), outcome)
		}
	} else {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("time"), format.FormatExecutionDuration(final.Duration))
	}

	b.WriteString(valueStyle.Render(wrapDigits(productPreview(product), width)))
	return b.String()
}

// productPreview shortens products too long to read on screen.
func productPreview(product string) string {
	short, _ := format.TruncateDigits(product, 4*previewEdges, previewEdges)
	return short
}

// wrapDigits breaks s into lines of at most width runes.
func wrapDigits(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
