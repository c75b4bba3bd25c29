package calibration

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// NewChart returns a line chart of both engines' median times, in
// microseconds, against operand length.
func NewChart(ms []Measurement, crossover int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Schoolbook vs NTT",
			Subtitle: fmt.Sprintf("auto threshold: %d digits", crossover),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "digits"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "µs"}),
	)

	xs := make([]string, len(ms))
	school := make([]opts.LineData, len(ms))
	fast := make([]opts.LineData, len(ms))
	for i, m := range ms {
		xs[i] = strconv.Itoa(m.Digits)
		school[i] = opts.LineData{Value: micros(m.Schoolbook.Nanoseconds())}
		fast[i] = opts.LineData{Value: micros(m.NTT.Nanoseconds())}
	}
	line.SetXAxis(xs).
		AddSeries("schoolbook", school).
		AddSeries("ntt", fast)
	return line
}

func micros(ns int64) float64 { return float64(ns) / 1e3 }

// WriteChart renders the chart as a standalone HTML page.
func WriteChart(w io.Writer, ms []Measurement, crossover int) error {
	if err := NewChart(ms, crossover).Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteChartFile writes the chart page to path.
func WriteChartFile(path string, ms []Measurement, crossover int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()
	if err := WriteChart(f, ms, crossover); err != nil {
		return err
	}
	return f.Close()
}
