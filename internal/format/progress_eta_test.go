package format

import (
	"testing"
	"time"
)

func TestProgressState_AveragesAcrossEngines(t *testing.T) {
	t.Parallel()
	// A comparison of four engines: ntt half way through its transforms,
	// schoolbook done, bigint and auto not started.
	ps := NewProgressState(4)
	ps.Update(0, 0.60)
	ps.Update(1, 1.0)

	if got := ps.CalculateAverage(); got != 0.40 {
		t.Errorf("average = %v, want 0.40", got)
	}

	ps.Update(4, 1.0)
	ps.Update(-1, 1.0)
	if got := ps.CalculateAverage(); got != 0.40 {
		t.Errorf("out-of-range updates changed the average to %v", got)
	}

	if got := NewProgressState(0).CalculateAverage(); got != 0 {
		t.Errorf("empty comparison average = %v, want 0", got)
	}
}

func TestProgressWithETA_EstimateFromRate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		engines  int
		progress []float64
		rate     float64
		want     time.Duration
	}{
		{"no rate yet", 1, []float64{0.3}, 0, 0},
		{"single engine", 1, []float64{0.5}, 0.1, 5 * time.Second},
		{"two engines", 2, []float64{0.5, 1.0}, 0.25, time.Second},
		{"finished", 2, []float64{1.0, 1.0}, 0.5, 0},
		{"capped", 1, []float64{0.001}, 1e-9, maxETA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewProgressWithETA(tt.engines)
			for i, v := range tt.progress {
				p.Update(i, v)
			}
			p.progressRate = tt.rate
			if got := p.GetETA(); got != tt.want {
				t.Errorf("GetETA() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateWithETA_WarmUp(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	progress, eta := p.UpdateWithETA(0, 0.25)
	if progress != 0.125 {
		t.Errorf("progress = %v, want 0.125", progress)
	}
	if eta != 0 {
		t.Errorf("ETA during warm-up = %v, want 0", eta)
	}
	if progress, _ = p.UpdateWithETA(1, 0.75); progress != 0.5 {
		t.Errorf("progress = %v, want 0.5", progress)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{time.Hour + 15*time.Minute, "1h15m"},
		{2 * time.Hour, "2h"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 4)
	if want := " 50.00% [██░░] ETA: 30s"; got != want {
		t.Errorf("FormatProgressBarWithETA = %q, want %q", got, want)
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░░"},
		{0.65, "███░░"},
		{1, "█████"},
		{1.2, "█████"},
		{-0.1, "░░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, 5); got != tt.want {
			t.Errorf("ProgressBar(%v, 5) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"", ""},
		{"123", "123"},
		{"56088", "56,088"},
		{"121932631112635269", "121,932,631,112,635,269"},
		{"-1234", "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.in); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in        string
		limit     int
		edges     int
		want      string
		truncated bool
	}{
		{"56088", 10, 2, "56088", false},
		{"12345678901234567890", 10, 3, "123...890", true},
		{"1234567890", 10, 3, "1234567890", false},
		{"123456", 4, 3, "123456", false},
	}
	for _, tt := range tests {
		got, truncated := TruncateDigits(tt.in, tt.limit, tt.edges)
		if got != tt.want || truncated != tt.truncated {
			t.Errorf("TruncateDigits(%q, %d, %d) = (%q, %v), want (%q, %v)",
				tt.in, tt.limit, tt.edges, got, truncated, tt.want, tt.truncated)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{8 << 20, "8.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
