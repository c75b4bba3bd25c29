package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_Memory(t *testing.T) {
	s := Sample()
	if s.MemPercent == 0 || s.MemTotal == 0 {
		t.Errorf("expected memory readings on a running system, got %+v", s)
	}
}

func TestStats_Busy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cpu  float64
		want bool
	}{
		{0, false},
		{BusyCPUPercent, false},
		{BusyCPUPercent + 1, true},
		{100, true},
	}
	for _, tt := range tests {
		if got := (Stats{CPUPercent: tt.cpu}).Busy(); got != tt.want {
			t.Errorf("Stats{CPUPercent: %v}.Busy() = %v, want %v", tt.cpu, got, tt.want)
		}
	}
}
