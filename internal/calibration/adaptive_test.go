package calibration

import (
	"slices"
	"testing"

	"github.com/agbru/nttmul/internal/multiply"
)

func TestGenerateLengths(t *testing.T) {
	t.Parallel()
	for name, lengths := range map[string][]int{
		"full":  GenerateLengths(),
		"quick": GenerateQuickLengths(),
	} {
		if !slices.IsSorted(lengths) {
			t.Errorf("%s lengths not sorted: %v", name, lengths)
		}
		if lengths[0] >= multiply.DefaultAutoThreshold || lengths[len(lengths)-1] <= multiply.DefaultAutoThreshold {
			t.Errorf("%s lengths %v do not bracket the default threshold %d", name, lengths, multiply.DefaultAutoThreshold)
		}
	}
}

func TestDefaultConcurrency(t *testing.T) {
	t.Parallel()
	if DefaultConcurrency() < 1 {
		t.Errorf("DefaultConcurrency() = %d, want at least 1", DefaultConcurrency())
	}
}

func TestEstimateAutoThreshold(t *testing.T) {
	t.Parallel()
	if got := EstimateAutoThreshold(); got < multiply.DefaultAutoThreshold {
		t.Errorf("EstimateAutoThreshold() = %d, want at least %d", got, multiply.DefaultAutoThreshold)
	}
}
