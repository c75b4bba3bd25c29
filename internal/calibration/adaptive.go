package calibration

import (
	"runtime"

	"github.com/agbru/nttmul/internal/config"
)

// GenerateLengths returns the operand lengths, in digits, a calibration
// run measures. They bracket the expected crossover on both sides.
func GenerateLengths() []int {
	lengths := []int{8, 16, 24, 32, 48, 64, 96, 128, 192, 256, 384, 512}
	if runtime.GOARCH == "386" || runtime.GOARCH == "arm" {
		lengths = append(lengths, 768, 1024)
	}
	return lengths
}

// GenerateQuickLengths is a reduced set around the default crossover.
func GenerateQuickLengths() []int {
	return []int{16, 32, 48, 64, 128}
}

// DefaultConcurrency bounds the lengths measured at once. Both engines of
// one length always run in the same goroutine, so their timings see the
// same load.
func DefaultConcurrency() int {
	return max(runtime.NumCPU()/4, 1)
}

// EstimateAutoThreshold delegates to config.EstimateAutoThreshold.
func EstimateAutoThreshold() int { return config.EstimateAutoThreshold() }
