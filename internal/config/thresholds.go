package config

import (
	"math/bits"

	"github.com/agbru/nttmul/internal/multiply"
)

// Auto threshold resolution, highest priority first:
//  1. -auto-threshold or NTTMUL_AUTO_THRESHOLD
//  2. the cached calibration profile
//  3. EstimateAutoThreshold

// Threshold sources reported by ResolveAutoThreshold.
const (
	SourceConfigured  = "configured"
	SourceCalibration = "calibration profile"
	SourceEstimate    = "estimate"
)

// ResolveAutoThreshold fills cfg.AutoThreshold when it was not configured,
// preferring a positive calibrated value. It returns the updated config and
// where the threshold came from.
func ResolveAutoThreshold(cfg AppConfig, calibrated int) (AppConfig, string) {
	switch {
	case cfg.AutoThreshold > 0:
		return cfg, SourceConfigured
	case calibrated > 0:
		cfg.AutoThreshold = calibrated
		return cfg, SourceCalibration
	default:
		cfg.AutoThreshold = EstimateAutoThreshold()
		return cfg, SourceEstimate
	}
}

// EstimateAutoThreshold guesses the schoolbook/NTT crossover without
// measuring. Field products need a 128-bit intermediate, which 32-bit
// targets emulate, so the crossover moves up there.
func EstimateAutoThreshold() int {
	if bits.UintSize == 32 {
		return 2 * multiply.DefaultAutoThreshold
	}
	return multiply.DefaultAutoThreshold
}
