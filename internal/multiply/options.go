package multiply

// Options tunes a multiplication.
type Options struct {
	// MaxDigits bounds each operand length. Zero means MaxOperandDigits.
	MaxDigits int
	// AutoThreshold is the schoolbook/NTT crossover used by the auto engine.
	// Zero means DefaultAutoThreshold.
	AutoThreshold int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return normalizeOptions(Options{})
}

// Normalize returns opts with zero fields replaced by their defaults.
func (opts Options) Normalize() Options {
	return normalizeOptions(opts)
}

func normalizeOptions(opts Options) Options {
	if opts.MaxDigits <= 0 {
		opts.MaxDigits = MaxOperandDigits
	}
	if opts.AutoThreshold <= 0 {
		opts.AutoThreshold = DefaultAutoThreshold
	}
	return opts
}
