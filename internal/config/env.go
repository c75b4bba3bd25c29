package config

import (
	"flag"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// envOverride maps one NTTMUL_* variable onto the flags it stands for.
type envOverride struct {
	key   string
	flags []string
	apply func(*AppConfig, string)
}

func intSetter(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			*dst(c) = n
		}
	}
}

func boolSetter(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

func stringSetter(dst func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *dst(c) = v }
}

var envOverrides = []envOverride{
	{"A", []string{"a"}, stringSetter(func(c *AppConfig) *string { return &c.A })},
	{"B", []string{"b"}, stringSetter(func(c *AppConfig) *string { return &c.B })},
	{"INPUT", []string{"input"}, stringSetter(func(c *AppConfig) *string { return &c.Input })},
	{"ENGINE", []string{"engine"}, stringSetter(func(c *AppConfig) *string { return &c.Engine })},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}},
	{"MAX_DIGITS", []string{"max-digits"}, intSetter(func(c *AppConfig) *int { return &c.MaxDigits })},
	{"AUTO_THRESHOLD", []string{"auto-threshold"}, intSetter(func(c *AppConfig) *int { return &c.AutoThreshold })},
	{"LOG_LEVEL", []string{"log-level"}, stringSetter(func(c *AppConfig) *string { return &c.LogLevel })},
	{"OUTPUT", []string{"o", "output"}, stringSetter(func(c *AppConfig) *string { return &c.OutputFile })},
	{"PORT", []string{"port"}, stringSetter(func(c *AppConfig) *string { return &c.Port })},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, stringSetter(func(c *AppConfig) *string { return &c.CalibrationProfile })},
	{"CHART", []string{"chart"}, stringSetter(func(c *AppConfig) *string { return &c.Chart })},
	{"VERBOSE", []string{"v", "verbose"}, boolSetter(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolSetter(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"q", "quiet"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"JSON", []string{"json"}, boolSetter(func(c *AppConfig) *bool { return &c.JSONOutput })},
	{"NO_COLOR", []string{"no-color"}, boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
	{"INTERACTIVE", []string{"interactive"}, boolSetter(func(c *AppConfig) *bool { return &c.Interactive })},
	{"TUI", []string{"tui"}, boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
	{"SERVER", []string{"server"}, boolSetter(func(c *AppConfig) *bool { return &c.ServerMode })},
	{"CALIBRATE", []string{"calibrate"}, boolSetter(func(c *AppConfig) *bool { return &c.Calibrate })},
}

// EnvKeys returns the supported variable names, prefix included.
func EnvKeys() []string {
	keys := make([]string, len(envOverrides))
	for i, o := range envOverrides {
		keys[i] = EnvPrefix + o.key
	}
	return keys
}

// parseBoolEnv accepts true/1/yes and false/0/no in any case. Anything else
// keeps def.
func parseBoolEnv(v string, def bool) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}

func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if slices.Contains(names, f.Name) {
			found = true
		}
	})
	return found
}

// applyEnvOverrides fills every setting whose flag was not given from the
// environment: flags > environment > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSet(fs, o.flags...) {
			continue
		}
		if v := os.Getenv(EnvPrefix + o.key); v != "" {
			o.apply(config, v)
		}
	}
}
