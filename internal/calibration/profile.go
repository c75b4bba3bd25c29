// Package calibration measures the schoolbook/NTT crossover of the auto
// engine on the current machine and caches it in a profile file.
package calibration

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/nttmul/internal/metrics"
)

// Profile is the cached result of a calibration run, stamped with the
// machine it was measured on.
type Profile struct {
	Host     metrics.HostInfo `json:"host"`
	WordSize int              `json:"word_size"`

	// AutoThreshold is the measured crossover, in operand digits.
	AutoThreshold int           `json:"auto_threshold"`
	Measurements  []Measurement `json:"measurements,omitempty"`

	CalibratedAt    time.Time `json:"calibrated_at"`
	CalibrationTime string    `json:"calibration_time"`
	ProfileVersion  int       `json:"profile_version"`
}

const (
	// CurrentProfileVersion changes whenever the profile layout does.
	CurrentProfileVersion = 1

	DefaultProfileFileName = ".nttmul_calibration.json"
)

// GetDefaultProfilePath returns the profile path in the home directory, or
// in the working directory when there is no home.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// NewProfile returns an empty profile for this machine.
func NewProfile() *Profile {
	return &Profile{
		Host:           metrics.Host(),
		WordSize:       bits.UintSize,
		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

// LoadProfile reads the profile at path, or at the default path when path
// is empty.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// SaveProfile writes p as indented JSON, creating parent directories.
func (p *Profile) SaveProfile(path string) error {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// IsValid reports whether p was measured on a machine like this one with
// the current profile layout.
func (p *Profile) IsValid() bool {
	if p == nil || p.ProfileVersion != CurrentProfileVersion || p.AutoThreshold <= 0 {
		return false
	}
	return p.WordSize == bits.UintSize && p.Host.Matches(metrics.Host())
}

// IsStale reports whether p is older than maxAge.
func (p *Profile) IsStale(maxAge time.Duration) bool {
	return p == nil || time.Since(p.CalibratedAt) > maxAge
}

func (p *Profile) String() string {
	if p == nil {
		return "<nil profile>"
	}
	return fmt.Sprintf("Profile{Host: %s, Auto threshold: %d digits, Points: %d, Calibrated: %s}",
		p.Host, p.AutoThreshold, len(p.Measurements), p.CalibratedAt.Format(time.RFC3339))
}

// LoadAutoThreshold returns the cached crossover of the profile at path,
// or 0 when there is no usable profile.
func LoadAutoThreshold(path string) int {
	p, err := LoadProfile(path)
	if err != nil || !p.IsValid() {
		return 0
	}
	return p.AutoThreshold
}

// ProfileExists reports whether a profile file is present.
func ProfileExists(path string) bool {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	_, err := os.Stat(path)
	return err == nil
}
