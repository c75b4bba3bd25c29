package calibration

import (
	"math/bits"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/agbru/nttmul/internal/metrics"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()
	profile := NewProfile()

	if !reflect.DeepEqual(profile.Host, metrics.Host()) {
		t.Errorf("Host = %v, want %v", profile.Host, metrics.Host())
	}
	if profile.WordSize != bits.UintSize {
		t.Errorf("WordSize = %d, want %d", profile.WordSize, bits.UintSize)
	}
	if profile.ProfileVersion != CurrentProfileVersion {
		t.Errorf("ProfileVersion = %d, want %d", profile.ProfileVersion, CurrentProfileVersion)
	}
	if profile.CalibratedAt.IsZero() {
		t.Error("CalibratedAt should be set")
	}
}

func TestProfileSaveLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "profile.json")

	profile := NewProfile()
	profile.AutoThreshold = 64
	profile.Measurements = []Measurement{
		{Digits: 32, Schoolbook: 3 * time.Microsecond, NTT: 5 * time.Microsecond},
		{Digits: 64, Schoolbook: 12 * time.Microsecond, NTT: 9 * time.Microsecond},
	}
	profile.CalibrationTime = "1.2s"

	if err := profile.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	loaded, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if loaded.AutoThreshold != 64 {
		t.Errorf("AutoThreshold = %d, want 64", loaded.AutoThreshold)
	}
	if len(loaded.Measurements) != 2 || loaded.Measurements[1] != profile.Measurements[1] {
		t.Errorf("Measurements = %v, want %v", loaded.Measurements, profile.Measurements)
	}
	if !loaded.IsValid() {
		t.Error("a profile saved on this machine should be valid")
	}
}

func TestProfileIsValid(t *testing.T) {
	t.Parallel()
	valid := func() *Profile {
		p := NewProfile()
		p.AutoThreshold = 48
		return p
	}

	tests := []struct {
		name   string
		mutate func(*Profile)
		want   bool
	}{
		{"current machine", func(*Profile) {}, true},
		{"old layout", func(p *Profile) { p.ProfileVersion = CurrentProfileVersion + 1 }, false},
		{"other cpu count", func(p *Profile) { p.Host.NumCPU++ }, false},
		{"other arch", func(p *Profile) { p.Host.GOARCH = "other" }, false},
		{"other word size", func(p *Profile) { p.WordSize = 16 }, false},
		{"no threshold", func(p *Profile) { p.AutoThreshold = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid()
			tt.mutate(p)
			if got := p.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}

	var nilProfile *Profile
	if nilProfile.IsValid() {
		t.Error("nil profile should be invalid")
	}
}

func TestProfileIsStale(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	if p.IsStale(time.Hour) {
		t.Error("fresh profile reported stale")
	}
	p.CalibratedAt = time.Now().Add(-48 * time.Hour)
	if !p.IsStale(24 * time.Hour) {
		t.Error("two day old profile should be stale after a day")
	}
}

func TestProfileString(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	p.AutoThreshold = 96
	if s := p.String(); !strings.Contains(s, "96 digits") {
		t.Errorf("String() = %q, want the threshold", s)
	}
	var nilProfile *Profile
	if nilProfile.String() != "<nil profile>" {
		t.Errorf("nil String() = %q", nilProfile.String())
	}
}

func TestLoadProfile_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if _, err := LoadProfile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("loading a missing profile should fail")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(bad); err == nil {
		t.Error("loading invalid JSON should fail")
	}
}

func TestLoadAutoThreshold(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if got := LoadAutoThreshold(filepath.Join(dir, "missing.json")); got != 0 {
		t.Errorf("missing profile threshold = %d, want 0", got)
	}

	path := filepath.Join(dir, "profile.json")
	p := NewProfile()
	p.AutoThreshold = 80
	if err := p.SaveProfile(path); err != nil {
		t.Fatal(err)
	}
	if !ProfileExists(path) {
		t.Fatal("ProfileExists should see the saved file")
	}
	if got := LoadAutoThreshold(path); got != 80 {
		t.Errorf("threshold = %d, want 80", got)
	}

	p.Host.NumCPU++
	if err := p.SaveProfile(path); err != nil {
		t.Fatal(err)
	}
	if got := LoadAutoThreshold(path); got != 0 {
		t.Errorf("foreign machine threshold = %d, want 0", got)
	}
}

func TestGetDefaultProfilePath(t *testing.T) {
	t.Parallel()
	if got := GetDefaultProfilePath(); filepath.Base(got) != DefaultProfileFileName {
		t.Errorf("GetDefaultProfilePath() = %q, want a %s file", got, DefaultProfileFileName)
	}
}
