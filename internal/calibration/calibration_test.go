package calibration

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/nttmul/internal/digits"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/multiply"
	"github.com/agbru/nttmul/internal/multiply/mocks"
	"github.com/agbru/nttmul/internal/progress"
)

func ms(n int, school, fast time.Duration) Measurement {
	return Measurement{Digits: n, Schoolbook: school, NTT: fast}
}

func TestCrossover(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   []Measurement
		want int
	}{
		{"empty", nil, 0},
		{"ntt always wins", []Measurement{ms(8, 5, 1), ms(16, 9, 2)}, 8},
		{"ntt never wins", []Measurement{ms(8, 1, 5), ms(16, 2, 9)}, 32},
		{"clean crossover", []Measurement{ms(8, 1, 5), ms(16, 4, 6), ms(32, 10, 7), ms(64, 40, 12)}, 32},
		// A noisy win below the crossover does not count.
		{"noisy win", []Measurement{ms(8, 5, 4), ms(16, 4, 6), ms(32, 10, 7)}, 32},
		{"tie is not a win", []Measurement{ms(8, 1, 5), ms(16, 6, 6), ms(32, 10, 7)}, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Crossover(tt.in); got != tt.want {
				t.Errorf("Crossover() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeasure_RealEngines(t *testing.T) {
	t.Parallel()
	updates := make(chan progress.ProgressUpdate, 8)
	got, err := Measure(context.Background(), multiply.NewDefaultFactory(), Options{
		Lengths:     []int{32, 8, 16, 8},
		Repetitions: 1,
		Concurrency: 2,
	}, updates)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	close(updates)

	if len(got) != 3 {
		t.Fatalf("got %d measurements, want 3 distinct lengths", len(got))
	}
	for i, want := range []int{8, 16, 32} {
		if got[i].Digits != want {
			t.Errorf("measurement %d digits = %d, want %d", i, got[i].Digits, want)
		}
	}

	last := 0.0
	count := 0
	for u := range updates {
		count++
		last = max(last, u.Value)
	}
	if count != 3 || last != 1 {
		t.Errorf("progress: %d updates reaching %v, want 3 reaching 1", count, last)
	}
}

// factoryWith serves the given engines by name.
type factoryWith map[string]multiply.Engine

func (f factoryWith) Get(name string) (multiply.Engine, error) {
	if e, ok := f[name]; ok {
		return e, nil
	}
	return nil, errors.New("unknown engine " + name)
}

func (f factoryWith) List() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	return names
}

func TestMeasure_EngineFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	real := multiply.NewDefaultFactory()
	school, _ := real.Get(multiply.EngineSchoolbook)

	failing := mocks.NewMockEngine(ctrl)
	failing.EXPECT().Name().Return(multiply.EngineNTT).AnyTimes()
	failing.EXPECT().Multiply(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(digits.Sequence{}, errors.New("boom")).AnyTimes()

	_, err := Measure(context.Background(), factoryWith{
		multiply.EngineSchoolbook: school,
		multiply.EngineNTT:        failing,
	}, Options{Lengths: []int{8}, Repetitions: 1}, nil)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Measure error = %v, want the engine failure", err)
	}
}

func TestMeasure_UnknownEngine(t *testing.T) {
	t.Parallel()
	if _, err := Measure(context.Background(), factoryWith{}, Options{}, nil); err == nil {
		t.Error("Measure without engines should fail")
	}
}

func TestRunCalibration(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.json")
	chartPath := filepath.Join(dir, "chart.html")

	var out bytes.Buffer
	code := RunCalibration(context.Background(), &out, multiply.NewDefaultFactory(), Options{
		ProfilePath: profilePath,
		SaveProfile: true,
		ChartPath:   chartPath,
		Lengths:     []int{8, 16},
		Repetitions: 1,
	})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}

	for _, want := range []string{"Calibration Summary", "Auto threshold", "Profile saved"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	p, err := LoadProfile(profilePath)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if len(p.Measurements) != 2 || p.AutoThreshold != Crossover(p.Measurements) {
		t.Errorf("saved profile %v does not match its measurements", p)
	}

	chart, err := os.ReadFile(chartPath)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if !strings.Contains(string(chart), "Schoolbook vs NTT") {
		t.Error("chart page is missing its title")
	}
}

func TestRunCalibration_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	code := RunCalibration(ctx, &out, multiply.NewDefaultFactory(), Options{Lengths: []int{8}, Repetitions: 1})
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestWriteChart(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := WriteChart(&buf, []Measurement{ms(8, time.Microsecond, 3*time.Microsecond)}, 8)
	if err != nil {
		t.Fatalf("WriteChart: %v", err)
	}
	for _, want := range []string{"schoolbook", "ntt", "auto threshold: 8 digits"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("chart missing %q", want)
		}
	}
}
