package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/nttmul into a temporary directory. go test runs
// in the package directory, so the build starts from the module root.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "nttmul"
	if runtime.GOOS == "windows" {
		binName = "nttmul.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/nttmul")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build nttmul: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary end to end.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	binPath := buildBinary(t)
	profile := filepath.Join(t.TempDir(), "profile.json")

	tests := []struct {
		name       string
		args       []string
		stdin      string
		wantStdout string // exact when wantExact, substring otherwise
		wantExact  bool
		wantStderr string
		wantCode   int
	}{
		{
			name:       "Stream Protocol",
			stdin:      "123\n456\n",
			wantStdout: "56088\n",
			wantExact:  true,
			wantStderr: "Enter the first integer:",
		},
		{
			name:       "Quiet Stream",
			args:       []string{"-q"},
			stdin:      "99999999\n99999999\n",
			wantStdout: "9999999800000001\n",
			wantExact:  true,
		},
		{
			name:       "Flag Operands",
			args:       []string{"-a", "31415926535897932384626433832795", "-b", "1"},
			wantStdout: "31415926535897932384626433832795\n",
			wantExact:  true,
		},
		{
			name:       "All Engines Comparison",
			args:       []string{"-a", "999999999", "-b", "999999999", "--engine", "all"},
			wantStdout: "999999998000000001\n",
			wantExact:  true,
			wantStderr: "All products are identical",
		},
		{
			name:       "JSON Output",
			args:       []string{"-a", "12", "-b", "12", "--json"},
			wantStdout: `"product": "144"`,
		},
		{
			name:       "Help",
			args:       []string{"--help"},
			wantStderr: "usage",
		},
		{
			name:       "Operand Over Capacity",
			args:       []string{"-a", "123456", "-b", "7", "--max-digits", "5"},
			wantStderr: "capacity",
			wantCode:   5,
		},
		{
			name:       "Invalid Engine",
			args:       []string{"--engine", "fourier"},
			wantStderr: "unrecognized engine",
			wantCode:   4,
		},
		{
			name:       "Version Flag",
			args:       []string{"--version"},
			wantStdout: "nttmul",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--calibration-profile", profile}, tt.args...)
			cmd := exec.Command(binPath, args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			cmd.Stdin = strings.NewReader(tt.stdin)
			var stdout, stderr strings.Builder
			cmd.Stdout, cmd.Stderr = &stdout, &stderr
			err := cmd.Run()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("Failed to run nttmul: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}

			switch {
			case tt.wantExact && stdout.String() != tt.wantStdout:
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			case !tt.wantExact && !strings.Contains(stdout.String(), tt.wantStdout):
				t.Errorf("stdout %q does not contain %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(strings.ToLower(stderr.String()), strings.ToLower(tt.wantStderr)) {
				t.Errorf("stderr does not contain %q:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}
