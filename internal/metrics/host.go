package metrics

import (
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sys/cpu"
)

// HostInfo identifies the machine a measurement was taken on.
type HostInfo struct {
	GOOS      string   `json:"goos"`
	GOARCH    string   `json:"goarch"`
	NumCPU    int      `json:"num_cpu"`
	GoVersion string   `json:"go_version"`
	Features  []string `json:"cpu_features,omitempty"`
}

// Host returns the current host description.
func Host() HostInfo {
	return HostInfo{
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
		Features:  CPUFeatures(),
	}
}

// CPUFeatures lists the instruction set extensions that affect 64-bit
// multiply throughput. The list is empty on architectures without
// detection support.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasAVX2, "AVX2")
		add(cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ, "AVX-512")
		add(cpu.X86.HasBMI2, "BMI2")
		add(cpu.X86.HasADX, "ADX")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "ASIMD")
		add(cpu.ARM64.HasSVE, "SVE")
	}
	return features
}

// Matches reports whether other describes the same kind of machine, so a
// measurement taken on other can be reused here.
func (h HostInfo) Matches(other HostInfo) bool {
	return h.GOOS == other.GOOS && h.GOARCH == other.GOARCH && h.NumCPU == other.NumCPU
}

// String renders a one-line summary.
func (h HostInfo) String() string {
	var b strings.Builder
	b.WriteString(h.GOOS + "/" + h.GOARCH)
	b.WriteString(", ")
	b.WriteString(strconv.Itoa(h.NumCPU) + " CPUs, " + h.GoVersion)
	if len(h.Features) > 0 {
		b.WriteString(", " + strings.Join(h.Features, " "))
	}
	return b.String()
}
