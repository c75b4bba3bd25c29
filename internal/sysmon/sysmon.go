// Package sysmon samples host-wide CPU and memory load, so that timings
// can be read against what else the machine was doing.
package sysmon

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// BusyCPUPercent is the host CPU load above which timings are unreliable.
const BusyCPUPercent = 50.0

// Stats is one host-wide load sample.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemTotal   uint64  // bytes
}

// Busy reports whether the host was loaded enough to skew measurements.
func (s Stats) Busy() bool { return s.CPUPercent > BusyCPUPercent }

// Sample reads the host load. CPU load is measured since the previous call
// (the first call on some systems reports 0). Fields that cannot be read
// stay zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemTotal = vm.Total
	}
	return s
}
