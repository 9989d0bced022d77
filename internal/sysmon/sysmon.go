// Package sysmon samples system-wide CPU and memory usage and describes the
// host for run headers and calibration profiles.
package sysmon

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
)

// Stats is one snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a CPU and memory snapshot. CPU usage is the delta since
// the previous call. Fields are zero when the platform cannot report them.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	return s
}

// HostInfo describes the machine a run executes on.
type HostInfo struct {
	ModelName     string
	LogicalCores  int
	PhysicalCores int
	TotalMemory   uint64
	Features      []string
}

// Host gathers a HostInfo. Values gopsutil cannot read fall back to the
// runtime's view.
func Host() HostInfo {
	h := HostInfo{LogicalCores: runtime.NumCPU(), Features: CPUFeatures()}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCores = n
	}
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		h.PhysicalCores = n
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.ModelName = strings.TrimSpace(infos[0].ModelName)
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		h.TotalMemory = vm.Total
	}
	if h.ModelName == "" {
		h.ModelName = runtime.GOARCH
	}
	return h
}

// CPUFeatures lists the instruction set extensions relevant to multi-word
// arithmetic that the CPU advertises.
func CPUFeatures() []string {
	var f []string
	switch runtime.GOARCH {
	case "amd64", "386":
		add := func(ok bool, name string) {
			if ok {
				f = append(f, name)
			}
		}
		add(xcpu.X86.HasAVX2, "avx2")
		add(xcpu.X86.HasAVX512F, "avx512f")
		add(xcpu.X86.HasBMI2, "bmi2")
		add(xcpu.X86.HasADX, "adx")
	case "arm64":
		if xcpu.ARM64.HasASIMD {
			f = append(f, "asimd")
		}
		if xcpu.ARM64.HasSVE {
			f = append(f, "sve")
		}
	}
	return f
}
