// Package sysmetrics reads instantaneous host metrics for the status
// page. Reads are synchronous and cheap; any failure degrades to the "-"
// placeholder instead of an error.
package sysmetrics

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Unavailable is shown when a metric cannot be read.
const Unavailable = "-"

var defaultThermalPaths = []string{
	"/sys/class/thermal/thermal_zone0/temp",
	"/sys/class/hwmon/hwmon0/temp1_input",
}

type Reader struct {
	thermalPaths []string
	diskPath     string
}

func NewReader() *Reader {
	return &Reader{
		thermalPaths: defaultThermalPaths,
		diskPath:     "/",
	}
}

// CPUTemp reads the SoC temperature from sysfs. Kernels expose either
// degrees or millidegrees; values above 1000 are normalized down.
func (r *Reader) CPUTemp() string {
	for _, p := range r.thermalPaths {
		raw, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
		if err != nil {
			continue
		}
		if v > 1000 {
			v /= 1000.0
		}
		return fmt.Sprintf("%.0fC", v)
	}
	return Unavailable
}

// Load1 is the one-minute load average.
func (r *Reader) Load1() string {
	avg, err := load.Avg()
	if err != nil {
		return Unavailable
	}
	return fmt.Sprintf("%.2f", avg.Load1)
}

// MemoryPercent is used physical memory in percent.
func (r *Reader) MemoryPercent() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Unavailable
	}
	return fmt.Sprintf("%.0f%%", vm.UsedPercent)
}

// DiskPercent is root filesystem usage in percent.
func (r *Reader) DiskPercent() string {
	du, err := disk.Usage(r.diskPath)
	if err != nil {
		return Unavailable
	}
	return fmt.Sprintf("%.0f%%", du.UsedPercent)
}
