// Package sysmon samples the coarse host statistics shown in the monitor
// strip: load average, uptime, CPU and memory usage.
package sysmon

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// Stats is one observation of the host.
type Stats struct {
	Load1, Load5, Load15 float64
	Uptime               time.Duration
	// CPUPercent and MemPercent are 0..100.
	CPUPercent int
	MemPercent int
}

// Monitor samples host statistics. CPU usage is a rate, so the monitor keeps
// the previous /proc/stat counters and reports usage over the interval since
// the last Sample call. The first sample always reports 0% CPU.
type Monitor struct {
	prevIdle, prevTotal uint64
}

func New() *Monitor {
	return &Monitor{}
}

// Kernel load averages are 16.16 fixed point.
const loadScale = 1 << 16

// Sample takes one observation.
func (m *Monitor) Sample() (Stats, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return Stats{}, fmt.Errorf("sysinfo: %w", err)
	}

	s := Stats{
		Load1:  float64(si.Loads[0]) / loadScale,
		Load5:  float64(si.Loads[1]) / loadScale,
		Load15: float64(si.Loads[2]) / loadScale,
		Uptime: time.Duration(si.Uptime) * time.Second,
	}

	// The mem_unit scale factor cancels out of the ratio.
	if si.Totalram > 0 {
		used := si.Totalram - si.Freeram - si.Bufferram
		s.MemPercent = int(100 * used / si.Totalram)
	}

	s.CPUPercent = m.cpuPercent()
	return s, nil
}

func (m *Monitor) cpuPercent() int {
	idle, total, err := readCPUCounters()
	if err != nil {
		return 0
	}
	dIdle := idle - m.prevIdle
	dTotal := total - m.prevTotal
	m.prevIdle, m.prevTotal = idle, total
	if dTotal == 0 {
		return 0
	}
	return int(100 * (dTotal - dIdle) / dTotal)
}

// readCPUCounters parses the aggregate "cpu" line of /proc/stat. idle counts
// the idle and iowait jiffies, total counts all of them.
func readCPUCounters() (idle, total uint64, err error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return 0, 0, err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	fields := strings.Fields(line)
	if len(fields) < 5 || fields[0] != "cpu" {
		return 0, 0, fmt.Errorf("unexpected /proc/stat format")
	}
	for i, f := range fields[1:] {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("parse /proc/stat: %w", err)
		}
		total += v
		if i == 3 || i == 4 {
			idle += v
		}
	}
	return idle, total, nil
}

// FormatUptime renders an uptime as calendar units followed by HH:MM:SS,
// e.g. "3 days, 04:12:33".
func FormatUptime(d time.Duration) string {
	secs := int64(d / time.Second)

	var b strings.Builder
	units := []struct {
		secs int64
		name string
	}{
		{60 * 60 * 24 * 31, "month"},
		{60 * 60 * 24 * 7, "week"},
		{60 * 60 * 24, "day"},
	}
	for _, u := range units {
		if secs >= u.secs {
			n := secs / u.secs
			secs %= u.secs
			fmt.Fprintf(&b, "%d %s", n, u.name)
			if n > 1 {
				b.WriteByte('s')
			}
			b.WriteString(", ")
		}
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
	return b.String()
}
