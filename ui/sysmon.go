package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fin-sh/fin/sysmon"
)

// SysMonRows is the fixed height of the monitor strip.
const SysMonRows = 7

var sysmonLabelStyle = lipgloss.NewStyle().
	Foreground(ColorMuted)

var sysmonValueStyle = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Bold(true)

var sysmonBarStyle = lipgloss.NewStyle().
	Foreground(ColorFoam)

var sysmonBarDimStyle = lipgloss.NewStyle().
	Foreground(ColorOverlay)

// SysMon renders the host monitor strip: load average and uptime lines, then
// CPU and memory meters.
type SysMon struct {
	width int
}

func NewSysMon() *SysMon {
	return &SysMon{}
}

func (s *SysMon) SetSize(width int) {
	s.width = width
}

// meter renders a two-row usage bar with the percentage on the right.
func (s *SysMon) meter(label string, pct int) string {
	if pct < 0 || pct > 100 {
		pct = 0
	}
	// One space plus up to "100%" on the right.
	barWidth := s.width - 5
	if barWidth < 1 {
		return sysmonLabelStyle.Render(label)
	}
	filled := barWidth * pct / 100

	bar := sysmonBarStyle.Render(strings.Repeat("■", filled)) +
		sysmonBarDimStyle.Render(strings.Repeat("■", barWidth-filled))
	return sysmonLabelStyle.Render(label) + "\n" +
		bar + sysmonValueStyle.Render(fmt.Sprintf(" %3d%%", pct))
}

func (s *SysMon) String(st sysmon.Stats) string {
	load := fmt.Sprintf("%.2f %.2f %.2f", st.Load1, st.Load5, st.Load15)

	lines := []string{
		sysmonLabelStyle.Render("LA ") + sysmonValueStyle.Render(load),
		sysmonLabelStyle.Render("UP ") + sysmonValueStyle.Render(sysmon.FormatUptime(st.Uptime)),
		"",
		s.meter("CPU", st.CPUPercent),
		s.meter("Memory", st.MemPercent),
	}
	return strings.Join(lines, "\n")
}
