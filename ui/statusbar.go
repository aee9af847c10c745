package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/fin-sh/fin/files"
)

// BarMode selects what the status bar displays.
type BarMode int

const (
	// BarInfo shows details about the current selection.
	BarInfo BarMode = iota
	// BarMessage shows a transient notification.
	BarMessage
	// BarAsk shows a yes/no confirmation prompt.
	BarAsk
	// BarEdit shows a prompt with a line editor.
	BarEdit
)

// StatusBarData holds the contextual information displayed in the status bar.
type StatusBarData struct {
	Mode BarMode

	// BarInfo fields
	Selected    *files.FileInfo
	Position    int // 1-based index of the selection
	Total       int
	MarkedCount int
	Filter      string
	Branch      string

	// BarMessage field
	Message string

	// BarAsk / BarEdit fields
	Prompt string
	Input  string // rendered line editor, BarEdit only
}

// StatusBar is the bottom status bar component.
type StatusBar struct {
	width int
	data  StatusBarData
}

// NewStatusBar creates a new StatusBar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the terminal width for the status bar.
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetData updates the status bar content.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

var statusBarStyle = lipgloss.NewStyle().
	Background(ColorSurface).
	Foreground(ColorText).
	Padding(0, 1)

var statusBarSepStyle = lipgloss.NewStyle().
	Foreground(ColorOverlay).
	Background(ColorSurface)

var statusBarModeStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle).
	Background(ColorSurface)

var statusBarBranchStyle = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Background(ColorSurface)

var statusBarMarkedStyle = lipgloss.NewStyle().
	Foreground(ColorRose).
	Background(ColorSurface)

var statusBarMessageStyle = lipgloss.NewStyle().
	Foreground(ColorGold).
	Background(ColorSurface)

var statusBarPromptStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Background(ColorSurface).
	Bold(true)

const statusBarSep = " │ "

func (s *StatusBar) String() string {
	if s.width < 10 {
		return ""
	}

	var content string
	switch s.data.Mode {
	case BarMessage:
		content = statusBarMessageStyle.Render(s.data.Message)
	case BarAsk:
		content = statusBarPromptStyle.Render(s.data.Prompt) +
			statusBarModeStyle.Render(" [y/N]")
	case BarEdit:
		content = statusBarPromptStyle.Render(s.data.Prompt) + " " + s.data.Input
	default:
		content = s.infoContent()
	}

	return statusBarStyle.Width(s.width).Render(content)
}

func (s *StatusBar) infoContent() string {
	parts := make([]string, 0, 6)

	if f := s.data.Selected; f != nil {
		parts = append(parts, statusBarModeStyle.Render(f.Info.Mode().String()))
		if !f.IsDir() {
			parts = append(parts, humanize.Bytes(uint64(f.Info.Size())))
		}
	}

	if s.data.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.data.Position, s.data.Total))
	}

	if s.data.MarkedCount > 0 {
		parts = append(parts, statusBarMarkedStyle.Render(fmt.Sprintf("%d marked", s.data.MarkedCount)))
	}

	if s.data.Filter != "" {
		parts = append(parts, statusBarModeStyle.Render("/"+s.data.Filter))
	}

	if s.data.Branch != "" {
		parts = append(parts, statusBarBranchStyle.Render(" "+s.data.Branch))
	}

	sep := statusBarSepStyle.Render(statusBarSep)
	return strings.Join(parts, sep)
}
