package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/fin-sh/fin/task"
)

var taskRunningStyle = lipgloss.NewStyle().
	Foreground(ColorFoam)

var taskStoppedStyle = lipgloss.NewStyle().
	Foreground(ColorGold)

var taskFailedStyle = lipgloss.NewStyle().
	Foreground(ColorLove)

var taskSuccessStyle = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Faint(true)

var taskCommandStyle = lipgloss.NewStyle().
	Foreground(ColorText)

var taskDoneCommandStyle = lipgloss.NewStyle().
	Foreground(ColorMuted)

var noTasksStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Italic(true)

const stoppedIcon = " stopped"

// TaskPane renders the supervised task list.
type TaskPane struct {
	width, height int

	// scroll is the index of the first visible row.
	scroll int
}

func NewTaskPane() *TaskPane {
	return &TaskPane{}
}

func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// statusCell returns the styled status column and its printable width.
func statusCell(t *task.Task) (string, int) {
	switch t.Status.Kind {
	case task.StatusRunning:
		text := t.Status.Text
		return taskRunningStyle.Render(text), runewidth.StringWidth(text)
	case task.StatusStopped:
		return taskStoppedStyle.Render(stoppedIcon), runewidth.StringWidth(stoppedIcon)
	case task.StatusExited:
		if t.Status.ExitCode != 0 {
			text := fmt.Sprintf("✗ exit %d", t.Status.ExitCode)
			return taskFailedStyle.Render(text), runewidth.StringWidth(text)
		}
		return taskSuccessStyle.Render("✓"), 1
	}
	return "", 0
}

func (p *TaskPane) renderRow(t *task.Task, selected bool) string {
	status, statusWidth := statusCell(t)

	label := t.Rendered
	if label == "" {
		label = t.Command
	}

	// Leave the status column plus one space of breathing room.
	labelBudget := p.width - statusWidth - 3
	if labelBudget < 4 {
		labelBudget = 4
	}
	label = truncate.StringWithTail(label, uint(labelBudget), "…")

	style := taskCommandStyle
	if t.Status.Kind == task.StatusExited {
		style = taskDoneCommandStyle
	}

	pad := p.width - 2 - runewidth.StringWidth(label) - statusWidth
	if pad < 1 {
		pad = 1
	}

	row := "  " + style.Render(label) + strings.Repeat(" ", pad) + status
	if selected {
		row = selectedRowStyle.Width(p.width).Render(row)
	}
	return row
}

// ensureVisible adjusts the scroll offset so the cursor row is on screen.
func (p *TaskPane) ensureVisible(cursor, total int) {
	if p.height <= 0 {
		p.scroll = 0
		return
	}
	if cursor < p.scroll {
		p.scroll = cursor
	}
	if cursor >= p.scroll+p.height {
		p.scroll = cursor - p.height + 1
	}
	if p.scroll > total-p.height {
		p.scroll = total - p.height
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

// String renders the pane. cursor is the index of the highlighted task when
// the pane has focus, -1 otherwise.
func (p *TaskPane) String(tasks []*task.Task, cursor int) string {
	if len(tasks) == 0 {
		return noTasksStyle.Render("  no tasks")
	}

	if cursor >= 0 {
		p.ensureVisible(cursor, len(tasks))
	}

	end := len(tasks)
	if p.height > 0 && p.scroll+p.height < end {
		end = p.scroll + p.height
	}

	rows := make([]string, 0, end-p.scroll)
	for i := p.scroll; i < end; i++ {
		rows = append(rows, p.renderRow(tasks[i], i == cursor))
	}
	return strings.Join(rows, "\n")
}
