package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fin-sh/fin/task"
)

func TestTaskPane_Empty(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(40, 10)

	assert.Contains(t, p.String(nil, -1), "no tasks")
}

func TestTaskPane_ShowsRenderedCommandAndStatus(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(60, 10)

	tasks := []*task.Task{
		{PID: 1, Command: "make -j8", Rendered: "make -j8", Status: task.Status{Kind: task.StatusRunning, Text: "building"}},
		{PID: 2, Command: "sleep 100", Rendered: "sleep 100", Status: task.Status{Kind: task.StatusStopped}},
		{PID: 3, Command: "true", Rendered: "true", Status: task.Status{Kind: task.StatusExited, ExitCode: 0}},
		{PID: 4, Command: "false", Rendered: "false", Status: task.Status{Kind: task.StatusExited, ExitCode: 1}},
	}

	out := p.String(tasks, -1)

	assert.Contains(t, out, "make -j8")
	assert.Contains(t, out, "building")
	assert.Contains(t, out, "stopped")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗ exit 1")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestTaskPane_LongCommandTruncated(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(24, 10)

	tasks := []*task.Task{
		{PID: 1, Rendered: strings.Repeat("curl ", 20), Status: task.Status{Kind: task.StatusRunning, Text: "50%"}},
	}

	out := p.String(tasks, -1)
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "50%")
}

func TestTaskPane_HeightCapsRows(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(40, 2)

	tasks := []*task.Task{
		{PID: 1, Rendered: "one", Status: task.Status{Kind: task.StatusRunning}},
		{PID: 2, Rendered: "two", Status: task.Status{Kind: task.StatusRunning}},
		{PID: 3, Rendered: "three", Status: task.Status{Kind: task.StatusRunning}},
	}

	out := p.String(tasks, -1)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.NotContains(t, out, "three")
}

func TestTaskPane_ScrollsCursorIntoView(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(40, 2)

	tasks := []*task.Task{
		{PID: 1, Rendered: "one", Status: task.Status{Kind: task.StatusRunning}},
		{PID: 2, Rendered: "two", Status: task.Status{Kind: task.StatusRunning}},
		{PID: 3, Rendered: "three", Status: task.Status{Kind: task.StatusRunning}},
		{PID: 4, Rendered: "four", Status: task.Status{Kind: task.StatusRunning}},
	}

	out := p.String(tasks, 3)
	assert.Contains(t, out, "three")
	assert.Contains(t, out, "four")
	assert.NotContains(t, out, "one")

	// Moving back up scrolls the window back as well.
	out = p.String(tasks, 0)
	assert.Contains(t, out, "one")
	assert.NotContains(t, out, "three")
}
