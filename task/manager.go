package task

import (
	"fmt"
	"sort"

	"golang.org/x/sys/unix"
)

// Manager owns the task collection. All mutation happens on the consumer
// loop's goroutine; the reader goroutines only emit events.
type Manager struct {
	emit  func(Event)
	tasks []*Task
}

// NewManager returns a Manager whose tasks report through emit. emit blocks
// until the consumer loop accepts the event.
func NewManager(emit func(Event)) *Manager {
	return &Manager{emit: emit}
}

// Start spawns a new supervised task. On spawn failure no Task entry is
// created and the error is returned for display.
func (m *Manager) Start(command, rendered string) (*Task, error) {
	t, err := start(command, rendered, m.emit)
	if err != nil {
		return nil, err
	}
	m.tasks = append(m.tasks, t)
	m.sortTasks()
	return t, nil
}

// Tasks returns the tasks in display order. Read-only borrow for rendering.
func (m *Manager) Tasks() []*Task {
	return m.tasks
}

// Get looks up a task by process id.
func (m *Manager) Get(pid int) *Task {
	for _, t := range m.tasks {
		if t.PID == pid {
			return t
		}
	}
	return nil
}

// OnEvent applies one task event. Status only ever moves forward:
// output lines refresh a Running status, the terminal event is applied once,
// and nothing leaves Exited.
func (m *Manager) OnEvent(e Event) {
	t := m.Get(e.PID)
	if t == nil {
		// Task was cleared from the list while its readers were draining.
		return
	}
	switch e.Kind {
	case EventStdout, EventStderr:
		if t.Status.Kind != StatusRunning {
			return
		}
		t.Status.Text = deriveStatus(t.Command, e.Line)
	case EventExited:
		if t.Status.Kind == StatusExited {
			return
		}
		t.Status = Status{Kind: StatusExited, ExitCode: e.ExitCode}
		m.sortTasks()
	}
}

// sortTasks orders tasks so the ones most likely to need attention come
// first: running, then stopped, then failed, then succeeded.
func (m *Manager) sortTasks() {
	sort.SliceStable(m.tasks, func(i, j int) bool {
		return statusRank(m.tasks[i].Status) < statusRank(m.tasks[j].Status)
	})
}

func statusRank(s Status) int {
	switch s.Kind {
	case StatusRunning:
		return 0
	case StatusStopped:
		return 1
	case StatusExited:
		if s.ExitCode != 0 {
			return 2
		}
		return 3
	default:
		return 4
	}
}

// Stop sends SIGINT and marks the task Stopped without waiting for the
// process to react.
func (m *Manager) Stop(pid int) error {
	t := m.Get(pid)
	if t == nil || t.Status.Kind != StatusRunning {
		return nil
	}
	if err := unix.Kill(pid, unix.SIGINT); err != nil {
		return fmt.Errorf("stop task %d: %w", pid, err)
	}
	t.Status = Status{Kind: StatusStopped}
	m.sortTasks()
	return nil
}

// Terminate sends SIGTERM, the graceful kill.
func (m *Manager) Terminate(pid int) error {
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		return fmt.Errorf("terminate task %d: %w", pid, err)
	}
	return nil
}

// Kill sends SIGKILL, the forceful kill.
func (m *Manager) Kill(pid int) error {
	if err := unix.Kill(pid, unix.SIGKILL); err != nil {
		return fmt.Errorf("kill task %d: %w", pid, err)
	}
	return nil
}

// ClearCompleted drops everything that is no longer running.
func (m *Manager) ClearCompleted() {
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if t.Status.Kind == StatusRunning {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
}
