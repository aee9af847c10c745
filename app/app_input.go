package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fin-sh/fin/keys"
	"github.com/fin-sh/fin/task"
)

// modeKind discriminates the input mode.
type modeKind int

const (
	// modeNormal routes keys to navigation and commands.
	modeNormal modeKind = iota
	// modeMessage shows a transient notification; any key dismisses it and
	// is then handled as if the message were not there.
	modeMessage
	// modeAsk waits for a yes/no answer to a pending action.
	modeAsk
	// modeEdit collects a line of text for a pending action.
	modeEdit
)

// actionKind discriminates pendingAction. Each prompt-opening key creates
// exactly one of these.
type actionKind int

const (
	actionNone actionKind = iota
	actionDelete
	actionRename
	actionFilter
	actionRunTask
	actionTerminateTask
	actionKillTask
)

// pendingAction is what an Ask or Edit prompt will do when confirmed. The
// target is snapshotted when the prompt opens, so the action is unaffected
// by the selection moving underneath it (directory refreshes keep happening
// while a prompt is up).
type pendingAction struct {
	kind actionKind

	// file target, absolute
	path string
	name string

	// task target
	pid int
}

type mode struct {
	kind modeKind

	// modeMessage
	text      string
	expiresAt time.Time

	// modeAsk and modeEdit
	prompt string
	action pendingAction

	// modeEdit
	input textinput.Model
}

func (m *home) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode.kind {
	case modeMessage:
		// Dismiss, then let the key do its normal job.
		m.mode = mode{kind: modeNormal}
		return m.handleNormalKey(msg)
	case modeAsk:
		return m.handleAskKey(msg)
	case modeEdit:
		return m.handleEditKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *home) handleAskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.mode.action
	m.mode = mode{kind: modeNormal}
	if msg.String() == "y" {
		m.perform(action, "")
	}
	return m, nil
}

func (m *home) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		if m.mode.action.kind == actionFilter {
			// Live filtering already narrowed the view; cancel restores it.
			m.dir.SetFilter("")
		}
		m.mode = mode{kind: modeNormal}
		return m, nil

	case tea.KeyEnter:
		action := m.mode.action
		input := m.mode.input.Value()
		m.mode = mode{kind: modeNormal}
		m.perform(action, input)
		return m, nil
	}

	var cmd tea.Cmd
	m.mode.input, cmd = m.mode.input.Update(msg)
	if m.mode.action.kind == actionFilter {
		m.dir.SetFilter(m.mode.input.Value())
	}
	return m, cmd
}

func (m *home) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyTab:
		if m.focus == paneFiles {
			m.focus = paneTasks
			m.clampTaskCursor()
		} else {
			m.focus = paneFiles
		}
		return m, nil
	}

	if m.focus == paneTasks {
		return m.handleTaskKey(name)
	}
	return m.handleFileKey(name)
}

func (m *home) handleFileKey(name keys.KeyName) (tea.Model, tea.Cmd) {
	switch name {
	case keys.KeyUp:
		m.dir.SelectPrev()
	case keys.KeyDown:
		m.dir.SelectNext()
	case keys.KeyTop:
		m.dir.SelectFirst()
	case keys.KeyBottom:
		m.dir.SelectLast()

	case keys.KeyOpen:
		m.openSelected()
	case keys.KeyParent:
		m.reselect = parentSelectName(m.dir.Path())
		m.cd(filepath.Dir(m.dir.Path()))

	case keys.KeyToggleHidden:
		m.dir.ToggleHidden()
	case keys.KeyMark:
		if f := m.dir.Selected(); f != nil {
			m.dir.ToggleMark(f.Path)
			m.dir.SelectNext()
		}
	case keys.KeyPaste:
		m.pasteMarked("cp -r")
	case keys.KeyMove:
		m.pasteMarked("mv")

	case keys.KeyDelete:
		f := m.dir.Selected()
		if f == nil {
			break
		}
		m.mode = mode{
			kind:   modeAsk,
			prompt: fmt.Sprintf("delete %s?", f.Name),
			action: pendingAction{kind: actionDelete, path: f.Path, name: f.Name},
		}
	case keys.KeyRename:
		f := m.dir.Selected()
		if f == nil {
			break
		}
		m.openEdit("rename:", f.Name,
			pendingAction{kind: actionRename, path: f.Path, name: f.Name})
	case keys.KeyFilter:
		m.openEdit("filter:", m.dir.Filter(), pendingAction{kind: actionFilter})
	case keys.KeyRunTask:
		m.openEdit("run:", "", pendingAction{kind: actionRunTask})

	case keys.KeyYank:
		f := m.dir.Selected()
		if f == nil {
			break
		}
		if err := clipboard.WriteAll(f.Path); err != nil {
			m.showMessage("clipboard: " + err.Error())
		} else {
			m.showMessage("path copied")
		}
	}

	return m, nil
}

func (m *home) handleTaskKey(name keys.KeyName) (tea.Model, tea.Cmd) {
	tasks := m.tasks.Tasks()

	switch name {
	case keys.KeyUp:
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case keys.KeyDown:
		if m.taskCursor < len(tasks)-1 {
			m.taskCursor++
		}
	case keys.KeyTop:
		m.taskCursor = 0
	case keys.KeyBottom:
		if len(tasks) > 0 {
			m.taskCursor = len(tasks) - 1
		}

	case keys.KeyStopTask:
		if t := m.selectedTask(); t != nil {
			if err := m.tasks.Stop(t.PID); err != nil {
				m.showMessage(err.Error())
			}
		}
	case keys.KeyTermTask:
		if t := m.selectedTask(); t != nil {
			m.mode = mode{
				kind:   modeAsk,
				prompt: fmt.Sprintf("terminate %s?", t.Rendered),
				action: pendingAction{kind: actionTerminateTask, pid: t.PID},
			}
		}
	case keys.KeyKillTask:
		if t := m.selectedTask(); t != nil {
			m.mode = mode{
				kind:   modeAsk,
				prompt: fmt.Sprintf("kill %s?", t.Rendered),
				action: pendingAction{kind: actionKillTask, pid: t.PID},
			}
		}
	case keys.KeyClearTasks:
		m.tasks.ClearCompleted()
		m.clampTaskCursor()
	}

	return m, nil
}

func (m *home) selectedTask() *task.Task {
	tasks := m.tasks.Tasks()
	if m.taskCursor < 0 || m.taskCursor >= len(tasks) {
		return nil
	}
	return tasks[m.taskCursor]
}

func (m *home) openEdit(prompt, initial string, action pendingAction) {
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	m.mode = mode{
		kind:   modeEdit,
		prompt: prompt,
		action: action,
		input:  ti,
	}
}
