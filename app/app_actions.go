package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fin-sh/fin/log"
)

// perform executes a confirmed pending action. input carries the line editor
// contents for Edit-backed actions and is empty for Ask-backed ones.
func (m *home) perform(a pendingAction, input string) {
	switch a.kind {
	case actionDelete:
		// With a shell attached the removal is typed into it, visible and
		// on the record in history. Without one it happens locally.
		if m.bridge.Pid() > 0 {
			if err := m.bridge.Run("rm -r", []string{a.path}, true); err != nil {
				m.showMessage("delete: " + err.Error())
			}
			return
		}
		if err := os.RemoveAll(a.path); err != nil {
			m.showMessage("delete: " + err.Error())
			return
		}
		m.showMessage("deleted " + a.name)
		m.refresh()

	case actionRename:
		input = strings.TrimSpace(input)
		if input == "" || input == a.name {
			return
		}
		dest := filepath.Join(filepath.Dir(a.path), input)
		if m.bridge.Pid() > 0 {
			if err := m.bridge.Run("mv", []string{a.path, dest}, true); err != nil {
				m.showMessage("rename: " + err.Error())
			}
			return
		}
		if err := os.Rename(a.path, dest); err != nil {
			m.showMessage("rename: " + err.Error())
			return
		}
		m.refresh()
		m.dir.SelectName(input)

	case actionFilter:
		// Already applied live while typing; confirming keeps it.
		m.dir.SetFilter(input)

	case actionRunTask:
		input = strings.TrimSpace(input)
		if input == "" {
			return
		}
		m.startTask(input, input)

	case actionTerminateTask:
		if err := m.tasks.Terminate(a.pid); err != nil {
			m.showMessage(err.Error())
		}

	case actionKillTask:
		if err := m.tasks.Kill(a.pid); err != nil {
			m.showMessage(err.Error())
		}
	}
}

func (m *home) refresh() {
	if err := m.dir.Refresh(); err != nil {
		log.WarningLog.Printf("refresh: %v", err)
	}
}

// openSelected opens the selection: directories become a silent cd in the
// attached shell, files are handed to their configured opener as a visible
// shell command.
func (m *home) openSelected() {
	f := m.dir.Selected()
	if f == nil {
		return
	}

	if f.IsDir() {
		m.cd(f.Path)
		return
	}

	opener := m.openers.OpenerFor(f.Ext)
	if err := m.bridge.Run(opener, []string{f.Path}, true); err != nil {
		m.showMessage("open: " + err.Error())
		return
	}
	if m.bridge.Pid() <= 0 {
		m.showMessage("no shell attached")
	}
}

// pasteMarked runs prog with all marked paths plus the current directory as
// the final argument, typed visibly into the attached shell.
func (m *home) pasteMarked(prog string) {
	if m.bridge.Pid() <= 0 {
		m.showMessage("no shell attached")
		return
	}
	marked := m.dir.TakeMarked()
	if len(marked) == 0 {
		m.showMessage("nothing marked")
		return
	}

	args := append(marked, m.dir.Path())
	if err := m.bridge.Run(prog, args, true); err != nil {
		m.showMessage(err.Error())
	}
}
