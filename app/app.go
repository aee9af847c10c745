package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/fin-sh/fin/config"
	"github.com/fin-sh/fin/event"
	"github.com/fin-sh/fin/files"
	"github.com/fin-sh/fin/gitinfo"
	"github.com/fin-sh/fin/log"
	"github.com/fin-sh/fin/shell"
	"github.com/fin-sh/fin/sysmon"
	"github.com/fin-sh/fin/task"
	"github.com/fin-sh/fin/tasklog"
	"github.com/fin-sh/fin/ui"
)

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, bridge *shell.Bridge, taskLog *tasklog.Logger) error {
	// Set the terminal's default background to the theme base color so every
	// ANSI reset and unstyled cell falls back to #232136 instead of black.
	restore := ui.SetTerminalBackground(string(ui.ColorBase))
	defer restore()

	h, err := newHome(ctx, cfg, bridge, taskLog)
	if err != nil {
		return err
	}
	defer h.close()

	p := tea.NewProgram(h, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// shellRunner is the slice of the shell bridge the model drives. The real
// implementation is shell.Bridge; tests substitute a recording fake with an
// attached pid.
type shellRunner interface {
	Pid() int
	Run(cmd string, args []string, echo bool) error
	Cd(dir string) error
	Deinit()
	Listen(emit func(shell.Event))
}

// pane identifies which half of the screen has keyboard focus.
type pane int

const (
	paneFiles pane = iota
	paneTasks
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	cfg     *config.Config
	openers config.OpenMethods
	taskLog *tasklog.Logger

	// -- Event sources --

	mux     *event.Mux
	bridge  shellRunner
	watcher *files.Watcher

	// -- State --

	dir      *files.Dir
	tasks    *task.Manager
	sys      *sysmon.Monitor
	sysStats sysmon.Stats
	mode     mode
	focus    pane
	// taskCursor is the highlighted row when the task pane has focus.
	taskCursor int
	// reselect is the entry to select after the next shell-driven cd lands.
	reselect string
	branch   string

	// -- UI Components --

	fileList  *ui.FileList
	taskPane  *ui.TaskPane
	sysMon    *ui.SysMon
	statusBar *ui.StatusBar

	width, height int
}

func newHome(ctx context.Context, cfg *config.Config, bridge shellRunner, taskLog *tasklog.Logger) (*home, error) {
	mux := event.NewMux()

	h := &home{
		ctx:       ctx,
		cfg:       cfg,
		taskLog:   taskLog,
		mux:       mux,
		bridge:    bridge,
		dir:       files.NewDir(),
		sys:       sysmon.New(),
		mode:      mode{kind: modeNormal},
		fileList:  ui.NewFileList(),
		taskPane:  ui.NewTaskPane(),
		sysMon:    ui.NewSysMon(),
		statusBar: ui.NewStatusBar(),
	}
	// The first sample primes the CPU counters so the first tick shows a
	// usage figure instead of a zero.
	if st, err := h.sys.Sample(); err == nil {
		h.sysStats = st
	}

	h.tasks = task.NewManager(func(e task.Event) {
		mux.Emit(event.TaskMsg(e))
	})

	openers, err := config.LoadOpenMethods()
	if err != nil {
		log.WarningLog.Printf("load open methods: %v", err)
		openers = config.OpenMethods{}
	}
	h.openers = openers

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := h.dir.Cd(cwd); err != nil {
		return nil, err
	}
	if cfg.ShowHidden != h.dir.ShowHidden() {
		h.dir.ToggleHidden()
	}
	h.branch = gitinfo.Branch(cwd)

	h.watcher, err = files.NewWatcher(func(e fsnotify.Event) {
		mux.Emit(event.FSMsg(e))
	})
	if err != nil {
		return nil, err
	}
	if err := h.watcher.Watch(cwd); err != nil {
		log.WarningLog.Printf("watch %s: %v", cwd, err)
	}

	bridge.Listen(func(e shell.Event) {
		mux.Emit(event.ShellMsg(e))
	})
	mux.StartTicker(cfg.TickInterval())

	return h, nil
}

func (m *home) close() {
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			log.WarningLog.Printf("close watcher: %v", err)
		}
	}
}

func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	paneHeight := m.height - 1 - m.sysmonRows()
	filesWidth := m.width * 2 / 3
	tasksWidth := m.width - filesWidth - 1

	m.fileList.SetSize(filesWidth, paneHeight)
	m.taskPane.SetSize(tasksWidth, paneHeight)
	m.sysMon.SetSize(m.width)
	m.statusBar.SetSize(m.width)
}

// sysmonRows is how many rows the monitor strip gets: its fixed height, or
// zero on terminals too short to spare it.
func (m *home) sysmonRows() int {
	if m.height < ui.SysMonRows+8 {
		return 0
	}
	return ui.SysMonRows
}

func (m *home) Init() tea.Cmd {
	return m.mux.Next()
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case event.TickMsg:
		m.handleTick(time.Time(msg))
		return m, m.mux.Next()

	case event.FSMsg:
		if files.RelevantOp(fsnotify.Event(msg).Op) {
			if err := m.dir.Refresh(); err != nil {
				log.WarningLog.Printf("refresh: %v", err)
			}
		}
		return m, m.mux.Next()

	case event.ShellMsg:
		return m.handleShellEvent(shell.Event(msg))

	case event.TaskMsg:
		m.handleTaskEvent(task.Event(msg))
		return m, m.mux.Next()
	}

	return m, nil
}

func (m *home) handleTick(now time.Time) {
	if m.mode.kind == modeMessage && now.After(m.mode.expiresAt) {
		m.mode = mode{kind: modeNormal}
	}
	if err := m.dir.Refresh(); err != nil {
		log.WarningLog.Printf("refresh: %v", err)
	}
	if st, err := m.sys.Sample(); err == nil {
		m.sysStats = st
	} else {
		log.WarningLog.Printf("sysmon: %v", err)
	}
	m.clampTaskCursor()
}

func (m *home) handleShellEvent(e shell.Event) (tea.Model, tea.Cmd) {
	switch e.Kind {
	case shell.KindPid:
		m.showMessage("shell attached")

	case shell.KindCd:
		if err := m.dir.Cd(e.Dir); err != nil {
			m.showMessage("cd: " + err.Error())
			break
		}
		if m.reselect != "" {
			m.dir.SelectName(m.reselect)
			m.reselect = ""
		}
		if err := m.watcher.Watch(e.Dir); err != nil {
			log.WarningLog.Printf("watch %s: %v", e.Dir, err)
		}
		m.branch = gitinfo.Branch(e.Dir)

	case shell.KindExit:
		return m, tea.Quit

	case shell.KindTask:
		m.startTask(e.Command, e.Rendered)

	case shell.KindError:
		m.showMessage("shell bridge: " + e.Error)
	}

	return m, m.mux.Next()
}

func (m *home) handleTaskEvent(e task.Event) {
	m.tasks.OnEvent(e)
	if e.Kind == task.EventExited {
		m.taskLog.RecordExit(e.PID, e.ExitCode, time.Now())
		m.clampTaskCursor()
	}
}

func (m *home) startTask(command, rendered string) {
	t, err := m.tasks.Start(command, rendered)
	if err != nil {
		m.showMessage("task: " + err.Error())
		return
	}
	m.taskLog.RecordStart(t.PID, command, t.Started)
	m.showMessage("started: " + rendered)
}

func (m *home) clampTaskCursor() {
	if n := len(m.tasks.Tasks()); m.taskCursor >= n {
		m.taskCursor = n - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	m.bridge.Deinit()
	return m, tea.Quit
}

// cd changes directory through the shell when one is attached, so the
// shell's prompt follows along; the directory change then comes back as
// an echoed event. Without a shell it happens locally.
func (m *home) cd(dir string) {
	if m.bridge.Pid() > 0 {
		if err := m.bridge.Cd(dir); err != nil {
			m.showMessage("cd: " + err.Error())
		}
		return
	}
	if err := m.dir.Cd(dir); err != nil {
		m.showMessage("cd: " + err.Error())
		return
	}
	if m.reselect != "" {
		m.dir.SelectName(m.reselect)
		m.reselect = ""
	}
	if err := m.watcher.Watch(dir); err != nil {
		log.WarningLog.Printf("watch %s: %v", dir, err)
	}
	m.branch = gitinfo.Branch(dir)
}

func (m *home) View() string {
	paneHeight := m.height - 1 - m.sysmonRows()
	filesWidth := m.width * 2 / 3
	tasksWidth := m.width - filesWidth - 1

	filesView := lipgloss.NewStyle().
		Width(filesWidth).
		Height(paneHeight).
		MaxHeight(paneHeight).
		Render(m.fileList.String(m.dir, m.focus == paneFiles))

	taskCursor := -1
	if m.focus == paneTasks {
		taskCursor = m.taskCursor
	}
	tasksView := lipgloss.NewStyle().
		Width(tasksWidth).
		Height(paneHeight).
		MaxHeight(paneHeight).
		Render(m.taskPane.String(m.tasks.Tasks(), taskCursor))

	sep := lipgloss.NewStyle().
		Foreground(ui.ColorOverlay).
		Height(paneHeight).
		Render(verticalDivider(paneHeight))

	panes := lipgloss.JoinHorizontal(lipgloss.Top, filesView, sep, tasksView)

	m.statusBar.SetData(m.statusBarData())

	sections := make([]string, 0, 3)
	if rows := m.sysmonRows(); rows > 0 {
		sections = append(sections, lipgloss.NewStyle().
			Width(m.width).
			Height(rows).
			MaxHeight(rows).
			Render(m.sysMon.String(m.sysStats)))
	}
	sections = append(sections, panes, m.statusBar.String())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func verticalDivider(height int) string {
	if height < 1 {
		return ""
	}
	s := make([]byte, 0, height*4)
	for i := 0; i < height; i++ {
		s = append(s, "│"...)
		if i < height-1 {
			s = append(s, '\n')
		}
	}
	return string(s)
}

func (m *home) statusBarData() ui.StatusBarData {
	switch m.mode.kind {
	case modeMessage:
		return ui.StatusBarData{Mode: ui.BarMessage, Message: m.mode.text}
	case modeAsk:
		return ui.StatusBarData{Mode: ui.BarAsk, Prompt: m.mode.prompt}
	case modeEdit:
		return ui.StatusBarData{
			Mode:   ui.BarEdit,
			Prompt: m.mode.prompt,
			Input:  m.mode.input.View(),
		}
	}

	data := ui.StatusBarData{
		Mode:        ui.BarInfo,
		Selected:    m.dir.Selected(),
		Total:       len(m.dir.Files()),
		Position:    m.dir.SelectedIndex() + 1,
		MarkedCount: m.dir.MarkedCount(),
		Filter:      m.dir.Filter(),
		Branch:      m.branch,
	}
	return data
}

func (m *home) showMessage(text string) {
	m.mode = mode{
		kind:      modeMessage,
		text:      text,
		expiresAt: time.Now().Add(m.cfg.MessageTimeout()),
	}
}

// parentSelectName is what to reselect after navigating to the parent: the
// directory we just left.
func parentSelectName(path string) string {
	return filepath.Base(path)
}
