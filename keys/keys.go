package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyTop
	KeyBottom
	KeyOpen
	KeyParent
	KeyQuit

	KeyTab // Tab cycles focus between the file pane and the task pane.

	KeyToggleHidden
	KeyMark
	KeyPaste // Paste marked entries into the current directory (copy).
	KeyMove  // Move marked entries into the current directory.
	KeyDelete
	KeyRename
	KeyFilter
	KeyYank
	KeyRunTask

	// Task pane keybindings
	KeyStopTask
	KeyTermTask
	KeyKillTask
	KeyClearTasks
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":    KeyUp,
	"k":     KeyUp,
	"down":  KeyDown,
	"j":     KeyDown,
	"g":     KeyTop,
	"G":     KeyBottom,
	"enter": KeyOpen,
	"l":     KeyOpen,
	"right": KeyOpen,
	"h":     KeyParent,
	"left":  KeyParent,
	"esc":   KeyParent,
	"q":     KeyQuit,
	"tab":   KeyTab,
	".":     KeyToggleHidden,
	" ":     KeyMark,
	"p":     KeyPaste,
	"m":     KeyMove,
	"d":     KeyDelete,
	"r":     KeyRename,
	"/":     KeyFilter,
	"y":     KeyYank,
	"!":     KeyRunTask,
	"z":     KeyStopTask,
	"t":     KeyTermTask,
	"9":     KeyKillTask,
	"c":     KeyClearTasks,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyTop: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "top"),
	),
	KeyBottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "bottom"),
	),
	KeyOpen: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("↵/l", "open"),
	),
	KeyParent: key.NewBinding(
		key.WithKeys("h", "left", "esc"),
		key.WithHelp("h", "parent dir"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	KeyToggleHidden: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "hidden files"),
	),
	KeyMark: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "mark"),
	),
	KeyPaste: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "paste marked"),
	),
	KeyMove: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move marked"),
	),
	KeyDelete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	KeyRename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	KeyFilter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	KeyYank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	KeyRunTask: key.NewBinding(
		key.WithKeys("!"),
		key.WithHelp("!", "run task"),
	),
	KeyStopTask: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "stop task"),
	),
	KeyTermTask: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "terminate task"),
	),
	KeyKillTask: key.NewBinding(
		key.WithKeys("9"),
		key.WithHelp("9", "kill task"),
	),
	KeyClearTasks: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear finished"),
	),
}
