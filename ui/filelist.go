package ui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/fin-sh/fin/files"
)

var dirStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Bold(true)

var fileStyle = lipgloss.NewStyle().
	Foreground(ColorText)

var symlinkStyle = lipgloss.NewStyle().
	Foreground(ColorPine)

var execStyle = lipgloss.NewStyle().
	Foreground(ColorFoam)

var hiddenStyle = lipgloss.NewStyle().
	Foreground(ColorMuted)

var markStyle = lipgloss.NewStyle().
	Foreground(ColorRose)

var selectedRowStyle = lipgloss.NewStyle().
	Background(ColorOverlay)

var emptyDirStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Italic(true)

// FileList renders the directory listing pane.
type FileList struct {
	width, height int

	// scroll is the index of the first visible row.
	scroll int
}

func NewFileList() *FileList {
	return &FileList{}
}

func (l *FileList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// ensureVisible adjusts the scroll offset so the selected row is on screen.
func (l *FileList) ensureVisible(selected, total int) {
	if l.height <= 0 {
		l.scroll = 0
		return
	}
	if selected < l.scroll {
		l.scroll = selected
	}
	if selected >= l.scroll+l.height {
		l.scroll = selected - l.height + 1
	}
	if l.scroll > total-l.height {
		l.scroll = total - l.height
	}
	if l.scroll < 0 {
		l.scroll = 0
	}
}

func entryStyle(f files.FileInfo) lipgloss.Style {
	switch {
	case f.Info.Mode()&os.ModeSymlink != 0:
		return symlinkStyle
	case f.IsDir():
		return dirStyle
	case strings.HasPrefix(f.Name, "."):
		return hiddenStyle
	case f.Info.Mode()&0o111 != 0:
		return execStyle
	default:
		return fileStyle
	}
}

func entryLabel(f files.FileInfo) string {
	if f.IsDir() {
		return f.Name + string(filepath.Separator)
	}
	return f.Name
}

// String renders the listing for the given directory model.
func (l *FileList) String(d *files.Dir, focused bool) string {
	entries := d.Files()
	if len(entries) == 0 {
		return emptyDirStyle.Render("  (empty)")
	}

	l.ensureVisible(d.SelectedIndex(), len(entries))

	var b strings.Builder
	end := len(entries)
	if l.height > 0 && l.scroll+l.height < end {
		end = l.scroll + l.height
	}

	for i := l.scroll; i < end; i++ {
		f := entries[i]

		mark := "  "
		if d.IsMarked(f.Path) {
			mark = markStyle.Render("* ")
		}

		label := truncate.StringWithTail(entryLabel(f), uint(max(l.width-4, 4)), "…")
		row := mark + entryStyle(f).Render(label)

		if focused && i == d.SelectedIndex() {
			row = selectedRowStyle.Width(l.width).Render(row)
		}

		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
