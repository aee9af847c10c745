// Package files holds the directory model: enumeration, sorting, filtering,
// marking, and cursor state for the listing fin renders.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo describes one directory entry.
type FileInfo struct {
	Path string
	Name string
	Ext  string
	Info os.FileInfo
}

// IsDir reports whether the entry is a directory.
func (f FileInfo) IsDir() bool {
	return f.Info != nil && f.Info.IsDir()
}

// Dir is the model of the currently watched directory. All mutation happens
// on the consumer loop's goroutine.
type Dir struct {
	path       string
	all        []FileInfo
	visible    []FileInfo
	marked     []string
	filter     string
	showHidden bool
	selected   int
}

// NewDir returns an empty model; call Cd to load a directory into it.
func NewDir() *Dir {
	return &Dir{selected: -1}
}

// Path returns the current directory.
func (d *Dir) Path() string {
	return d.path
}

// Cd switches the model to dir. On enumeration failure the model keeps its
// previous directory and listing.
func (d *Dir) Cd(dir string) error {
	if dir == d.path {
		return nil
	}
	entries, err := readDir(dir)
	if err != nil {
		return err
	}
	d.path = dir
	d.all = entries
	d.selected = -1
	d.applyFilter()
	d.SelectFirst()
	return nil
}

// Refresh re-enumerates the current directory, keeping filter settings and
// the selection (by name) intact.
func (d *Dir) Refresh() error {
	entries, err := readDir(d.path)
	if err != nil {
		return err
	}
	d.all = entries
	d.applyFilter()
	return nil
}

func readDir(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and stat; the watcher will
			// trigger another refresh.
			continue
		}
		name := entry.Name()
		infos = append(infos, FileInfo{
			Path: filepath.Join(dir, name),
			Name: name,
			Ext:  strings.TrimPrefix(filepath.Ext(name), "."),
			Info: info,
		})
	}
	// Directories before files, then by name.
	sort.SliceStable(infos, func(i, j int) bool {
		a, b := infos[i], infos[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return a.Name < b.Name
	})
	return infos, nil
}

// SetFilter applies a case-insensitive substring filter.
func (d *Dir) SetFilter(s string) {
	d.filter = s
	d.applyFilter()
}

// Filter returns the active filter string.
func (d *Dir) Filter() string {
	return d.filter
}

// ToggleHidden flips the hidden-file setting and re-filters.
func (d *Dir) ToggleHidden() {
	d.showHidden = !d.showHidden
	d.applyFilter()
}

// ShowHidden reports whether dotfiles are listed.
func (d *Dir) ShowHidden() bool {
	return d.showHidden
}

// applyFilter recomputes the visible listing, keeping the selection on the
// same name when that name survives the filter.
func (d *Dir) applyFilter() {
	var keep string
	if f := d.Selected(); f != nil {
		keep = f.Name
	}
	needle := strings.ToLower(d.filter)
	d.visible = d.visible[:0]
	for _, f := range d.all {
		if !d.showHidden && strings.HasPrefix(f.Name, ".") {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(f.Name), needle) {
			continue
		}
		d.visible = append(d.visible, f)
	}
	if keep != "" {
		d.SelectName(keep)
	} else {
		d.SelectFirst()
	}
}

// Files returns the visible listing in display order.
func (d *Dir) Files() []FileInfo {
	return d.visible
}

// Selected returns the entry under the cursor, or nil.
func (d *Dir) Selected() *FileInfo {
	if d.selected < 0 || d.selected >= len(d.visible) {
		return nil
	}
	return &d.visible[d.selected]
}

// SelectedIndex returns the cursor position, -1 when the listing is empty.
func (d *Dir) SelectedIndex() int {
	if d.selected >= len(d.visible) {
		return -1
	}
	return d.selected
}

// SelectFirst moves the cursor to the top of the listing.
func (d *Dir) SelectFirst() {
	if len(d.visible) == 0 {
		d.selected = -1
		return
	}
	d.selected = 0
}

// SelectLast moves the cursor to the bottom of the listing.
func (d *Dir) SelectLast() {
	d.selected = len(d.visible) - 1
}

// SelectNext moves the cursor down, wrapping at the bottom.
func (d *Dir) SelectNext() {
	if len(d.visible) == 0 {
		return
	}
	if d.selected < 0 {
		d.selected = 0
		return
	}
	d.selected = (d.selected + 1) % len(d.visible)
}

// SelectPrev moves the cursor up, wrapping at the top.
func (d *Dir) SelectPrev() {
	if len(d.visible) == 0 {
		return
	}
	if d.selected <= 0 {
		d.selected = len(d.visible) - 1
		return
	}
	d.selected--
}

// SelectName puts the cursor on the named entry, falling back to the top.
func (d *Dir) SelectName(name string) {
	for i, f := range d.visible {
		if f.Name == name {
			d.selected = i
			return
		}
	}
	d.SelectFirst()
}

// ToggleMark marks or unmarks a path.
func (d *Dir) ToggleMark(path string) {
	for i, p := range d.marked {
		if p == path {
			d.marked = append(d.marked[:i], d.marked[i+1:]...)
			return
		}
	}
	d.marked = append(d.marked, path)
}

// IsMarked reports whether a path is marked.
func (d *Dir) IsMarked(path string) bool {
	for _, p := range d.marked {
		if p == path {
			return true
		}
	}
	return false
}

// MarkedCount returns the number of marked paths.
func (d *Dir) MarkedCount() int {
	return len(d.marked)
}

// TakeMarked clears and returns the marked paths, shortened to bare names
// when they live in the current directory. The shortened form is what gets
// typed into the shell.
func (d *Dir) TakeMarked() []string {
	marked := d.marked
	d.marked = nil
	out := make([]string, len(marked))
	for i, p := range marked {
		if filepath.Dir(p) == d.path {
			out[i] = filepath.Base(p)
		} else {
			out[i] = p
		}
	}
	return out
}
