package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureDir builds a directory containing a mix of dirs, files, and
// dotfiles so the sorting and filtering behaviors are observable.
func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".hidden-dir"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b-dir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden-file"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-file.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c-file.go"), nil, 0o644))

	return dir
}

func names(d *Dir) []string {
	out := make([]string, 0, len(d.Files()))
	for _, f := range d.Files() {
		out = append(out, f.Name)
	}
	return out
}

func TestCd_SortsDirectoriesFirst(t *testing.T) {
	d := NewDir()
	require.NoError(t, d.Cd(fixtureDir(t)))

	assert.Equal(t, []string{"b-dir", "a-file.txt", "c-file.go"}, names(d))
	require.NotNil(t, d.Selected())
	assert.Equal(t, "b-dir", d.Selected().Name)
}

func TestCd_FailureKeepsPreviousListing(t *testing.T) {
	d := NewDir()
	dir := fixtureDir(t)
	require.NoError(t, d.Cd(dir))

	err := d.Cd(filepath.Join(dir, "does-not-exist"))
	require.Error(t, err)

	assert.Equal(t, dir, d.Path())
	assert.Equal(t, []string{"b-dir", "a-file.txt", "c-file.go"}, names(d))
}

func TestToggleHidden_Idempotent(t *testing.T) {
	d := NewDir()
	require.NoError(t, d.Cd(fixtureDir(t)))

	visible := names(d)

	d.ToggleHidden()
	assert.Equal(t, []string{".hidden-dir", "b-dir", ".hidden-file", "a-file.txt", "c-file.go"}, names(d))

	d.ToggleHidden()
	assert.Equal(t, visible, names(d))
}

func TestSetFilter_CaseInsensitiveAndIdempotent(t *testing.T) {
	d := NewDir()
	require.NoError(t, d.Cd(fixtureDir(t)))

	d.SetFilter("FILE")
	assert.Equal(t, []string{"a-file.txt", "c-file.go"}, names(d))

	// Re-applying the same filter must not change the view.
	d.SetFilter("FILE")
	assert.Equal(t, []string{"a-file.txt", "c-file.go"}, names(d))

	d.SetFilter("")
	assert.Equal(t, []string{"b-dir", "a-file.txt", "c-file.go"}, names(d))
}

func TestSetFilter_PreservesSelectionByName(t *testing.T) {
	d := NewDir()
	require.NoError(t, d.Cd(fixtureDir(t)))

	d.SelectName("c-file.go")
	d.SetFilter("file")

	require.NotNil(t, d.Selected())
	assert.Equal(t, "c-file.go", d.Selected().Name)

	// When the selected name is filtered away, the cursor falls to the top.
	d.SetFilter("b-dir")
	require.NotNil(t, d.Selected())
	assert.Equal(t, "b-dir", d.Selected().Name)
}

func TestSelection_Wraps(t *testing.T) {
	d := NewDir()
	require.NoError(t, d.Cd(fixtureDir(t)))

	d.SelectLast()
	assert.Equal(t, "c-file.go", d.Selected().Name)

	d.SelectNext()
	assert.Equal(t, "b-dir", d.Selected().Name)

	d.SelectPrev()
	assert.Equal(t, "c-file.go", d.Selected().Name)
}

func TestMarks_ToggleAndTake(t *testing.T) {
	d := NewDir()
	dir := fixtureDir(t)
	require.NoError(t, d.Cd(dir))

	aPath := filepath.Join(dir, "a-file.txt")
	d.ToggleMark(aPath)
	d.ToggleMark("/elsewhere/other.txt")
	assert.Equal(t, 2, d.MarkedCount())
	assert.True(t, d.IsMarked(aPath))

	d.ToggleMark(aPath)
	assert.Equal(t, 1, d.MarkedCount())
	assert.False(t, d.IsMarked(aPath))

	d.ToggleMark(aPath)
	taken := d.TakeMarked()
	// Paths inside the current directory shorten to bare names.
	assert.Equal(t, []string{"/elsewhere/other.txt", "a-file.txt"}, taken)
	assert.Equal(t, 0, d.MarkedCount())
}

func TestRefresh_KeepsSelection(t *testing.T) {
	d := NewDir()
	dir := fixtureDir(t)
	require.NoError(t, d.Cd(dir))

	d.SelectName("c-file.go")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new-file"), nil, 0o644))
	require.NoError(t, d.Refresh())

	assert.Contains(t, names(d), "new-file")
	require.NotNil(t, d.Selected())
	assert.Equal(t, "c-file.go", d.Selected().Name)
}
