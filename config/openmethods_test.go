package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOpenMethods_InvertsCommandGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), OpenMethodsFileName)
	content := `
mpv = ["mkv", "mp4", "webm"]
imv = ["png", "jpg"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	methods, err := loadOpenMethods(path)
	require.NoError(t, err)

	assert.Equal(t, "mpv", methods.OpenerFor("mkv"))
	assert.Equal(t, "mpv", methods.OpenerFor("webm"))
	assert.Equal(t, "imv", methods.OpenerFor("png"))
}

func TestLoadOpenMethods_MissingFileMeansDefaults(t *testing.T) {
	methods, err := loadOpenMethods(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Empty(t, methods)
	assert.Equal(t, DefaultOpener, methods.OpenerFor("pdf"))
}

func TestLoadOpenMethods_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), OpenMethodsFileName)
	require.NoError(t, os.WriteFile(path, []byte(`mpv = not-toml`), 0o644))

	_, err := loadOpenMethods(path)
	assert.Error(t, err)
}

func TestOpenerFor_FallsBackToDefault(t *testing.T) {
	methods := OpenMethods{"pdf": "zathura"}
	assert.Equal(t, "zathura", methods.OpenerFor("pdf"))
	assert.Equal(t, DefaultOpener, methods.OpenerFor("docx"))
}
