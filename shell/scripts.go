package shell

import (
	_ "embed"
	"fmt"
	"path/filepath"
)

//go:embed fin.fish
var fishInit string

//go:embed fin.zsh
var zshInit string

// InitScript returns the integration script for the named shell. The name
// may be a bare shell name or a full path like $SHELL.
func InitScript(name string) (string, error) {
	switch filepath.Base(name) {
	case "fish":
		return fishInit, nil
	case "zsh":
		return zshInit, nil
	default:
		return "", fmt.Errorf("unsupported shell %q (fish and zsh are supported)", name)
	}
}
