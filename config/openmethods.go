package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const OpenMethodsFileName = "open-methods.toml"

// DefaultOpener handles any extension without a configured method.
const DefaultOpener = "xdg-open"

// OpenMethods maps a file extension (without dot) to the command that opens
// it. Built from open-methods.toml, which groups extensions per command:
//
//	mpv = ["mkv", "mp4", "webm"]
//	imv = ["png", "jpg"]
type OpenMethods map[string]string

// LoadOpenMethods reads open-methods.toml from the config directory. A
// missing file is not an error; every lookup just falls back to the default
// opener.
func LoadOpenMethods() (OpenMethods, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return OpenMethods{}, err
	}
	return loadOpenMethods(filepath.Join(configDir, OpenMethodsFileName))
}

func loadOpenMethods(path string) (OpenMethods, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OpenMethods{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var raw map[string][]string
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	methods := make(OpenMethods)
	for cmd, exts := range raw {
		for _, ext := range exts {
			methods[ext] = cmd
		}
	}
	return methods, nil
}

// OpenerFor returns the command that opens files with the given extension.
func (m OpenMethods) OpenerFor(ext string) string {
	if cmd, ok := m[ext]; ok {
		return cmd
	}
	return DefaultOpener
}
