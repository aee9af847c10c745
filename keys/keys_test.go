package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryMappedKeyHasABinding(t *testing.T) {
	for str, name := range GlobalKeyStringsMap {
		_, ok := GlobalkeyBindings[name]
		assert.True(t, ok, "key %q maps to %v which has no binding", str, name)
	}
}

func TestVimNavigationAliases(t *testing.T) {
	assert.Equal(t, KeyUp, GlobalKeyStringsMap["k"])
	assert.Equal(t, KeyDown, GlobalKeyStringsMap["j"])
	assert.Equal(t, KeyOpen, GlobalKeyStringsMap["l"])
	assert.Equal(t, KeyParent, GlobalKeyStringsMap["h"])
	assert.Equal(t, KeyTop, GlobalKeyStringsMap["g"])
	assert.Equal(t, KeyBottom, GlobalKeyStringsMap["G"])
}

func TestPromptOpeningKeys(t *testing.T) {
	assert.Equal(t, KeyDelete, GlobalKeyStringsMap["d"])
	assert.Equal(t, KeyRename, GlobalKeyStringsMap["r"])
	assert.Equal(t, KeyFilter, GlobalKeyStringsMap["/"])
	assert.Equal(t, KeyRunTask, GlobalKeyStringsMap["!"])
}

func TestTaskPaneKeys(t *testing.T) {
	assert.Equal(t, KeyStopTask, GlobalKeyStringsMap["z"])
	assert.Equal(t, KeyTermTask, GlobalKeyStringsMap["t"])
	assert.Equal(t, KeyKillTask, GlobalKeyStringsMap["9"])
	assert.Equal(t, KeyClearTasks, GlobalKeyStringsMap["c"])
}
