package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitScript_Fish(t *testing.T) {
	script, err := InitScript("fish")
	require.NoError(t, err)

	assert.Contains(t, script, "function fin_run_with_echo")
	assert.Contains(t, script, "function fin_run_silently")
	assert.Contains(t, script, "function fin_deinit")
	assert.Contains(t, script, "SIGUSR1")
	assert.Contains(t, script, "fin pid")
}

func TestInitScript_Zsh(t *testing.T) {
	script, err := InitScript("zsh")
	require.NoError(t, err)

	assert.Contains(t, script, "fin_run_with_echo")
	assert.Contains(t, script, "fin_run_silently")
	assert.Contains(t, script, "fin_deinit")
	assert.Contains(t, script, "fin pid")
}

func TestInitScript_PathArgument(t *testing.T) {
	// "$SHELL" style arguments work too.
	_, err := InitScript("/usr/bin/fish")
	require.NoError(t, err)
}

func TestInitScript_UnknownShell(t *testing.T) {
	_, err := InitScript("powershell")
	assert.Error(t, err)
}
