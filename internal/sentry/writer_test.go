package sentry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_InnerAlwaysWritten(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, LevelError)

	line := []byte("ERROR: refresh: permission denied\n")
	n, err := w.Write(line)

	assert.NoError(t, err)
	assert.Equal(t, len(line), n)
	assert.Equal(t, string(line), buf.String())
}

func TestWriter_TelemetryOffStillWritesInner(t *testing.T) {
	enabled = false
	var buf bytes.Buffer
	w := NewWriter(&buf, LevelWarning)

	line := []byte("WARNING: watch /tmp: too many open files\n")
	n, err := w.Write(line)

	assert.NoError(t, err)
	assert.Equal(t, len(line), n)
	assert.Equal(t, string(line), buf.String())
}
