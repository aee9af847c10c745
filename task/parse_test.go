package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParserFor(t *testing.T) {
	assert.Equal(t, parserCurl, parserFor("curl -LO https://example.com/big.iso"))
	assert.Equal(t, parserCurl, parserFor("/usr/bin/curl https://example.com"))
	assert.Equal(t, parserGeneric, parserFor("make -j8"))
	assert.Equal(t, parserGeneric, parserFor("curling-tournament --start"))
}

func TestDeriveStatus_CurlProgress(t *testing.T) {
	// A progress meter line the way curl writes them over stderr.
	line := " 42  1538M   42  646M    0     0   980k      0  0:02:30  0:01:03  0:01:27  980k"
	got := deriveStatus("curl -LO https://example.com/big.iso", line)
	assert.Equal(t, "980k/s 42%", got)
}

func TestDeriveStatus_CurlNonProgressLineFallsBack(t *testing.T) {
	got := deriveStatus("curl https://example.com", "curl: (6) Could not resolve host: example.com!")
	assert.Equal(t, runningIndicator, got)
}

func TestDeriveStatus_GenericCommand(t *testing.T) {
	got := deriveStatus("make -j8", "CC src/main.o")
	assert.Equal(t, "Running", got)
}
