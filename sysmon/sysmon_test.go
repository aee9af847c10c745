package sysmon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	m := New()

	s, err := m.Sample()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, s.Load1, 0.0)
	assert.Greater(t, s.Uptime, time.Duration(0))
	assert.GreaterOrEqual(t, s.MemPercent, 0)
	assert.LessOrEqual(t, s.MemPercent, 100)
	assert.GreaterOrEqual(t, s.CPUPercent, 0)
	assert.LessOrEqual(t, s.CPUPercent, 100)
}

func TestReadCPUCounters(t *testing.T) {
	idle, total, err := readCPUCounters()
	require.NoError(t, err)

	assert.Greater(t, total, uint64(0))
	assert.LessOrEqual(t, idle, total)
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		secs int64
		want string
	}{
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{90061, "1 day, 01:01:01"},
		{2*24*60*60 + 30, "2 days, 00:00:30"},
		{7 * 24 * 60 * 60, "1 week, 00:00:00"},
		{31*24*60*60 + 14*24*60*60, "1 month, 2 weeks, 00:00:00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatUptime(time.Duration(c.secs)*time.Second))
	}
}
