package sentry

import (
	"io"
	"strings"

	gosentry "github.com/getsentry/sentry-go"
)

// Level is the severity a Writer reports under.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// Writer tees fin's log output to telemetry. Every line still lands in the
// log file; when telemetry is on, error lines additionally become Sentry
// events and warning/info lines become breadcrumbs attached to the next one.
type Writer struct {
	inner io.Writer
	level Level
}

// NewWriter wraps inner for the given severity.
func NewWriter(inner io.Writer, level Level) *Writer {
	return &Writer{inner: inner, level: level}
}

func (w *Writer) Write(p []byte) (int, error) {
	// The log file write happens unconditionally, telemetry or not.
	n, err := w.inner.Write(p)

	if !enabled {
		return n, err
	}

	line := strings.TrimSpace(string(p))
	if line == "" {
		return n, err
	}

	switch w.level {
	case LevelError:
		gosentry.CaptureMessage(line)
	case LevelWarning:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
			Level:    gosentry.LevelWarning,
			Category: "log",
			Message:  line,
		})
	case LevelInfo:
		gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
			Level:    gosentry.LevelInfo,
			Category: "log",
			Message:  line,
		})
	}

	return n, err
}
