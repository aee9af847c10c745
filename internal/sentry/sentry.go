package sentry

import (
	"runtime"
	"time"

	gosentry "github.com/getsentry/sentry-go"
)

// dsn is injected at build time via -ldflags "-X .../internal/sentry.dsn=...".
// When empty, every function in this package is a safe no-op.
var dsn = ""

// enabled tracks whether sentry was successfully initialized.
var enabled bool

// Init initializes the Sentry SDK. When telemetryEnabled is false or no DSN
// was compiled in, it no-ops silently.
func Init(version string, telemetryEnabled bool) error {
	if !telemetryEnabled || dsn == "" {
		enabled = false
		return nil
	}

	err := gosentry.Init(gosentry.ClientOptions{
		Dsn:              dsn,
		Release:          "fin@" + version,
		AttachStacktrace: true,
		SampleRate:       1.0,
	})
	if err != nil {
		return err
	}

	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("version", version)
	})

	enabled = true
	return nil
}

// IsEnabled returns whether sentry is active.
func IsEnabled() bool {
	return enabled
}

// Flush waits up to 2 seconds for buffered events to be sent.
func Flush() {
	if !enabled {
		return
	}
	gosentry.Flush(2 * time.Second)
}

// RecoverPanic captures a panic to Sentry, flushes, then re-panics.
// Usage: defer sentry.RecoverPanic()
func RecoverPanic() {
	if !enabled {
		return
	}
	if err := recover(); err != nil {
		gosentry.CurrentHub().Recover(err)
		gosentry.Flush(2 * time.Second)
		panic(err)
	}
}
