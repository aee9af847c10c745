package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fin-sh/fin/internal/sentry"
)

var logFileName = filepath.Join(os.TempDir(), "fin.log")

var (
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger
)

var globalLogFile *os.File

// Initialize opens the log file and sets up the package loggers. Logging to
// stdout or stderr is not an option here: the TUI owns the terminal, so
// everything goes to a file instead. Errors and warnings additionally feed
// the crash reporter (a no-op until telemetry is initialized). Call Close
// on exit.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		f = os.Stderr
	}

	var infoW io.Writer = sentry.NewWriter(f, sentry.LevelInfo)
	var warnW io.Writer = sentry.NewWriter(f, sentry.LevelWarning)
	var errW io.Writer = sentry.NewWriter(f, sentry.LevelError)

	InfoLog = log.New(infoW, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(warnW, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(errW, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	globalLogFile = f
}

// Close closes the log file. If nothing was ever logged, the empty file is
// removed again.
func Close() {
	if globalLogFile == nil || globalLogFile == os.Stderr {
		return
	}
	stat, statErr := globalLogFile.Stat()
	_ = globalLogFile.Close()
	if statErr == nil && stat.Size() == 0 {
		_ = os.Remove(logFileName)
	} else if statErr == nil {
		fmt.Printf("fin log written to %s\n", logFileName)
	}
	globalLogFile = nil
}
