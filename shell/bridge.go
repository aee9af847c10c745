package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/fin-sh/fin/log"
	"golang.org/x/sys/unix"
)

// Bridge connects fin to the user's interactive shell. Neither process is the
// other's child, so all state flows through the two fifos plus SIGUSR1 as a
// wake-up bell. The only shared mutable value is the shell pid: written by
// the inbound reader goroutine, read by Run.
type Bridge struct {
	pid atomic.Int32
}

// NewBridge creates both fifos. A failure here is fatal to startup: without
// the rendezvous paths the bridge can never attach.
func NewBridge() (*Bridge, error) {
	if err := ensureFifo(EventsPath); err != nil {
		return nil, err
	}
	if err := ensureFifo(CommandsPath); err != nil {
		return nil, err
	}
	return &Bridge{}, nil
}

// Pid returns the attached shell's pid, or 0 when no shell is attached.
func (b *Bridge) Pid() int {
	return int(b.pid.Load())
}

// Listen starts the inbound reader goroutine. Every event read from the
// events fifo is handed to emit, which blocks until the consumer loop
// accepts it. Pid events additionally update the bridge's own pid before
// being forwarded.
func (b *Bridge) Listen(emit func(Event)) {
	go func() {
		for {
			// Opening a fifo for reading blocks until a writer shows up,
			// and a completed read means EOF until the next writer opens it.
			// Hence the reopen loop.
			f, err := os.Open(EventsPath)
			if err != nil {
				log.ErrorLog.Printf("shell bridge: open events fifo: %v", err)
				// The reader is dead from here on. Tell the consumer loop so
				// the failure shows up on screen instead of only in the log.
				emit(Event{Kind: KindError, Error: fmt.Sprintf("events fifo: %v", err)})
				return
			}
			buf, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				log.WarningLog.Printf("shell bridge: read events fifo: %v", err)
				continue
			}
			b.dispatch(buf, emit)
		}
	}()
}

// dispatch decodes every event in buf. Multiple writers may have raced on
// the fifo, so the buffer can hold more than one JSON document. A payload
// that fails to decode is logged and discarded rather than taking down the
// reader loop.
func (b *Bridge) dispatch(buf []byte, emit func(Event)) {
	dec := json.NewDecoder(bytes.NewReader(buf))
	for {
		var e Event
		if err := dec.Decode(&e); err == io.EOF {
			return
		} else if err != nil {
			log.WarningLog.Printf("shell bridge: discarding malformed payload: %v", err)
			return
		}
		if e.Kind == KindPid {
			b.pid.Store(int32(e.Pid))
		}
		emit(e)
	}
}

// renderCommand joins cmd and args into one shell-ready line. Each arg is
// single-quoted, with embedded single quotes escaped the POSIX way. Args
// replace a literal "{}" placeholder in cmd when present, otherwise they
// are appended.
func renderCommand(cmd string, args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
	}
	joined := strings.Join(quoted, " ")

	if strings.Contains(cmd, "{}") {
		return strings.ReplaceAll(cmd, "{}", joined)
	}
	if joined == "" {
		return cmd
	}
	return cmd + " " + joined
}

// Run executes cmd in the attached shell. args are substituted for a literal
// "{}" placeholder, or appended single-quoted when cmd has no placeholder.
// With echo the command is inserted into the shell's input line and executed
// (visible, added to history); without it the shell evaluates it silently and
// repaints its prompt.
//
// When no shell is attached this is a silent no-op: commands are dropped,
// never queued. The transport has no acknowledgement, so at most one command
// may be in flight at a time.
func (b *Bridge) Run(cmd string, args []string, echo bool) error {
	pid := b.Pid()
	if pid <= 0 {
		return nil
	}

	full := renderCommand(cmd, args)

	wrapper := "fin_run_silently"
	if echo {
		wrapper = "fin_run_with_echo"
	}
	line := fmt.Sprintf("%s %q", wrapper, full)

	// Wake the shell first: its SIGUSR1 handler opens the commands fifo for
	// reading, which is what unblocks our write-side open below.
	if err := unix.Kill(pid, unix.SIGUSR1); err != nil {
		return fmt.Errorf("notify shell %d: %w", pid, err)
	}
	f, err := os.OpenFile(CommandsPath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", CommandsPath, err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	return nil
}

// Cd changes the attached shell's working directory without echoing.
func (b *Bridge) Cd(dir string) error {
	return b.Run("cd", []string{dir}, false)
}

// Deinit asks the shell to remove the functions the init script installed.
// Best effort: the shell may already be gone.
func (b *Bridge) Deinit() {
	if err := b.Run("fin_deinit", nil, false); err != nil {
		log.WarningLog.Printf("shell bridge: deinit: %v", err)
	}
}

// Cleanup removes the fifos on shutdown.
func (b *Bridge) Cleanup() {
	_ = os.Remove(EventsPath)
	_ = os.Remove(CommandsPath)
}
