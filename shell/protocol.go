package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// The bridge rendezvous points. Both sides create them lazily because the
// start order between fin and the shell session is unspecified.
const (
	// EventsPath is the fifo the shell writes Events to.
	EventsPath = "/tmp/fin-shell-events"
	// CommandsPath is the fifo fin writes ready-to-type commands to.
	CommandsPath = "/tmp/fin-cmds-to-run"
)

// Kind discriminates the Event union.
type Kind string

const (
	// KindPid announces the shell's process id at startup.
	KindPid Kind = "pid"
	// KindCd announces that the shell's working directory changed.
	KindCd Kind = "cd"
	// KindExit announces that the shell exited.
	KindExit Kind = "exit"
	// KindTask asks fin to run and monitor a background task.
	KindTask Kind = "task"
	// KindError reports a bridge transport failure. Never sent by the shell
	// side; the reader loop synthesizes it when the fifo becomes unusable.
	KindError Kind = "error"
)

// Event is the message exchanged over the events fifo.
type Event struct {
	Kind     Kind   `json:"kind"`
	Pid      int    `json:"pid,omitempty"`
	Dir      string `json:"dir,omitempty"`
	Command  string `json:"command,omitempty"`
	Rendered string `json:"rendered,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ensureFifo creates the fifo if it does not exist yet. Racing with the shell
// side is fine: whoever loses the race sees EEXIST.
func ensureFifo(path string) error {
	err := unix.Mkfifo(path, 0o700)
	if err != nil && !errors.Is(err, unix.EEXIST) {
		return fmt.Errorf("mkfifo %s: %w", path, err)
	}
	return nil
}

// SendEvent writes an event to the events fifo. This is the shell-side half
// of the protocol, called from the fin subcommands the init script installs.
// It blocks until the fin instance opens the fifo for reading.
func SendEvent(e Event) error {
	if err := ensureFifo(EventsPath); err != nil {
		return err
	}
	f, err := os.OpenFile(EventsPath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", EventsPath, err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(e); err != nil {
		return fmt.Errorf("encode shell event: %w", err)
	}
	return nil
}

// ReceiveCommand reads one pending command from the commands fifo. This is
// the shell-side half: the SIGUSR1 handler evals whatever this returns.
func ReceiveCommand() (string, error) {
	if err := ensureFifo(CommandsPath); err != nil {
		return "", err
	}
	f, err := os.Open(CommandsPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", CommandsPath, err)
	}
	defer f.Close()
	buf, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read command: %w", err)
	}
	return string(buf), nil
}
