package task

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fin-sh/fin/log"
)

// EventKind discriminates Event.
type EventKind int

const (
	// EventStdout carries one line of the child's standard output.
	EventStdout EventKind = iota
	// EventStderr carries one line of the child's standard error.
	EventStderr
	// EventExited is emitted exactly once, when the child has been reaped.
	EventExited
)

// Event is a task update, tagged with the task's process id.
type Event struct {
	PID      int
	Kind     EventKind
	Line     string
	ExitCode int
}

// StatusKind discriminates Status.
type StatusKind int

const (
	// StatusRunning means the child is alive; Text holds the derived summary.
	StatusRunning StatusKind = iota
	// StatusStopped means the user paused the task with SIGINT. Cosmetic
	// until the process actually reacts.
	StatusStopped
	// StatusExited means the child has been reaped.
	StatusExited
)

// Status is a task's lifecycle state plus its one-line display summary.
type Status struct {
	Kind     StatusKind
	Text     string
	ExitCode int
}

// Success reports whether the task exited cleanly.
func (s Status) Success() bool {
	return s.Kind == StatusExited && s.ExitCode == 0
}

// Task is one supervised background command.
type Task struct {
	PID      int
	Command  string
	Rendered string
	Status   Status
	Started  time.Time

	// Held open for the task's lifetime so children reading stdin see an
	// open pipe instead of EOF.
	stdin io.WriteCloser
}

// start launches command through the user's shell with piped stdio and spawns
// the two reader goroutines. Spawn failures return an error and leave no
// trace: no Task, no goroutines.
func start(command, rendered string, emit func(Event)) (*Task, error) {
	sh := os.Getenv("SHELL")
	if sh == "" {
		sh = "sh"
	}
	arg := command
	if strings.HasSuffix(sh, "fish") {
		// fish keeps itself in the foreground otherwise, hiding the real
		// child's pid from us.
		arg = "exec " + command
	}
	cmd := exec.Command(sh, "-c", arg)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %q: %w", command, err)
	}

	t := &Task{
		PID:      cmd.Process.Pid,
		Command:  command,
		Rendered: rendered,
		Status:   Status{Kind: StatusRunning, Text: runningIndicator},
		Started:  time.Now(),
		stdin:    stdin,
	}

	// The stdout reader owns reaping: it drains the stream, waits, and emits
	// the one terminal event. Doing both in one goroutine guarantees the
	// child is reaped exactly once and never leaks as a zombie.
	go func() {
		readLines(stdout, t.PID, EventStdout, emit)
		err := cmd.Wait()
		code := cmd.ProcessState.ExitCode()
		if err != nil && code < 0 {
			log.WarningLog.Printf("task %d: wait: %v", t.PID, err)
		}
		emit(Event{PID: t.PID, Kind: EventExited, ExitCode: code})
	}()
	go readLines(stderr, t.PID, EventStderr, emit)

	return t, nil
}

// readLines splits r on carriage returns and emits one event per line.
// Carriage returns, not newlines: progress meters that redraw a single line
// via \r become a stream of discrete status updates instead of one giant line.
func readLines(r io.Reader, pid int, kind EventKind, emit func(Event)) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(scanCarriageReturns)
	for scanner.Scan() {
		emit(Event{PID: pid, Kind: kind, Line: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		log.WarningLog.Printf("task %d: read output: %v", pid, err)
	}
}

// scanCarriageReturns is a bufio.SplitFunc splitting on '\r', with the final
// unterminated chunk emitted at EOF.
func scanCarriageReturns(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\r'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
