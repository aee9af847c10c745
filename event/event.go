// Package event merges fin's asynchronous input sources into a single
// ordered stream consumed by the one state-mutating Update loop.
package event

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/fin-sh/fin/shell"
	"github.com/fin-sh/fin/task"
)

// TickMsg is the periodic timer event.
type TickMsg time.Time

// FSMsg is a raw filesystem notification for the watched directory.
type FSMsg fsnotify.Event

// ShellMsg is an event received over the shell bridge.
type ShellMsg shell.Event

// TaskMsg is a task supervisor update.
type TaskMsg task.Event

// Mux hands events from producer goroutines to the single consumer. The
// channel is unbuffered on purpose: each producer blocks inside Emit until
// the consumer accepts, so nothing is dropped and nothing queues up —
// backpressure all the way to the blocking read each producer sits on.
// Key input is not routed through the Mux; the terminal program delivers it
// into the same Update loop directly, in typed order.
type Mux struct {
	c chan tea.Msg
}

// NewMux returns a ready Mux.
func NewMux() *Mux {
	return &Mux{c: make(chan tea.Msg)}
}

// Emit hands one event to the consumer, blocking until it is accepted.
func (m *Mux) Emit(msg tea.Msg) {
	m.c <- msg
}

// Next returns a command that blocks until the next event arrives. The
// consumer must re-arm it after every delivered event to keep the stream
// flowing. Events from the same producer arrive in that producer's order;
// no ordering holds across producers.
func (m *Mux) Next() tea.Cmd {
	return func() tea.Msg {
		return <-m.c
	}
}

// StartTicker starts the periodic timer producer.
func (m *Mux) StartTicker(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for t := range ticker.C {
			m.Emit(TickMsg(t))
		}
	}()
}
