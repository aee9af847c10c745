package files

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/fin-sh/fin/log"
)

// Watcher watches exactly one directory at a time and forwards raw
// notifications to emit. emit blocks until the consumer loop accepts, which
// is the backpressure the whole event path relies on.
type Watcher struct {
	fsw *fsnotify.Watcher
	dir string
}

// NewWatcher creates the watcher and starts its forwarding goroutine.
func NewWatcher(emit func(fsnotify.Event)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	go func() {
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				emit(ev)
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				log.WarningLog.Printf("fs watcher: %v", err)
			}
		}
	}()
	return &Watcher{fsw: fsw}, nil
}

// Watch moves the watch to dir, dropping the previous directory.
func (w *Watcher) Watch(dir string) error {
	if w.dir != "" {
		if err := w.fsw.Remove(w.dir); err != nil {
			log.WarningLog.Printf("fs watcher: unwatch %s: %v", w.dir, err)
		}
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Close tears down the watcher; the forwarding goroutine exits when the
// channels close.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// RelevantOp reports whether a notification kind should trigger a refresh of
// the listing.
func RelevantOp(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Remove) ||
		op.Has(fsnotify.Write) || op.Has(fsnotify.Rename)
}
