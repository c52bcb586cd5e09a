// ABOUTME: Watches the media directory for changes via fsnotify
// ABOUTME: Coalesces bursts of filesystem events into single reload signals

package library

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher raises a coalesced signal whenever the watched directory's
// contents change, so the event loop can reload the file list. Bursts of
// filesystem events (e.g. a batch copy) collapse into one pending signal.
type Watcher struct {
	fsw    *fsnotify.Watcher
	events chan struct{}
	done   chan struct{}
}

// Watch starts watching dir for create, remove, and rename events
func Watch(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	go w.run()

	return w, nil
}

// Events returns the coalesced change signal channel. The channel is
// buffered with capacity one; at most one signal is pending at a time.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher and releases its resources
func (w *Watcher) Close() error {
	close(w.done)

	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			// Writes to file contents don't change the listing
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}

			select {
			case w.events <- struct{}{}:
			default:
				// A reload is already pending
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the UI keeps its current list
		}
	}
}
