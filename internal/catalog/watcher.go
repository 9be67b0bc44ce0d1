package catalog

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to the direct children of a themes root.
// Bursts of events collapse into a single pending notification.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	changes chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewWatcher creates a watcher for root. Call Start to begin watching.
func NewWatcher(root string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher: watcher,
		root:    filepath.Clean(root),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}, nil
}

// Changes delivers a value after the themes root gained, lost or renamed
// an entry. It is closed once a started watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching the themes root.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.root); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.watcher.Close()
		return err
	}

	go w.watch()
	return nil
}

func (w *Watcher) watch() {
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Dir(filepath.Clean(event.Name)) != w.root {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				slog.Debug("themes root changed", "path", event.Name, "op", event.Op.String())
				w.signal()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("theme watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
