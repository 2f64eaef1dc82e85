package watcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/tabby/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// defaultWindow is the debounce window for coalescing bursts of events.
// Spreadsheet editors save through temp-file renames, which show up as
// several events in quick succession.
const defaultWindow = 500 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	logger ports.Logger
	window time.Duration
}

// NewWatcher creates a file system watcher.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{logger: logger, window: defaultWindow}
}

// Watch observes dir until ctx is done. Changed paths are debounced and
// delivered in batches to onChange. The watch is flat: collected
// workbooks live directly in the profile root.
func (w *Watcher) Watch(ctx context.Context, dir string, onChange func(paths []string)) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file system watcher")
	}
	defer func() {
		if err := fsWatcher.Close(); err != nil {
			w.logger.Warn("failed to close file system watcher: " + err.Error())
		}
	}()

	if err := fsWatcher.Add(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
	}

	debouncer := NewDebouncer(w.window, onChange)
	defer debouncer.Flush()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if relevant(event) {
				debouncer.Add(event.Name)
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file system watch error: " + err.Error())
		}
	}
}

// relevant filters the event kinds that can change collected data.
func relevant(event fsnotify.Event) bool {
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}
