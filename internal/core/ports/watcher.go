package ports

import "context"

// Watcher observes a directory tree and reports batched change events.
type Watcher interface {
	// Watch blocks until ctx is done, invoking onChange with coalesced
	// batches of changed paths.
	Watch(ctx context.Context, dir string, onChange func(paths []string)) error
}
