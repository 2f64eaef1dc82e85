package watcher_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/tabby/internal/adapters/watcher"
)

// batchRecorder collects debouncer callback invocations.
type batchRecorder struct {
	mu      sync.Mutex
	batches [][]string
	fired   chan struct{}
}

func newBatchRecorder() *batchRecorder {
	return &batchRecorder{fired: make(chan struct{}, 16)}
}

func (r *batchRecorder) record(paths []string) {
	r.mu.Lock()
	r.batches = append(r.batches, paths)
	r.mu.Unlock()
	r.fired <- struct{}{}
}

func (r *batchRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for debounce callback")
	}
}

func (r *batchRecorder) all() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batches
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	t.Parallel()

	rec := newBatchRecorder()
	d := watcher.NewDebouncer(50*time.Millisecond, rec.record)

	d.Add("a")
	d.Add("b")
	d.Add("a") // duplicates collapse

	rec.wait(t)

	batches := rec.all()
	require.Len(t, batches, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, batches[0])
}

func TestDebouncer_FlushDeliversImmediately(t *testing.T) {
	t.Parallel()

	rec := newBatchRecorder()
	d := watcher.NewDebouncer(time.Hour, rec.record)

	d.Add("a")
	d.Flush()

	batches := rec.all()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"a"}, batches[0])
}

func TestDebouncer_FlushWithoutPendingIsQuiet(t *testing.T) {
	t.Parallel()

	rec := newBatchRecorder()
	d := watcher.NewDebouncer(time.Hour, rec.record)

	d.Flush()
	assert.Empty(t, rec.all())
}

func TestDebouncer_SeparateWindowsSeparateBatches(t *testing.T) {
	t.Parallel()

	rec := newBatchRecorder()
	d := watcher.NewDebouncer(30*time.Millisecond, rec.record)

	d.Add("a")
	rec.wait(t)
	d.Add("b")
	rec.wait(t)

	batches := rec.all()
	require.Len(t, batches, 2)
	assert.Equal(t, []string{"a"}, batches[0])
	assert.Equal(t, []string{"b"}, batches[1])
}
