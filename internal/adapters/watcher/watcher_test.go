package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/tabby/internal/adapters/watcher"
	"go.trai.ch/tabby/internal/core/ports/mocks"
)

func TestWatcher_ReportsFileChanges(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	w := watcher.NewWatcher(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan []string, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, dir, func(paths []string) {
			select {
			case changed <- paths:
			default:
			}
		})
	}()

	// Give the watch a moment to attach before producing events.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "jan.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	select {
	case paths := <-changed:
		require.Contains(t, paths, path)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for watch to stop")
	}
}
