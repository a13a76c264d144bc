package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/lattice/internal/pubsub"
	"github.com/zjrosen/lattice/internal/watcher"
)

func startWatcher(t *testing.T, path string) (<-chan pubsub.Event[watcher.Event], *watcher.Watcher) {
	t.Helper()

	w, err := watcher.New(watcher.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch := w.Broker().Subscribe(ctx)

	require.NoError(t, w.Start(), "failed to start watcher")
	return ch, w
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte("a,b\n1,2\n"), 0644))

	onChange, _ := startWatcher(t, dataPath)

	// Rapid writes should coalesce into a single notification
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(dataPath, []byte(fmt.Sprintf("a,b\n%d,2\n", i)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case event := <-onChange:
		assert.Equal(t, pubsub.DatasetChangedEvent, event.Type)
		assert.Equal(t, dataPath, event.Payload.Path)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	// No second notification should come quickly
	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	otherPath := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(dataPath, []byte("a\n1\n"), 0644))
	// Pre-create the other file so writes to it are just Write events
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0644))

	onChange, _ := startWatcher(t, dataPath)

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0644))

	select {
	case <-onChange:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_SurvivesSaveByRename(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	tmpPath := filepath.Join(dir, "data.csv.tmp")
	require.NoError(t, os.WriteFile(dataPath, []byte("a\n1\n"), 0644))

	onChange, _ := startWatcher(t, dataPath)

	// Editors often write to a temp file and rename over the original.
	require.NoError(t, os.WriteFile(tmpPath, []byte("a\n2\n"), 0644))
	require.NoError(t, os.Rename(tmpPath, dataPath))

	select {
	case <-onChange:
	case <-time.After(300 * time.Millisecond):
		t.Fatal("expected notification for save-by-rename")
	}
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte("a\n1\n"), 0644))

	w, err := watcher.New(watcher.Config{
		Path:        dataPath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	require.NoError(t, w.Start(), "failed to start watcher")

	// Stop should not hang or panic
	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop(), "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/data/things.csv")

	assert.Equal(t, "/data/things.csv", cfg.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceDur)
}
