package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher_DefaultDebounce(t *testing.T) {
	w, err := NewWatcher("transcricao.txt", 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.True(t, filepath.IsAbs(w.path))
}

func TestWatcher_RelevantOps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcricao.txt")
	w, err := NewWatcher(path, time.Millisecond)
	require.NoError(t, err)

	assert.True(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Write}))
	assert.True(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Create}))
	assert.True(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Rename}))
	assert.False(t, w.relevant(fsnotify.Event{Name: path, Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: filepath.Join(dir, "outro.txt"), Op: fsnotify.Write}))
}

func TestWatcher_ReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcricao.txt")
	require.NoError(t, os.WriteFile(path, []byte("[TEMA: a] um"), 0o600))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Keep writing until the watcher, which registers asynchronously, sees one.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)
	for seen := false; !seen; {
		select {
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte("[TEMA: b] dois"), 0o600))
		case <-changed:
			seen = true
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "nao-existe", "transcricao.txt"), 0)
	require.NoError(t, err)

	err = w.Watch(context.Background(), func() {})

	assert.Error(t, err)
}
