package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForChange(t *testing.T, w *Watcher) bool {
	t.Helper()
	select {
	case <-w.Changes():
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func TestWatcher_ReportsNewTheme(t *testing.T) {
	root := makeThemes(t, "alpha")

	w, err := NewWatcher(root)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.Mkdir(filepath.Join(root, "beta"), 0755))

	assert.True(t, waitForChange(t, w), "expected a change after creating a theme")
}

func TestWatcher_ReportsRemovedTheme(t *testing.T) {
	root := makeThemes(t, "alpha", "beta")

	w, err := NewWatcher(root)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.RemoveAll(filepath.Join(root, "beta")))

	assert.True(t, waitForChange(t, w), "expected a change after removing a theme")
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(makeThemes(t))
	require.NoError(t, err)
	require.NoError(t, w.Start())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_StopClosesChanges(t *testing.T) {
	w, err := NewWatcher(makeThemes(t))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-w.Changes():
		if ok {
			// A pending change may be delivered before the close.
			_, ok = <-w.Changes()
		}
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("changes channel not closed after Stop")
	}
}

func TestWatcher_StartOnMissingRoot(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)

	assert.Error(t, w.Start())
	assert.NoError(t, w.Stop())
}
