package filesystem

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := NewWatcher(tmpDir, NewIgnorer(tmpDir))
	require.NoError(t, err)
	defer w.Close()

	// Wait for watcher to start up
	time.Sleep(100 * time.Millisecond)

	writeFiles(t, tmpDir, "test.txt")
	select {
	case event := <-w.Events:
		assert.Equal(t, filepath.Join(tmpDir, "test.txt"), event)
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for file creation event")
	}

	// Ignored by the default *.log pattern
	writeFiles(t, tmpDir, "app.log")
	select {
	case event := <-w.Events:
		assert.Failf(t, "unexpected event for ignored file", "%s", event)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherSkipsIgnoredDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "target/classes/App.class", "src/App.java")

	w, err := NewWatcher(tmpDir, NewIgnorer(tmpDir))
	require.NoError(t, err)
	defer w.Close()

	watched := w.fsWatcher.WatchList()
	assert.Contains(t, watched, filepath.Join(tmpDir, "src"))
	assert.NotContains(t, watched, filepath.Join(tmpDir, "target"))
	assert.NotContains(t, watched, filepath.Join(tmpDir, "target", "classes"))

	time.Sleep(100 * time.Millisecond)

	writeFiles(t, tmpDir, "target/classes/Other.class", "target/new.jar")
	select {
	case event := <-w.Events:
		assert.Failf(t, "unexpected event below target/", "%s", event)
	case <-time.After(500 * time.Millisecond):
	}

	writeFiles(t, tmpDir, "src/Other.java")
	select {
	case event := <-w.Events:
		assert.Equal(t, filepath.Join(tmpDir, "src", "Other.java"), event)
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for an event below src/")
	}
}

func TestWatcherAddsNewDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	w, err := NewWatcher(tmpDir, NewIgnorer(tmpDir))
	require.NoError(t, err)
	defer w.Close()

	time.Sleep(100 * time.Millisecond)
	writeFiles(t, tmpDir, "pkg/.keep")

	// the create event for pkg/ is handled before its debounced signal fires
	select {
	case <-w.Events:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for the directory creation event")
	}
	assert.Contains(t, w.fsWatcher.WatchList(), filepath.Join(tmpDir, "pkg"))
}

func TestShouldIgnore(t *testing.T) {
	w := &Watcher{}

	tests := []struct {
		path string
		want bool
	}{
		{"/path/to/.git", true},
		{"/path/to/node_modules", true},
		{"/path/to/normal.go", false},
		{"/path/to/app.log", true},
		{"/path/to/target", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, w.shouldIgnore(tt.path), tt.path)
	}
}
