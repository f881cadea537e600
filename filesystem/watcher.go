package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jesspatton/arctree/logger"
)

const debounceDuration = 100 * time.Millisecond

// Watcher monitors the project directory for changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	ignorer   *Ignorer
	Events    chan string // Signal to refresh the tree, carries the changed file path
	done      chan struct{}
}

// NewWatcher creates a new Watcher for the given root directory. Ignored
// directories are not watched and events for ignored paths are dropped.
func NewWatcher(root string, ignorer *Ignorer) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		root:      root,
		ignorer:   ignorer,
		Events:    make(chan string, 10), // Buffered to prevent blocking
		done:      make(chan struct{}),
	}

	// fsnotify is not recursive, add every directory explicitly
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && w.shouldIgnore(path) {
				return filepath.SkipDir
			}
			return w.fsWatcher.Add(path)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.startLoop()

	return w, nil
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() {
	close(w.done)
	w.fsWatcher.Close()
}

func (w *Watcher) shouldIgnore(path string) bool {
	ignorer := w.ignorer
	if ignorer == nil {
		ignorer = &Ignorer{patterns: DefaultPatterns}
	}
	root := w.root
	if root == "" {
		root = filepath.Dir(path)
	}
	return ignorer.ShouldIgnore(path, root)
}

func (w *Watcher) startLoop() {
	var timer *time.Timer

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if w.shouldIgnore(event.Name) {
				continue
			}

			// Ignore CHMOD events which can be noisy
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			// New directories need their own watch
			if event.Op&fsnotify.Create == fsnotify.Create {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if err := w.fsWatcher.Add(event.Name); err != nil {
						logger.Warnf("watch %s: %v", event.Name, err)
					}
				}
			}

			// Debounce logic
			if timer != nil {
				timer.Stop()
			}
			name := event.Name
			timer = time.AfterFunc(debounceDuration, func() {
				select {
				case w.Events <- name:
				case <-w.done:
				}
			})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Errorf("watcher error: %v", err)
		}
	}
}
