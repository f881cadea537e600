package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jesspatton/arctree/archive"
	"github.com/jesspatton/arctree/config"
	"github.com/jesspatton/arctree/filesystem"
	"github.com/jesspatton/arctree/logger"
	"github.com/jesspatton/arctree/tree"
)

// ErrUnsupportedSource is returned for a source that is neither a directory
// nor a recognised archive.
var ErrUnsupportedSource = errors.New("source is neither a directory nor a known archive")

// Messages

// WatcherMsg indicates a file system event occurred.
type WatcherMsg string

// TreeLoadedMsg carries the new tree after a refresh.
type TreeLoadedMsg Result

// LoadFailedMsg carries the error of a failed refresh.
type LoadFailedMsg struct {
	Err error
}

// WatcherReadyMsg carries the initialized watcher.
type WatcherReadyMsg struct {
	watcher *filesystem.Watcher
}

// Load enumerates source, builds the tree and compresses it unless
// cfg.Compress is off.
func Load(source string, cfg config.Config) (Result, error) {
	info, err := os.Stat(source)
	if err != nil {
		return Result{}, err
	}

	var (
		res     Result
		entries []tree.Entry
	)
	switch {
	case info.IsDir():
		entries, err = filesystem.Walk(source, filesystem.WalkOptions{
			Ignorer:      filesystem.NewIgnorer(source, cfg.Ignore...),
			UseGitignore: cfg.Gitignore,
		})
		if err != nil {
			return Result{}, err
		}
		res.Marks = changedFiles(source)
	case archive.IsArchive(source):
		var summary archive.Summary
		entries, summary, err = archive.Open(source)
		if err != nil {
			return Result{}, err
		}
		res.Summary = &summary
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}

	res.Builder, err = tree.Build(entries)
	if err != nil {
		return Result{}, fmt.Errorf("build tree for %s: %w", source, err)
	}
	if cfg.Compress {
		if err := res.Builder.Compress(); err != nil {
			return Result{}, fmt.Errorf("compress tree for %s: %w", source, err)
		}
	}

	stats := res.Builder.Stats()
	logger.Debugf("loaded %s: %d files, %d directories", source, stats.Files, stats.Directories)
	return res, nil
}

// changedFiles marks uncommitted files. Sources outside a git checkout get
// no marks.
func changedFiles(root string) map[string]bool {
	marks := make(map[string]bool)
	files, err := filesystem.ChangedFiles(root)
	if err != nil {
		logger.Debugf("no git marks for %s: %v", root, err)
		return marks
	}
	for _, f := range files {
		marks[f] = true
	}
	return marks
}

// Watch reloads source on every file system change and passes each result
// to fn, starting with the initial load. It returns when ctx is done.
func Watch(ctx context.Context, source string, cfg config.Config, fn func(Result, error)) error {
	w, err := filesystem.NewWatcher(source, filesystem.NewIgnorer(source, cfg.Ignore...))
	if err != nil {
		return err
	}
	defer w.Close()

	fn(Load(source, cfg))
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Infof("change detected: %s", path)
			fn(Load(source, cfg))
		}
	}
}

// Engine manages the application logic and side effects.
type Engine struct {
	State   State
	watch   bool
	watcher *filesystem.Watcher
}

// New creates a new Engine instance. Directory sources are watched when
// watch is set.
func New(source string, cfg config.Config, watch bool) *Engine {
	return &Engine{
		State: NewState(source, cfg),
		watch: watch,
	}
}

// Init initializes the engine's side effects.
func (e *Engine) Init() tea.Cmd {
	if !e.watch {
		return e.LoadTree
	}
	return tea.Batch(e.LoadTree, e.startWatcher)
}

// Update handles incoming messages and updates the engine state.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case WatcherReadyMsg:
		e.watcher = msg.watcher
		return e.waitForWatcherEvents

	case WatcherMsg:
		logger.Debugf("change detected: %s", string(msg))
		return tea.Batch(e.LoadTree, e.waitForWatcherEvents)

	case TreeLoadedMsg:
		e.State.Result = Result(msg)
		e.State.Err = nil
		e.State.Loads++
		return nil

	case LoadFailedMsg:
		e.State.Err = msg.Err
		return nil
	}

	return nil
}

// Close stops the watcher, if any.
func (e *Engine) Close() {
	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
}

// Internal Commands

// LoadTree enumerates the source.
func (e *Engine) LoadTree() tea.Msg {
	res, err := Load(e.State.Source, e.State.Config)
	if err != nil {
		return LoadFailedMsg{Err: err}
	}
	return TreeLoadedMsg(res)
}

func (e *Engine) startWatcher() tea.Msg {
	info, err := os.Stat(e.State.Source)
	if err != nil || !info.IsDir() {
		return nil
	}
	w, err := filesystem.NewWatcher(e.State.Source, filesystem.NewIgnorer(e.State.Source, e.State.Config.Ignore...))
	if err != nil {
		logger.Warnf("watch %s: %v", e.State.Source, err)
		return nil
	}
	return WatcherReadyMsg{watcher: w}
}

func (e *Engine) waitForWatcherEvents() tea.Msg {
	if e.watcher == nil {
		return nil
	}
	eventPath, ok := <-e.watcher.Events
	if !ok {
		return nil
	}
	return WatcherMsg(eventPath)
}

// Accessors

func (e *Engine) GetTree() *tree.Builder {
	return e.State.Builder
}

func (e *Engine) IsMarked(path string) bool {
	return e.State.Marks[path]
}

func (e *Engine) GetError() error {
	return e.State.Err
}
