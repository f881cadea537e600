package engine

import (
	"github.com/jesspatton/arctree/archive"
	"github.com/jesspatton/arctree/config"
	"github.com/jesspatton/arctree/tree"
)

// Result is one enumeration of a source.
type Result struct {
	Builder *tree.Builder
	// Summary is set for archive sources only.
	Summary *archive.Summary
	// Marks holds the paths git reports as changed, directory sources only.
	Marks map[string]bool
}

// State represents the core business state of the application.
type State struct {
	Source string
	Config config.Config

	// Data
	Result
	Loads int
	Err   error
}

// NewState creates a new State instance.
func NewState(source string, cfg config.Config) State {
	return State{
		Source: source,
		Config: cfg,
		Result: Result{Marks: make(map[string]bool)},
	}
}

// Loaded reports whether at least one enumeration succeeded.
func (s State) Loaded() bool {
	return s.Builder != nil
}
