package filesystem

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns are never part of a packaged archive.
var DefaultPatterns = []string{
	".git",
	"node_modules",
	"target",
	".DS_Store",
	"*.log",
}

// Ignorer handles file and directory ignoring logic based on default
// patterns, configured patterns and .gitignore.
type Ignorer struct {
	patterns []string
}

// NewIgnorer creates a new Ignorer and loads patterns from .gitignore if present.
func NewIgnorer(root string, extra ...string) *Ignorer {
	ign := &Ignorer{}
	ign.patterns = append(ign.patterns, DefaultPatterns...)
	ign.patterns = append(ign.patterns, extra...)

	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err == nil {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
				continue
			}
			ign.patterns = append(ign.patterns, line)
		}
	}
	return ign
}

// Patterns returns the patterns in the order they are checked.
func (i *Ignorer) Patterns() []string {
	return append([]string(nil), i.patterns...)
}

// ShouldIgnore checks if the given path should be ignored.
// Patterns without a slash match any path segment, so a pattern naming a
// directory also hides everything below it. Patterns with a slash, or a
// leading "/", are matched against the path relative to root.
func (i *Ignorer) ShouldIgnore(path string, root string) bool {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		// If we can't get relative path, just check name
		relPath = filepath.Base(path)
	}
	relPath = filepath.ToSlash(relPath)
	if relPath == "." {
		return false
	}
	segments := strings.Split(relPath, "/")

	for _, p := range i.patterns {
		cleanP := strings.TrimSuffix(p, "/")
		isAnchored := strings.HasPrefix(cleanP, "/")
		cleanP = strings.TrimPrefix(cleanP, "/")
		if cleanP == "" {
			continue
		}

		if isAnchored || strings.Contains(cleanP, "/") {
			if match(cleanP, relPath) || match(cleanP+"/**", relPath) {
				return true
			}
			continue
		}

		for _, s := range segments {
			if match(cleanP, s) {
				return true
			}
		}
	}
	return false
}

func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
