package filesystem

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jesspatton/arctree/logger"
	"github.com/jesspatton/arctree/tree"
)

// WalkOptions controls how a project directory is enumerated.
type WalkOptions struct {
	// Ignorer filters paths. Nil means the default patterns only.
	Ignorer *Ignorer
	// UseGitignore enumerates through gocodewalker, which also applies
	// nested .gitignore and .ignore files. Empty directories are not
	// listed in this mode.
	UseGitignore bool
}

// Walk enumerates the project below root as tree entries. Directories come
// before their contents and siblings are in lexical order.
func Walk(root string, opts WalkOptions) ([]tree.Entry, error) {
	ignorer := opts.Ignorer
	if ignorer == nil {
		ignorer = &Ignorer{patterns: DefaultPatterns}
	}
	if opts.UseGitignore {
		return walkGitignore(root, ignorer)
	}

	var entries []tree.Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		if ignorer.ShouldIgnore(path, root) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			entries = append(entries, tree.NewEntry(filepath.ToSlash(rel), tree.Directory))
		case d.Type().IsRegular(), d.Type()&fs.ModeSymlink != 0:
			entries = append(entries, tree.NewEntry(filepath.ToSlash(rel), tree.File))
		default:
			logger.Debugf("skipping special file %s", path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf("walked %d entries below %s", len(entries), root)
	return entries, nil
}

// walkGitignore lists files only; the tree builder creates their
// directories.
func walkGitignore(root string, ignorer *Ignorer) ([]tree.Entry, error) {
	var rels []string
	for f := range StreamFiles(root) {
		if ignorer.ShouldIgnore(f.Location, root) {
			continue
		}
		rel, err := filepath.Rel(root, f.Location)
		if err != nil {
			return nil, err
		}
		rels = append(rels, filepath.ToSlash(rel))
	}

	// the walker fans out over directories, so arrival order is not stable
	slices.SortFunc(rels, comparePaths)

	entries := make([]tree.Entry, 0, len(rels))
	for _, rel := range rels {
		entries = append(entries, tree.NewEntry(rel, tree.File))
	}
	logger.Debugf("streamed %d files below %s", len(entries), root)
	return entries, nil
}

// comparePaths orders slash separated paths segment by segment, the order
// filepath.WalkDir visits them in. A plain string sort would put "a-b/x"
// before "a/y" since '-' sorts below '/'.
func comparePaths(a, b string) int {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return len(as) - len(bs)
}
