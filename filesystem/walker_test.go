package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jesspatton/arctree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUpProject(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir,
		".atomist/manifest.yml",
		".atomist/editors/RemoveChangeLog.ts",
		"src/main/java/com/example/App.java",
		"README.md",
		"node_modules/left-pad/index.js", // Ignored by default
		"debug.log",                      // Ignored by default
	)
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755))
	return tmpDir
}

func entryPaths(entries []tree.Entry) []string {
	var out []string
	for _, e := range entries {
		p := strings.Join(e.Segments, "/")
		if e.Type == tree.Directory {
			p += "/"
		}
		out = append(out, p)
	}
	return out
}

func filesOnly(paths []string) []string {
	var out []string
	for _, p := range paths {
		if !strings.HasSuffix(p, "/") {
			out = append(out, p)
		}
	}
	return out
}

func TestWalk(t *testing.T) {
	tmpDir := setUpProject(t)

	entries, err := Walk(tmpDir, WalkOptions{Ignorer: NewIgnorer(tmpDir)})
	require.NoError(t, err)

	assert.Equal(t, []string{
		".atomist/",
		".atomist/editors/",
		".atomist/editors/RemoveChangeLog.ts",
		".atomist/manifest.yml",
		"README.md",
		"empty/",
		"src/",
		"src/main/",
		"src/main/java/",
		"src/main/java/com/",
		"src/main/java/com/example/",
		"src/main/java/com/example/App.java",
	}, entryPaths(entries))
}

func TestWalkNilIgnorer(t *testing.T) {
	tmpDir := setUpProject(t)

	entries, err := Walk(tmpDir, WalkOptions{})
	require.NoError(t, err)
	for _, p := range entryPaths(entries) {
		assert.False(t, strings.HasPrefix(p, "node_modules"), "expected default patterns to apply, got %s", p)
	}
}

func TestWalkGitignore(t *testing.T) {
	tmpDir := setUpProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("README.md\n"), 0644))

	entries, err := Walk(tmpDir, WalkOptions{Ignorer: NewIgnorer(tmpDir), UseGitignore: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		".atomist/editors/RemoveChangeLog.ts",
		".atomist/manifest.yml",
		".gitignore",
		"src/main/java/com/example/App.java",
	}, entryPaths(entries))
}

func TestWalkGitignoreMatchesWalkOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a-b/x.txt", "a/y.txt", "a/z/w.txt", "a.txt", "b.txt")

	walked, err := Walk(tmpDir, WalkOptions{})
	require.NoError(t, err)
	streamed, err := Walk(tmpDir, WalkOptions{UseGitignore: true})
	require.NoError(t, err)

	want := []string{"a/y.txt", "a/z/w.txt", "a-b/x.txt", "a.txt", "b.txt"}
	assert.Equal(t, want, filesOnly(entryPaths(walked)))
	assert.Equal(t, want, entryPaths(streamed))
}

func TestComparePaths(t *testing.T) {
	assert.Negative(t, comparePaths("a/y.txt", "a-b/x.txt"))
	assert.Negative(t, comparePaths("a", "a/b"))
	assert.Positive(t, comparePaths("b", "a/z"))
	assert.Zero(t, comparePaths("a/b", "a/b"))
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "missing"), WalkOptions{})
	assert.Error(t, err)
}
