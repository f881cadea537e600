package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnorer(t *testing.T) {
	tmpDir := t.TempDir()

	// Create .gitignore
	gitignoreContent := `
# Comment
ignored_dir/
*.tmp
/root_only.txt
docs/**/*.draft
!keep.tmp
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte(gitignoreContent), 0644))

	ignorer := NewIgnorer(tmpDir, "*.bak")

	tests := []struct {
		path   string
		ignore bool
	}{
		{"node_modules", true},              // Default
		{".git", true},                      // Default
		{".git/HEAD", true},                 // Default, below an ignored dir
		{"target/classes/App.class", true},  // Default
		{"src/app.ts", false},               // Normal file
		{"ignored_dir", true},               // From .gitignore
		{"src/ignored_dir", true},           // From .gitignore (recursive)
		{"src/ignored_dir/x.txt", true},     // Below an ignored dir
		{"temp.tmp", true},                  // From .gitignore (glob)
		{"src/temp.tmp", true},              // From .gitignore (glob recursive)
		{"root_only.txt", true},             // From .gitignore (root anchored)
		{"src/root_only.txt", false},        // Root anchored does not match below
		{"docs/a/b/page.draft", true},       // Doublestar
		{"page.draft", false},               // Doublestar needs the docs prefix
		{"debug.log", true},                 // Default *.log
		{"notes.bak", true},                 // Extra pattern
		{".atomist/editors/Edit.ts", false}, // Hidden but not ignored
	}

	for _, tt := range tests {
		fullPath := filepath.Join(tmpDir, tt.path)
		assert.Equal(t, tt.ignore, ignorer.ShouldIgnore(fullPath, tmpDir), tt.path)
	}

	assert.False(t, ignorer.ShouldIgnore(tmpDir, tmpDir), "root itself should never be ignored")
}
