package ui

import (
	"strings"
	"testing"

	"github.com/jesspatton/arctree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, compress bool, paths ...string) *tree.Builder {
	t.Helper()
	b := tree.NewBuilder()
	for _, p := range paths {
		typ := tree.File
		if strings.HasSuffix(p, "/") {
			typ = tree.Directory
		}
		_, err := b.AddPath(p, typ)
		require.NoError(t, err)
	}
	if compress {
		require.NoError(t, b.Compress())
	}
	return b
}

func displayNames(nodes []DisplayNode) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, strings.Repeat(" ", n.Depth)+n.DisplayName)
	}
	return out
}

func TestFlattenNodes_Basic(t *testing.T) {
	nodes := flattenNodes(build(t, true, "a", "b"))
	assert.Equal(t, []string{"a", "b"}, displayNames(nodes))
}

func TestFlattenNodes_Compaction(t *testing.T) {
	// a(dir) -> b(dir) -> c(file) compresses to "a/b" and then "c"
	nodes := flattenNodes(build(t, true, "a/b/c"))

	require.Len(t, nodes, 2)
	assert.Equal(t, []string{"a/b/", " c"}, displayNames(nodes))
	assert.Equal(t, tree.Directory, nodes[0].Node.Type())
	assert.Equal(t, "a/b/c", nodes[1].Path)
}

func TestFlattenNodes_Mixed(t *testing.T) {
	nodes := flattenNodes(build(t, true, "src/main.go", "pkg/api/handler.go"))
	assert.Equal(t, []string{"src/", " main.go", "pkg/api/", " handler.go"}, displayNames(nodes))
}

func TestFlattenNodes_Uncompressed(t *testing.T) {
	nodes := flattenNodes(build(t, false, "a/b/c"))
	assert.Equal(t, []string{"a/", " b/", "  c"}, displayNames(nodes))
}

func TestFlattenNodes_Empty(t *testing.T) {
	assert.Empty(t, flattenNodes(nil))
	assert.Empty(t, flattenNodes(tree.NewBuilder()))
}

func TestMatchNodes(t *testing.T) {
	nodes := flattenNodes(build(t, true, "src/App.java", "README.md", "docs/app.md"))

	matches := matchNodes(nodes, "APP")
	require.Len(t, matches, 2)
	assert.Equal(t, "src/App.java", nodes[matches[0]].Path)
	assert.Equal(t, "docs/app.md", nodes[matches[1]].Path)

	assert.Empty(t, matchNodes(nodes, ""))
}

func TestHighlightMatches(t *testing.T) {
	wrap := func(s string) string { return "[" + s + "]" }

	assert.Equal(t, "[App][App].java", highlightMatches("AppApp.java", "app", wrap))
	assert.Equal(t, "README.md", highlightMatches("README.md", "", wrap))
}
