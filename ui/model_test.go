package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jesspatton/arctree/config"
	"github.com/jesspatton/arctree/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to m in order and returns the resulting model.
func press(m Model, keys ...tea.KeyMsg) Model {
	var next tea.Model = m
	for _, k := range keys {
		next, _ = next.Update(k)
	}
	return next.(Model)
}

func selectedPath(m Model) string {
	sel, _ := m.Selected()
	return sel.Path
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{"src/App.java", "docs/app.md", "README.md"} {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}

	e := engine.New(root, config.Default(), false)
	next, _ := NewModel(e).Update(e.LoadTree())
	next, _ = next.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func TestModelLoadsTree(t *testing.T) {
	m := loadedModel(t)

	var got []string
	for _, n := range m.flatNodes {
		got = append(got, n.Path)
	}
	// lexical walk order
	assert.Equal(t, []string{"README.md", "docs", "docs/app.md", "src", "src/App.java"}, got)
	assert.Contains(t, m.View(), "README.md")
}

func TestModelNavigation(t *testing.T) {
	m := loadedModel(t)

	m = press(m, runes("j"), runes("j"))
	assert.Equal(t, 2, m.cursor)

	m = press(m, runes("G"))
	assert.Equal(t, len(m.flatNodes)-1, m.cursor)

	m = press(m, runes("j"))
	assert.Equal(t, len(m.flatNodes)-1, m.cursor, "cursor stays at the bottom")

	m = press(m, runes("k"), runes("g"))
	assert.Equal(t, 0, m.cursor)
}

func TestModelSearch(t *testing.T) {
	m := press(loadedModel(t), runes("/"), runes("a"), runes("p"), runes("p"))
	require.True(t, m.searchMode)
	require.True(t, m.searchFocus)
	require.Len(t, m.searchMatches, 2)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searchFocus, "enter leaves the input")
	assert.Equal(t, "docs/app.md", selectedPath(m))

	m = press(m, runes("n"))
	assert.Equal(t, "src/App.java", selectedPath(m))

	m = press(m, runes("N"))
	assert.Equal(t, "docs/app.md", selectedPath(m))

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searchMode)
	assert.Nil(t, m.searchMatches)
}

func TestModelHelpAndQuit(t *testing.T) {
	m := press(loadedModel(t), runes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "HELP")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelRefresh(t *testing.T) {
	_, cmd := loadedModel(t).Update(runes("R"))
	require.NotNil(t, cmd)
	assert.IsType(t, engine.TreeLoadedMsg{}, cmd())
}
