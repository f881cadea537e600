package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jesspatton/arctree/tree"
)

func (m Model) renderExplorer(paneWidth, paneHeight int) string {
	var explorerView strings.Builder

	title := "EXPLORER"
	if s := m.engine.State.Summary; s != nil {
		title = s.Name
	}
	explorerView.WriteString(titleStyle.Render(title) + "\n\n")

	// Calculate available height for the tree
	treeHeight := paneHeight - 2
	if m.searchMode {
		treeHeight -= 3 // 1 line text + 2 lines border
	}

	switch {
	case m.engine.GetTree() == nil && m.engine.GetError() != nil:
		explorerView.WriteString(errorStyle.Render(m.engine.GetError().Error()))
	case m.engine.GetTree() == nil:
		explorerView.WriteString("Scanning...")
	case len(m.flatNodes) == 0:
		explorerView.WriteString("Nothing to show.")
	default:
		start, end := m.calculateVisibleRange(treeHeight)
		for i := start; i < end && i < len(m.flatNodes); i++ {
			m.renderNode(&explorerView, m.flatNodes[i], i)
		}
	}

	// Fill remaining space to push search bar to bottom
	currentView := explorerView.String()
	currentHeight := lipgloss.Height(currentView)
	if currentHeight < paneHeight-3 && m.searchMode {
		currentView += strings.Repeat("\n", paneHeight-3-currentHeight)
	}

	if m.searchMode {
		searchStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Width(paneWidth - 4) // Account for border width

		searchContent := m.searchInput.View()
		if !m.searchFocus {
			hints := fmt.Sprintf("%d matches • n: next • N: prev • Esc: exit", len(m.searchMatches))
			hintsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

			availableWidth := paneWidth - 6 // -4 for outer margin, -2 for border
			contentWidth := lipgloss.Width(searchContent)
			hintsWidth := lipgloss.Width(hints)

			if contentWidth+hintsWidth+1 < availableWidth {
				padding := strings.Repeat(" ", availableWidth-contentWidth-hintsWidth)
				searchContent += padding + hintsStyle.Render(hints)
			}
		}
		currentView += searchStyle.Render(searchContent)
	}

	explorerStyle := paneStyle
	if m.activePane == PaneExplorer {
		explorerStyle = activePaneStyle
	}

	return explorerStyle.
		Width(paneWidth).
		Height(paneHeight).
		Render(currentView)
}

func (m Model) calculateVisibleRange(paneHeight int) (int, int) {
	start := 0
	end := len(m.flatNodes)

	if paneHeight > 0 && len(m.flatNodes) > paneHeight {
		if m.cursor < paneHeight/2 {
			start = 0
			end = paneHeight
		} else if m.cursor > len(m.flatNodes)-paneHeight/2 {
			start = len(m.flatNodes) - paneHeight
			end = len(m.flatNodes)
		} else {
			start = m.cursor - paneHeight/2
			end = m.cursor + paneHeight/2
		}
	}
	return start, end
}

func (m Model) renderNode(b *strings.Builder, node DisplayNode, index int) {
	cursor := " "
	if m.cursor == index {
		cursor = ">"
	}

	indent := strings.Repeat("  ", node.Depth)

	name := node.DisplayName
	if m.searchMode {
		name = highlightMatches(name, m.searchInput.Value(), func(s string) string {
			return matchStyle.Render(s)
		})
	}

	switch {
	case node.Node.Type() == tree.Directory:
		name = dirStyle.Render(name)
	case m.engine.IsMarked(node.Path):
		name = markStyle.Render(name + " *")
	}

	line := fmt.Sprintf("%s %s%s", cursor, indent, name)

	if m.cursor == index {
		b.WriteString(cursorStyle.Render(line) + "\n")
	} else {
		b.WriteString(line + "\n")
	}
}

// renderDetails describes the selected node.
func (m Model) renderDetails(width int) string {
	var b strings.Builder

	if s := m.engine.State.Summary; s != nil {
		fmt.Fprintf(&b, "Archive: %s (%d files)\n\n", s.Name, s.Files)
	}

	node, ok := m.Selected()
	if !ok {
		b.WriteString("No selection.")
		return b.String()
	}

	fmt.Fprintf(&b, "Path:     %s\n", node.Path)
	fmt.Fprintf(&b, "Type:     %s\n", node.Node.Type())
	if node.Node.Type() == tree.Directory {
		fmt.Fprintf(&b, "Children: %d\n\n", node.Node.Len())
		for _, child := range node.Node.Children() {
			name := child.ID()
			if child.Type() == tree.Directory {
				name += "/"
			}
			b.WriteString("  " + name + "\n")
		}
	}
	if m.engine.IsMarked(node.Path) {
		b.WriteString("\nUncommitted changes\n")
	}

	if width <= 0 {
		return b.String()
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}
