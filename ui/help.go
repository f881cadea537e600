package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHelp() string {
	title := titleStyle.Render("HELP")
	helpView := m.help.View(m.keys)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		paneStyle.Render(fmt.Sprintf("%s\n\n%s", title, helpView)),
	)
}

func (m Model) renderFooter() string {
	status := fmt.Sprintf("%d nodes", len(m.flatNodes))
	if b := m.engine.GetTree(); b != nil {
		stats := b.Stats()
		status = fmt.Sprintf("%d files, %d directories", stats.Files, stats.Directories)
	}
	if err := m.engine.GetError(); err != nil && m.engine.GetTree() != nil {
		status = errorStyle.Render("reload failed: " + err.Error())
	} else {
		status = statusStyle.Render(status)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, status, m.help.View(m.keys))
}
