package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jesspatton/arctree/engine"
)

// Pane represents a distinct section of the UI.
type Pane int

const (
	// PaneExplorer is the tree explorer pane.
	PaneExplorer Pane = iota
	// PaneDetails is the selected node pane.
	PaneDetails
)

// Model represents the application state for the Bubbletea program.
type Model struct {
	// UI State
	activePane Pane
	width      int
	height     int
	ready      bool
	showHelp   bool
	cursor     int
	viewport   viewport.Model

	// Search State
	searchMode        bool
	searchFocus       bool
	searchInput       textinput.Model
	searchMatches     []int
	currentMatchIndex int

	// Components
	keys KeyMap
	help help.Model

	// Data / Dependencies
	engine    *engine.Engine
	flatNodes []DisplayNode
}

// NewModel creates and initializes a new Model.
func NewModel(e *engine.Engine) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#A0A0A0"})
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#808080"})
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#606060"})
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#A0A0A0"})
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#808080"})
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#606060"})
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "/"
	ti.CharLimit = 156
	ti.Width = 20

	return Model{
		activePane:  PaneExplorer,
		engine:      e,
		keys:        NewKeyMap(),
		help:        h,
		searchInput: ti,
		flatNodes:   []DisplayNode{},
	}
}

// Init initializes the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return m.engine.Init()
}

// Update handles incoming messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searchMode && m.searchFocus {
			return m.updateSearchInput(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.engine.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.engine.LoadTree
		case key.Matches(msg, m.keys.Tab):
			if m.activePane == PaneExplorer {
				m.activePane = PaneDetails
			} else {
				m.activePane = PaneExplorer
			}
			return m, nil
		}

		if m.activePane == PaneDetails {
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if m.searchMode {
			switch {
			case key.Matches(msg, m.keys.ExitSearch):
				m.exitSearch()
				return m, nil
			case key.Matches(msg, m.keys.Search):
				m.searchFocus = true
				m.searchInput.Focus()
				return m, textinput.Blink
			case key.Matches(msg, m.keys.NextMatch):
				if len(m.searchMatches) > 0 {
					m.currentMatchIndex = (m.currentMatchIndex + 1) % len(m.searchMatches)
					m.setCursor(m.searchMatches[m.currentMatchIndex])
				}
				return m, nil
			case key.Matches(msg, m.keys.PrevMatch):
				if len(m.searchMatches) > 0 {
					m.currentMatchIndex = (m.currentMatchIndex - 1 + len(m.searchMatches)) % len(m.searchMatches)
					m.setCursor(m.searchMatches[m.currentMatchIndex])
				}
				return m, nil
			}
		}

		switch {
		case key.Matches(msg, m.keys.Search):
			m.searchMode = true
			m.searchFocus = true
			m.searchInput.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Up):
			m.setCursor(m.cursor - 1)
		case key.Matches(msg, m.keys.Down):
			m.setCursor(m.cursor + 1)
		case key.Matches(msg, m.keys.Top):
			m.setCursor(0)
		case key.Matches(msg, m.keys.Bottom):
			m.setCursor(len(m.flatNodes) - 1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Width: (Total / 2) - Border(2) - Padding(2)
		paneWidth := (m.width / 2) - 4
		// Height: Total - Footer(1) - Border(2), plus title lines
		viewportHeight := m.height - 7

		if !m.ready {
			m.viewport = viewport.New(paneWidth, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = paneWidth
			m.viewport.Height = viewportHeight
		}
		m.viewport.SetContent(m.renderDetails(paneWidth))
		return m, nil

	case engine.TreeLoadedMsg, engine.LoadFailedMsg, engine.WatcherMsg, engine.WatcherReadyMsg:
		cmd = m.engine.Update(msg)
		m.flatNodes = flattenNodes(m.engine.GetTree())
		if m.searchMode {
			m.searchMatches = matchNodes(m.flatNodes, m.searchInput.Value())
			m.currentMatchIndex = 0
		}
		m.setCursor(m.cursor)
		return m, cmd
	}

	return m, nil
}

// updateSearchInput handles keys while the search box has focus.
func (m Model) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ExitSearch):
		m.exitSearch()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		// Switch to Navigation Mode
		m.searchFocus = false
		m.searchInput.Blur()
		if len(m.searchMatches) > 0 {
			m.currentMatchIndex = 0
			m.setCursor(m.searchMatches[0])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchMatches = matchNodes(m.flatNodes, m.searchInput.Value())
	m.currentMatchIndex = 0
	return m, cmd
}

func (m *Model) exitSearch() {
	m.searchMode = false
	m.searchFocus = false
	m.searchInput.Blur()
	m.searchInput.Reset()
	m.searchMatches = nil
}

// setCursor moves the cursor, clamped to the rows, and refreshes the
// details pane.
func (m *Model) setCursor(i int) {
	if i >= len(m.flatNodes) {
		i = len(m.flatNodes) - 1
	}
	if i < 0 {
		i = 0
	}
	m.cursor = i
	if m.ready {
		m.viewport.SetContent(m.renderDetails(m.viewport.Width))
		m.viewport.GotoTop()
	}
}

// Selected returns the row under the cursor.
func (m Model) Selected() (DisplayNode, bool) {
	if m.cursor < 0 || m.cursor >= len(m.flatNodes) {
		return DisplayNode{}, false
	}
	return m.flatNodes[m.cursor], true
}

// View renders the UI based on the current state.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	if m.width == 0 {
		return "Loading..."
	}

	paneWidth := (m.width / 2) - 2
	paneHeight := m.height - 4

	explorerRender := m.renderExplorer(paneWidth, paneHeight)

	var detailsView string
	if !m.ready {
		detailsView = titleStyle.Render("DETAILS") + "\n\nInitializing..."
	} else {
		detailsView = titleStyle.Render("DETAILS") + "\n\n" + m.viewport.View()
	}

	detailsStyle := paneStyle
	if m.activePane == PaneDetails {
		detailsStyle = activePaneStyle
	}
	detailsRender := detailsStyle.
		Width(paneWidth).
		Height(paneHeight).
		Render(detailsView)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, explorerRender, detailsRender)
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, panes, footer)
}
