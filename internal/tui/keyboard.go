package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/swexplorer/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Filter input owns the keyboard while typing
	if m.List.IsFilterTyping() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.List.IsFiltering() {
			m.List.ClearFilter()
			m.syncInspector()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		return m, m.List.ToggleFilter()

	case key.Matches(msg, Keys.NextPage):
		page := m.queries.CurrentPage()
		if last, ok := m.queries.LastPage(); ok && page >= last {
			return m.setStatus("Already on the last page", false)
		}
		if m.loadingPage != 0 {
			return m, nil
		}
		return m.goToPage(page + 1)

	case key.Matches(msg, Keys.PrevPage):
		page := m.queries.CurrentPage()
		if page <= 1 {
			return m.setStatus("Already on the first page", false)
		}
		if m.loadingPage != 0 {
			return m, nil
		}
		return m.goToPage(page - 1)

	case key.Matches(msg, Keys.Refresh):
		if m.loadingPage != 0 {
			return m, nil
		}
		return m.goToPage(m.queries.CurrentPage())

	case key.Matches(msg, Keys.Enter):
		return m.enrichSelected()

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil

	case key.Matches(msg, components.InspectorKeys.ScrollUp):
		m.Inspector.ScrollUp()
		return m, nil

	case key.Matches(msg, components.InspectorKeys.ScrollDown):
		m.Inspector.ScrollDown()
		return m, nil
	}

	return m.updateList(msg)
}

// updateList routes a message to the list and follows selection changes
func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	before, _ := m.List.Selected()
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	if after, ok := m.List.Selected(); !ok || after.URL != before.URL {
		m.syncInspector()
	}
	return m, cmd
}
