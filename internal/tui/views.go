package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/swexplorer/internal/tui/components"
	"github.com/mmcdole/swexplorer/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.renderHelp())
	}

	columns := m.List.View()
	if _, inspectorWidth := m.columnWidths(); inspectorWidth > 0 {
		columns = lipgloss.JoinHorizontal(lipgloss.Top, columns, m.Inspector.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, columns, m.renderFooter())
}

// renderFooter renders the single status line
func (m Model) renderFooter() string {
	right := m.renderStats()

	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	case m.queries.IsLoading():
		left = styles.DimStyle.Render(m.Spinner.View() + " Fetching characters...")
	default:
		left = renderHints([]key.Binding{Keys.NextPage, Keys.PrevPage, Keys.Enter, Keys.Filter, Keys.Help, Keys.Quit})
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.Truncate(left, m.Width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderStats() string {
	page := m.queries.CurrentPage()
	pageText := fmt.Sprintf("page %d", page)
	if last, ok := m.queries.LastPage(); ok {
		pageText = fmt.Sprintf("page %d/%d", page, last)
	}

	parts := []string{pageText, fmt.Sprintf("%d cached", len(m.queries.Characters()))}
	if m.stats != nil {
		s := m.stats()
		requests := s.PageRequests + s.CharacterRequests + s.ReferenceRequests
		parts = append(parts, fmt.Sprintf("%d req", requests), fmt.Sprintf("%d hits", s.CacheHits))
	}
	return styles.DimBadgeStyle.Render(strings.Join(parts, " · "))
}

func renderHints(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(hints, "  ")
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{
			components.ListKeys.Up, components.ListKeys.Down,
			components.ListKeys.Home, components.ListKeys.End,
			components.ListKeys.HalfUp, components.ListKeys.HalfDown,
			Keys.NextPage, Keys.PrevPage,
		}},
		{"Details", []key.Binding{
			Keys.Enter, Keys.ToggleInspector,
			components.InspectorKeys.ScrollUp, components.InspectorKeys.ScrollDown,
		}},
		{"Actions", []key.Binding{Keys.Filter, Keys.Escape, Keys.Refresh, Keys.Help, Keys.Quit}},
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentStyle.Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s %s\n",
				styles.HelpKeyStyle.Width(10).Render(h.Key),
				styles.HelpDescStyle.Render(h.Desc)))
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Press ? or esc to close"))

	return styles.ModalStyle.Render(b.String())
}
