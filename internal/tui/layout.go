package tui

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight
	listWidth, inspectorWidth := m.columnWidths()

	m.List.SetSize(listWidth, contentHeight)
	if inspectorWidth > 0 {
		m.Inspector.SetSize(inspectorWidth, contentHeight)
	}
}

// columnWidths splits the window between list and inspector.
// The inspector width is 0 when hidden.
func (m Model) columnWidths() (int, int) {
	if !m.ShowInspector {
		return m.Width, 0
	}
	list := max(m.Width*ListColumnPercent/100, MinColumnWidth)
	if list >= m.Width {
		return m.Width, 0
	}
	return list, m.Width - list
}
