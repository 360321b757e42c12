package components

import (
	"strings"

	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/mmcdole/swexplorer/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// Inspector displays the details of the selected character
type Inspector struct {
	char       *domain.Character
	loading    bool
	spinner    string
	errText    string
	width      int
	height     int
	offset     int // body scroll offset
	maxVisible int
}

// NewInspector creates an empty inspector
func NewInspector() Inspector {
	return Inspector{}
}

// SetCharacter sets the character to display. Scroll resets only when the
// selection moves to a different character.
func (i *Inspector) SetCharacter(c domain.Character) {
	if i.char == nil || i.char.URL != c.URL {
		i.offset = 0
		i.errText = ""
	}
	i.char = &c
}

// Clear removes the displayed character
func (i *Inspector) Clear() {
	i.char = nil
	i.offset = 0
	i.errText = ""
}

// Character returns the displayed character, if any
func (i Inspector) Character() (domain.Character, bool) {
	if i.char == nil {
		return domain.Character{}, false
	}
	return *i.char, true
}

// SetLoading marks the displayed character as being enriched
func (i *Inspector) SetLoading(loading bool) { i.loading = loading }

// SetSpinner sets the rendered spinner frame
func (i *Inspector) SetSpinner(frame string) { i.spinner = frame }

// SetError shows a resolution error under the details; empty clears it
func (i *Inspector) SetError(text string) { i.errText = text }

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// -2 for the title and blank line
	i.maxVisible = max(height-InspectorBorderHeight-InspectorScrollIndicators-2, 1)
}

// ScrollUp scrolls the body up one line
func (i *Inspector) ScrollUp() {
	if i.offset > 0 {
		i.offset--
	}
}

// ScrollDown scrolls the body down one line. View clamps the offset.
func (i *Inspector) ScrollDown() {
	i.offset++
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder
	contentWidth := max(i.width-3, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Details", contentWidth))
	header, body := i.render(contentWidth)

	headerLines := splitLines(header)
	bodyLines := splitLines(body)

	availableForBody := max(i.maxVisible-len(headerLines), 1)
	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(i.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visible := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if header != "" {
		parts = append(parts, header)
	}
	parts = append(parts, up)
	parts = append(parts, visible...)
	for j := len(visible); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(strings.Join(parts, "\n"))
}

// render returns the fixed header and scrollable body
func (i Inspector) render(width int) (string, string) {
	if i.char == nil {
		return "", styles.DimStyle.Render("No character selected")
	}
	c := *i.char

	var header strings.Builder
	header.WriteString(styles.TitleStyle.Render(styles.Truncate(c.Name, width)))
	if desc := c.GetDescription(); desc != "" {
		header.WriteString("\n")
		header.WriteString(styles.DimStyle.Render(styles.Truncate(desc, width)))
	}
	if i.loading {
		header.WriteString("\n")
		header.WriteString(styles.DimStyle.Render(i.spinner + " Resolving..."))
	} else if i.errText != "" {
		header.WriteString("\n")
		header.WriteString(styles.ErrorStyle.Render(styles.Truncate(i.errText, width)))
	}

	var lines []string
	field := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, styles.LabelStyle.Render(label)+styles.SubtitleStyle.Render(styles.Truncate(value, width-11)))
	}
	field("Height", c.FormattedHeight())
	field("Mass", c.FormattedMass())
	field("Hair", c.HairColor)
	field("Skin", c.SkinColor)
	field("Eyes", c.EyeColor)
	field("Born", c.BirthYear)
	field("Gender", c.Gender)

	if c.Homeworld.URL != "" {
		field("Homeworld", refLabel(c.Homeworld.Name, c.Homeworld.Resolved))
	}

	if len(c.Films) > 0 {
		lines = append(lines, "", styles.AccentStyle.Render("Films"))
		for _, f := range c.Films {
			lines = append(lines, "  "+styles.SubtitleStyle.Render(styles.Truncate(refLabel(f.Title, f.Resolved), width-2)))
		}
	}
	if len(c.Vehicles) > 0 {
		lines = append(lines, "", styles.AccentStyle.Render("Vehicles"))
		for _, v := range c.Vehicles {
			lines = append(lines, "  "+styles.SubtitleStyle.Render(styles.Truncate(refLabel(v.Name, v.Resolved), width-2)))
		}
	}

	return header.String(), strings.Join(lines, "\n")
}

func refLabel(name string, resolved bool) string {
	if !resolved {
		return styles.UnresolvedChar
	}
	return name
}

// splitLines splits a string into lines, returning nil for an empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
