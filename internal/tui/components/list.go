package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/mmcdole/swexplorer/internal/search"
	"github.com/mmcdole/swexplorer/internal/tui/styles"
)

// Layout constants for the list
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// "↑ more" and "↓ more" each take 1 line
	ScrollIndicatorLines = 2
)

// CharacterList is a scrollable, filterable list of characters
type CharacterList struct {
	chars []domain.Character

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Loading state
	loading bool
	spinner string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      []search.Result // nil when no query
}

// NewCharacterList creates an empty list with the given header title
func NewCharacterList(title string) *CharacterList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &CharacterList{
		title:       title,
		filterInput: ti,
	}
}

// SetCharacters replaces the list contents. The cursor stays on the same
// character when it is still present, so refreshing after enrichment does
// not move the selection.
func (c *CharacterList) SetCharacters(chars []domain.Character) {
	prevURL := ""
	if sel, ok := c.Selected(); ok {
		prevURL = sel.URL
	}

	c.loading = false
	c.chars = chars
	if strings.TrimSpace(c.filterQuery) != "" {
		c.matchFilter()
	}

	c.cursor = 0
	c.offset = 0
	for i := 0; i < c.ItemCount(); i++ {
		if c.chars[c.mapIndex(i)].URL == prevURL {
			c.cursor = i
			break
		}
	}
	c.ensureVisible()
}

// Reset clears contents and filter, used when switching pages
func (c *CharacterList) Reset() {
	c.clearFilter()
	c.chars = nil
	c.cursor = 0
	c.offset = 0
}

// Update handles key input when focused
func (c *CharacterList) Update(msg tea.Msg) (*CharacterList, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	// Typing into the filter
	if c.IsFilterTyping() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, ListKeys.Escape):
				c.clearFilter()
				return c, nil
			case key.Matches(msg, ListKeys.Enter):
				c.filterInput.Blur()
				return c, nil
			case msg.String() == "backspace" && c.filterInput.Value() == "":
				c.clearFilter()
				return c, nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	// Filter applied, input blurred
	if c.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, ListKeys.Escape):
				c.clearFilter()
				return c, nil
			case key.Matches(msg, ListKeys.Filter):
				c.filterInput.Focus()
				return c, textinput.Blink
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, ListKeys.Down):
			if c.cursor < count-1 {
				c.cursor++
			}
		case key.Matches(msg, ListKeys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, ListKeys.Home):
			c.cursor = 0
		case key.Matches(msg, ListKeys.End):
			c.cursor = count - 1
		case key.Matches(msg, ListKeys.HalfDown):
			c.cursor = min(c.cursor+c.maxVisible/2, count-1)
		case key.Matches(msg, ListKeys.HalfUp):
			c.cursor = max(c.cursor-c.maxVisible/2, 0)
		}
		c.ensureVisible()
	}

	return c, nil
}

// View renders the list inside its border
func (c *CharacterList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(c.renderContent())
}

// SetSize updates the list dimensions
func (c *CharacterList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.filterInput.Width = max(width-BorderWidth-4, 1)
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *CharacterList) SetFocused(focused bool) { c.focused = focused }
func (c *CharacterList) SetTitle(title string)   { c.title = title }
func (c *CharacterList) Title() string           { return c.title }

// SetLoading shows the spinner in place of the rows
func (c *CharacterList) SetLoading(loading bool) { c.loading = loading }

// SetSpinner sets the rendered spinner frame
func (c *CharacterList) SetSpinner(frame string) { c.spinner = frame }

// Selected returns the character under the cursor
func (c *CharacterList) Selected() (domain.Character, bool) {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return domain.Character{}, false
	}
	return c.chars[c.mapIndex(c.cursor)], true
}

// SelectedIndex returns the cursor position
func (c *CharacterList) SelectedIndex() int { return c.cursor }

// ItemCount returns the number of visible rows after filtering
func (c *CharacterList) ItemCount() int {
	if c.matches != nil {
		return len(c.matches)
	}
	return len(c.chars)
}

// ToggleFilter activates the filter input
func (c *CharacterList) ToggleFilter() tea.Cmd {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
	return textinput.Blink
}

// IsFiltering reports whether a filter is active
func (c *CharacterList) IsFiltering() bool { return c.filterActive }

// IsFilterTyping reports whether the filter input has focus
func (c *CharacterList) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows every row
func (c *CharacterList) ClearFilter() { c.clearFilter() }

func (c *CharacterList) recalcMaxVisible() {
	// -1 for the title line
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *CharacterList) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *CharacterList) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.matches = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *CharacterList) applyFilter() {
	c.filterQuery = c.filterInput.Value()
	c.cursor = 0
	c.offset = 0

	if strings.TrimSpace(c.filterQuery) == "" {
		c.matches = nil
		return
	}
	c.matchFilter()
}

// matchFilter runs the current query over the rows; no matches is an
// empty, non-nil slice
func (c *CharacterList) matchFilter() {
	c.matches = search.Match(c.chars, c.filterQuery)
	if c.matches == nil {
		c.matches = []search.Result{}
	}
}

func (c *CharacterList) mapIndex(i int) int {
	if c.matches != nil && i < len(c.matches) {
		return c.matches[i].Index
	}
	return i
}

func (c *CharacterList) matchedIndexes(i int) []int {
	if c.matches != nil && i < len(c.matches) {
		return c.matches[i].MatchedIndexes
	}
	return nil
}

func (c *CharacterList) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading && len(c.chars) == 0 {
		loadingLine := styles.DimStyle.Render(c.spinner + " Loading...")
		return titleLine + "\n \n" + loadingLine + "\n "
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No characters")
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n \n" + emptyMsg + "\n "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)
	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(c.chars[c.mapIndex(i)], c.matchedIndexes(i), i == c.cursor, itemWidth))
	}

	// Reserve header and footer lines even when empty to avoid layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *CharacterList) renderRow(ch domain.Character, matched []int, selected bool, width int) string {
	var marker string
	var markerFg lipgloss.Color
	if ch.IsFullyResolved() {
		marker, markerFg = styles.ResolvedChar, styles.Green
	} else {
		marker, markerFg = " ", styles.DimGray
	}

	// marker(1) + space(1) + margins(2)
	name := styles.Truncate(ch.Name, max(width-4, 5))

	parts := []styles.RowPart{{Text: marker, Foreground: &markerFg}, {Text: " "}}
	parts = append(parts, highlightParts(name, matched)...)
	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits name into runs, coloring matched byte positions
func highlightParts(name string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: name}}
	}

	hit := make(map[int]bool, len(matched))
	for _, idx := range matched {
		hit[idx] = true
	}

	accent := styles.SaberYellow
	var parts []styles.RowPart
	var run strings.Builder
	runHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String()}
		if runHit {
			part.Foreground = &accent
		}
		parts = append(parts, part)
		run.Reset()
	}

	for i, r := range name {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

func (c *CharacterList) renderFilterBar() string {
	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.chars)))
	}
	return c.filterInput.View() + countStr
}
