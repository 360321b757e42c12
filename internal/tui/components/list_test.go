package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCharacters() []domain.Character {
	return []domain.Character{
		{ID: 1, Name: "Luke Skywalker", URL: "https://swapi.test/api/people/1/"},
		{ID: 4, Name: "Darth Vader", URL: "https://swapi.test/api/people/4/"},
		{ID: 5, Name: "Leia Organa", URL: "https://swapi.test/api/people/5/"},
		{ID: 11, Name: "Anakin Skywalker", URL: "https://swapi.test/api/people/11/"},
	}
}

func newTestList() *CharacterList {
	l := NewCharacterList("Characters")
	l.SetSize(40, 20)
	l.SetFocused(true)
	l.SetCharacters(testCharacters())
	return l
}

func typeText(l *CharacterList, text string) {
	for _, r := range text {
		l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestCharacterList_Navigation(t *testing.T) {
	l := newTestList()

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	c, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "Leia Organa", c.Name)

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	c, _ = l.Selected()
	assert.Equal(t, "Anakin Skywalker", c.Name)

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, l.SelectedIndex())

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, l.SelectedIndex())
}

func TestCharacterList_Filter(t *testing.T) {
	l := newTestList()

	l.ToggleFilter()
	require.True(t, l.IsFilterTyping())
	typeText(l, "sky")

	assert.Equal(t, 2, l.ItemCount())
	c, ok := l.Selected()
	require.True(t, ok)
	assert.Contains(t, []string{"Luke Skywalker", "Anakin Skywalker"}, c.Name)

	// Enter keeps the filter but returns keys to navigation
	l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, l.IsFiltering())
	assert.False(t, l.IsFilterTyping())

	l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, l.IsFiltering())
	assert.Equal(t, 4, l.ItemCount())
}

func TestCharacterList_FilterNoMatches(t *testing.T) {
	l := newTestList()

	l.ToggleFilter()
	typeText(l, "yoda")

	assert.Equal(t, 0, l.ItemCount())
	_, ok := l.Selected()
	assert.False(t, ok)
	assert.Contains(t, l.View(), "No matches")
}

func TestCharacterList_SetCharactersKeepsSelection(t *testing.T) {
	l := newTestList()
	l.Update(tea.KeyMsg{Type: tea.KeyDown})

	chars := testCharacters()
	chars[1].Homeworld = domain.Homeworld{Name: "Tatooine", URL: "https://swapi.test/api/planets/1/", Resolved: true}
	l.SetCharacters(chars)

	c, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "Darth Vader", c.Name)
	assert.Equal(t, "Tatooine", c.Homeworld.Name)
}

func TestCharacterList_IgnoresKeysWhenUnfocused(t *testing.T) {
	l := newTestList()
	l.SetFocused(false)

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, l.SelectedIndex())
}

func TestHighlightParts(t *testing.T) {
	parts := highlightParts("Leia", []int{0, 1, 3})
	require.Len(t, parts, 3)
	assert.Equal(t, "Le", parts[0].Text)
	assert.NotNil(t, parts[0].Foreground)
	assert.Equal(t, "i", parts[1].Text)
	assert.Nil(t, parts[1].Foreground)
	assert.Equal(t, "a", parts[2].Text)
	assert.NotNil(t, parts[2].Foreground)

	plain := highlightParts("Leia", nil)
	require.Len(t, plain, 1)
	assert.Nil(t, plain[0].Foreground)
}

func TestInspector_RendersReferences(t *testing.T) {
	i := NewInspector()
	i.SetSize(50, 30)
	i.SetCharacter(domain.Character{
		ID:        1,
		Name:      "Luke Skywalker",
		Height:    "172",
		BirthYear: "19BBY",
		URL:       "https://swapi.test/api/people/1/",
		Homeworld: domain.Homeworld{Name: "Tatooine", URL: "https://swapi.test/api/planets/1/", Resolved: true},
		Films: []domain.Film{
			{Title: "A New Hope", URL: "https://swapi.test/api/films/1/", Resolved: true},
			{URL: "https://swapi.test/api/films/2/"},
		},
	})

	view := i.View()
	assert.Contains(t, view, "Luke Skywalker")
	assert.Contains(t, view, "172 cm")
	assert.Contains(t, view, "Tatooine")
	assert.Contains(t, view, "A New Hope")
	assert.Contains(t, view, "…")

	i.Clear()
	assert.Contains(t, i.View(), "No character selected")
}
