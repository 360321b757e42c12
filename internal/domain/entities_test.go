package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{"trailing slash", "https://swapi.dev/api/people/1/", 1},
		{"no trailing slash", "https://swapi.dev/api/people/42", 42},
		{"not numeric", "https://swapi.dev/api/people/", 0},
		{"empty", "", 0},
		{"garbage", "://bad", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IDFromURL(tt.url))
		})
	}
}

func TestCharacterURL(t *testing.T) {
	assert.Equal(t, "https://swapi.dev/api/people/1/", CharacterURL("https://swapi.dev/api", "1"))
	assert.Equal(t, "https://swapi.dev/api/people/7/", CharacterURL("https://swapi.dev/api/", "7"))
}

func TestCharacterMerge_KeepsResolvedReferences(t *testing.T) {
	prev := Character{
		ID:        1,
		Name:      "Luke Skywalker",
		URL:       "https://swapi.dev/api/people/1/",
		Homeworld: Homeworld{Name: "Tatooine", URL: "H1", Resolved: true},
		Films: []Film{
			{Title: "A New Hope", URL: "F1", Resolved: true},
			{URL: "F2"},
		},
		Vehicles: []Vehicle{{Name: "Snowspeeder", URL: "V1", Resolved: true}},
	}
	next := Character{
		ID:        1,
		Name:      "Luke Skywalker",
		Height:    "172",
		URL:       "https://swapi.dev/api/people/1/",
		Homeworld: Homeworld{URL: "H1"},
		Films:     []Film{{URL: "F1"}, {Title: "Empire", URL: "F2", Resolved: true}},
		Vehicles:  []Vehicle{{URL: "V1"}},
	}

	got := prev.Merge(next)

	assert.Equal(t, "172", got.Height)
	assert.Equal(t, Homeworld{Name: "Tatooine", URL: "H1", Resolved: true}, got.Homeworld)
	assert.Equal(t, []Film{
		{Title: "A New Hope", URL: "F1", Resolved: true},
		{Title: "Empire", URL: "F2", Resolved: true},
	}, got.Films)
	assert.Equal(t, []Vehicle{{Name: "Snowspeeder", URL: "V1", Resolved: true}}, got.Vehicles)
	assert.True(t, got.IsFullyResolved())
}

func TestCharacterMerge_MissingFieldsFallBack(t *testing.T) {
	prev := Character{ID: 3, Name: "R2-D2", Gender: "n/a", Films: []Film{{URL: "F1"}}}
	got := prev.Merge(Character{URL: "u"})

	assert.Equal(t, 3, got.ID)
	assert.Equal(t, "R2-D2", got.Name)
	assert.Equal(t, "n/a", got.Gender)
	assert.Equal(t, []Film{{URL: "F1"}}, got.Films)
}

func TestCharacterClone_DoesNotShareSlices(t *testing.T) {
	c := Character{Films: []Film{{URL: "F1"}}}
	cp := c.Clone()
	cp.Films[0].Title = "changed"
	assert.Empty(t, c.Films[0].Title)
}

func TestCharacterDescription(t *testing.T) {
	assert.Equal(t, "19BBY · male", Character{BirthYear: "19BBY", Gender: "male"}.GetDescription())
	assert.Equal(t, "", Character{BirthYear: "unknown", Gender: "n/a"}.GetDescription())
	assert.Equal(t, "172 cm", Character{Height: "172"}.FormattedHeight())
	assert.Equal(t, "unknown", Character{Height: "unknown"}.FormattedHeight())
	assert.Equal(t, "1,358 kg", Character{Mass: "1,358"}.FormattedMass())
}
