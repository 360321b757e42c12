package swapi

import (
	"testing"

	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapPerson(t *testing.T) {
	p := Person{
		Name:      "Darth Vader",
		Gender:    "male",
		Height:    "202",
		Mass:      "136",
		HairColor: "none",
		SkinColor: "white",
		EyeColor:  "yellow",
		BirthYear: "41.9BBY",
		Homeworld: "https://swapi.dev/api/planets/1/",
		Films:     []string{"https://swapi.dev/api/films/1/"},
		Vehicles:  []string{},
		URL:       "https://swapi.dev/api/people/4/",
	}

	c := MapPerson(p)

	assert.Equal(t, 4, c.ID)
	assert.Equal(t, "Darth Vader", c.Name)
	assert.Equal(t, "41.9BBY", c.BirthYear)
	assert.Equal(t, domain.Homeworld{URL: "https://swapi.dev/api/planets/1/"}, c.Homeworld)
	assert.Equal(t, []domain.Film{{URL: "https://swapi.dev/api/films/1/"}}, c.Films)
	assert.NotNil(t, c.Vehicles)
	assert.Empty(t, c.Vehicles)
	assert.False(t, c.IsFullyResolved())
}

func TestMapPeople_PreservesOrder(t *testing.T) {
	out := MapPeople([]Person{
		{Name: "b", URL: "https://swapi.dev/api/people/2/"},
		{Name: "a", URL: "https://swapi.dev/api/people/1/"},
	})
	assert.Equal(t, "b", out[0].Name)
	assert.Equal(t, "a", out[1].Name)
}

func TestMapResources_UseRequestedURL(t *testing.T) {
	hw := MapPlanet(Planet{Name: "Tatooine", URL: "http://other/planets/1/"}, "u1")
	assert.Equal(t, domain.Homeworld{Name: "Tatooine", URL: "u1", Resolved: true}, hw)

	// A missing display field still counts as resolved
	f := MapFilm(FilmResource{}, "u2")
	assert.True(t, f.Resolved)
	assert.Empty(t, f.Title)
}
