package domain

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
)

// Homeworld is a reference to the planet a character comes from.
// Name is only meaningful once Resolved is true.
type Homeworld struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Resolved bool   `json:"resolved"`
}

// Film is a reference to a film a character appears in.
type Film struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Resolved bool   `json:"resolved"`
}

// Vehicle is a reference to a vehicle a character has piloted.
type Vehicle struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Resolved bool   `json:"resolved"`
}

// Character is a normalized person record.
// URL is the canonical cache key; ID is derived from it.
type Character struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Height    string    `json:"height"`
	Mass      string    `json:"mass"`
	HairColor string    `json:"hair_color"`
	SkinColor string    `json:"skin_color"`
	EyeColor  string    `json:"eye_color"`
	BirthYear string    `json:"birth_year"`
	Homeworld Homeworld `json:"homeworld"`
	Films     []Film    `json:"films"`
	Vehicles  []Vehicle `json:"vehicles"`
	URL       string    `json:"url"`
}

// Clone returns a deep copy so callers never share slices with the cache.
func (c Character) Clone() Character {
	out := c
	if c.Films != nil {
		out.Films = make([]Film, len(c.Films))
		copy(out.Films, c.Films)
	}
	if c.Vehicles != nil {
		out.Vehicles = make([]Vehicle, len(c.Vehicles))
		copy(out.Vehicles, c.Vehicles)
	}
	return out
}

// IsFullyResolved reports whether every reference carries its display field.
func (c Character) IsFullyResolved() bool {
	if c.Homeworld.URL != "" && !c.Homeworld.Resolved {
		return false
	}
	for _, f := range c.Films {
		if !f.Resolved {
			return false
		}
	}
	for _, v := range c.Vehicles {
		if !v.Resolved {
			return false
		}
	}
	return true
}

// Merge folds next into c and returns the result. Scalar fields come from next
// when present; a reference already resolved in c is never downgraded.
func (c Character) Merge(next Character) Character {
	out := next.Clone()
	if out.URL == "" {
		out.URL = c.URL
	}
	if out.ID == 0 {
		out.ID = c.ID
	}
	fillString(&out.Name, c.Name)
	fillString(&out.Gender, c.Gender)
	fillString(&out.Height, c.Height)
	fillString(&out.Mass, c.Mass)
	fillString(&out.HairColor, c.HairColor)
	fillString(&out.SkinColor, c.SkinColor)
	fillString(&out.EyeColor, c.EyeColor)
	fillString(&out.BirthYear, c.BirthYear)

	if out.Homeworld.URL == "" {
		out.Homeworld = c.Homeworld
	} else if !out.Homeworld.Resolved && c.Homeworld.Resolved && c.Homeworld.URL == out.Homeworld.URL {
		out.Homeworld = c.Homeworld
	}

	films := make(map[string]Film, len(c.Films))
	for _, f := range c.Films {
		if f.Resolved {
			films[f.URL] = f
		}
	}
	if out.Films == nil {
		out.Films = append([]Film(nil), c.Films...)
	}
	for i, f := range out.Films {
		if prev, ok := films[f.URL]; ok && !f.Resolved {
			out.Films[i] = prev
		}
	}

	vehicles := make(map[string]Vehicle, len(c.Vehicles))
	for _, v := range c.Vehicles {
		if v.Resolved {
			vehicles[v.URL] = v
		}
	}
	if out.Vehicles == nil {
		out.Vehicles = append([]Vehicle(nil), c.Vehicles...)
	}
	for i, v := range out.Vehicles {
		if prev, ok := vehicles[v.URL]; ok && !v.Resolved {
			out.Vehicles[i] = prev
		}
	}
	return out
}

func fillString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

// ListItem implementation

func (c Character) GetID() string    { return strconv.Itoa(c.ID) }
func (c Character) GetTitle() string { return c.Name }

// GetDescription returns the secondary line shown under the name in lists.
func (c Character) GetDescription() string {
	parts := make([]string, 0, 2)
	if c.BirthYear != "" && c.BirthYear != "unknown" {
		parts = append(parts, c.BirthYear)
	}
	if c.Gender != "" && c.Gender != "n/a" {
		parts = append(parts, c.Gender)
	}
	return strings.Join(parts, " · ")
}

// FormattedHeight renders the height with its unit when numeric.
func (c Character) FormattedHeight() string {
	if _, err := strconv.Atoi(c.Height); err == nil {
		return c.Height + " cm"
	}
	return c.Height
}

// FormattedMass renders the mass with its unit when numeric.
func (c Character) FormattedMass() string {
	if _, err := strconv.ParseFloat(strings.ReplaceAll(c.Mass, ",", ""), 64); err == nil {
		return c.Mass + " kg"
	}
	return c.Mass
}

// IDFromURL extracts the numeric identifier from a resource URL such as
// https://swapi.dev/api/people/1/. Returns 0 when the last path segment is not a number.
func IDFromURL(raw string) int {
	u, err := url.Parse(raw)
	if err != nil {
		return 0
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return 0
	}
	id, err := strconv.Atoi(path.Base(p))
	if err != nil {
		return 0
	}
	return id
}

// CharacterURL builds the canonical character URL for an id.
func CharacterURL(baseURL, id string) string {
	return fmt.Sprintf("%s/people/%s/", strings.TrimRight(baseURL, "/"), id)
}
