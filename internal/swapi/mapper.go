package swapi

import "github.com/mmcdole/swexplorer/internal/domain"

// MapPerson converts a raw person into a character with every reference unresolved.
// Absent film/vehicle lists stay nil so a later merge keeps what is already known.
func MapPerson(p Person) domain.Character {
	c := domain.Character{
		ID:        domain.IDFromURL(p.URL),
		Name:      p.Name,
		Gender:    p.Gender,
		Height:    p.Height,
		Mass:      p.Mass,
		HairColor: p.HairColor,
		SkinColor: p.SkinColor,
		EyeColor:  p.EyeColor,
		BirthYear: p.BirthYear,
		Homeworld: domain.Homeworld{URL: p.Homeworld},
		URL:       p.URL,
	}

	if p.Films != nil {
		c.Films = make([]domain.Film, len(p.Films))
		for i, u := range p.Films {
			c.Films[i] = domain.Film{URL: u}
		}
	}
	if p.Vehicles != nil {
		c.Vehicles = make([]domain.Vehicle, len(p.Vehicles))
		for i, u := range p.Vehicles {
			c.Vehicles[i] = domain.Vehicle{URL: u}
		}
	}
	return c
}

// MapPeople converts a page of raw people preserving response order
func MapPeople(people []Person) []domain.Character {
	out := make([]domain.Character, len(people))
	for i, p := range people {
		out[i] = MapPerson(p)
	}
	return out
}

// MapPlanet converts a planet into a resolved homeworld reference.
// The requested URL is kept as the key even if the payload reports another.
func MapPlanet(p Planet, url string) domain.Homeworld {
	return domain.Homeworld{Name: p.Name, URL: url, Resolved: true}
}

// MapFilm converts a film resource into a resolved film reference
func MapFilm(f FilmResource, url string) domain.Film {
	return domain.Film{Title: f.Title, URL: url, Resolved: true}
}

// MapVehicle converts a vehicle resource into a resolved vehicle reference
func MapVehicle(v VehicleResource, url string) domain.Vehicle {
	return domain.Vehicle{Name: v.Name, URL: url, Resolved: true}
}
