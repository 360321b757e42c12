package domain

import "context"

// PeoplePage is one list response from the people endpoint.
type PeoplePage struct {
	Count      int
	Characters []Character
}

// CharacterRepository: network operations (implemented by the swapi client)
type CharacterRepository interface {
	// GetPeoplePage returns the characters on a 1-based page plus the total count
	GetPeoplePage(ctx context.Context, page int) (PeoplePage, error)

	// GetPerson returns a single character by id
	GetPerson(ctx context.Context, id string) (Character, error)

	// GetHomeworld resolves a planet URL
	GetHomeworld(ctx context.Context, url string) (Homeworld, error)

	// GetFilm resolves a film URL
	GetFilm(ctx context.Context, url string) (Film, error)

	// GetVehicle resolves a vehicle URL
	GetVehicle(ctx context.Context, url string) (Vehicle, error)
}
