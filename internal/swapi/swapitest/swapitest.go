// Package swapitest provides fixtures and a mock transport for tests that
// talk to the Star Wars API client.
package swapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jarcoal/httpmock"
)

// BaseURL is the API root used by fixtures
const BaseURL = "https://swapi.test/api"

// Person describes a fixture character
type Person struct {
	ID        int
	Name      string
	Homeworld int   // planet id, 0 = none
	Films     []int // film ids
	Vehicles  []int // vehicle ids
}

// PersonURL returns the canonical URL for a person id
func PersonURL(id int) string { return fmt.Sprintf("%s/people/%d/", BaseURL, id) }

// PlanetURL returns the URL for a planet id
func PlanetURL(id int) string { return fmt.Sprintf("%s/planets/%d/", BaseURL, id) }

// FilmURL returns the URL for a film id
func FilmURL(id int) string { return fmt.Sprintf("%s/films/%d/", BaseURL, id) }

// VehicleURL returns the URL for a vehicle id
func VehicleURL(id int) string { return fmt.Sprintf("%s/vehicles/%d/", BaseURL, id) }

// PageURL returns the list endpoint for a page
func PageURL(page int) string { return fmt.Sprintf("%s/people?page=%d", BaseURL, page) }

// DetailURL returns the detail endpoint for a person id
func DetailURL(id int) string { return fmt.Sprintf("%s/people/%d", BaseURL, id) }

// Raw returns the raw JSON object for a fixture person
func (p Person) Raw() map[string]any {
	films := make([]string, 0, len(p.Films))
	for _, f := range p.Films {
		films = append(films, FilmURL(f))
	}
	vehicles := make([]string, 0, len(p.Vehicles))
	for _, v := range p.Vehicles {
		vehicles = append(vehicles, VehicleURL(v))
	}
	homeworld := ""
	if p.Homeworld > 0 {
		homeworld = PlanetURL(p.Homeworld)
	}
	return map[string]any{
		"name":       p.Name,
		"gender":     "male",
		"height":     "172",
		"mass":       "77",
		"hair_color": "blond",
		"skin_color": "fair",
		"eye_color":  "blue",
		"birth_year": "19BBY",
		"homeworld":  homeworld,
		"films":      films,
		"vehicles":   vehicles,
		"url":        PersonURL(p.ID),
	}
}

// JSON returns the detail payload for a fixture person
func (p Person) JSON() string {
	return mustJSON(p.Raw())
}

// PageJSON returns a list payload with the given total count
func PageJSON(count int, people ...Person) string {
	results := make([]map[string]any, len(people))
	for i, p := range people {
		results[i] = p.Raw()
	}
	return mustJSON(map[string]any{
		"count":    count,
		"next":     nil,
		"previous": nil,
		"results":  results,
	})
}

// NamedJSON returns a {"name": ...} payload (planets, vehicles)
func NamedJSON(name string) string {
	return mustJSON(map[string]any{"name": name})
}

// TitledJSON returns a {"title": ...} payload (films)
func TitledJSON(title string) string {
	return mustJSON(map[string]any{"title": title})
}

// NewTransport returns a mock transport and an http.Client using it.
// Unregistered URLs answer 404.
func NewTransport() (*httpmock.MockTransport, *http.Client) {
	mt := httpmock.NewMockTransport()
	mt.RegisterNoResponder(httpmock.NewStringResponder(http.StatusNotFound, `{"detail":"Not found"}`))
	return mt, &http.Client{Transport: mt}
}

// RegisterJSON registers a 200 JSON responder for url
func RegisterJSON(mt *httpmock.MockTransport, url, body string) {
	mt.RegisterResponder(http.MethodGet, url, jsonResponder(http.StatusOK, body))
}

// RegisterStatus registers an error status responder for url
func RegisterStatus(mt *httpmock.MockTransport, url string, status int) {
	mt.RegisterResponder(http.MethodGet, url, jsonResponder(status, `{"detail":"error"}`))
}

// Calls returns how many times the responder registered for url ran.
// Re-registering url resets the count and unregistered URLs are never counted.
func Calls(mt *httpmock.MockTransport, url string) int {
	return mt.GetCallCountInfo()["GET "+url]
}

func jsonResponder(status int, body string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(status, body)
		resp.Header.Set("Content-Type", "application/json")
		resp.Request = req
		return resp, nil
	}
}

func mustJSON(v any) string {
	var sb strings.Builder
	if err := json.NewEncoder(&sb).Encode(v); err != nil {
		panic(err)
	}
	return sb.String()
}
