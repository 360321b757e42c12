package swapi

// PeopleResponse represents a paginated list of people
type PeopleResponse struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Person `json:"results"`
}

// Person represents a raw character record. Every field is optional;
// missing values decode to their zero value.
type Person struct {
	Name      string   `json:"name"`
	Gender    string   `json:"gender"`
	Height    string   `json:"height"`
	Mass      string   `json:"mass"`
	HairColor string   `json:"hair_color"`
	SkinColor string   `json:"skin_color"`
	EyeColor  string   `json:"eye_color"`
	BirthYear string   `json:"birth_year"`
	Homeworld string   `json:"homeworld"`
	Films     []string `json:"films"`
	Vehicles  []string `json:"vehicles"`
	URL       string   `json:"url"`
}

// Planet represents the fields consumed from a planet resource
type Planet struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FilmResource represents the fields consumed from a film resource
type FilmResource struct {
	Title     string `json:"title"`
	EpisodeID int    `json:"episode_id"`
	URL       string `json:"url"`
}

// VehicleResource represents the fields consumed from a vehicle resource
type VehicleResource struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	URL   string `json:"url"`
}
