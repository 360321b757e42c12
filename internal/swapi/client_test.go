package swapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/mmcdole/swexplorer/internal/log"
	"github.com/mmcdole/swexplorer/internal/swapi/swapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, opts Options) (*Client, *httpmock.MockTransport) {
	t.Helper()
	mt, httpClient := swapitest.NewTransport()
	opts.HTTPClient = httpClient
	return NewClient(swapitest.BaseURL+"/", opts, log.NullLogger()), mt
}

var luke = swapitest.Person{ID: 1, Name: "Luke Skywalker", Homeworld: 1, Films: []int{1, 2}, Vehicles: []int{14}}

func TestClient_GetPeoplePage(t *testing.T) {
	client, mt := newTestClient(t, Options{})
	leia := swapitest.Person{ID: 5, Name: "Leia Organa", Homeworld: 2}
	swapitest.RegisterJSON(mt, swapitest.PageURL(2), swapitest.PageJSON(82, luke, leia))

	page, err := client.GetPeoplePage(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 82, page.Count)
	require.Len(t, page.Characters, 2)
	assert.Equal(t, "Luke Skywalker", page.Characters[0].Name)
	assert.Equal(t, 1, page.Characters[0].ID)
	assert.Equal(t, swapitest.PersonURL(1), page.Characters[0].URL)
	assert.Equal(t, domain.Homeworld{URL: swapitest.PlanetURL(1)}, page.Characters[0].Homeworld)
	assert.Equal(t, []domain.Film{{URL: swapitest.FilmURL(1)}, {URL: swapitest.FilmURL(2)}}, page.Characters[0].Films)
	assert.Equal(t, "Leia Organa", page.Characters[1].Name)
	assert.Equal(t, 1, swapitest.Calls(mt, swapitest.PageURL(2)))
}

func TestClient_GetPeoplePage_DefaultsToFirstPage(t *testing.T) {
	client, mt := newTestClient(t, Options{})
	swapitest.RegisterJSON(mt, swapitest.PageURL(1), swapitest.PageJSON(1, luke))

	page, err := client.GetPeoplePage(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, page.Characters, 1)
}

func TestClient_GetPerson(t *testing.T) {
	client, mt := newTestClient(t, Options{UserAgent: "swexplorer-test"})
	mt.RegisterResponder(http.MethodGet, swapitest.DetailURL(1), func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "swexplorer-test", req.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
		return httpmock.NewStringResponse(http.StatusOK, luke.JSON()), nil
	})

	c, err := client.GetPerson(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Luke Skywalker", c.Name)
	assert.Equal(t, "19BBY", c.BirthYear)
	assert.Equal(t, []domain.Vehicle{{URL: swapitest.VehicleURL(14)}}, c.Vehicles)
}

func TestClient_SubEntities(t *testing.T) {
	client, mt := newTestClient(t, Options{})
	swapitest.RegisterJSON(mt, swapitest.PlanetURL(1), swapitest.NamedJSON("Tatooine"))
	swapitest.RegisterJSON(mt, swapitest.FilmURL(1), swapitest.TitledJSON("A New Hope"))
	swapitest.RegisterJSON(mt, swapitest.VehicleURL(14), swapitest.NamedJSON("Snowspeeder"))
	ctx := context.Background()

	hw, err := client.GetHomeworld(ctx, swapitest.PlanetURL(1))
	require.NoError(t, err)
	assert.Equal(t, domain.Homeworld{Name: "Tatooine", URL: swapitest.PlanetURL(1), Resolved: true}, hw)

	film, err := client.GetFilm(ctx, swapitest.FilmURL(1))
	require.NoError(t, err)
	assert.Equal(t, domain.Film{Title: "A New Hope", URL: swapitest.FilmURL(1), Resolved: true}, film)

	vehicle, err := client.GetVehicle(ctx, swapitest.VehicleURL(14))
	require.NoError(t, err)
	assert.Equal(t, domain.Vehicle{Name: "Snowspeeder", URL: swapitest.VehicleURL(14), Resolved: true}, vehicle)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not_found", http.StatusNotFound, domain.ErrNotFound},
		{"bad_request", http.StatusBadRequest, domain.ErrUnexpectedStatus},
		{"internal_server_error", http.StatusInternalServerError, domain.ErrServerUnavailable},
		{"bad_gateway", http.StatusBadGateway, domain.ErrServerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mt := newTestClient(t, Options{})
			swapitest.RegisterStatus(mt, swapitest.DetailURL(1), tt.status)

			_, err := client.GetPerson(context.Background(), "1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			// No retries
			assert.Equal(t, 1, swapitest.Calls(mt, swapitest.DetailURL(1)))
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	client, mt := newTestClient(t, Options{})
	mt.RegisterResponder(http.MethodGet, swapitest.PlanetURL(9), httpmock.NewErrorResponder(assert.AnError))

	_, err := client.GetHomeworld(context.Background(), swapitest.PlanetURL(9))
	assert.ErrorIs(t, err, domain.ErrServerUnavailable)
}

func TestClient_MalformedBody(t *testing.T) {
	client, mt := newTestClient(t, Options{})
	swapitest.RegisterJSON(mt, swapitest.PageURL(1), `{"count": "many"`)

	_, err := client.GetPeoplePage(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestClient_MissingFieldsDecodeToZero(t *testing.T) {
	client, mt := newTestClient(t, Options{})
	swapitest.RegisterJSON(mt, swapitest.DetailURL(3), `{"name":"R2-D2","url":"`+swapitest.PersonURL(3)+`"}`)

	c, err := client.GetPerson(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID)
	assert.Empty(t, c.Homeworld.URL)
	assert.Nil(t, c.Films)
	assert.Nil(t, c.Vehicles)
}

func TestClient_RateLimit(t *testing.T) {
	client, mt := newTestClient(t, Options{RateLimit: 20})
	swapitest.RegisterJSON(mt, swapitest.PlanetURL(1), swapitest.NamedJSON("Tatooine"))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.GetHomeworld(context.Background(), swapitest.PlanetURL(1))
		require.NoError(t, err)
	}
	// burst of 1 at 20 rps: the 2nd and 3rd calls wait ~50ms each
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestClient_ContextCancelled(t *testing.T) {
	client, mt := newTestClient(t, Options{})
	swapitest.RegisterJSON(mt, swapitest.PlanetURL(1), swapitest.NamedJSON("Tatooine"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetHomeworld(ctx, swapitest.PlanetURL(1))
	assert.ErrorIs(t, err, context.Canceled)
}
