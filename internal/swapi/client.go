package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/swexplorer/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 = unlimited
	UserAgent  string
	HTTPClient *http.Client
}

// Client implements domain.CharacterRepository against the Star Wars API.
// Requests are never retried.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new API client rooted at baseURL (e.g. https://swapi.dev/api)
func NewClient(baseURL string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger,
	}
}

// BaseURL returns the API root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getJSON performs a GET request and decodes the JSON body into dest
func (c *Client) getJSON(ctx context.Context, reqURL string, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("swapi request", "url", reqURL)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Error("swapi request failed", "error", err, "url", reqURL)
		return fmt.Errorf("%w: %v", domain.ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview := string(body)
		if len(preview) > maxErrorBody {
			preview = preview[:maxErrorBody] + "..."
		}
		c.logger.Warn("swapi error response", "status", resp.StatusCode, "url", reqURL, "body", preview)

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, reqURL)
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: status %d", domain.ErrServerUnavailable, resp.StatusCode)
		default:
			return fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
		}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("failed to parse swapi response", "error", err, "url", reqURL, "size", len(body))
		return fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	c.logger.Debug("swapi response", "url", reqURL, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// GetPeoplePage returns one page of characters and the total count
func (c *Client) GetPeoplePage(ctx context.Context, page int) (domain.PeoplePage, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	reqURL := fmt.Sprintf("%s/people?%s", c.baseURL, query.Encode())

	var resp PeopleResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return domain.PeoplePage{}, err
	}

	return domain.PeoplePage{
		Count:      resp.Count,
		Characters: MapPeople(resp.Results),
	}, nil
}

// GetPerson returns a single character from the detail endpoint
func (c *Client) GetPerson(ctx context.Context, id string) (domain.Character, error) {
	reqURL := fmt.Sprintf("%s/people/%s", c.baseURL, url.PathEscape(id))

	var person Person
	if err := c.getJSON(ctx, reqURL, &person); err != nil {
		return domain.Character{}, err
	}
	return MapPerson(person), nil
}

// GetHomeworld resolves a planet URL
func (c *Client) GetHomeworld(ctx context.Context, resourceURL string) (domain.Homeworld, error) {
	var planet Planet
	if err := c.getJSON(ctx, resourceURL, &planet); err != nil {
		return domain.Homeworld{}, err
	}
	return MapPlanet(planet, resourceURL), nil
}

// GetFilm resolves a film URL
func (c *Client) GetFilm(ctx context.Context, resourceURL string) (domain.Film, error) {
	var film FilmResource
	if err := c.getJSON(ctx, resourceURL, &film); err != nil {
		return domain.Film{}, err
	}
	return MapFilm(film, resourceURL), nil
}

// GetVehicle resolves a vehicle URL
func (c *Client) GetVehicle(ctx context.Context, resourceURL string) (domain.Vehicle, error) {
	var vehicle VehicleResource
	if err := c.getJSON(ctx, resourceURL, &vehicle); err != nil {
		return domain.Vehicle{}, err
	}
	return MapVehicle(vehicle, resourceURL), nil
}

var _ domain.CharacterRepository = (*Client)(nil)
