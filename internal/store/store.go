package store

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// lastPageUnknown marks lastPage before the first successful page fetch
const lastPageUnknown = -1

const defaultResolveConcurrency = 4

// Options configures a Store
type Options struct {
	// BaseURL is the API root used to build canonical character URLs
	BaseURL string

	// ResolveConcurrency bounds parallel film/vehicle lookups per character
	ResolveConcurrency int
}

// Stats counts network requests issued and cache hits served by the store
type Stats struct {
	PageRequests      int64
	CharacterRequests int64
	ReferenceRequests int64
	CacheHits         int64
}

// Store is the single source of truth for fetched character data.
// Characters are keyed by canonical URL; pages hold ordered URLs and read
// through the character map, so detail enrichment is visible from page views.
// Implements domain.CharacterQueries and domain.CharacterCommands.
type Store struct {
	repo        domain.CharacterRepository
	logger      *slog.Logger
	baseURL     string
	concurrency int

	mu          sync.RWMutex // Protects characters, pages, currentPage, lastPage
	characters  map[string]domain.Character
	pages       map[int][]string
	currentPage int
	lastPage    int

	// Sub-entity caches by URL, independent of the character map
	homeworlds *cache.Cache
	films      *cache.Cache
	vehicles   *cache.Cache

	pageSlot chan struct{} // single-slot guard serializing page fetches
	loading  atomic.Bool
	flight   singleflight.Group

	stats struct {
		pages      atomic.Int64
		characters atomic.Int64
		references atomic.Int64
		cacheHits  atomic.Int64
	}
}

// New creates an empty store backed by repo
func New(repo domain.CharacterRepository, opts Options, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := opts.ResolveConcurrency
	if concurrency <= 0 {
		concurrency = defaultResolveConcurrency
	}

	return &Store{
		repo:        repo,
		logger:      logger,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		concurrency: concurrency,
		characters:  make(map[string]domain.Character),
		pages:       make(map[int][]string),
		currentPage: 1,
		lastPage:    lastPageUnknown,
		// No expiration and no janitor: entries live for the session
		homeworlds: cache.New(cache.NoExpiration, 0),
		films:      cache.New(cache.NoExpiration, 0),
		vehicles:   cache.New(cache.NoExpiration, 0),
		pageSlot:   make(chan struct{}, 1),
	}
}

// CharacterURL returns the canonical cache key for a character id
func (s *Store) CharacterURL(id string) string {
	return domain.CharacterURL(s.baseURL, id)
}

// === Queries ===

// GetCharacterByID returns the cached character for id, if present
func (s *Store) GetCharacterByID(id string) (domain.Character, bool) {
	return s.GetCharacterByURL(s.CharacterURL(id))
}

// GetCharacterByURL returns the cached character keyed by url, if present
func (s *Store) GetCharacterByURL(url string) (domain.Character, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.characters[url]
	if !ok {
		return domain.Character{}, false
	}
	return c.Clone(), true
}

// GetCharactersByPage returns the characters of a fetched page in API order.
// Pages below 1 are treated as page 1.
func (s *Store) GetCharactersByPage(page int) ([]domain.Character, bool) {
	if page < 1 {
		page = 1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	urls, ok := s.pages[page]
	if !ok {
		return nil, false
	}
	out := make([]domain.Character, 0, len(urls))
	for _, u := range urls {
		if c, ok := s.characters[u]; ok {
			out = append(out, c.Clone())
		}
	}
	return out, true
}

// Characters returns every cached character ordered by id
func (s *Store) Characters() []domain.Character {
	s.mu.RLock()
	out := make([]domain.Character, 0, len(s.characters))
	for _, c := range s.characters {
		out = append(out, c.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].URL < out[j].URL
	})
	return out
}

// CurrentPage returns the page the UI is showing
func (s *Store) CurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// SetCurrentPage records the page the UI is showing, clamped to [1, lastPage]
func (s *Store) SetCurrentPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if s.lastPage > 0 && page > s.lastPage {
		page = s.lastPage
	}
	s.currentPage = page
}

// LastPage returns the number of the last page once it is known
func (s *Store) LastPage() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPage, s.lastPage != lastPageUnknown
}

// IsLastPageDefined reports whether lastPage has been computed
func (s *Store) IsLastPageDefined() bool {
	_, ok := s.LastPage()
	return ok
}

// IsLoading reports whether a page fetch is in flight
func (s *Store) IsLoading() bool {
	return s.loading.Load()
}

// Homeworld returns a resolved homeworld from the sub-entity cache
func (s *Store) Homeworld(url string) (domain.Homeworld, bool) {
	return cached[domain.Homeworld](s.homeworlds, url)
}

// Film returns a resolved film from the sub-entity cache
func (s *Store) Film(url string) (domain.Film, bool) {
	return cached[domain.Film](s.films, url)
}

// Vehicle returns a resolved vehicle from the sub-entity cache
func (s *Store) Vehicle(url string) (domain.Vehicle, bool) {
	return cached[domain.Vehicle](s.vehicles, url)
}

// Stats returns request and cache counters
func (s *Store) Stats() Stats {
	return Stats{
		PageRequests:      s.stats.pages.Load(),
		CharacterRequests: s.stats.characters.Load(),
		ReferenceRequests: s.stats.references.Load(),
		CacheHits:         s.stats.cacheHits.Load(),
	}
}

// mergeLocked folds c into the character map and returns the stored value.
// Caller must hold s.mu for writing.
func (s *Store) mergeLocked(c domain.Character) domain.Character {
	if prev, ok := s.characters[c.URL]; ok {
		c = prev.Merge(c)
	}
	s.syncReferencesLocked(&c)
	s.characters[c.URL] = c
	return c
}

// syncReferencesLocked fills unresolved references from the sub-entity caches
func (s *Store) syncReferencesLocked(c *domain.Character) {
	if !c.Homeworld.Resolved && c.Homeworld.URL != "" {
		if hw, ok := s.Homeworld(c.Homeworld.URL); ok {
			c.Homeworld = hw
		}
	}
	for i, f := range c.Films {
		if !f.Resolved {
			if film, ok := s.Film(f.URL); ok {
				c.Films[i] = film
			}
		}
	}
	for i, v := range c.Vehicles {
		if !v.Resolved {
			if vehicle, ok := s.Vehicle(v.URL); ok {
				c.Vehicles[i] = vehicle
			}
		}
	}
}

func cached[T any](c *cache.Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

var (
	_ domain.CharacterQueries  = (*Store)(nil)
	_ domain.CharacterCommands = (*Store)(nil)
)
