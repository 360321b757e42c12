package store

import (
	"context"

	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/patrickmn/go-cache"
)

// GetHomeworldByURL returns the homeworld at url, fetching it on a cache miss.
// Failures are not cached.
func (s *Store) GetHomeworldByURL(ctx context.Context, url string) (domain.Homeworld, error) {
	return resolve(ctx, s, s.homeworlds, "homeworld", url, s.repo.GetHomeworld)
}

// GetFilmByURL returns the film at url, fetching it on a cache miss
func (s *Store) GetFilmByURL(ctx context.Context, url string) (domain.Film, error) {
	return resolve(ctx, s, s.films, "film", url, s.repo.GetFilm)
}

// GetVehicleByURL returns the vehicle at url, fetching it on a cache miss
func (s *Store) GetVehicleByURL(ctx context.Context, url string) (domain.Vehicle, error) {
	return resolve(ctx, s, s.vehicles, "vehicle", url, s.repo.GetVehicle)
}

// resolve is the cache-first lookup shared by the sub-entity kinds.
// Concurrent misses for one url share a single request.
func resolve[T any](
	ctx context.Context,
	s *Store,
	c *cache.Cache,
	kind, url string,
	fetch func(ctx context.Context, url string) (T, error),
) (T, error) {
	if v, ok := cached[T](c, url); ok {
		s.stats.cacheHits.Add(1)
		return v, nil
	}

	v, err := s.share(ctx, kind+":"+url, func(ctx context.Context) (any, error) {
		// Another call may have filled the cache while we were queued
		if v, ok := cached[T](c, url); ok {
			return v, nil
		}
		s.stats.references.Add(1)
		v, err := fetch(ctx, url)
		if err != nil {
			s.logger.Warn("failed to resolve reference", "kind", kind, "url", url, "error", err)
			return nil, err
		}
		c.Set(url, v, cache.NoExpiration)
		s.propagate()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// share runs fn once for all concurrent callers of key. The shared call runs
// detached from the callers' cancellation and is bounded by the client
// timeout; each caller stops waiting when its own ctx is done.
func (s *Store) share(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// propagate copies newly resolved sub-entities into every cached character
// still holding the unresolved reference
func (s *Store) propagate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for url, c := range s.characters {
		if c.IsFullyResolved() {
			continue
		}
		c = c.Clone()
		s.syncReferencesLocked(&c)
		s.characters[url] = c
	}
}
