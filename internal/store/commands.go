package store

import (
	"context"
	"fmt"

	"github.com/mmcdole/swexplorer/internal/domain"
	"golang.org/x/sync/errgroup"
)

// FetchCharactersByPage loads a 1-based page into the cache.
//
// Page fetches are serialized: a caller waits for any in-flight page fetch to
// finish, then re-checks the cache, so a page is requested at most once.
// Fetch failures are logged and leave the store unchanged; the only error
// returned is ctx's when it ends while waiting for the in-flight fetch.
func (s *Store) FetchCharactersByPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	select {
	case s.pageSlot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.pageSlot }()

	s.mu.RLock()
	_, ok := s.pages[page]
	s.mu.RUnlock()
	if ok {
		s.stats.cacheHits.Add(1)
		s.logger.Debug("page cache hit", "page", page)
		return nil
	}

	s.loading.Store(true)
	defer s.loading.Store(false)

	s.stats.pages.Add(1)
	result, err := s.repo.GetPeoplePage(ctx, page)
	if err != nil {
		s.logger.Error("unable to load characters", "error", err, "page", page)
		return nil
	}

	s.mu.Lock()
	urls := make([]string, 0, len(result.Characters))
	for _, c := range result.Characters {
		if c.URL == "" {
			s.logger.Warn("skipping character without url", "page", page, "name", c.Name)
			continue
		}
		s.mergeLocked(c)
		urls = append(urls, c.URL)
	}
	s.pages[page] = urls

	// Page size is inferred from the first successful response
	if s.lastPage == lastPageUnknown && len(result.Characters) > 0 {
		size := len(result.Characters)
		s.lastPage = (result.Count + size - 1) / size
		s.logger.Debug("computed last page", "lastPage", s.lastPage, "count", result.Count, "pageSize", size)
	}
	s.mu.Unlock()

	s.logger.Info("loaded characters", "page", page, "count", len(urls))
	return nil
}

// FetchLastPage fetches the default page (page 1), which is what makes
// LastPage known. It does not fetch the final page.
func (s *Store) FetchLastPage(ctx context.Context) error {
	return s.FetchCharactersByPage(ctx, 1)
}

// FetchPages loads pages 1..limit in order (every page when limit <= 0),
// stopping at the last page or at the first page that fails to load.
func (s *Store) FetchPages(ctx context.Context, limit int, onProgress domain.ProgressFunc) error {
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.FetchCharactersByPage(ctx, page); err != nil {
			return err
		}
		if _, ok := s.GetCharactersByPage(page); !ok {
			return fmt.Errorf("page %d could not be loaded", page)
		}

		last, known := s.LastPage()
		total := last
		if !known {
			total = page
		} else if limit > 0 && limit < last {
			total = limit
		}
		if onProgress != nil {
			onProgress(page, total)
		}

		// An empty first page leaves lastPage unknown: nothing more to load
		if !known || page >= last || (limit > 0 && page >= limit) {
			return nil
		}
	}
}

// FetchCharacter loads a character and resolves every unresolved reference.
//
// A cached character skips the base request. Base fetch failures are logged
// and return nil with the cache unchanged; reference resolution failures are
// returned after whatever did resolve has been written back.
func (s *Store) FetchCharacter(ctx context.Context, id string) error {
	key := s.CharacterURL(id)

	char, ok := s.GetCharacterByURL(key)
	if !ok {
		v, err := s.share(ctx, "character:"+key, func(ctx context.Context) (any, error) {
			s.stats.characters.Add(1)
			return s.repo.GetPerson(ctx, id)
		})
		if err != nil {
			s.logger.Error("unable to load character", "error", err, "id", id)
			return nil
		}

		fetched := v.(domain.Character).Clone()
		if fetched.URL == "" {
			fetched.URL = key
			fetched.ID = domain.IDFromURL(key)
		}

		s.mu.Lock()
		char = s.mergeLocked(fetched).Clone()
		s.mu.Unlock()
	} else {
		s.stats.cacheHits.Add(1)
	}

	enriched, resolveErr := s.resolveReferences(ctx, char)

	s.mu.Lock()
	s.mergeLocked(enriched)
	s.mu.Unlock()

	if resolveErr != nil {
		return fmt.Errorf("character %s: %w", id, resolveErr)
	}
	s.logger.Debug("loaded character", "id", id, "url", enriched.URL)
	return nil
}

// resolveReferences returns a copy of c with its references resolved.
// The homeworld is resolved first; films and vehicles are resolved
// concurrently and the first failure cancels the rest.
func (s *Store) resolveReferences(ctx context.Context, c domain.Character) (domain.Character, error) {
	out := c.Clone()

	if out.Homeworld.URL != "" && !out.Homeworld.Resolved {
		hw, err := s.GetHomeworldByURL(ctx, out.Homeworld.URL)
		if err != nil {
			return out, fmt.Errorf("resolve homeworld %s: %w", out.Homeworld.URL, err)
		}
		out.Homeworld = hw
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, f := range out.Films {
		if f.Resolved {
			continue
		}
		i, f := i, f
		g.Go(func() error {
			film, err := s.GetFilmByURL(gctx, f.URL)
			if err != nil {
				return fmt.Errorf("resolve film %s: %w", f.URL, err)
			}
			out.Films[i] = film
			return nil
		})
	}
	for i, v := range out.Vehicles {
		if v.Resolved {
			continue
		}
		i, v := i, v
		g.Go(func() error {
			vehicle, err := s.GetVehicleByURL(gctx, v.URL)
			if err != nil {
				return fmt.Errorf("resolve vehicle %s: %w", v.URL, err)
			}
			out.Vehicles[i] = vehicle
			return nil
		})
	}

	err := g.Wait()
	return out, err
}
