package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/swexplorer/internal/domain"
	sfuzzy "github.com/sahilm/fuzzy"
)

// Result is a matched character with match metadata for highlighting
type Result struct {
	Character      domain.Character
	Index          int   // Position in the searched slice
	MatchedIndexes []int // Byte positions in the lowercased name
	Score          int   // Higher is better
}

// nameIndex implements sahilm/fuzzy.Source over pre-lowered names
type nameIndex struct {
	chars []domain.Character
	names []string
}

func (idx *nameIndex) String(i int) string { return idx.names[i] }
func (idx *nameIndex) Len() int            { return len(idx.chars) }

func newNameIndex(chars []domain.Character) *nameIndex {
	idx := &nameIndex{
		chars: chars,
		names: make([]string, len(chars)),
	}
	for i, c := range chars {
		idx.names[i] = strings.ToLower(c.Name)
	}
	return idx
}

// Service searches characters already held in the store.
// It never triggers network requests.
type Service struct {
	queries domain.CharacterQueries
	logger  *slog.Logger
}

// NewService creates a search service over cached characters
func NewService(queries domain.CharacterQueries, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		queries: queries,
		logger:  logger,
	}
}

// Match fuzzy-matches query against the names of chars.
// Results carry matched positions and are ordered best first.
func Match(chars []domain.Character, query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(chars) == 0 {
		return nil
	}

	idx := newNameIndex(chars)
	matches := sfuzzy.FindFrom(query, idx)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Character:      idx.chars[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Filter fuzzy-matches query against every cached character name
func (s *Service) Filter(query string) []Result {
	chars := s.queries.Characters()
	results := Match(chars, query)
	if results != nil {
		s.logger.Debug("filtered characters", "query", query, "count", len(results), "total", len(chars))
	}
	return results
}

// Rank returns cached characters whose name contains every rune of query in
// order, best match first: exact, then prefix, then substring, then by edit
// distance.
func (s *Service) Rank(query string) []domain.Character {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	chars := s.queries.Characters()
	byName := make(map[string][]domain.Character, len(chars))
	names := make([]string, 0, len(chars))
	for _, c := range chars {
		name := strings.ToLower(c.Name)
		if _, ok := byName[name]; !ok {
			names = append(names, name)
		}
		byName[name] = append(byName[name], c)
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		si, sj := matchScore(ranks[i], query), matchScore(ranks[j], query)
		if si != sj {
			return si < sj
		}
		return ranks[i].Target < ranks[j].Target
	})

	results := make([]domain.Character, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, byName[r.Target]...)
	}

	s.logger.Debug("ranked characters", "query", query, "count", len(results))
	return results
}

// matchScore orders ranks; lower is better
func matchScore(r fuzzy.Rank, query string) int {
	switch {
	case r.Target == query:
		return 0
	case strings.HasPrefix(r.Target, query):
		return 10
	case strings.Contains(r.Target, query):
		return 50
	default:
		return 100 + r.Distance
	}
}
