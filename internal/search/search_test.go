package search

import (
	"testing"

	"github.com/mmcdole/swexplorer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueries struct {
	domain.CharacterQueries
	chars []domain.Character
}

func (f fakeQueries) Characters() []domain.Character { return f.chars }

func names(chars []domain.Character) []string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = c.Name
	}
	return out
}

func newTestService() *Service {
	return NewService(fakeQueries{chars: []domain.Character{
		{ID: 1, Name: "Luke Skywalker"},
		{ID: 4, Name: "Darth Vader"},
		{ID: 5, Name: "Leia Organa"},
		{ID: 11, Name: "Anakin Skywalker"},
		{ID: 13, Name: "Chewbacca"},
		{ID: 32, Name: "Qui-Gon Jinn"},
	}}, nil)
}

func TestFilter(t *testing.T) {
	s := newTestService()

	results := s.Filter("skywalker")
	require.Len(t, results, 2)
	assert.ElementsMatch(t, []string{"Luke Skywalker", "Anakin Skywalker"},
		[]string{results[0].Character.Name, results[1].Character.Name})
	assert.Len(t, results[0].MatchedIndexes, len("skywalker"))
}

func TestFilter_CaseInsensitive(t *testing.T) {
	s := newTestService()

	results := s.Filter("  CHEW ")
	require.Len(t, results, 1)
	assert.Equal(t, 13, results[0].Character.ID)
	assert.Equal(t, []int{0, 1, 2, 3}, results[0].MatchedIndexes)
}

func TestFilter_Subsequence(t *testing.T) {
	s := newTestService()

	results := s.Filter("dvdr")
	require.NotEmpty(t, results)
	assert.Equal(t, "Darth Vader", results[0].Character.Name)
}

func TestFilter_Empty(t *testing.T) {
	s := newTestService()
	assert.Nil(t, s.Filter(""))
	assert.Empty(t, s.Filter("zzzz"))

	empty := NewService(fakeQueries{}, nil)
	assert.Nil(t, empty.Filter("luke"))
}

func TestMatch_IndexesIntoInput(t *testing.T) {
	chars := []domain.Character{
		{ID: 4, Name: "Darth Vader"},
		{ID: 44, Name: "Darth Maul"},
		{ID: 1, Name: "Luke Skywalker"},
	}

	results := Match(chars, "maul")
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Index)
	assert.Equal(t, 44, results[0].Character.ID)
	assert.Equal(t, []int{6, 7, 8, 9}, results[0].MatchedIndexes)

	assert.Nil(t, Match(nil, "maul"))
	assert.Nil(t, Match(chars, " "))
}

func TestRank(t *testing.T) {
	s := newTestService()

	assert.Equal(t, []string{"Leia Organa"}, names(s.Rank("leia organa")))
	assert.Equal(t, []string{"Luke Skywalker"}, names(s.Rank("luke")))
	assert.Equal(t, []string{"Anakin Skywalker", "Luke Skywalker"}, names(s.Rank("skywalker")))
	assert.Empty(t, s.Rank("yoda"))
	assert.Nil(t, s.Rank("   "))
}

func TestRank_PrefixBeforeSubstring(t *testing.T) {
	s := NewService(fakeQueries{chars: []domain.Character{
		{ID: 2, Name: "Owen Lars"},
		{ID: 3, Name: "Lars Owen"},
	}}, nil)

	assert.Equal(t, []string{"Lars Owen", "Owen Lars"}, names(s.Rank("lars")))
}

func TestRank_DuplicateNames(t *testing.T) {
	s := NewService(fakeQueries{chars: []domain.Character{
		{ID: 7, Name: "Clone Trooper"},
		{ID: 8, Name: "Clone Trooper"},
	}}, nil)

	got := s.Rank("clone")
	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].ID)
	assert.Equal(t, 8, got[1].ID)
}
