package domain

import "context"

// CharacterQueries: synchronous, cache-only reads.
// All methods return instantly and never block on network.
// Safe to call from View() and navigation code.
type CharacterQueries interface {
	GetCharacterByID(id string) (Character, bool)
	GetCharactersByPage(page int) ([]Character, bool)
	Characters() []Character
	CurrentPage() int
	LastPage() (int, bool)
	IsLastPageDefined() bool
	IsLoading() bool
}

// CharacterCommands: operations that may hit network.
// Must be called from tea.Cmd functions, never from View().
type CharacterCommands interface {
	FetchCharactersByPage(ctx context.Context, page int) error
	FetchLastPage(ctx context.Context) error
	FetchCharacter(ctx context.Context, id string) error
	FetchPages(ctx context.Context, limit int, onProgress ProgressFunc) error
	SetCurrentPage(page int)
}
