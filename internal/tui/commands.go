package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/swexplorer/internal/domain"
)

// Command factories for async operations

// FetchPageCmd loads a page through the store and reads it back from cache
func FetchPageCmd(cmds domain.CharacterCommands, queries domain.CharacterQueries, page int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := cmds.FetchCharactersByPage(ctx, page); err != nil {
			return PageLoadedMsg{Page: page, Err: err}
		}
		chars, ok := queries.GetCharactersByPage(page)
		if !ok {
			return PageLoadedMsg{Page: page, Err: fmt.Errorf("page %d could not be loaded", page)}
		}
		return PageLoadedMsg{Page: page, Characters: chars}
	}
}

// FetchCharacterCmd loads a character and resolves its references
func FetchCharacterCmd(cmds domain.CharacterCommands, queries domain.CharacterQueries, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := cmds.FetchCharacter(ctx, id)
		c, ok := queries.GetCharacterByID(id)
		return CharacterLoadedMsg{ID: id, Character: c, Found: ok, Err: err}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
