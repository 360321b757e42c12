package tui

import "github.com/mmcdole/swexplorer/internal/domain"

// PageLoadedMsg signals that a page fetch finished.
// Err is set when the page is still absent from the store afterwards.
type PageLoadedMsg struct {
	Page       int
	Characters []domain.Character
	Err        error
}

// CharacterLoadedMsg signals that a character fetch finished
type CharacterLoadedMsg struct {
	ID        string
	Character domain.Character
	Found     bool
	Err       error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

