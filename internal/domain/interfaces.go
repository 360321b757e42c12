package domain

// ListItem is the interface for items that can be displayed in lists.
// Character implements it directly.
type ListItem interface {
	// GetID returns the unique identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetDescription returns secondary info for display (e.g., "19BBY · male")
	GetDescription() string
}
