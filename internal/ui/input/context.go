package input

import (
	"shardview/internal/ui/input/types"
	"shardview/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State       *state.AppState
	ItemCount   int
	Search      string
	Deprecation bool // the active list can hide deprecated items
}

// Page returns what the active tab shows
func (c *ModelContext) Page() types.Page {
	if c.State.Tab == state.TabShowcase {
		return types.PageCarousel
	}
	return types.PageList
}

// PopupOpen reports whether a modal captures keys
func (c *ModelContext) PopupOpen() bool {
	return c.State.HasPopup()
}

// HasItems reports whether the active page has anything to open
func (c *ModelContext) HasItems() bool {
	return c.ItemCount > 0
}

// SupportsDeprecated reports whether the deprecated toggle applies
func (c *ModelContext) SupportsDeprecated() bool {
	return c.Deprecation
}

// SearchTerm returns the active list's search term
func (c *ModelContext) SearchTerm() string {
	return c.Search
}
