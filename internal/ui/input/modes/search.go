package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"shardview/internal/ui/input/types"
)

// SearchMode edits the list search term; every keystroke filters live
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", ti),
	}
}
