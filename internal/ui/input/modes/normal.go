package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"shardview/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	// Modal popups swallow everything but scrolling and closing
	if ctx.PopupOpen() {
		switch msg.String() {
		case "esc", "q", "enter", "?":
			return []types.Action{types.ClosePopupAction{}}, true
		case "up", "k":
			return []types.Action{types.ScrollPopupAction{Delta: -1}}, true
		case "down", "j":
			return []types.Action{types.ScrollPopupAction{Delta: 1}}, true
		case "pgup":
			return []types.Action{types.ScrollPopupAction{Delta: -10}}, true
		case "pgdown":
			return []types.Action{types.ScrollPopupAction{Delta: 10}}, true
		}
		return nil, true
	}

	switch msg.String() {
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "tab":
		return []types.Action{types.SwitchTabAction{Delta: 1, Index: -1}}, true
	case "shift+tab":
		return []types.Action{types.SwitchTabAction{Delta: -1, Index: -1}}, true
	case "1", "2", "3":
		return []types.Action{types.SwitchTabAction{Index: int(msg.String()[0] - '1')}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "H":
		return []types.Action{types.ToggleHelpAction{Pager: true}}, true
	case "r":
		return []types.Action{types.ReloadAction{}}, true
	}

	if ctx.Page() == types.PageCarousel {
		return m.handleCarouselKey(msg, ctx)
	}
	return m.handleListKey(msg, ctx)
}

func (m *NormalMode) handleCarouselKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyLeft:
		return []types.Action{types.CarouselAction{Direction: "left"}}, true
	case tea.KeyRight:
		return []types.Action{types.CarouselAction{Direction: "right"}}, true
	case tea.KeyHome:
		return []types.Action{types.SelectSlideAction{Index: 0}}, true
	case tea.KeyEnter, tea.KeySpace:
		if ctx.HasItems() {
			return []types.Action{types.OpenDetailAction{}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "h":
		return []types.Action{types.CarouselAction{Direction: "left"}}, true
	case "l":
		return []types.Action{types.CarouselAction{Direction: "right"}}, true
	case "o":
		if ctx.HasItems() {
			return []types.Action{types.OpenDetailAction{Pager: true}}, true
		}
	}
	return nil, false
}

func (m *NormalMode) handleListKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case tea.KeyLeft:
		return []types.Action{types.CycleCategoryAction{Delta: -1}}, true
	case tea.KeyRight:
		return []types.Action{types.CycleCategoryAction{Delta: 1}}, true
	case tea.KeyEnter:
		if ctx.HasItems() {
			return []types.Action{types.OpenDetailAction{}}, true
		}
		return nil, false
	case tea.KeyEsc:
		if ctx.SearchTerm() != "" {
			return []types.Action{types.SubmitTextAction{Text: "", Mode: types.ModeSearch}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "c", "]":
		return []types.Action{types.CycleCategoryAction{Delta: 1}}, true
	case "C", "[":
		return []types.Action{types.CycleCategoryAction{Delta: -1}}, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchTerm()}}, true
	case "d":
		if ctx.SupportsDeprecated() {
			return []types.Action{types.ToggleDeprecatedAction{}}, true
		}
	case "x":
		return []types.Action{types.ClearFiltersAction{}}, true
	case "o":
		if ctx.HasItems() {
			return []types.Action{types.OpenDetailAction{Pager: true}}, true
		}
	}
	return nil, false
}
