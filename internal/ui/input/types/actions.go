package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// CarouselAction steps the showcase carousel
type CarouselAction struct {
	Direction string // "left" or "right"
}

func (a CarouselAction) Type() string { return "carousel" }

// SelectSlideAction jumps the carousel to an absolute slide
type SelectSlideAction struct {
	Index int
}

func (a SelectSlideAction) Type() string { return "select_slide" }

type SwitchTabAction struct {
	Delta int // relative move when Index < 0
	Index int
}

func (a SwitchTabAction) Type() string { return "switch_tab" }

// Filter actions
type CycleCategoryAction struct {
	Delta int
}

func (a CycleCategoryAction) Type() string { return "cycle_category" }

type ToggleDeprecatedAction struct{}

func (a ToggleDeprecatedAction) Type() string { return "toggle_deprecated" }

type ClearFiltersAction struct{}

func (a ClearFiltersAction) Type() string { return "clear_filters" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Popup and pager actions
type OpenDetailAction struct {
	Pager bool
}

func (a OpenDetailAction) Type() string { return "open_detail" }

type ToggleHelpAction struct {
	Pager bool
}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ClosePopupAction struct{}

func (a ClosePopupAction) Type() string { return "close_popup" }

type ScrollPopupAction struct {
	Delta int
}

func (a ScrollPopupAction) Type() string { return "scroll_popup" }

// ReloadAction asks the loader to fetch both collections again
type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
