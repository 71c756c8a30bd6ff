package state

import (
	"time"

	"shardview/internal/domain"
)

// Tab identifies the active page
type Tab int

const (
	TabShowcase Tab = iota
	TabProducts
	TabProjects
)

// Tabs lists pages in display order
var Tabs = []Tab{TabShowcase, TabProducts, TabProjects}

func (t Tab) String() string {
	switch t {
	case TabProducts:
		return "Products"
	case TabProjects:
		return "Projects"
	default:
		return "Showcase"
	}
}

// ParseTab maps a config value to a Tab
func ParseTab(s string) Tab {
	switch s {
	case "products":
		return TabProducts
	case "projects":
		return TabProjects
	default:
		return TabShowcase
	}
}

// ListCursor is the selection and scroll position of one list page
type ListCursor struct {
	Selected int // index into the filtered items
	Offset   int // first item in view
}

// Clamp keeps the cursor inside [0, n) and the selection in view
func (c *ListCursor) Clamp(n, pageSize int) {
	if pageSize < 1 {
		pageSize = 1
	}
	if c.Selected >= n {
		c.Selected = n - 1
	}
	if c.Selected < 0 {
		c.Selected = 0
	}
	if c.Selected < c.Offset {
		c.Offset = c.Selected
	}
	if c.Selected >= c.Offset+pageSize {
		c.Offset = c.Selected - pageSize + 1
	}
	if maxOffset := n - pageSize; c.Offset > maxOffset {
		c.Offset = maxOffset
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
}

// AppState contains the UI state that is not owned by the engines
type AppState struct {
	Tab Tab

	// Per-list cursor
	Cursors map[Tab]*ListCursor

	// Entrance reveal deadlines keyed by tab and position
	Reveals map[Tab]map[int]time.Time

	// Load state
	Loading    map[domain.CollectionKind]bool
	LoadErrors map[domain.CollectionKind]string

	// Popups
	ShowHelp         bool
	HelpScrollOffset int
	ShowDetail       bool
	DetailContent    string
	DetailTitle      string

	StatusMessage  string
	ViewportHeight int // available rows for list content
}

// NewAppState creates a new application state
func NewAppState(start Tab) *AppState {
	s := &AppState{
		Tab:     start,
		Cursors: make(map[Tab]*ListCursor),
		Reveals: make(map[Tab]map[int]time.Time),
		Loading: map[domain.CollectionKind]bool{
			domain.KindProducts: true,
			domain.KindProjects: true,
		},
		LoadErrors:     make(map[domain.CollectionKind]string),
		ViewportHeight: 20,
	}
	for _, tab := range Tabs {
		s.Cursors[tab] = &ListCursor{}
		s.Reveals[tab] = make(map[int]time.Time)
	}
	return s
}

// Cursor returns the cursor of the active tab
func (s *AppState) Cursor() *ListCursor {
	return s.Cursors[s.Tab]
}

// NextTab cycles through pages
func (s *AppState) NextTab(delta int) Tab {
	n := len(Tabs)
	s.Tab = Tabs[((int(s.Tab)+delta)%n+n)%n]
	return s.Tab
}

// ScheduleReveal records when a position should finish its entrance.
// Positions already scheduled keep their deadline.
func (s *AppState) ScheduleReveal(tab Tab, position int, at time.Time) bool {
	if _, ok := s.Reveals[tab][position]; ok {
		return false
	}
	s.Reveals[tab][position] = at
	return true
}

// Revealed reports whether a position finished its entrance at now
func (s *AppState) Revealed(tab Tab, position int, now time.Time) bool {
	at, ok := s.Reveals[tab][position]
	return ok && !now.Before(at)
}

// ResetReveals forgets entrance state for a tab, e.g. after a filter change
func (s *AppState) ResetReveals(tab Tab) {
	s.Reveals[tab] = make(map[int]time.Time)
}

// ClosePopups hides help and detail
func (s *AppState) ClosePopups() {
	s.ShowHelp = false
	s.HelpScrollOffset = 0
	s.ShowDetail = false
	s.DetailContent = ""
	s.DetailTitle = ""
}

// HasPopup reports whether a modal is shown
func (s *AppState) HasPopup() bool {
	return s.ShowHelp || s.ShowDetail
}
