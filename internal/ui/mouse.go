package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"shardview/internal/carousel"
	inputtypes "shardview/internal/ui/input/types"
	"shardview/internal/ui/state"
	"shardview/internal/ui/views"
)

// handleMouse translates terminal mouse events into engine calls
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.config.UI.Mouse || m.inPagerMode {
		return nil
	}

	// A gesture in progress owns every pointer event until it ends
	if m.captured && m.carousel != nil {
		m.trackGesture(msg)
		return nil
	}

	if m.state.HasPopup() {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollPopup(-1)
		case tea.MouseButtonWheelDown:
			m.scrollPopup(1)
		}
		return nil
	}

	if isLeftPress(msg) && msg.Y == views.MainPadTop {
		for _, hit := range views.TabHits(views.TabLabels()) {
			if hit.Contains(msg.X) {
				m.switchTab(inputtypes.SwitchTabAction{Index: hit.Index})
				return nil
			}
		}
	}

	if m.state.Tab == state.TabShowcase {
		return m.handleCarouselMouse(msg)
	}
	return m.handleListMouse(msg)
}

func (m *Model) handleCarouselMouse(msg tea.MouseMsg) tea.Cmd {
	c := m.carousel
	if c == nil {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		c.Prev()
		return nil
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		c.Next()
		return nil
	}

	if !isLeftPress(msg) {
		return nil
	}

	layout := views.NewCarouselLayout(m.width, c.Len())
	switch hit, index := layout.HitControl(msg.X, msg.Y); hit {
	case views.HitPrev:
		c.Prev()
	case views.HitNext:
		c.Next()
	case views.HitDot:
		c.SelectSlide(index)
	default:
		if layout.InStage(msg.X, msg.Y) {
			c.PointerDown(m.pointerX(msg.X), carousel.SourceMouse)
		}
	}
	return nil
}

// trackGesture feeds a captured gesture
func (m *Model) trackGesture(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.carousel.PointerMove(m.pointerX(msg.X))
	case tea.MouseActionRelease:
		m.carousel.PointerMove(m.pointerX(msg.X))
		m.carousel.PointerUp()
	}
}

// pointerX converts a terminal column to carousel distance units
func (m *Model) pointerX(col int) float64 {
	cellWidth := m.config.Carousel.CellWidth
	if cellWidth <= 0 {
		cellWidth = views.DefaultCellWidth
	}
	return float64(col) * cellWidth
}

func (m *Model) handleListMouse(msg tea.MouseMsg) tea.Cmd {
	page := m.activePage()
	if page == nil {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.navigate("up")
		return nil
	case tea.MouseButtonWheelDown:
		m.navigate("down")
		return nil
	}

	if !isLeftPress(msg) {
		return nil
	}

	if msg.Y == views.CategoryRow {
		for _, hit := range views.ChipHits(page.chipLabels()) {
			if !hit.Contains(msg.X) {
				continue
			}
			if category, ok := page.categoryAt(hit.Index); ok {
				page.SetCategory(category)
				m.filtersChanged(page)
			}
			return nil
		}
		return nil
	}

	cursor := m.state.Cursor()
	offset, pageSize := page.viewport.Window()
	index := views.ListCardAt(msg.Y, offset > 0)
	if index < 0 || index >= pageSize {
		return nil
	}
	position := offset + index
	if position >= page.count() {
		return nil
	}
	if cursor.Selected == position {
		// Clicking the selected card opens it
		return m.processAction(inputtypes.OpenDetailAction{})
	}
	cursor.Selected = position
	m.syncPage(page)
	return nil
}

func isLeftPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}
