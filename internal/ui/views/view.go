package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shardview/internal/ui/state"
)

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerFrame returns the spinner glyph for a frame counter
func SpinnerFrame(frame int) string {
	return spinner[((frame%len(spinner))+len(spinner))%len(spinner)]
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Tab            state.Tab
	Frame          int // spinner frame
	Loading        bool
	StatusMessage  string
	StatusIsError  bool
	ShowHelp       bool
	HelpContent    string
	ShowDetail     bool
	DetailTitle    string
	DetailContent  string
	Carousel       *CarouselViewState
	CarouselLayout CarouselLayout
	CarouselEmpty  string
	List           *ListViewState
}

// TabLabels returns the title-row label of every page
func TabLabels() []string {
	labels := make([]string, len(state.Tabs))
	for i, tab := range state.Tabs {
		labels[i] = fmt.Sprintf("%d %s", i+1, tab)
	}
	return labels
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	carouselRender *CarouselRenderer
	listRender     *ListRenderer
	popupRender    *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		carouselRender: NewCarouselRenderer(styles),
		listRender:     NewListRenderer(styles),
		popupRender:    NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(vs))
	content.WriteString("\n\n")

	switch {
	case vs.Tab == state.TabShowcase && vs.Carousel != nil:
		content.WriteString(r.carouselRender.Render(*vs.Carousel, vs.CarouselLayout))
	case vs.Tab == state.TabShowcase && vs.Loading:
		content.WriteString(r.styles.StatusLoading.Render(fmt.Sprintf("%s Loading products...", SpinnerFrame(vs.Frame))))
	case vs.Tab == state.TabShowcase:
		content.WriteString(r.styles.Dim.Render(vs.CarouselEmpty))
	case vs.List != nil:
		content.WriteString(r.listRender.Render(*vs.List, vs.Width, vs.Frame))
	}

	// Status line and help are pushed to the bottom
	var footer []string
	if vs.StatusMessage != "" {
		if vs.StatusIsError {
			footer = append(footer, r.styles.StatusError.Render(vs.StatusMessage))
		} else {
			footer = append(footer, r.styles.Status.Render(vs.StatusMessage))
		}
	}
	if !vs.ShowHelp && !vs.ShowDetail {
		footer = append(footer, r.styles.Help.Render("Press ? for help"))
	}

	if len(footer) > 0 {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding
		availableLines := vs.Height - 2*MainPadTop
		if availableLines <= 0 {
			availableLines = 22
		}
		if pad := availableLines - currentLines - len(footer); pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(footer, "\n"))
	}

	mainStyle := r.styles.Main
	if vs.Height > 0 {
		mainStyle = mainStyle.MaxHeight(vs.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if vs.ShowDetail && vs.DetailContent != "" {
		box := r.styles.DetailBox.Width(min(max(vs.Width-10, 20), 84))
		return r.popupRender.RenderPopupOverlay(finalContent, vs.DetailContent, vs.DetailTitle, vs.Height, vs.Width, box)
	}

	if vs.ShowHelp {
		return r.popupRender.RenderPopupOverlay(finalContent, vs.HelpContent, "", vs.Height, vs.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderTitleLine draws the logo and tabs with right-aligned indicators
func (r *Renderer) renderTitleLine(vs ViewState) string {
	logo := r.styles.Title.Render("shardview")

	tabs := make([]string, len(state.Tabs))
	for i, label := range TabLabels() {
		if state.Tabs[i] == vs.Tab {
			tabs[i] = r.styles.ActiveTab.Render(label)
		} else {
			tabs[i] = r.styles.Tab.Render(label)
		}
	}
	left := logo + "  " + strings.Join(tabs, " ")

	var indicators []string
	if vs.Loading {
		indicators = append(indicators, fmt.Sprintf("%s Loading", SpinnerFrame(vs.Frame)))
	}
	if vs.Carousel != nil && vs.Tab == state.TabShowcase {
		if vs.Carousel.Dragging {
			indicators = append(indicators, "⇆ Dragging")
		}
	}
	if len(indicators) == 0 {
		return left
	}

	right := r.styles.Dim.Render(strings.Join(indicators, " | "))
	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 2*MainPadLeft
	if pad := availableWidth - lipgloss.Width(left) - lipgloss.Width(right); pad > 0 {
		return left + strings.Repeat(" ", pad) + right
	}
	return left + "  " + right
}
