package views

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// CarouselCard is one projected slot ready for drawing
type CarouselCard struct {
	Offset      int
	X           float64
	Z           int
	Opacity     float64
	Scale       float64
	Title       string
	Tag         string
	Highlight   string
	Description string
}

// CarouselViewState is what the carousel page needs to draw itself
type CarouselViewState struct {
	Cards     []CarouselCard
	Index     int
	Len       int
	Dragging  bool
	Animating bool
	CellWidth float64 // distance units per terminal column
}

// CarouselRenderer draws the card stage and its controls
type CarouselRenderer struct {
	styles *Styles
}

// NewCarouselRenderer creates a new carousel renderer
func NewCarouselRenderer(styles *Styles) *CarouselRenderer {
	return &CarouselRenderer{styles: styles}
}

// Render draws the stage, a blank line and the controls row
func (cr *CarouselRenderer) Render(cs CarouselViewState, layout CarouselLayout) string {
	stage := BlankLines(StageHeight, layout.Width)

	cards := append([]CarouselCard(nil), cs.Cards...)
	// Paint back to front
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].Z < cards[j].Z })

	cellWidth := cs.CellWidth
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	for _, card := range cards {
		block := cr.renderCard(card)
		w := lipgloss.Width(block)
		h := lipgloss.Height(block)
		col := layout.Centre + int(math.Round(card.X/cellWidth)) - w/2
		row := (StageHeight - h) / 2
		stage = PlaceBlock(stage, block, col, row)
	}
	stage = ClipLines(stage, layout.Width)

	var b strings.Builder
	b.WriteString(strings.Join(stage, "\n"))
	b.WriteString("\n\n")
	b.WriteString(cr.renderControls(cs, layout))
	return b.String()
}

func (cr *CarouselRenderer) renderCard(card CarouselCard) string {
	border, text := OpacityColors(card.Opacity)
	width := max(int(math.Round(CardWidth*card.Scale)), 8)
	height := max(int(math.Round(StageHeight*card.Scale)), 3)
	inner := width - 4

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(text)
	body := lipgloss.NewStyle().Foreground(text)

	var lines []string
	if card.Tag != "" && card.Offset == 0 {
		lines = append(lines, cr.styles.Filter.Render(truncate(card.Tag, inner)))
	}
	lines = append(lines, titleStyle.Render(truncate(card.Title, inner)))
	if card.Offset == 0 {
		if card.Highlight != "" {
			lines = append(lines, cr.styles.Highlight.Render(truncate(card.Highlight, inner)))
		}
		lines = append(lines, "")
		lines = append(lines, body.Width(inner).Render(card.Description))
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height)
	if card.Opacity < 0.5 {
		style = style.Faint(true)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (cr *CarouselRenderer) renderControls(cs CarouselViewState, layout CarouselLayout) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", max(layout.Prev.Start-MainPadLeft, 0)))
	b.WriteString(cr.styles.Highlight.Render("‹"))
	b.WriteString("  ")
	if len(layout.Dots) > 0 {
		dots := make([]string, len(layout.Dots))
		for i := range layout.Dots {
			if i == cs.Index {
				dots[i] = cr.styles.ActiveDot.Render("●")
			} else {
				dots[i] = cr.styles.Dot.Render("○")
			}
		}
		b.WriteString(strings.Join(dots, " "))
	} else {
		b.WriteString(cr.styles.Dot.Render(counterText(cs.Index, cs.Len)))
	}
	b.WriteString("  ")
	b.WriteString(cr.styles.Highlight.Render("›"))
	return b.String()
}

// counterText keeps a fixed width so the next arrow does not move
func counterText(index, n int) string {
	digits := len(strconv.Itoa(n))
	return fmt.Sprintf("%*d / %d", digits, index+1, n)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
