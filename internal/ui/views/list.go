package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListCard is one rendered list entry
type ListCard struct {
	Title       string
	Description string
	Meta        string // date or product tag
	Tags        []string
	Deprecated  bool
	Revealed    bool
	Selected    bool
}

// CategoryChip is one entry of the category bar
type CategoryChip struct {
	Label  string
	Active bool
}

// ListViewState is what a list page needs to draw itself
type ListViewState struct {
	Title              string
	Placeholder        string
	Search             string
	Searching          bool
	SearchView         string // text input view while searching
	Categories         []CategoryChip
	SupportsDeprecated bool
	ShowDeprecated     bool
	Cards              []ListCard // the page in view
	Offset             int
	Total              int // items surviving the filters
	EmptyMessage       string
	Loading            bool
	LoadError          string
}

// ListRenderer draws a filterable list page
type ListRenderer struct {
	styles *Styles
}

// NewListRenderer creates a new list renderer
func NewListRenderer(styles *Styles) *ListRenderer {
	return &ListRenderer{styles: styles}
}

// Render draws the category bar, the search line and the cards in view
func (lr *ListRenderer) Render(ls ListViewState, width, spinnerFrame int) string {
	contentWidth := max(width-2*MainPadLeft, 20)

	var lines []string
	lines = append(lines, ClipLines([]string{lr.renderCategories(ls)}, contentWidth)...)
	lines = append(lines, lr.renderSearchLine(ls))
	lines = append(lines, "")

	switch {
	case ls.Loading:
		lines = append(lines, lr.styles.StatusLoading.Render(
			fmt.Sprintf("%s Loading %s...", SpinnerFrame(spinnerFrame), strings.ToLower(ls.Title))))
	case ls.Total == 0:
		if ls.LoadError != "" {
			lines = append(lines, lr.styles.StatusError.Render(ls.LoadError))
		}
		lines = append(lines, lr.styles.Dim.Render(ls.EmptyMessage))
		lines = append(lines, lr.styles.Help.Render("Press x to clear filters"))
	default:
		if ls.Offset > 0 {
			lines = append(lines, lr.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", ls.Offset)))
		}
		for _, card := range ls.Cards {
			lines = append(lines, lr.renderCard(card, contentWidth)...)
		}
		if below := ls.Total - ls.Offset - len(ls.Cards); below > 0 {
			lines = append(lines, lr.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
		}
	}

	return strings.Join(lines, "\n")
}

func (lr *ListRenderer) renderCategories(ls ListViewState) string {
	chips := make([]string, len(ls.Categories))
	for i, chip := range ls.Categories {
		if chip.Active {
			chips[i] = lr.styles.ActiveChip.Render(chip.Label)
		} else {
			chips[i] = lr.styles.Chip.Render(chip.Label)
		}
	}
	return strings.Join(chips, " ")
}

func (lr *ListRenderer) renderSearchLine(ls ListViewState) string {
	var left string
	switch {
	case ls.Searching:
		left = lr.styles.Filter.Render("/ ") + ls.SearchView
	case ls.Search != "":
		left = lr.styles.Filter.Render(fmt.Sprintf("[Search: %s]", ls.Search))
	default:
		left = lr.styles.Dim.Render(ls.Placeholder)
	}

	right := []string{lr.styles.Status.Render(fmt.Sprintf("%d shown", ls.Total))}
	if ls.SupportsDeprecated {
		label := "deprecated shown"
		if !ls.ShowDeprecated {
			label = "deprecated hidden"
		}
		right = append(right, lr.styles.Status.Render(label))
	}
	return left + "  " + strings.Join(right, lr.styles.Dim.Render(" • "))
}

func (lr *ListRenderer) renderCard(card ListCard, width int) []string {
	marker := "  "
	titleStyle := lipgloss.NewStyle().Bold(true)
	if card.Selected {
		marker = lr.styles.Highlight.Render("▸ ")
		titleStyle = lr.styles.Highlight
	}

	// Entrance pending: only a faint title
	if !card.Revealed {
		return []string{
			marker + lr.styles.Dim.Render(truncate(card.Title, width-2)),
			"", "", "",
		}
	}

	title := titleStyle.Render(truncate(card.Title, width-2))
	if card.Deprecated {
		title += " " + lr.styles.Badge.Render("[deprecated]")
	}
	if card.Meta != "" {
		meta := lr.styles.Status.Render(card.Meta)
		if pad := width - lipgloss.Width(marker+title) - lipgloss.Width(meta); pad > 1 {
			title += strings.Repeat(" ", pad) + meta
		}
	}

	desc := "  " + truncate(card.Description, width-2)

	tags := make([]string, len(card.Tags))
	for i, tag := range card.Tags {
		tags[i] = "#" + tag
	}
	tagLine := "  " + lr.styles.Filter.Render(truncate(strings.Join(tags, " "), width-2))

	return []string{marker + title, desc, tagLine, ""}
}
