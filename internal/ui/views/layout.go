package views

import "github.com/charmbracelet/lipgloss"

// Screen geometry shared by the renderer and mouse hit-testing
const (
	MainPadTop  = 1
	MainPadLeft = 2

	// title line plus a blank line
	HeaderLines = 2

	// carousel distance units per terminal column
	DefaultCellWidth = 8

	StageHeight = 11
	CardWidth   = 30

	// list chrome: category bar, search line, blank line
	listChromeLines = 3
	// rows per list card including the gap
	ListCardLines = 4
	// footer help plus the line above it, and both scroll indicators
	footerLines = 4

	maxDots = 20
)

// HitRange is a clickable column span [Start, End) on one row
type HitRange struct {
	Start int
	End   int
	Index int
}

// Contains reports whether column x is inside the range
func (r HitRange) Contains(x int) bool {
	return x >= r.Start && x < r.End
}

// ControlHit identifies what a click on the controls row landed on
type ControlHit int

const (
	HitNone ControlHit = iota
	HitPrev
	HitNext
	HitDot
)

// CarouselLayout places the carousel on screen
type CarouselLayout struct {
	Width       int // content width inside the main padding
	StageTop    int // first screen row of the card stage
	ControlsRow int
	Centre      int // content column of the centre card's midpoint
	Prev        HitRange
	Next        HitRange
	Dots        []HitRange
}

// NewCarouselLayout computes the carousel geometry for a terminal width and
// n slides
func NewCarouselLayout(width, n int) CarouselLayout {
	contentWidth := max(width-2*MainPadLeft, 1)
	l := CarouselLayout{
		Width:       contentWidth,
		StageTop:    MainPadTop + HeaderLines,
		ControlsRow: MainPadTop + HeaderLines + StageHeight + 1,
		Centre:      contentWidth / 2,
	}

	// "‹  ● ○ ○  ›" or "‹  3 / 25  ›" for long collections
	inner := 0
	if n <= maxDots {
		inner = max(2*n-1, 0)
	} else {
		inner = len(counterText(n, n))
	}
	controlsWidth := 1 + 2 + inner + 2 + 1
	start := MainPadLeft + max((contentWidth-controlsWidth)/2, 0)

	l.Prev = HitRange{Start: start, End: start + 1, Index: -1}
	if n <= maxDots {
		for i := 0; i < n; i++ {
			col := start + 3 + 2*i
			l.Dots = append(l.Dots, HitRange{Start: col, End: col + 1, Index: i})
		}
	}
	next := start + 3 + inner + 2
	l.Next = HitRange{Start: next, End: next + 1, Index: -1}
	return l
}

// InStage reports whether a screen cell lies on the card stage
func (l CarouselLayout) InStage(x, y int) bool {
	return y >= l.StageTop && y < l.StageTop+StageHeight &&
		x >= MainPadLeft && x < MainPadLeft+l.Width
}

// HitControl resolves a click on the controls row
func (l CarouselLayout) HitControl(x, y int) (ControlHit, int) {
	if y != l.ControlsRow {
		return HitNone, -1
	}
	if l.Prev.Contains(x) {
		return HitPrev, -1
	}
	if l.Next.Contains(x) {
		return HitNext, -1
	}
	for _, dot := range l.Dots {
		if dot.Contains(x) {
			return HitDot, dot.Index
		}
	}
	return HitNone, -1
}

// ListRows returns the rows available to list cards for a terminal height
func ListRows(height int) int {
	return max(height-2*MainPadTop-HeaderLines-listChromeLines-footerLines, ListCardLines)
}

// ListPageSize returns how many cards fit on screen
func ListPageSize(height int) int {
	return max(ListRows(height)/ListCardLines, 1)
}

// TabHits returns the clickable spans of the page tabs on the title row.
// The title row is at screen row MainPadTop.
func TabHits(labels []string) []HitRange {
	// logo "shardview" and two spaces
	col := MainPadLeft + len("shardview") + 2
	hits := make([]HitRange, len(labels))
	for i, label := range labels {
		// tabs carry one column of padding on each side
		w := lipgloss.Width(label) + 2
		hits[i] = HitRange{Start: col, End: col + w, Index: i}
		col += w + 1
	}
	return hits
}

// CategoryRow is the screen row of a list's category bar
const CategoryRow = MainPadTop + HeaderLines

// ChipHits returns the clickable spans of the category chips
func ChipHits(labels []string) []HitRange {
	col := MainPadLeft
	hits := make([]HitRange, len(labels))
	for i, label := range labels {
		w := lipgloss.Width(label) + 2
		hits[i] = HitRange{Start: col, End: col + w, Index: i}
		col += w + 1
	}
	return hits
}

// ListCardAt maps a screen row to a card index within the page in view,
// or -1 above the first card. scrolled adds the "more above" line.
func ListCardAt(y int, scrolled bool) int {
	top := MainPadTop + HeaderLines + listChromeLines
	if scrolled {
		top++
	}
	if y < top {
		return -1
	}
	return (y - top) / ListCardLines
}
