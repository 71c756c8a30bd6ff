package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Pages", []helpEntry{
		{"Tab/Shift+Tab", "Next/previous page"},
		{"1/2/3", "Showcase, Products, Projects"},
	}},
	{"Showcase", []helpEntry{
		{"←/→, h/l", "Previous/next slide"},
		{"Home", "First slide"},
		{"Drag", "Swipe with the mouse"},
		{"Enter", "Show product details"},
	}},
	{"Lists", []helpEntry{
		{"↑/↓, j/k", "Navigate up/down"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "Go to top/bottom"},
		{"←/→, c/C", "Next/previous category"},
		{"/", "Search"},
		{"d", "Show/hide deprecated projects"},
		{"x", "Clear filters"},
		{"Enter", "Show details"},
	}},
	{"Other", []helpEntry{
		{"o", "Open details in pager"},
		{"r", "Reload catalog"},
		{"H", "Open this help in pager"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent renders the help popup body, scrolled to fit height
func (r *HelpRenderer) RenderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(r.RenderHelpContentPlain(), "\n")
	totalLines := len(lines)

	// Account for popup border and padding
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if totalLines <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	scrollOffset = clampHelpOffset(scrollOffset, totalLines, visibleHeight)
	endLine := scrollOffset + visibleHeight
	visible := append([]string(nil), lines[scrollOffset:endLine]...)

	moreStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if scrollOffset > 0 {
		visible[0] = moreStyle.Render("↑ (more above)")
	}
	if endLine < totalLines {
		visible[len(visible)-1] = moreStyle.Render("↓ (more below)")
	}
	return strings.Join(visible, "\n")
}

// MaxScroll returns the largest useful scroll offset for a popup of height
func (r *HelpRenderer) MaxScroll(height int) int {
	total := strings.Count(r.RenderHelpContentPlain(), "\n") + 1
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if total <= visibleHeight {
		return 0
	}
	return total - visibleHeight
}

// RenderHelpContentPlain generates the full help text, also used by the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	keyWidth := 0
	for _, section := range helpSections {
		for _, entry := range section.entries {
			if w := lipgloss.Width(entry.keys); w > keyWidth {
				keyWidth = w
			}
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("shardview Help"))
	help.WriteString("\n")

	for i, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, entry := range section.entries {
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(entry.keys))
			help.WriteString(fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(entry.keys), pad, descStyle.Render(entry.desc)))
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}

	return strings.TrimRight(help.String(), "\n")
}

func clampHelpOffset(offset, total, visible int) int {
	if maxOffset := total - visible; offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
