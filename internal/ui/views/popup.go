package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centred on top of greyed main content.
// Lines of the main content containing keep stay coloured.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent, keep string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	if modalW > width-6 { // keep a small margin
		modalW = width - 6
	}
	if modalH > height-4 {
		modalH = height - 4
	}
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	base := strings.Split(desaturateKeeping(mainContent, keep), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	popupLines := strings.Split(styledPopup, "\n")
	if len(popupLines) > modalH && modalH > 0 {
		popupLines = popupLines[:modalH]
	}
	base = PlaceBlock(base, strings.Join(popupLines, "\n"), x, y)
	if width > 0 {
		base = ClipLines(base, width)
	}
	return strings.Join(base, "\n")
}

var greyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// desaturateKeeping turns everything greyscale except lines containing keep
func desaturateKeeping(s, keep string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		plain := ansi.Strip(line)
		if keep != "" && strings.Contains(plain, keep) {
			out[i] = line
		} else {
			out[i] = greyStyle.Render(plain)
		}
	}
	return strings.Join(out, "\n")
}
