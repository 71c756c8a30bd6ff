package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// BlankLines returns n empty rows of the given width
func BlankLines(n, width int) []string {
	lines := make([]string, n)
	row := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = row
	}
	return lines
}

// PlaceBlock draws block over base with its top-left corner at (x, y).
// Parts of the block outside base are clipped; text left and right of the
// block is kept.
func PlaceBlock(base []string, block string, x, y int) []string {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(base) {
			continue
		}
		base[row] = spliceLine(base[row], line, x)
	}
	return base
}

// ClipLines truncates every line to width cells
func ClipLines(lines []string, width int) []string {
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "") + ansi.ResetStyle
		}
	}
	return lines
}

func spliceLine(base, over string, x int) string {
	if x < 0 {
		over = ansi.TruncateLeft(over, -x, "")
		x = 0
	}
	w := ansi.StringWidth(over)
	if w == 0 {
		return base
	}

	left := ansi.Truncate(base, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	right := ""
	if ansi.StringWidth(base) > x+w {
		right = ansi.TruncateLeft(base, x+w, "")
	}
	return left + ansi.ResetStyle + over + ansi.ResetStyle + right
}
