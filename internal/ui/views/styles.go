package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Tab           lipgloss.Style
	ActiveTab     lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	InfoBox       lipgloss.Style
	DetailBox     lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	Chip          lipgloss.Style
	ActiveChip    lipgloss.Style
	Badge         lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	Dot           lipgloss.Style
	ActiveDot     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Padding(0, 1),
		Dim:       lipgloss.NewStyle().Faint(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Filter:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			MarginBottom(1).
			Width(60).
			BorderForeground(lipgloss.Color("241")),
		DetailBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("99")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(MainPadTop, MainPadLeft),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Chip:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		ActiveChip:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1),
		Badge:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // red
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),            // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),            // gray
		Dot:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ActiveDot:     lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
	}
}

// OpacityColors maps a slot opacity to border and text colours
func OpacityColors(opacity float64) (border, text lipgloss.Color) {
	switch {
	case opacity >= 0.9:
		return lipgloss.Color("99"), lipgloss.Color("252")
	case opacity >= 0.5:
		return lipgloss.Color("241"), lipgloss.Color("245")
	default:
		return lipgloss.Color("237"), lipgloss.Color("239")
	}
}
