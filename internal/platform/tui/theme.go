package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-garden/internal/core"
)

// Theme contains the visual styles of the garden view.
type Theme struct {
	// Field cell colors, indexed by core.Color
	Cells map[core.Color]lipgloss.Style

	// HUD styles
	HUDTitle  lipgloss.Style
	HUDSuns   lipgloss.Style
	HUDWater  lipgloss.Style
	HUDValue  lipgloss.Style
	HUDLabel  lipgloss.Style
	HUDBadge  lipgloss.Style
	HUDStatus lipgloss.Style
	HUDError  lipgloss.Style

	// Panels
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Muted      lipgloss.Style
	Typed      lipgloss.Style
	Untyped    lipgloss.Style
	Help       lipgloss.Style
}

// DefaultTheme returns the default garden palette.
func DefaultTheme() Theme {
	return Theme{
		Cells: map[core.Color]lipgloss.Style{
			core.ColorDefault: lipgloss.NewStyle(),
			core.ColorSoil:    lipgloss.NewStyle().Foreground(lipgloss.Color("94")),  // Brown
			core.ColorSeed:    lipgloss.NewStyle().Foreground(lipgloss.Color("180")), // Tan
			core.ColorLeaf:    lipgloss.NewStyle().Foreground(lipgloss.Color("70")),  // Leaf green
			core.ColorBloom:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")), // Pink
			core.ColorAnimal:  lipgloss.NewStyle().Foreground(lipgloss.Color("215")), // Orange
			core.ColorWater:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // Blue
			core.ColorObject:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			core.ColorSun:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
			core.ColorPest:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
			core.ColorCursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
			core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			core.ColorEvening: lipgloss.NewStyle().Foreground(lipgloss.Color("137")).Background(lipgloss.Color("53")),
			core.ColorNight:   lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Background(lipgloss.Color("17")),
		},

		HUDTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true),
		HUDSuns:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HUDWater:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		HUDValue:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDBadge:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		HUDStatus: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		HUDError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Typed:      lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true),
		Untyped:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	for c := range theme.Cells {
		theme.Cells[c] = lipgloss.NewStyle()
	}
	theme.Cells[core.ColorCursor] = lipgloss.NewStyle().Reverse(true)
	theme.Cells[core.ColorPest] = lipgloss.NewStyle().Bold(true)
	return theme
}

// style returns the cell style for c, falling back to the default style.
func (t Theme) style(c core.Color) lipgloss.Style {
	if s, ok := t.Cells[c]; ok {
		return s
	}
	return t.Cells[core.ColorDefault]
}
