package tui

import (
	"strings"

	"github.com/vovakirdan/tui-garden/internal/catalog"
	"github.com/vovakirdan/tui-garden/internal/core"
	"github.com/vovakirdan/tui-garden/internal/garden"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(theme.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

// fieldView is everything drawField needs from one plot.
type fieldView struct {
	Items     []garden.OwnedItem
	Selected  garden.InstanceID
	Marked    garden.InstanceID // fusion candidate
	Afflicted func(garden.InstanceID) bool
	Bonuses   []garden.Bonus
	Phase     garden.DayPhase
}

// phaseTint is the background color of the empty field per day phase.
func phaseTint(p garden.DayPhase) core.Color {
	switch p {
	case garden.Evening:
		return core.ColorEvening
	case garden.Night:
		return core.ColorNight
	}
	return core.ColorDefault
}

// marker picks the rune and color an item is drawn with.
func marker(it garden.OwnedItem, afflicted bool) (rune, core.Color) {
	if afflicted {
		return 'x', core.ColorPest
	}
	switch it.Stage {
	case garden.StageSeed:
		return '.', core.ColorSeed
	case garden.StageSprout:
		return ',', core.ColorLeaf
	}
	switch it.Category {
	case catalog.CategoryPlant:
		return '*', core.ColorLeaf
	case catalog.CategorySpecialPlant:
		return '@', core.ColorBloom
	case catalog.CategoryAnimal:
		return '&', core.ColorAnimal
	case catalog.CategoryPool:
		return '~', core.ColorWater
	}
	if it.CatalogID == catalog.SolarTotemID {
		return '!', core.ColorSun
	}
	return '#', core.ColorObject
}

const emptyFieldHint = "press b to plant"

// drawField draws the plot inside area: a soil border, the phase tint,
// every item at its normalized position, then the bonus pickups on top.
// An empty plot shows a planting hint.
func drawField(s *core.Screen, area core.Rect, v fieldView) {
	if area.W < 3 || area.H < 3 {
		return
	}
	inner := area.Inset(1)

	s.DrawRect(area, ' ')
	s.Paint(area, core.ColorSoil)
	s.DrawBox(area)
	s.Paint(inner, phaseTint(v.Phase))

	if len(v.Items) == 0 {
		s.DrawTextCentered(inner, emptyFieldHint, core.ColorDim)
	}

	for _, it := range v.Items {
		afflicted := v.Afflicted != nil && v.Afflicted(it.InstanceID)
		r, c := marker(it, afflicted)
		switch it.InstanceID {
		case v.Selected:
			c = core.ColorCursor
		case v.Marked:
			c = core.ColorSun
		}
		x, y := inner.Project(it.X, it.Y)
		s.SetColored(x, y, r, c)
	}

	for _, b := range v.Bonuses {
		x, y := inner.Project(b.X, b.Y)
		s.SetColored(x, y, '$', core.ColorSun)
	}
}
