package core

// Color is the semantic color of a screen cell. The platform layer decides
// how each one looks in the terminal.
type Color uint8

const (
	ColorDefault Color = iota
	ColorSoil          // field background and borders
	ColorSeed          // freshly placed plants
	ColorLeaf          // sprouts and grown plants
	ColorBloom         // special plants
	ColorAnimal
	ColorWater   // pools
	ColorObject  // decorations and totems
	ColorSun     // suns counter and bonus pickups
	ColorPest    // afflicted items
	ColorCursor  // current selection
	ColorDim     // locked or unaffordable entries
	ColorEvening // field tint in the evening
	ColorNight   // field tint at night
)

// String returns the color's name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

var colorNames = [...]string{
	ColorDefault: "default",
	ColorSoil:    "soil",
	ColorSeed:    "seed",
	ColorLeaf:    "leaf",
	ColorBloom:   "bloom",
	ColorAnimal:  "animal",
	ColorWater:   "water",
	ColorObject:  "object",
	ColorSun:     "sun",
	ColorPest:    "pest",
	ColorCursor:  "cursor",
	ColorDim:     "dim",
	ColorEvening: "evening",
	ColorNight:   "night",
}
