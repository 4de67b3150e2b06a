package core

// RuntimeConfig describes the terminal a garden view is drawn for.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    uint64 // RNG seed; 0 means seed from the clock
	Player  string // Shown in the header; empty for local play
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}
