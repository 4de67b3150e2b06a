package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/garden.yaml
var defaultGardenYAML []byte

// DefaultGardenConfig returns the default garden configuration.
func DefaultGardenConfig() GardenConfig {
	return GardenConfig{
		Timers: TimersConfig{
			Tick:     time.Second,
			Events:   10 * time.Second,
			DayPhase: time.Minute,
		},
		Economy: EconomyConfig{
			BoosterPercent: 5,
			PlotCosts:      []int64{0, 10_000_000, 500_000_000, 10_000_000_000},
		},
		Events: EventsConfig{
			BonusChance:   0.01,
			BonusReward:   500,
			PestChance:    0.05,
			PestMinMature: 2,
		},
		Typing: TypingConfig{
			RewardPerLetter: 10,
			LuckyChance:     0.1,
			LuckyMultiplier: 2,
			Words:           []string{"sun", "moon", "star", "garden", "flower"},
		},
		Save: SaveConfig{
			DB:              "~/.garden/garden.db",
			Key:             "garden",
			Quiet:           3 * time.Second,
			MaxDelay:        30 * time.Second,
			HistoryInterval: time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration.
func DefaultYAML() []byte {
	return defaultGardenYAML
}
