// Package config provides YAML-based configuration loading for the garden.
package config

import (
	"time"

	"github.com/vovakirdan/tui-garden/internal/garden"
	"github.com/vovakirdan/tui-garden/internal/persist"
)

// GardenConfig contains all tunables of a garden session.
type GardenConfig struct {
	Timers  TimersConfig  `yaml:"timers"`
	Economy EconomyConfig `yaml:"economy"`
	Events  EventsConfig  `yaml:"events"`
	Typing  TypingConfig  `yaml:"typing"`
	Save    SaveConfig    `yaml:"save"`
}

// TimersConfig defines the fixed intervals of the simulation.
type TimersConfig struct {
	Tick     time.Duration `yaml:"tick" validate:"gt=0"`
	Events   time.Duration `yaml:"events" validate:"gt=0"`
	DayPhase time.Duration `yaml:"day_phase" validate:"gt=0"`
}

// EconomyConfig defines production and plot pricing.
type EconomyConfig struct {
	BoosterPercent int     `yaml:"booster_percent" validate:"gte=0"`
	PlotCosts      []int64 `yaml:"plot_costs" validate:"min=1,dive,gte=0"`
}

// EventsConfig defines the random event engine.
type EventsConfig struct {
	BonusChance   float64 `yaml:"bonus_chance" validate:"gte=0,lte=1"`
	BonusReward   float64 `yaml:"bonus_reward" validate:"gte=0"`
	PestChance    float64 `yaml:"pest_chance" validate:"gte=0,lte=1"`
	PestMinMature int     `yaml:"pest_min_mature" validate:"gte=0"`
}

// TypingConfig defines typing-practice income.
type TypingConfig struct {
	RewardPerLetter int      `yaml:"reward_per_letter" validate:"gte=0"`
	LuckyChance     float64  `yaml:"lucky_chance" validate:"gte=0,lte=1"`
	LuckyMultiplier int      `yaml:"lucky_multiplier" validate:"gte=1"`
	Words           []string `yaml:"words" validate:"min=1,dive,required"`
}

// SaveConfig defines where and how often the garden is saved.
type SaveConfig struct {
	DB       string        `yaml:"db" validate:"required"`
	Key      string        `yaml:"key" validate:"required"`
	Quiet    time.Duration `yaml:"quiet" validate:"gt=0"`
	MaxDelay time.Duration `yaml:"max_delay" validate:"gtefield=Quiet"`
	// HistoryInterval spaces out the progress points kept for status.
	HistoryInterval time.Duration `yaml:"history_interval" validate:"gte=0"`
}

// Rules converts the configuration into economy rules.
func (c GardenConfig) Rules() garden.Rules {
	return garden.Rules{
		TickInterval:    c.Timers.Tick,
		EventInterval:   c.Timers.Events,
		DayInterval:     c.Timers.DayPhase,
		BoosterPercent:  c.Economy.BoosterPercent,
		PlotCosts:       append([]int64(nil), c.Economy.PlotCosts...),
		BonusChance:     c.Events.BonusChance,
		BonusReward:     c.Events.BonusReward,
		PestChance:      c.Events.PestChance,
		PestMinMature:   c.Events.PestMinMature,
		WordReward:      c.Typing.RewardPerLetter,
		LuckyChance:     c.Typing.LuckyChance,
		LuckyMultiplier: c.Typing.LuckyMultiplier,
	}
}

// SaverConfig converts the save section into saver timings.
func (c GardenConfig) SaverConfig() persist.SaverConfig {
	return persist.SaverConfig{
		Quiet:           c.Save.Quiet,
		MaxDelay:        c.Save.MaxDelay,
		HistoryInterval: c.Save.HistoryInterval,
	}
}
