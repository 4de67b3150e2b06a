package garden

import "time"

// Rules holds the tunable numbers of the economy.
type Rules struct {
	TickInterval  time.Duration
	EventInterval time.Duration
	DayInterval   time.Duration

	// BoosterPercent is added to the production multiplier per solar totem.
	BoosterPercent int
	// PlotCosts is indexed by the current plot count. The first entry is
	// the free starting plot.
	PlotCosts []int64

	BonusChance   float64
	BonusReward   float64
	PestChance    float64
	PestMinMature int

	// WordReward is paid per letter of a completed typing word.
	WordReward      int
	LuckyChance     float64
	LuckyMultiplier int
}

// DefaultRules returns the reference tuning.
func DefaultRules() Rules {
	return Rules{
		TickInterval:    time.Second,
		EventInterval:   10 * time.Second,
		DayInterval:     time.Minute,
		BoosterPercent:  5,
		PlotCosts:       []int64{0, 10_000_000, 500_000_000, 10_000_000_000},
		BonusChance:     0.01,
		BonusReward:     500,
		PestChance:      0.05,
		PestMinMature:   2,
		WordReward:      10,
		LuckyChance:     0.1,
		LuckyMultiplier: 2,
	}
}

// MaxPlots returns how many plots can exist under these rules.
func (r Rules) MaxPlots() int {
	return len(r.PlotCosts)
}
