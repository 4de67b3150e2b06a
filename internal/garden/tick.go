package garden

import "github.com/vovakirdan/tui-garden/internal/catalog"

// Multiplier returns the global production multiplier in percent:
// 100 plus BoosterPercent for every solar totem across all plots.
func (e *Economy) Multiplier() int {
	boosters := 0
	for _, p := range e.state.Plots {
		for _, it := range p.Items {
			if it.CatalogID == catalog.SolarTotemID {
				boosters++
			}
		}
	}
	return 100 + e.rules.BoosterPercent*boosters
}

// BaseProduction sums the rates of every mature, unafflicted item in every
// plot. Plots other than the active one count the same.
func (e *Economy) BaseProduction() float64 {
	var sum float64
	for _, p := range e.state.Plots {
		for _, it := range p.Items {
			if !it.Mature() || e.Afflicted(it.InstanceID) {
				continue
			}
			sum += it.Rate
		}
	}
	return sum
}

// Production returns the suns one tick would add.
func (e *Economy) Production() float64 {
	return e.BaseProduction() * float64(e.Multiplier()) / 100
}

// Tick applies one production step and returns the suns added.
func (e *Economy) Tick() float64 {
	produced := e.Production()
	if produced <= 0 {
		return 0
	}
	e.state.Suns += produced
	e.emit(Event{Kind: EventTick, Amount: produced})
	return produced
}
