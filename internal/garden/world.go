package garden

import (
	"fmt"

	"github.com/google/uuid"
)

// Bonuses returns the uncollected pickups.
func (e *Economy) Bonuses() []Bonus {
	return append([]Bonus(nil), e.bonuses...)
}

// Pests returns the current afflictions.
func (e *Economy) Pests() []Pest {
	return append([]Pest(nil), e.pests...)
}

// Afflicted reports whether a pest blocks the instance.
func (e *Economy) Afflicted(id InstanceID) bool {
	for _, p := range e.pests {
		if p.Target == id {
			return true
		}
	}
	return false
}

// Roll runs one firing of the random event engine: a bonus spawn trial,
// then a pest trial against the active plot. Bonuses never expire.
func (e *Economy) Roll() {
	if e.rng.Float64() < e.rules.BonusChance {
		e.SpawnBonus(5+e.rng.Float64()*90, 5+e.rng.Float64()*70)
	}

	pi := e.state.plotIndex(e.active)
	if pi < 0 {
		return
	}
	plot := e.state.Plots[pi]

	mature := 0
	var candidates []InstanceID
	for _, it := range plot.Items {
		if !it.Mature() {
			continue
		}
		mature++
		if !e.Afflicted(it.InstanceID) {
			candidates = append(candidates, it.InstanceID)
		}
	}
	if mature <= e.rules.PestMinMature {
		return
	}
	if e.rng.Float64() >= e.rules.PestChance || len(candidates) == 0 {
		return
	}
	e.Infest(candidates[e.rng.IntN(len(candidates))])
}

// SpawnBonus places a pickup at the given position.
func (e *Economy) SpawnBonus(x, y float64) Bonus {
	b := Bonus{ID: uuid.NewString(), X: x, Y: y, Reward: e.rules.BonusReward}
	e.bonuses = append(e.bonuses, b)
	e.emit(Event{Kind: EventBonusSpawned, Amount: b.Reward})
	return b
}

// CollectBonus credits a pickup and removes it.
func (e *Economy) CollectBonus(id string) (float64, error) {
	for i, b := range e.bonuses {
		if b.ID != id {
			continue
		}
		e.bonuses = append(e.bonuses[:i], e.bonuses[i+1:]...)
		e.state.Suns += b.Reward
		e.emit(Event{Kind: EventBonusClaimed, Amount: b.Reward})
		return b.Reward, nil
	}
	return 0, fmt.Errorf("%w: bonus %s", ErrNotFound, id)
}

// Infest afflicts a mature item. Afflicting an item twice has no effect.
func (e *Economy) Infest(id InstanceID) error {
	pi, ii, ok := e.state.locate(id)
	if !ok {
		return fmt.Errorf("%w: instance %s", ErrNotFound, id)
	}
	if e.Afflicted(id) {
		return nil
	}
	item := e.state.Plots[pi].Items[ii]
	e.pests = append(e.pests, Pest{Target: id, PlotID: e.state.Plots[pi].ID})
	e.emit(Event{Kind: EventPest, CatalogID: item.CatalogID, Category: item.Category})
	return nil
}

// ClearPest removes the affliction from an item.
func (e *Economy) ClearPest(id InstanceID) error {
	if !e.dropPest(id) {
		return fmt.Errorf("%w: no pest on %s", ErrNotFound, id)
	}
	e.emit(Event{Kind: EventPestCleared})
	return nil
}

func (e *Economy) dropPest(id InstanceID) bool {
	for i, p := range e.pests {
		if p.Target == id {
			e.pests = append(e.pests[:i], e.pests[i+1:]...)
			return true
		}
	}
	return false
}
