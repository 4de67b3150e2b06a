package garden

import "github.com/vovakirdan/tui-garden/internal/catalog"

// EventKind names what changed in the economy.
type EventKind string

const (
	EventPurchase     EventKind = "purchase"
	EventUpgrade      EventKind = "upgrade"
	EventWaterBought  EventKind = "water_bought"
	EventWater        EventKind = "water"
	EventSell         EventKind = "sell"
	EventFuse         EventKind = "fuse"
	EventPlotUnlocked EventKind = "plot_unlocked"
	EventCustomItem   EventKind = "custom_item"
	EventTick         EventKind = "tick"
	EventBonusSpawned EventKind = "bonus_spawned"
	EventBonusClaimed EventKind = "bonus_claimed"
	EventPest         EventKind = "pest"
	EventPestCleared  EventKind = "pest_cleared"
	EventWord         EventKind = "word"
)

// Persistent reports whether the event changed persisted state.
// Bonus spawns and pest events only touch session state.
func (k EventKind) Persistent() bool {
	switch k {
	case EventBonusSpawned, EventPest, EventPestCleared:
		return false
	}
	return true
}

// Event is delivered to subscribers after a successful mutation.
type Event struct {
	Kind      EventKind
	CatalogID catalog.ID
	Category  catalog.Category
	// Amount is the suns moved by the mutation: spent on purchases,
	// earned on sells, ticks, bonuses and words.
	Amount float64
	// Suns is the balance after the mutation.
	Suns float64
}

// Subscribe registers fn to be called after every successful mutation.
// fn runs synchronously on the mutating goroutine. It may read the Economy
// but must not mutate it.
func (e *Economy) Subscribe(fn func(Event)) {
	e.subs = append(e.subs, fn)
}

func (e *Economy) emit(ev Event) {
	ev.Suns = e.state.Suns
	for _, fn := range e.subs {
		fn(ev)
	}
}
