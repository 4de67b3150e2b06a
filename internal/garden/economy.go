// Package garden implements the idle garden economy: resource accounting,
// the purchase and upgrade graph, plant growth, passive production and
// random world events.
//
// An Economy is not safe for concurrent use. Callers serialize access
// through a single goroutine, such as a Bubble Tea update loop or a Runner.
package garden

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-garden/internal/catalog"
)

// Pest marks a placed item whose production is blocked.
type Pest struct {
	Target InstanceID
	PlotID int
}

// Bonus is a collectable pickup carrying a fixed reward.
type Bonus struct {
	ID     string
	X, Y   float64
	Reward float64
}

// Economy owns one garden State and applies the mutation contract to it.
// Pests, bonuses and the active plot live only for the session.
type Economy struct {
	state   State
	catalog *catalog.Catalog
	rules   Rules
	rng     *rand.Rand
	newID   func() InstanceID

	active  int
	pests   []Pest
	bonuses []Bonus

	subs []func(Event)
}

// Option configures an Economy.
type Option func(*Economy)

// WithRules overrides the default tuning.
func WithRules(r Rules) Option {
	return func(e *Economy) { e.rules = r }
}

// WithRand sets the random source used for positions and events.
func WithRand(r *rand.Rand) Option {
	return func(e *Economy) { e.rng = r }
}

// WithIDs sets the instance id generator.
func WithIDs(fn func() InstanceID) Option {
	return func(e *Economy) { e.newID = fn }
}

func newUUID() InstanceID {
	return InstanceID(uuid.NewString())
}

// New creates an Economy over st. The catalog is extended with the custom
// items recorded in st.
func New(cat *catalog.Catalog, st State, opts ...Option) *Economy {
	st = st.Clone()
	st.Normalize()

	e := &Economy{
		state:   st,
		catalog: cat,
		rules:   DefaultRules(),
		newID:   newUUID,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}

	for _, it := range st.Custom {
		cat.Extend(it)
	}
	e.active = e.state.Plots[0].ID
	return e
}

// Catalog returns the catalog the economy resolves ids against.
func (e *Economy) Catalog() *catalog.Catalog { return e.catalog }

// Rules returns the tuning in effect.
func (e *Economy) Rules() Rules { return e.rules }

// Snapshot returns a deep copy of the current state.
func (e *Economy) Snapshot() State {
	return e.state.Clone()
}

// Suns returns the current balance.
func (e *Economy) Suns() float64 { return e.state.Suns }

// WaterLeft returns the current water count.
func (e *Economy) WaterLeft() int { return e.state.Water }

// ActivePlot returns the id of the plot shown to the player.
func (e *Economy) ActivePlot() int { return e.active }

// SetActivePlot switches the plot shown to the player.
func (e *Economy) SetActivePlot(id int) error {
	if e.state.plotIndex(id) < 0 {
		return fmt.Errorf("%w: plot %d", ErrNotFound, id)
	}
	e.active = id
	return nil
}

// Unlocks returns the feature flags bought so far.
func (e *Economy) Unlocks() catalog.Unlocks { return e.state.Unlocks() }

// PlotIDs lists the unlocked plots in unlock order.
func (e *Economy) PlotIDs() []int {
	ids := make([]int, len(e.state.Plots))
	for i, p := range e.state.Plots {
		ids[i] = p.ID
	}
	return ids
}

// Plot returns a copy of plot id.
func (e *Economy) Plot(id int) (Plot, bool) {
	pi := e.state.plotIndex(id)
	if pi < 0 {
		return Plot{}, false
	}
	p := e.state.Plots[pi]
	return Plot{ID: p.ID, Items: append([]OwnedItem{}, p.Items...)}, true
}

// Item returns a placed item by instance id.
func (e *Economy) Item(id InstanceID) (OwnedItem, bool) {
	pi, ii, ok := e.state.locate(id)
	if !ok {
		return OwnedItem{}, false
	}
	return e.state.Plots[pi].Items[ii], true
}

// Purchase buys catalog item id into plot plotID. Upgrades set their
// feature flag and the water bottle adds one water instead of placing
// anything; for those the returned InstanceID is empty.
func (e *Economy) Purchase(id catalog.ID, plotID int) (InstanceID, error) {
	it, ok := e.catalog.Resolve(id)
	if !ok {
		return "", fmt.Errorf("%w: catalog item %d", ErrNotFound, id)
	}
	pi := e.state.plotIndex(plotID)
	if pi < 0 {
		return "", fmt.Errorf("%w: plot %d", ErrNotFound, plotID)
	}
	if e.state.Suns < float64(it.Cost) {
		return "", fmt.Errorf("%w: %s costs %d", ErrInsufficientFunds, it.Name, it.Cost)
	}
	if err := e.checkPrerequisites(it, e.state.Plots[pi]); err != nil {
		return "", err
	}

	e.state.Suns -= float64(it.Cost)

	switch {
	case it.Category == catalog.CategoryUpgrade:
		e.unlock(it.Unlocks)
		e.emit(Event{Kind: EventUpgrade, CatalogID: it.ID, Category: it.Category, Amount: float64(it.Cost)})
		return "", nil
	case it.ID == catalog.WaterBottleID:
		e.state.Water++
		e.emit(Event{Kind: EventWaterBought, CatalogID: it.ID, Category: it.Category, Amount: float64(it.Cost)})
		return "", nil
	}

	inst := e.place(it, pi)
	e.emit(Event{Kind: EventPurchase, CatalogID: it.ID, Category: it.Category, Amount: float64(it.Cost)})
	return inst, nil
}

func (e *Economy) checkPrerequisites(it catalog.Item, p Plot) error {
	if f := it.RequiredFeature(); !e.state.Unlocks().Has(f) {
		return fmt.Errorf("%w: %s requires %s", ErrLockedByPrerequisite, it.Name, f)
	}
	if it.RequiresPool && !p.hasCategory(catalog.CategoryPool) {
		return fmt.Errorf("%w: %s requires a pool in plot %d", ErrLockedByPrerequisite, it.Name, p.ID)
	}
	return nil
}

func (e *Economy) unlock(f catalog.Feature) {
	switch f {
	case catalog.FeatureVIP:
		e.state.VIP = true
	case catalog.FeatureCreator:
		e.state.Creator = true
	case catalog.FeatureBioEngineer:
		e.state.BioEngineer = true
	case catalog.FeatureInterdimensional:
		e.state.Interdimensional = true
	}
}

// place creates an instance of it in plot index pi without charging.
func (e *Economy) place(it catalog.Item, pi int) InstanceID {
	stage := StageMature
	if it.IsPlant() {
		stage = StageSeed
	}
	inst := OwnedItem{
		InstanceID: e.newID(),
		CatalogID:  it.ID,
		Name:       it.Name,
		Glyph:      it.Glyph,
		X:          20 + e.rng.Float64()*60,
		Y:          20 + e.rng.Float64()*60,
		Size:       it.Size,
		Category:   it.Category,
		Rate:       it.Rate,
		Stage:      stage,
	}
	e.state.Plots[pi].Items = append(e.state.Plots[pi].Items, inst)
	e.state.discover(it.ID)
	return inst.InstanceID
}

// Water spends one water to advance an item one growth stage. It reports
// false without error when there is no water or the item is already mature.
func (e *Economy) Water(id InstanceID) (bool, error) {
	pi, ii, ok := e.state.locate(id)
	if !ok {
		return false, fmt.Errorf("%w: instance %s", ErrNotFound, id)
	}
	item := &e.state.Plots[pi].Items[ii]
	if e.state.Water <= 0 || item.Mature() {
		return false, nil
	}

	e.state.Water--
	item.Stage = item.Stage.Next()
	e.emit(Event{Kind: EventWater, CatalogID: item.CatalogID, Category: item.Category})
	return true, nil
}

// SellValue returns the refund for selling an item: half its catalog cost,
// rounded down. Items whose catalog entry is gone refund nothing.
func (e *Economy) SellValue(item OwnedItem) int64 {
	it, ok := e.catalog.Resolve(item.CatalogID)
	if !ok {
		return 0
	}
	return it.Cost / 2
}

// Sell removes an item and credits its refund.
func (e *Economy) Sell(id InstanceID) (int64, error) {
	pi, ii, ok := e.state.locate(id)
	if !ok {
		return 0, fmt.Errorf("%w: instance %s", ErrNotFound, id)
	}
	item := e.state.Plots[pi].Items[ii]
	refund := e.SellValue(item)

	e.remove(pi, ii)
	e.state.Suns += float64(refund)
	e.emit(Event{Kind: EventSell, CatalogID: item.CatalogID, Category: item.Category, Amount: float64(refund)})
	return refund, nil
}

func (e *Economy) remove(pi, ii int) {
	items := e.state.Plots[pi].Items
	id := items[ii].InstanceID
	e.state.Plots[pi].Items = append(items[:ii], items[ii+1:]...)
	e.dropPest(id)
}

// Fuse merges two mature instances of the same plant into one instance of
// the next catalog entry, placed for free in the first instance's plot.
func (e *Economy) Fuse(a, b InstanceID) (InstanceID, error) {
	pa, ia, okA := e.state.locate(a)
	pb, ib, okB := e.state.locate(b)
	if !okA || !okB {
		return "", fmt.Errorf("%w: fuse %s and %s", ErrNotFound, a, b)
	}
	itemA := e.state.Plots[pa].Items[ia]
	itemB := e.state.Plots[pb].Items[ib]

	switch {
	case !e.state.BioEngineer:
		return "", fmt.Errorf("%w: bioengineer pass required", ErrInvalidFusion)
	case a == b:
		return "", fmt.Errorf("%w: cannot fuse an item with itself", ErrInvalidFusion)
	case itemA.CatalogID != itemB.CatalogID:
		return "", fmt.Errorf("%w: %s and %s differ", ErrInvalidFusion, itemA.Name, itemB.Name)
	case !itemA.Mature() || !itemB.Mature():
		return "", fmt.Errorf("%w: both items must be mature", ErrInvalidFusion)
	}

	next, ok := e.catalog.Resolve(itemA.CatalogID + 1)
	if !ok || next.Category != catalog.CategoryPlant {
		return "", fmt.Errorf("%w: nothing follows %s", ErrNoUpgradePath, itemA.Name)
	}

	plotID := e.state.Plots[pa].ID
	e.removeInstance(a)
	e.removeInstance(b)
	inst := e.place(next, e.state.plotIndex(plotID))
	e.emit(Event{Kind: EventFuse, CatalogID: next.ID, Category: next.Category})
	return inst, nil
}

func (e *Economy) removeInstance(id InstanceID) {
	if pi, ii, ok := e.state.locate(id); ok {
		e.remove(pi, ii)
	}
}

// NextPlotCost returns the price of the next plot and whether one exists.
func (e *Economy) NextPlotCost() (int64, bool) {
	n := len(e.state.Plots)
	if n >= len(e.rules.PlotCosts) {
		return 0, false
	}
	return e.rules.PlotCosts[n], true
}

// UnlockPlot buys a new empty plot and returns its id.
func (e *Economy) UnlockPlot() (int, error) {
	cost, ok := e.NextPlotCost()
	if !ok {
		return 0, fmt.Errorf("%w: %d plots", ErrPlotLimitReached, len(e.state.Plots))
	}
	if e.state.Suns < float64(cost) {
		return 0, fmt.Errorf("%w: next plot costs %d", ErrInsufficientFunds, cost)
	}

	id := 0
	for _, p := range e.state.Plots {
		id = max(id, p.ID)
	}
	id++

	e.state.Suns -= float64(cost)
	e.state.Plots = append(e.state.Plots, Plot{ID: id, Items: []OwnedItem{}})
	e.emit(Event{Kind: EventPlotUnlocked, Amount: float64(cost)})
	return id, nil
}

// Floor returns the balance as shown to the player.
func Floor(suns float64) int64 {
	if suns >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(suns))
}
