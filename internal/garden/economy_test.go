package garden

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-garden/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{ID: 1, Name: "Daisy", Glyph: "d", Category: catalog.CategoryPlant, Size: catalog.SizeSmall, Cost: 150, Rate: 1},
		{ID: 2, Name: "Sunflower", Glyph: "s", Category: catalog.CategoryPlant, Size: catalog.SizeMedium, Cost: 500, Rate: 5},
		{ID: 3, Name: "Rose", Glyph: "r", Category: catalog.CategoryPlant, Size: catalog.SizeMedium, Cost: 151, Rate: 3},
		{ID: 20, Name: "Fern", Glyph: "f", Category: catalog.CategoryPlant, Size: catalog.SizeSmall, Cost: 10, Rate: 2},
		{ID: 21, Name: "Crystal", Glyph: "c", Category: catalog.CategorySpecialPlant, Size: catalog.SizeLarge, Cost: 10, Rate: 9},
		{ID: 30, Name: "Moss", Glyph: "m", Category: catalog.CategoryPlant, Size: catalog.SizeSmall, Cost: 10, Rate: 100},
		{ID: 200, Name: "Stardust", Glyph: "*", Category: catalog.CategorySpecialPlant, Size: catalog.SizeXL, Cost: 10, Rate: 50, RequiresTeleporter: true},
		{ID: 500, Name: "Bee", Glyph: "b", Category: catalog.CategoryAnimal, Size: catalog.SizeSmall, Cost: 100, GrowthBoost: 0.2},
		{ID: 700, Name: "Fox", Glyph: "F", Category: catalog.CategoryAnimal, Size: catalog.SizeMedium, Cost: 100, Rate: 4},
		{ID: 703, Name: "Dragon", Glyph: "D", Category: catalog.CategoryAnimal, Size: catalog.SizeXL, Cost: 100, Rate: 50, RequiresVIP: true},
		{ID: 800, Name: "Fish", Glyph: "~", Category: catalog.CategoryAnimal, Size: catalog.SizeSmall, Cost: 100, Rate: 4, RequiresPool: true},
		{ID: 3001, Name: "Pond", Glyph: "o", Category: catalog.CategoryPool, Size: catalog.SizeLarge, Cost: 100},
		{ID: catalog.WaterBottleID, Name: "Water Bottle", Glyph: "w", Category: catalog.CategoryObject, Size: catalog.SizeSmall, Cost: 50},
		{ID: catalog.SolarTotemID, Name: "Solar Totem", Glyph: "T", Category: catalog.CategoryObject, Size: catalog.SizeMedium, Cost: 1000},
		{ID: catalog.LuckyGnomeID, Name: "Lucky Gnome", Glyph: "g", Category: catalog.CategoryObject, Size: catalog.SizeSmall, Cost: 100},
		{ID: 9000, Name: "VIP Pass", Glyph: "V", Category: catalog.CategoryUpgrade, Size: catalog.SizeSmall, Cost: 10, Unlocks: catalog.FeatureVIP},
		{ID: 9001, Name: "Creator Panel", Glyph: "C", Category: catalog.CategoryUpgrade, Size: catalog.SizeSmall, Cost: 10, Unlocks: catalog.FeatureCreator},
		{ID: 9002, Name: "Bioengineer Pass", Glyph: "B", Category: catalog.CategoryUpgrade, Size: catalog.SizeSmall, Cost: 10, Unlocks: catalog.FeatureBioEngineer},
		{ID: 9003, Name: "Teleporter", Glyph: "@", Category: catalog.CategoryUpgrade, Size: catalog.SizeLarge, Cost: 10, Unlocks: catalog.FeatureInterdimensional},
	})
}

func sequentialIDs() func() InstanceID {
	n := 0
	return func() InstanceID {
		n++
		return InstanceID(fmt.Sprintf("i%d", n))
	}
}

func newTestEconomy(t *testing.T, st State, opts ...Option) *Economy {
	t.Helper()
	base := []Option{
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithIDs(sequentialIDs()),
	}
	return New(testCatalog(), st, append(base, opts...)...)
}

// placeMature places a catalog item for free and forces it mature.
func placeMature(t *testing.T, e *Economy, id catalog.ID, plotID int) InstanceID {
	t.Helper()
	it, ok := e.catalog.Resolve(id)
	require.True(t, ok, "catalog id %d", id)
	pi := e.state.plotIndex(plotID)
	require.GreaterOrEqual(t, pi, 0, "plot %d", plotID)
	inst := e.place(it, pi)
	_, ii, _ := e.state.locate(inst)
	e.state.Plots[pi].Items[ii].Stage = StageMature
	return inst
}

func TestPurchaseScenario(t *testing.T) {
	e := newTestEconomy(t, DefaultState())

	inst, err := e.Purchase(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 350.0, e.Suns(), 1e-9)

	item, ok := e.Item(inst)
	require.True(t, ok)
	assert.Equal(t, StageSeed, item.Stage)
	assert.Contains(t, e.Snapshot().Discovered, catalog.ID(1))

	for i := 0; i < 2; i++ {
		advanced, err := e.Water(inst)
		require.NoError(t, err)
		assert.True(t, advanced)
	}
	item, _ = e.Item(inst)
	assert.Equal(t, StageMature, item.Stage)
	assert.Equal(t, 8, e.WaterLeft())

	e.Tick()
	assert.InDelta(t, 351.0, e.Suns(), 1e-9)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	tests := []struct {
		name string
		suns float64
		id   catalog.ID
	}{
		{"plant", 149, 1},
		{"upgrade", 9, 9000},
		{"water bottle", 0, catalog.WaterBottleID},
		{"zero balance", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := DefaultState()
			st.Suns = tt.suns
			e := newTestEconomy(t, st)
			before := e.Snapshot()

			_, err := e.Purchase(tt.id, 1)
			assert.ErrorIs(t, err, ErrInsufficientFunds)
			assert.Equal(t, before, e.Snapshot())
		})
	}
}

func TestPurchaseEntryStage(t *testing.T) {
	tests := []struct {
		id   catalog.ID
		want GrowthStage
	}{
		{1, StageSeed},
		{21, StageMature},
		{700, StageMature},
		{3001, StageMature},
		{catalog.SolarTotemID, StageMature},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.id), func(t *testing.T) {
			st := DefaultState()
			st.Suns = 10_000
			e := newTestEconomy(t, st)

			inst, err := e.Purchase(tt.id, 1)
			require.NoError(t, err)
			item, ok := e.Item(inst)
			require.True(t, ok)
			assert.Equal(t, tt.want, item.Stage)
			assert.GreaterOrEqual(t, item.X, 20.0)
			assert.LessOrEqual(t, item.X, 80.0)
		})
	}
}

func TestPurchaseSnapshotsCatalogFields(t *testing.T) {
	st := DefaultState()
	st.Suns = 1000
	e := newTestEconomy(t, st)

	inst, err := e.Purchase(2, 1)
	require.NoError(t, err)
	item, _ := e.Item(inst)
	assert.Equal(t, "Sunflower", item.Name)
	assert.Equal(t, "s", item.Glyph)
	assert.Equal(t, catalog.SizeMedium, item.Size)
	assert.Equal(t, catalog.CategoryPlant, item.Category)
	assert.InDelta(t, 5.0, item.Rate, 1e-9)
}

func TestPurchaseUpgrade(t *testing.T) {
	tests := []struct {
		id   catalog.ID
		flag func(State) bool
	}{
		{9000, func(s State) bool { return s.VIP }},
		{9001, func(s State) bool { return s.Creator }},
		{9002, func(s State) bool { return s.BioEngineer }},
		{9003, func(s State) bool { return s.Interdimensional }},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.id), func(t *testing.T) {
			e := newTestEconomy(t, DefaultState())

			inst, err := e.Purchase(tt.id, 1)
			require.NoError(t, err)
			assert.Empty(t, inst)

			snap := e.Snapshot()
			assert.True(t, tt.flag(snap))
			assert.InDelta(t, 490.0, snap.Suns, 1e-9)
			assert.Zero(t, snap.ItemCount())
			assert.Empty(t, snap.Discovered)
		})
	}
}

func TestPurchaseWaterBottle(t *testing.T) {
	e := newTestEconomy(t, DefaultState())

	inst, err := e.Purchase(catalog.WaterBottleID, 1)
	require.NoError(t, err)
	assert.Empty(t, inst)
	assert.Equal(t, 11, e.WaterLeft())
	assert.InDelta(t, 450.0, e.Suns(), 1e-9)
	assert.Zero(t, e.Snapshot().ItemCount())
}

func TestPurchasePrerequisites(t *testing.T) {
	st := DefaultState()
	st.Suns = 10_000
	e := newTestEconomy(t, st)

	_, err := e.Purchase(800, 1)
	assert.ErrorIs(t, err, ErrLockedByPrerequisite)
	_, err = e.Purchase(703, 1)
	assert.ErrorIs(t, err, ErrLockedByPrerequisite)
	_, err = e.Purchase(200, 1)
	assert.ErrorIs(t, err, ErrLockedByPrerequisite)
	assert.InDelta(t, 10_000.0, e.Suns(), 1e-9)

	_, err = e.Purchase(3001, 1)
	require.NoError(t, err)
	_, err = e.Purchase(800, 1)
	assert.NoError(t, err)

	_, err = e.Purchase(9000, 1)
	require.NoError(t, err)
	_, err = e.Purchase(703, 1)
	assert.NoError(t, err)

	_, err = e.Purchase(9003, 1)
	require.NoError(t, err)
	_, err = e.Purchase(200, 1)
	assert.NoError(t, err)
}

func TestPurchasePoolIsPerPlot(t *testing.T) {
	st := DefaultState()
	st.Suns = 10_000
	st.Plots = append(st.Plots, Plot{ID: 2})
	e := newTestEconomy(t, st)

	_, err := e.Purchase(3001, 1)
	require.NoError(t, err)
	_, err = e.Purchase(800, 2)
	assert.ErrorIs(t, err, ErrLockedByPrerequisite)
}

func TestPurchaseUnknown(t *testing.T) {
	e := newTestEconomy(t, DefaultState())

	_, err := e.Purchase(4242, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.Purchase(1, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWater(t *testing.T) {
	e := newTestEconomy(t, DefaultState())
	inst, err := e.Purchase(1, 1)
	require.NoError(t, err)

	for _, want := range []GrowthStage{StageSprout, StageMature} {
		advanced, err := e.Water(inst)
		require.NoError(t, err)
		require.True(t, advanced)
		item, _ := e.Item(inst)
		assert.Equal(t, want, item.Stage)
	}
	require.Equal(t, 8, e.WaterLeft())

	// Mature is terminal.
	advanced, err := e.Water(inst)
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, 8, e.WaterLeft())
}

func TestWaterWithoutWater(t *testing.T) {
	st := DefaultState()
	st.Water = 0
	e := newTestEconomy(t, st)
	inst, err := e.Purchase(1, 1)
	require.NoError(t, err)

	advanced, err := e.Water(inst)
	require.NoError(t, err)
	assert.False(t, advanced)
	item, _ := e.Item(inst)
	assert.Equal(t, StageSeed, item.Stage)
	assert.Zero(t, e.WaterLeft())
}

func TestWaterUnknownInstance(t *testing.T) {
	e := newTestEconomy(t, DefaultState())
	_, err := e.Water("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 10, e.WaterLeft())
}

func TestSell(t *testing.T) {
	st := DefaultState()
	st.Suns = 151
	e := newTestEconomy(t, st)
	inst, err := e.Purchase(3, 1)
	require.NoError(t, err)
	require.Zero(t, e.Suns())

	refund, err := e.Sell(inst)
	require.NoError(t, err)
	assert.EqualValues(t, 75, refund)
	assert.InDelta(t, 75.0, e.Suns(), 1e-9)
	_, ok := e.Item(inst)
	assert.False(t, ok)

	// Discovery survives selling.
	assert.True(t, e.Snapshot().IsDiscovered(3))
}

func TestSellUnknownInstance(t *testing.T) {
	e := newTestEconomy(t, DefaultState())
	before := e.Snapshot()

	for i := 0; i < 2; i++ {
		_, err := e.Sell("ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, before, e.Snapshot())
}

func TestSellUnresolvableItem(t *testing.T) {
	st := DefaultState()
	st.Plots[0].Items = []OwnedItem{{InstanceID: "old", CatalogID: 77777, Name: "Lost", Stage: StageMature, Rate: 3}}
	e := newTestEconomy(t, st)

	refund, err := e.Sell("old")
	require.NoError(t, err)
	assert.Zero(t, refund)
	assert.InDelta(t, 500.0, e.Suns(), 1e-9)
}

func TestSellClearsPest(t *testing.T) {
	e := newTestEconomy(t, DefaultState())
	inst := placeMature(t, e, 700, 1)
	require.NoError(t, e.Infest(inst))

	_, err := e.Sell(inst)
	require.NoError(t, err)
	assert.Empty(t, e.Pests())
}

func TestFuse(t *testing.T) {
	st := DefaultState()
	st.BioEngineer = true
	e := newTestEconomy(t, st)
	a := placeMature(t, e, 1, 1)
	b := placeMature(t, e, 1, 1)

	inst, err := e.Fuse(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, e.Suns(), 1e-9)

	snap := e.Snapshot()
	require.Len(t, snap.Plots[0].Items, 1)
	got := snap.Plots[0].Items[0]
	assert.Equal(t, inst, got.InstanceID)
	assert.Equal(t, catalog.ID(2), got.CatalogID)
	assert.Equal(t, StageSeed, got.Stage)
	assert.True(t, snap.IsDiscovered(2))
}

func TestFuseAcrossPlotsLandsInFirstPlot(t *testing.T) {
	st := DefaultState()
	st.BioEngineer = true
	st.Plots = append(st.Plots, Plot{ID: 2})
	e := newTestEconomy(t, st)
	a := placeMature(t, e, 1, 2)
	b := placeMature(t, e, 1, 1)

	_, err := e.Fuse(a, b)
	require.NoError(t, err)
	snap := e.Snapshot()
	assert.Empty(t, snap.Plots[0].Items)
	assert.Len(t, snap.Plots[1].Items, 1)
}

func TestFuseXenoflora(t *testing.T) {
	st := DefaultState()
	st.BioEngineer = true
	st.Interdimensional = true
	e := New(catalog.Builtin(), st, WithRand(rand.New(rand.NewPCG(1, 2))), WithIDs(sequentialIDs()))
	a := placeMature(t, e, 200, 1)
	b := placeMature(t, e, 200, 1)

	_, err := e.Fuse(a, b)
	require.NoError(t, err)
	snap := e.Snapshot()
	require.Len(t, snap.Plots[0].Items, 1)
	assert.Equal(t, catalog.ID(201), snap.Plots[0].Items[0].CatalogID)
	assert.Equal(t, StageSeed, snap.Plots[0].Items[0].Stage)
}

func TestFuseNoUpgradePath(t *testing.T) {
	tests := []struct {
		name string
		id   catalog.ID
	}{
		{"no next entry", 30},
		{"next is not a plant", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := DefaultState()
			st.BioEngineer = true
			e := newTestEconomy(t, st)
			a := placeMature(t, e, tt.id, 1)
			b := placeMature(t, e, tt.id, 1)
			before := e.Snapshot()

			_, err := e.Fuse(a, b)
			assert.ErrorIs(t, err, ErrNoUpgradePath)
			assert.Equal(t, before, e.Snapshot())
		})
	}
}

func TestFuseInvalid(t *testing.T) {
	setup := func(t *testing.T, bio bool) *Economy {
		st := DefaultState()
		st.BioEngineer = bio
		return newTestEconomy(t, st)
	}

	t.Run("locked", func(t *testing.T) {
		e := setup(t, false)
		a, b := placeMature(t, e, 1, 1), placeMature(t, e, 1, 1)
		_, err := e.Fuse(a, b)
		assert.ErrorIs(t, err, ErrInvalidFusion)
	})

	t.Run("different items", func(t *testing.T) {
		e := setup(t, true)
		a, b := placeMature(t, e, 1, 1), placeMature(t, e, 2, 1)
		_, err := e.Fuse(a, b)
		assert.ErrorIs(t, err, ErrInvalidFusion)
	})

	t.Run("not mature", func(t *testing.T) {
		e := setup(t, true)
		a := placeMature(t, e, 1, 1)
		b, err := e.Purchase(1, 1)
		require.NoError(t, err)
		_, err = e.Fuse(a, b)
		assert.ErrorIs(t, err, ErrInvalidFusion)
	})

	t.Run("same instance", func(t *testing.T) {
		e := setup(t, true)
		a := placeMature(t, e, 1, 1)
		_, err := e.Fuse(a, a)
		assert.ErrorIs(t, err, ErrInvalidFusion)
	})

	t.Run("missing", func(t *testing.T) {
		e := setup(t, true)
		a := placeMature(t, e, 1, 1)
		_, err := e.Fuse(a, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUnlockPlot(t *testing.T) {
	st := DefaultState()
	st.Suns = 10_000_000
	e := newTestEconomy(t, st)

	id, err := e.UnlockPlot()
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	assert.Zero(t, e.Suns())

	_, err = e.UnlockPlot()
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Len(t, e.Snapshot().Plots, 2)
}

func TestUnlockPlotLimit(t *testing.T) {
	st := DefaultState()
	st.Suns = 1e12
	e := newTestEconomy(t, st)

	for i := 1; i < e.Rules().MaxPlots(); i++ {
		_, err := e.UnlockPlot()
		require.NoError(t, err)
	}
	_, err := e.UnlockPlot()
	assert.ErrorIs(t, err, ErrPlotLimitReached)

	ids := []int{}
	for _, p := range e.Snapshot().Plots {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
}

func TestSetActivePlot(t *testing.T) {
	st := DefaultState()
	st.Plots = append(st.Plots, Plot{ID: 2})
	e := newTestEconomy(t, st)

	assert.Equal(t, 1, e.ActivePlot())
	require.NoError(t, e.SetActivePlot(2))
	assert.Equal(t, 2, e.ActivePlot())
	assert.ErrorIs(t, e.SetActivePlot(5), ErrNotFound)
	assert.Equal(t, 2, e.ActivePlot())
	assert.Equal(t, []int{1, 2}, e.PlotIDs())
}

func TestPlotIsACopy(t *testing.T) {
	e := newTestEconomy(t, DefaultState())
	inst := placeMature(t, e, 1, 1)

	p, ok := e.Plot(1)
	require.True(t, ok)
	require.Len(t, p.Items, 1)
	p.Items[0].Name = "changed"

	got, _ := e.Item(inst)
	assert.NotEqual(t, "changed", got.Name)

	_, ok = e.Plot(9)
	assert.False(t, ok)
}

func TestCreateCustomCatalogItem(t *testing.T) {
	t.Run("locked", func(t *testing.T) {
		e := newTestEconomy(t, DefaultState())
		_, err := e.CreateCustomCatalogItem(CustomItemRequest{Name: "Glow", Glyph: "*"})
		assert.ErrorIs(t, err, ErrLockedByPrerequisite)
		assert.Empty(t, e.Snapshot().Custom)
	})

	t.Run("validation", func(t *testing.T) {
		st := DefaultState()
		st.Creator = true
		e := newTestEconomy(t, st)

		for _, req := range []CustomItemRequest{
			{Name: "", Glyph: "*"},
			{Name: "Glow", Glyph: "  "},
			{Name: "Glow", Glyph: "*", Rate: -1},
			{Name: "Glow", Glyph: "*", Size: "huge"},
		} {
			_, err := e.CreateCustomCatalogItem(req)
			assert.ErrorIs(t, err, ErrValidation, "%+v", req)
		}
		assert.Empty(t, e.Snapshot().Custom)
	})

	t.Run("created", func(t *testing.T) {
		st := DefaultState()
		st.Creator = true
		e := newTestEconomy(t, st)

		first, err := e.CreateCustomCatalogItem(CustomItemRequest{Name: "Glow", Glyph: "*", Rate: 12})
		require.NoError(t, err)
		second, err := e.CreateCustomCatalogItem(CustomItemRequest{Name: "Dim", Glyph: "-", Size: catalog.SizeLarge})
		require.NoError(t, err)

		assert.Equal(t, catalog.CustomIDBase, first.ID)
		assert.Equal(t, catalog.CustomIDBase+1, second.ID)
		assert.Zero(t, first.Cost)
		assert.Equal(t, catalog.CategoryPlant, first.Category)
		assert.Equal(t, catalog.SizeSmall, first.Size)
		assert.True(t, first.IsCustom)
		assert.Zero(t, e.Snapshot().ItemCount())

		resolved, ok := e.Catalog().Resolve(first.ID)
		require.True(t, ok)
		assert.Equal(t, "Glow", resolved.Name)
		assert.Len(t, e.Snapshot().Custom, 2)

		inst, err := e.Purchase(first.ID, 1)
		require.NoError(t, err)
		assert.InDelta(t, 500.0, e.Suns(), 1e-9)
		item, _ := e.Item(inst)
		assert.Equal(t, "*", item.Glyph)
	})
}

func TestNewRestoresCustomItems(t *testing.T) {
	st := DefaultState()
	st.Custom = []catalog.Item{{ID: catalog.CustomIDBase, Name: "Glow", Glyph: "*", Category: catalog.CategoryPlant, Rate: 2}}
	e := newTestEconomy(t, st)

	it, ok := e.Catalog().Resolve(catalog.CustomIDBase)
	require.True(t, ok)
	assert.True(t, it.IsCustom)
	assert.Equal(t, catalog.CustomIDBase+1, e.Catalog().NextCustomID())
}

func TestInstanceKeepsCachedFields(t *testing.T) {
	st := DefaultState()
	st.Plots[0].Items = []OwnedItem{{
		InstanceID: "x", CatalogID: 1, Name: "Old Daisy", Glyph: "?", Rate: 7, Stage: StageMature, Category: catalog.CategoryPlant,
	}}
	e := newTestEconomy(t, st)

	// Production uses the cached rate, not the catalog's.
	assert.InDelta(t, 7.0, e.Tick(), 1e-9)
	item, _ := e.Item("x")
	assert.Equal(t, "?", item.Glyph)
}

func TestSnapshotIsIndependent(t *testing.T) {
	e := newTestEconomy(t, DefaultState())
	inst, err := e.Purchase(1, 1)
	require.NoError(t, err)

	snap := e.Snapshot()
	snap.Plots[0].Items[0].Stage = StageMature
	snap.Discovered[0] = 99
	snap.Suns = 0

	item, _ := e.Item(inst)
	assert.Equal(t, StageSeed, item.Stage)
	assert.True(t, e.Snapshot().IsDiscovered(1))
	assert.InDelta(t, 350.0, e.Suns(), 1e-9)
}

func TestNewNormalizesState(t *testing.T) {
	e := newTestEconomy(t, State{Suns: -5, Water: -1, Discovered: []catalog.ID{1, 1, 2}})
	snap := e.Snapshot()

	require.Len(t, snap.Plots, 1)
	assert.Equal(t, 1, snap.Plots[0].ID)
	assert.NotNil(t, snap.Plots[0].Items)
	assert.Equal(t, []catalog.ID{1, 2}, snap.Discovered)
	assert.Zero(t, snap.Suns)
	assert.Zero(t, snap.Water)
	assert.NotNil(t, snap.Custom)
}
