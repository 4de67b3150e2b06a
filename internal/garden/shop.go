package garden

import (
	"fmt"

	"github.com/vovakirdan/tui-garden/internal/catalog"
)

// ShopEntry is one row of the shop for a given plot.
type ShopEntry struct {
	Item       catalog.Item
	Affordable bool
	// Locked explains why the item cannot be bought here, or is empty.
	Locked string
	// Owned counts instances in the plot.
	Owned int
}

// Shop lists the items visible to the player for plot plotID.
func (e *Economy) Shop(plotID int) ([]ShopEntry, error) {
	pi := e.state.plotIndex(plotID)
	if pi < 0 {
		return nil, fmt.Errorf("%w: plot %d", ErrNotFound, plotID)
	}
	plot := e.state.Plots[pi]

	owned := make(map[catalog.ID]int)
	for _, it := range plot.Items {
		owned[it.CatalogID]++
	}

	var out []ShopEntry
	for _, it := range e.catalog.Visible(e.state.Unlocks()) {
		entry := ShopEntry{
			Item:       it,
			Affordable: e.state.Suns >= float64(it.Cost),
			Owned:      owned[it.ID],
		}
		if it.RequiresPool && !plot.hasCategory(catalog.CategoryPool) {
			entry.Locked = "needs a pool"
		}
		out = append(out, entry)
	}
	return out, nil
}

// AlmanacEntry is one collectable in the almanac.
type AlmanacEntry struct {
	Item       catalog.Item
	Discovered bool
}

// Almanac is the collection-completion view over built-in plants and animals.
type Almanac struct {
	Entries    []AlmanacEntry
	Discovered int
	Total      int
}

// Almanac reports which built-in plants and animals were ever owned.
// Custom items are not collectables.
func (e *Economy) Almanac() Almanac {
	var a Almanac
	for _, it := range e.catalog.Builtins() {
		switch it.Category {
		case catalog.CategoryPlant, catalog.CategorySpecialPlant, catalog.CategoryAnimal:
		default:
			continue
		}
		found := e.state.IsDiscovered(it.ID)
		a.Entries = append(a.Entries, AlmanacEntry{Item: it, Discovered: found})
		a.Total++
		if found {
			a.Discovered++
		}
	}
	return a
}
