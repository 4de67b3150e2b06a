// Package catalog holds the static table of purchasable garden items and the
// player-authored extension layered on top of it.
// Built-in entries are immutable; custom entries are append-only.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinYAML []byte

// ID identifies a catalog entry.
type ID int

// Category groups catalog entries by behavior.
type Category string

const (
	CategoryPlant        Category = "plant"
	CategorySpecialPlant Category = "special_plant"
	CategoryAnimal       Category = "animal"
	CategoryPool         Category = "pool"
	CategoryObject       Category = "object"
	CategoryUpgrade      Category = "upgrade"
)

// Size is the display scale of an item. It has no effect on the economy.
type Size string

const (
	SizeSmall     Size = "sm"
	SizeMedium    Size = "md"
	SizeLarge     Size = "lg"
	SizeXL        Size = "xl"
	SizePlanetary Size = "planetary"
)

// Feature names a global unlock bought through an upgrade item.
type Feature string

const (
	FeatureNone             Feature = ""
	FeatureVIP              Feature = "vip"
	FeatureCreator          Feature = "creator"
	FeatureBioEngineer      Feature = "bioengineer"
	FeatureInterdimensional Feature = "interdimensional"
)

// Well-known entries with special purchase or production behavior.
const (
	WaterBottleID ID = 8000
	SolarTotemID  ID = 8001
	LuckyGnomeID  ID = 8003

	// CustomIDBase is the first id handed out to player-authored items.
	CustomIDBase ID = 10000
)

// Item is a single catalog entry.
type Item struct {
	ID                 ID       `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name" validate:"required"`
	Glyph              string   `json:"emoji" yaml:"emoji" validate:"required"`
	Description        string   `json:"description,omitempty" yaml:"description"`
	Cost               int64    `json:"cost" yaml:"cost" validate:"gte=0"`
	Rate               float64  `json:"sunsPerSecond" yaml:"rate" validate:"gte=0"`
	Category           Category `json:"type" yaml:"type" validate:"oneof=plant special_plant animal pool object upgrade"`
	Size               Size     `json:"size" yaml:"size" validate:"oneof=sm md lg xl planetary"`
	RequiresPool       bool     `json:"requiresPool,omitempty" yaml:"requiresPool"`
	RequiresVIP        bool     `json:"requiresVip,omitempty" yaml:"requiresVip"`
	RequiresTeleporter bool     `json:"requiresTeleporter,omitempty" yaml:"requiresTeleporter"`
	GrowthBoost        float64  `json:"growthBoost,omitempty" yaml:"growthBoost"`
	Unlocks            Feature  `json:"unlocks,omitempty" yaml:"unlocks"`
	IsCustom           bool     `json:"isCustom,omitempty" yaml:"-"`
}

// RequiredFeature returns the global unlock that gates this item, if any.
func (it Item) RequiredFeature() Feature {
	switch {
	case it.RequiresTeleporter:
		return FeatureInterdimensional
	case it.RequiresVIP:
		return FeatureVIP
	default:
		return FeatureNone
	}
}

// IsPlant reports whether the item starts as a seed when placed.
func (it Item) IsPlant() bool {
	return it.Category == CategoryPlant
}

type document struct {
	Version int    `yaml:"version"`
	Items   []Item `yaml:"items"`
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (int, []Item, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, nil, fmt.Errorf("catalog: yaml unmarshal: %w", err)
	}

	v := validator.New()
	seen := make(map[ID]bool, len(doc.Items))
	for _, it := range doc.Items {
		if seen[it.ID] {
			return 0, nil, fmt.Errorf("catalog: duplicate id %d", it.ID)
		}
		seen[it.ID] = true
		if it.ID >= CustomIDBase {
			return 0, nil, fmt.Errorf("catalog: id %d is in the custom range", it.ID)
		}
		if err := v.Struct(it); err != nil {
			return 0, nil, fmt.Errorf("catalog: item %d: %w", it.ID, err)
		}
	}

	return doc.Version, doc.Items, nil
}

var (
	builtinOnce    sync.Once
	builtinVersion int
	builtinItems   []Item
)

// Builtin returns a fresh catalog over the embedded item table.
// Each call returns an independent custom extension list.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		version, items, err := Parse(builtinYAML)
		if err != nil {
			panic(err)
		}
		builtinVersion = version
		builtinItems = items
	})

	c := New(builtinItems)
	c.version = builtinVersion
	return c
}

// Catalog resolves item ids against the built-in table and the custom
// extension list, in that order.
type Catalog struct {
	version  int
	builtin  []Item
	index    map[ID]int
	custom   []Item
	customIx map[ID]int
}

// New creates a catalog over the given built-in items.
func New(builtin []Item) *Catalog {
	c := &Catalog{
		builtin:  make([]Item, len(builtin)),
		index:    make(map[ID]int, len(builtin)),
		customIx: make(map[ID]int),
	}
	copy(c.builtin, builtin)
	for i, it := range c.builtin {
		c.index[it.ID] = i
	}
	return c
}

// Version returns the version of the built-in table (0 when not embedded).
func (c *Catalog) Version() int {
	return c.version
}

// Resolve looks up an item by id.
func (c *Catalog) Resolve(id ID) (Item, bool) {
	if i, ok := c.index[id]; ok {
		return c.builtin[i], true
	}
	if i, ok := c.customIx[id]; ok {
		return c.custom[i], true
	}
	return Item{}, false
}

// Extend appends a custom item. It becomes resolvable immediately.
// Items colliding with an existing id are ignored.
func (c *Catalog) Extend(it Item) bool {
	if _, exists := c.Resolve(it.ID); exists {
		return false
	}
	it.IsCustom = true
	c.customIx[it.ID] = len(c.custom)
	c.custom = append(c.custom, it)
	return true
}

// NextCustomID returns the id the next custom item will receive.
func (c *Catalog) NextCustomID() ID {
	next := CustomIDBase + ID(len(c.custom))
	for {
		if _, taken := c.Resolve(next); !taken {
			return next
		}
		next++
	}
}

// Builtins returns a copy of the built-in items in table order.
func (c *Catalog) Builtins() []Item {
	out := make([]Item, len(c.builtin))
	copy(out, c.builtin)
	return out
}

// Custom returns a copy of the custom extension list.
func (c *Catalog) Custom() []Item {
	out := make([]Item, len(c.custom))
	copy(out, c.custom)
	return out
}

// All returns built-in items followed by custom items.
func (c *Catalog) All() []Item {
	out := make([]Item, 0, len(c.builtin)+len(c.custom))
	out = append(out, c.builtin...)
	out = append(out, c.custom...)
	return out
}

// ByCategory returns the items of one category sorted by cost.
func (c *Catalog) ByCategory(cat Category) []Item {
	var out []Item
	for _, it := range c.All() {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Cost < out[j].Cost
	})
	return out
}

// Unlocks is the set of global features a player has bought.
type Unlocks struct {
	VIP              bool
	Creator          bool
	BioEngineer      bool
	Interdimensional bool
}

// Has reports whether feature f is unlocked. FeatureNone is always unlocked.
func (u Unlocks) Has(f Feature) bool {
	switch f {
	case FeatureNone:
		return true
	case FeatureVIP:
		return u.VIP
	case FeatureCreator:
		return u.Creator
	case FeatureBioEngineer:
		return u.BioEngineer
	case FeatureInterdimensional:
		return u.Interdimensional
	}
	return false
}

// Visible returns the items the shop should list for the given unlocks.
// Upgrades already bought are hidden.
func (c *Catalog) Visible(u Unlocks) []Item {
	var out []Item
	for _, it := range c.All() {
		if !u.Has(it.RequiredFeature()) {
			continue
		}
		if it.Category == CategoryUpgrade && it.Unlocks != FeatureNone && u.Has(it.Unlocks) {
			continue
		}
		out = append(out, it)
	}
	return out
}
