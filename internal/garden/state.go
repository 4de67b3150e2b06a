package garden

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-garden/internal/catalog"
)

// GrowthStage is the lifecycle position of a placed item.
type GrowthStage string

const (
	StageSeed   GrowthStage = "seed"
	StageSprout GrowthStage = "sprout"
	StageMature GrowthStage = "mature"
)

// UnmarshalText accepts the legacy "full" spelling. Empty or unknown values
// decode as mature so that an item never gets stuck unable to produce.
func (g *GrowthStage) UnmarshalText(b []byte) error {
	switch s := string(b); s {
	case string(StageSeed), string(StageSprout):
		*g = GrowthStage(s)
	default:
		*g = StageMature
	}
	return nil
}

// Next returns the stage after g. Mature is terminal.
func (g GrowthStage) Next() GrowthStage {
	switch g {
	case StageSeed:
		return StageSprout
	case StageSprout:
		return StageMature
	default:
		return StageMature
	}
}

// InstanceID identifies a placed item.
type InstanceID string

// UnmarshalJSON accepts both strings and the numeric ids of older saves.
func (id *InstanceID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = InstanceID(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("instance id: %w", err)
	}
	*id = InstanceID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// OwnedItem is a placed instance of a catalog item. Display and production
// fields are copied from the catalog at placement time and never re-read.
type OwnedItem struct {
	InstanceID InstanceID       `json:"instanceId"`
	CatalogID  catalog.ID       `json:"shopId"`
	Name       string           `json:"name"`
	Glyph      string           `json:"emoji"`
	X          float64          `json:"x"`
	Y          float64          `json:"y"`
	Size       catalog.Size     `json:"size"`
	Category   catalog.Category `json:"type"`
	Rate       float64          `json:"sunsPerSecond"`
	Stage      GrowthStage      `json:"growthStage"`
}

// Mature reports whether the item is production-eligible.
func (it OwnedItem) Mature() bool {
	return it.Stage == StageMature
}

// Plot is an independently addressable container of placed items.
type Plot struct {
	ID    int         `json:"id"`
	Items []OwnedItem `json:"items"`
}

func (p Plot) find(id InstanceID) int {
	for i := range p.Items {
		if p.Items[i].InstanceID == id {
			return i
		}
	}
	return -1
}

func (p Plot) hasCategory(cat catalog.Category) bool {
	for _, it := range p.Items {
		if it.Category == cat {
			return true
		}
	}
	return false
}

// State is the persisted aggregate of one player's garden.
type State struct {
	Suns             float64        `json:"suns"`
	Water            int            `json:"water"`
	Plots            []Plot         `json:"gardens"`
	Discovered       []catalog.ID   `json:"almanacDiscovered"`
	VIP              bool           `json:"isVip"`
	Creator          bool           `json:"isAdmin"`
	BioEngineer      bool           `json:"isBioEngineer"`
	Interdimensional bool           `json:"hasTeleporter"`
	Custom           []catalog.Item `json:"customPlants"`
}

// Starting values for a new garden.
const (
	DefaultSuns  = 500
	DefaultWater = 10
)

// DefaultState returns the state of a brand new garden.
func DefaultState() State {
	return State{
		Suns:       DefaultSuns,
		Water:      DefaultWater,
		Plots:      []Plot{{ID: 1, Items: []OwnedItem{}}},
		Discovered: []catalog.ID{},
		Custom:     []catalog.Item{},
	}
}

// Unlocks returns the feature flags as a catalog.Unlocks.
func (s State) Unlocks() catalog.Unlocks {
	return catalog.Unlocks{
		VIP:              s.VIP,
		Creator:          s.Creator,
		BioEngineer:      s.BioEngineer,
		Interdimensional: s.Interdimensional,
	}
}

// ItemCount returns the number of placed items across all plots.
func (s State) ItemCount() int {
	n := 0
	for _, p := range s.Plots {
		n += len(p.Items)
	}
	return n
}

// Clone returns a deep copy of s with all slices non-nil.
func (s State) Clone() State {
	out := s
	out.Plots = make([]Plot, len(s.Plots))
	for i, p := range s.Plots {
		items := make([]OwnedItem, len(p.Items))
		copy(items, p.Items)
		out.Plots[i] = Plot{ID: p.ID, Items: items}
	}
	out.Discovered = append(make([]catalog.ID, 0, len(s.Discovered)), s.Discovered...)
	out.Custom = append(make([]catalog.Item, 0, len(s.Custom)), s.Custom...)
	return out
}

// Normalize repairs what a partial or hand-edited save may lack: nil slices,
// an empty plot list and duplicate discovered ids.
func (s *State) Normalize() {
	if len(s.Plots) == 0 {
		s.Plots = []Plot{{ID: 1}}
	}
	for i := range s.Plots {
		if s.Plots[i].Items == nil {
			s.Plots[i].Items = []OwnedItem{}
		}
		for j := range s.Plots[i].Items {
			if s.Plots[i].Items[j].Stage == "" {
				s.Plots[i].Items[j].Stage = StageMature
			}
		}
	}

	seen := make(map[catalog.ID]bool, len(s.Discovered))
	discovered := make([]catalog.ID, 0, len(s.Discovered))
	for _, id := range s.Discovered {
		if !seen[id] {
			seen[id] = true
			discovered = append(discovered, id)
		}
	}
	s.Discovered = discovered

	if s.Custom == nil {
		s.Custom = []catalog.Item{}
	}
	for i := range s.Custom {
		s.Custom[i].IsCustom = true
	}
	if s.Suns < 0 {
		s.Suns = 0
	}
	if s.Water < 0 {
		s.Water = 0
	}
}

func (s *State) discover(id catalog.ID) {
	for _, d := range s.Discovered {
		if d == id {
			return
		}
	}
	s.Discovered = append(s.Discovered, id)
}

// IsDiscovered reports whether the catalog id was ever owned.
func (s State) IsDiscovered(id catalog.ID) bool {
	for _, d := range s.Discovered {
		if d == id {
			return true
		}
	}
	return false
}

func (s State) plotIndex(id int) int {
	for i := range s.Plots {
		if s.Plots[i].ID == id {
			return i
		}
	}
	return -1
}

// locate returns the plot index and item index of an instance.
func (s State) locate(id InstanceID) (int, int, bool) {
	for pi, p := range s.Plots {
		if ii := p.find(id); ii >= 0 {
			return pi, ii, true
		}
	}
	return 0, 0, false
}
