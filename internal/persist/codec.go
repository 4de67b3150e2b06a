// Package persist encodes garden state for durable storage and writes
// snapshots to a key-value store off the gameplay path.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-garden/internal/garden"
	"github.com/vovakirdan/tui-garden/internal/storage"
)

// ErrCorruptData is returned when a payload is not a JSON object at all.
// A field of the wrong type only loses that field.
var ErrCorruptData = errors.New("corrupt data")

// KV is the byte store a save lives in.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Save field names, shared with the browser version of the game.
const (
	keySuns             = "suns"
	keyWater            = "water"
	keyPlots            = "gardens"
	keyDiscovered       = "almanacDiscovered"
	keyVIP              = "isVip"
	keyCreator          = "isAdmin"
	keyBioEngineer      = "isBioEngineer"
	keyInterdimensional = "hasTeleporter"
	keyCustom           = "customPlants"
)

// Encode serializes the full state.
func Encode(st garden.State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("persist: encode: %w", err)
	}
	return data, nil
}

// Decode parses a save. Missing, null or mistyped fields take the defaults
// of a new garden; only a payload that is not a JSON object fails, with
// ErrCorruptData.
func Decode(data []byte) (garden.State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		if err == nil {
			err = errors.New("payload is null")
		}
		return garden.DefaultState(), fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	st := garden.DefaultState()
	field(raw, keySuns, &st.Suns)
	field(raw, keyWater, &st.Water)
	var plots []garden.Plot
	if field(raw, keyPlots, &plots) && len(plots) > 0 {
		st.Plots = plots
	}
	field(raw, keyDiscovered, &st.Discovered)
	field(raw, keyCustom, &st.Custom)
	field(raw, keyVIP, &st.VIP)
	field(raw, keyCreator, &st.Creator)
	field(raw, keyBioEngineer, &st.BioEngineer)
	field(raw, keyInterdimensional, &st.Interdimensional)

	st.Normalize()
	return st, nil
}

// field decodes raw[name] into dst. dst is left alone and false returned
// when the field is missing, null or of the wrong type.
func field[T any](raw map[string]json.RawMessage, name string, dst *T) bool {
	v, ok := raw[name]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return false
	}
	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		return false
	}
	*dst = out
	return true
}

// Load reads and decodes the save under key. A missing key yields a new
// garden. On any other failure the defaults are returned with the error,
// so startup can continue and the caller decides whether to log it.
func Load(kv KV, key string) (garden.State, error) {
	data, err := kv.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return garden.DefaultState(), nil
	}
	if err != nil {
		return garden.DefaultState(), fmt.Errorf("persist: load %q: %w", key, err)
	}

	st, err := Decode(data)
	if err != nil {
		return garden.DefaultState(), fmt.Errorf("persist: load %q: %w", key, err)
	}
	return st, nil
}

// Save encodes st and writes it under key.
func Save(kv KV, key string, st garden.State) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if err := kv.Put(key, data); err != nil {
		return fmt.Errorf("persist: save %q: %w", key, err)
	}
	return nil
}
