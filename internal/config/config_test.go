package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-garden/internal/garden"
)

func TestEmbeddedDefaultsMatchRules(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)

	want := garden.DefaultRules()
	got := cfg.Rules()
	assert.Equal(t, want, got)
	assert.Len(t, cfg.Typing.Words, 25)
	assert.Equal(t, 3*time.Second, cfg.Save.Quiet)
	assert.Equal(t, 30*time.Second, cfg.Save.MaxDelay)
}

func TestHardcodedDefaultsMatchRules(t *testing.T) {
	assert.Equal(t, garden.DefaultRules(), DefaultGardenConfig().Rules())
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte(`
events:
  bonus_chance: 0.5
typing:
  words: [fern]
`))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, cfg.Events.BonusChance, 1e-9)
	assert.Equal(t, []string{"fern"}, cfg.Typing.Words)
	// Untouched keys keep their defaults.
	assert.InDelta(t, 0.05, cfg.Events.PestChance, 1e-9)
	assert.Equal(t, time.Second, cfg.Timers.Tick)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "timers: [1s"},
		{"bad duration", "timers:\n  tick: soon"},
		{"zero tick", "timers:\n  tick: 0s"},
		{"chance above one", "events:\n  pest_chance: 1.5"},
		{"no plots", "economy:\n  plot_costs: []"},
		{"negative plot cost", "economy:\n  plot_costs: [0, -1]"},
		{"no words", "typing:\n  words: []"},
		{"max delay below quiet", "save:\n  quiet: 10s\n  max_delay: 5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garden.yaml")
	require.NoError(t, os.WriteFile(path, []byte("economy:\n  booster_percent: 7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Rules().BoosterPercent)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("typing: {words: []}"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// Nothing on disk: embedded default.
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, garden.DefaultRules(), cfg.Rules())

	// User config wins over the embedded default.
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".garden"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".garden", "garden.yaml"), []byte("events:\n  bonus_reward: 900\n"), 0o644))

	cfg, err = Load("")
	require.NoError(t, err)
	assert.InDelta(t, 900.0, cfg.Events.BonusReward, 1e-9)

	// An invalid user config is skipped.
	require.NoError(t, os.WriteFile(filepath.Join(home, ".garden", "garden.yaml"), []byte("events:\n  bonus_chance: 3\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.InDelta(t, 0.01, cfg.Events.BonusChance, 1e-9)
}

func TestSaverConfig(t *testing.T) {
	sc := DefaultGardenConfig().SaverConfig()
	assert.Equal(t, 3*time.Second, sc.Quiet)
	assert.Equal(t, 30*time.Second, sc.MaxDelay)
	assert.Equal(t, time.Minute, sc.HistoryInterval)
}
