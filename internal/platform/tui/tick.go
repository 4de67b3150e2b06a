// Package tui provides the Bubble Tea garden view and the SSH server that
// hosts it.
package tui

import (
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// newRand seeds a PCG source; seed 0 uses the clock.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>17|1))
}

// TickMsg triggers one production tick.
type TickMsg time.Time

// RollMsg triggers one firing of the random event engine.
type RollMsg time.Time

// PhaseMsg advances the day phase.
type PhaseMsg time.Time

// tickCmd schedules the next production tick.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func rollCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RollMsg(t)
	})
}

func phaseCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PhaseMsg(t)
	})
}
