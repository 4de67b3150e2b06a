package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-garden/internal/core"
)

// KeyMap defines the key bindings of the garden view.
type KeyMap struct {
	Prev       key.Binding
	Next       key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Shop       key.Binding
	Water      key.Binding
	Sell       key.Binding
	Fuse       key.Binding
	ClearPest  key.Binding
	Collect    key.Binding
	PrevPlot   key.Binding
	NextPlot   key.Binding
	UnlockPlot key.Binding
	Almanac    key.Binding
	Creator    key.Binding
	Typing     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Shop, k.Water, k.Sell, k.Typing, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.PrevPlot, k.NextPlot},
		{k.Shop, k.Water, k.Sell, k.Fuse},
		{k.ClearPest, k.Collect, k.UnlockPlot},
		{k.Almanac, k.Creator, k.Typing, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Shop: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "shop"),
		),
		Water: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "water"),
		),
		Sell: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sell"),
		),
		Fuse: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fuse"),
		),
		ClearPest: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear pest"),
		),
		Collect: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grab bonus"),
		),
		PrevPlot: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev plot"),
		),
		NextPlot: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next plot"),
		),
		UnlockPlot: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unlock plot"),
		),
		Almanac: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "almanac"),
		),
		Creator: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "creator"),
		),
		Typing: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "typing"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a garden action.
// Unbound keys map to core.ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Quit, core.ActionQuit},
		{k.Prev, core.ActionPrev},
		{k.Next, core.ActionNext},
		{k.Confirm, core.ActionConfirm},
		{k.Back, core.ActionBack},
		{k.Shop, core.ActionShop},
		{k.Water, core.ActionWater},
		{k.Sell, core.ActionSell},
		{k.Fuse, core.ActionFuse},
		{k.ClearPest, core.ActionClearPest},
		{k.Collect, core.ActionCollect},
		{k.PrevPlot, core.ActionPrevPlot},
		{k.NextPlot, core.ActionNextPlot},
		{k.UnlockPlot, core.ActionUnlockPlot},
		{k.Almanac, core.ActionAlmanac},
		{k.Creator, core.ActionCreator},
		{k.Typing, core.ActionTyping},
		{k.Help, core.ActionHelp},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// isForceQuit reports keys that quit from any mode, including text entry.
func isForceQuit(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC
}
