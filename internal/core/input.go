package core

// Action is a semantic garden command, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionPrev              // Left, h - select previous item or row
	ActionNext              // Right, l - select next item or row
	ActionConfirm           // Enter - buy, create, pick
	ActionBack              // Esc - close the open panel
	ActionShop              // b - open the shop
	ActionWater             // w - water the selection
	ActionSell              // s - sell the selection
	ActionFuse              // f - mark or fuse the selection
	ActionClearPest         // x - remove a pest
	ActionCollect           // g - pick up a bonus
	ActionPrevPlot          // [ - previous plot
	ActionNextPlot          // ] - next plot
	ActionUnlockPlot        // u - buy the next plot
	ActionAlmanac           // a - open the almanac
	ActionCreator           // c - open the creator
	ActionTyping            // Tab - toggle typing practice
	ActionHelp              // ? - toggle full help
	ActionQuit              // q, Ctrl+C - save and exit
)

var actionNames = [...]string{
	ActionNone:       "None",
	ActionPrev:       "Prev",
	ActionNext:       "Next",
	ActionConfirm:    "Confirm",
	ActionBack:       "Back",
	ActionShop:       "Shop",
	ActionWater:      "Water",
	ActionSell:       "Sell",
	ActionFuse:       "Fuse",
	ActionClearPest:  "ClearPest",
	ActionCollect:    "Collect",
	ActionPrevPlot:   "PrevPlot",
	ActionNextPlot:   "NextPlot",
	ActionUnlockPlot: "UnlockPlot",
	ActionAlmanac:    "Almanac",
	ActionCreator:    "Creator",
	ActionTyping:     "Typing",
	ActionHelp:       "Help",
	ActionQuit:       "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}
