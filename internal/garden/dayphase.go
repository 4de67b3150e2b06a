package garden

// DayPhase is the garden's time of day. It only affects presentation.
type DayPhase int

const (
	Day DayPhase = iota
	Evening
	Night
)

// Next returns the following phase: day, evening, night, then day again.
func (p DayPhase) Next() DayPhase {
	return (p + 1) % 3
}

func (p DayPhase) String() string {
	switch p {
	case Day:
		return "day"
	case Evening:
		return "evening"
	case Night:
		return "night"
	}
	return "unknown"
}
