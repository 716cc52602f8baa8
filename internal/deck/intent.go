package deck

import "strings"

// Intent is a navigation request. It is either a Step or a ToAnchor.
type Intent interface {
	isIntent()
}

// Step moves one deck in Direction relative to the active bracket.
type Step struct {
	Direction Direction
}

// ToAnchor targets a registered deck. When the anchor is unknown and
// Fallback is set, it resolves like a Step in that direction.
type ToAnchor struct {
	ID       string
	Fallback Direction
}

func (Step) isIntent()     {}
func (ToAnchor) isIntent() {}

func Next() Intent     { return Step{Direction: Down} }
func Previous() Intent { return Step{Direction: Up} }

// StepBy maps an index delta of ±1 to a Step. Other deltas yield nil.
func StepBy(delta int) Intent {
	switch delta {
	case 1:
		return Next()
	case -1:
		return Previous()
	default:
		return nil
	}
}

// ParseIntent reads the loose string form accepted by hosts: "next",
// "down", "previous", "prev", "up", or an anchor with or without '#'.
func ParseIntent(s string) Intent {
	s = strings.TrimSpace(s)
	if d := ParseDirection(s); d != DirectionNone {
		return Step{Direction: d}
	}
	return ToAnchor{ID: strings.TrimPrefix(s, "#")}
}
