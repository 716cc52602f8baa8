package deck

import (
	"strings"
	"time"
)

// Edge selects which side of a panel RelativeOffset measures.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
)

// Direction is the vertical direction of scrolling or stepping.
type Direction int

const (
	DirectionNone Direction = iota
	Down
	Up
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "none"
	}
}

// ParseDirection accepts "down"/"next" and "up"/"previous"/"prev".
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "next":
		return Down
	case "up", "previous", "prev":
		return Up
	default:
		return DirectionNone
	}
}

// Panel is an opaque handle to one deck panel owned by the host document.
// ID returns the handle's own identifier, or "" when it has none.
type Panel interface {
	ID() string
}

// Tagger is implemented by panels that accept a synthesized identifier.
type Tagger interface {
	SetID(id string)
}

// Animation carries the parameters of an animated scroll.
type Animation struct {
	Duration time.Duration
	Easing   string
}

// Marker is the tracking element the scroller watches for one boundary.
type Marker struct {
	Index  int
	Anchor string
	Panel  Panel
}

// RenderEvent is emitted by the scroller on every tick that moved the
// viewport. Between is index-aligned with the tracked markers.
type RenderEvent struct {
	ScrollTop float64
	Direction Direction
	Between   []bool
}

// Scroller is the scroll-and-interpolate engine the core drives.
type Scroller interface {
	ScrollTop() float64
	SetScrollTop(v float64, immediate bool)
	AnimateTo(v float64, a Animation)
	CancelAnimation()
	IsAnimating() bool
	RelativeOffset(p Panel, e Edge) float64
	ViewportHeight() float64
	// Track replaces the set of markers whose between-viewport signal is
	// reported in render events.
	Track(markers []Marker)
}

// Locator resolves a selector to the ordered panel handles.
type Locator interface {
	Locate(selector string) []Panel
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(selector string) []Panel

func (f LocatorFunc) Locate(selector string) []Panel { return f(selector) }

// LayoutSizer stretches each panel to at least one viewport height.
type LayoutSizer interface {
	Resize(panels []Panel)
}
