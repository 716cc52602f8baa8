package deck

import (
	"strings"
	"time"
)

const (
	DefaultDecksSelector     = ".skrollr-deck"
	DefaultOffsetPercent     = 15.0
	DefaultAnimationDuration = 600 * time.Millisecond
	DefaultEasing            = "quadratic"
	DefaultSnapDelay         = 500 * time.Millisecond
)

// Options is the caller-supplied configuration. Zero values mean "unset"
// and take the default. Autoscroll is a pointer so an explicit false
// survives the merge.
type Options struct {
	DecksSelector     string
	OffsetPercent     float64
	AnimationDuration time.Duration
	Easing            string
	SnapDelay         time.Duration
	Autoscroll        *bool
	OnRender          func(RenderEvent)
}

// Settings is the immutable snapshot captured at initialization.
type Settings struct {
	DecksSelector     string
	OffsetPercent     float64
	AnimationDuration time.Duration
	Easing            string
	SnapDelay         time.Duration
	Autoscroll        bool
	onRender          func(RenderEvent)
}

// Bool returns a pointer to v, for Options.Autoscroll.
func Bool(v bool) *bool { return &v }

// Settings merges o over the defaults. Zero and negative numbers count as
// unset.
func (o Options) Settings() Settings {
	s := Settings{
		DecksSelector:     DefaultDecksSelector,
		OffsetPercent:     DefaultOffsetPercent,
		AnimationDuration: DefaultAnimationDuration,
		Easing:            DefaultEasing,
		SnapDelay:         DefaultSnapDelay,
		Autoscroll:        true,
		onRender:          o.OnRender,
	}
	if v := strings.TrimSpace(o.DecksSelector); v != "" {
		s.DecksSelector = v
	}
	if o.OffsetPercent > 0 {
		s.OffsetPercent = o.OffsetPercent
	}
	if o.AnimationDuration > 0 {
		s.AnimationDuration = o.AnimationDuration
	}
	if v := strings.TrimSpace(o.Easing); v != "" {
		s.Easing = strings.ToLower(v)
	}
	if o.SnapDelay > 0 {
		s.SnapDelay = o.SnapDelay
	}
	if o.Autoscroll != nil {
		s.Autoscroll = *o.Autoscroll
	}
	return s
}

// Animation returns the animation parameters for snaps and jumps.
func (s Settings) Animation() Animation {
	return Animation{Duration: s.AnimationDuration, Easing: s.Easing}
}
