package deck

import (
	"log/slog"

	"github.com/jask/decks/internal/clock"
)

// SnapState is the auto-snap controller state.
type SnapState int

const (
	SnapIdle SnapState = iota
	SnapPending
)

func (s SnapState) String() string {
	if s == SnapPending {
		return "pending"
	}
	return "idle"
}

// Snapper completes a partial manual scroll once scrolling settles. Render
// events arm a debounce task; when it fires the controller commits to one
// of the two straddled decks.
type Snapper struct {
	settings  Settings
	scroller  Scroller
	tracker   *Tracker
	logger    *slog.Logger
	task      *clock.Task
	state     SnapState
	direction Direction
}

func NewSnapper(settings Settings, s Scroller, t *Tracker, c clock.Clock, logger *slog.Logger) *Snapper {
	sn := &Snapper{
		settings:  settings,
		scroller:  s,
		tracker:   t,
		logger:    logger,
		direction: Down,
	}
	sn.task = clock.NewTask(c, settings.SnapDelay, sn.fire)
	return sn
}

func (s *Snapper) State() SnapState { return s.state }

// OnRender records the direction of the latest movement and restarts the
// debounce delay.
func (s *Snapper) OnRender(ev RenderEvent) {
	if !s.settings.Autoscroll {
		return
	}
	if ev.Direction != DirectionNone {
		s.direction = ev.Direction
	}
	s.arm()
}

// Trigger schedules an evaluation using the last known direction.
func (s *Snapper) Trigger() {
	if !s.settings.Autoscroll {
		return
	}
	s.arm()
}

// Stop cancels a pending evaluation.
func (s *Snapper) Stop() {
	s.task.Cancel()
	s.state = SnapIdle
}

func (s *Snapper) arm() {
	s.state = SnapPending
	s.task.Reschedule()
}

func (s *Snapper) fire() {
	s.state = SnapIdle
	if s.scroller.IsAnimating() {
		return
	}
	target, ok := s.Evaluate(s.direction)
	if !ok {
		return
	}
	v := target.Target(s.scroller)
	s.logger.Debug("auto-snap", "target", target.Anchor(), "direction", s.direction.String(), "scroll_top", v)
	s.scroller.AnimateTo(v, s.settings.Animation())
}

// Evaluate picks the snap target for the current bracket without issuing
// any scroll request. It only answers for a two-deck bracket.
func (s *Snapper) Evaluate(dir Direction) (Boundary, bool) {
	active := s.tracker.Active()
	if active.Len() != 2 || !active.Defined() {
		return Boundary{}, false
	}
	beforeIdx, afterIdx := 1, 0
	if dir == Up {
		beforeIdx, afterIdx = 0, 1
	}
	before, _ := active.At(beforeIdx)
	after, _ := active.At(afterIdx)
	if !s.substantiallyVisible(before) {
		return after, true
	}
	return before, true
}

func (s *Snapper) substantiallyVisible(b Boundary) bool {
	top := s.scroller.ScrollTop()
	height := s.scroller.ViewportHeight()
	bottom := top + height
	offset := height * s.settings.OffsetPercent / 100

	return b.Top(s.scroller)+offset < bottom && b.Bottom(s.scroller)-offset > top
}
