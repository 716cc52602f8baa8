package deck

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jask/decks/internal/clock"
)

// Key is a key name in bubbletea's spelling ("up", "pgdown", ...).
type Key string

// scrollKeys hand control back to manual scrolling.
var scrollKeys = []Key{"up", "down", "pgup", "pgdown", "home", "end"}

// IsScrollKey reports whether k is a manual scroll key.
func IsScrollKey(k Key) bool {
	return slices.Contains(scrollKeys, Key(strings.ToLower(string(k))))
}

// EventSource delivers host events. Each On* call returns a function that
// removes the subscription.
type EventSource interface {
	OnRender(fn func(RenderEvent)) (unsubscribe func())
	OnKey(fn func(Key)) (unsubscribe func())
	OnResize(fn func()) (unsubscribe func())
}

// Session is one deck navigation instance. All methods must be called from
// the host's event loop.
type Session struct {
	scroller Scroller
	locator  Locator
	sizer    LayoutSizer
	clock    clock.Clock
	logger   *slog.Logger

	initialized bool
	ready       bool
	settings    Settings
	registry    *Registry
	tracker     *Tracker
	snapper     *Snapper
}

type SessionOption func(*Session)

func WithClock(c clock.Clock) SessionOption { return func(s *Session) { s.clock = c } }

func WithLogger(l *slog.Logger) SessionOption { return func(s *Session) { s.logger = l } }

func WithSizer(z LayoutSizer) SessionOption { return func(s *Session) { s.sizer = z } }

// NewSession builds an uninitialized session around the injected scroller
// and locator.
func NewSession(sc Scroller, loc Locator, opts ...SessionOption) *Session {
	s := &Session{scroller: sc, locator: loc}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Initialize captures settings, registers decks and starts tracking. Only
// the first call does anything; later calls return false. A session
// without a scroller logs the problem and stays inert.
func (s *Session) Initialize(o Options) bool {
	if s.initialized {
		return false
	}
	s.initialized = true

	if s.scroller == nil {
		s.logger.Error("deck session initialize", "error", ErrNoScroller)
		return false
	}

	s.settings = o.Settings()
	if s.clock == nil && s.settings.Autoscroll {
		s.logger.Warn("deck session initialize", "error", ErrNoClock)
		s.settings.Autoscroll = false
	}
	var panels []Panel
	if s.locator != nil {
		panels = s.locator.Locate(s.settings.DecksSelector)
	}
	s.registry = Build(panels)
	s.tracker = NewTracker(s.registry)
	s.snapper = NewSnapper(s.settings, s.scroller, s.tracker, s.clock, s.logger)

	s.resize()
	s.scroller.Track(s.registry.Markers())
	s.ready = true

	s.logger.Info("deck session initialized",
		"decks", s.registry.Len(),
		"selector", s.settings.DecksSelector,
		"autoscroll", s.settings.Autoscroll,
	)
	return true
}

func (s *Session) Ready() bool { return s.ready }

func (s *Session) Settings() Settings { return s.settings }

func (s *Session) Registry() *Registry { return s.registry }

// Active returns the current bracket.
func (s *Session) Active() Bracket {
	if !s.ready {
		return Bracket{}
	}
	return s.tracker.Active()
}

// SnapState exposes the auto-snap controller state.
func (s *Session) SnapState() SnapState {
	if !s.ready {
		return SnapIdle
	}
	return s.snapper.State()
}

// Navigate resolves intent and scrolls to it. A miss leaves the scroller
// untouched. A pending snap is dropped and an animation in flight is
// cancelled before the new request.
func (s *Session) Navigate(intent Intent, immediate bool) error {
	if !s.ready {
		return ErrNotInitialized
	}
	target, err := Resolve(intent, s.tracker.Active(), s.registry)
	if err != nil {
		return err
	}
	s.snapper.Stop()
	if s.scroller.IsAnimating() {
		s.scroller.CancelAnimation()
	}
	v := target.Target(s.scroller)
	if immediate {
		s.scroller.SetScrollTop(v, true)
	} else {
		s.scroller.AnimateTo(v, s.settings.Animation())
	}
	s.logger.Debug("navigate", "target", target.Anchor(), "scroll_top", v, "immediate", immediate)
	return nil
}

// NavigateTo is Navigate with the error folded into a bool.
func (s *Session) NavigateTo(intent Intent, immediate bool) bool {
	err := s.Navigate(intent, immediate)
	if err != nil && !errors.Is(err, ErrNotInitialized) {
		s.logger.Debug("navigate miss", "error", err)
	}
	return err == nil
}

// RefreshLayout re-runs the layout sizer, re-registers markers and queues
// a snap evaluation.
func (s *Session) RefreshLayout() {
	if !s.ready {
		return
	}
	s.resize()
	s.scroller.Track(s.registry.Markers())
	s.snapper.Trigger()
}

// Rebind swaps in freshly built panel handles, keeping deck identity.
func (s *Session) Rebind(panels []Panel) error {
	if !s.ready {
		return ErrNotInitialized
	}
	if err := s.registry.Refresh(panels); err != nil {
		return fmt.Errorf("rebind: %w", err)
	}
	s.RefreshLayout()
	return nil
}

// HandleRender feeds one render tick through the tracker, the user
// callback and the snap controller.
func (s *Session) HandleRender(ev RenderEvent) {
	if !s.ready {
		return
	}
	s.tracker.Observe(ev)
	if s.settings.onRender != nil {
		s.settings.onRender(ev)
	}
	s.snapper.OnRender(ev)
}

// HandleKey stops a programmatic animation when the user reaches for a
// manual scroll key.
func (s *Session) HandleKey(k Key) {
	if !s.ready || !IsScrollKey(k) {
		return
	}
	if s.scroller.IsAnimating() {
		s.snapper.Stop()
		s.scroller.CancelAnimation()
	}
}

// Attach subscribes the session to src. The returned function detaches
// every subscription and cancels a pending snap.
func (s *Session) Attach(src EventSource) (detach func()) {
	if src == nil {
		return func() {}
	}
	subs := []func(){
		src.OnRender(s.HandleRender),
		src.OnKey(s.HandleKey),
		src.OnResize(s.RefreshLayout),
	}
	done := false
	return func() {
		if done {
			return
		}
		done = true
		for _, unsub := range subs {
			if unsub != nil {
				unsub()
			}
		}
		if s.snapper != nil {
			s.snapper.Stop()
		}
	}
}

// Current returns the deck that owns most of the viewport.
func (s *Session) Current() (Boundary, bool) {
	active := s.Active()
	switch {
	case active.Len() == 1:
		return active.At(0)
	case active.Len() == 2 && active.Defined():
		a, _ := active.At(0)
		b, _ := active.At(1)
		if s.visibleLines(b) > s.visibleLines(a) {
			return b, true
		}
		return a, true
	default:
		return Boundary{}, false
	}
}

func (s *Session) visibleLines(b Boundary) float64 {
	top := s.scroller.ScrollTop()
	bottom := top + s.scroller.ViewportHeight()
	return max(0, min(bottom, b.Bottom(s.scroller))-max(top, b.Top(s.scroller)))
}

func (s *Session) resize() {
	if s.sizer != nil {
		s.sizer.Resize(s.registry.Panels())
	}
}
