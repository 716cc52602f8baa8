// Package scroller is the scroll engine for a line document: it owns the
// scroll position, interpolates animated scrolls and reports which tracked
// markers lie between the viewport edges.
package scroller

import (
	"log/slog"
	"math"
	"time"

	"github.com/jask/decks/internal/deck"
)

// Slack is the number of rows every deck exceeds the viewport by, so that a
// deck target never has the neighbouring decks inside the viewport.
const Slack = 2

type animation struct {
	from, to float64
	start    time.Time
	duration time.Duration
	ease     Easing
}

// Engine implements deck.Scroller over a Document.
type Engine struct {
	doc       *Document
	viewport  int
	top       float64
	lastTop   float64
	rendered  bool
	anim      *animation
	markers   []deck.Marker
	listeners map[int]func(deck.RenderEvent)
	nextID    int
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Engine)

// WithNow overrides the time source used for animations.
func WithNow(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

func New(doc *Document, viewport int, opts ...Option) *Engine {
	if doc == nil {
		doc = NewDocument()
	}
	e := &Engine{
		doc:       doc,
		viewport:  max(1, viewport),
		listeners: map[int]func(deck.RenderEvent){},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

func (e *Engine) Document() *Document { return e.doc }

func (e *Engine) ScrollTop() float64 { return e.top }

func (e *Engine) ViewportHeight() float64 { return float64(e.viewport) }

// MaxScrollTop is the largest valid scroll position.
func (e *Engine) MaxScrollTop() float64 {
	return float64(max(0, e.doc.Height()-e.viewport))
}

// SetViewport changes the viewport height and keeps the position valid.
func (e *Engine) SetViewport(h int) {
	e.viewport = max(1, h)
	e.top = e.clamp(e.top)
}

// SetScrollTop moves the viewport. immediate forces a render right away;
// otherwise the next Tick reports the move.
func (e *Engine) SetScrollTop(v float64, immediate bool) {
	e.top = e.clamp(v)
	if immediate {
		e.render(true)
	}
}

// ScrollBy performs a manual scroll of delta rows.
func (e *Engine) ScrollBy(delta float64) {
	e.top = e.clamp(e.top + delta)
}

func (e *Engine) AnimateTo(v float64, a deck.Animation) {
	ease, ok := LookupEasing(a.Easing)
	if !ok {
		e.logger.Warn("unknown easing, using linear", "easing", a.Easing)
	}
	target := e.clamp(v)
	if a.Duration <= 0 {
		e.anim = nil
		e.top = target
		return
	}
	e.anim = &animation{
		from:     e.top,
		to:       target,
		start:    e.now(),
		duration: a.Duration,
		ease:     ease,
	}
}

func (e *Engine) CancelAnimation() { e.anim = nil }

func (e *Engine) IsAnimating() bool { return e.anim != nil }

// AnimationTarget returns where the running animation ends.
func (e *Engine) AnimationTarget() (float64, bool) {
	if e.anim == nil {
		return 0, false
	}
	return e.anim.to, true
}

func (e *Engine) RelativeOffset(p deck.Panel, edge deck.Edge) float64 {
	b, ok := p.(*Block)
	if !ok {
		return 0
	}
	if edge == deck.EdgeBottom {
		return float64(b.Bottom())
	}
	return float64(b.Top())
}

func (e *Engine) Track(markers []deck.Marker) {
	e.markers = append([]deck.Marker(nil), markers...)
	e.rendered = false
}

// Resize is the layout sizer: every block becomes at least one viewport
// plus Slack rows tall.
func (e *Engine) Resize([]deck.Panel) {
	e.doc.Stretch(e.viewport + Slack)
	e.top = e.clamp(e.top)
	e.rendered = false
}

// OnRender subscribes to render events.
func (e *Engine) OnRender(fn func(deck.RenderEvent)) (unsubscribe func()) {
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

// Tick advances the running animation to now and emits a render event if
// the viewport moved. It reports whether an animation is still running.
func (e *Engine) Tick() bool {
	if a := e.anim; a != nil {
		p := float64(e.now().Sub(a.start)) / float64(a.duration)
		if p >= 1 {
			e.top = a.to
			e.anim = nil
		} else {
			e.top = a.from + (a.to-a.from)*a.ease(math.Max(0, p))
		}
	}
	e.render(false)
	return e.anim != nil
}

// Between reports, per tracked marker, whether its panel overlaps the
// viewport, edges included.
func (e *Engine) Between() []bool {
	out := make([]bool, len(e.markers))
	vpBottom := e.top + float64(e.viewport)
	for i, m := range e.markers {
		top := e.RelativeOffset(m.Panel, deck.EdgeTop)
		bottom := e.RelativeOffset(m.Panel, deck.EdgeBottom)
		out[i] = top <= vpBottom && bottom >= e.top
	}
	return out
}

// Rows returns the visible document rows starting at the scroll position.
func (e *Engine) Rows() []string {
	first := int(math.Floor(e.top))
	out := make([]string, e.viewport)
	for i := range out {
		out[i] = e.doc.Row(first + i)
	}
	return out
}

func (e *Engine) render(force bool) {
	if e.rendered && !force && e.top == e.lastTop {
		return
	}
	dir := deck.DirectionNone
	switch {
	case e.top > e.lastTop:
		dir = deck.Down
	case e.top < e.lastTop:
		dir = deck.Up
	}
	e.lastTop = e.top
	e.rendered = true

	ev := deck.RenderEvent{ScrollTop: e.top, Direction: dir, Between: e.Between()}
	for _, fn := range e.listeners {
		fn(ev)
	}
}

func (e *Engine) clamp(v float64) float64 {
	return math.Min(math.Max(0, v), e.MaxScrollTop())
}
