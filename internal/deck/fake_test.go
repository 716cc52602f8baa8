package deck

import "fmt"

type testPanel struct {
	id     string
	top    float64
	bottom float64
}

func (p *testPanel) ID() string      { return p.id }
func (p *testPanel) SetID(id string) { p.id = id }
func (p *testPanel) String() string  { return p.id }

// stackPanels lays out n panels of the given height with ids from ids
// (empty string means no id).
func stackPanels(height float64, ids ...string) []Panel {
	out := make([]Panel, len(ids))
	for i, id := range ids {
		out[i] = &testPanel{id: id, top: float64(i) * height, bottom: float64(i+1) * height}
	}
	return out
}

type fakeScroller struct {
	top       float64
	height    float64
	animating bool
	calls     []string
	markers   []Marker
}

func newFakeScroller(height float64) *fakeScroller {
	return &fakeScroller{height: height}
}

func (f *fakeScroller) ScrollTop() float64      { return f.top }
func (f *fakeScroller) ViewportHeight() float64 { return f.height }
func (f *fakeScroller) IsAnimating() bool       { return f.animating }

func (f *fakeScroller) SetScrollTop(v float64, immediate bool) {
	f.calls = append(f.calls, fmt.Sprintf("set %.0f %t", v, immediate))
	f.top = v
}

func (f *fakeScroller) AnimateTo(v float64, a Animation) {
	f.calls = append(f.calls, fmt.Sprintf("animate %.0f %s %s", v, a.Duration, a.Easing))
	f.animating = true
}

func (f *fakeScroller) CancelAnimation() {
	f.calls = append(f.calls, "cancel")
	f.animating = false
}

func (f *fakeScroller) RelativeOffset(p Panel, e Edge) float64 {
	tp := p.(*testPanel)
	if e == EdgeBottom {
		return tp.bottom
	}
	return tp.top
}

func (f *fakeScroller) Track(markers []Marker) {
	f.markers = markers
}

// between computes the inclusive overlap signal the way the engine does.
func (f *fakeScroller) between() []bool {
	out := make([]bool, len(f.markers))
	for i, m := range f.markers {
		tp := m.Panel.(*testPanel)
		out[i] = tp.top <= f.top+f.height && tp.bottom >= f.top
	}
	return out
}

func (f *fakeScroller) render(dir Direction) RenderEvent {
	return RenderEvent{ScrollTop: f.top, Direction: dir, Between: f.between()}
}

type fakeSource struct {
	render []func(RenderEvent)
	key    []func(Key)
	resize []func()
	unsubs int
}

func (s *fakeSource) OnRender(fn func(RenderEvent)) func() {
	s.render = append(s.render, fn)
	return func() { s.render = nil; s.unsubs++ }
}

func (s *fakeSource) OnKey(fn func(Key)) func() {
	s.key = append(s.key, fn)
	return func() { s.key = nil; s.unsubs++ }
}

func (s *fakeSource) OnResize(fn func()) func() {
	s.resize = append(s.resize, fn)
	return func() { s.resize = nil; s.unsubs++ }
}

func (s *fakeSource) emitRender(ev RenderEvent) {
	for _, fn := range s.render {
		fn(ev)
	}
}

func (s *fakeSource) emitKey(k Key) {
	for _, fn := range s.key {
		fn(k)
	}
}

var defaultAnim = fmt.Sprintf("%s %s", DefaultAnimationDuration, DefaultEasing)
