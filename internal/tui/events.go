package tui

import (
	"github.com/jask/decks/internal/deck"
	"github.com/jask/decks/internal/scroller"
)

// events is the deck.EventSource of the terminal host: render events come
// from the engine, keys and resizes from Update.
type events struct {
	engine *scroller.Engine
	nextID int
	keys   map[int]func(deck.Key)
	resize map[int]func()
}

func newEvents(e *scroller.Engine) *events {
	return &events{engine: e, keys: map[int]func(deck.Key){}, resize: map[int]func(){}}
}

func (ev *events) OnRender(fn func(deck.RenderEvent)) func() {
	return ev.engine.OnRender(fn)
}

func (ev *events) OnKey(fn func(deck.Key)) func() {
	id := ev.id()
	ev.keys[id] = fn
	return func() { delete(ev.keys, id) }
}

func (ev *events) OnResize(fn func()) func() {
	id := ev.id()
	ev.resize[id] = fn
	return func() { delete(ev.resize, id) }
}

func (ev *events) key(k deck.Key) {
	for _, fn := range ev.keys {
		fn(k)
	}
}

func (ev *events) resized() {
	for _, fn := range ev.resize {
		fn()
	}
}

func (ev *events) id() int {
	ev.nextID++
	return ev.nextID
}
