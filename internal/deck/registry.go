package deck

import (
	"fmt"
	"strconv"
	"strings"
)

const synthesizedIDPrefix = "deck-"

// Boundary is the registered vertical extent of one deck panel. Offsets
// are read from the scroller on demand and never cached.
type Boundary struct {
	ID    string
	Index int
	panel Panel
}

func (b Boundary) Panel() Panel { return b.panel }

// Anchor returns the "#id" form used by markers and navigation requests.
func (b Boundary) Anchor() string { return "#" + b.ID }

func (b Boundary) Top(s Scroller) float64 { return s.RelativeOffset(b.panel, EdgeTop) }

func (b Boundary) Bottom(s Scroller) float64 { return s.RelativeOffset(b.panel, EdgeBottom) }

// Target is the scroll coordinate that lands the viewport inside the deck.
// The extra line keeps the previous deck's bottom edge out of the viewport.
func (b Boundary) Target(s Scroller) float64 { return b.Top(s) + 1 }

// Registry holds the ordered boundary list and the id lookup.
type Registry struct {
	list []Boundary
	byID map[string]int
}

// Build registers panels in document order. Panels without an identifier
// get one synthesized from their position, so rebuilding over the same
// input yields the same ids. A repeated explicit id is also replaced to
// keep keys unique.
func Build(panels []Panel) *Registry {
	r := &Registry{
		list: make([]Boundary, 0, len(panels)),
		byID: make(map[string]int, len(panels)),
	}
	for i, p := range panels {
		if p == nil {
			continue
		}
		idx := len(r.list)
		id := strings.TrimPrefix(strings.TrimSpace(p.ID()), "#")
		if _, taken := r.byID[id]; id == "" || taken {
			id = r.freeID(i)
			if t, ok := p.(Tagger); ok {
				t.SetID(id)
			}
		}
		r.list = append(r.list, Boundary{ID: id, Index: idx, panel: p})
		r.byID[id] = idx
	}
	return r
}

func (r *Registry) freeID(position int) string {
	id := synthesizedIDPrefix + strconv.Itoa(position)
	for n := 1; ; n++ {
		if _, taken := r.byID[id]; !taken {
			return id
		}
		id = synthesizedIDPrefix + strconv.Itoa(position) + "-" + strconv.Itoa(n)
	}
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.list)
}

// At returns the boundary at index i.
func (r *Registry) At(i int) (Boundary, bool) {
	if r == nil || i < 0 || i >= len(r.list) {
		return Boundary{}, false
	}
	return r.list[i], true
}

// Lookup finds a boundary by "id" or "#id".
func (r *Registry) Lookup(anchor string) (Boundary, bool) {
	if r == nil {
		return Boundary{}, false
	}
	idx, ok := r.byID[strings.TrimPrefix(strings.TrimSpace(anchor), "#")]
	if !ok {
		return Boundary{}, false
	}
	return r.list[idx], true
}

// List returns a copy of the ordered boundaries.
func (r *Registry) List() []Boundary {
	if r == nil {
		return nil
	}
	return append([]Boundary(nil), r.list...)
}

func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.list))
	for i, b := range r.list {
		out[i] = b.ID
	}
	return out
}

func (r *Registry) Panels() []Panel {
	if r == nil {
		return nil
	}
	out := make([]Panel, len(r.list))
	for i, b := range r.list {
		out[i] = b.panel
	}
	return out
}

// Markers builds the parallel marker list, one per boundary.
func (r *Registry) Markers() []Marker {
	if r == nil {
		return nil
	}
	out := make([]Marker, len(r.list))
	for i, b := range r.list {
		out[i] = Marker{Index: b.Index, Anchor: b.Anchor(), Panel: b.panel}
	}
	return out
}

// Refresh rebinds panel handles by position after the host rebuilt them.
// Identity and order are kept; the panel count must not change.
func (r *Registry) Refresh(panels []Panel) error {
	if r == nil {
		return fmt.Errorf("refresh registry: %w", ErrNotInitialized)
	}
	if len(panels) != len(r.list) {
		return fmt.Errorf("refresh registry: have %d decks, got %d panels", len(r.list), len(panels))
	}
	for i, p := range panels {
		if p == nil {
			return fmt.Errorf("refresh registry: panel %d is nil", i)
		}
	}
	for i, p := range panels {
		if t, ok := p.(Tagger); ok && strings.TrimSpace(p.ID()) == "" {
			t.SetID(r.list[i].ID)
		}
		r.list[i].panel = p
	}
	return nil
}
