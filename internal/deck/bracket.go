package deck

// Bracket is the ordered set of boundaries currently straddling the
// viewport. Only sizes 1 and 2 (adjacent) describe a navigation state.
type Bracket struct {
	members []Boundary
}

// NewBracket builds a bracket from boundaries in ascending index order.
func NewBracket(members ...Boundary) Bracket {
	return Bracket{members: append([]Boundary(nil), members...)}
}

func (b Bracket) Len() int { return len(b.members) }

func (b Bracket) Members() []Boundary { return append([]Boundary(nil), b.members...) }

// At returns member i of the bracket (0 is the lower index).
func (b Bracket) At(i int) (Boundary, bool) {
	if i < 0 || i >= len(b.members) {
		return Boundary{}, false
	}
	return b.members[i], true
}

// Defined reports whether the bracket is a valid navigation state.
func (b Bracket) Defined() bool {
	switch len(b.members) {
	case 1:
		return true
	case 2:
		return b.members[1].Index == b.members[0].Index+1
	default:
		return false
	}
}

// Tracker keeps the active bracket in step with the scroller's between
// signal. It does no geometry of its own.
type Tracker struct {
	registry *Registry
	active   Bracket
}

func NewTracker(r *Registry) *Tracker {
	return &Tracker{registry: r}
}

// Observe replaces bracket membership from a render event. Signals for
// indices outside the registry are ignored.
func (t *Tracker) Observe(ev RenderEvent) {
	members := make([]Boundary, 0, 2)
	for i, between := range ev.Between {
		if !between {
			continue
		}
		if b, ok := t.registry.At(i); ok {
			members = append(members, b)
		}
	}
	t.active = Bracket{members: members}
}

func (t *Tracker) Active() Bracket { return t.active }

// Reset empties the bracket.
func (t *Tracker) Reset() { t.active = Bracket{} }
