package deck

import "fmt"

// Resolve picks the boundary an intent targets given the active bracket.
// It reads no geometry; callers turn the result into a coordinate with
// Boundary.Target.
func Resolve(intent Intent, bracket Bracket, reg *Registry) (Boundary, error) {
	switch in := intent.(type) {
	case ToAnchor:
		if b, ok := reg.Lookup(in.ID); ok {
			return b, nil
		}
		if in.Fallback == DirectionNone {
			return Boundary{}, fmt.Errorf("resolve #%s: %w", in.ID, ErrUnknownAnchor)
		}
		return step(in.Fallback, bracket, reg)
	case Step:
		return step(in.Direction, bracket, reg)
	case nil:
		return Boundary{}, fmt.Errorf("resolve: empty intent: %w", ErrUndefinedBracket)
	default:
		return Boundary{}, fmt.Errorf("resolve: unsupported intent %T", intent)
	}
}

func step(dir Direction, bracket Bracket, reg *Registry) (Boundary, error) {
	if dir != Down && dir != Up {
		return Boundary{}, fmt.Errorf("resolve step %s: %w", dir, ErrUndefinedBracket)
	}
	if !bracket.Defined() {
		return Boundary{}, fmt.Errorf("resolve step %s with %d active: %w", dir, bracket.Len(), ErrUndefinedBracket)
	}

	if bracket.Len() == 1 {
		cur, _ := bracket.At(0)
		next := cur.Index + 1
		if dir == Up {
			next = cur.Index - 1
		}
		b, ok := reg.At(next)
		if !ok {
			return Boundary{}, fmt.Errorf("resolve step %s from %s: %w", dir, cur.Anchor(), ErrNoFurtherDeck)
		}
		return b, nil
	}

	member := 1
	if dir == Up {
		member = 0
	}
	b, _ := bracket.At(member)
	return b, nil
}
