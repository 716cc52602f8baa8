package deck

import "errors"

var (
	// ErrNoScroller is reported when a session is initialized without a
	// scroller engine. The session stays inert.
	ErrNoScroller = errors.New("deck: scroller not available")
	// ErrNoClock is logged when a session has no clock for debouncing.
	// Auto-snap is turned off; navigation still works.
	ErrNoClock = errors.New("deck: no clock for auto-snap")
	// ErrNotInitialized is returned by operations on a session that has not
	// been initialized successfully.
	ErrNotInitialized = errors.New("deck: session not initialized")
	// ErrUnknownAnchor means an anchor is not registered and no fallback
	// direction was supplied.
	ErrUnknownAnchor = errors.New("deck: unknown anchor")
	// ErrNoFurtherDeck means a step would leave the deck list.
	ErrNoFurtherDeck = errors.New("deck: no further deck")
	// ErrUndefinedBracket means the active bracket does not describe a
	// navigation state: empty, too large, or not adjacent.
	ErrUndefinedBracket = errors.New("deck: no defined navigation state")
)
