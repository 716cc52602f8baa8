// Package deck contains the navigation core for full-viewport deck panels.
//
// Allowed here:
// - the deck registry, navigation intents and their resolution
// - the active bracket derived from the scroller's between-viewport signal
// - the auto-snap state machine and the session that ties them together
//
// Not allowed here:
// - geometry computation beyond reading offsets from the Scroller
// - animation, easing or rendering (see package scroller and package tui)
package deck
