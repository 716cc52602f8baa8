package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeDeck   = "deck"
	scopePrompt = "prompt"
)

const (
	actionNext       = "next"
	actionPrev       = "prev"
	actionJump       = "jump"
	actionLineUp     = "line_up"
	actionLineDn     = "line_down"
	actionPageUp     = "page_up"
	actionPageDn     = "page_down"
	actionTop        = "top"
	actionBottom     = "bottom"
	actionReset      = "reset_history"
	actionAutoscroll = "toggle_autoscroll"
	actionQuit       = "quit"
	actionSubmit     = "submit"
	actionCancel     = "cancel"
)

// KeyBinding ties a bubbles key binding to an action in some scopes.
// Hidden bindings still match but stay out of the footer.
type KeyBinding struct {
	key.Binding
	Action string
	Scopes []string
	Hidden bool
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func bind(action, helpKey, desc string, keys []string, scopes ...string) KeyBinding {
	return KeyBinding{
		Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc)),
		Action:  action,
		Scopes:  scopes,
	}
}

func hidden(b KeyBinding) KeyBinding {
	b.Hidden = true
	return b
}

func DefaultBindings() []KeyBinding {
	return []KeyBinding{
		bind(actionNext, "n/space", "next deck", []string{"n", " ", "right", "l"}, scopeDeck),
		bind(actionPrev, "p", "previous deck", []string{"p", "b", "left", "h"}, scopeDeck),
		bind(actionJump, "/", "jump to", []string{"/", ":"}, scopeDeck),
		bind(actionLineDn, "↓/j", "scroll", []string{"down", "j"}, scopeDeck),
		hidden(bind(actionLineUp, "↑/k", "scroll up", []string{"up", "k"}, scopeDeck)),
		hidden(bind(actionPageDn, "pgdn", "page", []string{"pgdown", "ctrl+d"}, scopeDeck)),
		hidden(bind(actionPageUp, "pgup", "page up", []string{"pgup", "ctrl+u"}, scopeDeck)),
		hidden(bind(actionTop, "home", "top", []string{"home"}, scopeDeck)),
		hidden(bind(actionBottom, "end", "bottom", []string{"end"}, scopeDeck)),
		bind(actionAutoscroll, "a", "autoscroll", []string{"a"}, scopeDeck),
		bind(actionReset, "R", "reset history", []string{"R"}, scopeDeck),
		bind(actionSubmit, "enter", "go", []string{"enter"}, scopePrompt),
		bind(actionCancel, "esc", "cancel", []string{"esc"}, scopePrompt),
		bind(actionQuit, "q", "quit", []string{"q", "ctrl+c"}, scopeDeck),
		hidden(bind(actionQuit, "ctrl+c", "quit", []string{"ctrl+c"}, scopePrompt)),
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// HelpBindings returns the visible bindings of scope for the help footer.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	var out []key.Binding
	for _, b := range r.BindingsForScope(scope) {
		if !b.Hidden {
			out = append(out, b.Binding)
		}
	}
	return out
}

// ActionFor returns the action bound to msg in scope, or "".
func (r *KeyRegistry) ActionFor(msg tea.KeyMsg, scope string) string {
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) && key.Matches(msg, b.Binding) {
			return b.Action
		}
	}
	return ""
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	return r.ActionFor(msg, scope) == action && action != ""
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
