// Package tui hosts a deck session in a bubbletea program: the scroll engine
// renders the presentation, keys and wheel events drive it, and debounce
// timers are delivered back through Update.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/decks/internal/clock"
	"github.com/jask/decks/internal/config"
	"github.com/jask/decks/internal/deck"
	"github.com/jask/decks/internal/presentation"
	"github.com/jask/decks/internal/scroller"
)

// chromeRows is the header, status bar and footer.
const chromeRows = 3

// History records deck visits.
type History interface {
	Visit(ctx context.Context, presentationID, deckID string, deckIndex int, via string) (bool, error)
	Counts(ctx context.Context, presentationID string) (map[string]int, error)
	Reset(ctx context.Context, presentationID string) error
}

type Option func(*Model)

func WithLogger(l *slog.Logger) Option { return func(m *Model) { m.logger = l } }

// WithClock replaces the Update-loop clock, mostly for tests.
func WithClock(c clock.Clock) Option { return func(m *Model) { m.clock = c } }

// WithNow overrides the time source of the scroll animations.
func WithNow(now func() time.Time) Option { return func(m *Model) { m.now = now } }

// WithHistory enables visit recording for presentationID.
func WithHistory(h History, presentationID string) Option {
	return func(m *Model) {
		m.history = h
		m.presentationID = presentationID
	}
}

// WithResume opens the presentation on deck id instead of the first deck.
func WithResume(id string) Option { return func(m *Model) { m.resume = id } }

// WithConfig lets settings toggled in the UI be written back with save.
func WithConfig(cfg config.Config, save func(config.Config) error) Option {
	return func(m *Model) {
		m.cfg = &cfg
		m.saveConfig = save
	}
}

type Model struct {
	ctx     context.Context
	pres    presentation.Presentation
	options deck.Options
	keys    *KeyRegistry
	help    help.Model
	logger  *slog.Logger

	cfg        *config.Config
	saveConfig func(config.Config) error

	history        History
	presentationID string
	resume         string
	counts         map[string]int

	loop    *LoopClock
	clock   clock.Clock
	now     func() time.Time
	engine  *scroller.Engine
	events  *events
	session *deck.Session
	detach  func()

	width     int
	height    int
	prompt    textinput.Model
	prompting bool
	status    string
	statusErr bool
	via       string
	visited   string
	ticking   bool
	quitting  bool
}

func New(ctx context.Context, pres presentation.Presentation, opts deck.Options, options ...Option) *Model {
	ti := textinput.New()
	ti.Prompt = "jump to #"
	ti.Placeholder = "deck id or number"
	ti.CharLimit = 64

	m := &Model{
		ctx:     ctx,
		pres:    pres,
		options: opts,
		keys:    NewKeyRegistry(DefaultBindings()),
		help:    newHelp(),
		loop:    &LoopClock{},
		now:     time.Now,
		prompt:  ti,
		status:  "Ready",
		via:     "open",
	}
	for _, opt := range options {
		opt(m)
	}
	if m.clock == nil {
		m.clock = m.loop
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.cfg != nil && m.saveConfig == nil {
		m.saveConfig = config.Save
	}
	return m
}

// SetSend connects the loop clock to the running program. It must be
// called before Run so snap timers can reach Update.
func (m *Model) SetSend(send func(tea.Msg)) { m.loop.send = send }

// Session exposes the deck session once the first window size arrived.
func (m *Model) Session() *deck.Session { return m.session }

func (m *Model) Engine() *scroller.Engine { return m.engine }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.prompt.Width = max(1, msg.Width-len(m.prompt.Prompt)-1)
		return m, m.layout()
	case timerMsg:
		if msg.run != nil {
			msg.run()
		}
		if m.engine != nil && m.engine.IsAnimating() {
			m.via = "snap"
		}
		return m, m.settle()
	case frameMsg:
		if m.engine == nil {
			m.ticking = false
			return m, nil
		}
		if m.engine.Tick() {
			return m, frameCmd()
		}
		m.ticking = false
		return m, m.recordVisit()
	case visitMsg:
		if msg.Err != nil {
			m.logger.Warn("record visit", "deck", msg.DeckID, "error", msg.Err)
			m.status, m.statusErr = "history: "+msg.Err.Error(), true
			return m, nil
		}
		m.logger.Debug("visit", "deck", msg.DeckID, "recorded", msg.Recorded)
		if msg.Counts != nil {
			m.counts = msg.Counts
		}
		return m, nil
	case historyResetMsg:
		if msg.Err != nil {
			m.logger.Warn("reset history", "error", msg.Err)
			m.status, m.statusErr = "history: "+msg.Err.Error(), true
			return m, nil
		}
		m.counts = nil
		m.visited = ""
		m.via = "reset"
		m.status, m.statusErr = "History cleared", false
		return m, m.recordVisit()
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if m.prompting {
			return m, m.updatePrompt(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) viewportRows() int { return max(1, m.height-chromeRows) }

// layout builds the engine and session on the first size message and
// rewraps the decks on later ones.
func (m *Model) layout() tea.Cmd {
	if m.engine == nil {
		return m.start()
	}
	cur, hadCurrent := m.session.Current()
	for i, b := range m.engine.Document().Blocks() {
		b.Lines = m.pres.SlideLines(i, m.width)
	}
	m.engine.SetViewport(m.viewportRows())
	m.events.resized()
	if hadCurrent {
		m.session.NavigateTo(deck.ToAnchor{ID: cur.ID}, true)
	}
	return m.settle()
}

func (m *Model) start() tea.Cmd {
	blocks := m.pres.Blocks(m.width)
	panels := make([]deck.Panel, len(blocks))
	for i, b := range blocks {
		panels[i] = b
	}
	m.engine = scroller.New(scroller.NewDocument(blocks...), m.viewportRows(),
		scroller.WithNow(m.now),
		scroller.WithLogger(m.logger),
	)
	m.events = newEvents(m.engine)
	m.session = deck.NewSession(m.engine,
		slideLocator(panels, m.logger),
		deck.WithClock(m.clock),
		deck.WithLogger(m.logger),
		deck.WithSizer(m.engine),
	)
	m.session.Initialize(m.options)
	m.detach = m.session.Attach(m.events)
	m.engine.Tick()

	if m.resume != "" {
		if m.session.NavigateTo(deck.ToAnchor{ID: m.resume}, true) {
			m.via = "resume"
		} else {
			m.logger.Info("resume deck missing", "deck", m.resume)
		}
	}
	return m.settle()
}

// slideLocator hands every slide to the session. A presentation is one flat
// list of decks, so there is nothing for a selector to pick between; a
// configured non-default selector is logged and otherwise ignored.
func slideLocator(panels []deck.Panel, logger *slog.Logger) deck.Locator {
	return deck.LocatorFunc(func(selector string) []deck.Panel {
		if selector != deck.DefaultDecksSelector {
			logger.Info("deck selector ignored, using every slide", "selector", selector, "slides", len(panels))
		}
		return panels
	})
}

// settle starts the frame loop while an animation runs and records the
// current deck once the view is still.
func (m *Model) settle() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	if m.engine.IsAnimating() {
		if m.ticking {
			return nil
		}
		m.ticking = true
		return frameCmd()
	}
	m.engine.Tick()
	return m.recordVisit()
}

func (m *Model) recordVisit() tea.Cmd {
	cur, ok := m.session.Current()
	if !ok || cur.ID == m.visited {
		return nil
	}
	m.visited = cur.ID
	if m.history == nil || m.presentationID == "" {
		return nil
	}
	h, ctx, pid, via := m.history, m.ctx, m.presentationID, m.via
	return func() tea.Msg {
		recorded, err := h.Visit(ctx, pid, cur.ID, cur.Index, via)
		if err != nil {
			return visitMsg{DeckID: cur.ID, Err: err}
		}
		counts, err := h.Counts(ctx, pid)
		return visitMsg{DeckID: cur.ID, Recorded: recorded, Counts: counts, Err: err}
	}
}

func (m *Model) resetHistory() tea.Cmd {
	if m.history == nil || m.presentationID == "" {
		m.status, m.statusErr = "History is off", true
		return nil
	}
	h, ctx, pid := m.history, m.ctx, m.presentationID
	return func() tea.Msg {
		return historyResetMsg{Err: h.Reset(ctx, pid)}
	}
}

// toggleAutoscroll flips auto-snap in the saved config. The running session
// keeps its settings.
func (m *Model) toggleAutoscroll() tea.Cmd {
	if m.cfg == nil {
		m.status, m.statusErr = "No config loaded", true
		return nil
	}
	next := *m.cfg
	next.Deck.Autoscroll = !next.Deck.Autoscroll
	if err := m.saveConfig(next); err != nil {
		m.logger.Warn("save config", "error", err)
		m.status, m.statusErr = "config: "+err.Error(), true
		return nil
	}
	*m.cfg = next
	state := "off"
	if next.Deck.Autoscroll {
		state = "on"
	}
	m.status, m.statusErr = fmt.Sprintf("Autoscroll %s saved to config (restart to apply)", state), false
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	action := m.keys.ActionFor(msg, scopeDeck)
	if action == actionQuit {
		m.quitting = true
		if m.detach != nil {
			m.detach()
		}
		return tea.Quit
	}
	if m.session == nil {
		return nil
	}
	switch action {
	case actionNext:
		return m.navigate(deck.Next(), "key")
	case actionPrev:
		return m.navigate(deck.Previous(), "key")
	case actionJump:
		m.prompting = true
		m.prompt.SetValue("")
		return m.prompt.Focus()
	case actionLineDn, actionLineUp, actionPageDn, actionPageUp, actionTop, actionBottom:
		return m.scroll(action)
	case actionReset:
		return m.resetHistory()
	case actionAutoscroll:
		return m.toggleAutoscroll()
	}
	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= 9 {
		return m.jumpToIndex(n - 1)
	}
	return nil
}

func (m *Model) navigate(intent deck.Intent, via string) tea.Cmd {
	if err := m.session.Navigate(intent, false); err != nil {
		m.logger.Debug("navigate", "error", err)
		m.status, m.statusErr = navigateStatus(err), false
		return nil
	}
	m.via = via
	m.status, m.statusErr = "", false
	return m.settle()
}

func navigateStatus(err error) string {
	switch {
	case errors.Is(err, deck.ErrNoFurtherDeck):
		return "No further deck"
	default:
		return err.Error()
	}
}

func (m *Model) jumpToIndex(i int) tea.Cmd {
	b, ok := m.session.Registry().At(i)
	if !ok {
		m.status, m.statusErr = fmt.Sprintf("No deck %d", i+1), true
		return nil
	}
	return m.navigate(deck.ToAnchor{ID: b.ID}, "jump")
}

// scrollKey is the host key a scroll action stands for.
var scrollKey = map[string]deck.Key{
	actionLineDn: "down",
	actionLineUp: "up",
	actionPageDn: "pgdown",
	actionPageUp: "pgup",
	actionTop:    "home",
	actionBottom: "end",
}

func (m *Model) scroll(action string) tea.Cmd {
	m.events.key(scrollKey[action])
	page := float64(max(1, m.viewportRows()-1))
	switch action {
	case actionLineDn:
		m.engine.ScrollBy(1)
	case actionLineUp:
		m.engine.ScrollBy(-1)
	case actionPageDn:
		m.engine.ScrollBy(page)
	case actionPageUp:
		m.engine.ScrollBy(-page)
	case actionTop:
		m.engine.SetScrollTop(0, false)
	case actionBottom:
		m.engine.SetScrollTop(m.engine.MaxScrollTop(), false)
	}
	m.via = "scroll"
	m.engine.Tick()
	return m.recordVisit()
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.engine == nil || m.prompting {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return m.scroll(actionLineDn)
	case tea.MouseButtonWheelUp:
		return m.scroll(actionLineUp)
	}
	return nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch m.keys.ActionFor(msg, scopePrompt) {
	case actionCancel:
		m.closePrompt()
		return nil
	case actionQuit:
		m.closePrompt()
		return m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	case actionSubmit:
		value := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		return m.submitJump(value)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
}

func (m *Model) submitJump(value string) tea.Cmd {
	if value == "" {
		return nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return m.jumpToIndex(n - 1)
	}
	intent := deck.ParseIntent(value)
	if err := m.session.Navigate(intent, false); err != nil {
		text := fmt.Sprintf("No deck #%s", strings.TrimPrefix(value, "#"))
		if s, ok := presentation.Suggest(value, m.session.Registry().IDs()); ok {
			text += fmt.Sprintf(", did you mean #%s?", s)
		}
		m.status, m.statusErr = text, true
		return nil
	}
	m.via = "jump"
	m.status, m.statusErr = "", false
	return m.settle()
}
