package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.engine == nil {
		return "loading…"
	}
	width := max(1, m.width)
	parts := []string{renderBar(headerStyle, width, m.headerText())}
	parts = append(parts, m.renderBody(width)...)
	parts = append(parts, m.renderStatus(width), m.renderFooter(width))
	return strings.Join(parts, "\n")
}

func (m *Model) headerText() string {
	title := m.pres.Title
	cur, ok := m.session.Current()
	if !ok {
		return " " + title
	}
	pos := fmt.Sprintf("deck %d/%d #%s ", cur.Index+1, m.session.Registry().Len(), cur.ID)
	if n := m.counts[cur.ID]; n > 0 {
		pos = fmt.Sprintf("seen %d  %s", n, pos)
	}
	gap := max(1, m.width-ansi.StringWidth(title)-ansi.StringWidth(pos)-1)
	return " " + title + strings.Repeat(" ", gap) + pos
}

// renderBody draws the viewport rows. Row 0 of a deck is drawn as a rule
// and the title row is highlighted.
func (m *Model) renderBody(width int) []string {
	doc := m.engine.Document()
	first := int(math.Floor(m.engine.ScrollTop()))
	rows := make([]string, m.viewportRows())
	for i := range rows {
		y := first + i
		b, ok := doc.BlockAt(y)
		if !ok {
			rows[i] = ""
			continue
		}
		switch row := y - b.Top(); {
		case row == 0 && b.Top() > 0:
			rows[i] = edgeStyle.Render(strings.Repeat("─", width))
		case row == 1 && b.Title != "":
			rows[i] = headingStyle.Render(ansi.Truncate(b.Line(row), width, ""))
		default:
			rows[i] = bodyStyle.Render(ansi.Truncate(b.Line(row), width, ""))
		}
	}
	return rows
}

func (m *Model) renderStatus(width int) string {
	if m.prompting {
		return renderBar(statusBarStyle, width, m.prompt.View())
	}
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	if m.statusErr {
		return renderBar(statusErrBarStyle, width, msg)
	}
	return renderBar(statusBarStyle, width, msg)
}

func (m *Model) renderFooter(width int) string {
	scope := scopeDeck
	if m.prompting {
		scope = scopePrompt
	}
	m.help.Width = width
	return renderBar(footerStyle, width, m.help.ShortHelpView(m.keys.HelpBindings(scope)))
}

// renderBar draws text as one full-width row of style.
func renderBar(style lipgloss.Style, width int, text string) string {
	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "…")
	return style.Width(width).MaxWidth(width).Render(line)
}
