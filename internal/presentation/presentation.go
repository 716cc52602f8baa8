// Package presentation loads deck files and turns them into scroll blocks.
//
// Two formats are accepted: TOML with a [[deck]] table per panel, or plain
// text where a line holding only "---" separates panels. In plain text a
// heading like "# Intro {#intro}" names the panel.
package presentation

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/decks/internal/scroller"
)

// Slide is one deck panel's source content.
type Slide struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	Body  string `toml:"body"`
}

// Presentation is an ordered list of slides.
type Presentation struct {
	Title  string  `toml:"title"`
	Slides []Slide `toml:"deck"`
	Path   string  `toml:"-"`
}

var headingID = regexp.MustCompile(`^#+\s*(.*?)\s*(?:\{#([A-Za-z0-9_.:-]+)\})?\s*$`)

// Load reads a presentation from path, picking the format by extension.
func Load(path string) (Presentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Presentation{}, fmt.Errorf("read presentation: %w", err)
	}
	var p Presentation
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		p, err = ParseTOML(data)
	} else {
		p, err = ParseText(string(data))
	}
	if err != nil {
		return Presentation{}, fmt.Errorf("%s: %w", path, err)
	}
	p.Path = path
	if p.Title == "" {
		p.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// ParseTOML decodes the TOML presentation format.
func ParseTOML(data []byte) (Presentation, error) {
	var p Presentation
	if err := toml.Unmarshal(data, &p); err != nil {
		return Presentation{}, fmt.Errorf("parse presentation: %w", err)
	}
	for i := range p.Slides {
		p.Slides[i].ID = strings.TrimPrefix(strings.TrimSpace(p.Slides[i].ID), "#")
		p.Slides[i].Title = strings.TrimSpace(p.Slides[i].Title)
	}
	if len(p.Slides) == 0 {
		return Presentation{}, fmt.Errorf("no decks defined")
	}
	return p, nil
}

// ParseText splits plain text on "---" separator lines.
func ParseText(text string) (Presentation, error) {
	var (
		p       Presentation
		current []string
	)
	flush := func() {
		body := strings.Trim(strings.Join(current, "\n"), "\n")
		current = nil
		if strings.TrimSpace(body) == "" {
			return
		}
		p.Slides = append(p.Slides, slideFromText(body))
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := sc.Err(); err != nil {
		return Presentation{}, fmt.Errorf("scan presentation: %w", err)
	}
	flush()
	if len(p.Slides) == 0 {
		return Presentation{}, fmt.Errorf("no decks defined")
	}
	return p, nil
}

func slideFromText(body string) Slide {
	lines := strings.Split(body, "\n")
	first := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(first, "#") {
		return Slide{Body: body}
	}
	m := headingID.FindStringSubmatch(first)
	if m == nil {
		return Slide{Body: body}
	}
	return Slide{
		ID:    m[2],
		Title: m[1],
		Body:  strings.Trim(strings.Join(lines[1:], "\n"), "\n"),
	}
}

// Blocks lays the slides out as scroll blocks wrapped to width.
func (p Presentation) Blocks(width int) []*scroller.Block {
	out := make([]*scroller.Block, 0, len(p.Slides))
	for i, s := range p.Slides {
		out = append(out, scroller.NewBlock(s.ID, s.Title, p.SlideLines(i, width)))
	}
	return out
}

// SlideLines renders slide i wrapped to width. The title, when present, is
// the first line followed by a blank line.
func (p Presentation) SlideLines(i, width int) []string {
	if i < 0 || i >= len(p.Slides) {
		return nil
	}
	width = max(1, width)
	s := p.Slides[i]
	var lines []string
	if s.Title != "" {
		lines = append(lines, ansi.Truncate(s.Title, width, "…"), "")
	}
	if s.Body != "" {
		wrapped := ansi.Wordwrap(s.Body, width, "")
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}
	return lines
}
