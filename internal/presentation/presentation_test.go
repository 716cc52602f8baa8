package presentation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTextSplitsOnSeparators(t *testing.T) {
	text := strings.Join([]string{
		"# Welcome {#intro}",
		"",
		"Hello there.",
		"---",
		"# Agenda",
		"- one",
		"- two",
		"---",
		"",
		"---",
		"no heading here",
	}, "\n")

	p, err := ParseText(text)
	require.NoError(t, err)
	require.Len(t, p.Slides, 3, "empty sections are dropped")

	require.Equal(t, Slide{ID: "intro", Title: "Welcome", Body: "Hello there."}, p.Slides[0])
	require.Equal(t, Slide{Title: "Agenda", Body: "- one\n- two"}, p.Slides[1])
	require.Equal(t, Slide{Body: "no heading here"}, p.Slides[2])
}

func TestParseTextRejectsEmpty(t *testing.T) {
	_, err := ParseText("---\n\n---\n")
	require.Error(t, err)
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
title = "Quarterly"

[[deck]]
id = "#cover"
title = " Cover "
body = "Q3 results"

[[deck]]
title = "Numbers"
body = """
Revenue up.
Costs down."""
`)
	p, err := ParseTOML(data)
	require.NoError(t, err)
	require.Equal(t, "Quarterly", p.Title)
	require.Len(t, p.Slides, 2)
	require.Equal(t, "cover", p.Slides[0].ID)
	require.Equal(t, "Cover", p.Slides[0].Title)
	require.Equal(t, "", p.Slides[1].ID)
	require.Contains(t, p.Slides[1].Body, "Costs down.")

	_, err = ParseTOML([]byte(`title = "empty"`))
	require.Error(t, err)
	_, err = ParseTOML([]byte(`[[deck`))
	require.Error(t, err)
}

func TestLoadPicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "talk.md")
	require.NoError(t, os.WriteFile(txt, []byte("# A\nbody\n---\n# B\n"), 0o644))
	p, err := Load(txt)
	require.NoError(t, err)
	require.Equal(t, "talk", p.Title)
	require.Equal(t, txt, p.Path)
	require.Len(t, p.Slides, 2)

	tml := filepath.Join(dir, "talk.toml")
	require.NoError(t, os.WriteFile(tml, []byte("[[deck]]\nbody = \"x\"\n"), 0o644))
	p, err = Load(tml)
	require.NoError(t, err)
	require.Len(t, p.Slides, 1)

	_, err = Load(filepath.Join(dir, "missing.md"))
	require.Error(t, err)
}

func TestBlocksWrapBodies(t *testing.T) {
	p := Presentation{Slides: []Slide{
		{ID: "a", Title: "Title", Body: "one two three four"},
		{Body: "solo"},
	}}
	blocks := p.Blocks(9)
	require.Len(t, blocks, 2)
	require.Equal(t, "a", blocks[0].ID())
	require.Equal(t, []string{"Title", "", "one two", "three", "four"}, blocks[0].Lines)
	require.Equal(t, "", blocks[1].ID())
	require.Equal(t, []string{"solo"}, blocks[1].Lines)
}

func TestSuggest(t *testing.T) {
	ids := []string{"intro", "agenda", "deck-2", "summary"}

	got, ok := Suggest("#intor", ids)
	require.True(t, ok)
	require.Equal(t, "intro", got)

	got, ok = Suggest("summry", ids)
	require.True(t, ok)
	require.Equal(t, "summary", got)

	_, ok = Suggest("completely-unrelated", ids)
	require.False(t, ok)
	_, ok = Suggest("", ids)
	require.False(t, ok)
	_, ok = Suggest("x", nil)
	require.False(t, ok)
}
