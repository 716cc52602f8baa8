package deck

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func registryOf(n int) *Registry {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("d%d", i)
	}
	return Build(stackPanels(100, ids...))
}

func TestResolveStepFromSingleBracket(t *testing.T) {
	for n := 1; n <= 5; n++ {
		reg := registryOf(n)
		for k := 0; k < n; k++ {
			cur, _ := reg.At(k)
			bracket := NewBracket(cur)

			got, err := Resolve(Next(), bracket, reg)
			if k+1 < n {
				require.NoError(t, err)
				require.Equal(t, k+1, got.Index)
			} else {
				require.ErrorIs(t, err, ErrNoFurtherDeck)
			}

			got, err = Resolve(Previous(), bracket, reg)
			if k > 0 {
				require.NoError(t, err)
				require.Equal(t, k-1, got.Index)
			} else {
				require.ErrorIs(t, err, ErrNoFurtherDeck)
			}
		}
	}
}

func TestResolveStepFromStraddlingBracket(t *testing.T) {
	reg := registryOf(4)
	for k := 0; k+1 < reg.Len(); k++ {
		lo, _ := reg.At(k)
		hi, _ := reg.At(k + 1)
		bracket := NewBracket(lo, hi)

		got, err := Resolve(Next(), bracket, reg)
		require.NoError(t, err)
		require.Equal(t, hi.ID, got.ID)

		got, err = Resolve(Previous(), bracket, reg)
		require.NoError(t, err)
		require.Equal(t, lo.ID, got.ID)
	}
}

func TestResolveUndefinedBrackets(t *testing.T) {
	reg := registryOf(4)
	a, _ := reg.At(0)
	b, _ := reg.At(1)
	c, _ := reg.At(2)

	cases := map[string]Bracket{
		"empty":        NewBracket(),
		"three":        NewBracket(a, b, c),
		"not adjacent": NewBracket(a, c),
	}
	for name, bracket := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Resolve(Next(), bracket, reg)
			require.ErrorIs(t, err, ErrUndefinedBracket)
			_, err = Resolve(Previous(), bracket, reg)
			require.ErrorIs(t, err, ErrUndefinedBracket)
		})
	}
}

func TestResolveAnchor(t *testing.T) {
	reg := registryOf(3)
	d1, _ := reg.At(1)

	got, err := Resolve(ToAnchor{ID: "d2"}, NewBracket(), reg)
	require.NoError(t, err, "direct lookup ignores the bracket")
	require.Equal(t, 2, got.Index)

	_, err = Resolve(ToAnchor{ID: "missing"}, NewBracket(d1), reg)
	require.ErrorIs(t, err, ErrUnknownAnchor)

	got, err = Resolve(ToAnchor{ID: "missing", Fallback: Up}, NewBracket(d1), reg)
	require.NoError(t, err)
	require.Equal(t, 0, got.Index)

	got, err = Resolve(ToAnchor{ID: "missing", Fallback: Down}, NewBracket(d1), reg)
	require.NoError(t, err)
	require.Equal(t, 2, got.Index)
}

func TestResolveNilIntent(t *testing.T) {
	_, err := Resolve(nil, NewBracket(), registryOf(1))
	require.Error(t, err)
}

func TestParseIntent(t *testing.T) {
	require.Equal(t, Step{Direction: Down}, ParseIntent("next"))
	require.Equal(t, Step{Direction: Down}, ParseIntent("down"))
	require.Equal(t, Step{Direction: Up}, ParseIntent(" previous "))
	require.Equal(t, Step{Direction: Up}, ParseIntent("up"))
	require.Equal(t, ToAnchor{ID: "intro"}, ParseIntent("#intro"))
	require.Equal(t, ToAnchor{ID: "intro"}, ParseIntent("intro"))

	require.Equal(t, Next(), StepBy(1))
	require.Equal(t, Previous(), StepBy(-1))
	require.Nil(t, StepBy(2))
}
