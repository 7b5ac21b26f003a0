package analysis

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

func TestParseRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		wantSize int
	}{
		{name: "pocket aces", notation: "AA", wantSize: 6},
		{name: "queens plus", notation: "QQ+", wantSize: 18},
		{name: "ace king suited", notation: "AKs", wantSize: 4},
		{name: "ace king offsuit", notation: "AKo", wantSize: 12},
		{name: "ace king any", notation: "AK", wantSize: 16},
		{name: "reversed ranks", notation: "KA", wantSize: 16},
		{name: "all pairs", notation: "22+", wantSize: 78},
		{name: "suited plus", notation: "AQs+", wantSize: 8},
		{name: "offsuit plus", notation: "ATo+", wantSize: 48},
		{name: "any plus", notation: "KJ+", wantSize: 32},
		{name: "lower case", notation: "aks, tt", wantSize: 10},
		{name: "whitespace only", notation: "  \t\n", wantSize: 0},
		{name: "empty", notation: "", wantSize: 0},
		{name: "duplicates collapse", notation: "AA, AA, QQ+, KK", wantSize: 18},
		{name: "overlap collapse", notation: "AK, AKs, AKo", wantSize: 16},
		{name: "pair ignores suffix", notation: "AAs", wantSize: 6},
		{name: "complex range", notation: "TT+,AJs+,KQs", wantSize: 46},
		{name: "space separated", notation: "AA KK\tQQ", wantSize: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParseRange(tt.notation)
			assert.Empty(t, r.Unrecognized)
			assert.Equal(t, tt.wantSize, r.Size())
		})
	}
}

func TestParseRangePartialFailure(t *testing.T) {
	t.Parallel()
	r := ParseRange("AA, XYZ, KK")
	assert.Equal(t, 12, r.Size())
	assert.Equal(t, []string{"XYZ"}, r.Unrecognized)
	assert.False(t, r.OK())
	assert.ErrorIs(t, r.Err(), ErrUnrecognized)

	r = ParseRange("ak+, 1A, A, AKx, AKSO, hello")
	assert.Equal(t, 16, r.Size())
	assert.Equal(t, []string{"1A", "A", "AKX", "AKSO", "HELLO"}, r.Unrecognized)
}

func TestParseRangeCombos(t *testing.T) {
	t.Parallel()
	r := ParseRange("AKs")
	want := []string{"AsKs", "AhKh", "AdKd", "AcKc"}
	got := make([]string, len(r.Combos))
	for i, c := range r.Combos {
		got[i] = c.String()
	}
	assert.ElementsMatch(t, want, got)

	for _, c := range ParseRange("22+, AKo").Combos {
		assert.Less(t, c[0], c[1], "combo %s not canonical", c)
	}
}

func TestParseRangeDeterministic(t *testing.T) {
	t.Parallel()
	a := ParseRange("55+, A8s+, ATo+, KTs+")
	b := ParseRange("KTs+, ATo+, A8s+, 55+")
	assert.Equal(t, a.Combos, b.Combos)
	assert.True(t, slices.IsSortedFunc(a.Combos, compareCombos))
}

func TestRangeContains(t *testing.T) {
	t.Parallel()
	r := MustParseRange("AA,KK,AKs")
	tests := []struct {
		cards string
		want  bool
	}{
		{"AhAs", true},
		{"KhKd", true},
		{"AhKh", true},
		{"KhAh", true},
		{"AhKd", false},
		{"QhQd", false},
	}
	for _, tt := range tests {
		c := poker.MustParseCards(tt.cards)
		assert.Equal(t, tt.want, r.Contains(c[0], c[1]), tt.cards)
	}
}

func TestMustParseRangePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { MustParseRange("AA, ZZ") })
}

func TestFilterCombos(t *testing.T) {
	t.Parallel()
	aces := ParseRange("AA").Combos
	require.Len(t, aces, 6)

	as := poker.MustParseCards("As")[0]
	filtered := FilterCombos(aces, poker.NewCardSet(as))
	assert.Len(t, filtered, 3)
	for _, c := range filtered {
		assert.False(t, c.Contains(as))
	}
	assert.Len(t, aces, 6, "input must not be modified")

	both := FilterCombos(aces, poker.NewCardSet(poker.MustParseCards("AsAh")...))
	assert.Len(t, both, 1)

	assert.Len(t, FilterCombos(aces, 0), 6)
	assert.Empty(t, FilterCombos(nil, 0))
}

func TestCombo(t *testing.T) {
	t.Parallel()
	cards := poker.MustParseCards("KdAs")
	c := NewCombo(cards[0], cards[1])
	assert.Equal(t, NewCombo(cards[1], cards[0]), c)
	assert.Equal(t, "AsKd", c.String())
	assert.Equal(t, "AKo", c.Class().Label())
	assert.Equal(t, 2, c.CardSet().Len())
	assert.Equal(t, []poker.Card{cards[1], cards[0]}, c.Cards())
}

func BenchmarkParseRange(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = ParseRange("22+, A2s+, A5o+, K9s+, KJo+, Q9s+, J9s+, T8s+, 97s+, 86s+, 75s+")
	}
}
