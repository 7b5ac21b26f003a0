package poker

import (
	rand "math/rand/v2"
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(t testing.TB, s string) HandScore {
	t.Helper()
	cards := MustParseCards(s)
	return BestHand(cards)
}

func TestCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  HandCategory
	}{
		{"AsKdJh9c7s", HighCard},
		{"AsAdJh9c7s", OnePair},
		{"AsAdJhJc7s", TwoPair},
		{"AsAdAhJc7s", ThreeOfAKind},
		{"9s8d7h6c5s", Straight},
		{"As2d3h4c5s", Straight},
		{"AsKdQhJcTs", Straight},
		{"As9s7s4s2s", Flush},
		{"AsAdAhJcJs", FullHouse},
		{"AsAdAhAcJs", FourOfAKind},
		{"9h8h7h6h5h", StraightFlush},
		{"Ad2d3d4d5d", StraightFlush},
		{"AcKcQcJcTc", RoyalFlush},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			got := score(t, tt.cards)
			assert.Equal(t, tt.want, got.Category())
			assert.Equal(t, tt.want.String(), got.Name())
		})
	}

	// one fixture per category, weakest first
	ordered := []string{"AsKdJh9c7s", "AsAdJh9c7s", "AsAdJhJc7s", "AsAdAhJc7s", "9s8d7h6c5s",
		"As9s7s4s2s", "AsAdAhJcJs", "AsAdAhAcJs", "9h8h7h6h5h", "AcKcQcJcTc"}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, score(t, ordered[i]), score(t, ordered[i-1]), "%s vs %s", ordered[i], ordered[i-1])
	}
}

func TestTiebreaks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		better, worse string
	}{
		{"pair kicker", "AsAdKh9c7s", "AhAcQh9d7d"},
		{"higher pair", "KsKdAh9c7s", "QhQcAd9d7d"},
		{"two pair top", "AsAdKhKc2s", "AhAcQdQh3s"},
		{"two pair kicker", "AsAdKhKc3s", "AhAcKdKs2s"},
		{"trips over kickers", "3s3d3h4c2s", "2c2d2hAcKs"},
		{"full house trips rank", "3s3d3h2c2s", "2c2d2hAcAs"},
		{"six high beats wheel", "6s5d4h3c2s", "As2d3h4c5s"},
		{"flush second card", "AsKs7s4s2s", "AhQh9h8h6h"},
		{"quads kicker", "9s9d9h9cAs", "9s9d9h9cKs"},
		{"high card last kicker", "AsKdJh9c7s", "AhKcJd9s6h"},
		{"steel wheel loses to six high", "6h5h4h3h2h", "5d4d3d2dAd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, w := score(t, tt.better), score(t, tt.worse)
			assert.Greater(t, b, w)
			assert.Equal(t, 1, b.Compare(w))
			assert.Equal(t, -1, w.Compare(b))
		})
	}
}

func TestTies(t *testing.T) {
	t.Parallel()
	assert.Equal(t, score(t, "AsKdJh9c7s"), score(t, "AhKcJd9s7d"))
	assert.Equal(t, score(t, "9s8d7h6c5s"), score(t, "9h8h7d6h5c"))
	assert.Equal(t, 0, score(t, "As2d3h4c5s").Compare(score(t, "Ac2c3d4h5h")))
}

func TestWheelTiebreak(t *testing.T) {
	t.Parallel()
	s := score(t, "As2d3h4c5s")
	assert.Equal(t, Straight, s.Category())
	assert.Equal(t, uint32(Five), s.Tiebreak())

	s = score(t, "AsKdQhJcTs")
	assert.Equal(t, uint32(Ace), s.Tiebreak())
}

func TestBestHand(t *testing.T) {
	t.Parallel()

	t.Run("royal flush in seven cards", func(t *testing.T) {
		s := score(t, "AhKhQhJhTh2c3d")
		assert.Equal(t, RoyalFlush, s.Category())
	})

	t.Run("six cards", func(t *testing.T) {
		s := score(t, "AsAdAh2c2s7d")
		assert.Equal(t, FullHouse, s.Category())
	})

	t.Run("picks highest straight", func(t *testing.T) {
		s := score(t, "As2d3h4c5s6d7c")
		assert.Equal(t, Straight, s.Category())
		assert.Equal(t, uint32(Seven), s.Tiebreak())
	})

	t.Run("board plays", func(t *testing.T) {
		a := score(t, "2c3d" + "AsKsQdJhTc")
		b := score(t, "4c5d" + "AsKsQdJhTc")
		assert.Equal(t, a, b)
	})

	t.Run("eight cards", func(t *testing.T) {
		s := score(t, "AhKhQhJhTh2c3d4s")
		assert.Equal(t, RoyalFlush, s.Category())
	})

	t.Run("too few cards", func(t *testing.T) {
		assert.Equal(t, NoHand, BestHand(MustParseCards("AsKs")))
		assert.Equal(t, NoHand, BestHand(nil))
	})
}

func TestScoreHandMatchesScore5(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(11, 13))
	d := NewDeck(rng)
	for i := 0; i < 20000; i++ {
		d.Reset(0)
		d.Shuffle()
		h := d.Deal(5)
		var arr [5]Card
		copy(arr[:], h)
		require.Equal(t, Score5(h[0], h[1], h[2], h[3], h[4]), ScoreHand(arr), FormatCards(h))
	}
}

// Every 5-card hand falls into exactly 7462 distinct equivalence classes.
func TestAllFiveCardHands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping exhaustive enumeration in short mode")
	}
	t.Parallel()

	classes := make(map[HandScore]struct{}, 7462)
	var hands int
	for a := Card(0); a < NumCards; a++ {
		for b := a + 1; b < NumCards; b++ {
			for c := b + 1; c < NumCards; c++ {
				for d := c + 1; d < NumCards; d++ {
					for e := d + 1; e < NumCards; e++ {
						s := Score5(a, b, c, d, e)
						if hands%97 == 0 {
							require.Equal(t, s, ScoreHand([5]Card{a, b, c, d, e}))
						}
						classes[s] = struct{}{}
						hands++
					}
				}
			}
		}
	}
	assert.Equal(t, 2598960, hands)
	assert.Len(t, classes, 7462)

	var perCategory [NumCategories]int
	for s := range classes {
		perCategory[s.Category()]++
	}
	assert.Equal(t, [NumCategories]int{1277, 2860, 858, 858, 10, 1277, 156, 156, 9, 1}, perCategory)
}

func toOracle(t testing.TB, c Card) ph.Card {
	t.Helper()
	var s ph.Suit
	switch c.Suit() {
	case Spades:
		s = ph.Spade
	case Hearts:
		s = ph.Heart
	case Diamonds:
		s = ph.Diamond
	default:
		s = ph.Club
	}
	r := ph.Rank(int(c.Rank()) + 2)
	if c.Rank() == Ace {
		r = ph.Rank(1)
	}
	card, err := ph.MakeCard(s, r)
	require.NoError(t, err)
	return card
}

func oracle7(t testing.TB, cards []Card) int16 {
	t.Helper()
	var arr [7]ph.Card
	for i, c := range cards {
		arr[i] = toOracle(t, c)
	}
	return ph.Eval7(&arr)
}

// Compares 7-card orderings against an independent evaluator.
func TestAgreesWithOracle(t *testing.T) {
	t.Parallel()

	// calibrate which oracle direction means stronger
	royal := MustParseCards("AhKhQhJhTh2c3d")
	junk := MustParseCards("7s5d4h3c2s9dJc")
	higherIsBetter := oracle7(t, royal) > oracle7(t, junk)

	rng := rand.New(rand.NewPCG(5, 8))
	d := NewDeck(rng)
	for i := 0; i < 5000; i++ {
		d.Reset(0)
		d.Shuffle()
		a := append([]Card(nil), d.Deal(7)...)
		b := append([]Card(nil), d.Deal(7)...)

		ours := BestHand(a).Compare(BestHand(b))
		oa, ob := oracle7(t, a), oracle7(t, b)
		theirs := 0
		switch {
		case oa > ob:
			theirs = 1
		case oa < ob:
			theirs = -1
		}
		if !higherIsBetter {
			theirs = -theirs
		}
		require.Equal(t, theirs, ours, "%s vs %s", FormatCards(a), FormatCards(b))
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()
	for _, cat := range AllCategories() {
		got, ok := ParseCategory(cat.String())
		require.True(t, ok)
		assert.Equal(t, cat, got)
	}
	_, ok := ParseCategory("Five of a Kind")
	assert.False(t, ok)
}

func BenchmarkScore5(b *testing.B) {
	h := MustParseCards("AsKdJh9c7s")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Score5(h[0], h[1], h[2], h[3], h[4])
	}
}

func BenchmarkBestHand7(b *testing.B) {
	h := MustParseCards("AhKhQd7c2s9h3d")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = BestHand(h)
	}
}
