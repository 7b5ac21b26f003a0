// Package analysis provides poker hand analysis tools including ranges,
// equity simulation and outs counting.
package analysis

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

// ErrUnrecognized is returned by MustParseRange helpers and config validation
// when range notation contains tokens that could not be expanded.
var ErrUnrecognized = errors.New("unrecognized range tokens")

// Combo is one concrete two-card holding, stored lower card id first.
type Combo [2]poker.Card

// NewCombo returns the canonical combo for two distinct cards.
func NewCombo(a, b poker.Card) Combo {
	if b < a {
		a, b = b, a
	}
	return Combo{a, b}
}

// Contains reports whether card is one of the combo's cards.
func (c Combo) Contains(card poker.Card) bool {
	return c[0] == card || c[1] == card
}

// Cards returns both cards, higher card first.
func (c Combo) Cards() []poker.Card {
	return []poker.Card{c[1], c[0]}
}

// CardSet returns the combo as a card set.
func (c Combo) CardSet() poker.CardSet {
	return poker.NewCardSet(c[0], c[1])
}

// Class returns the starting-hand class of the combo.
func (c Combo) Class() poker.HoleCards {
	return poker.ClassifyHoleCards(c[0], c[1])
}

// String returns the combo higher card first, e.g. "AsKs".
func (c Combo) String() string {
	return c[1].String() + c[0].String()
}

// RangeResult is the outcome of parsing range notation. Combos is sorted and
// free of duplicates; Unrecognized holds every token that could not be
// expanded, upper-cased.
type RangeResult struct {
	Combos       []Combo
	Unrecognized []string
}

// Size returns the number of combos in the range.
func (r RangeResult) Size() int {
	return len(r.Combos)
}

// OK reports whether every token was recognized.
func (r RangeResult) OK() bool {
	return len(r.Unrecognized) == 0
}

// Contains reports whether the two cards, in either order, are in the range.
func (r RangeResult) Contains(a, b poker.Card) bool {
	_, found := slices.BinarySearchFunc(r.Combos, NewCombo(a, b), compareCombos)
	return found
}

// Err returns an error naming the unrecognized tokens, or nil.
func (r RangeResult) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnrecognized, strings.Join(r.Unrecognized, ", "))
}

// comboSet dedupes combos; iterating it in index order yields sorted combos.
type comboSet [poker.NumCards][poker.NumCards]bool

func (s *comboSet) add(a, b poker.Card) {
	c := NewCombo(a, b)
	s[c[0]][c[1]] = true
}

func (s *comboSet) combos() []Combo {
	var out []Combo
	for a := range poker.NumCards {
		for b := a + 1; b < poker.NumCards; b++ {
			if s[a][b] {
				out = append(out, Combo{poker.Card(a), poker.Card(b)})
			}
		}
	}
	return out
}

// ParseRange expands standard range notation into concrete combos.
//
// Tokens are separated by commas or whitespace and are case-insensitive:
// a two-rank body ("AK", "99"), an optional S or O suffix, and an optional
// trailing +. "99+" is every pair from nines to aces; "ATo+" slides the low
// rank up to one below the high rank. A suffix on a pair is ignored. Bad
// tokens are collected in Unrecognized and never stop the parse.
func ParseRange(text string) RangeResult {
	var result RangeResult
	tokens := strings.FieldsFunc(strings.ToUpper(text), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return result
	}

	var set comboSet
	for _, tok := range tokens {
		if !expandToken(tok, &set) {
			result.Unrecognized = append(result.Unrecognized, tok)
		}
	}
	result.Combos = set.combos()
	return result
}

// MustParseRange is like ParseRange but panics if any token is unrecognized.
func MustParseRange(text string) RangeResult {
	r := ParseRange(text)
	if err := r.Err(); err != nil {
		panic(err)
	}
	return r
}

func expandToken(tok string, set *comboSet) bool {
	body, plus := strings.CutSuffix(tok, "+")

	suited, offsuit := true, true
	if b, ok := strings.CutSuffix(body, "S"); ok {
		body, offsuit = b, false
	} else if b, ok := strings.CutSuffix(body, "O"); ok {
		body, suited = b, false
	}
	if len(body) != 2 {
		return false
	}

	r1, ok1 := poker.ParseRank(body[0])
	r2, ok2 := poker.ParseRank(body[1])
	if !ok1 || !ok2 {
		return false
	}
	hi, lo := max(r1, r2), min(r1, r2)

	if hi == lo {
		end := lo
		if plus {
			end = poker.Ace
		}
		for r := lo; r <= end; r++ {
			addPair(set, r)
		}
		return true
	}

	end := lo
	if plus {
		end = hi - 1
	}
	for r := lo; r <= end; r++ {
		if suited {
			addSuited(set, hi, r)
		}
		if offsuit {
			addOffsuit(set, hi, r)
		}
	}
	return true
}

// addPair adds all 6 combinations of a pocket pair.
func addPair(set *comboSet, r poker.Rank) {
	for s1 := poker.Suit(0); s1 < poker.NumSuits; s1++ {
		for s2 := s1 + 1; s2 < poker.NumSuits; s2++ {
			set.add(poker.NewCard(r, s1), poker.NewCard(r, s2))
		}
	}
}

// addSuited adds all 4 suited combinations.
func addSuited(set *comboSet, hi, lo poker.Rank) {
	for s := poker.Suit(0); s < poker.NumSuits; s++ {
		set.add(poker.NewCard(hi, s), poker.NewCard(lo, s))
	}
}

// addOffsuit adds all 12 offsuit combinations.
func addOffsuit(set *comboSet, hi, lo poker.Rank) {
	for s1 := poker.Suit(0); s1 < poker.NumSuits; s1++ {
		for s2 := poker.Suit(0); s2 < poker.NumSuits; s2++ {
			if s1 != s2 {
				set.add(poker.NewCard(hi, s1), poker.NewCard(lo, s2))
			}
		}
	}
}

// FilterCombos returns the combos that share no card with blockers. The
// input slice is not modified.
func FilterCombos(combos []Combo, blockers poker.CardSet) []Combo {
	out := make([]Combo, 0, len(combos))
	for _, c := range combos {
		if blockers.Contains(c[0]) || blockers.Contains(c[1]) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func compareCombos(a, b Combo) int {
	if a[0] != b[0] {
		return int(a[0]) - int(b[0])
	}
	return int(a[1]) - int(b[1])
}
