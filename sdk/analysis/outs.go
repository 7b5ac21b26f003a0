package analysis

import (
	"slices"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

// Outs maps a hand category name to the number of unseen cards that would
// improve the hero to that category.
type Outs map[string]int

// OutsEntry is one row of Outs.
type OutsEntry struct {
	Category poker.HandCategory
	Count    int
}

// Total returns the number of improving cards.
func (o Outs) Total() int {
	n := 0
	for _, c := range o {
		n += c
	}
	return n
}

// Sorted returns the entries by count, most first, then strongest category
// first.
func (o Outs) Sorted() []OutsEntry {
	out := make([]OutsEntry, 0, len(o))
	for name, count := range o {
		cat, ok := poker.ParseCategory(name)
		if !ok {
			continue
		}
		out = append(out, OutsEntry{Category: cat, Count: count})
	}
	slices.SortFunc(out, func(a, b OutsEntry) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return int(b.Category) - int(a.Category)
	})
	return out
}

// CalcOuts counts, for every unseen card, whether adding it to the hero's
// cards and the board lifts the best hand into a higher category. It is
// exhaustive over the unseen cards and is meaningful with one to four board
// cards.
func CalcOuts(hole [2]poker.Card, board []poker.Card) Outs {
	cards := make([]poker.Card, 0, len(board)+3)
	cards = append(cards, hole[0], hole[1])
	cards = append(cards, board...)
	known := poker.NewCardSet(cards...)

	// NoHand reads as high card, so a four-card start counts from there
	current := poker.BestHand(cards).Category()

	outs := Outs{}
	cards = append(cards, 0)
	last := len(cards) - 1
	for c := poker.Card(0); c < poker.NumCards; c++ {
		if known.Contains(c) {
			continue
		}
		cards[last] = c
		score := poker.BestHand(cards)
		if score == poker.NoHand {
			continue
		}
		if cat := score.Category(); cat > current {
			outs[cat.String()]++
		}
	}
	return outs
}
