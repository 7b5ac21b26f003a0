package poker

import "math/bits"

// CardSet is a set of cards stored as a bitset; bit i is Card(i).
type CardSet uint64

// NewCardSet creates a CardSet holding the given cards.
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs.Add(c)
	}
	return cs
}

// Add adds a card to the set.
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << c
}

// AddAll adds every card in cards to the set.
func (cs *CardSet) AddAll(cards []Card) {
	for _, c := range cards {
		*cs |= 1 << c
	}
}

// Remove removes a card from the set.
func (cs *CardSet) Remove(c Card) {
	*cs &^= 1 << c
}

// Contains reports whether the card is in the set.
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<c) != 0
}

// Len returns the number of cards in the set.
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}

// Union returns the cards in either set.
func (cs CardSet) Union(other CardSet) CardSet {
	return cs | other
}

// Cards returns the members in ascending order.
func (cs CardSet) Cards() []Card {
	out := make([]Card, 0, cs.Len())
	for m := uint64(cs); m != 0; m &= m - 1 {
		out = append(out, Card(bits.TrailingZeros64(m)))
	}
	return out
}
