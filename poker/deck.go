package poker

import (
	rand "math/rand/v2"
)

// Deck is a fixed-capacity deck. Dealing returns views into the backing
// array, so a Deck can be reset and reused without allocating.
type Deck struct {
	cards [NumCards]Card
	size  int
	next  int
	rng   *rand.Rand
}

// NewDeck creates a full 52-card deck shuffled with rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset(0)
	d.Shuffle()
	return d
}

// Reset refills the deck, in id order, with every card not in excluded.
// It does not shuffle.
func (d *Deck) Reset(excluded CardSet) {
	n := 0
	for c := Card(0); c < NumCards; c++ {
		if !excluded.Contains(c) {
			d.cards[n] = c
			n++
		}
	}
	d.size = n
	d.next = 0
}

// Shuffle permutes the undealt cards uniformly (Fisher-Yates) and rewinds
// the deal position to the top.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := d.size - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck. The returned slice aliases the deck and
// is only valid until the next Reset or Shuffle. It returns nil if fewer than
// n cards remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > d.size {
		return nil
	}
	cards := d.cards[d.next : d.next+n : d.next+n]
	d.next += n
	return cards
}

// DealOne deals a single card. ok is false when the deck is empty.
func (d *Deck) DealOne() (Card, bool) {
	if d.next >= d.size {
		return 0, false
	}
	c := d.cards[d.next]
	d.next++
	return c, true
}

// CardsRemaining returns the number of undealt cards.
func (d *Deck) CardsRemaining() int {
	return d.size - d.next
}

// Cards returns the undealt cards.
func (d *Deck) Cards() []Card {
	return d.cards[d.next:d.size:d.size]
}
