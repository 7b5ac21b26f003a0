package poker

import (
	"math/bits"
)

// HandScore is the strength of a 5-card hand: category*1e8 + tiebreak.
// A higher score is a stronger hand and equal scores tie.
type HandScore uint32

// HandCategory enumerates hand categories from weakest to strongest.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// NumCategories is the number of hand categories.
const NumCategories = 10

// categoryBase separates the category from the tiebreak. 13^5 < 1e8, so a
// packed tiebreak never reaches into the category digits.
const categoryBase = 100_000_000

// NoHand is returned by BestHand for fewer than five cards. No real hand
// scores zero: the weakest high card still packs non-zero kicker ranks.
const NoHand HandScore = 0

var categoryNames = [NumCategories]string{
	"High Card",
	"One Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
	"Royal Flush",
}

// String returns the display name of the category.
func (hc HandCategory) String() string {
	if hc >= NumCategories {
		return "Unknown"
	}
	return categoryNames[hc]
}

// AllCategories returns every category, weakest first.
func AllCategories() []HandCategory {
	out := make([]HandCategory, NumCategories)
	for i := range out {
		out[i] = HandCategory(i)
	}
	return out
}

// ParseCategory looks a category up by display name.
func ParseCategory(name string) (HandCategory, bool) {
	for i, n := range categoryNames {
		if n == name {
			return HandCategory(i), true
		}
	}
	return 0, false
}

// Category returns the hand category, clamped to RoyalFlush.
func (s HandScore) Category() HandCategory {
	cat := s / categoryBase
	if cat > HandScore(RoyalFlush) {
		return RoyalFlush
	}
	return HandCategory(cat)
}

// Name returns the category display name.
func (s HandScore) Name() string {
	return s.Category().String()
}

// Tiebreak returns the packed base-13 tiebreak.
func (s HandScore) Tiebreak() uint32 {
	return uint32(s % categoryBase)
}

// Compare returns 1 if s beats other, -1 if it loses and 0 on a tie.
func (s HandScore) Compare(other HandScore) int {
	switch {
	case s > other:
		return 1
	case s < other:
		return -1
	default:
		return 0
	}
}

// String returns the category display name.
func (s HandScore) String() string {
	return s.Name()
}

// Score5 scores exactly five distinct cards. It works entirely on stack
// arrays so the simulation loop never allocates. Duplicate cards are a
// caller error and are not detected.
func Score5(c0, c1, c2, c3, c4 Card) HandScore {
	r0, r1, r2, r3, r4 := uint32(c0>>2), uint32(c1>>2), uint32(c2>>2), uint32(c3>>2), uint32(c4>>2)

	// ranks, descending
	rs := [5]uint32{r0, r1, r2, r3, r4}
	for i := 1; i < 5; i++ {
		v := rs[i]
		j := i - 1
		for j >= 0 && rs[j] < v {
			rs[j+1] = rs[j]
			j--
		}
		rs[j+1] = v
	}

	var counts [NumRanks]uint8
	counts[r0]++
	counts[r1]++
	counts[r2]++
	counts[r3]++
	counts[r4]++

	flush := c0&3 == c1&3 && c1&3 == c2&3 && c2&3 == c3&3 && c3&3 == c4&3

	straight := false
	var straightHigh uint32
	if rs[0] != rs[1] && rs[1] != rs[2] && rs[2] != rs[3] && rs[3] != rs[4] {
		if rs[0]-rs[4] == 4 {
			straight, straightHigh = true, rs[0]
		} else if rs[0] == uint32(Ace) && rs[1] == uint32(Five) && rs[2] == uint32(Four) &&
			rs[3] == uint32(Three) && rs[4] == uint32(Two) {
			// the wheel plays as a five-high straight
			straight, straightHigh = true, uint32(Five)
		}
	}

	// Groups are collected rank-descending, then stably ordered by count
	// descending, giving (count desc, rank desc).
	var gc, gr [5]uint32
	gn := 0
	for r := int(Ace); r >= 0; r-- {
		if counts[r] == 0 {
			continue
		}
		gc[gn], gr[gn] = uint32(counts[r]), uint32(r)
		gn++
	}
	for i := 1; i < gn; i++ {
		c, r := gc[i], gr[i]
		j := i - 1
		for j >= 0 && gc[j] < c {
			gc[j+1], gr[j+1] = gc[j], gr[j]
			j--
		}
		gc[j+1], gr[j+1] = c, r
	}

	var cat HandCategory
	switch {
	case flush && straight:
		if straightHigh == uint32(Ace) {
			cat = RoyalFlush
		} else {
			cat = StraightFlush
		}
	case gc[0] == 4:
		cat = FourOfAKind
	case gc[0] == 3 && gc[1] == 2:
		cat = FullHouse
	case flush:
		cat = Flush
	case straight:
		cat = Straight
	case gc[0] == 3:
		cat = ThreeOfAKind
	case gc[0] == 2 && gc[1] == 2:
		cat = TwoPair
	case gc[0] == 2:
		cat = OnePair
	default:
		cat = HighCard
	}

	var tb uint32
	if straight {
		tb = straightHigh
	} else {
		for i := 0; i < gn; i++ {
			tb = tb*NumRanks + gr[i]
		}
	}
	return HandScore(uint32(cat)*categoryBase + tb)
}

// ScoreHand scores a 5-card hand from rank and suit masks. It produces
// exactly the same value as Score5.
func ScoreHand(h [5]Card) HandScore {
	var counts [NumRanks]uint8
	var rankMask uint16
	var suitMask uint8
	for _, c := range h {
		counts[c.Rank()]++
		rankMask |= 1 << c.Rank()
		suitMask |= 1 << c.Suit()
	}

	flush := bits.OnesCount8(suitMask) == 1
	high, straight := straightFromMask(rankMask)

	var groups [5]int // groups[k] = number of ranks held exactly k times
	var tb uint32
	for k := 4; k >= 1; k-- {
		for r := int(Ace); r >= 0; r-- {
			if int(counts[r]) == k {
				tb = tb*NumRanks + uint32(r)
				groups[k]++
			}
		}
	}

	var cat HandCategory
	switch {
	case straight && flush && high == Ace:
		cat = RoyalFlush
	case straight && flush:
		cat = StraightFlush
	case groups[4] == 1:
		cat = FourOfAKind
	case groups[3] == 1 && groups[2] == 1:
		cat = FullHouse
	case flush:
		cat = Flush
	case straight:
		cat = Straight
	case groups[3] == 1:
		cat = ThreeOfAKind
	case groups[2] == 2:
		cat = TwoPair
	case groups[2] == 1:
		cat = OnePair
	default:
		cat = HighCard
	}

	if straight {
		tb = uint32(high)
	}
	return HandScore(uint32(cat)*categoryBase + tb)
}

const wheelMask = 1<<Ace | 1<<Five | 1<<Four | 1<<Three | 1<<Two

// straightFromMask reports the high rank of a straight made by exactly five
// distinct ranks.
func straightFromMask(mask uint16) (Rank, bool) {
	if bits.OnesCount16(mask) != 5 {
		return 0, false
	}
	if mask == wheelMask {
		return Five, true
	}
	low := bits.TrailingZeros16(mask)
	if mask>>low == 0x1F {
		return Rank(low + 4), true
	}
	return 0, false
}

// Index tuples for every 5-card subset of 6 and 7 cards, built once.
var (
	subsets6 = fiveCardSubsets(6)
	subsets7 = fiveCardSubsets(7)
)

func fiveCardSubsets(n int) [][5]uint8 {
	var out [][5]uint8
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						out = append(out, [5]uint8{uint8(a), uint8(b), uint8(c), uint8(d), uint8(e)})
					}
				}
			}
		}
	}
	return out
}

// BestHand returns the best score over every 5-card subset of cards. Five,
// six and seven cards use the precomputed subset tables; larger inputs
// build their subsets on demand. Fewer than five cards returns NoHand.
func BestHand(cards []Card) HandScore {
	switch len(cards) {
	case 5:
		return Score5(cards[0], cards[1], cards[2], cards[3], cards[4])
	case 6:
		return bestOfSubsets(cards, subsets6)
	case 7:
		return bestOfSubsets(cards, subsets7)
	}
	if len(cards) < 5 {
		return NoHand
	}
	return bestOfSubsets(cards, fiveCardSubsets(len(cards)))
}

func bestOfSubsets(cards []Card, subsets [][5]uint8) HandScore {
	best := NoHand
	for _, idx := range subsets {
		s := Score5(cards[idx[0]], cards[idx[1]], cards[idx[2]], cards[idx[3]], cards[idx[4]])
		if s > best {
			best = s
		}
	}
	return best
}
