package poker

// HoleCardKind says whether a two-card hand is a pair, suited or offsuit.
type HoleCardKind uint8

const (
	KindPair HoleCardKind = iota
	KindSuited
	KindOffsuit
)

// String returns the kind's suffix letter: "p", "s" or "o".
func (k HoleCardKind) String() string {
	switch k {
	case KindPair:
		return "p"
	case KindSuited:
		return "s"
	case KindOffsuit:
		return "o"
	default:
		return "?"
	}
}

// HoleCards is the suit-independent class of a two-card starting hand,
// one of the 169 starting-hand classes.
type HoleCards struct {
	High Rank
	Low  Rank
	Kind HoleCardKind
}

// ClassifyHoleCards returns the starting-hand class of two distinct cards.
func ClassifyHoleCards(a, b Card) HoleCards {
	hi, lo := a.Rank(), b.Rank()
	if lo > hi {
		hi, lo = lo, hi
	}

	kind := KindOffsuit
	switch {
	case hi == lo:
		kind = KindPair
	case a.Suit() == b.Suit():
		kind = KindSuited
	}
	return HoleCards{High: hi, Low: lo, Kind: kind}
}

// Label returns standard notation: "77", "AKs", "T9o".
func (h HoleCards) Label() string {
	label := h.High.String() + h.Low.String()
	if h.Kind != KindPair {
		label += h.Kind.String()
	}
	return label
}

// Combos returns how many concrete combinations the class contains.
func (h HoleCards) Combos() int {
	switch h.Kind {
	case KindPair:
		return 6
	case KindSuited:
		return 4
	default:
		return 12
	}
}
