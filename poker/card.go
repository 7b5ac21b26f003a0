package poker

import (
	"errors"
	"fmt"
	"strings"
)

// Card is a playing card encoded as rank*4 + suit, in the range [0, 52).
type Card uint8

// Rank is a card rank, 0 (Two) through 12 (Ace).
type Rank uint8

// Suit is a card suit, 0 through 3.
type Suit uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

const (
	// NumRanks is the number of distinct ranks.
	NumRanks = 13
	// NumSuits is the number of distinct suits.
	NumSuits = 4
	// NumCards is the size of a standard deck.
	NumCards = NumRanks * NumSuits
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "shdc"
)

var suitSymbols = [NumSuits]string{"♠", "♥", "♦", "♣"}

// ErrInvalidCard is returned when card text cannot be parsed.
var ErrInvalidCard = errors.New("invalid card")

// NewCard creates a card from a rank (0-12) and suit (0-3).
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(rank)<<2 | uint8(suit))
}

// Rank returns the rank of the card.
func (c Card) Rank() Rank {
	return Rank(c >> 2)
}

// Suit returns the suit of the card.
func (c Card) Suit() Suit {
	return Suit(c & 3)
}

// String returns the two-character label, e.g. "As".
func (c Card) String() string {
	return c.Rank().String() + c.Suit().String()
}

// Symbol returns the card with a suit glyph, e.g. "A♠".
func (c Card) Symbol() string {
	return c.Rank().String() + c.Suit().Symbol()
}

// String returns the rank character.
func (r Rank) String() string {
	if r >= NumRanks {
		return "?"
	}
	return rankChars[r : r+1]
}

// String returns the suit letter.
func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return suitChars[s : s+1]
}

// Symbol returns the unicode suit glyph.
func (s Suit) Symbol() string {
	if s >= NumSuits {
		return "?"
	}
	return suitSymbols[s]
}

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// ParseRank converts a rank character (case-insensitive) to a Rank.
func ParseRank(ch byte) (Rank, bool) {
	i := strings.IndexByte(rankChars, upper(ch))
	if i < 0 {
		return 0, false
	}
	return Rank(i), true
}

// ParseSuit converts a suit character (s, h, d, c; case-insensitive) or a
// suit glyph to a Suit.
func ParseSuit(s string) (Suit, bool) {
	if len(s) == 1 {
		i := strings.IndexByte(suitChars, lower(s[0]))
		if i < 0 {
			return 0, false
		}
		return Suit(i), true
	}
	for i, g := range suitSymbols {
		if s == g {
			return Suit(i), true
		}
	}
	return 0, false
}

// ParseCard parses a single card such as "As", "td" or "K♥".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	rank, ok := ParseRank(s[0])
	if !ok {
		return 0, fmt.Errorf("%w: bad rank in %q", ErrInvalidCard, s)
	}
	suit, ok := ParseSuit(s[1:])
	if !ok {
		return 0, fmt.Errorf("%w: bad suit in %q", ErrInvalidCard, s)
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses a run of cards. Cards may be concatenated ("AsKd") or
// separated by spaces or commas ("As Kd", "As,Kd").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})

	var cards []Card
	for _, field := range fields {
		runes := []rune(field)
		if len(runes)%2 != 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCard, field)
		}
		for i := 0; i < len(runes); i += 2 {
			card, err := ParseCard(string(runes[i : i+2]))
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins card labels with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch - 'A' + 'a'
	}
	return ch
}
