package analysis

import (
	"errors"
	"fmt"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

var (
	ErrInvalidHole    = errors.New("hole must be exactly two cards")
	ErrUnknownPreset  = errors.New("unknown preset")
	ErrRangeAmbiguous = errors.New("give a range or a preset, not both")
)

// ParseHole parses exactly two hole cards, e.g. "AsKd".
func ParseHole(s string) ([2]poker.Card, error) {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return [2]poker.Card{}, err
	}
	if len(cards) != 2 {
		return [2]poker.Card{}, fmt.Errorf("%w: got %d", ErrInvalidHole, len(cards))
	}
	return [2]poker.Card{cards[0], cards[1]}, nil
}

// ParseBoard parses up to five community cards. Empty text is an empty board.
func ParseBoard(s string) ([]poker.Card, error) {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return nil, err
	}
	if len(cards) > MaxBoard {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBoard, len(cards))
	}
	return cards, nil
}

// ResolveRange parses either explicit notation or a named preset from book.
// Unrecognized tokens are returned in the result, not as an error.
func ResolveRange(book *PresetBook, notation, preset string) (RangeResult, error) {
	switch {
	case notation != "" && preset != "":
		return RangeResult{}, ErrRangeAmbiguous
	case preset != "":
		text, ok := book.Lookup(preset)
		if !ok {
			return RangeResult{}, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
		}
		return ParseRange(text), nil
	default:
		return ParseRange(notation), nil
	}
}
