package main

import (
	"fmt"
	"strings"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

// EvalCmd scores a hand directly.
type EvalCmd struct {
	Cards []string `arg:"" help:"Five to seven cards, e.g. 'AsKsQsJsTs' or 'As Ks Qs Js Ts'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	if len(cards) < 5 || len(cards) > 7 {
		return fmt.Errorf("need 5 to 7 cards, got %d", len(cards))
	}
	if poker.NewCardSet(cards...).Len() != len(cards) {
		return fmt.Errorf("duplicate card in %s", poker.FormatCards(cards))
	}

	score := poker.BestHand(cards)
	fmt.Fprintf(g.out, "%s  %s  %s\n",
		handStyle.Render(formatCards(cards)),
		categoryStyle.Render(score.Name()),
		mutedStyle.Render(fmt.Sprintf("score %d", uint32(score))))
	return nil
}
