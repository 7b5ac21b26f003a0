package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
	"github.com/cynthiacxzhang/range-equity-agent/sdk/analysis"
)

// OutsCmd lists the unseen cards that improve the hero's hand category.
type OutsCmd struct {
	Hole  string `short:"H" required:"" help:"Hero hole cards"`
	Board string `short:"b" required:"" help:"Flop or turn, e.g. 'Td7s8h'"`
}

func (c *OutsCmd) Run(g *Globals) error {
	hole, err := analysis.ParseHole(c.Hole)
	if err != nil {
		return fmt.Errorf("hole: %w", err)
	}
	board, err := analysis.ParseBoard(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if len(board) == 0 || len(board) >= analysis.MaxBoard {
		return errors.New("outs need one to four board cards")
	}
	known := append([]poker.Card{hole[0], hole[1]}, board...)
	if poker.NewCardSet(known...).Len() != len(known) {
		return analysis.ErrDuplicateCard
	}

	outs := analysis.CalcOuts(hole, board)
	unseen := poker.NumCards - len(known)

	w := tabwriter.NewWriter(g.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("hand"), handStyle.Render(formatCards(hole[:])))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("board"), formatCards(board))
	fmt.Fprintf(w, "%s\t%s\n\n", headerStyle.Render("made hand"),
		categoryStyle.Render(analysis.HandName(hole, board)))
	if len(outs) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no outs"))
	} else {
		writeOuts(w, outs)
		fmt.Fprintf(w, "%s\t%d/%d\t%s\n", headerStyle.Render("total"), outs.Total(), unseen,
			percent(float64(outs.Total())/float64(unseen)))
	}
	return w.Flush()
}

func writeOuts(w io.Writer, outs analysis.Outs) {
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("outs"), headerStyle.Render("cards"))
	for _, e := range outs.Sorted() {
		fmt.Fprintf(w, "%s\t%d\n", categoryStyle.Render(e.Category.String()), e.Count)
	}
}
