package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
	"github.com/cynthiacxzhang/range-equity-agent/sdk/analysis"
)

// RangeCmd expands range notation or a preset.
type RangeCmd struct {
	Notation string `arg:"" optional:"" help:"Range notation, e.g. '77+, ATs+, KQo'"`
	Preset   string `short:"p" help:"Named range instead of notation"`
	Blockers string `short:"x" help:"Cards to remove from the range, e.g. the board"`
	Grid     bool   `short:"g" help:"Show the 13x13 starting-hand grid"`
	Combos   bool   `help:"List every combo"`
}

func (c *RangeCmd) Run(g *Globals) error {
	if c.Notation == "" && c.Preset == "" {
		return errors.New("give range notation or --preset")
	}
	res, err := analysis.ResolveRange(g.cfg.PresetBook(), c.Notation, c.Preset)
	if err != nil {
		return err
	}

	combos := res.Combos
	if c.Blockers != "" {
		blockers, err := poker.ParseCards(c.Blockers)
		if err != nil {
			return fmt.Errorf("blockers: %w", err)
		}
		combos = analysis.FilterCombos(combos, poker.NewCardSet(blockers...))
	}

	grid := analysis.GridFromCombos(combos)
	fmt.Fprintf(g.out, "%s %s\n", headerStyle.Render("combos"), handStyle.Render(fmt.Sprint(len(combos))))
	fmt.Fprintf(g.out, "%s %s %s\n", headerStyle.Render("classes"), grid.Notation(),
		mutedStyle.Render(fmt.Sprintf("(%d of 169)", grid.Count())))
	if len(res.Unrecognized) > 0 {
		fmt.Fprintf(g.out, "%s %s\n", loseStyle.Render("unrecognized"), strings.Join(res.Unrecognized, ", "))
	}

	if c.Grid {
		fmt.Fprintf(g.out, "\n%s", grid)
	}
	if c.Combos {
		labels := make([]string, len(combos))
		for i, combo := range combos {
			labels[i] = combo.String()
		}
		fmt.Fprintf(g.out, "\n%s\n", strings.Join(labels, " "))
	}
	return nil
}
