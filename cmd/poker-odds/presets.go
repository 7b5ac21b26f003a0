package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cynthiacxzhang/range-equity-agent/sdk/analysis"
)

// PresetsCmd lists the built-in and configured named ranges.
type PresetsCmd struct{}

func (c *PresetsCmd) Run(g *Globals) error {
	book := g.cfg.PresetBook()
	w := tabwriter.NewWriter(g.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n", headerStyle.Render("name"), headerStyle.Render("combos"), headerStyle.Render("range"))
	for _, name := range book.Names() {
		notation, _ := book.Lookup(name)
		fmt.Fprintf(w, "%s\t%d\t%s\n", handStyle.Render(name), analysis.ParseRange(notation).Size(), notation)
	}
	return w.Flush()
}
