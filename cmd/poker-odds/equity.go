package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/cynthiacxzhang/range-equity-agent/internal/fileutil"
	"github.com/cynthiacxzhang/range-equity-agent/internal/randutil"
	"github.com/cynthiacxzhang/range-equity-agent/sdk/analysis"
)

const defaultPreset = "any-two"

// EquityCmd estimates the hero's showdown equity.
type EquityCmd struct {
	Hole       string  `short:"H" required:"" help:"Hero hole cards, e.g. 'AsKd'"`
	Board      string  `short:"b" help:"Known community cards, e.g. 'Td7s8h'"`
	Range      string  `short:"r" xor:"villain" help:"Opponent range notation, e.g. 'QQ+, AKs'"`
	Preset     string  `short:"p" xor:"villain" help:"Named opponent range (default any-two)"`
	Players    int     `short:"n" help:"Players at showdown including the hero (default from config)"`
	Iterations int     `short:"i" help:"Monte Carlo iterations (default from config)"`
	Workers    int     `short:"w" help:"Parallel workers (default from config)"`
	Seed       *int64  `help:"Random seed for reproducible results"`
	Progress   bool    `help:"Print progress after each batch"`
	Pot        float64 `help:"Pot before the bet, for pot odds"`
	Bet        float64 `help:"Amount to call, for pot odds"`
	JSONOut    string  `name:"json-out" type:"path" help:"Also write the report as JSON to this file"`
}

// equityOutput is the JSON written by --json-out.
type equityOutput struct {
	Hole         string                  `json:"hole"`
	Board        string                  `json:"board"`
	Range        string                  `json:"range"`
	Seed         int64                   `json:"seed"`
	Report       analysis.Report         `json:"report"`
	CILow        float64                 `json:"ci_low"`
	CIHigh       float64                 `json:"ci_high"`
	Unrecognized []string                `json:"unrecognized,omitempty"`
	PotOdds      *analysis.PotOddsResult `json:"pot_odds,omitempty"`
}

func (c *EquityCmd) Run(g *Globals) error {
	hole, err := analysis.ParseHole(c.Hole)
	if err != nil {
		return fmt.Errorf("hole: %w", err)
	}
	board, err := analysis.ParseBoard(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	preset := c.Preset
	if c.Range == "" && preset == "" {
		preset = defaultPreset
	}
	villain, err := analysis.ResolveRange(g.cfg.PresetBook(), c.Range, preset)
	if err != nil {
		return err
	}
	if len(villain.Unrecognized) > 0 {
		g.logger.Warn("Ignoring unrecognized range tokens", "tokens", villain.Unrecognized)
	}

	sim := g.cfg.Simulation
	req := analysis.SimulationRequest{
		Hole:       hole,
		Board:      board,
		Opponents:  villain.Combos,
		NumPlayers: orDefault(c.Players, sim.Players),
		Iterations: orDefault(c.Iterations, sim.Iterations),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		g.logger.Debug("Using deterministic seed", "seed", seed)
	} else {
		seed = time.Now().UnixNano()
		g.logger.Debug("Using random seed", "seed", seed)
	}

	opts := analysis.AnalyzeOptions{
		ChunkSize: sim.ChunkSize,
		Workers:   orDefault(c.Workers, sim.Workers),
	}
	if c.Progress {
		opts.OnProgress = func(p analysis.Progress) {
			fmt.Fprintf(os.Stderr, "%d/%d  win %s\n", p.Done, p.Total, percent(p.Partial.Win()))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	rep, err := analysis.Analyze(ctx, req, randutil.New(seed), opts)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	out := equityOutput{
		Hole:         c.Hole,
		Board:        c.Board,
		Range:        rangeLabel(c.Range, preset),
		Seed:         seed,
		Report:       rep,
		Unrecognized: villain.Unrecognized,
	}
	out.CILow, out.CIHigh = rep.Equity.ConfidenceInterval()
	if c.Pot > 0 || c.Bet > 0 {
		po, err := analysis.PotOdds(c.Pot, c.Bet, rep.Equity)
		if err != nil {
			return err
		}
		out.PotOdds = &po
	}

	c.render(g, req, out, len(villain.Combos), duration)

	if c.JSONOut != "" {
		if err := fileutil.WriteJSON(c.JSONOut, out); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.JSONOut, err)
		}
		g.logger.Info("Wrote report", "file", c.JSONOut)
	}
	return nil
}

func (c *EquityCmd) render(g *Globals, req analysis.SimulationRequest, out equityOutput, combos int, duration time.Duration) {
	w := tabwriter.NewWriter(g.out, 0, 0, 2, ' ', 0)
	rep := out.Report

	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("hand"), handStyle.Render(formatCards(req.Hole[:])))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("board"), formatCards(req.Board))
	fmt.Fprintf(w, "%s\t%s %s\n", headerStyle.Render("range"), out.Range,
		mutedStyle.Render(fmt.Sprintf("(%d combos)", combos)))
	if req.NumPlayers > 2 {
		fmt.Fprintf(w, "%s\t%d\n", headerStyle.Render("players"), req.NumPlayers)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("win"), winStyle.Render(percent(rep.Equity.Win())))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("tie"), tieStyle.Render(percent(rep.Equity.Tie())))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("lose"), loseStyle.Render(percent(rep.Equity.Lose())))
	fmt.Fprintf(w, "%s\t%s %s\n", headerStyle.Render("equity"), percent(rep.Equity.Equity()),
		mutedStyle.Render(fmt.Sprintf("(95%% CI %s - %s)", percent(out.CILow), percent(out.CIHigh))))
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("made hand"), categoryStyle.Render(rep.HandName))

	if len(rep.Outs) > 0 {
		fmt.Fprintln(w)
		writeOuts(w, rep.Outs)
	}

	if po := out.PotOdds; po != nil {
		fmt.Fprintln(w)
		verdict := loseStyle.Render("fold")
		if po.PositiveEV {
			verdict = winStyle.Render("call")
		}
		fmt.Fprintf(w, "%s\t%s %s\n", headerStyle.Render("pot odds"), percent(po.Odds),
			mutedStyle.Render(fmt.Sprintf("(%.1f:1)", po.Ratio-1)))
		fmt.Fprintf(w, "%s\t%+.2f %s\n", headerStyle.Render("call EV"), po.EVCall, verdict)
	}
	_ = w.Flush()

	fmt.Fprintf(g.out, "\n%d iterations in %v\n", rep.Iterations, duration.Truncate(time.Millisecond))
}

func rangeLabel(notation, preset string) string {
	if preset != "" {
		return preset
	}
	return notation
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
