package analysis

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

// IncompleteBoard is the hand name reported with fewer than five known cards.
const IncompleteBoard = "(incomplete board)"

var ErrInvalidPot = errors.New("pot and bet must be positive")

// AnalyzeOptions controls how Analyze runs the simulation.
type AnalyzeOptions struct {
	// ChunkSize is the batch size between progress callbacks.
	ChunkSize int
	// Workers > 1 runs the simulation in parallel. Progress is not reported
	// in that mode.
	Workers    int
	OnProgress func(Progress)
}

// Report is the full result of analyzing a spot: equity, the hero's current
// made hand and, between the flop and the turn, the outs.
type Report struct {
	Equity     EquityResult `json:"equity"`
	HandName   string       `json:"hand_name"`
	Outs       Outs         `json:"outs,omitempty"`
	Iterations int          `json:"iterations"`
}

// Analyze simulates equity and describes the hero's current hand.
func Analyze(ctx context.Context, req SimulationRequest, rng *rand.Rand, opts AnalyzeOptions) (Report, error) {
	var (
		eq  EquityResult
		err error
	)
	if opts.Workers > 1 {
		eq, err = SimulateParallel(ctx, req, rng, opts.Workers)
	} else {
		eq, err = SimulateChunked(ctx, req, rng, opts.ChunkSize, opts.OnProgress)
	}
	if err != nil {
		return Report{Equity: eq, Iterations: eq.Iterations}, err
	}

	return Report{
		Equity:     eq,
		HandName:   HandName(req.Hole, req.Board),
		Outs:       OutsIfDrawing(req.Hole, req.Board),
		Iterations: eq.Iterations,
	}, nil
}

// HandName names the hero's best made hand, or IncompleteBoard when fewer
// than five cards are known.
func HandName(hole [2]poker.Card, board []poker.Card) string {
	cards := append([]poker.Card{hole[0], hole[1]}, board...)
	if len(cards) < 5 {
		return IncompleteBoard
	}
	return poker.BestHand(cards).Name()
}

// OutsIfDrawing returns CalcOuts on a flop or turn and nil otherwise.
func OutsIfDrawing(hole [2]poker.Card, board []poker.Card) Outs {
	if len(board) == 0 || len(board) >= MaxBoard {
		return nil
	}
	return CalcOuts(hole, board)
}

// PotOddsResult compares the price of a call with the hero's equity.
type PotOddsResult struct {
	// Odds is the share of the final pot the hero puts in: bet/(pot+bet).
	Odds float64 `json:"odds"`
	// Ratio is the payout ratio (pot+bet)/bet.
	Ratio float64 `json:"ratio"`
	// EVCall is win*(pot+bet) - lose*bet, in chips.
	EVCall     float64 `json:"ev_call"`
	PositiveEV bool    `json:"positive_ev"`
}

// PotOdds evaluates calling bet into pot with equity eq.
func PotOdds(pot, bet float64, eq EquityResult) (PotOddsResult, error) {
	if pot <= 0 || bet <= 0 {
		return PotOddsResult{}, fmt.Errorf("%w: pot=%g bet=%g", ErrInvalidPot, pot, bet)
	}
	odds := bet / (pot + bet)
	return PotOddsResult{
		Odds:       odds,
		Ratio:      (pot + bet) / bet,
		EVCall:     eq.Win()*(pot+bet) - eq.Lose()*bet,
		PositiveEV: eq.Win() > odds,
	}, nil
}
