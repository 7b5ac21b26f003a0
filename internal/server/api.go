package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"net/http"

	"github.com/cynthiacxzhang/range-equity-agent/internal/randutil"
	"github.com/cynthiacxzhang/range-equity-agent/poker"
	"github.com/cynthiacxzhang/range-equity-agent/sdk/analysis"
)

const maxBodyBytes = 1 << 20

// frequencyTolerance bounds how far win+tie+lose may stray from 1.
const frequencyTolerance = 1e-3

var errInvalidFrequencies = errors.New("win, tie and lose must each be in [0, 1] and sum to 1")

// EquityRequest is the body of POST /api/equity and the payload of a
// websocket calc-equity message. Zero numeric fields take server defaults.
type EquityRequest struct {
	Hole       string  `json:"hole"`
	Board      string  `json:"board,omitempty"`
	Range      string  `json:"range,omitempty"`
	Preset     string  `json:"preset,omitempty"`
	Players    int     `json:"players,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	Workers    int     `json:"workers,omitempty"`
	Seed       *int64  `json:"seed,omitempty"`
	Pot        float64 `json:"pot,omitempty"`
	Bet        float64 `json:"bet,omitempty"`
}

// Frequencies are showdown shares that sum to 1.
type Frequencies struct {
	Win  float64 `json:"win"`
	Tie  float64 `json:"tie"`
	Lose float64 `json:"lose"`
}

func frequencies(e analysis.EquityResult) Frequencies {
	return Frequencies{Win: e.Win(), Tie: e.Tie(), Lose: e.Lose()}
}

// EquityResponse is the body returned by POST /api/equity.
type EquityResponse struct {
	Eq           Frequencies             `json:"eq"`
	Equity       float64                 `json:"equity"`
	CILow        float64                 `json:"ci_low"`
	CIHigh       float64                 `json:"ci_high"`
	HandName     string                  `json:"hand_name"`
	Outs         analysis.Outs           `json:"outs,omitempty"`
	Iterations   int                     `json:"iterations"`
	RangeCombos  int                     `json:"range_combos"`
	Unrecognized []string                `json:"unrecognized,omitempty"`
	PotOdds      *analysis.PotOddsResult `json:"pot_odds,omitempty"`
	ElapsedMS    int64                   `json:"elapsed_ms"`
}

// RangeRequest is the body of POST /api/range.
type RangeRequest struct {
	Range    string `json:"range,omitempty"`
	Preset   string `json:"preset,omitempty"`
	Blockers string `json:"blockers,omitempty"`
}

// RangeResponse lists the expanded combos.
type RangeResponse struct {
	Combos       []string `json:"combos"`
	Count        int      `json:"count"`
	Classes      []string `json:"classes"`
	Unrecognized []string `json:"unrecognized,omitempty"`
}

// OutsRequest is the body of POST /api/outs.
type OutsRequest struct {
	Hole  string `json:"hole"`
	Board string `json:"board"`
}

// OutsResponse reports the improving cards by category.
type OutsResponse struct {
	HandName string        `json:"hand_name"`
	Outs     analysis.Outs `json:"outs"`
	Total    int           `json:"total"`
}

// PotOddsRequest is the body of POST /api/potodds.
type PotOddsRequest struct {
	Pot  float64 `json:"pot"`
	Bet  float64 `json:"bet"`
	Win  float64 `json:"win"`
	Tie  float64 `json:"tie"`
	Lose float64 `json:"lose"`
}

func (in PotOddsRequest) validate() error {
	for _, f := range []float64{in.Win, in.Tie, in.Lose} {
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: got %g", errInvalidFrequencies, f)
		}
	}
	if sum := in.Win + in.Tie + in.Lose; math.Abs(sum-1) > frequencyTolerance {
		return fmt.Errorf("%w: sum is %g", errInvalidFrequencies, sum)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

// calculation is a validated equity request ready to run.
type calculation struct {
	req          analysis.SimulationRequest
	rng          *rand.Rand
	opts         analysis.AnalyzeOptions
	unrecognized []string
	pot, bet     float64
}

func (s *Server) prepare(in EquityRequest) (*calculation, error) {
	hole, err := analysis.ParseHole(in.Hole)
	if err != nil {
		return nil, fmt.Errorf("hole: %w", err)
	}
	board, err := analysis.ParseBoard(in.Board)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	villain, err := analysis.ResolveRange(s.presets, in.Range, in.Preset)
	if err != nil {
		return nil, err
	}

	c := &calculation{
		req: analysis.SimulationRequest{
			Hole:       hole,
			Board:      board,
			Opponents:  villain.Combos,
			NumPlayers: orDefault(in.Players, s.defaults.Players),
			Iterations: orDefault(in.Iterations, s.defaults.Iterations),
		},
		opts: analysis.AnalyzeOptions{
			ChunkSize: s.defaults.ChunkSize,
			Workers:   orDefault(in.Workers, s.defaults.Workers),
		},
		unrecognized: villain.Unrecognized,
		pot:          in.Pot,
		bet:          in.Bet,
	}
	if err := c.req.Validate(); err != nil {
		return nil, err
	}
	if in.Seed != nil {
		c.rng = randutil.New(*in.Seed)
	}
	return c, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	var in EquityRequest
	if !decodeBody(w, r, &in) {
		return
	}
	calc, err := s.prepare(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := s.clock.Now()
	rep, err := analysis.Analyze(r.Context(), calc.req, calc.rng, calc.opts)
	if err != nil {
		s.logger.Warn("Equity calculation stopped", "error", err)
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	lo, hi := rep.Equity.ConfidenceInterval()
	resp := EquityResponse{
		Eq:           frequencies(rep.Equity),
		Equity:       rep.Equity.Equity(),
		CILow:        lo,
		CIHigh:       hi,
		HandName:     rep.HandName,
		Outs:         rep.Outs,
		Iterations:   rep.Iterations,
		RangeCombos:  len(calc.req.Opponents),
		Unrecognized: calc.unrecognized,
		ElapsedMS:    s.clock.Since(start).Milliseconds(),
	}
	if calc.pot > 0 || calc.bet > 0 {
		po, err := analysis.PotOdds(calc.pot, calc.bet, rep.Equity)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		resp.PotOdds = &po
	}

	s.logger.Debug("Equity calculated", "hole", in.Hole, "board", in.Board,
		"iterations", rep.Iterations, "equity", resp.Equity)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	var in RangeRequest
	if !decodeBody(w, r, &in) {
		return
	}
	res, err := analysis.ResolveRange(s.presets, in.Range, in.Preset)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	combos := res.Combos
	if in.Blockers != "" {
		blockers, err := poker.ParseCards(in.Blockers)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("blockers: %w", err))
			return
		}
		combos = analysis.FilterCombos(combos, poker.NewCardSet(blockers...))
	}

	resp := RangeResponse{
		Combos:       make([]string, len(combos)),
		Count:        len(combos),
		Unrecognized: res.Unrecognized,
	}
	for i, c := range combos {
		resp.Combos[i] = c.String()
	}
	for _, cell := range analysis.GridFromCombos(combos).Cells() {
		resp.Classes = append(resp.Classes, cell.Label())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOuts(w http.ResponseWriter, r *http.Request) {
	var in OutsRequest
	if !decodeBody(w, r, &in) {
		return
	}
	hole, err := analysis.ParseHole(in.Hole)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("hole: %w", err))
		return
	}
	board, err := analysis.ParseBoard(in.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("board: %w", err))
		return
	}
	if len(board) == 0 || len(board) >= analysis.MaxBoard {
		writeError(w, http.StatusBadRequest, errors.New("outs need one to four board cards"))
		return
	}
	known := append([]poker.Card{hole[0], hole[1]}, board...)
	if poker.NewCardSet(known...).Len() != len(known) {
		writeError(w, http.StatusBadRequest, analysis.ErrDuplicateCard)
		return
	}

	outs := analysis.CalcOuts(hole, board)
	writeJSON(w, http.StatusOK, OutsResponse{
		HandName: analysis.HandName(hole, board),
		Outs:     outs,
		Total:    outs.Total(),
	})
}

func (s *Server) handlePotOdds(w http.ResponseWriter, r *http.Request) {
	var in PotOddsRequest
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	// frequencies are scaled to counts so the usual result helpers apply
	const scale = 1_000_000
	eq := analysis.EquityResult{
		Wins:       int(in.Win * scale),
		Ties:       int(in.Tie * scale),
		Losses:     int(in.Lose * scale),
		Iterations: scale,
	}
	res, err := analysis.PotOdds(in.Pot, in.Bet, eq)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.presets.All())
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
