package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/cynthiacxzhang/range-equity-agent/internal/randutil"
	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

const (
	// MinPlayers and MaxPlayers bound the table size, hero included.
	MinPlayers = 2
	MaxPlayers = 9
	// MaxBoard is the number of community cards on a complete board.
	MaxBoard = 5
	// DefaultChunkSize is the batch size between progress snapshots.
	DefaultChunkSize = 2000
)

var (
	ErrInvalidBoard      = errors.New("board must have at most 5 cards")
	ErrInvalidPlayers    = errors.New("players must be between 2 and 9")
	ErrInvalidIterations = errors.New("iterations must be positive")
	ErrDuplicateCard     = errors.New("duplicate card")
)

// SimulationRequest describes one Monte Carlo equity run: the hero's hole
// cards and the known board against an opponent range, with NumPlayers-2
// further opponents holding random cards.
type SimulationRequest struct {
	Hole       [2]poker.Card
	Board      []poker.Card
	Opponents  []Combo
	NumPlayers int
	Iterations int
}

// Validate checks the request and returns a wrapped sentinel on failure.
func (r SimulationRequest) Validate() error {
	if len(r.Board) > MaxBoard {
		return fmt.Errorf("%w: got %d", ErrInvalidBoard, len(r.Board))
	}
	if r.NumPlayers < MinPlayers || r.NumPlayers > MaxPlayers {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayers, r.NumPlayers)
	}
	if r.Iterations <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, r.Iterations)
	}

	var seen poker.CardSet
	for _, c := range r.knownCards() {
		if c >= poker.NumCards {
			return fmt.Errorf("%w: card id %d", poker.ErrInvalidCard, c)
		}
		if seen.Contains(c) {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen.Add(c)
	}
	return nil
}

func (r SimulationRequest) knownCards() []poker.Card {
	known := make([]poker.Card, 0, 2+len(r.Board))
	known = append(known, r.Hole[0], r.Hole[1])
	return append(known, r.Board...)
}

// Known returns the hero's hole cards and the board as a set.
func (r SimulationRequest) Known() poker.CardSet {
	return poker.NewCardSet(r.knownCards()...)
}

// EquityResult holds showdown counts from a simulation.
type EquityResult struct {
	Wins       int `json:"wins"`
	Ties       int `json:"ties"`
	Losses     int `json:"losses"`
	Iterations int `json:"iterations"`
}

// Win returns the win frequency (0.0 to 1.0).
func (e EquityResult) Win() float64 {
	if e.Iterations == 0 {
		return 0.0
	}
	return float64(e.Wins) / float64(e.Iterations)
}

// Tie returns the tie frequency (0.0 to 1.0).
func (e EquityResult) Tie() float64 {
	if e.Iterations == 0 {
		return 0.0
	}
	return float64(e.Ties) / float64(e.Iterations)
}

// Lose returns the loss frequency (0.0 to 1.0).
func (e EquityResult) Lose() float64 {
	if e.Iterations == 0 {
		return 0.0
	}
	return float64(e.Losses) / float64(e.Iterations)
}

// Equity returns the overall equity (0.0 to 1.0)
// Wins count as 1.0, ties count as 0.5
func (e EquityResult) Equity() float64 {
	if e.Iterations == 0 {
		return 0.0
	}
	return (float64(e.Wins) + float64(e.Ties)*0.5) / float64(e.Iterations)
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (e EquityResult) ConfidenceInterval() (lower, upper float64) {
	n := float64(e.Iterations)
	if n == 0 {
		return 0.0, 0.0
	}
	equity := e.Equity()

	// Standard error for binomial proportion
	se := math.Sqrt((equity * (1.0 - equity)) / n)
	margin := 1.96 * se

	return math.Max(0.0, equity-margin), math.Min(1.0, equity+margin)
}

// Add returns the sum of two results.
func (e EquityResult) Add(other EquityResult) EquityResult {
	return EquityResult{
		Wins:       e.Wins + other.Wins,
		Ties:       e.Ties + other.Ties,
		Losses:     e.Losses + other.Losses,
		Iterations: e.Iterations + other.Iterations,
	}
}

// Progress is a snapshot emitted after each batch of a chunked simulation.
type Progress struct {
	Done    int          `json:"done"`
	Total   int          `json:"total"`
	Partial EquityResult `json:"partial"`
}

// simulator owns the per-run state: one deck and fixed hand buffers, so the
// iteration loop does not allocate.
type simulator struct {
	rng       *rand.Rand
	deck      *poker.Deck
	hole      [2]poker.Card
	board     [MaxBoard]poker.Card
	boardLen  int
	opponents []Combo
	extra     int
	known     poker.CardSet
	hand      [7]poker.Card
}

func newSimulator(req SimulationRequest, rng *rand.Rand) *simulator {
	if rng == nil {
		rng = randutil.FromTime()
	}
	known := req.Known()
	s := &simulator{
		rng:       rng,
		deck:      poker.NewDeck(rng),
		hole:      req.Hole,
		boardLen:  len(req.Board),
		opponents: FilterCombos(req.Opponents, known),
		extra:     req.NumPlayers - 2,
		known:     known,
	}
	copy(s.board[:], req.Board)
	return s
}

// score evaluates two hole cards against the completed board.
func (s *simulator) score(a, b poker.Card) poker.HandScore {
	s.hand[0], s.hand[1] = a, b
	copy(s.hand[2:], s.board[:])
	return poker.BestHand(s.hand[:])
}

// run plays n iterations and returns their counts.
func (s *simulator) run(n int) EquityResult {
	res := EquityResult{Iterations: n}
	for range n {
		// no opponent combo survives the known cards: counted for the hero
		if len(s.opponents) == 0 {
			res.Wins++
			continue
		}

		opp := s.opponents[s.rng.IntN(len(s.opponents))]
		excluded := s.known
		excluded.Add(opp[0])
		excluded.Add(opp[1])
		s.deck.Reset(excluded)
		s.deck.Shuffle()

		card := s.boardLen
		for ; card < MaxBoard; card++ {
			s.board[card], _ = s.deck.DealOne()
		}

		hero := s.score(s.hole[0], s.hole[1])
		best := s.score(opp[0], opp[1])
		for range s.extra {
			a, _ := s.deck.DealOne()
			b, _ := s.deck.DealOne()
			if es := s.score(a, b); es > best {
				best = es
			}
		}

		switch {
		case hero > best:
			res.Wins++
		case hero == best:
			res.Ties++
		default:
			res.Losses++
		}
	}
	return res
}

// Simulate estimates the hero's equity by Monte Carlo. A nil rng uses a
// time-seeded source, so results vary between runs.
func Simulate(req SimulationRequest, rng *rand.Rand) (EquityResult, error) {
	if err := req.Validate(); err != nil {
		return EquityResult{}, err
	}
	return newSimulator(req, rng).run(req.Iterations), nil
}

// SimulateChunked runs the simulation in batches of chunkSize iterations,
// calling onProgress after each batch. ctx is checked between batches; on
// cancellation the result so far is returned with ctx.Err().
func SimulateChunked(ctx context.Context, req SimulationRequest, rng *rand.Rand, chunkSize int, onProgress func(Progress)) (EquityResult, error) {
	if err := req.Validate(); err != nil {
		return EquityResult{}, err
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	sim := newSimulator(req, rng)
	var total EquityResult
	for total.Iterations < req.Iterations {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		batch := min(chunkSize, req.Iterations-total.Iterations)
		total = total.Add(sim.run(batch))
		if onProgress != nil {
			onProgress(Progress{Done: total.Iterations, Total: req.Iterations, Partial: total})
		}
	}
	return total, nil
}
