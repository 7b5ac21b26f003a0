package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cynthiacxzhang/range-equity-agent/internal/randutil"
	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("preflop", func(t *testing.T) {
		rep, err := Analyze(context.Background(), request(t, "AsAh", "", "KK", 2, 2000), randutil.New(1), AnalyzeOptions{})
		require.NoError(t, err)
		assert.Equal(t, IncompleteBoard, rep.HandName)
		assert.Nil(t, rep.Outs)
		assert.Equal(t, 2000, rep.Iterations)
	})

	t.Run("flop reports outs", func(t *testing.T) {
		var progress []Progress
		opts := AnalyzeOptions{ChunkSize: 500, OnProgress: func(p Progress) { progress = append(progress, p) }}
		rep, err := Analyze(context.Background(), request(t, "AhKh", "7h2h9c", "22+", 2, 2000), randutil.New(1), opts)
		require.NoError(t, err)
		assert.Equal(t, "High Card", rep.HandName)
		assert.Equal(t, 9, rep.Outs["Flush"])
		assert.Len(t, progress, 4)
	})

	t.Run("river has no outs", func(t *testing.T) {
		rep, err := Analyze(context.Background(), request(t, "AsAh", "Ks Qd 9c 5h 2s", "KK", 2, 500), randutil.New(1), AnalyzeOptions{Workers: 2})
		require.NoError(t, err)
		assert.Equal(t, "One Pair", rep.HandName)
		assert.Nil(t, rep.Outs)
		assert.Equal(t, 500, rep.Equity.Iterations)
	})

	t.Run("invalid request", func(t *testing.T) {
		_, err := Analyze(context.Background(), request(t, "AsAh", "", "KK", 1, 500), nil, AnalyzeOptions{})
		assert.ErrorIs(t, err, ErrInvalidPlayers)
	})
}

func TestHandName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Royal Flush", HandName(hole(t, "AsKs"), poker.MustParseCards("QsJsTs2h3c")))
	assert.Equal(t, "Flush", HandName(hole(t, "AsKs"), poker.MustParseCards("2s7s9s")))
	assert.Equal(t, IncompleteBoard, HandName(hole(t, "AsKs"), poker.MustParseCards("2s7s")))
}

func TestPotOdds(t *testing.T) {
	t.Parallel()
	eq := EquityResult{Wins: 40, Ties: 0, Losses: 60, Iterations: 100}

	res, err := PotOdds(100, 50, eq)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, res.Odds, 1e-9)
	assert.InDelta(t, 3.0, res.Ratio, 1e-9)
	assert.InDelta(t, 0.4*150-0.6*50, res.EVCall, 1e-9)
	assert.True(t, res.PositiveEV)

	res, err = PotOdds(100, 100, eq)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Odds, 1e-9)
	assert.False(t, res.PositiveEV)

	_, err = PotOdds(0, 50, eq)
	assert.ErrorIs(t, err, ErrInvalidPot)
	_, err = PotOdds(100, -1, eq)
	assert.ErrorIs(t, err, ErrInvalidPot)
}
