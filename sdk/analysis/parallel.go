package analysis

import (
	"context"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cynthiacxzhang/range-equity-agent/internal/randutil"
)

// SimulateParallel splits the iterations across workers goroutines and sums
// their counts. Each worker owns its simulator and an RNG seeded from rng,
// so a seeded rng gives a reproducible result for a fixed worker count.
// workers <= 0 uses GOMAXPROCS.
func SimulateParallel(ctx context.Context, req SimulationRequest, rng *rand.Rand, workers int) (EquityResult, error) {
	if err := req.Validate(); err != nil {
		return EquityResult{}, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, req.Iterations)
	if rng == nil {
		rng = randutil.FromTime()
	}
	seeds := randutil.Seeds(rng, workers)

	results := make([]EquityResult, workers)
	g, ctx := errgroup.WithContext(ctx)
	for i := range workers {
		n := req.Iterations / workers
		if i < req.Iterations%workers {
			n++
		}
		sub := req
		sub.Iterations = n
		g.Go(func() error {
			res, err := SimulateChunked(ctx, sub, randutil.New(seeds[i]), DefaultChunkSize, nil)
			results[i] = res
			return err
		})
	}
	err := g.Wait()

	var total EquityResult
	for _, r := range results {
		total = total.Add(r)
	}
	return total, err
}
