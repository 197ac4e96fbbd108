package distribution

import (
	"runtime"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// LogProbBatch evaluates the log density at every point of xs. The
// evaluations are independent pure computations, so they are fanned
// out across GOMAXPROCS goroutines; the result order matches xs.
func LogProbBatch(d Distribution, xs [][]float64, cond []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			logProb, err := d.LogProb(x, cond)
			if err != nil {
				return err
			}
			out[i] = logProb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SampleN draws n points. Draws are sequential so a seeded source
// yields a reproducible sequence.
func SampleN(d Distribution, rng *rand.Rand, n int, cond []float64) ([][]float64, error) {
	out := make([][]float64, n)
	for i := range out {
		x, err := d.Sample(rng, cond)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}
