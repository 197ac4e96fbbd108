// Package distribution implements probability distributions over
// real vectors for normalizing flows: a standard-normal base
// distribution and the Transformed distribution obtained by pushing a
// base distribution through a bijection.
//
// All distributions are immutable after construction and safe for
// concurrent use; sampling takes an explicit random source.
package distribution

import "golang.org/x/exp/rand"

// Distribution is a probability distribution over vectors of a fixed
// dimension, optionally conditioned on an extra vector.
type Distribution interface {
	// Dim returns the dimensionality of points drawn from the
	// distribution.
	Dim() int

	// CondDim returns the dimensionality of the conditioning vector,
	// or 0 for unconditional distributions.
	CondDim() int

	// LogProb returns the log probability density at x. cond must have
	// length CondDim(); pass nil when CondDim() == 0.
	LogProb(x, cond []float64) (float64, error)

	// Sample draws one point. rng may be nil, in which case the global
	// source is used.
	Sample(rng *rand.Rand, cond []float64) ([]float64, error)
}
