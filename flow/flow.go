// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package flow

import (
	"golang.org/x/exp/rand"

	"github.com/born-ml/flow/bijection"
	"github.com/born-ml/flow/internal/distribution"
	"github.com/born-ml/flow/internal/flows"
)

// Distribution is a probability distribution over vectors of a fixed
// dimension.
type Distribution = distribution.Distribution

// StandardNormal is the isotropic unit Gaussian N(0, I).
type StandardNormal = distribution.StandardNormal

// NewStandardNormal creates a standard normal over vectors of the
// given dimension.
func NewStandardNormal(dim int) (*StandardNormal, error) {
	return distribution.NewStandardNormal(dim)
}

// Transformed is a base distribution pushed through a bijection.
type Transformed = distribution.Transformed

// NewTransformed pushes base through the bijection b.
func NewTransformed(base Distribution, b bijection.Bijection) (*Transformed, error) {
	return distribution.NewTransformed(base, b)
}

// LogProbBatch evaluates the log density at every point of xs in
// parallel; the result order matches xs.
func LogProbBatch(d Distribution, xs [][]float64, cond []float64) ([]float64, error) {
	return distribution.LogProbBatch(d, xs, cond)
}

// SampleN draws n points sequentially from d.
func SampleN(d Distribution, rng *rand.Rand, n int, cond []float64) ([][]float64, error) {
	return distribution.SampleN(d, rng, n, cond)
}

// Flow constructors

// BNAFConfig configures BlockNeuralAutoregressiveFlow.
type BNAFConfig = flows.BNAFConfig

// Permutation strategies for BNAFConfig.Permute.
const (
	PermuteNone   = flows.PermuteNone
	PermuteFlip   = flows.PermuteFlip
	PermuteRandom = flows.PermuteRandom
)

// BlockNeuralAutoregressiveFlow builds a block neural autoregressive
// flow over the given base distribution.
func BlockNeuralAutoregressiveFlow(rng *rand.Rand, base Distribution, cfg BNAFConfig) (*Transformed, error) {
	return flows.BlockNeuralAutoregressiveFlow(rng, base, cfg)
}

// IntertwinePermute inserts permutation bijections between consecutive
// flow layers.
func IntertwinePermute(rng *rand.Rand, layers []bijection.Bijection, strategy string, dim int) ([]bijection.Bijection, error) {
	return flows.IntertwinePermute(rng, layers, strategy, dim)
}
