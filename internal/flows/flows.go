// Package flows provides convenience constructors for common flow
// architectures, and serves as an example of how flows are assembled
// from the bijection and distribution packages.
//
// Constructors chain per-layer bijections with permutations
// intertwined between layers so that, across the stack, every
// dimension gets to condition on every other.
package flows

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/flow/internal/bijection"
	"github.com/born-ml/flow/internal/distribution"
)

// Permutation strategies intertwined between flow layers.
const (
	// PermuteNone applies layers back to back.
	PermuteNone = "none"
	// PermuteFlip reverses element order between layers.
	PermuteFlip = "flip"
	// PermuteRandom applies an independent random permutation between
	// layers.
	PermuteRandom = "random"
)

// BNAFConfig configures BlockNeuralAutoregressiveFlow. Zero values
// select the defaults noted per field.
type BNAFConfig struct {
	// CondDim is the dimension of extra conditioning variables
	// injected into every layer's first masked-linear stage.
	CondDim int

	// Depth is the number of hidden layers within each network; 0
	// means a single fully autoregressive layer, negative is invalid.
	Depth int

	// BlockDim is the per-dimension hidden block width; each hidden
	// layer is roughly dim*BlockDim wide. Default 8.
	BlockDim int

	// FlowLayers is the number of stacked networks. Default 1.
	FlowLayers int

	// Invert wraps the finished bijection in Invert, prioritising
	// density evaluation (LogProb) over sampling — the usual choice
	// when fitting by maximum likelihood, and the only direction a
	// block autoregressive network supports cheaply.
	Invert bool

	// Permute selects the strategy intertwined between layers:
	// PermuteNone, PermuteFlip or PermuteRandom. Empty selects by
	// dimension (none for 1, flip for 2, random otherwise).
	Permute string
}

// BlockNeuralAutoregressiveFlow builds a block neural autoregressive
// flow (https://arxiv.org/abs/1904.04676) over the given base
// distribution.
func BlockNeuralAutoregressiveFlow(rng *rand.Rand, base distribution.Distribution, cfg BNAFConfig) (*distribution.Transformed, error) {
	if cfg.BlockDim == 0 {
		cfg.BlockDim = 8
	}
	if cfg.FlowLayers == 0 {
		cfg.FlowLayers = 1
	}
	if cfg.FlowLayers < 0 {
		return nil, fmt.Errorf("flows: BlockNeuralAutoregressiveFlow: %d flow layers, must be >= 1", cfg.FlowLayers)
	}
	strategy := cfg.Permute
	if strategy == "" {
		strategy = defaultPermuteStrategy(base.Dim())
	}

	layers := make([]bijection.Bijection, cfg.FlowLayers)
	for i := range layers {
		ban, err := bijection.NewBlockAutoregressiveNetwork(rng, base.Dim(), cfg.CondDim, cfg.Depth, cfg.BlockDim, nil)
		if err != nil {
			return nil, err
		}
		layers[i] = ban
	}

	seq, err := IntertwinePermute(rng, layers, strategy, base.Dim())
	if err != nil {
		return nil, err
	}

	var bij bijection.Bijection
	if len(seq) == 1 {
		bij = seq[0]
	} else {
		chain, err := bijection.NewChain(seq...)
		if err != nil {
			return nil, err
		}
		bij = chain
	}
	if cfg.Invert {
		bij = bijection.NewInvert(bij)
	}
	return distribution.NewTransformed(base, bij)
}

// IntertwinePermute inserts a permutation bijection between
// consecutive layers: given [a, b, c] it returns
// [a, p1, b, p2, c]. With PermuteNone the list is returned unchanged.
func IntertwinePermute(rng *rand.Rand, layers []bijection.Bijection, strategy string, dim int) ([]bijection.Bijection, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("flows: IntertwinePermute: no layers")
	}

	switch strategy {
	case PermuteNone:
		return layers, nil

	case PermuteFlip:
		out := make([]bijection.Bijection, 0, 2*len(layers)-1)
		for i, layer := range layers {
			if i > 0 {
				out = append(out, bijection.NewFlip(dim))
			}
			out = append(out, layer)
		}
		return out, nil

	case PermuteRandom:
		out := make([]bijection.Bijection, 0, 2*len(layers)-1)
		for i, layer := range layers {
			if i > 0 {
				perm, err := bijection.NewPermute(randPerm(rng, dim))
				if err != nil {
					return nil, err
				}
				out = append(out, perm)
			}
			out = append(out, layer)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("flows: IntertwinePermute: unknown strategy %q", strategy)
	}
}

func defaultPermuteStrategy(dim int) string {
	switch {
	case dim <= 1:
		return PermuteNone
	case dim == 2:
		return PermuteFlip
	default:
		return PermuteRandom
	}
}

func randPerm(rng *rand.Rand, n int) []int {
	if rng != nil {
		return rng.Perm(n)
	}
	return rand.Perm(n)
}
