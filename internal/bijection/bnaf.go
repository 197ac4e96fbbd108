package bijection

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// bnafLayer is one stage of a BlockAutoregressiveNetwork: it maps a
// point forward and reports its block Jacobian.
type bnafLayer interface {
	apply(x, cond []float64) ([]float64, *BlockJacobian, error)
}

// activationLayer adapts a block-aware Activation to the layer stack.
// It ignores the condition vector.
type activationLayer struct {
	activation Activation
	nBlocks    int
}

func (a activationLayer) apply(x, _ []float64) ([]float64, *BlockJacobian, error) {
	return a.activation.Apply(x, a.nBlocks)
}

// BlockAutoregressiveNetwork is the bijection at the heart of block
// neural autoregressive flows (https://arxiv.org/abs/1904.04676): a
// stack of block-masked linear layers interleaved with block-aware
// activations. Each layer's Jacobian is block triangular, so the
// network's log-determinant is accumulated by folding the per-layer
// block Jacobians with LogMatMulExp and summing the final
// (dim, 1, 1) result.
//
// The masked structure makes the forward direction cheap but leaves no
// closed-form or cheap numerical inverse: Inverse and InverseAndLogDet
// always return ErrUnsupportedOperation. Callers needing the inverse
// direction must wrap the network in Invert and design the flow
// direction around this limitation.
type BlockAutoregressiveNetwork struct {
	dim      int
	condDim  int
	depth    int
	blockDim int
	layers   []bnafLayer
}

// NewBlockAutoregressiveNetwork constructs a BNAF bijection.
//
// With depth == 0 the network is a single fully autoregressive masked
// linear layer (block shape 1x1 per block). With depth > 0 it stacks
// depth+1 masked linear layers with block shapes (blockDim, 1),
// (blockDim, blockDim) x (depth-1), (1, blockDim), an activation after
// every linear layer except the last. Conditioning inputs are injected
// only at the first layer.
//
// activation defaults to TanhActivation when nil; the default is
// resolved here, at construction, so there is no process-wide mutable
// state. rng seeds the weight initialization; nil falls back to the
// global source.
func NewBlockAutoregressiveNetwork(rng *rand.Rand, dim, condDim, depth, blockDim int, activation Activation) (*BlockAutoregressiveNetwork, error) {
	if dim <= 0 {
		return nil, &DimensionError{Op: "NewBlockAutoregressiveNetwork", Want: 1, Got: dim}
	}
	if condDim < 0 {
		return nil, &DimensionError{Op: "NewBlockAutoregressiveNetwork condition", Want: 0, Got: condDim}
	}
	if depth < 0 {
		return nil, fmt.Errorf("bijection: NewBlockAutoregressiveNetwork: depth %d, must be >= 0", depth)
	}
	if depth > 0 && blockDim <= 0 {
		return nil, fmt.Errorf("bijection: NewBlockAutoregressiveNetwork: block dimension %d, must be > 0", blockDim)
	}
	if activation == nil {
		activation = TanhActivation{}
	}

	var layers []bnafLayer
	if depth == 0 {
		layers = []bnafLayer{newBlockAutoregressiveLinear(rng, dim, 1, 1, condDim)}
	} else {
		type blockShape struct{ in, out int }
		shapes := make([]blockShape, 0, depth+1)
		shapes = append(shapes, blockShape{in: 1, out: blockDim})
		for i := 1; i < depth; i++ {
			shapes = append(shapes, blockShape{in: blockDim, out: blockDim})
		}
		shapes = append(shapes, blockShape{in: blockDim, out: 1})

		for i, s := range shapes {
			cd := 0
			if i == 0 {
				cd = condDim
			}
			layers = append(layers, newBlockAutoregressiveLinear(rng, dim, s.in, s.out, cd))
			layers = append(layers, activationLayer{activation: activation, nBlocks: dim})
		}
		layers = layers[:len(layers)-1] // remove trailing activation
	}

	return &BlockAutoregressiveNetwork{
		dim:      dim,
		condDim:  condDim,
		depth:    depth,
		blockDim: blockDim,
		layers:   layers,
	}, nil
}

// Dim returns the distribution dimension.
func (n *BlockAutoregressiveNetwork) Dim() int { return n.dim }

// CondDim returns the conditioning dimension.
func (n *BlockAutoregressiveNetwork) CondDim() int { return n.condDim }

// Depth returns the number of hidden layers.
func (n *BlockAutoregressiveNetwork) Depth() int { return n.depth }

// BlockDim returns the per-dimension hidden block width.
func (n *BlockAutoregressiveNetwork) BlockDim() int { return n.blockDim }

// Transform feeds x (and the condition, at the first layer only)
// through the layer stack.
func (n *BlockAutoregressiveNetwork) Transform(x, cond []float64) ([]float64, error) {
	if err := checkArgs("BlockAutoregressiveNetwork.Transform", n, x, cond); err != nil {
		return nil, err
	}
	z := x
	for i, layer := range n.layers {
		c := cond
		if i > 0 {
			c = nil
		}
		var err error
		if z, _, err = layer.apply(z, c); err != nil {
			return nil, err
		}
	}
	return z, nil
}

// TransformAndLogDet runs the same forward pass while collecting each
// layer's block Jacobian, folds them right-to-left with LogMatMulExp,
// and returns the final point with the scalar sum of the composed
// (dim, 1, 1) Jacobian.
//
// If the composed log-determinant reaches a non-finite value despite
// the shift trick, the computed results are returned together with an
// advisory ErrNumericalInstability.
func (n *BlockAutoregressiveNetwork) TransformAndLogDet(x, cond []float64) ([]float64, float64, error) {
	if err := checkArgs("BlockAutoregressiveNetwork.TransformAndLogDet", n, x, cond); err != nil {
		return nil, 0, err
	}
	z := x
	jacs := make([]*BlockJacobian, 0, len(n.layers))
	for i, layer := range n.layers {
		c := cond
		if i > 0 {
			c = nil
		}
		zi, jac, err := layer.apply(z, c)
		if err != nil {
			return nil, 0, err
		}
		z = zi
		jacs = append(jacs, jac)
	}

	composed := jacs[len(jacs)-1]
	for i := len(jacs) - 2; i >= 0; i-- {
		var err error
		if composed, err = LogMatMulExp(composed, jacs[i]); err != nil {
			return nil, 0, err
		}
	}

	logDet := composed.Sum()
	if math.IsNaN(logDet) || math.IsInf(logDet, 0) {
		return z, logDet, fmt.Errorf("%w: composed log-determinant is %v", ErrNumericalInstability, logDet)
	}
	return z, logDet, nil
}

// Inverse always fails: the masked-linear structure has no tractable
// analytic or cheap numerical inverse.
func (n *BlockAutoregressiveNetwork) Inverse(y, cond []float64) ([]float64, error) {
	return nil, fmt.Errorf("%w: BlockAutoregressiveNetwork inverse would require numerical root finding", ErrUnsupportedOperation)
}

// InverseAndLogDet always fails, for the same reason as Inverse.
func (n *BlockAutoregressiveNetwork) InverseAndLogDet(y, cond []float64) ([]float64, float64, error) {
	return nil, 0, fmt.Errorf("%w: BlockAutoregressiveNetwork inverse would require numerical root finding", ErrUnsupportedOperation)
}
