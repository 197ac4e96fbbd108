// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package bijection

import (
	"golang.org/x/exp/rand"

	"github.com/born-ml/flow/internal/bijection"
)

// Bijection is the contract every flow transform implements.
type Bijection = bijection.Bijection

// Activation is a block-aware elementwise activation for
// BlockAutoregressiveNetwork layers.
type Activation = bijection.Activation

// TanhActivation is the default block-aware activation.
type TanhActivation = bijection.TanhActivation

// Errors

// ErrDimensionMismatch reports shapes disagreeing with a bijection's
// declared dimensions.
var ErrDimensionMismatch = bijection.ErrDimensionMismatch

// ErrInvalidPermutation reports a non-bijective permutation array.
var ErrInvalidPermutation = bijection.ErrInvalidPermutation

// ErrUnsupportedOperation reports an inverse requested on a bijection
// with no tractable inverse.
var ErrUnsupportedOperation = bijection.ErrUnsupportedOperation

// ErrNumericalInstability is the advisory error flagging non-finite
// composed log-determinants.
var ErrNumericalInstability = bijection.ErrNumericalInstability

// DimensionError provides detailed information about a dimension
// mismatch.
type DimensionError = bijection.DimensionError

// Structural operators

// Chain composes an ordered sequence of bijections.
type Chain = bijection.Chain

// NewChain creates a Chain from bijections in application order.
func NewChain(bijections ...Bijection) (*Chain, error) {
	return bijection.NewChain(bijections...)
}

// Invert wraps a bijection with transform and inverse roles swapped.
type Invert = bijection.Invert

// NewInvert wraps b with transform and inverse roles swapped.
func NewInvert(b Bijection) *Invert {
	return bijection.NewInvert(b)
}

// Permute reorders vector elements; zero logdet.
type Permute = bijection.Permute

// NewPermute creates a permutation bijection from an index array.
func NewPermute(permutation []int) (*Permute, error) {
	return bijection.NewPermute(permutation)
}

// Flip reverses element order; zero logdet.
type Flip = bijection.Flip

// NewFlip creates a Flip over vectors of the given dimension.
func NewFlip(dim int) *Flip {
	return bijection.NewFlip(dim)
}

// Elementwise bijections

// Affine is the elementwise map y = loc + scale*x.
type Affine = bijection.Affine

// NewAffine creates an elementwise affine bijection with positive
// scale.
func NewAffine(loc, scale []float64) (*Affine, error) {
	return bijection.NewAffine(loc, scale)
}

// Tanh is the elementwise hyperbolic-tangent bijection.
type Tanh = bijection.Tanh

// NewTanh creates a Tanh bijection over vectors of the given
// dimension.
func NewTanh(dim int) *Tanh {
	return bijection.NewTanh(dim)
}

// Block autoregressive network

// BlockAutoregressiveNetwork is the BNAF bijection.
type BlockAutoregressiveNetwork = bijection.BlockAutoregressiveNetwork

// NewBlockAutoregressiveNetwork constructs a BNAF bijection; see the
// internal package documentation for the layer-stack layout.
func NewBlockAutoregressiveNetwork(rng *rand.Rand, dim, condDim, depth, blockDim int, activation Activation) (*BlockAutoregressiveNetwork, error) {
	return bijection.NewBlockAutoregressiveNetwork(rng, dim, condDim, depth, blockDim, activation)
}

// Block Jacobian algebra

// BlockJacobian is a rank-3 array of per-block Jacobian
// log-magnitudes.
type BlockJacobian = bijection.BlockJacobian

// NewBlockJacobian creates a BlockJacobian from a block-major flat
// slice.
func NewBlockJacobian(nBlocks, rows, cols int, data []float64) (*BlockJacobian, error) {
	return bijection.NewBlockJacobian(nBlocks, rows, cols, data)
}

// ExpandDiagonal builds the block-diagonal representation of an
// elementwise map's log-derivatives.
func ExpandDiagonal(values []float64, nBlocks int) (*BlockJacobian, error) {
	return bijection.ExpandDiagonal(values, nBlocks)
}

// LogMatMulExp computes the numerically stable log(exp(A) @ exp(B))
// per block.
func LogMatMulExp(a, b *BlockJacobian) (*BlockJacobian, error) {
	return bijection.LogMatMulExp(a, b)
}
