// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package bijection provides invertible transformations for building
// normalizing-flow density models.
//
// # Overview
//
// This package contains:
//   - Bijection: the interface every transform implements
//   - Structural operators: Chain, Invert, Permute, Flip
//   - Elementwise bijections: Affine, Tanh
//   - BlockAutoregressiveNetwork: the BNAF bijection
//   - Block Jacobian algebra: BlockJacobian, ExpandDiagonal, LogMatMulExp
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/flow/bijection"
//	    "golang.org/x/exp/rand"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(0))
//	    ban, err := bijection.NewBlockAutoregressiveNetwork(rng, 2, 0, 1, 8, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    y, logDet, err := ban.TransformAndLogDet([]float64{0.5, -1.0}, nil)
//	    // y is the transformed point, logDet is log|det(∂y/∂x)|
//	}
//
// # Composition
//
// Bijections compose structurally while preserving the contract:
//
//	perm, _ := bijection.NewPermute([]int{1, 0})
//	chain, _ := bijection.NewChain(ban, perm)
//	density := bijection.NewInvert(chain) // cheap LogProb direction
//
// # Errors
//
// Dimension disagreements surface as ErrDimensionMismatch, inverses of
// one-directional networks as ErrUnsupportedOperation, and non-finite
// composed log-determinants as the advisory ErrNumericalInstability.
package bijection
