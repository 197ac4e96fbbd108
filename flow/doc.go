// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package flow provides probability distributions and flow
// constructors built on the bijection package.
//
// # Overview
//
// This package contains:
//   - Distribution: the interface for densities over real vectors
//   - StandardNormal: the usual flow base distribution
//   - Transformed: a base distribution pushed through a bijection
//   - BlockNeuralAutoregressiveFlow: a ready-made BNAF architecture
//   - LogProbBatch, SampleN: batched evaluation helpers
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/flow/flow"
//	    "golang.org/x/exp/rand"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(0))
//	    base, _ := flow.NewStandardNormal(2)
//	    model, err := flow.BlockNeuralAutoregressiveFlow(rng, base, flow.BNAFConfig{
//	        Depth:      1,
//	        BlockDim:   8,
//	        FlowLayers: 2,
//	        Invert:     true, // density-evaluation direction
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    logProb, err := model.LogProb([]float64{0.5, -1.0}, nil)
//	}
//
// # Flow direction
//
// A block autoregressive network supports only its forward pass, so a
// flow built from it is one-directional: with Invert true, LogProb is
// cheap and Sample returns ErrUnsupportedOperation; with Invert false
// the roles swap. Choose the direction to match the use
// (density fitting vs. sampling).
package flow
