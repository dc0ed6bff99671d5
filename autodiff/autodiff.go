// Copyright 2026 Neurograph ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides memoized reverse-mode differentiation over a
// scalar computational graph.
//
// Each backward pass is identified by an iteration token and seeded at
// terminal nodes with externally computed d(loss)/d(activation) values.
// Memoization on the token guarantees each node of a shared-fan-out DAG
// is differentiated exactly once per pass.
//
// Example:
//
//	seed := autodiff.SeedMap(map[graph.NodeID]float64{out: 1.0})
//	err := autodiff.Backward(g, nil, autodiff.Pass{Iteration: 1, Seed: seed})
//	grad := g.Node(x).Grad() // d(loss)/d(x)
package autodiff

import (
	"github.com/neurograph-ml/neurograph/internal/autodiff"
	"github.com/neurograph-ml/neurograph/internal/graph"
)

// Pass identifies one backward pass: a fresh iteration token plus the
// seed derivatives for the terminal nodes.
type Pass = autodiff.Pass

// SeedFunc supplies d(loss)/d(activation) for a terminal node.
type SeedFunc = autodiff.SeedFunc

// SeedMap adapts a plain id -> derivative mapping into a SeedFunc.
func SeedMap(seeds map[graph.NodeID]float64) SeedFunc {
	return autodiff.SeedMap(seeds)
}

// Backward runs one backward pass over the subgraph reachable from the
// given entry nodes (every Input node when entries is nil).
func Backward(g *graph.Graph, entries []graph.NodeID, pass Pass) error {
	return autodiff.Backward(g, entries, pass)
}

// Propagate computes d(loss)/d(activation) for one node, returning the
// memoized value on a repeat call within the same pass.
func Propagate(g *graph.Graph, id graph.NodeID, pass Pass) (float64, error) {
	return autodiff.Propagate(g, id, pass)
}
