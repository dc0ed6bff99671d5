// Copyright 2026 Neurograph ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the scalar computational graph: nodes, weighted
// wiring, and pull-based forward evaluation.
//
// # Overview
//
// A Graph owns an arena of scalar nodes of four kinds:
//   - Input: a source whose value is assigned per training row
//   - Constant: a fixed source, typically a 1.0 bias term
//   - Sum: weighted sum of its inputs (identity transfer)
//   - Sigmoid: logistic function of the weighted sum of its inputs
//
// Nodes are addressed by integer NodeIDs into the arena; the graph also
// keeps a name index for lookup by the loss collaborator.
//
// # Basic Usage
//
//	g := graph.New(graph.Config{})
//
//	a, _ := g.AddInput("a", 2.0)
//	b, _ := g.AddInput("b", 4.0)
//	s, _ := g.AddSum("s")
//
//	g.ConnectWeighted(a, s, 0.5)
//	g.ConnectWeighted(b, s, 1.0)
//
//	out, _ := g.Activation(s) // 5.0
//
// # Wiring
//
// Connect registers an edge in both directions: the consumer stores the
// weighted input, the producer stores a back-link used by the backward
// pass. Re-wiring the same pair overwrites the weight. Wiring into an
// Input or Constant node fails with ErrUnsupportedOperation.
//
// # Evaluation
//
// Activation recomputes from scratch on every call and caches the result
// per node (LastActivation). The graph must be acyclic; cyclic wiring is
// reported as ErrCycleDetected instead of overflowing the stack.
//
// For differentiation see the autodiff package; for weight updates see
// optim; for the training loop see train.
package graph
