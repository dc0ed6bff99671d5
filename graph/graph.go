// Copyright 2026 Neurograph ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"github.com/neurograph-ml/neurograph/internal/graph"
)

// Graph owns the node arena and the name index.
type Graph = graph.Graph

// Config configures a new Graph. The zero value uses a time-seeded
// weight generator and slog.Default().
type Config = graph.Config

// New creates an empty graph.
func New(cfg Config) *Graph {
	return graph.New(cfg)
}

// Node is a scalar computational unit owned by a Graph.
type Node = graph.Node

// NodeID is an index into a graph's node arena.
type NodeID = graph.NodeID

// Edge is one weighted input connection.
type Edge = graph.Edge

// Kind identifies one of the closed set of node variants.
type Kind = graph.Kind

// Node kinds.
const (
	KindInput    = graph.KindInput
	KindConstant = graph.KindConstant
	KindSum      = graph.KindSum
	KindSigmoid  = graph.KindSigmoid
)

// Sentinel errors for graph operations.
var (
	ErrDuplicateName        = graph.ErrDuplicateName
	ErrNodeNotFound         = graph.ErrNodeNotFound
	ErrUnsupportedOperation = graph.ErrUnsupportedOperation
	ErrNotAnInput           = graph.ErrNotAnInput
	ErrNoInputs             = graph.ErrNoInputs
	ErrCycleDetected        = graph.ErrCycleDetected
)
