// Package optim implements weight updates for the computational graph.
//
// The only optimizer is plain stochastic gradient descent; the graph is
// scalar-valued, so there is nothing to vectorize and no parameter
// grouping to manage.
package optim

import (
	"fmt"

	"github.com/neurograph-ml/neurograph/internal/graph"
)

// SGD applies a gradient-descent step to every edge weight of the nodes
// it is given.
//
// Update rule for an edge producer -> consumer:
//
//	weight = weight - lr * d(loss)/d(consumer) * local * producer.LastActivation()
//
// where local is the consumer's transfer-function derivative with
// respect to its weighted sum: 1 for Sum nodes, a*(1-a) for Sigmoid
// nodes with cached activation a.
//
// Step must run strictly after a backward pass for the same iteration;
// stepping against a gradient cached by an earlier pass silently applies
// a stale update. The engine does not detect this, it is a caller
// contract.
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.0001)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.0001
	}
	return &SGD{lr: config.LR}
}

// LR returns the learning rate.
func (s *SGD) LR() float64 { return s.lr }

// Step updates the input-edge weights of every listed node. If ids is
// nil, every node in the graph is visited. Input and Constant nodes have
// no input edges and are skipped.
func (s *SGD) Step(g *graph.Graph, ids []graph.NodeID) error {
	if ids == nil {
		ids = g.NodeIDs()
	}
	for _, id := range ids {
		n := g.Node(id)
		if n == nil {
			return fmt.Errorf("optimizer step on node %d: %w", id, graph.ErrNodeNotFound)
		}

		var local float64
		switch n.Kind() {
		case graph.KindInput, graph.KindConstant:
			continue
		case graph.KindSum:
			local = 1
		case graph.KindSigmoid:
			a := n.LastActivation()
			local = a * (1 - a)
		}

		for _, e := range n.Inputs() {
			grad := n.Grad() * local * g.Node(e.From).LastActivation()
			if err := g.SetWeight(id, e.From, e.Weight-s.lr*grad); err != nil {
				return fmt.Errorf("optimizer step on node %q: %w", n.Name(), err)
			}
		}
	}
	return nil
}
