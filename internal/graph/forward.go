package graph

import (
	"fmt"
	"math"
)

// Activation computes the node's output value and caches it.
//
// Evaluation is pull-based and recomputes from scratch on every call:
// Input and Constant nodes return their stored value, Sum returns the
// weighted sum of its producers' activations, Sigmoid returns
// logistic(weighted sum) where logistic(z) = 1 / (1 + e^-z).
//
// There is no memoization across producers within a call: a shared
// ancestor reachable over several paths is recomputed once per path.
// Repeated evaluation of an unchanged graph is bit-identical, so the
// redundancy costs time, never correctness.
//
// The traversal is an explicit stack, not recursion, and tracks the
// current path so cyclic wiring returns ErrCycleDetected instead of
// exhausting the call stack.
func (g *Graph) Activation(id NodeID) (float64, error) {
	root := g.Node(id)
	if root == nil {
		return 0, fmt.Errorf("activation of node %d: %w", id, ErrNodeNotFound)
	}

	type frame struct {
		id       NodeID
		expanded bool
	}
	onPath := make(map[NodeID]bool)
	stack := []frame{{id: id}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := g.nodes[f.id]

		if f.expanded {
			// All producers below this frame have fresh activations.
			switch n.kind {
			case KindInput, KindConstant:
				n.activation = n.value
			case KindSum:
				n.activation = g.weightedSum(n)
			case KindSigmoid:
				n.activation = logistic(g.weightedSum(n))
			}
			delete(onPath, f.id)
			continue
		}

		if onPath[f.id] {
			return 0, fmt.Errorf("activation of node %q via node %q: %w", root.name, n.name, ErrCycleDetected)
		}
		onPath[f.id] = true

		stack = append(stack, frame{id: f.id, expanded: true})
		for _, e := range n.inputs {
			stack = append(stack, frame{id: e.From})
		}
	}

	return root.activation, nil
}

// Evaluate forces a forward pass over each of the given nodes and
// returns their activations in the same order.
func (g *Graph) Evaluate(ids []NodeID) ([]float64, error) {
	out := make([]float64, len(ids))
	for i, id := range ids {
		a, err := g.Activation(id)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func (g *Graph) weightedSum(n *Node) float64 {
	sum := 0.0
	for _, e := range n.inputs {
		sum += g.nodes[e.From].activation * e.Weight
	}
	return sum
}

func logistic(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
