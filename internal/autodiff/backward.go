// Package autodiff implements memoized reverse-mode differentiation over
// a scalar computational graph.
//
// The engine propagates d(loss)/d(activation) from terminal (output)
// nodes backward along consumer links:
//
//	d(loss)/d(node) = Σ_c d(loss)/d(c) * d(c)/d(node)
//
// summed over every consumer c, the multivariate chain rule. Each
// backward pass carries an iteration token; a node whose cached gradient
// already carries the current token is returned without recomputation,
// so a node shared by many paths in the DAG is computed exactly once per
// pass and the cost is proportional to edges, not paths.
//
// Usage:
//
//	seed := autodiff.SeedMap(map[graph.NodeID]float64{out: 1.0})
//	err := autodiff.Backward(g, nil, autodiff.Pass{Iteration: 1, Seed: seed})
//	grad := g.Node(x).Grad() // d(loss)/d(x)
package autodiff

import (
	"fmt"

	"github.com/neurograph-ml/neurograph/internal/graph"
)

// SeedFunc supplies the boundary condition of a backward pass: the
// externally computed d(loss)/d(activation) for a terminal node. The
// boolean reports whether the node has a seeded derivative.
//
// Passing the seed explicitly, rather than capturing a registry in a
// closure, keeps the loss function an ordinary injected collaborator.
type SeedFunc func(id graph.NodeID) (float64, bool)

// SeedMap adapts a plain id -> derivative mapping into a SeedFunc.
func SeedMap(seeds map[graph.NodeID]float64) SeedFunc {
	return func(id graph.NodeID) (float64, bool) {
		v, ok := seeds[id]
		return v, ok
	}
}

// Pass identifies one backward pass.
//
// Iteration is an opaque token distinguishing this pass from every
// earlier one; callers must supply a fresh value per pass (a counter
// starting at 1 works — see train.Trainer). Reusing a token makes the
// memo return stale gradients.
type Pass struct {
	Iteration uint64
	Seed      SeedFunc
}

// Backward runs one backward pass over the subgraph reachable from the
// given entry nodes. If entries is nil, every Input node of the graph is
// used, which visits the whole reachable graph.
//
// After a successful pass, every visited node carries d(loss)/d(its
// activation) tagged with pass.Iteration, readable via Node.Grad.
func Backward(g *graph.Graph, entries []graph.NodeID, pass Pass) error {
	if pass.Seed == nil {
		return fmt.Errorf("backward pass %d: nil seed function", pass.Iteration)
	}
	if entries == nil {
		entries = g.InputIDs()
	}
	for _, id := range entries {
		if _, err := Propagate(g, id, pass); err != nil {
			return err
		}
	}
	return nil
}

// Propagate computes d(loss)/d(activation) for one node by walking its
// consumers, and returns the cached value immediately on a memo hit for
// the current pass.
//
// Terminal nodes (no consumers) take their gradient from pass.Seed. A
// terminal with no seeded derivative is a bookkeeping gap, not a fatal
// error: it defaults to 0.0 and logs a warning, so one dangling probe
// node cannot abort a whole training run.
//
// The traversal is an explicit stack with an in-progress mark, so cyclic
// wiring returns ErrCycleDetected.
func Propagate(g *graph.Graph, id graph.NodeID, pass Pass) (float64, error) {
	root := g.Node(id)
	if root == nil {
		return 0, fmt.Errorf("propagate to node %d: %w", id, graph.ErrNodeNotFound)
	}

	type frame struct {
		id       graph.NodeID
		expanded bool
	}
	// A node that is marked visiting but not yet memoized sits between
	// its enter and exit frames, i.e. on the current path. The memo
	// check below runs first, so finished nodes never trip the mark.
	visiting := make(map[graph.NodeID]bool)
	stack := []frame{{id: id}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := g.Node(f.id)

		if f.expanded {
			if err := accumulate(g, n, pass); err != nil {
				return 0, err
			}
			continue
		}

		if n.GradIteration() == pass.Iteration {
			continue // memo hit
		}
		if visiting[f.id] {
			return 0, fmt.Errorf("propagate to node %q via node %q: %w", root.Name(), n.Name(), graph.ErrCycleDetected)
		}
		visiting[f.id] = true

		stack = append(stack, frame{id: f.id, expanded: true})
		for _, c := range n.Consumers() {
			stack = append(stack, frame{id: c})
		}
	}

	return root.Grad(), nil
}

// accumulate finalizes one node's gradient once every consumer carries
// the current pass token.
func accumulate(g *graph.Graph, n *graph.Node, pass Pass) error {
	consumers := n.Consumers()

	if len(consumers) == 0 {
		if seed, ok := pass.Seed(n.ID()); ok {
			n.SetGrad(pass.Iteration, seed)
			return nil
		}
		// Dangling terminal with no declared loss derivative.
		g.Logger().Warn("terminal node has no seeded loss derivative, defaulting gradient to zero",
			"node", n.Name(),
			"iteration", pass.Iteration,
		)
		n.SetGrad(pass.Iteration, 0)
		return nil
	}

	total := 0.0
	for _, cid := range consumers {
		c := g.Node(cid)
		local, err := c.DerivativeAgainst(n.ID())
		if err != nil {
			return fmt.Errorf("backward pass %d: %w", pass.Iteration, err)
		}
		total += c.Grad() * local
	}
	n.SetGrad(pass.Iteration, total)
	return nil
}
