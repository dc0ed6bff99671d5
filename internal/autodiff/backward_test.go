package autodiff_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurograph-ml/neurograph/internal/autodiff"
	"github.com/neurograph-ml/neurograph/internal/graph"
)

// diamond builds A feeding both B and C, both feeding D:
//
//	A --2--> B --1--> D
//	A --3--> C --1--> D
func diamond(t *testing.T) (*graph.Graph, graph.NodeID, graph.NodeID, graph.NodeID, graph.NodeID) {
	t.Helper()
	g := graph.New(graph.Config{})
	a, err := g.AddInput("a", 1.0)
	require.NoError(t, err)
	b, err := g.AddSum("b")
	require.NoError(t, err)
	c, err := g.AddSum("c")
	require.NoError(t, err)
	d, err := g.AddSum("d")
	require.NoError(t, err)

	require.NoError(t, g.ConnectWeighted(a, b, 2.0))
	require.NoError(t, g.ConnectWeighted(a, c, 3.0))
	require.NoError(t, g.ConnectWeighted(b, d, 1.0))
	require.NoError(t, g.ConnectWeighted(c, d, 1.0))
	return g, a, b, c, d
}

// TestBackward_DiamondDAG tests the multivariate chain rule over shared
// fan-out: d(loss)/d(A) sums over both paths.
func TestBackward_DiamondDAG(t *testing.T) {
	g, a, b, c, d := diamond(t)

	pass := autodiff.Pass{
		Iteration: 1,
		Seed:      autodiff.SeedMap(map[graph.NodeID]float64{d: 1.0}),
	}
	require.NoError(t, autodiff.Backward(g, []graph.NodeID{a}, pass))

	// d(loss)/d(A) = 2*1 + 3*1
	assert.Equal(t, 5.0, g.Node(a).Grad())
	assert.Equal(t, 1.0, g.Node(b).Grad())
	assert.Equal(t, 1.0, g.Node(c).Grad())
	assert.Equal(t, 1.0, g.Node(d).Grad())
}

// TestPropagate_MemoizedWithinPass tests that a repeat call under the
// same iteration token returns the cached value without recomputing:
// changing a weight between the calls must not change the result.
func TestPropagate_MemoizedWithinPass(t *testing.T) {
	g, a, b, _, d := diamond(t)

	pass := autodiff.Pass{
		Iteration: 1,
		Seed:      autodiff.SeedMap(map[graph.NodeID]float64{d: 1.0}),
	}
	first, err := autodiff.Propagate(g, a, pass)
	require.NoError(t, err)
	assert.Equal(t, 5.0, first)

	// Rewire A->B with a different weight. A memo hit must ignore it.
	require.NoError(t, g.ConnectWeighted(a, b, 10.0))
	second, err := autodiff.Propagate(g, a, pass)
	require.NoError(t, err)
	assert.Equal(t, first, second, "second call under same token must be a memo hit")

	// A fresh token recomputes and sees the new weight: 10*1 + 3*1.
	fresh := autodiff.Pass{Iteration: 2, Seed: pass.Seed}
	third, err := autodiff.Propagate(g, a, fresh)
	require.NoError(t, err)
	assert.Equal(t, 13.0, third)
}

// TestBackward_SigmoidChain tests the sigmoid local derivative in the
// chain: x --w--> sigmoid, seeded with 1.
func TestBackward_SigmoidChain(t *testing.T) {
	g := graph.New(graph.Config{})
	x, err := g.AddInput("x", 0.5)
	require.NoError(t, err)
	s, err := g.AddSigmoid("s")
	require.NoError(t, err)
	require.NoError(t, g.ConnectWeighted(x, s, 2.0))

	act, err := g.Activation(s)
	require.NoError(t, err)

	pass := autodiff.Pass{
		Iteration: 1,
		Seed:      autodiff.SeedMap(map[graph.NodeID]float64{s: 1.0}),
	}
	grad, err := autodiff.Propagate(g, x, pass)
	require.NoError(t, err)
	assert.InDelta(t, act*(1-act)*2.0, grad, 1e-12)
}

// TestBackward_UnseededTerminal tests the degrade-to-zero policy: a
// terminal with no seeded derivative contributes a zero gradient and
// logs a warning instead of failing.
func TestBackward_UnseededTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	g := graph.New(graph.Config{Logger: logger})
	x, err := g.AddInput("x", 1.0)
	require.NoError(t, err)
	s, err := g.AddSum("dangling")
	require.NoError(t, err)
	require.NoError(t, g.ConnectWeighted(x, s, 2.0))

	pass := autodiff.Pass{
		Iteration: 1,
		Seed:      autodiff.SeedMap(nil),
	}
	require.NoError(t, autodiff.Backward(g, nil, pass))

	assert.Equal(t, 0.0, g.Node(s).Grad())
	assert.Equal(t, 0.0, g.Node(x).Grad())
	assert.Contains(t, buf.String(), "no seeded loss derivative")
	assert.Contains(t, buf.String(), "dangling")
}

// TestBackward_DefaultEntries tests that nil entries seed the pass from
// every Input node.
func TestBackward_DefaultEntries(t *testing.T) {
	g, a, _, _, d := diamond(t)

	pass := autodiff.Pass{
		Iteration: 1,
		Seed:      autodiff.SeedMap(map[graph.NodeID]float64{d: 1.0}),
	}
	require.NoError(t, autodiff.Backward(g, nil, pass))
	assert.Equal(t, 5.0, g.Node(a).Grad())
}

// TestBackward_CycleDetected tests that cyclic wiring is reported.
func TestBackward_CycleDetected(t *testing.T) {
	g := graph.New(graph.Config{})
	x, err := g.AddInput("x", 1.0)
	require.NoError(t, err)
	s1, err := g.AddSum("s1")
	require.NoError(t, err)
	s2, err := g.AddSum("s2")
	require.NoError(t, err)
	require.NoError(t, g.ConnectWeighted(x, s1, 1.0))
	require.NoError(t, g.ConnectWeighted(s1, s2, 1.0))
	require.NoError(t, g.ConnectWeighted(s2, s1, 1.0))

	pass := autodiff.Pass{Iteration: 1, Seed: autodiff.SeedMap(nil)}
	err = autodiff.Backward(g, nil, pass)
	assert.ErrorIs(t, err, graph.ErrCycleDetected)
}

// TestBackward_NilSeed tests that a pass without a seed function is
// rejected.
func TestBackward_NilSeed(t *testing.T) {
	g, _, _, _, _ := diamond(t)
	err := autodiff.Backward(g, nil, autodiff.Pass{Iteration: 1})
	assert.Error(t, err)
}

// TestBackward_SeededScaling tests that the seed value scales linearly
// through the chain rule.
func TestBackward_SeededScaling(t *testing.T) {
	g, a, _, _, d := diamond(t)

	pass := autodiff.Pass{
		Iteration: 1,
		Seed:      autodiff.SeedMap(map[graph.NodeID]float64{d: -0.5}),
	}
	grad, err := autodiff.Propagate(g, a, pass)
	require.NoError(t, err)
	assert.InDelta(t, -2.5, grad, 1e-12)
	assert.False(t, math.IsNaN(grad))
}
