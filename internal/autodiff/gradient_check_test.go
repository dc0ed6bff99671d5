package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/neurograph-ml/neurograph/internal/autodiff"
	"github.com/neurograph-ml/neurograph/internal/graph"
)

// TestGradientCheck_SigmoidNetwork compares the engine's gradients with
// central finite differences over a two-input, two-hidden-sigmoid, one
// sum-output network with a squared-error loss.
func TestGradientCheck_SigmoidNetwork(t *testing.T) {
	g := graph.New(graph.Config{})

	x1, err := g.AddInput("x1", 0)
	require.NoError(t, err)
	x2, err := g.AddInput("x2", 0)
	require.NoError(t, err)
	bias, err := g.AddConstant("bias", 1.0)
	require.NoError(t, err)
	h1, err := g.AddSigmoid("h1")
	require.NoError(t, err)
	h2, err := g.AddSigmoid("h2")
	require.NoError(t, err)
	out, err := g.AddSum("out")
	require.NoError(t, err)

	require.NoError(t, g.ConnectWeighted(x1, h1, 0.8))
	require.NoError(t, g.ConnectWeighted(x2, h1, -0.3))
	require.NoError(t, g.ConnectWeighted(bias, h1, 0.1))
	require.NoError(t, g.ConnectWeighted(x1, h2, -0.5))
	require.NoError(t, g.ConnectWeighted(x2, h2, 0.6))
	require.NoError(t, g.ConnectWeighted(bias, h2, -0.2))
	require.NoError(t, g.ConnectWeighted(h1, out, 1.2))
	require.NoError(t, g.ConnectWeighted(h2, out, -0.7))

	const target = 0.7

	// loss as a function of the two input values.
	loss := func(x []float64) float64 {
		require.NoError(t, g.SetValue(x1, x[0]))
		require.NoError(t, g.SetValue(x2, x[1]))
		a, err := g.Activation(out)
		require.NoError(t, err)
		d := a - target
		return d * d
	}

	point := []float64{0.4, -0.9}
	numerical := fd.Gradient(nil, loss, point, &fd.Settings{Formula: fd.Central})

	// Engine gradients at the same point. Evaluating loss leaves the
	// graph in the perturbed state, so re-evaluate first.
	require.NoError(t, g.SetValue(x1, point[0]))
	require.NoError(t, g.SetValue(x2, point[1]))
	a, err := g.Activation(out)
	require.NoError(t, err)

	pass := autodiff.Pass{
		Iteration: 1,
		Seed:      autodiff.SeedMap(map[graph.NodeID]float64{out: 2 * (a - target)}),
	}
	require.NoError(t, autodiff.Backward(g, []graph.NodeID{x1, x2}, pass))

	assert.InDelta(t, numerical[0], g.Node(x1).Grad(), 1e-6, "d(loss)/d(x1)")
	assert.InDelta(t, numerical[1], g.Node(x2).Grad(), 1e-6, "d(loss)/d(x2)")
}
