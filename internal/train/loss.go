package train

// LossFunc scores one iteration: it receives the output nodes'
// activations and the expected ground truths in the same index order and
// returns the loss.
type LossFunc func(activations, truths []float64) float64

// GradFunc returns d(loss)/d(activation) for each output node, in the
// same index order as the activations. The result seeds the backward
// pass.
type GradFunc func(activations, truths []float64) []float64

// MSE is the mean squared error over the output nodes:
//
//	loss = Σ_i (a_i - t_i)² / n
func MSE(activations, truths []float64) float64 {
	loss := 0.0
	for i, a := range activations {
		d := a - truths[i]
		loss += d * d / float64(len(activations))
	}
	return loss
}

// MSEGrad is the seed derivative matching MSE:
//
//	d(loss)/d(a_i) = 2 * (a_i - t_i) / n
func MSEGrad(activations, truths []float64) []float64 {
	grads := make([]float64, len(activations))
	for i, a := range activations {
		grads[i] = 2 * (a - truths[i]) / float64(len(activations))
	}
	return grads
}
