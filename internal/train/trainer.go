package train

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/neurograph-ml/neurograph/internal/autodiff"
	"github.com/neurograph-ml/neurograph/internal/graph"
	"github.com/neurograph-ml/neurograph/internal/optim"
)

// Config configures a Trainer.
type Config struct {
	// Graph is the wired computational graph to train.
	Graph *graph.Graph

	// Inputs are the Input nodes fed from InputValues, in row order.
	Inputs []graph.NodeID

	// Outputs are the terminal nodes scored against GroundTruths, in
	// row order.
	Outputs []graph.NodeID

	// InputValues is the flat training-input slice; every len(Inputs)
	// values form one row.
	InputValues []float64

	// GroundTruths is the flat expected-output slice; every
	// len(Outputs) values form one row.
	GroundTruths []float64

	// Loss and LossGrad score an iteration and seed the backward pass.
	// Both default to mean squared error.
	Loss     LossFunc
	LossGrad GradFunc

	// LearningRate is the SGD step size (default: 0.0001).
	LearningRate float64

	// Logger receives per-iteration diagnostics. Defaults to the
	// graph's logger.
	Logger *slog.Logger
}

// Trainer drives training over a wired graph: per iteration it assigns
// one input row, forces a forward pass over the output nodes, scores the
// loss, seeds and runs the backward pass under a fresh iteration token,
// and applies the SGD weight update.
type Trainer struct {
	g       *graph.Graph
	inputs  []graph.NodeID
	outputs []graph.NodeID
	in      *Dataset
	truth   *Dataset
	loss    LossFunc
	grad    GradFunc
	opt     *optim.SGD
	logger  *slog.Logger
	runID   string
	pass    uint64
}

// New validates the configuration and builds a Trainer. The input and
// ground-truth slices must reshape into the same number of rows.
func New(cfg Config) (*Trainer, error) {
	if cfg.Graph == nil {
		return nil, fmt.Errorf("trainer: nil graph")
	}
	if len(cfg.Inputs) == 0 || len(cfg.Outputs) == 0 {
		return nil, fmt.Errorf("trainer: at least one input and one output node required")
	}
	in, err := NewDataset(cfg.InputValues, len(cfg.Inputs))
	if err != nil {
		return nil, fmt.Errorf("trainer inputs: %w", err)
	}
	truth, err := NewDataset(cfg.GroundTruths, len(cfg.Outputs))
	if err != nil {
		return nil, fmt.Errorf("trainer ground truths: %w", err)
	}
	if in.Rows() != truth.Rows() {
		return nil, fmt.Errorf("trainer: %d input rows but %d ground-truth rows", in.Rows(), truth.Rows())
	}
	if cfg.Loss == nil {
		cfg.Loss = MSE
	}
	if cfg.LossGrad == nil {
		cfg.LossGrad = MSEGrad
	}
	if cfg.Logger == nil {
		cfg.Logger = cfg.Graph.Logger()
	}
	return &Trainer{
		g:       cfg.Graph,
		inputs:  cfg.Inputs,
		outputs: cfg.Outputs,
		in:      in,
		truth:   truth,
		loss:    cfg.Loss,
		grad:    cfg.LossGrad,
		opt:     optim.NewSGD(optim.SGDConfig{LR: cfg.LearningRate}),
		logger:  cfg.Logger,
		runID:   uuid.NewString(),
	}, nil
}

// RunID returns the unique id tagging this training run's log records.
func (t *Trainer) RunID() string { return t.runID }

// Rows returns the number of training rows (iterations per epoch).
func (t *Trainer) Rows() int { return t.in.Rows() }

// TrainIteration runs one full training step for the given iteration
// index (a ring over the dataset rows) and returns its loss.
func (t *Trainer) TrainIteration(iter int) (float64, error) {
	row := t.in.Row(iter)
	for i, id := range t.inputs {
		if err := t.g.SetValue(id, row[i]); err != nil {
			return 0, fmt.Errorf("iteration %d: %w", iter, err)
		}
	}

	activations, err := t.g.Evaluate(t.outputs)
	if err != nil {
		return 0, fmt.Errorf("iteration %d: %w", iter, err)
	}

	truths := t.truth.Row(iter)
	loss := t.loss(activations, truths)

	seeds := make(map[graph.NodeID]float64, len(t.outputs))
	for i, sd := range t.grad(activations, truths) {
		seeds[t.outputs[i]] = sd
	}

	// Tokens start at 1; fresh nodes carry a sentinel that never
	// collides, so every pass sees a cold memo.
	t.pass++
	pass := autodiff.Pass{Iteration: t.pass, Seed: autodiff.SeedMap(seeds)}
	if err := autodiff.Backward(t.g, t.inputs, pass); err != nil {
		return 0, fmt.Errorf("iteration %d: %w", iter, err)
	}

	if err := t.opt.Step(t.g, nil); err != nil {
		return 0, fmt.Errorf("iteration %d: %w", iter, err)
	}

	t.logger.Debug("training iteration",
		"run", t.runID,
		"iteration", iter,
		"loss", loss,
	)
	return loss, nil
}

// TrainEpoch runs one pass over every training row and returns the mean
// loss of the epoch.
func (t *Trainer) TrainEpoch() (float64, error) {
	total := 0.0
	for iter := 0; iter < t.in.Rows(); iter++ {
		loss, err := t.TrainIteration(iter)
		if err != nil {
			return 0, err
		}
		total += loss
	}
	avg := total / float64(t.in.Rows())
	t.logger.Info("epoch complete", "run", t.runID, "meanLoss", avg)
	return avg, nil
}

// Train runs the given number of epochs and returns the mean loss of
// the last one.
func (t *Trainer) Train(epochs int) (float64, error) {
	last := 0.0
	for e := 0; e < epochs; e++ {
		avg, err := t.TrainEpoch()
		if err != nil {
			return 0, fmt.Errorf("epoch %d: %w", e, err)
		}
		last = avg
	}
	return last, nil
}
