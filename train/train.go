// Copyright 2026 Neurograph ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the training-loop collaborators around the
// graph core: row datasets, loss functions, and the per-epoch driver.
//
// Example:
//
//	trainer, err := train.New(train.Config{
//	    Graph:        g,
//	    Inputs:       []graph.NodeID{a, b},
//	    Outputs:      []graph.NodeID{out},
//	    InputValues:  inputs,      // flat, len(Inputs) values per row
//	    GroundTruths: truths,      // flat, len(Outputs) values per row
//	    LearningRate: 0.001,
//	})
//	meanLoss, err := trainer.Train(10)
package train

import (
	"github.com/neurograph-ml/neurograph/internal/train"
)

// Trainer drives training: per iteration it assigns an input row, runs
// the forward pass, scores the loss, runs the backward pass under a
// fresh iteration token, and applies the weight update.
type Trainer = train.Trainer

// Config configures a Trainer.
type Config = train.Config

// New validates the configuration and builds a Trainer.
func New(cfg Config) (*Trainer, error) {
	return train.New(cfg)
}

// Dataset holds per-iteration rows of training values.
type Dataset = train.Dataset

// NewDataset reshapes a flat value slice into rows of the given width.
func NewDataset(vals []float64, width int) (*Dataset, error) {
	return train.NewDataset(vals, width)
}

// LossFunc scores one iteration's output activations against the
// expected ground truths.
type LossFunc = train.LossFunc

// GradFunc returns the seed derivative d(loss)/d(activation) per output.
type GradFunc = train.GradFunc

// MSE is the mean squared error loss.
func MSE(activations, truths []float64) float64 {
	return train.MSE(activations, truths)
}

// MSEGrad is the seed derivative matching MSE.
func MSEGrad(activations, truths []float64) []float64 {
	return train.MSEGrad(activations, truths)
}

// RunConfig is the YAML-loadable configuration consumed by the CLI.
type RunConfig = train.RunConfig

// DefaultRunConfig returns the defaults used when no config file is
// given.
func DefaultRunConfig() RunConfig {
	return train.DefaultRunConfig()
}

// LoadRunConfig reads a YAML config file over the defaults.
func LoadRunConfig(path string) (RunConfig, error) {
	return train.LoadRunConfig(path)
}
