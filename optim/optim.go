// Copyright 2026 Neurograph ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the gradient-descent weight update for the
// computational graph.
//
// Example:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//	// after a backward pass for the current iteration:
//	err := opt.Step(g, nil) // nil visits every node
package optim

import (
	"github.com/neurograph-ml/neurograph/internal/optim"
)

// SGD applies a gradient-descent step to edge weights using the
// gradients cached by the most recent backward pass.
type SGD = optim.SGD

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}
