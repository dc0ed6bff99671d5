package train

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig is the YAML-loadable configuration consumed by the CLI.
type RunConfig struct {
	// LearningRate is the SGD step size.
	LearningRate float64 `yaml:"learning_rate"`

	// Epochs is the number of passes over the training data.
	Epochs int `yaml:"epochs"`

	// Samples is the number of generated training rows for the demo
	// regression.
	Samples int `yaml:"samples"`

	// Seed seeds weight initialization and sample generation. Zero
	// means time-seeded (non-reproducible).
	Seed int64 `yaml:"seed"`
}

// DefaultRunConfig returns the defaults used when no config file is
// given.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		LearningRate: 0.0001,
		Epochs:       10,
		Samples:      1000,
	}
}

// LoadRunConfig reads a YAML config file over the defaults. Fields
// absent from the file keep their default values.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.LearningRate <= 0 {
		return cfg, fmt.Errorf("config %s: learning_rate must be positive", path)
	}
	if cfg.Epochs <= 0 {
		return cfg, fmt.Errorf("config %s: epochs must be positive", path)
	}
	return cfg, nil
}
