// Package config handles training run configuration loading.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rcofre/generative-neural-models/learning"
)

// Config is the root configuration structure.
type Config struct {
	Training TrainingConfig `yaml:"training"`
	Files    FilesConfig    `yaml:"files"`
}

// TrainingConfig holds the fitting hyperparameters.
type TrainingConfig struct {
	LearningRate float64 `yaml:"learning_rate"`
	Iterations   int     `yaml:"iterations"`
	Samples      int     `yaml:"samples"`     // chains per gradient estimate
	GibbsSteps   int     `yaml:"gibbs_steps"` // per iteration
	BurnInFactor int     `yaml:"burn_in_factor"`

	// Lanes is the number of parallel chain lanes; 0 means one per logical core.
	Lanes   int    `yaml:"lanes"`
	Threads int    `yaml:"threads"`
	Seed    uint64 `yaml:"seed"`
}

// FilesConfig holds input and output paths.
type FilesConfig struct {
	Data    string `yaml:"data"`
	Init    string `yaml:"init"`   // initial parameters, zeros when empty
	Output  string `yaml:"output"` // fitted parameters
	Resume  bool   `yaml:"resume"` // start from Output if it exists
	History string `yaml:"history"`
	Log     string `yaml:"log"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Training: TrainingConfig{
			LearningRate: 0.05,
			Iterations:   200,
			Samples:      200,
			GibbsSteps:   3,
			BurnInFactor: learning.MinBurnInFactor,
			Seed:         1,
		},
		Files: FilesConfig{
			Output: "params.json.zlib",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// HyperParameters converts the training section. detected is the lane count to
// use when Lanes is 0; it is capped at Samples so that no lane is empty.
func (c *Config) HyperParameters(detected int) *learning.HyperParameters {
	lanes := c.Training.Lanes
	if lanes <= 0 {
		lanes = detected
		if lanes > c.Training.Samples {
			lanes = c.Training.Samples
		}
	}
	return &learning.HyperParameters{
		Lanes:        lanes,
		Threads:      c.Training.Threads,
		LearningRate: c.Training.LearningRate,
		Iterations:   c.Training.Iterations,
		Samples:      c.Training.Samples,
		GibbsSteps:   c.Training.GibbsSteps,
		BurnInFactor: c.Training.BurnInFactor,
		Seed:         c.Training.Seed,
	}
}
