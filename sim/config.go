package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioConfig holds the parameters of the single-server queueing scenario
// run by the CLI, loadable from a YAML file. Zero-value fields fall back to
// DefaultScenarioConfig values before validation.
type ScenarioConfig struct {
	Discipline   string  `yaml:"discipline"`
	ArrivalRate  float64 `yaml:"arrival_rate"`
	ServiceRate  float64 `yaml:"service_rate"`
	Horizon      float64 `yaml:"horizon"`
	Replications int     `yaml:"replications"`
	Seed         int64   `yaml:"seed"`
}

// DefaultScenarioConfig returns a modestly loaded FIFO scenario.
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Discipline:   string(FIFO),
		ArrivalRate:  0.8,
		ServiceRate:  1.0,
		Horizon:      10000,
		Replications: 1,
		Seed:         42,
	}
}

// LoadScenarioConfig reads and parses a YAML scenario file.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that all names and parameter ranges are valid.
func (c *ScenarioConfig) Validate() error {
	if !IsValidDiscipline(c.Discipline) {
		return fmt.Errorf("unknown discipline %q", c.Discipline)
	}
	if c.ArrivalRate <= 0 {
		return fmt.Errorf("arrival_rate must be positive, got %f", c.ArrivalRate)
	}
	if c.ServiceRate <= 0 {
		return fmt.Errorf("service_rate must be positive, got %f", c.ServiceRate)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %f", c.Horizon)
	}
	if c.Replications < 1 {
		return fmt.Errorf("replications must be >= 1, got %d", c.Replications)
	}
	return nil
}
