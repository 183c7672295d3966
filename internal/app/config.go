package app

import (
	"errors"

	"github.com/specialistvlad/evmsim/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ExperimentPath is an optional HCL experiment file.
	ExperimentPath string
	// Overrides are values set explicitly on the command line. They win over
	// the experiment file, including its project path.
	Overrides config.Overrides

	LogFormat       string
	LogLevel        string
	LogFile         string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ExperimentPath == "" && (cfg.Overrides.ProjectPath == nil || *cfg.Overrides.ProjectPath == "") {
		return nil, errors.New("either an experiment file or a project path is required")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, errors.New("healthcheck port must be between 0 and 65535")
	}
	return &cfg, nil
}
