package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PipelinePath string // .hcl file or directory
	// StagePath, when set, replaces the stage block of the pipeline.
	StagePath string

	// Ticks is the number of ticks to run; 0 runs until the context is done.
	Ticks int
	// TickRate is in ticks per second; 0 ticks back to back.
	TickRate float64

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if cfg.Ticks < 0 {
		return nil, fmt.Errorf("Ticks must not be negative, got %d", cfg.Ticks)
	}
	if cfg.TickRate < 0 {
		return nil, fmt.Errorf("TickRate must not be negative, got %v", cfg.TickRate)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("HealthcheckPort %d is out of range", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
