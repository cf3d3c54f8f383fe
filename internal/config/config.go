// Package config loads the optional resource-limit configuration for a
// letpl machine run.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Limits bounds a single letpl program execution.
type Limits struct {
	MaxSteps          int `toml:"max_steps"`
	MaxCallStackDepth int `toml:"max_call_stack_depth"`
}

// Load reads and parses a TOML limits file at path. An empty path returns
// the zero value of Limits, meaning no limits are enforced.
func Load(path string) (Limits, error) {
	if path == "" {
		return Limits{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("config: %w", err)
	}
	var l Limits
	if err := toml.Unmarshal(b, &l); err != nil {
		return Limits{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return l, nil
}
