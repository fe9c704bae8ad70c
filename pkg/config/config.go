// Package config loads the optional JSON tunables file accepted by
// the matchrp CLI via -config, following the teacher's own
// ConfigPath/mapstructure pattern for reading a JSON file that sits
// next to the executable.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Config holds the engine tunables an operator can override. Zero
// values mean "use the instance-sized default" (engine.DefaultOptions
// computes those from the Problem, not from Config). Randomize is
// decoded, but the matchrp CLI takes randomization only from its -rnd
// flag.
type Config struct {
	RoundLimit   int
	RestartLimit int
	Randomize    bool
}

// Load reads and decodes a JSON config file at path. A missing file
// is not an error; it yields the zero Config so callers fall back to
// engine defaults.
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("config: malformed json: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
