// Package config loads derandom's runtime configuration: defaults,
// merged with an optional JSONC config file, merged with CLI flag
// overrides. Grounded on calvinalkan/agent-task's config.go, which uses
// the same hujson-standardize-then-json-unmarshal load path.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// ErrInvalidConfig wraps any failure to read or parse a config file: a
// missing file is not an error (Load falls back to defaults), but an
// unreadable or malformed one is.
var ErrInvalidConfig = errors.New("config: invalid configuration file")

// Config holds every option the CLI surface exposes, per spec §6. Every
// field is always written on save (no omitempty) so that an explicit
// false/zero survives a save/load round trip instead of being
// indistinguishable from "absent".
type Config struct {
	InputMode        string `json:"input_mode"` //nolint:tagliatelle // snake_case config keys
	GeneratorIndex   int    `json:"generator_index"`
	HistoryCapacity  int    `json:"history_capacity"`
	PredictionLength int    `json:"prediction_length"`
	AutoDetect       bool   `json:"auto_detect"`
	ColorPast        bool   `json:"color_past"`
	SocketAddr       string `json:"socket_addr"`
}

// Default returns the baseline configuration before any file or flag is
// applied.
func Default() Config {
	return Config{
		InputMode:        "direct",
		GeneratorIndex:   0,
		HistoryCapacity:  1000,
		PredictionLength: 1,
		AutoDetect:       true,
		ColorPast:        true,
		SocketAddr:       ":6869",
	}
}

// Load reads path (a JSONC file, comments and trailing commas allowed)
// if it exists, and unmarshals it directly into a copy of Default() —
// so any field the file omits keeps its default, and any field the
// file sets (explicit false/zero included) takes the file's value. A
// missing file is not an error; a present-but-invalid one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the --config flag
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
	}

	if err := parseInto(&cfg, data); err != nil {
		return Config{}, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

func parseInto(cfg *Config, data []byte) error {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid JSONC: %w", err)
	}
	if err := json.Unmarshal(standardized, cfg); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// Write serializes cfg as plain JSON to path (a config file written
// this way is valid JSONC too, since JSONC is a superset of JSON).
func Write(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	return os.WriteFile(path, data, 0o600) //nolint:gosec // config files are not secrets
}
