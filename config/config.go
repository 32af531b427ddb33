// Package config holds the node configuration: defaults, an optional YAML
// file overlay and validation.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage backends understood by the storage package.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Config is the main configuration structure.
type Config struct {
	// Owner is the identifier that receives mining rewards.
	Owner string `yaml:"owner"`
	// MiningReward is the amount minted by every mined block, as a decimal string.
	MiningReward string  `yaml:"mining_reward"`
	Storage      Storage `yaml:"storage"`
	// Debug turns on debug logging, including proof search progress.
	Debug bool `yaml:"debug"`
}

// Storage selects where ledger state is persisted.
type Storage struct {
	Backend string `yaml:"backend"` // "file" | "badger"
	// Path is the state file for the file backend and the database
	// directory for the badger backend.
	Path string `yaml:"path"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Owner:        "Jorge",
		MiningReward: "50",
		Storage: Storage{
			Backend: BackendFile,
			Path:    "data/blockchain.txt",
		},
	}
}

// Load reads a YAML file and overlays it on Default. Keys absent from the
// file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that cfg can be used to run a node.
func (c Config) Validate() error {
	var errs []error
	if c.Owner == "" {
		errs = append(errs, errors.New("owner must not be empty"))
	}
	if _, err := c.Reward(); err != nil {
		errs = append(errs, err)
	}
	switch c.Storage.Backend {
	case BackendFile, BackendBadger:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage path must not be empty"))
	}
	return errors.Join(errs...)
}
