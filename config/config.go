// Package config holds repository-wide configuration, loaded from YAML with
// documented defaults.
package config

import (
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config mirrors the external-interface option list: ingest parallelism,
// snapshot location, and the unknown-language policy (§9 Open Question 1).
type Config struct {
	// SnapshotPath is where Save/Load persist the global scope graph. Empty
	// disables snapshotting: bulk init always does a full reparse.
	SnapshotPath string `yaml:"snapshotPath"`

	// Parallelism bounds the producer pool. Zero means hardware parallelism.
	Parallelism int `yaml:"parallelism"`

	// MergeQueueSize bounds the parse->merge handoff channel.
	MergeQueueSize int `yaml:"mergeQueueSize"`

	// StrictUnknownLanguage, when true, turns an unrecognized file unit
	// language into a surfaced UnknownLanguageError instead of a recovered,
	// silently-dropped file (§4.4, §9 Open Question 1).
	StrictUnknownLanguage bool `yaml:"strictUnknownLanguage"`

	// LockTimeoutMillis is a lock wait bound in milliseconds, resolved to a
	// duration by the repository (zero: no bound). TryLockGlobalScope takes
	// its timeout as an argument and does not read this field.
	LockTimeoutMillis int `yaml:"lockTimeoutMillis"`
}

// Default returns the configuration new repositories use when the caller
// supplies none.
func Default() Config {
	return Config{
		Parallelism:           runtime.GOMAXPROCS(0),
		MergeQueueSize:        64,
		StrictUnknownLanguage: false,
		LockTimeoutMillis:     0,
	}
}

// Load reads and unmarshals a YAML configuration file, filling unset fields
// from Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.GOMAXPROCS(0)
	}
	if cfg.MergeQueueSize <= 0 {
		cfg.MergeQueueSize = 64
	}
	return cfg, nil
}

// Marshal renders cfg back to YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
