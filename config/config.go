// Package config loads the TOML-backed run configuration for ec8-run:
// clock speed, display scale, key layout, and assembler warning
// suppression, grounded on lookbusy1344-arm_emulator's use of
// github.com/BurntSushi/toml for the same purpose.
package config

import (
	"github.com/BurntSushi/toml"
)

// Run holds every setting ec8-run can take from a TOML file, with flags
// taking precedence over matching fields when both are supplied.
type Run struct {
	Speed       int    `toml:"speed"`
	Scale       int    `toml:"scale"`
	Layout      string `toml:"layout"`
	SuppressEC8 bool   `toml:"suppress_ec8_warnings"`
}

// DefaultRun returns the settings ec8-run falls back to with no config
// file and no overriding flags.
func DefaultRun() Run {
	return Run{
		Speed:  500,
		Scale:  10,
		Layout: "lefthand",
	}
}

// Load reads and decodes a TOML run-config file, starting from
// DefaultRun so any field the file omits keeps its default.
func Load(path string) (Run, error) {
	cfg := DefaultRun()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
