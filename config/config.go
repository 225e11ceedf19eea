// Package config loads optional TOML defaults for the rv16k-sim CLI.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds CLI defaults that explicit flags override.
type Config struct {
	Memory struct {
		InstROMSize int `toml:"inst_rom_size"`
		DataRAMSize int `toml:"data_ram_size"`
	} `toml:"memory"`

	Run struct {
		Quiet   bool `toml:"quiet"`
		MemDump bool `toml:"mem_dump"`
	} `toml:"run"`
}

// DefaultConfig returns the configuration used when no -config flag is
// given: 512-byte ROM and RAM, tracing on, mem-dump off.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Memory.InstROMSize = 512
	cfg.Memory.DataRAMSize = 512
	cfg.Run.Quiet = false
	cfg.Run.MemDump = false
	return cfg
}

// LoadFrom reads and parses a TOML config file, starting from
// DefaultConfig and overwriting only the fields present in the file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
