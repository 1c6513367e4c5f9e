// Package config loads the server's YAML configuration file and builds the
// status-JSON document it drives.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server's top-level configuration, loaded from a YAML file.
type Config struct {
	Host                  string `yaml:"host"`
	Port                  uint16 `yaml:"port"`
	Version               string `yaml:"version"`
	VersionProtocol       int    `yaml:"version_protocol"`
	MaxPlayers            int    `yaml:"max_players"`
	Description           string `yaml:"description"`
	Favicon               string `yaml:"favicon"`
	CompressionThreshold  int    `yaml:"compression_threshold"`
}

// defaults mirrors the teacher's apply-defaults-after-decode pattern: a zero
// value in the YAML document is indistinguishable from an absent key, so
// defaults are filled in for every knob where zero is not itself a valid
// setting.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 25565
	}
	if c.Version == "" {
		c.Version = "1.21.4"
	}
	if c.VersionProtocol == 0 {
		c.VersionProtocol = 771
	}
	if c.MaxPlayers == 0 {
		c.MaxPlayers = 20
	}
	if c.Description == "" {
		c.Description = "A Minecraft Server"
	}
}

// Load reads and decodes a YAML config file at path, applying defaults for
// any knob left unset.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	c.applyDefaults()
	return &c, nil
}

// CompressionEnabled reports whether the configured threshold turns on
// frame compression at all (a threshold of 0 or below disables it).
func (c *Config) CompressionEnabled() bool {
	return c.CompressionThreshold > 0
}
