package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned by Resolve for a profile name not in the file.
var ErrUnknownProfile = errors.New("unknown profile")

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".respkv", "cli.yaml")
	}
	return filepath.Join(homeDir, ".respkv", "cli.yaml")
}

// Load reads the CLI configuration. A missing file yields the defaults.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}
	return cfg, nil
}

// Save writes cfg to path with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Resolve returns the server address to use: an explicit server wins, then
// the named profile, then the configured default.
func (c *CLIConfig) Resolve(server, profile string) (string, error) {
	if server != "" {
		return server, nil
	}
	if profile != "" {
		p, ok := c.Profiles[profile]
		if !ok || p.Server == "" {
			return "", fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
		}
		return p.Server, nil
	}
	return c.Server, nil
}
