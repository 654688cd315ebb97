package config

import "time"

// CLIConfig is the configuration for respkv-cli.
type CLIConfig struct {
	Server  string        `yaml:"server"`
	Output  string        `yaml:"output"` // raw, json, yaml
	Timeout time.Duration `yaml:"timeout"`

	// Profiles are named server addresses selectable with --profile.
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile is a saved connection target.
type Profile struct {
	Server string `yaml:"server"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server:   "127.0.0.1:6379",
		Output:   "raw",
		Timeout:  5 * time.Second,
		Profiles: make(map[string]Profile),
	}
}
