// Package config provides server configuration for respkv.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default values
//   - verify.go: validation (addresses, timeouts, shard count, log level)
//
// Configuration is loaded via internal/infra/confloader from a YAML file
// and RESPKV_ environment variables. Command-line flags override both.
package config
