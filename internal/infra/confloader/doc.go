// Package confloader loads configuration with koanf and watches the
// config file with fsnotify.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (LoadMap)
//  2. Environment variables (RESPKV_ prefix)
//  3. Configuration file (YAML)
//  4. Values already present in the target struct
//
// Environment variables separate nesting levels with a double underscore so
// that keys containing underscores survive:
//
//	RESPKV_SERVER__REDIS__READ_TIMEOUT=10s  ->  server.redis.read_timeout
package confloader
