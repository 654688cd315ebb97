// Package config provides respkv-cli configuration (~/.respkv/cli.yaml):
// the default server, the output format and named connection profiles.
//
// Values resolve in the order flag > RESPKV_* environment > file > default.
package config
