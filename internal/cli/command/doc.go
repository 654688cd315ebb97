// Package command builds the respkv-cli application with urfave/cli/v2.
//
// With command arguments the CLI sends a single request and prints the
// reply:
//
//	respkv-cli -s 127.0.0.1:6379 hset user:1 name alice
//
// Without arguments it starts the interactive REPL.
package command
