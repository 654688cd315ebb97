// Package repl provides the interactive mode of respkv-cli.
//
//   - repl.go: read-eval-print loop
//   - args.go: splitting input lines into arguments, with quoting
//   - completer.go: command name completion
//   - history.go: command history persistence
package repl
