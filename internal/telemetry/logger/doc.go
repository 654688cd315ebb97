// Package logger provides structured logging for respkv on top of log/slog.
//
//   - logger.go: Logger interface, level parsing, process default
//   - context.go: logger and connection id propagation through context
//   - redact.go: secret masking and payload truncation
//
// Output is JSON by default and "text" selects the slog text handler. The
// level is process-wide and can be changed at runtime with SetLevel.
package logger
