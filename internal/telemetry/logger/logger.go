package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the logging surface shared by the server, the CLI and infra
// packages.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
	Enabled(level slog.Level) bool
}

// Output formats accepted by New.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config selects level, format and destination.
type Config struct {
	Level     string
	Format    string
	Output    io.Writer // os.Stderr when nil
	AddSource bool
}

// DefaultConfig returns info-level JSON on stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: FormatJSON}
}

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLevel maps a configured level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	if lv, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lv, nil
	}
	return slog.LevelInfo, fmt.Errorf("logger: unknown level %q", name)
}

// ValidLevel reports whether name is a level ParseLevel accepts.
func ValidLevel(name string) bool {
	_, err := ParseLevel(name)
	return err == nil
}

// level is process-wide. Every Logger built by New reads it, so SetLevel
// applies to loggers that were already handed out.
var level = new(slog.LevelVar)

// SetLevel changes the process-wide level. Unknown names select info.
func SetLevel(name string) {
	lv, _ := ParseLevel(name)
	level.Set(lv)
}

// GetLevel returns the process-wide level name in lower case.
func GetLevel() string {
	return strings.ToLower(level.Level().String())
}

// New builds a Logger and sets the process-wide level from cfg.
func New(cfg Config) (Logger, error) {
	lv, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return redactAttr(a)
		},
	}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", FormatJSON:
		h = slog.NewJSONHandler(out, opts)
	case FormatText, "console":
		h = slog.NewTextHandler(out, opts)
	default:
		return nil, fmt.Errorf("logger: unknown format %q", cfg.Format)
	}

	level.Set(lv)
	return &entry{sl: slog.New(h), ctx: context.Background()}, nil
}

// NewNop returns a Logger that writes nothing.
func NewNop() Logger {
	return &entry{sl: slog.New(slog.DiscardHandler), ctx: context.Background()}
}

type entry struct {
	sl  *slog.Logger
	ctx context.Context
}

func (e *entry) log(lv slog.Level, msg string, args []any) {
	if !e.sl.Enabled(e.ctx, lv) {
		return
	}
	e.sl.Log(e.ctx, lv, msg, args...)
}

func (e *entry) Debug(msg string, args ...any) { e.log(slog.LevelDebug, msg, args) }
func (e *entry) Info(msg string, args ...any)  { e.log(slog.LevelInfo, msg, args) }
func (e *entry) Warn(msg string, args ...any)  { e.log(slog.LevelWarn, msg, args) }
func (e *entry) Error(msg string, args ...any) { e.log(slog.LevelError, msg, args) }

func (e *entry) With(args ...any) Logger {
	return &entry{sl: e.sl.With(args...), ctx: e.ctx}
}

// WithContext binds ctx to every record, for handlers that read values
// from the context.
func (e *entry) WithContext(ctx context.Context) Logger {
	return &entry{sl: e.sl, ctx: ctx}
}

// Enabled reports whether a record at lv would be written. Callers use it
// to skip rendering frames for debug output.
func (e *entry) Enabled(lv slog.Level) bool {
	return e.sl.Enabled(e.ctx, lv)
}

var defaultLogger atomic.Value // Logger

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(&holder{l})
}

// holder keeps atomic.Value's stored type fixed across implementations.
type holder struct{ Logger }

// SetDefault replaces the logger returned by Default. A nil l is ignored.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger.Store(&holder{l})
	}
}

// Default returns the process default logger.
func Default() Logger {
	return defaultLogger.Load().(*holder).Logger
}
