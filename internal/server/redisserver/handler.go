package redisserver

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/yndnr/respkv-go/internal/command"
	"github.com/yndnr/respkv-go/internal/telemetry/logger"
	"github.com/yndnr/respkv-go/internal/telemetry/metric"
	"github.com/yndnr/respkv-go/pkg/resp"
)

// unknownCommandLabel replaces unsupported command names in metrics so
// that clients cannot grow label cardinality.
const unknownCommandLabel = "unknown"

var pong = resp.SimpleString("PONG")

// CommandHandler turns request frames into reply frames.
type CommandHandler struct {
	backend command.Backend
	limiter *ipLimiter
	metrics *metric.Registry
}

// NewCommandHandler creates a handler. limiter may be nil.
func NewCommandHandler(backend command.Backend, limiter *ipLimiter, metrics *metric.Registry) *CommandHandler {
	if metrics == nil {
		metrics = metric.NewRegistry()
	}
	return &CommandHandler{
		backend: backend,
		limiter: limiter,
		metrics: metrics,
	}
}

// Handle processes one request. quit reports that the connection should
// close after the reply is written.
func (h *CommandHandler) Handle(ctx context.Context, c *Conn, f resp.Frame) (reply resp.Frame, quit bool) {
	switch connCommand(f) {
	case "ping":
		return h.handlePing(f), false
	case "quit":
		return resp.OK, true
	}

	if h.limiter != nil && !h.limiter.allow(c.RemoteAddr()) {
		h.metrics.IncRateLimited()
		h.metrics.RecordCommand(commandLabel(f), metric.ResultRateLimited, 0)
		return resp.SimpleError("ERR rate limit exceeded"), false
	}

	cmd, err := command.Parse(f)
	if err != nil {
		logger.L(ctx).Debug("invalid command", "error", err)
		h.metrics.RecordCommand(commandLabel(f), metric.ResultInvalid, 0)
		return resp.SimpleError("ERR " + err.Error()), false
	}

	start := time.Now()
	reply = cmd.Execute(h.backend)
	h.metrics.RecordCommand(metricName(cmd), metric.ResultOK, time.Since(start))
	return reply, false
}

func (h *CommandHandler) handlePing(f resp.Frame) resp.Frame {
	if arr := f.(resp.Array); len(arr) > 1 {
		if msg, ok := arr[1].(resp.BulkString); ok {
			return msg
		}
	}
	return pong
}

// connCommand returns "ping" or "quit" when f is one of the commands the
// connection answers itself, and "" otherwise.
func connCommand(f resp.Frame) string {
	arr, ok := f.(resp.Array)
	if !ok || len(arr) == 0 {
		return ""
	}
	name, ok := arr[0].(resp.BulkString)
	if !ok {
		return ""
	}
	switch {
	case bytes.EqualFold(name, []byte("ping")):
		return "ping"
	case bytes.EqualFold(name, []byte("quit")) && len(arr) == 1:
		return "quit"
	}
	return ""
}

func metricName(cmd command.Command) string {
	if _, ok := cmd.(command.Unrecognized); ok {
		return unknownCommandLabel
	}
	return cmd.Name()
}

// commandLabel names a request that did not parse.
func commandLabel(f resp.Frame) string {
	arr, ok := f.(resp.Array)
	if !ok || len(arr) == 0 {
		return unknownCommandLabel
	}
	name, ok := arr[0].(resp.BulkString)
	if !ok || !command.Supported(string(name)) {
		return unknownCommandLabel
	}
	return strings.ToLower(string(name))
}
