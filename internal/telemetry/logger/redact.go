package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// MaxPayloadLen is the longest string value written to the log as is.
// Longer values (typically rendered frames) are cut.
const MaxPayloadLen = 256

var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"credential",
	"auth",
	"bearer",
}

const redactedValue = "***REDACTED***"

// redactAttr masks attributes whose key suggests a secret and truncates
// oversized string values. Groups are handled recursively.
func redactAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if s != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if len(s) > MaxPayloadLen {
			return slog.String(a.Key, Truncate(s, MaxPayloadLen))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactAttr(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// Truncate shortens s to at most n bytes followed by a marker carrying
// the original length.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(" + strconv.Itoa(len(s)) + " bytes)"
}

// IsSensitiveKey reports whether a key name suggests secret content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
