package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	l := NewNop()
	ctx := WithLogger(context.Background(), l)

	if got := FromContext(ctx); got != l {
		t.Error("FromContext() did not return the stored logger")
	}
}

func TestFromContext_Default(t *testing.T) {
	if got := FromContext(context.Background()); got != Default() {
		t.Error("FromContext() without logger should return Default()")
	}
}

func TestConnID(t *testing.T) {
	ctx := WithConnID(context.Background(), "01HZX")
	if got := ConnIDFromContext(ctx); got != "01HZX" {
		t.Errorf("ConnIDFromContext() = %q, want %q", got, "01HZX")
	}
	if got := ConnIDFromContext(context.Background()); got != "" {
		t.Errorf("ConnIDFromContext(empty) = %q, want empty", got)
	}
}

func TestL_WithConnID(t *testing.T) {
	var buf bytes.Buffer
	base, _ := New(Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), base)
	ctx = WithConnID(ctx, "conn-1")
	L(ctx).Info("frame received")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["conn_id"] != "conn-1" {
		t.Errorf("conn_id = %v, want conn-1", entry["conn_id"])
	}
}

func TestL_NoConnID(t *testing.T) {
	var buf bytes.Buffer
	base, _ := New(Config{Level: "info", Format: "json", Output: &buf})

	L(WithLogger(context.Background(), base)).Info("no id")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if _, ok := entry["conn_id"]; ok {
		t.Error("conn_id should be absent")
	}
}
