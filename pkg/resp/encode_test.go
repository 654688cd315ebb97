package resp

import (
	"math"
	"testing"
)

// ============================================================
// Encode Tests - Scalars
// ============================================================

func TestEncode_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  string
	}{
		{"simple string", SimpleString("OK"), "+OK\r\n"},
		{"empty simple string", SimpleString(""), "+\r\n"},
		{"simple error", SimpleError("Error message"), "-Error message\r\n"},
		{"integer zero", Integer(0), ":+0\r\n"},
		{"integer positive", Integer(1), ":+1\r\n"},
		{"integer negative", Integer(-1), ":-1\r\n"},
		{"integer thousand", Integer(1000), ":+1000\r\n"},
		{"integer min", Integer(math.MinInt64), ":-9223372036854775808\r\n"},
		{"bulk string", BulkString("hello"), "$5\r\nhello\r\n"},
		{"empty bulk string", BulkString(""), "$0\r\n\r\n"},
		{"bulk string with CRLF", BulkString("a\r\nb"), "$4\r\na\r\nb\r\n"},
		{"null", Null{}, "_\r\n"},
		{"nil frame", nil, "_\r\n"},
		{"boolean true", Boolean(true), "#t\r\n"},
		{"boolean false", Boolean(false), "#f\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Encode(tt.frame))
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncode_Double(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, ",+0e0\r\n"},
		{1, ",+1\r\n"},
		{-1, ",-1\r\n"},
		{1.5, ",+1.5\r\n"},
		{-2.25, ",-2.25\r\n"},
		{99999999, ",+99999999\r\n"},
		{1e8, ",+1e8\r\n"},
		{1.23456e+8, ",+1.23456e8\r\n"},
		{-1.23456e+8, ",-1.23456e8\r\n"},
		{-1.23456e-9, ",-1.23456e-9\r\n"},
		{1e-8, ",+0.00000001\r\n"},
		{math.Inf(1), ",inf\r\n"},
		{math.Inf(-1), ",-inf\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := string(Encode(Double(tt.in)))
			if got != tt.want {
				t.Errorf("Encode(Double(%v)) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode_LineSanitized(t *testing.T) {
	got := string(Encode(SimpleString("a\r\nb")))
	if got != "+a  b\r\n" {
		t.Errorf("Encode() = %q, want %q", got, "+a  b\r\n")
	}

	got = string(Encode(SimpleError("bad\nthing")))
	if got != "-bad thing\r\n" {
		t.Errorf("Encode() = %q, want %q", got, "-bad thing\r\n")
	}
}

// ============================================================
// Encode Tests - Aggregates
// ============================================================

func TestEncode_Array(t *testing.T) {
	arr := Array{
		BulkString("get"),
		BulkString("hello"),
		SimpleString("rust"),
	}
	want := "*3\r\n$3\r\nget\r\n$5\r\nhello\r\n+rust\r\n"
	if got := string(Encode(arr)); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncode_EmptyArrayIsNullArray(t *testing.T) {
	for _, arr := range []Array{nil, {}} {
		if got := string(Encode(arr)); got != "*-1\r\n" {
			t.Errorf("Encode(%#v) = %q, want %q", arr, got, "*-1\r\n")
		}
	}
}

func TestEncode_Map(t *testing.T) {
	m := NewMap(map[string]Frame{
		"get": BulkString("hello"),
		"set": BulkString("world"),
		"add": Integer(10),
	})
	want := "%3\r\n+add\r\n:+10\r\n+get\r\n$5\r\nhello\r\n+set\r\n$5\r\nworld\r\n"
	if got := string(Encode(m)); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncode_Set(t *testing.T) {
	s := NewSet(
		BulkString("hello"),
		BulkString("world"),
		Integer(10),
		Array{Integer(-123), BulkString("arr")},
	)
	// Canonical order is by encoded bytes: '$' < '*' < ':'.
	want := "~4\r\n$5\r\nhello\r\n$5\r\nworld\r\n*2\r\n:-123\r\n$3\r\narr\r\n:+10\r\n"
	if got := string(Encode(s)); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

// ============================================================
// Determinism
// ============================================================

func TestEncode_MapDeterministic(t *testing.T) {
	a := MapOf(
		MapEntry{Key: "b", Value: Integer(2)},
		MapEntry{Key: "a", Value: Integer(1)},
		MapEntry{Key: "c", Value: BulkString("x")},
	)
	b := MapOf(
		MapEntry{Key: "c", Value: BulkString("x")},
		MapEntry{Key: "a", Value: Integer(1)},
		MapEntry{Key: "b", Value: Integer(2)},
	)
	if string(Encode(a)) != string(Encode(b)) {
		t.Errorf("map encodings differ:\n%q\n%q", Encode(a), Encode(b))
	}
}

func TestEncode_SetDeterministic(t *testing.T) {
	a := NewSet(BulkString("x"), Integer(1), Boolean(true), BulkString("x"))
	b := NewSet(Boolean(true), BulkString("x"), Integer(1))
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (duplicates dropped)", a.Len())
	}
	if string(Encode(a)) != string(Encode(b)) {
		t.Errorf("set encodings differ:\n%q\n%q", Encode(a), Encode(b))
	}
	if !Equal(a, b) {
		t.Error("Equal(a, b) = false, want true")
	}
}

func TestMapOf_LastWins(t *testing.T) {
	m := MapOf(
		MapEntry{Key: "k", Value: Integer(1)},
		MapEntry{Key: "k", Value: Integer(2)},
	)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	v, ok := m.Get("k")
	if !ok || !Equal(v, Integer(2)) {
		t.Errorf("Get(k) = (%v, %v), want (2, true)", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) should report absent")
	}
}

func TestAppend_Reuse(t *testing.T) {
	buf := Append(nil, SimpleString("a"))
	buf = Append(buf, Integer(-5))
	if got := string(buf); got != "+a\r\n:-5\r\n" {
		t.Errorf("Append() = %q", got)
	}
}

func TestTypeString(t *testing.T) {
	if TypeBulkString.String() != "bulk-string" {
		t.Errorf("String() = %q", TypeBulkString.String())
	}
	if (Null{}).Type() != TypeNull {
		t.Errorf("Null.Type() = %v", (Null{}).Type())
	}
}
