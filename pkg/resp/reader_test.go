package resp

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

// ============================================================
// Reader Tests
// ============================================================

func TestReader_OneByteAtATime(t *testing.T) {
	frames := sampleFrames()
	var stream []byte
	for _, f := range frames {
		stream = Append(stream, f)
	}

	r := NewReaderSize(iotest.OneByteReader(bytes.NewReader(stream)), 8)
	for i, want := range frames {
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() #%d error = %v", i, err)
		}
		if !Equal(got, want) {
			t.Errorf("ReadFrame() #%d = %s, want %s", i, String(got), String(want))
		}
	}

	if _, err := r.ReadFrame(); err != io.EOF {
		t.Errorf("ReadFrame() at end error = %v, want io.EOF", err)
	}
}

func TestReader_SplitAtEveryOffset(t *testing.T) {
	cmd := Encode(Array{BulkString("SET"), BulkString("k\r\ney"), BulkString("value")})

	for split := 1; split < len(cmd); split++ {
		rd := io.MultiReader(bytes.NewReader(cmd[:split]), bytes.NewReader(cmd[split:]))
		r := NewReader(rd)
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("split %d: ReadFrame() error = %v", split, err)
		}
		if !Equal(got, Array{BulkString("SET"), BulkString("k\r\ney"), BulkString("value")}) {
			t.Errorf("split %d: ReadFrame() = %s", split, String(got))
		}
	}
}

func TestReader_GrowsForLargeFrame(t *testing.T) {
	payload := strings.Repeat("x", 10000)
	r := NewReaderSize(bytes.NewReader(Encode(BulkString(payload))), 16)

	got, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if string(got.(BulkString)) != payload {
		t.Errorf("ReadFrame() returned %d bytes, want %d", len(got.(BulkString)), len(payload))
	}
}

func TestReader_Buffered(t *testing.T) {
	r := NewReader(strings.NewReader("+a\r\n+b\r\n"))
	if _, err := r.ReadFrame(); err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if r.Buffered() != 4 {
		t.Errorf("Buffered() = %d, want 4", r.Buffered())
	}
	if _, err := r.ReadFrame(); err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if r.Buffered() != 0 {
		t.Errorf("Buffered() = %d, want 0", r.Buffered())
	}
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"clean EOF", "", io.EOF},
		{"truncated frame", "$5\r\nhel", io.ErrUnexpectedEOF},
		{"invalid frame", "?bad\r\n", ErrInvalidFrame},
		{"invalid number", ":x\r\n", ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input))
			_, err := r.ReadFrame()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadFrame() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ============================================================
// Writer Tests
// ============================================================

func TestWriter_WriteFrame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteFrame(OK); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}
	if err := w.WriteFrame(Array{BulkString("a"), Integer(1)}); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("data written before Flush: %q", buf.String())
	}
	if w.Buffered() == 0 {
		t.Error("Buffered() = 0 before Flush")
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	want := "+OK\r\n*2\r\n$1\r\na\r\n:+1\r\n"
	if got := buf.String(); got != want {
		t.Errorf("written = %q, want %q", got, want)
	}
}

func TestWriterReader_Pipe(t *testing.T) {
	pr, pw := io.Pipe()
	w := NewWriter(pw)
	r := NewReader(pr)

	go func() {
		for _, f := range sampleFrames() {
			_ = w.WriteFrame(f)
		}
		_ = w.Flush()
		_ = pw.Close()
	}()

	for i, want := range sampleFrames() {
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() #%d error = %v", i, err)
		}
		if !Equal(got, want) {
			t.Errorf("ReadFrame() #%d = %s, want %s", i, String(got), String(want))
		}
	}
}
