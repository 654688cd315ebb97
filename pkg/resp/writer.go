package resp

import (
	"bufio"
	"io"
)

// Writer encodes frames onto a buffered stream.
type Writer struct {
	bw      *bufio.Writer
	scratch []byte
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		bw:      bufio.NewWriter(w),
		scratch: make([]byte, 0, 256),
	}
}

// WriteFrame buffers the encoding of f. Call Flush to send it.
func (w *Writer) WriteFrame(f Frame) error {
	w.scratch = Append(w.scratch[:0], f)
	_, err := w.bw.Write(w.scratch)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Buffered returns the number of bytes waiting to be flushed.
func (w *Writer) Buffered() int {
	return w.bw.Buffered()
}
