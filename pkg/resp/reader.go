package resp

import (
	"errors"
	"io"
)

const defaultReadBufferSize = 4096

// Reader decodes frames from a byte stream delivered in arbitrary chunks.
//
// Inbound bytes are buffered across reads. Each ReadFrame call offers the
// buffer to Decode, reads more on ErrIncomplete and drops exactly the bytes
// of the decoded frame. Reader is not safe for concurrent use.
type Reader struct {
	rd    io.Reader
	buf   []byte
	start int
	end   int
}

// NewReader returns a Reader over rd.
func NewReader(rd io.Reader) *Reader {
	return NewReaderSize(rd, defaultReadBufferSize)
}

// NewReaderSize returns a Reader whose initial buffer holds size bytes.
// The buffer grows as needed to hold one complete frame.
func NewReaderSize(rd io.Reader, size int) *Reader {
	if size <= 0 {
		size = defaultReadBufferSize
	}
	return &Reader{
		rd:  rd,
		buf: make([]byte, size),
	}
}

// Buffered returns the number of bytes received but not yet decoded.
func (r *Reader) Buffered() int {
	return r.end - r.start
}

// ReadFrame returns the next frame from the stream.
//
// It returns io.EOF when the stream ends cleanly between frames and
// io.ErrUnexpectedEOF when it ends inside one. Malformed input yields an
// error wrapping ErrInvalidFrame or ErrInvalidNumber; the stream position
// is undefined afterwards.
func (r *Reader) ReadFrame() (Frame, error) {
	for {
		f, n, err := Decode(r.buf[r.start:r.end])
		if err == nil {
			r.start += n
			if r.start == r.end {
				r.start, r.end = 0, 0
			}
			return f, nil
		}
		if !errors.Is(err, ErrIncomplete) && !errors.Is(err, ErrEmpty) {
			return nil, err
		}

		if err := r.fill(); err != nil {
			if errors.Is(err, io.EOF) && r.Buffered() > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
}

// fill reads at least once from the underlying reader, compacting or
// growing the buffer first if it is full.
func (r *Reader) fill() error {
	if r.start > 0 {
		copy(r.buf, r.buf[r.start:r.end])
		r.end -= r.start
		r.start = 0
	}
	if r.end == len(r.buf) {
		grown := make([]byte, 2*len(r.buf))
		copy(grown, r.buf[:r.end])
		r.buf = grown
	}

	n, err := r.rd.Read(r.buf[r.end:])
	r.end += n
	if n > 0 {
		return nil
	}
	return err
}
