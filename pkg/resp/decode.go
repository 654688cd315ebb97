package resp

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// Protocol limits. A declared length above these is rejected instead of
// waiting for bytes that would never fit in memory.
const (
	// MaxBulkLen limits the payload of a single bulk string (512 MiB).
	MaxBulkLen = 512 * 1024 * 1024

	// MaxAggregateLen limits the element count of an array, set or map.
	MaxAggregateLen = 1 << 20

	// MaxLineLen limits a single CRLF-terminated line (64 KiB).
	MaxLineLen = 64 * 1024

	// MaxNestingDepth limits how deeply arrays, sets and maps may nest.
	MaxNestingDepth = 512
)

var (
	// ErrIncomplete reports that the buffer holds only a prefix of a frame.
	// It is a retry signal, not a failure.
	ErrIncomplete = errors.New("resp: incomplete frame")

	// ErrEmpty reports that the buffer holds no bytes at all.
	ErrEmpty = errors.New("resp: empty buffer")

	// ErrInvalidFrame reports malformed frame structure.
	ErrInvalidFrame = errors.New("resp: invalid frame")

	// ErrInvalidNumber reports a length, integer or double that fails to parse.
	ErrInvalidNumber = errors.New("resp: invalid number")

	// ErrLimitExceeded reports a declared size above the protocol limits.
	ErrLimitExceeded = fmt.Errorf("%w: limit exceeded", ErrInvalidFrame)
)

// Decode decodes the frame at the front of buf.
//
// On success it returns the frame and the number of bytes it occupied.
// buf is never modified and the returned frame does not alias it. When buf
// holds only part of a frame, Decode returns ErrIncomplete (ErrEmpty when
// buf has no bytes) and the caller should retry once more bytes arrive.
func Decode(buf []byte) (Frame, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrEmpty
	}
	return decodeFrame(buf, 0)
}

// decodeFrame decodes one frame found at the given aggregate depth.
func decodeFrame(buf []byte, depth int) (Frame, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrIncomplete
	}

	switch Type(buf[0]) {
	case TypeSimpleString:
		line, n, err := readLine(buf)
		if err != nil {
			return nil, 0, err
		}
		return SimpleString(line), n, nil
	case TypeSimpleError:
		line, n, err := readLine(buf)
		if err != nil {
			return nil, 0, err
		}
		return SimpleError(line), n, nil
	case TypeInteger:
		return decodeInteger(buf)
	case TypeBulkString:
		return decodeBulkString(buf)
	case TypeArray:
		return decodeArray(buf, depth)
	case TypeNull:
		return decodeNull(buf)
	case TypeBoolean:
		return decodeBoolean(buf)
	case TypeDouble:
		return decodeDouble(buf)
	case TypeMap:
		return decodeMap(buf, depth)
	case TypeSet:
		return decodeSet(buf, depth)
	default:
		return nil, 0, fmt.Errorf("%w: unknown type prefix %q", ErrInvalidFrame, buf[0])
	}
}

// readLine returns the text between the prefix byte and the first CRLF,
// and the offset just past that CRLF.
func readLine(buf []byte) ([]byte, int, error) {
	i := bytes.IndexByte(buf, '\n')
	if i < 0 {
		if len(buf) > MaxLineLen {
			return nil, 0, fmt.Errorf("%w: line length exceeds %d", ErrLimitExceeded, MaxLineLen)
		}
		return nil, 0, ErrIncomplete
	}
	if i < 2 || buf[i-1] != '\r' {
		return nil, 0, fmt.Errorf("%w: missing CRLF", ErrInvalidFrame)
	}
	line := buf[1 : i-1]
	if bytes.IndexByte(line, '\r') >= 0 {
		return nil, 0, fmt.Errorf("%w: stray CR in line", ErrInvalidFrame)
	}
	return line, i + 1, nil
}

// readLength parses a length header. -1 is returned as is; the caller
// decides whether the null form is allowed.
func readLength(buf []byte, limit int) (int, int, error) {
	line, n, err := readLine(buf)
	if err != nil {
		return 0, 0, err
	}
	size, err := strconv.Atoi(string(line))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: length %q", ErrInvalidNumber, line)
	}
	if size < -1 {
		return 0, 0, fmt.Errorf("%w: negative length %d", ErrInvalidFrame, size)
	}
	if size > limit {
		return 0, 0, fmt.Errorf("%w: length %d exceeds %d", ErrLimitExceeded, size, limit)
	}
	return size, n, nil
}

// hasTerminators reports whether b contains at least n CRLF sequences.
// Every encoded frame carries at least one, so fewer means incomplete.
func hasTerminators(b []byte, n int) bool {
	for ; n > 0; n-- {
		i := bytes.Index(b, crlf)
		if i < 0 {
			return false
		}
		b = b[i+2:]
	}
	return true
}

func decodeInteger(buf []byte) (Frame, int, error) {
	line, n, err := readLine(buf)
	if err != nil {
		return nil, 0, err
	}
	v, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: integer %q", ErrInvalidNumber, line)
	}
	return Integer(v), n, nil
}

func decodeBulkString(buf []byte) (Frame, int, error) {
	size, n, err := readLength(buf, MaxBulkLen)
	if err != nil {
		return nil, 0, err
	}
	if size == -1 {
		// RESP2 null bulk string.
		return Null{}, n, nil
	}

	end := n + size + 2
	if len(buf) < end {
		return nil, 0, ErrIncomplete
	}
	if buf[end-2] != '\r' || buf[end-1] != '\n' {
		return nil, 0, fmt.Errorf("%w: bulk string not terminated by CRLF", ErrInvalidFrame)
	}
	return BulkString(bytes.Clone(buf[n : n+size])), end, nil
}

// enter returns the depth of an aggregate's elements, or an error when that
// exceeds MaxNestingDepth.
func enter(depth int) (int, error) {
	if depth >= MaxNestingDepth {
		return 0, fmt.Errorf("%w: nesting exceeds %d", ErrLimitExceeded, MaxNestingDepth)
	}
	return depth + 1, nil
}

func decodeArray(buf []byte, depth int) (Frame, int, error) {
	count, n, err := readLength(buf, MaxAggregateLen)
	if err != nil {
		return nil, 0, err
	}
	if count <= 0 {
		return Array{}, n, nil
	}
	if depth, err = enter(depth); err != nil {
		return nil, 0, err
	}
	items, m, err := decodeItems(buf[n:], count, depth)
	if err != nil {
		return nil, 0, err
	}
	return Array(items), n + m, nil
}

func decodeSet(buf []byte, depth int) (Frame, int, error) {
	count, n, err := readLength(buf, MaxAggregateLen)
	if err != nil {
		return nil, 0, err
	}
	if count < 0 {
		return nil, 0, fmt.Errorf("%w: negative set length", ErrInvalidFrame)
	}
	if depth, err = enter(depth); err != nil {
		return nil, 0, err
	}
	items, m, err := decodeItems(buf[n:], count, depth)
	if err != nil {
		return nil, 0, err
	}
	return NewSet(items...), n + m, nil
}

// decodeItems decodes count consecutive frames from the front of buf.
func decodeItems(buf []byte, count, depth int) ([]Frame, int, error) {
	if !hasTerminators(buf, count) {
		return nil, 0, ErrIncomplete
	}

	items := make([]Frame, 0, count)
	off := 0
	for i := 0; i < count; i++ {
		f, n, err := decodeFrame(buf[off:], depth)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
		off += n
	}
	return items, off, nil
}

func decodeMap(buf []byte, depth int) (Frame, int, error) {
	count, n, err := readLength(buf, MaxAggregateLen)
	if err != nil {
		return nil, 0, err
	}
	if count < 0 {
		return nil, 0, fmt.Errorf("%w: negative map length", ErrInvalidFrame)
	}
	if depth, err = enter(depth); err != nil {
		return nil, 0, err
	}
	if !hasTerminators(buf[n:], 2*count) {
		return nil, 0, ErrIncomplete
	}

	entries := make([]MapEntry, 0, count)
	off := n
	for i := 0; i < count; i++ {
		k, m, err := decodeFrame(buf[off:], depth)
		if err != nil {
			return nil, 0, err
		}
		off += m

		var key string
		switch kv := k.(type) {
		case SimpleString:
			key = string(kv)
		case BulkString:
			if !utf8.Valid(kv) {
				return nil, 0, fmt.Errorf("%w: map key is not valid UTF-8", ErrInvalidFrame)
			}
			key = string(kv)
		default:
			return nil, 0, fmt.Errorf("%w: map key must be a string, got %s", ErrInvalidFrame, k.Type())
		}

		v, m, err := decodeFrame(buf[off:], depth)
		if err != nil {
			return nil, 0, err
		}
		off += m
		entries = append(entries, MapEntry{Key: key, Value: v})
	}
	return MapOf(entries...), off, nil
}

func decodeNull(buf []byte) (Frame, int, error) {
	line, n, err := readLine(buf)
	if err != nil {
		return nil, 0, err
	}
	if len(line) != 0 {
		return nil, 0, fmt.Errorf("%w: unexpected null payload %q", ErrInvalidFrame, line)
	}
	return Null{}, n, nil
}

func decodeBoolean(buf []byte) (Frame, int, error) {
	line, n, err := readLine(buf)
	if err != nil {
		return nil, 0, err
	}
	switch string(line) {
	case "t":
		return Boolean(true), n, nil
	case "f":
		return Boolean(false), n, nil
	default:
		return nil, 0, fmt.Errorf("%w: boolean %q", ErrInvalidFrame, line)
	}
}

func decodeDouble(buf []byte) (Frame, int, error) {
	line, n, err := readLine(buf)
	if err != nil {
		return nil, 0, err
	}
	v, err := strconv.ParseFloat(string(line), 64)
	if err != nil || math.IsNaN(v) {
		return nil, 0, fmt.Errorf("%w: double %q", ErrInvalidNumber, line)
	}
	return Double(v), n, nil
}
