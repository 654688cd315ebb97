package resp

import (
	"math"
	"strconv"
	"strings"
)

var crlf = []byte("\r\n")

// nullArray is the legacy encoding used for a zero-length Array.
var nullArray = []byte("*-1\r\n")

// Encode returns the wire encoding of f.
func Encode(f Frame) []byte {
	return Append(make([]byte, 0, 64), f)
}

// Append appends the wire encoding of f to dst and returns the extended slice.
// A nil Frame is written as Null.
func Append(dst []byte, f Frame) []byte {
	switch v := f.(type) {
	case SimpleString:
		return appendLine(dst, TypeSimpleString, string(v))
	case SimpleError:
		return appendLine(dst, TypeSimpleError, string(v))
	case Integer:
		dst = append(dst, byte(TypeInteger))
		if v >= 0 {
			dst = append(dst, '+')
		}
		dst = strconv.AppendInt(dst, int64(v), 10)
		return append(dst, crlf...)
	case BulkString:
		dst = appendHeader(dst, TypeBulkString, len(v))
		dst = append(dst, v...)
		return append(dst, crlf...)
	case Array:
		if len(v) == 0 {
			return append(dst, nullArray...)
		}
		dst = appendHeader(dst, TypeArray, len(v))
		for _, item := range v {
			dst = Append(dst, item)
		}
		return dst
	case Boolean:
		if v {
			return append(dst, "#t\r\n"...)
		}
		return append(dst, "#f\r\n"...)
	case Double:
		dst = append(dst, byte(TypeDouble))
		dst = append(dst, formatDouble(float64(v))...)
		return append(dst, crlf...)
	case Map:
		dst = appendHeader(dst, TypeMap, len(v.entries))
		for _, e := range v.entries {
			dst = appendLine(dst, TypeSimpleString, e.Key)
			dst = Append(dst, e.Value)
		}
		return dst
	case Set:
		dst = appendHeader(dst, TypeSet, len(v.items))
		for _, item := range v.items {
			dst = Append(dst, item)
		}
		return dst
	default: // Null, nil
		return append(dst, "_\r\n"...)
	}
}

func appendHeader(dst []byte, t Type, n int) []byte {
	dst = append(dst, byte(t))
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, crlf...)
}

// appendLine writes a single-line frame. CR and LF cannot be represented
// inside a line and are replaced by spaces.
func appendLine(dst []byte, t Type, s string) []byte {
	dst = append(dst, byte(t))
	if strings.ContainsAny(s, "\r\n") {
		s = lineSanitizer.Replace(s)
	}
	dst = append(dst, s...)
	return append(dst, crlf...)
}

var lineSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

// formatDouble renders f with a mandatory sign. Magnitudes at or above 1e8
// and below 1e-8 (zero included) use scientific notation.
func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	abs := math.Abs(f)
	if abs >= 1e8 || abs < 1e-8 {
		// strconv yields "1.23456e+08"; the wire form is "+1.23456e8".
		mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		n, _ := strconv.Atoi(exp)
		if !strings.HasPrefix(mant, "-") {
			mant = "+" + mant
		}
		return mant + "e" + strconv.Itoa(n)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s
}
