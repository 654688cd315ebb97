package output

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/yndnr/respkv-go/pkg/resp"
)

// JSONFormatter formats frames as indented JSON.
type JSONFormatter struct{}

// Format writes the JSON form of f.
func (JSONFormatter) Format(w io.Writer, f resp.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Value(f))
}

// Value maps a frame onto plain Go values for serialization:
// strings, int64, float64, bool, nil, []any and map[string]any.
// Errors become {"error": message}. Bulk strings that are not UTF-8 and
// non-finite doubles are rendered as strings.
func Value(f resp.Frame) any {
	switch v := f.(type) {
	case resp.SimpleString:
		return string(v)
	case resp.SimpleError:
		return map[string]any{"error": string(v)}
	case resp.Integer:
		return int64(v)
	case resp.Double:
		d := float64(v)
		if math.IsInf(d, 0) || math.IsNaN(d) {
			return resp.String(v)
		}
		return d
	case resp.Boolean:
		return bool(v)
	case resp.BulkString:
		if !utf8.Valid(v) {
			return strconv.Quote(string(v))
		}
		return string(v)
	case resp.Array:
		return values([]resp.Frame(v))
	case resp.Set:
		return values(v.Items())
	case resp.Map:
		out := make(map[string]any, v.Len())
		for _, e := range v.Entries() {
			out[e.Key] = Value(e.Value)
		}
		return out
	default:
		return nil
	}
}

func values(items []resp.Frame) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = Value(item)
	}
	return out
}
