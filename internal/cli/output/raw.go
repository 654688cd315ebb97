package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yndnr/respkv-go/pkg/resp"
)

// RawFormatter renders frames the way redis-cli does.
type RawFormatter struct{}

// Format writes f followed by a newline.
func (RawFormatter) Format(w io.Writer, f resp.Frame) error {
	var b strings.Builder
	writeRaw(&b, f, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRaw(b *strings.Builder, f resp.Frame, indent string) {
	switch v := f.(type) {
	case resp.SimpleString:
		b.WriteString(string(v))
		b.WriteByte('\n')
	case resp.SimpleError:
		b.WriteString("(error) ")
		b.WriteString(string(v))
		b.WriteByte('\n')
	case resp.Integer:
		fmt.Fprintf(b, "(integer) %d\n", int64(v))
	case resp.Double:
		fmt.Fprintf(b, "(double) %s\n", strconv.FormatFloat(float64(v), 'g', -1, 64))
	case resp.Boolean:
		if v {
			b.WriteString("(true)\n")
		} else {
			b.WriteString("(false)\n")
		}
	case resp.BulkString:
		b.WriteString(strconv.Quote(string(v)))
		b.WriteByte('\n')
	case resp.Array:
		writeItems(b, []resp.Frame(v), indent)
	case resp.Set:
		writeItems(b, v.Items(), indent)
	case resp.Map:
		entries := v.Entries()
		if len(entries) == 0 {
			b.WriteString("(empty hash)\n")
			return
		}
		width := len(strconv.Itoa(len(entries)))
		for i, e := range entries {
			if i > 0 {
				b.WriteString(indent)
			}
			label := fmt.Sprintf("%*d# %s => ", width, i+1, strconv.Quote(e.Key))
			b.WriteString(label)
			writeRaw(b, e.Value, indent+strings.Repeat(" ", len(label)))
		}
	default:
		b.WriteString("(nil)\n")
	}
}

func writeItems(b *strings.Builder, items []resp.Frame, indent string) {
	if len(items) == 0 {
		b.WriteString("(empty array)\n")
		return
	}
	width := len(strconv.Itoa(len(items)))
	for i, item := range items {
		if i > 0 {
			b.WriteString(indent)
		}
		label := fmt.Sprintf("%*d) ", width, i+1)
		b.WriteString(label)
		writeRaw(b, item, indent+strings.Repeat(" ", len(label)))
	}
}
