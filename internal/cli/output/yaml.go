package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/respkv-go/pkg/resp"
)

// YAMLFormatter formats frames as YAML.
type YAMLFormatter struct{}

// Format writes the YAML form of f.
func (YAMLFormatter) Format(w io.Writer, f resp.Frame) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Value(f)); err != nil {
		return err
	}
	return enc.Close()
}
