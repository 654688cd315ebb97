package command

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yndnr/respkv-go/pkg/resp"
)

// Command construction errors.
var (
	// ErrInvalidFrame reports a request that is not an Array.
	ErrInvalidFrame = errors.New("invalid frame")

	// ErrInvalidCommand reports a command name that does not match.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidArgs reports a wrong argument count or argument type.
	ErrInvalidArgs = errors.New("invalid arguments")

	// ErrInvalidUTF8 reports a text argument that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8")
)

// Backend is the storage a command executes against.
type Backend interface {
	Get(key string) (resp.Frame, bool)
	Set(key string, value resp.Frame)
	HGet(key, field string) (resp.Frame, bool)
	HSet(key, field string, value resp.Frame)
	HGetAll(key string) (map[string]resp.Frame, bool)
	HMGet(key string, fields ...string) ([]resp.Frame, bool)
}

// Command is a validated request, ready to run.
//
// Execute returns exactly one reply frame and never fails. A Command is
// meant to be executed once.
type Command interface {
	Name() string
	Execute(b Backend) resp.Frame
}

type parseFunc func(resp.Array) (Command, error)

var parsers = map[string]parseFunc{
	"get":     parseGet,
	"set":     parseSet,
	"hget":    parseHGet,
	"hset":    parseHSet,
	"hgetall": parseHGetAll,
	"hmget":   parseHMGet,
	"echo":    parseEcho,
}

// Supported reports whether name (ASCII case-insensitive) is a command
// Parse knows how to build.
func Supported(name string) bool {
	_, ok := parsers[strings.ToLower(name)]
	return ok
}

// Names returns the supported command names in sorted order.
func Names() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse converts a request frame into a Command.
//
// The frame must be an Array whose first element is a BulkString. Unknown
// command names yield Unrecognized rather than an error.
func Parse(f resp.Frame) (Command, error) {
	arr, ok := f.(resp.Array)
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrInvalidFrame, typeName(f))
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrInvalidArgs)
	}

	name, ok := arr[0].(resp.BulkString)
	if !ok {
		return nil, fmt.Errorf("%w: command name must be a bulk string, got %s", ErrInvalidArgs, arr[0].Type())
	}

	parse, ok := parsers[string(bytes.ToLower(name))]
	if !ok {
		return Unrecognized{name: string(name)}, nil
	}
	return parse(arr)
}

// validate checks that arr starts with the literal names (ASCII
// case-insensitive) and carries at least minArgs arguments after them.
func validate(arr resp.Array, names []string, minArgs int) error {
	if len(arr) < len(names)+minArgs {
		return fmt.Errorf("%w: wrong number of arguments for '%s' command", ErrInvalidArgs, names[0])
	}
	for i, want := range names {
		got, ok := arr[i].(resp.BulkString)
		if !ok {
			return fmt.Errorf("%w: expected %s, got %s", ErrInvalidArgs, want, arr[i].Type())
		}
		if !asciiEqualFold(got, want) {
			return fmt.Errorf("%w: expected %s, got %s", ErrInvalidCommand, want, got)
		}
	}
	return nil
}

func asciiEqualFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		c1, c2 := b[i], s[i]
		if 'A' <= c1 && c1 <= 'Z' {
			c1 += 'a' - 'A'
		}
		if 'A' <= c2 && c2 <= 'Z' {
			c2 += 'a' - 'A'
		}
		if c1 != c2 {
			return false
		}
	}
	return true
}

// text converts a BulkString argument to a string.
func text(f resp.Frame) (string, error) {
	b, ok := f.(resp.BulkString)
	if !ok {
		return "", fmt.Errorf("%w: expected bulk string, got %s", ErrInvalidArgs, typeName(f))
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %q", ErrInvalidUTF8, []byte(b))
	}
	return string(b), nil
}

// texts converts every frame in fs with text.
func texts(fs []resp.Frame) ([]string, error) {
	out := make([]string, len(fs))
	for i, f := range fs {
		s, err := text(f)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func typeName(f resp.Frame) string {
	if f == nil {
		return "nil"
	}
	return f.Type().String()
}

// Unrecognized is any command whose name is not supported.
type Unrecognized struct {
	name string
}

func (c Unrecognized) Name() string { return c.name }

// Execute replies OK and does nothing else.
func (Unrecognized) Execute(Backend) resp.Frame { return resp.OK }
