package command

import (
	"fmt"
	"strings"

	"github.com/yndnr/respkv-go/pkg/resp"
)

// Get reads a string key. GET key
type Get struct {
	Key string
}

func parseGet(arr resp.Array) (Command, error) {
	if err := validate(arr, []string{"get"}, 1); err != nil {
		return nil, err
	}
	key, err := text(arr[1])
	if err != nil {
		return nil, err
	}
	return Get{Key: key}, nil
}

func (Get) Name() string { return "get" }

// Execute returns the stored value, or Null when the key is absent.
func (c Get) Execute(b Backend) resp.Frame {
	if v, ok := b.Get(c.Key); ok {
		return v
	}
	return resp.Null{}
}

// Set writes a string key. SET key value
type Set struct {
	Key   string
	Value resp.Frame
}

func parseSet(arr resp.Array) (Command, error) {
	if err := validate(arr, []string{"set"}, 2); err != nil {
		return nil, err
	}
	key, err := text(arr[1])
	if err != nil {
		return nil, err
	}
	return Set{Key: key, Value: arr[2]}, nil
}

func (Set) Name() string { return "set" }

func (c Set) Execute(b Backend) resp.Frame {
	b.Set(c.Key, c.Value)
	return resp.OK
}

// Echo replies with its arguments joined by single spaces. ECHO arg [arg ...]
type Echo struct {
	Text string
}

func parseEcho(arr resp.Array) (Command, error) {
	if err := validate(arr, []string{"echo"}, 1); err != nil {
		return nil, err
	}
	args, err := texts(arr[1:])
	if err != nil {
		return nil, err
	}

	joined := strings.Join(args, " ")
	// The reply is a simple string, which cannot carry line breaks.
	if strings.ContainsAny(joined, "\r\n") {
		return nil, fmt.Errorf("%w: echo text must not contain CR or LF", ErrInvalidArgs)
	}
	return Echo{Text: joined}, nil
}

func (Echo) Name() string { return "echo" }

func (c Echo) Execute(Backend) resp.Frame {
	return resp.SimpleString(c.Text)
}
