package command

import (
	"sort"

	"github.com/yndnr/respkv-go/pkg/resp"
)

// HGet reads one hash field. HGET key field
type HGet struct {
	Key   string
	Field string
}

func parseHGet(arr resp.Array) (Command, error) {
	if err := validate(arr, []string{"hget"}, 2); err != nil {
		return nil, err
	}
	args, err := texts(arr[1:3])
	if err != nil {
		return nil, err
	}
	return HGet{Key: args[0], Field: args[1]}, nil
}

func (HGet) Name() string { return "hget" }

func (c HGet) Execute(b Backend) resp.Frame {
	if v, ok := b.HGet(c.Key, c.Field); ok {
		return v
	}
	return resp.Null{}
}

// HSet writes one hash field. HSET key field value
type HSet struct {
	Key   string
	Field string
	Value resp.Frame
}

func parseHSet(arr resp.Array) (Command, error) {
	if err := validate(arr, []string{"hset"}, 3); err != nil {
		return nil, err
	}
	args, err := texts(arr[1:3])
	if err != nil {
		return nil, err
	}
	return HSet{Key: args[0], Field: args[1], Value: arr[3]}, nil
}

func (HSet) Name() string { return "hset" }

func (c HSet) Execute(b Backend) resp.Frame {
	b.HSet(c.Key, c.Field, c.Value)
	return resp.OK
}

// HGetAll reads a whole hash. HGETALL key
type HGetAll struct {
	Key string
}

func parseHGetAll(arr resp.Array) (Command, error) {
	if err := validate(arr, []string{"hgetall"}, 1); err != nil {
		return nil, err
	}
	key, err := text(arr[1])
	if err != nil {
		return nil, err
	}
	return HGetAll{Key: key}, nil
}

func (HGetAll) Name() string { return "hgetall" }

// Execute returns field, value, field, value... ordered by field name, or
// Null when the key holds no hash.
func (c HGetAll) Execute(b Backend) resp.Frame {
	all, ok := b.HGetAll(c.Key)
	if !ok {
		return resp.Null{}
	}

	fields := make([]string, 0, len(all))
	for f := range all {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make(resp.Array, 0, 2*len(fields))
	for _, f := range fields {
		out = append(out, resp.BulkString(f), all[f])
	}
	return out
}

// HMGet reads several fields of one hash. HMGET key field [field ...]
type HMGet struct {
	Key    string
	Fields []string
}

func parseHMGet(arr resp.Array) (Command, error) {
	if err := validate(arr, []string{"hmget"}, 2); err != nil {
		return nil, err
	}
	args, err := texts(arr[1:])
	if err != nil {
		return nil, err
	}
	return HMGet{Key: args[0], Fields: args[1:]}, nil
}

func (HMGet) Name() string { return "hmget" }

// Execute returns one slot per field with Null for unset fields, or Null
// when the key holds no hash.
func (c HMGet) Execute(b Backend) resp.Frame {
	vals, ok := b.HMGet(c.Key, c.Fields...)
	if !ok {
		return resp.Null{}
	}
	return resp.Array(vals)
}
