package resp

import (
	"bytes"
	"slices"
	"sort"
	"strings"
)

// Type identifies a frame variant. Its value is the wire prefix byte.
type Type byte

// Frame type prefixes.
const (
	TypeSimpleString Type = '+'
	TypeSimpleError  Type = '-'
	TypeInteger      Type = ':'
	TypeBulkString   Type = '$'
	TypeArray        Type = '*'
	TypeNull         Type = '_'
	TypeBoolean      Type = '#'
	TypeDouble       Type = ','
	TypeMap          Type = '%'
	TypeSet          Type = '~'
)

// String returns the variant name.
func (t Type) String() string {
	switch t {
	case TypeSimpleString:
		return "simple-string"
	case TypeSimpleError:
		return "simple-error"
	case TypeInteger:
		return "integer"
	case TypeBulkString:
		return "bulk-string"
	case TypeArray:
		return "array"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeDouble:
		return "double"
	case TypeMap:
		return "map"
	case TypeSet:
		return "set"
	default:
		return "unknown(" + string(rune(t)) + ")"
	}
}

// Frame is one typed protocol value.
//
// The set of implementations is closed: SimpleString, SimpleError, Integer,
// BulkString, Array, Null, Boolean, Double, Map and Set. Frames are treated
// as immutable once constructed.
type Frame interface {
	Type() Type
	frame()
}

// SimpleString is a single-line status text. It must not contain CR or LF.
type SimpleString string

// SimpleError is a single-line error text. It must not contain CR or LF.
type SimpleError string

// Integer is a signed 64-bit integer.
type Integer int64

// BulkString is a length-prefixed binary-safe payload.
type BulkString []byte

// Array is an ordered sequence of frames.
//
// A zero-length Array is written as the legacy null array "*-1\r\n".
type Array []Frame

// Null represents absence.
type Null struct{}

// Boolean is true or false.
type Boolean bool

// Double is a 64-bit float. NaN is not a valid Double.
type Double float64

// OK is the conventional success reply.
const OK SimpleString = "OK"

func (SimpleString) Type() Type { return TypeSimpleString }
func (SimpleError) Type() Type  { return TypeSimpleError }
func (Integer) Type() Type      { return TypeInteger }
func (BulkString) Type() Type   { return TypeBulkString }
func (Array) Type() Type        { return TypeArray }
func (Null) Type() Type         { return TypeNull }
func (Boolean) Type() Type      { return TypeBoolean }
func (Double) Type() Type       { return TypeDouble }
func (Map) Type() Type          { return TypeMap }
func (Set) Type() Type          { return TypeSet }

func (SimpleString) frame() {}
func (SimpleError) frame()  {}
func (Integer) frame()      {}
func (BulkString) frame()   {}
func (Array) frame()        {}
func (Null) frame()         {}
func (Boolean) frame()      {}
func (Double) frame()       {}
func (Map) frame()          {}
func (Set) frame()          {}

// Error implements the error interface so a SimpleError can be returned as one.
func (e SimpleError) Error() string { return string(e) }

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   string
	Value Frame
}

// Map is a mapping from text keys to frames, kept sorted by key.
type Map struct {
	entries []MapEntry
}

// NewMap builds a Map from a Go map.
func NewMap(m map[string]Frame) Map {
	entries := make([]MapEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, MapEntry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return Map{entries: entries}
}

// MapOf builds a Map from entries. A later entry replaces an earlier one
// with the same key.
func MapOf(entries ...MapEntry) Map {
	m := make(map[string]Frame, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return NewMap(m)
}

// Len returns the number of entries.
func (m Map) Len() int { return len(m.entries) }

// Get returns the value stored under key.
func (m Map) Get(key string) (Frame, bool) {
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].Key >= key })
	if i < len(m.entries) && m.entries[i].Key == key {
		return m.entries[i].Value, true
	}
	return nil, false
}

// Entries returns the entries in key order.
func (m Map) Entries() []MapEntry {
	return slices.Clone(m.entries)
}

// Set is a deduplicated collection of frames kept in canonical order
// (sorted by encoded bytes). Two sets with the same members encode to
// identical bytes regardless of construction order.
type Set struct {
	items []Frame
}

// NewSet builds a Set from items, dropping duplicates.
func NewSet(items ...Frame) Set {
	type keyed struct {
		enc []byte
		f   Frame
	}
	ks := make([]keyed, 0, len(items))
	for _, f := range items {
		ks = append(ks, keyed{enc: Encode(f), f: f})
	}
	sort.SliceStable(ks, func(i, j int) bool { return bytes.Compare(ks[i].enc, ks[j].enc) < 0 })

	out := make([]Frame, 0, len(ks))
	for i, k := range ks {
		if i > 0 && bytes.Equal(ks[i-1].enc, k.enc) {
			continue
		}
		out = append(out, k.f)
	}
	return Set{items: out}
}

// Len returns the number of members.
func (s Set) Len() int { return len(s.items) }

// Items returns the members in canonical order.
func (s Set) Items() []Frame {
	return slices.Clone(s.items)
}

// Equal reports whether a and b are the same frame.
//
// An empty Array equals a nil Array. Doubles compare numerically.
func Equal(a, b Frame) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch av := a.(type) {
	case SimpleString:
		return av == b.(SimpleString)
	case SimpleError:
		return av == b.(SimpleError)
	case Integer:
		return av == b.(Integer)
	case BulkString:
		return bytes.Equal(av, b.(BulkString))
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Null:
		return true
	case Boolean:
		return av == b.(Boolean)
	case Double:
		return av == b.(Double)
	case Map:
		bv := b.(Map)
		if len(av.entries) != len(bv.entries) {
			return false
		}
		for i := range av.entries {
			if av.entries[i].Key != bv.entries[i].Key || !Equal(av.entries[i].Value, bv.entries[i].Value) {
				return false
			}
		}
		return true
	case Set:
		bv := b.(Set)
		if len(av.items) != len(bv.items) {
			return false
		}
		for i := range av.items {
			if !Equal(av.items[i], bv.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders f for logs and diagnostics, escaping CR/LF.
func String(f Frame) string {
	if f == nil {
		return "<nil>"
	}
	return strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(string(Encode(f)))
}
