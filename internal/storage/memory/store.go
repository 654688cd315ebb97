package memory

import (
	"github.com/yndnr/respkv-go/pkg/cmap"
	"github.com/yndnr/respkv-go/pkg/resp"
)

// hash is the field map stored under one hash key.
type hash = cmap.Map[string, resp.Frame]

// Store is the process-wide key-value state.
type Store struct {
	strings *cmap.Map[string, resp.Frame]
	hashes  *cmap.Map[string, *hash]

	shardCount int
}

// Option configures the Store.
type Option func(*Store)

// WithShardCount sets the shard count of the top-level maps and of each
// inner hash. n must be a power of two; other values fall back to the
// cmap default.
func WithShardCount(n int) Option {
	return func(s *Store) {
		s.shardCount = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{shardCount: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(s)
	}

	s.strings = cmap.NewWithShards[string, resp.Frame](s.shardCount)
	s.hashes = cmap.NewWithShards[string, *hash](s.shardCount)
	return s
}

// ShardCount returns the shard count in effect, after any fallback from
// an invalid WithShardCount value.
func (s *Store) ShardCount() int {
	return s.strings.ShardCount()
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (resp.Frame, bool) {
	return s.strings.Get(key)
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value resp.Frame) {
	s.strings.Set(key, value)
}

// HGet returns the value of field in the hash stored under key.
func (s *Store) HGet(key, field string) (resp.Frame, bool) {
	h, ok := s.hashes.Get(key)
	if !ok {
		return nil, false
	}
	return h.Get(field)
}

// HSet stores value under field in the hash at key, creating the hash on
// first use.
func (s *Store) HSet(key, field string, value resp.Frame) {
	h, _ := s.hashes.GetOrCreate(key, s.newHash)
	h.Set(field, value)
}

// HGetAll returns a copy of every field in the hash at key. The boolean is
// false when key holds no hash, which is distinct from an empty result.
func (s *Store) HGetAll(key string) (map[string]resp.Frame, bool) {
	h, ok := s.hashes.Get(key)
	if !ok {
		return nil, false
	}
	return h.Snapshot(), true
}

// HMGet returns one slot per requested field, in request order. Unset
// fields yield resp.Null. The boolean is false when key holds no hash.
func (s *Store) HMGet(key string, fields ...string) ([]resp.Frame, bool) {
	h, ok := s.hashes.Get(key)
	if !ok {
		return nil, false
	}

	out := make([]resp.Frame, len(fields))
	for i, f := range fields {
		if v, ok := h.Get(f); ok {
			out[i] = v
		} else {
			out[i] = resp.Null{}
		}
	}
	return out, true
}

func (s *Store) newHash() *hash {
	return cmap.NewWithShards[string, resp.Frame](s.shardCount)
}

// Stats describes the population of the store.
type Stats struct {
	StringKeys int
	HashKeys   int
	HashFields int
}

// Stats counts keys per namespace. Counts are gathered shard by shard and
// are not a consistent snapshot under concurrent writes.
func (s *Store) Stats() Stats {
	st := Stats{
		StringKeys: s.strings.Count(),
		HashKeys:   s.hashes.Count(),
	}
	s.hashes.Range(func(_ string, h *hash) bool {
		st.HashFields += h.Count()
		return true
	})
	return st
}
