package cmap

import (
	"math/rand/v2"
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the shard count used by New.
const DefaultShardCount = 16

// Map is a string-keyed map split into independently locked shards.
type Map[K ~string, V any] struct {
	shards []*shard[K, V]
	mask   uint64
	seed   uint32
}

type shard[K ~string, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func (s *shard[K, V]) load(key K) (V, bool) {
	s.mu.RLock()
	v, ok := s.items[key]
	s.mu.RUnlock()
	return v, ok
}

func (s *shard[K, V]) len() int {
	s.mu.RLock()
	n := len(s.items)
	s.mu.RUnlock()
	return n
}

// New returns an empty map with DefaultShardCount shards.
func New[K ~string, V any]() *Map[K, V] {
	return NewWithShards[K, V](DefaultShardCount)
}

// NewWithShards returns an empty map with n shards. n must satisfy
// ValidShardCount; other values select DefaultShardCount.
func NewWithShards[K ~string, V any](n int) *Map[K, V] {
	if !ValidShardCount(n) {
		n = DefaultShardCount
	}

	m := &Map[K, V]{
		shards: make([]*shard[K, V], n),
		mask:   uint64(n - 1),
		seed:   rand.Uint32(),
	}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{items: make(map[K]V)}
	}
	return m
}

// ValidShardCount reports whether n is a positive power of two.
func ValidShardCount(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// ShardCount returns the number of shards.
func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}

// shardFor routes key with a per-map seed so two maps do not share
// hot shards for the same key set.
func (m *Map[K, V]) shardFor(key K) *shard[K, V] {
	return m.shards[murmur3.Sum64WithSeed([]byte(key), m.seed)&m.mask]
}

// Get returns the value under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.shardFor(key).load(key)
}

// Set stores value under key.
func (m *Map[K, V]) Set(key K, value V) {
	s := m.shardFor(key)
	s.mu.Lock()
	s.items[key] = value
	s.mu.Unlock()
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *Map[K, V]) Delete(key K) {
	s := m.shardFor(key)
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// GetOrCreate returns the value under key, storing create() first when
// the key is absent. create runs under the shard lock, at most once per
// absent key. The boolean reports whether the value already existed.
func (m *Map[K, V]) GetOrCreate(key K, create func() V) (V, bool) {
	s := m.shardFor(key)
	if v, ok := s.load(key); ok {
		return v, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.items[key]; ok {
		return v, true
	}
	v := create()
	s.items[key] = v
	return v, false
}

// DeleteFunc removes every entry for which del returns true and reports
// how many were removed. Each shard is checked and pruned under its write
// lock, so an entry cannot change between the check and the delete.
func (m *Map[K, V]) DeleteFunc(del func(key K, value V) bool) int {
	removed := 0
	for _, s := range m.shards {
		s.mu.Lock()
		for k, v := range s.items {
			if del(k, v) {
				delete(s.items, k)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// Count returns the number of entries, summed shard by shard.
func (m *Map[K, V]) Count() int {
	n := 0
	for _, s := range m.shards {
		n += s.len()
	}
	return n
}
