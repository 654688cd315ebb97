package cmap

import (
	"iter"
	"maps"
)

// All yields every entry, one shard at a time under that shard's read
// lock. The sequence is not a consistent view across shards. The loop
// body must not write to m.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, s := range m.shards {
			if !s.each(yield) {
				return
			}
		}
	}
}

func (s *shard[K, V]) each(yield func(K, V) bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, v := range s.items {
		if !yield(k, v) {
			return false
		}
	}
	return true
}

// Range calls fn for each entry until fn returns false.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	m.All()(fn)
}

// Snapshot copies the entries into a plain map.
func (m *Map[K, V]) Snapshot() map[K]V {
	return maps.Collect(m.All())
}
