// Package cmap provides a sharded concurrent map keyed by strings.
//
// Keys are routed to a power-of-two number of shards by seeded MurmurHash3.
// Each shard has its own RWMutex, so writers to unrelated keys rarely
// contend. Iteration walks shard by shard and is not a consistent snapshot
// of the whole map.
//
//	m := cmap.NewWithShards[string, resp.Frame](32)
//	m.Set("key", resp.BulkString("value"))
//	v, ok := m.Get("key")
package cmap
