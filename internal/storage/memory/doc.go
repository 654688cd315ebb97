// Package memory provides the in-memory key-value store shared by every
// client connection.
//
// The store holds two independent namespaces:
//
//   - strings: key -> value
//   - hashes:  key -> field -> value
//
// Both are sharded concurrent maps, so callers never lock. Writes to one
// key or field are linearizable; there is no atomicity across keys.
// Nothing is ever removed, the store only grows until process exit.
package memory
