// Package store defines the key-value store contract consumed by the sync
// adapter, plus in-memory and Pebble-backed implementations.
//
// A store holds at most one JSON string per key. The adapter only ever needs
// point get/set/delete access; anything exposing these semantics qualifies.
package store

// Store is the key-value container where serialized records are persisted.
// The adapter treats it as externally-owned shared state: it assumes
// point-in-time access, never exclusive ownership.
type Store interface {
	// Get returns the value stored at key, and whether one is present.
	Get(key string) (string, bool)
	// Set stores value at key, overwriting any existing value.
	Set(key, value string)
	// Delete removes the value at key, if any.
	Delete(key string)
}
