package model

import "sync"

// Collection is an ordered collection of Records that synchronizes as a
// single JSON array under one key.
type Collection struct {
	emitter

	// Store is the sync store configuration, as on Record.
	Store any
	// Key is the sync key configuration, as on Record.
	Key any

	mu      sync.RWMutex
	records []*Record
}

// NewCollection creates a Collection holding the given records.
func NewCollection(records ...*Record) *Collection {
	c := &Collection{}
	c.records = append(c.records, records...)
	return c
}

// Add appends a record to the collection.
func (c *Collection) Add(r *Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// IsRecord reports false: a Collection is not a single record.
func (c *Collection) IsRecord() bool { return false }

// IDAttribute returns the default identifier attribute name. Collections
// have no identifier of their own.
func (c *Collection) IDAttribute() string { return DefaultIDAttribute }

// Attribute always reports unset: collections carry no attributes.
func (c *Collection) Attribute(string) (any, bool) { return nil, false }

// SetAttribute is a no-op for collections.
func (c *Collection) SetAttribute(string, any) {}

// UnsetAttribute is a no-op for collections.
func (c *Collection) UnsetAttribute(string) {}

// ToJSON returns the collection's records as a slice of attribute maps.
func (c *Collection) ToJSON() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]any, 0, len(c.records))
	for _, r := range c.records {
		out = append(out, r.ToJSON())
	}
	return out
}

// SyncStore returns the store configuration.
func (c *Collection) SyncStore() any { return c.Store }

// SyncKey returns the key configuration.
func (c *Collection) SyncKey() any { return c.Key }
