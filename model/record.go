package model

import "sync"

// Record is a single data record backed by an attribute map.
// A Record is "new" until its identifier attribute is set; a successful
// create sets it, a successful delete clears it again.
type Record struct {
	emitter

	// Store is the sync store configuration: a store.Store value or a
	// zero-argument func() store.Store accessor, resolved fresh per sync.
	Store any
	// Key is the sync key configuration: a string value or a zero-argument
	// func() string accessor, resolved fresh per sync.
	Key any

	mu     sync.RWMutex
	attrs  map[string]any
	idAttr string
}

// NewRecord creates a Record with a copy of the given attributes and the
// default identifier attribute name.
func NewRecord(attrs map[string]any) *Record {
	r := &Record{
		attrs:  make(map[string]any, len(attrs)),
		idAttr: DefaultIDAttribute,
	}
	for k, v := range attrs {
		r.attrs[k] = v
	}
	return r
}

// SetIDAttribute changes the identifier attribute name for this record.
func (r *Record) SetIDAttribute(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idAttr = name
}

// IsRecord reports true: a Record is a single record.
func (r *Record) IsRecord() bool { return true }

// IDAttribute returns the identifier attribute name.
func (r *Record) IDAttribute() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.idAttr
}

// IsNew reports whether the record has never been persisted, derived from
// whether its identifier attribute is set.
func (r *Record) IsNew() bool {
	_, ok := r.Attribute(r.IDAttribute())
	return !ok
}

// Attribute returns the named attribute value and whether it is set.
func (r *Record) Attribute(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.attrs[name]
	return v, ok
}

// SetAttribute sets the named attribute.
func (r *Record) SetAttribute(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attrs[name] = value
}

// UnsetAttribute removes the named attribute.
func (r *Record) UnsetAttribute(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attrs, name)
}

// ToJSON returns a shallow copy of the record's attributes.
func (r *Record) ToJSON() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.attrs))
	for k, v := range r.attrs {
		out[k] = v
	}
	return out
}

// SyncStore returns the store configuration.
func (r *Record) SyncStore() any { return r.Store }

// SyncKey returns the key configuration.
func (r *Record) SyncKey() any { return r.Key }
