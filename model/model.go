// Package model defines the data-instance contract the sync adapter consumes,
// plus in-memory Record and Collection reference implementations.
//
// The adapter never depends on a concrete model type: any value implementing
// Instance can be synchronized. Record and Collection cover the common case
// of attribute-map records and ordered record collections.
package model

// EventRequest is emitted on an instance when a sync operation has passed its
// precondition checks and is about to be scheduled. Handlers receive the
// instance, the pending result handle, and the effective options.
const EventRequest = "request"

// DefaultIDAttribute is the identifier attribute name used when an instance
// does not configure one.
const DefaultIDAttribute = "id"

// Instance is the capability set the sync adapter requires from a data
// instance. A record serializes to a JSON object; a collection serializes to
// a JSON array of objects.
type Instance interface {
	// IsRecord reports whether this instance is a single record, as opposed
	// to a collection of records.
	IsRecord() bool
	// IDAttribute returns the name of the identifier attribute.
	IDAttribute() string
	// Attribute returns the named attribute value and whether it is set.
	Attribute(name string) (any, bool)
	// SetAttribute sets the named attribute. A no-op for collections.
	SetAttribute(name string, value any)
	// UnsetAttribute removes the named attribute. A no-op for collections.
	UnsetAttribute(name string)
	// ToJSON returns the instance's current state as a JSON-compatible value.
	ToJSON() any
	// Emit delivers a fire-and-forget lifecycle notification to handlers.
	Emit(event string, args ...any)
	// SyncStore returns the sync store configuration: a store.Store or a
	// zero-argument func() store.Store accessor.
	SyncStore() any
	// SyncKey returns the sync key configuration: a string or a
	// zero-argument func() string accessor.
	SyncKey() any
}
