// Package localsync redirects a model layer's synchronize operation to a
// local key-value store while preserving the asynchronous contract of a
// remote sync: a pending result handle, success/error callbacks, and a
// "request" lifecycle event, with the storage work deferred to a later turn
// of a cooperative scheduler.
package localsync

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iggydv12/localsync/model"
	"github.com/iggydv12/localsync/scheduler"
	"github.com/iggydv12/localsync/store"
)

// Method identifies a synchronize operation.
type Method string

const (
	MethodCreate Method = "create"
	MethodRead   Method = "read"
	MethodUpdate Method = "update"
	MethodPatch  Method = "patch"
	MethodDelete Method = "delete"
)

// Configuration errors, returned synchronously by Sync before any work is
// scheduled and before the request event is emitted.
var (
	ErrUnsupportedMethod = errors.New("unsupported sync method")
	ErrMissingKey        = errors.New("sync key not configured")
	ErrMissingStore      = errors.New("sync store not configured")
)

// Options configures a single Sync call. A nil *Options is valid and means
// no-op callbacks.
type Options struct {
	// Success is invoked exactly once on the success path, with the
	// operation's resulting JSON value (nil for delete).
	Success func(v any)
	// Error is invoked exactly once on the failure path, with a nil payload.
	Error func(v any)
	// Parse is kept for interface compatibility with the remote sync
	// contract; this adapter does not use it.
	Parse bool
}

// normalized returns a copy with defaults applied. The copy is what handlers
// of the request event observe.
func (o *Options) normalized() *Options {
	eff := &Options{Parse: true}
	if o != nil {
		*eff = *o
	}
	if eff.Success == nil {
		eff.Success = func(any) {}
	}
	if eff.Error == nil {
		eff.Error = func(any) {}
	}
	return eff
}

// Adapter performs synchronize operations against locally stored JSON.
// One Adapter serves any number of instances; per-call state lives in the
// Result handle.
type Adapter struct {
	sched  scheduler.Scheduler
	logger *zap.Logger
}

// New creates an Adapter that defers operation bodies onto sched.
// A nil logger disables logging.
func New(sched scheduler.Scheduler, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{sched: sched, logger: logger}
}

// Sync performs the named operation for inst. Precondition checks (method,
// key, store) run synchronously and abort the call with a configuration
// error before anything else happens. Otherwise the request event is emitted
// on inst, the operation body is scheduled, and the pending Result is
// returned immediately. Store and key configuration are re-resolved on every
// call, never cached.
func (a *Adapter) Sync(method Method, inst model.Instance, opts *Options) (*Result, error) {
	switch method {
	case MethodCreate, MethodRead, MethodUpdate, MethodPatch, MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	key, err := resolveKey(inst.SyncKey())
	if err != nil {
		return nil, err
	}
	st, err := resolveStore(inst.SyncStore())
	if err != nil {
		return nil, err
	}

	eff := opts.normalized()
	res := newResult()
	inst.Emit(model.EventRequest, inst, res, eff)

	a.logger.Debug("sync scheduled",
		zap.String("method", string(method)),
		zap.String("key", key))

	a.sched.Schedule(func() {
		a.run(method, inst, st, key, eff, res)
	})
	return res, nil
}

// run executes one operation body in a single scheduling turn.
func (a *Adapter) run(method Method, inst model.Instance, st store.Store, key string, opts *Options, res *Result) {
	switch method {
	case MethodCreate:
		a.create(inst, st, key, opts, res)
	case MethodRead:
		a.read(st, key, opts, res)
	case MethodUpdate, MethodPatch:
		a.update(inst, st, key, opts, res)
	case MethodDelete:
		a.delete(inst, st, key, opts, res)
	}
}

// create writes the instance's JSON under key, overwriting unconditionally.
// For a record the identifier attribute is set to the key first, so a
// freshly created record stops reporting itself as new. Always succeeds.
func (a *Adapter) create(inst model.Instance, st store.Store, key string, opts *Options, res *Result) {
	if inst.IsRecord() {
		inst.SetAttribute(inst.IDAttribute(), key)
	}
	v := normalize(inst.ToJSON())
	st.Set(key, marshal(key, v))
	opts.Success(v)
	res.resolve(v)
}

// read loads and parses the JSON stored under key. Absence is a routine
// failure delivered through the error callback and rejection; malformed
// stored JSON is a store-content defect and panics out of the turn.
func (a *Adapter) read(st store.Store, key string, opts *Options, res *Result) {
	raw, ok := st.Get(key)
	if !ok || raw == "" {
		opts.Error(nil)
		res.reject()
		return
	}
	v := unmarshal(key, raw)
	opts.Success(v)
	res.resolve(v)
}

// update deep-merges the instance's JSON onto whatever is stored under key,
// starting from an empty structure of the instance's shape when nothing is
// stored yet. Always succeeds.
func (a *Adapter) update(inst model.Instance, st store.Store, key string, opts *Options, res *Result) {
	var base any
	if raw, ok := st.Get(key); ok && raw != "" {
		base = unmarshal(key, raw)
	} else if inst.IsRecord() {
		base = map[string]any{}
	} else {
		base = []any{}
	}

	merged := merge(base, normalize(inst.ToJSON()))
	st.Set(key, marshal(key, merged))
	opts.Success(merged)
	res.resolve(merged)
}

// delete removes the value under key and clears a record's identifier
// attribute, making it new again. Deleting an absent key is a routine
// failure: error callback plus rejection, never a panic.
func (a *Adapter) delete(inst model.Instance, st store.Store, key string, opts *Options, res *Result) {
	if _, ok := st.Get(key); !ok {
		opts.Error(nil)
		res.reject()
		return
	}
	st.Delete(key)
	if inst.IsRecord() {
		inst.UnsetAttribute(inst.IDAttribute())
	}
	opts.Success(nil)
	res.resolve(nil)
}

// resolveKey evaluates the key configuration: a literal string or a
// zero-argument accessor, invoked fresh on every call.
func resolveKey(v any) (string, error) {
	switch k := v.(type) {
	case string:
		if k == "" {
			return "", ErrMissingKey
		}
		return k, nil
	case func() string:
		if k == nil {
			return "", ErrMissingKey
		}
		return resolveKey(k())
	default:
		return "", ErrMissingKey
	}
}

// resolveStore evaluates the store configuration: a store.Store or a
// zero-argument accessor, invoked fresh on every call.
func resolveStore(v any) (store.Store, error) {
	switch s := v.(type) {
	case store.Store:
		if s == nil {
			return nil, ErrMissingStore
		}
		return s, nil
	case func() store.Store:
		if s == nil {
			return nil, ErrMissingStore
		}
		return resolveStore(s())
	default:
		return nil, ErrMissingStore
	}
}

// normalize round-trips v through JSON so handlers and merge always see
// canonical JSON kinds (map[string]any, []any, float64, ...), whatever Go
// values the instance holds.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("localsync: instance not JSON-serializable: %w", err))
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Errorf("localsync: normalize: %w", err))
	}
	return out
}

func marshal(key string, v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("localsync: marshal for key %q: %w", key, err))
	}
	return string(b)
}

// unmarshal parses a stored string. Malformed contents are a defect in the
// store, not a routine failure, and propagate as a panic.
func unmarshal(key, raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		panic(fmt.Errorf("localsync: malformed stored value at key %q: %w", key, err))
	}
	return v
}
