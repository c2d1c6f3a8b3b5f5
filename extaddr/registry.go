package extaddr

import (
	"reflect"
	"sync"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
)

// TypeID is the integer identifier an engine instance issues for one
// registered external-address type. Ids are arbitrary per instance, with
// no fixed assignment across instances or process runs, so they are never
// stored beyond the instance they came from.
type TypeID int

// Instance is the slice of the engine surface the registry needs: the
// stable identity it keys on and the descriptor installer that issues ids.
type Instance interface {
	ID() string
	InstallExternalAddressType(desc clipsruntime.ExternalType) int
}

// Registry maps (engine instance, payload type) pairs to issued type ids.
// It is shared process state and safe for concurrent use; entries are keyed
// by the instance identifier issued at creation, never by anything
// address-derived, so a reused allocation can never alias a dead instance.
type Registry struct {
	mu         sync.RWMutex
	byInstance map[string]map[reflect.Type]entry
}

type entry struct {
	name string
	id   TypeID
}

// NewRegistry creates an empty registry. Environments create their own by
// default; share one explicitly when values cross between environments.
func NewRegistry() *Registry {
	return &Registry{byInstance: make(map[string]map[reflect.Type]entry)}
}

// Register installs desc into the instance and records the issued id under
// (instance, t). Registering the same pair twice is a caller error and
// fails with AlreadyRegistered; the first registration stays in force.
func (r *Registry) Register(eng Instance, t reflect.Type, desc clipsruntime.ExternalType) (TypeID, error) {
	if desc.Name == "" {
		desc.Name = t.String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	types := r.byInstance[eng.ID()]
	if types == nil {
		types = make(map[reflect.Type]entry)
		r.byInstance[eng.ID()] = types
	}
	if _, dup := types[t]; dup {
		return 0, errors.AlreadyRegistered(t.String())
	}

	id := TypeID(eng.InstallExternalAddressType(desc))
	types[t] = entry{name: desc.Name, id: id}
	return id, nil
}

// Lookup returns the id issued for (instance, t), or Unregistered when the
// pair was never registered. Ids are resolved freshly through here before
// every use; nothing caches them across instances.
func (r *Registry) Lookup(eng Instance, t reflect.Type) (TypeID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.byInstance[eng.ID()][t]; ok {
		return e.id, nil
	}
	return 0, errors.Unregistered(t.String())
}

// Is reports whether v is an external address whose embedded type id equals
// the id issued to (instance, t). False for unregistered pairs and for
// values of any other kind.
func (r *Registry) Is(eng Instance, t reflect.Type, v data.Value) bool {
	x, ok := v.External()
	if !ok {
		return false
	}
	id, err := r.Lookup(eng, t)
	if err != nil {
		return false
	}
	return TypeID(x.TypeID()) == id
}

// Cast returns v's payload when Is holds for (instance, t). An
// unregistered pair fails with Unregistered; a registered pair over a
// value of another type fails with TypeMismatch naming the target type.
func (r *Registry) Cast(eng Instance, t reflect.Type, v data.Value) (any, error) {
	id, err := r.Lookup(eng, t)
	if err != nil {
		return nil, err
	}
	x, ok := v.External()
	if !ok || TypeID(x.TypeID()) != id {
		return nil, errors.TypeMismatch(t.String())
	}
	return x.Payload(), nil
}

// Forget drops every registration recorded for an instance. Environments
// call it on teardown so a later instance reusing the identifier space
// starts clean.
func (r *Registry) Forget(instanceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byInstance, instanceID)
}

// RegisterType installs T's descriptor under the given engine-side name and
// records the issued id.
func RegisterType[T any](r *Registry, eng Instance, name string) (TypeID, error) {
	return r.Register(eng, reflect.TypeOf((*T)(nil)).Elem(), clipsruntime.ExternalType{Name: name})
}

// IsType reports whether v holds a payload registered as T.
func IsType[T any](r *Registry, eng Instance, v data.Value) bool {
	return r.Is(eng, reflect.TypeOf((*T)(nil)).Elem(), v)
}

// CastTo returns v's payload as T, failing like Cast when the value was
// not registered as T on this instance.
func CastTo[T any](r *Registry, eng Instance, v data.Value) (T, error) {
	var zero T
	p, err := r.Cast(eng, reflect.TypeOf((*T)(nil)).Elem(), v)
	if err != nil {
		return zero, err
	}
	out, ok := p.(T)
	if !ok {
		return zero, errors.TypeMismatch(reflect.TypeOf((*T)(nil)).Elem().String())
	}
	return out, nil
}
