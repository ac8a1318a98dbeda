// Package gowrap exposes arbitrary Go values to the interop protocol
// through reflection.
package gowrap

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeInfo describes a registered Go type.
type TypeInfo struct {
	TypeID uint16
	GoType reflect.Type
	Name   string // qualified metaobject name

	// ctor builds instances; invalid when the type has none.
	ctor reflect.Value
}

// Registry maps Go types to metaobject names and constructors.
// Thread-safe for concurrent registration and lookup.
type Registry struct {
	mu     sync.RWMutex
	types  map[uint16]*TypeInfo
	byType map[reflect.Type]uint16
	byName map[string]uint16
	nextID uint16
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{
		types:  make(map[uint16]*TypeInfo),
		byType: make(map[reflect.Type]uint16),
		byName: make(map[string]uint16),
		nextID: 1, // 0 means unregistered
	}
}

// Register names a Go type and returns its type ID. If the type is already
// registered, returns the existing ID.
func (r *Registry) Register(name string, goType reflect.Type) uint16 {
	return r.register(name, goType, reflect.Value{})
}

// RegisterConstructor registers the result type of ctor, which becomes the
// way the type's metaobject instantiates. ctor must be a function returning
// one value, optionally followed by an error.
func (r *Registry) RegisterConstructor(name string, ctor any) (uint16, error) {
	fn := reflect.ValueOf(ctor)
	if fn.Kind() != reflect.Func {
		return 0, fmt.Errorf("constructor for %s is %T, not a function", name, ctor)
	}
	ft := fn.Type()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return 0, fmt.Errorf("constructor for %s must return a value and an optional error", name)
	}
	return r.register(name, ft.Out(0), fn), nil
}

func (r *Registry) register(name string, goType reflect.Type, ctor reflect.Value) uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byType[goType]; ok {
		if ctor.IsValid() && !r.types[id].ctor.IsValid() {
			r.types[id].ctor = ctor
		}
		return id
	}

	id := r.nextID
	r.nextID++

	info := &TypeInfo{
		TypeID: id,
		GoType: goType,
		Name:   name,
		ctor:   ctor,
	}
	r.types[id] = info
	r.byType[goType] = id
	r.byName[name] = id
	return id
}

// Lookup returns the type info for a given type ID.
func (r *Registry) Lookup(id uint16) *TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[id]
}

// LookupByType returns the type info for a given Go reflect.Type.
func (r *Registry) LookupByType(goType reflect.Type) *TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byType[goType]
	if !ok {
		return nil
	}
	return r.types[id]
}

// LookupByName returns the type registered under a qualified name.
func (r *Registry) LookupByName(name string) *TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return nil
	}
	return r.types[id]
}

// Count returns the number of registered types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// nameOf returns the registered name of t, or its default name. A nil
// registry has no entries.
func (r *Registry) nameOf(t reflect.Type) string {
	if r != nil {
		if info := r.LookupByType(t); info != nil {
			return info.Name
		}
		// pointers to registered types share their name
		if t.Kind() == reflect.Pointer && t.Name() == "" {
			if info := r.LookupByType(t.Elem()); info != nil {
				return info.Name
			}
		}
	}
	return TypeName(t)
}

func (r *Registry) constructor(t reflect.Type) reflect.Value {
	if r != nil {
		if info := r.LookupByType(t); info != nil {
			return info.ctor
		}
	}
	return reflect.Value{}
}
