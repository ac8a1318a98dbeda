package gowrap

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/chazu/polyglot/interop"
)

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

	// typeShape is the shape of reflect.Type values, which serve as the
	// metaobjects of Go values.
	typeShape = reflect.TypeOf(reflect.TypeOf(0))
)

// ExitCoder is implemented by errors that request termination with an
// exit status.
type ExitCoder interface {
	ExitCode() int
}

// Exporter serves any Go value the built-in shapes do not cover. It is a
// catch-all: register it after more specific exporters.
//
// Go values are accessed in place without synchronization; callers that
// share a value between goroutines must serialize access themselves.
type Exporter struct {
	resolver *interop.Resolver
	registry *Registry

	tables sync.Map // reflect.Type → *interop.Exports
}

// NewExporter creates an exporter. The resolver interrogates values passed
// in as arguments or written into Go containers; the registry, which may
// be nil, names types and supplies constructors.
func NewExporter(r *interop.Resolver, registry *Registry) *Exporter {
	return &Exporter{resolver: r, registry: registry}
}

// Registry returns the exporter's type registry, or nil.
func (e *Exporter) Registry() *Registry { return e.registry }

func (e *Exporter) Export(shape any) *interop.Exports {
	t, ok := shape.(reflect.Type)
	if !ok || t == nil || interop.HasBuiltin(shape) {
		return nil
	}
	if ex, ok := e.tables.Load(t); ok {
		return ex.(*interop.Exports)
	}
	ex, _ := e.tables.LoadOrStore(t, e.build(t))
	return ex.(*interop.Exports)
}

func (e *Exporter) build(t reflect.Type) *interop.Exports {
	if t == typeShape {
		return interop.NewExports(t, typeLib{e}, identityLib{}, displayLib{e})
	}

	var parts []any
	if t.Implements(errorType) {
		parts = append(parts, errorLib{})
	}

	switch t.Kind() {
	case reflect.Bool:
		parts = append(parts, boolLib{})
	case reflect.String:
		parts = append(parts, stringLib{})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		parts = append(parts, numberLib{})
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			parts = append(parts, bytesBuffer)
		}
		parts = append(parts, seqLib{e: e})
	case reflect.Array:
		parts = append(parts, seqLib{e: e})
	case reflect.Map:
		parts = append(parts, mapLib{e})
	case reflect.Func:
		parts = append(parts, funcLib{e})
	case reflect.UnsafePointer:
		parts = append(parts, pointerLib{})
	case reflect.Pointer:
		switch t.Elem().Kind() {
		case reflect.Slice, reflect.Array:
			parts = append(parts, seqLib{e: e, indirect: true})
		}
	}

	if idx := indexMembers(t); len(idx.names) > 0 {
		parts = append(parts, memberLib{e, idx})
	}
	if nillable(t) {
		parts = append(parts, nullLib{}, identityLib{})
	}
	parts = append(parts, metaLib{e}, displayLib{e})
	return interop.NewExports(t, parts...)
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}
