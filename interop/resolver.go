package interop

import (
	"reflect"
	"sync"
)

// Exporter supplies the message table for receivers of one shape, or nil
// when it does not serve the shape. Exporters are consulted in
// registration order, so specific exporters go before catch-all ones.
type Exporter interface {
	Export(shape any) *Exports
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(shape any) *Exports

func (f ExporterFunc) Export(shape any) *Exports { return f(shape) }

// ShapeOf returns the dispatch key of a raw receiver: its InteropShape if
// it is Shaped, its Go type otherwise.
func ShapeOf(r any) any {
	if s, ok := r.(Shaped); ok {
		return s.InteropShape()
	}
	return reflect.TypeOf(r)
}

// Resolver is the general lookup from receiver to Exports. It holds no
// cache; CallSite puts a bounded cache in front of it.
type Resolver struct {
	mu        sync.RWMutex
	exporters []Exporter
	policy    *Policy
}

// NewResolver creates a resolver consulting the given exporters and then
// the built-in shapes.
func NewResolver(exporters ...Exporter) *Resolver {
	return &Resolver{exporters: exporters}
}

// Register appends an exporter.
func (r *Resolver) Register(e Exporter) {
	r.mu.Lock()
	r.exporters = append(r.exporters, e)
	r.mu.Unlock()
}

// SetPolicy restricts the categories visible through this resolver. Call
// sites that already cached tables should be reset afterwards.
func (r *Resolver) SetPolicy(p *Policy) {
	r.mu.Lock()
	r.policy = p
	r.mu.Unlock()
}

// Policy returns the active policy, or nil.
func (r *Resolver) Policy() *Policy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy
}

// Resolve returns the table for the receiver's shape.
func (r *Resolver) Resolve(receiver any) *Exports {
	return r.ResolveShape(ShapeOf(receiver))
}

// ResolveShape returns the table for shape. Unknown shapes get an empty
// table that supports no message.
func (r *Resolver) ResolveShape(shape any) *Exports {
	r.mu.RLock()
	exporters := r.exporters
	policy := r.policy
	r.mu.RUnlock()

	var found *Exports
	for _, e := range exporters {
		if found = e.Export(shape); found != nil {
			break
		}
	}
	if found == nil {
		found = builtinExport(shape)
	}
	if found == nil {
		found = &Exports{}
	}

	ex := *found
	ex.shape = shape
	ex.resolver = r
	if policy.restricts() {
		policy.apply(&ex)
	}
	return &ex
}
