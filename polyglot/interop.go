// Package polyglot is the guest-facing side of the interop protocol. Every
// operation has its own call site: it resolves the receiver's message
// table through a bounded inline cache, unwraps foreign receivers and
// arguments, runs the message and wraps the result. Failures come back as
// *vm.GuestError carrying the matching guest exception.
package polyglot

import (
	"github.com/chazu/polyglot/interop"
	"github.com/chazu/polyglot/vm"
)

// Interop exposes the protocol to guest code. It must not be copied after
// first use.
type Interop struct {
	resolver *interop.Resolver
	sites    [numOps]interop.CallSite
}

type config struct {
	cacheLimit    int
	policy        *interop.Policy
	collaborators []func(*interop.Resolver) interop.Exporter
}

// Option configures an Interop.
type Option func(*config)

// WithCacheLimit sets the number of shapes each call site caches before it
// turns megamorphic. Zero selects the default; a negative limit disables
// caching.
func WithCacheLimit(n int) Option {
	return func(c *config) { c.cacheLimit = n }
}

// WithPolicy restricts the capability categories visible to guests.
func WithPolicy(p *interop.Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithExporter registers a foreign collaborator. Collaborators are
// consulted in registration order after the guest object model.
func WithExporter(e interop.Exporter) Option {
	return WithCollaborator(func(*interop.Resolver) interop.Exporter { return e })
}

// WithCollaborator registers a collaborator that needs the resolver, for
// instance to interrogate values written into its containers.
func WithCollaborator(build func(*interop.Resolver) interop.Exporter) Option {
	return func(c *config) { c.collaborators = append(c.collaborators, build) }
}

// New creates an Interop serving guest objects and the given collaborators.
func New(opts ...Option) *Interop {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	r := interop.NewResolver()
	r.Register(vm.NewExporter(r))
	for _, build := range cfg.collaborators {
		r.Register(build(r))
	}
	r.SetPolicy(cfg.policy)

	p := &Interop{resolver: r}
	for i := range p.sites {
		p.sites[i].Configure(op(i).String(), cfg.cacheLimit)
	}
	return p
}

// Resolver returns the slow-path resolver behind the call sites.
func (p *Interop) Resolver() *interop.Resolver { return p.resolver }

// Register adds a collaborator after construction and clears every call
// site.
func (p *Interop) Register(e interop.Exporter) {
	p.resolver.Register(e)
	p.ResetCaches()
}

// ResetCaches empties every call site. Results are unaffected.
func (p *Interop) ResetCaches() {
	for i := range p.sites {
		p.sites[i].Reset()
	}
}

// CallSites returns the call sites, for profiling.
func (p *Interop) CallSites() []*interop.CallSite {
	sites := make([]*interop.CallSite, len(p.sites))
	for i := range p.sites {
		sites[i] = &p.sites[i]
	}
	return sites
}

// Stats aggregates statistics over every call site.
func (p *Interop) Stats() interop.CacheStats {
	return interop.CollectStats(p.CallSites())
}

// receiver resolves the table for a guest receiver at the site of o. The
// raw receiver is the boxed value for foreign boxes and the object itself
// otherwise.
func (p *Interop) receiver(o op, receiver *vm.Object) (raw any, ex *interop.Exports, native bool) {
	if receiver == nil {
		panic("polyglot: nil receiver for " + o.String())
	}
	raw = unwrap(receiver)
	return raw, p.sites[o].Exports(p.resolver, raw), !receiver.IsForeign()
}

// value marshals an argument for a receiver: native receivers get the
// guest object, preserving its type; foreign receivers get the raw value.
func value(native bool, v *vm.Object) any {
	if v == nil {
		v = vm.Null
	}
	if native {
		return v
	}
	return unwrap(v)
}
