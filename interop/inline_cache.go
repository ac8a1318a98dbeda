package interop

import (
	"sync/atomic"

	"github.com/tliron/commonlog"
)

// Inline caching for message dispatch
//
// Each guest operation owns a CallSite. Most sites only ever see one
// receiver shape, a few see a handful, and rare ones see many. The site
// caches up to a fixed number of (shape, exports) pairs and gives up
// caching once that is exceeded. Results never depend on the cache.

var dispatchLog = commonlog.GetLogger("polyglot.dispatch")

// CacheState represents the current state of a call site.
type CacheState uint8

const (
	CacheEmpty       CacheState = iota // No cached lookup yet
	CacheMonomorphic                   // Single shape cached
	CachePolymorphic                   // 2..limit shapes cached
	CacheMegamorphic                   // Too many shapes, always resolve
)

func (s CacheState) String() string {
	switch s {
	case CacheMonomorphic:
		return "monomorphic"
	case CachePolymorphic:
		return "polymorphic"
	case CacheMegamorphic:
		return "megamorphic"
	}
	return "empty"
}

// DefaultCacheLimit is the number of shapes a call site caches before it
// turns megamorphic.
const DefaultCacheLimit = 4

type cacheEntry struct {
	shape   any
	exports *Exports
}

// cacheSnapshot is never mutated once published.
type cacheSnapshot struct {
	state   CacheState
	entries []cacheEntry
}

// CallSite is a polymorphic inline cache for one operation. The zero value
// is ready to use with DefaultCacheLimit. Lookups and updates may run
// concurrently and reentrantly.
type CallSite struct {
	name  string
	limit int

	snap atomic.Pointer[cacheSnapshot]

	// Statistics for profiling
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCallSite creates a call site. A limit of 0 selects DefaultCacheLimit;
// a negative limit disables caching.
func NewCallSite(name string, limit int) *CallSite {
	cs := &CallSite{}
	cs.Configure(name, limit)
	return cs
}

// Configure sets the name and limit and clears the cache.
func (cs *CallSite) Configure(name string, limit int) {
	cs.name = name
	cs.limit = limit
	cs.Reset()
}

// Name returns the site's name.
func (cs *CallSite) Name() string { return cs.name }

func (cs *CallSite) capacity() int {
	if cs.limit == 0 {
		return DefaultCacheLimit
	}
	return cs.limit
}

// Lookup returns the cached table for shape, or nil on a miss.
func (cs *CallSite) Lookup(shape any) *Exports {
	if s := cs.snap.Load(); s != nil && s.state != CacheMegamorphic {
		for i := range s.entries {
			if s.entries[i].shape == shape {
				cs.hits.Add(1)
				return s.entries[i].exports
			}
		}
	}
	cs.misses.Add(1)
	return nil
}

// Update records a resolved table, potentially upgrading the cache state.
func (cs *CallSite) Update(shape any, exports *Exports) {
	if exports == nil || cs.capacity() < 0 {
		return
	}
	for {
		old := cs.snap.Load()
		next := old.with(shape, exports, cs.capacity())
		if next == nil {
			return
		}
		if cs.snap.CompareAndSwap(old, next) {
			if next.state == CacheMegamorphic {
				dispatchLog.Debugf("call site %q went megamorphic after %d shapes", cs.name, len(old.entries))
			}
			return
		}
	}
}

// with returns the snapshot extended by one entry, or nil when nothing
// changes.
func (s *cacheSnapshot) with(shape any, exports *Exports, limit int) *cacheSnapshot {
	if s == nil {
		return &cacheSnapshot{state: CacheMonomorphic, entries: []cacheEntry{{shape, exports}}}
	}
	if s.state == CacheMegamorphic {
		return nil
	}
	for _, e := range s.entries {
		if e.shape == shape {
			return nil
		}
	}
	if len(s.entries) >= limit {
		return &cacheSnapshot{state: CacheMegamorphic}
	}
	entries := make([]cacheEntry, len(s.entries), len(s.entries)+1)
	copy(entries, s.entries)
	entries = append(entries, cacheEntry{shape, exports})
	return &cacheSnapshot{state: CachePolymorphic, entries: entries}
}

// Exports returns the table for receiver, consulting the cache first and
// the resolver on a miss.
func (cs *CallSite) Exports(r *Resolver, receiver any) *Exports {
	shape := ShapeOf(receiver)
	if ex := cs.Lookup(shape); ex != nil {
		return ex
	}
	ex := r.ResolveShape(shape)
	cs.Update(shape, ex)
	return ex
}

// State returns the current cache state.
func (cs *CallSite) State() CacheState {
	if s := cs.snap.Load(); s != nil {
		return s.state
	}
	return CacheEmpty
}

// Count returns the number of cached shapes.
func (cs *CallSite) Count() int {
	if s := cs.snap.Load(); s != nil {
		return len(s.entries)
	}
	return 0
}

// Hits returns the number of cache hits.
func (cs *CallSite) Hits() uint64 { return cs.hits.Load() }

// Misses returns the number of cache misses.
func (cs *CallSite) Misses() uint64 { return cs.misses.Load() }

// HitRate returns the cache hit rate as a percentage (0-100).
func (cs *CallSite) HitRate() float64 {
	hits, misses := cs.hits.Load(), cs.misses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) * 100 / float64(total)
}

// Reset clears the cache back to empty state.
func (cs *CallSite) Reset() {
	cs.snap.Store(nil)
	cs.hits.Store(0)
	cs.misses.Store(0)
}

// CacheStats holds aggregate call site statistics.
type CacheStats struct {
	TotalCallSites int     // Call sites inspected
	Monomorphic    int     // Sites in monomorphic state
	Polymorphic    int     // Sites in polymorphic state
	Megamorphic    int     // Sites in megamorphic state
	Empty          int     // Sites never used
	TotalHits      uint64  // Total cache hits
	TotalMisses    uint64  // Total cache misses
	HitRate        float64 // Overall hit rate percentage
}

// CollectStats gathers statistics over a set of call sites.
func CollectStats(sites []*CallSite) CacheStats {
	var stats CacheStats
	for _, cs := range sites {
		stats.TotalCallSites++
		switch cs.State() {
		case CacheMonomorphic:
			stats.Monomorphic++
		case CachePolymorphic:
			stats.Polymorphic++
		case CacheMegamorphic:
			stats.Megamorphic++
		default:
			stats.Empty++
		}
		stats.TotalHits += cs.Hits()
		stats.TotalMisses += cs.Misses()
	}
	if total := stats.TotalHits + stats.TotalMisses; total > 0 {
		stats.HitRate = float64(stats.TotalHits) * 100 / float64(total)
	}
	return stats
}
