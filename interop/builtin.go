package interop

import (
	"math/big"
	"reflect"
	"sync"
)

// ---------------------------------------------------------------------------
// Values every resolver understands
// ---------------------------------------------------------------------------

// MemberNames is the result collaborators return from GetMembers: a
// read-only array of strings.
type MemberNames []string

// Elements is a read-only array of arbitrary values, used for stack traces,
// multiple results and similar protocol-internal lists.
type Elements []any

// Entry is one element of a hash entries iterator: a read-only two-element
// array of key and value.
type Entry struct {
	Key   any
	Value any
}

type nullLib struct{}

func (nullLib) IsNull(r any) bool { return r == nil }

type boolLib struct{}

func (boolLib) IsBoolean(r any) bool { return true }

func (boolLib) AsBoolean(r any) (bool, error) { return r.(bool), nil }

type stringLib struct{}

func (stringLib) IsString(r any) bool { return true }

func (stringLib) AsString(r any) (string, error) { return r.(string), nil }

// listLib is a read-only array over a Go slice accessor.
type listLib struct {
	size func(r any) int64
	at   func(r any, i int64) any
}

func (l listLib) HasArrayElements(r any) bool { return true }

func (l listLib) GetArraySize(r any) (int64, error) { return l.size(r), nil }

func (l listLib) IsArrayElementReadable(r any, index int64) bool {
	return index >= 0 && index < l.size(r)
}

func (l listLib) IsArrayElementModifiable(r any, index int64) bool { return false }
func (l listLib) IsArrayElementInsertable(r any, index int64) bool { return false }
func (l listLib) IsArrayElementRemovable(r any, index int64) bool  { return false }

func (l listLib) ReadArrayElement(r any, index int64) (any, error) {
	if index < 0 || index >= l.size(r) {
		return nil, InvalidArrayIndex(index)
	}
	return l.at(r, index), nil
}

func (l listLib) WriteArrayElement(r any, index int64, value any) error { return Unsupported() }
func (l listLib) RemoveArrayElement(r any, index int64) error           { return Unsupported() }

var (
	memberNamesLib = listLib{
		size: func(r any) int64 { return int64(len(r.(MemberNames))) },
		at:   func(r any, i int64) any { return r.(MemberNames)[i] },
	}
	elementsLib = listLib{
		size: func(r any) int64 { return int64(len(r.(Elements))) },
		at:   func(r any, i int64) any { return r.(Elements)[i] },
	}
	entryLib = listLib{
		size: func(r any) int64 { return 2 },
		at: func(r any, i int64) any {
			if i == 0 {
				return r.(Entry).Key
			}
			return r.(Entry).Value
		},
	}
)

// ---------------------------------------------------------------------------
// Built-in iterators
// ---------------------------------------------------------------------------

// ArrayIterator walks the elements of a value with array elements. The
// size is re-read on every step, so elements removed concurrently end the
// iteration early.
type ArrayIterator struct {
	source  any
	exports *Exports

	mu   sync.Mutex
	next int64
}

// IterateElements returns an iterator over a fixed list of values.
func IterateElements(items Elements) *ArrayIterator {
	return &ArrayIterator{source: items, exports: builtinExports[ShapeOf(items)]}
}

type arrayIteratorLib struct{}

func (arrayIteratorLib) HasIterator(r any) bool         { return false }
func (arrayIteratorLib) GetIterator(r any) (any, error) { return nil, Unsupported() }
func (arrayIteratorLib) IsIterator(r any) bool          { return true }

func (arrayIteratorLib) HasIteratorNextElement(r any) (bool, error) {
	it := r.(*ArrayIterator)
	it.mu.Lock()
	defer it.mu.Unlock()
	size, err := it.exports.GetArraySize(it.source)
	if err != nil {
		return false, err
	}
	return it.next < size, nil
}

func (arrayIteratorLib) GetIteratorNextElement(r any) (any, error) {
	it := r.(*ArrayIterator)
	it.mu.Lock()
	defer it.mu.Unlock()
	size, err := it.exports.GetArraySize(it.source)
	if err != nil {
		return nil, err
	}
	if it.next >= size {
		return nil, StopIteration()
	}
	v, err := it.exports.ReadArrayElement(it.source, it.next)
	if err != nil {
		if KindOf(err) == KindInvalidArrayIndex {
			return nil, &StopIterationError{Cause: err}
		}
		return nil, err
	}
	it.next++
	return v, nil
}

// projectIterator yields one element of each entry of a hash entries
// iterator: index 0 for keys, 1 for values.
type projectIterator struct {
	entries  any
	exports  *Exports
	resolver *Resolver
	index    int64
}

type projectIteratorLib struct{}

func (projectIteratorLib) HasIterator(r any) bool         { return false }
func (projectIteratorLib) GetIterator(r any) (any, error) { return nil, Unsupported() }
func (projectIteratorLib) IsIterator(r any) bool          { return true }

func (projectIteratorLib) HasIteratorNextElement(r any) (bool, error) {
	p := r.(*projectIterator)
	return p.exports.HasIteratorNextElement(p.entries)
}

func (projectIteratorLib) GetIteratorNextElement(r any) (any, error) {
	p := r.(*projectIterator)
	entry, err := p.exports.GetIteratorNextElement(p.entries)
	if err != nil {
		return nil, err
	}
	return p.resolver.Resolve(entry).ReadArrayElement(entry, p.index)
}

// ---------------------------------------------------------------------------
// Built-in exporter
// ---------------------------------------------------------------------------

var builtinExports = map[any]*Exports{}

func registerBuiltin(sample any, parts ...any) {
	shape := ShapeOf(sample)
	builtinExports[shape] = NewExports(shape, parts...)
}

func init() {
	registerBuiltin(nil, nullLib{})
	registerBuiltin(false, boolLib{})
	registerBuiltin("", stringLib{})
	for _, n := range []any{
		int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0), uintptr(0),
		float32(0), float64(0), new(big.Int), new(big.Float),
	} {
		registerBuiltin(n, Numbers)
	}
	registerBuiltin(MemberNames(nil), memberNamesLib)
	registerBuiltin(Elements(nil), elementsLib)
	registerBuiltin(Entry{}, entryLib)
	registerBuiltin((*ArrayIterator)(nil), arrayIteratorLib{})
	registerBuiltin((*projectIterator)(nil), projectIteratorLib{})
}

// builtinExport serves the shapes every resolver understands.
func builtinExport(shape any) *Exports {
	switch shape.(type) {
	case nil, reflect.Type:
		return builtinExports[shape]
	}
	return nil
}

// builtinResolver resolves values for Exports that were built outside of a
// Resolver.
var builtinResolver = NewResolver()

// HasBuiltin reports whether every resolver serves shape on its own.
// Catch-all exporters leave these shapes alone.
func HasBuiltin(shape any) bool { return builtinExport(shape) != nil }
