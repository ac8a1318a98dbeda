package cbordoc

import (
	"errors"
	"fmt"
	"slices"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/polyglot/interop"
)

// DefaultMaxDepth bounds the nesting Export follows by default.
const DefaultMaxDepth = 32

// ErrTooDeep is returned when a value nests deeper than the export bound,
// which also stops cyclic structures.
var ErrTooDeep = errors.New("cbordoc: value nests too deeply")

// Options controls Export.
type Options struct {
	MaxDepth        int  // zero means DefaultMaxDepth
	IncludeInternal bool // export internal members too
}

// Export snapshots any value into canonical CBOR by interrogating it
// through the protocol:
//
//   - null, booleans, strings and numbers become CBOR scalars;
//   - buffers become byte strings;
//   - arrays become arrays and hashes become maps;
//   - values with members become maps from member name to value, leaving
//     out executable members and members whose read has side effects;
//   - anything else becomes its display string.
//
// Items of this package keep their tags, and bignums their precision.
func Export(v any, r *interop.Resolver, opts Options) ([]byte, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	x := exporter{resolver: r, opts: opts}
	tree, err := x.value(v, 0)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(tree)
}

type exporter struct {
	resolver *interop.Resolver
	opts     Options
}

func (x exporter) value(v any, depth int) (any, error) {
	if depth > x.opts.MaxDepth {
		return nil, ErrTooDeep
	}
	if it, ok := v.(*Item); ok {
		switch it.kind {
		case KindBignum:
			return it.Value()
		case KindTag:
			if err := it.decode(); err != nil {
				return nil, err
			}
			content, err := x.value(it.content, depth+1)
			if err != nil {
				return nil, err
			}
			return cbor.Tag{Number: it.tag, Content: content}, nil
		}
	}

	ex := x.resolver.Resolve(v)
	switch {
	case ex.IsNull(v):
		return nil, nil
	case ex.IsBoolean(v):
		return ex.AsBoolean(v)
	case ex.IsString(v):
		return ex.AsString(v)
	case ex.IsNumber(v):
		return number(v, ex)
	case ex.HasBufferElements(v):
		return bufferBytes(v, ex)
	case ex.HasArrayElements(v):
		return x.array(v, ex, depth)
	case ex.HasHashEntries(v):
		return x.hash(v, ex, depth)
	case ex.HasMembers(v):
		return x.members(v, ex, depth)
	}
	return ex.ToDisplayString(v, false), nil
}

func number(v any, ex *interop.Exports) (any, error) {
	switch {
	case ex.FitsInLong(v):
		return ex.AsLong(v)
	case ex.FitsInDouble(v):
		return ex.AsDouble(v)
	}
	return nil, interop.UnsupportedType("long or double", v)
}

func bufferBytes(v any, ex *interop.Exports) ([]byte, error) {
	size, err := ex.GetBufferSize(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	for i := range size {
		b, err := ex.ReadBufferByte(v, i)
		if err != nil {
			return nil, err
		}
		out[i] = byte(b)
	}
	return out, nil
}

func (x exporter) array(v any, ex *interop.Exports, depth int) (any, error) {
	size, err := ex.GetArraySize(v)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, size)
	for i := range size {
		if !ex.IsArrayElementReadable(v, i) {
			continue
		}
		elem, err := ex.ReadArrayElement(v, i)
		if err != nil {
			return nil, err
		}
		ev, err := x.value(elem, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (x exporter) hash(v any, ex *interop.Exports, depth int) (any, error) {
	it, err := ex.GetHashEntriesIterator(v)
	if err != nil {
		return nil, err
	}
	itEx := x.resolver.Resolve(it)
	out := pairs{}
	for {
		more, err := itEx.HasIteratorNextElement(it)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		entry, err := itEx.GetIteratorNextElement(it)
		if interop.KindOf(err) == interop.KindStopIteration {
			break
		}
		if err != nil {
			return nil, err
		}
		entryEx := x.resolver.Resolve(entry)
		k, err := entryEx.ReadArrayElement(entry, 0)
		if err != nil {
			return nil, err
		}
		val, err := entryEx.ReadArrayElement(entry, 1)
		if err != nil {
			return nil, err
		}
		if err := x.add(&out, k, val, depth); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (x exporter) members(v any, ex *interop.Exports, depth int) (any, error) {
	names, err := ex.GetMembers(v, x.opts.IncludeInternal)
	if err != nil {
		return nil, err
	}
	namesEx := x.resolver.Resolve(names)
	n, err := namesEx.GetArraySize(names)
	if err != nil {
		return nil, err
	}
	out := pairs{}
	for i := range n {
		nv, err := namesEx.ReadArrayElement(names, i)
		if err != nil {
			return nil, err
		}
		name, err := x.resolver.Resolve(nv).AsString(nv)
		if err != nil {
			return nil, err
		}
		if !ex.IsMemberReadable(v, name) || ex.HasMemberReadSideEffects(v, name) {
			continue
		}
		val, err := ex.ReadMember(v, name)
		if err != nil {
			return nil, err
		}
		if x.resolver.Resolve(val).IsExecutable(val) {
			continue
		}
		if err := x.add(&out, name, val, depth); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (x exporter) add(out *pairs, k, v any, depth int) error {
	kv, err := x.value(k, depth+1)
	if err != nil {
		return err
	}
	vv, err := x.value(v, depth+1)
	if err != nil {
		return err
	}
	kb, err := encMode.Marshal(kv)
	if err != nil {
		return err
	}
	vb, err := encMode.Marshal(vv)
	if err != nil {
		return err
	}
	*out = append(*out, pair{kb, vb})
	return nil
}

type pair struct {
	key, value cbor.RawMessage
}

// pairs is a map whose keys may be any CBOR value, including ones Go
// cannot use as map keys. It encodes in canonical key order.
type pairs []pair

func (p pairs) MarshalCBOR() ([]byte, error) {
	sorted := slices.Clone(p)
	slices.SortFunc(sorted, func(a, b pair) int { return compareCanonical(a.key, b.key) })
	for i := 1; i < len(sorted); i++ {
		if compareCanonical(sorted[i-1].key, sorted[i].key) == 0 {
			return nil, fmt.Errorf("cbordoc: duplicate map key %x", []byte(sorted[i].key))
		}
	}
	buf := appendHead(nil, 5, uint64(len(sorted)))
	for _, kv := range sorted {
		buf = append(buf, kv.key...)
		buf = append(buf, kv.value...)
	}
	return buf, nil
}

// appendHead appends the shortest head for a major type and argument.
func appendHead(buf []byte, major byte, n uint64) []byte {
	m := major << 5
	switch {
	case n < 24:
		return append(buf, m|byte(n))
	case n <= 0xff:
		return append(buf, m|24, byte(n))
	case n <= 0xffff:
		return append(buf, m|25, byte(n>>8), byte(n))
	case n <= 0xffffffff:
		return append(buf, m|26, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
	return append(buf, m|27,
		byte(n>>56), byte(n>>48), byte(n>>40), byte(n>>32),
		byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}
