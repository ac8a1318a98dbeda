package cbordoc

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"

	"github.com/chazu/polyglot/interop"
)

// kindShape is the shape of Kind values, which are the metaobjects of
// items.
var kindShape = reflect.TypeOf(Kind(0))

// Exporter serves items and their kinds. Documents are read-only: no
// message modifies an item.
type Exporter struct {
	resolver *interop.Resolver
	tables   map[Kind]*interop.Exports
	kinds    *interop.Exports
}

// NewExporter builds the tables for every kind. The resolver converts map
// keys arriving from other languages.
func NewExporter(r *interop.Resolver) *Exporter {
	e := &Exporter{resolver: r, tables: make(map[Kind]*interop.Exports)}
	add := func(k Kind, parts ...any) {
		parts = append(parts, metaLib{}, identityLib{}, displayLib{})
		e.tables[k] = interop.NewExports(k, parts...)
	}
	add(KindUnsigned, numberLib{})
	add(KindNegative, numberLib{})
	add(KindBignum, numberLib{}, tagLib{})
	add(KindFloat, numberLib{})
	add(KindBytes, bytesBuffer)
	add(KindText, textLib{})
	add(KindArray, arrayLib{})
	add(KindMap, hashLib{e})
	add(KindTag, tagLib{})
	add(KindBool, boolLib{})
	add(KindNull, nullLib{})
	add(KindSimple)
	e.kinds = interop.NewExports(kindShape, kindLib{})
	return e
}

func (e *Exporter) Export(shape any) *interop.Exports {
	switch s := shape.(type) {
	case Kind:
		return e.tables[s]
	case reflect.Type:
		if s == kindShape {
			return e.kinds
		}
	}
	return nil
}

func item(r any) *Item { return r.(*Item) }

// ---------------------------------------------------------------------------
// Scalars
// ---------------------------------------------------------------------------

type nullLib struct{}

func (nullLib) IsNull(r any) bool { return true }

type boolLib struct{}

func (boolLib) IsBoolean(r any) bool { return true }

func (boolLib) AsBoolean(r any) (bool, error) {
	v, err := item(r).Value()
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

type textLib struct{}

func (textLib) IsString(r any) bool { return item(r).decode() == nil }

func (textLib) AsString(r any) (string, error) {
	v, err := item(r).Value()
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// numberLib answers for integers, bignums and floats through their
// decoded Go values.
type numberLib struct{}

func num(r any) any {
	v, _ := item(r).Value()
	return v
}

func (numberLib) IsNumber(r any) bool             { return item(r).decode() == nil }
func (numberLib) FitsInByte(r any) bool           { return interop.Numbers.FitsInByte(num(r)) }
func (numberLib) FitsInShort(r any) bool          { return interop.Numbers.FitsInShort(num(r)) }
func (numberLib) FitsInInt(r any) bool            { return interop.Numbers.FitsInInt(num(r)) }
func (numberLib) FitsInLong(r any) bool           { return interop.Numbers.FitsInLong(num(r)) }
func (numberLib) FitsInFloat(r any) bool          { return interop.Numbers.FitsInFloat(num(r)) }
func (numberLib) FitsInDouble(r any) bool         { return interop.Numbers.FitsInDouble(num(r)) }
func (numberLib) AsByte(r any) (int8, error)      { return interop.Numbers.AsByte(num(r)) }
func (numberLib) AsShort(r any) (int16, error)    { return interop.Numbers.AsShort(num(r)) }
func (numberLib) AsInt(r any) (int32, error)      { return interop.Numbers.AsInt(num(r)) }
func (numberLib) AsLong(r any) (int64, error)     { return interop.Numbers.AsLong(num(r)) }
func (numberLib) AsFloat(r any) (float32, error)  { return interop.Numbers.AsFloat(num(r)) }
func (numberLib) AsDouble(r any) (float64, error) { return interop.Numbers.AsDouble(num(r)) }

// bytesBuffer exposes byte strings as read-only buffers.
var bytesBuffer = interop.ByteBuffer{View: func(r any) ([]byte, bool, bool) {
	v, err := item(r).Value()
	if err != nil {
		return nil, false, false
	}
	return v.([]byte), false, true
}}

// ---------------------------------------------------------------------------
// Arrays and maps
// ---------------------------------------------------------------------------

type arrayLib struct{}

func (arrayLib) HasArrayElements(r any) bool { return item(r).decode() == nil }

func (arrayLib) GetArraySize(r any) (int64, error) {
	it := item(r)
	if err := it.decode(); err != nil {
		return 0, err
	}
	return int64(len(it.elems)), nil
}

func (arrayLib) IsArrayElementReadable(r any, index int64) bool {
	return index >= 0 && index < int64(item(r).Len())
}

func (arrayLib) IsArrayElementModifiable(r any, index int64) bool { return false }
func (arrayLib) IsArrayElementInsertable(r any, index int64) bool { return false }
func (arrayLib) IsArrayElementRemovable(r any, index int64) bool  { return false }

func (arrayLib) ReadArrayElement(r any, index int64) (any, error) {
	it := item(r)
	if err := it.decode(); err != nil {
		return nil, err
	}
	if index < 0 || index >= int64(len(it.elems)) {
		return nil, interop.InvalidArrayIndex(index)
	}
	return it.elems[index], nil
}

func (arrayLib) WriteArrayElement(r any, index int64, value any) error { return interop.Unsupported() }
func (arrayLib) RemoveArrayElement(r any, index int64) error           { return interop.Unsupported() }

// hashLib serves maps. Keys are looked up by their decoded Go value, so a
// text key matches any string and an integer key any integral number.
type hashLib struct{ e *Exporter }

// key converts a key supplied through the protocol to the form decoded
// map keys take.
func (l hashLib) key(k any) (any, bool) {
	if it, ok := k.(*Item); ok {
		v, err := it.Value()
		return v, err == nil && it.kind != KindArray && it.kind != KindMap && it.kind != KindTag
	}
	ex := l.e.resolver.Resolve(k)
	switch {
	case ex.IsNull(k):
		return nil, true
	case ex.IsString(k):
		s, err := ex.AsString(k)
		return s, err == nil
	case ex.IsBoolean(k):
		b, err := ex.AsBoolean(k)
		return b, err == nil
	case ex.FitsInLong(k):
		n, err := ex.AsLong(k)
		if n >= 0 {
			return uint64(n), err == nil
		}
		return n, err == nil
	case ex.FitsInDouble(k):
		f, err := ex.AsDouble(k)
		return f, err == nil
	}
	return nil, false
}

func (l hashLib) lookup(r, k any) (*Item, bool) {
	it := item(r)
	if it.decode() != nil {
		return nil, false
	}
	key, ok := l.key(k)
	if !ok || (key != nil && !reflect.TypeOf(key).Comparable()) {
		return nil, false
	}
	v, found := it.values[key]
	return v, found
}

func (hashLib) HasHashEntries(r any) bool { return item(r).decode() == nil }

func (hashLib) GetHashSize(r any) (int64, error) {
	it := item(r)
	if err := it.decode(); err != nil {
		return 0, err
	}
	return int64(len(it.keys)), nil
}

func (l hashLib) IsHashEntryReadable(r any, key any) bool {
	_, found := l.lookup(r, key)
	return found
}

func (hashLib) IsHashEntryModifiable(r any, key any) bool { return false }
func (hashLib) IsHashEntryInsertable(r any, key any) bool { return false }
func (hashLib) IsHashEntryRemovable(r any, key any) bool  { return false }

func (l hashLib) ReadHashValue(r any, key any) (any, error) {
	v, found := l.lookup(r, key)
	if !found {
		return nil, interop.UnknownKey(key)
	}
	return v, nil
}

func (hashLib) WriteHashEntry(r any, key any, value any) error { return interop.Unsupported() }
func (hashLib) RemoveHashEntry(r any, key any) error           { return interop.Unsupported() }

// GetHashEntriesIterator yields entries in canonical key order.
func (hashLib) GetHashEntriesIterator(r any) (any, error) {
	it := item(r)
	if err := it.decode(); err != nil {
		return nil, err
	}
	entries := make(interop.Elements, len(it.keys))
	for i, k := range it.keys {
		entries[i] = interop.Entry{Key: k, Value: it.values[k]}
	}
	return interop.IterateElements(entries), nil
}

// ---------------------------------------------------------------------------
// Tags
// ---------------------------------------------------------------------------

var tagMembers = interop.MemberNames{"content", "tag"}

// tagLib exposes a tag as the read-only members "tag" and "content".
type tagLib struct{}

func (tagLib) HasMembers(r any) bool { return item(r).decode() == nil }

func (tagLib) GetMembers(r any, includeInternal bool) (any, error) { return tagMembers, nil }

func (tagLib) IsMemberReadable(r any, member string) bool {
	return member == "tag" || member == "content"
}

func (tagLib) IsMemberModifiable(r any, member string) bool { return false }
func (tagLib) IsMemberInsertable(r any, member string) bool { return false }
func (tagLib) IsMemberRemovable(r any, member string) bool  { return false }
func (tagLib) IsMemberInvocable(r any, member string) bool  { return false }

func (tagLib) ReadMember(r any, member string) (any, error) {
	it := item(r)
	if err := it.decode(); err != nil {
		return nil, err
	}
	switch member {
	case "tag":
		return it.tag, nil
	case "content":
		return it.content, nil
	}
	return nil, interop.UnknownIdentifier(member)
}

func (l tagLib) WriteMember(r any, member string, value any) error {
	if l.IsMemberReadable(r, member) {
		return interop.Unsupported()
	}
	return interop.UnknownIdentifier(member)
}

func (l tagLib) RemoveMember(r any, member string) error { return l.WriteMember(r, member, nil) }

func (l tagLib) InvokeMember(r any, member string, args ...any) (any, error) {
	return nil, l.WriteMember(r, member, nil)
}

func (tagLib) HasMemberReadSideEffects(r any, member string) bool  { return false }
func (tagLib) HasMemberWriteSideEffects(r any, member string) bool { return false }

// ---------------------------------------------------------------------------
// Identity, display and metaobjects
// ---------------------------------------------------------------------------

type identityLib struct{}

func (identityLib) IsIdenticalOrUndefined(r any, other any) interop.TriState {
	o, ok := other.(*Item)
	return interop.TriStateOf(ok && o == item(r))
}

func (identityLib) IdentityHashCode(r any) (int32, error) {
	p := uint64(reflect.ValueOf(r).Pointer())
	return int32(p ^ p>>32), nil
}

// displayLib renders scalars in CBOR diagnostic notation and containers by
// kind and size.
type displayLib struct{}

func (displayLib) ToDisplayString(r any, allowSideEffects bool) any {
	it := item(r)
	if err := it.decode(); err != nil {
		return "<" + err.Error() + ">"
	}
	switch it.kind {
	case KindText:
		return strconv.Quote(it.scalar.(string))
	case KindBytes:
		return "h'" + hex.EncodeToString(it.scalar.([]byte)) + "'"
	case KindNull:
		return "null"
	case KindSimple:
		return fmt.Sprintf("simple(%d)", it.scalar)
	case KindArray, KindMap:
		return fmt.Sprintf("%s(%d)", it.kind, it.Len())
	case KindTag:
		return fmt.Sprintf("%d(%s)", it.tag, it.content.kind)
	}
	return fmt.Sprint(it.scalar)
}

type metaLib struct{}

func (metaLib) HasMetaObject(r any) bool                         { return true }
func (metaLib) GetMetaObject(r any) (any, error)                 { return item(r).kind, nil }
func (metaLib) IsMetaObject(r any) bool                          { return false }
func (metaLib) GetMetaQualifiedName(r any) (any, error)          { return nil, interop.Unsupported() }
func (metaLib) GetMetaSimpleName(r any) (any, error)             { return nil, interop.Unsupported() }
func (metaLib) IsMetaInstance(r any, instance any) (bool, error) { return false, interop.Unsupported() }

// kindLib makes kinds metaobjects named "cbor::<kind>".
type kindLib struct{}

func (kindLib) HasMetaObject(r any) bool         { return false }
func (kindLib) GetMetaObject(r any) (any, error) { return nil, interop.Unsupported() }
func (kindLib) IsMetaObject(r any) bool          { return true }

func (kindLib) GetMetaQualifiedName(r any) (any, error) {
	return "cbor::" + r.(Kind).String(), nil
}

func (kindLib) GetMetaSimpleName(r any) (any, error) { return r.(Kind).String(), nil }

func (kindLib) IsMetaInstance(r any, instance any) (bool, error) {
	it, ok := instance.(*Item)
	return ok && it.kind == r.(Kind), nil
}

func (kindLib) ToDisplayString(r any, allowSideEffects bool) any { return "cbor::" + r.(Kind).String() }
