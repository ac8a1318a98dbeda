package gowrap

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/chazu/polyglot/interop"
)

// ---------------------------------------------------------------------------
// Slices and arrays
// ---------------------------------------------------------------------------

// seqLib serves slices, arrays and pointers to either. Slice elements are
// modifiable in place; array values are copies and read-only. Through a
// pointer to a slice, elements can also be appended at the end and
// removed.
type seqLib struct {
	e        *Exporter
	indirect bool
}

func (l seqLib) view(r any) (reflect.Value, bool) {
	v := reflect.ValueOf(r)
	if l.indirect {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, true
}

func (l seqLib) growable() bool { return l.indirect }

func (l seqLib) mutable(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.CanSet()
}

func (l seqLib) HasArrayElements(r any) bool {
	_, ok := l.view(r)
	return ok
}

func (l seqLib) GetArraySize(r any) (int64, error) {
	v, ok := l.view(r)
	if !ok {
		return 0, interop.Unsupported()
	}
	return int64(v.Len()), nil
}

func (l seqLib) IsArrayElementReadable(r any, index int64) bool {
	v, ok := l.view(r)
	return ok && index >= 0 && index < int64(v.Len())
}

func (l seqLib) IsArrayElementModifiable(r any, index int64) bool {
	v, ok := l.view(r)
	return ok && l.mutable(v) && index >= 0 && index < int64(v.Len())
}

func (l seqLib) IsArrayElementInsertable(r any, index int64) bool {
	v, ok := l.view(r)
	return ok && l.growable() && v.Kind() == reflect.Slice && index == int64(v.Len())
}

func (l seqLib) IsArrayElementRemovable(r any, index int64) bool {
	v, ok := l.view(r)
	return ok && l.growable() && v.Kind() == reflect.Slice && index >= 0 && index < int64(v.Len())
}

func (l seqLib) ReadArrayElement(r any, index int64) (any, error) {
	v, ok := l.view(r)
	if !ok {
		return nil, interop.Unsupported()
	}
	if index < 0 || index >= int64(v.Len()) {
		return nil, interop.InvalidArrayIndex(index)
	}
	return v.Index(int(index)).Interface(), nil
}

func (l seqLib) WriteArrayElement(r any, index int64, value any) error {
	v, ok := l.view(r)
	if !ok || !l.mutable(v) {
		return interop.Unsupported()
	}
	insert := l.IsArrayElementInsertable(r, index)
	if !insert && (index < 0 || index >= int64(v.Len())) {
		return interop.InvalidArrayIndex(index)
	}
	elem, err := l.e.convert(value, v.Type().Elem())
	if err != nil {
		return err
	}
	if insert {
		v.Set(reflect.Append(v, elem))
		return nil
	}
	v.Index(int(index)).Set(elem)
	return nil
}

func (l seqLib) RemoveArrayElement(r any, index int64) error {
	v, ok := l.view(r)
	if !ok || !l.growable() || v.Kind() != reflect.Slice {
		return interop.Unsupported()
	}
	n := v.Len()
	if index < 0 || index >= int64(n) {
		return interop.InvalidArrayIndex(index)
	}
	i := int(index)
	reflect.Copy(v.Slice(i, n), v.Slice(i+1, n))
	v.Index(n - 1).SetZero()
	v.SetLen(n - 1)
	return nil
}

// bytesBuffer exposes byte slices as writable buffers.
var bytesBuffer = interop.ByteBuffer{View: func(r any) ([]byte, bool, bool) {
	return reflect.ValueOf(r).Bytes(), true, true
}}

// ---------------------------------------------------------------------------
// Maps
// ---------------------------------------------------------------------------

// mapLib serves Go maps as hashes. Keys are converted to the map's key
// type; a key that does not convert is simply absent.
type mapLib struct{ e *Exporter }

func (l mapLib) lookup(r, key any) (m, k reflect.Value, found bool) {
	m = reflect.ValueOf(r)
	k, err := l.e.convert(key, m.Type().Key())
	if err != nil {
		return m, reflect.Value{}, false
	}
	return m, k, m.MapIndex(k).IsValid()
}

func (mapLib) HasHashEntries(r any) bool { return true }

func (mapLib) GetHashSize(r any) (int64, error) { return int64(reflect.ValueOf(r).Len()), nil }

func (l mapLib) IsHashEntryReadable(r any, key any) bool {
	_, _, found := l.lookup(r, key)
	return found
}

func (l mapLib) IsHashEntryModifiable(r any, key any) bool { return l.IsHashEntryReadable(r, key) }

func (l mapLib) IsHashEntryInsertable(r any, key any) bool {
	m, k, found := l.lookup(r, key)
	return k.IsValid() && !found && !m.IsNil()
}

func (l mapLib) IsHashEntryRemovable(r any, key any) bool { return l.IsHashEntryReadable(r, key) }

func (l mapLib) ReadHashValue(r any, key any) (any, error) {
	m, k, found := l.lookup(r, key)
	if !found {
		return nil, interop.UnknownKey(key)
	}
	return m.MapIndex(k).Interface(), nil
}

func (l mapLib) WriteHashEntry(r any, key any, value any) error {
	m := reflect.ValueOf(r)
	if m.IsNil() {
		return interop.Unsupported()
	}
	k, err := l.e.convert(key, m.Type().Key())
	if err != nil {
		return err
	}
	v, err := l.e.convert(value, m.Type().Elem())
	if err != nil {
		return err
	}
	m.SetMapIndex(k, v)
	return nil
}

func (l mapLib) RemoveHashEntry(r any, key any) error {
	m, k, found := l.lookup(r, key)
	if !found {
		return interop.UnknownKey(key)
	}
	m.SetMapIndex(k, reflect.Value{})
	return nil
}

// GetHashEntriesIterator iterates over a snapshot of the entries, ordered
// by the printed form of their keys.
func (mapLib) GetHashEntriesIterator(r any) (any, error) {
	m := reflect.ValueOf(r)
	keys := m.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	})
	entries := make(interop.Elements, len(keys))
	for i, k := range keys {
		entries[i] = interop.Entry{Key: k.Interface(), Value: m.MapIndex(k).Interface()}
	}
	return interop.IterateElements(entries), nil
}
