package vm

import (
	"math"
	"reflect"
)

// ---------------------------------------------------------------------------
// HashMap: insertion-ordered guest hash
// ---------------------------------------------------------------------------

type hashEntry struct {
	key   *Object
	value *Object
}

type hashMap struct {
	entries []hashEntry
	index   map[any]int
}

// boxKey gives value semantics to boxed primitives and strings. Classes
// take part so that Integer 1 and Long 1 are different keys.
type boxKey struct {
	class *Class
	value any
}

// foreignKey keys foreign boxes by their comparable raw value, so every
// box of the same foreign value finds the same entry.
type foreignKey struct {
	raw any
}

// floatKey keys a foreign float by its bits, so NaN finds itself and -0.0
// differs from 0.0.
type floatKey struct {
	t    reflect.Type
	bits uint64
}

func hashKeyOf(k *Object) any {
	if k == Null || k.class == nil {
		return boxKey{}
	}
	switch k.class.Layout {
	case LayoutFloat:
		return boxKey{class: k.class, value: math.Float32bits(k.value.(float32))}
	case LayoutDouble:
		return boxKey{class: k.class, value: math.Float64bits(k.value.(float64))}
	case LayoutBoolean, LayoutByte, LayoutShort, LayoutInteger, LayoutLong, LayoutString:
		return boxKey{class: k.class, value: k.value}
	case LayoutForeign:
		if k.raw == nil {
			return foreignKey{}
		}
		v := reflect.ValueOf(k.raw)
		switch v.Kind() {
		case reflect.Float32:
			return floatKey{v.Type(), uint64(math.Float32bits(float32(v.Float())))}
		case reflect.Float64:
			return floatKey{v.Type(), math.Float64bits(v.Float())}
		}
		// Comparable checks the dynamic contents of interface fields too.
		if v.Comparable() {
			return foreignKey{k.raw}
		}
	}
	return k
}

// NewHashMap creates an empty guest HashMap.
func NewHashMap() *Object {
	return &Object{class: HashMapClass, value: &hashMap{index: make(map[any]int)}}
}

func (o *Object) hashMap() *hashMap {
	h, ok := o.value.(*hashMap)
	if !ok {
		panic("Object.hashMap: not a HashMap")
	}
	return h
}

// HashGet looks up key.
func (o *Object) HashGet(key *Object) (*Object, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	h := o.hashMap()
	i, ok := h.index[hashKeyOf(key)]
	if !ok {
		return nil, false
	}
	return h.entries[i].value, true
}

// HashPut inserts or replaces the entry for key.
func (o *Object) HashPut(key, value *Object) {
	if value == nil {
		value = Null
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	h := o.hashMap()
	k := hashKeyOf(key)
	if i, ok := h.index[k]; ok {
		h.entries[i].value = value
		return
	}
	h.index[k] = len(h.entries)
	h.entries = append(h.entries, hashEntry{key: key, value: value})
}

// HashRemove deletes the entry for key, reporting whether it existed.
func (o *Object) HashRemove(key *Object) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	h := o.hashMap()
	k := hashKeyOf(key)
	i, ok := h.index[k]
	if !ok {
		return false
	}
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
	delete(h.index, k)
	for j := i; j < len(h.entries); j++ {
		h.index[hashKeyOf(h.entries[j].key)] = j
	}
	return true
}

// HashLen returns the number of entries.
func (o *Object) HashLen() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.hashMap().entries)
}

// hashIterator walks the live entries by position. part selects what each
// step yields: 0 keys, 1 values, 2 [key, value] arrays.
func (o *Object) hashIterator(part int) *Object {
	pos := 0
	return NewIterator(
		func() bool { return pos < o.HashLen() },
		func() (*Object, bool) {
			o.mu.RLock()
			defer o.mu.RUnlock()
			entries := o.hashMap().entries
			if pos >= len(entries) {
				return nil, false
			}
			e := entries[pos]
			pos++
			switch part {
			case 0:
				return e.key, true
			case 1:
				return e.value, true
			}
			return NewArray(e.key, e.value), true
		},
	)
}
