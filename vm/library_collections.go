package vm

import "github.com/chazu/polyglot/interop"

// ---------------------------------------------------------------------------
// Object[]
// ---------------------------------------------------------------------------

// arrayLib exposes Object[]: fixed length, every element readable and
// modifiable, nothing insertable or removable.
type arrayLib struct{}

func (arrayLib) HasArrayElements(r any) bool { return true }

func (arrayLib) GetArraySize(r any) (int64, error) {
	o := self(r)
	o.mu.RLock()
	defer o.mu.RUnlock()
	return int64(len(o.Elements())), nil
}

func (l arrayLib) inRange(r any, index int64) bool {
	size, _ := l.GetArraySize(r)
	return index >= 0 && index < size
}

func (l arrayLib) IsArrayElementReadable(r any, index int64) bool   { return l.inRange(r, index) }
func (l arrayLib) IsArrayElementModifiable(r any, index int64) bool { return l.inRange(r, index) }
func (arrayLib) IsArrayElementInsertable(r any, index int64) bool   { return false }
func (arrayLib) IsArrayElementRemovable(r any, index int64) bool    { return false }

func (arrayLib) ReadArrayElement(r any, index int64) (any, error) {
	o := self(r)
	o.mu.RLock()
	defer o.mu.RUnlock()
	elems := o.Elements()
	if index < 0 || index >= int64(len(elems)) {
		return nil, interop.InvalidArrayIndex(index)
	}
	return elems[index], nil
}

func (arrayLib) WriteArrayElement(r any, index int64, value any) error {
	o := self(r)
	o.mu.Lock()
	defer o.mu.Unlock()
	elems := o.Elements()
	if index < 0 || index >= int64(len(elems)) {
		return interop.InvalidArrayIndex(index)
	}
	elems[index] = Wrap(value)
	return nil
}

func (arrayLib) RemoveArrayElement(r any, index int64) error { return interop.Unsupported() }

// iterableLib gives Object[] guest iterators.
type iterableLib struct{}

func (iterableLib) HasIterator(r any) bool                     { return true }
func (iterableLib) GetIterator(r any) (any, error)             { return arrayIterator(self(r)), nil }
func (iterableLib) IsIterator(r any) bool                      { return false }
func (iterableLib) HasIteratorNextElement(r any) (bool, error) { return false, interop.Unsupported() }
func (iterableLib) GetIteratorNextElement(r any) (any, error)  { return nil, interop.Unsupported() }

// ---------------------------------------------------------------------------
// byte[]
// ---------------------------------------------------------------------------

var byteBuffer = interop.ByteBuffer{View: func(r any) ([]byte, bool, bool) {
	return self(r).Bytes(), true, true
}}

// byteArrayLib exposes byte[] elements as Byte objects. Written values
// must fit in a byte.
type byteArrayLib struct {
	resolver *interop.Resolver
}

func (byteArrayLib) HasArrayElements(r any) bool { return true }

func (byteArrayLib) GetArraySize(r any) (int64, error) { return int64(len(self(r).Bytes())), nil }

func (byteArrayLib) inRange(r any, index int64) bool {
	return index >= 0 && index < int64(len(self(r).Bytes()))
}

func (l byteArrayLib) IsArrayElementReadable(r any, index int64) bool   { return l.inRange(r, index) }
func (l byteArrayLib) IsArrayElementModifiable(r any, index int64) bool { return l.inRange(r, index) }
func (byteArrayLib) IsArrayElementInsertable(r any, index int64) bool   { return false }
func (byteArrayLib) IsArrayElementRemovable(r any, index int64) bool    { return false }

func (l byteArrayLib) ReadArrayElement(r any, index int64) (any, error) {
	if !l.inRange(r, index) {
		return nil, interop.InvalidArrayIndex(index)
	}
	return NewByte(int8(self(r).Bytes()[index])), nil
}

func (l byteArrayLib) WriteArrayElement(r any, index int64, value any) error {
	if !l.inRange(r, index) {
		return interop.InvalidArrayIndex(index)
	}
	b, ok := l.asByte(value)
	if !ok {
		return interop.UnsupportedType("byte[] elements must fit in a byte", value)
	}
	self(r).Bytes()[index] = byte(b)
	return nil
}

func (byteArrayLib) RemoveArrayElement(r any, index int64) error { return interop.Unsupported() }

// asByte interrogates value through the protocol, looking through foreign
// boxes.
func (l byteArrayLib) asByte(value any) (int8, bool) {
	if o, ok := value.(*Object); ok && o.IsForeign() {
		value = o.raw
	}
	ex := l.resolver.Resolve(value)
	if !ex.FitsInByte(value) {
		return 0, false
	}
	b, err := ex.AsByte(value)
	return b, err == nil
}

// ---------------------------------------------------------------------------
// HashMap
// ---------------------------------------------------------------------------

type hashLib struct{}

func (hashLib) HasHashEntries(r any) bool { return true }

func (hashLib) GetHashSize(r any) (int64, error) { return int64(self(r).HashLen()), nil }

func (hashLib) exists(r, key any) bool {
	_, ok := self(r).HashGet(Wrap(key))
	return ok
}

func (l hashLib) IsHashEntryReadable(r, key any) bool   { return l.exists(r, key) }
func (l hashLib) IsHashEntryModifiable(r, key any) bool { return l.exists(r, key) }
func (l hashLib) IsHashEntryInsertable(r, key any) bool { return !l.exists(r, key) }
func (l hashLib) IsHashEntryRemovable(r, key any) bool  { return l.exists(r, key) }

func (hashLib) ReadHashValue(r, key any) (any, error) {
	v, ok := self(r).HashGet(Wrap(key))
	if !ok {
		return nil, interop.UnknownKey(key)
	}
	return v, nil
}

func (hashLib) WriteHashEntry(r, key, value any) error {
	self(r).HashPut(Wrap(key), Wrap(value))
	return nil
}

func (hashLib) RemoveHashEntry(r, key any) error {
	if !self(r).HashRemove(Wrap(key)) {
		return interop.UnknownKey(key)
	}
	return nil
}

func (hashLib) GetHashEntriesIterator(r any) (any, error) { return self(r).hashIterator(2), nil }
func (hashLib) GetHashKeysIterator(r any) (any, error)    { return self(r).hashIterator(0), nil }
func (hashLib) GetHashValuesIterator(r any) (any, error)  { return self(r).hashIterator(1), nil }

// ---------------------------------------------------------------------------
// Iterators
// ---------------------------------------------------------------------------

type iteratorLib struct{}

func (iteratorLib) HasIterator(r any) bool         { return false }
func (iteratorLib) GetIterator(r any) (any, error) { return nil, interop.Unsupported() }
func (iteratorLib) IsIterator(r any) bool          { return true }

func (iteratorLib) HasIteratorNextElement(r any) (bool, error) {
	o := self(r)
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value.(*iterState).hasNext(), nil
}

func (iteratorLib) GetIteratorNextElement(r any) (any, error) {
	o := self(r)
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.value.(*iterState).next()
	if !ok {
		return nil, interop.StopIteration()
	}
	return v, nil
}
