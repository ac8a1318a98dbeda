package vm

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Object is a guest heap object. Its class fixes the payload layout:
// named slots for instances and throwables, a boxed Go value for
// primitives and built-in collections, or a raw foreign value for foreign
// boxes.
//
// Slots, array elements and hash entries are guarded by mu. Byte arrays are
// not: buffer access is unsynchronized.
type Object struct {
	class *Class

	mu    sync.RWMutex
	slots []*Object
	value any
	raw   any

	hash atomic.Int32
}

// Null is the guest null reference.
var Null = &Object{}

var hashSeed atomic.Int32

// ---------------------------------------------------------------------------
// Object creation
// ---------------------------------------------------------------------------

// NewInstance creates an instance of c with every slot set to Null.
func NewInstance(c *Class) *Object {
	slots := make([]*Object, c.NumSlots)
	for i := range slots {
		slots[i] = Null
	}
	return &Object{class: c, slots: slots}
}

func NewBoolean(b bool) *Object   { return &Object{class: BooleanClass, value: b} }
func NewByte(v int8) *Object      { return &Object{class: ByteClass, value: v} }
func NewShort(v int16) *Object    { return &Object{class: ShortClass, value: v} }
func NewInteger(v int32) *Object  { return &Object{class: IntegerClass, value: v} }
func NewLong(v int64) *Object     { return &Object{class: LongClass, value: v} }
func NewFloat(v float32) *Object  { return &Object{class: FloatClass, value: v} }
func NewDouble(v float64) *Object { return &Object{class: DoubleClass, value: v} }
func NewString(s string) *Object  { return &Object{class: StringClass, value: s} }

// NewArray creates an Object[] holding elems.
func NewArray(elems ...*Object) *Object {
	backing := make([]any, len(elems))
	for i, e := range elems {
		if e == nil {
			e = Null
		}
		backing[i] = e
	}
	return &Object{class: ArrayClass, value: backing}
}

// NewByteArray creates a byte[] over data without copying.
func NewByteArray(data []byte) *Object {
	return &Object{class: ByteArrayClass, value: data}
}

// Wrap returns o itself for guest objects and a foreign box otherwise.
func Wrap(raw any) *Object {
	if o, ok := raw.(*Object); ok {
		if o == nil {
			return Null
		}
		return o
	}
	return &Object{class: ForeignClass, raw: raw}
}

// WrapException boxes a foreign exception value.
func WrapException(raw any) *Object {
	if o, ok := raw.(*Object); ok {
		return o
	}
	return &Object{class: ForeignExceptionClass, raw: raw}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Class returns the object's class, or nil for Null.
func (o *Object) Class() *Class { return o.class }

// IsNull reports whether o is the guest null reference.
func (o *Object) IsNull() bool { return o == Null }

// IsForeign reports whether o boxes a foreign value.
func (o *Object) IsForeign() bool {
	return o.class != nil && o.class.Layout == LayoutForeign
}

// Raw returns the boxed foreign value. Panics for guest objects.
func (o *Object) Raw() any {
	if !o.IsForeign() {
		panic("Object.Raw: not a foreign object")
	}
	return o.raw
}

// Value returns the Go payload of a primitive or built-in object.
func (o *Object) Value() any { return o.value }

// InteropShape makes the class the dispatch shape of guest objects.
func (o *Object) InteropShape() any { return o.class }

// Slot returns a named slot, or nil when the class has no such slot.
func (o *Object) Slot(name string) *Object {
	if o.class == nil {
		return nil
	}
	i := o.class.InstVarIndex(name)
	if i < 0 || i >= len(o.slots) {
		return nil
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.slots[i]
}

// SetSlot stores a named slot. Returns false when there is no such slot.
func (o *Object) SetSlot(name string, v *Object) bool {
	if o.class == nil {
		return false
	}
	i := o.class.InstVarIndex(name)
	if i < 0 || i >= len(o.slots) {
		return false
	}
	if v == nil {
		v = Null
	}
	o.mu.Lock()
	o.slots[i] = v
	o.mu.Unlock()
	return true
}

// Elements returns the backing slice of an Object[]. The slice is shared.
func (o *Object) Elements() []any {
	v, ok := o.value.([]any)
	if !ok || o.class.Layout != LayoutArray {
		panic("Object.Elements: not an array")
	}
	return v
}

// Element returns element i of an Object[].
func (o *Object) Element(i int) *Object {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.Elements()[i].(*Object)
}

// Bytes returns the backing slice of a byte[].
func (o *Object) Bytes() []byte {
	v, ok := o.value.([]byte)
	if !ok {
		panic("Object.Bytes: not a byte array")
	}
	return v
}

// GoString returns the content of a String object. Panics otherwise.
func (o *Object) GoString() string {
	s, ok := o.value.(string)
	if !ok || o.class != StringClass {
		panic("Object.GoString: not a string")
	}
	return s
}

// IdentityHash returns a stable hash assigned on first use.
func (o *Object) IdentityHash() int32 {
	if h := o.hash.Load(); h != 0 {
		return h
	}
	h := hashSeed.Add(0x61c88647)
	if h == 0 {
		h = 1
	}
	if o.hash.CompareAndSwap(0, h) {
		return h
	}
	return o.hash.Load()
}

// ClassName returns the name of the object's class.
func (o *Object) ClassName() string {
	if o.class == nil {
		return "null"
	}
	return o.class.Name
}

func (o *Object) String() string {
	switch {
	case o == Null:
		return "null"
	case o.IsForeign():
		return fmt.Sprintf("%s[%v]", o.class.Name, o.raw)
	case o.class.Layout == LayoutString:
		return o.value.(string)
	case o.value != nil && o.class.Layout >= LayoutBoolean && o.class.Layout <= LayoutDouble:
		return fmt.Sprint(o.value)
	case o.class.Layout == LayoutClass:
		return o.value.(*Class).FullName()
	}
	return fmt.Sprintf("%s@%x", o.class.Name, uint32(o.IdentityHash()))
}
