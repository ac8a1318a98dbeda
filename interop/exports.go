package interop

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"strconv"
)

// Exports is the message table for one receiver shape. Each family is
// optional; a missing family answers its predicates with false and its
// accessors with an UnsupportedMessageError. Derived messages such as
// IsIdentical and ReadHashValueOrDefault are implemented here once for
// every shape.
//
// An Exports is immutable after construction and safe for concurrent use.
type Exports struct {
	shape any

	null         NullLibrary
	boolean      BooleanLibrary
	str          StringLibrary
	number       NumberLibrary
	exception    ExceptionLibrary
	array        ArrayLibrary
	member       MemberLibrary
	meta         MetaLibrary
	display      DisplayLibrary
	identity     IdentityLibrary
	pointer      PointerLibrary
	executable   ExecutableLibrary
	instantiable InstantiableLibrary
	frame        FrameLibrary
	buffer       BufferLibrary
	iterator     IteratorLibrary
	hash         HashLibrary
	hashIter     HashIteratorLibrary

	resolver *Resolver
}

// NewExports builds the table for shape. Each family is taken from the
// first part implementing its library interface.
func NewExports(shape any, parts ...any) *Exports {
	e := &Exports{shape: shape}
	for _, p := range parts {
		if p == nil {
			continue
		}
		if l, ok := p.(NullLibrary); ok && e.null == nil {
			e.null = l
		}
		if l, ok := p.(BooleanLibrary); ok && e.boolean == nil {
			e.boolean = l
		}
		if l, ok := p.(StringLibrary); ok && e.str == nil {
			e.str = l
		}
		if l, ok := p.(NumberLibrary); ok && e.number == nil {
			e.number = l
		}
		if l, ok := p.(ExceptionLibrary); ok && e.exception == nil {
			e.exception = l
		}
		if l, ok := p.(ArrayLibrary); ok && e.array == nil {
			e.array = l
		}
		if l, ok := p.(MemberLibrary); ok && e.member == nil {
			e.member = l
		}
		if l, ok := p.(MetaLibrary); ok && e.meta == nil {
			e.meta = l
		}
		if l, ok := p.(DisplayLibrary); ok && e.display == nil {
			e.display = l
		}
		if l, ok := p.(IdentityLibrary); ok && e.identity == nil {
			e.identity = l
		}
		if l, ok := p.(PointerLibrary); ok && e.pointer == nil {
			e.pointer = l
		}
		if l, ok := p.(ExecutableLibrary); ok && e.executable == nil {
			e.executable = l
		}
		if l, ok := p.(InstantiableLibrary); ok && e.instantiable == nil {
			e.instantiable = l
		}
		if l, ok := p.(FrameLibrary); ok && e.frame == nil {
			e.frame = l
		}
		if l, ok := p.(BufferLibrary); ok && e.buffer == nil {
			e.buffer = l
		}
		if l, ok := p.(IteratorLibrary); ok && e.iterator == nil {
			e.iterator = l
		}
		if l, ok := p.(HashLibrary); ok && e.hash == nil {
			e.hash = l
		}
		if l, ok := p.(HashIteratorLibrary); ok && e.hashIter == nil {
			e.hashIter = l
		}
	}
	return e
}

// Shape returns the dispatch key the table was built for.
func (e *Exports) Shape() any { return e.shape }

// Has reports whether the family for c is present.
func (e *Exports) Has(c Capability) bool {
	switch c {
	case CapNull:
		return e.null != nil
	case CapBoolean:
		return e.boolean != nil
	case CapString:
		return e.str != nil
	case CapNumber:
		return e.number != nil
	case CapException:
		return e.exception != nil
	case CapArray:
		return e.array != nil
	case CapMember:
		return e.member != nil
	case CapMetaObject:
		return e.meta != nil
	case CapIdentity:
		return e.identity != nil
	case CapPointer:
		return e.pointer != nil
	case CapExecutable:
		return e.executable != nil
	case CapInstantiable:
		return e.instantiable != nil
	case CapStackFrame:
		return e.frame != nil
	case CapBuffer:
		return e.buffer != nil
	case CapIterator:
		return e.iterator != nil
	case CapHash:
		return e.hash != nil
	}
	return false
}

// without removes the family for c.
func (e *Exports) without(c Capability) {
	switch c {
	case CapNull:
		e.null = nil
	case CapBoolean:
		e.boolean = nil
	case CapString:
		e.str = nil
	case CapNumber:
		e.number = nil
	case CapException:
		e.exception = nil
	case CapArray:
		e.array = nil
	case CapMember:
		e.member = nil
	case CapMetaObject:
		e.meta = nil
		e.display = nil
	case CapIdentity:
		e.identity = nil
	case CapPointer:
		e.pointer = nil
	case CapExecutable:
		e.executable = nil
	case CapInstantiable:
		e.instantiable = nil
	case CapStackFrame:
		e.frame = nil
	case CapBuffer:
		e.buffer = nil
	case CapIterator:
		e.iterator = nil
	case CapHash:
		e.hash = nil
		e.hashIter = nil
	}
}

func (e *Exports) lookup() *Resolver {
	if e.resolver != nil {
		return e.resolver
	}
	return builtinResolver
}

// ---------------------------------------------------------------------------
// Null, boolean, string
// ---------------------------------------------------------------------------

func (e *Exports) IsNull(r any) bool {
	return e.null != nil && e.null.IsNull(r)
}

func (e *Exports) IsBoolean(r any) bool {
	return e.boolean != nil && e.boolean.IsBoolean(r)
}

func (e *Exports) AsBoolean(r any) (bool, error) {
	if e.boolean == nil {
		return false, Unsupported()
	}
	return e.boolean.AsBoolean(r)
}

func (e *Exports) IsString(r any) bool {
	return e.str != nil && e.str.IsString(r)
}

func (e *Exports) AsString(r any) (string, error) {
	if e.str == nil {
		return "", Unsupported()
	}
	return e.str.AsString(r)
}

// ---------------------------------------------------------------------------
// Numbers
// ---------------------------------------------------------------------------

func (e *Exports) IsNumber(r any) bool { return e.number != nil && e.number.IsNumber(r) }

func (e *Exports) FitsInByte(r any) bool   { return e.number != nil && e.number.FitsInByte(r) }
func (e *Exports) FitsInShort(r any) bool  { return e.number != nil && e.number.FitsInShort(r) }
func (e *Exports) FitsInInt(r any) bool    { return e.number != nil && e.number.FitsInInt(r) }
func (e *Exports) FitsInLong(r any) bool   { return e.number != nil && e.number.FitsInLong(r) }
func (e *Exports) FitsInFloat(r any) bool  { return e.number != nil && e.number.FitsInFloat(r) }
func (e *Exports) FitsInDouble(r any) bool { return e.number != nil && e.number.FitsInDouble(r) }

func (e *Exports) AsByte(r any) (int8, error) {
	if e.number == nil {
		return 0, Unsupported()
	}
	return e.number.AsByte(r)
}

func (e *Exports) AsShort(r any) (int16, error) {
	if e.number == nil {
		return 0, Unsupported()
	}
	return e.number.AsShort(r)
}

func (e *Exports) AsInt(r any) (int32, error) {
	if e.number == nil {
		return 0, Unsupported()
	}
	return e.number.AsInt(r)
}

func (e *Exports) AsLong(r any) (int64, error) {
	if e.number == nil {
		return 0, Unsupported()
	}
	return e.number.AsLong(r)
}

func (e *Exports) AsFloat(r any) (float32, error) {
	if e.number == nil {
		return 0, Unsupported()
	}
	return e.number.AsFloat(r)
}

func (e *Exports) AsDouble(r any) (float64, error) {
	if e.number == nil {
		return 0, Unsupported()
	}
	return e.number.AsDouble(r)
}

// ---------------------------------------------------------------------------
// Exceptions
// ---------------------------------------------------------------------------

func (e *Exports) IsException(r any) bool {
	return e.exception != nil && e.exception.IsException(r)
}

func (e *Exports) ThrowException(r any) error {
	if e.exception == nil {
		return Unsupported()
	}
	return e.exception.ThrowException(r)
}

func (e *Exports) GetExceptionType(r any) (ExceptionType, error) {
	if e.exception == nil {
		return 0, Unsupported()
	}
	return e.exception.GetExceptionType(r)
}

func (e *Exports) IsExceptionIncompleteSource(r any) (bool, error) {
	if e.exception == nil {
		return false, Unsupported()
	}
	return e.exception.IsExceptionIncompleteSource(r)
}

func (e *Exports) GetExceptionExitStatus(r any) (int, error) {
	if e.exception == nil {
		return 0, Unsupported()
	}
	return e.exception.GetExceptionExitStatus(r)
}

func (e *Exports) HasExceptionCause(r any) bool {
	return e.exception != nil && e.exception.HasExceptionCause(r)
}

func (e *Exports) GetExceptionCause(r any) (any, error) {
	if e.exception == nil {
		return nil, Unsupported()
	}
	return e.exception.GetExceptionCause(r)
}

func (e *Exports) HasExceptionMessage(r any) bool {
	return e.exception != nil && e.exception.HasExceptionMessage(r)
}

func (e *Exports) GetExceptionMessage(r any) (any, error) {
	if e.exception == nil {
		return nil, Unsupported()
	}
	return e.exception.GetExceptionMessage(r)
}

func (e *Exports) HasExceptionStackTrace(r any) bool {
	return e.exception != nil && e.exception.HasExceptionStackTrace(r)
}

func (e *Exports) GetExceptionStackTrace(r any) (any, error) {
	if e.exception == nil {
		return nil, Unsupported()
	}
	return e.exception.GetExceptionStackTrace(r)
}

// ---------------------------------------------------------------------------
// Arrays
// ---------------------------------------------------------------------------

func (e *Exports) HasArrayElements(r any) bool {
	return e.array != nil && e.array.HasArrayElements(r)
}

func (e *Exports) GetArraySize(r any) (int64, error) {
	if e.array == nil {
		return 0, Unsupported()
	}
	return e.array.GetArraySize(r)
}

func (e *Exports) IsArrayElementReadable(r any, index int64) bool {
	return e.array != nil && e.array.IsArrayElementReadable(r, index)
}

func (e *Exports) IsArrayElementModifiable(r any, index int64) bool {
	return e.array != nil && e.array.IsArrayElementModifiable(r, index)
}

func (e *Exports) IsArrayElementInsertable(r any, index int64) bool {
	return e.array != nil && e.array.IsArrayElementInsertable(r, index)
}

func (e *Exports) IsArrayElementRemovable(r any, index int64) bool {
	return e.array != nil && e.array.IsArrayElementRemovable(r, index)
}

// IsArrayElementWritable is modifiable or insertable.
func (e *Exports) IsArrayElementWritable(r any, index int64) bool {
	return e.IsArrayElementModifiable(r, index) || e.IsArrayElementInsertable(r, index)
}

// IsArrayElementExisting is readable, modifiable or removable.
func (e *Exports) IsArrayElementExisting(r any, index int64) bool {
	return e.IsArrayElementReadable(r, index) || e.IsArrayElementModifiable(r, index) ||
		e.IsArrayElementRemovable(r, index)
}

func (e *Exports) ReadArrayElement(r any, index int64) (any, error) {
	if e.array == nil {
		return nil, Unsupported()
	}
	return e.array.ReadArrayElement(r, index)
}

func (e *Exports) WriteArrayElement(r any, index int64, value any) error {
	if e.array == nil {
		return Unsupported()
	}
	return e.array.WriteArrayElement(r, index, value)
}

func (e *Exports) RemoveArrayElement(r any, index int64) error {
	if e.array == nil {
		return Unsupported()
	}
	return e.array.RemoveArrayElement(r, index)
}

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

func (e *Exports) HasMembers(r any) bool {
	return e.member != nil && e.member.HasMembers(r)
}

func (e *Exports) GetMembers(r any, includeInternal bool) (any, error) {
	if e.member == nil {
		return nil, Unsupported()
	}
	return e.member.GetMembers(r, includeInternal)
}

func (e *Exports) IsMemberReadable(r any, member string) bool {
	return e.member != nil && e.member.IsMemberReadable(r, member)
}

func (e *Exports) IsMemberModifiable(r any, member string) bool {
	return e.member != nil && e.member.IsMemberModifiable(r, member)
}

func (e *Exports) IsMemberInsertable(r any, member string) bool {
	return e.member != nil && e.member.IsMemberInsertable(r, member)
}

func (e *Exports) IsMemberRemovable(r any, member string) bool {
	return e.member != nil && e.member.IsMemberRemovable(r, member)
}

func (e *Exports) IsMemberInvocable(r any, member string) bool {
	return e.member != nil && e.member.IsMemberInvocable(r, member)
}

// IsMemberWritable is modifiable or insertable.
func (e *Exports) IsMemberWritable(r any, member string) bool {
	return e.IsMemberModifiable(r, member) || e.IsMemberInsertable(r, member)
}

// IsMemberExisting is readable, modifiable, removable or invocable.
func (e *Exports) IsMemberExisting(r any, member string) bool {
	return e.IsMemberReadable(r, member) || e.IsMemberModifiable(r, member) ||
		e.IsMemberRemovable(r, member) || e.IsMemberInvocable(r, member)
}

func (e *Exports) ReadMember(r any, member string) (any, error) {
	if e.member == nil {
		return nil, Unsupported()
	}
	return e.member.ReadMember(r, member)
}

func (e *Exports) WriteMember(r any, member string, value any) error {
	if e.member == nil {
		return Unsupported()
	}
	return e.member.WriteMember(r, member, value)
}

func (e *Exports) RemoveMember(r any, member string) error {
	if e.member == nil {
		return Unsupported()
	}
	return e.member.RemoveMember(r, member)
}

func (e *Exports) InvokeMember(r any, member string, args ...any) (any, error) {
	if e.member == nil {
		return nil, Unsupported()
	}
	return e.member.InvokeMember(r, member, args...)
}

func (e *Exports) HasMemberReadSideEffects(r any, member string) bool {
	return e.member != nil && e.member.HasMemberReadSideEffects(r, member)
}

func (e *Exports) HasMemberWriteSideEffects(r any, member string) bool {
	return e.member != nil && e.member.HasMemberWriteSideEffects(r, member)
}

// ---------------------------------------------------------------------------
// Metaobjects and display
// ---------------------------------------------------------------------------

func (e *Exports) HasMetaObject(r any) bool {
	return e.meta != nil && e.meta.HasMetaObject(r)
}

func (e *Exports) GetMetaObject(r any) (any, error) {
	if e.meta == nil {
		return nil, Unsupported()
	}
	return e.meta.GetMetaObject(r)
}

func (e *Exports) IsMetaObject(r any) bool {
	return e.meta != nil && e.meta.IsMetaObject(r)
}

func (e *Exports) GetMetaQualifiedName(r any) (any, error) {
	if e.meta == nil {
		return nil, Unsupported()
	}
	return e.meta.GetMetaQualifiedName(r)
}

func (e *Exports) GetMetaSimpleName(r any) (any, error) {
	if e.meta == nil {
		return nil, Unsupported()
	}
	return e.meta.GetMetaSimpleName(r)
}

func (e *Exports) IsMetaInstance(r any, instance any) (bool, error) {
	if e.meta == nil {
		return false, Unsupported()
	}
	return e.meta.IsMetaInstance(r, instance)
}

// ToDisplayString renders the receiver for humans. Without a display
// library strings, numbers, booleans and null render as themselves and
// everything else as its shape, followed by its identity hash when it has
// one.
func (e *Exports) ToDisplayString(r any, allowSideEffects bool) any {
	if e.display != nil {
		return e.display.ToDisplayString(r, allowSideEffects)
	}
	switch {
	case e.IsNull(r):
		return "null"
	case e.IsString(r):
		s, _ := e.AsString(r)
		return s
	case e.IsBoolean(r):
		b, _ := e.AsBoolean(r)
		return strconv.FormatBool(b)
	case e.IsNumber(r):
		if e.FitsInLong(r) {
			v, _ := e.AsLong(r)
			return strconv.FormatInt(v, 10)
		}
		if e.FitsInDouble(r) {
			v, _ := e.AsDouble(r)
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	name := shapeName(e.shape)
	if h, err := e.IdentityHashCode(r); err == nil {
		return fmt.Sprintf("%s@%x", name, uint32(h))
	}
	return name
}

func shapeName(shape any) string {
	switch s := shape.(type) {
	case nil:
		return "nil"
	case reflect.Type:
		return s.String()
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(shape)
}

// ---------------------------------------------------------------------------
// Identity
// ---------------------------------------------------------------------------

func (e *Exports) IsIdenticalOrUndefined(r any, other any) TriState {
	if e.identity == nil {
		return Undefined
	}
	return e.identity.IsIdenticalOrUndefined(r, other)
}

// IsIdentical asks the receiver first and the other operand second, so
// the answer is the same in both directions. Undefined on both sides
// means not identical.
func (e *Exports) IsIdentical(r any, other any, otherExports *Exports) bool {
	if s := e.IsIdenticalOrUndefined(r, other); s != Undefined {
		return s == True
	}
	if otherExports == nil {
		otherExports = e.lookup().Resolve(other)
	}
	return otherExports.IsIdenticalOrUndefined(other, r) == True
}

func (e *Exports) IdentityHashCode(r any) (int32, error) {
	if e.identity == nil {
		return 0, Unsupported()
	}
	return e.identity.IdentityHashCode(r)
}

// ---------------------------------------------------------------------------
// Pointers
// ---------------------------------------------------------------------------

func (e *Exports) IsPointer(r any) bool {
	return e.pointer != nil && e.pointer.IsPointer(r)
}

func (e *Exports) AsPointer(r any) (int64, error) {
	if e.pointer == nil {
		return 0, Unsupported()
	}
	return e.pointer.AsPointer(r)
}

func (e *Exports) ToNative(r any) {
	if e.pointer != nil {
		e.pointer.ToNative(r)
	}
}

// ---------------------------------------------------------------------------
// Executables and instantiables
// ---------------------------------------------------------------------------

func (e *Exports) IsExecutable(r any) bool {
	return e.executable != nil && e.executable.IsExecutable(r)
}

func (e *Exports) Execute(r any, args ...any) (any, error) {
	if e.executable == nil {
		return nil, Unsupported()
	}
	return e.executable.Execute(r, args...)
}

func (e *Exports) IsInstantiable(r any) bool {
	return e.instantiable != nil && e.instantiable.IsInstantiable(r)
}

func (e *Exports) Instantiate(r any, args ...any) (any, error) {
	if e.instantiable == nil {
		return nil, Unsupported()
	}
	return e.instantiable.Instantiate(r, args...)
}

// ---------------------------------------------------------------------------
// Stack frames
// ---------------------------------------------------------------------------

func (e *Exports) HasExecutableName(r any) bool {
	return e.frame != nil && e.frame.HasExecutableName(r)
}

func (e *Exports) GetExecutableName(r any) (any, error) {
	if e.frame == nil {
		return nil, Unsupported()
	}
	return e.frame.GetExecutableName(r)
}

func (e *Exports) HasDeclaringMetaObject(r any) bool {
	return e.frame != nil && e.frame.HasDeclaringMetaObject(r)
}

func (e *Exports) GetDeclaringMetaObject(r any) (any, error) {
	if e.frame == nil {
		return nil, Unsupported()
	}
	return e.frame.GetDeclaringMetaObject(r)
}

// ---------------------------------------------------------------------------
// Buffers
// ---------------------------------------------------------------------------

func (e *Exports) HasBufferElements(r any) bool {
	return e.buffer != nil && e.buffer.HasBufferElements(r)
}

func (e *Exports) IsBufferWritable(r any) (bool, error) {
	if e.buffer == nil {
		return false, Unsupported()
	}
	return e.buffer.IsBufferWritable(r)
}

func (e *Exports) GetBufferSize(r any) (int64, error) {
	if e.buffer == nil {
		return 0, Unsupported()
	}
	return e.buffer.GetBufferSize(r)
}

func (e *Exports) ReadBufferByte(r any, offset int64) (int8, error) {
	if e.buffer == nil {
		return 0, Unsupported()
	}
	return e.buffer.ReadBufferByte(r, offset)
}

func (e *Exports) WriteBufferByte(r any, offset int64, value int8) error {
	if e.buffer == nil {
		return Unsupported()
	}
	return e.buffer.WriteBufferByte(r, offset, value)
}

func (e *Exports) ReadBufferShort(r any, order binary.ByteOrder, offset int64) (int16, error) {
	if e.buffer == nil {
		return 0, Unsupported()
	}
	return e.buffer.ReadBufferShort(r, order, offset)
}

func (e *Exports) WriteBufferShort(r any, order binary.ByteOrder, offset int64, value int16) error {
	if e.buffer == nil {
		return Unsupported()
	}
	return e.buffer.WriteBufferShort(r, order, offset, value)
}

func (e *Exports) ReadBufferInt(r any, order binary.ByteOrder, offset int64) (int32, error) {
	if e.buffer == nil {
		return 0, Unsupported()
	}
	return e.buffer.ReadBufferInt(r, order, offset)
}

func (e *Exports) WriteBufferInt(r any, order binary.ByteOrder, offset int64, value int32) error {
	if e.buffer == nil {
		return Unsupported()
	}
	return e.buffer.WriteBufferInt(r, order, offset, value)
}

func (e *Exports) ReadBufferLong(r any, order binary.ByteOrder, offset int64) (int64, error) {
	if e.buffer == nil {
		return 0, Unsupported()
	}
	return e.buffer.ReadBufferLong(r, order, offset)
}

func (e *Exports) WriteBufferLong(r any, order binary.ByteOrder, offset int64, value int64) error {
	if e.buffer == nil {
		return Unsupported()
	}
	return e.buffer.WriteBufferLong(r, order, offset, value)
}

func (e *Exports) ReadBufferFloat(r any, order binary.ByteOrder, offset int64) (float32, error) {
	if e.buffer == nil {
		return 0, Unsupported()
	}
	return e.buffer.ReadBufferFloat(r, order, offset)
}

func (e *Exports) WriteBufferFloat(r any, order binary.ByteOrder, offset int64, value float32) error {
	if e.buffer == nil {
		return Unsupported()
	}
	return e.buffer.WriteBufferFloat(r, order, offset, value)
}

func (e *Exports) ReadBufferDouble(r any, order binary.ByteOrder, offset int64) (float64, error) {
	if e.buffer == nil {
		return 0, Unsupported()
	}
	return e.buffer.ReadBufferDouble(r, order, offset)
}

func (e *Exports) WriteBufferDouble(r any, order binary.ByteOrder, offset int64, value float64) error {
	if e.buffer == nil {
		return Unsupported()
	}
	return e.buffer.WriteBufferDouble(r, order, offset, value)
}

// ---------------------------------------------------------------------------
// Iterators
// ---------------------------------------------------------------------------

// HasIterator holds for iterables and, by default, for every value with
// array elements.
func (e *Exports) HasIterator(r any) bool {
	if e.iterator != nil && e.iterator.HasIterator(r) {
		return true
	}
	return e.HasArrayElements(r)
}

func (e *Exports) GetIterator(r any) (any, error) {
	if e.iterator != nil && e.iterator.HasIterator(r) {
		return e.iterator.GetIterator(r)
	}
	if e.HasArrayElements(r) {
		return &ArrayIterator{source: r, exports: e}, nil
	}
	return nil, Unsupported()
}

func (e *Exports) IsIterator(r any) bool {
	return e.iterator != nil && e.iterator.IsIterator(r)
}

func (e *Exports) HasIteratorNextElement(r any) (bool, error) {
	if e.iterator == nil {
		return false, Unsupported()
	}
	return e.iterator.HasIteratorNextElement(r)
}

func (e *Exports) GetIteratorNextElement(r any) (any, error) {
	if e.iterator == nil {
		return nil, Unsupported()
	}
	return e.iterator.GetIteratorNextElement(r)
}

// ---------------------------------------------------------------------------
// Hashes
// ---------------------------------------------------------------------------

func (e *Exports) HasHashEntries(r any) bool {
	return e.hash != nil && e.hash.HasHashEntries(r)
}

func (e *Exports) GetHashSize(r any) (int64, error) {
	if e.hash == nil {
		return 0, Unsupported()
	}
	return e.hash.GetHashSize(r)
}

func (e *Exports) IsHashEntryReadable(r any, key any) bool {
	return e.hash != nil && e.hash.IsHashEntryReadable(r, key)
}

func (e *Exports) IsHashEntryModifiable(r any, key any) bool {
	return e.hash != nil && e.hash.IsHashEntryModifiable(r, key)
}

func (e *Exports) IsHashEntryInsertable(r any, key any) bool {
	return e.hash != nil && e.hash.IsHashEntryInsertable(r, key)
}

func (e *Exports) IsHashEntryRemovable(r any, key any) bool {
	return e.hash != nil && e.hash.IsHashEntryRemovable(r, key)
}

// IsHashEntryWritable is modifiable or insertable.
func (e *Exports) IsHashEntryWritable(r any, key any) bool {
	return e.IsHashEntryModifiable(r, key) || e.IsHashEntryInsertable(r, key)
}

// IsHashEntryExisting is readable, modifiable or removable.
func (e *Exports) IsHashEntryExisting(r any, key any) bool {
	return e.IsHashEntryReadable(r, key) || e.IsHashEntryModifiable(r, key) ||
		e.IsHashEntryRemovable(r, key)
}

func (e *Exports) ReadHashValue(r any, key any) (any, error) {
	if e.hash == nil {
		return nil, Unsupported()
	}
	return e.hash.ReadHashValue(r, key)
}

// ReadHashValueOrDefault returns def whenever the entry is not readable;
// it never fails with an unknown key.
func (e *Exports) ReadHashValueOrDefault(r any, key any, def any) (any, error) {
	if !e.IsHashEntryReadable(r, key) {
		if e.hash == nil {
			return nil, Unsupported()
		}
		return def, nil
	}
	v, err := e.hash.ReadHashValue(r, key)
	if KindOf(err) == KindUnknownKey {
		return def, nil
	}
	return v, err
}

func (e *Exports) WriteHashEntry(r any, key any, value any) error {
	if e.hash == nil {
		return Unsupported()
	}
	return e.hash.WriteHashEntry(r, key, value)
}

func (e *Exports) RemoveHashEntry(r any, key any) error {
	if e.hash == nil {
		return Unsupported()
	}
	return e.hash.RemoveHashEntry(r, key)
}

func (e *Exports) GetHashEntriesIterator(r any) (any, error) {
	if e.hash == nil {
		return nil, Unsupported()
	}
	return e.hash.GetHashEntriesIterator(r)
}

func (e *Exports) GetHashKeysIterator(r any) (any, error) {
	if e.hashIter != nil {
		return e.hashIter.GetHashKeysIterator(r)
	}
	return e.projectEntries(r, 0)
}

func (e *Exports) GetHashValuesIterator(r any) (any, error) {
	if e.hashIter != nil {
		return e.hashIter.GetHashValuesIterator(r)
	}
	return e.projectEntries(r, 1)
}

func (e *Exports) projectEntries(r any, index int64) (any, error) {
	entries, err := e.GetHashEntriesIterator(r)
	if err != nil {
		return nil, err
	}
	res := e.lookup()
	return &projectIterator{entries: entries, exports: res.Resolve(entries), resolver: res, index: index}, nil
}
