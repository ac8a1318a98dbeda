package interop

import (
	"encoding/binary"
	"fmt"
)

// ---------------------------------------------------------------------------
// Capability categories
// ---------------------------------------------------------------------------

// Capability names one message family.
type Capability uint8

const (
	CapNull Capability = iota
	CapBoolean
	CapString
	CapNumber
	CapException
	CapArray
	CapMember
	CapMetaObject
	CapIdentity
	CapPointer
	CapExecutable
	CapInstantiable
	CapStackFrame
	CapBuffer
	CapIterator
	CapHash

	numCapabilities
)

var capabilityNames = [numCapabilities]string{
	CapNull:         "null",
	CapBoolean:      "boolean",
	CapString:       "string",
	CapNumber:       "number",
	CapException:    "exception",
	CapArray:        "array",
	CapMember:       "member",
	CapMetaObject:   "metaobject",
	CapIdentity:     "identity",
	CapPointer:      "pointer",
	CapExecutable:   "executable",
	CapInstantiable: "instantiable",
	CapStackFrame:   "stack-frame",
	CapBuffer:       "buffer",
	CapIterator:     "iterator",
	CapHash:         "hash",
}

func (c Capability) String() string {
	if c < numCapabilities {
		return capabilityNames[c]
	}
	return fmt.Sprintf("Capability(%d)", uint8(c))
}

// ParseCapability maps a category name such as "buffer" to its Capability.
func ParseCapability(name string) (Capability, error) {
	for i, n := range capabilityNames {
		if n == name {
			return Capability(i), nil
		}
	}
	return 0, fmt.Errorf("interop: unknown capability %q", name)
}

// AllCapabilities returns every category in declaration order.
func AllCapabilities() []Capability {
	caps := make([]Capability, numCapabilities)
	for i := range caps {
		caps[i] = Capability(i)
	}
	return caps
}

// ---------------------------------------------------------------------------
// Libraries
//
// Every method takes the raw receiver first. Predicates never fail and have
// no side effects; accessors may only succeed when their predicate holds.
// ---------------------------------------------------------------------------

// Shaped values choose their own dispatch key instead of their Go type.
// The key must be comparable.
type Shaped interface {
	InteropShape() any
}

type NullLibrary interface {
	IsNull(r any) bool
}

type BooleanLibrary interface {
	IsBoolean(r any) bool
	AsBoolean(r any) (bool, error)
}

type StringLibrary interface {
	IsString(r any) bool
	AsString(r any) (string, error)
}

// NumberLibrary answers each FitsIn predicate independently: a value may
// fit in a wider type and not a narrower one, and integers may fit a
// floating type only when the conversion is exact.
type NumberLibrary interface {
	IsNumber(r any) bool
	FitsInByte(r any) bool
	FitsInShort(r any) bool
	FitsInInt(r any) bool
	FitsInLong(r any) bool
	FitsInFloat(r any) bool
	FitsInDouble(r any) bool
	AsByte(r any) (int8, error)
	AsShort(r any) (int16, error)
	AsInt(r any) (int32, error)
	AsLong(r any) (int64, error)
	AsFloat(r any) (float32, error)
	AsDouble(r any) (float64, error)
}

// ExceptionLibrary exposes exception values. ThrowException returns a
// *Throw carrying the value to raise, or a failure.
type ExceptionLibrary interface {
	IsException(r any) bool
	ThrowException(r any) error
	GetExceptionType(r any) (ExceptionType, error)
	IsExceptionIncompleteSource(r any) (bool, error)
	GetExceptionExitStatus(r any) (int, error)
	HasExceptionCause(r any) bool
	GetExceptionCause(r any) (any, error)
	HasExceptionMessage(r any) bool
	GetExceptionMessage(r any) (any, error)
	HasExceptionStackTrace(r any) bool
	GetExceptionStackTrace(r any) (any, error)
}

// ArrayLibrary exposes indexed elements. An index is insertable only when
// it is neither readable, modifiable nor removable.
type ArrayLibrary interface {
	HasArrayElements(r any) bool
	GetArraySize(r any) (int64, error)
	IsArrayElementReadable(r any, index int64) bool
	IsArrayElementModifiable(r any, index int64) bool
	IsArrayElementInsertable(r any, index int64) bool
	IsArrayElementRemovable(r any, index int64) bool
	ReadArrayElement(r any, index int64) (any, error)
	WriteArrayElement(r any, index int64, value any) error
	RemoveArrayElement(r any, index int64) error
}

// MemberLibrary exposes named members. GetMembers returns a value with
// array elements whose elements are strings.
type MemberLibrary interface {
	HasMembers(r any) bool
	GetMembers(r any, includeInternal bool) (any, error)
	IsMemberReadable(r any, member string) bool
	IsMemberModifiable(r any, member string) bool
	IsMemberInsertable(r any, member string) bool
	IsMemberRemovable(r any, member string) bool
	IsMemberInvocable(r any, member string) bool
	ReadMember(r any, member string) (any, error)
	WriteMember(r any, member string, value any) error
	RemoveMember(r any, member string) error
	InvokeMember(r any, member string, args ...any) (any, error)
	HasMemberReadSideEffects(r any, member string) bool
	HasMemberWriteSideEffects(r any, member string) bool
}

type MetaLibrary interface {
	HasMetaObject(r any) bool
	GetMetaObject(r any) (any, error)
	IsMetaObject(r any) bool
	GetMetaQualifiedName(r any) (any, error)
	GetMetaSimpleName(r any) (any, error)
	IsMetaInstance(r any, instance any) (bool, error)
}

// DisplayLibrary is optional; Exports supplies a default rendering.
type DisplayLibrary interface {
	ToDisplayString(r any, allowSideEffects bool) any
}

// IdentityLibrary answers identity for one side of a comparison. Values
// without identity return Undefined.
type IdentityLibrary interface {
	IsIdenticalOrUndefined(r any, other any) TriState
	IdentityHashCode(r any) (int32, error)
}

type PointerLibrary interface {
	IsPointer(r any) bool
	AsPointer(r any) (int64, error)
	ToNative(r any)
}

type ExecutableLibrary interface {
	IsExecutable(r any) bool
	Execute(r any, args ...any) (any, error)
}

type InstantiableLibrary interface {
	IsInstantiable(r any) bool
	Instantiate(r any, args ...any) (any, error)
}

// FrameLibrary exposes stack-frame information of executables and stack
// trace elements.
type FrameLibrary interface {
	HasExecutableName(r any) bool
	GetExecutableName(r any) (any, error)
	HasDeclaringMetaObject(r any) bool
	GetDeclaringMetaObject(r any) (any, error)
}

// BufferLibrary exposes raw bytes. Accesses of width w at offset o require
// 0 <= o <= size-w. Accesses are neither aligned nor atomic.
type BufferLibrary interface {
	HasBufferElements(r any) bool
	IsBufferWritable(r any) (bool, error)
	GetBufferSize(r any) (int64, error)
	ReadBufferByte(r any, offset int64) (int8, error)
	WriteBufferByte(r any, offset int64, value int8) error
	ReadBufferShort(r any, order binary.ByteOrder, offset int64) (int16, error)
	WriteBufferShort(r any, order binary.ByteOrder, offset int64, value int16) error
	ReadBufferInt(r any, order binary.ByteOrder, offset int64) (int32, error)
	WriteBufferInt(r any, order binary.ByteOrder, offset int64, value int32) error
	ReadBufferLong(r any, order binary.ByteOrder, offset int64) (int64, error)
	WriteBufferLong(r any, order binary.ByteOrder, offset int64, value int64) error
	ReadBufferFloat(r any, order binary.ByteOrder, offset int64) (float32, error)
	WriteBufferFloat(r any, order binary.ByteOrder, offset int64, value float32) error
	ReadBufferDouble(r any, order binary.ByteOrder, offset int64) (float64, error)
	WriteBufferDouble(r any, order binary.ByteOrder, offset int64, value float64) error
}

// IteratorLibrary covers both iterables (HasIterator) and iterators
// (IsIterator). After a concurrent modification of the source
// GetIteratorNextElement may stop even though HasIteratorNextElement
// reported true.
type IteratorLibrary interface {
	HasIterator(r any) bool
	GetIterator(r any) (any, error)
	IsIterator(r any) bool
	HasIteratorNextElement(r any) (bool, error)
	GetIteratorNextElement(r any) (any, error)
}

// HashLibrary exposes key/value entries. The entries iterator yields
// two-element arrays of key and value.
type HashLibrary interface {
	HasHashEntries(r any) bool
	GetHashSize(r any) (int64, error)
	IsHashEntryReadable(r any, key any) bool
	IsHashEntryModifiable(r any, key any) bool
	IsHashEntryInsertable(r any, key any) bool
	IsHashEntryRemovable(r any, key any) bool
	ReadHashValue(r any, key any) (any, error)
	WriteHashEntry(r any, key any, value any) error
	RemoveHashEntry(r any, key any) error
	GetHashEntriesIterator(r any) (any, error)
}

// HashIteratorLibrary is optional; without it keys and values iterators
// are projected from the entries iterator.
type HashIteratorLibrary interface {
	GetHashKeysIterator(r any) (any, error)
	GetHashValuesIterator(r any) (any, error)
}
