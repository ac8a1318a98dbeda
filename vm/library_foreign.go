package vm

import (
	"encoding/binary"

	"github.com/chazu/polyglot/interop"
)

// foreignLib serves Foreign and ForeignException boxes by forwarding every
// message to the boxed value. Results are the foreign side's raw results.
type foreignLib struct {
	resolver *interop.Resolver
}

func (l foreignLib) of(r any) (any, *interop.Exports) {
	raw := self(r).raw
	return raw, l.resolver.Resolve(raw)
}

// unbox strips a foreign box from an argument headed for the foreign side.
func unbox(v any) any {
	if o, ok := v.(*Object); ok && o.IsForeign() {
		return o.raw
	}
	return v
}

func (l foreignLib) IsNull(r any) bool {
	raw, ex := l.of(r)
	return ex.IsNull(raw)
}

func (l foreignLib) IsBoolean(r any) bool {
	raw, ex := l.of(r)
	return ex.IsBoolean(raw)
}

func (l foreignLib) AsBoolean(r any) (bool, error) {
	raw, ex := l.of(r)
	return ex.AsBoolean(raw)
}

func (l foreignLib) IsString(r any) bool {
	raw, ex := l.of(r)
	return ex.IsString(raw)
}

func (l foreignLib) AsString(r any) (string, error) {
	raw, ex := l.of(r)
	return ex.AsString(raw)
}

func (l foreignLib) IsNumber(r any) bool {
	raw, ex := l.of(r)
	return ex.IsNumber(raw)
}

func (l foreignLib) FitsInByte(r any) bool {
	raw, ex := l.of(r)
	return ex.FitsInByte(raw)
}

func (l foreignLib) FitsInShort(r any) bool {
	raw, ex := l.of(r)
	return ex.FitsInShort(raw)
}

func (l foreignLib) FitsInInt(r any) bool {
	raw, ex := l.of(r)
	return ex.FitsInInt(raw)
}

func (l foreignLib) FitsInLong(r any) bool {
	raw, ex := l.of(r)
	return ex.FitsInLong(raw)
}

func (l foreignLib) FitsInFloat(r any) bool {
	raw, ex := l.of(r)
	return ex.FitsInFloat(raw)
}

func (l foreignLib) FitsInDouble(r any) bool {
	raw, ex := l.of(r)
	return ex.FitsInDouble(raw)
}

func (l foreignLib) AsByte(r any) (int8, error) {
	raw, ex := l.of(r)
	return ex.AsByte(raw)
}

func (l foreignLib) AsShort(r any) (int16, error) {
	raw, ex := l.of(r)
	return ex.AsShort(raw)
}

func (l foreignLib) AsInt(r any) (int32, error) {
	raw, ex := l.of(r)
	return ex.AsInt(raw)
}

func (l foreignLib) AsLong(r any) (int64, error) {
	raw, ex := l.of(r)
	return ex.AsLong(raw)
}

func (l foreignLib) AsFloat(r any) (float32, error) {
	raw, ex := l.of(r)
	return ex.AsFloat(raw)
}

func (l foreignLib) AsDouble(r any) (float64, error) {
	raw, ex := l.of(r)
	return ex.AsDouble(raw)
}

// ---------------------------------------------------------------------------
// Exceptions
// ---------------------------------------------------------------------------

func (l foreignLib) IsException(r any) bool {
	raw, ex := l.of(r)
	return ex.IsException(raw)
}

func (l foreignLib) ThrowException(r any) error {
	raw, ex := l.of(r)
	return ex.ThrowException(raw)
}

func (l foreignLib) GetExceptionType(r any) (interop.ExceptionType, error) {
	raw, ex := l.of(r)
	return ex.GetExceptionType(raw)
}

func (l foreignLib) IsExceptionIncompleteSource(r any) (bool, error) {
	raw, ex := l.of(r)
	return ex.IsExceptionIncompleteSource(raw)
}

func (l foreignLib) GetExceptionExitStatus(r any) (int, error) {
	raw, ex := l.of(r)
	return ex.GetExceptionExitStatus(raw)
}

func (l foreignLib) HasExceptionCause(r any) bool {
	raw, ex := l.of(r)
	return ex.HasExceptionCause(raw)
}

func (l foreignLib) GetExceptionCause(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetExceptionCause(raw)
}

func (l foreignLib) HasExceptionMessage(r any) bool {
	raw, ex := l.of(r)
	return ex.HasExceptionMessage(raw)
}

func (l foreignLib) GetExceptionMessage(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetExceptionMessage(raw)
}

func (l foreignLib) HasExceptionStackTrace(r any) bool {
	raw, ex := l.of(r)
	return ex.HasExceptionStackTrace(raw)
}

func (l foreignLib) GetExceptionStackTrace(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetExceptionStackTrace(raw)
}

// ---------------------------------------------------------------------------
// Arrays
// ---------------------------------------------------------------------------

func (l foreignLib) HasArrayElements(r any) bool {
	raw, ex := l.of(r)
	return ex.HasArrayElements(raw)
}

func (l foreignLib) GetArraySize(r any) (int64, error) {
	raw, ex := l.of(r)
	return ex.GetArraySize(raw)
}

func (l foreignLib) IsArrayElementReadable(r any, index int64) bool {
	raw, ex := l.of(r)
	return ex.IsArrayElementReadable(raw, index)
}

func (l foreignLib) IsArrayElementModifiable(r any, index int64) bool {
	raw, ex := l.of(r)
	return ex.IsArrayElementModifiable(raw, index)
}

func (l foreignLib) IsArrayElementInsertable(r any, index int64) bool {
	raw, ex := l.of(r)
	return ex.IsArrayElementInsertable(raw, index)
}

func (l foreignLib) IsArrayElementRemovable(r any, index int64) bool {
	raw, ex := l.of(r)
	return ex.IsArrayElementRemovable(raw, index)
}

func (l foreignLib) ReadArrayElement(r any, index int64) (any, error) {
	raw, ex := l.of(r)
	return ex.ReadArrayElement(raw, index)
}

func (l foreignLib) WriteArrayElement(r any, index int64, value any) error {
	raw, ex := l.of(r)
	return ex.WriteArrayElement(raw, index, unbox(value))
}

func (l foreignLib) RemoveArrayElement(r any, index int64) error {
	raw, ex := l.of(r)
	return ex.RemoveArrayElement(raw, index)
}

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

func (l foreignLib) HasMembers(r any) bool {
	raw, ex := l.of(r)
	return ex.HasMembers(raw)
}

func (l foreignLib) GetMembers(r any, includeInternal bool) (any, error) {
	raw, ex := l.of(r)
	return ex.GetMembers(raw, includeInternal)
}

func (l foreignLib) IsMemberReadable(r any, member string) bool {
	raw, ex := l.of(r)
	return ex.IsMemberReadable(raw, member)
}

func (l foreignLib) IsMemberModifiable(r any, member string) bool {
	raw, ex := l.of(r)
	return ex.IsMemberModifiable(raw, member)
}

func (l foreignLib) IsMemberInsertable(r any, member string) bool {
	raw, ex := l.of(r)
	return ex.IsMemberInsertable(raw, member)
}

func (l foreignLib) IsMemberRemovable(r any, member string) bool {
	raw, ex := l.of(r)
	return ex.IsMemberRemovable(raw, member)
}

func (l foreignLib) IsMemberInvocable(r any, member string) bool {
	raw, ex := l.of(r)
	return ex.IsMemberInvocable(raw, member)
}

func (l foreignLib) ReadMember(r any, member string) (any, error) {
	raw, ex := l.of(r)
	return ex.ReadMember(raw, member)
}

func (l foreignLib) WriteMember(r any, member string, value any) error {
	raw, ex := l.of(r)
	return ex.WriteMember(raw, member, unbox(value))
}

func (l foreignLib) RemoveMember(r any, member string) error {
	raw, ex := l.of(r)
	return ex.RemoveMember(raw, member)
}

func (l foreignLib) InvokeMember(r any, member string, args ...any) (any, error) {
	raw, ex := l.of(r)
	return ex.InvokeMember(raw, member, unboxAll(args)...)
}

func (l foreignLib) HasMemberReadSideEffects(r any, member string) bool {
	raw, ex := l.of(r)
	return ex.HasMemberReadSideEffects(raw, member)
}

func (l foreignLib) HasMemberWriteSideEffects(r any, member string) bool {
	raw, ex := l.of(r)
	return ex.HasMemberWriteSideEffects(raw, member)
}

func unboxAll(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = unbox(a)
	}
	return out
}

// ---------------------------------------------------------------------------
// Metaobjects, display, identity, pointers
// ---------------------------------------------------------------------------

func (l foreignLib) HasMetaObject(r any) bool {
	raw, ex := l.of(r)
	return ex.HasMetaObject(raw)
}

func (l foreignLib) GetMetaObject(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetMetaObject(raw)
}

func (l foreignLib) IsMetaObject(r any) bool {
	raw, ex := l.of(r)
	return ex.IsMetaObject(raw)
}

func (l foreignLib) GetMetaQualifiedName(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetMetaQualifiedName(raw)
}

func (l foreignLib) GetMetaSimpleName(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetMetaSimpleName(raw)
}

func (l foreignLib) IsMetaInstance(r any, instance any) (bool, error) {
	raw, ex := l.of(r)
	return ex.IsMetaInstance(raw, unbox(instance))
}

func (l foreignLib) ToDisplayString(r any, allowSideEffects bool) any {
	raw, ex := l.of(r)
	return ex.ToDisplayString(raw, allowSideEffects)
}

// IsIdenticalOrUndefined compares the boxed values, so two boxes of the
// same foreign value are identical.
func (l foreignLib) IsIdenticalOrUndefined(r any, other any) interop.TriState {
	raw, ex := l.of(r)
	other = unbox(other)
	if ex.IsIdentical(raw, other, nil) {
		return interop.True
	}
	return interop.False
}

func (l foreignLib) IdentityHashCode(r any) (int32, error) {
	raw, ex := l.of(r)
	return ex.IdentityHashCode(raw)
}

func (l foreignLib) IsPointer(r any) bool {
	raw, ex := l.of(r)
	return ex.IsPointer(raw)
}

func (l foreignLib) AsPointer(r any) (int64, error) {
	raw, ex := l.of(r)
	return ex.AsPointer(raw)
}

func (l foreignLib) ToNative(r any) {
	raw, ex := l.of(r)
	ex.ToNative(raw)
}

// ---------------------------------------------------------------------------
// Executables, instantiables, frames
// ---------------------------------------------------------------------------

func (l foreignLib) IsExecutable(r any) bool {
	raw, ex := l.of(r)
	return ex.IsExecutable(raw)
}

func (l foreignLib) Execute(r any, args ...any) (any, error) {
	raw, ex := l.of(r)
	return ex.Execute(raw, unboxAll(args)...)
}

func (l foreignLib) IsInstantiable(r any) bool {
	raw, ex := l.of(r)
	return ex.IsInstantiable(raw)
}

func (l foreignLib) Instantiate(r any, args ...any) (any, error) {
	raw, ex := l.of(r)
	return ex.Instantiate(raw, unboxAll(args)...)
}

func (l foreignLib) HasExecutableName(r any) bool {
	raw, ex := l.of(r)
	return ex.HasExecutableName(raw)
}

func (l foreignLib) GetExecutableName(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetExecutableName(raw)
}

func (l foreignLib) HasDeclaringMetaObject(r any) bool {
	raw, ex := l.of(r)
	return ex.HasDeclaringMetaObject(raw)
}

func (l foreignLib) GetDeclaringMetaObject(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetDeclaringMetaObject(raw)
}

// ---------------------------------------------------------------------------
// Buffers
// ---------------------------------------------------------------------------

func (l foreignLib) HasBufferElements(r any) bool {
	raw, ex := l.of(r)
	return ex.HasBufferElements(raw)
}

func (l foreignLib) IsBufferWritable(r any) (bool, error) {
	raw, ex := l.of(r)
	return ex.IsBufferWritable(raw)
}

func (l foreignLib) GetBufferSize(r any) (int64, error) {
	raw, ex := l.of(r)
	return ex.GetBufferSize(raw)
}

func (l foreignLib) ReadBufferByte(r any, offset int64) (int8, error) {
	raw, ex := l.of(r)
	return ex.ReadBufferByte(raw, offset)
}

func (l foreignLib) WriteBufferByte(r any, offset int64, value int8) error {
	raw, ex := l.of(r)
	return ex.WriteBufferByte(raw, offset, value)
}

func (l foreignLib) ReadBufferShort(r any, order binary.ByteOrder, offset int64) (int16, error) {
	raw, ex := l.of(r)
	return ex.ReadBufferShort(raw, order, offset)
}

func (l foreignLib) WriteBufferShort(r any, order binary.ByteOrder, offset int64, value int16) error {
	raw, ex := l.of(r)
	return ex.WriteBufferShort(raw, order, offset, value)
}

func (l foreignLib) ReadBufferInt(r any, order binary.ByteOrder, offset int64) (int32, error) {
	raw, ex := l.of(r)
	return ex.ReadBufferInt(raw, order, offset)
}

func (l foreignLib) WriteBufferInt(r any, order binary.ByteOrder, offset int64, value int32) error {
	raw, ex := l.of(r)
	return ex.WriteBufferInt(raw, order, offset, value)
}

func (l foreignLib) ReadBufferLong(r any, order binary.ByteOrder, offset int64) (int64, error) {
	raw, ex := l.of(r)
	return ex.ReadBufferLong(raw, order, offset)
}

func (l foreignLib) WriteBufferLong(r any, order binary.ByteOrder, offset int64, value int64) error {
	raw, ex := l.of(r)
	return ex.WriteBufferLong(raw, order, offset, value)
}

func (l foreignLib) ReadBufferFloat(r any, order binary.ByteOrder, offset int64) (float32, error) {
	raw, ex := l.of(r)
	return ex.ReadBufferFloat(raw, order, offset)
}

func (l foreignLib) WriteBufferFloat(r any, order binary.ByteOrder, offset int64, value float32) error {
	raw, ex := l.of(r)
	return ex.WriteBufferFloat(raw, order, offset, value)
}

func (l foreignLib) ReadBufferDouble(r any, order binary.ByteOrder, offset int64) (float64, error) {
	raw, ex := l.of(r)
	return ex.ReadBufferDouble(raw, order, offset)
}

func (l foreignLib) WriteBufferDouble(r any, order binary.ByteOrder, offset int64, value float64) error {
	raw, ex := l.of(r)
	return ex.WriteBufferDouble(raw, order, offset, value)
}

// ---------------------------------------------------------------------------
// Iterators and hashes
// ---------------------------------------------------------------------------

func (l foreignLib) HasIterator(r any) bool {
	raw, ex := l.of(r)
	return ex.HasIterator(raw)
}

func (l foreignLib) GetIterator(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetIterator(raw)
}

func (l foreignLib) IsIterator(r any) bool {
	raw, ex := l.of(r)
	return ex.IsIterator(raw)
}

func (l foreignLib) HasIteratorNextElement(r any) (bool, error) {
	raw, ex := l.of(r)
	return ex.HasIteratorNextElement(raw)
}

func (l foreignLib) GetIteratorNextElement(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetIteratorNextElement(raw)
}

func (l foreignLib) HasHashEntries(r any) bool {
	raw, ex := l.of(r)
	return ex.HasHashEntries(raw)
}

func (l foreignLib) GetHashSize(r any) (int64, error) {
	raw, ex := l.of(r)
	return ex.GetHashSize(raw)
}

func (l foreignLib) IsHashEntryReadable(r any, key any) bool {
	raw, ex := l.of(r)
	return ex.IsHashEntryReadable(raw, unbox(key))
}

func (l foreignLib) IsHashEntryModifiable(r any, key any) bool {
	raw, ex := l.of(r)
	return ex.IsHashEntryModifiable(raw, unbox(key))
}

func (l foreignLib) IsHashEntryInsertable(r any, key any) bool {
	raw, ex := l.of(r)
	return ex.IsHashEntryInsertable(raw, unbox(key))
}

func (l foreignLib) IsHashEntryRemovable(r any, key any) bool {
	raw, ex := l.of(r)
	return ex.IsHashEntryRemovable(raw, unbox(key))
}

func (l foreignLib) ReadHashValue(r any, key any) (any, error) {
	raw, ex := l.of(r)
	return ex.ReadHashValue(raw, unbox(key))
}

func (l foreignLib) WriteHashEntry(r any, key any, value any) error {
	raw, ex := l.of(r)
	return ex.WriteHashEntry(raw, unbox(key), unbox(value))
}

func (l foreignLib) RemoveHashEntry(r any, key any) error {
	raw, ex := l.of(r)
	return ex.RemoveHashEntry(raw, unbox(key))
}

func (l foreignLib) GetHashEntriesIterator(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetHashEntriesIterator(raw)
}

func (l foreignLib) GetHashKeysIterator(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetHashKeysIterator(raw)
}

func (l foreignLib) GetHashValuesIterator(r any) (any, error) {
	raw, ex := l.of(r)
	return ex.GetHashValuesIterator(raw)
}
