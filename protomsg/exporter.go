package protomsg

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"

	"github.com/chazu/polyglot/interop"
)

var (
	listShape       = reflect.TypeOf((*List)(nil))
	mapShape        = reflect.TypeOf((*Map)(nil))
	bytesShape      = reflect.TypeOf(Bytes{})
	descriptorShape = reflect.TypeOf((*desc.MessageDescriptor)(nil))
)

// Exporter serves messages, field views and message descriptors. Message
// tables are built once per descriptor.
type Exporter struct {
	conv converter

	messages    sync.Map // *desc.MessageDescriptor → *interop.Exports
	lists       *interop.Exports
	maps        *interop.Exports
	bytes       *interop.Exports
	descriptors *interop.Exports
}

// NewExporter creates the exporter. The resolver interrogates values
// written into messages.
func NewExporter(r *interop.Resolver) *Exporter {
	conv := converter{resolver: r}
	return &Exporter{
		conv:        conv,
		lists:       interop.NewExports(listShape, listLib{conv}),
		maps:        interop.NewExports(mapShape, mapLib{conv}),
		bytes:       interop.NewExports(bytesShape, bytesBuffer),
		descriptors: interop.NewExports(descriptorShape, descriptorLib{}, identityLib{}),
	}
}

func (e *Exporter) Export(shape any) *interop.Exports {
	switch s := shape.(type) {
	case *desc.MessageDescriptor:
		if t, ok := e.messages.Load(s); ok {
			return t.(*interop.Exports)
		}
		t, _ := e.messages.LoadOrStore(s, e.build(s))
		return t.(*interop.Exports)
	case reflect.Type:
		switch s {
		case listShape:
			return e.lists
		case mapShape:
			return e.maps
		case bytesShape:
			return e.bytes
		case descriptorShape:
			return e.descriptors
		}
	}
	return nil
}

func (e *Exporter) build(md *desc.MessageDescriptor) *interop.Exports {
	fields := make(map[string]*desc.FieldDescriptor)
	var names interop.MemberNames
	for _, fd := range md.GetFields() {
		fields[fd.GetName()] = fd
		names = append(names, fd.GetName())
	}
	return interop.NewExports(md,
		memberLib{conv: e.conv, fields: fields, names: names},
		metaLib{}, identityLib{}, displayLib{})
}

func msg(r any) *dynamic.Message { return r.(*Message).m }

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// memberLib serves the fields of one message type. Every field is
// modifiable; removing a field clears it back to its default.
type memberLib struct {
	conv   converter
	fields map[string]*desc.FieldDescriptor
	names  interop.MemberNames
}

func (memberLib) HasMembers(r any) bool { return true }

func (l memberLib) GetMembers(r any, includeInternal bool) (any, error) { return l.names, nil }

func (l memberLib) IsMemberReadable(r any, member string) bool {
	_, ok := l.fields[member]
	return ok
}

func (l memberLib) IsMemberModifiable(r any, member string) bool { return l.IsMemberReadable(r, member) }

func (memberLib) IsMemberInsertable(r any, member string) bool { return false }

func (l memberLib) IsMemberRemovable(r any, member string) bool {
	fd, ok := l.fields[member]
	return ok && msg(r).HasField(fd)
}

func (memberLib) IsMemberInvocable(r any, member string) bool { return false }

func (l memberLib) ReadMember(r any, member string) (any, error) {
	fd, ok := l.fields[member]
	if !ok {
		return nil, interop.UnknownIdentifier(member)
	}
	return fieldValue(msg(r), fd), nil
}

func (l memberLib) WriteMember(r any, member string, value any) error {
	fd, ok := l.fields[member]
	if !ok {
		return interop.UnknownIdentifier(member)
	}
	return l.conv.assign(msg(r), fd, value)
}

func (l memberLib) RemoveMember(r any, member string) error {
	fd, ok := l.fields[member]
	if !ok {
		return interop.UnknownIdentifier(member)
	}
	if !msg(r).HasField(fd) {
		return interop.Unsupported()
	}
	msg(r).ClearField(fd)
	return nil
}

func (l memberLib) InvokeMember(r any, member string, args ...any) (any, error) {
	if _, ok := l.fields[member]; ok {
		return nil, interop.Unsupported()
	}
	return nil, interop.UnknownIdentifier(member)
}

func (memberLib) HasMemberReadSideEffects(r any, member string) bool  { return false }
func (memberLib) HasMemberWriteSideEffects(r any, member string) bool { return false }

type metaLib struct{}

func (metaLib) HasMetaObject(r any) bool { return true }

func (metaLib) GetMetaObject(r any) (any, error) { return r.(*Message).Descriptor(), nil }

func (metaLib) IsMetaObject(r any) bool { return false }

func (metaLib) GetMetaQualifiedName(r any) (any, error) { return nil, interop.Unsupported() }

func (metaLib) GetMetaSimpleName(r any) (any, error) { return nil, interop.Unsupported() }

func (metaLib) IsMetaInstance(r any, instance any) (bool, error) { return false, interop.Unsupported() }

// identityLib compares the underlying messages and descriptors, so two
// views of one message are identical.
type identityLib struct{}

func underlying(v any) any {
	switch v := v.(type) {
	case *Message:
		return v.m
	case *desc.MessageDescriptor:
		return v
	}
	return nil
}

func (identityLib) IsIdenticalOrUndefined(r any, other any) interop.TriState {
	o := underlying(other)
	return interop.TriStateOf(o != nil && o == underlying(r))
}

func (identityLib) IdentityHashCode(r any) (int32, error) {
	p := uint64(reflect.ValueOf(underlying(r)).Pointer())
	return int32(p ^ p>>32), nil
}

// displayLib renders messages in the protobuf text format.
type displayLib struct{}

func (displayLib) ToDisplayString(r any, allowSideEffects bool) any {
	m := r.(*Message)
	return fmt.Sprintf("%s{%s}", m.Descriptor().GetFullyQualifiedName(), m.String())
}

// ---------------------------------------------------------------------------
// Descriptors
// ---------------------------------------------------------------------------

// descriptorLib makes message descriptors metaobjects that instantiate
// empty messages.
type descriptorLib struct{}

func (descriptorLib) HasMetaObject(r any) bool         { return false }
func (descriptorLib) GetMetaObject(r any) (any, error) { return nil, interop.Unsupported() }
func (descriptorLib) IsMetaObject(r any) bool          { return true }

func (descriptorLib) GetMetaQualifiedName(r any) (any, error) {
	return r.(*desc.MessageDescriptor).GetFullyQualifiedName(), nil
}

func (descriptorLib) GetMetaSimpleName(r any) (any, error) {
	return r.(*desc.MessageDescriptor).GetName(), nil
}

func (descriptorLib) IsMetaInstance(r any, instance any) (bool, error) {
	m, ok := instance.(*Message)
	if !ok {
		return false, nil
	}
	return m.Descriptor().GetFullyQualifiedName() == r.(*desc.MessageDescriptor).GetFullyQualifiedName(), nil
}

func (descriptorLib) IsInstantiable(r any) bool { return true }

func (descriptorLib) Instantiate(r any, args ...any) (any, error) {
	if len(args) != 0 {
		return nil, interop.Arity(0, 0, len(args))
	}
	return New(r.(*desc.MessageDescriptor)), nil
}

func (descriptorLib) ToDisplayString(r any, allowSideEffects bool) any {
	return r.(*desc.MessageDescriptor).GetFullyQualifiedName()
}

// ---------------------------------------------------------------------------
// Repeated fields
// ---------------------------------------------------------------------------

type listLib struct{ conv converter }

func list(r any) *List { return r.(*List) }

func (l listLib) size(r any) int64 {
	v := list(r)
	return int64(v.m.FieldLength(v.field))
}

func (listLib) HasArrayElements(r any) bool { return true }

func (l listLib) GetArraySize(r any) (int64, error) { return l.size(r), nil }

func (l listLib) IsArrayElementReadable(r any, index int64) bool {
	return index >= 0 && index < l.size(r)
}

func (l listLib) IsArrayElementModifiable(r any, index int64) bool {
	return l.IsArrayElementReadable(r, index)
}

// IsArrayElementInsertable allows appending only.
func (l listLib) IsArrayElementInsertable(r any, index int64) bool { return index == l.size(r) }

func (l listLib) IsArrayElementRemovable(r any, index int64) bool {
	return l.IsArrayElementReadable(r, index)
}

func (l listLib) ReadArrayElement(r any, index int64) (any, error) {
	if !l.IsArrayElementReadable(r, index) {
		return nil, interop.InvalidArrayIndex(index)
	}
	v := list(r)
	return element(v.m.GetRepeatedField(v.field, int(index)), v.field), nil
}

func (l listLib) WriteArrayElement(r any, index int64, value any) error {
	v := list(r)
	n := l.size(r)
	if index < 0 || index > n {
		return interop.InvalidArrayIndex(index)
	}
	stored, err := l.conv.scalar(v.field, value)
	if err != nil {
		return err
	}
	if index == n {
		return v.m.TryAddRepeatedField(v.field, stored)
	}
	return v.m.TrySetRepeatedField(v.field, int(index), stored)
}

func (l listLib) RemoveArrayElement(r any, index int64) error {
	if !l.IsArrayElementRemovable(r, index) {
		return interop.InvalidArrayIndex(index)
	}
	v := list(r)
	n := int(l.size(r))
	rest := make([]any, 0, n-1)
	for i := range n {
		if i != int(index) {
			rest = append(rest, v.m.GetRepeatedField(v.field, i))
		}
	}
	if len(rest) == 0 {
		v.m.ClearField(v.field)
		return nil
	}
	return v.m.TrySetField(v.field, rest)
}

// ---------------------------------------------------------------------------
// Map fields
// ---------------------------------------------------------------------------

type mapLib struct{ conv converter }

func mapView(r any) *Map { return r.(*Map) }

// lookup converts key to the field's key type and fetches its value; the
// value is nil when the key is absent or does not convert.
func (l mapLib) lookup(r, key any) (k, v any) {
	mv := mapView(r)
	k, err := l.conv.scalar(mv.field.GetMapKeyType(), key)
	if err != nil {
		return nil, nil
	}
	v, err = mv.m.TryGetMapField(mv.field, k)
	if err != nil {
		return k, nil
	}
	return k, v
}

func (mapLib) HasHashEntries(r any) bool { return true }

func (mapLib) GetHashSize(r any) (int64, error) {
	mv := mapView(r)
	return int64(mv.m.FieldLength(mv.field)), nil
}

func (l mapLib) IsHashEntryReadable(r any, key any) bool {
	_, v := l.lookup(r, key)
	return v != nil
}

func (l mapLib) IsHashEntryModifiable(r any, key any) bool { return l.IsHashEntryReadable(r, key) }

func (l mapLib) IsHashEntryInsertable(r any, key any) bool {
	k, v := l.lookup(r, key)
	return k != nil && v == nil
}

func (l mapLib) IsHashEntryRemovable(r any, key any) bool { return l.IsHashEntryReadable(r, key) }

func (l mapLib) ReadHashValue(r any, key any) (any, error) {
	_, v := l.lookup(r, key)
	if v == nil {
		return nil, interop.UnknownKey(key)
	}
	return element(v, mapView(r).field.GetMapValueType()), nil
}

func (l mapLib) WriteHashEntry(r any, key any, value any) error {
	mv := mapView(r)
	k, err := l.conv.scalar(mv.field.GetMapKeyType(), key)
	if err != nil {
		return err
	}
	v, err := l.conv.scalar(mv.field.GetMapValueType(), value)
	if err != nil {
		return err
	}
	return mv.m.TryPutMapField(mv.field, k, v)
}

func (l mapLib) RemoveHashEntry(r any, key any) error {
	k, v := l.lookup(r, key)
	if v == nil {
		return interop.UnknownKey(key)
	}
	mv := mapView(r)
	return mv.m.TryRemoveMapField(mv.field, k)
}

// GetHashEntriesIterator iterates over a snapshot of the entries ordered
// by key.
func (mapLib) GetHashEntriesIterator(r any) (any, error) {
	mv := mapView(r)
	valueField := mv.field.GetMapValueType()
	var entries interop.Elements
	mv.m.ForEachMapFieldEntry(mv.field, func(k, v any) bool {
		entries = append(entries, interop.Entry{Key: k, Value: element(v, valueField)})
		return true
	})
	slices.SortFunc(entries, func(a, b any) int {
		return compareKeys(a.(interop.Entry).Key, b.(interop.Entry).Key)
	})
	return interop.IterateElements(entries), nil
}

// compareKeys orders map keys, which are all of one scalar type.
func compareKeys(a, b any) int {
	switch a := a.(type) {
	case string:
		return cmp.Compare(a, b.(string))
	case int32:
		return cmp.Compare(a, b.(int32))
	case int64:
		return cmp.Compare(a, b.(int64))
	case uint32:
		return cmp.Compare(a, b.(uint32))
	case uint64:
		return cmp.Compare(a, b.(uint64))
	case bool:
		if a == b.(bool) {
			return 0
		}
		if !a {
			return -1
		}
		return 1
	}
	return 0
}

// ---------------------------------------------------------------------------
// Bytes
// ---------------------------------------------------------------------------

var bytesBuffer = interop.ByteBuffer{View: func(r any) ([]byte, bool, bool) {
	return r.(Bytes).data, false, true
}}
