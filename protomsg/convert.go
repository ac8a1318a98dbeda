package protomsg

import (
	"math"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/chazu/polyglot/interop"
)

// fieldValue returns the protocol view of a field of m.
func fieldValue(m *dynamic.Message, fd *desc.FieldDescriptor) any {
	switch {
	case fd.IsMap():
		return &Map{m: m, field: fd}
	case fd.IsRepeated():
		return &List{m: m, field: fd}
	}
	if fd.GetType() == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE && !m.HasField(fd) {
		return nil
	}
	return element(m.GetField(fd), fd)
}

// element converts a single stored value, the value of a singular field or
// one element of a repeated or map field.
func element(v any, fd *desc.FieldDescriptor) any {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		if dm, ok := v.(*dynamic.Message); ok && dm != nil {
			return Wrap(dm)
		}
		return nil
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		b, _ := v.([]byte)
		return Bytes{data: b}
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		n, _ := v.(int32)
		if ev := fd.GetEnumType().FindValueByNumber(n); ev != nil {
			return ev.GetName()
		}
		return n
	}
	return v
}

// converter turns protocol values into stored field values.
type converter struct {
	resolver *interop.Resolver
}

func mismatch(fd *desc.FieldDescriptor, v any) error {
	return interop.UnsupportedType(fd.GetType().String(), v)
}

// scalar converts v for one element of fd.
func (c converter) scalar(fd *desc.FieldDescriptor, v any) (any, error) {
	ex := c.resolver.Resolve(v)
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		if ex.FitsInInt(v) {
			return ex.AsInt(v)
		}

	case descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		if ex.FitsInLong(v) {
			return ex.AsLong(v)
		}

	case descriptorpb.FieldDescriptorProto_TYPE_UINT32,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		if ex.FitsInLong(v) {
			if n, err := ex.AsLong(v); err == nil && n >= 0 && n <= math.MaxUint32 {
				return uint32(n), nil
			}
		}

	case descriptorpb.FieldDescriptorProto_TYPE_UINT64,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		if u, ok := v.(uint64); ok {
			return u, nil
		}
		if ex.FitsInLong(v) {
			if n, err := ex.AsLong(v); err == nil && n >= 0 {
				return uint64(n), nil
			}
		}

	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		if ex.FitsInFloat(v) {
			return ex.AsFloat(v)
		}

	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		if ex.FitsInDouble(v) {
			return ex.AsDouble(v)
		}

	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		if ex.IsBoolean(v) {
			return ex.AsBoolean(v)
		}

	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		if ex.IsString(v) {
			return ex.AsString(v)
		}

	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		if ex.HasBufferElements(v) {
			return readBuffer(v, ex)
		}

	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		if ex.IsString(v) {
			name, err := ex.AsString(v)
			if err != nil {
				return nil, err
			}
			if ev := fd.GetEnumType().FindValueByName(name); ev != nil {
				return ev.GetNumber(), nil
			}
			return nil, mismatch(fd, v)
		}
		if ex.FitsInInt(v) {
			return ex.AsInt(v)
		}

	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		if msg, ok := v.(*Message); ok &&
			msg.Descriptor().GetFullyQualifiedName() == fd.GetMessageType().GetFullyQualifiedName() {
			return msg.m, nil
		}
	}
	return nil, mismatch(fd, v)
}

func readBuffer(v any, ex *interop.Exports) ([]byte, error) {
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

// repeated converts a value with array elements for a repeated field.
func (c converter) repeated(fd *desc.FieldDescriptor, v any) ([]any, error) {
	ex := c.resolver.Resolve(v)
	if !ex.HasArrayElements(v) {
		return nil, mismatch(fd, v)
	}
	size, err := ex.GetArraySize(v)
	if err != nil {
		return nil, err
	}
	out := make([]any, size)
	for i := range size {
		elem, err := ex.ReadArrayElement(v, i)
		if err != nil {
			return nil, err
		}
		if out[i], err = c.scalar(fd, elem); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// mapped converts a value with hash entries for a map field.
func (c converter) mapped(fd *desc.FieldDescriptor, v any) (map[any]any, error) {
	ex := c.resolver.Resolve(v)
	if !ex.HasHashEntries(v) {
		return nil, mismatch(fd, v)
	}
	it, err := ex.GetHashEntriesIterator(v)
	if err != nil {
		return nil, err
	}
	itEx := c.resolver.Resolve(it)
	out := make(map[any]any)
	for {
		more, err := itEx.HasIteratorNextElement(it)
		if err != nil {
			return nil, err
		}
		if !more {
			return out, nil
		}
		entry, err := itEx.GetIteratorNextElement(it)
		if interop.KindOf(err) == interop.KindStopIteration {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		entryEx := c.resolver.Resolve(entry)
		k, err := entryEx.ReadArrayElement(entry, 0)
		if err != nil {
			return nil, err
		}
		val, err := entryEx.ReadArrayElement(entry, 1)
		if err != nil {
			return nil, err
		}
		key, err := c.scalar(fd.GetMapKeyType(), k)
		if err != nil {
			return nil, err
		}
		if out[key], err = c.scalar(fd.GetMapValueType(), val); err != nil {
			return nil, err
		}
	}
}

// assign stores v into field fd of m. Null clears the field.
func (c converter) assign(m *dynamic.Message, fd *desc.FieldDescriptor, v any) error {
	if c.resolver.Resolve(v).IsNull(v) {
		m.ClearField(fd)
		return nil
	}
	var (
		stored any
		err    error
	)
	switch {
	case fd.IsMap():
		stored, err = c.mapped(fd, v)
	case fd.IsRepeated():
		stored, err = c.repeated(fd, v)
	default:
		stored, err = c.scalar(fd, v)
	}
	if err != nil {
		return err
	}
	return m.TrySetField(fd, stored)
}
