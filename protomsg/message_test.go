package protomsg

import (
	"testing"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/polyglot/interop"
	"github.com/chazu/polyglot/vm"
)

func newTestResolver() *interop.Resolver {
	r := interop.NewResolver()
	r.Register(vm.NewExporter(r))
	r.Register(NewExporter(r))
	return r
}

// shapeTypes builds geo.Point and geo.Shape.
func shapeTypes(t *testing.T) (point, shape *desc.MessageDescriptor) {
	t.Helper()
	color := builder.NewEnum("Color").
		AddValue(builder.NewEnumValue("RED").SetNumber(0)).
		AddValue(builder.NewEnumValue("GREEN").SetNumber(1))
	pt := builder.NewMessage("Point").
		AddField(builder.NewField("x", builder.FieldTypeInt32()).SetNumber(1)).
		AddField(builder.NewField("y", builder.FieldTypeInt32()).SetNumber(2))
	sh := builder.NewMessage("Shape").
		AddField(builder.NewField("name", builder.FieldTypeString()).SetNumber(1)).
		AddField(builder.NewField("origin", builder.FieldTypeMessage(pt)).SetNumber(2)).
		AddField(builder.NewField("tags", builder.FieldTypeString()).SetNumber(3).SetRepeated()).
		AddField(builder.NewMapField("counts", builder.FieldTypeString(), builder.FieldTypeInt64()).SetNumber(4)).
		AddField(builder.NewField("color", builder.FieldTypeEnum(color)).SetNumber(5)).
		AddField(builder.NewField("blob", builder.FieldTypeBytes()).SetNumber(6)).
		AddField(builder.NewField("size", builder.FieldTypeUInt32()).SetNumber(7))
	fd, err := builder.NewFile("geo/shape.proto").
		SetPackageName("geo").
		SetProto3(true).
		AddEnum(color).
		AddMessage(pt).
		AddMessage(sh).
		Build()
	require.NoError(t, err)
	return fd.FindMessage("geo.Point"), fd.FindMessage("geo.Shape")
}

func kindOf(t *testing.T, want interop.Kind, err error) {
	t.Helper()
	assert.Equal(t, want, interop.KindOf(err), "error %v", err)
}

func TestMembers(t *testing.T) {
	r := newTestResolver()
	pointType, shapeType := shapeTypes(t)
	s := New(shapeType)
	ex := r.Resolve(s)

	require.True(t, ex.HasMembers(s))
	members, err := ex.GetMembers(s, false)
	require.NoError(t, err)
	assert.Equal(t, interop.MemberNames{"name", "origin", "tags", "counts", "color", "blob", "size"}, members)

	require.NoError(t, ex.WriteMember(s, "name", vm.NewString("square")))
	name, err := ex.ReadMember(s, "name")
	require.NoError(t, err)
	assert.Equal(t, "square", name)

	origin, err := ex.ReadMember(s, "origin")
	require.NoError(t, err)
	assert.Nil(t, origin, "unset message fields read as null")
	assert.False(t, ex.IsMemberRemovable(s, "origin"))

	p := New(pointType)
	pex := r.Resolve(p)
	require.NoError(t, pex.WriteMember(p, "x", vm.NewInteger(3)))
	require.NoError(t, ex.WriteMember(s, "origin", p))
	origin, err = ex.ReadMember(s, "origin")
	require.NoError(t, err)
	assert.True(t, r.Resolve(origin).IsIdentical(origin, p, nil))
	x, err := pex.ReadMember(origin, "x")
	require.NoError(t, err)
	assert.Equal(t, int32(3), x)

	kindOf(t, interop.KindUnsupportedType, ex.WriteMember(s, "origin", s))
	kindOf(t, interop.KindUnsupportedType, ex.WriteMember(s, "name", 7))
	kindOf(t, interop.KindUnknownIdentifier, ex.WriteMember(s, "radius", 1))
	_, err = ex.ReadMember(s, "radius")
	kindOf(t, interop.KindUnknownIdentifier, err)
	_, err = ex.InvokeMember(s, "name")
	kindOf(t, interop.KindUnsupported, err)

	require.True(t, ex.IsMemberRemovable(s, "origin"))
	require.NoError(t, ex.RemoveMember(s, "origin"))
	assert.False(t, s.Dynamic().HasField(shapeType.FindFieldByName("origin")))
	kindOf(t, interop.KindUnsupported, ex.RemoveMember(s, "origin"))

	require.NoError(t, ex.WriteMember(s, "name", nil))
	name, err = ex.ReadMember(s, "name")
	require.NoError(t, err)
	assert.Equal(t, "", name, "writing null clears a field")
}

func TestScalarConversions(t *testing.T) {
	r := newTestResolver()
	_, shapeType := shapeTypes(t)
	s := New(shapeType)
	ex := r.Resolve(s)

	require.NoError(t, ex.WriteMember(s, "size", vm.NewLong(5)))
	size, err := ex.ReadMember(s, "size")
	require.NoError(t, err)
	assert.Equal(t, uint32(5), size)
	kindOf(t, interop.KindUnsupportedType, ex.WriteMember(s, "size", -1))
	kindOf(t, interop.KindUnsupportedType, ex.WriteMember(s, "size", int64(1)<<40))

	color, err := ex.ReadMember(s, "color")
	require.NoError(t, err)
	assert.Equal(t, "RED", color)
	require.NoError(t, ex.WriteMember(s, "color", "GREEN"))
	color, err = ex.ReadMember(s, "color")
	require.NoError(t, err)
	assert.Equal(t, "GREEN", color)
	require.NoError(t, ex.WriteMember(s, "color", int32(0)))
	color, err = ex.ReadMember(s, "color")
	require.NoError(t, err)
	assert.Equal(t, "RED", color)
	kindOf(t, interop.KindUnsupportedType, ex.WriteMember(s, "color", "BLUE"))
}

func TestBytesFields(t *testing.T) {
	r := newTestResolver()
	_, shapeType := shapeTypes(t)
	s := New(shapeType)
	ex := r.Resolve(s)

	require.NoError(t, ex.WriteMember(s, "blob", vm.NewByteArray([]byte{0xca, 0xfe})))
	blob, err := ex.ReadMember(s, "blob")
	require.NoError(t, err)

	bex := r.Resolve(blob)
	require.True(t, bex.HasBufferElements(blob))
	n, err := bex.GetBufferSize(blob)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	b, err := bex.ReadBufferByte(blob, 1)
	require.NoError(t, err)
	assert.Equal(t, int8(-2), b)

	writable, err := bex.IsBufferWritable(blob)
	require.NoError(t, err)
	assert.False(t, writable)
	kindOf(t, interop.KindUnsupported, bex.WriteBufferByte(blob, 0, 1))

	// a bytes value can be copied into another message
	other := New(shapeType)
	require.NoError(t, ex.WriteMember(other, "blob", blob))
	assert.Equal(t, []byte{0xca, 0xfe}, other.Dynamic().GetFieldByName("blob"))
}

func TestRepeatedFields(t *testing.T) {
	r := newTestResolver()
	_, shapeType := shapeTypes(t)
	s := New(shapeType)
	ex := r.Resolve(s)

	require.NoError(t, ex.WriteMember(s, "tags", vm.NewArray(vm.NewString("a"), vm.NewString("b"))))
	tags, err := ex.ReadMember(s, "tags")
	require.NoError(t, err)
	tex := r.Resolve(tags)

	require.True(t, tex.HasArrayElements(tags))
	size, err := tex.GetArraySize(tags)
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)

	assert.True(t, tex.IsArrayElementInsertable(tags, 2))
	assert.False(t, tex.IsArrayElementInsertable(tags, 3))
	require.NoError(t, tex.WriteArrayElement(tags, 2, "c"))
	require.NoError(t, tex.WriteArrayElement(tags, 0, vm.NewString("z")))
	require.NoError(t, tex.RemoveArrayElement(tags, 1))
	assert.Equal(t, []any{"z", "c"}, s.Dynamic().GetFieldByName("tags"))

	_, err = tex.ReadArrayElement(tags, 2)
	kindOf(t, interop.KindInvalidArrayIndex, err)
	kindOf(t, interop.KindInvalidArrayIndex, tex.WriteArrayElement(tags, 5, "x"))
	kindOf(t, interop.KindUnsupportedType, tex.WriteArrayElement(tags, 0, 1))

	require.NoError(t, tex.RemoveArrayElement(tags, 0))
	require.NoError(t, tex.RemoveArrayElement(tags, 0))
	assert.False(t, s.Dynamic().HasField(shapeType.FindFieldByName("tags")))

	kindOf(t, interop.KindUnsupportedType, ex.WriteMember(s, "tags", "not a list"))
}

func TestMapFields(t *testing.T) {
	r := newTestResolver()
	_, shapeType := shapeTypes(t)
	s := New(shapeType)
	ex := r.Resolve(s)

	h := vm.NewHashMap()
	h.HashPut(vm.NewString("b"), vm.NewInteger(2))
	h.HashPut(vm.NewString("a"), vm.NewInteger(1))
	require.NoError(t, ex.WriteMember(s, "counts", h))

	counts, err := ex.ReadMember(s, "counts")
	require.NoError(t, err)
	cex := r.Resolve(counts)

	require.True(t, cex.HasHashEntries(counts))
	size, err := cex.GetHashSize(counts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)

	v, err := cex.ReadHashValue(counts, vm.NewString("a"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	assert.True(t, cex.IsHashEntryInsertable(counts, "c"))
	assert.False(t, cex.IsHashEntryInsertable(counts, 3), "keys must convert to the key type")
	require.NoError(t, cex.WriteHashEntry(counts, "c", 3))
	require.NoError(t, cex.RemoveHashEntry(counts, "b"))

	_, err = cex.ReadHashValue(counts, "b")
	var unknown *interop.UnknownKeyError
	require.ErrorAs(t, err, &unknown)
	kindOf(t, interop.KindUnknownKey, cex.RemoveHashEntry(counts, "b"))
	kindOf(t, interop.KindUnsupportedType, cex.WriteHashEntry(counts, "d", "four"))

	keys, err := cex.GetHashKeysIterator(counts)
	require.NoError(t, err)
	kex := r.Resolve(keys)
	var got []any
	for {
		more, err := kex.HasIteratorNextElement(keys)
		require.NoError(t, err)
		if !more {
			break
		}
		k, err := kex.GetIteratorNextElement(keys)
		require.NoError(t, err)
		got = append(got, k)
	}
	assert.Equal(t, []any{"a", "c"}, got)
}

func TestDescriptors(t *testing.T) {
	r := newTestResolver()
	pointType, shapeType := shapeTypes(t)
	s := New(shapeType)
	ex := r.Resolve(s)

	require.True(t, ex.HasMetaObject(s))
	meta, err := ex.GetMetaObject(s)
	require.NoError(t, err)
	assert.Same(t, shapeType, meta)

	mex := r.Resolve(meta)
	require.True(t, mex.IsMetaObject(meta))
	name, err := mex.GetMetaQualifiedName(meta)
	require.NoError(t, err)
	assert.Equal(t, "geo.Shape", name)
	simple, err := mex.GetMetaSimpleName(meta)
	require.NoError(t, err)
	assert.Equal(t, "Shape", simple)

	ok, err := mex.IsMetaInstance(meta, s)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = mex.IsMetaInstance(meta, New(pointType))
	require.NoError(t, err)
	assert.False(t, ok)

	require.True(t, mex.IsInstantiable(meta))
	fresh, err := mex.Instantiate(meta)
	require.NoError(t, err)
	assert.Equal(t, "geo.Shape", fresh.(*Message).Descriptor().GetFullyQualifiedName())
	_, err = mex.Instantiate(meta, 1)
	kindOf(t, interop.KindArity, err)

	assert.Equal(t, "geo.Shape", mex.ToDisplayString(meta, false))
}

func TestMarshalRoundTrip(t *testing.T) {
	r := newTestResolver()
	_, shapeType := shapeTypes(t)
	s := New(shapeType)
	ex := r.Resolve(s)
	require.NoError(t, ex.WriteMember(s, "name", "hex"))
	require.NoError(t, ex.WriteMember(s, "tags", vm.NewArray(vm.NewString("six"))))

	data, err := s.Marshal()
	require.NoError(t, err)
	back, err := Unmarshal(shapeType, data)
	require.NoError(t, err)

	bex := r.Resolve(back)
	assert.Equal(t, ex.Shape(), bex.Shape(), "messages of one type share a table")
	name, err := bex.ReadMember(back, "name")
	require.NoError(t, err)
	assert.Equal(t, "hex", name)
	assert.False(t, bex.IsIdentical(back, s, nil))

	display := bex.ToDisplayString(back, false)
	assert.Contains(t, display, "geo.Shape{")
	assert.Contains(t, display, `"hex"`)

	_, err = Unmarshal(shapeType, []byte{0xff})
	assert.Error(t, err)
}
