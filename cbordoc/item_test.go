package cbordoc

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
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

func parse(t *testing.T, v any) *Item {
	t.Helper()
	data, err := encMode.Marshal(v)
	require.NoError(t, err)
	it, err := Parse(data)
	require.NoError(t, err)
	return it
}

func TestParseScalars(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name  string
		value any
		kind  Kind
	}{
		{"unsigned", uint64(42), KindUnsigned},
		{"negative", -5, KindNegative},
		{"text", "hi", KindText},
		{"bytes", []byte{1, 2}, KindBytes},
		{"bool", true, KindBool},
		{"null", nil, KindNull},
		{"float", 1.5, KindFloat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := parse(t, tt.value)
			assert.Equal(t, tt.kind, it.Kind())
			assert.Equal(t, tt.kind, interop.ShapeOf(it))
		})
	}

	n := parse(t, -5)
	ex := r.Resolve(n)
	require.True(t, ex.IsNumber(n))
	assert.True(t, ex.FitsInByte(n))
	v, err := ex.AsInt(n)
	require.NoError(t, err)
	assert.Equal(t, int32(-5), v)

	s := parse(t, "hi")
	str, err := r.Resolve(s).AsString(s)
	require.NoError(t, err)
	assert.Equal(t, "hi", str)

	b := parse(t, true)
	ok, err := r.Resolve(b).AsBoolean(b)
	require.NoError(t, err)
	assert.True(t, ok)

	null := parse(t, nil)
	assert.True(t, r.Resolve(null).IsNull(null))

	f := parse(t, 1.5)
	fex := r.Resolve(f)
	assert.False(t, fex.FitsInLong(f))
	d, err := fex.AsDouble(f)
	require.NoError(t, err)
	assert.Equal(t, 1.5, d)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)

	// truncated head
	_, err = Parse([]byte{0x18})
	assert.Error(t, err)

	data, err := encMode.Marshal(1)
	require.NoError(t, err)
	_, err = Parse(append(data, 0x00))
	assert.Error(t, err, "trailing data is rejected")
}

func TestNestedItemsDecodeLazily(t *testing.T) {
	r := newTestResolver()

	// [{1: 1, 1: 2}]: the duplicate key only matters once the map is reached
	it, err := Parse([]byte{0x81, 0xa2, 0x01, 0x01, 0x01, 0x02})
	require.NoError(t, err)

	ex := r.Resolve(it)
	size, err := ex.GetArraySize(it)
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	elem, err := ex.ReadArrayElement(it, 0)
	require.NoError(t, err)
	m := elem.(*Item)
	assert.Equal(t, KindMap, m.Kind())

	mex := r.Resolve(m)
	assert.False(t, mex.HasHashEntries(m))
	_, err = mex.GetHashSize(m)
	assert.Error(t, err)
}

func TestArrays(t *testing.T) {
	r := newTestResolver()
	it := parse(t, []any{1, "two", []any{3}})
	ex := r.Resolve(it)

	require.True(t, ex.HasArrayElements(it))
	size, err := ex.GetArraySize(it)
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)

	first, err := ex.ReadArrayElement(it, 0)
	require.NoError(t, err)
	again, err := ex.ReadArrayElement(it, 0)
	require.NoError(t, err)
	assert.True(t, r.Resolve(first).IsIdentical(first, again, nil), "elements are decoded once")

	second, err := ex.ReadArrayElement(it, 1)
	require.NoError(t, err)
	s, err := r.Resolve(second).AsString(second)
	require.NoError(t, err)
	assert.Equal(t, "two", s)

	_, err = ex.ReadArrayElement(it, 3)
	assert.Equal(t, interop.KindInvalidArrayIndex, interop.KindOf(err))
	assert.False(t, ex.IsArrayElementModifiable(it, 0))
	assert.Equal(t, interop.KindUnsupported, interop.KindOf(ex.WriteArrayElement(it, 0, 9)))
	assert.Equal(t, interop.KindUnsupported, interop.KindOf(ex.RemoveArrayElement(it, 0)))

	require.True(t, ex.HasIterator(it))
	iter, err := ex.GetIterator(it)
	require.NoError(t, err)
	iex := r.Resolve(iter)
	var count int
	for {
		more, err := iex.HasIteratorNextElement(iter)
		require.NoError(t, err)
		if !more {
			break
		}
		_, err = iex.GetIteratorNextElement(iter)
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 3, count)
}

func TestMaps(t *testing.T) {
	r := newTestResolver()
	it := parse(t, map[any]any{"name": "ada", uint64(1): true, -2: nil})
	ex := r.Resolve(it)

	size, err := ex.GetHashSize(it)
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)

	for _, key := range []any{"name", vm.NewString("name")} {
		v, err := ex.ReadHashValue(it, key)
		require.NoError(t, err)
		s, err := r.Resolve(v).AsString(v)
		require.NoError(t, err)
		assert.Equal(t, "ada", s)
	}

	v, err := ex.ReadHashValue(it, int64(1))
	require.NoError(t, err)
	b, err := r.Resolve(v).AsBoolean(v)
	require.NoError(t, err)
	assert.True(t, b)

	v, err = ex.ReadHashValue(it, vm.NewInteger(-2))
	require.NoError(t, err)
	assert.True(t, r.Resolve(v).IsNull(v))

	_, err = ex.ReadHashValue(it, "missing")
	var unknown *interop.UnknownKeyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Key)

	assert.False(t, ex.IsHashEntryReadable(it, []int{1}))
	assert.False(t, ex.IsHashEntryInsertable(it, "new"))
	assert.Equal(t, interop.KindUnsupported, interop.KindOf(ex.WriteHashEntry(it, "name", "bob")))
	assert.Equal(t, interop.KindUnsupported, interop.KindOf(ex.RemoveHashEntry(it, "name")))

	keys, err := ex.GetHashKeysIterator(it)
	require.NoError(t, err)
	kex := r.Resolve(keys)
	var got []any
	for {
		more, _ := kex.HasIteratorNextElement(keys)
		if !more {
			break
		}
		k, err := kex.GetIteratorNextElement(keys)
		require.NoError(t, err)
		got = append(got, k)
	}
	// canonical order: shorter encodings first
	assert.Equal(t, []any{uint64(1), int64(-2), "name"}, got)
}

func TestBuffers(t *testing.T) {
	r := newTestResolver()
	it := parse(t, []byte{0x01, 0x02, 0x03, 0x04})
	ex := r.Resolve(it)

	require.True(t, ex.HasBufferElements(it))
	writable, err := ex.IsBufferWritable(it)
	require.NoError(t, err)
	assert.False(t, writable)

	v, err := ex.ReadBufferInt(it, binary.BigEndian, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(0x01020304), v)

	assert.Equal(t, interop.KindUnsupported, interop.KindOf(ex.WriteBufferByte(it, 0, 9)))
	_, err = ex.ReadBufferShort(it, binary.LittleEndian, 3)
	assert.Equal(t, interop.KindInvalidBufferOffset, interop.KindOf(err))
}

func TestBignums(t *testing.T) {
	r := newTestResolver()

	// 2^64
	pos := parse(t, cbor.Tag{Number: 2, Content: []byte{1, 0, 0, 0, 0, 0, 0, 0, 0}})
	assert.Equal(t, KindBignum, pos.Kind())
	ex := r.Resolve(pos)
	require.True(t, ex.IsNumber(pos))
	assert.False(t, ex.FitsInLong(pos))
	v, err := pos.Value()
	require.NoError(t, err)
	want := new(big.Int).Lsh(big.NewInt(1), 64)
	assert.Zero(t, want.Cmp(v.(*big.Int)))

	tag, err := ex.ReadMember(pos, "tag")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), tag)

	// -1 - 255
	neg := parse(t, cbor.Tag{Number: 3, Content: []byte{0xff}})
	nex := r.Resolve(neg)
	require.True(t, nex.FitsInLong(neg))
	n, err := nex.AsLong(neg)
	require.NoError(t, err)
	assert.Equal(t, int64(-256), n)
}

func TestTags(t *testing.T) {
	r := newTestResolver()
	it := parse(t, cbor.Tag{Number: 1, Content: uint64(1700000000)})
	assert.Equal(t, KindTag, it.Kind())

	ex := r.Resolve(it)
	members, err := ex.GetMembers(it, false)
	require.NoError(t, err)
	assert.Equal(t, interop.MemberNames{"content", "tag"}, members)

	content, err := ex.ReadMember(it, "content")
	require.NoError(t, err)
	secs, err := r.Resolve(content).AsLong(content)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), secs)

	assert.Equal(t, interop.KindUnsupported, interop.KindOf(ex.WriteMember(it, "tag", 2)))
	_, err = ex.ReadMember(it, "other")
	assert.Equal(t, interop.KindUnknownIdentifier, interop.KindOf(err))
	assert.Equal(t, "1(unsigned)", ex.ToDisplayString(it, false))
}

func TestKindMetaobjects(t *testing.T) {
	r := newTestResolver()
	it := parse(t, "hi")
	ex := r.Resolve(it)

	require.True(t, ex.HasMetaObject(it))
	meta, err := ex.GetMetaObject(it)
	require.NoError(t, err)
	assert.Equal(t, KindText, meta)

	mex := r.Resolve(meta)
	require.True(t, mex.IsMetaObject(meta))
	name, err := mex.GetMetaQualifiedName(meta)
	require.NoError(t, err)
	assert.Equal(t, "cbor::text", name)
	simple, err := mex.GetMetaSimpleName(meta)
	require.NoError(t, err)
	assert.Equal(t, "text", simple)

	ok, err := mex.IsMetaInstance(meta, it)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = mex.IsMetaInstance(meta, parse(t, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDisplay(t *testing.T) {
	r := newTestResolver()
	tests := []struct {
		value any
		want  string
	}{
		{"hi", `"hi"`},
		{[]byte{1, 2}, "h'0102'"},
		{nil, "null"},
		{uint64(7), "7"},
		{[]any{1, 2, 3}, "array(3)"},
		{map[string]int{"a": 1}, "map(1)"},
	}
	for _, tt := range tests {
		it := parse(t, tt.value)
		assert.Equal(t, tt.want, r.Resolve(it).ToDisplayString(it, false))
	}
}
