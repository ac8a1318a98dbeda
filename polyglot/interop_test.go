package polyglot

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/chazu/polyglot/interop"
	"github.com/chazu/polyglot/manifest"
	"github.com/chazu/polyglot/vm"
)

// raised returns the guest exception carried by err.
func raised(t *testing.T, err error) *vm.Object {
	t.Helper()
	var ge *vm.GuestError
	if !errors.As(err, &ge) {
		t.Fatalf("error %v (%T) is not a guest error", err, err)
	}
	return ge.Exception
}

func expectRaised(t *testing.T, err error, c *vm.Class) *vm.Object {
	t.Helper()
	exc := raised(t, err)
	if exc.Class() != c {
		t.Fatalf("raised %s, want %s", exc.Class().FullName(), c.FullName())
	}
	return exc
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNullStability(t *testing.T) {
	p := New()
	values := []*vm.Object{vm.Null, vm.NewInteger(0), vm.NewString(""), vm.Wrap(nil), vm.Wrap(0)}
	want := []bool{true, false, false, true, false}
	for i, v := range values {
		for range 3 {
			if got := p.IsNull(v); got != want[i] {
				t.Errorf("IsNull(%v) = %v, want %v", v, got, want[i])
			}
		}
	}
	if wrap((*vm.Object)(nil)) != vm.Null {
		t.Error("wrapping a nil guest object should give Null")
	}
	if w := wrap(nil); w == vm.Null || !w.IsForeign() || !p.IsNull(w) {
		t.Errorf("wrap(nil) = %v, want a foreign box that is null to the protocol", w)
	}
}

func TestFitsPerWidth(t *testing.T) {
	p := New()

	tests := []struct {
		name  string
		value *vm.Object
		fits  [6]bool // byte short int long float double
	}{
		{"small", vm.NewInteger(42), [6]bool{true, true, true, true, true, true}},
		{"short", vm.NewInteger(300), [6]bool{false, true, true, true, true, true}},
		{"2^53+1", vm.NewLong(1<<53 + 1), [6]bool{false, false, false, true, false, false}},
		{"2^24+1", vm.NewInteger(1<<24 + 1), [6]bool{false, false, true, true, false, true}},
		{"half", vm.NewDouble(0.5), [6]bool{false, false, false, false, true, true}},
		{"NaN", vm.NewDouble(math.NaN()), [6]bool{false, false, false, false, true, true}},
		{"foreign uint8", vm.Wrap(uint8(200)), [6]bool{false, true, true, true, true, true}},
	}

	for _, tt := range tests {
		got := [6]bool{
			p.FitsInByte(tt.value), p.FitsInShort(tt.value), p.FitsInInt(tt.value),
			p.FitsInLong(tt.value), p.FitsInFloat(tt.value), p.FitsInDouble(tt.value),
		}
		if got != tt.fits {
			t.Errorf("%s: fits = %v, want %v", tt.name, got, tt.fits)
		}
	}

	// Each fitsIn agrees with its conversion.
	v := vm.NewInteger(300)
	if _, err := p.AsByte(v); err == nil {
		t.Error("AsByte(300) should fail")
	} else {
		expectRaised(t, err, vm.UnsupportedMessageExceptionClass)
	}
	if s, err := p.AsShort(v); err != nil || s != 300 {
		t.Errorf("AsShort(300) = %d, %v", s, err)
	}
}

func TestIdentity(t *testing.T) {
	p := New()
	a := vm.NewString("a")
	b := vm.NewString("a")
	box := vm.Wrap(a)

	if !p.IsIdentical(a, a) {
		t.Error("a object is identical to itself")
	}
	if p.IsIdentical(a, b) || p.IsIdentical(b, a) {
		t.Error("distinct objects are not identical")
	}
	if box != a {
		t.Error("wrapping a guest object returns it unchanged")
	}
	if !p.IsIdentical(vm.Null, vm.Null) {
		t.Error("Null is identical to itself")
	}

	// symmetry with an undecided foreign operand
	foreign := vm.Wrap(&sequence{})
	if p.IsIdentical(a, foreign) != p.IsIdentical(foreign, a) {
		t.Error("identity is not symmetric")
	}

	ha, err := p.IdentityHashCode(a)
	if err != nil {
		t.Fatal(err)
	}
	again, _ := p.IdentityHashCode(a)
	if ha != again {
		t.Error("identity hash is not stable")
	}
}

func TestArrayWriteRead(t *testing.T) {
	p := New()
	arr := vm.NewArray(vm.NewInteger(1), vm.NewInteger(2))

	if err := p.WriteArrayElement(arr, 1, vm.NewString("two")); err != nil {
		t.Fatal(err)
	}
	v, err := p.ReadArrayElement(arr, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := p.AsString(v); s != "two" {
		t.Errorf("element 1 = %v, want two", v)
	}

	_, err = p.ReadArrayElement(arr, 2)
	exc := expectRaised(t, err, vm.InvalidArrayIndexExceptionClass)
	if idx := exc.Slot("invalidIndex").Value().(int64); idx != 2 {
		t.Errorf("invalidIndex = %d, want 2", idx)
	}

	err = p.RemoveArrayElement(arr, 0)
	expectRaised(t, err, vm.UnsupportedMessageExceptionClass)
}

func TestForeignSequence(t *testing.T) {
	p := newTestInterop()
	seq := vm.Wrap(&sequence{items: []int64{1, 2, 42, 4}})

	if !p.HasArrayElements(seq) {
		t.Fatal("sequence should have array elements")
	}
	if size, err := p.GetArraySize(seq); err != nil || size != 4 {
		t.Errorf("GetArraySize = %d, %v; want 4", size, err)
	}
	elem, err := p.ReadArrayElement(seq, 2)
	if err != nil {
		t.Fatal(err)
	}
	if v, err := p.AsInt(elem); err != nil || v != 42 {
		t.Errorf("element 2 = %d, %v; want 42", v, err)
	}
	if p.IsArrayElementReadable(seq, 5) {
		t.Error("index 5 should not be readable")
	}

	_, err = p.ReadArrayElement(seq, 5)
	exc := expectRaised(t, err, vm.InvalidArrayIndexExceptionClass)
	if idx := exc.Slot("invalidIndex").Value().(int64); idx != 5 {
		t.Errorf("invalidIndex = %d, want 5", idx)
	}

	// writes arrive unwrapped and are converted by the collaborator
	if err := p.WriteArrayElement(seq, 4, vm.NewInteger(5)); err != nil {
		t.Fatal(err)
	}
	if size, _ := p.GetArraySize(seq); size != 5 {
		t.Errorf("size after insert = %d, want 5", size)
	}
	err = p.WriteArrayElement(seq, 0, vm.NewString("x"))
	exc = expectRaised(t, err, vm.UnsupportedTypeExceptionClass)
	if n, _ := p.GetArraySize(exc.Slot("suppliedValues")); n != 1 {
		t.Errorf("suppliedValues size = %d, want 1", n)
	}

	// iteration goes through the array messages
	if !p.HasIterator(seq) {
		t.Fatal("arrays are iterable")
	}
	it, err := p.GetIterator(seq)
	if err != nil {
		t.Fatal(err)
	}
	first, err := p.GetIteratorNextElement(it)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := p.AsLong(first); v != 1 {
		t.Errorf("first element = %d, want 1", v)
	}
}

func TestBufferEndianness(t *testing.T) {
	p := New()
	buf := vm.NewByteArray(make([]byte, 8))

	if err := p.WriteBufferInt(buf, vm.LittleEndian, 0, 0x01020304); err != nil {
		t.Fatal(err)
	}
	le, err := p.ReadBufferInt(buf, vm.LittleEndian, 0)
	if err != nil || le != 0x01020304 {
		t.Errorf("little-endian read = %#x, %v", le, err)
	}
	be, err := p.ReadBufferInt(buf, vm.BigEndian, 0)
	if err != nil || be != 0x04030201 {
		t.Errorf("big-endian read = %#x, %v", be, err)
	}

	if err := p.WriteBufferInt(buf, vm.BigEndian, 4, 0x01020304); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.ReadBufferInt(buf, vm.BigEndian, 4); v != 0x01020304 {
		t.Errorf("big-endian round trip = %#x", v)
	}
	if v, _ := p.ReadBufferInt(buf, vm.LittleEndian, 4); v != 0x04030201 {
		t.Errorf("little-endian read of big-endian write = %#x", v)
	}

	if err := p.WriteBufferDouble(buf, vm.LittleEndian, 0, math.Pi); err != nil {
		t.Fatal(err)
	}
	if v, _ := p.ReadBufferDouble(buf, vm.LittleEndian, 0); v != math.Pi {
		t.Errorf("double round trip = %v", v)
	}
}

func TestBufferOffsets(t *testing.T) {
	p := New()
	buf := vm.NewByteArray(make([]byte, 4))

	size, err := p.GetBufferSize(buf)
	if err != nil || size != 4 {
		t.Fatalf("GetBufferSize = %d, %v", size, err)
	}

	_, err = p.ReadBufferByte(buf, size)
	exc := expectRaised(t, err, vm.InvalidBufferOffsetExceptionClass)
	if off := exc.Slot("byteOffset").Value().(int64); off != 4 {
		t.Errorf("byteOffset = %d, want 4", off)
	}
	if n := exc.Slot("length").Value().(int64); n != 1 {
		t.Errorf("length = %d, want 1", n)
	}

	_, err = p.ReadBufferInt(buf, vm.BigEndian, 1)
	expectRaised(t, err, vm.InvalidBufferOffsetExceptionClass)
	_, err = p.ReadBufferShort(buf, vm.BigEndian, -1)
	expectRaised(t, err, vm.InvalidBufferOffsetExceptionClass)
}

func TestReadOnlyBuffer(t *testing.T) {
	p := newTestInterop()
	buf := vm.Wrap(frozen{1, 2, 3})

	writable, err := p.IsBufferWritable(buf)
	if err != nil || writable {
		t.Errorf("IsBufferWritable = %v, %v; want false", writable, err)
	}
	if v, err := p.ReadBufferByte(buf, 2); err != nil || v != 3 {
		t.Errorf("ReadBufferByte = %d, %v", v, err)
	}
	err = p.WriteBufferByte(buf, 0, 9)
	expectRaised(t, err, vm.UnsupportedMessageExceptionClass)

	_, err = p.IsBufferWritable(vm.NewString("x"))
	expectRaised(t, err, vm.UnsupportedMessageExceptionClass)
}

func TestEmptyIterator(t *testing.T) {
	p := New()
	it, err := p.GetIterator(vm.NewArray())
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsIterator(it) {
		t.Fatal("GetIterator should return an iterator")
	}
	more, err := p.HasIteratorNextElement(it)
	if err != nil || more {
		t.Errorf("HasIteratorNextElement = %v, %v; want false", more, err)
	}
	_, err = p.GetIteratorNextElement(it)
	expectRaised(t, err, vm.StopIterationExceptionClass)
}

func TestIterateArray(t *testing.T) {
	p := New()
	it, err := p.GetIterator(vm.NewArray(vm.NewInteger(1), vm.NewInteger(2)))
	if err != nil {
		t.Fatal(err)
	}
	var sum int32
	for {
		more, err := p.HasIteratorNextElement(it)
		if err != nil {
			t.Fatal(err)
		}
		if !more {
			break
		}
		v, err := p.GetIteratorNextElement(it)
		if err != nil {
			t.Fatal(err)
		}
		n, _ := p.AsInt(v)
		sum += n
	}
	if sum != 3 {
		t.Errorf("sum = %d, want 3", sum)
	}
}

func TestHashEntries(t *testing.T) {
	p := New()
	h := vm.NewHashMap()
	key := vm.NewString("answer")

	if p.IsHashEntryExisting(h, key) {
		t.Error("entry should not exist yet")
	}
	if !p.IsHashEntryInsertable(h, key) {
		t.Error("missing entry should be insertable")
	}
	if err := p.WriteHashEntry(h, key, vm.NewInteger(42)); err != nil {
		t.Fatal(err)
	}
	if !p.IsHashEntryExisting(h, vm.NewString("answer")) {
		t.Error("entry should exist after write")
	}

	v, err := p.ReadHashValue(h, key)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := p.AsInt(v); n != 42 {
		t.Errorf("value = %v, want 42", v)
	}

	def := vm.NewString("default")
	got, err := p.ReadHashValueOrDefault(h, vm.NewString("missing"), def)
	if err != nil {
		t.Fatal(err)
	}
	if got != def {
		t.Errorf("ReadHashValueOrDefault = %v, want the default object", got)
	}

	_, err = p.ReadHashValue(h, vm.NewString("missing"))
	exc := expectRaised(t, err, vm.UnknownKeyExceptionClass)
	if k := exc.Slot("unknownKey"); k.GoString() != "missing" {
		t.Errorf("unknownKey = %v", k)
	}

	if size, _ := p.GetHashSize(h); size != 1 {
		t.Errorf("GetHashSize = %d, want 1", size)
	}
	keys, err := p.GetHashKeysIterator(h)
	if err != nil {
		t.Fatal(err)
	}
	k, err := p.GetIteratorNextElement(keys)
	if err != nil || k.GoString() != "answer" {
		t.Errorf("first key = %v, %v", k, err)
	}
	if err := p.RemoveHashEntry(h, key); err != nil {
		t.Fatal(err)
	}
	if p.HasHashEntries(h) && p.IsHashEntryExisting(h, key) {
		t.Error("entry should be gone after remove")
	}
}

func TestNaNHashKeys(t *testing.T) {
	p := New()
	h := vm.NewHashMap()

	for i := range 2 {
		if err := p.WriteHashEntry(h, vm.NewDouble(math.NaN()), vm.NewInteger(int32(i))); err != nil {
			t.Fatal(err)
		}
	}
	if !p.IsHashEntryExisting(h, vm.NewDouble(math.NaN())) {
		t.Error("a NaN key should exist after a write")
	}
	if p.IsHashEntryInsertable(h, vm.NewDouble(math.NaN())) {
		t.Error("an existing NaN key is not insertable")
	}
	if size, _ := p.GetHashSize(h); size != 1 {
		t.Errorf("GetHashSize = %d after two writes to one key, want 1", size)
	}
}

// Guest and foreign functions call each other through the same Execute
// site while IsNull sees a new shape at every level.
func TestReentrantExecute(t *testing.T) {
	p := newTestInterop(WithCacheLimit(1))
	mixed := []*vm.Object{vm.Null, vm.NewInteger(1), vm.Wrap("x"), vm.Wrap(&sequence{}), vm.NewArray()}

	checkNulls := func() {
		for _, m := range mixed {
			if got := p.IsNull(m); got != (m == vm.Null) {
				t.Errorf("IsNull(%v) = %v during reentrant call", m, got)
			}
		}
	}

	var guest, foreign *vm.Object
	guest = vm.NewFunction(&vm.Function{Name: "descend", MinArity: 1, MaxArity: 1,
		Fn: func(args []*vm.Object) (*vm.Object, error) {
			checkNulls()
			depth, err := p.AsInt(args[0])
			if err != nil {
				return nil, err
			}
			if depth == 0 {
				return vm.NewString("bottom"), nil
			}
			return p.Execute(foreign, vm.NewArray(vm.NewInteger(depth-1)))
		}})
	foreign = vm.Wrap(callback(func(args []any) (any, error) {
		checkNulls()
		return p.Execute(guest, vm.NewArray(args[0].(*vm.Object)))
	}))

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := p.Execute(guest, vm.NewArray(vm.NewInteger(5)))
			if err != nil {
				t.Errorf("Execute: %v", err)
				return
			}
			if s, _ := p.AsString(result); s != "bottom" {
				t.Errorf("result = %v, want bottom", result)
			}
		}()
	}
	wg.Wait()

	if site := p.CallSites()[opIsNull]; site.State() != interop.CacheMegamorphic {
		t.Errorf("IsNull site state = %s, want megamorphic", site.State())
	}
}

func pointClass() *vm.Class {
	point := vm.NewClass("Point", "geo", vm.ObjectClass, "x", "y")
	point.Define(&vm.Function{Name: "sum", Fn: func(args []*vm.Object) (*vm.Object, error) {
		x, y := args[0].Slot("x"), args[0].Slot("y")
		return vm.NewInteger(x.Value().(int32) + y.Value().(int32)), nil
	}})
	return point
}

func TestMembers(t *testing.T) {
	p := New()
	point := pointClass()
	obj, err := p.Instantiate(point.Mirror(), vm.NewArray(vm.NewInteger(3), vm.NewInteger(4)))
	if err != nil {
		t.Fatal(err)
	}

	sum, err := p.InvokeMember(obj, vm.NewString("sum"), vm.NewArray())
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := p.AsInt(sum); n != 7 {
		t.Errorf("sum = %v, want 7", sum)
	}

	_, err = p.InvokeMember(obj, vm.NewString("sum"), vm.NewArray(vm.NewInteger(1)))
	exc := expectRaised(t, err, vm.ArityExceptionClass)
	if got := exc.Slot("actualArity").Value().(int32); got != 1 {
		t.Errorf("actualArity = %d, want 1", got)
	}

	_, err = p.ReadMember(obj, vm.NewString("z"))
	exc = expectRaised(t, err, vm.UnknownIdentifierExceptionClass)
	if name := exc.Slot("unknownIdentifier").GoString(); name != "z" {
		t.Errorf("unknownIdentifier = %q", name)
	}

	expectPanic(t, "non-string member", func() {
		p.ReadMember(obj, vm.NewInteger(1))
	})
}

func TestMetaObjects(t *testing.T) {
	p := New()
	point := pointClass()
	obj := vm.NewInstance(point)

	meta, err := p.GetMetaObject(obj)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsMetaObject(meta) {
		t.Fatal("GetMetaObject should return a metaobject")
	}
	ok, err := p.IsMetaInstance(meta, obj)
	if err != nil || !ok {
		t.Errorf("IsMetaInstance = %v, %v", ok, err)
	}
	name, err := p.GetMetaSimpleName(meta)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := p.AsString(name); s != "Point" {
		t.Errorf("simple name = %q, want Point", s)
	}
}

func TestForeignExceptionCause(t *testing.T) {
	p := newTestInterop()
	err := p.translate(&interop.InvalidArrayIndexError{Index: 3, Cause: &fault{msg: "disk gone"}})
	exc := expectRaised(t, err, vm.InvalidArrayIndexExceptionClass)

	if !p.HasExceptionCause(exc) {
		t.Fatal("failure should carry its exception cause")
	}
	cause, err := p.GetExceptionCause(exc)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsException(cause) {
		t.Error("wrapped foreign cause should satisfy isException")
	}
	if cause.Class() != vm.ForeignExceptionClass {
		t.Errorf("cause class = %s, want ForeignException", cause.Class().FullName())
	}
	if p.wrapException(cause) != cause {
		t.Error("re-wrapping an exception box should return it unchanged")
	}

	// a cause that is not an exception is dropped
	err = p.translate(&interop.UnsupportedMessageError{Cause: errors.New("plain")})
	exc = expectRaised(t, err, vm.UnsupportedMessageExceptionClass)
	if p.HasExceptionCause(exc) {
		t.Error("non-exception cause should not be attached")
	}
}

func TestThrowForeignException(t *testing.T) {
	p := newTestInterop()
	f := vm.Wrap(&fault{msg: "boom"})

	if !p.IsException(f) {
		t.Fatal("fault should be an exception")
	}
	err := p.ThrowException(f)
	exc := raised(t, err)
	if exc.Class() != vm.ForeignExceptionClass {
		t.Errorf("thrown class = %s", exc.Class().FullName())
	}
	if typ, _ := p.GetExceptionType(exc); typ != interop.ExceptionRuntimeError {
		t.Errorf("exception type = %s", typ)
	}
	msg, err := p.GetExceptionMessage(exc)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := p.AsString(msg); s != "boom" {
		t.Errorf("message = %q", s)
	}
}

func TestTranslatePayloads(t *testing.T) {
	p := New()

	exc := expectRaised(t, p.translate(interop.Arity(1, 2, 3)), vm.ArityExceptionClass)
	for slot, want := range map[string]int32{"expectedMinArity": 1, "expectedMaxArity": 2, "actualArity": 3} {
		if got := exc.Slot(slot).Value().(int32); got != want {
			t.Errorf("%s = %d, want %d", slot, got, want)
		}
	}

	exc = expectRaised(t, p.translate(interop.UnsupportedType("number", vm.NewInteger(1), "raw")), vm.UnsupportedTypeExceptionClass)
	if exc.Slot("hint").GoString() != "number" {
		t.Errorf("hint = %v", exc.Slot("hint"))
	}
	if n, _ := p.GetArraySize(exc.Slot("suppliedValues")); n != 2 {
		t.Errorf("suppliedValues size = %d, want 2", n)
	}

	expectRaised(t, p.translate(interop.StopIteration()), vm.StopIterationExceptionClass)

	guest := vm.Raise(vm.NewExit(3))
	if p.translate(guest) != guest {
		t.Error("guest errors should pass through")
	}
	if p.translate(nil) != nil {
		t.Error("nil should translate to nil")
	}

	expectPanic(t, "unknown error", func() {
		p.translate(errors.New("not an interop failure"))
	})
}

func TestHostArguments(t *testing.T) {
	p := newTestInterop()
	args := vm.NewArray(vm.NewInteger(1), vm.Wrap(int64(2)))

	out, err := p.hostArguments(false, args)
	if err != nil {
		t.Fatal(err)
	}
	if &out[0] != &args.Elements()[0] {
		t.Error("guest arguments for a guest callee should share the backing slice")
	}

	out, err = p.hostArguments(true, args)
	if err != nil {
		t.Fatal(err)
	}
	if &out[0] == &args.Elements()[0] {
		t.Error("unwrapped arguments should be a copy")
	}
	if out[1] != int64(2) {
		t.Errorf("foreign argument = %v (%T), want raw int64", out[1], out[1])
	}

	// foreign argument lists are read through the array messages
	out, err = p.hostArguments(false, vm.Wrap(&sequence{items: []int64{7, 8}}))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].(*vm.Object).Raw() != int64(7) {
		t.Errorf("foreign list = %v", out)
	}

	expectPanic(t, "non-array argument list", func() {
		p.hostArguments(false, vm.NewString("x"))
	})
}

func TestCallSiteStats(t *testing.T) {
	p := New()
	receivers := []*vm.Object{vm.Null, vm.NewInteger(1), vm.NewString("s"), vm.NewArray(), vm.NewHashMap()}

	for range 2 {
		p.IsNull(receivers[1])
	}
	site := p.CallSites()[opIsNull]
	if site.State() != interop.CacheMonomorphic {
		t.Errorf("state = %s, want monomorphic", site.State())
	}
	if site.Hits() != 1 || site.Misses() != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", site.Hits(), site.Misses())
	}

	for _, r := range receivers {
		p.IsNull(r)
	}
	if site.State() != interop.CacheMegamorphic {
		t.Errorf("state = %s, want megamorphic", site.State())
	}
	// results are unaffected by the cache state
	if !p.IsNull(vm.Null) || p.IsNull(receivers[1]) {
		t.Error("megamorphic site answered wrongly")
	}

	stats := p.Stats()
	if stats.TotalCallSites != int(numOps) || stats.Megamorphic != 1 {
		t.Errorf("stats = %+v", stats)
	}

	p.ResetCaches()
	if site.State() != interop.CacheEmpty {
		t.Error("ResetCaches should empty every site")
	}
}

func TestCachingDisabled(t *testing.T) {
	p := New(WithCacheLimit(-1))
	for range 3 {
		if !p.IsString(vm.NewString("x")) {
			t.Fatal("IsString should hold without a cache")
		}
	}
	if site := p.CallSites()[opIsString]; site.State() != interop.CacheEmpty || site.Hits() != 0 {
		t.Errorf("disabled site state = %s, hits = %d", site.State(), site.Hits())
	}
}

func TestPolicyDenial(t *testing.T) {
	p := New(WithPolicy(interop.RestrictedPolicy(interop.CapNull, interop.CapArray)))
	n := vm.NewInteger(1)

	if p.IsNumber(n) {
		t.Error("numbers should be invisible")
	}
	_, err := p.AsInt(n)
	expectRaised(t, err, vm.UnsupportedMessageExceptionClass)
	if !p.HasArrayElements(vm.NewArray()) {
		t.Error("arrays should stay visible")
	}
}

func TestFromManifest(t *testing.T) {
	m := manifest.Default()
	m.Dispatch.CacheLimit = 1
	m.Capabilities.Deny = []string{"string"}

	opts, err := FromManifest(m)
	if err != nil {
		t.Fatal(err)
	}
	p := New(opts...)
	if p.IsString(vm.NewString("x")) {
		t.Error("strings should be denied")
	}
	p.IsNull(vm.Null)
	p.IsNull(vm.NewInteger(1))
	if site := p.CallSites()[opIsNull]; site.State() != interop.CacheMegamorphic {
		t.Errorf("cache-limit 1 site state = %s, want megamorphic", site.State())
	}

	m.Capabilities.Allow = []string{"warp"}
	if _, err := FromManifest(m); err == nil {
		t.Error("unknown capability should fail")
	}
}
