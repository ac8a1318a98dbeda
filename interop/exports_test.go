package interop

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"testing"
)

// token has identity; alias has none but its token claims it.
type token struct{ id int32 }

type alias struct{ t *token }

type tokenLib struct{}

func (tokenLib) IsIdenticalOrUndefined(r, other any) TriState {
	switch o := other.(type) {
	case *token:
		return TriStateOf(r.(*token) == o)
	case alias:
		return TriStateOf(o.t == r.(*token))
	}
	return Undefined
}

func (tokenLib) IdentityHashCode(r any) (int32, error) { return r.(*token).id, nil }

// dict is a string-keyed hash.
type dict struct{ m map[string]any }

type dictLib struct{}

func (dictLib) HasHashEntries(r any) bool { return true }

func (dictLib) GetHashSize(r any) (int64, error) { return int64(len(r.(*dict).m)), nil }

func (dictLib) IsHashEntryReadable(r, key any) bool {
	k, ok := key.(string)
	if !ok {
		return false
	}
	_, ok = r.(*dict).m[k]
	return ok
}

func (l dictLib) IsHashEntryModifiable(r, key any) bool { return l.IsHashEntryReadable(r, key) }
func (l dictLib) IsHashEntryRemovable(r, key any) bool  { return l.IsHashEntryReadable(r, key) }

func (l dictLib) IsHashEntryInsertable(r, key any) bool {
	_, ok := key.(string)
	return ok && !l.IsHashEntryReadable(r, key)
}

func (dictLib) ReadHashValue(r, key any) (any, error) {
	k, _ := key.(string)
	v, ok := r.(*dict).m[k]
	if !ok {
		return nil, UnknownKey(key)
	}
	return v, nil
}

func (dictLib) WriteHashEntry(r, key, value any) error {
	k, ok := key.(string)
	if !ok {
		return UnsupportedType("string keys only", key, value)
	}
	r.(*dict).m[k] = value
	return nil
}

func (dictLib) RemoveHashEntry(r, key any) error {
	k, _ := key.(string)
	if _, ok := r.(*dict).m[k]; !ok {
		return UnknownKey(key)
	}
	delete(r.(*dict).m, k)
	return nil
}

func (dictLib) GetHashEntriesIterator(r any) (any, error) {
	d := r.(*dict)
	keys := make([]string, 0, len(d.m))
	for k := range d.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make(Elements, len(keys))
	for i, k := range keys {
		items[i] = Entry{k, d.m[k]}
	}
	return IterateElements(items), nil
}

func testResolver() *Resolver {
	tokenShape := reflect.TypeOf(&token{})
	dictShape := reflect.TypeOf(&dict{})
	return NewResolver(ExporterFunc(func(shape any) *Exports {
		switch shape {
		case tokenShape:
			return NewExports(shape, tokenLib{})
		case dictShape:
			return NewExports(shape, dictLib{})
		}
		return nil
	}))
}

func identical(r *Resolver, a, b any) bool {
	return r.Resolve(a).IsIdentical(a, b, r.Resolve(b))
}

func TestIdentityIsSymmetric(t *testing.T) {
	r := testResolver()
	t1, t2 := &token{1}, &token{2}
	a1 := alias{t1}

	pairs := []struct {
		a, b any
		want bool
	}{
		{t1, t1, true},
		{t1, t2, false},
		{t1, a1, true},
		{t2, a1, false},
		{t1, "x", false},
		{"x", "x", false},
	}
	for _, p := range pairs {
		ab, ba := identical(r, p.a, p.b), identical(r, p.b, p.a)
		if ab != p.want || ba != p.want {
			t.Errorf("identical(%v, %v) = %v / reversed %v, want %v", p.a, p.b, ab, ba, p.want)
		}
	}

	// values without identity are not identical to themselves
	if identical(r, a1, a1) {
		t.Error("alias without identity was identical to itself")
	}
}

func TestIdentityHashAgreesWithIdentity(t *testing.T) {
	r := testResolver()
	t1 := &token{7}
	h1, err1 := r.Resolve(t1).IdentityHashCode(t1)
	h2, err2 := r.Resolve(t1).IdentityHashCode(t1)
	if err1 != nil || err2 != nil || h1 != h2 {
		t.Errorf("hash codes %d/%d, errors %v/%v", h1, h2, err1, err2)
	}
	if _, err := r.Resolve("x").IdentityHashCode("x"); KindOf(err) != KindUnsupported {
		t.Errorf("string identity hash: %v", err)
	}
}

func TestHashDerivedMessages(t *testing.T) {
	r := testResolver()
	d := &dict{m: map[string]any{}}
	ex := r.Resolve(d)

	v, err := ex.ReadHashValueOrDefault(d, "k", "fallback")
	if err != nil || v != "fallback" {
		t.Fatalf("ReadHashValueOrDefault on empty = %v, %v", v, err)
	}
	if ex.IsHashEntryExisting(d, "k") {
		t.Error("entry exists before write")
	}
	if !ex.IsHashEntryInsertable(d, "k") || !ex.IsHashEntryWritable(d, "k") {
		t.Error("missing key should be insertable")
	}
	if err := ex.WriteHashEntry(d, "k", 42); err != nil {
		t.Fatal(err)
	}
	if !ex.IsHashEntryExisting(d, "k") || ex.IsHashEntryInsertable(d, "k") {
		t.Error("written key should exist and not be insertable")
	}
	if v, _ := ex.ReadHashValueOrDefault(d, "k", "fallback"); v != 42 {
		t.Errorf("ReadHashValueOrDefault = %v", v)
	}
	if _, err := ex.ReadHashValue(d, "missing"); KindOf(err) != KindUnknownKey {
		t.Errorf("ReadHashValue(missing): %v", err)
	}
	if v, err := ex.ReadHashValueOrDefault(d, 99, nil); err != nil || v != nil {
		t.Errorf("non-string key default = %v, %v", v, err)
	}

	// without a hash family the default is not applicable
	if _, err := r.Resolve("s").ReadHashValueOrDefault("s", "k", 1); KindOf(err) != KindUnsupported {
		t.Errorf("ReadHashValueOrDefault on string: %v", err)
	}
}

func drain(t *testing.T, r *Resolver, it any) []any {
	t.Helper()
	ex := r.Resolve(it)
	if !ex.IsIterator(it) {
		t.Fatalf("%T is not an iterator", it)
	}
	var out []any
	for {
		has, err := ex.HasIteratorNextElement(it)
		if err != nil {
			t.Fatal(err)
		}
		if !has {
			break
		}
		v, err := ex.GetIteratorNextElement(it)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, v)
	}
	if _, err := ex.GetIteratorNextElement(it); KindOf(err) != KindStopIteration {
		t.Errorf("exhausted iterator returned %v", err)
	}
	return out
}

func TestHashKeysAndValuesProjection(t *testing.T) {
	r := testResolver()
	d := &dict{m: map[string]any{"a": 1, "b": 2}}
	ex := r.Resolve(d)

	keys, err := ex.GetHashKeysIterator(d)
	if err != nil {
		t.Fatal(err)
	}
	if got := fmt.Sprint(drain(t, r, keys)); got != "[a b]" {
		t.Errorf("keys = %s", got)
	}
	values, _ := ex.GetHashValuesIterator(d)
	if got := fmt.Sprint(drain(t, r, values)); got != "[1 2]" {
		t.Errorf("values = %s", got)
	}
}

func TestArraysHaveIterators(t *testing.T) {
	r := NewResolver()
	names := MemberNames{"x", "y"}
	ex := r.Resolve(names)
	if !ex.HasIterator(names) {
		t.Fatal("array should have an iterator")
	}
	it, err := ex.GetIterator(names)
	if err != nil {
		t.Fatal(err)
	}
	if got := fmt.Sprint(drain(t, r, it)); got != "[x y]" {
		t.Errorf("elements = %s", got)
	}

	empty := Elements{}
	it, _ = r.Resolve(empty).GetIterator(empty)
	if has, _ := r.Resolve(it).HasIteratorNextElement(it); has {
		t.Error("empty array iterator has a next element")
	}
	if _, err := r.Resolve(it).GetIteratorNextElement(it); KindOf(err) != KindStopIteration {
		t.Errorf("empty iterator next: %v", err)
	}

	if r.Resolve(42).HasIterator(42) {
		t.Error("number has an iterator")
	}
}

func TestBuiltinPrimitives(t *testing.T) {
	r := NewResolver()
	if ex := r.Resolve(nil); !ex.IsNull(nil) || ex.IsString(nil) {
		t.Error("nil should be null only")
	}
	if ex := r.Resolve(true); !ex.IsBoolean(true) || ex.IsNull(true) {
		t.Error("bool classification")
	}
	if s, err := r.Resolve("hi").AsString("hi"); s != "hi" || err != nil {
		t.Errorf("AsString = %q, %v", s, err)
	}
	if _, err := r.Resolve(1).AsString(1); KindOf(err) != KindUnsupported {
		t.Errorf("AsString(1): %v", err)
	}
	e := Entry{"k", "v"}
	if v, _ := r.Resolve(e).ReadArrayElement(e, 1); v != "v" {
		t.Errorf("entry[1] = %v", v)
	}
	if _, err := r.Resolve(e).ReadArrayElement(e, 2); KindOf(err) != KindInvalidArrayIndex {
		t.Errorf("entry[2]: %v", err)
	}
	if err := r.Resolve(e).WriteArrayElement(e, 0, 1); KindOf(err) != KindUnsupported {
		t.Errorf("write entry: %v", err)
	}
}

type opaque struct{}

func TestUnknownShapeSupportsNothing(t *testing.T) {
	r := NewResolver()
	v := opaque{}
	ex := r.Resolve(v)
	for _, c := range AllCapabilities() {
		if ex.Has(c) {
			t.Errorf("unknown shape has %v", c)
		}
	}
	if ex.IsNull(v) || ex.HasMembers(v) || ex.IsExecutable(v) || ex.HasBufferElements(v) {
		t.Error("unknown shape answered a predicate with true")
	}
	if _, err := ex.Execute(v); KindOf(err) != KindUnsupported {
		t.Errorf("Execute: %v", err)
	}
	if got := ex.ToDisplayString(v, true); got != "interop.opaque" {
		t.Errorf("display = %v", got)
	}
}

func TestToDisplayStringDefaults(t *testing.T) {
	r := testResolver()
	cases := []struct {
		v    any
		want string
	}{
		{nil, "null"},
		{"text", "text"},
		{false, "false"},
		{int16(-3), "-3"},
		{2.5, "2.5"},
		{&token{255}, "*interop.token@ff"},
	}
	for _, c := range cases {
		if got := r.Resolve(c.v).ToDisplayString(c.v, false); got != c.want {
			t.Errorf("display(%#v) = %v, want %s", c.v, got, c.want)
		}
	}
}

func TestPolicyHidesCategories(t *testing.T) {
	r := testResolver()
	p := PermissivePolicy()
	p.Deny(CapIdentity)
	r.SetPolicy(p)

	t1 := &token{1}
	ex := r.Resolve(t1)
	if ex.Has(CapIdentity) {
		t.Error("denied identity still present")
	}
	if _, err := ex.IdentityHashCode(t1); KindOf(err) != KindUnsupported {
		t.Errorf("IdentityHashCode under policy: %v", err)
	}

	r.SetPolicy(RestrictedPolicy(CapString))
	if !r.Resolve("s").IsString("s") || r.Resolve(1).IsNumber(1) {
		t.Error("restricted policy")
	}
	if RestrictedPolicy(CapString).Allows(CapNumber) {
		t.Error("restricted policy should not allow number")
	}
}

func TestExporterOrder(t *testing.T) {
	stringShape := reflect.TypeOf("")
	r := NewResolver()
	r.Register(ExporterFunc(func(shape any) *Exports {
		if shape == stringShape {
			return NewExports(shape, nullLib{})
		}
		return nil
	}))
	if r.Resolve("x").IsString("x") {
		t.Error("registered exporter should shadow the built-in")
	}
}

func TestKindOfLooksThroughWrapping(t *testing.T) {
	base := InvalidArrayIndex(3)
	wrapped := fmt.Errorf("reading: %w", base)
	if KindOf(wrapped) != KindInvalidArrayIndex {
		t.Errorf("KindOf(wrapped) = %v", KindOf(wrapped))
	}
	var idx *InvalidArrayIndexError
	if !errors.As(wrapped, &idx) || idx.Index != 3 {
		t.Error("errors.As failed")
	}
	if KindOf(errors.New("plain")) != KindNone {
		t.Error("plain error has a kind")
	}
	if KindOf(&Throw{Exception: Unsupported()}) != KindNone {
		t.Error("a thrown value is not a failure")
	}

	cause := errors.New("root")
	arity := &ArityError{Min: 1, Max: 2, Actual: 0, Cause: cause}
	if !errors.Is(arity, cause) {
		t.Error("cause not reachable")
	}
	if arity.Error() != "arity error: expected 1 to 2 arguments, got 0" {
		t.Errorf("message = %q", arity.Error())
	}
	if msg := Arity(1, -1, 0).Error(); msg != "arity error: expected at least 1 arguments, got 0" {
		t.Errorf("varargs message = %q", msg)
	}
}
