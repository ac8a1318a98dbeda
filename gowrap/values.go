package gowrap

import (
	"fmt"
	"reflect"

	"github.com/chazu/polyglot/interop"
)

// ---------------------------------------------------------------------------
// Null and scalars of named types
// ---------------------------------------------------------------------------

// nullLib reports typed nil pointers, maps, slices, funcs and channels as
// null.
type nullLib struct{}

func (nullLib) IsNull(r any) bool { return reflect.ValueOf(r).IsNil() }

type boolLib struct{}

func (boolLib) IsBoolean(r any) bool { return true }

func (boolLib) AsBoolean(r any) (bool, error) { return reflect.ValueOf(r).Bool(), nil }

type stringLib struct{}

func (stringLib) IsString(r any) bool { return true }

func (stringLib) AsString(r any) (string, error) { return reflect.ValueOf(r).String(), nil }

// basic converts a value of a named numeric type to its predeclared
// equivalent, which the built-in number rules understand.
func basic(r any) any {
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32:
		return float32(v.Float())
	case reflect.Float64:
		return v.Float()
	}
	return nil
}

type numberLib struct{}

func (numberLib) IsNumber(r any) bool             { return true }
func (numberLib) FitsInByte(r any) bool           { return interop.Numbers.FitsInByte(basic(r)) }
func (numberLib) FitsInShort(r any) bool          { return interop.Numbers.FitsInShort(basic(r)) }
func (numberLib) FitsInInt(r any) bool            { return interop.Numbers.FitsInInt(basic(r)) }
func (numberLib) FitsInLong(r any) bool           { return interop.Numbers.FitsInLong(basic(r)) }
func (numberLib) FitsInFloat(r any) bool          { return interop.Numbers.FitsInFloat(basic(r)) }
func (numberLib) FitsInDouble(r any) bool         { return interop.Numbers.FitsInDouble(basic(r)) }
func (numberLib) AsByte(r any) (int8, error)      { return interop.Numbers.AsByte(basic(r)) }
func (numberLib) AsShort(r any) (int16, error)    { return interop.Numbers.AsShort(basic(r)) }
func (numberLib) AsInt(r any) (int32, error)      { return interop.Numbers.AsInt(basic(r)) }
func (numberLib) AsLong(r any) (int64, error)     { return interop.Numbers.AsLong(basic(r)) }
func (numberLib) AsFloat(r any) (float32, error)  { return interop.Numbers.AsFloat(basic(r)) }
func (numberLib) AsDouble(r any) (float64, error) { return interop.Numbers.AsDouble(basic(r)) }

// ---------------------------------------------------------------------------
// Identity and pointers
// ---------------------------------------------------------------------------

// identityLib compares reference-like values by address. Functions have no
// usable address and stay undefined.
type identityLib struct{}

func (identityLib) IsIdenticalOrUndefined(r any, other any) interop.TriState {
	v := reflect.ValueOf(r)
	if v.Kind() == reflect.Func {
		return interop.Undefined
	}
	o := reflect.ValueOf(other)
	if !o.IsValid() || o.Type() != v.Type() {
		return interop.False
	}
	same := v.Pointer() == o.Pointer()
	if v.Kind() == reflect.Slice {
		same = same && v.Len() == o.Len()
	}
	return interop.TriStateOf(same)
}

func (identityLib) IdentityHashCode(r any) (int32, error) {
	v := reflect.ValueOf(r)
	if v.Kind() == reflect.Func {
		return 0, interop.Unsupported()
	}
	p := uint64(v.Pointer())
	return int32(p ^ p>>32), nil
}

type pointerLib struct{}

func (pointerLib) IsPointer(r any) bool { return true }

func (pointerLib) AsPointer(r any) (int64, error) { return int64(reflect.ValueOf(r).Pointer()), nil }

func (pointerLib) ToNative(r any) {}

// ---------------------------------------------------------------------------
// Display
// ---------------------------------------------------------------------------

type displayLib struct{ e *Exporter }

// ToDisplayString formats with fmt only when side effects are allowed,
// since String and Error methods are arbitrary code. Otherwise values are
// shown by type.
func (d displayLib) ToDisplayString(r any, allowSideEffects bool) any {
	t := reflect.TypeOf(r)
	if allowSideEffects || !(t.Implements(stringerType) || t.Implements(errorType)) && scalar(t) {
		return fmt.Sprint(r)
	}
	return d.e.registry.nameOf(t)
}

func scalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Metaobjects
// ---------------------------------------------------------------------------

// metaLib makes the reflect.Type of every value its metaobject.
type metaLib struct{ e *Exporter }

func (metaLib) HasMetaObject(r any) bool { return true }

func (metaLib) GetMetaObject(r any) (any, error) { return reflect.TypeOf(r), nil }

func (metaLib) IsMetaObject(r any) bool { return false }

func (metaLib) GetMetaQualifiedName(r any) (any, error) { return nil, interop.Unsupported() }

func (metaLib) GetMetaSimpleName(r any) (any, error) { return nil, interop.Unsupported() }

func (metaLib) IsMetaInstance(r any, instance any) (bool, error) { return false, interop.Unsupported() }

// typeLib serves reflect.Type values: metaobjects that instantiate their
// type.
type typeLib struct{ e *Exporter }

func (typeLib) HasMetaObject(r any) bool { return false }

func (typeLib) GetMetaObject(r any) (any, error) { return nil, interop.Unsupported() }

func (typeLib) IsMetaObject(r any) bool { return true }

func (l typeLib) GetMetaQualifiedName(r any) (any, error) {
	return l.e.registry.nameOf(r.(reflect.Type)), nil
}

func (l typeLib) GetMetaSimpleName(r any) (any, error) {
	return SimpleName(l.e.registry.nameOf(r.(reflect.Type))), nil
}

func (typeLib) IsMetaInstance(r any, instance any) (bool, error) {
	t := r.(reflect.Type)
	if instance == nil {
		return false, nil
	}
	it := reflect.TypeOf(instance)
	if t.Kind() == reflect.Interface {
		return it.Implements(t), nil
	}
	// struct metaobjects instantiate pointers
	if it.Kind() == reflect.Pointer && t.Kind() == reflect.Struct {
		return it.Elem() == t, nil
	}
	return it == t, nil
}

func (l typeLib) IsInstantiable(r any) bool {
	t := r.(reflect.Type)
	if l.e.registry.constructor(t).IsValid() {
		return true
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Map:
		return true
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct
	}
	return false
}

// Instantiate calls the registered constructor. Without one, struct types
// take their exported fields positionally and produce a pointer, slice
// types take a length and map types take no arguments.
func (l typeLib) Instantiate(r any, args ...any) (any, error) {
	t := r.(reflect.Type)
	if ctor := l.e.registry.constructor(t); ctor.IsValid() {
		return l.e.call(ctor, args)
	}

	switch t.Kind() {
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return l.e.newStruct(t.Elem(), args)
		}
	case reflect.Struct:
		return l.e.newStruct(t, args)
	case reflect.Slice:
		if len(args) != 1 {
			return nil, interop.Arity(1, 1, len(args))
		}
		n, err := l.e.convert(args[0], reflect.TypeOf(0))
		if err != nil || n.Int() < 0 {
			return nil, interop.UnsupportedType("non-negative length", args[0])
		}
		return reflect.MakeSlice(t, int(n.Int()), int(n.Int())).Interface(), nil
	case reflect.Map:
		if len(args) != 0 {
			return nil, interop.Arity(0, 0, len(args))
		}
		return reflect.MakeMap(t).Interface(), nil
	}
	return nil, interop.Unsupported()
}

func (e *Exporter) newStruct(t reflect.Type, args []any) (any, error) {
	var fields []int
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			fields = append(fields, i)
		}
	}
	if len(args) > len(fields) {
		return nil, interop.Arity(0, len(fields), len(args))
	}
	p := reflect.New(t)
	for i, a := range args {
		f := p.Elem().Field(fields[i])
		v, err := e.convert(a, f.Type())
		if err != nil {
			return nil, err
		}
		f.Set(v)
	}
	return p.Interface(), nil
}
