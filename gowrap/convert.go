package gowrap

import (
	"reflect"

	"github.com/chazu/polyglot/interop"
)

// convert turns a value arriving through the protocol into a Go value of
// type t. Values already assignable to t are used as they are; anything
// else is interrogated through the resolver, so guest and foreign values
// convert alike.
func (e *Exporter) convert(v any, t reflect.Type) (reflect.Value, error) {
	ex := e.resolver.Resolve(v)
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		if v == nil || ex.IsNull(v) {
			return reflect.Zero(t), nil
		}
		return reflect.ValueOf(simplify(v, ex)), nil
	}
	if v != nil {
		if rv := reflect.ValueOf(v); rv.Type().AssignableTo(t) {
			return rv, nil
		}
	}
	if ex.IsNull(v) {
		if nillable(t) || t.Kind() == reflect.Interface {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, interop.UnsupportedType(t.String(), v)
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		if b, err := ex.AsBoolean(v); err == nil {
			out.SetBool(b)
			return out, nil
		}

	case reflect.String:
		if s, err := ex.AsString(v); err == nil {
			out.SetString(s)
			return out, nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := ex.AsLong(v); err == nil && !out.OverflowInt(n) {
			out.SetInt(n)
			return out, nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n, err := ex.AsLong(v); err == nil && n >= 0 && !out.OverflowUint(uint64(n)) {
			out.SetUint(uint64(n))
			return out, nil
		}

	case reflect.Float32:
		if f, err := ex.AsFloat(v); err == nil {
			out.SetFloat(float64(f))
			return out, nil
		}

	case reflect.Float64:
		if f, err := ex.AsDouble(v); err == nil {
			out.SetFloat(f)
			return out, nil
		}

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 && ex.HasBufferElements(v) {
			return e.convertBuffer(v, ex, t)
		}
		if ex.HasArrayElements(v) {
			return e.convertArray(v, ex, t)
		}

	case reflect.Map:
		if ex.HasHashEntries(v) {
			return e.convertHash(v, ex, t)
		}
	}
	return reflect.Value{}, interop.UnsupportedType(t.String(), v)
}

// simplify is the Go value passed for an untyped parameter: primitives
// become Go primitives, anything else is passed through.
func simplify(v any, ex *interop.Exports) any {
	switch {
	case ex.IsBoolean(v):
		if b, err := ex.AsBoolean(v); err == nil {
			return b
		}
	case ex.IsString(v):
		if s, err := ex.AsString(v); err == nil {
			return s
		}
	case ex.FitsInLong(v):
		if n, err := ex.AsLong(v); err == nil {
			return n
		}
	case ex.FitsInDouble(v):
		if f, err := ex.AsDouble(v); err == nil {
			return f
		}
	}
	return v
}

func (e *Exporter) convertBuffer(v any, ex *interop.Exports, t reflect.Type) (reflect.Value, error) {
	size, err := ex.GetBufferSize(v)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.MakeSlice(t, int(size), int(size))
	for i := range size {
		b, err := ex.ReadBufferByte(v, i)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(int(i)).SetUint(uint64(uint8(b)))
	}
	return out, nil
}

func (e *Exporter) convertArray(v any, ex *interop.Exports, t reflect.Type) (reflect.Value, error) {
	size, err := ex.GetArraySize(v)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.MakeSlice(t, int(size), int(size))
	for i := range size {
		elem, err := ex.ReadArrayElement(v, i)
		if err != nil {
			return reflect.Value{}, err
		}
		ev, err := e.convert(elem, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(int(i)).Set(ev)
	}
	return out, nil
}

func (e *Exporter) convertHash(v any, ex *interop.Exports, t reflect.Type) (reflect.Value, error) {
	it, err := ex.GetHashEntriesIterator(v)
	if err != nil {
		return reflect.Value{}, err
	}
	itEx := e.resolver.Resolve(it)
	out := reflect.MakeMap(t)
	for {
		more, err := itEx.HasIteratorNextElement(it)
		if err != nil {
			return reflect.Value{}, err
		}
		if !more {
			return out, nil
		}
		entry, err := itEx.GetIteratorNextElement(it)
		if err != nil {
			if interop.KindOf(err) == interop.KindStopIteration {
				return out, nil
			}
			return reflect.Value{}, err
		}
		entryEx := e.resolver.Resolve(entry)
		key, err := entryEx.ReadArrayElement(entry, 0)
		if err != nil {
			return reflect.Value{}, err
		}
		val, err := entryEx.ReadArrayElement(entry, 1)
		if err != nil {
			return reflect.Value{}, err
		}
		kv, err := e.convert(key, t.Key())
		if err != nil {
			return reflect.Value{}, err
		}
		vv, err := e.convert(val, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(kv, vv)
	}
}
