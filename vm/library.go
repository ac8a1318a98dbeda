package vm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chazu/polyglot/interop"
)

// Exporter serves the message tables of guest objects. Guest objects use
// their class as shape, so tables are specialized per class and built
// once.
type Exporter struct {
	resolver *interop.Resolver
	tables   sync.Map // *Class -> *interop.Exports
}

// NewExporter creates the exporter for guest objects. The resolver is used
// to interrogate foreign values: the contents of foreign boxes and values
// written into guest containers.
func NewExporter(r *interop.Resolver) *Exporter {
	return &Exporter{resolver: r}
}

func (e *Exporter) Export(shape any) *interop.Exports {
	c, ok := shape.(*Class)
	if !ok {
		return nil
	}
	if t, ok := e.tables.Load(c); ok {
		return t.(*interop.Exports)
	}
	t, _ := e.tables.LoadOrStore(c, e.build(c))
	return t.(*interop.Exports)
}

func (e *Exporter) build(c *Class) *interop.Exports {
	if c == nil {
		return interop.NewExports(c, nullLib{}, identityLib{}, displayLib{})
	}
	var parts []any
	switch c.Layout {
	case LayoutForeign:
		// the box is transparent: every family answers for the raw value
		return interop.NewExports(c, foreignLib{e.resolver})
	case LayoutBoolean:
		parts = append(parts, booleanLib{})
	case LayoutByte, LayoutShort, LayoutInteger, LayoutLong, LayoutFloat, LayoutDouble:
		parts = append(parts, numberLib{})
	case LayoutString:
		parts = append(parts, stringLib{})
	case LayoutArray:
		parts = append(parts, arrayLib{}, iterableLib{})
	case LayoutByteArray:
		parts = append(parts, byteArrayLib{e.resolver}, byteBuffer)
	case LayoutHashMap:
		parts = append(parts, hashLib{})
	case LayoutIterator:
		parts = append(parts, iteratorLib{})
	case LayoutFunction:
		parts = append(parts, executableLib{}, frameLib{})
	case LayoutFrame:
		parts = append(parts, frameLib{})
	case LayoutClass:
		parts = append(parts, instantiableLib{e.resolver})
	case LayoutThrowable:
		parts = append(parts, exceptionLib{}, memberLib{})
	case LayoutInstance:
		parts = append(parts, memberLib{})
	}
	parts = append(parts, metaLib{}, identityLib{}, displayLib{})
	return interop.NewExports(c, parts...)
}

func self(r any) *Object { return r.(*Object) }

// toObjects converts arguments arriving from the protocol into guest
// objects, boxing foreign values.
func toObjects(args []any) []*Object {
	out := make([]*Object, len(args))
	for i, a := range args {
		out[i] = Wrap(a)
	}
	return out
}

// ---------------------------------------------------------------------------
// Null, booleans, numbers, strings
// ---------------------------------------------------------------------------

type nullLib struct{}

func (nullLib) IsNull(r any) bool { return self(r) == Null }

type booleanLib struct{}

func (booleanLib) IsBoolean(r any) bool { return true }

func (booleanLib) AsBoolean(r any) (bool, error) { return self(r).value.(bool), nil }

type stringLib struct{}

func (stringLib) IsString(r any) bool { return true }

func (stringLib) AsString(r any) (string, error) { return self(r).value.(string), nil }

// numberLib applies the Go numeric rules to the boxed value.
type numberLib struct{}

func (numberLib) IsNumber(r any) bool             { return true }
func (numberLib) FitsInByte(r any) bool           { return interop.Numbers.FitsInByte(self(r).value) }
func (numberLib) FitsInShort(r any) bool          { return interop.Numbers.FitsInShort(self(r).value) }
func (numberLib) FitsInInt(r any) bool            { return interop.Numbers.FitsInInt(self(r).value) }
func (numberLib) FitsInLong(r any) bool           { return interop.Numbers.FitsInLong(self(r).value) }
func (numberLib) FitsInFloat(r any) bool          { return interop.Numbers.FitsInFloat(self(r).value) }
func (numberLib) FitsInDouble(r any) bool         { return interop.Numbers.FitsInDouble(self(r).value) }
func (numberLib) AsByte(r any) (int8, error)      { return interop.Numbers.AsByte(self(r).value) }
func (numberLib) AsShort(r any) (int16, error)    { return interop.Numbers.AsShort(self(r).value) }
func (numberLib) AsInt(r any) (int32, error)      { return interop.Numbers.AsInt(self(r).value) }
func (numberLib) AsLong(r any) (int64, error)     { return interop.Numbers.AsLong(self(r).value) }
func (numberLib) AsFloat(r any) (float32, error)  { return interop.Numbers.AsFloat(self(r).value) }
func (numberLib) AsDouble(r any) (float64, error) { return interop.Numbers.AsDouble(self(r).value) }

// ---------------------------------------------------------------------------
// Metaobjects, identity, display
// ---------------------------------------------------------------------------

type metaLib struct{}

func (metaLib) HasMetaObject(r any) bool { return true }

func (metaLib) GetMetaObject(r any) (any, error) { return self(r).class.Mirror(), nil }

func (metaLib) IsMetaObject(r any) bool { return self(r).class.Layout == LayoutClass }

func mirrored(r any) (*Class, error) {
	o := self(r)
	if o.class.Layout != LayoutClass {
		return nil, interop.Unsupported()
	}
	return o.value.(*Class), nil
}

func (metaLib) GetMetaQualifiedName(r any) (any, error) {
	c, err := mirrored(r)
	if err != nil {
		return nil, err
	}
	return NewString(c.FullName()), nil
}

func (metaLib) GetMetaSimpleName(r any) (any, error) {
	c, err := mirrored(r)
	if err != nil {
		return nil, err
	}
	return NewString(c.Name), nil
}

func (metaLib) IsMetaInstance(r any, instance any) (bool, error) {
	c, err := mirrored(r)
	if err != nil {
		return false, err
	}
	o, ok := instance.(*Object)
	if !ok || o == Null {
		return false, nil
	}
	return o.class.IsSubclassOf(c), nil
}

// identityLib gives every guest object, Null included, reference identity.
type identityLib struct{}

func (identityLib) IsIdenticalOrUndefined(r any, other any) interop.TriState {
	o, ok := other.(*Object)
	if !ok {
		return interop.False
	}
	return interop.TriStateOf(self(r) == o)
}

func (identityLib) IdentityHashCode(r any) (int32, error) {
	if self(r) == Null {
		return 0, nil
	}
	return self(r).IdentityHash(), nil
}

type displayLib struct{}

func (displayLib) ToDisplayString(r any, allowSideEffects bool) any {
	return display(self(r), 0)
}

func display(o *Object, depth int) string {
	if o == Null || o.class == nil {
		return "null"
	}
	switch o.class.Layout {
	case LayoutArray:
		if depth > 2 {
			return "[...]"
		}
		o.mu.RLock()
		elems := append([]any(nil), o.Elements()...)
		o.mu.RUnlock()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = display(e.(*Object), depth+1)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case LayoutByteArray:
		return fmt.Sprintf("byte[%d]", len(o.Bytes()))
	case LayoutThrowable:
		if msg := o.Message(); msg != "" {
			return o.class.FullName() + ": " + msg
		}
		return o.class.FullName()
	case LayoutFunction:
		return "function " + o.value.(*Function).Name
	case LayoutFrame:
		f := o.value.(*Frame)
		if f.Declaring != nil {
			return f.Declaring.FullName() + "." + f.Name
		}
		return f.Name
	}
	return o.String()
}
