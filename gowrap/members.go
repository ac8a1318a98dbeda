package gowrap

import (
	"reflect"
	"sort"

	"github.com/chazu/polyglot/interop"
)

// memberIndex maps member names of a type to exported struct fields and
// methods. Unexported fields are not accessible through reflection and are
// never members, internal or not.
type memberIndex struct {
	names   []string
	fields  map[string][]int
	methods map[string]int
}

func indexMembers(t reflect.Type) *memberIndex {
	idx := &memberIndex{fields: map[string][]int{}, methods: map[string]int{}}

	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(st) {
			if !reachable(st, f.Index) {
				continue
			}
			name := MemberName(f.Name)
			if _, dup := idx.fields[name]; !dup {
				idx.names = append(idx.names, name)
			}
			idx.fields[name] = f.Index
		}
	}
	if t.Kind() != reflect.Interface {
		for i := 0; i < t.NumMethod(); i++ {
			name := MemberName(t.Method(i).Name)
			if _, isField := idx.fields[name]; isField {
				continue
			}
			idx.methods[name] = i
			idx.names = append(idx.names, name)
		}
	}
	sort.Strings(idx.names)
	return idx
}

// reachable reports whether every field along path is exported.
func reachable(st reflect.Type, path []int) bool {
	for i := range path {
		f := st.FieldByIndex(path[:i+1])
		if !f.IsExported() {
			return false
		}
	}
	return true
}

// memberLib serves exported fields and methods. Fields are modifiable
// through pointers only; methods read as bound functions.
type memberLib struct {
	e   *Exporter
	idx *memberIndex
}

// field returns the field value, or ok=false when it cannot be reached
// through a nil pointer.
func (l memberLib) field(r any, member string) (reflect.Value, bool) {
	path, ok := l.idx.fields[member]
	if !ok {
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(r)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	f, err := v.FieldByIndexErr(path)
	if err != nil {
		return reflect.Value{}, false
	}
	return f, true
}

func (l memberLib) method(r any, member string) (reflect.Value, bool) {
	i, ok := l.idx.methods[member]
	if !ok {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(r).Method(i), true
}

func (memberLib) HasMembers(r any) bool { return true }

func (l memberLib) GetMembers(r any, includeInternal bool) (any, error) {
	return interop.MemberNames(l.idx.names), nil
}

func (l memberLib) IsMemberReadable(r any, member string) bool {
	if _, ok := l.field(r, member); ok {
		return true
	}
	_, ok := l.idx.methods[member]
	return ok
}

func (l memberLib) IsMemberModifiable(r any, member string) bool {
	f, ok := l.field(r, member)
	return ok && f.CanSet()
}

func (memberLib) IsMemberInsertable(r any, member string) bool { return false }
func (memberLib) IsMemberRemovable(r any, member string) bool  { return false }

func (l memberLib) IsMemberInvocable(r any, member string) bool {
	if _, ok := l.idx.methods[member]; ok {
		return true
	}
	f, ok := l.field(r, member)
	return ok && f.Kind() == reflect.Func && !f.IsNil()
}

func (l memberLib) ReadMember(r any, member string) (any, error) {
	if f, ok := l.field(r, member); ok {
		return f.Interface(), nil
	}
	if m, ok := l.method(r, member); ok {
		return m.Interface(), nil
	}
	if _, ok := l.idx.fields[member]; ok {
		return nil, interop.Unsupported()
	}
	return nil, interop.UnknownIdentifier(member)
}

func (l memberLib) WriteMember(r any, member string, value any) error {
	f, ok := l.field(r, member)
	if !ok {
		if _, known := l.idx.fields[member]; known {
			return interop.Unsupported()
		}
		if _, known := l.idx.methods[member]; known {
			return interop.Unsupported()
		}
		return interop.UnknownIdentifier(member)
	}
	if !f.CanSet() {
		return interop.Unsupported()
	}
	v, err := l.e.convert(value, f.Type())
	if err != nil {
		return err
	}
	f.Set(v)
	return nil
}

func (l memberLib) RemoveMember(r any, member string) error {
	if _, ok := l.idx.fields[member]; ok {
		return interop.Unsupported()
	}
	if _, ok := l.idx.methods[member]; ok {
		return interop.Unsupported()
	}
	return interop.UnknownIdentifier(member)
}

func (l memberLib) InvokeMember(r any, member string, args ...any) (any, error) {
	if m, ok := l.method(r, member); ok {
		return l.e.call(m, args)
	}
	f, ok := l.field(r, member)
	if !ok {
		if _, known := l.idx.fields[member]; known {
			return nil, interop.Unsupported()
		}
		return nil, interop.UnknownIdentifier(member)
	}
	if f.Kind() != reflect.Func || f.IsNil() {
		return nil, interop.Unsupported()
	}
	return l.e.call(f, args)
}

func (memberLib) HasMemberReadSideEffects(r any, member string) bool  { return false }
func (memberLib) HasMemberWriteSideEffects(r any, member string) bool { return false }
