package vm

import (
	"strings"

	"github.com/chazu/polyglot/interop"
)

// ---------------------------------------------------------------------------
// Members: instance variables and methods
// ---------------------------------------------------------------------------

// memberLib exposes instance variables as readable, modifiable members and
// methods as readable, invocable members. Members cannot be added or
// removed. Names starting with an underscore are internal.
type memberLib struct{}

func (memberLib) HasMembers(r any) bool { return true }

func (memberLib) GetMembers(r any, includeInternal bool) (any, error) {
	c := self(r).class
	var names interop.MemberNames
	add := func(n string) {
		if includeInternal || !strings.HasPrefix(n, "_") {
			names = append(names, n)
		}
	}
	for _, n := range c.AllInstVarNames() {
		add(n)
	}
	for _, n := range c.MethodNames() {
		if c.InstVarIndex(n) < 0 {
			add(n)
		}
	}
	return names, nil
}

func isField(o *Object, name string) bool {
	i := o.class.InstVarIndex(name)
	return i >= 0 && i < len(o.slots)
}

func (memberLib) IsMemberReadable(r any, member string) bool {
	o := self(r)
	return isField(o, member) || o.class.LookupMethod(member) != nil
}

func (memberLib) IsMemberModifiable(r any, member string) bool { return isField(self(r), member) }
func (memberLib) IsMemberInsertable(r any, member string) bool { return false }
func (memberLib) IsMemberRemovable(r any, member string) bool  { return false }

func (memberLib) IsMemberInvocable(r any, member string) bool {
	return !isField(self(r), member) && self(r).class.LookupMethod(member) != nil
}

func (memberLib) ReadMember(r any, member string) (any, error) {
	o := self(r)
	if isField(o, member) {
		return o.Slot(member), nil
	}
	if m := o.class.LookupMethod(member); m != nil {
		return bind(o, m), nil
	}
	return nil, interop.UnknownIdentifier(member)
}

// bind returns a function object calling m with o as receiver.
func bind(o *Object, m *Function) *Object {
	return NewFunction(&Function{
		Name:      m.Name,
		Declaring: m.Declaring,
		MinArity:  m.MinArity,
		MaxArity:  m.MaxArity,
		Fn: func(args []*Object) (*Object, error) {
			return m.Call(o, args)
		},
	})
}

func (l memberLib) WriteMember(r any, member string, value any) error {
	o := self(r)
	if o.SetSlot(member, Wrap(value)) {
		return nil
	}
	if l.IsMemberReadable(r, member) {
		return interop.Unsupported()
	}
	return interop.UnknownIdentifier(member)
}

func (l memberLib) RemoveMember(r any, member string) error {
	if l.IsMemberReadable(r, member) {
		return interop.Unsupported()
	}
	return interop.UnknownIdentifier(member)
}

func (memberLib) InvokeMember(r any, member string, args ...any) (any, error) {
	o := self(r)
	if isField(o, member) {
		return nil, interop.Unsupported()
	}
	m := o.class.LookupMethod(member)
	if m == nil {
		return nil, interop.UnknownIdentifier(member)
	}
	return m.Call(o, toObjects(args))
}

func (memberLib) HasMemberReadSideEffects(r any, member string) bool  { return false }
func (memberLib) HasMemberWriteSideEffects(r any, member string) bool { return false }

// ---------------------------------------------------------------------------
// Functions and stack trace elements
// ---------------------------------------------------------------------------

type executableLib struct{}

func (executableLib) IsExecutable(r any) bool { return true }

// Execute calls the function. Unbound methods take their receiver as the
// first argument, so their arity is one more than the declared one.
func (executableLib) Execute(r any, args ...any) (any, error) {
	fn := self(r).value.(*Function)
	if !fn.method {
		return fn.Call(nil, toObjects(args))
	}
	lo, hi := fn.MinArity+1, fn.MaxArity
	if hi >= 0 {
		hi++
	}
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return nil, interop.Arity(lo, hi, len(args))
	}
	return fn.Call(Wrap(args[0]), toObjects(args[1:]))
}

// frameLib answers stack-frame queries for functions and stack trace
// elements.
type frameLib struct{}

func frameOf(r any) (string, *Class) {
	switch v := self(r).value.(type) {
	case *Function:
		return v.Name, v.Declaring
	case *Frame:
		return v.Name, v.Declaring
	}
	return "", nil
}

func (frameLib) HasExecutableName(r any) bool {
	name, _ := frameOf(r)
	return name != ""
}

func (frameLib) GetExecutableName(r any) (any, error) {
	name, _ := frameOf(r)
	if name == "" {
		return nil, interop.Unsupported()
	}
	return NewString(name), nil
}

func (frameLib) HasDeclaringMetaObject(r any) bool {
	_, c := frameOf(r)
	return c != nil
}

func (frameLib) GetDeclaringMetaObject(r any) (any, error) {
	_, c := frameOf(r)
	if c == nil {
		return nil, interop.Unsupported()
	}
	return c.Mirror(), nil
}

// ---------------------------------------------------------------------------
// Class mirrors
// ---------------------------------------------------------------------------

// instantiableLib creates instances of the mirrored class. Instances take
// their slot values positionally, throwables take (message, cause),
// arrays take a length and hash maps take nothing.
type instantiableLib struct {
	resolver *interop.Resolver
}

func (instantiableLib) IsInstantiable(r any) bool {
	c := self(r).value.(*Class)
	switch c.Layout {
	case LayoutInstance:
		return c != NumberClass && c != ByteOrderClass
	case LayoutThrowable, LayoutArray, LayoutByteArray, LayoutHashMap:
		return true
	}
	return false
}

func (l instantiableLib) Instantiate(r any, args ...any) (any, error) {
	if !l.IsInstantiable(r) {
		return nil, interop.Unsupported()
	}
	c := self(r).value.(*Class)
	switch c.Layout {
	case LayoutThrowable:
		return l.throwable(c, args)
	case LayoutArray, LayoutByteArray:
		if len(args) != 1 {
			return nil, interop.Arity(1, 1, len(args))
		}
		n, ok := l.length(args[0])
		if !ok {
			return nil, interop.UnsupportedType("array length must be a non-negative int", args...)
		}
		if c.Layout == LayoutByteArray {
			return NewByteArray(make([]byte, n)), nil
		}
		return NewArray(make([]*Object, n)...), nil
	case LayoutHashMap:
		if len(args) != 0 {
			return nil, interop.Arity(0, 0, len(args))
		}
		return NewHashMap(), nil
	}
	if len(args) > c.NumSlots {
		return nil, interop.Arity(0, c.NumSlots, len(args))
	}
	o := NewInstance(c)
	for i, a := range args {
		o.slots[i] = Wrap(a)
	}
	return o, nil
}

func (instantiableLib) throwable(c *Class, args []any) (any, error) {
	if len(args) > 2 {
		return nil, interop.Arity(0, 2, len(args))
	}
	exc := NewInstance(c)
	if len(args) > 0 {
		msg := Wrap(args[0])
		if msg != Null && msg.class != StringClass {
			return nil, interop.UnsupportedType("message must be a string", args...)
		}
		exc.SetSlot("message", msg)
	}
	if len(args) > 1 {
		cause := Wrap(args[1])
		if cause != Null && !cause.IsException() {
			return nil, interop.UnsupportedType("cause must be an exception", args...)
		}
		exc.SetSlot("cause", cause)
	}
	return exc, nil
}

func (l instantiableLib) length(v any) (int, bool) {
	if o, ok := v.(*Object); ok && o.IsForeign() {
		v = o.raw
	}
	ex := l.resolver.Resolve(v)
	if !ex.FitsInInt(v) {
		return 0, false
	}
	n, err := ex.AsInt(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return int(n), true
}

// ---------------------------------------------------------------------------
// Throwables
// ---------------------------------------------------------------------------

type exceptionLib struct{}

func (exceptionLib) IsException(r any) bool { return true }

func (exceptionLib) ThrowException(r any) error { return &interop.Throw{Exception: self(r)} }

func exceptionType(c *Class) interop.ExceptionType {
	switch {
	case c.IsSubclassOf(ExitExceptionClass):
		return interop.ExceptionExit
	case c.IsSubclassOf(InterruptedExceptionClass):
		return interop.ExceptionInterrupt
	case c.IsSubclassOf(ParseErrorClass):
		return interop.ExceptionParseError
	}
	return interop.ExceptionRuntimeError
}

func (exceptionLib) GetExceptionType(r any) (interop.ExceptionType, error) {
	return exceptionType(self(r).class), nil
}

func (exceptionLib) IsExceptionIncompleteSource(r any) (bool, error) {
	o := self(r)
	if exceptionType(o.class) != interop.ExceptionParseError {
		return false, interop.Unsupported()
	}
	flag := o.Slot("incompleteSource")
	return flag != nil && flag.class == BooleanClass && flag.value.(bool), nil
}

func (exceptionLib) GetExceptionExitStatus(r any) (int, error) {
	o := self(r)
	if exceptionType(o.class) != interop.ExceptionExit {
		return 0, interop.Unsupported()
	}
	status := o.Slot("status")
	if status == nil || status == Null {
		return 0, nil
	}
	n, err := interop.Numbers.AsInt(status.value)
	return int(n), err
}

func (exceptionLib) HasExceptionCause(r any) bool {
	c := self(r).Cause()
	return c != Null && c.IsException()
}

func (l exceptionLib) GetExceptionCause(r any) (any, error) {
	if !l.HasExceptionCause(r) {
		return nil, interop.Unsupported()
	}
	return self(r).Cause(), nil
}

func (exceptionLib) HasExceptionMessage(r any) bool {
	m := self(r).Slot("message")
	return m != nil && m != Null
}

func (l exceptionLib) GetExceptionMessage(r any) (any, error) {
	if !l.HasExceptionMessage(r) {
		return nil, interop.Unsupported()
	}
	return self(r).Slot("message"), nil
}

func (exceptionLib) HasExceptionStackTrace(r any) bool { return true }

func (exceptionLib) GetExceptionStackTrace(r any) (any, error) {
	trace := self(r).StackTrace()
	frames := make([]*Object, len(trace))
	for i, f := range trace {
		frames[i] = NewFrame(*f)
	}
	return NewArray(frames...), nil
}
