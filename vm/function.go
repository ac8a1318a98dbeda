package vm

import "github.com/chazu/polyglot/interop"

// Function is a guest executable implemented in Go. MaxArity < 0 accepts
// any number of arguments above MinArity. Fn reports guest failures as
// *GuestError.
type Function struct {
	Name      string
	Declaring *Class
	MinArity  int
	MaxArity  int
	Fn        func(args []*Object) (*Object, error)

	method bool
}

// NewFunction creates a guest function object.
func NewFunction(fn *Function) *Object {
	return &Object{class: FunctionClass, value: fn}
}

// Call checks arity and invokes the function. For methods self is passed
// as the first argument and is not counted.
func (f *Function) Call(self *Object, args []*Object) (*Object, error) {
	if len(args) < f.MinArity || (f.MaxArity >= 0 && len(args) > f.MaxArity) {
		return nil, interop.Arity(f.MinArity, f.MaxArity, len(args))
	}
	if f.method {
		args = append([]*Object{self}, args...)
	}
	result, err := f.Fn(args)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = Null
	}
	return result, nil
}

// NewFrame creates a stack trace element.
func NewFrame(f Frame) *Object {
	return &Object{class: FrameClass, value: &f}
}

// ---------------------------------------------------------------------------
// Iterators
// ---------------------------------------------------------------------------

// iterState is the payload of guest iterators. next reports ok=false once
// the source is exhausted.
type iterState struct {
	hasNext func() bool
	next    func() (*Object, bool)
}

// NewIterator creates a guest iterator from two closures. The closures are
// called under the iterator's lock.
func NewIterator(hasNext func() bool, next func() (*Object, bool)) *Object {
	return &Object{class: IteratorClass, value: &iterState{hasNext: hasNext, next: next}}
}

// arrayIterator walks an Object[]; the length is re-read at every step.
func arrayIterator(arr *Object) *Object {
	pos := 0
	size := func() int {
		arr.mu.RLock()
		defer arr.mu.RUnlock()
		return len(arr.Elements())
	}
	return NewIterator(
		func() bool { return pos < size() },
		func() (*Object, bool) {
			arr.mu.RLock()
			defer arr.mu.RUnlock()
			elems := arr.Elements()
			if pos >= len(elems) {
				return nil, false
			}
			v := elems[pos].(*Object)
			pos++
			return v, true
		},
	)
}
