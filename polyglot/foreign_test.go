package polyglot

import (
	"reflect"
	"sync"

	"github.com/chazu/polyglot/interop"
)

// Test collaborators: a mutable sequence of longs, a foreign exception, a
// read-only byte view and a foreign function.

type sequence struct {
	mu    sync.Mutex
	items []int64
}

type sequenceLib struct {
	resolver *interop.Resolver
}

func (sequenceLib) HasArrayElements(r any) bool { return true }

func (sequenceLib) GetArraySize(r any) (int64, error) {
	s := r.(*sequence)
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.items)), nil
}

func (l sequenceLib) IsArrayElementReadable(r any, index int64) bool {
	size, _ := l.GetArraySize(r)
	return index >= 0 && index < size
}

func (l sequenceLib) IsArrayElementModifiable(r any, index int64) bool {
	return l.IsArrayElementReadable(r, index)
}

func (l sequenceLib) IsArrayElementInsertable(r any, index int64) bool {
	size, _ := l.GetArraySize(r)
	return index == size
}

func (l sequenceLib) IsArrayElementRemovable(r any, index int64) bool {
	return l.IsArrayElementReadable(r, index)
}

func (sequenceLib) ReadArrayElement(r any, index int64) (any, error) {
	s := r.(*sequence)
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= int64(len(s.items)) {
		return nil, interop.InvalidArrayIndex(index)
	}
	return s.items[index], nil
}

func (l sequenceLib) WriteArrayElement(r any, index int64, value any) error {
	ex := l.resolver.Resolve(value)
	if !ex.FitsInLong(value) {
		return interop.UnsupportedType("long element", value)
	}
	v, err := ex.AsLong(value)
	if err != nil {
		return err
	}

	s := r.(*sequence)
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case index >= 0 && index < int64(len(s.items)):
		s.items[index] = v
	case index == int64(len(s.items)):
		s.items = append(s.items, v)
	default:
		return interop.InvalidArrayIndex(index)
	}
	return nil
}

func (sequenceLib) RemoveArrayElement(r any, index int64) error {
	s := r.(*sequence)
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= int64(len(s.items)) {
		return interop.InvalidArrayIndex(index)
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

// fault is a foreign exception. It is also a Go error, so it can be the
// cause of an interop failure.
type fault struct {
	msg   string
	cause error
}

func (f *fault) Error() string { return f.msg }

type faultLib struct{}

func (faultLib) IsException(r any) bool { return true }

func (faultLib) ThrowException(r any) error { return &interop.Throw{Exception: r} }

func (faultLib) GetExceptionType(r any) (interop.ExceptionType, error) {
	return interop.ExceptionRuntimeError, nil
}

func (faultLib) IsExceptionIncompleteSource(r any) (bool, error) { return false, interop.Unsupported() }
func (faultLib) GetExceptionExitStatus(r any) (int, error)       { return 0, interop.Unsupported() }

func (faultLib) HasExceptionCause(r any) bool { return r.(*fault).cause != nil }

func (faultLib) GetExceptionCause(r any) (any, error) {
	if c := r.(*fault).cause; c != nil {
		return c, nil
	}
	return nil, interop.Unsupported()
}

func (faultLib) HasExceptionMessage(r any) bool { return true }

func (faultLib) GetExceptionMessage(r any) (any, error) { return r.(*fault).msg, nil }

func (faultLib) HasExceptionStackTrace(r any) bool { return false }

func (faultLib) GetExceptionStackTrace(r any) (any, error) { return nil, interop.Unsupported() }

// frozen is a read-only byte view.
type frozen []byte

var frozenBuffer = interop.ByteBuffer{View: func(r any) ([]byte, bool, bool) {
	return r.(frozen), false, true
}}

// callback is a foreign executable receiving raw arguments.
type callback func(args []any) (any, error)

type callbackLib struct{}

func (callbackLib) IsExecutable(r any) bool { return true }

func (callbackLib) Execute(r any, args ...any) (any, error) { return r.(callback)(args) }

func testCollaborator(r *interop.Resolver) interop.Exporter {
	var (
		seqShape      = reflect.TypeOf((*sequence)(nil))
		faultShape    = reflect.TypeOf((*fault)(nil))
		frozenShape   = reflect.TypeOf(frozen(nil))
		callbackShape = reflect.TypeOf(callback(nil))
	)
	return interop.ExporterFunc(func(shape any) *interop.Exports {
		switch shape {
		case seqShape:
			return interop.NewExports(shape, sequenceLib{r})
		case faultShape:
			return interop.NewExports(shape, faultLib{})
		case frozenShape:
			return interop.NewExports(shape, frozenBuffer)
		case callbackShape:
			return interop.NewExports(shape, callbackLib{})
		}
		return nil
	})
}

func newTestInterop(opts ...Option) *Interop {
	return New(append([]Option{WithCollaborator(testCollaborator)}, opts...)...)
}
