package gowrap

import (
	"context"
	"errors"
	"reflect"
	"runtime"
	"strings"

	"github.com/chazu/polyglot/interop"
)

// ---------------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------------

// funcLib serves Go functions as executables. A trailing error result is
// raised as a foreign exception when non-nil; several remaining results
// come back as a read-only array.
type funcLib struct{ e *Exporter }

func (funcLib) IsExecutable(r any) bool { return !reflect.ValueOf(r).IsNil() }

func (l funcLib) Execute(r any, args ...any) (any, error) {
	fn := reflect.ValueOf(r)
	if fn.IsNil() {
		return nil, interop.Unsupported()
	}
	return l.e.call(fn, args)
}

func (funcLib) HasExecutableName(r any) bool { return funcName(r) != "" }

func (funcLib) GetExecutableName(r any) (any, error) {
	if name := funcName(r); name != "" {
		return name, nil
	}
	return nil, interop.Unsupported()
}

func (funcLib) HasDeclaringMetaObject(r any) bool { return false }

func (funcLib) GetDeclaringMetaObject(r any) (any, error) { return nil, interop.Unsupported() }

// funcName returns the short runtime name of a function, e.g. "strings.ToUpper".
func funcName(r any) string {
	v := reflect.ValueOf(r)
	if v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// call converts args to the parameter types of fn and calls it.
func (e *Exporter) call(fn reflect.Value, args []any) (any, error) {
	ft := fn.Type()
	n := ft.NumIn()
	lo, hi := n, n
	if ft.IsVariadic() {
		lo, hi = n-1, -1
	}
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return nil, interop.Arity(lo, hi, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := ft.In(min(i, n-1))
		if ft.IsVariadic() && i >= n-1 {
			pt = pt.Elem()
		}
		v, err := e.convert(a, pt)
		if err != nil {
			return nil, err
		}
		in[i] = v
	}
	return results(ft, fn.Call(in))
}

func results(ft reflect.Type, out []reflect.Value) (any, error) {
	if n := ft.NumOut(); n > 0 && ft.Out(n-1) == errorType {
		if errV := out[n-1]; !errV.IsNil() {
			return nil, &interop.Throw{Exception: errV.Interface()}
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	items := make(interop.Elements, len(out))
	for i, v := range out {
		items[i] = v.Interface()
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// errorLib serves Go errors as exceptions. Errors implementing ExitCoder
// are exit requests; context cancellation is an interrupt.
type errorLib struct{}

func asError(r any) (error, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	if v := reflect.ValueOf(r); nillable(v.Type()) && v.IsNil() {
		return nil, false
	}
	return err, true
}

func (errorLib) IsException(r any) bool {
	_, ok := asError(r)
	return ok
}

func (errorLib) ThrowException(r any) error {
	if _, ok := asError(r); !ok {
		return interop.Unsupported()
	}
	return &interop.Throw{Exception: r}
}

func (errorLib) GetExceptionType(r any) (interop.ExceptionType, error) {
	err, ok := asError(r)
	if !ok {
		return 0, interop.Unsupported()
	}
	if _, exit := err.(ExitCoder); exit {
		return interop.ExceptionExit, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return interop.ExceptionInterrupt, nil
	}
	return interop.ExceptionRuntimeError, nil
}

func (errorLib) IsExceptionIncompleteSource(r any) (bool, error) {
	return false, interop.Unsupported()
}

func (errorLib) GetExceptionExitStatus(r any) (int, error) {
	if c, ok := r.(ExitCoder); ok {
		return c.ExitCode(), nil
	}
	return 0, interop.Unsupported()
}

func (errorLib) HasExceptionCause(r any) bool {
	err, ok := asError(r)
	return ok && errors.Unwrap(err) != nil
}

func (errorLib) GetExceptionCause(r any) (any, error) {
	if err, ok := asError(r); ok {
		if cause := errors.Unwrap(err); cause != nil {
			return cause, nil
		}
	}
	return nil, interop.Unsupported()
}

func (errorLib) HasExceptionMessage(r any) bool {
	_, ok := asError(r)
	return ok
}

func (errorLib) GetExceptionMessage(r any) (any, error) {
	if err, ok := asError(r); ok {
		return err.Error(), nil
	}
	return nil, interop.Unsupported()
}

func (errorLib) HasExceptionStackTrace(r any) bool { return false }

func (errorLib) GetExceptionStackTrace(r any) (any, error) { return nil, interop.Unsupported() }
