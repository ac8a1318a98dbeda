package vm

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// Throwables
// ---------------------------------------------------------------------------

// Frame is one element of a guest stack trace.
type Frame struct {
	Name      string // executable name; empty when unknown
	Declaring *Class // declaring class; nil when unknown
}

// NewThrowable creates an exception of class c. An empty message leaves
// the message slot null; a nil cause leaves the cause slot null.
func NewThrowable(c *Class, message string, cause *Object) *Object {
	if !c.IsSubclassOf(ThrowableClass) || c.Layout != LayoutThrowable {
		panic(fmt.Sprintf("NewThrowable: %s is not a throwable class", c.FullName()))
	}
	exc := NewInstance(c)
	if message != "" {
		exc.SetSlot("message", NewString(message))
	}
	if cause != nil {
		exc.SetSlot("cause", cause)
	}
	return exc
}

// NewExit creates an exit request carrying status.
func NewExit(status int32) *Object {
	exc := NewThrowable(ExitExceptionClass, fmt.Sprintf("exit %d", status), nil)
	exc.SetSlot("status", NewInteger(status))
	return exc
}

// NewParseError creates a parse error. incomplete marks source that could
// become valid with more input.
func NewParseError(message string, incomplete bool) *Object {
	exc := NewThrowable(ParseErrorClass, message, nil)
	exc.SetSlot("incompleteSource", NewBoolean(incomplete))
	return exc
}

// WithStackTrace records frames on a throwable and returns it.
func (o *Object) WithStackTrace(frames ...Frame) *Object {
	if !o.IsThrowable() {
		panic("Object.WithStackTrace: not a throwable")
	}
	trace := make([]*Frame, len(frames))
	for i := range frames {
		f := frames[i]
		trace[i] = &f
	}
	o.mu.Lock()
	o.value = trace
	o.mu.Unlock()
	return o
}

// StackTrace returns the recorded frames.
func (o *Object) StackTrace() []*Frame {
	o.mu.RLock()
	defer o.mu.RUnlock()
	trace, _ := o.value.([]*Frame)
	return trace
}

// IsThrowable reports whether o is a native guest exception.
func (o *Object) IsThrowable() bool {
	return o.class != nil && o.class.Layout == LayoutThrowable
}

// IsException reports whether o is a guest exception or a boxed foreign
// exception.
func (o *Object) IsException() bool {
	return o.IsThrowable() || o.class == ForeignExceptionClass
}

// Message returns the message of a throwable, or "" when it has none.
func (o *Object) Message() string {
	if m := o.Slot("message"); m != nil && m != Null && m.class == StringClass {
		return m.GoString()
	}
	return ""
}

// Cause returns the cause of a throwable, or Null.
func (o *Object) Cause() *Object {
	if c := o.Slot("cause"); c != nil {
		return c
	}
	return Null
}

// ---------------------------------------------------------------------------
// GuestError
// ---------------------------------------------------------------------------

// GuestError carries a guest exception across Go call boundaries. The
// exception is a native throwable or a boxed foreign exception.
type GuestError struct {
	Exception *Object
}

// Raise returns exc as a Go error. Panics when exc is not an exception.
func Raise(exc *Object) error {
	if exc == nil || !exc.IsException() {
		panic(fmt.Sprintf("Raise: %v is not an exception", exc))
	}
	return &GuestError{Exception: exc}
}

func (e *GuestError) Error() string {
	exc := e.Exception
	if exc.IsForeign() {
		if err, ok := exc.raw.(error); ok {
			return exc.class.FullName() + ": " + err.Error()
		}
		return fmt.Sprintf("%s: %v", exc.class.FullName(), exc.raw)
	}
	if msg := exc.Message(); msg != "" {
		return exc.class.FullName() + ": " + msg
	}
	return exc.class.FullName()
}

// Unwrap exposes the cause chain: the guest cause of a native throwable,
// or the boxed value of a foreign exception when it is a Go error.
func (e *GuestError) Unwrap() error {
	exc := e.Exception
	if exc.IsForeign() {
		err, _ := exc.raw.(error)
		return err
	}
	if cause := exc.Cause(); cause != Null && cause.IsException() {
		return &GuestError{Exception: cause}
	}
	return nil
}

// Is matches another GuestError carrying the same exception object.
func (e *GuestError) Is(target error) bool {
	t, ok := target.(*GuestError)
	return ok && t.Exception == e.Exception
}
