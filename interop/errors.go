package interop

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Failure taxonomy
// ---------------------------------------------------------------------------

// Kind identifies one member of the closed set of interop failures.
type Kind uint8

const (
	KindNone Kind = iota
	KindUnsupported
	KindUnknownIdentifier
	KindArity
	KindUnsupportedType
	KindInvalidArrayIndex
	KindInvalidBufferOffset
	KindStopIteration
	KindUnknownKey
)

var kindNames = [...]string{
	KindNone:                "none",
	KindUnsupported:         "unsupported message",
	KindUnknownIdentifier:   "unknown identifier",
	KindArity:               "arity",
	KindUnsupportedType:     "unsupported type",
	KindInvalidArrayIndex:   "invalid array index",
	KindInvalidBufferOffset: "invalid buffer offset",
	KindStopIteration:       "stop iteration",
	KindUnknownKey:          "unknown key",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// UnsupportedMessageError reports that the receiver does not support the
// message, or does not support it in its current state.
type UnsupportedMessageError struct {
	Cause error
}

func (e *UnsupportedMessageError) Error() string {
	if e.Cause != nil {
		return "unsupported message: " + e.Cause.Error()
	}
	return "unsupported message"
}

func (e *UnsupportedMessageError) Unwrap() error { return e.Cause }

// UnknownIdentifierError reports a member name the receiver does not know.
type UnknownIdentifierError struct {
	Identifier string
	Cause      error
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown identifier: %s", e.Identifier)
}

func (e *UnknownIdentifierError) Unwrap() error { return e.Cause }

// ArityError reports a wrong argument count. Max < 0 means the callee
// accepts any number of arguments above Min.
type ArityError struct {
	Min, Max int
	Actual   int
	Cause    error
}

func (e *ArityError) Error() string {
	switch {
	case e.Max < 0:
		return fmt.Sprintf("arity error: expected at least %d arguments, got %d", e.Min, e.Actual)
	case e.Min == e.Max:
		return fmt.Sprintf("arity error: expected %d arguments, got %d", e.Min, e.Actual)
	default:
		return fmt.Sprintf("arity error: expected %d to %d arguments, got %d", e.Min, e.Max, e.Actual)
	}
}

func (e *ArityError) Unwrap() error { return e.Cause }

// UnsupportedTypeError reports argument values the receiver cannot accept.
// Values holds the arguments as supplied; Hint is an optional explanation.
type UnsupportedTypeError struct {
	Values []any
	Hint   string
	Cause  error
}

func (e *UnsupportedTypeError) Error() string {
	if e.Hint != "" {
		return "unsupported type: " + e.Hint
	}
	return fmt.Sprintf("unsupported type for %d value(s)", len(e.Values))
}

func (e *UnsupportedTypeError) Unwrap() error { return e.Cause }

// InvalidArrayIndexError reports an array index outside the readable,
// modifiable or insertable range for the attempted message.
type InvalidArrayIndexError struct {
	Index int64
	Cause error
}

func (e *InvalidArrayIndexError) Error() string {
	return fmt.Sprintf("invalid array index %d", e.Index)
}

func (e *InvalidArrayIndexError) Unwrap() error { return e.Cause }

// InvalidBufferOffsetError reports a buffer access of Length bytes at
// Offset that does not fit within the buffer.
type InvalidBufferOffsetError struct {
	Offset int64
	Length int64
	Cause  error
}

func (e *InvalidBufferOffsetError) Error() string {
	return fmt.Sprintf("invalid buffer access of length %d at byte offset %d", e.Length, e.Offset)
}

func (e *InvalidBufferOffsetError) Unwrap() error { return e.Cause }

// StopIterationError reports that an iterator has no further elements.
type StopIterationError struct {
	Cause error
}

func (e *StopIterationError) Error() string { return "stop iteration" }

func (e *StopIterationError) Unwrap() error { return e.Cause }

// UnknownKeyError reports a hash key that has no entry.
type UnknownKeyError struct {
	Key   any
	Cause error
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key: %v", e.Key)
}

func (e *UnknownKeyError) Unwrap() error { return e.Cause }

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

func Unsupported() error { return &UnsupportedMessageError{} }

func UnknownIdentifier(name string) error { return &UnknownIdentifierError{Identifier: name} }

func Arity(min, max, actual int) error { return &ArityError{Min: min, Max: max, Actual: actual} }

func UnsupportedType(hint string, values ...any) error {
	return &UnsupportedTypeError{Values: values, Hint: hint}
}

func InvalidArrayIndex(index int64) error { return &InvalidArrayIndexError{Index: index} }

func InvalidBufferOffset(offset, length int64) error {
	return &InvalidBufferOffsetError{Offset: offset, Length: length}
}

func StopIteration() error { return &StopIterationError{} }

func UnknownKey(key any) error { return &UnknownKeyError{Key: key} }

// KindOf reports which failure err is, looking through wrapping. Errors
// outside the taxonomy report KindNone.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	switch err.(type) {
	case *UnsupportedMessageError:
		return KindUnsupported
	case *UnknownIdentifierError:
		return KindUnknownIdentifier
	case *ArityError:
		return KindArity
	case *UnsupportedTypeError:
		return KindUnsupportedType
	case *InvalidArrayIndexError:
		return KindInvalidArrayIndex
	case *InvalidBufferOffsetError:
		return KindInvalidBufferOffset
	case *StopIterationError:
		return KindStopIteration
	case *UnknownKeyError:
		return KindUnknownKey
	case *Throw:
		return KindNone
	}
	if next := errors.Unwrap(err); next != nil {
		return KindOf(next)
	}
	return KindNone
}

// ---------------------------------------------------------------------------
// Raised foreign exceptions
// ---------------------------------------------------------------------------

// Throw is returned by a collaborator that raises one of its own exception
// values, either from ThrowException or from a failing callee. It is not
// an interop failure: the value propagates to the guest as an exception.
type Throw struct {
	Exception any
}

func (t *Throw) Error() string {
	if err, ok := t.Exception.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("foreign exception: %v", t.Exception)
}

// Unwrap exposes the thrown value when it is itself a Go error.
func (t *Throw) Unwrap() error {
	err, _ := t.Exception.(error)
	return err
}
