package polyglot

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/polyglot/interop"
	"github.com/chazu/polyglot/vm"
)

var translateLog = commonlog.GetLogger("polyglot.translate")

// translate turns an error returned by a message into the guest exception
// the engine raises. Interop failures become instances of the matching
// guest exception class, raised foreign exceptions are boxed, and guest
// errors from reentrant calls pass through. Any other error is a broken
// invariant and panics.
func (p *Interop) translate(err error) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *vm.GuestError:
		return e
	case *interop.Throw:
		return vm.Raise(p.wrapException(e.Exception))
	}
	if k := interop.KindOf(err); k != interop.KindNone {
		return vm.Raise(p.failure(k, err))
	}

	var guest *vm.GuestError
	if errors.As(err, &guest) {
		return guest
	}
	var thrown *interop.Throw
	if errors.As(err, &thrown) {
		return vm.Raise(p.wrapException(thrown.Exception))
	}

	translateLog.Criticalf("unexpected failure %T: %s", err, err)
	panic(fmt.Sprintf("polyglot: unexpected failure %T: %v", err, err))
}

// failure builds the guest exception for an interop failure of kind k.
func (p *Interop) failure(k interop.Kind, err error) *vm.Object {
	var exc *vm.Object
	switch k {
	case interop.KindUnsupported:
		var f *interop.UnsupportedMessageError
		errors.As(err, &f)
		exc = p.newFailure(vm.UnsupportedMessageExceptionClass, f, f.Cause)

	case interop.KindUnknownIdentifier:
		var f *interop.UnknownIdentifierError
		errors.As(err, &f)
		exc = p.newFailure(vm.UnknownIdentifierExceptionClass, f, f.Cause)
		exc.SetSlot("unknownIdentifier", vm.NewString(f.Identifier))

	case interop.KindArity:
		var f *interop.ArityError
		errors.As(err, &f)
		exc = p.newFailure(vm.ArityExceptionClass, f, f.Cause)
		exc.SetSlot("expectedMinArity", vm.NewInteger(int32(f.Min)))
		exc.SetSlot("expectedMaxArity", vm.NewInteger(int32(f.Max)))
		exc.SetSlot("actualArity", vm.NewInteger(int32(f.Actual)))

	case interop.KindUnsupportedType:
		var f *interop.UnsupportedTypeError
		errors.As(err, &f)
		exc = p.newFailure(vm.UnsupportedTypeExceptionClass, f, f.Cause)
		supplied := make([]*vm.Object, len(f.Values))
		for i, v := range f.Values {
			supplied[i] = wrap(v)
		}
		exc.SetSlot("suppliedValues", vm.NewArray(supplied...))
		exc.SetSlot("hint", vm.NewString(f.Hint))

	case interop.KindInvalidArrayIndex:
		var f *interop.InvalidArrayIndexError
		errors.As(err, &f)
		exc = p.newFailure(vm.InvalidArrayIndexExceptionClass, f, f.Cause)
		exc.SetSlot("invalidIndex", vm.NewLong(f.Index))

	case interop.KindInvalidBufferOffset:
		var f *interop.InvalidBufferOffsetError
		errors.As(err, &f)
		exc = p.newFailure(vm.InvalidBufferOffsetExceptionClass, f, f.Cause)
		exc.SetSlot("byteOffset", vm.NewLong(f.Offset))
		exc.SetSlot("length", vm.NewLong(f.Length))

	case interop.KindStopIteration:
		var f *interop.StopIterationError
		errors.As(err, &f)
		exc = p.newFailure(vm.StopIterationExceptionClass, f, f.Cause)

	case interop.KindUnknownKey:
		var f *interop.UnknownKeyError
		errors.As(err, &f)
		exc = p.newFailure(vm.UnknownKeyExceptionClass, f, f.Cause)
		exc.SetSlot("unknownKey", wrap(f.Key))

	default:
		translateLog.Criticalf("no guest exception for failure kind %s", k)
		panic(fmt.Sprintf("polyglot: no guest exception for failure kind %s", k))
	}
	translateLog.Debugf("translated %s into %s", k, exc.Class().FullName())
	return exc
}

func (p *Interop) newFailure(c *vm.Class, f error, cause error) *vm.Object {
	return vm.NewThrowable(c, f.Error(), p.cause(cause))
}

// cause returns the guest form of a failure's cause when the cause is an
// exception, and nil otherwise.
func (p *Interop) cause(err error) *vm.Object {
	switch c := err.(type) {
	case nil:
		return nil
	case *vm.GuestError:
		return c.Exception
	case *interop.Throw:
		if p.isException(c.Exception) {
			return p.wrapException(c.Exception)
		}
		return nil
	}
	if p.isException(err) {
		return p.wrapException(err)
	}
	return nil
}

func (p *Interop) isException(raw any) bool {
	raw = unwrapAny(raw)
	return p.sites[opIsExceptionCause].Exports(p.resolver, raw).IsException(raw)
}
