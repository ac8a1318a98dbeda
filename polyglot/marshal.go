package polyglot

import (
	"fmt"

	"github.com/chazu/polyglot/vm"
)

// ---------------------------------------------------------------------------
// Marshaling between guest objects and raw foreign values
// ---------------------------------------------------------------------------

// unwrap returns the raw value of a foreign box and the object itself for
// every other guest object.
func unwrap(o *vm.Object) any {
	if o.IsForeign() {
		return o.Raw()
	}
	return o
}

// unwrapAny is unwrap for values that may already be raw.
func unwrapAny(v any) any {
	if o, ok := v.(*vm.Object); ok && o != nil {
		return unwrap(o)
	}
	return v
}

// wrap returns guest objects unchanged and boxes anything else. The raw
// value is never classified further.
func wrap(raw any) *vm.Object {
	return vm.Wrap(raw)
}

// wrapException wraps a value the protocol reports as an exception. The
// result is an exception for the protocol too, so it can serve as a cause.
// Wrapping an exception box again returns the same box; a plain foreign
// box is reboxed as a foreign exception.
func (p *Interop) wrapException(raw any) *vm.Object {
	if o, ok := raw.(*vm.Object); ok && o != nil && o.IsForeign() && o.Class() != vm.ForeignExceptionClass {
		raw = o.Raw()
	}
	if !p.sites[opIsExceptionCause].Exports(p.resolver, raw).IsException(raw) {
		panic(fmt.Sprintf("polyglot: wrapping %T as an exception, but it is not one", raw))
	}
	return vm.WrapException(raw)
}

// memberName extracts a member name. Member names must be guest strings.
func memberName(member *vm.Object) string {
	if member == nil || member.Class() != vm.StringClass {
		panic(fmt.Sprintf("polyglot: member name %v is not a string", member))
	}
	return member.GoString()
}
