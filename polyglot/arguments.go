package polyglot

import (
	"fmt"

	"github.com/chazu/polyglot/vm"
)

// hostArguments converts a guest argument list for a callee. unwrap is true
// exactly when the callee is foreign.
//
// A guest Object[] that needs no unwrapping is returned as its backing
// slice without copying; the callee must not retain or modify it. Foreign
// argument lists are read through the array messages.
func (p *Interop) hostArguments(unwrapArgs bool, args *vm.Object) ([]any, error) {
	if args == nil {
		panic("polyglot: nil argument list")
	}
	if !args.IsForeign() {
		if args.Class() != vm.ArrayClass {
			panic(fmt.Sprintf("polyglot: argument list %v is not an Object[]", args))
		}
		elems := args.Elements()
		if !unwrapArgs {
			return elems, nil
		}
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = unwrap(e.(*vm.Object))
		}
		return out, nil
	}

	raw := args.Raw()
	ex := p.sites[opHostArguments].Exports(p.resolver, raw)
	if !ex.HasArrayElements(raw) {
		panic(fmt.Sprintf("polyglot: argument list %T has no array elements", raw))
	}
	size, err := ex.GetArraySize(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	out := make([]any, size)
	for i := range out {
		v, err := ex.ReadArrayElement(raw, int64(i))
		if err != nil {
			return nil, p.translate(err)
		}
		if unwrapArgs {
			out[i] = unwrapAny(v)
		} else {
			out[i] = wrap(v)
		}
	}
	return out, nil
}
