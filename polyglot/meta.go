package polyglot

import (
	"github.com/chazu/polyglot/interop"
	"github.com/chazu/polyglot/vm"
)

// ---------------------------------------------------------------------------
// Metaobjects and display
// ---------------------------------------------------------------------------

func (p *Interop) HasMetaObject(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasMetaObject, receiver)
	return ex.HasMetaObject(raw)
}

func (p *Interop) GetMetaObject(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetMetaObject, receiver)
	meta, err := ex.GetMetaObject(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(meta), nil
}

func (p *Interop) IsMetaObject(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsMetaObject, receiver)
	return ex.IsMetaObject(raw)
}

func (p *Interop) GetMetaQualifiedName(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetMetaQualifiedName, receiver)
	name, err := ex.GetMetaQualifiedName(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(name), nil
}

func (p *Interop) GetMetaSimpleName(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetMetaSimpleName, receiver)
	name, err := ex.GetMetaSimpleName(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(name), nil
}

func (p *Interop) IsMetaInstance(receiver, instance *vm.Object) (bool, error) {
	raw, ex, native := p.receiver(opIsMetaInstance, receiver)
	ok, err := ex.IsMetaInstance(raw, value(native, instance))
	return ok, p.translate(err)
}

// ToDisplayString renders receiver for humans. Receivers without their own
// rendering get a generic one.
func (p *Interop) ToDisplayString(receiver *vm.Object, allowSideEffects bool) *vm.Object {
	raw, ex, _ := p.receiver(opToDisplayString, receiver)
	return wrap(ex.ToDisplayString(raw, allowSideEffects))
}

// ---------------------------------------------------------------------------
// Identity
// ---------------------------------------------------------------------------

func (p *Interop) IsIdenticalOrUndefined(receiver, other *vm.Object) interop.TriState {
	raw, ex, _ := p.receiver(opIsIdenticalOrUndefined, receiver)
	return ex.IsIdenticalOrUndefined(raw, unwrap(other))
}

// IsIdentical is symmetric: when the receiver cannot decide, the other
// operand is asked.
func (p *Interop) IsIdentical(receiver, other *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsIdentical, receiver)
	otherRaw, otherEx, _ := p.receiver(opIsIdenticalOther, other)
	return ex.IsIdentical(raw, otherRaw, otherEx)
}

func (p *Interop) IdentityHashCode(receiver *vm.Object) (int32, error) {
	raw, ex, _ := p.receiver(opIdentityHashCode, receiver)
	h, err := ex.IdentityHashCode(raw)
	return h, p.translate(err)
}
