package polyglot

import "github.com/chazu/polyglot/vm"

// ---------------------------------------------------------------------------
// Members. Member names are guest strings; anything else panics.
// ---------------------------------------------------------------------------

func (p *Interop) HasMembers(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasMembers, receiver)
	return ex.HasMembers(raw)
}

// GetMembers returns a value with array elements holding the member names.
func (p *Interop) GetMembers(receiver *vm.Object, includeInternal bool) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetMembers, receiver)
	names, err := ex.GetMembers(raw, includeInternal)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(names), nil
}

func (p *Interop) IsMemberReadable(receiver, member *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsMemberReadable, receiver)
	return ex.IsMemberReadable(raw, memberName(member))
}

func (p *Interop) IsMemberModifiable(receiver, member *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsMemberModifiable, receiver)
	return ex.IsMemberModifiable(raw, memberName(member))
}

func (p *Interop) IsMemberInsertable(receiver, member *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsMemberInsertable, receiver)
	return ex.IsMemberInsertable(raw, memberName(member))
}

func (p *Interop) IsMemberRemovable(receiver, member *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsMemberRemovable, receiver)
	return ex.IsMemberRemovable(raw, memberName(member))
}

func (p *Interop) IsMemberInvocable(receiver, member *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsMemberInvocable, receiver)
	return ex.IsMemberInvocable(raw, memberName(member))
}

func (p *Interop) IsMemberWritable(receiver, member *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsMemberWritable, receiver)
	return ex.IsMemberWritable(raw, memberName(member))
}

func (p *Interop) IsMemberExisting(receiver, member *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsMemberExisting, receiver)
	return ex.IsMemberExisting(raw, memberName(member))
}

func (p *Interop) ReadMember(receiver, member *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opReadMember, receiver)
	v, err := ex.ReadMember(raw, memberName(member))
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(v), nil
}

func (p *Interop) WriteMember(receiver, member, v *vm.Object) error {
	raw, ex, native := p.receiver(opWriteMember, receiver)
	return p.translate(ex.WriteMember(raw, memberName(member), value(native, v)))
}

func (p *Interop) RemoveMember(receiver, member *vm.Object) error {
	raw, ex, _ := p.receiver(opRemoveMember, receiver)
	return p.translate(ex.RemoveMember(raw, memberName(member)))
}

// InvokeMember calls a member with the elements of args, which must be a
// guest Object[] or a foreign value with array elements.
func (p *Interop) InvokeMember(receiver, member, args *vm.Object) (*vm.Object, error) {
	raw, ex, native := p.receiver(opInvokeMember, receiver)
	name := memberName(member)
	hostArgs, err := p.hostArguments(!native, args)
	if err != nil {
		return nil, err
	}
	result, err := ex.InvokeMember(raw, name, hostArgs...)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(result), nil
}

func (p *Interop) HasMemberReadSideEffects(receiver, member *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasMemberReadSideEffects, receiver)
	return ex.HasMemberReadSideEffects(raw, memberName(member))
}

func (p *Interop) HasMemberWriteSideEffects(receiver, member *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasMemberWriteSideEffects, receiver)
	return ex.HasMemberWriteSideEffects(raw, memberName(member))
}
