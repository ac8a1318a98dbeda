package polyglot

import "github.com/chazu/polyglot/vm"

// ---------------------------------------------------------------------------
// Executables and instantiables
// ---------------------------------------------------------------------------

func (p *Interop) IsExecutable(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsExecutable, receiver)
	return ex.IsExecutable(raw)
}

// Execute calls receiver with the elements of args.
func (p *Interop) Execute(receiver, args *vm.Object) (*vm.Object, error) {
	raw, ex, native := p.receiver(opExecute, receiver)
	hostArgs, err := p.hostArguments(!native, args)
	if err != nil {
		return nil, err
	}
	result, err := ex.Execute(raw, hostArgs...)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(result), nil
}

func (p *Interop) IsInstantiable(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsInstantiable, receiver)
	return ex.IsInstantiable(raw)
}

func (p *Interop) Instantiate(receiver, args *vm.Object) (*vm.Object, error) {
	raw, ex, native := p.receiver(opInstantiate, receiver)
	hostArgs, err := p.hostArguments(!native, args)
	if err != nil {
		return nil, err
	}
	result, err := ex.Instantiate(raw, hostArgs...)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(result), nil
}

// ---------------------------------------------------------------------------
// Stack frames
// ---------------------------------------------------------------------------

func (p *Interop) HasExecutableName(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasExecutableName, receiver)
	return ex.HasExecutableName(raw)
}

func (p *Interop) GetExecutableName(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetExecutableName, receiver)
	name, err := ex.GetExecutableName(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(name), nil
}

func (p *Interop) HasDeclaringMetaObject(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasDeclaringMetaObject, receiver)
	return ex.HasDeclaringMetaObject(raw)
}

func (p *Interop) GetDeclaringMetaObject(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetDeclaringMetaObject, receiver)
	meta, err := ex.GetDeclaringMetaObject(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(meta), nil
}
