package polyglot

import "github.com/chazu/polyglot/vm"

func (p *Interop) HasIterator(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasIterator, receiver)
	return ex.HasIterator(raw)
}

func (p *Interop) GetIterator(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetIterator, receiver)
	it, err := ex.GetIterator(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(it), nil
}

func (p *Interop) IsIterator(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsIterator, receiver)
	return ex.IsIterator(raw)
}

func (p *Interop) HasIteratorNextElement(receiver *vm.Object) (bool, error) {
	raw, ex, _ := p.receiver(opHasIteratorNextElement, receiver)
	ok, err := ex.HasIteratorNextElement(raw)
	return ok, p.translate(err)
}

// GetIteratorNextElement may raise StopIterationException even right after
// HasIteratorNextElement reported true, when the source changed meanwhile.
func (p *Interop) GetIteratorNextElement(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetIteratorNextElement, receiver)
	v, err := ex.GetIteratorNextElement(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(v), nil
}
