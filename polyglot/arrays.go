package polyglot

import "github.com/chazu/polyglot/vm"

func (p *Interop) HasArrayElements(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasArrayElements, receiver)
	return ex.HasArrayElements(raw)
}

func (p *Interop) GetArraySize(receiver *vm.Object) (int64, error) {
	raw, ex, _ := p.receiver(opGetArraySize, receiver)
	size, err := ex.GetArraySize(raw)
	return size, p.translate(err)
}

func (p *Interop) IsArrayElementReadable(receiver *vm.Object, index int64) bool {
	raw, ex, _ := p.receiver(opIsArrayElementReadable, receiver)
	return ex.IsArrayElementReadable(raw, index)
}

func (p *Interop) IsArrayElementModifiable(receiver *vm.Object, index int64) bool {
	raw, ex, _ := p.receiver(opIsArrayElementModifiable, receiver)
	return ex.IsArrayElementModifiable(raw, index)
}

func (p *Interop) IsArrayElementInsertable(receiver *vm.Object, index int64) bool {
	raw, ex, _ := p.receiver(opIsArrayElementInsertable, receiver)
	return ex.IsArrayElementInsertable(raw, index)
}

func (p *Interop) IsArrayElementRemovable(receiver *vm.Object, index int64) bool {
	raw, ex, _ := p.receiver(opIsArrayElementRemovable, receiver)
	return ex.IsArrayElementRemovable(raw, index)
}

func (p *Interop) IsArrayElementWritable(receiver *vm.Object, index int64) bool {
	raw, ex, _ := p.receiver(opIsArrayElementWritable, receiver)
	return ex.IsArrayElementWritable(raw, index)
}

func (p *Interop) IsArrayElementExisting(receiver *vm.Object, index int64) bool {
	raw, ex, _ := p.receiver(opIsArrayElementExisting, receiver)
	return ex.IsArrayElementExisting(raw, index)
}

func (p *Interop) ReadArrayElement(receiver *vm.Object, index int64) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opReadArrayElement, receiver)
	v, err := ex.ReadArrayElement(raw, index)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(v), nil
}

// WriteArrayElement stores value. Guest receivers get value as is, so a
// Byte written into an Object[] stays a Byte.
func (p *Interop) WriteArrayElement(receiver *vm.Object, index int64, v *vm.Object) error {
	raw, ex, native := p.receiver(opWriteArrayElement, receiver)
	return p.translate(ex.WriteArrayElement(raw, index, value(native, v)))
}

func (p *Interop) RemoveArrayElement(receiver *vm.Object, index int64) error {
	raw, ex, _ := p.receiver(opRemoveArrayElement, receiver)
	return p.translate(ex.RemoveArrayElement(raw, index))
}
