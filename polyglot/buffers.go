package polyglot

import "github.com/chazu/polyglot/vm"

// ---------------------------------------------------------------------------
// Buffers. order is a guest byte order token: vm.LittleEndian selects
// little-endian, any other value big-endian. Accesses are unaligned and not
// atomic.
// ---------------------------------------------------------------------------

func (p *Interop) HasBufferElements(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasBufferElements, receiver)
	return ex.HasBufferElements(raw)
}

func (p *Interop) IsBufferWritable(receiver *vm.Object) (bool, error) {
	raw, ex, _ := p.receiver(opIsBufferWritable, receiver)
	ok, err := ex.IsBufferWritable(raw)
	return ok, p.translate(err)
}

func (p *Interop) GetBufferSize(receiver *vm.Object) (int64, error) {
	raw, ex, _ := p.receiver(opGetBufferSize, receiver)
	size, err := ex.GetBufferSize(raw)
	return size, p.translate(err)
}

func (p *Interop) ReadBufferByte(receiver *vm.Object, offset int64) (int8, error) {
	raw, ex, _ := p.receiver(opReadBufferByte, receiver)
	v, err := ex.ReadBufferByte(raw, offset)
	return v, p.translate(err)
}

func (p *Interop) WriteBufferByte(receiver *vm.Object, offset int64, v int8) error {
	raw, ex, _ := p.receiver(opWriteBufferByte, receiver)
	return p.translate(ex.WriteBufferByte(raw, offset, v))
}

func (p *Interop) ReadBufferShort(receiver, order *vm.Object, offset int64) (int16, error) {
	raw, ex, _ := p.receiver(opReadBufferShort, receiver)
	v, err := ex.ReadBufferShort(raw, vm.ByteOrderOf(order), offset)
	return v, p.translate(err)
}

func (p *Interop) WriteBufferShort(receiver, order *vm.Object, offset int64, v int16) error {
	raw, ex, _ := p.receiver(opWriteBufferShort, receiver)
	return p.translate(ex.WriteBufferShort(raw, vm.ByteOrderOf(order), offset, v))
}

func (p *Interop) ReadBufferInt(receiver, order *vm.Object, offset int64) (int32, error) {
	raw, ex, _ := p.receiver(opReadBufferInt, receiver)
	v, err := ex.ReadBufferInt(raw, vm.ByteOrderOf(order), offset)
	return v, p.translate(err)
}

func (p *Interop) WriteBufferInt(receiver, order *vm.Object, offset int64, v int32) error {
	raw, ex, _ := p.receiver(opWriteBufferInt, receiver)
	return p.translate(ex.WriteBufferInt(raw, vm.ByteOrderOf(order), offset, v))
}

func (p *Interop) ReadBufferLong(receiver, order *vm.Object, offset int64) (int64, error) {
	raw, ex, _ := p.receiver(opReadBufferLong, receiver)
	v, err := ex.ReadBufferLong(raw, vm.ByteOrderOf(order), offset)
	return v, p.translate(err)
}

func (p *Interop) WriteBufferLong(receiver, order *vm.Object, offset int64, v int64) error {
	raw, ex, _ := p.receiver(opWriteBufferLong, receiver)
	return p.translate(ex.WriteBufferLong(raw, vm.ByteOrderOf(order), offset, v))
}

func (p *Interop) ReadBufferFloat(receiver, order *vm.Object, offset int64) (float32, error) {
	raw, ex, _ := p.receiver(opReadBufferFloat, receiver)
	v, err := ex.ReadBufferFloat(raw, vm.ByteOrderOf(order), offset)
	return v, p.translate(err)
}

func (p *Interop) WriteBufferFloat(receiver, order *vm.Object, offset int64, v float32) error {
	raw, ex, _ := p.receiver(opWriteBufferFloat, receiver)
	return p.translate(ex.WriteBufferFloat(raw, vm.ByteOrderOf(order), offset, v))
}

func (p *Interop) ReadBufferDouble(receiver, order *vm.Object, offset int64) (float64, error) {
	raw, ex, _ := p.receiver(opReadBufferDouble, receiver)
	v, err := ex.ReadBufferDouble(raw, vm.ByteOrderOf(order), offset)
	return v, p.translate(err)
}

func (p *Interop) WriteBufferDouble(receiver, order *vm.Object, offset int64, v float64) error {
	raw, ex, _ := p.receiver(opWriteBufferDouble, receiver)
	return p.translate(ex.WriteBufferDouble(raw, vm.ByteOrderOf(order), offset, v))
}
