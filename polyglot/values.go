package polyglot

import "github.com/chazu/polyglot/vm"

// ---------------------------------------------------------------------------
// Null, booleans, strings
// ---------------------------------------------------------------------------

func (p *Interop) IsNull(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsNull, receiver)
	return ex.IsNull(raw)
}

func (p *Interop) IsBoolean(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsBoolean, receiver)
	return ex.IsBoolean(raw)
}

func (p *Interop) AsBoolean(receiver *vm.Object) (bool, error) {
	raw, ex, _ := p.receiver(opAsBoolean, receiver)
	b, err := ex.AsBoolean(raw)
	return b, p.translate(err)
}

func (p *Interop) IsString(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsString, receiver)
	return ex.IsString(raw)
}

func (p *Interop) AsString(receiver *vm.Object) (string, error) {
	raw, ex, _ := p.receiver(opAsString, receiver)
	s, err := ex.AsString(raw)
	return s, p.translate(err)
}

// ---------------------------------------------------------------------------
// Numbers
// ---------------------------------------------------------------------------

func (p *Interop) IsNumber(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsNumber, receiver)
	return ex.IsNumber(raw)
}

func (p *Interop) FitsInByte(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opFitsInByte, receiver)
	return ex.FitsInByte(raw)
}

func (p *Interop) FitsInShort(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opFitsInShort, receiver)
	return ex.FitsInShort(raw)
}

func (p *Interop) FitsInInt(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opFitsInInt, receiver)
	return ex.FitsInInt(raw)
}

func (p *Interop) FitsInLong(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opFitsInLong, receiver)
	return ex.FitsInLong(raw)
}

func (p *Interop) FitsInFloat(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opFitsInFloat, receiver)
	return ex.FitsInFloat(raw)
}

func (p *Interop) FitsInDouble(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opFitsInDouble, receiver)
	return ex.FitsInDouble(raw)
}

func (p *Interop) AsByte(receiver *vm.Object) (int8, error) {
	raw, ex, _ := p.receiver(opAsByte, receiver)
	v, err := ex.AsByte(raw)
	return v, p.translate(err)
}

func (p *Interop) AsShort(receiver *vm.Object) (int16, error) {
	raw, ex, _ := p.receiver(opAsShort, receiver)
	v, err := ex.AsShort(raw)
	return v, p.translate(err)
}

func (p *Interop) AsInt(receiver *vm.Object) (int32, error) {
	raw, ex, _ := p.receiver(opAsInt, receiver)
	v, err := ex.AsInt(raw)
	return v, p.translate(err)
}

func (p *Interop) AsLong(receiver *vm.Object) (int64, error) {
	raw, ex, _ := p.receiver(opAsLong, receiver)
	v, err := ex.AsLong(raw)
	return v, p.translate(err)
}

func (p *Interop) AsFloat(receiver *vm.Object) (float32, error) {
	raw, ex, _ := p.receiver(opAsFloat, receiver)
	v, err := ex.AsFloat(raw)
	return v, p.translate(err)
}

func (p *Interop) AsDouble(receiver *vm.Object) (float64, error) {
	raw, ex, _ := p.receiver(opAsDouble, receiver)
	v, err := ex.AsDouble(raw)
	return v, p.translate(err)
}

// ---------------------------------------------------------------------------
// Pointers
// ---------------------------------------------------------------------------

func (p *Interop) IsPointer(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opIsPointer, receiver)
	return ex.IsPointer(raw)
}

func (p *Interop) AsPointer(receiver *vm.Object) (int64, error) {
	raw, ex, _ := p.receiver(opAsPointer, receiver)
	v, err := ex.AsPointer(raw)
	return v, p.translate(err)
}

// ToNative asks the receiver to move to native memory. It is a no-op for
// receivers that are not pointers.
func (p *Interop) ToNative(receiver *vm.Object) {
	raw, ex, _ := p.receiver(opToNative, receiver)
	ex.ToNative(raw)
}
