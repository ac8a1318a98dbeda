package polyglot

import "github.com/chazu/polyglot/vm"

// ---------------------------------------------------------------------------
// Hashes. Keys and values are marshaled like written values: guest
// receivers get the guest objects, foreign receivers the raw values.
// ---------------------------------------------------------------------------

func (p *Interop) HasHashEntries(receiver *vm.Object) bool {
	raw, ex, _ := p.receiver(opHasHashEntries, receiver)
	return ex.HasHashEntries(raw)
}

func (p *Interop) GetHashSize(receiver *vm.Object) (int64, error) {
	raw, ex, _ := p.receiver(opGetHashSize, receiver)
	size, err := ex.GetHashSize(raw)
	return size, p.translate(err)
}

func (p *Interop) IsHashEntryReadable(receiver, key *vm.Object) bool {
	raw, ex, native := p.receiver(opIsHashEntryReadable, receiver)
	return ex.IsHashEntryReadable(raw, value(native, key))
}

func (p *Interop) IsHashEntryModifiable(receiver, key *vm.Object) bool {
	raw, ex, native := p.receiver(opIsHashEntryModifiable, receiver)
	return ex.IsHashEntryModifiable(raw, value(native, key))
}

func (p *Interop) IsHashEntryInsertable(receiver, key *vm.Object) bool {
	raw, ex, native := p.receiver(opIsHashEntryInsertable, receiver)
	return ex.IsHashEntryInsertable(raw, value(native, key))
}

func (p *Interop) IsHashEntryRemovable(receiver, key *vm.Object) bool {
	raw, ex, native := p.receiver(opIsHashEntryRemovable, receiver)
	return ex.IsHashEntryRemovable(raw, value(native, key))
}

func (p *Interop) IsHashEntryWritable(receiver, key *vm.Object) bool {
	raw, ex, native := p.receiver(opIsHashEntryWritable, receiver)
	return ex.IsHashEntryWritable(raw, value(native, key))
}

func (p *Interop) IsHashEntryExisting(receiver, key *vm.Object) bool {
	raw, ex, native := p.receiver(opIsHashEntryExisting, receiver)
	return ex.IsHashEntryExisting(raw, value(native, key))
}

func (p *Interop) ReadHashValue(receiver, key *vm.Object) (*vm.Object, error) {
	raw, ex, native := p.receiver(opReadHashValue, receiver)
	v, err := ex.ReadHashValue(raw, value(native, key))
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(v), nil
}

// ReadHashValueOrDefault returns def, unchanged, whenever the entry is not
// readable.
func (p *Interop) ReadHashValueOrDefault(receiver, key, def *vm.Object) (*vm.Object, error) {
	raw, ex, native := p.receiver(opReadHashValueOrDefault, receiver)
	v, err := ex.ReadHashValueOrDefault(raw, value(native, key), def)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(v), nil
}

func (p *Interop) WriteHashEntry(receiver, key, v *vm.Object) error {
	raw, ex, native := p.receiver(opWriteHashEntry, receiver)
	return p.translate(ex.WriteHashEntry(raw, value(native, key), value(native, v)))
}

func (p *Interop) RemoveHashEntry(receiver, key *vm.Object) error {
	raw, ex, native := p.receiver(opRemoveHashEntry, receiver)
	return p.translate(ex.RemoveHashEntry(raw, value(native, key)))
}

func (p *Interop) GetHashEntriesIterator(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetHashEntriesIterator, receiver)
	it, err := ex.GetHashEntriesIterator(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(it), nil
}

func (p *Interop) GetHashKeysIterator(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetHashKeysIterator, receiver)
	it, err := ex.GetHashKeysIterator(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(it), nil
}

func (p *Interop) GetHashValuesIterator(receiver *vm.Object) (*vm.Object, error) {
	raw, ex, _ := p.receiver(opGetHashValuesIterator, receiver)
	it, err := ex.GetHashValuesIterator(raw)
	if err != nil {
		return nil, p.translate(err)
	}
	return wrap(it), nil
}
