package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chazu/polyglot/polyglot"
	"github.com/chazu/polyglot/vm"
)

const maxDumpDepth = 64

// dumper prints a value tree using only the guest side of the protocol.
type dumper struct {
	interop *polyglot.Interop
	out     io.Writer
}

func (d *dumper) line(depth int, format string, args ...any) {
	fmt.Fprintf(d.out, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) display(v *vm.Object) string {
	s, err := d.interop.AsString(d.interop.ToDisplayString(v, false))
	if err != nil {
		return "?"
	}
	return s
}

// typeName returns the qualified name of v's metaobject and a trailing
// space, or nothing when v has no metaobject.
func (d *dumper) typeName(v *vm.Object) string {
	if !d.interop.HasMetaObject(v) {
		return ""
	}
	meta, err := d.interop.GetMetaObject(v)
	if err != nil {
		return ""
	}
	name, err := d.interop.GetMetaQualifiedName(meta)
	if err != nil {
		return ""
	}
	s, err := d.interop.AsString(name)
	if err != nil {
		return ""
	}
	return s + " "
}

func (d *dumper) dump(v *vm.Object, depth int) error {
	p := d.interop
	if depth > maxDumpDepth {
		d.line(depth, "...")
		return nil
	}
	switch {
	case p.IsNull(v), p.IsBoolean(v), p.IsString(v), p.IsNumber(v), p.HasBufferElements(v):
		d.line(depth, "%s", d.display(v))
		return nil

	case p.HasArrayElements(v):
		size, err := p.GetArraySize(v)
		if err != nil {
			return err
		}
		d.line(depth, "%s[%d]", d.typeName(v), size)
		for i := range size {
			elem, err := p.ReadArrayElement(v, i)
			if err != nil {
				return err
			}
			if err := d.dump(elem, depth+1); err != nil {
				return err
			}
		}
		return nil

	case p.HasHashEntries(v):
		size, err := p.GetHashSize(v)
		if err != nil {
			return err
		}
		d.line(depth, "%s{%d}", d.typeName(v), size)
		it, err := p.GetHashEntriesIterator(v)
		if err != nil {
			return err
		}
		for {
			more, err := p.HasIteratorNextElement(it)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
			entry, err := p.GetIteratorNextElement(it)
			if err != nil {
				return err
			}
			key, err := p.ReadArrayElement(entry, 0)
			if err != nil {
				return err
			}
			value, err := p.ReadArrayElement(entry, 1)
			if err != nil {
				return err
			}
			d.line(depth+1, "%s:", d.display(key))
			if err := d.dump(value, depth+2); err != nil {
				return err
			}
		}

	case p.HasMembers(v):
		if name := d.typeName(v); name != "" {
			d.line(depth, "%s", strings.TrimSpace(name))
		} else {
			d.line(depth, "%s", d.display(v))
		}
		names, err := p.GetMembers(v, false)
		if err != nil {
			return err
		}
		n, err := p.GetArraySize(names)
		if err != nil {
			return err
		}
		for i := range n {
			elem, err := p.ReadArrayElement(names, i)
			if err != nil {
				return err
			}
			s, err := p.AsString(elem)
			if err != nil {
				return err
			}
			name := vm.NewString(s)
			if !p.IsMemberReadable(v, name) || p.IsMemberInvocable(v, name) {
				continue
			}
			value, err := p.ReadMember(v, name)
			if err != nil {
				return err
			}
			d.line(depth+1, "%s:", s)
			if err := d.dump(value, depth+2); err != nil {
				return err
			}
		}
		return nil
	}

	d.line(depth, "%s", d.display(v))
	return nil
}
