// Package cbordoc exposes CBOR documents to the interop protocol. Items
// are decoded one level at a time, on first access, so large documents
// can be inspected without materializing them.
package cbordoc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"slices"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Kind classifies an item by its CBOR major type. Major type 7 is split
// into booleans, null, floats and other simple values, and bignum tags are
// told apart from other tags. Items use their kind as interop shape.
type Kind uint8

const (
	KindUnsigned Kind = iota
	KindNegative
	KindBytes
	KindText
	KindArray
	KindMap
	KindTag
	KindBignum
	KindBool
	KindNull
	KindFloat
	KindSimple
)

var kindNames = [...]string{
	KindUnsigned: "unsigned",
	KindNegative: "negative",
	KindBytes:    "bytes",
	KindText:     "text",
	KindArray:    "array",
	KindMap:      "map",
	KindTag:      "tag",
	KindBignum:   "bignum",
	KindBool:     "bool",
	KindNull:     "null",
	KindFloat:    "float",
	KindSimple:   "simple",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbordoc: failed to create CBOR enc mode: %v", err))
	}
	encMode = em

	dm, err := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cbordoc: failed to create CBOR dec mode: %v", err))
	}
	decMode = dm
}

// Item is one CBOR data item. Its own level is decoded on first access;
// nested items stay encoded until they are reached. Items are immutable
// and safe for concurrent use.
type Item struct {
	raw  cbor.RawMessage
	kind Kind

	once sync.Once
	err  error

	scalar  any           // numbers, strings, booleans
	elems   []*Item       // arrays
	keys    []any         // maps, in canonical key order
	values  map[any]*Item // maps
	tag     uint64        // tags and bignums
	content *Item
}

// Parse checks that data holds exactly one well-formed CBOR item and
// returns it. Only the top level is decoded.
func Parse(data []byte) (*Item, error) {
	var raw cbor.RawMessage
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cbordoc: %w", err)
	}
	it := newItem(raw)
	if err := it.decode(); err != nil {
		return nil, err
	}
	return it, nil
}

func newItem(raw cbor.RawMessage) *Item {
	return &Item{raw: raw, kind: kindOf(raw)}
}

// InteropShape makes items dispatch on their kind.
func (it *Item) InteropShape() any { return it.kind }

// Kind returns the item's kind.
func (it *Item) Kind() Kind { return it.kind }

// Raw returns the item's encoding. The slice must not be modified.
func (it *Item) Raw() []byte { return it.raw }

// Value returns the decoded Go value of a scalar item: uint64, int64 or
// *big.Int for integers, float64, bool, string, []byte, or nil.
func (it *Item) Value() (any, error) {
	if err := it.decode(); err != nil {
		return nil, err
	}
	return it.scalar, nil
}

// Len returns the number of elements of an array or entries of a map.
func (it *Item) Len() int {
	if it.decode() != nil {
		return 0
	}
	if it.kind == KindMap {
		return len(it.keys)
	}
	return len(it.elems)
}

func (it *Item) decode() error {
	it.once.Do(func() {
		if err := it.decodeLevel(); err != nil {
			it.err = fmt.Errorf("cbordoc: decode %s: %w", it.kind, err)
		}
	})
	return it.err
}

func (it *Item) decodeLevel() error {
	switch it.kind {
	case KindUnsigned:
		n, _ := argument(it.raw)
		it.scalar = n

	case KindNegative:
		n, _ := argument(it.raw)
		if n <= math.MaxInt64 {
			it.scalar = -1 - int64(n)
		} else {
			b := new(big.Int).SetUint64(n)
			it.scalar = b.Neg(b.Add(b, big.NewInt(1)))
		}

	case KindBytes:
		var b []byte
		if err := decMode.Unmarshal(it.raw, &b); err != nil {
			return err
		}
		it.scalar = b

	case KindText:
		var s string
		if err := decMode.Unmarshal(it.raw, &s); err != nil {
			return err
		}
		it.scalar = s

	case KindFloat:
		var f float64
		if err := decMode.Unmarshal(it.raw, &f); err != nil {
			return err
		}
		it.scalar = f

	case KindBool:
		it.scalar = it.raw[0]&0x1f == 21

	case KindNull:
		it.scalar = nil

	case KindSimple:
		n, _ := argument(it.raw)
		it.scalar = n

	case KindArray:
		var elems []cbor.RawMessage
		if err := decMode.Unmarshal(it.raw, &elems); err != nil {
			return err
		}
		it.elems = make([]*Item, len(elems))
		for i, e := range elems {
			it.elems[i] = newItem(e)
		}

	case KindMap:
		var m map[any]cbor.RawMessage
		if err := decMode.Unmarshal(it.raw, &m); err != nil {
			return err
		}
		return it.index(m)

	case KindTag, KindBignum:
		var t cbor.RawTag
		if err := decMode.Unmarshal(it.raw, &t); err != nil {
			return err
		}
		it.tag = t.Number
		it.content = newItem(t.Content)
		if it.kind == KindBignum {
			var b []byte
			if err := decMode.Unmarshal(t.Content, &b); err != nil {
				return err
			}
			n := new(big.Int).SetBytes(b)
			if t.Number == 3 {
				n.Neg(n.Add(n, big.NewInt(1)))
			}
			it.scalar = n
		}
	}
	return nil
}

// index orders the keys of a decoded map by their canonical encoding.
func (it *Item) index(m map[any]cbor.RawMessage) error {
	type key struct {
		value any
		enc   []byte
	}
	keys := make([]key, 0, len(m))
	for k := range m {
		enc, err := encMode.Marshal(k)
		if err != nil {
			return err
		}
		keys = append(keys, key{k, enc})
	}
	slices.SortFunc(keys, func(a, b key) int { return compareCanonical(a.enc, b.enc) })

	it.keys = make([]any, len(keys))
	it.values = make(map[any]*Item, len(keys))
	for i, k := range keys {
		it.keys[i] = k.value
		it.values[k.value] = newItem(m[k.value])
	}
	return nil
}

// compareCanonical orders encoded keys shortest first, then bytewise.
func compareCanonical(a, b []byte) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return bytes.Compare(a, b)
}

// kindOf classifies an encoded item by its initial byte.
func kindOf(raw []byte) Kind {
	if len(raw) == 0 {
		return KindSimple
	}
	major, info := raw[0]>>5, raw[0]&0x1f
	switch major {
	case 0:
		return KindUnsigned
	case 1:
		return KindNegative
	case 2:
		return KindBytes
	case 3:
		return KindText
	case 4:
		return KindArray
	case 5:
		return KindMap
	case 6:
		if n, ok := argument(raw); ok && (n == 2 || n == 3) {
			return KindBignum
		}
		return KindTag
	}
	switch info {
	case 20, 21:
		return KindBool
	case 22, 23:
		return KindNull
	case 25, 26, 27:
		return KindFloat
	}
	return KindSimple
}

// argument returns the argument encoded in an item's head: the value of
// an integer, the length of a definite string or container, or the tag
// number. ok is false for indefinite lengths.
func argument(raw []byte) (n uint64, ok bool) {
	info := raw[0] & 0x1f
	switch {
	case info < 24:
		return uint64(info), true
	case info == 24 && len(raw) >= 2:
		return uint64(raw[1]), true
	case info == 25 && len(raw) >= 3:
		return uint64(binary.BigEndian.Uint16(raw[1:])), true
	case info == 26 && len(raw) >= 5:
		return uint64(binary.BigEndian.Uint32(raw[1:])), true
	case info == 27 && len(raw) >= 9:
		return binary.BigEndian.Uint64(raw[1:]), true
	}
	return 0, false
}
