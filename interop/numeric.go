package interop

import (
	"math"
	"math/big"
	"reflect"
)

// Numbers implements NumberLibrary for Go numeric values: every integer
// and floating-point kind, named or not, plus *big.Int and *big.Float.
// Backends holding numbers in Go form delegate to it.
var Numbers NumberLibrary = goNumbers{}

type numClass uint8

const (
	numNone numClass = iota
	numInt
	numUint
	numFloat
	numBigInt
	numBigFloat
)

// number is a classified numeric value.
type number struct {
	class numClass
	i     int64
	u     uint64
	f     float64
	bi    *big.Int
	bf    *big.Float
}

func classify(r any) number {
	switch v := r.(type) {
	case int:
		return number{class: numInt, i: int64(v)}
	case int8:
		return number{class: numInt, i: int64(v)}
	case int16:
		return number{class: numInt, i: int64(v)}
	case int32:
		return number{class: numInt, i: int64(v)}
	case int64:
		return number{class: numInt, i: v}
	case uint:
		return number{class: numUint, u: uint64(v)}
	case uint8:
		return number{class: numUint, u: uint64(v)}
	case uint16:
		return number{class: numUint, u: uint64(v)}
	case uint32:
		return number{class: numUint, u: uint64(v)}
	case uint64:
		return number{class: numUint, u: v}
	case uintptr:
		return number{class: numUint, u: uint64(v)}
	case float32:
		return number{class: numFloat, f: float64(v)}
	case float64:
		return number{class: numFloat, f: v}
	case *big.Int:
		if v == nil {
			return number{}
		}
		return number{class: numBigInt, bi: v}
	case *big.Float:
		if v == nil {
			return number{}
		}
		return number{class: numBigFloat, bf: v}
	case nil:
		return number{}
	}
	rv := reflect.ValueOf(r)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{class: numInt, i: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{class: numUint, u: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return number{class: numFloat, f: rv.Float()}
	}
	return number{}
}

// IsNumeric reports whether r is a Go value Numbers accepts.
func IsNumeric(r any) bool { return classify(r).class != numNone }

const (
	two63 = 9223372036854775808.0
	two64 = 18446744073709551616.0
)

// int64Value is the exact int64 value of n, if there is one.
func (n number) int64Value() (int64, bool) {
	switch n.class {
	case numInt:
		return n.i, true
	case numUint:
		if n.u <= math.MaxInt64 {
			return int64(n.u), true
		}
	case numFloat:
		f := n.f
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, false
		}
		if f == 0 && math.Signbit(f) {
			return 0, false
		}
		if f >= -two63 && f < two63 {
			return int64(f), true
		}
	case numBigInt:
		if n.bi.IsInt64() {
			return n.bi.Int64(), true
		}
	case numBigFloat:
		if n.bf.Sign() == 0 && n.bf.Signbit() {
			return 0, false
		}
		if !n.bf.IsInt() {
			return 0, false
		}
		if v, acc := n.bf.Int64(); acc == big.Exact {
			return v, true
		}
	}
	return 0, false
}

func (n number) float32Value() (float32, bool) {
	switch n.class {
	case numInt:
		f := float32(n.i)
		c := float64(f)
		if c >= two63 || c < -two63 {
			return 0, false
		}
		return f, int64(c) == n.i
	case numUint:
		f := float32(n.u)
		c := float64(f)
		if c >= two64 {
			return 0, false
		}
		return f, uint64(c) == n.u
	case numFloat:
		f := float32(n.f)
		if math.IsNaN(n.f) || float64(f) == n.f {
			return f, true
		}
	case numBigInt:
		f, acc := new(big.Float).SetInt(n.bi).Float32()
		return f, acc == big.Exact && !math.IsInf(float64(f), 0)
	case numBigFloat:
		f, acc := n.bf.Float32()
		return f, acc == big.Exact && (!math.IsInf(float64(f), 0) || n.bf.IsInf())
	}
	return 0, false
}

func (n number) float64Value() (float64, bool) {
	switch n.class {
	case numInt:
		f := float64(n.i)
		if f >= two63 || f < -two63 {
			return 0, false
		}
		return f, int64(f) == n.i
	case numUint:
		f := float64(n.u)
		if f >= two64 {
			return 0, false
		}
		return f, uint64(f) == n.u
	case numFloat:
		return n.f, true
	case numBigInt:
		f, acc := new(big.Float).SetInt(n.bi).Float64()
		return f, acc == big.Exact && !math.IsInf(f, 0)
	case numBigFloat:
		f, acc := n.bf.Float64()
		return f, acc == big.Exact && (!math.IsInf(f, 0) || n.bf.IsInf())
	}
	return 0, false
}

func (n number) fitsRange(lo, hi int64) (int64, bool) {
	v, ok := n.int64Value()
	return v, ok && v >= lo && v <= hi
}

type goNumbers struct{}

func (goNumbers) IsNumber(r any) bool { return classify(r).class != numNone }

func (goNumbers) FitsInByte(r any) bool {
	_, ok := classify(r).fitsRange(math.MinInt8, math.MaxInt8)
	return ok
}

func (goNumbers) FitsInShort(r any) bool {
	_, ok := classify(r).fitsRange(math.MinInt16, math.MaxInt16)
	return ok
}

func (goNumbers) FitsInInt(r any) bool {
	_, ok := classify(r).fitsRange(math.MinInt32, math.MaxInt32)
	return ok
}

func (goNumbers) FitsInLong(r any) bool {
	_, ok := classify(r).int64Value()
	return ok
}

func (goNumbers) FitsInFloat(r any) bool {
	_, ok := classify(r).float32Value()
	return ok
}

func (goNumbers) FitsInDouble(r any) bool {
	_, ok := classify(r).float64Value()
	return ok
}

func (goNumbers) AsByte(r any) (int8, error) {
	if v, ok := classify(r).fitsRange(math.MinInt8, math.MaxInt8); ok {
		return int8(v), nil
	}
	return 0, Unsupported()
}

func (goNumbers) AsShort(r any) (int16, error) {
	if v, ok := classify(r).fitsRange(math.MinInt16, math.MaxInt16); ok {
		return int16(v), nil
	}
	return 0, Unsupported()
}

func (goNumbers) AsInt(r any) (int32, error) {
	if v, ok := classify(r).fitsRange(math.MinInt32, math.MaxInt32); ok {
		return int32(v), nil
	}
	return 0, Unsupported()
}

func (goNumbers) AsLong(r any) (int64, error) {
	if v, ok := classify(r).int64Value(); ok {
		return v, nil
	}
	return 0, Unsupported()
}

func (goNumbers) AsFloat(r any) (float32, error) {
	if v, ok := classify(r).float32Value(); ok {
		return v, nil
	}
	return 0, Unsupported()
}

func (goNumbers) AsDouble(r any) (float64, error) {
	if v, ok := classify(r).float64Value(); ok {
		return v, nil
	}
	return 0, Unsupported()
}
