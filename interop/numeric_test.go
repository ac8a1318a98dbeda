package interop

import (
	"math"
	"math/big"
	"testing"
)

type fits struct {
	byte_, short, int_, long, float, double bool
}

func fitsOf(v any) fits {
	return fits{
		Numbers.FitsInByte(v), Numbers.FitsInShort(v), Numbers.FitsInInt(v),
		Numbers.FitsInLong(v), Numbers.FitsInFloat(v), Numbers.FitsInDouble(v),
	}
}

func TestFitsInEachWidthIndependently(t *testing.T) {
	type celsius float64
	two53plus1 := int64(1)<<53 + 1

	tests := []struct {
		name  string
		value any
		want  fits
	}{
		{"small int", int32(42), fits{true, true, true, true, true, true}},
		{"byte boundary", int64(128), fits{false, true, true, true, true, true}},
		{"int overflow", int64(1) << 31, fits{false, false, false, true, true, true}},
		{"2^53+1 loses precision", two53plus1, fits{false, false, false, true, false, false}},
		{"max int64", int64(math.MaxInt64), fits{false, false, false, true, false, false}},
		{"min int64", int64(math.MinInt64), fits{false, false, false, true, true, true}},
		{"max uint64", uint64(math.MaxUint64), fits{false, false, false, false, false, false}},
		{"2^63 unsigned", uint64(1) << 63, fits{false, false, false, false, true, true}},
		{"fraction", 1.5, fits{false, false, false, false, true, true}},
		{"one tenth", 0.1, fits{false, false, false, false, false, true}},
		{"integral double", 3.0, fits{true, true, true, true, true, true}},
		{"negative zero", math.Copysign(0, -1), fits{false, false, false, false, true, true}},
		{"nan", math.NaN(), fits{false, false, false, false, true, true}},
		{"inf", math.Inf(1), fits{false, false, false, false, true, true}},
		{"huge double", 1e300, fits{false, false, false, false, false, true}},
		{"named float", celsius(-40), fits{true, true, true, true, true, true}},
		{"big int", new(big.Int).Lsh(big.NewInt(1), 70), fits{false, false, false, false, true, true}},
		{"big int odd", new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 70), big.NewInt(1)), fits{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitsOf(tt.value); got != tt.want {
				t.Errorf("fits(%v) = %+v, want %+v", tt.value, got, tt.want)
			}
		})
	}
}

func TestAsConversionsAreExact(t *testing.T) {
	v, err := Numbers.AsInt(int64(-7))
	if err != nil || v != -7 {
		t.Fatalf("AsInt = %d, %v", v, err)
	}
	if _, err := Numbers.AsInt(int64(1) << 31); KindOf(err) != KindUnsupported {
		t.Errorf("AsInt(2^31) error = %v, want unsupported", err)
	}
	if _, err := Numbers.AsLong(1.5); KindOf(err) != KindUnsupported {
		t.Errorf("AsLong(1.5) error = %v, want unsupported", err)
	}
	f, err := Numbers.AsFloat(int64(16777216))
	if err != nil || f != 16777216 {
		t.Errorf("AsFloat(2^24) = %v, %v", f, err)
	}
	if _, err := Numbers.AsFloat(int64(16777217)); err == nil {
		t.Error("AsFloat(2^24+1) should fail")
	}
	d, err := Numbers.AsDouble(uint8(200))
	if err != nil || d != 200 {
		t.Errorf("AsDouble(uint8) = %v, %v", d, err)
	}
}

func TestNonNumbers(t *testing.T) {
	for _, v := range []any{nil, "1", true, []int{1}} {
		if Numbers.IsNumber(v) {
			t.Errorf("IsNumber(%#v) = true", v)
		}
		if got := fitsOf(v); got != (fits{}) {
			t.Errorf("fits(%#v) = %+v", v, got)
		}
	}
}
