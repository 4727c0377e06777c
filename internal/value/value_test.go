package value

import (
	"math"
	"testing"
)

func TestZeroValueIsUndefined(t *testing.T) {
	var v Value
	if !v.IsUndefined() {
		t.Fatalf("zero Value should be Undefined, got %v", v.Kind())
	}
}

func TestConstructorsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"undefined", Undefined(), KindUndefined},
		{"null", Null(), KindNull},
		{"bool", Bool(true), KindBool},
		{"number", Number(3.5), KindNumber},
		{"string", String("hi"), KindString},
		{"object", Object(7), KindObject},
		{"function", Function(7), KindFunction},
		{"display", Display(DisplayRef{Path: "/a", Generation: 1}), KindDisplayRef},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
		})
	}
}

func TestIsObjectLike(t *testing.T) {
	if !Object(1).IsObjectLike() {
		t.Error("Object should be IsObjectLike")
	}
	if !Function(1).IsObjectLike() {
		t.Error("Function should be IsObjectLike")
	}
	if Display(DisplayRef{}).IsObjectLike() {
		t.Error("DisplayRef should not be IsObjectLike")
	}
	if String("x").IsObjectLike() {
		t.Error("String should not be IsObjectLike")
	}
}

func TestNumberPreservesNaNAndSignedZero(t *testing.T) {
	n := Number(math.NaN())
	if n.AsNumber() == n.AsNumber() {
		t.Error("stored NaN should not compare equal to itself via ==")
	}
	nz := Number(math.Copysign(0, -1))
	if !math.Signbit(nz.AsNumber()) {
		t.Error("signed zero should be preserved")
	}
}
