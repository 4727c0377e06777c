package value

import (
	"math"
	"testing"
)

// These cases are grounded directly on as_value::doubleToString's two
// branches: the forced-fixed band for [1e-5, 1e-4), and the generic
// 15-significant-digit defaultfloat band everywhere else (which is why
// 1e-6 and 1e16 come out scientific — both fall outside the forced
// band and hit the exponent<-4 / exponent>=15 switchover the reference
// player itself applies).
func TestFormatNumberSpecialValues(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"nan", math.NaN(), "NaN"},
		{"+inf", math.Inf(1), "Infinity"},
		{"-inf", math.Inf(-1), "-Infinity"},
		{"zero", 0, "0"},
		{"neg zero", math.Copysign(0, -1), "0"},
		{"integer", 42, "42"},
		{"negative integer", -42, "-42"},
		{"simple fraction", 0.1, "0.1"},
		{"rounding sum", 0.1 + 0.2, "0.3"},
		{"forced fixed band lower bound", 0.00001, "0.00001"},
		{"forced fixed band mid", 0.00005, "0.00005"},
		{"below forced band goes scientific", 0.000001, "1e-6"},
		{"large fixed", 123456789, "123456789"},
		{"large scientific", 1e17, "1e+17"},
		{"large scientific at 1e16", 1e16, "1e+16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNumber(tt.in); got != tt.want {
				t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripExponentLeadingZero(t *testing.T) {
	tests := []struct{ in, want string }{
		{"1e+05", "1e+5"},
		{"1e-06", "1e-6"},
		{"1e+16", "1e+16"},
		{"1e+100", "1e+100"},
		{"3.5", "3.5"},
	}
	for _, tt := range tests {
		if got := stripExponentLeadingZero(tt.in); got != tt.want {
			t.Errorf("stripExponentLeadingZero(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
