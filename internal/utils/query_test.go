package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 10, 10},
		{"42", 0, 42},
		{"-13", 1, -13},
		{"x", 5, 5},
		{" 42", 7, 7}, // no trim
		{"999999999999999999999999", -1, -1},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	cases := []struct {
		s    string
		want float64
		ok   bool
	}{
		{"23.8315", 23.8315, true},
		{" 91.2868 ", 91.2868, true},
		{"-0.5", -0.5, true},
		{"", 0, false},
		{"north", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseFloat(tc.s)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseFloat(%q) = %v,%v; want %v,%v", tc.s, got, ok, tc.want, tc.ok)
		}
	}
}
