package synonyms

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToString(t *testing.T) {
	s := "ptr"
	var nilPtr *string

	tests := []struct {
		name   string
		input  any
		want   string
		wantOK bool
	}{
		{"nil", nil, "", false},
		{"nil string pointer", nilPtr, "", false},
		{"string", "New York", "New York", true},
		{"string pointer", &s, "ptr", true},
		{"bytes", []byte("abc"), "abc", true},
		{"true", true, "True", true},
		{"false", false, "False", true},
		{"int", 42, "42", true},
		{"negative int64", int64(-7), "-7", true},
		{"uint8", uint8(200), "200", true},
		{"integral float", 3.0, "3.0", true},
		{"fractional float", 0.25, "0.25", true},
		{"float32", float32(1.5), "1.5", true},
		{"large float", 1e16, "1e+16", true},
		{"small float", 0.00001, "1e-05", true},
		{"float below exponent cutoff", 1e15, "1000000000000000.0", true},
		{"zero float", 0.0, "0.0", true},
		{"nan", math.NaN(), "nan", true},
		{"json number", json.Number("12"), "12", true},
		{"json number exponent", json.Number("1e2"), "100.0", true},
		{"json number float", json.Number("1.50"), "1.5", true},
		{"json number integral float", json.Number("3.0"), "3.0", true},
		{"slice", []int{1, 2}, "[1 2]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toString(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("toString(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("toString(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"NYC", "nyc"},
		{"New York City", "new york city"},
		{"ÉCOLE", "école"},
		{"already lower", "already lower"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalize(tt.input); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
