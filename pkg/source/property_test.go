package source

import (
	"encoding/json"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"float64", 2.5, 2.5, true},
		{"float32", float32(0.5), 0.5, true},
		{"int", 3, 3, true},
		{"int64", int64(-4), -4, true},
		{"uint8", uint8(7), 7, true},
		{"json number", json.Number("1.25"), 1.25, true},
		{"bad json number", json.Number("x"), 0, false},
		{"string", "3", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Number(%v) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProperty(t *testing.T) {
	props := map[string]any{"weight": 4, "name": "x"}

	tests := []struct {
		name string
		key  string
		want float64
	}{
		{"no key", "", 9},
		{"present", "weight", 4},
		{"missing", "score", 9},
		{"not numeric", "name", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Property(props, tt.key, 9); got != tt.want {
				t.Errorf("Property(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	if got := Property(nil, "weight", 1); got != 1 {
		t.Errorf("Property on nil map = %v, want 1", got)
	}
}

func TestHasLabel(t *testing.T) {
	labels := []string{"Person", "Employee"}
	if !HasLabel(labels, "") {
		t.Error("empty label should match")
	}
	if !HasLabel(labels, "Employee") {
		t.Error("Employee should match")
	}
	if HasLabel(labels, "Company") {
		t.Error("Company should not match")
	}
	if HasLabel(nil, "Person") {
		t.Error("unlabeled node should not match a label")
	}
}
