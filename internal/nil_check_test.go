package internal

import "testing"

type sample struct{}

func (*sample) Name() string { return "sample" }

type namer interface{ Name() string }

func TestIsNil(t *testing.T) {
	var typed *sample
	var iface namer = typed

	tests := []struct {
		name string
		in   interface{}
		want bool
	}{
		{"untyped nil", nil, true},
		{"typed nil pointer", iface, true},
		{"nil map", map[string]int(nil), true},
		{"value", &sample{}, false},
		{"non-nillable kind", 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNil(tt.in); got != tt.want {
				t.Errorf("IsNil(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
