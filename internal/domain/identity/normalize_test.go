package identity

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_AllShapes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Key
	}{
		{"nil", nil, Absent},
		{"empty string", "", Absent},
		{"string", "plee", "plee"},
		{"numeric string kept verbatim", "042", "042"},
		{"int", 42, "42"},
		{"int64", int64(42), "42"},
		{"uint8", uint8(7), "7"},
		{"float integral", float64(42), "42"},
		{"float fraction", 42.5, "42.5"},
		{"float32", float32(3), "3"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"NaN", math.NaN(), Absent},
		{"json number", json.Number("42"), "42"},
		{"json number with fraction zero", json.Number("42.0"), "42"},
		{"json number exponent", json.Number("4.2e1"), "42"},
		{"json number fraction", json.Number("42.5"), "42.5"},
		{"json number negative zero", json.Number("-0"), "0"},
		{"json number big int kept", json.Number("123456789012345678901"), "123456789012345678901"},
		{"json number empty", json.Number(""), Absent},
		{"map with id", map[string]any{"id": 42}, "42"},
		{"map with string id", map[string]any{"id": "42"}, "42"},
		{"map with username only", map[string]any{"username": "plee"}, "plee"},
		{"map prefers id", map[string]any{"id": 7, "username": "plee"}, "7"},
		{"map null id falls back to username", map[string]any{"id": nil, "username": "plee"}, "plee"},
		{"empty map", map[string]any{}, Absent},
		{"nested id object", map[string]any{"id": map[string]any{"id": 9}}, "9"},
		{"ref value", Ref{ID: 42}, "42"},
		{"ref pointer", &Ref{Username: "plee"}, "plee"},
		{"nil ref pointer", (*Ref)(nil), Absent},
		{"bool", true, Absent},
		{"slice", []any{1, 2}, Absent},
		{"struct", struct{ ID int }{1}, Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { _ = Normalize(tt.in) })
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_DeepNestingIsAbsent(t *testing.T) {
	var v any = 1
	for i := 0; i < maxDepth+4; i++ {
		v = map[string]any{"id": v}
	}
	assert.Equal(t, Absent, Normalize(v))
}

func TestNormalize_RepresentationsAgree(t *testing.T) {
	want := Normalize(42)
	for _, in := range []any{"42", json.Number("42"), json.Number("42.0"), json.Number("4.2e1"), float64(42), map[string]any{"id": "42"}, Ref{ID: int64(42)}} {
		assert.Equal(t, want, Normalize(in), "input %#v", in)
	}
}

func TestFacets(t *testing.T) {
	assert.Nil(t, Facets(nil))
	assert.Nil(t, Facets(""))
	assert.Equal(t, []Key{"42"}, Facets(42))
	assert.Equal(t, []Key{"7", "plee"}, Facets(map[string]any{"id": 7, "username": "plee"}))
	assert.Equal(t, []Key{"plee"}, Facets(&Ref{Username: "plee"}))
	assert.Empty(t, Facets(map[string]any{"name": "x"}))
}
