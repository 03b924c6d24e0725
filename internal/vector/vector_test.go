package vector

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	a := New(3, 4)
	b := New(1, -2)

	tests := []struct {
		name string
		got  Vec2
		want Vec2
	}{
		{"add", a.Add(b), New(4, 2)},
		{"sub", a.Sub(b), New(2, 6)},
		{"scale", a.Scale(2), New(6, 8)},
		{"div", a.Div(2), New(1.5, 2)},
		{"div by zero", a.Div(0), Zero},
		{"negate", a.Negate(), New(-3, -4)},
		{"perp", a.Perp(), New(-4, 3)},
		{"normalize zero", Zero.Normalize(), Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.ApproxEqual(tt.want, 1e-12) {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	a := New(3, 4)

	if a.Len() != 5 {
		t.Errorf("expected length 5, got %f", a.Len())
	}
	if a.LenSq() != 25 {
		t.Errorf("expected squared length 25, got %f", a.LenSq())
	}
	if d := a.Dot(New(2, 1)); d != 10 {
		t.Errorf("expected dot 10, got %f", d)
	}
	if d := a.Dist(New(0, 0)); d != 5 {
		t.Errorf("expected distance 5, got %f", d)
	}

	n := a.Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("expected unit length, got %f", n.Len())
	}
	if !n.ApproxEqual(New(0.6, 0.8), 1e-12) {
		t.Errorf("expected (0.6, 0.8), got %v", n)
	}
}

func TestImmutability(t *testing.T) {
	a := New(1, 1)
	_ = a.Add(New(5, 5))
	_ = a.Scale(10)
	if !a.Equal(New(1, 1)) {
		t.Errorf("operations mutated receiver: %v", a)
	}
}

func TestFromSlice(t *testing.T) {
	if _, ok := FromSlice([]float64{1}); ok {
		t.Error("expected short slice to be rejected")
	}
	if _, ok := FromSlice(nil); ok {
		t.Error("expected nil slice to be rejected")
	}
	v, ok := FromSlice([]float64{1, 2, 3})
	if !ok || !v.Equal(New(1, 2)) {
		t.Errorf("expected (1, 2), got %v ok=%v", v, ok)
	}
}

func TestIsFinite(t *testing.T) {
	if !New(1, 2).IsFinite() {
		t.Error("expected finite vector")
	}
	if New(math.NaN(), 0).IsFinite() {
		t.Error("expected NaN to be non-finite")
	}
	if New(0, math.Inf(1)).IsFinite() {
		t.Error("expected Inf to be non-finite")
	}
}
