package geometry

import (
	"math"
	"testing"
)

const eps = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCosineSine(t *testing.T) {
	tests := []struct {
		name     string
		v1, v2   Vector
		cos, sin float64
	}{
		{"same direction", Vector{1, 0}, Vector{3, 0}, 1, 0},
		{"opposite", Vector{1, 0}, Vector{-2, 0}, -1, 0},
		{"quarter turn ccw", Vector{1, 0}, Vector{0, 5}, 0, 1},
		{"quarter turn cw", Vector{1, 0}, Vector{0, -5}, 0, -1},
		{"45 degrees", Vector{1, 0}, Vector{1, 1}, math.Sqrt2 / 2, math.Sqrt2 / 2},
		{"rotated frame", Vector{0, 1}, Vector{-1, 0}, 0, 1},
		{"zero vector", Vector{0, 0}, Vector{1, 0}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.v1, tt.v2); !near(got, tt.cos) {
				t.Errorf("Cosine() = %v, want %v", got, tt.cos)
			}
			if got := Sine(tt.v1, tt.v2); !near(got, tt.sin) {
				t.Errorf("Sine() = %v, want %v", got, tt.sin)
			}
		})
	}
}

func TestSineMatchesCosineOfRotatedVector(t *testing.T) {
	vs := []Vector{{1, 0}, {3, 4}, {-2, 7}, {0, -1}, {-5, -5}}
	for _, a := range vs {
		for _, b := range vs {
			got := Sine(a, b)
			// a rotated +90°
			want := Cosine(Vector{X: -a.Y, Y: a.X}, b)
			if !near(got, want) {
				t.Errorf("Sine(%v, %v) = %v, Cosine(rotated) = %v", a, b, got, want)
			}
		}
	}
}

func TestBarVector(t *testing.T) {
	v := BarVector(Vector{1, 2}, Vector{4, 6})
	if v != (Vector{3, 4}) {
		t.Errorf("BarVector() = %v, want {3 4}", v)
	}
	if v.Norm() != 5 {
		t.Errorf("Norm() = %v, want 5", v.Norm())
	}
	if u := v.Unit(); !near(u.X, 0.6) || !near(u.Y, 0.8) {
		t.Errorf("Unit() = %v, want {0.6 0.8}", u)
	}
}
