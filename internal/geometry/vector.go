// Package geometry provides the planar vector operations used to build
// joint equilibrium equations.
package geometry

import "math"

// Vector is a 2D vector in the global truss frame
type Vector struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

var (
	// XAxis is the global X unit vector
	XAxis = Vector{X: 1, Y: 0}

	// YAxis is the global Y unit vector
	YAxis = Vector{X: 0, Y: 1}
)

// Sub returns v - w
func (v Vector) Sub(w Vector) Vector {
	return Vector{X: v.X - w.X, Y: v.Y - w.Y}
}

// Add returns v + w
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Scale returns v multiplied by s
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Dot returns the scalar product of v and w
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z component of v × w
func (v Vector) Cross(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Norm returns the length of v
func (v Vector) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Unit returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vector) Unit() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vector{X: v.X / n, Y: v.Y / n}
}

// IsZero reports whether both components are exactly zero
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// BarVector returns the direction of a bar seen from the joint at `from`,
// pointing toward the bar's far end at `to`
func BarVector(from, to Vector) Vector {
	return to.Sub(from)
}

// Cosine returns the cosine of the angle between v1 and v2.
// Returns 0 if either vector has zero length.
func Cosine(v1, v2 Vector) float64 {
	d := v1.Norm() * v2.Norm()
	if d == 0 {
		return 0
	}
	return v1.Dot(v2) / d
}

// Sine returns the signed sine of the angle measured counter-clockwise from
// v1 to v2. It shares its handedness with Cosine: for a unit v1, Sine(v1, v2)
// is the cosine between v2 and v1 rotated +90°.
// Returns 0 if either vector has zero length.
func Sine(v1, v2 Vector) float64 {
	d := v1.Norm() * v2.Norm()
	if d == 0 {
		return 0
	}
	return v1.Cross(v2) / d
}
