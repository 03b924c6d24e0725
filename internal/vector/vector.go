// Package vector provides the 2D value type used by every simulation package.
//
// [Vec2] is immutable: every operation returns a new vector. Arithmetic is
// delegated to mgl64.
package vector

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Vec2 struct {
	X float64
	Y float64
}

// Zero is the additive identity.
var Zero = Vec2{}

func New(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// FromSlice builds a vector from the first two components of s.
// ok is false when s has fewer than two components.
func FromSlice(s []float64) (v Vec2, ok bool) {
	if len(s) < 2 {
		return Zero, false
	}
	return Vec2{X: s[0], Y: s[1]}, true
}

func fromGL(g mgl64.Vec2) Vec2 { return Vec2{X: g[0], Y: g[1]} }

func (v Vec2) gl() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

func (v Vec2) Add(o Vec2) Vec2      { return fromGL(v.gl().Add(o.gl())) }
func (v Vec2) Sub(o Vec2) Vec2      { return fromGL(v.gl().Sub(o.gl())) }
func (v Vec2) Scale(k float64) Vec2 { return fromGL(v.gl().Mul(k)) }
func (v Vec2) Negate() Vec2         { return Vec2{X: -v.X, Y: -v.Y} }
func (v Vec2) Dot(o Vec2) float64   { return v.gl().Dot(o.gl()) }
func (v Vec2) Len() float64         { return v.gl().Len() }
func (v Vec2) LenSq() float64       { return v.Dot(v) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) Array() [2]float64    { return [2]float64{v.X, v.Y} }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) String() string       { return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y) }
func (v Vec2) Slice() []float64     { return []float64{v.X, v.Y} }
func (v Vec2) Perp() Vec2           { return Vec2{X: -v.Y, Y: v.X} }
func (v Vec2) Equal(o Vec2) bool    { return v.X == o.X && v.Y == o.Y }
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Div divides by k. Division by zero saturates to the zero vector.
func (v Vec2) Div(k float64) Vec2 {
	if k == 0 {
		return Zero
	}
	return v.Scale(1 / k)
}

// Normalize returns the unit vector in the direction of v, or Zero for Zero.
func (v Vec2) Normalize() Vec2 {
	if v.LenSq() == 0 {
		return Zero
	}
	return fromGL(v.gl().Normalize())
}

// IsFinite reports whether neither component is NaN or Inf.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
