package collider

import (
	"math"

	"github.com/san-kum/rigidsim/internal/vector"
)

type Kind string

const (
	KindAABB   Kind = "aabb"
	KindCircle Kind = "circle"
)

// Collider is the closed set of contact shapes: AABB and Circle.
type Collider interface {
	Kind() Kind
	// Overlaps reports a strict overlap; touching edges do not count.
	Overlaps(other Collider) bool
	// At returns a copy of the collider anchored at p.
	At(p vector.Vec2) Collider
	// Anchor is the position the collider mirrors from its body.
	Anchor() vector.Vec2
	// Center is the geometric center.
	Center() vector.Vec2
}

type AABB struct {
	Min    vector.Vec2
	Width  float64
	Height float64
}

func NewAABB(topLeft vector.Vec2, width, height float64) AABB {
	return AABB{Min: topLeft, Width: width, Height: height}
}

func (a AABB) Kind() Kind               { return KindAABB }
func (a AABB) Anchor() vector.Vec2      { return a.Min }
func (a AABB) Max() vector.Vec2         { return vector.New(a.Min.X+a.Width, a.Min.Y+a.Height) }
func (a AABB) Center() vector.Vec2      { return vector.New(a.Min.X+a.Width/2, a.Min.Y+a.Height/2) }
func (a AABB) Overlaps(o Collider) bool { return Overlaps(a, o) }

func (a AABB) At(p vector.Vec2) Collider {
	a.Min = p
	return a
}

// Closest clamps p into the box extent.
func (a AABB) Closest(p vector.Vec2) vector.Vec2 {
	return vector.New(
		math.Max(a.Min.X, math.Min(p.X, a.Min.X+a.Width)),
		math.Max(a.Min.Y, math.Min(p.Y, a.Min.Y+a.Height)),
	)
}

type Circle struct {
	Pos    vector.Vec2
	Radius float64
}

func NewCircle(center vector.Vec2, radius float64) Circle {
	return Circle{Pos: center, Radius: radius}
}

func (c Circle) Kind() Kind               { return KindCircle }
func (c Circle) Anchor() vector.Vec2      { return c.Pos }
func (c Circle) Center() vector.Vec2      { return c.Pos }
func (c Circle) Overlaps(o Collider) bool { return Overlaps(c, o) }

func (c Circle) At(p vector.Vec2) Collider {
	c.Pos = p
	return c
}

// Overlaps dispatches on the concrete pair. It is symmetric in a and b.
func Overlaps(a, b Collider) bool {
	switch a := a.(type) {
	case AABB:
		switch b := b.(type) {
		case AABB:
			return boxBox(a, b)
		case Circle:
			return boxCircle(a, b)
		}
	case Circle:
		switch b := b.(type) {
		case AABB:
			return boxCircle(b, a)
		case Circle:
			return circleCircle(a, b)
		}
	}
	return false
}

func boxBox(a, b AABB) bool {
	aMax, bMax := a.Max(), b.Max()
	xOverlap := a.Min.X < bMax.X && aMax.X > b.Min.X
	yOverlap := a.Min.Y < bMax.Y && aMax.Y > b.Min.Y
	return xOverlap && yOverlap
}

func boxCircle(a AABB, c Circle) bool {
	return a.Closest(c.Pos).Dist(c.Pos) < c.Radius
}

func circleCircle(a, b Circle) bool {
	return a.Pos.Dist(b.Pos) < a.Radius+b.Radius
}
