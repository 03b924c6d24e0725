package body

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/rigidsim/internal/collider"
	"github.com/san-kum/rigidsim/internal/vector"
)

// ErrUnknownKind indicates a shape type outside circle, rectangle, square.
var ErrUnknownKind = errors.New("body: unknown shape type")

type Kind string

const (
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
	KindSquare    Kind = "square"
)

// ParseKind accepts any letter case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCircle, KindRectangle, KindSquare:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Shape is the closed set of body outlines. Each variant derives its own
// collider from the body position.
type Shape interface {
	Kind() Kind
	Area() float64
	Collider(pos vector.Vec2) collider.Collider
}

type Circle struct {
	Radius float64
}

func (c Circle) Kind() Kind    { return KindCircle }
func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (c Circle) Collider(pos vector.Vec2) collider.Collider {
	return collider.NewCircle(pos, c.Radius)
}

// Rectangle is anchored at its top-left corner.
type Rectangle struct {
	Width  float64
	Height float64
}

func (r Rectangle) Kind() Kind    { return KindRectangle }
func (r Rectangle) Area() float64 { return r.Width * r.Height }

func (r Rectangle) Collider(pos vector.Vec2) collider.Collider {
	return collider.NewAABB(pos, r.Width, r.Height)
}

type Square struct {
	Side float64
}

func (s Square) Kind() Kind    { return KindSquare }
func (s Square) Area() float64 { return s.Side * s.Side }

func (s Square) Collider(pos vector.Vec2) collider.Collider {
	return collider.NewAABB(pos, s.Side, s.Side)
}

// Dims carries the union of shape parameters used to build any Shape.
type Dims struct {
	Radius float64
	Width  float64
	Height float64
	Side   float64
}

// NewShape builds the shape for kind from dims.
func NewShape(kind Kind, d Dims) (Shape, error) {
	switch kind {
	case KindCircle:
		return Circle{Radius: d.Radius}, nil
	case KindRectangle:
		return Rectangle{Width: d.Width, Height: d.Height}, nil
	case KindSquare:
		return Square{Side: d.Side}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}

// DimsOf is the inverse of NewShape.
func DimsOf(s Shape) Dims {
	switch s := s.(type) {
	case Circle:
		return Dims{Radius: s.Radius}
	case Rectangle:
		return Dims{Width: s.Width, Height: s.Height}
	case Square:
		return Dims{Side: s.Side}
	}
	return Dims{}
}
