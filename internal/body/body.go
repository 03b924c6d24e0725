// Package body implements the simulated rigid body: kinematic state, force
// accumulation, semi-implicit Euler integration and an owned collider that
// always mirrors the body's position and shape.
package body

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/collider"
	"github.com/san-kum/rigidsim/internal/vector"
)

// Body is safe to copy only through Clone. All mutation of position or
// shape goes through methods that resync the collider.
type Body struct {
	id       int
	mass     float64
	position vector.Vec2
	velocity vector.Vec2
	accel    vector.Vec2
	netForce vector.Vec2
	shape    Shape
	collider collider.Collider
}

// New returns a body with an unset id. A mass of zero makes it immovable.
func New(shape Shape, mass float64, position, velocity vector.Vec2) *Body {
	b := &Body{
		mass:     mass,
		position: position,
		velocity: velocity,
		shape:    shape,
	}
	b.sync()
	return b
}

func NewCircle(mass float64, pos, vel vector.Vec2, radius float64) *Body {
	return New(Circle{Radius: radius}, mass, pos, vel)
}

func NewRectangle(mass float64, pos, vel vector.Vec2, width, height float64) *Body {
	return New(Rectangle{Width: width, Height: height}, mass, pos, vel)
}

func NewSquare(mass float64, pos, vel vector.Vec2, side float64) *Body {
	return New(Square{Side: side}, mass, pos, vel)
}

func (b *Body) sync() {
	b.collider = b.shape.Collider(b.position)
}

func (b *Body) ID() int                     { return b.id }
func (b *Body) Mass() float64               { return b.mass }
func (b *Body) Position() vector.Vec2       { return b.position }
func (b *Body) Velocity() vector.Vec2       { return b.velocity }
func (b *Body) Acceleration() vector.Vec2   { return b.accel }
func (b *Body) NetForce() vector.Vec2       { return b.netForce }
func (b *Body) Shape() Shape                { return b.shape }
func (b *Body) Kind() Kind                  { return b.shape.Kind() }
func (b *Body) Area() float64               { return b.shape.Area() }
func (b *Body) Collider() collider.Collider { return b.collider }
func (b *Body) Immovable() bool             { return b.mass <= 0 }

func (b *Body) SetID(id int)              { b.id = id }
func (b *Body) SetMass(m float64)         { b.mass = m }
func (b *Body) SetVelocity(v vector.Vec2) { b.velocity = v }

func (b *Body) SetPosition(p vector.Vec2) {
	b.position = p
	b.sync()
}

// SetShape replaces the outline, e.g. after a radius or width change.
func (b *Body) SetShape(s Shape) {
	b.shape = s
	b.sync()
}

// ApplyForce accumulates f into the net force until the next ResetForces.
func (b *Body) ApplyForce(f vector.Vec2) {
	b.netForce = b.netForce.Add(f)
}

func (b *Body) ResetForces() {
	b.netForce = vector.Zero
}

// Update integrates one step with semi-implicit Euler: velocity first from
// the net force, then position from the new velocity.
func (b *Body) Update(dt float64) {
	if b.mass > 0 {
		b.accel = b.netForce.Div(b.mass)
	} else {
		b.accel = vector.Zero
	}
	b.velocity = b.velocity.Add(b.accel.Scale(dt))
	b.SetPosition(b.position.Add(b.velocity.Scale(dt)))
}

// Clone returns an independent copy.
func (b *Body) Clone() *Body {
	c := *b
	return &c
}

func (b *Body) String() string {
	return fmt.Sprintf("%s[id=%d, mass=%.2f, pos=%v, vel=%v]", b.Kind(), b.id, b.mass, b.position, b.velocity)
}
