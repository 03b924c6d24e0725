// Package forces holds the stateless force and impulse rules applied to bodies.
package forces

import "github.com/san-kum/rigidsim/internal/vector"

// DefaultGravity is the standard gravitational acceleration magnitude.
const DefaultGravity = 9.81

// Target is the part of a body the force rules touch.
type Target interface {
	Mass() float64
	Velocity() vector.Vec2
	SetVelocity(v vector.Vec2)
	ApplyForce(f vector.Vec2)
}

// Gravity applies F = g*m. Bodies without positive mass are skipped.
func Gravity(b Target, g vector.Vec2) {
	if b.Mass() <= 0 {
		return
	}
	b.ApplyForce(g.Scale(b.Mass()))
}

func Custom(b Target, f vector.Vec2) {
	b.ApplyForce(f)
}

// StaticFriction opposes applied forces only while the body is at rest.
func StaticFriction(b Target, coefficient float64, surfaceNormal vector.Vec2) {
	if !b.Velocity().IsZero() {
		return
	}
	b.ApplyForce(surfaceNormal.Scale(coefficient * b.Mass()).Negate())
}

// KineticFriction opposes the current direction of motion.
func KineticFriction(b Target, coefficient float64) {
	v := b.Velocity()
	if v.IsZero() {
		return
	}
	b.ApplyForce(v.Normalize().Negate().Scale(coefficient * b.Mass()))
}

// Impulse changes velocity by impulse/m. Immovable bodies are unaffected.
func Impulse(b Target, impulse vector.Vec2) {
	if b.Mass() <= 0 {
		return
	}
	b.SetVelocity(b.Velocity().Add(impulse.Div(b.Mass())))
}
