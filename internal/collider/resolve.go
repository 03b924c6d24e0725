package collider

import (
	"math"

	"github.com/san-kum/rigidsim/internal/vector"
)

const (
	Restitution = 0.8
	Friction    = 0.2

	// coincidentEpsilon is the squared distance below which two anchors are
	// treated as coincident and DefaultNormal is used instead.
	coincidentEpsilon = 1e-4
	// slideEpsilon is the squared tangential speed below which no friction
	// impulse is applied.
	slideEpsilon = 1e-4
)

// DefaultNormal is used when the contact normal cannot be derived.
var DefaultNormal = vector.New(1, 0)

// Body is the view of a simulated body the solver needs. A mass of zero
// means infinite inertia.
type Body interface {
	Position() vector.Vec2
	Velocity() vector.Vec2
	SetVelocity(v vector.Vec2)
	Mass() float64
	Collider() Collider
}

type Outcome uint8

const (
	// Resolved means impulses were applied.
	Resolved Outcome = iota
	// Separating means the pair was already moving apart; nothing changed.
	Separating
	// Immovable means neither body has positive mass; nothing changed.
	Immovable
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Separating:
		return "separating"
	case Immovable:
		return "immovable"
	}
	return "unknown"
}

// Normal returns the unit contact normal pointing from a to b.
//
// Box pairs use the axis of least penetration. Any pair involving a circle
// uses the direction between the two body positions, and a box's position
// is its top-left corner, not its center. A circle landing away from that
// corner on a wide box therefore gets a mostly sideways normal.
func Normal(a, b Body) vector.Vec2 {
	ba, aok := a.Collider().(AABB)
	bb, bok := b.Collider().(AABB)
	if aok && bok {
		return boxNormal(ba, bb)
	}

	diff := b.Position().Sub(a.Position())
	if diff.LenSq() < coincidentEpsilon {
		return DefaultNormal
	}
	return diff.Normalize()
}

func boxNormal(a, b AABB) vector.Vec2 {
	overlapX := (a.Min.X + a.Width) - b.Min.X
	if alt := a.Min.X - (b.Min.X + b.Width); math.Abs(overlapX) > math.Abs(alt) {
		overlapX = alt
	}

	overlapY := (a.Min.Y + a.Height) - b.Min.Y
	if alt := a.Min.Y - (b.Min.Y + b.Height); math.Abs(overlapY) > math.Abs(alt) {
		overlapY = alt
	}

	if math.Abs(overlapX) < math.Abs(overlapY) {
		return vector.New(sign(overlapX), 0)
	}
	return vector.New(0, sign(overlapY))
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	return -1
}

func inverseMass(m float64) float64 {
	if m > 0 {
		return 1 / m
	}
	return 0
}

// Resolve applies the normal and friction impulses for a contact between a
// and b. Only velocities are modified.
func Resolve(a, b Body) Outcome {
	n := Normal(a, b)
	vA, vB := a.Velocity(), b.Velocity()
	vRel := vB.Sub(vA)
	vn := vRel.Dot(n)

	if vn > 0 {
		return Separating
	}

	invA, invB := inverseMass(a.Mass()), inverseMass(b.Mass())
	invSum := invA + invB
	if invSum == 0 {
		return Immovable
	}

	j := -(1 + Restitution) * vn / invSum
	impulse := n.Scale(j)
	a.SetVelocity(vA.Sub(impulse.Scale(invA)))
	b.SetVelocity(vB.Add(impulse.Scale(invB)))

	tangent := vRel.Sub(n.Scale(vn))
	if tangent.LenSq() <= slideEpsilon {
		return Resolved
	}
	tangent = tangent.Normalize()

	bound := j * Friction
	jt := -vRel.Dot(tangent) / invSum
	jt = math.Max(-bound, math.Min(jt, bound))

	friction := tangent.Scale(jt)
	a.SetVelocity(a.Velocity().Sub(friction.Scale(invA)))
	b.SetVelocity(b.Velocity().Add(friction.Scale(invB)))

	return Resolved
}
