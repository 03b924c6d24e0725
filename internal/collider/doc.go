// Package collider provides the pure geometry used for contact detection
// and the impulse solver that turns a detected contact into velocity changes.
//
// Two shapes are supported:
//
//   - [AABB]: axis-aligned box anchored at its top-left corner
//   - [Circle]: disc anchored at its center
//
// Colliders hold no physical state and never reference the body that owns
// them. [Resolve] operates on anything implementing [Body].
//
// # Resolution
//
// Contacts are resolved with a single normal impulse (restitution 0.8)
// followed by a Coulomb-clamped tangential impulse (friction 0.2):
//
//	if collider.Overlaps(a.Collider(), b.Collider()) {
//	    outcome := collider.Resolve(a, b)
//	}
package collider
