package world

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/collider"
	"github.com/san-kum/rigidsim/internal/forces"
	"github.com/san-kum/rigidsim/internal/vector"
)

const (
	DefaultStaticFriction  = 0.5
	DefaultKineticFriction = 0.3
)

// DefaultGravity points down in screen coordinates.
var DefaultGravity = vector.New(0, forces.DefaultGravity)

// Pair is an unordered contact between two body ids, recorded as (i, j)
// in collection order.
type Pair struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// Contact is a detected overlap and what the solver did about it.
type Contact struct {
	Pair
	Outcome collider.Outcome
	Err     error
}

type World struct {
	mu sync.Mutex

	bodies          []*body.Body
	customForces    map[int]vector.Vec2
	gravity         vector.Vec2
	gravityEnabled  bool
	running         bool
	staticFriction  float64
	kineticFriction float64
	nextID          int
	contacts        []Contact

	log *slog.Logger
}

func New() *World {
	w := &World{log: slog.Default()}
	w.reset()
	return w
}

// SetLogger replaces the logger; nil restores slog.Default.
func (w *World) SetLogger(l *slog.Logger) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if l == nil {
		l = slog.Default()
	}
	w.log = l
}

func (w *World) reset() {
	w.bodies = nil
	w.customForces = make(map[int]vector.Vec2)
	w.contacts = nil
	w.gravity = DefaultGravity
	w.gravityEnabled = true
	w.running = false
	w.staticFriction = DefaultStaticFriction
	w.kineticFriction = DefaultKineticFriction
	w.nextID = 1
}

// Reset clears bodies, forces and contacts and restores defaults.
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *World) add(b *body.Body) int {
	if b.ID() <= 0 || w.index(b.ID()) >= 0 {
		b.SetID(w.nextID)
		w.nextID++
	} else if b.ID() >= w.nextID {
		w.nextID = b.ID() + 1
	}
	w.bodies = append(w.bodies, b)
	return b.ID()
}

// Add takes ownership of b and returns its id. An unset id, or one already
// in use, is replaced by the next free id; a larger supplied id advances the
// counter past it. The caller must not mutate b afterwards.
func (w *World) Add(b *body.Body) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.add(b)
}

// Replace swaps the whole world content in one transition: reset, add
// each body in order, then set gravity.
func (w *World) Replace(bodies []*body.Body, gravity vector.Vec2) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
	for _, b := range bodies {
		w.add(b)
	}
	w.gravity = gravity
}

// Remove deletes the body and its custom force. It reports whether a body
// was removed.
func (w *World) Remove(id int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.customForces, id)
	i := w.index(id)
	if i < 0 {
		return false
	}
	w.bodies = slices.Delete(w.bodies, i, i+1)
	return true
}

func (w *World) index(id int) int {
	for i, b := range w.bodies {
		if b.ID() == id {
			return i
		}
	}
	return -1
}

func (w *World) find(id int) (*body.Body, error) {
	if i := w.index(id); i >= 0 {
		return w.bodies[i], nil
	}
	return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Object returns a clone of the body with the given id.
func (w *World) Object(id int) (*body.Body, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, err := w.find(id)
	if err != nil {
		return nil, err
	}
	return b.Clone(), nil
}

// Objects returns clones of every body in collection order.
func (w *World) Objects() []*body.Body {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*body.Body, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b.Clone()
	}
	return out
}

func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.bodies)
}

// Update runs fn against the live body under the world lock and returns a
// clone of the result. fn must not retain the pointer.
func (w *World) Update(id int, fn func(b *body.Body)) (*body.Body, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, err := w.find(id)
	if err != nil {
		return nil, err
	}
	fn(b)
	return b.Clone(), nil
}

// SetCustomForce registers a force applied every step until cleared. Any
// existing force for id is replaced.
func (w *World) SetCustomForce(id int, f vector.Vec2) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.find(id); err != nil {
		return err
	}
	w.customForces[id] = f
	return nil
}

func (w *World) ClearCustomForce(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.find(id); err != nil {
		return err
	}
	delete(w.customForces, id)
	return nil
}

// CustomForce returns the registered force for id, or Zero.
func (w *World) CustomForce(id int) vector.Vec2 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.customForces[id]
}

// ApplyImpulse changes the body's velocity once by impulse/m.
func (w *World) ApplyImpulse(id int, impulse vector.Vec2) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, err := w.find(id)
	if err != nil {
		return err
	}
	forces.Impulse(b, impulse)
	return nil
}

func (w *World) Gravity() vector.Vec2 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gravity
}

func (w *World) SetGravity(g vector.Vec2) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gravity = g
}

func (w *World) GravityEnabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gravityEnabled
}

func (w *World) SetGravityEnabled(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gravityEnabled = enabled
}

// Friction returns the static and kinetic coefficients. The contact solver
// uses its own fixed coefficient; these are tunables for callers.
func (w *World) Friction() (static, kinetic float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.staticFriction, w.kineticFriction
}

func (w *World) SetFriction(static, kinetic float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.staticFriction, w.kineticFriction = static, kinetic
}

// Start and Pause toggle the running flag. The flag is informational;
// Step always advances.
func (w *World) Start() { w.setRunning(true) }
func (w *World) Pause() { w.setRunning(false) }

func (w *World) setRunning(r bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = r
}

func (w *World) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// NextID is the id the next body without one will receive.
func (w *World) NextID() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nextID
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, b := range w.bodies {
		b.ResetForces()
	}

	for _, b := range w.bodies {
		if b.Mass() <= 0 {
			continue
		}
		if w.gravityEnabled {
			forces.Gravity(b, w.gravity)
		}
		if f, ok := w.customForces[b.ID()]; ok {
			forces.Custom(b, f)
		}
	}

	for _, b := range w.bodies {
		b.Update(dt)
	}

	w.handleCollisions()
}

// HandleCollisions runs only the contact pass.
func (w *World) HandleCollisions() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handleCollisions()
}

func (w *World) handleCollisions() {
	w.contacts = w.contacts[:0]

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			if !collider.Overlaps(a.Collider(), b.Collider()) {
				continue
			}

			c := Contact{Pair: Pair{A: a.ID(), B: b.ID()}, Outcome: collider.Resolve(a, b)}
			if c.Outcome == collider.Immovable {
				c.Err = ErrDegenerate
				w.log.Debug("skipping contact resolution", "a", a.ID(), "b", b.ID(), "reason", c.Err)
			}
			w.contacts = append(w.contacts, c)
		}
	}
}

// Collisions returns the contact pairs found by the last collision pass.
func (w *World) Collisions() []Pair {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pairs()
}

// Contacts returns the last pass's contacts with their solver outcome.
func (w *World) Contacts() []Contact {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Contact, len(w.contacts))
	copy(out, w.contacts)
	return out
}

func (w *World) pairs() []Pair {
	out := make([]Pair, len(w.contacts))
	for i, c := range w.contacts {
		out[i] = c.Pair
	}
	return out
}
