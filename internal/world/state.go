package world

import "github.com/san-kum/rigidsim/internal/body"

// BodyState is the reporting view of one body.
type BodyState struct {
	ID       int        `json:"id"`
	Type     body.Kind  `json:"type"`
	Mass     float64    `json:"mass"`
	Position [2]float64 `json:"position"`
	Velocity [2]float64 `json:"velocity"`
}

// State is a read-only snapshot for external reporting.
type State struct {
	Bodies     []BodyState `json:"bodies"`
	Running    bool        `json:"running"`
	Gravity    [2]float64  `json:"gravity"`
	Collisions []Pair      `json:"collisions"`
}

// State takes a consistent snapshot of the world.
func (w *World) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := State{
		Bodies:     make([]BodyState, len(w.bodies)),
		Running:    w.running,
		Gravity:    w.gravity.Array(),
		Collisions: w.pairs(),
	}
	for i, b := range w.bodies {
		s.Bodies[i] = BodyState{
			ID:       b.ID(),
			Type:     b.Kind(),
			Mass:     b.Mass(),
			Position: b.Position().Array(),
			Velocity: b.Velocity().Array(),
		}
	}
	return s
}

// Body looks up a body in the snapshot.
func (s State) Body(id int) (BodyState, bool) {
	for _, b := range s.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return BodyState{}, false
}

// HasCollision reports whether the unordered pair (a, b) was in contact.
func (s State) HasCollision(a, b int) bool {
	for _, p := range s.Collisions {
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			return true
		}
	}
	return false
}
