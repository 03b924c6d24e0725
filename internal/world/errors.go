package world

import "errors"

// Domain errors for world operations.
var (
	// ErrNotFound indicates an operation referenced a body id that does not exist.
	ErrNotFound = errors.New("world: body not found")

	// ErrInvalidArgument indicates a malformed request (bad vector, negative mass, unknown shape).
	ErrInvalidArgument = errors.New("world: invalid argument")

	// ErrDegenerate marks a contact between two immovable bodies. It is
	// reported on Contact, never returned from Step.
	ErrDegenerate = errors.New("world: degenerate contact (both bodies immovable)")
)
