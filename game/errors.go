package game

import "errors"

// Sentinel errors returned by scenario operations. Callers match them with
// errors.Is; wrapped messages carry the offending coordinates or unit.
var (
	// ErrInvalidCoordinate reports a row/column outside the map or a tile
	// index outside the arena.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrIllegalMove reports a movement request that violates the movement
	// rules (immobile unit, destination out of range, blocked tile).
	ErrIllegalMove = errors.New("illegal move")

	// ErrIllegalBuild reports a build request the province cannot afford or
	// the tile cannot host.
	ErrIllegalBuild = errors.New("illegal build")

	// ErrInvariantViolation reports internal state the engine cannot
	// reconcile, e.g. an action referencing a province that does not exist.
	ErrInvariantViolation = errors.New("invariant violation")
)
