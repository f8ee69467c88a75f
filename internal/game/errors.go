package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is wrapped by every HandConfig validation failure.
	ErrInvalidConfig = errors.New("invalid hand config")
	// ErrNoAction is returned when an action still has kind ActionNone
	// after validation.
	ErrNoAction = errors.New("action resolved to none")
	// ErrExtraActions is returned when a recorded street holds more
	// actions than the round allows.
	ErrExtraActions = errors.New("actions left after round over")
	// ErrMissingBlind is returned when a record skips a required posting
	// but carries street actions after it.
	ErrMissingBlind = errors.New("required posting missing from record")
	// ErrPostingMismatch is returned when a recorded posting is of a
	// different kind than the one the seat owes.
	ErrPostingMismatch = errors.New("recorded posting does not match")
	// ErrChipConservation is returned when stacks and pots no longer add
	// up to the chips the hand started with.
	ErrChipConservation = errors.New("chip conservation violated")
)

// ActorMismatchError reports a recorded action attributed to a seat other
// than the one whose turn it is.
type ActorMismatchError struct {
	Street   Street
	Index    int
	Expected string
	Got      string
}

func (e *ActorMismatchError) Error() string {
	return fmt.Sprintf("action list not aligned: %s action %d expected %q, got %q",
		e.Street, e.Index, e.Expected, e.Got)
}
