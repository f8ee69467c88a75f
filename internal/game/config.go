package game

import (
	"fmt"
	"sort"
)

// Seat is one participant in a hand.
type Seat struct {
	Name     string
	Position int // table position, used for ordering and the button
	Stack    int
	Brain    DecisionSource
}

// HandConfig describes the table at the start of a hand.
type HandConfig struct {
	ID        string
	Seats     []Seat
	Button    int // table position of the button
	Blinds    Blinds
	Ante      int
	Structure Structure
	Rake      int // carried through to the history, never deducted
}

// Validate checks the configuration and returns an error wrapping
// ErrInvalidConfig.
func (c HandConfig) Validate() error {
	if len(c.Seats) < 2 {
		return fmt.Errorf("%w: at least 2 seats required, got %d", ErrInvalidConfig, len(c.Seats))
	}
	names := make(map[string]bool, len(c.Seats))
	positions := make(map[int]bool, len(c.Seats))
	for _, s := range c.Seats {
		if s.Name == "" {
			return fmt.Errorf("%w: seat at position %d has no name", ErrInvalidConfig, s.Position)
		}
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate seat name %q", ErrInvalidConfig, s.Name)
		}
		if positions[s.Position] {
			return fmt.Errorf("%w: duplicate table position %d", ErrInvalidConfig, s.Position)
		}
		if s.Stack <= 0 {
			return fmt.Errorf("%w: seat %q has no chips", ErrInvalidConfig, s.Name)
		}
		names[s.Name] = true
		positions[s.Position] = true
	}
	if !positions[c.Button] {
		return fmt.Errorf("%w: no seat at button position %d", ErrInvalidConfig, c.Button)
	}
	if c.Blinds.Small < 0 || c.Blinds.Big < 0 || c.Ante < 0 {
		return fmt.Errorf("%w: blinds and ante must not be negative", ErrInvalidConfig)
	}
	if c.Blinds.Small > 0 && c.Blinds.Big < c.Blinds.Small {
		return fmt.Errorf("%w: big blind %d smaller than small blind %d", ErrInvalidConfig, c.Blinds.Big, c.Blinds.Small)
	}
	return nil
}

// sortedSeats returns a copy of the seats ordered by table position and
// the index of the button within it.
func (c HandConfig) sortedSeats() ([]Seat, int) {
	seats := make([]Seat, len(c.Seats))
	copy(seats, c.Seats)
	sort.SliceStable(seats, func(i, j int) bool { return seats[i].Position < seats[j].Position })
	button := 0
	for i, s := range seats {
		if s.Position == c.Button {
			button = i
		}
	}
	return seats, button
}
