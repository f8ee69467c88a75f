package game

import (
	"fmt"
	"strings"
)

// Street is a phase of the hand. Streets only move forward.
type Street int

const (
	Predeal Street = iota
	Preflop
	Flop
	Turn
	River
	Showdown
	Over
)

// bettingStreets is the number of streets that carry actions,
// Predeal through River.
const bettingStreets = int(River) + 1

func (s Street) String() string {
	if s < Predeal || s > Over {
		return fmt.Sprintf("Street(%d)", int(s))
	}
	return [...]string{"predeal", "preflop", "flop", "turn", "river", "showdown", "over"}[s]
}

func ParseStreet(s string) (Street, error) {
	for st := Predeal; st <= Over; st++ {
		if strings.EqualFold(s, st.String()) {
			return st, nil
		}
	}
	return Predeal, fmt.Errorf("unknown street %q", s)
}

// Structure is the betting structure of the hand.
type Structure int

const (
	NoLimit Structure = iota
	PotLimit
	FixedLimit
)

func (s Structure) String() string {
	switch s {
	case NoLimit:
		return "no-limit"
	case PotLimit:
		return "pot-limit"
	case FixedLimit:
		return "fixed-limit"
	}
	return fmt.Sprintf("Structure(%d)", int(s))
}

func ParseStructure(s string) (Structure, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "no-limit", "nl", "":
		return NoLimit, nil
	case "pot-limit", "pl":
		return PotLimit, nil
	case "fixed-limit", "limit", "fl":
		return FixedLimit, nil
	}
	return NoLimit, fmt.Errorf("unknown betting structure %q", s)
}

// Blinds holds the forced bets. A zero Small means the hand has no small
// blind.
type Blinds struct {
	Small int
	Big   int
}

// BlindsFromSlice accepts the [], [bb] and [sb, bb] forms.
func BlindsFromSlice(v []int) (Blinds, error) {
	switch len(v) {
	case 0:
		return Blinds{}, nil
	case 1:
		return Blinds{Big: v[0]}, nil
	case 2:
		return Blinds{Small: v[0], Big: v[1]}, nil
	}
	return Blinds{}, fmt.Errorf("%w: blinds must have at most 2 entries, got %d", ErrInvalidConfig, len(v))
}

// Slice is the inverse of BlindsFromSlice.
func (b Blinds) Slice() []int {
	switch {
	case b.Small > 0:
		return []int{b.Small, b.Big}
	case b.Big > 0:
		return []int{b.Big}
	}
	return nil
}
