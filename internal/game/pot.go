package game

import (
	"fmt"
	"slices"
)

// SplitRule decides how a pot that does not divide evenly between tied
// winners is paid.
type SplitRule int

const (
	// SplitOddChipToButton pays every winner the floor share and hands the
	// leftover chips out one at a time, starting with the first winner
	// clockwise from the button. No chips are created or lost.
	SplitOddChipToButton SplitRule = iota
	// SplitRoundHalfAway pays every winner the exact share rounded half
	// away from zero. With integer chips this can pay out one chip more or
	// less than the pot.
	SplitRoundHalfAway
)

func (r SplitRule) String() string {
	if r == SplitRoundHalfAway {
		return "round"
	}
	return "button"
}

func ParseSplitRule(s string) (SplitRule, error) {
	switch s {
	case "", "button":
		return SplitOddChipToButton, nil
	case "round":
		return SplitRoundHalfAway, nil
	}
	return SplitOddChipToButton, fmt.Errorf("unknown split rule %q", s)
}

// Pot is the main pot or a side pot.
type Pot struct {
	Name     string
	Size     int
	Eligible []int // seat indices, ascending
}

func (p *Pot) eligible(seat int) bool {
	_, ok := slices.BinarySearch(p.Eligible, seat)
	return ok
}

func (p *Pot) add(seat, amount int) {
	p.Size += amount
	if i, ok := slices.BinarySearch(p.Eligible, seat); !ok {
		p.Eligible = slices.Insert(p.Eligible, i, seat)
	}
}

func (p *Pot) remove(seat int) {
	if i, ok := slices.BinarySearch(p.Eligible, seat); ok {
		p.Eligible = slices.Delete(p.Eligible, i, i+1)
	}
}

func potName(n int) string {
	if n == 0 {
		return "Main pot"
	}
	return fmt.Sprintf("Side pot-%d", n)
}

// Winner is one payout from one pot.
type Winner struct {
	Player string
	Pot    string
	Amount int
}

type potSeat struct {
	name      string
	committed int
	stillIn   bool
	allIn     bool
}

// PotManager tracks the main pot and the side pots created by all-in
// play.
type PotManager struct {
	seats   []potSeat
	pots    []Pot
	total   int
	pending int
	dirty   bool
	// capped is set when the newest pot is an all-in layer; new money then
	// belongs in a pot above it.
	capped bool
	button int
	rule   SplitRule
}

// NewPotManager creates a single empty main pot that every seat is
// eligible for.
func NewPotManager(names []string, button int, rule SplitRule) *PotManager {
	pm := &PotManager{
		seats:  make([]potSeat, len(names)),
		button: button,
		rule:   rule,
	}
	main := Pot{Name: potName(0)}
	for i, name := range names {
		pm.seats[i] = potSeat{name: name, stillIn: true}
		main.Eligible = append(main.Eligible, i)
	}
	pm.pots = []Pot{main}
	return pm
}

// Apply records a committed action for the seat and brings the pots up to
// date.
func (pm *PotManager) Apply(seat int, a Action) {
	if seat < 0 || seat >= len(pm.seats) {
		return
	}
	s := &pm.seats[seat]
	switch {
	case a.Kind == Fold:
		s.stillIn = false
		for i := range pm.pots {
			pm.pots[i].remove(seat)
		}
	case a.AllIn:
		s.allIn = true
		s.committed += a.Amount
		pm.total += a.Amount
		pm.dirty = true
	case a.Amount > 0:
		s.committed += a.Amount
		pm.total += a.Amount
		pm.pending += a.Amount
		if pm.capped || !pm.pots[len(pm.pots)-1].eligible(seat) {
			pm.dirty = true
		}
	}
	pm.Recompute()
}

// Recompute folds pending money into the newest pot, or rebuilds every pot
// from the seat commitments when an all-in or a new contributor requires
// it.
func (pm *PotManager) Recompute() {
	if !pm.dirty {
		pm.pots[len(pm.pots)-1].Size += pm.pending
		pm.pending = 0
		return
	}

	remaining := make([]int, len(pm.seats))
	layered := make([]bool, len(pm.seats))
	for i, s := range pm.seats {
		remaining[i] = s.committed
	}

	var pots []Pot
	capped := false
	for {
		smallest := -1
		for i, s := range pm.seats {
			if s.stillIn && s.allIn && !layered[i] && (smallest < 0 || remaining[i] < remaining[smallest]) {
				smallest = i
			}
		}
		if smallest < 0 {
			break
		}
		layered[smallest] = true
		layer := remaining[smallest]
		if layer == 0 {
			continue
		}
		pot := Pot{Name: potName(len(pots))}
		for i := range pm.seats {
			if remaining[i] == 0 {
				continue
			}
			amt := min(layer, remaining[i])
			remaining[i] -= amt
			if pm.seats[i].stillIn {
				pot.add(i, amt)
			} else {
				pot.Size += amt
			}
		}
		pots = append(pots, pot)
		capped = true
	}

	rest := Pot{Name: potName(len(pots))}
	for i := range pm.seats {
		if remaining[i] == 0 {
			continue
		}
		if pm.seats[i].stillIn {
			rest.add(i, remaining[i])
		} else {
			rest.Size += remaining[i]
		}
	}
	if rest.Size > 0 || len(pots) == 0 {
		pots = append(pots, rest)
		capped = false
	}

	pm.pots = pots
	pm.capped = capped
	pm.pending = 0
	pm.dirty = false
}

// Pots returns a copy of the current pots in creation order.
func (pm *PotManager) Pots() []Pot {
	pm.Recompute()
	out := make([]Pot, len(pm.pots))
	for i, p := range pm.pots {
		out[i] = Pot{Name: p.Name, Size: p.Size, Eligible: slices.Clone(p.Eligible)}
	}
	return out
}

// Total is the sum of every chip committed this hand.
func (pm *PotManager) Total() int { return pm.total }

// Distribute awards every pot in creation order. Strengths are indexed by
// seat; only eligible seats are compared, so folded seats may hold any
// value. A pot with a single eligible seat is awarded without comparison.
func (pm *PotManager) Distribute(strengths []uint32) []Winner {
	pm.Recompute()
	var winners []Winner
	for _, p := range pm.pots {
		if p.Size == 0 || len(p.Eligible) == 0 {
			continue
		}
		if len(p.Eligible) == 1 {
			winners = append(winners, Winner{Player: pm.seats[p.Eligible[0]].name, Pot: p.Name, Amount: p.Size})
			continue
		}

		var best []int
		var highest uint32
		for _, seat := range p.Eligible {
			var strength uint32
			if seat < len(strengths) {
				strength = strengths[seat]
			}
			switch {
			case len(best) == 0 || strength > highest:
				highest = strength
				best = append(best[:0], seat)
			case strength == highest:
				best = append(best, seat)
			}
		}
		winners = append(winners, pm.split(p, best)...)
	}
	return winners
}

func (pm *PotManager) split(p Pot, seats []int) []Winner {
	n := len(seats)
	out := make([]Winner, 0, n)
	if n == 1 {
		return append(out, Winner{Player: pm.seats[seats[0]].name, Pot: p.Name, Amount: p.Size})
	}

	if pm.rule == SplitRoundHalfAway {
		share := (2*p.Size + n) / (2 * n)
		for _, seat := range seats {
			out = append(out, Winner{Player: pm.seats[seat].name, Pot: p.Name, Amount: share})
		}
		return out
	}

	// Order winners clockwise from the seat after the button.
	total := len(pm.seats)
	ordered := slices.Clone(seats)
	slices.SortFunc(ordered, func(a, b int) int {
		return (a-pm.button-1+total)%total - (b-pm.button-1+total)%total
	})
	share, odd := p.Size/n, p.Size%n
	for i, seat := range ordered {
		amt := share
		if i < odd {
			amt++
		}
		out = append(out, Winner{Player: pm.seats[seat].name, Pot: p.Name, Amount: amt})
	}
	return out
}
