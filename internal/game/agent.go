package game

import "github.com/lox/holdem-engine/poker"

// Decision is what a decision source wants to do. The engine validates it
// and may rewrite it; a decision is never rejected.
type Decision struct {
	Kind      ActionKind
	Amount    int // chips to put in with this action
	Reasoning string
}

// PlayerState is the public view of one seat.
type PlayerState struct {
	Name      string
	Position  int
	Stack     int // chips behind
	Committed int // chips put in this hand
	Folded    bool
	AllIn     bool
}

// PublicState is the read-only view handed to a decision source. Only the
// acting seat's hole cards are filled in.
type PublicState struct {
	HandID    string
	Street    Street
	Structure Structure
	Blinds    Blinds
	Ante      int

	Seat      int
	Player    string
	HoleCards poker.Hand
	Board     poker.Hand

	Stack               int
	Committed           int
	CommittedThisStreet int
	Owed                int
	MostCommitted       int
	MinimumRaise        int
	BetLevel            int
	Pot                 int

	Players      []PlayerState
	StreetLog    []Action // actions so far on this street
	ValidActions []Action // fold-or-check, call, minimum and maximum raise
}

// DecisionSource supplies decisions for one seat. Implementations must not
// retain or modify the state they are given.
type DecisionSource interface {
	Decide(state PublicState) Decision
}

// DecisionFunc adapts a function to DecisionSource.
type DecisionFunc func(state PublicState) Decision

func (f DecisionFunc) Decide(state PublicState) Decision { return f(state) }

// Scripted replays a fixed list of decisions and folds once it runs out.
type Scripted struct {
	decisions []Decision
	next      int
}

func NewScripted(decisions ...Decision) *Scripted {
	return &Scripted{decisions: decisions}
}

func (s *Scripted) Decide(PublicState) Decision {
	if s.next >= len(s.decisions) {
		return Decision{Kind: Fold, Reasoning: "script exhausted"}
	}
	d := s.decisions[s.next]
	s.next++
	return d
}
