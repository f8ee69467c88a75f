package game

import (
	"fmt"
	"strings"
)

// ActionKind is the type of a seat action.
type ActionKind int

const (
	// ActionNone is a sentinel that must never survive validation.
	ActionNone ActionKind = iota
	PostAnte
	PostSmallBlind
	PostBigBlind
	Fold
	Check
	Call
	Bet
	Raise
)

var actionKindNames = [...]string{"none", "ante", "small_blind", "big_blind", "fold", "check", "call", "bet", "raise"}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionKindNames) {
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
	return actionKindNames[k]
}

// IsPost reports whether the kind is a forced posting.
func (k ActionKind) IsPost() bool {
	return k == PostAnte || k == PostSmallBlind || k == PostBigBlind
}

// IsAggressive reports whether the kind opens or reopens betting.
func (k ActionKind) IsAggressive() bool {
	return k == Bet || k == Raise
}

// ParseActionKind accepts the names produced by String plus a few
// common aliases.
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ante", "post_ante":
		return PostAnte, nil
	case "small_blind", "sb", "post_small_blind":
		return PostSmallBlind, nil
	case "big_blind", "bb", "post_big_blind":
		return PostBigBlind, nil
	case "fold", "f":
		return Fold, nil
	case "check", "k", "x":
		return Check, nil
	case "call", "c":
		return Call, nil
	case "bet", "b":
		return Bet, nil
	case "raise", "r":
		return Raise, nil
	case "none", "":
		return ActionNone, nil
	}
	return ActionNone, fmt.Errorf("unknown action %q", s)
}

// Action is a single seat action. Amount is the number of chips this
// action puts in, not the street total it raises to.
type Action struct {
	Player string
	Kind   ActionKind
	Amount int
	AllIn  bool
}

// Same compares actions by actor and kind only.
func (a Action) Same(o Action) bool {
	return a.Player == o.Player && a.Kind == o.Kind
}

func (a Action) String() string {
	var b strings.Builder
	b.WriteString(a.Player)
	switch a.Kind {
	case PostAnte:
		fmt.Fprintf(&b, ": posts the ante %d", a.Amount)
	case PostSmallBlind:
		fmt.Fprintf(&b, ": posts small blind %d", a.Amount)
	case PostBigBlind:
		fmt.Fprintf(&b, ": posts big blind %d", a.Amount)
	case Fold:
		b.WriteString(": folds")
	case Check:
		b.WriteString(": checks")
	case Call:
		fmt.Fprintf(&b, ": calls %d", a.Amount)
	case Bet:
		fmt.Fprintf(&b, ": bets %d", a.Amount)
	case Raise:
		fmt.Fprintf(&b, ": raises %d", a.Amount)
	default:
		b.WriteString(": none")
	}
	if a.AllIn {
		b.WriteString(" and is all-in")
	}
	return b.String()
}
