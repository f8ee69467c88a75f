package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
)

// ErrQuit is returned by ParseCommand for the quit command.
var ErrQuit = errors.New("quit")

const helpText = "f fold • k check • c call • b N bet to N • r N raise to N • a all-in • q quit"

// ParseCommand turns a line of input into a decision for state. Bet and
// raise sizes are street totals ("raise to"), which is how players say
// them at the table.
func ParseCommand(input string, state game.PublicState) (game.Decision, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return game.Decision{}, fmt.Errorf("enter an action: %s", helpText)
	}

	var (
		passive    = findKind(state.ValidActions, game.Check, game.Fold)
		call       = findKind(state.ValidActions, game.Call)
		aggressive = aggressiveRange(state.ValidActions)
	)

	switch fields[0] {
	case "q", "quit", "exit":
		return game.Decision{}, ErrQuit
	case "?", "h", "help":
		return game.Decision{}, errors.New(helpText)
	case "f", "fold":
		return game.Decision{Kind: game.Fold, Reasoning: "human"}, nil
	case "k", "check":
		if passive == nil || passive.Kind != game.Check {
			return game.Decision{}, fmt.Errorf("cannot check, %d to call", state.Owed)
		}
		return game.Decision{Kind: game.Check, Reasoning: "human"}, nil
	case "c", "call":
		if call == nil {
			if passive != nil && passive.Kind == game.Check {
				return game.Decision{Kind: game.Check, Reasoning: "human"}, nil
			}
			return game.Decision{}, errors.New("nothing to call")
		}
		return game.Decision{Kind: game.Call, Amount: call.Amount, Reasoning: "human"}, nil
	case "a", "all", "allin", "all-in":
		if len(aggressive) == 0 {
			if call != nil {
				return game.Decision{Kind: game.Call, Amount: call.Amount, Reasoning: "human"}, nil
			}
			return game.Decision{}, errors.New("cannot raise")
		}
		top := aggressive[len(aggressive)-1]
		return game.Decision{Kind: top.Kind, Amount: top.Amount, Reasoning: "human"}, nil
	case "b", "bet", "r", "raise":
		if len(aggressive) == 0 {
			return game.Decision{}, errors.New("cannot bet or raise")
		}
		if len(fields) < 2 {
			first := aggressive[0]
			return game.Decision{Kind: first.Kind, Amount: first.Amount, Reasoning: "human"}, nil
		}
		to, err := strconv.Atoi(fields[1])
		if err != nil {
			return game.Decision{}, fmt.Errorf("invalid amount %q", fields[1])
		}
		amount := to - state.CommittedThisStreet
		lo, hi := aggressive[0].Amount, aggressive[len(aggressive)-1].Amount
		if amount < lo || amount > hi {
			return game.Decision{}, fmt.Errorf("amount must be between %d and %d",
				lo+state.CommittedThisStreet, hi+state.CommittedThisStreet)
		}
		return game.Decision{Kind: aggressive[0].Kind, Amount: amount, Reasoning: "human"}, nil
	}
	return game.Decision{}, fmt.Errorf("unknown command %q: %s", fields[0], helpText)
}

func findKind(actions []game.Action, kinds ...game.ActionKind) *game.Action {
	for i := range actions {
		for _, k := range kinds {
			if actions[i].Kind == k {
				return &actions[i]
			}
		}
	}
	return nil
}

func aggressiveRange(actions []game.Action) []game.Action {
	var out []game.Action
	for _, a := range actions {
		if a.Kind.IsAggressive() {
			out = append(out, a)
		}
	}
	return out
}
