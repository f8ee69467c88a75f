// Package bot provides simple automated players. Every bot picks from the
// legal actions the engine offers, so its decisions never need correcting.
package bot

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
)

// Strategies lists the names New accepts.
var Strategies = []string{"call", "fold", "raise", "random", "tag"}

// New returns the bot for a strategy name. A nil logger discards output.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.DecisionSource, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	switch strategy {
	case "call":
		return NewCallBot(logger), nil
	case "fold":
		return NewFoldBot(logger), nil
	case "raise":
		return NewManiacBot(rng, logger), nil
	case "random":
		return NewRandBot(rng, logger), nil
	case "tag":
		return NewTAGBot(rng, logger), nil
	}
	return nil, fmt.Errorf("unknown bot strategy %q", strategy)
}

// legal indexes the actions offered to the bot.
type legal struct {
	check, fold, call  *game.Action
	minRaise, maxRaise *game.Action
}

func classify(actions []game.Action) legal {
	var l legal
	for i := range actions {
		a := &actions[i]
		switch {
		case a.Kind == game.Check:
			l.check = a
		case a.Kind == game.Fold:
			l.fold = a
		case a.Kind == game.Call:
			l.call = a
		case a.Kind.IsAggressive():
			if l.minRaise == nil {
				l.minRaise = a
			}
			l.maxRaise = a
		}
	}
	return l
}

// passive checks when it can, folds otherwise.
func (l legal) passive() *game.Action {
	if l.check != nil {
		return l.check
	}
	return l.fold
}

func decide(a *game.Action, reasoning string) game.Decision {
	if a == nil {
		return game.Decision{Kind: game.Fold, Reasoning: "no legal actions"}
	}
	return game.Decision{Kind: a.Kind, Amount: a.Amount, Reasoning: reasoning}
}

// between picks an amount inside a raise range. frac is clamped to [0, 1].
func between(l legal, frac float64) *game.Action {
	if l.minRaise == nil {
		return nil
	}
	frac = min(max(frac, 0), 1)
	a := *l.minRaise
	a.Amount += int(float64(l.maxRaise.Amount-l.minRaise.Amount) * frac)
	if a.Amount == l.maxRaise.Amount {
		return l.maxRaise
	}
	return &a
}
