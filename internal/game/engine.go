package game

import (
	"context"
	"fmt"
)

// Engine plays one hand from the forced bets to the payout, asking each
// seat's DecisionSource for its actions. An Engine is single use.
type Engine struct {
	hand   *handState
	played bool
}

// NewEngine prepares a hand. Seats are ordered by table position; the
// caller's slice is not modified.
func NewEngine(cfg HandConfig, opts ...Option) (*Engine, error) {
	for _, s := range cfg.Seats {
		if s.Brain == nil {
			return nil, fmt.Errorf("%w: seat %q has no decision source", ErrInvalidConfig, s.Name)
		}
	}
	h, err := newHandState(cfg, defaultOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Engine{hand: h}, nil
}

// History returns the hand history, complete once Play has returned
// without error.
func (e *Engine) History() *HandHistory {
	return e.hand.history
}

// Play runs the hand to completion. The context is checked between
// decisions.
func (e *Engine) Play(ctx context.Context) (*HandHistory, error) {
	if e.played {
		return nil, fmt.Errorf("hand %s already played", e.hand.history.ID)
	}
	e.played = true
	h := e.hand

	if _, err := h.forcedBets(func(seat int, kind ActionKind) (bool, error) {
		_, err := h.addAction(seat, Action{Kind: kind})
		return true, err
	}); err != nil {
		return nil, fmt.Errorf("forced bets: %w", err)
	}

	for street := Preflop; street <= River; street++ {
		if err := h.enterStreet(street); err != nil {
			return nil, err
		}
		if err := e.bettingRound(ctx, street); err != nil {
			return nil, err
		}
		if h.betting.In() <= 1 {
			break
		}
	}

	if err := h.finish(); err != nil {
		return nil, err
	}
	return h.history, nil
}

func (e *Engine) bettingRound(ctx context.Context, street Street) error {
	h := e.hand
	if !h.betting.ActionPending() {
		return nil
	}
	seat := h.firstToAct(street)
	for seat >= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		d := h.seats[seat].Brain.Decide(h.publicState(seat))
		if _, err := h.addAction(seat, Action{Kind: d.Kind, Amount: d.Amount}); err != nil {
			return fmt.Errorf("%s: %w", street, err)
		}
		if h.betting.RoundOver() {
			return nil
		}
		seat = h.ring.Next()
	}
	return fmt.Errorf("%s: betting open with nobody left to act", street)
}
