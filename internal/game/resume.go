package game

import "fmt"

// ResumeInput is a partially played hand: the table and every action
// recorded so far. Actions[Predeal] holds antes and blinds in posting
// order; amounts of recorded actions are re-validated, not trusted.
type ResumeInput struct {
	Config  HandConfig
	Actions ActionLog
}

// ResumeResult is the reconstructed hand. When Complete is false,
// NextActor is the seat whose turn it is and ValidActions lists what it
// may do.
type ResumeResult struct {
	History      *HandHistory
	Complete     bool
	NextActor    string
	ValidActions []Action
}

// Resumer rebuilds a hand from a record instead of asking decision
// sources. Structural problems in the record are fatal.
type Resumer struct {
	in   ResumeInput
	opts []Option
}

func NewResumer(in ResumeInput, opts ...Option) *Resumer {
	return &Resumer{in: in, opts: opts}
}

// Resume replays the record. It returns an *ActorMismatchError when an
// action names the wrong seat, ErrExtraActions when a street holds more
// actions than its betting allows, and ErrMissingBlind when a forced bet is
// absent but later actions exist. A posting of the wrong kind is
// ErrPostingMismatch.
func (r *Resumer) Resume() (*ResumeResult, error) {
	h, err := newHandState(r.in.Config, defaultOptions(r.opts))
	if err != nil {
		return nil, err
	}
	actions := &r.in.Actions

	var pending *ResumeResult
	posted := 0
	later := actions.Len() - len(actions[Predeal])
	done, err := h.forcedBets(func(seat int, kind ActionKind) (bool, error) {
		name := h.seats[seat].Name
		if posted >= len(actions[Predeal]) {
			if later > 0 {
				return false, fmt.Errorf("%w: %s %s", ErrMissingBlind, name, kind)
			}
			pending = &ResumeResult{
				NextActor:    name,
				ValidActions: []Action{h.betting.Validate(Action{Player: name, Kind: kind})},
			}
			return false, nil
		}
		rec := actions[Predeal][posted]
		if rec.Player != name {
			return false, &ActorMismatchError{Street: Predeal, Index: posted, Expected: name, Got: rec.Player}
		}
		if rec.Kind != kind {
			return false, fmt.Errorf("%w: posting %d by %s is %s, expected %s", ErrPostingMismatch, posted, name, rec.Kind, kind)
		}
		posted++
		_, err := h.addAction(seat, Action{Kind: kind, Amount: rec.Amount})
		return true, err
	})
	if err != nil {
		return nil, err
	}
	if !done {
		pending.History = h.history
		return pending, nil
	}
	if posted < len(actions[Predeal]) {
		return nil, fmt.Errorf("%w: %d unused forced bets", ErrExtraActions, len(actions[Predeal])-posted)
	}

	for street := Preflop; street <= River; street++ {
		if h.betting.In() <= 1 {
			if n := len(actions[street]); n > 0 {
				return nil, fmt.Errorf("%w: %d %s actions after the hand ended", ErrExtraActions, n, street)
			}
			continue
		}
		if err := h.enterStreet(street); err != nil {
			return nil, err
		}
		next, err := replayStreet(h, street, actions[street])
		if err != nil {
			return nil, err
		}
		if next >= 0 {
			return &ResumeResult{
				History:      h.history,
				NextActor:    h.seats[next].Name,
				ValidActions: h.legalActions(next),
			}, nil
		}
	}

	if err := h.finish(); err != nil {
		return nil, err
	}
	return &ResumeResult{History: h.history, Complete: true}, nil
}

// replayStreet commits the recorded actions of one street. It returns the
// seat to act when the record ends before the betting does, or -1.
func replayStreet(h *handState, street Street, recorded []Action) (int, error) {
	i := 0
	if h.betting.ActionPending() {
		seat := h.firstToAct(street)
		for {
			if i == len(recorded) {
				return seat, nil
			}
			rec := recorded[i]
			if want := h.seats[seat].Name; rec.Player != want {
				return -1, &ActorMismatchError{Street: street, Index: i, Expected: want, Got: rec.Player}
			}
			if _, err := h.addAction(seat, rec); err != nil {
				return -1, fmt.Errorf("%s: %w", street, err)
			}
			i++
			if h.betting.RoundOver() {
				break
			}
			if seat = h.ring.Next(); seat < 0 {
				return -1, fmt.Errorf("%s: betting open with nobody left to act", street)
			}
		}
	}
	if i < len(recorded) {
		return -1, fmt.Errorf("%w: %d left on the %s", ErrExtraActions, len(recorded)-i, street)
	}
	return -1, nil
}
