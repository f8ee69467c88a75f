package game

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/poker"
)

// handState is the mutable state of one hand, shared by Engine and
// Resumer. It is never shared between hands.
type handState struct {
	seats   []Seat
	button  int
	bigSeat int // seat that posted the big blind, -1 if none

	betting *BettingRound
	pots    *PotManager
	ring    *actingRing
	history *HandHistory

	deck      deck.Source
	evaluator StrengthEvaluator
	split     SplitRule
	logger    *log.Logger
}

func newHandState(cfg HandConfig, o *handOptions) (*handState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Seats) > deck.MaxSeats {
		return nil, fmt.Errorf("%w: at most %d seats, got %d", ErrInvalidConfig, deck.MaxSeats, len(cfg.Seats))
	}
	seats, button := cfg.sortedSeats()
	id := cfg.ID
	if id == "" {
		id = handid.New()
	}

	names := make([]string, len(seats))
	for i, s := range seats {
		names[i] = s.Name
	}

	h := &handState{
		seats:     seats,
		button:    button,
		bigSeat:   -1,
		betting:   NewBettingRound(seats, cfg.Structure, cfg.Blinds, cfg.Ante),
		pots:      NewPotManager(names, button, o.split),
		ring:      newActingRing(len(seats), button),
		history:   newHandHistory(id, seats, button, cfg, o.clock.Now()),
		deck:      o.deck,
		evaluator: o.evaluator,
		split:     o.split,
		logger:    o.logger.With("hand", id),
	}
	return h, nil
}

func (h *handState) seatIndex(name string) (int, bool) {
	for i, s := range h.seats {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}

// addAction validates, commits and records an action for seat.
func (h *handState) addAction(seat int, proposed Action) (Action, error) {
	proposed.Player = h.seats[seat].Name
	a := h.betting.Validate(proposed)
	if a.Kind == ActionNone {
		return a, fmt.Errorf("%w: %s proposed %s", ErrNoAction, proposed.Player, proposed.Kind)
	}
	if a.Kind != proposed.Kind || (a.Amount != proposed.Amount && proposed.Amount != 0) {
		h.logger.Debug("action corrected",
			"player", a.Player,
			"proposed", proposed.Kind, "proposed_amount", proposed.Amount,
			"action", a.Kind, "amount", a.Amount)
	}

	h.betting.Commit(a)
	h.pots.Apply(seat, a)
	h.history.Pots = h.pots.Pots()
	h.history.Actions[h.history.Street] = append(h.history.Actions[h.history.Street], a)
	h.history.Stacks[seat] -= a.Amount

	switch {
	case a.Kind == Fold:
		h.history.Folded[seat] = true
		h.ring.Remove(seat)
	case a.AllIn:
		h.history.AllIn[seat] = true
		h.ring.Remove(seat)
	}

	h.logger.Debug("action",
		"street", h.history.Street,
		"player", a.Player,
		"action", a.Kind,
		"amount", a.Amount,
		"all_in", a.AllIn,
		"pot", h.pots.Total())
	return a, nil
}

// postFunc posts one forced bet. It returns false to stop posting, which
// the resumer uses when a record runs out.
type postFunc func(seat int, kind ActionKind) (bool, error)

// forcedBets collects antes from every seat starting after the button,
// then the blinds from the next eligible seats. Heads-up, the button posts
// the small blind.
func (h *handState) forcedBets(post postFunc) (bool, error) {
	n := len(h.seats)
	if h.history.Ante > 0 {
		for i := 1; i <= n; i++ {
			seat := (h.button + i) % n
			if ok, err := post(seat, PostAnte); !ok || err != nil {
				return ok, err
			}
		}
	}

	blinds := h.history.Blinds
	if blinds.Big <= 0 || h.ring.Len() == 0 {
		return true, nil
	}

	start := h.button + 1
	if n == 2 && blinds.Small > 0 {
		start = h.button
	}
	seat := h.ring.SeekFrom(start % n)
	if blinds.Small > 0 {
		if ok, err := post(seat, PostSmallBlind); !ok || err != nil {
			return ok, err
		}
		next := h.ring.Next()
		if next < 0 || next == seat {
			return true, nil
		}
		seat = next
	}
	h.bigSeat = seat
	return post(seat, PostBigBlind)
}

// firstToAct positions the ring on the first seat to act this street:
// after the big blind preflop, after the button otherwise.
func (h *handState) firstToAct(street Street) int {
	from := h.button
	if street == Preflop && h.bigSeat >= 0 {
		from = h.bigSeat
	}
	return h.ring.SeekFrom((from + 1) % len(h.seats))
}

// enterStreet deals whatever the street needs and moves the history on.
func (h *handState) enterStreet(street Street) error {
	var err error
	switch street {
	case Preflop:
		var holes []poker.Hand
		holes, err = h.deck.HoleCards(len(h.seats))
		if err == nil {
			copy(h.history.HoleCards, holes)
		}
	case Flop:
		h.history.Flop, err = h.deck.Flop()
	case Turn:
		h.history.Turn, err = h.deck.Turn()
	case River:
		h.history.River, err = h.deck.River()
	}
	if err != nil {
		return fmt.Errorf("deal %s: %w", street, err)
	}
	h.history.Street = street
	h.logger.Debug("street", "street", street, "board", h.history.Board(), "pot", h.pots.Total())
	return nil
}

// legalActions lists the actions open to seat: fold-or-check, call when
// folding is a real option, then the minimum and maximum bet or raise.
func (h *handState) legalActions(seat int) []Action {
	name := h.seats[seat].Name
	br := h.betting

	fold := br.Validate(Action{Player: name, Kind: Fold})
	out := []Action{fold}
	if fold.Kind == Fold {
		out = append(out, br.Validate(Action{Player: name, Kind: Call}))
	}

	minRaise := br.Validate(Action{Player: name, Kind: Raise})
	if !minRaise.Kind.IsAggressive() || minRaise.Amount <= br.Owed(name) {
		return out
	}
	out = append(out, minRaise)
	if !minRaise.AllIn && br.Structure() != FixedLimit {
		maxRaise := br.Validate(Action{Player: name, Kind: Raise, Amount: br.Remaining(name)})
		if maxRaise.Amount > minRaise.Amount {
			out = append(out, maxRaise)
		}
	}
	return out
}

// publicState builds the view handed to the decision source of seat.
func (h *handState) publicState(seat int) PublicState {
	name := h.seats[seat].Name
	br := h.betting
	st := PublicState{
		HandID:              h.history.ID,
		Street:              h.history.Street,
		Structure:           h.history.Structure,
		Blinds:              h.history.Blinds,
		Ante:                h.history.Ante,
		Seat:                seat,
		Player:              name,
		HoleCards:           h.history.HoleCards[seat],
		Board:               h.history.Board(),
		Stack:               h.history.Stacks[seat],
		Committed:           br.Committed(name),
		CommittedThisStreet: br.CommittedThisStreet(name),
		Owed:                br.Owed(name),
		MostCommitted:       br.MostCommitted(),
		MinimumRaise:        br.MinimumRaise(),
		BetLevel:            br.BetLevel(),
		Pot:                 h.pots.Total(),
		Players:             make([]PlayerState, len(h.seats)),
		StreetLog:           slices.Clone(h.history.Actions[h.history.Street]),
		ValidActions:        h.legalActions(seat),
	}
	for i, s := range h.seats {
		st.Players[i] = PlayerState{
			Name:      s.Name,
			Position:  s.Position,
			Stack:     h.history.Stacks[i],
			Committed: br.Committed(s.Name),
			Folded:    h.history.Folded[i],
			AllIn:     h.history.AllIn[i],
		}
	}
	return st
}

// finish runs the showdown, pays every pot and closes the hand.
func (h *handState) finish() error {
	h.history.Street = Showdown
	strengths := make([]uint32, len(h.seats))
	if h.betting.In() > 1 {
		h.history.Showdown = true
		board := h.history.Board()
		for i := range h.seats {
			if !h.history.Folded[i] {
				strengths[i] = h.evaluator.Strength(h.history.HoleCards[i] | board)
			}
		}
		h.history.Strengths = strengths
	}

	h.history.Pots = h.pots.Pots()
	winners := h.pots.Distribute(strengths)
	h.history.Winners = winners

	start, inPlay := 0, h.pots.Total()
	for i, s := range h.history.Seats {
		start += s.Stack
		inPlay += h.history.Stacks[i]
	}
	if inPlay != start {
		return fmt.Errorf("%w: stacks and pots hold %d, hand started with %d", ErrChipConservation, inPlay, start)
	}

	paid := 0
	for _, w := range winners {
		idx, ok := h.seatIndex(w.Player)
		if !ok {
			return fmt.Errorf("winner %q is not seated", w.Player)
		}
		h.history.Stacks[idx] += w.Amount
		paid += w.Amount
		h.logger.Debug("winner", "player", w.Player, "pot", w.Pot, "amount", w.Amount)
	}
	if h.split == SplitOddChipToButton && paid != h.pots.Total() {
		return fmt.Errorf("%w: paid %d from pots of %d", ErrChipConservation, paid, h.pots.Total())
	}

	h.history.Street = Over
	h.logger.Debug("hand complete", "pot", h.pots.Total(), "showdown", h.history.Showdown, "winners", len(winners))
	return nil
}
