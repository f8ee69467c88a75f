// Package deck supplies the cards for a hand, either drawn live or fixed
// in advance.
package deck

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lox/holdem-engine/poker"
)

// MaxSeats is the largest table a single deck can deal to.
const MaxSeats = 23

// ErrExhausted is returned when a source cannot provide the cards asked for.
var ErrExhausted = errors.New("deck: not enough cards")

// Source deals the cards of one hand. Each method is called at most once
// per hand, in order.
type Source interface {
	HoleCards(seats int) ([]poker.Hand, error)
	Flop() (poker.Hand, error)
	Turn() (poker.Hand, error)
	River() (poker.Hand, error)
}

// Random deals from a freshly shuffled deck, never repeating a card
// already dealt or marked dead.
type Random struct {
	deck *poker.Deck
}

// NewRandom returns a live source. Dead cards are never dealt.
func NewRandom(rng *rand.Rand, dead ...poker.Card) *Random {
	return &Random{deck: poker.NewDeckWithout(rng, poker.NewHand(dead...))}
}

func (r *Random) draw(n int) (poker.Hand, error) {
	cards, err := r.deck.Deal(n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExhausted, err)
	}
	return poker.NewHand(cards...), nil
}

func (r *Random) HoleCards(seats int) ([]poker.Hand, error) {
	holes := make([]poker.Hand, seats)
	for i := range holes {
		h, err := r.draw(2)
		if err != nil {
			return nil, err
		}
		holes[i] = h
	}
	return holes, nil
}

func (r *Random) Flop() (poker.Hand, error)  { return r.draw(3) }
func (r *Random) Turn() (poker.Hand, error)  { return r.draw(1) }
func (r *Random) River() (poker.Hand, error) { return r.draw(1) }

// Fixed deals cards chosen before the hand started.
type Fixed struct {
	holes []poker.Hand
	flop  poker.Hand
	turn  poker.Hand
	river poker.Hand
}

// NewFixed validates that the cards are disjoint and correctly sized.
func NewFixed(holes []poker.Hand, flop, turn, river poker.Hand) (*Fixed, error) {
	var seen poker.Hand
	check := func(what string, h poker.Hand, want int) error {
		if h.CountCards() != want {
			return fmt.Errorf("deck: %s has %d cards, want %d", what, h.CountCards(), want)
		}
		if seen.Overlaps(h) {
			return fmt.Errorf("deck: %s repeats a card already dealt", what)
		}
		seen |= h
		return nil
	}
	for i, h := range holes {
		if err := check(fmt.Sprintf("hole cards %d", i), h, 2); err != nil {
			return nil, err
		}
	}
	if err := check("flop", flop, 3); err != nil {
		return nil, err
	}
	if err := check("turn", turn, 1); err != nil {
		return nil, err
	}
	if err := check("river", river, 1); err != nil {
		return nil, err
	}
	return &Fixed{holes: holes, flop: flop, turn: turn, river: river}, nil
}

// Predraw deals a complete hand for the given number of seats up front.
func Predraw(rng *rand.Rand, seats int) (*Fixed, error) {
	return Complete(rng, make([]poker.Hand, seats), 0, 0, 0)
}

// Complete fills every unknown (zero) entry with random cards that do not
// collide with the known ones. A partially known board keeps its cards and
// is topped up.
func Complete(rng *rand.Rand, holes []poker.Hand, flop, turn, river poker.Hand) (*Fixed, error) {
	var known poker.Hand
	for _, h := range holes {
		known |= h
	}
	known |= flop | turn | river
	src := NewRandom(rng, known.Cards()...)

	fill := func(h poker.Hand, want int) (poker.Hand, error) {
		if missing := want - h.CountCards(); missing > 0 {
			extra, err := src.draw(missing)
			if err != nil {
				return 0, err
			}
			h |= extra
		}
		return h, nil
	}

	out := make([]poker.Hand, len(holes))
	var err error
	for i, h := range holes {
		if out[i], err = fill(h, 2); err != nil {
			return nil, err
		}
	}
	if flop, err = fill(flop, 3); err != nil {
		return nil, err
	}
	if turn, err = fill(turn, 1); err != nil {
		return nil, err
	}
	if river, err = fill(river, 1); err != nil {
		return nil, err
	}
	return NewFixed(out, flop, turn, river)
}

func (f *Fixed) HoleCards(seats int) ([]poker.Hand, error) {
	if seats > len(f.holes) {
		return nil, fmt.Errorf("%w: %d seats, %d hands drawn", ErrExhausted, seats, len(f.holes))
	}
	out := make([]poker.Hand, seats)
	copy(out, f.holes)
	return out, nil
}

func (f *Fixed) Flop() (poker.Hand, error)  { return f.flop, nil }
func (f *Fixed) Turn() (poker.Hand, error)  { return f.turn, nil }
func (f *Fixed) River() (poker.Hand, error) { return f.river, nil }
