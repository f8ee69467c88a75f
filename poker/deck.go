package poker

import (
	"errors"
	"math/rand"
)

// ErrDeckExhausted is returned when more cards are requested than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is a shuffled set of cards dealt from the top.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck returns a shuffled 52 card deck.
func NewDeck(rng *rand.Rand) *Deck {
	return NewDeckWithout(rng, 0)
}

// NewDeckWithout returns a shuffled deck missing every card in dead.
func NewDeckWithout(rng *rand.Rand, dead Hand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52), rng: rng}
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			c := NewCard(rank, suit)
			if !dead.HasCard(c) {
				d.cards = append(d.cards, c)
			}
		}
	}
	d.Shuffle()
	return d
}

// Shuffle reorders every card (dealt or not) with Fisher-Yates and
// restarts dealing from the top.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes n cards from the top of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne deals a single card, returning 0 when the deck is empty.
func (d *Deck) DealOne() Card {
	if d.next >= len(d.cards) {
		return 0
	}
	c := d.cards[d.next]
	d.next++
	return c
}

func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
