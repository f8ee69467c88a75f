package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single playing card encoded as one bit of a uint64.
// Bit index is suit*13 + rank.
type Card uint64

// Ranks, lowest first.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suits.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard builds a card from a rank (Two..Ace) and a suit (Clubs..Spades).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

func (c Card) index() int {
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the card rank, Two=0 through Ace=12.
func (c Card) Rank() uint8 {
	return uint8(c.index() % 13)
}

// Suit returns the card suit, Clubs=0 through Spades=3.
func (c Card) Suit() uint8 {
	return uint8(c.index() / 13)
}

// Valid reports whether c holds exactly one of the 52 card bits.
func (c Card) Valid() bool {
	return c != 0 && bits.OnesCount64(uint64(c)) == 1 && c.index() < 52
}

func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// ParseCard parses a two character card such as "As" or "Td".
// "10" is accepted as an alias for "T".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	rank := strings.IndexByte(rankChars, strings.ToUpper(s[:1])[0])
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank in card %q", s)
	}
	suit := strings.IndexByte(suitChars, strings.ToLower(s[1:])[0])
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit in card %q", s)
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a card list. Cards may be separated by spaces or
// commas, or run together ("AhKh").
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(",", " ", "10", "T").Replace(s)
	var cards []Card
	for _, field := range strings.Fields(s) {
		if len(field)%2 != 0 {
			return nil, fmt.Errorf("invalid card list %q", field)
		}
		for i := 0; i < len(field); i += 2 {
			c, err := ParseCard(field[i : i+2])
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// Hand is an unordered set of cards.
type Hand uint64

// NewHand creates a card set from the given cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// ParseHand parses a card list into a card set, rejecting duplicates.
func ParseHand(s string) (Hand, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return 0, err
	}
	h := NewHand(cards...)
	if h.CountCards() != len(cards) {
		return 0, fmt.Errorf("duplicate card in %q", s)
	}
	return h, nil
}

func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Overlaps reports whether the two sets share any card.
func (h Hand) Overlaps(o Hand) bool {
	return h&o != 0
}

// Cards returns the cards of the set ordered by bit index.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// GetSuitMask returns a 13 bit rank mask of the cards held in one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16((uint64(h) >> (uint(suit) * 13)) & 0x1fff)
}

func (h Hand) String() string {
	cards := h.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, "")
}
