// Package evaluator scores seven card hands for showdown. Two third party
// evaluators are wrapped behind one interface so tables can choose either.
package evaluator

import (
	"fmt"
	"math"

	chehsunliu "github.com/chehsunliu/poker"
	paulhankin "github.com/paulhankin/poker"

	"github.com/lox/holdem-engine/poker"
)

// Evaluator scores a card set. Strength is higher for stronger hands and
// equal for ties; it returns 0 unless given exactly seven cards.
type Evaluator interface {
	Strength(cards poker.Hand) uint32
	Describe(cards poker.Hand) string
}

// Names lists the evaluators New accepts.
var Names = []string{"paulhankin", "chehsunliu"}

// New returns the named evaluator. An empty name selects the default.
func New(name string) (Evaluator, error) {
	switch name {
	case "", "paulhankin":
		return PaulHankin{}, nil
	case "chehsunliu":
		return Chehsunliu{}, nil
	}
	return nil, fmt.Errorf("unknown evaluator %q", name)
}

// Default returns the evaluator used when none is configured.
func Default() Evaluator {
	return PaulHankin{}
}

// PaulHankin wraps github.com/paulhankin/poker, a table driven
// evaluator whose scores grow with hand strength.
type PaulHankin struct{}

func (PaulHankin) Strength(cards poker.Hand) uint32 {
	if cards.CountCards() != 7 {
		return 0
	}
	var seven [7]paulhankin.Card
	for i, c := range cards.Cards() {
		seven[i] = toPaulHankin(c)
	}
	return uint32(int32(paulhankin.Eval7(&seven)) - math.MinInt16)
}

func (PaulHankin) Describe(cards poker.Hand) string {
	list := cards.Cards()
	converted := make([]paulhankin.Card, len(list))
	for i, c := range list {
		converted[i] = toPaulHankin(c)
	}
	desc, err := paulhankin.Describe(converted)
	if err != nil {
		return cards.String()
	}
	return desc
}

func toPaulHankin(c poker.Card) paulhankin.Card {
	suits := [...]paulhankin.Suit{paulhankin.Club, paulhankin.Diamond, paulhankin.Heart, paulhankin.Spade}
	// Ranks run Ace=1, Two=2 ... King=13.
	rank := paulhankin.Rank(c.Rank() + 2)
	if c.Rank() == poker.Ace {
		rank = 1
	}
	card, _ := paulhankin.MakeCard(suits[c.Suit()], rank)
	return card
}

// chehsunliuWorst is one past the weakest rank chehsunliu/poker reports;
// its ranks run from 1 (royal flush) to 7462.
const chehsunliuWorst = 7463

// Chehsunliu wraps github.com/chehsunliu/poker, a Cactus Kev style
// evaluator where lower ranks are stronger.
type Chehsunliu struct{}

func (Chehsunliu) rank(cards poker.Hand) int32 {
	list := cards.Cards()
	converted := make([]chehsunliu.Card, len(list))
	for i, c := range list {
		converted[i] = chehsunliu.NewCard(c.String())
	}
	return chehsunliu.Evaluate(converted)
}

func (e Chehsunliu) Strength(cards poker.Hand) uint32 {
	if cards.CountCards() != 7 {
		return 0
	}
	return uint32(chehsunliuWorst - e.rank(cards))
}

func (e Chehsunliu) Describe(cards poker.Hand) string {
	if n := cards.CountCards(); n < 5 || n > 7 {
		return cards.String()
	}
	return chehsunliu.RankString(e.rank(cards))
}
