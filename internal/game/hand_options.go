package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/poker"
)

// StrengthEvaluator scores a seven card set. Higher is strictly better and
// equal values tie.
type StrengthEvaluator interface {
	Strength(cards poker.Hand) uint32
}

// Option configures an Engine or Resumer.
type Option func(*handOptions)

type handOptions struct {
	logger    *log.Logger
	clock     quartz.Clock
	rng       *rand.Rand
	deck      deck.Source
	evaluator StrengthEvaluator
	split     SplitRule
}

func defaultOptions(opts []Option) *handOptions {
	o := &handOptions{split: SplitOddChipToButton}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.deck == nil {
		o.deck = deck.NewRandom(o.rng)
	}
	if o.evaluator == nil {
		o.evaluator = evaluator.Default()
	}
	return o
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(o *handOptions) { o.logger = logger }
}

// WithClock sets the clock used to stamp the history.
func WithClock(clock quartz.Clock) Option {
	return func(o *handOptions) { o.clock = clock }
}

// WithRNG sets the random source used by the default deck.
func WithRNG(rng *rand.Rand) Option {
	return func(o *handOptions) { o.rng = rng }
}

// WithDeck sets the card source, overriding the RNG for dealing.
func WithDeck(src deck.Source) Option {
	return func(o *handOptions) { o.deck = src }
}

// WithEvaluator sets the showdown evaluator.
func WithEvaluator(e StrengthEvaluator) Option {
	return func(o *handOptions) { o.evaluator = e }
}

// WithSplitRule sets how split pots with odd chips are paid.
func WithSplitRule(rule SplitRule) Option {
	return func(o *handOptions) { o.split = rule }
}
