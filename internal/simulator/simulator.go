// Package simulator plays many independent hands between bots in
// parallel and totals the results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

// Config describes a simulation. Every hand starts from the stacks in
// Table; the button moves one seat per hand.
type Config struct {
	Hands      int
	Workers    int // defaults to GOMAXPROCS
	Seed       int64
	Table      game.HandConfig
	Strategies map[string]string // seat name to bot strategy
	Options    []game.Option
	History    game.HistoryWriter // optional, receives every hand
	Logger     *log.Logger
	Progress   func(done int) // optional, called after each hand
}

// SeatResult totals one seat over the simulation.
type SeatResult struct {
	Name      string
	Strategy  string
	Net       int
	Won       int // hands where the seat received chips
	Showdowns int
}

// Summary is the outcome of a simulation.
type Summary struct {
	Hands      int
	Showdowns  int
	LargestPot int
	// LargestPotHand is the index of the first hand with LargestPot.
	LargestPotHand int
	Seats          []SeatResult // in table position order
}

// BigBlindsPer100 returns the seat's win rate in big blinds per hundred
// hands.
func (s *Summary) BigBlindsPer100(seat int, bigBlind int) float64 {
	if s.Hands == 0 || bigBlind <= 0 {
		return 0
	}
	return float64(s.Seats[seat].Net) / float64(bigBlind) / float64(s.Hands) * 100
}

// Run plays cfg.Hands hands. Hand i uses the seed cfg.Seed+i, so the
// summary does not depend on the number of workers.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	if cfg.Hands <= 0 {
		return nil, fmt.Errorf("%w: hands must be positive", game.ErrInvalidConfig)
	}
	if err := cfg.Table.Validate(); err != nil {
		return nil, err
	}
	for _, s := range cfg.Table.Seats {
		if !slices.Contains(bot.Strategies, cfg.Strategies[s.Name]) {
			return nil, fmt.Errorf("%w: seat %s: unknown strategy %q", game.ErrInvalidConfig, s.Name, cfg.Strategies[s.Name])
		}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, cfg.Hands)
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seats := slices.Clone(cfg.Table.Seats)
	slices.SortFunc(seats, func(a, b game.Seat) int { return a.Position - b.Position })
	buttonIdx := slices.IndexFunc(seats, func(s game.Seat) bool { return s.Position == cfg.Table.Button })

	sum := &Summary{LargestPotHand: -1, Seats: make([]SeatResult, len(seats))}
	for i, s := range seats {
		sum.Seats[i] = SeatResult{Name: s.Name, Strategy: cfg.Strategies[s.Name]}
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	hands := make(chan int)
	g.Go(func() error {
		defer close(hands)
		for i := range cfg.Hands {
			select {
			case hands <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			for i := range hands {
				h, err := playHand(ctx, cfg, seats, seats[(buttonIdx+i)%len(seats)].Position, i, logger)
				if err != nil {
					return fmt.Errorf("hand %d: %w", i, err)
				}
				if cfg.History != nil {
					if err := cfg.History.WriteHistory(h); err != nil {
						return err
					}
				}

				mu.Lock()
				sum.add(i, h)
				done := sum.Hands
				mu.Unlock()
				if cfg.Progress != nil {
					cfg.Progress(done)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("simulation finished", "hands", sum.Hands, "showdowns", sum.Showdowns)
	return sum, nil
}

// playHand deals hand i. Seats must be in position order, matching the
// engine's seat order.
func playHand(ctx context.Context, cfg Config, seats []game.Seat, button, i int, logger *log.Logger) (*game.HandHistory, error) {
	rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))

	hand := cfg.Table
	hand.ID = ""
	hand.Button = button
	hand.Seats = make([]game.Seat, len(seats))
	for j, s := range seats {
		brain, err := bot.New(cfg.Strategies[s.Name], rand.New(rand.NewSource(rng.Int63())), logger)
		if err != nil {
			return nil, err
		}
		s.Brain = brain
		hand.Seats[j] = s
	}

	opts := append(slices.Clone(cfg.Options), game.WithRNG(rng), game.WithLogger(logger))
	engine, err := game.NewEngine(hand, opts...)
	if err != nil {
		return nil, err
	}
	return engine.Play(ctx)
}

func (s *Summary) add(i int, h *game.HandHistory) {
	s.Hands++
	if h.Showdown {
		s.Showdowns++
	}

	pot := 0
	for _, p := range h.Pots {
		pot += p.Size
	}
	if pot > s.LargestPot || (pot == s.LargestPot && i < s.LargestPotHand) {
		s.LargestPot = pot
		s.LargestPotHand = i
	}

	won := make(map[string]bool)
	for _, w := range h.Winners {
		won[w.Player] = true
	}
	for j, net := range h.Net() {
		r := &s.Seats[j]
		r.Net += net
		if won[r.Name] {
			r.Won++
		}
		if h.Showdown && !h.Folded[j] {
			r.Showdowns++
		}
	}
}
