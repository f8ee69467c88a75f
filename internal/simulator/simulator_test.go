package simulator

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/game"
)

func table() game.HandConfig {
	return game.HandConfig{
		Button: 3,
		Blinds: game.Blinds{Small: 1, Big: 2},
		Seats: []game.Seat{
			{Name: "caller", Position: 3, Stack: 200},
			{Name: "folder", Position: 1, Stack: 200},
			{Name: "tag", Position: 2, Stack: 200},
		},
	}
}

func strategies() map[string]string {
	return map[string]string{"caller": "call", "folder": "fold", "tag": "tag"}
}

type countingWriter struct {
	mu  sync.Mutex
	ids map[string]bool
	// most is the largest amount each player put into one hand.
	most map[string]int
}

func newCountingWriter() *countingWriter {
	return &countingWriter{ids: map[string]bool{}, most: map[string]int{}}
}

func (w *countingWriter) WriteHistory(h *game.HandHistory) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ids[h.ID] = true
	put := map[string]int{}
	for _, street := range h.Actions {
		for _, a := range street {
			put[a.Player] += a.Amount
		}
	}
	for name, n := range put {
		w.most[name] = max(w.most[name], n)
	}
	return nil
}

func TestRunConservesChips(t *testing.T) {
	t.Parallel()

	hist := newCountingWriter()
	sum, err := Run(context.Background(), Config{
		Hands:      60,
		Workers:    4,
		Seed:       7,
		Table:      table(),
		Strategies: strategies(),
		History:    hist,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, sum.Hands)
	assert.Len(t, hist.ids, 60)
	assert.Equal(t, []string{"folder", "tag", "caller"},
		[]string{sum.Seats[0].Name, sum.Seats[1].Name, sum.Seats[2].Name})

	total := 0
	for _, s := range sum.Seats {
		total += s.Net
	}
	assert.Zero(t, total)
	// The folder only checks or folds, so it never puts in more than the
	// big blind, and it loses at most that per hand.
	assert.LessOrEqual(t, hist.most["folder"], 2)
	assert.GreaterOrEqual(t, sum.Seats[0].Net, -2*sum.Hands)
	assert.LessOrEqual(t, sum.Seats[0].Showdowns, sum.Hands)
	assert.Positive(t, sum.LargestPot)
	assert.GreaterOrEqual(t, sum.LargestPotHand, 0)
}

func TestRunIsIndependentOfWorkers(t *testing.T) {
	t.Parallel()

	run := func(workers int) *Summary {
		sum, err := Run(context.Background(), Config{
			Hands:      40,
			Workers:    workers,
			Seed:       99,
			Table:      table(),
			Strategies: strategies(),
		})
		require.NoError(t, err)
		return sum
	}
	assert.Equal(t, run(1), run(5))
}

func TestRunProgress(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		last int
	)
	_, err := Run(context.Background(), Config{
		Hands:      10,
		Workers:    2,
		Table:      table(),
		Strategies: strategies(),
		Progress: func(done int) {
			mu.Lock()
			last = max(last, done)
			mu.Unlock()
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, last)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Config{Hands: 0, Table: table(), Strategies: strategies()})
	assert.ErrorIs(t, err, game.ErrInvalidConfig)

	bad := strategies()
	bad["tag"] = "gto"
	_, err = Run(context.Background(), Config{Hands: 1, Table: table(), Strategies: bad})
	assert.ErrorContains(t, err, "unknown strategy")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, Config{Hands: 5, Table: table(), Strategies: strategies()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBigBlindsPer100(t *testing.T) {
	t.Parallel()

	sum := &Summary{Hands: 200, Seats: []SeatResult{{Net: 40}}}
	assert.InDelta(t, 10.0, sum.BigBlindsPer100(0, 2), 1e-9)
	assert.Zero(t, (&Summary{Seats: []SeatResult{{}}}).BigBlindsPer100(0, 2))
}
