package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHistoryWriter(t *testing.T) {
	t.Parallel()

	cfg := HandConfig{
		ID: "written",
		Seats: []Seat{
			{Name: "A", Position: 1, Stack: 50, Brain: NewScripted(Decision{Kind: Raise, Amount: 10})},
			{Name: "B", Position: 2, Stack: 50, Brain: NewScripted()},
			{Name: "C", Position: 3, Stack: 50, Brain: NewScripted()},
		},
		Button: 3,
		Blinds: Blinds{Small: 1, Big: 2},
		Rake:   1,
	}
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	h, err := e.Play(context.Background())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "hands")
	require.NoError(t, NewFileHistoryWriter(dir).WriteHistory(h))

	data, err := os.ReadFile(filepath.Join(dir, "hand_written.txt"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Seat #3 is the button")
	assert.Contains(t, text, "A: posts small blind 1")
	assert.Contains(t, text, "A: raises 10")
	assert.Contains(t, text, "*** HOLE CARDS ***")
	assert.NotContains(t, text, "*** FLOP ***")
	assert.Contains(t, text, "Rake: 1")
}

func TestHandHistoryLookups(t *testing.T) {
	t.Parallel()

	h := newHandHistory("x", testSeats(3, 10), 1, HandConfig{}, time.Time{})
	i, ok := h.SeatIndex("Player2")
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = h.SeatIndex("nobody")
	assert.False(t, ok)
	assert.False(t, h.Complete())

	h.Stacks[0] = 4
	assert.Equal(t, []int{-6, 0, 0}, h.Net())
}
