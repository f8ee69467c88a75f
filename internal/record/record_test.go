package record

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

const fixedLimitRiver = `
id = "fl-sample"
structure = "fixed-limit"
button = 1
blinds = [5, 10]

[[seats]]
name = "TeeJay5"
position = 1
stack = 526

[[seats]]
name = "TAP_OR_SNAP"
position = 2
stack = 301
hole_cards = "AhKh"

[[seats]]
name = "OsoWhisper"
position = 3
stack = 177

[[seats]]
name = "Sevillano720"
position = 4
stack = 742

[[seats]]
name = "LC1492"
position = 5
stack = 641

[[seats]]
name = "Dodenburg"
position = 6
stack = 458

[[postings]]
player = "TAP_OR_SNAP"
type = "small_blind"
amount = 5

[[postings]]
player = "OsoWhisper"
type = "big_blind"
amount = 10

[[streets]]
name = "preflop"
actions = [
  { player = "Sevillano720", type = "fold" },
  { player = "LC1492", type = "call", amount = 10 },
  { player = "Dodenburg", type = "fold" },
  { player = "TeeJay5", type = "raise", amount = 20 },
  { player = "TAP_OR_SNAP", type = "call", amount = 15 },
  { player = "OsoWhisper", type = "call", amount = 10 },
  { player = "LC1492", type = "call", amount = 10 },
]

[[streets]]
name = "flop"
board = "2c7dJs"
actions = [
  { player = "TAP_OR_SNAP", type = "bet", amount = 10 },
  { player = "OsoWhisper", type = "raise", amount = 20 },
  { player = "LC1492", type = "fold" },
  { player = "TeeJay5", type = "call", amount = 20 },
  { player = "TAP_OR_SNAP", type = "raise", amount = 20 },
  { player = "OsoWhisper", type = "raise", amount = 20 },
  { player = "TeeJay5", type = "fold" },
  { player = "TAP_OR_SNAP", type = "call", amount = 10 },
]

[[streets]]
name = "turn"
board = "9h"
actions = [
  { player = "TAP_OR_SNAP", type = "check" },
  { player = "OsoWhisper", type = "bet", amount = 20 },
  { player = "TAP_OR_SNAP", type = "call", amount = 20 },
]

[[streets]]
name = "river"
actions = [
  { player = "TAP_OR_SNAP", type = "check" },
  { player = "OsoWhisper", type = "bet", amount = 20 },
]
`

func decodeSample(t *testing.T) *Record {
	t.Helper()
	rec, err := Decode(strings.NewReader(fixedLimitRiver))
	require.NoError(t, err)
	return rec
}

func TestDecodeAndResume(t *testing.T) {
	t.Parallel()

	rec := decodeSample(t)
	require.Len(t, rec.Seats, 6)
	require.Len(t, rec.Streets, 4)

	res, err := rec.Resume(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.Equal(t, "TAP_OR_SNAP", res.NextActor)
	require.Len(t, res.ValidActions, 3)
	assert.Equal(t, game.Raise, res.ValidActions[2].Kind)
	assert.Equal(t, 40, res.ValidActions[2].Amount)

	// Recorded cards are dealt as recorded, the rest are filled in and kept.
	hole, err := poker.ParseHand("AhKh")
	require.NoError(t, err)
	assert.Equal(t, hole, res.History.HoleCards[1])
	assert.Equal(t, "2c7dJs", res.History.Flop.String())
	assert.NotEmpty(t, rec.Seats[0].HoleCards)
	assert.NotEmpty(t, rec.Streets[3].Board)

	again, err := rec.Resume(rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	assert.Equal(t, res.History.HoleCards, again.History.HoleCards)
	assert.Equal(t, res.History.River, again.History.River)
}

func TestAppendFinishesHand(t *testing.T) {
	t.Parallel()

	rec := decodeSample(t)
	require.NoError(t, rec.Append(game.River, game.Action{Player: "TAP_OR_SNAP", Kind: game.Call, Amount: 20}))

	res, err := rec.Resume(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.NotEmpty(t, rec.Winners)

	paid := 0
	for _, w := range rec.Winners {
		paid += w.Amount
	}
	// 80 preflop, 100 on the flop and 40 on each later street.
	assert.Equal(t, 260, paid)
}

func TestAppendPostingOnly(t *testing.T) {
	t.Parallel()

	rec := &Record{}
	assert.ErrorIs(t, rec.Append(game.Predeal, game.Action{Player: "a", Kind: game.Call}), ErrInvalid)
	assert.ErrorIs(t, rec.Append(game.Showdown, game.Action{Player: "a", Kind: game.Call}), ErrInvalid)

	require.NoError(t, rec.Append(game.Turn, game.Action{Player: "a", Kind: game.Check}))
	require.Len(t, rec.Streets, 3)
	assert.Equal(t, []string{"preflop", "flop", "turn"}, []string{rec.Streets[0].Name, rec.Streets[1].Name, rec.Streets[2].Name})
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("id = \"x\"\nbuton = 3\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Decode(strings.NewReader("id = [\n"))
	assert.Error(t, err)
}

func TestResumeInputErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(r *Record)
	}{
		{"bad structure", func(r *Record) { r.Structure = "spread-limit" }},
		{"bad action", func(r *Record) { r.Streets[0].Actions[0].Type = "shove" }},
		{"street posting", func(r *Record) { r.Postings[0].Type = "call" }},
		{"showdown street", func(r *Record) { r.Streets[3].Name = "showdown" }},
		{"duplicate street", func(r *Record) { r.Streets[3].Name = "turn" }},
		{"bad board", func(r *Record) { r.Streets[1].Board = "2c2c" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := decodeSample(t)
			tt.modify(rec)
			_, err := rec.Resume(rand.New(rand.NewSource(1)))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(5))
	call := game.DecisionFunc(func(s game.PublicState) game.Decision {
		return game.Decision{Kind: game.Call}
	})
	cfg := game.HandConfig{
		ID:     "round-trip",
		Button: 2,
		Blinds: game.Blinds{Small: 1, Big: 2},
		Ante:   1,
		Seats: []game.Seat{
			{Name: "c", Position: 3, Stack: 40, Brain: call},
			{Name: "a", Position: 1, Stack: 50, Brain: call},
			{Name: "b", Position: 2, Stack: 60, Brain: call},
		},
	}
	e, err := game.NewEngine(cfg, game.WithRNG(rng))
	require.NoError(t, err)
	played, err := e.Play(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FromHistory(played)))

	rec, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Button)
	assert.Equal(t, []int{1, 2}, rec.Blinds)

	res, err := rec.Resume(rand.New(rand.NewSource(123)))
	require.NoError(t, err)
	require.True(t, res.Complete)
	assert.Equal(t, played.Stacks, res.History.Stacks)
	assert.Equal(t, played.Winners, res.History.Winners)
	assert.Equal(t, played.Board(), res.History.Board())
}

func TestClone(t *testing.T) {
	t.Parallel()

	rec := decodeSample(t)
	c := rec.Clone()
	c.Streets[0].Actions[0].Player = "changed"
	c.Seats[0].Stack = 1
	assert.Equal(t, "Sevillano720", rec.Streets[0].Actions[0].Player)
	assert.Equal(t, 526, rec.Seats[0].Stack)
}
