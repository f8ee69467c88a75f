package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/poker"
)

func mustHand(t *testing.T, s string) poker.Hand {
	t.Helper()
	h, err := poker.ParseHand(s)
	require.NoError(t, err)
	return h
}

func TestRandomNeverRepeats(t *testing.T) {
	t.Parallel()

	dead, _ := poker.ParseCard("As")
	src := NewRandom(rand.New(rand.NewSource(7)), dead)

	holes, err := src.HoleCards(9)
	require.NoError(t, err)
	var seen poker.Hand
	for _, h := range holes {
		assert.Equal(t, 2, h.CountCards())
		assert.False(t, seen.Overlaps(h))
		seen |= h
	}
	for _, deal := range []func() (poker.Hand, error){src.Flop, src.Turn, src.River} {
		h, err := deal()
		require.NoError(t, err)
		assert.False(t, seen.Overlaps(h))
		seen |= h
	}
	assert.Equal(t, 23, seen.CountCards())
	assert.False(t, seen.HasCard(dead))
}

func TestRandomExhausted(t *testing.T) {
	t.Parallel()

	src := NewRandom(rand.New(rand.NewSource(1)))
	_, err := src.HoleCards(27)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestNewFixedRejectsOverlap(t *testing.T) {
	t.Parallel()

	holes := []poker.Hand{mustHand(t, "AhKh"), mustHand(t, "QsQd")}
	_, err := NewFixed(holes, mustHand(t, "2c3c4c"), mustHand(t, "5c"), mustHand(t, "Ah"))
	assert.Error(t, err)

	_, err = NewFixed(holes, mustHand(t, "2c3c"), mustHand(t, "5c"), mustHand(t, "6c"))
	assert.Error(t, err)

	f, err := NewFixed(holes, mustHand(t, "2c3c4c"), mustHand(t, "5c"), mustHand(t, "6c"))
	require.NoError(t, err)
	got, err := f.HoleCards(2)
	require.NoError(t, err)
	assert.Equal(t, holes, got)
	_, err = f.HoleCards(3)
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestCompleteKeepsKnownCards(t *testing.T) {
	t.Parallel()

	known := mustHand(t, "AhKh")
	flop := mustHand(t, "Td")
	f, err := Complete(rand.New(rand.NewSource(3)), []poker.Hand{known, 0, 0}, flop, 0, 0)
	require.NoError(t, err)

	holes, err := f.HoleCards(3)
	require.NoError(t, err)
	assert.Equal(t, known, holes[0])
	got, _ := f.Flop()
	assert.Equal(t, 3, got.CountCards())
	assert.True(t, got.HasCard(flop.Cards()[0]))
}

func TestPredrawIsReproducible(t *testing.T) {
	t.Parallel()

	a, err := Predraw(rand.New(rand.NewSource(99)), 6)
	require.NoError(t, err)
	b, err := Predraw(rand.New(rand.NewSource(99)), 6)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
