package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionKind(t *testing.T) {
	t.Parallel()

	for k := ActionNone; k <= Raise; k++ {
		got, err := ParseActionKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	aliases := map[string]ActionKind{"SB": PostSmallBlind, "bb": PostBigBlind, "x": Check, " R ": Raise}
	for s, want := range aliases {
		got, err := ParseActionKind(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := ParseActionKind("shove")
	assert.Error(t, err)
}

func TestActionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action Action
		want   string
	}{
		{Action{Player: "Ann", Kind: PostBigBlind, Amount: 2}, "Ann: posts big blind 2"},
		{Action{Player: "Ann", Kind: Fold}, "Ann: folds"},
		{Action{Player: "Ann", Kind: Raise, Amount: 40, AllIn: true}, "Ann: raises 40 and is all-in"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.action.String())
	}
}

func TestActionSame(t *testing.T) {
	t.Parallel()

	a := Action{Player: "Ann", Kind: Call, Amount: 10}
	assert.True(t, a.Same(Action{Player: "Ann", Kind: Call, Amount: 99, AllIn: true}))
	assert.False(t, a.Same(Action{Player: "Bob", Kind: Call, Amount: 10}))
}

func TestStreetAndStructure(t *testing.T) {
	t.Parallel()

	for st := Predeal; st <= Over; st++ {
		got, err := ParseStreet(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	for _, s := range []Structure{NoLimit, PotLimit, FixedLimit} {
		got, err := ParseStructure(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := ParseStructure("FL")
	require.NoError(t, err)
	assert.Equal(t, FixedLimit, got)
}

func TestBlindsFromSlice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      []int
		want    Blinds
		wantErr bool
	}{
		{in: nil, want: Blinds{}},
		{in: []int{2}, want: Blinds{Big: 2}},
		{in: []int{1, 2}, want: Blinds{Small: 1, Big: 2}},
		{in: []int{1, 2, 4}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := BlindsFromSlice(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidConfig)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, len(tt.in), len(got.Slice()))
	}
}
