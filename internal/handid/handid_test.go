package handid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsValid(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 100 {
		id := New()
		require.Len(t, id, Length)
		require.NoError(t, Validate(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, id := range []uuid.UUID{
		{},
		uuid.Must(uuid.Parse("01890a5d-ac96-774b-bcce-b302099a8057")),
		uuid.Must(uuid.Parse("ffffffff-ffff-ffff-ffff-ffffffffffff")),
	} {
		s := Encode(id)
		require.Len(t, s, Length)
		got, err := Decode(s)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	assert.Equal(t, "00000000000000000000000000", Encode(uuid.UUID{}))
	assert.Equal(t, "7zzzzzzzzzzzzzzzzzzzzzzzzz", Encode(uuid.Must(uuid.Parse("ffffffff-ffff-ffff-ffff-ffffffffffff"))))
}

func TestEncodeSortsByTime(t *testing.T) {
	t.Parallel()

	a := uuid.Must(uuid.Parse("01890a5d-ac96-774b-bcce-b302099a8057"))
	b := uuid.Must(uuid.Parse("01890a5d-ac97-7000-8000-000000000000"))
	assert.Less(t, Encode(a), Encode(b))
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
	}{
		{"short", "0123"},
		{"bad character", "0000000000000000000000000u"},
		{"overflow", "8zzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"version 4", Encode(uuid.Must(uuid.Parse("6ba7b810-9dad-41d1-80b4-00c04fd430c8")))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, Validate(tt.id))
		})
	}
}
