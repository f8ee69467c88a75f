package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/record"
	"github.com/lox/holdem-engine/internal/store"
)

func openStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "hands.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func headsUp(id string) *record.Record {
	return &record.Record{
		ID:        id,
		Structure: "no-limit",
		Button:    1,
		Blinds:    []int{1, 2},
		Seats: []record.Seat{
			{Name: "A", Position: 1, Stack: 100},
			{Name: "B", Position: 2, Stack: 100},
		},
		Postings: []record.Action{
			{Player: "B", Type: "small_blind", Amount: 1},
			{Player: "A", Type: "big_blind", Amount: 2},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openStore(t)

	rec := headsUp("hand-1")
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Load(ctx, "hand-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Seats, got.Seats)
	assert.Equal(t, rec.Postings, got.Postings)
	assert.Equal(t, []int{1, 2}, got.Blinds)

	// Saving again replaces the stored record.
	rec.Winners = []record.Winner{{Player: "A", Pot: "Main pot", Amount: 3}}
	require.NoError(t, s.Save(ctx, rec))
	got, err = s.Load(ctx, "hand-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Winners, got.Winners)
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()
	s := openStore(t)

	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), "nope"), store.ErrNotFound)
}

func TestSaveRequiresID(t *testing.T) {
	t.Parallel()
	s := openStore(t)

	err := s.Save(context.Background(), headsUp(""))
	assert.ErrorIs(t, err, record.ErrInvalid)
}

func TestListAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := quartz.NewMock(t)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.Set(start)
	s := openStore(t, store.WithClock(clock))

	require.NoError(t, s.Save(ctx, headsUp("first")))
	clock.Set(start.Add(time.Minute))
	done := headsUp("second")
	done.Winners = []record.Winner{{Player: "B", Pot: "Main pot", Amount: 3}}
	require.NoError(t, s.Save(ctx, done))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []store.Summary{
		{ID: "second", Structure: "no-limit", Complete: true, UpdatedAt: start.Add(time.Minute)},
		{ID: "first", Structure: "no-limit", Complete: false, UpdatedAt: start},
	}, list)

	require.NoError(t, s.Delete(ctx, "first"))
	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].ID)
}

func TestPersistsAcrossOpen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hands.db")

	s, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), headsUp("kept")))
	require.NoError(t, s.Close())

	s, err = store.Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(context.Background(), "kept")
	require.NoError(t, err)
	assert.Equal(t, "kept", got.ID)
}
