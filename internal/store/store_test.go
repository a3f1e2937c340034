package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListResults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := Result{
		GameID:     uuid.New(),
		Seed:       42,
		Rounds:     7,
		WinnerSeat: 2,
		Scores:     [3]int{70, 55, 105},
		FinishedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	newer := Result{
		GameID:     uuid.New(),
		Seed:       99,
		Rounds:     12,
		WinnerSeat: 0,
		Scores:     [3]int{110, -20, 45},
		FinishedAt: time.Date(2026, 2, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, s.SaveResult(ctx, older))
	require.NoError(t, s.SaveResult(ctx, newer))

	results, err := s.ListResults(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Most recent first.
	assert.Equal(t, newer.GameID, results[0].GameID)
	assert.Equal(t, newer.Scores, results[0].Scores)
	assert.Equal(t, uint64(99), results[0].Seed)
	assert.Equal(t, older.GameID, results[1].GameID)
	assert.Equal(t, 2, results[1].WinnerSeat)
}

func TestListResultsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveResult(ctx, Result{
			GameID:     uuid.New(),
			FinishedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}

	results, err := s.ListResults(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSaveResultDuplicateGameID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := Result{GameID: uuid.New(), FinishedAt: time.Now()}
	require.NoError(t, s.SaveResult(ctx, r))
	assert.Error(t, s.SaveResult(ctx, r))
}
