package memdb

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/database"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

func TestStore_UserUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Username: "a", Email: "a@x.io"}))
	assert.True(t, errors.Is(s.CreateUser(ctx, &models.User{Username: "a", Email: "b@x.io"}), database.ErrDuplicateUsername))
	assert.True(t, errors.Is(s.CreateUser(ctx, &models.User{Username: "b", Email: "a@x.io"}), database.ErrDuplicateEmail))

	_, err := s.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestStore_UpsertMonthlyEntryConcurrent(t *testing.T) {
	s := New()
	ctx := context.Background()
	month := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.UpsertMonthlyEntry(ctx, &models.ResilienceTracker{UserID: 1, Month: month, TotalSavings: float64(i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, s.TrackerCount(1))
	entry, err := s.GetMonthlyEntry(ctx, 1, month)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), entry.Month)
}

func TestStore_ReplaceFamilyMembers(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := &models.User{Username: "a", Email: "a@x.io"}
	require.NoError(t, s.CreateUser(ctx, user))

	_, err := s.ReplaceFamilyMembers(ctx, user.ID, []models.FamilyMember{{FullName: "x", IsEarner: true}, {FullName: "y"}})
	require.NoError(t, err)
	_, err = s.ReplaceFamilyMembers(ctx, user.ID, []models.FamilyMember{{FullName: "z"}})
	require.NoError(t, err)

	members, err := s.GetFamilyMembers(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "z", members[0].FullName)

	earners, err := s.GetEarners(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, earners)

	_, err = s.ReplaceFamilyMembers(ctx, 404, nil)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestStore_GetEarners(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := &models.User{Username: "a", Email: "a@x.io"}
	require.NoError(t, s.CreateUser(ctx, user))

	_, err := s.ReplaceFamilyMembers(ctx, user.ID, []models.FamilyMember{
		{FullName: "x", IsEarner: true, MonthlyIncome: 100},
		{FullName: "y"},
		{FullName: "w", IsEarner: true, MonthlyIncome: 50},
	})
	require.NoError(t, err)

	earners, err := s.GetEarners(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, earners, 2)
	assert.Equal(t, "x", earners[0].FullName)
	assert.Equal(t, "w", earners[1].FullName)

	none, err := s.GetEarners(ctx, 404)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStore_HistoryOrdered(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, m := range []time.Month{time.May, time.January, time.March} {
		require.NoError(t, s.UpsertMonthlyEntry(ctx, &models.ResilienceTracker{UserID: 3, Month: time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC)}))
	}

	history, err := s.GetTrackerHistory(ctx, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, time.January, history[0].Month.Month())
	assert.Equal(t, time.May, history[2].Month.Month())
}
