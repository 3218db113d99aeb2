package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// providerFixtures builds one ready-to-use store per adapter so the same
// contract assertions run against all of them.
func providerFixtures(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()

	jsonStore := NewJSONStore(filepath.Join(dir, "dayquest.json"))
	require.NoError(t, jsonStore.Init())

	sqliteStore := NewSQLiteStore(filepath.Join(dir, "dayquest.db"))
	require.NoError(t, sqliteStore.Init())
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Provider{
		"memory": NewMemoryStore(),
		"json":   jsonStore,
		"sqlite": sqliteStore,
	}
}

func TestProvider_Settings(t *testing.T) {
	for name, store := range providerFixtures(t) {
		t.Run(name, func(t *testing.T) {
			settings, err := store.GetSettings()
			require.NoError(t, err)
			assert.Equal(t, DefaultSettings(), settings)

			settings.LootBoxes = false
			settings.ChartDays = 30
			require.NoError(t, store.SaveSettings(settings))

			got, err := store.GetSettings()
			require.NoError(t, err)
			assert.Equal(t, settings, got)
		})
	}
}

func TestProvider_UserRoundTrip(t *testing.T) {
	for name, store := range providerFixtures(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.GetUser()
			assert.ErrorIs(t, err, ErrNotFound)

			now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
			user := models.User{
				ID:                   uuid.New().String(),
				Name:                 "Ada",
				TotalXP:              150,
				Coins:                40,
				ForgivenessAvailable: true,
				SlotUnlocks: []models.SlotUnlockChoice{
					{Level: 10, Choice: models.SlotChoiceBonus, Timestamp: now},
				},
				LootBoxes: []models.LootBox{
					{ID: uuid.New().String(), Type: models.LootBoxNormal, EarnedAtLevel: 2},
				},
				CreatedAt: now,
			}
			require.NoError(t, store.SaveUser(user))

			got, err := store.GetUser()
			require.NoError(t, err)
			assert.Equal(t, user.Name, got.Name)
			assert.Equal(t, user.TotalXP, got.TotalXP)
			assert.Equal(t, user.Coins, got.Coins)
			assert.True(t, got.ForgivenessAvailable)
			require.Len(t, got.SlotUnlocks, 1)
			assert.Equal(t, models.SlotChoiceBonus, got.SlotUnlocks[0].Choice)
			require.Len(t, got.LootBoxes, 1)
			assert.Equal(t, models.LootBoxNormal, got.LootBoxes[0].Type)
		})
	}
}

func TestProvider_DeleteUserCascades(t *testing.T) {
	for name, store := range providerFixtures(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Now()
			require.NoError(t, store.SaveUser(models.User{ID: "u1", Name: "Ada", CreatedAt: now}))
			require.NoError(t, store.SaveDay(models.Day{ID: "d1", Date: "2026-03-01", Status: models.DayStatusOpen, CreatedAt: now}))
			require.NoError(t, store.SaveHabit(models.Habit{ID: "h1", Name: "Run", Type: models.HabitPositive, XPValue: 10, CreatedAt: now}))
			require.NoError(t, store.SaveReward(models.StoreReward{ID: "r1", Name: "Movie", Cost: 50, Available: true, CreatedAt: now}))
			require.NoError(t, store.AppendEvent(models.Event{ID: "e1", Timestamp: now, Type: models.EventDayStarted, Details: "day started"}))

			require.NoError(t, store.DeleteUser())

			_, err := store.GetUser()
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = store.GetDay("2026-03-01")
			assert.ErrorIs(t, err, ErrNotFound)

			habits, err := store.GetHabits()
			require.NoError(t, err)
			assert.Empty(t, habits)

			rewards, err := store.GetRewards()
			require.NoError(t, err)
			assert.Empty(t, rewards)

			events, err := store.GetEvents()
			require.NoError(t, err)
			assert.Empty(t, events)
		})
	}
}

func TestProvider_DayWithMissions(t *testing.T) {
	for name, store := range providerFixtures(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
			day := models.Day{
				ID:     uuid.New().String(),
				Date:   "2026-03-01",
				Status: models.DayStatusOpen,
				Missions: []models.Mission{
					{
						ID:         uuid.New().String(),
						Type:       models.MissionMain,
						Title:      "Write report",
						Status:     models.MissionStatusPending,
						XPReward:   30,
						CoinReward: 15,
						CreatedAt:  now,
					},
				},
				CreatedAt: now,
			}
			require.NoError(t, store.SaveDay(day))

			got, err := store.GetDay("2026-03-01")
			require.NoError(t, err)
			assert.Equal(t, models.DayStatusOpen, got.Status)
			require.Len(t, got.Missions, 1)
			assert.Equal(t, "Write report", got.Missions[0].Title)
			assert.Nil(t, got.ClosedAt)

			// Re-save with a settled mission and a closed status.
			closed := now.Add(14 * time.Hour)
			day.Missions[0].Status = models.MissionStatusCompleted
			day.Status = models.DayStatusClosed
			day.ClosedAt = &closed
			day.XPGained = 30
			day.CoinsEarned = 15
			require.NoError(t, store.SaveDay(day))

			got, err = store.GetDay("2026-03-01")
			require.NoError(t, err)
			assert.Equal(t, models.DayStatusClosed, got.Status)
			assert.Equal(t, models.MissionStatusCompleted, got.Missions[0].Status)
			require.NotNil(t, got.ClosedAt)
			assert.Equal(t, 30, got.XPGained)

			days, err := store.GetAllDays()
			require.NoError(t, err)
			assert.Len(t, days, 1)
		})
	}
}

func TestProvider_HabitsAndLogs(t *testing.T) {
	for name, store := range providerFixtures(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Now().UTC().Truncate(time.Second)
			habit := models.Habit{ID: "h1", Name: "Meditate", Type: models.HabitPositive, XPValue: 15, CreatedAt: now}
			require.NoError(t, store.SaveHabit(habit))

			got, err := store.GetHabit("h1")
			require.NoError(t, err)
			assert.Equal(t, "Meditate", got.Name)

			require.NoError(t, store.AppendHabitLog(models.HabitLog{
				ID: "l1", DayDate: "2026-03-01", HabitID: "h1",
				HabitName: "Meditate", HabitType: models.HabitPositive, XPValue: 15, CreatedAt: now,
			}))
			require.NoError(t, store.AppendHabitLog(models.HabitLog{
				ID: "l2", DayDate: "2026-03-02", HabitID: "h1",
				HabitName: "Meditate", HabitType: models.HabitPositive, XPValue: 15, CreatedAt: now,
			}))

			logs, err := store.GetHabitLogs("2026-03-01")
			require.NoError(t, err)
			require.Len(t, logs, 1)
			assert.Equal(t, "l1", logs[0].ID)

			require.NoError(t, store.DeleteHabit("h1"))
			_, err = store.GetHabit("h1")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, store.DeleteHabit("h1"), ErrNotFound)

			// Logs survive the definition; they are history, not references.
			logs, err = store.GetHabitLogs("2026-03-01")
			require.NoError(t, err)
			assert.Len(t, logs, 1)
		})
	}
}

func TestProvider_RewardsAndRedemptions(t *testing.T) {
	for name, store := range providerFixtures(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Now().UTC().Truncate(time.Second)
			require.NoError(t, store.SaveReward(models.StoreReward{
				ID: "r1", Name: "Movie night", Cost: 50, Available: true, CreatedAt: now,
			}))

			r, err := store.GetReward("r1")
			require.NoError(t, err)
			assert.Equal(t, 50, r.Cost)

			require.NoError(t, store.AppendRedemption(models.RedeemedReward{
				ID: "x1", RewardID: "r1", RewardName: "Movie night", RewardCost: 50, RedeemedAt: now,
			}))

			require.NoError(t, store.DeleteReward("r1"))
			_, err = store.GetReward("r1")
			assert.ErrorIs(t, err, ErrNotFound)

			// Redemption history keeps the snapshot after the catalog entry is gone.
			redemptions, err := store.GetRedemptions()
			require.NoError(t, err)
			require.Len(t, redemptions, 1)
			assert.Equal(t, "Movie night", redemptions[0].RewardName)
			assert.Equal(t, 50, redemptions[0].RewardCost)
		})
	}
}

func TestProvider_EventsAppendOnly(t *testing.T) {
	for name, store := range providerFixtures(t) {
		t.Run(name, func(t *testing.T) {
			base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
			for i := 0; i < 3; i++ {
				require.NoError(t, store.AppendEvent(models.Event{
					ID:        uuid.New().String(),
					Timestamp: base.Add(time.Duration(i) * time.Minute),
					Type:      models.EventMissionCompleted,
					Details:   "mission completed",
					XPChange:  30,
				}))
			}

			events, err := store.GetEvents()
			require.NoError(t, err)
			require.Len(t, events, 3)
			for i := 1; i < len(events); i++ {
				assert.False(t, events[i].Timestamp.Before(events[i-1].Timestamp), "events out of order")
			}
		})
	}
}

func TestJSONStore_PersistsAcrossLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dayquest.json")

	store := NewJSONStore(path)
	require.NoError(t, store.Init())
	require.NoError(t, store.SaveUser(models.User{ID: "u1", Name: "Ada", TotalXP: 250, CreatedAt: time.Now()}))

	reopened := NewJSONStore(path)
	require.NoError(t, reopened.Load())

	user, err := reopened.GetUser()
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, 250, user.TotalXP)
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dayquest.json")

	store := NewJSONStore(path)
	require.NoError(t, store.Init())
	assert.Error(t, NewJSONStore(path).Init())
}

func TestSQLiteStore_PersistsAcrossLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dayquest.db")

	store := NewSQLiteStore(path)
	require.NoError(t, store.Init())
	require.NoError(t, store.SaveUser(models.User{ID: "u1", Name: "Ada", TotalXP: 250, CreatedAt: time.Now()}))
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(path)
	require.NoError(t, reopened.Load())
	defer reopened.Close()

	user, err := reopened.GetUser()
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, 250, user.TotalXP)

	current, supported, err := reopened.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, supported, current)
}

func TestSQLiteStore_LoadWithoutInitFails(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
