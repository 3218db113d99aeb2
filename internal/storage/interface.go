package storage

import (
	"errors"

	"github.com/julianstephens/dayquest/internal/models"
)

// ErrNotFound is wrapped by adapters when a lookup misses. Callers use
// errors.Is to tell "absent" apart from a real storage failure.
var ErrNotFound = errors.New("not found")

// Settings are per-store preferences, not game rules.
type Settings struct {
	LootBoxes bool `json:"loot_boxes"` // grant loot boxes on level-up
	ChartDays int  `json:"chart_days"` // how many days the chart shows
}

func DefaultSettings() Settings {
	return Settings{
		LootBoxes: true,
		ChartDays: 14,
	}
}

// Provider is the persistence contract the game engine runs against. One
// store holds exactly one character and everything owned by it. Every write
// must be visible to the next read within the same process; no stronger
// consistency is assumed.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Character
	GetUser() (models.User, error)
	SaveUser(models.User) error
	DeleteUser() error // full reset: cascades days, habits, rewards, events

	// Days (keyed by YYYY-MM-DD date, unique per date)
	GetDay(date string) (models.Day, error)
	GetAllDays() ([]models.Day, error)
	SaveDay(models.Day) error

	// Habit definitions
	GetHabits() ([]models.Habit, error)
	GetHabit(id string) (models.Habit, error)
	SaveHabit(models.Habit) error
	DeleteHabit(id string) error

	// Habit trigger logs (append-only)
	GetHabitLogs(date string) ([]models.HabitLog, error)
	AppendHabitLog(models.HabitLog) error

	// Store catalog
	GetRewards() ([]models.StoreReward, error)
	GetReward(id string) (models.StoreReward, error)
	SaveReward(models.StoreReward) error
	DeleteReward(id string) error

	// Redemption history (append-only)
	GetRedemptions() ([]models.RedeemedReward, error)
	AppendRedemption(models.RedeemedReward) error

	// Event log (append-only)
	GetEvents() ([]models.Event, error)
	AppendEvent(models.Event) error

	// Utils
	GetConfigPath() string
}
