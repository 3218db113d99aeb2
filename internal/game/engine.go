// Package game implements the rules engine: XP and coin accounting, day
// sessions, mission slots, the reward store, loot boxes, and the activity
// log. All state lives behind a storage.Provider; the engine keeps no cache
// and re-reads on every operation.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/storage"
)

// Business rejections. These are expected outcomes rather than faults;
// callers match with errors.Is and translate to user-facing messages.
var (
	ErrNoUser                 = errors.New("no character exists")
	ErrUserExists             = errors.New("character already exists")
	ErrNoOpenDay              = errors.New("no day started for this date")
	ErrDayClosed              = errors.New("day is closed")
	ErrSlotCapReached         = errors.New("mission slot capacity reached")
	ErrMissionNotFound        = errors.New("mission not found")
	ErrMissionSettled         = errors.New("mission already settled")
	ErrInsufficientCoins      = errors.New("not enough coins")
	ErrForgivenessUnavailable = errors.New("no forgiveness token available")
	ErrNoUnlockAvailable      = errors.New("no slot unlock earned yet")
	ErrRewardUnavailable      = errors.New("reward is not available")
	ErrLootBoxNotFound        = errors.New("loot box not found")
	ErrLootBoxOpened          = errors.New("loot box already opened")
)

type Engine struct {
	store storage.Provider

	mu   sync.Mutex
	now  func() time.Time
	roll func() float64
}

func NewEngine(store storage.Provider) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
		roll:  rand.Float64,
	}
}

// CreateUser creates the character and seeds the reward store catalog.
// A store holds at most one character.
func (e *Engine) CreateUser(name string) (models.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.GetUser(); err == nil {
		return models.User{}, ErrUserExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, err
	}

	user := models.User{
		ID:          uuid.New().String(),
		Name:        name,
		SlotUnlocks: []models.SlotUnlockChoice{},
		LootBoxes:   []models.LootBox{},
		CreatedAt:   e.now(),
	}
	if err := e.store.SaveUser(user); err != nil {
		return models.User{}, fmt.Errorf("failed to save character: %w", err)
	}

	for _, r := range defaultRewards(e.now()) {
		if err := e.store.SaveReward(r); err != nil {
			return models.User{}, fmt.Errorf("failed to seed reward catalog: %w", err)
		}
	}

	return user, nil
}

// User returns the character, or ErrNoUser when none has been created.
func (e *Engine) User() (models.User, error) {
	return e.getUser()
}

// ResetUser deletes the character and everything owned by it.
func (e *Engine) ResetUser() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.DeleteUser()
}

func (e *Engine) getUser() (models.User, error) {
	user, err := e.store.GetUser()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrNoUser
		}
		return models.User{}, err
	}
	return user, nil
}

func (e *Engine) logEvent(t models.EventType, details string, xpChange, coinChange int) error {
	return e.store.AppendEvent(models.Event{
		ID:         uuid.New().String(),
		Timestamp:  e.now(),
		Type:       t,
		Details:    details,
		XPChange:   xpChange,
		CoinChange: coinChange,
	})
}

// defaultRewards is the starter catalog every new character gets. The
// entries are plain catalog rows; the player edits or deletes them freely.
func defaultRewards(now time.Time) []models.StoreReward {
	return []models.StoreReward{
		{ID: uuid.New().String(), Name: "Rest day", Description: "A day with no obligations", Cost: 50, Available: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Special meal", Description: "Eat something you love", Cost: 30, Available: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Entertainment", Description: "Two hours of free leisure", Cost: 40, Available: true, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Small purchase", Description: "Treat yourself to something small", Cost: 100, Available: true, CreatedAt: now},
	}
}
