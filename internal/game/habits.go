package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/julianstephens/dayquest/internal/models"
)

// AddHabit creates a reusable habit definition. XPValue is the per-trigger
// gain for positive habits or loss for negative ones, before daily caps.
func (e *Engine) AddHabit(name string, hType models.HabitType, xpValue int) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if hType != models.HabitPositive && hType != models.HabitNegative {
		return models.Habit{}, fmt.Errorf("unknown habit type %q", hType)
	}
	if xpValue <= 0 {
		return models.Habit{}, fmt.Errorf("habit XP value must be positive, got %d", xpValue)
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      hType,
		XPValue:   xpValue,
		CreatedAt: e.now(),
	}
	if err := e.store.SaveHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to save habit: %w", err)
	}

	return habit, nil
}

// DeleteHabit removes a definition. Existing trigger logs keep their copied
// name and value.
func (e *Engine) DeleteHabit(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.DeleteHabit(id)
}
