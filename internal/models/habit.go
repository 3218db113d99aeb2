package models

import "time"

type HabitType string

const (
	HabitPositive HabitType = "positive"
	HabitNegative HabitType = "negative"
)

// Habit is a reusable definition: a named practice worth XPValue per trigger
// (gain for positive habits, loss for negative ones). Definitions persist
// across days; triggering one only produces a HabitLog and an Event.
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      HabitType `json:"type"`
	XPValue   int       `json:"xp_value"`
	CreatedAt time.Time `json:"created_at"`
}

// HabitLog records one trigger of a habit within a day. XPValue holds the
// actually applied amount, after daily cap truncation.
type HabitLog struct {
	ID        string    `json:"id"`
	DayDate   string    `json:"day_date"`
	HabitID   string    `json:"habit_id,omitempty"`
	HabitName string    `json:"habit_name"`
	HabitType HabitType `json:"habit_type"`
	XPValue   int       `json:"xp_value"`
	CreatedAt time.Time `json:"created_at"`
}
