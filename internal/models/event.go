package models

import "time"

// EventType is a closed enumeration; the values are part of the stored log
// format and must not change.
type EventType string

const (
	EventDayStarted             EventType = "day_started"
	EventMissionCompleted       EventType = "mission_completed"
	EventMissionFailed          EventType = "mission_failed"
	EventNegativeHabitTriggered EventType = "negative_habit_triggered"
	EventPositiveHabitCompleted EventType = "positive_habit_completed"
	EventDayClosed              EventType = "day_closed"
	EventRewardRedeemed         EventType = "reward_redeemed"
	EventLevelUp                EventType = "level_up"
	EventSlotUnlocked           EventType = "slot_unlocked"
	EventLootBoxOpened          EventType = "loot_box_opened"
	EventForgivenessUsed        EventType = "forgiveness_used"
)

// Event is one immutable entry in the append-only activity log.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	Details    string    `json:"details"`
	XPChange   int       `json:"xp_change,omitempty"`
	CoinChange int       `json:"coin_change,omitempty"`
}
