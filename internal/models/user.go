package models

import "time"

type SlotChoice string

const (
	SlotChoiceSecondary SlotChoice = "secondary"
	SlotChoiceBonus     SlotChoice = "bonus"
)

// SlotUnlockChoice records one spent unlock: which slot type the player chose
// and at which level. The ordered history drives slot capacity.
type SlotUnlockChoice struct {
	Level     int        `json:"level"`
	Choice    SlotChoice `json:"choice"`
	Timestamp time.Time  `json:"timestamp"`
}

type LootBoxType string

const (
	LootBoxNormal LootBoxType = "normal"
	LootBoxRare   LootBoxType = "rare"
)

type LootPrizeType string

const (
	LootPrizeDiscount      LootPrizeType = "discount"
	LootPrizePremiumReward LootPrizeType = "premium_reward"
	LootPrizeFreeDay       LootPrizeType = "free_day"
	LootPrizeNothing       LootPrizeType = "nothing"
)

type LootPrize struct {
	Type        LootPrizeType `json:"type"`
	Description string        `json:"description"`
	Value       int           `json:"value,omitempty"`
}

// LootBox is granted on level-up and opened later for a prize.
type LootBox struct {
	ID            string      `json:"id"`
	Type          LootBoxType `json:"type"`
	Opened        bool        `json:"opened"`
	Prize         *LootPrize  `json:"prize,omitempty"`
	EarnedAtLevel int         `json:"earned_at_level"`
}

// User is the character profile: the XP/coin ledger plus unlock state.
// TotalXP never drops below zero; level is always derived from TotalXP,
// never stored.
type User struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	TotalXP              int                `json:"total_xp"`
	Coins                int                `json:"coins"`
	ForgivenessAvailable bool               `json:"forgiveness_available"`
	SlotUnlocks          []SlotUnlockChoice `json:"slot_unlocks"`
	LootBoxes            []LootBox          `json:"loot_boxes"`
	CreatedAt            time.Time          `json:"created_at"`
}
