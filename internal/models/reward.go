package models

import "time"

// StoreReward is a catalog entry the player can redeem coins for.
type StoreReward struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Cost        int       `json:"cost"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

// RedeemedReward is an append-only redemption record. Name and cost are
// copied from the reward at redemption time so later catalog edits or
// deletions never rewrite history.
type RedeemedReward struct {
	ID         string    `json:"id"`
	RewardID   string    `json:"reward_id,omitempty"`
	RewardName string    `json:"reward_name"`
	RewardCost int       `json:"reward_cost"`
	RedeemedAt time.Time `json:"redeemed_at"`
}
