package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/julianstephens/dayquest/internal/models"
)

// AddReward adds a catalog entry to the reward store.
func (e *Engine) AddReward(name, description string, cost int) (models.StoreReward, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cost <= 0 {
		return models.StoreReward{}, fmt.Errorf("reward cost must be positive, got %d", cost)
	}

	reward := models.StoreReward{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Cost:        cost,
		Available:   true,
		CreatedAt:   e.now(),
	}
	if err := e.store.SaveReward(reward); err != nil {
		return models.StoreReward{}, fmt.Errorf("failed to save reward: %w", err)
	}

	return reward, nil
}

// DeleteReward removes a catalog entry. Past redemptions keep their copied
// name and cost, so history is unaffected.
func (e *Engine) DeleteReward(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.DeleteReward(id)
}

// SetRewardAvailable toggles whether a reward is offered for redemption.
func (e *Engine) SetRewardAvailable(id string, available bool) (models.StoreReward, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reward, err := e.store.GetReward(id)
	if err != nil {
		return models.StoreReward{}, err
	}
	reward.Available = available
	if err := e.store.SaveReward(reward); err != nil {
		return models.StoreReward{}, fmt.Errorf("failed to save reward: %w", err)
	}
	return reward, nil
}

// RedeemReward spends coins on a reward. The coin debit and the redemption
// record are one atomic unit: if appending the record fails the debit is
// rolled back. Unavailable rewards are rejected even when the caller holds
// a stale catalog listing.
func (e *Engine) RedeemReward(id string) (models.RedeemedReward, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.getUser()
	if err != nil {
		return models.RedeemedReward{}, err
	}

	reward, err := e.store.GetReward(id)
	if err != nil {
		return models.RedeemedReward{}, err
	}
	if !reward.Available {
		return models.RedeemedReward{}, ErrRewardUnavailable
	}
	if user.Coins < reward.Cost {
		return models.RedeemedReward{}, ErrInsufficientCoins
	}

	user.Coins -= reward.Cost
	if err := e.store.SaveUser(user); err != nil {
		return models.RedeemedReward{}, fmt.Errorf("failed to save character: %w", err)
	}

	redemption := models.RedeemedReward{
		ID:         uuid.New().String(),
		RewardID:   reward.ID,
		RewardName: reward.Name,
		RewardCost: reward.Cost,
		RedeemedAt: e.now(),
	}
	if err := e.store.AppendRedemption(redemption); err != nil {
		// Roll the debit back so balance and history stay consistent.
		user.Coins += reward.Cost
		if saveErr := e.store.SaveUser(user); saveErr != nil {
			return models.RedeemedReward{}, fmt.Errorf("failed to roll back coin debit: %w", saveErr)
		}
		return models.RedeemedReward{}, fmt.Errorf("failed to record redemption: %w", err)
	}

	details := fmt.Sprintf("Redeemed %q for %d coins", reward.Name, reward.Cost)
	if err := e.logEvent(models.EventRewardRedeemed, details, 0, -reward.Cost); err != nil {
		return models.RedeemedReward{}, err
	}

	return redemption, nil
}
