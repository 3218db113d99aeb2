package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/progression"
)

// gainXP credits XP to the character and handles every level boundary the
// gain crosses: one level_up event per level, a loot box per level when the
// setting is on, and the forgiveness token on milestone levels. The caller
// saves the user afterwards.
func (e *Engine) gainXP(user *models.User, amount int) error {
	if amount <= 0 {
		return nil
	}

	prevLevel := progression.LevelForXP(user.TotalXP)
	user.TotalXP += amount
	newLevel := progression.LevelForXP(user.TotalXP)
	if newLevel <= prevLevel {
		return nil
	}

	settings, err := e.store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	for lvl := prevLevel + 1; lvl <= newLevel; lvl++ {
		if settings.LootBoxes {
			boxType := models.LootBoxNormal
			if lvl%constants.RareLootBoxLevels == 0 {
				boxType = models.LootBoxRare
			}
			user.LootBoxes = append(user.LootBoxes, models.LootBox{
				ID:            uuid.New().String(),
				Type:          boxType,
				EarnedAtLevel: lvl,
			})
		}

		if err := e.logEvent(models.EventLevelUp, fmt.Sprintf("Reached level %d", lvl), 0, 0); err != nil {
			return err
		}
	}

	// Multiple milestone crossings coalesce into the single flag.
	if progression.CrossedForgiveness(prevLevel, newLevel) {
		user.ForgivenessAvailable = true
	}

	return nil
}

// loseXP debits XP, floored at zero. Dropping below a level boundary never
// revokes loot boxes, unlock choices, or forgiveness already granted.
func loseXP(user *models.User, amount int) {
	if amount <= 0 {
		return
	}
	user.TotalXP = max(user.TotalXP-amount, 0)
}

// UnlockSlot spends one earned unlock choice on the given slot type. A
// choice is earned every ten levels; spending is rejected once the chosen
// slot type is already at its maximum.
func (e *Engine) UnlockSlot(choice models.SlotChoice) (models.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.getUser()
	if err != nil {
		return models.User{}, err
	}

	level := progression.LevelForXP(user.TotalXP)
	if len(user.SlotUnlocks) >= progression.EarnedSlotUnlocks(level) {
		return models.User{}, ErrNoUnlockAvailable
	}

	slots := progression.AvailableSlots(user.SlotUnlocks)
	switch choice {
	case models.SlotChoiceSecondary:
		if slots.Secondary >= constants.MaxSecondarySlots {
			return models.User{}, ErrSlotCapReached
		}
	case models.SlotChoiceBonus:
		if slots.Bonus >= constants.MaxBonusSlots {
			return models.User{}, ErrSlotCapReached
		}
	default:
		return models.User{}, fmt.Errorf("unknown slot choice %q", choice)
	}

	user.SlotUnlocks = append(user.SlotUnlocks, models.SlotUnlockChoice{
		Level:     level,
		Choice:    choice,
		Timestamp: e.now(),
	})
	if err := e.store.SaveUser(user); err != nil {
		return models.User{}, fmt.Errorf("failed to save character: %w", err)
	}

	if err := e.logEvent(models.EventSlotUnlocked, fmt.Sprintf("Unlocked an extra %s mission slot", choice), 0, 0); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// OpenLootBox rolls a prize for an unopened box and marks it opened.
func (e *Engine) OpenLootBox(id string) (models.LootBox, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.getUser()
	if err != nil {
		return models.LootBox{}, err
	}

	var box *models.LootBox
	for i := range user.LootBoxes {
		if user.LootBoxes[i].ID == id {
			box = &user.LootBoxes[i]
			break
		}
	}
	if box == nil {
		return models.LootBox{}, ErrLootBoxNotFound
	}
	if box.Opened {
		return models.LootBox{}, ErrLootBoxOpened
	}

	prize := rollPrize(box.Type, e.roll())
	box.Opened = true
	box.Prize = &prize

	if err := e.store.SaveUser(user); err != nil {
		return models.LootBox{}, fmt.Errorf("failed to save character: %w", err)
	}

	if err := e.logEvent(models.EventLootBoxOpened, fmt.Sprintf("Loot box opened: %s", prize.Description), 0, 0); err != nil {
		return models.LootBox{}, err
	}

	return *box, nil
}

// rollPrize maps a uniform roll in [0, 1) onto the prize table for the box
// type. Rare boxes skew heavily away from empty pulls.
func rollPrize(boxType models.LootBoxType, roll float64) models.LootPrize {
	if boxType == models.LootBoxRare {
		switch {
		case roll < 0.10:
			return models.LootPrize{Type: models.LootPrizeNothing, Description: "Nothing this time"}
		case roll < 0.35:
			return models.LootPrize{Type: models.LootPrizeDiscount, Description: "Discount on your next redemption", Value: 25}
		case roll < 0.75:
			return models.LootPrize{Type: models.LootPrizePremiumReward, Description: "A premium reward of your choice"}
		default:
			return models.LootPrize{Type: models.LootPrizeFreeDay, Description: "A free rest day"}
		}
	}

	switch {
	case roll < 0.40:
		return models.LootPrize{Type: models.LootPrizeNothing, Description: "Nothing this time"}
	case roll < 0.70:
		return models.LootPrize{Type: models.LootPrizeDiscount, Description: "Discount on your next redemption", Value: 10}
	case roll < 0.90:
		return models.LootPrize{Type: models.LootPrizePremiumReward, Description: "A premium reward of your choice"}
	default:
		return models.LootPrize{Type: models.LootPrizeFreeDay, Description: "A free rest day"}
	}
}
