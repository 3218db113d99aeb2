package cli

import (
	"fmt"

	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/progression"
)

type SlotsCmd struct{}

func (c *SlotsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	user, err := ctx.Engine.User()
	if err != nil {
		return err
	}

	level := progression.LevelForXP(user.TotalXP)
	slots := progression.AvailableSlots(user.SlotUnlocks)
	earned := progression.EarnedSlotUnlocks(level)
	remaining := earned - len(user.SlotUnlocks)

	fmt.Printf("Mission slots at level %d:\n", level)
	fmt.Printf("  main:       1 (fixed)\n")
	fmt.Printf("  secondary:  %d of %d max\n", slots.Secondary, constants.MaxSecondarySlots)
	fmt.Printf("  bonus:      %d of %d max\n", slots.Bonus, constants.MaxBonusSlots)
	fmt.Println()

	if remaining > 0 {
		fmt.Printf("You have %d unlock choice(s) to spend: 'dayquest unlock secondary' or 'dayquest unlock bonus'.\n", remaining)
	} else {
		next := (len(user.SlotUnlocks) + 1) * constants.LevelsPerSlotUnlock
		fmt.Printf("Next unlock choice at level %d.\n", next)
	}

	if len(user.SlotUnlocks) > 0 {
		fmt.Println("\nUnlock history:")
		for _, u := range user.SlotUnlocks {
			fmt.Printf("  level %-3d  %s\n", u.Level, u.Choice)
		}
	}
	return nil
}

type UnlockCmd struct {
	Choice string `arg:"" help:"Slot type to grow: secondary (+1) or bonus (+2)."`
}

func (c *UnlockCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	choice := models.SlotChoice(c.Choice)
	if choice != models.SlotChoiceSecondary && choice != models.SlotChoiceBonus {
		return fmt.Errorf("invalid slot choice %q, use secondary or bonus", c.Choice)
	}

	user, err := ctx.Engine.UnlockSlot(choice)
	if err != nil {
		return err
	}

	slots := progression.AvailableSlots(user.SlotUnlocks)
	fmt.Printf("Unlocked! Slots are now %d secondary / %d bonus.\n", slots.Secondary, slots.Bonus)
	return nil
}
