package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dayquest/internal/progression"
)

type CharacterCreateCmd struct {
	Name string `arg:"" help:"Character name."`
}

func (c *CharacterCreateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	user, err := ctx.Engine.CreateUser(c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Character %q created. Welcome to level 1!\n", user.Name)
	fmt.Println("Start your first day with 'dayquest day start'.")
	return nil
}

type CharacterShowCmd struct{}

func (c *CharacterShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	user, err := ctx.Engine.User()
	if err != nil {
		return err
	}

	slots := progression.AvailableSlots(user.SlotUnlocks)
	earned := progression.EarnedSlotUnlocks(progression.LevelForXP(user.TotalXP))
	unopened := 0
	for _, b := range user.LootBoxes {
		if !b.Opened {
			unopened++
		}
	}

	fmt.Printf("%s\n", user.Name)
	fmt.Printf("  %s\n", formatLevel(user.TotalXP))
	fmt.Printf("  Total XP:     %d\n", user.TotalXP)
	fmt.Printf("  Coins:        %d\n", user.Coins)
	fmt.Printf("  Slots:        %d secondary, %d bonus\n", slots.Secondary, slots.Bonus)
	fmt.Printf("  Unlocks:      %d spent of %d earned\n", len(user.SlotUnlocks), earned)
	fmt.Printf("  Forgiveness:  %t\n", user.ForgivenessAvailable)
	fmt.Printf("  Loot boxes:   %d unopened\n", unopened)

	return nil
}

type CharacterResetCmd struct{}

func (c *CharacterResetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	fmt.Println("⚠️  WARNING: This deletes your character and ALL progress:")
	fmt.Println("days, missions, habits, rewards, and the full event log.")
	fmt.Print("Continue? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	response = strings.TrimSpace(strings.ToLower(response))

	if response != "y" && response != "yes" {
		fmt.Println("Reset cancelled.")
		return nil
	}

	if err := ctx.Engine.ResetUser(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	fmt.Println("Character deleted. 'dayquest character create' starts fresh.")
	return nil
}
