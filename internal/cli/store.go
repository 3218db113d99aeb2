package cli

import (
	"fmt"
	"sort"
)

type StoreListCmd struct {
	All bool `help:"Include rewards marked unavailable."`
}

func (c *StoreListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	user, err := ctx.Engine.User()
	if err != nil {
		return err
	}

	rewards, err := ctx.Store.GetRewards()
	if err != nil {
		return err
	}
	sort.Slice(rewards, func(i, j int) bool { return rewards[i].Cost < rewards[j].Cost })

	fmt.Printf("Balance: %d coins\n\n", user.Coins)
	shown := 0
	for _, r := range rewards {
		if !r.Available && !c.All {
			continue
		}
		marker := " "
		if !r.Available {
			marker = "✗"
		} else if r.Cost <= user.Coins {
			marker = "✓"
		}
		fmt.Printf("%s %4d  %-25s  %s\n", marker, r.Cost, r.Name, r.ID)
		if r.Description != "" {
			fmt.Printf("         %s\n", r.Description)
		}
		shown++
	}
	if shown == 0 {
		fmt.Println("The store is empty. Add a reward with 'dayquest store add'.")
	}
	return nil
}

type StoreAddCmd struct {
	Name        string `arg:"" help:"Reward name."`
	Cost        int    `arg:"" help:"Cost in coins."`
	Description string `help:"Optional description."`
}

func (c *StoreAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reward, err := ctx.Engine.AddReward(c.Name, c.Description, c.Cost)
	if err != nil {
		return err
	}

	fmt.Printf("Added reward %q for %d coins\n", reward.Name, reward.Cost)
	fmt.Printf("  id: %s\n", reward.ID)
	return nil
}

type StoreDeleteCmd struct {
	ID string `arg:"" help:"Reward id."`
}

func (c *StoreDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Engine.DeleteReward(c.ID); err != nil {
		return err
	}

	fmt.Println("Reward removed from the catalog. Past redemptions are untouched.")
	return nil
}

type StoreToggleCmd struct {
	ID      string `arg:"" help:"Reward id."`
	Disable bool   `help:"Mark the reward unavailable instead of available."`
}

func (c *StoreToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reward, err := ctx.Engine.SetRewardAvailable(c.ID, !c.Disable)
	if err != nil {
		return err
	}

	state := "available"
	if !reward.Available {
		state = "unavailable"
	}
	fmt.Printf("Reward %q is now %s\n", reward.Name, state)
	return nil
}

type StoreRedeemCmd struct {
	ID string `arg:"" help:"Reward id."`
}

func (c *StoreRedeemCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	redemption, err := ctx.Engine.RedeemReward(c.ID)
	if err != nil {
		return err
	}

	user, err := ctx.Engine.User()
	if err != nil {
		return err
	}

	fmt.Printf("Redeemed %q for %d coins. Enjoy!\n", redemption.RewardName, redemption.RewardCost)
	fmt.Printf("Balance: %d coins\n", user.Coins)
	return nil
}

type StoreHistoryCmd struct{}

func (c *StoreHistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	redemptions, err := ctx.Store.GetRedemptions()
	if err != nil {
		return err
	}

	if len(redemptions) == 0 {
		fmt.Println("Nothing redeemed yet.")
		return nil
	}

	// Newest first.
	sort.Slice(redemptions, func(i, j int) bool {
		return redemptions[i].RedeemedAt.After(redemptions[j].RedeemedAt)
	})
	for _, r := range redemptions {
		fmt.Printf("%s  %-25s  %d coins\n", r.RedeemedAt.Format("2006-01-02 15:04"), r.RewardName, r.RewardCost)
	}
	return nil
}
