package cli

import (
	"fmt"
)

type LootListCmd struct {
	All bool `help:"Include already-opened boxes."`
}

func (c *LootListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	user, err := ctx.Engine.User()
	if err != nil {
		return err
	}

	if len(user.LootBoxes) == 0 {
		fmt.Println("No loot boxes yet. Level up to earn them.")
		return nil
	}

	shown := 0
	for _, b := range user.LootBoxes {
		if b.Opened && !c.All {
			continue
		}
		state := "unopened"
		if b.Opened {
			state = "opened"
			if b.Prize != nil {
				state = fmt.Sprintf("opened: %s", b.Prize.Description)
			}
		}
		fmt.Printf("%-7s  level %-3d  %-40s  %s\n", b.Type, b.EarnedAtLevel, state, b.ID)
		shown++
	}
	if shown == 0 {
		fmt.Println("All boxes opened. Use --all to see past prizes.")
	}
	return nil
}

type LootOpenCmd struct {
	ID string `arg:"" help:"Loot box id."`
}

func (c *LootOpenCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	box, err := ctx.Engine.OpenLootBox(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Opened a %s loot box from level %d...\n", box.Type, box.EarnedAtLevel)
	fmt.Printf("  🎁 %s\n", box.Prize.Description)
	return nil
}
