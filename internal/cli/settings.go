package cli

import "fmt"

type SettingsCmd struct {
	LootBoxes *bool `help:"Enable/disable loot box grants on level-up."`
	ChartDays *int  `help:"Set how many days the chart shows."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	changed := false
	if c.LootBoxes != nil {
		settings.LootBoxes = *c.LootBoxes
		changed = true
	}
	if c.ChartDays != nil {
		if *c.ChartDays <= 0 {
			return fmt.Errorf("chart days must be positive, got %d", *c.ChartDays)
		}
		settings.ChartDays = *c.ChartDays
		changed = true
	}

	if changed {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return err
		}
		fmt.Println("Settings updated:")
	} else {
		fmt.Println("Current settings:")
	}
	fmt.Printf("  loot_boxes: %t\n", settings.LootBoxes)
	fmt.Printf("  chart_days: %d\n", settings.ChartDays)
	return nil
}
