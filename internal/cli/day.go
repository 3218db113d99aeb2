package cli

import (
	"fmt"

	"github.com/julianstephens/dayquest/internal/models"
)

type DayStartCmd struct {
	Date    string `arg:"" help:"Date to start (YYYY-MM-DD or 'today')." default:"today"`
	Forgive bool   `help:"Spend the forgiveness token: the day records activity without XP/coin changes."`
}

func (c *DayStartCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Engine.StartDay(date, c.Forgive)
	if err != nil {
		return err
	}

	if day.IsForgiveness {
		fmt.Printf("Forgiveness day %s started. No XP or coins move today.\n", day.Date)
	} else {
		fmt.Printf("Day %s started. Add missions with 'dayquest mission add'.\n", day.Date)
	}
	return nil
}

type DayShowCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Store.GetDay(date)
	if err != nil {
		return fmt.Errorf("no day found for %s", date)
	}

	header := fmt.Sprintf("Day %s [%s]", day.Date, day.Status)
	if day.IsForgiveness {
		header += " (forgiveness)"
	}
	fmt.Println(header)
	fmt.Printf("  XP: +%d / -%d (net %+d)   Coins: %d\n\n", day.XPGained, day.XPLost, day.NetXP(), day.CoinsEarned)

	if len(day.Missions) == 0 {
		fmt.Println("  No missions yet")
	}
	for _, m := range day.Missions {
		fmt.Printf("  %-9s  %-30s  %s\n", m.Type, m.Title, formatMissionStatus(m.Status))
		if m.Description != "" {
			fmt.Printf("             %s\n", m.Description)
		}
	}

	logs, err := ctx.Store.GetHabitLogs(date)
	if err != nil {
		return err
	}
	if len(logs) > 0 {
		fmt.Println("\n  Habit triggers:")
		for _, l := range logs {
			sign := "+"
			if l.HabitType == models.HabitNegative {
				sign = "-"
			}
			fmt.Printf("    %s (%s%d XP)\n", l.HabitName, sign, l.XPValue)
		}
	}

	return nil
}

type DayCloseCmd struct {
	Date string `arg:"" help:"Date to close (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCloseCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Engine.CloseDay(date)
	if err != nil {
		return err
	}

	counts := day.CountMissions()
	completed := 0
	for _, m := range day.Missions {
		if m.Status == models.MissionStatusCompleted {
			completed++
		}
	}

	fmt.Printf("Day %s closed.\n", day.Date)
	fmt.Printf("  Missions: %d/%d completed\n", completed, counts.Main+counts.Secondary+counts.Bonus)
	fmt.Printf("  Net XP:   %+d\n", day.NetXP())
	fmt.Printf("  Coins:    %d\n", day.CoinsEarned)
	return nil
}
