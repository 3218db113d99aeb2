package cli

import (
	"fmt"

	"github.com/julianstephens/dayquest/internal/models"
)

type HabitAddCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Type  string `arg:"" help:"Habit type: positive or negative."`
	Value int    `arg:"" help:"XP gained (positive) or lost (negative) per trigger."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	hType, err := parseHabitType(c.Type)
	if err != nil {
		return err
	}

	habit, err := ctx.Engine.AddHabit(c.Name, hType, c.Value)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s habit %q worth %d XP per trigger\n", habit.Type, habit.Name, habit.XPValue)
	fmt.Printf("  id: %s\n", habit.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits defined. Add one with 'dayquest habit add'.")
		return nil
	}

	for _, h := range habits {
		sign := "+"
		if h.Type == models.HabitNegative {
			sign = "-"
		}
		fmt.Printf("%-9s  %-25s  %s%d XP  %s\n", h.Type, h.Name, sign, h.XPValue, h.ID)
	}
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Engine.DeleteHabit(c.ID); err != nil {
		return err
	}

	fmt.Println("Habit deleted. Past triggers stay in the log.")
	return nil
}

type HabitTriggerCmd struct {
	ID   string `arg:"" help:"Habit id."`
	Date string `help:"Day to record against (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *HabitTriggerCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabit(c.ID)
	if err != nil {
		return err
	}

	applied, err := ctx.Engine.RecordHabit(date, c.ID)
	if err != nil {
		return err
	}

	switch {
	case applied == 0:
		fmt.Printf("Habit %q recorded no change (daily cap reached or forgiveness day).\n", habit.Name)
	case habit.Type == models.HabitPositive:
		fmt.Printf("Habit %q completed: +%d XP", habit.Name, applied)
		if applied < habit.XPValue {
			fmt.Printf(" (truncated from %d by the daily cap)", habit.XPValue)
		}
		fmt.Println()
	default:
		fmt.Printf("Habit %q triggered: -%d XP", habit.Name, applied)
		if applied < habit.XPValue {
			fmt.Printf(" (truncated from %d by the daily loss cap)", habit.XPValue)
		}
		fmt.Println()
	}
	return nil
}
