package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayquest/internal/models"
)

type LogCmd struct {
	Limit int    `help:"Maximum number of entries." default:"20"`
	Type  string `help:"Filter by event type (e.g. mission_completed, level_up)."`
	Since string `help:"Only events on or after this date (YYYY-MM-DD)."`
}

func (c *LogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var events []models.Event
	var err error
	switch {
	case c.Type != "":
		events, err = ctx.Engine.EventsByType(models.EventType(c.Type))
	case c.Since != "":
		var start time.Time
		start, err = time.Parse("2006-01-02", c.Since)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
		}
		events, err = ctx.Engine.EventsByDateRange(start, time.Now().Add(time.Second))
	default:
		events, err = ctx.Engine.RecentEvents(c.Limit)
	}
	if err != nil {
		return err
	}
	if c.Limit >= 0 && len(events) > c.Limit {
		events = events[:c.Limit]
	}

	if len(events) == 0 {
		fmt.Println("No events recorded.")
		return nil
	}

	for _, ev := range events {
		deltas := ""
		if ev.XPChange != 0 {
			deltas += fmt.Sprintf(" %+d XP", ev.XPChange)
		}
		if ev.CoinChange != 0 {
			deltas += fmt.Sprintf(" %+d coins", ev.CoinChange)
		}
		fmt.Printf("%s  %-26s  %s%s\n", ev.Timestamp.Local().Format("2006-01-02 15:04"), ev.Type, ev.Details, deltas)
	}
	return nil
}
