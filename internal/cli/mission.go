package cli

import (
	"fmt"
)

type MissionAddCmd struct {
	Type        string `arg:"" help:"Mission type: main, secondary, or bonus."`
	Title       string `arg:"" help:"Mission title."`
	Description string `help:"Optional description."`
	Date        string `help:"Day to add to (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *MissionAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	mType, err := parseMissionType(c.Type)
	if err != nil {
		return err
	}
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	mission, err := ctx.Engine.AddMission(date, mType, c.Title, c.Description)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s mission %q (worth %d XP, %d coins)\n", mission.Type, mission.Title, mission.XPReward, mission.CoinReward)
	fmt.Printf("  id: %s\n", mission.ID)
	return nil
}

type MissionListCmd struct {
	Date string `arg:"" help:"Day to list (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *MissionListCmd) Run(ctx *Context) error {
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

	if len(day.Missions) == 0 {
		fmt.Println("No missions for", date)
		return nil
	}

	for _, m := range day.Missions {
		fmt.Printf("%-9s  %-30s  %-11s  %s\n", m.Type, m.Title, formatMissionStatus(m.Status), m.ID)
	}
	return nil
}

type MissionCompleteCmd struct {
	ID   string `arg:"" help:"Mission id."`
	Date string `help:"Day the mission belongs to (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *MissionCompleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Engine.CompleteMission(date, c.ID)
	if err != nil {
		return err
	}

	m := day.MissionByID(c.ID)
	if day.IsForgiveness {
		fmt.Printf("Mission %q completed (forgiveness day, no rewards)\n", m.Title)
	} else {
		fmt.Printf("Mission %q completed! +%d XP, +%d coins\n", m.Title, m.XPReward, m.CoinReward)
	}
	return nil
}

type MissionFailCmd struct {
	ID   string `arg:"" help:"Mission id."`
	Date string `help:"Day the mission belongs to (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *MissionFailCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Engine.FailMission(date, c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Mission %q marked failed.\n", day.MissionByID(c.ID).Title)
	return nil
}
