package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
)

var (
	gainBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lossBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type ChartCmd struct {
	Days int `help:"How many recent days to chart (default from settings)." default:"0"`
}

func (c *ChartCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	window := c.Days
	if window <= 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		window = settings.ChartDays
	}

	days, err := ctx.Store.GetAllDays()
	if err != nil {
		return err
	}
	if len(days) == 0 {
		fmt.Println("No days recorded yet.")
		return nil
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	if len(days) > window {
		days = days[len(days)-window:]
	}

	fmt.Printf("Net XP per day (last %d days):\n\n", len(days))
	for _, d := range days {
		net := d.NetXP()
		bar := renderBar(net)
		marker := ""
		if d.IsForgiveness {
			marker = dimStyle.Render(" (forgiveness)")
		} else if d.Status == models.DayStatusOpen {
			marker = dimStyle.Render(" (open)")
		}
		fmt.Printf("%s  %+4d  %s%s\n", d.Date, net, bar, marker)
	}
	return nil
}

// renderBar scales net XP onto a fixed-width bar: one cell per 5 XP, capped
// at the daily gain cap's width.
func renderBar(net int) string {
	const cellXP = 5
	maxCells := constants.XPCap / cellXP

	cells := net / cellXP
	if cells > maxCells {
		cells = maxCells
	}
	if cells < -maxCells {
		cells = -maxCells
	}

	switch {
	case cells > 0:
		return gainBarStyle.Render(strings.Repeat("█", cells))
	case cells < 0:
		return lossBarStyle.Render(strings.Repeat("█", -cells))
	default:
		return dimStyle.Render("·")
	}
}
