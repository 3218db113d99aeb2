package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/progression"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.inForm() {
		return docStyle.Render(m.form.View())
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = docStyle.Render(m.viewDashboard())
	case StateMissions:
		content = docStyle.Render(m.missionList.View())
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateStore:
		content = docStyle.Render(m.shopList.View())
	case StateLog:
		content = docStyle.Render(m.eventLog.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Dashboard", "Missions", "Habits", "Store", "Log"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.isError {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

const xpBarWidth = 30

func xpBar(p progression.Progress) string {
	filled := 0
	if p.Needed > 0 {
		filled = p.Current * xpBarWidth / p.Needed
	}
	if filled > xpBarWidth {
		filled = xpBarWidth
	}
	return barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", xpBarWidth-filled))
}

func (m Model) viewDashboard() string {
	if m.user == nil {
		return "No character yet. Restart to create one."
	}

	level := progression.LevelForXP(m.user.TotalXP)
	prog := progression.ProgressInLevel(m.user.TotalXP)
	slots := progression.AvailableSlots(m.user.SlotUnlocks)

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	row("Character", m.user.Name)
	row("Level", fmt.Sprintf("%d", level))
	b.WriteString(labelStyle.Render("XP") +
		fmt.Sprintf("%s %d/%d\n", xpBar(prog), prog.Current, prog.Needed))
	row("Coins", fmt.Sprintf("%d", m.user.Coins))

	forgiveness := "none"
	if m.user.ForgivenessAvailable {
		forgiveness = "available"
	}
	row("Forgiveness", forgiveness)

	unopened := 0
	for _, box := range m.user.LootBoxes {
		if !box.Opened {
			unopened++
		}
	}
	if unopened > 0 {
		row("Loot boxes", fmt.Sprintf("%d unopened", unopened))
	}

	pending := progression.EarnedSlotUnlocks(level) - len(m.user.SlotUnlocks)
	if pending > 0 {
		row("Unlocks", fmt.Sprintf("%d slot unlock(s) to spend", pending))
	}

	b.WriteString("\n")

	if m.day == nil {
		row("Today", "not started, press 's'")
		return b.String()
	}

	counts := m.day.CountMissions()
	switch {
	case m.day.IsForgiveness:
		row("Today", "forgiveness day")
	case m.day.Status == models.DayStatusClosed:
		row("Today", fmt.Sprintf("closed: %+d net XP, %d coins", m.day.NetXP(), m.day.CoinsEarned))
	default:
		row("Today", fmt.Sprintf("open: %+d net XP, %d coins so far", m.day.NetXP(), m.day.CoinsEarned))
		row("Missions", fmt.Sprintf("main %d/1, secondary %d/%d, bonus %d/%d",
			counts.Main, counts.Secondary, slots.Secondary, counts.Bonus, slots.Bonus))
	}

	return b.String()
}
