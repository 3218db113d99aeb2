package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/tui/components/habitlist"
	"github.com/julianstephens/dayquest/internal/tui/components/missionlist"
	"github.com/julianstephens/dayquest/internal/tui/components/shoplist"
)

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return errors.New("must be a positive number")
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 6
		if contentHeight < 1 {
			contentHeight = 1
		}
		m.missionList.SetSize(msg.Width-4, contentHeight)
		m.habitList.SetSize(msg.Width-4, contentHeight)
		m.shopList.SetSize(msg.Width-4, contentHeight)
		m.eventLog.SetSize(msg.Width-4, contentHeight)

	case missionlist.AddMissionMsg:
		m.openMissionForm()
		return m, m.form.Init()

	case missionlist.CompleteMissionMsg:
		day, err := m.engine.CompleteMission(m.today, msg.ID)
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("Mission completed. Day total: %+d XP, %d coins", day.NetXP(), day.CoinsEarned))
		}
		m.refresh()
		return m, nil

	case missionlist.FailMissionMsg:
		if _, err := m.engine.FailMission(m.today, msg.ID); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Mission marked failed. No penalty.")
		}
		m.refresh()
		return m, nil

	case habitlist.AddHabitMsg:
		m.openHabitForm()
		return m, m.form.Init()

	case habitlist.TriggerHabitMsg:
		applied, err := m.engine.RecordHabit(m.today, msg.ID)
		switch {
		case err != nil:
			m.setError(err)
		case applied == 0:
			m.setStatus("Trigger recorded, daily cap already reached.")
		default:
			m.setStatus(fmt.Sprintf("Habit triggered: %+d XP", applied))
		}
		m.refresh()
		return m, nil

	case habitlist.DeleteHabitMsg:
		if err := m.engine.DeleteHabit(msg.ID); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Habit deleted. Past triggers are kept.")
		}
		m.refresh()
		return m, nil

	case shoplist.RedeemRewardMsg:
		redeemed, err := m.engine.RedeemReward(msg.ID)
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("Redeemed %q for %d coins", redeemed.RewardName, redeemed.RewardCost))
		}
		m.refresh()
		return m, nil
	}

	if m.inForm() {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			if m.filtering() {
				break
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		if m.state == StateDashboard {
			switch {
			case key.Matches(keyMsg, m.keys.StartDay):
				day, err := m.engine.StartDay(m.today, false)
				if err != nil {
					m.setError(err)
				} else if day.Status == models.DayStatusOpen {
					m.setStatus("Day started. Add missions to begin.")
				}
				m.refresh()
				return m, nil
			case key.Matches(keyMsg, m.keys.CloseDay):
				day, err := m.engine.CloseDay(m.today)
				if err != nil {
					m.setError(err)
				} else {
					m.setStatus(fmt.Sprintf("Day closed: %+d net XP, %d coins", day.NetXP(), day.CoinsEarned))
				}
				m.refresh()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateMissions:
		m.missionList, cmd = m.missionList.Update(msg)
	case StateHabits:
		m.habitList, cmd = m.habitList.Update(msg)
	case StateStore:
		m.shopList, cmd = m.shopList.Update(msg)
	case StateLog:
		m.eventLog, cmd = m.eventLog.Update(msg)
	}
	return m, cmd
}

func (m Model) inForm() bool {
	switch m.state {
	case StateCreateCharacter, StateAddMission, StateAddHabit:
		return m.form != nil
	}
	return false
}

// filtering reports whether the active list is in filter-input mode, where
// plain letters belong to the filter and must not quit the program.
func (m Model) filtering() bool {
	switch m.state {
	case StateMissions:
		return m.missionList.Filtering()
	case StateHabits:
		return m.habitList.Filtering()
	case StateStore:
		return m.shopList.Filtering()
	}
	return false
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applyForm()
		m.form = nil
		m.state = m.previousState
		m.refresh()
	case huh.StateAborted:
		// Character creation cannot be skipped; reopen the form.
		if m.state == StateCreateCharacter && m.user == nil {
			m.openCharacterForm()
			return m, m.form.Init()
		}
		m.form = nil
		m.state = m.previousState
	}

	return m, cmd
}

func (m *Model) applyForm() {
	switch m.state {
	case StateCreateCharacter:
		if _, err := m.engine.CreateUser(m.characterForm.Name); err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("Welcome, %s. Start your first day with 's'.", m.characterForm.Name))
		}
		m.characterForm = nil

	case StateAddMission:
		mission, err := m.engine.AddMission(m.today, models.MissionType(m.missionForm.Type), m.missionForm.Title, m.missionForm.Description)
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("Mission added: %s (+%d XP, +%d coins on completion)", mission.Title, mission.XPReward, mission.CoinReward))
		}
		m.missionForm = nil

	case StateAddHabit:
		value, _ := strconv.Atoi(m.habitForm.Value)
		habit, err := m.engine.AddHabit(m.habitForm.Name, models.HabitType(m.habitForm.Type), value)
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("Habit added: %s", habit.Name))
		}
		m.habitForm = nil
	}
}
