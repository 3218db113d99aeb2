package missionlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayquest/internal/models"
)

type AddMissionMsg struct{}

type CompleteMissionMsg struct {
	ID string
}

type FailMissionMsg struct {
	ID string
}

type Item struct {
	Mission models.Mission
}

func (i Item) Title() string {
	switch i.Mission.Status {
	case models.MissionStatusCompleted:
		return "✓ " + i.Mission.Title
	case models.MissionStatusFailed:
		return "✗ " + i.Mission.Title
	default:
		return i.Mission.Title
	}
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %d XP, %d coins", i.Mission.Type, i.Mission.XPReward, i.Mission.CoinReward)
	if i.Mission.Description != "" {
		desc += " | " + i.Mission.Description
	}
	return desc
}

func (i Item) FilterValue() string { return i.Mission.Title }

type KeyMap struct {
	Add      key.Binding
	Complete key.Binding
	Fail     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Fail: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "fail"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(missions []models.Mission, width, height int) Model {
	l := list.New(toItems(missions), list.NewDefaultDelegate(), width, height)
	l.Title = "Missions"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // Help is handled globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Fail}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Fail}
	}

	return Model{list: l, keys: keys}
}

func toItems(missions []models.Mission) []list.Item {
	items := make([]list.Item, len(missions))
	for i, m := range missions {
		items[i] = Item{Mission: m}
	}
	return items
}

func (m *Model) SetMissions(missions []models.Mission) {
	m.list.SetItems(toItems(missions))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMissionMsg{} }
		case key.Matches(msg, m.keys.Complete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Mission.Status == models.MissionStatusPending {
					return m, func() tea.Msg { return CompleteMissionMsg{ID: i.Mission.ID} }
				}
			}
		case key.Matches(msg, m.keys.Fail):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Mission.Status == models.MissionStatusPending {
					return m, func() tea.Msg { return FailMissionMsg{ID: i.Mission.ID} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No missions today.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keystrokes for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
