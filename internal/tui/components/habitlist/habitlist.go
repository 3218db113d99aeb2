package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayquest/internal/models"
)

type AddHabitMsg struct{}

type TriggerHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Habit models.Habit
	// TriggersToday is how many times the habit fired on the current day.
	TriggersToday int
}

func (i Item) Title() string {
	if i.TriggersToday > 0 {
		return fmt.Sprintf("%s (×%d today)", i.Habit.Name, i.TriggersToday)
	}
	return i.Habit.Name
}

func (i Item) Description() string {
	if i.Habit.Type == models.HabitNegative {
		return fmt.Sprintf("negative | -%d XP per trigger", i.Habit.XPValue)
	}
	return fmt.Sprintf("positive | +%d XP per trigger", i.Habit.XPValue)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add     key.Binding
	Trigger key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Trigger: key.NewBinding(
			key.WithKeys("t", "enter"),
			key.WithHelp("t", "trigger"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, logs []models.HabitLog, width, height int) Model {
	l := list.New(toItems(habits, logs), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Trigger, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Trigger, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func toItems(habits []models.Habit, logs []models.HabitLog) []list.Item {
	counts := make(map[string]int)
	for _, log := range logs {
		counts[log.HabitID]++
	}

	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h, TriggersToday: counts[h.ID]}
	}
	return items
}

func (m *Model) SetHabits(habits []models.Habit, logs []models.HabitLog) {
	m.list.SetItems(toItems(habits, logs))
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
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Trigger):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return TriggerHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits defined.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
