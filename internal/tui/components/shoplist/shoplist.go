package shoplist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayquest/internal/models"
)

type RedeemRewardMsg struct {
	ID string
}

type Item struct {
	Reward     models.StoreReward
	Affordable bool
}

func (i Item) Title() string {
	if i.Affordable {
		return i.Reward.Name
	}
	return i.Reward.Name + " 🔒"
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d coins", i.Reward.Cost)
	if i.Reward.Description != "" {
		desc += " | " + i.Reward.Description
	}
	return desc
}

func (i Item) FilterValue() string { return i.Reward.Name }

type KeyMap struct {
	Redeem key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Redeem: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "redeem"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(rewards []models.StoreReward, coins, width, height int) Model {
	l := list.New(toItems(rewards, coins), list.NewDefaultDelegate(), width, height)
	l.Title = "Store"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Redeem}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Redeem}
	}

	return Model{list: l, keys: keys}
}

func toItems(rewards []models.StoreReward, coins int) []list.Item {
	var items []list.Item
	for _, r := range rewards {
		if !r.Available {
			continue
		}
		items = append(items, Item{Reward: r, Affordable: r.Cost <= coins})
	}
	return items
}

func (m *Model) SetRewards(rewards []models.StoreReward, coins int) {
	m.list.SetItems(toItems(rewards, coins))
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
		if key.Matches(msg, m.keys.Redeem) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RedeemRewardMsg{ID: i.Reward.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  The store is empty."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
