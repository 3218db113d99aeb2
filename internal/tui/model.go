package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayquest/internal/game"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/storage"
	"github.com/julianstephens/dayquest/internal/tui/components/eventlog"
	"github.com/julianstephens/dayquest/internal/tui/components/habitlist"
	"github.com/julianstephens/dayquest/internal/tui/components/missionlist"
	"github.com/julianstephens/dayquest/internal/tui/components/shoplist"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateMissions
	StateHabits
	StateStore
	StateLog
	StateCreateCharacter
	StateAddMission
	StateAddHabit
)

// tabCount is how many states are reachable by tab cycling; the form states
// sit past the tabs and are entered explicitly.
const tabCount = 5

type CharacterFormModel struct {
	Name string
}

type MissionFormModel struct {
	Type        string
	Title       string
	Description string
}

type HabitFormModel struct {
	Name  string
	Type  string
	Value string
}

type Model struct {
	store         storage.Provider
	engine        *game.Engine
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	missionList missionlist.Model
	habitList   habitlist.Model
	shopList    shoplist.Model
	eventLog    eventlog.Model

	form          *huh.Form
	characterForm *CharacterFormModel
	missionForm   *MissionFormModel
	habitForm     *HabitFormModel

	user  *models.User
	day   *models.Day
	today string

	status   string
	isError  bool
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, engine *game.Engine) Model {
	m := Model{
		store:       store,
		engine:      engine,
		state:       StateDashboard,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		missionList: missionlist.New(nil, 0, 0),
		habitList:   habitlist.New(nil, nil, 0, 0),
		shopList:    shoplist.New(nil, 0, 0, 0),
		eventLog:    eventlog.New(0, 0),
		today:       time.Now().Format("2006-01-02"),
	}

	m.refresh()

	if m.user == nil {
		m.openCharacterForm()
	}

	return m
}

// refresh reloads everything the views render from storage. Engine writes go
// through their own locking, so rereading after each action is the simplest
// way to stay consistent.
func (m *Model) refresh() {
	user, err := m.engine.User()
	if err != nil {
		m.user = nil
	} else {
		m.user = &user
	}

	day, err := m.store.GetDay(m.today)
	if err != nil {
		m.day = nil
		m.missionList.SetMissions(nil)
	} else {
		m.day = &day
		m.missionList.SetMissions(day.Missions)
	}

	habits, _ := m.store.GetHabits()
	logs, _ := m.store.GetHabitLogs(m.today)
	m.habitList.SetHabits(habits, logs)

	rewards, _ := m.store.GetRewards()
	coins := 0
	if m.user != nil {
		coins = m.user.Coins
	}
	m.shopList.SetRewards(rewards, coins)

	events, _ := m.engine.RecentEvents(200)
	m.eventLog.SetEvents(events)
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.isError = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.isError = true
}

func (m *Model) openCharacterForm() {
	m.characterForm = &CharacterFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Character name").
				Value(&m.characterForm.Name).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("name is required")
					}
					return nil
				}),
		),
	)
	m.previousState = StateDashboard
	m.state = StateCreateCharacter
}

func (m *Model) openMissionForm() {
	m.missionForm = &MissionFormModel{Type: string(models.MissionMain)}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mission type").
				Options(
					huh.NewOption("Main (+30 XP, +15 coins)", string(models.MissionMain)),
					huh.NewOption("Secondary (+20 XP, +10 coins)", string(models.MissionSecondary)),
					huh.NewOption("Bonus (+10 XP, +5 coins)", string(models.MissionBonus)),
				).
				Value(&m.missionForm.Type),
			huh.NewInput().
				Title("Title").
				Value(&m.missionForm.Title).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description (optional)").
				Value(&m.missionForm.Description),
		),
	)
	m.previousState = m.state
	m.state = StateAddMission
}

func (m *Model) openHabitForm() {
	m.habitForm = &HabitFormModel{Type: string(models.HabitPositive), Value: "10"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&m.habitForm.Name).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Habit type").
				Options(
					huh.NewOption("Positive (gains XP)", string(models.HabitPositive)),
					huh.NewOption("Negative (loses XP)", string(models.HabitNegative)),
				).
				Value(&m.habitForm.Type),
			huh.NewInput().
				Title("XP per trigger").
				Value(&m.habitForm.Value).
				Validate(validatePositiveInt),
		),
	)
	m.previousState = m.state
	m.state = StateAddHabit
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDashboard:
		keys = append(keys, m.keys.StartDay, m.keys.CloseDay)
	case StateMissions:
		keys = append(keys, missionlist.DefaultKeyMap().Add, missionlist.DefaultKeyMap().Complete, missionlist.DefaultKeyMap().Fail)
	case StateHabits:
		keys = append(keys, habitlist.DefaultKeyMap().Add, habitlist.DefaultKeyMap().Trigger)
	case StateStore:
		keys = append(keys, shoplist.DefaultKeyMap().Redeem)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateDashboard:
		actions = []key.Binding{m.keys.StartDay, m.keys.CloseDay}
	case StateMissions:
		k := missionlist.DefaultKeyMap()
		actions = []key.Binding{k.Add, k.Complete, k.Fail}
	case StateHabits:
		k := habitlist.DefaultKeyMap()
		actions = []key.Binding{k.Add, k.Trigger, k.Delete}
	case StateStore:
		actions = []key.Binding{shoplist.DefaultKeyMap().Redeem}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}
