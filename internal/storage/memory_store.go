package storage

import (
	"fmt"

	"github.com/julianstephens/dayquest/internal/models"
)

// MemoryStore keeps everything in process memory. It backs tests and
// throwaway sessions; nothing survives the process.
type MemoryStore struct {
	settings    Settings
	user        *models.User
	days        map[string]models.Day
	habits      map[string]models.Habit
	habitLogs   []models.HabitLog
	rewards     map[string]models.StoreReward
	redemptions []models.RedeemedReward
	events      []models.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		settings: DefaultSettings(),
		days:     make(map[string]models.Day),
		habits:   make(map[string]models.Habit),
		rewards:  make(map[string]models.StoreReward),
	}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetSettings() (Settings, error) {
	return s.settings, nil
}

func (s *MemoryStore) SaveSettings(settings Settings) error {
	s.settings = settings
	return nil
}

func (s *MemoryStore) GetUser() (models.User, error) {
	if s.user == nil {
		return models.User{}, fmt.Errorf("character %w", ErrNotFound)
	}
	return *s.user, nil
}

func (s *MemoryStore) SaveUser(user models.User) error {
	s.user = &user
	return nil
}

func (s *MemoryStore) DeleteUser() error {
	s.user = nil
	s.days = make(map[string]models.Day)
	s.habits = make(map[string]models.Habit)
	s.habitLogs = nil
	s.rewards = make(map[string]models.StoreReward)
	s.redemptions = nil
	s.events = nil
	return nil
}

func (s *MemoryStore) GetDay(date string) (models.Day, error) {
	day, ok := s.days[date]
	if !ok {
		return models.Day{}, fmt.Errorf("day %s %w", date, ErrNotFound)
	}
	return day, nil
}

func (s *MemoryStore) GetAllDays() ([]models.Day, error) {
	days := make([]models.Day, 0, len(s.days))
	for _, d := range s.days {
		days = append(days, d)
	}
	return days, nil
}

func (s *MemoryStore) SaveDay(day models.Day) error {
	s.days[day.Date] = day
	return nil
}

func (s *MemoryStore) GetHabits() ([]models.Habit, error) {
	habits := make([]models.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		habits = append(habits, h)
	}
	return habits, nil
}

func (s *MemoryStore) GetHabit(id string) (models.Habit, error) {
	h, ok := s.habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %s %w", id, ErrNotFound)
	}
	return h, nil
}

func (s *MemoryStore) SaveHabit(habit models.Habit) error {
	s.habits[habit.ID] = habit
	return nil
}

func (s *MemoryStore) DeleteHabit(id string) error {
	if _, ok := s.habits[id]; !ok {
		return fmt.Errorf("habit %s %w", id, ErrNotFound)
	}
	delete(s.habits, id)
	return nil
}

func (s *MemoryStore) GetHabitLogs(date string) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	for _, l := range s.habitLogs {
		if l.DayDate == date {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (s *MemoryStore) AppendHabitLog(log models.HabitLog) error {
	s.habitLogs = append(s.habitLogs, log)
	return nil
}

func (s *MemoryStore) GetRewards() ([]models.StoreReward, error) {
	rewards := make([]models.StoreReward, 0, len(s.rewards))
	for _, r := range s.rewards {
		rewards = append(rewards, r)
	}
	return rewards, nil
}

func (s *MemoryStore) GetReward(id string) (models.StoreReward, error) {
	r, ok := s.rewards[id]
	if !ok {
		return models.StoreReward{}, fmt.Errorf("reward %s %w", id, ErrNotFound)
	}
	return r, nil
}

func (s *MemoryStore) SaveReward(reward models.StoreReward) error {
	s.rewards[reward.ID] = reward
	return nil
}

func (s *MemoryStore) DeleteReward(id string) error {
	if _, ok := s.rewards[id]; !ok {
		return fmt.Errorf("reward %s %w", id, ErrNotFound)
	}
	delete(s.rewards, id)
	return nil
}

func (s *MemoryStore) GetRedemptions() ([]models.RedeemedReward, error) {
	return append([]models.RedeemedReward(nil), s.redemptions...), nil
}

func (s *MemoryStore) AppendRedemption(r models.RedeemedReward) error {
	s.redemptions = append(s.redemptions, r)
	return nil
}

func (s *MemoryStore) GetEvents() ([]models.Event, error) {
	return append([]models.Event(nil), s.events...), nil
}

func (s *MemoryStore) AppendEvent(event models.Event) error {
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
