package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dayquest/internal/models"
)

// document is the on-disk shape of a JSON store: one file, one character.
type document struct {
	Version     int                           `json:"version"`
	Settings    Settings                      `json:"settings"`
	User        *models.User                  `json:"user,omitempty"`
	Days        map[string]models.Day         `json:"days"`
	Habits      map[string]models.Habit       `json:"habits"`
	HabitLogs   []models.HabitLog             `json:"habit_logs"`
	Rewards     map[string]models.StoreReward `json:"rewards"`
	Redemptions []models.RedeemedReward       `json:"redemptions"`
	Events      []models.Event                `json:"events"`
}

type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version:  1,
		Settings: DefaultSettings(),
		Days:     make(map[string]models.Day),
		Habits:   make(map[string]models.Habit),
		Rewards:  make(map[string]models.StoreReward),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'dayquest init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.doc.Days == nil {
		s.doc.Days = make(map[string]models.Day)
	}
	if s.doc.Habits == nil {
		s.doc.Habits = make(map[string]models.Habit)
	}
	if s.doc.Rewards == nil {
		s.doc.Rewards = make(map[string]models.StoreReward)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if err := s.loaded(); err != nil {
		return Settings{}, err
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) GetUser() (models.User, error) {
	if err := s.loaded(); err != nil {
		return models.User{}, err
	}
	if s.doc.User == nil {
		return models.User{}, fmt.Errorf("character %w", ErrNotFound)
	}
	return *s.doc.User, nil
}

func (s *JSONStore) SaveUser(user models.User) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.User = &user
	return s.save()
}

func (s *JSONStore) DeleteUser() error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.User = nil
	s.doc.Days = make(map[string]models.Day)
	s.doc.Habits = make(map[string]models.Habit)
	s.doc.HabitLogs = nil
	s.doc.Rewards = make(map[string]models.StoreReward)
	s.doc.Redemptions = nil
	s.doc.Events = nil
	return s.save()
}

func (s *JSONStore) GetDay(date string) (models.Day, error) {
	if err := s.loaded(); err != nil {
		return models.Day{}, err
	}
	day, ok := s.doc.Days[date]
	if !ok {
		return models.Day{}, fmt.Errorf("day %s %w", date, ErrNotFound)
	}
	return day, nil
}

func (s *JSONStore) GetAllDays() ([]models.Day, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	days := make([]models.Day, 0, len(s.doc.Days))
	for _, d := range s.doc.Days {
		days = append(days, d)
	}
	return days, nil
}

func (s *JSONStore) SaveDay(day models.Day) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Days[day.Date] = day
	return s.save()
}

func (s *JSONStore) GetHabits() ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	habits := make([]models.Habit, 0, len(s.doc.Habits))
	for _, h := range s.doc.Habits {
		habits = append(habits, h)
	}
	return habits, nil
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}
	h, ok := s.doc.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %s %w", id, ErrNotFound)
	}
	return h, nil
}

func (s *JSONStore) SaveHabit(habit models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) DeleteHabit(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Habits[id]; !ok {
		return fmt.Errorf("habit %s %w", id, ErrNotFound)
	}
	delete(s.doc.Habits, id)
	return s.save()
}

func (s *JSONStore) GetHabitLogs(date string) ([]models.HabitLog, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var logs []models.HabitLog
	for _, l := range s.doc.HabitLogs {
		if l.DayDate == date {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (s *JSONStore) AppendHabitLog(log models.HabitLog) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.HabitLogs = append(s.doc.HabitLogs, log)
	return s.save()
}

func (s *JSONStore) GetRewards() ([]models.StoreReward, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	rewards := make([]models.StoreReward, 0, len(s.doc.Rewards))
	for _, r := range s.doc.Rewards {
		rewards = append(rewards, r)
	}
	return rewards, nil
}

func (s *JSONStore) GetReward(id string) (models.StoreReward, error) {
	if err := s.loaded(); err != nil {
		return models.StoreReward{}, err
	}
	r, ok := s.doc.Rewards[id]
	if !ok {
		return models.StoreReward{}, fmt.Errorf("reward %s %w", id, ErrNotFound)
	}
	return r, nil
}

func (s *JSONStore) SaveReward(reward models.StoreReward) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Rewards[reward.ID] = reward
	return s.save()
}

func (s *JSONStore) DeleteReward(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Rewards[id]; !ok {
		return fmt.Errorf("reward %s %w", id, ErrNotFound)
	}
	delete(s.doc.Rewards, id)
	return s.save()
}

func (s *JSONStore) GetRedemptions() ([]models.RedeemedReward, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.RedeemedReward(nil), s.doc.Redemptions...), nil
}

func (s *JSONStore) AppendRedemption(r models.RedeemedReward) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Redemptions = append(s.doc.Redemptions, r)
	return s.save()
}

func (s *JSONStore) GetEvents() ([]models.Event, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.Event(nil), s.doc.Events...), nil
}

func (s *JSONStore) AppendEvent(event models.Event) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Events = append(s.doc.Events, event)
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note: a store is not safe for concurrent use by multiple
// processes sharing the same path; the application assumes one active
// session per store.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
