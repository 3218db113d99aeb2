package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/julianstephens/dayquest/internal/models"
	_ "modernc.org/sqlite"
)

// schemaVersions holds the DDL for each schema revision; the store applies
// every statement past the database's PRAGMA user_version on open.
var schemaVersions = []string{
	`
	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS character (
		id                    TEXT PRIMARY KEY,
		name                  TEXT NOT NULL,
		total_xp              INTEGER NOT NULL DEFAULT 0,
		coins                 INTEGER NOT NULL DEFAULT 0,
		forgiveness_available INTEGER NOT NULL DEFAULT 0,
		slot_unlocks          TEXT NOT NULL DEFAULT '[]',
		loot_boxes            TEXT NOT NULL DEFAULT '[]',
		created_at            TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS days (
		date           TEXT PRIMARY KEY,
		id             TEXT NOT NULL,
		status         TEXT NOT NULL,
		xp_gained      INTEGER NOT NULL DEFAULT 0,
		xp_lost        INTEGER NOT NULL DEFAULT 0,
		coins_earned   INTEGER NOT NULL DEFAULT 0,
		is_forgiveness INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		closed_at      TEXT
	);
	CREATE TABLE IF NOT EXISTS missions (
		id          TEXT PRIMARY KEY,
		day_date    TEXT NOT NULL,
		type        TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT,
		status      TEXT NOT NULL,
		xp_reward   INTEGER NOT NULL,
		coin_reward INTEGER NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS habits (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		type       TEXT NOT NULL,
		xp_value   INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS habit_logs (
		id         TEXT PRIMARY KEY,
		day_date   TEXT NOT NULL,
		habit_id   TEXT,
		habit_name TEXT NOT NULL,
		habit_type TEXT NOT NULL,
		xp_value   INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS store_rewards (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		cost        INTEGER NOT NULL,
		available   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS redeemed_rewards (
		id          TEXT PRIMARY KEY,
		reward_id   TEXT,
		reward_name TEXT NOT NULL,
		reward_cost INTEGER NOT NULL,
		redeemed_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		timestamp   TEXT NOT NULL,
		type        TEXT NOT NULL,
		details     TEXT NOT NULL,
		xp_change   INTEGER NOT NULL DEFAULT 0,
		coin_change INTEGER NOT NULL DEFAULT 0
	);
	`,
}

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'dayquest init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.migrate()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// migrate applies every schema revision past the database's user_version.
func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version > len(schemaVersions) {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", version, len(schemaVersions))
	}

	for v := version; v < len(schemaVersions); v++ {
		if _, err := s.db.Exec(schemaVersions[v]); err != nil {
			return fmt.Errorf("failed to apply schema version %d: %w", v+1, err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", v+1, err)
		}
	}

	return nil
}

// SchemaVersion reports current vs supported schema revision (for doctor).
func (s *SQLiteStore) SchemaVersion() (current, supported int, err error) {
	if s.db == nil {
		return 0, 0, fmt.Errorf("database not loaded")
	}
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return 0, 0, err
	}
	return current, len(schemaVersions), nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "loot_boxes":
			settings.LootBoxes = value == "true"
		case "chart_days":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing chart_days: %w", err)
			}
			settings.ChartDays = n
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings %w", ErrNotFound)
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("loot_boxes", strconv.FormatBool(settings.LootBoxes)); err != nil {
		return err
	}
	if _, err := stmt.Exec("chart_days", strconv.Itoa(settings.ChartDays)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetUser() (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, name, total_xp, coins, forgiveness_available, slot_unlocks, loot_boxes, created_at
		FROM character LIMIT 1`)

	var u models.User
	var forgiveness bool
	var unlocksJSON, lootJSON, createdAt string

	err := row.Scan(&u.ID, &u.Name, &u.TotalXP, &u.Coins, &forgiveness, &unlocksJSON, &lootJSON, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("character %w", ErrNotFound)
		}
		return models.User{}, err
	}

	u.ForgivenessAvailable = forgiveness
	if err := json.Unmarshal([]byte(unlocksJSON), &u.SlotUnlocks); err != nil {
		return models.User{}, fmt.Errorf("failed to parse slot unlocks: %w", err)
	}
	if err := json.Unmarshal([]byte(lootJSON), &u.LootBoxes); err != nil {
		return models.User{}, fmt.Errorf("failed to parse loot boxes: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return u, nil
}

func (s *SQLiteStore) SaveUser(user models.User) error {
	unlocksJSON, err := json.Marshal(user.SlotUnlocks)
	if err != nil {
		return fmt.Errorf("failed to marshal slot unlocks: %w", err)
	}
	lootJSON, err := json.Marshal(user.LootBoxes)
	if err != nil {
		return fmt.Errorf("failed to marshal loot boxes: %w", err)
	}
	if user.SlotUnlocks == nil {
		unlocksJSON = []byte("[]")
	}
	if user.LootBoxes == nil {
		lootJSON = []byte("[]")
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO character (id, name, total_xp, coins, forgiveness_available, slot_unlocks, loot_boxes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.TotalXP, user.Coins, user.ForgivenessAvailable,
		string(unlocksJSON), string(lootJSON), user.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) DeleteUser() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"character", "days", "missions", "habits", "habit_logs", "store_rewards", "redeemed_rewards", "events"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetDay(date string) (models.Day, error) {
	row := s.db.QueryRow(`
		SELECT date, id, status, xp_gained, xp_lost, coins_earned, is_forgiveness, created_at, closed_at
		FROM days WHERE date = ?`, date)

	day, err := scanDay(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Day{}, fmt.Errorf("day %s %w", date, ErrNotFound)
		}
		return models.Day{}, err
	}

	missions, err := s.getMissions(date)
	if err != nil {
		return models.Day{}, err
	}
	day.Missions = missions

	return day, nil
}

func (s *SQLiteStore) GetAllDays() ([]models.Day, error) {
	rows, err := s.db.Query(`
		SELECT date, id, status, xp_gained, xp_lost, coins_earned, is_forgiveness, created_at, closed_at
		FROM days ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.Day
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range days {
		missions, err := s.getMissions(days[i].Date)
		if err != nil {
			return nil, err
		}
		days[i].Missions = missions
	}

	return days, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDay(row rowScanner) (models.Day, error) {
	var d models.Day
	var forgiveness bool
	var createdAt string
	var closedAt sql.NullString

	err := row.Scan(&d.Date, &d.ID, &d.Status, &d.XPGained, &d.XPLost, &d.CoinsEarned, &forgiveness, &createdAt, &closedAt)
	if err != nil {
		return models.Day{}, err
	}

	d.IsForgiveness = forgiveness
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if closedAt.Valid {
		t, err := time.Parse(time.RFC3339, closedAt.String)
		if err == nil {
			d.ClosedAt = &t
		}
	}

	return d, nil
}

func (s *SQLiteStore) getMissions(date string) ([]models.Mission, error) {
	rows, err := s.db.Query(`
		SELECT id, type, title, description, status, xp_reward, coin_reward, created_at
		FROM missions WHERE day_date = ? ORDER BY created_at, id`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []models.Mission
	for rows.Next() {
		var m models.Mission
		var description sql.NullString
		var createdAt string
		if err := rows.Scan(&m.ID, &m.Type, &m.Title, &description, &m.Status, &m.XPReward, &m.CoinReward, &createdAt); err != nil {
			return nil, err
		}
		m.Description = description.String
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		missions = append(missions, m)
	}

	return missions, rows.Err()
}

func (s *SQLiteStore) SaveDay(day models.Day) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var closedAt sql.NullString
	if day.ClosedAt != nil {
		closedAt = sql.NullString{String: day.ClosedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO days (date, id, status, xp_gained, xp_lost, coins_earned, is_forgiveness, created_at, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		day.Date, day.ID, day.Status, day.XPGained, day.XPLost, day.CoinsEarned,
		day.IsForgiveness, day.CreatedAt.UTC().Format(time.RFC3339), closedAt,
	)
	if err != nil {
		return err
	}

	// Replace the day's missions wholesale; the Day value is authoritative.
	if _, err := tx.Exec("DELETE FROM missions WHERE day_date = ?", day.Date); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO missions (id, day_date, type, title, description, status, xp_reward, coin_reward, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range day.Missions {
		var description sql.NullString
		if m.Description != "" {
			description = sql.NullString{String: m.Description, Valid: true}
		}
		_, err = stmt.Exec(m.ID, day.Date, m.Type, m.Title, description, m.Status, m.XPReward, m.CoinReward, m.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT id, name, type, xp_value, created_at FROM habits ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		var createdAt string
		if err := rows.Scan(&h.ID, &h.Name, &h.Type, &h.XPValue, &createdAt); err != nil {
			return nil, err
		}
		h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT id, name, type, xp_value, created_at FROM habits WHERE id = ?", id)

	var h models.Habit
	var createdAt string
	if err := row.Scan(&h.ID, &h.Name, &h.Type, &h.XPValue, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return models.Habit{}, fmt.Errorf("habit %s %w", id, ErrNotFound)
		}
		return models.Habit{}, err
	}
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return h, nil
}

func (s *SQLiteStore) SaveHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO habits (id, name, type, xp_value, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Type, habit.XPValue, habit.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	res, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("habit %s %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) GetHabitLogs(date string) ([]models.HabitLog, error) {
	rows, err := s.db.Query(`
		SELECT id, day_date, habit_id, habit_name, habit_type, xp_value, created_at
		FROM habit_logs WHERE day_date = ? ORDER BY created_at, id`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.HabitLog
	for rows.Next() {
		var l models.HabitLog
		var habitID sql.NullString
		var createdAt string
		if err := rows.Scan(&l.ID, &l.DayDate, &habitID, &l.HabitName, &l.HabitType, &l.XPValue, &createdAt); err != nil {
			return nil, err
		}
		l.HabitID = habitID.String
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

func (s *SQLiteStore) AppendHabitLog(log models.HabitLog) error {
	var habitID sql.NullString
	if log.HabitID != "" {
		habitID = sql.NullString{String: log.HabitID, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habit_logs (id, day_date, habit_id, habit_name, habit_type, xp_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.DayDate, habitID, log.HabitName, log.HabitType, log.XPValue, log.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) GetRewards() ([]models.StoreReward, error) {
	rows, err := s.db.Query("SELECT id, name, description, cost, available, created_at FROM store_rewards ORDER BY cost, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []models.StoreReward
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, r)
	}

	return rewards, rows.Err()
}

func (s *SQLiteStore) GetReward(id string) (models.StoreReward, error) {
	row := s.db.QueryRow("SELECT id, name, description, cost, available, created_at FROM store_rewards WHERE id = ?", id)

	r, err := scanReward(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.StoreReward{}, fmt.Errorf("reward %s %w", id, ErrNotFound)
		}
		return models.StoreReward{}, err
	}

	return r, nil
}

func scanReward(row rowScanner) (models.StoreReward, error) {
	var r models.StoreReward
	var description sql.NullString
	var available bool
	var createdAt string

	if err := row.Scan(&r.ID, &r.Name, &description, &r.Cost, &available, &createdAt); err != nil {
		return models.StoreReward{}, err
	}

	r.Description = description.String
	r.Available = available
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return r, nil
}

func (s *SQLiteStore) SaveReward(reward models.StoreReward) error {
	var description sql.NullString
	if reward.Description != "" {
		description = sql.NullString{String: reward.Description, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO store_rewards (id, name, description, cost, available, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		reward.ID, reward.Name, description, reward.Cost, reward.Available, reward.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) DeleteReward(id string) error {
	res, err := s.db.Exec("DELETE FROM store_rewards WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("reward %s %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) GetRedemptions() ([]models.RedeemedReward, error) {
	rows, err := s.db.Query("SELECT id, reward_id, reward_name, reward_cost, redeemed_at FROM redeemed_rewards ORDER BY redeemed_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var redemptions []models.RedeemedReward
	for rows.Next() {
		var r models.RedeemedReward
		var rewardID sql.NullString
		var redeemedAt string
		if err := rows.Scan(&r.ID, &rewardID, &r.RewardName, &r.RewardCost, &redeemedAt); err != nil {
			return nil, err
		}
		r.RewardID = rewardID.String
		r.RedeemedAt, _ = time.Parse(time.RFC3339, redeemedAt)
		redemptions = append(redemptions, r)
	}

	return redemptions, rows.Err()
}

func (s *SQLiteStore) AppendRedemption(r models.RedeemedReward) error {
	var rewardID sql.NullString
	if r.RewardID != "" {
		rewardID = sql.NullString{String: r.RewardID, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO redeemed_rewards (id, reward_id, reward_name, reward_cost, redeemed_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, rewardID, r.RewardName, r.RewardCost, r.RedeemedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) GetEvents() ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, timestamp, type, details, xp_change, coin_change FROM events ORDER BY timestamp, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		var timestamp string
		if err := rows.Scan(&e.ID, &timestamp, &e.Type, &e.Details, &e.XPChange, &e.CoinChange); err != nil {
			return nil, err
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
		events = append(events, e)
	}

	return events, rows.Err()
}

func (s *SQLiteStore) AppendEvent(event models.Event) error {
	_, err := s.db.Exec(`
		INSERT INTO events (id, timestamp, type, details, xp_change, coin_change)
		VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.Timestamp.UTC().Format(time.RFC3339), event.Type, event.Details, event.XPChange, event.CoinChange,
	)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
