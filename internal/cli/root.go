package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayquest/internal/backup"
	"github.com/julianstephens/dayquest/internal/game"
	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/progression"
	"github.com/julianstephens/dayquest/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Engine *game.Engine
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// resolveDate turns "today" into the local wall-clock date, otherwise
// validates YYYY-MM-DD.
func resolveDate(s string) (string, error) {
	if s == "today" || s == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return s, nil
}

func parseMissionType(s string) (models.MissionType, error) {
	switch models.MissionType(s) {
	case models.MissionMain, models.MissionSecondary, models.MissionBonus:
		return models.MissionType(s), nil
	default:
		return "", fmt.Errorf("invalid mission type %q, use main, secondary, or bonus", s)
	}
}

func parseHabitType(s string) (models.HabitType, error) {
	switch models.HabitType(s) {
	case models.HabitPositive, models.HabitNegative:
		return models.HabitType(s), nil
	default:
		return "", fmt.Errorf("invalid habit type %q, use positive or negative", s)
	}
}

// formatLevel renders "Level 3 (50/300 XP)" from a total XP figure.
func formatLevel(totalXP int) string {
	level := progression.LevelForXP(totalXP)
	p := progression.ProgressInLevel(totalXP)
	return fmt.Sprintf("Level %d (%d/%d XP)", level, p.Current, p.Needed)
}

func formatMissionStatus(status models.MissionStatus) string {
	switch status {
	case models.MissionStatusPending:
		return "[pending]"
	case models.MissionStatusCompleted:
		return "[completed]"
	case models.MissionStatusFailed:
		return "[failed]"
	default:
		return "[unknown]"
	}
}
