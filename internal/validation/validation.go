// Package validation runs consistency checks over stored game data. It never
// mutates anything; callers decide whether a conflict is fatal.
package validation

import (
	"fmt"

	"github.com/julianstephens/dayquest/internal/models"
)

type ConflictType string

const (
	ConflictDuplicateDayDate   ConflictType = "duplicate_day_date"
	ConflictDuplicateMissionID ConflictType = "duplicate_mission_id"
	ConflictClosedDayNoStamp   ConflictType = "closed_day_no_timestamp"
	ConflictNegativeLedger     ConflictType = "negative_ledger"
	ConflictInvalidMissionType ConflictType = "invalid_mission_type"
	ConflictNonPositiveCost    ConflictType = "non_positive_cost"
)

type Conflict struct {
	Type    ConflictType
	Message string
}

type ValidationResult struct {
	Conflicts []Conflict
}

func (r ValidationResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func (r *ValidationResult) add(t ConflictType, format string, args ...any) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Type:    t,
		Message: fmt.Sprintf(format, args...),
	})
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateDays checks the session history: one day per date, one owner per
// mission ID, closed days stamped, mission types from the known set.
func (v *Validator) ValidateDays(days []models.Day) ValidationResult {
	var result ValidationResult

	dates := make(map[string]bool)
	missionIDs := make(map[string]bool)

	for _, day := range days {
		if dates[day.Date] {
			result.add(ConflictDuplicateDayDate, "duplicate day for date %s", day.Date)
		}
		dates[day.Date] = true

		if day.Status == models.DayStatusClosed && day.ClosedAt == nil {
			result.add(ConflictClosedDayNoStamp, "closed day %s has no closed timestamp", day.Date)
		}

		for _, m := range day.Missions {
			if missionIDs[m.ID] {
				result.add(ConflictDuplicateMissionID, "mission %s appears in more than one day", m.ID)
			}
			missionIDs[m.ID] = true

			switch m.Type {
			case models.MissionMain, models.MissionSecondary, models.MissionBonus:
			default:
				result.add(ConflictInvalidMissionType, "mission %s has unknown type %q", m.ID, m.Type)
			}
		}
	}

	return result
}

// ValidateLedger checks the character's derived totals.
func (v *Validator) ValidateLedger(user models.User) ValidationResult {
	var result ValidationResult
	if user.TotalXP < 0 || user.Coins < 0 {
		result.add(ConflictNegativeLedger, "character ledger is negative: xp=%d coins=%d", user.TotalXP, user.Coins)
	}
	return result
}

// ValidateCatalog checks the reward store catalog.
func (v *Validator) ValidateCatalog(rewards []models.StoreReward) ValidationResult {
	var result ValidationResult
	for _, r := range rewards {
		if r.Cost <= 0 {
			result.add(ConflictNonPositiveCost, "reward %q has non-positive cost %d", r.Name, r.Cost)
		}
	}
	return result
}
