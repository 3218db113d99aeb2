package validation

import (
	"testing"
	"time"

	"github.com/julianstephens/dayquest/internal/models"
)

func TestValidateDays_DuplicateDate(t *testing.T) {
	validator := New()

	days := []models.Day{
		{ID: "1", Date: "2026-03-01", Status: models.DayStatusOpen},
		{ID: "2", Date: "2026-03-02", Status: models.DayStatusOpen},
		{ID: "3", Date: "2026-03-01", Status: models.DayStatusOpen},
	}

	result := validator.ValidateDays(days)

	if !result.HasConflicts() {
		t.Fatal("expected to detect duplicate day dates")
	}

	found := false
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictDuplicateDayDate {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected ConflictDuplicateDayDate conflict type")
	}
}

func TestValidateDays_DuplicateMissionID(t *testing.T) {
	validator := New()

	days := []models.Day{
		{ID: "1", Date: "2026-03-01", Status: models.DayStatusOpen, Missions: []models.Mission{
			{ID: "m1", Type: models.MissionMain, Status: models.MissionStatusPending},
		}},
		{ID: "2", Date: "2026-03-02", Status: models.DayStatusOpen, Missions: []models.Mission{
			{ID: "m1", Type: models.MissionMain, Status: models.MissionStatusPending},
		}},
	}

	result := validator.ValidateDays(days)

	found := false
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictDuplicateMissionID {
			found = true
		}
	}
	if !found {
		t.Error("expected ConflictDuplicateMissionID conflict type")
	}
}

func TestValidateDays_ClosedWithoutTimestamp(t *testing.T) {
	validator := New()

	closedAt := time.Now()
	days := []models.Day{
		{ID: "1", Date: "2026-03-01", Status: models.DayStatusClosed, ClosedAt: &closedAt},
		{ID: "2", Date: "2026-03-02", Status: models.DayStatusClosed},
	}

	result := validator.ValidateDays(days)

	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(result.Conflicts))
	}
	if result.Conflicts[0].Type != ConflictClosedDayNoStamp {
		t.Errorf("conflict type = %s, want %s", result.Conflicts[0].Type, ConflictClosedDayNoStamp)
	}
}

func TestValidateDays_UnknownMissionType(t *testing.T) {
	validator := New()

	days := []models.Day{
		{ID: "1", Date: "2026-03-01", Status: models.DayStatusOpen, Missions: []models.Mission{
			{ID: "m1", Type: "side-quest", Status: models.MissionStatusPending},
		}},
	}

	result := validator.ValidateDays(days)

	if !result.HasConflicts() {
		t.Fatal("expected to detect unknown mission type")
	}
	if result.Conflicts[0].Type != ConflictInvalidMissionType {
		t.Errorf("conflict type = %s, want %s", result.Conflicts[0].Type, ConflictInvalidMissionType)
	}
}

func TestValidateDays_Clean(t *testing.T) {
	validator := New()

	closedAt := time.Now()
	days := []models.Day{
		{ID: "1", Date: "2026-03-01", Status: models.DayStatusClosed, ClosedAt: &closedAt, Missions: []models.Mission{
			{ID: "m1", Type: models.MissionMain, Status: models.MissionStatusCompleted},
			{ID: "m2", Type: models.MissionBonus, Status: models.MissionStatusFailed},
		}},
		{ID: "2", Date: "2026-03-02", Status: models.DayStatusOpen},
	}

	if result := validator.ValidateDays(days); result.HasConflicts() {
		t.Errorf("expected no conflicts, got %v", result.Conflicts)
	}
}

func TestValidateLedger(t *testing.T) {
	validator := New()

	if result := validator.ValidateLedger(models.User{TotalXP: 100, Coins: 50}); result.HasConflicts() {
		t.Errorf("expected no conflicts for valid ledger, got %v", result.Conflicts)
	}

	result := validator.ValidateLedger(models.User{TotalXP: -10, Coins: 50})
	if !result.HasConflicts() {
		t.Fatal("expected negative XP to conflict")
	}
	if result.Conflicts[0].Type != ConflictNegativeLedger {
		t.Errorf("conflict type = %s, want %s", result.Conflicts[0].Type, ConflictNegativeLedger)
	}
}

func TestValidateCatalog(t *testing.T) {
	validator := New()

	rewards := []models.StoreReward{
		{ID: "r1", Name: "Rest day", Cost: 50, Available: true},
		{ID: "r2", Name: "Broken", Cost: 0, Available: true},
	}

	result := validator.ValidateCatalog(rewards)

	if len(result.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(result.Conflicts))
	}
	if result.Conflicts[0].Type != ConflictNonPositiveCost {
		t.Errorf("conflict type = %s, want %s", result.Conflicts[0].Type, ConflictNonPositiveCost)
	}
}
