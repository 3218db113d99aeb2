package game

import (
	"errors"
	"testing"

	"github.com/julianstephens/dayquest/internal/models"
)

const testDate = "2026-03-01"

func TestStartDay_NoUser(t *testing.T) {
	e, _ := newTestEngine(t)

	if _, err := e.StartDay(testDate, false); !errors.Is(err, ErrNoUser) {
		t.Errorf("StartDay without character = %v, want ErrNoUser", err)
	}
}

func TestStartDay_Idempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)

	first, err := e.StartDay(testDate, false)
	if err != nil {
		t.Fatalf("StartDay failed: %v", err)
	}

	// A redundant start returns the existing day unchanged, even with a
	// different forgive argument.
	second, err := e.StartDay(testDate, true)
	if err != nil {
		t.Fatalf("redundant StartDay failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("redundant start returned a different day: %s vs %s", second.ID, first.ID)
	}
	if second.IsForgiveness {
		t.Error("redundant start must not flip the forgiveness flag")
	}

	events := eventsOfType(t, e, models.EventDayStarted)
	if len(events) != 1 {
		t.Errorf("day_started events = %d, want 1", len(events))
	}
}

func TestStartDay_ForgivenessRequiresToken(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)

	if _, err := e.StartDay(testDate, true); !errors.Is(err, ErrForgivenessUnavailable) {
		t.Errorf("StartDay(forgive) without token = %v, want ErrForgivenessUnavailable", err)
	}
}

func TestStartDay_ForgivenessConsumesToken(t *testing.T) {
	e, store := newTestEngine(t)
	user := mustCreateUser(t, e)

	user.ForgivenessAvailable = true
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	day, err := e.StartDay(testDate, true)
	if err != nil {
		t.Fatalf("StartDay(forgive) failed: %v", err)
	}
	if !day.IsForgiveness {
		t.Error("day should be marked forgiveness")
	}

	got, err := e.User()
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	if got.ForgivenessAvailable {
		t.Error("token should be consumed")
	}

	if n := len(eventsOfType(t, e, models.EventForgivenessUsed)); n != 1 {
		t.Errorf("forgiveness_used events = %d, want 1", n)
	}
}

func TestAddMission_NoDay(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)

	if _, err := e.AddMission(testDate, models.MissionMain, "Write report", ""); !errors.Is(err, ErrNoOpenDay) {
		t.Errorf("AddMission without day = %v, want ErrNoOpenDay", err)
	}
}

func TestAddMission_ClosedDay(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	if _, err := e.CloseDay(testDate); err != nil {
		t.Fatalf("CloseDay failed: %v", err)
	}
	if _, err := e.AddMission(testDate, models.MissionMain, "Write report", ""); !errors.Is(err, ErrDayClosed) {
		t.Errorf("AddMission on closed day = %v, want ErrDayClosed", err)
	}
}

func TestAddMission_SlotCaps(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	// Base capacity: 1 main, 1 secondary, 1 bonus.
	for _, mType := range []models.MissionType{models.MissionMain, models.MissionSecondary, models.MissionBonus} {
		if _, err := e.AddMission(testDate, mType, "first "+string(mType), ""); err != nil {
			t.Fatalf("AddMission(%s) failed: %v", mType, err)
		}
		if _, err := e.AddMission(testDate, mType, "second "+string(mType), ""); !errors.Is(err, ErrSlotCapReached) {
			t.Errorf("over-cap AddMission(%s) = %v, want ErrSlotCapReached", mType, err)
		}
	}
}

func TestAddMission_RewardsFixedByType(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	cases := []struct {
		mType models.MissionType
		xp    int
		coins int
	}{
		{models.MissionMain, 30, 15},
		{models.MissionSecondary, 20, 10},
		{models.MissionBonus, 10, 5},
	}
	for _, c := range cases {
		m, err := e.AddMission(testDate, c.mType, string(c.mType), "")
		if err != nil {
			t.Fatalf("AddMission(%s) failed: %v", c.mType, err)
		}
		if m.XPReward != c.xp || m.CoinReward != c.coins {
			t.Errorf("%s rewards = %d XP / %d coins, want %d / %d", c.mType, m.XPReward, m.CoinReward, c.xp, c.coins)
		}
		if m.Status != models.MissionStatusPending {
			t.Errorf("new mission status = %s, want pending", m.Status)
		}
	}
}

func TestCompleteMission_Credits(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	m, err := e.AddMission(testDate, models.MissionMain, "Write report", "")
	if err != nil {
		t.Fatalf("AddMission failed: %v", err)
	}

	day, err := e.CompleteMission(testDate, m.ID)
	if err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}
	if day.XPGained != 30 || day.CoinsEarned != 15 {
		t.Errorf("day totals = %d XP / %d coins, want 30 / 15", day.XPGained, day.CoinsEarned)
	}

	user, err := e.User()
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	if user.TotalXP != 30 || user.Coins != 15 {
		t.Errorf("ledger = %d XP / %d coins, want 30 / 15", user.TotalXP, user.Coins)
	}

	events := eventsOfType(t, e, models.EventMissionCompleted)
	if len(events) != 1 {
		t.Fatalf("mission_completed events = %d, want 1", len(events))
	}
	if events[0].XPChange != 30 || events[0].CoinChange != 15 {
		t.Errorf("event deltas = %d / %d, want 30 / 15", events[0].XPChange, events[0].CoinChange)
	}
}

func TestFailMission_NoPenalty(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	m, err := e.AddMission(testDate, models.MissionMain, "Write report", "")
	if err != nil {
		t.Fatalf("AddMission failed: %v", err)
	}

	day, err := e.FailMission(testDate, m.ID)
	if err != nil {
		t.Fatalf("FailMission failed: %v", err)
	}
	if day.XPGained != 0 || day.XPLost != 0 || day.CoinsEarned != 0 {
		t.Errorf("failed mission must not move day totals, got %+v", day)
	}

	events := eventsOfType(t, e, models.EventMissionFailed)
	if len(events) != 1 || events[0].XPChange != 0 || events[0].CoinChange != 0 {
		t.Errorf("mission_failed event should carry zero deltas, got %+v", events)
	}
}

func TestSettleMission_Terminal(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	m, err := e.AddMission(testDate, models.MissionMain, "Write report", "")
	if err != nil {
		t.Fatalf("AddMission failed: %v", err)
	}
	if _, err := e.CompleteMission(testDate, m.ID); err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}

	if _, err := e.FailMission(testDate, m.ID); !errors.Is(err, ErrMissionSettled) {
		t.Errorf("settling twice = %v, want ErrMissionSettled", err)
	}
	if _, err := e.CompleteMission(testDate, "no-such-id"); !errors.Is(err, ErrMissionNotFound) {
		t.Errorf("unknown mission = %v, want ErrMissionNotFound", err)
	}
}

func TestForgivenessDay_NoDeltas(t *testing.T) {
	e, store := newTestEngine(t)
	user := mustCreateUser(t, e)
	user.ForgivenessAvailable = true
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	if _, err := e.StartDay(testDate, true); err != nil {
		t.Fatalf("StartDay(forgive) failed: %v", err)
	}

	m, err := e.AddMission(testDate, models.MissionMain, "Write report", "")
	if err != nil {
		t.Fatalf("AddMission failed: %v", err)
	}

	day, err := e.CompleteMission(testDate, m.ID)
	if err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}
	if day.MissionByID(m.ID).Status != models.MissionStatusCompleted {
		t.Error("status transition should still record on a forgiveness day")
	}
	if day.XPGained != 0 || day.CoinsEarned != 0 {
		t.Errorf("forgiveness day must not accrue, got %d XP / %d coins", day.XPGained, day.CoinsEarned)
	}

	got, err := e.User()
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	if got.TotalXP != 0 || got.Coins != 0 {
		t.Errorf("ledger moved on a forgiveness day: %d XP / %d coins", got.TotalXP, got.Coins)
	}

	// Habit triggers are no-ops on forgiveness days.
	applied, err := e.RecordTrigger(testDate, "", "Junk food", models.HabitNegative, 20)
	if err != nil {
		t.Fatalf("RecordTrigger failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("applied = %d on forgiveness day, want 0", applied)
	}
}

func TestRecordTrigger_PositiveTruncation(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	// Bring the day to 40 gained XP via missions (30 + 10).
	main, _ := e.AddMission(testDate, models.MissionMain, "main", "")
	bonus, _ := e.AddMission(testDate, models.MissionBonus, "bonus", "")
	if _, err := e.CompleteMission(testDate, main.ID); err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}
	if _, err := e.CompleteMission(testDate, bonus.ID); err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}

	// 80 requested against 60 of headroom credits exactly 60.
	applied, err := e.RecordTrigger(testDate, "", "Deep work", models.HabitPositive, 80)
	if err != nil {
		t.Fatalf("RecordTrigger failed: %v", err)
	}
	if applied != 60 {
		t.Errorf("applied = %d, want 60", applied)
	}

	events := eventsOfType(t, e, models.EventPositiveHabitCompleted)
	if len(events) != 1 || events[0].XPChange != 60 {
		t.Errorf("habit event should carry the truncated delta, got %+v", events)
	}
}

func TestRecordTrigger_NoHeadroomIsSilent(t *testing.T) {
	e, store := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	if a, err := e.RecordTrigger(testDate, "", "Deep work", models.HabitPositive, 100); err != nil || a != 100 {
		t.Fatalf("RecordTrigger = (%d, %v), want (100, nil)", a, err)
	}

	applied, err := e.RecordTrigger(testDate, "", "Deep work", models.HabitPositive, 10)
	if err != nil {
		t.Fatalf("RecordTrigger at cap failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("applied = %d past the cap, want 0", applied)
	}

	// A zero-credit trigger leaves no trace.
	if n := len(eventsOfType(t, e, models.EventPositiveHabitCompleted)); n != 1 {
		t.Errorf("habit events = %d, want 1", n)
	}
	logs, err := store.GetHabitLogs(testDate)
	if err != nil {
		t.Fatalf("GetHabitLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("habit logs = %d, want 1", len(logs))
	}
}

func TestRecordTrigger_NegativeCapAndFloor(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	applied, err := e.RecordTrigger(testDate, "", "Doomscrolling", models.HabitNegative, 100)
	if err != nil {
		t.Fatalf("RecordTrigger failed: %v", err)
	}
	if applied != 70 {
		t.Errorf("applied = %d, want loss cap of 70", applied)
	}

	user, err := e.User()
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	if user.TotalXP != 0 {
		t.Errorf("totalXP = %d, want floor of 0", user.TotalXP)
	}

	events := eventsOfType(t, e, models.EventNegativeHabitTriggered)
	if len(events) != 1 || events[0].XPChange != -70 {
		t.Errorf("negative habit event should carry -70, got %+v", events)
	}
}

func TestRecordHabit_UsesDefinition(t *testing.T) {
	e, store := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	habit, err := e.AddHabit("Meditate", models.HabitPositive, 15)
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	applied, err := e.RecordHabit(testDate, habit.ID)
	if err != nil {
		t.Fatalf("RecordHabit failed: %v", err)
	}
	if applied != 15 {
		t.Errorf("applied = %d, want 15", applied)
	}

	logs, err := store.GetHabitLogs(testDate)
	if err != nil {
		t.Fatalf("GetHabitLogs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].HabitName != "Meditate" || logs[0].XPValue != 15 {
		t.Errorf("unexpected habit log: %+v", logs)
	}
}

func TestCloseDay(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)
	mustStartDay(t, e)

	day, err := e.CloseDay(testDate)
	if err != nil {
		t.Fatalf("CloseDay failed: %v", err)
	}
	if day.Status != models.DayStatusClosed || day.ClosedAt == nil {
		t.Errorf("day not closed: %+v", day)
	}

	if _, err := e.CloseDay(testDate); !errors.Is(err, ErrDayClosed) {
		t.Errorf("closing twice = %v, want ErrDayClosed", err)
	}
	if n := len(eventsOfType(t, e, models.EventDayClosed)); n != 1 {
		t.Errorf("day_closed events = %d, want 1", n)
	}
}

func mustCreateUser(t *testing.T, e *Engine) models.User {
	t.Helper()
	user, err := e.CreateUser("Ada")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func mustStartDay(t *testing.T, e *Engine) models.Day {
	t.Helper()
	day, err := e.StartDay(testDate, false)
	if err != nil {
		t.Fatalf("StartDay failed: %v", err)
	}
	return day
}

func eventsOfType(t *testing.T, e *Engine, et models.EventType) []models.Event {
	t.Helper()
	events, err := e.EventsByType(et)
	if err != nil {
		t.Fatalf("EventsByType(%s) failed: %v", et, err)
	}
	return events
}
