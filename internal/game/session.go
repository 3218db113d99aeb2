package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/progression"
	"github.com/julianstephens/dayquest/internal/storage"
)

// StartDay opens the day for the given date (YYYY-MM-DD). Idempotent per
// date: if a day already exists it is returned unchanged, even when the
// forgive flag differs. Starting with forgive consumes the forgiveness
// token; a forgiveness day records mission and habit activity without any
// XP or coin movement.
func (e *Engine) StartDay(date string, forgive bool) (models.Day, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.getUser()
	if err != nil {
		return models.Day{}, err
	}

	if day, err := e.store.GetDay(date); err == nil {
		return day, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Day{}, err
	}

	if forgive {
		if !user.ForgivenessAvailable {
			return models.Day{}, ErrForgivenessUnavailable
		}
		user.ForgivenessAvailable = false
		if err := e.store.SaveUser(user); err != nil {
			return models.Day{}, fmt.Errorf("failed to save character: %w", err)
		}
		if err := e.logEvent(models.EventForgivenessUsed, fmt.Sprintf("Forgiveness used for %s", date), 0, 0); err != nil {
			return models.Day{}, err
		}
	}

	day := models.Day{
		ID:            uuid.New().String(),
		Date:          date,
		Status:        models.DayStatusOpen,
		Missions:      []models.Mission{},
		IsForgiveness: forgive,
		CreatedAt:     e.now(),
	}
	if err := e.store.SaveDay(day); err != nil {
		return models.Day{}, fmt.Errorf("failed to save day: %w", err)
	}

	if err := e.logEvent(models.EventDayStarted, fmt.Sprintf("Day %s started", date), 0, 0); err != nil {
		return models.Day{}, err
	}

	return day, nil
}

// openDay loads the day for a date and rejects missing or closed ones.
func (e *Engine) openDay(date string) (models.Day, error) {
	day, err := e.store.GetDay(date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Day{}, ErrNoOpenDay
		}
		return models.Day{}, err
	}
	if day.Status == models.DayStatusClosed {
		return models.Day{}, ErrDayClosed
	}
	return day, nil
}

// AddMission adds a pending mission to an open day. Capacity per type: one
// main mission, and secondary/bonus up to the character's unlocked slots.
// Rewards are fixed by type at creation time.
func (e *Engine) AddMission(date string, mType models.MissionType, title, description string) (models.Mission, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.getUser()
	if err != nil {
		return models.Mission{}, err
	}

	day, err := e.openDay(date)
	if err != nil {
		return models.Mission{}, err
	}

	counts := day.CountMissions()
	slots := progression.AvailableSlots(user.SlotUnlocks)
	switch mType {
	case models.MissionMain:
		if counts.Main >= 1 {
			return models.Mission{}, ErrSlotCapReached
		}
	case models.MissionSecondary:
		if counts.Secondary >= slots.Secondary {
			return models.Mission{}, ErrSlotCapReached
		}
	case models.MissionBonus:
		if counts.Bonus >= slots.Bonus {
			return models.Mission{}, ErrSlotCapReached
		}
	default:
		return models.Mission{}, fmt.Errorf("unknown mission type %q", mType)
	}

	xp, coins := missionRewards(mType)
	mission := models.Mission{
		ID:          uuid.New().String(),
		Type:        mType,
		Title:       title,
		Description: description,
		Status:      models.MissionStatusPending,
		XPReward:    xp,
		CoinReward:  coins,
		CreatedAt:   e.now(),
	}

	day.Missions = append(day.Missions, mission)
	if err := e.store.SaveDay(day); err != nil {
		return models.Mission{}, fmt.Errorf("failed to save day: %w", err)
	}

	return mission, nil
}

func missionRewards(mType models.MissionType) (xp, coins int) {
	switch mType {
	case models.MissionMain:
		return constants.MainMissionXP, constants.MainMissionCoins
	case models.MissionSecondary:
		return constants.SecondaryMissionXP, constants.SecondaryMissionCoins
	default:
		return constants.BonusMissionXP, constants.BonusMissionCoins
	}
}

// CompleteMission settles a pending mission as completed and, outside
// forgiveness days, credits its XP and coin rewards to the day and the
// character.
func (e *Engine) CompleteMission(date, missionID string) (models.Day, error) {
	return e.settleMission(date, missionID, models.MissionStatusCompleted)
}

// FailMission settles a pending mission as failed. No penalty applies;
// failing only records the outcome.
func (e *Engine) FailMission(date, missionID string) (models.Day, error) {
	return e.settleMission(date, missionID, models.MissionStatusFailed)
}

func (e *Engine) settleMission(date, missionID string, status models.MissionStatus) (models.Day, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.getUser()
	if err != nil {
		return models.Day{}, err
	}

	day, err := e.openDay(date)
	if err != nil {
		return models.Day{}, err
	}

	mission := day.MissionByID(missionID)
	if mission == nil {
		return models.Day{}, ErrMissionNotFound
	}
	if mission.Status != models.MissionStatusPending {
		return models.Day{}, ErrMissionSettled
	}
	mission.Status = status

	credit := status == models.MissionStatusCompleted && !day.IsForgiveness
	if credit {
		day.XPGained += mission.XPReward
		day.CoinsEarned += mission.CoinReward
	}

	if err := e.store.SaveDay(day); err != nil {
		return models.Day{}, fmt.Errorf("failed to save day: %w", err)
	}

	if credit {
		if err := e.gainXP(&user, mission.XPReward); err != nil {
			return models.Day{}, err
		}
		user.Coins += mission.CoinReward
		if err := e.store.SaveUser(user); err != nil {
			return models.Day{}, fmt.Errorf("failed to save character: %w", err)
		}
	}

	eventType := models.EventMissionCompleted
	xpDelta, coinDelta := mission.XPReward, mission.CoinReward
	if status == models.MissionStatusFailed {
		eventType = models.EventMissionFailed
	}
	if !credit {
		xpDelta, coinDelta = 0, 0
	}
	details := fmt.Sprintf("Mission %q %s", mission.Title, status)
	if err := e.logEvent(eventType, details, xpDelta, coinDelta); err != nil {
		return models.Day{}, err
	}

	return day, nil
}

// RecordHabit triggers a stored habit definition against the given date.
func (e *Engine) RecordHabit(date, habitID string) (int, error) {
	habit, err := e.store.GetHabit(habitID)
	if err != nil {
		return 0, err
	}
	return e.RecordTrigger(date, habit.ID, habit.Name, habit.Type, habit.XPValue)
}

// RecordTrigger applies one habit trigger to an open day. The applied
// amount is truncated against the day's remaining headroom (XPCap for
// positive habits, XPLossCap for negative ones); with no headroom left the
// trigger is a no-op that returns 0 without logging anything. Forgiveness
// days accept no triggers at all.
func (e *Engine) RecordTrigger(date, habitID, name string, hType models.HabitType, value int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	user, err := e.getUser()
	if err != nil {
		return 0, err
	}

	day, err := e.openDay(date)
	if err != nil {
		return 0, err
	}
	if day.IsForgiveness {
		return 0, nil
	}

	var applied int
	switch hType {
	case models.HabitPositive:
		applied = min(value, constants.XPCap-day.XPGained)
	case models.HabitNegative:
		applied = min(value, constants.XPLossCap-day.XPLost)
	default:
		return 0, fmt.Errorf("unknown habit type %q", hType)
	}
	if applied <= 0 {
		return 0, nil
	}

	eventType := models.EventPositiveHabitCompleted
	xpDelta := applied
	if hType == models.HabitPositive {
		day.XPGained += applied
		if err := e.gainXP(&user, applied); err != nil {
			return 0, err
		}
	} else {
		day.XPLost += applied
		loseXP(&user, applied)
		eventType = models.EventNegativeHabitTriggered
		xpDelta = -applied
	}

	if err := e.store.SaveDay(day); err != nil {
		return 0, fmt.Errorf("failed to save day: %w", err)
	}
	if err := e.store.SaveUser(user); err != nil {
		return 0, fmt.Errorf("failed to save character: %w", err)
	}

	if err := e.store.AppendHabitLog(models.HabitLog{
		ID:        uuid.New().String(),
		DayDate:   date,
		HabitID:   habitID,
		HabitName: name,
		HabitType: hType,
		XPValue:   applied,
		CreatedAt: e.now(),
	}); err != nil {
		return 0, fmt.Errorf("failed to append habit log: %w", err)
	}

	if err := e.logEvent(eventType, fmt.Sprintf("Habit %q triggered", name), xpDelta, 0); err != nil {
		return 0, err
	}

	return applied, nil
}

// CloseDay closes an open day. Terminal: a closed day never mutates again,
// and closing twice is rejected. XP and coins were already committed as the
// day progressed; closing only records the transition and the net figures.
func (e *Engine) CloseDay(date string) (models.Day, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	day, err := e.openDay(date)
	if err != nil {
		return models.Day{}, err
	}

	closedAt := e.now()
	day.Status = models.DayStatusClosed
	day.ClosedAt = &closedAt
	if err := e.store.SaveDay(day); err != nil {
		return models.Day{}, fmt.Errorf("failed to save day: %w", err)
	}

	details := fmt.Sprintf("Day %s closed: %+d net XP, %d coins", date, day.NetXP(), day.CoinsEarned)
	if err := e.logEvent(models.EventDayClosed, details, 0, 0); err != nil {
		return models.Day{}, err
	}

	return day, nil
}
