// Package progression holds the pure level/slot arithmetic. Nothing here
// touches storage; every function is deterministic in its arguments.
package progression

import (
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
)

// XPForLevel returns the XP required to clear the given level.
func XPForLevel(level int) int {
	return level * 100
}

// LevelForXP maps a total XP figure to a level. Levels start at 1; the
// cumulative cost of finishing level n is the sum of i*100 for i=1..n, so
// 0 XP is level 1, 100 XP is level 2, 300 XP is level 3, and so on.
func LevelForXP(totalXP int) int {
	level := 1
	consumed := 0
	for consumed+XPForLevel(level) <= totalXP {
		consumed += XPForLevel(level)
		level++
	}
	return level
}

// Progress describes position within the current level.
type Progress struct {
	Current int // XP earned past the last cleared level boundary
	Needed  int // XP required to clear the current level
}

// ProgressInLevel reports how far into the current level totalXP sits.
// Invariant: 0 <= Current < Needed.
func ProgressInLevel(totalXP int) Progress {
	level := 1
	consumed := 0
	for consumed+XPForLevel(level) <= totalXP {
		consumed += XPForLevel(level)
		level++
	}
	return Progress{
		Current: totalXP - consumed,
		Needed:  XPForLevel(level),
	}
}

// Slots is the mission capacity derived from the unlock history.
type Slots struct {
	Secondary int
	Bonus     int
}

// AvailableSlots folds the ordered unlock history into slot counts. A
// secondary choice adds 1 (max 5), a bonus choice adds 2 (max 10). The cap
// is applied after every increment, not once at the end: a bonus unlock at 9
// lands on 10, it does not bank the overshoot.
func AvailableSlots(unlocks []models.SlotUnlockChoice) Slots {
	s := Slots{
		Secondary: constants.BaseSecondarySlots,
		Bonus:     constants.BaseBonusSlots,
	}
	for _, u := range unlocks {
		if u.Choice == models.SlotChoiceSecondary {
			s.Secondary = min(s.Secondary+1, constants.MaxSecondarySlots)
		} else {
			s.Bonus = min(s.Bonus+2, constants.MaxBonusSlots)
		}
	}
	return s
}

// CrossedForgiveness reports whether any level in (prevLevel, newLevel]
// is a forgiveness milestone. Multiple crossings coalesce into one grant.
func CrossedForgiveness(prevLevel, newLevel int) bool {
	for lvl := prevLevel + 1; lvl <= newLevel; lvl++ {
		if lvl%constants.LevelsPerForgiveness == 0 {
			return true
		}
	}
	return false
}

// EarnedSlotUnlocks returns how many unlock choices a level entitles to.
func EarnedSlotUnlocks(level int) int {
	return level / constants.LevelsPerSlotUnlock
}
