package constants

const (
	// XPCap is the maximum XP a day can gain from habit triggers.
	// XPLossCap is the maximum XP a day can lose from negative habits.
	// Both are global game rules, not per-character settings.
	XPCap     = 100
	XPLossCap = 70

	// Mission slot progression. Every character starts with one secondary
	// and one bonus slot; unlock choices grow them up to the maximums.
	BaseSecondarySlots = 1
	BaseBonusSlots     = 1
	MaxSecondarySlots  = 5
	MaxBonusSlots      = 10

	// A slot unlock choice is earned every LevelsPerSlotUnlock levels; a
	// forgiveness token becomes available every LevelsPerForgiveness levels.
	LevelsPerSlotUnlock  = 10
	LevelsPerForgiveness = 5

	// RareLootBoxLevels: levels divisible by this grant a rare box.
	RareLootBoxLevels = 10
)

// Fixed mission reward tables, keyed by mission type at creation time.
const (
	MainMissionXP      = 30
	SecondaryMissionXP = 20
	BonusMissionXP     = 10

	MainMissionCoins      = 15
	SecondaryMissionCoins = 10
	BonusMissionCoins     = 5
)
