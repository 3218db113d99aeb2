package models

import "time"

type DayStatus string

const (
	DayStatusOpen   DayStatus = "open"
	DayStatusClosed DayStatus = "closed"
)

type MissionType string

const (
	MissionMain      MissionType = "main"
	MissionSecondary MissionType = "secondary"
	MissionBonus     MissionType = "bonus"
)

type MissionStatus string

const (
	MissionStatusPending   MissionStatus = "pending"
	MissionStatusCompleted MissionStatus = "completed"
	MissionStatusFailed    MissionStatus = "failed"
)

// Mission belongs to exactly one Day. Rewards are fixed at creation time by
// mission type; pending is the only non-terminal status.
type Mission struct {
	ID          string        `json:"id"`
	Type        MissionType   `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      MissionStatus `json:"status"`
	XPReward    int           `json:"xp_reward"`
	CoinReward  int           `json:"coin_reward"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Day is one day-scoped session of missions and habit triggers. At most one
// Day exists per calendar date; once closed it never mutates again.
type Day struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"` // YYYY-MM-DD, local wall clock
	Status        DayStatus  `json:"status"`
	Missions      []Mission  `json:"missions"`
	XPGained      int        `json:"xp_gained"`
	XPLost        int        `json:"xp_lost"`
	CoinsEarned   int        `json:"coins_earned"`
	IsForgiveness bool       `json:"is_forgiveness"`
	CreatedAt     time.Time  `json:"created_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
}

// NetXP is xpGained - xpLost, the figure reported when the day closes.
func (d Day) NetXP() int {
	return d.XPGained - d.XPLost
}

type MissionCounts struct {
	Main      int
	Secondary int
	Bonus     int
}

// CountMissions tallies missions per type regardless of status.
func (d Day) CountMissions() MissionCounts {
	var c MissionCounts
	for _, m := range d.Missions {
		switch m.Type {
		case MissionMain:
			c.Main++
		case MissionSecondary:
			c.Secondary++
		case MissionBonus:
			c.Bonus++
		}
	}
	return c
}

// MissionByID returns a pointer into the day's mission slice, or nil.
func (d *Day) MissionByID(id string) *Mission {
	for i := range d.Missions {
		if d.Missions[i].ID == id {
			return &d.Missions[i]
		}
	}
	return nil
}
