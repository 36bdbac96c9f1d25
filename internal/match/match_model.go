package match

import (
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/internal/team"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusCompleted MatchStatus = "completed"
	StatusCancelled MatchStatus = "cancelled"
)

// Match is a fixture of one roster team against a named opponent.
type Match struct {
	gorm.Model
	TeamID       uint        `json:"team_id" gorm:"index;not null"`
	Team         *team.Team  `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	OpponentTeam string      `json:"opponent_team" gorm:"size:100;not null"`
	MatchDate    time.Time   `json:"match_date" gorm:"index;not null"`
	Location     string      `json:"location" gorm:"size:255"`
	Status       MatchStatus `json:"status" gorm:"size:10;index;not null;default:'scheduled'"`
	HomeScore    *int        `json:"home_score,omitempty"`
	AwayScore    *int        `json:"away_score,omitempty"`
	CreatedByID  uint        `json:"created_by_id" gorm:"index;not null"`
}

// Scheduled reports whether the match can still be played.
func (m *Match) Scheduled() bool {
	return m.Status == StatusScheduled
}

func validStatus(s MatchStatus) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
