package notification

import (
	"time"

	"gorm.io/gorm"
)

// Notification is one in-app inbox entry for UserID.
type Notification struct {
	gorm.Model
	UserID  uint       `json:"user_id" gorm:"not null;index"`
	TeamID  uint       `json:"team_id" gorm:"index"`
	ActorID uint       `json:"actor_id"`
	Kind    Kind       `json:"kind" gorm:"size:30;not null"`
	Message string     `json:"message" gorm:"size:255;not null"`
	ReadAt  *time.Time `json:"read_at,omitempty"`
}
