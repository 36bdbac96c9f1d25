// team/model.go
package team

import (
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/internal/formation"
	"github.com/DhavalSuthar-24/rosterhub/internal/models"
	"github.com/DhavalSuthar-24/rosterhub/internal/user"
)

// Team represents a sports team. CreatedByID is the immutable owner.
type Team struct {
	gorm.Model
	Name              string       `json:"name" gorm:"size:100;not null;index"`
	Description       string       `json:"description" gorm:"size:1000"`
	TeamSize          int          `json:"team_size" gorm:"not null"`
	Formation         string       `json:"formation" gorm:"size:20;not null"`
	CreatedByID       uint         `json:"created_by_id" gorm:"not null;index"`
	CaptainID         *uint        `json:"captain_id"`
	AuthorizedMembers models.IDSet `json:"authorized_members" gorm:"type:text"`
}

// IsOwner reports whether userID created the team.
func (t *Team) IsOwner(userID uint) bool {
	return t.CreatedByID == userID
}

// IsCaptain reports whether userID currently holds the captaincy.
func (t *Team) IsCaptain(userID uint) bool {
	return t.CaptainID != nil && *t.CaptainID == userID
}

// IsAuthorizedMember reports whether userID holds authorized-member status.
func (t *Team) IsAuthorizedMember(userID uint) bool {
	return t.AuthorizedMembers.Contains(userID)
}

// PlayerStatus is the lifecycle state of a roster entry.
type PlayerStatus string

const (
	PlayerActive   PlayerStatus = "active"
	PlayerInactive PlayerStatus = "inactive"
)

// Player links a user to a team. Rows are deactivated, never deleted, and a
// (team, user) pair has exactly one row that is reactivated on rejoin.
type Player struct {
	gorm.Model
	TeamID   uint         `json:"team_id" gorm:"not null;uniqueIndex:idx_players_team_user"`
	UserID   uint         `json:"user_id" gorm:"not null;uniqueIndex:idx_players_team_user;index"`
	Status   PlayerStatus `json:"status" gorm:"size:10;not null"`
	IsActive bool         `json:"is_active" gorm:"not null;index"`
	JoinedAt time.Time    `json:"joined_at"`
	LeftAt   *time.Time   `json:"left_at,omitempty"`
	User     *user.User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Activate puts the player (back) on the roster.
func (p *Player) Activate(now time.Time) {
	p.Status = PlayerActive
	p.IsActive = true
	p.JoinedAt = now
	p.LeftAt = nil
}

// Deactivate takes the player off the roster, keeping the row.
func (p *Player) Deactivate(now time.Time) {
	p.Status = PlayerInactive
	p.IsActive = false
	p.LeftAt = &now
}

// Active reports whether the player is currently on the roster.
func (p *Player) Active() bool {
	return p != nil && p.Status == PlayerActive
}

// BeforeSave keeps the queryable is_active column in step with Status.
func (p *Player) BeforeSave(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PlayerActive
	}
	p.IsActive = p.Status == PlayerActive
	return nil
}

// InvitationStatus is the state of an Invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined:
		return true
	}
	return false
}

// Invitation asks a user to join a team. Declined invitations are retained.
type Invitation struct {
	gorm.Model
	TeamID        uint             `json:"team_id" gorm:"not null;index"`
	InvitedUserID uint             `json:"invited_user_id" gorm:"not null;index"`
	InvitedByID   uint             `json:"invited_by_id" gorm:"not null"`
	Status        InvitationStatus `json:"status" gorm:"size:10;not null;index"`
	RespondedAt   *time.Time       `json:"responded_at,omitempty"`
	Team          *Team            `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

// ExpiredAt reports whether a pending invitation has outlived ttl at now.
func (i *Invitation) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return i.Status == InvitationPending && ttl > 0 && now.Sub(i.CreatedAt) > ttl
}

// ValidateTeamSize reports whether size is an allowed team size.
func ValidateTeamSize(size int) bool {
	return formation.ValidTeamSize(size)
}

// Migrate creates the roster tables and the pending-invitation unique index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Team{}, &Player{}, &Invitation{}); err != nil {
		return err
	}
	// MySQL has no partial indexes; the workflow check under the team row lock
	// still holds the rule there.
	if db.Dialector.Name() == "mysql" {
		return nil
	}
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_invitations_one_pending
		ON invitations (team_id, invited_user_id)
		WHERE status = 'pending' AND deleted_at IS NULL`).Error
}
