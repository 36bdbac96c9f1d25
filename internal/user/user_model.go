package user

import (
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/internal/models"
)

// Availability is a player's self-declared readiness for matches.
type Availability string

const (
	AvailabilityAvailable        Availability = "available"
	AvailabilityUnavailable      Availability = "unavailable"
	AvailabilityDefaultAvailable Availability = "default-available"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityUnavailable, AvailabilityDefaultAvailable:
		return true
	}
	return false
}

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model
	Username     string             `gorm:"uniqueIndex;size:50;not null" json:"username"`
	FullName     string             `gorm:"size:100" json:"full_name"`
	PasswordHash string             `gorm:"not null" json:"-"`
	Positions    models.StringSlice `gorm:"type:text" json:"positions"`
	Availability Availability       `gorm:"size:20;not null;default:default-available" json:"availability"`
	Roles        []Role             `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

type Role struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;size:30;not null" json:"name"`
}

// RoleNames flattens the loaded roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
