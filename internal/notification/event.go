package notification

import (
	"context"
	"time"
)

// Kind names a roster lifecycle event.
type Kind string

const (
	KindInvited           Kind = "invited"
	KindPromotedCaptain   Kind = "promoted_captain"
	KindRemoved           Kind = "removed"
	KindAuthorizedAdded   Kind = "authorized_added"
	KindAuthorizedRemoved Kind = "authorized_removed"
	KindJoined            Kind = "joined"
	KindLeft              Kind = "left"
)

// Event is the payload handed to the emitter after a roster change commits.
type Event struct {
	Kind           Kind      `json:"kind"`
	TeamID         uint      `json:"team_id"`
	TeamName       string    `json:"team_name"`
	ActorID        uint      `json:"actor_id"`
	AffectedUserID uint      `json:"affected_user_id"`
	InvitationID   uint      `json:"invitation_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Emitter accepts events without blocking the caller on delivery. Emit never
// fails the roster mutation that produced the event.
type Emitter interface {
	Emit(ctx context.Context, event Event)
}
