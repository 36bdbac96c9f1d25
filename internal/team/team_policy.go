package team

import (
	"fmt"

	"github.com/DhavalSuthar-24/rosterhub/internal/apperrors"
)

// Action is a roster operation subject to authorization.
type Action string

const (
	ActionDeleteTeam       Action = "delete_team"
	ActionSetTeamSize      Action = "set_team_size"
	ActionSetFormation     Action = "set_formation"
	ActionUpdateProfile    Action = "update_profile"
	ActionManageAuthorized Action = "manage_authorized_members"
	ActionRemovePlayer     Action = "remove_player"
	ActionAssignCaptain    Action = "assign_captain"
	ActionViewInvitations  Action = "view_invitations"
	ActionCreateInvitation Action = "create_invitation"
	ActionScheduleMatch    Action = "schedule_match"
	ActionLeaveTeam        Action = "leave_team"
)

// Capabilities is the set of roles an actor holds on one team.
type Capabilities uint8

const (
	CapOwner Capabilities = 1 << iota
	CapCaptain
	CapAuthorizedMember
	CapMember
)

// Has reports whether c includes any role in want.
func (c Capabilities) Has(want Capabilities) bool {
	return c&want != 0
}

func (c Capabilities) String() string {
	names := []string{}
	for _, r := range []struct {
		cap  Capabilities
		name string
	}{
		{CapOwner, "owner"},
		{CapCaptain, "captain"},
		{CapAuthorizedMember, "authorized_member"},
		{CapMember, "member"},
	} {
		if c.Has(r.cap) {
			names = append(names, r.name)
		}
	}
	return fmt.Sprint(names)
}

// CapabilitiesOf derives the actor's roles from a team snapshot and, when
// given, the actor's own player row on that team.
func CapabilitiesOf(actorID uint, team *Team, player *Player) Capabilities {
	var caps Capabilities
	if team == nil || actorID == 0 {
		return caps
	}
	if team.IsOwner(actorID) {
		caps |= CapOwner
	}
	if team.IsCaptain(actorID) {
		caps |= CapCaptain
	}
	if team.IsAuthorizedMember(actorID) {
		caps |= CapAuthorizedMember
	}
	if player.Active() && player.UserID == actorID && player.TeamID == team.ID {
		caps |= CapMember
	}
	return caps
}

type rule struct {
	allowed Capabilities
	denied  apperrors.Reason
}

// Each action names its exact set of accepted roles; there is no hierarchy.
var rules = map[Action]rule{
	ActionDeleteTeam:       {CapOwner, apperrors.ReasonNotOwner},
	ActionSetTeamSize:      {CapOwner | CapCaptain, apperrors.ReasonNotAuthorized},
	ActionSetFormation:     {CapOwner | CapCaptain, apperrors.ReasonNotAuthorized},
	ActionUpdateProfile:    {CapOwner | CapCaptain, apperrors.ReasonNotAuthorized},
	ActionManageAuthorized: {CapOwner, apperrors.ReasonNotOwner},
	ActionRemovePlayer:     {CapOwner, apperrors.ReasonNotOwner},
	ActionAssignCaptain:    {CapOwner, apperrors.ReasonNotOwner},
	ActionViewInvitations:  {CapOwner | CapCaptain | CapAuthorizedMember, apperrors.ReasonNotAuthorized},
	ActionCreateInvitation: {CapOwner | CapCaptain | CapAuthorizedMember, apperrors.ReasonNotAuthorized},
	ActionScheduleMatch:    {CapOwner | CapCaptain | CapAuthorizedMember, apperrors.ReasonNotAuthorized},
	ActionLeaveTeam:        {CapMember, apperrors.ReasonNotTeamMember},
}

// Decision is the outcome of Decide.
type Decision struct {
	Allowed bool
	Reason  apperrors.Reason
}

// Err converts a denial into a PermissionDenied error, or nil when allowed.
func (d Decision) Err(action Action) error {
	if d.Allowed {
		return nil
	}
	return apperrors.PermissionDenied(d.Reason, fmt.Sprintf("not permitted to %s", action))
}

// Decide reports whether actorID may perform action on team. player is the
// actor's own player row on the team, if one was loaded. Decide has no side
// effects and never consults the store.
func Decide(actorID uint, action Action, team *Team, player *Player) Decision {
	r, ok := rules[action]
	if !ok {
		return Decision{Reason: apperrors.ReasonNotAuthorized}
	}
	if CapabilitiesOf(actorID, team, player).Has(r.allowed) {
		return Decision{Allowed: true}
	}
	return Decision{Reason: r.denied}
}
