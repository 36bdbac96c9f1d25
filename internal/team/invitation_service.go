package team

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/internal/apperrors"
	"github.com/DhavalSuthar-24/rosterhub/internal/notification"
	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// InvitationService runs the pending -> accepted | declined workflow.
type InvitationService struct {
	rosterCore
	users UserDirectory
	ttl   time.Duration
}

// NewInvitationService builds the workflow. Pending invitations older than
// ttl can no longer be accepted; a zero ttl disables expiry.
func NewInvitationService(repo TeamRepository, users UserDirectory, emitter notification.Emitter, ttl time.Duration) *InvitationService {
	return &InvitationService{
		rosterCore: rosterCore{repo: repo, emitter: emitter, now: time.Now},
		users:      users,
		ttl:        ttl,
	}
}

// CreateInvitation invites invitedUserID to the team. Owner, captain or
// authorized member only. A stale pending invitation is declined and
// replaced; a live one is a duplicate.
func (s *InvitationService) CreateInvitation(ctx context.Context, teamID, invitedUserID, actorID uint) (*Invitation, error) {
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, apperrors.StoreFailure("load team", err)
	}
	if team == nil {
		return nil, apperrors.NotFound(apperrors.EntityTeam, apperrors.ReasonNone)
	}
	if err := Decide(actorID, ActionCreateInvitation, team, nil).Err(ActionCreateInvitation); err != nil {
		return nil, err
	}
	invitee, err := s.users.GetUserByID(ctx, invitedUserID)
	if err != nil {
		return nil, apperrors.StoreFailure("load user", err)
	}
	if invitee == nil {
		return nil, apperrors.NotFound(apperrors.EntityUser, apperrors.ReasonNone)
	}

	var created *Invitation
	var events []notification.Event
	err = s.withTeamLock(ctx, teamID, "create invitation", func(repo TeamRepository, team *Team) error {
		// Roles may have changed since the first check.
		if err := Decide(actorID, ActionCreateInvitation, team, nil).Err(ActionCreateInvitation); err != nil {
			return err
		}

		member, err := activePlayer(ctx, repo, team.ID, invitedUserID)
		if err != nil {
			return err
		}
		if member != nil {
			return apperrors.InvalidState(apperrors.ReasonAlreadyMember, "user is already on the team")
		}

		now := s.now()
		pending, err := repo.GetPendingInvitation(ctx, team.ID, invitedUserID)
		if err != nil {
			return apperrors.StoreFailure("load invitation", err)
		}
		if pending != nil {
			if !pending.ExpiredAt(now, s.ttl) {
				return apperrors.InvalidState(apperrors.ReasonDuplicatePendingInvite, "a pending invitation already exists for this user")
			}
			pending.Status = InvitationDeclined
			pending.RespondedAt = &now
			if err := repo.UpdateInvitationStatus(ctx, pending); err != nil {
				return apperrors.StoreFailure("expire invitation", err)
			}
		}

		created = &Invitation{
			TeamID:        team.ID,
			InvitedUserID: invitedUserID,
			InvitedByID:   actorID,
			Status:        InvitationPending,
		}
		if err := repo.CreateInvitation(ctx, created); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.InvalidState(apperrors.ReasonDuplicatePendingInvite, "a pending invitation already exists for this user")
			}
			return apperrors.StoreFailure("create invitation", err)
		}

		e := s.event(notification.KindInvited, team, actorID, invitedUserID)
		e.InvitationID = created.ID
		events = append(events, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Uint("team_id", teamID).Uint("actor_id", actorID).Uint("invited_user_id", invitedUserID).Msg("invitation created")
	s.emit(ctx, events)
	return created, nil
}

// loadForInvitee fetches the invitation and checks that actorID received it.
func (s *InvitationService) loadForInvitee(ctx context.Context, repo TeamRepository, invitationID, actorID uint) (*Invitation, error) {
	inv, err := repo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, apperrors.StoreFailure("load invitation", err)
	}
	if inv == nil {
		return nil, apperrors.NotFound(apperrors.EntityInvitation, apperrors.ReasonNone)
	}
	if inv.InvitedUserID != actorID {
		return nil, apperrors.PermissionDenied(apperrors.ReasonNotAuthorized, "only the invited user can respond to an invitation")
	}
	return inv, nil
}

// AcceptInvitation puts the invitee on the roster, creating or reactivating
// their player row. Accepting again while still on the team is a no-op.
func (s *InvitationService) AcceptInvitation(ctx context.Context, invitationID, actorID uint) (*Invitation, error) {
	inv, err := s.loadForInvitee(ctx, s.repo, invitationID, actorID)
	if err != nil {
		return nil, err
	}

	var events []notification.Event
	err = s.withTeamLock(ctx, inv.TeamID, "accept invitation", func(repo TeamRepository, team *Team) error {
		// Re-read under the team lock; a concurrent response may have landed.
		inv, err = s.loadForInvitee(ctx, repo, invitationID, actorID)
		if err != nil {
			return err
		}
		player, err := repo.GetPlayerByUser(ctx, team.ID, actorID)
		if err != nil {
			return apperrors.StoreFailure("load player", err)
		}

		now := s.now()
		switch inv.Status {
		case InvitationDeclined:
			return apperrors.InvalidState(apperrors.ReasonInvitationNotPending, "invitation was declined")
		case InvitationAccepted:
			if player.Active() {
				return nil
			}
			return apperrors.InvalidState(apperrors.ReasonInvitationNotPending, "invitation was already used")
		}
		if inv.ExpiredAt(now, s.ttl) {
			return apperrors.InvalidState(apperrors.ReasonInvitationExpired, "invitation has expired")
		}

		if !player.Active() {
			if player == nil {
				player = &Player{TeamID: team.ID, UserID: actorID}
			}
			player.Activate(now)
			if err := repo.UpsertPlayer(ctx, player); err != nil {
				return apperrors.StoreFailure("activate player", err)
			}
			events = append(events, s.event(notification.KindJoined, team, actorID, team.CreatedByID))
		}

		inv.Status = InvitationAccepted
		inv.RespondedAt = &now
		if err := repo.UpdateInvitationStatus(ctx, inv); err != nil {
			return apperrors.StoreFailure("update invitation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Uint("team_id", inv.TeamID).Uint("actor_id", actorID).Uint("invitation_id", inv.ID).Msg("invitation accepted")
	s.emit(ctx, events)
	return inv, nil
}

// DeclineInvitation closes a pending invitation. The row is kept; declining
// twice is a no-op and an accepted invitation cannot be declined.
func (s *InvitationService) DeclineInvitation(ctx context.Context, invitationID, actorID uint) (*Invitation, error) {
	inv, err := s.loadForInvitee(ctx, s.repo, invitationID, actorID)
	if err != nil {
		return nil, err
	}

	err = s.withTeamLock(ctx, inv.TeamID, "decline invitation", func(repo TeamRepository, team *Team) error {
		inv, err = s.loadForInvitee(ctx, repo, invitationID, actorID)
		if err != nil {
			return err
		}
		switch inv.Status {
		case InvitationDeclined:
			return nil
		case InvitationAccepted:
			return apperrors.InvalidState(apperrors.ReasonInvitationNotPending, "invitation was already accepted")
		}

		now := s.now()
		inv.Status = InvitationDeclined
		inv.RespondedAt = &now
		if err := repo.UpdateInvitationStatus(ctx, inv); err != nil {
			return apperrors.StoreFailure("update invitation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func parseStatusFilter(status string) (InvitationStatus, error) {
	s := InvitationStatus(status)
	if s != "" && !s.Valid() {
		return "", apperrors.InvalidState(apperrors.ReasonInvalidInput, "status must be pending, accepted or declined")
	}
	return s, nil
}

// ListTeamInvitations lists a team's invitations. Owner, captain or
// authorized member only.
func (s *InvitationService) ListTeamInvitations(ctx context.Context, teamID uint, status string, page, limit int, actorID uint) ([]Invitation, int64, error) {
	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, 0, apperrors.StoreFailure("load team", err)
	}
	if team == nil {
		return nil, 0, apperrors.NotFound(apperrors.EntityTeam, apperrors.ReasonNone)
	}
	if err := Decide(actorID, ActionViewInvitations, team, nil).Err(ActionViewInvitations); err != nil {
		return nil, 0, err
	}

	invitations, total, err := s.repo.GetInvitationsByTeam(ctx, teamID, filter, page, limit)
	if err != nil {
		return nil, 0, apperrors.StoreFailure("list invitations", err)
	}
	return invitations, total, nil
}

// ListMyInvitations lists invitations addressed to userID.
func (s *InvitationService) ListMyInvitations(ctx context.Context, userID uint, status string, page, limit int) ([]Invitation, int64, error) {
	filter, err := parseStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	invitations, total, err := s.repo.GetInvitationsByUser(ctx, userID, filter, page, limit)
	if err != nil {
		return nil, 0, apperrors.StoreFailure("list invitations", err)
	}
	return invitations, total, nil
}

// ExpireStaleInvitations declines pending invitations older than the TTL.
func (s *InvitationService) ExpireStaleInvitations(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	now := s.now()
	n, err := s.repo.DeclineStaleInvitations(ctx, now.Add(-s.ttl), now)
	if err != nil {
		return 0, apperrors.StoreFailure("expire invitations", err)
	}
	if n > 0 {
		logger.Info().Int64("count", n).Msg("stale invitations declined")
	}
	return n, nil
}
