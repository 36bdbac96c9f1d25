package team

import (
	"errors"
	"time"

	"github.com/DhavalSuthar-24/rosterhub/internal/apperrors"
	"github.com/DhavalSuthar-24/rosterhub/internal/notification"
)

func (s *RosterTestSuite) advanceClock(d time.Duration) {
	at := time.Now().Add(d)
	s.invitations.now = func() time.Time { return at }
}

func (s *RosterTestSuite) TestCreateInvitation_ByEachManagingRole() {
	team := s.newRoster()

	for _, actor := range []string{"owner", "captain", "auth"} {
		s.Require().NoError(s.teams.RemovePlayer(s.ctx, team.ID, s.id("member"), s.id("owner")))
		inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("member"), s.id(actor))
		s.Require().NoError(err, actor)
		s.Equal(InvitationPending, inv.Status)
		s.Equal(s.id(actor), inv.InvitedByID)

		ev := s.emitter.last()
		s.Equal(notification.KindInvited, ev.Kind)
		s.Equal(s.id("member"), ev.AffectedUserID)
		s.Equal(inv.ID, ev.InvitationID)

		_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("member"))
		s.Require().NoError(err)
	}
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestCreateInvitation_PlainMemberDenied() {
	team := s.newRoster()

	_, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("member"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotAuthorized)
	s.Empty(s.emitter.kinds())
}

func (s *RosterTestSuite) TestCreateInvitation_NotFound() {
	team := s.newRoster()

	_, err := s.invitations.CreateInvitation(s.ctx, 999, s.id("outsider"), s.id("owner"))
	s.True(errors.Is(err, &apperrors.Error{Kind: apperrors.KindNotFound, Entity: apperrors.EntityTeam}), err)

	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, 4242, s.id("owner"))
	s.True(errors.Is(err, &apperrors.Error{Kind: apperrors.KindNotFound, Entity: apperrors.EntityUser}), err)
}

func (s *RosterTestSuite) TestCreateInvitation_AlreadyMember() {
	team := s.newRoster()

	_, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("member"), s.id("owner"))
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonAlreadyMember)
}

func (s *RosterTestSuite) TestCreateInvitation_DuplicatePending() {
	team := s.newRoster()

	_, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)
	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("captain"))
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonDuplicatePendingInvite)

	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestCreateInvitation_PendingIndexBacksTheWorkflow() {
	team := s.newRoster()

	first := &Invitation{TeamID: team.ID, InvitedUserID: s.id("outsider"), InvitedByID: s.id("owner"), Status: InvitationPending}
	s.Require().NoError(s.repo.CreateInvitation(s.ctx, first))

	second := &Invitation{TeamID: team.ID, InvitedUserID: s.id("outsider"), InvitedByID: s.id("owner"), Status: InvitationPending}
	s.Error(s.repo.CreateInvitation(s.ctx, second))

	// Closed invitations do not count.
	first.Status = InvitationDeclined
	s.Require().NoError(s.repo.UpdateInvitationStatus(s.ctx, first))
	s.NoError(s.repo.CreateInvitation(s.ctx, second))
}

func (s *RosterTestSuite) TestCreateInvitation_ReplacesExpiredPending() {
	team := s.newRoster()

	stale, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)

	s.advanceClock(testInvitationTTL + time.Hour)
	fresh, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)
	s.NotEqual(stale.ID, fresh.ID)

	old, err := s.repo.GetInvitationByID(s.ctx, stale.ID)
	s.Require().NoError(err)
	s.Equal(InvitationDeclined, old.Status)
	s.NotNil(old.RespondedAt)
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestAcceptInvitation_JoinsRoster() {
	team := s.newRoster()
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("captain"))
	s.Require().NoError(err)
	s.emitter.reset()

	accepted, err := s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.Require().NoError(err)
	s.Equal(InvitationAccepted, accepted.Status)
	s.NotNil(accepted.RespondedAt)
	s.True(s.player(team.ID, "outsider").Active())

	s.Equal([]notification.Kind{notification.KindJoined}, s.emitter.kinds())
	s.Equal(s.id("owner"), s.emitter.last().AffectedUserID)
	s.Equal(s.id("outsider"), s.emitter.last().ActorID)
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestAcceptInvitation_Idempotent() {
	team := s.newRoster()
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)

	_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.Require().NoError(err)
	s.emitter.reset()

	again, err := s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.Require().NoError(err)
	s.Equal(InvitationAccepted, again.Status)

	s.Equal(int64(1), s.playerRows(team.ID, "outsider"))
	s.Empty(s.emitter.kinds())
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestAcceptInvitation_RejoinReactivatesRow() {
	team := s.newRoster()
	before := s.player(team.ID, "member")
	s.Require().NoError(s.teams.LeaveTeam(s.ctx, team.ID, s.id("member")))

	s.join(team.ID, "member")

	after := s.player(team.ID, "member")
	s.True(after.Active())
	s.Nil(after.LeftAt)
	s.Equal(before.ID, after.ID)
	s.Equal(int64(1), s.playerRows(team.ID, "member"))
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestAcceptInvitation_WhenAlreadyActive() {
	team := s.newRoster()
	// Pending invitation written directly for a user who is already playing.
	inv := &Invitation{TeamID: team.ID, InvitedUserID: s.id("member"), InvitedByID: s.id("owner"), Status: InvitationPending}
	s.Require().NoError(s.repo.CreateInvitation(s.ctx, inv))

	_, err := s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("member"))
	s.Require().NoError(err)
	s.Equal(int64(1), s.playerRows(team.ID, "member"))
	s.Empty(s.emitter.kinds())
}

func (s *RosterTestSuite) TestAcceptInvitation_OnlyInvitee() {
	team := s.newRoster()
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)

	_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("owner"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotAuthorized)

	_, err = s.invitations.AcceptInvitation(s.ctx, 999, s.id("outsider"))
	s.True(errors.Is(err, &apperrors.Error{Kind: apperrors.KindNotFound, Entity: apperrors.EntityInvitation}), err)
}

func (s *RosterTestSuite) TestAcceptInvitation_Declined() {
	team := s.newRoster()
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)
	_, err = s.invitations.DeclineInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.Require().NoError(err)

	_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvitationNotPending)
	s.Nil(s.player(team.ID, "outsider"))
}

func (s *RosterTestSuite) TestAcceptInvitation_UsedAfterLeaving() {
	team := s.newRoster()
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)
	_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.Require().NoError(err)
	s.Require().NoError(s.teams.LeaveTeam(s.ctx, team.ID, s.id("outsider")))

	_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvitationNotPending)
	s.False(s.player(team.ID, "outsider").Active())
}

func (s *RosterTestSuite) TestAcceptInvitation_Expired() {
	team := s.newRoster()
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)

	s.advanceClock(testInvitationTTL + time.Minute)
	_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvitationExpired)
	s.Nil(s.player(team.ID, "outsider"))
}

func (s *RosterTestSuite) TestAcceptInvitation_DeletedTeam() {
	team := s.newRoster()
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)
	s.Require().NoError(s.teams.DeleteTeam(s.ctx, team.ID, s.id("owner")))

	_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.True(errors.Is(err, apperrors.ErrNotFound), err)
}

func (s *RosterTestSuite) TestDeclineInvitation() {
	team := s.newRoster()
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)

	_, err = s.invitations.DeclineInvitation(s.ctx, inv.ID, s.id("captain"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotAuthorized)

	declined, err := s.invitations.DeclineInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.Require().NoError(err)
	s.Equal(InvitationDeclined, declined.Status)

	again, err := s.invitations.DeclineInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.Require().NoError(err)
	s.Equal(InvitationDeclined, again.Status)

	stored, err := s.repo.GetInvitationByID(s.ctx, inv.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored, "declined invitations are retained")
	s.Equal(InvitationDeclined, stored.Status)
	s.Nil(s.player(team.ID, "outsider"))

	// A new invitation is allowed once the old one is closed.
	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.NoError(err)
}

func (s *RosterTestSuite) TestDeclineInvitation_Accepted() {
	team := s.newRoster()
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)
	_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.Require().NoError(err)

	_, err = s.invitations.DeclineInvitation(s.ctx, inv.ID, s.id("outsider"))
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvitationNotPending)
	s.True(s.player(team.ID, "outsider").Active())
}

func (s *RosterTestSuite) TestListTeamInvitations() {
	team := s.newRoster()
	_, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)

	for _, actor := range []string{"owner", "captain", "auth"} {
		all, total, err := s.invitations.ListTeamInvitations(s.ctx, team.ID, "", 1, 10, s.id(actor))
		s.Require().NoError(err)
		s.Equal(int64(5), total, "four accepted from setup plus one pending")
		s.Len(all, 5)
	}

	pending, total, err := s.invitations.ListTeamInvitations(s.ctx, team.ID, "pending", 1, 10, s.id("owner"))
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(s.id("outsider"), pending[0].InvitedUserID)

	_, _, err = s.invitations.ListTeamInvitations(s.ctx, team.ID, "", 1, 10, s.id("member"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotAuthorized)

	_, _, err = s.invitations.ListTeamInvitations(s.ctx, team.ID, "expired", 1, 10, s.id("owner"))
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvalidInput)

	_, _, err = s.invitations.ListTeamInvitations(s.ctx, 999, "", 1, 10, s.id("owner"))
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *RosterTestSuite) TestListMyInvitations() {
	team := s.newRoster()
	_, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)

	mine, total, err := s.invitations.ListMyInvitations(s.ctx, s.id("outsider"), "pending", 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().NotNil(mine[0].Team)
	s.Equal(team.Name, mine[0].Team.Name)

	_, total, err = s.invitations.ListMyInvitations(s.ctx, s.id("outsider"), "accepted", 1, 10)
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *RosterTestSuite) TestExpireStaleInvitations() {
	team := s.newRoster()
	_, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)

	n, err := s.invitations.ExpireStaleInvitations(s.ctx)
	s.Require().NoError(err)
	s.Zero(n, "fresh invitations are kept")

	s.advanceClock(testInvitationTTL + time.Hour)
	n, err = s.invitations.ExpireStaleInvitations(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	pending, err := s.repo.GetPendingInvitation(s.ctx, team.ID, s.id("outsider"))
	s.Require().NoError(err)
	s.Nil(pending)

	_, total, err := s.invitations.ListTeamInvitations(s.ctx, team.ID, "accepted", 1, 10, s.id("owner"))
	s.Require().NoError(err)
	s.Equal(int64(4), total, "answered invitations are untouched")
}
