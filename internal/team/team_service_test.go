package team

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/internal/apperrors"
	"github.com/DhavalSuthar-24/rosterhub/internal/formation"
	"github.com/DhavalSuthar-24/rosterhub/internal/models"
	"github.com/DhavalSuthar-24/rosterhub/internal/notification"
	"github.com/DhavalSuthar-24/rosterhub/internal/user"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []notification.Event
}

func (e *recordingEmitter) Emit(_ context.Context, event notification.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *recordingEmitter) kinds() []notification.Kind {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]notification.Kind, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (e *recordingEmitter) last() notification.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events[len(e.events)-1]
}

func (e *recordingEmitter) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = nil
}

const testInvitationTTL = 72 * time.Hour

type RosterTestSuite struct {
	suite.Suite
	ctx         context.Context
	db          *gorm.DB
	repo        TeamRepository
	emitter     *recordingEmitter
	teams       *TeamService
	invitations *InvitationService
	users       map[string]uint
}

func (s *RosterTestSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(s.db.AutoMigrate(&user.User{}, &user.Role{}))
	s.Require().NoError(Migrate(s.db))

	s.ctx = context.Background()
	s.repo = NewTeamRepository(s.db)
	s.emitter = &recordingEmitter{}
	s.teams = NewTeamService(s.repo, formation.Default(), s.emitter)
	s.invitations = NewInvitationService(s.repo, user.NewUserRepository(s.db), s.emitter, testInvitationTTL)

	s.users = make(map[string]uint)
	for _, name := range []string{"owner", "captain", "auth", "auth2", "member", "outsider"} {
		u := &user.User{Username: name, PasswordHash: "x"}
		s.Require().NoError(s.db.Create(u).Error)
		s.users[name] = u.ID
	}
}

func (s *RosterTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *RosterTestSuite) id(name string) uint {
	id, ok := s.users[name]
	s.Require().True(ok, "unknown user %q", name)
	return id
}

// join puts a user on the team through the invitation workflow.
func (s *RosterTestSuite) join(teamID uint, name string) {
	inv, err := s.invitations.CreateInvitation(s.ctx, teamID, s.id(name), s.id("owner"))
	s.Require().NoError(err)
	_, err = s.invitations.AcceptInvitation(s.ctx, inv.ID, s.id(name))
	s.Require().NoError(err)
}

// newRoster creates a team owned by "owner" with captain, two authorized
// members and a plain member, all active.
func (s *RosterTestSuite) newRoster() *Team {
	team, err := s.teams.CreateTeam(s.ctx, s.id("owner"), CreateTeamInput{Name: "Sunday League", TeamSize: 7})
	s.Require().NoError(err)
	for _, name := range []string{"captain", "auth", "auth2", "member"} {
		s.join(team.ID, name)
	}
	_, err = s.teams.SetCaptain(s.ctx, team.ID, s.id("captain"), s.id("owner"))
	s.Require().NoError(err)
	for _, name := range []string{"auth", "auth2"} {
		_, err = s.teams.SetAuthorizedMember(s.ctx, team.ID, s.id(name), true, s.id("owner"))
		s.Require().NoError(err)
	}
	s.emitter.reset()
	return s.reload(team.ID)
}

func (s *RosterTestSuite) reload(teamID uint) *Team {
	team, err := s.repo.GetTeamByID(s.ctx, teamID)
	s.Require().NoError(err)
	s.Require().NotNil(team)
	return team
}

func (s *RosterTestSuite) player(teamID uint, name string) *Player {
	p, err := s.repo.GetPlayerByUser(s.ctx, teamID, s.id(name))
	s.Require().NoError(err)
	return p
}

func (s *RosterTestSuite) playerRows(teamID uint, name string) int64 {
	var n int64
	s.Require().NoError(s.db.Model(&Player{}).Where("team_id = ? AND user_id = ?", teamID, s.id(name)).Count(&n).Error)
	return n
}

// assertInvariants checks the roster invariants that must hold after every
// operation, successful or not.
func (s *RosterTestSuite) assertInvariants(teamID uint) {
	team := s.reload(teamID)

	if team.CaptainID != nil {
		captain, err := s.repo.GetPlayerByUser(s.ctx, teamID, *team.CaptainID)
		s.Require().NoError(err)
		s.True(captain.Active(), "captain %d must be an active player", *team.CaptainID)
	}
	s.False(team.AuthorizedMembers.Contains(team.CreatedByID), "owner must not be an authorized member")
	for _, id := range team.AuthorizedMembers {
		p, err := s.repo.GetPlayerByUser(s.ctx, teamID, id)
		s.Require().NoError(err)
		s.True(p.Active(), "authorized member %d must be an active player", id)
	}

	var dupPlayers int64
	s.Require().NoError(s.db.Model(&Player{}).
		Select("user_id").Where("team_id = ?", teamID).
		Group("user_id").Having("COUNT(*) > 1").Count(&dupPlayers).Error)
	s.Zero(dupPlayers, "one player row per (team, user)")

	var dupPending int64
	s.Require().NoError(s.db.Model(&Invitation{}).
		Select("invited_user_id").Where("team_id = ? AND status = ?", teamID, InvitationPending).
		Group("invited_user_id").Having("COUNT(*) > 1").Count(&dupPending).Error)
	s.Zero(dupPending, "one pending invitation per (team, user)")
}

func (s *RosterTestSuite) requireAppError(err error, kind apperrors.Kind, reason apperrors.Reason) {
	s.Require().Error(err)
	s.Equal(kind, apperrors.KindOf(err), err.Error())
	s.Equal(reason, apperrors.ReasonOf(err), err.Error())
}

// --- CreateTeam ---

func (s *RosterTestSuite) TestCreateTeam_OwnerIsFirstPlayer() {
	team, err := s.teams.CreateTeam(s.ctx, s.id("owner"), CreateTeamInput{Name: "  Rovers ", Description: "five-a-side", TeamSize: 11})
	s.Require().NoError(err)

	s.Equal("Rovers", team.Name)
	s.Equal(11, team.TeamSize)
	s.Equal(formation.Default().AvailableFormations(11)[0].Name, team.Formation)
	s.Nil(team.CaptainID)
	s.Empty(team.AuthorizedMembers)
	s.True(s.player(team.ID, "owner").Active())
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestCreateTeam_Rejects() {
	_, err := s.teams.CreateTeam(s.ctx, s.id("owner"), CreateTeamInput{Name: "Rovers", TeamSize: 5})
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvalidTeamSize)

	_, err = s.teams.CreateTeam(s.ctx, s.id("owner"), CreateTeamInput{Name: "   ", TeamSize: 7})
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvalidInput)

	var n int64
	s.Require().NoError(s.db.Model(&Team{}).Count(&n).Error)
	s.Zero(n)
}

// --- RemovePlayer ---

func (s *RosterTestSuite) TestRemovePlayer_ClearsCaptaincy() {
	team := s.newRoster()
	s.Require().True(team.IsCaptain(s.id("captain")))

	s.Require().NoError(s.teams.RemovePlayer(s.ctx, team.ID, s.id("captain"), s.id("owner")))

	team = s.reload(team.ID)
	s.Nil(team.CaptainID)
	p := s.player(team.ID, "captain")
	s.False(p.IsActive)
	s.Equal(PlayerInactive, p.Status)
	s.NotNil(p.LeftAt)

	s.Equal([]notification.Kind{notification.KindRemoved}, s.emitter.kinds())
	ev := s.emitter.last()
	s.Equal(s.id("captain"), ev.AffectedUserID)
	s.Equal(s.id("owner"), ev.ActorID)
	s.Equal(team.ID, ev.TeamID)
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestRemovePlayer_ClearsAuthorizedMembership() {
	team := s.newRoster()
	s.Require().Equal(models.IDSet{s.id("auth"), s.id("auth2")}, team.AuthorizedMembers)

	s.Require().NoError(s.teams.RemovePlayer(s.ctx, team.ID, s.id("auth2"), s.id("owner")))

	team = s.reload(team.ID)
	s.Equal(models.IDSet{s.id("auth")}, team.AuthorizedMembers)
	s.False(s.player(team.ID, "auth2").Active())
	s.True(team.IsCaptain(s.id("captain")), "unrelated captaincy is kept")
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestRemovePlayer_OwnerOnly() {
	team := s.newRoster()

	for _, actor := range []string{"captain", "auth", "member", "outsider"} {
		err := s.teams.RemovePlayer(s.ctx, team.ID, s.id("member"), s.id(actor))
		s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotOwner)
	}
	s.True(s.player(team.ID, "member").Active())
	s.Empty(s.emitter.kinds())
}

func (s *RosterTestSuite) TestRemovePlayer_OwnerCannotRemoveThemself() {
	team := s.newRoster()

	err := s.teams.RemovePlayer(s.ctx, team.ID, s.id("owner"), s.id("owner"))
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonSelfActionForbidden)
	s.True(s.player(team.ID, "owner").Active())
}

func (s *RosterTestSuite) TestRemovePlayer_TargetMustBeActive() {
	team := s.newRoster()

	err := s.teams.RemovePlayer(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.requireAppError(err, apperrors.KindNotFound, apperrors.ReasonNotTeamMember)
	s.True(errors.Is(err, &apperrors.Error{Kind: apperrors.KindNotFound, Entity: apperrors.EntityPlayer}))

	s.Require().NoError(s.teams.RemovePlayer(s.ctx, team.ID, s.id("member"), s.id("owner")))
	err = s.teams.RemovePlayer(s.ctx, team.ID, s.id("member"), s.id("owner"))
	s.requireAppError(err, apperrors.KindNotFound, apperrors.ReasonNotTeamMember)
}

func (s *RosterTestSuite) TestRemovePlayer_MissingTeam() {
	err := s.teams.RemovePlayer(s.ctx, 999, s.id("member"), s.id("owner"))
	s.True(errors.Is(err, &apperrors.Error{Kind: apperrors.KindNotFound, Entity: apperrors.EntityTeam}), err)
}

// --- LeaveTeam ---

func (s *RosterTestSuite) TestLeaveTeam_CleansUpRoles() {
	team := s.newRoster()

	s.Require().NoError(s.teams.LeaveTeam(s.ctx, team.ID, s.id("captain")))
	s.Require().NoError(s.teams.LeaveTeam(s.ctx, team.ID, s.id("auth")))

	team = s.reload(team.ID)
	s.Nil(team.CaptainID)
	s.Equal(models.IDSet{s.id("auth2")}, team.AuthorizedMembers)
	s.False(s.player(team.ID, "captain").Active())
	s.False(s.player(team.ID, "auth").Active())

	s.Equal([]notification.Kind{notification.KindLeft, notification.KindLeft}, s.emitter.kinds())
	s.Equal(s.id("owner"), s.emitter.last().AffectedUserID, "the owner is told who left")
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestLeaveTeam_RequiresActiveMembership() {
	team := s.newRoster()

	err := s.teams.LeaveTeam(s.ctx, team.ID, s.id("outsider"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotTeamMember)

	s.Require().NoError(s.teams.LeaveTeam(s.ctx, team.ID, s.id("member")))
	err = s.teams.LeaveTeam(s.ctx, team.ID, s.id("member"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotTeamMember)
}

func (s *RosterTestSuite) TestLeaveTeam_OwnerIsDenied() {
	team := s.newRoster()

	err := s.teams.LeaveTeam(s.ctx, team.ID, s.id("owner"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonOwnerMustTransferOrDelete)

	// Even as the last player left on the roster.
	for _, name := range []string{"captain", "auth", "auth2", "member"} {
		s.Require().NoError(s.teams.LeaveTeam(s.ctx, team.ID, s.id(name)))
	}
	err = s.teams.LeaveTeam(s.ctx, team.ID, s.id("owner"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonOwnerMustTransferOrDelete)
	s.True(s.player(team.ID, "owner").Active())
}

// --- SetCaptain ---

func (s *RosterTestSuite) TestSetCaptain_NonMemberIsNotFound() {
	team := s.newRoster()

	_, err := s.teams.SetCaptain(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.requireAppError(err, apperrors.KindNotFound, apperrors.ReasonNotTeamMember)
	s.False(errors.Is(err, apperrors.ErrPermissionDenied))
	s.True(s.reload(team.ID).IsCaptain(s.id("captain")))
}

func (s *RosterTestSuite) TestSetCaptain_FormerMemberIsNotFound() {
	team := s.newRoster()
	s.Require().NoError(s.teams.LeaveTeam(s.ctx, team.ID, s.id("member")))

	_, err := s.teams.SetCaptain(s.ctx, team.ID, s.id("member"), s.id("owner"))
	s.requireAppError(err, apperrors.KindNotFound, apperrors.ReasonNotTeamMember)
}

func (s *RosterTestSuite) TestSetCaptain_Idempotent() {
	team := s.newRoster()

	updated, err := s.teams.SetCaptain(s.ctx, team.ID, s.id("member"), s.id("owner"))
	s.Require().NoError(err)
	s.True(updated.IsCaptain(s.id("member")))

	updated, err = s.teams.SetCaptain(s.ctx, team.ID, s.id("member"), s.id("owner"))
	s.Require().NoError(err)
	s.True(updated.IsCaptain(s.id("member")))

	s.Equal([]notification.Kind{notification.KindPromotedCaptain}, s.emitter.kinds())
	s.Equal(s.id("member"), s.emitter.last().AffectedUserID)
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestSetCaptain_OwnerOnly() {
	team := s.newRoster()

	_, err := s.teams.SetCaptain(s.ctx, team.ID, s.id("member"), s.id("captain"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotOwner)
}

// --- SetAuthorizedMember ---

func (s *RosterTestSuite) TestSetAuthorizedMember_OwnerCannotAddThemself() {
	for _, size := range []int{6, 11} {
		team, err := s.teams.CreateTeam(s.ctx, s.id("owner"), CreateTeamInput{Name: fmt.Sprintf("Team %d", size), TeamSize: size})
		s.Require().NoError(err)

		_, err = s.teams.SetAuthorizedMember(s.ctx, team.ID, s.id("owner"), true, s.id("owner"))
		s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonSelfActionForbidden)
		s.assertInvariants(team.ID)
	}
}

func (s *RosterTestSuite) TestSetAuthorizedMember_AddAndRemove() {
	team := s.newRoster()

	updated, err := s.teams.SetAuthorizedMember(s.ctx, team.ID, s.id("member"), true, s.id("owner"))
	s.Require().NoError(err)
	s.True(updated.IsAuthorizedMember(s.id("member")))

	// Adding twice changes nothing.
	_, err = s.teams.SetAuthorizedMember(s.ctx, team.ID, s.id("member"), true, s.id("owner"))
	s.Require().NoError(err)

	updated, err = s.teams.SetAuthorizedMember(s.ctx, team.ID, s.id("member"), false, s.id("owner"))
	s.Require().NoError(err)
	s.False(updated.IsAuthorizedMember(s.id("member")))

	s.Equal([]notification.Kind{notification.KindAuthorizedAdded, notification.KindAuthorizedRemoved}, s.emitter.kinds())
	s.assertInvariants(team.ID)
}

func (s *RosterTestSuite) TestSetAuthorizedMember_RemoveAbsentIsNoop() {
	team := s.newRoster()

	updated, err := s.teams.SetAuthorizedMember(s.ctx, team.ID, s.id("outsider"), false, s.id("owner"))
	s.Require().NoError(err)
	s.Equal(models.IDSet{s.id("auth"), s.id("auth2")}, updated.AuthorizedMembers)
	s.Empty(s.emitter.kinds())
}

func (s *RosterTestSuite) TestSetAuthorizedMember_AddRequiresActivePlayer() {
	team := s.newRoster()

	_, err := s.teams.SetAuthorizedMember(s.ctx, team.ID, s.id("outsider"), true, s.id("owner"))
	s.requireAppError(err, apperrors.KindNotFound, apperrors.ReasonNotTeamMember)
}

func (s *RosterTestSuite) TestSetAuthorizedMember_OwnerOnly() {
	team := s.newRoster()

	_, err := s.teams.SetAuthorizedMember(s.ctx, team.ID, s.id("member"), true, s.id("auth"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotOwner)
	_, err = s.teams.SetAuthorizedMember(s.ctx, team.ID, s.id("auth"), false, s.id("captain"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotOwner)
}

// --- Resize / SetFormation ---

func (s *RosterTestSuite) TestResize_OutOfRange() {
	team := s.newRoster()

	for _, size := range []int{5, 12, 0, -1} {
		_, err := s.teams.Resize(s.ctx, team.ID, size, s.id("owner"))
		s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvalidTeamSize)
	}
	s.Equal(7, s.reload(team.ID).TeamSize)
}

func (s *RosterTestSuite) TestResize_BoundsSelectMatchingFormation() {
	team := s.newRoster()

	for _, size := range []int{6, 11} {
		updated, err := s.teams.Resize(s.ctx, team.ID, size, s.id("owner"))
		s.Require().NoError(err)
		s.Equal(size, updated.TeamSize)

		tpl, ok := formation.Default().Lookup(size, updated.Formation)
		s.Require().True(ok, "formation %q for size %d", updated.Formation, size)
		s.Equal(size, tpl.Size)
		s.Equal(formation.Default().AvailableFormations(size)[0].Name, updated.Formation)

		stored := s.reload(team.ID)
		s.Equal(size, stored.TeamSize)
		s.Equal(updated.Formation, stored.Formation)
	}
}

func (s *RosterTestSuite) TestResize_SameSizeKeepsFormation() {
	team := s.newRoster()
	_, err := s.teams.SetFormation(s.ctx, team.ID, "3-2-1", s.id("owner"))
	s.Require().NoError(err)

	updated, err := s.teams.Resize(s.ctx, team.ID, 7, s.id("captain"))
	s.Require().NoError(err)
	s.Equal("3-2-1", updated.Formation)
}

func (s *RosterTestSuite) TestResize_OwnerOrCaptain() {
	team := s.newRoster()

	_, err := s.teams.Resize(s.ctx, team.ID, 8, s.id("captain"))
	s.Require().NoError(err)

	for _, actor := range []string{"auth", "member", "outsider"} {
		_, err = s.teams.Resize(s.ctx, team.ID, 9, s.id(actor))
		s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotAuthorized)
	}
	s.Equal(8, s.reload(team.ID).TeamSize)
}

func (s *RosterTestSuite) TestResize_PermissionCheckedBeforeSize() {
	team := s.newRoster()

	_, err := s.teams.Resize(s.ctx, team.ID, 42, s.id("member"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotAuthorized)
}

func (s *RosterTestSuite) TestSetFormation() {
	team := s.newRoster()

	updated, err := s.teams.SetFormation(s.ctx, team.ID, "2-2-2", s.id("captain"))
	s.Require().NoError(err)
	s.Equal("2-2-2", updated.Formation)
	s.Equal("2-2-2", s.reload(team.ID).Formation)

	_, err = s.teams.SetFormation(s.ctx, team.ID, "4-4-2", s.id("owner"))
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvalidFormation)

	_, err = s.teams.SetFormation(s.ctx, team.ID, "2-3-1", s.id("auth"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotAuthorized)
}

// --- Profile / delete / reads ---

func (s *RosterTestSuite) TestUpdateTeamProfile() {
	team := s.newRoster()
	name := "Saturday League"
	desc := "Now on Saturdays"

	updated, err := s.teams.UpdateTeamProfile(s.ctx, team.ID, s.id("captain"), ProfileUpdate{Name: &name})
	s.Require().NoError(err)
	s.Equal(name, updated.Name)

	_, err = s.teams.UpdateTeamProfile(s.ctx, team.ID, s.id("owner"), ProfileUpdate{Description: &desc})
	s.Require().NoError(err)

	stored := s.reload(team.ID)
	s.Equal(name, stored.Name)
	s.Equal(desc, stored.Description)

	blank := " "
	_, err = s.teams.UpdateTeamProfile(s.ctx, team.ID, s.id("owner"), ProfileUpdate{Name: &blank})
	s.requireAppError(err, apperrors.KindInvalidState, apperrors.ReasonInvalidInput)

	_, err = s.teams.UpdateTeamProfile(s.ctx, team.ID, s.id("member"), ProfileUpdate{Name: &name})
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotAuthorized)
}

func (s *RosterTestSuite) TestDeleteTeam() {
	team := s.newRoster()
	_, err := s.invitations.CreateInvitation(s.ctx, team.ID, s.id("outsider"), s.id("owner"))
	s.Require().NoError(err)

	err = s.teams.DeleteTeam(s.ctx, team.ID, s.id("captain"))
	s.requireAppError(err, apperrors.KindPermissionDenied, apperrors.ReasonNotOwner)

	s.Require().NoError(s.teams.DeleteTeam(s.ctx, team.ID, s.id("owner")))

	_, err = s.teams.GetTeam(s.ctx, team.ID)
	s.True(errors.Is(err, apperrors.ErrNotFound))

	pending, err := s.repo.GetPendingInvitation(s.ctx, team.ID, s.id("outsider"))
	s.Require().NoError(err)
	s.Nil(pending)

	var players int64
	s.Require().NoError(s.db.Model(&Player{}).Where("team_id = ?", team.ID).Count(&players).Error)
	s.Equal(int64(5), players, "player rows are kept")

	err = s.teams.DeleteTeam(s.ctx, team.ID, s.id("owner"))
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *RosterTestSuite) TestAdminDeleteTeam() {
	team := s.newRoster()

	s.Require().NoError(s.teams.AdminDeleteTeam(s.ctx, team.ID))
	s.True(errors.Is(s.teams.AdminDeleteTeam(s.ctx, team.ID), apperrors.ErrNotFound))
}

func (s *RosterTestSuite) TestListPlayersAndTeams() {
	team := s.newRoster()
	s.Require().NoError(s.teams.LeaveTeam(s.ctx, team.ID, s.id("member")))

	active, err := s.teams.ListPlayers(s.ctx, team.ID, false)
	s.Require().NoError(err)
	s.Len(active, 4)
	s.Require().NotNil(active[0].User)
	s.Equal("owner", active[0].User.Username)

	all, err := s.teams.ListPlayers(s.ctx, team.ID, true)
	s.Require().NoError(err)
	s.Len(all, 5)

	_, err = s.teams.ListPlayers(s.ctx, 999, false)
	s.True(errors.Is(err, apperrors.ErrNotFound))

	mine, total, err := s.teams.ListMyTeams(s.ctx, s.id("captain"), 1, 10)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(team.ID, mine[0].ID)

	_, total, err = s.teams.ListMyTeams(s.ctx, s.id("member"), 1, 10)
	s.Require().NoError(err)
	s.Zero(total, "former players do not list the team")

	_, err = s.teams.CreateTeam(s.ctx, s.id("outsider"), CreateTeamInput{Name: "Other Club", TeamSize: 6})
	s.Require().NoError(err)
	found, total, err := s.teams.ListTeams(s.ctx, 1, 10, TeamFilters{Name: "sunday"})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(team.ID, found[0].ID)

	_, total, err = s.teams.ListTeams(s.ctx, 1, 10, TeamFilters{OwnerID: s.id("outsider")})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
}

func TestRosterTestSuite(t *testing.T) {
	suite.Run(t, new(RosterTestSuite))
}
