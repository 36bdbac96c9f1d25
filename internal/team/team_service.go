package team

import (
	"context"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/rosterhub/internal/apperrors"
	"github.com/DhavalSuthar-24/rosterhub/internal/notification"
	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// TeamService applies roster lifecycle changes. Every mutation runs in one
// transaction that holds the team row lock, and emits its events only after
// the transaction commits.
type TeamService struct {
	rosterCore
	formations FormationLookup
}

func NewTeamService(repo TeamRepository, formations FormationLookup, emitter notification.Emitter) *TeamService {
	return &TeamService{
		rosterCore: rosterCore{repo: repo, emitter: emitter, now: time.Now},
		formations: formations,
	}
}

// CreateTeamInput holds the fields of a new team.
type CreateTeamInput struct {
	Name        string
	Description string
	TeamSize    int
}

// ProfileUpdate changes the team's descriptive fields. Nil fields are kept.
type ProfileUpdate struct {
	Name        *string
	Description *string
}

func (s *TeamService) defaultFormation(size int) (string, error) {
	if !ValidateTeamSize(size) {
		return "", apperrors.InvalidState(apperrors.ReasonInvalidTeamSize, "team size must be between 6 and 11")
	}
	templates := s.formations.AvailableFormations(size)
	if len(templates) == 0 {
		return "", apperrors.InvalidState(apperrors.ReasonInvalidFormation, "no formation available for this team size")
	}
	return templates[0].Name, nil
}

// CreateTeam creates a team owned by actorID, who becomes its first player.
func (s *TeamService) CreateTeam(ctx context.Context, actorID uint, in CreateTeamInput) (*Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.InvalidState(apperrors.ReasonInvalidInput, "team name is required")
	}
	formationName, err := s.defaultFormation(in.TeamSize)
	if err != nil {
		return nil, err
	}

	team := &Team{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		TeamSize:    in.TeamSize,
		Formation:   formationName,
		CreatedByID: actorID,
	}
	err = s.repo.WithTransaction(ctx, func(repo TeamRepository) error {
		if err := repo.CreateTeam(ctx, team); err != nil {
			return err
		}
		owner := &Player{TeamID: team.ID, UserID: actorID}
		owner.Activate(s.now())
		return repo.UpsertPlayer(ctx, owner)
	})
	if err != nil {
		return nil, asAppError("create team", err)
	}

	logger.Info().Uint("team_id", team.ID).Uint("actor_id", actorID).Msg("team created")
	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID uint) (*Team, error) {
	team, err := s.repo.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, apperrors.StoreFailure("load team", err)
	}
	if team == nil {
		return nil, apperrors.NotFound(apperrors.EntityTeam, apperrors.ReasonNone)
	}
	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context, page, limit int, filters TeamFilters) ([]Team, int64, error) {
	teams, total, err := s.repo.ListTeams(ctx, page, limit, filters)
	if err != nil {
		return nil, 0, apperrors.StoreFailure("list teams", err)
	}
	return teams, total, nil
}

// ListMyTeams lists the teams where userID is an active player.
func (s *TeamService) ListMyTeams(ctx context.Context, userID uint, page, limit int) ([]Team, int64, error) {
	teams, total, err := s.repo.ListTeamsByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, apperrors.StoreFailure("list teams", err)
	}
	return teams, total, nil
}

// ListPlayers returns the roster; inactive rows are included on request.
func (s *TeamService) ListPlayers(ctx context.Context, teamID uint, includeInactive bool) ([]Player, error) {
	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}
	players, err := s.repo.GetPlayersByTeam(ctx, teamID, !includeInactive)
	if err != nil {
		return nil, apperrors.StoreFailure("list players", err)
	}
	return players, nil
}

// UpdateTeamProfile changes name and description. Owner or captain only.
func (s *TeamService) UpdateTeamProfile(ctx context.Context, teamID, actorID uint, in ProfileUpdate) (*Team, error) {
	var updated *Team
	err := s.withTeamLock(ctx, teamID, "update team", func(repo TeamRepository, team *Team) error {
		if err := Decide(actorID, ActionUpdateProfile, team, nil).Err(ActionUpdateProfile); err != nil {
			return err
		}

		var columns []string
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return apperrors.InvalidState(apperrors.ReasonInvalidInput, "team name is required")
			}
			team.Name = name
			columns = append(columns, "name")
		}
		if in.Description != nil {
			team.Description = strings.TrimSpace(*in.Description)
			columns = append(columns, "description")
		}
		if err := repo.UpdateTeam(ctx, team, columns...); err != nil {
			return apperrors.StoreFailure("update team", err)
		}
		updated = team
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Resize sets the team size and selects the default formation for it.
// Owner or captain only. Resizing to the current size keeps the formation.
func (s *TeamService) Resize(ctx context.Context, teamID uint, newSize int, actorID uint) (*Team, error) {
	var updated *Team
	err := s.withTeamLock(ctx, teamID, "resize team", func(repo TeamRepository, team *Team) error {
		if err := Decide(actorID, ActionSetTeamSize, team, nil).Err(ActionSetTeamSize); err != nil {
			return err
		}
		formationName, err := s.defaultFormation(newSize)
		if err != nil {
			return err
		}
		updated = team
		if team.TeamSize == newSize {
			return nil
		}

		team.TeamSize = newSize
		team.Formation = formationName
		if err := repo.UpdateTeam(ctx, team, "team_size", "formation"); err != nil {
			return apperrors.StoreFailure("update team", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Uint("team_id", teamID).Uint("actor_id", actorID).Int("team_size", newSize).Msg("team resized")
	return updated, nil
}

// SetFormation picks a template valid for the team's current size.
func (s *TeamService) SetFormation(ctx context.Context, teamID uint, name string, actorID uint) (*Team, error) {
	var updated *Team
	err := s.withTeamLock(ctx, teamID, "set formation", func(repo TeamRepository, team *Team) error {
		if err := Decide(actorID, ActionSetFormation, team, nil).Err(ActionSetFormation); err != nil {
			return err
		}
		if !s.hasFormation(team.TeamSize, name) {
			return apperrors.InvalidState(apperrors.ReasonInvalidFormation, "formation is not available for this team size")
		}
		updated = team
		if team.Formation == name {
			return nil
		}
		team.Formation = name
		if err := repo.UpdateTeam(ctx, team, "formation"); err != nil {
			return apperrors.StoreFailure("update team", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TeamService) hasFormation(size int, name string) bool {
	for _, t := range s.formations.AvailableFormations(size) {
		if t.Name == name {
			return true
		}
	}
	return false
}

// DeleteTeam soft-deletes the team. Owner only.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID, actorID uint) error {
	err := s.withTeamLock(ctx, teamID, "delete team", func(repo TeamRepository, team *Team) error {
		if err := Decide(actorID, ActionDeleteTeam, team, nil).Err(ActionDeleteTeam); err != nil {
			return err
		}
		return asAppError("delete team", repo.DeleteTeam(ctx, team.ID))
	})
	if err != nil {
		return err
	}
	logger.Info().Uint("team_id", teamID).Uint("actor_id", actorID).Msg("team deleted")
	return nil
}

// AdminDeleteTeam deletes any team. Callers must have checked the admin role.
func (s *TeamService) AdminDeleteTeam(ctx context.Context, teamID uint) error {
	err := s.withTeamLock(ctx, teamID, "delete team", func(repo TeamRepository, team *Team) error {
		return asAppError("delete team", repo.DeleteTeam(ctx, team.ID))
	})
	if err != nil {
		return err
	}
	logger.Warn().Uint("team_id", teamID).Msg("team deleted by administrator")
	return nil
}

// RemovePlayer takes targetUserID off the roster. Owner only, and never the
// owner themself: owners delete the team instead.
func (s *TeamService) RemovePlayer(ctx context.Context, teamID, targetUserID, actorID uint) error {
	var events []notification.Event
	err := s.withTeamLock(ctx, teamID, "remove player", func(repo TeamRepository, team *Team) error {
		if err := Decide(actorID, ActionRemovePlayer, team, nil).Err(ActionRemovePlayer); err != nil {
			return err
		}
		target, err := activePlayer(ctx, repo, team.ID, targetUserID)
		if err != nil {
			return err
		}
		if target == nil {
			return notMember()
		}
		if targetUserID == actorID {
			return apperrors.InvalidState(apperrors.ReasonSelfActionForbidden, "owners cannot remove themselves; delete the team instead")
		}

		events = s.depart(team, target, actorID, notification.KindRemoved)
		return s.commitDeparture(ctx, repo, team, target)
	})
	if err != nil {
		return err
	}

	logger.Info().Uint("team_id", teamID).Uint("actor_id", actorID).Uint("user_id", targetUserID).Msg("player removed")
	s.emit(ctx, events)
	return nil
}

// LeaveTeam takes the actor off the roster. The owner may not leave.
func (s *TeamService) LeaveTeam(ctx context.Context, teamID, actorID uint) error {
	var events []notification.Event
	err := s.withTeamLock(ctx, teamID, "leave team", func(repo TeamRepository, team *Team) error {
		self, err := activePlayer(ctx, repo, team.ID, actorID)
		if err != nil {
			return err
		}
		if err := Decide(actorID, ActionLeaveTeam, team, self).Err(ActionLeaveTeam); err != nil {
			return err
		}
		if team.IsOwner(actorID) {
			return apperrors.PermissionDenied(apperrors.ReasonOwnerMustTransferOrDelete, "the owner cannot leave; delete the team instead")
		}

		events = s.depart(team, self, actorID, notification.KindLeft)
		return s.commitDeparture(ctx, repo, team, self)
	})
	if err != nil {
		return err
	}

	logger.Info().Uint("team_id", teamID).Uint("actor_id", actorID).Msg("player left team")
	s.emit(ctx, events)
	return nil
}

// depart deactivates the player and strips every role that requires
// membership. It only changes the in-memory snapshot.
func (s *TeamService) depart(team *Team, player *Player, actorID uint, kind notification.Kind) []notification.Event {
	player.Deactivate(s.now())
	if team.IsCaptain(player.UserID) {
		team.CaptainID = nil
	}
	if team.IsAuthorizedMember(player.UserID) {
		team.AuthorizedMembers = team.AuthorizedMembers.Without(player.UserID)
	}

	affected := player.UserID
	if kind == notification.KindLeft {
		affected = team.CreatedByID
	}
	return []notification.Event{s.event(kind, team, actorID, affected)}
}

func (s *TeamService) commitDeparture(ctx context.Context, repo TeamRepository, team *Team, player *Player) error {
	if err := repo.UpsertPlayer(ctx, player); err != nil {
		return apperrors.StoreFailure("deactivate player", err)
	}
	if err := repo.UpdateTeam(ctx, team, "captain_id", "authorized_members"); err != nil {
		return apperrors.StoreFailure("update team", err)
	}
	return nil
}

// SetCaptain makes candidateID captain. Owner only; the candidate must be an
// active player. Setting the current captain again changes nothing.
func (s *TeamService) SetCaptain(ctx context.Context, teamID, candidateID, actorID uint) (*Team, error) {
	var updated *Team
	var events []notification.Event
	err := s.withTeamLock(ctx, teamID, "set captain", func(repo TeamRepository, team *Team) error {
		if err := Decide(actorID, ActionAssignCaptain, team, nil).Err(ActionAssignCaptain); err != nil {
			return err
		}
		candidate, err := activePlayer(ctx, repo, team.ID, candidateID)
		if err != nil {
			return err
		}
		if candidate == nil {
			return notMember()
		}
		updated = team
		if team.IsCaptain(candidateID) {
			return nil
		}

		team.CaptainID = &candidateID
		if err := repo.UpdateTeam(ctx, team, "captain_id"); err != nil {
			return apperrors.StoreFailure("update team", err)
		}
		events = append(events, s.event(notification.KindPromotedCaptain, team, actorID, candidateID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events)
	return updated, nil
}

// SetAuthorizedMember grants (add) or revokes authorized-member status.
// Owner only. The owner cannot grant it to themself and grants require an
// active player. Revoking an absent grant succeeds without change.
func (s *TeamService) SetAuthorizedMember(ctx context.Context, teamID, userID uint, add bool, actorID uint) (*Team, error) {
	var updated *Team
	var events []notification.Event
	err := s.withTeamLock(ctx, teamID, "set authorized member", func(repo TeamRepository, team *Team) error {
		if err := Decide(actorID, ActionManageAuthorized, team, nil).Err(ActionManageAuthorized); err != nil {
			return err
		}
		updated = team

		if !add {
			if !team.IsAuthorizedMember(userID) {
				return nil
			}
			team.AuthorizedMembers = team.AuthorizedMembers.Without(userID)
			events = append(events, s.event(notification.KindAuthorizedRemoved, team, actorID, userID))
		} else {
			if team.IsOwner(userID) {
				return apperrors.InvalidState(apperrors.ReasonSelfActionForbidden, "the owner cannot be an authorized member")
			}
			member, err := activePlayer(ctx, repo, team.ID, userID)
			if err != nil {
				return err
			}
			if member == nil {
				return notMember()
			}
			if team.IsAuthorizedMember(userID) {
				return nil
			}
			team.AuthorizedMembers = team.AuthorizedMembers.With(userID)
			events = append(events, s.event(notification.KindAuthorizedAdded, team, actorID, userID))
		}

		if err := repo.UpdateTeam(ctx, team, "authorized_members"); err != nil {
			return apperrors.StoreFailure("update team", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events)
	return updated, nil
}
