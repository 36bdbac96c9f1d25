package match

import (
	"context"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/rosterhub/internal/apperrors"
	"github.com/DhavalSuthar-24/rosterhub/internal/team"
	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// RosterReader is the part of the roster store the match service consults to
// authorize an actor.
type RosterReader interface {
	GetTeamByID(ctx context.Context, id uint) (*team.Team, error)
	GetPlayerByUser(ctx context.Context, teamID, userID uint) (*team.Player, error)
}

type CreateMatchInput struct {
	TeamID       uint
	OpponentTeam string
	MatchDate    time.Time
	Location     string
}

type MatchService struct {
	repo   MatchRepository
	roster RosterReader
}

func NewMatchService(repo MatchRepository, roster RosterReader) *MatchService {
	return &MatchService{repo: repo, roster: roster}
}

// authorize loads the team and checks that actorID may schedule its matches.
func (s *MatchService) authorize(ctx context.Context, teamID, actorID uint) (*team.Team, error) {
	t, err := s.roster.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, apperrors.StoreFailure("load team", err)
	}
	if t == nil {
		return nil, apperrors.NotFound(apperrors.EntityTeam, apperrors.ReasonNone)
	}
	player, err := s.roster.GetPlayerByUser(ctx, teamID, actorID)
	if err != nil {
		return nil, apperrors.StoreFailure("load player", err)
	}
	if err := team.Decide(actorID, team.ActionScheduleMatch, t, player).Err(team.ActionScheduleMatch); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *MatchService) CreateMatch(ctx context.Context, actorID uint, in CreateMatchInput) (*Match, error) {
	opponent := strings.TrimSpace(in.OpponentTeam)
	if opponent == "" {
		return nil, apperrors.InvalidState(apperrors.ReasonInvalidInput, "opponent team is required")
	}
	if in.MatchDate.IsZero() {
		return nil, apperrors.InvalidState(apperrors.ReasonInvalidInput, "match date is required")
	}

	if _, err := s.authorize(ctx, in.TeamID, actorID); err != nil {
		return nil, err
	}

	match := &Match{
		TeamID:       in.TeamID,
		OpponentTeam: opponent,
		MatchDate:    in.MatchDate.UTC(),
		Location:     strings.TrimSpace(in.Location),
		Status:       StatusScheduled,
		CreatedByID:  actorID,
	}
	if err := s.repo.CreateMatch(ctx, match); err != nil {
		return nil, apperrors.StoreFailure("create match", err)
	}

	logger.Info().Uint("match_id", match.ID).Uint("team_id", match.TeamID).Uint("actor_id", actorID).Msg("match scheduled")
	return match, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID uint) (*Match, error) {
	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, apperrors.StoreFailure("load match", err)
	}
	if match == nil {
		return nil, apperrors.NotFound(apperrors.EntityMatch, apperrors.ReasonNone)
	}
	return match, nil
}

// ListTeamMatches lists matches for an existing team. status may be empty.
func (s *MatchService) ListTeamMatches(ctx context.Context, teamID uint, status string, page, limit int) ([]Match, int64, error) {
	filter := MatchStatus(status)
	if filter != "" && !validStatus(filter) {
		return nil, 0, apperrors.InvalidState(apperrors.ReasonInvalidInput, "unknown match status "+status)
	}

	t, err := s.roster.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, 0, apperrors.StoreFailure("load team", err)
	}
	if t == nil {
		return nil, 0, apperrors.NotFound(apperrors.EntityTeam, apperrors.ReasonNone)
	}

	matches, total, err := s.repo.GetTeamMatches(ctx, teamID, filter, page, limit)
	if err != nil {
		return nil, 0, apperrors.StoreFailure("list matches", err)
	}
	return matches, total, nil
}

// loadScheduled fetches a match the actor may manage and which has not been
// played or cancelled yet.
func (s *MatchService) loadScheduled(ctx context.Context, matchID, actorID uint) (*Match, error) {
	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, match.TeamID, actorID); err != nil {
		return nil, err
	}
	if !match.Scheduled() {
		return nil, apperrors.InvalidState(apperrors.ReasonMatchNotScheduled, "match is already "+string(match.Status))
	}
	return match, nil
}

// RecordResult stores the final score and completes the match.
func (s *MatchService) RecordResult(ctx context.Context, matchID, actorID uint, homeScore, awayScore int) (*Match, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, apperrors.InvalidState(apperrors.ReasonInvalidInput, "scores cannot be negative")
	}
	match, err := s.loadScheduled(ctx, matchID, actorID)
	if err != nil {
		return nil, err
	}

	match.HomeScore = &homeScore
	match.AwayScore = &awayScore
	match.Status = StatusCompleted
	if err := s.repo.UpdateMatch(ctx, match, "home_score", "away_score", "status"); err != nil {
		return nil, apperrors.StoreFailure("record result", err)
	}

	logger.Info().Uint("match_id", match.ID).Int("home", homeScore).Int("away", awayScore).Msg("match result recorded")
	return match, nil
}

func (s *MatchService) CancelMatch(ctx context.Context, matchID, actorID uint) (*Match, error) {
	match, err := s.loadScheduled(ctx, matchID, actorID)
	if err != nil {
		return nil, err
	}

	match.Status = StatusCancelled
	if err := s.repo.UpdateMatch(ctx, match, "status"); err != nil {
		return nil, apperrors.StoreFailure("cancel match", err)
	}
	return match, nil
}

// DeleteMatch removes a match. Callers must have checked the administrator role.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID uint) error {
	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return err
	}
	if err := s.repo.DeleteMatch(ctx, matchID); err != nil {
		return apperrors.StoreFailure("delete match", err)
	}
	logger.Info().Uint("match_id", matchID).Msg("match deleted by admin")
	return nil
}
