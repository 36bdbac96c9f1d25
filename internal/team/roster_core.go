package team

import (
	"context"
	"errors"
	"time"

	"github.com/DhavalSuthar-24/rosterhub/internal/apperrors"
	"github.com/DhavalSuthar-24/rosterhub/internal/formation"
	"github.com/DhavalSuthar-24/rosterhub/internal/notification"
	"github.com/DhavalSuthar-24/rosterhub/internal/user"
)

// UserDirectory resolves accounts referenced by roster operations.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id uint) (*user.User, error)
}

// FormationLookup lists the templates for a team size, default first.
type FormationLookup interface {
	AvailableFormations(size int) []formation.Template
}

// rosterCore holds what the lifecycle and invitation services share: the
// store, the emitter, and the per-team locked transaction.
type rosterCore struct {
	repo    TeamRepository
	emitter notification.Emitter
	now     func() time.Time
}

// withTeamLock runs fn in one transaction holding the team row lock. A
// missing team is NotFound; anything fn returns rolls the transaction back.
func (c *rosterCore) withTeamLock(ctx context.Context, teamID uint, op string, fn func(repo TeamRepository, team *Team) error) error {
	err := c.repo.WithTransaction(ctx, func(repo TeamRepository) error {
		team, err := repo.GetTeamForUpdate(ctx, teamID)
		if err != nil {
			return apperrors.StoreFailure("load team", err)
		}
		if team == nil {
			return apperrors.NotFound(apperrors.EntityTeam, apperrors.ReasonNone)
		}
		return fn(repo, team)
	})
	return asAppError(op, err)
}

// emit publishes events once their transaction has committed.
func (c *rosterCore) emit(ctx context.Context, events []notification.Event) {
	for _, e := range events {
		c.emitter.Emit(ctx, e)
	}
}

func (c *rosterCore) event(kind notification.Kind, team *Team, actorID, affectedUserID uint) notification.Event {
	return notification.Event{
		Kind:           kind,
		TeamID:         team.ID,
		TeamName:       team.Name,
		ActorID:        actorID,
		AffectedUserID: affectedUserID,
		OccurredAt:     c.now().UTC(),
	}
}

// activePlayer loads userID's player row and returns it only when active.
func activePlayer(ctx context.Context, repo TeamRepository, teamID, userID uint) (*Player, error) {
	p, err := repo.GetPlayerByUser(ctx, teamID, userID)
	if err != nil {
		return nil, apperrors.StoreFailure("load player", err)
	}
	if !p.Active() {
		return nil, nil
	}
	return p, nil
}

func notMember() error {
	return apperrors.NotFound(apperrors.EntityPlayer, apperrors.ReasonNotTeamMember)
}

func asAppError(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.StoreFailure(op, err)
}
