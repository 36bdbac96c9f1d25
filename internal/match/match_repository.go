package match

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// MatchRepository persists matches. Lookups return (nil, nil) when the row
// does not exist.
type MatchRepository interface {
	CreateMatch(ctx context.Context, match *Match) error
	GetMatchByID(ctx context.Context, id uint) (*Match, error)
	UpdateMatch(ctx context.Context, match *Match, columns ...string) error
	DeleteMatch(ctx context.Context, id uint) error
	GetTeamMatches(ctx context.Context, teamID uint, status MatchStatus, page, limit int) ([]Match, int64, error)
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateMatch(ctx context.Context, match *Match) error {
	return r.db.WithContext(ctx).Omit("Team").Create(match).Error
}

func (r *matchRepository) GetMatchByID(ctx context.Context, id uint) (*Match, error) {
	var match Match
	if err := r.db.WithContext(ctx).Preload("Team").First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) UpdateMatch(ctx context.Context, match *Match, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(match).Omit("Team").Select(columns).Updates(match).Error
}

// DeleteMatch soft-deletes the match. Deleting a missing match is not an error.
func (r *matchRepository) DeleteMatch(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Match{}, id).Error
}

// GetTeamMatches lists a team's matches, soonest first. An empty status
// matches every status.
func (r *matchRepository) GetTeamMatches(ctx context.Context, teamID uint, status MatchStatus, page, limit int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.WithContext(ctx).Model(&Match{}).Where("team_id = ?", teamID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	err := query.Offset((page - 1) * limit).Limit(limit).Order("match_date asc, id asc").Find(&matches).Error
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}
