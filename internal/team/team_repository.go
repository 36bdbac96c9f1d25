package team

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamFilters narrows ListTeams.
type TeamFilters struct {
	Name    string
	OwnerID uint
}

// TeamRepository defines the roster store. Lookups return (nil, nil) when the
// row does not exist; a non-nil error always means the store failed.
type TeamRepository interface {
	// Team operations
	CreateTeam(ctx context.Context, team *Team) error
	GetTeamByID(ctx context.Context, id uint) (*Team, error)
	GetTeamForUpdate(ctx context.Context, id uint) (*Team, error)
	UpdateTeam(ctx context.Context, team *Team, columns ...string) error
	DeleteTeam(ctx context.Context, id uint) error
	ListTeams(ctx context.Context, page, limit int, filters TeamFilters) ([]Team, int64, error)
	ListTeamsByUser(ctx context.Context, userID uint, page, limit int) ([]Team, int64, error)

	// Player operations
	GetPlayersByTeam(ctx context.Context, teamID uint, activeOnly bool) ([]Player, error)
	GetPlayerByUser(ctx context.Context, teamID, userID uint) (*Player, error)
	UpsertPlayer(ctx context.Context, player *Player) error

	// Invitation operations
	CreateInvitation(ctx context.Context, invitation *Invitation) error
	GetInvitationByID(ctx context.Context, id uint) (*Invitation, error)
	GetPendingInvitation(ctx context.Context, teamID, userID uint) (*Invitation, error)
	GetInvitationsByTeam(ctx context.Context, teamID uint, status InvitationStatus, page, limit int) ([]Invitation, int64, error)
	GetInvitationsByUser(ctx context.Context, userID uint, status InvitationStatus, page, limit int) ([]Invitation, int64, error)
	UpdateInvitationStatus(ctx context.Context, invitation *Invitation) error
	DeclineStaleInvitations(ctx context.Context, createdBefore, now time.Time) (int64, error)

	WithTransaction(ctx context.Context, txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func paginate(page, limit int) (offset int, size int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return (page - 1) * limit, limit
}

// --- Team Operations ---

func (r *teamRepository) CreateTeam(ctx context.Context, team *Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) GetTeamByID(ctx context.Context, id uint) (*Team, error) {
	var team Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

// GetTeamForUpdate loads the team and row-locks it until the surrounding
// transaction ends. SQLite serializes writers itself and has no FOR UPDATE.
func (r *teamRepository) GetTeamForUpdate(ctx context.Context, id uint) (*Team, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var team Team
	if err := query.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

// UpdateTeam writes only the named columns so concurrent edits of other
// fields are not overwritten.
func (r *teamRepository) UpdateTeam(ctx context.Context, team *Team, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(team).Select(columns).Updates(team).Error
}

// DeleteTeam soft-deletes the team and its pending invitations. Player rows
// stay for match history.
func (r *teamRepository) DeleteTeam(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("team_id = ? AND status = ?", id, InvitationPending).Delete(&Invitation{}).Error; err != nil {
		return err
	}
	return db.Delete(&Team{}, id).Error
}

func (r *teamRepository) ListTeams(ctx context.Context, page, limit int, filters TeamFilters) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.WithContext(ctx).Model(&Team{})
	if filters.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filters.Name)+"%")
	}
	if filters.OwnerID != 0 {
		query = query.Where("created_by_id = ?", filters.OwnerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset, size := paginate(page, limit)
	if err := query.Offset(offset).Limit(size).Order("created_at desc, id desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// ListTeamsByUser lists teams where userID is an active player.
func (r *teamRepository) ListTeamsByUser(ctx context.Context, userID uint, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.WithContext(ctx).Model(&Team{}).
		Joins("JOIN players ON players.team_id = teams.id").
		Where("players.user_id = ? AND players.is_active = ? AND players.deleted_at IS NULL", userID, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset, size := paginate(page, limit)
	if err := query.Offset(offset).Limit(size).Order("teams.created_at DESC").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// --- Player Operations ---

func (r *teamRepository) GetPlayersByTeam(ctx context.Context, teamID uint, activeOnly bool) ([]Player, error) {
	var players []Player
	query := r.db.WithContext(ctx).Preload("User").Where("team_id = ?", teamID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("joined_at asc, id asc").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *teamRepository) GetPlayerByUser(ctx context.Context, teamID, userID uint) (*Player, error) {
	var player Player
	err := r.db.WithContext(ctx).Where("team_id = ? AND user_id = ?", teamID, userID).First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

// UpsertPlayer saves a loaded player, or inserts a new one. An insert that
// races an existing (team, user) row rewrites that row's lifecycle columns.
func (r *teamRepository) UpsertPlayer(ctx context.Context, player *Player) error {
	if player.ID != 0 {
		return r.db.WithContext(ctx).Omit("User").Save(player).Error
	}
	return r.db.WithContext(ctx).Omit("User").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "is_active", "joined_at", "left_at", "updated_at"}),
	}).Create(player).Error
}

// --- Invitation Operations ---

func (r *teamRepository) CreateInvitation(ctx context.Context, invitation *Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *teamRepository) GetInvitationByID(ctx context.Context, id uint) (*Invitation, error) {
	var invitation Invitation
	if err := r.db.WithContext(ctx).First(&invitation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *teamRepository) GetPendingInvitation(ctx context.Context, teamID, userID uint) (*Invitation, error) {
	var invitation Invitation
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND invited_user_id = ? AND status = ?", teamID, userID, InvitationPending).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *teamRepository) GetInvitationsByTeam(ctx context.Context, teamID uint, status InvitationStatus, page, limit int) ([]Invitation, int64, error) {
	query := r.db.WithContext(ctx).Model(&Invitation{}).Where("team_id = ?", teamID)
	return r.listInvitations(query, status, page, limit, false)
}

func (r *teamRepository) GetInvitationsByUser(ctx context.Context, userID uint, status InvitationStatus, page, limit int) ([]Invitation, int64, error) {
	query := r.db.WithContext(ctx).Model(&Invitation{}).Where("invited_user_id = ?", userID)
	return r.listInvitations(query, status, page, limit, true)
}

func (r *teamRepository) listInvitations(query *gorm.DB, status InvitationStatus, page, limit int, withTeam bool) ([]Invitation, int64, error) {
	var invitations []Invitation
	var total int64

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if withTeam {
		query = query.Preload("Team")
	}
	offset, size := paginate(page, limit)
	if err := query.Offset(offset).Limit(size).Order("created_at desc, id desc").Find(&invitations).Error; err != nil {
		return nil, 0, err
	}
	return invitations, total, nil
}

func (r *teamRepository) UpdateInvitationStatus(ctx context.Context, invitation *Invitation) error {
	return r.db.WithContext(ctx).Model(invitation).Select("status", "responded_at").Updates(invitation).Error
}

// DeclineStaleInvitations declines every pending invitation created before
// createdBefore and returns how many changed.
func (r *teamRepository) DeclineStaleInvitations(ctx context.Context, createdBefore, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Invitation{}).
		Where("status = ? AND created_at < ?", InvitationPending, createdBefore).
		Updates(map[string]interface{}{"status": InvitationDeclined, "responded_at": now})
	return result.RowsAffected, result.Error
}

// WithTransaction runs txFunc against a repository bound to one transaction.
func (r *teamRepository) WithTransaction(ctx context.Context, txFunc func(TeamRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(&teamRepository{db: tx})
	})
}
