package user

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdateUser(ctx context.Context, u *User, columns ...string) error
	GetUserRoles(ctx context.Context, userID uint) ([]string, error)
	AssignRole(ctx context.Context, userID uint, roleName string) error
	EnsureRoles(ctx context.Context, names ...string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(u).Error; err != nil {
			return err
		}
		var role Role
		if err := tx.Where("name = ?", RolePlayer).FirstOrCreate(&role, Role{Name: RolePlayer}).Error; err != nil {
			return err
		}
		return tx.Model(u).Association("Roles").Append(&role)
	})
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UpdateUser writes only the named columns.
func (r *userRepository) UpdateUser(ctx context.Context, u *User, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(u).Select(columns).Updates(u).Error
}

func (r *userRepository) GetUserRoles(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ? AND roles.deleted_at IS NULL", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *userRepository) AssignRole(ctx context.Context, userID uint, roleName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role Role
		if err := tx.Where("name = ?", roleName).FirstOrCreate(&role, Role{Name: roleName}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Table("user_roles").
			Create(map[string]interface{}{"user_id": userID, "role_id": role.ID}).Error
	})
}

// EnsureRoles creates any missing role rows.
func (r *userRepository) EnsureRoles(ctx context.Context, names ...string) error {
	for _, name := range names {
		var role Role
		if err := r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&role, Role{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
