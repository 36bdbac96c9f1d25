package user

import (
	"context"
	"fmt"

	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// SeedRoles creates the built-in roles and grants admin to adminUsername when
// that account exists. An empty adminUsername skips the grant.
func SeedRoles(ctx context.Context, repo UserRepository, adminUsername string) error {
	if err := repo.EnsureRoles(ctx, RolePlayer, RoleAdmin); err != nil {
		return fmt.Errorf("ensure roles: %w", err)
	}
	if adminUsername == "" {
		return nil
	}

	u, err := repo.GetUserByUsername(ctx, adminUsername)
	if err != nil {
		return fmt.Errorf("load admin user: %w", err)
	}
	if u == nil {
		logger.Warn().Str("username", adminUsername).Msg("admin user not registered yet, skipping grant")
		return nil
	}
	if err := repo.AssignRole(ctx, u.ID, RoleAdmin); err != nil {
		return fmt.Errorf("grant admin: %w", err)
	}
	logger.Info().Str("username", adminUsername).Uint("user_id", u.ID).Msg("admin role granted")
	return nil
}
