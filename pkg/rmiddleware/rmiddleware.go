package rmiddleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/rosterhub/internal/middleware"
	"github.com/DhavalSuthar-24/rosterhub/pkg/responses"
)

// UserRolesKey holds the caller's role names after RoleMiddleware ran.
const UserRolesKey = "user_roles"

// RoleLookup resolves a user's role names.
type RoleLookup interface {
	GetUserRoles(ctx context.Context, userID uint) ([]string, error)
}

// RoleMiddleware lets the request through when the authenticated user holds
// any of requiredRoles. It must run after AuthMiddleware.
func RoleMiddleware(lookup RoleLookup, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			responses.Unauthorized(c, "Unauthorized: "+err.Error())
			return
		}

		userRoles, err := lookup.GetUserRoles(c.Request.Context(), userID)
		if err != nil {
			responses.InternalServerError(c, "Failed to get user roles")
			return
		}

		if !hasAnyRole(userRoles, requiredRoles) {
			responses.Forbidden(c, "You don't have permission to access this resource")
			return
		}

		c.Set(UserRolesKey, userRoles)
		c.Next()
	}
}

func hasAnyRole(userRoles, requiredRoles []string) bool {
	for _, userRole := range userRoles {
		for _, requiredRole := range requiredRoles {
			if strings.EqualFold(userRole, requiredRole) {
				return true
			}
		}
	}
	return false
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware(lookup RoleLookup) gin.HandlerFunc {
	return RoleMiddleware(lookup, "admin")
}
