package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
	"github.com/DhavalSuthar-24/rosterhub/pkg/responses"
	"github.com/DhavalSuthar-24/rosterhub/pkg/token"
)

const (
	AuthUserIDKey = "auth_user_id"
)

// AuthMiddleware verifies the bearer token and that its user still exists,
// then stores the user id under AuthUserIDKey.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Unauthorized(c, "Authorization header is required")
			return
		}

		bearerToken := strings.Fields(authHeader)
		if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "bearer") {
			responses.Unauthorized(c, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			responses.Unauthorized(c, "Invalid or expired token: "+err.Error())
			return
		}

		var count int64
		err = db.WithContext(c.Request.Context()).
			Table("users").
			Where("id = ? AND deleted_at IS NULL", claims.UserID).
			Count(&count).Error
		if err != nil {
			logger.Error().Err(err).Uint("user_id", claims.UserID).Msg("auth user lookup failed")
			responses.InternalServerError(c, "")
			return
		}
		if count == 0 {
			responses.Unauthorized(c, "User not found or inactive")
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the context
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}

	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}

	return uid, nil
}
