package rmiddleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/DhavalSuthar-24/rosterhub/internal/middleware"
)

type stubRoles map[uint][]string

func (s stubRoles) GetUserRoles(_ context.Context, userID uint) ([]string, error) {
	if userID == 500 {
		return nil, errors.New("db down")
	}
	return s[userID], nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serveAs(userID uint, handler gin.HandlerFunc) int {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(middleware.AuthUserIDKey, userID)
		}
		c.Next()
	})
	router.GET("/admin", handler, func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	return w.Code
}

func TestAdminMiddleware(t *testing.T) {
	roles := stubRoles{1: {"player", "admin"}, 2: {"player"}}
	mw := AdminMiddleware(roles)

	assert.Equal(t, http.StatusOK, serveAs(1, mw))
	assert.Equal(t, http.StatusForbidden, serveAs(2, mw))
	assert.Equal(t, http.StatusForbidden, serveAs(3, mw))
	assert.Equal(t, http.StatusUnauthorized, serveAs(0, mw))
	assert.Equal(t, http.StatusInternalServerError, serveAs(500, mw))
}

func TestRoleMiddleware_CaseInsensitive(t *testing.T) {
	roles := stubRoles{1: {"Admin"}}

	assert.Equal(t, http.StatusOK, serveAs(1, RoleMiddleware(roles, "admin")))
}
