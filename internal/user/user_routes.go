package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/config"
	mw "github.com/DhavalSuthar-24/rosterhub/internal/middleware"
)

// UserRoutes sets up authentication and profile routes.
func UserRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, limiter gin.HandlerFunc) {
	userController := NewUserController(NewUserRepository(db), appConfig.JWT)

	authGroup := router.Group("/auth")
	authGroup.Use(limiter)
	{
		authGroup.POST("/register", userController.Register)
		authGroup.POST("/login", userController.Login)
	}

	me := router.Group("/users/me")
	me.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		me.GET("", userController.GetMe)
		me.PATCH("", limiter, userController.UpdateMe)
	}
}
