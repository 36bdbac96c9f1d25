package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/DhavalSuthar-24/rosterhub/internal/middleware"
	"github.com/DhavalSuthar-24/rosterhub/pkg/rmiddleware"
)

// MatchRoutes sets up all match-related routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string, service *MatchService, roles rmiddleware.RoleLookup, limiter gin.HandlerFunc) {
	matchController := NewMatchController(service)

	router.GET("/teams/:team_id/matches", matchController.GetTeamMatches)
	router.GET("/matches/:match_id", matchController.GetMatchByID)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/teams/:team_id/matches", limiter, matchController.CreateMatch)
		authRoutes.PUT("/matches/:match_id/result", limiter, matchController.RecordResult)
		authRoutes.POST("/matches/:match_id/cancel", limiter, matchController.CancelMatch)
	}

	adminRoutes := router.Group("/admin/matches")
	adminRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	adminRoutes.Use(rmiddleware.AdminMiddleware(roles))
	{
		adminRoutes.DELETE("/:match_id", matchController.DeleteMatch)
	}
}
