package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/config"
	"github.com/DhavalSuthar-24/rosterhub/internal/formation"
	"github.com/DhavalSuthar-24/rosterhub/internal/match"
	"github.com/DhavalSuthar-24/rosterhub/internal/middleware"
	"github.com/DhavalSuthar-24/rosterhub/internal/notification"
	"github.com/DhavalSuthar-24/rosterhub/internal/team"
	"github.com/DhavalSuthar-24/rosterhub/internal/user"
	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// Services are the long-lived objects main wires once and every route group shares.
type Services struct {
	Teams       *team.TeamService
	Invitations *team.InvitationService
	Matches     *match.MatchService
	Users       user.UserRepository
	Formations  *formation.Catalog
	Limiter     *middleware.RateLimiter
}

func SetupRoutes(cfg *config.Config, db *gorm.DB, svc Services) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.RequestID(), logger.GinLogger(), logger.GinRecovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limiter := svc.Limiter.Middleware()
	secret := cfg.JWT.AccessTokenSecret

	// API routes
	api := r.Group("/api")
	user.UserRoutes(api, db, cfg, limiter)
	team.TeamRoutes(api, db, secret, team.Services{
		Teams:       svc.Teams,
		Invitations: svc.Invitations,
		Roles:       svc.Users,
	}, limiter)
	match.MatchRoutes(api, db, secret, svc.Matches, svc.Users, limiter)
	notification.NotificationRoutes(api, db, secret)
	formation.FormationRoutes(api, svc.Formations)

	return r
}
