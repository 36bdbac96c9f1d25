package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/DhavalSuthar-24/rosterhub/internal/middleware"
	"github.com/DhavalSuthar-24/rosterhub/pkg/rmiddleware"
)

// Services bundles what the roster routes serve.
type Services struct {
	Teams       *TeamService
	Invitations *InvitationService
	Roles       rmiddleware.RoleLookup
}

// TeamRoutes sets up all team, roster and invitation routes. Mutating routes
// pass through limiter.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string, svc Services, limiter gin.HandlerFunc) {
	teamController := NewTeamController(svc.Teams)
	invitationController := NewInvitationController(svc.Invitations)

	// Public team routes
	router.GET("/teams", teamController.GetAllTeams)
	router.GET("/teams/:team_id", teamController.GetTeamByID)
	router.GET("/teams/:team_id/players", teamController.GetTeamPlayers)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/teams", limiter, teamController.CreateTeam)
		authRoutes.PUT("/teams/:team_id", limiter, teamController.UpdateTeam)
		authRoutes.DELETE("/teams/:team_id", limiter, teamController.DeleteTeam)
		authRoutes.PUT("/teams/:team_id/size", limiter, teamController.ResizeTeam)
		authRoutes.PUT("/teams/:team_id/formation", limiter, teamController.SetFormation)

		authRoutes.GET("/users/me/teams", teamController.GetMyTeams)

		// Roster management; authorization is decided inside the services
		authRoutes.DELETE("/teams/:team_id/players/:user_id", limiter, teamController.RemovePlayer)
		authRoutes.POST("/teams/:team_id/leave", limiter, teamController.LeaveTeam)
		authRoutes.PUT("/teams/:team_id/captain", limiter, teamController.SetCaptain)
		authRoutes.POST("/teams/:team_id/authorized-members", limiter, teamController.AddAuthorizedMember)
		authRoutes.DELETE("/teams/:team_id/authorized-members/:user_id", limiter, teamController.RemoveAuthorizedMember)

		// Invitations
		authRoutes.POST("/teams/:team_id/invitations", limiter, invitationController.InviteUserToTeam)
		authRoutes.GET("/teams/:team_id/invitations", invitationController.GetInvitationsForTeam)
		authRoutes.GET("/invitations/me", invitationController.GetMyInvitations)
		authRoutes.POST("/invitations/:invitation_id/accept", limiter, invitationController.AcceptInvitation)
		authRoutes.POST("/invitations/:invitation_id/decline", limiter, invitationController.DeclineInvitation)
	}

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	adminRoutes.Use(rmiddleware.AdminMiddleware(svc.Roles))
	{
		adminRoutes.DELETE("/teams/:team_id", teamController.AdminDeleteTeam)
	}
}
