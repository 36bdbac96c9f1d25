package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/DhavalSuthar-24/rosterhub/internal/middleware"
)

// NotificationRoutes sets up the inbox routes.
func NotificationRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	nc := NewNotificationController(NewNotificationRepository(db))

	inbox := router.Group("/notifications")
	inbox.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		inbox.GET("", nc.ListMyNotifications)
		inbox.PUT("/read-all", nc.MarkAllRead)
		inbox.PUT("/:notification_id/read", nc.MarkRead)
	}
}
