package notification

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/rosterhub/internal/apperrors"
	"github.com/DhavalSuthar-24/rosterhub/internal/middleware"
	"github.com/DhavalSuthar-24/rosterhub/pkg/responses"
)

// NotificationController serves the caller's inbox.
type NotificationController struct {
	repo NotificationRepository
}

func NewNotificationController(repo NotificationRepository) *NotificationController {
	return &NotificationController{repo: repo}
}

// ListMyNotifications godoc
// @Summary List my notifications
// @Tags Notifications
// @Produce json
// @Param unread query bool false "Only unread entries"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} responses.PaginatedResponse{data=[]Notification} "Inbox"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /notifications [get]
func (nc *NotificationController) ListMyNotifications(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	unreadOnly := c.Query("unread") == "true"

	items, total, err := nc.repo.ListByUser(c.Request.Context(), userID, unreadOnly, page, limit)
	if err != nil {
		responses.SendAppError(c, apperrors.StoreFailure("list notifications", err))
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Notifications retrieved successfully", items, total, page, limit)
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags Notifications
// @Produce json
// @Param notification_id path uint true "Notification ID"
// @Success 200 {object} responses.SuccessResponse "Marked read"
// @Failure 404 {object} responses.ErrorResponse "Notification not found"
// @Security ApiKeyAuth
// @Router /notifications/{notification_id}/read [put]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	id, err := strconv.ParseUint(c.Param("notification_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid notification ID")
		return
	}

	found, err := nc.repo.MarkRead(c.Request.Context(), uint(id), userID, time.Now().UTC())
	if err != nil {
		responses.SendAppError(c, apperrors.StoreFailure("mark notification read", err))
		return
	}
	if !found {
		responses.SendAppError(c, apperrors.NotFound(apperrors.EntityNotification, apperrors.ReasonNone))
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags Notifications
// @Produce json
// @Success 200 {object} responses.SuccessResponse "Count of entries updated"
// @Security ApiKeyAuth
// @Router /notifications/read-all [put]
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	n, err := nc.repo.MarkAllRead(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		responses.SendAppError(c, apperrors.StoreFailure("mark notifications read", err))
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Notifications marked as read", gin.H{"updated": n})
}
