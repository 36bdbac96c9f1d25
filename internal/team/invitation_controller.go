package team

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/rosterhub/pkg/responses"
)

// InvitationController handles the invitation workflow endpoints.
type InvitationController struct {
	service *InvitationService
}

func NewInvitationController(service *InvitationService) *InvitationController {
	return &InvitationController{service: service}
}

type InviteUserRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// InviteUserToTeam godoc
// @Summary Invite a user to a team
// @Description Owner, captain or authorized member only. One pending invitation per user and team.
// @Tags Team Invitations
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param invite_request body InviteUserRequest true "Invitation Details"
// @Success 201 {object} responses.SuccessResponse{data=Invitation} "Invitation sent successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input or team ID"
// @Failure 403 {object} responses.ErrorResponse "Insufficient permissions"
// @Failure 404 {object} responses.ErrorResponse "Team or user not found"
// @Failure 409 {object} responses.ErrorResponse "Already a member or invitation pending"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/invitations [post]
func (ic *InvitationController) InviteUserToTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	var req InviteUserRequest
	if !bindJSON(c, &req) {
		return
	}

	invitation, err := ic.service.CreateInvitation(c.Request.Context(), teamID, req.UserID, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Invitation sent successfully", invitation)
}

// GetInvitationsForTeam godoc
// @Summary Get invitations sent by a team
// @Description Owner, captain or authorized member only.
// @Tags Team Invitations
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param status query string false "Filter by status (pending, accepted, declined)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Invitation} "List of team invitations"
// @Failure 403 {object} responses.ErrorResponse "Insufficient permissions"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 422 {object} responses.ErrorResponse "Invalid status filter"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/invitations [get]
func (ic *InvitationController) GetInvitationsForTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	page, limit := pageParams(c)

	invitations, total, err := ic.service.ListTeamInvitations(c.Request.Context(), teamID, c.Query("status"), page, limit, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Invitations retrieved successfully", invitations, total, page, limit)
}

// GetMyInvitations godoc
// @Summary Get my invitations
// @Tags Team Invitations
// @Produce json
// @Param status query string false "Filter by status (pending, accepted, declined)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Invitation} "Invitations addressed to me"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /invitations/me [get]
func (ic *InvitationController) GetMyInvitations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	invitations, total, err := ic.service.ListMyInvitations(c.Request.Context(), userID, c.Query("status"), page, limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Your invitations retrieved successfully", invitations, total, page, limit)
}

// AcceptInvitation godoc
// @Summary Accept an invitation
// @Description Only the invited user may accept. Puts them on the roster.
// @Tags Team Invitations
// @Produce json
// @Param invitation_id path uint true "Invitation ID"
// @Success 200 {object} responses.SuccessResponse{data=Invitation} "Invitation accepted"
// @Failure 403 {object} responses.ErrorResponse "Not the invited user"
// @Failure 404 {object} responses.ErrorResponse "Invitation or team not found"
// @Failure 409 {object} responses.ErrorResponse "Invitation not pending or expired"
// @Security ApiKeyAuth
// @Router /invitations/{invitation_id}/accept [post]
func (ic *InvitationController) AcceptInvitation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	invitationID, ok := parseIDParam(c, "invitation_id", "invitation")
	if !ok {
		return
	}

	invitation, err := ic.service.AcceptInvitation(c.Request.Context(), invitationID, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invitation accepted", invitation)
}

// DeclineInvitation godoc
// @Summary Decline an invitation
// @Tags Team Invitations
// @Produce json
// @Param invitation_id path uint true "Invitation ID"
// @Success 200 {object} responses.SuccessResponse{data=Invitation} "Invitation declined"
// @Failure 403 {object} responses.ErrorResponse "Not the invited user"
// @Failure 404 {object} responses.ErrorResponse "Invitation not found"
// @Failure 409 {object} responses.ErrorResponse "Invitation already accepted"
// @Security ApiKeyAuth
// @Router /invitations/{invitation_id}/decline [post]
func (ic *InvitationController) DeclineInvitation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	invitationID, ok := parseIDParam(c, "invitation_id", "invitation")
	if !ok {
		return
	}

	invitation, err := ic.service.DeclineInvitation(c.Request.Context(), invitationID, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Invitation declined", invitation)
}
