package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/rosterhub/internal/middleware"
	"github.com/DhavalSuthar-24/rosterhub/pkg/responses"
	"github.com/DhavalSuthar-24/rosterhub/pkg/validator"
)

// TeamController handles team and roster HTTP requests
type TeamController struct {
	service *TeamService
}

// NewTeamController creates a new team controller
func NewTeamController(service *TeamService) *TeamController {
	return &TeamController{service: service}
}

// --- Helper Functions ---

func parseIDParam(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return 0, false
	}
	return userID, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return false
	}
	return true
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"max=1000"`
	TeamSize    int    `json:"team_size"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

type ResizeTeamRequest struct {
	TeamSize int `json:"team_size"`
}

type SetFormationRequest struct {
	Formation string `json:"formation" binding:"required,max=20"`
}

type SetCaptainRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type AuthorizedMemberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// --- Team Handlers ---

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a team owned by the authenticated user, who becomes its first player. The default formation for the size is selected.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team Creation Data"
// @Success 201 {object} responses.SuccessResponse{data=Team} "Team created successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 422 {object} responses.ErrorResponse "Invalid team size"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := tc.service.CreateTeam(c.Request.Context(), userID, CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		TeamSize:    req.TeamSize,
	})
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", team)
}

// GetTeamByID godoc
// @Summary Get a team by its ID
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Team details"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	team, err := tc.service.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team retrieved successfully", team)
}

// GetAllTeams godoc
// @Summary Get all teams
// @Description Retrieves teams with optional filters and pagination.
// @Tags Teams
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param name query string false "Search by team name (case-insensitive, partial match)"
// @Param owner_id query int false "Filter by owner"
// @Success 200 {object} responses.PaginatedResponse{data=[]Team} "List of teams"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /teams [get]
func (tc *TeamController) GetAllTeams(c *gin.Context) {
	page, limit := pageParams(c)
	filters := TeamFilters{Name: c.Query("name")}
	if ownerStr := c.Query("owner_id"); ownerStr != "" {
		if ownerID, err := strconv.ParseUint(ownerStr, 10, 32); err == nil {
			filters.OwnerID = uint(ownerID)
		}
	}

	teams, total, err := tc.service.ListTeams(c.Request.Context(), page, limit, filters)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Teams retrieved successfully", teams, total, page, limit)
}

// GetMyTeams godoc
// @Summary Get teams for the current user
// @Description Retrieves the teams where the authenticated user is an active player.
// @Tags Teams
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Team} "List of user's teams"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /users/me/teams [get]
func (tc *TeamController) GetMyTeams(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	teams, total, err := tc.service.ListMyTeams(c.Request.Context(), userID, page, limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Your teams retrieved successfully", teams, total, page, limit)
}

// UpdateTeam godoc
// @Summary Update a team's profile
// @Description Changes name and description. Owner or captain only.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param team body UpdateTeamRequest true "Team Update Data"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Team updated successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input or team ID"
// @Failure 403 {object} responses.ErrorResponse "Not owner or captain"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	var req UpdateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := tc.service.UpdateTeamProfile(c.Request.Context(), teamID, userID, ProfileUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", team)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Description Soft-deletes a team and its pending invitations. Owner only.
// @Tags Teams
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse "Team deleted successfully"
// @Failure 403 {object} responses.ErrorResponse "Not the team owner"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams/{team_id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	if err := tc.service.DeleteTeam(c.Request.Context(), teamID, userID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

// AdminDeleteTeam godoc
// @Summary Delete any team (admin)
// @Tags Admin
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse "Team deleted successfully"
// @Failure 403 {object} responses.ErrorResponse "Admin role required"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /admin/teams/{team_id} [delete]
func (tc *TeamController) AdminDeleteTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	if err := tc.service.AdminDeleteTeam(c.Request.Context(), teamID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

// ResizeTeam godoc
// @Summary Change the team size
// @Description Sets the team size (6 to 11) and selects the default formation for it. Owner or captain only.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param size body ResizeTeamRequest true "New size"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Team resized"
// @Failure 403 {object} responses.ErrorResponse "Not owner or captain"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 422 {object} responses.ErrorResponse "Invalid team size"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/size [put]
func (tc *TeamController) ResizeTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	var req ResizeTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := tc.service.Resize(c.Request.Context(), teamID, req.TeamSize, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team size updated successfully", team)
}

// SetFormation godoc
// @Summary Choose the team's formation
// @Description The formation must be a template for the team's current size. Owner or captain only.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param formation body SetFormationRequest true "Formation name"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Formation updated"
// @Failure 403 {object} responses.ErrorResponse "Not owner or captain"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 422 {object} responses.ErrorResponse "Invalid formation"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/formation [put]
func (tc *TeamController) SetFormation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	var req SetFormationRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := tc.service.SetFormation(c.Request.Context(), teamID, req.Formation, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Formation updated successfully", team)
}

// --- Player Handlers ---

// GetTeamPlayers godoc
// @Summary Get team players
// @Tags Players
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param include_inactive query bool false "Include players who left or were removed"
// @Success 200 {object} responses.SuccessResponse{data=[]Player} "Roster"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /teams/{team_id}/players [get]
func (tc *TeamController) GetTeamPlayers(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	includeInactive := c.Query("include_inactive") == "true"

	players, err := tc.service.ListPlayers(c.Request.Context(), teamID, includeInactive)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Players retrieved successfully", players)
}

// RemovePlayer godoc
// @Summary Remove a player
// @Description Takes a player off the roster, clearing captaincy and authorized status. Owner only; the owner cannot remove themself.
// @Tags Players
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param user_id path uint true "User ID of the player to remove"
// @Success 200 {object} responses.SuccessResponse "Player removed"
// @Failure 403 {object} responses.ErrorResponse "Not the team owner"
// @Failure 404 {object} responses.ErrorResponse "Team or player not found"
// @Failure 409 {object} responses.ErrorResponse "Owner cannot remove themself"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{user_id} [delete]
func (tc *TeamController) RemovePlayer(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "user_id", "user")
	if !ok {
		return
	}

	if err := tc.service.RemovePlayer(c.Request.Context(), teamID, targetID, userID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player removed successfully", nil)
}

// LeaveTeam godoc
// @Summary Leave a team
// @Description The owner cannot leave; they must delete the team instead.
// @Tags Players
// @Produce json
// @Param team_id path uint true "Team ID"
// @Success 200 {object} responses.SuccessResponse "Successfully left the team"
// @Failure 403 {object} responses.ErrorResponse "Not a member, or the owner"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/leave [post]
func (tc *TeamController) LeaveTeam(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	if err := tc.service.LeaveTeam(c.Request.Context(), teamID, userID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Successfully left the team", nil)
}

// SetCaptain godoc
// @Summary Assign the captain
// @Description The candidate must be an active player. Owner only.
// @Tags Players
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param captain body SetCaptainRequest true "Candidate"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Captain assigned"
// @Failure 403 {object} responses.ErrorResponse "Not the team owner"
// @Failure 404 {object} responses.ErrorResponse "Team or player not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/captain [put]
func (tc *TeamController) SetCaptain(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	var req SetCaptainRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := tc.service.SetCaptain(c.Request.Context(), teamID, req.UserID, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Captain assigned successfully", team)
}

// AddAuthorizedMember godoc
// @Summary Grant authorized-member status
// @Description The user must be an active player other than the owner. Owner only.
// @Tags Players
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param member body AuthorizedMemberRequest true "Player to grant"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Authorized member added"
// @Failure 403 {object} responses.ErrorResponse "Not the team owner"
// @Failure 404 {object} responses.ErrorResponse "Team or player not found"
// @Failure 409 {object} responses.ErrorResponse "Owner cannot be an authorized member"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/authorized-members [post]
func (tc *TeamController) AddAuthorizedMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	var req AuthorizedMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := tc.service.SetAuthorizedMember(c.Request.Context(), teamID, req.UserID, true, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Authorized member added successfully", team)
}

// RemoveAuthorizedMember godoc
// @Summary Revoke authorized-member status
// @Description Revoking a grant the user does not hold succeeds without change. Owner only.
// @Tags Players
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param user_id path uint true "User ID"
// @Success 200 {object} responses.SuccessResponse{data=Team} "Authorized member removed"
// @Failure 403 {object} responses.ErrorResponse "Not the team owner"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/authorized-members/{user_id} [delete]
func (tc *TeamController) RemoveAuthorizedMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	teamID, ok := parseIDParam(c, "team_id", "team")
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "user_id", "user")
	if !ok {
		return
	}

	team, err := tc.service.SetAuthorizedMember(c.Request.Context(), teamID, targetID, false, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Authorized member removed successfully", team)
}
