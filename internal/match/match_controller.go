package match

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/rosterhub/internal/middleware"
	"github.com/DhavalSuthar-24/rosterhub/pkg/responses"
	"github.com/DhavalSuthar-24/rosterhub/pkg/validator"
)

type MatchController struct {
	service *MatchService
}

func NewMatchController(service *MatchService) *MatchController {
	return &MatchController{service: service}
}

type CreateMatchRequest struct {
	OpponentTeam string    `json:"opponent_team" binding:"required,max=100"`
	MatchDate    time.Time `json:"match_date" binding:"required"`
	Location     string    `json:"location" binding:"max=255"`
}

type RecordResultRequest struct {
	HomeScore *int `json:"home_score" binding:"required,min=0"`
	AwayScore *int `json:"away_score" binding:"required,min=0"`
}

func paramID(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return uint(id), true
}

func authUser(c *gin.Context) (uint, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return 0, false
	}
	return userID, true
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return false
	}
	return true
}

// CreateMatch godoc
// @Summary Schedule a match
// @Description Owner, captain or authorized member of the team only.
// @Tags Matches
// @Accept json
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param match body CreateMatchRequest true "Match details"
// @Success 201 {object} responses.SuccessResponse{data=Match} "Match scheduled"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 403 {object} responses.ErrorResponse "Insufficient permissions"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	userID, ok := authUser(c)
	if !ok {
		return
	}
	teamID, ok := paramID(c, "team_id", "team")
	if !ok {
		return
	}
	var req CreateMatchRequest
	if !bind(c, &req) {
		return
	}

	match, err := mc.service.CreateMatch(c.Request.Context(), userID, CreateMatchInput{
		TeamID:       teamID,
		OpponentTeam: req.OpponentTeam,
		MatchDate:    req.MatchDate,
		Location:     req.Location,
	})
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match scheduled successfully", match)
}

// GetTeamMatches godoc
// @Summary List a team's matches
// @Tags Matches
// @Produce json
// @Param team_id path uint true "Team ID"
// @Param status query string false "Filter by status (scheduled, completed, cancelled)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Match} "List of matches"
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Failure 422 {object} responses.ErrorResponse "Invalid status filter"
// @Router /teams/{team_id}/matches [get]
func (mc *MatchController) GetTeamMatches(c *gin.Context) {
	teamID, ok := paramID(c, "team_id", "team")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	matches, total, err := mc.service.ListTeamMatches(c.Request.Context(), teamID, c.Query("status"), page, limit)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Matches retrieved successfully", matches, total, page, limit)
}

// GetMatchByID godoc
// @Summary Get a match
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match} "Match details"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Router /matches/{match_id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	matchID, ok := paramID(c, "match_id", "match")
	if !ok {
		return
	}
	match, err := mc.service.GetMatch(c.Request.Context(), matchID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match retrieved successfully", match)
}

// RecordResult godoc
// @Summary Record a match result
// @Description Completes a scheduled match. Owner, captain or authorized member only.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match_id path uint true "Match ID"
// @Param result body RecordResultRequest true "Final score"
// @Success 200 {object} responses.SuccessResponse{data=Match} "Result recorded"
// @Failure 403 {object} responses.ErrorResponse "Insufficient permissions"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Failure 409 {object} responses.ErrorResponse "Match is not scheduled"
// @Security ApiKeyAuth
// @Router /matches/{match_id}/result [put]
func (mc *MatchController) RecordResult(c *gin.Context) {
	userID, ok := authUser(c)
	if !ok {
		return
	}
	matchID, ok := paramID(c, "match_id", "match")
	if !ok {
		return
	}
	var req RecordResultRequest
	if !bind(c, &req) {
		return
	}

	match, err := mc.service.RecordResult(c.Request.Context(), matchID, userID, *req.HomeScore, *req.AwayScore)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match result recorded", match)
}

// CancelMatch godoc
// @Summary Cancel a scheduled match
// @Tags Matches
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=Match} "Match cancelled"
// @Failure 403 {object} responses.ErrorResponse "Insufficient permissions"
// @Failure 409 {object} responses.ErrorResponse "Match is not scheduled"
// @Security ApiKeyAuth
// @Router /matches/{match_id}/cancel [post]
func (mc *MatchController) CancelMatch(c *gin.Context) {
	userID, ok := authUser(c)
	if !ok {
		return
	}
	matchID, ok := paramID(c, "match_id", "match")
	if !ok {
		return
	}
	match, err := mc.service.CancelMatch(c.Request.Context(), matchID, userID)
	if err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match cancelled", match)
}

// DeleteMatch godoc
// @Summary Delete a match (admin)
// @Tags Admin
// @Produce json
// @Param match_id path uint true "Match ID"
// @Success 200 {object} responses.SuccessResponse "Match deleted"
// @Failure 403 {object} responses.ErrorResponse "Admin only"
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Security ApiKeyAuth
// @Router /admin/matches/{match_id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	matchID, ok := paramID(c, "match_id", "match")
	if !ok {
		return
	}
	if err := mc.service.DeleteMatch(c.Request.Context(), matchID); err != nil {
		responses.SendAppError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match deleted successfully", nil)
}
