package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/rosterhub/config"
	"github.com/DhavalSuthar-24/rosterhub/internal/middleware"
	"github.com/DhavalSuthar-24/rosterhub/internal/models"
	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
	"github.com/DhavalSuthar-24/rosterhub/pkg/responses"
	"github.com/DhavalSuthar-24/rosterhub/pkg/token"
	"github.com/DhavalSuthar-24/rosterhub/pkg/validator"
	"github.com/DhavalSuthar-24/rosterhub/utils"
)

// UserController handles registration, login and profile requests.
type UserController struct {
	repo UserRepository
	jwt  config.JWTConfig
}

func NewUserController(repo UserRepository, jwtCfg config.JWTConfig) *UserController {
	return &UserController{repo: repo, jwt: jwtCfg}
}

type RegisterRequest struct {
	Username  string   `json:"username" binding:"required,min=3,max=50,alphanum"`
	Password  string   `json:"password" binding:"required,min=8,max=72"`
	FullName  string   `json:"full_name" binding:"max=100"`
	Positions []string `json:"positions" binding:"max=5,dive,max=30"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        *User  `json:"user"`
}

type UpdateProfileRequest struct {
	FullName     *string      `json:"full_name" binding:"omitempty,max=100"`
	Positions    []string     `json:"positions" binding:"omitempty,max=5,dive,max=30"`
	Availability *Availability `json:"availability"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account with the player role.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration data"
// @Success 201 {object} responses.SuccessResponse{data=User} "User registered"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 409 {object} responses.ErrorResponse "Username taken"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	u := &User{
		Username:     strings.ToLower(req.Username),
		FullName:     req.FullName,
		PasswordHash: hash,
		Positions:    models.StringSlice(req.Positions).Normalize(),
		Availability: AvailabilityDefaultAvailable,
	}
	if err := uc.repo.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			responses.SendError(c, http.StatusConflict, "Username already taken")
			return
		}
		logger.Error().Err(err).Str("username", u.Username).Msg("register failed")
		responses.InternalServerError(c, "Failed to create user")
		return
	}

	created, err := uc.repo.GetUserByID(c.Request.Context(), u.ID)
	if err != nil || created == nil {
		created = u
	}
	responses.SendSuccess(c, http.StatusCreated, "User registered successfully", created)
}

// Login godoc
// @Summary Log in
// @Description Exchanges username and password for a bearer access token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} responses.SuccessResponse{data=LoginResponse} "Logged in"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Invalid credentials"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	u, err := uc.repo.GetUserByUsername(c.Request.Context(), strings.ToLower(req.Username))
	if err != nil {
		responses.InternalServerError(c, "Failed to load user")
		return
	}
	if u == nil || !utils.CheckPassword(u.PasswordHash, req.Password) {
		responses.Unauthorized(c, "Invalid username or password")
		return
	}

	accessToken, err := token.GenerateJWT(u.ID, uc.jwt.AccessTokenSecret, uc.jwt.AccessTokenExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Login successful", LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   uc.jwt.AccessTokenExpiryMinutes * 60,
		User:        u,
	})
}

// GetMe godoc
// @Summary Get my profile
// @Tags Users
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=User} "Profile"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (uc *UserController) GetMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}
	u, err := uc.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load user")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", u)
}

// UpdateMe godoc
// @Summary Update my profile
// @Description Updates full name, playing positions and availability.
// @Tags Users
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} responses.SuccessResponse{data=User} "Profile updated"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Security ApiKeyAuth
// @Router /users/me [patch]
func (uc *UserController) UpdateMe(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}
	if req.Availability != nil && !req.Availability.Valid() {
		responses.BadRequest(c, "availability must be one of available, unavailable, default-available")
		return
	}

	u, err := uc.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load user")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}

	var columns []string
	if req.FullName != nil {
		u.FullName = *req.FullName
		columns = append(columns, "full_name")
	}
	if req.Positions != nil {
		u.Positions = models.StringSlice(req.Positions).Normalize()
		columns = append(columns, "positions")
	}
	if req.Availability != nil {
		u.Availability = *req.Availability
		columns = append(columns, "availability")
	}

	if err := uc.repo.UpdateUser(c.Request.Context(), u, columns...); err != nil {
		responses.InternalServerError(c, "Failed to update profile")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", u)
}
