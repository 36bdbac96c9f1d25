package responses

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/rosterhub/internal/apperrors"
	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// SuccessResponse represents a standard success JSON response.
type SuccessResponse struct {
	Status  string      `json:"status"`  // "success"
	Message string      `json:"message"` // Optional success message
	Data    interface{} `json:"data"`    // The actual data payload
}

// ErrorResponse represents a standard error JSON response.
type ErrorResponse struct {
	Status  string `json:"status"`  // "error" or "fail"
	Message string `json:"message"` // Error message
	Code    int    `json:"code"`    // HTTP status code
	Kind    string `json:"kind,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Entity  string `json:"entity,omitempty"`

	Errors map[string]string `json:"errors,omitempty"` // Per-field validation messages
}

// PaginatedResponse represents a success response for lists with pagination details.
type PaginatedResponse struct {
	Status     string      `json:"status"`  // "success"
	Message    string      `json:"message"` // Optional success message
	Data       interface{} `json:"data"`    // The list of items
	Pagination Pagination  `json:"pagination"`
}

// Pagination holds pagination information.
type Pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	PageSize     int   `json:"page_size"`
	HasNextPage  bool  `json:"has_next_page"`
	HasPrevPage  bool  `json:"has_prev_page"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

// SendSuccess sends a standardized success response.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	if message == "" {
		message = "Operation completed successfully"
	}
	c.JSON(statusCode, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SendError sends a standardized error response. Field errors, when given,
// are merged into the errors object.
func SendError(c *gin.Context, statusCode int, message string, fieldErrors ...map[string]string) {
	statusText := "error"
	if statusCode >= http.StatusInternalServerError {
		statusText = "fail" // Differentiate client errors from server failures
	}
	body := ErrorResponse{
		Status:  statusText,
		Message: message,
		Code:    statusCode,
	}
	for _, fe := range fieldErrors {
		if len(fe) == 0 {
			continue
		}
		if body.Errors == nil {
			body.Errors = make(map[string]string, len(fe))
		}
		for k, v := range fe {
			body.Errors[k] = v
		}
	}
	c.AbortWithStatusJSON(statusCode, body)
}

// SendPaginated sends a standardized success response for paginated data.
func SendPaginated(c *gin.Context, statusCode int, message string, data interface{}, totalItems int64, currentPage int, pageSize int) {
	if message == "" {
		message = "Data retrieved successfully"
	}
	if pageSize <= 0 {
		pageSize = 10 // Default page size if invalid
	}
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	if totalPages == 0 && totalItems > 0 { // Ensure at least one page if there are items
		totalPages = 1
	}

	hasNextPage := currentPage < totalPages
	hasPrevPage := currentPage > 1

	var nextPage *int
	if hasNextPage {
		val := currentPage + 1
		nextPage = &val
	}

	var prevPage *int
	if hasPrevPage {
		val := currentPage - 1
		prevPage = &val
	}

	c.JSON(statusCode, PaginatedResponse{
		Status:  "success",
		Message: message,
		Data:    data,
		Pagination: Pagination{
			TotalItems:   totalItems,
			TotalPages:   totalPages,
			CurrentPage:  currentPage,
			PageSize:     pageSize,
			HasNextPage:  hasNextPage,
			HasPrevPage:  hasPrevPage,
			NextPage:     nextPage,
			PreviousPage: prevPage,
		},
	})
}

// StatusForError maps a service error onto an HTTP status code.
func StatusForError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindPermissionDenied:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindInvalidState:
		switch apperrors.ReasonOf(err) {
		case apperrors.ReasonInvalidTeamSize, apperrors.ReasonInvalidFormation, apperrors.ReasonInvalidInput:
			return http.StatusUnprocessableEntity
		}
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SendAppError renders a service error with its kind and reason so clients can
// tell a missing resource apart from a refused one. Store failures are logged
// and their details hidden from the client.
func SendAppError(c *gin.Context, err error) {
	status := StatusForError(err)
	body := ErrorResponse{
		Status:  "error",
		Message: err.Error(),
		Code:    status,
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body.Kind = string(appErr.Kind)
		body.Reason = string(appErr.Reason)
		body.Entity = appErr.Entity
	} else {
		body.Kind = string(apperrors.KindStoreFailure)
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("request_id", logger.GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		body.Status = "fail"
		body.Message = "An unexpected error occurred on the server"
	}
	c.AbortWithStatusJSON(status, body)
}

// --- You can add more specific response helpers as needed ---

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, resourceName string) {
	SendError(c, http.StatusNotFound, resourceName+" not found")
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	SendError(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access to this resource is forbidden"
	}
	SendError(c, http.StatusForbidden, message)
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	SendError(c, http.StatusBadRequest, message)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred on the server"
	}
	SendError(c, http.StatusInternalServerError, message)
}
