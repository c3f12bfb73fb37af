package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/middleware"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
)

const profileFirstMessage = "Please complete your profile first. Financial profile not found"

// APIResponse is the envelope of writes and of every failure.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, APIResponse{Success: false, Message: message})
}

// respondError maps service errors to status codes. Anything unknown is a 500
// and is attached to the context for the request logger.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		fail(c, http.StatusBadRequest, profileFirstMessage)
	case errors.Is(err, services.ErrUsernameTaken):
		fail(c, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, services.ErrEmailTaken):
		fail(c, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusBadRequest, "Invalid username or password")
	case errors.Is(err, services.ErrInvalidInput):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusUnauthorized, "User not found")
	default:
		c.Error(err)
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bind decodes the JSON body into v and answers 400 on failure.
func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.Error(err)
		fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func currentUser(c *gin.Context) (int, bool) {
	id, found := middleware.UserID(c)
	if !found {
		fail(c, http.StatusUnauthorized, "Missing or invalid token")
	}
	return id, found
}
