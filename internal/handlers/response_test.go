package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{services.ErrProfileNotFound, http.StatusBadRequest, profileFirstMessage},
		{fmt.Errorf("lookup: %w", services.ErrUsernameTaken), http.StatusBadRequest, "Username already exists"},
		{services.ErrEmailTaken, http.StatusBadRequest, "Email already exists"},
		{services.ErrInvalidCredentials, http.StatusBadRequest, "Invalid username or password"},
		{services.ErrUserNotFound, http.StatusUnauthorized, "User not found"},
		{errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tc.err)

		var body APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.False(t, body.Success)
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestRespondError_InternalErrorIsRecorded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, errors.New("disk full"))

	require.Len(t, c.Errors, 1)
	assert.NotContains(t, w.Body.String(), "disk full")
}

func TestBind_RejectsMalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"shockType":`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req services.ShockRequest
	assert.False(t, bind(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())
}
