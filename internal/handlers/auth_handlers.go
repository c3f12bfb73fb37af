package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
)

func RegisterHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RegisterRequest
		if !bind(c, &req) {
			return
		}
		if _, err := svc.Register(c.Request.Context(), req); err != nil {
			respondError(c, err)
			return
		}
		ok(c, "User registered successfully", nil)
	}
}

func LoginHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.LoginRequest
		if !bind(c, &req) {
			return
		}
		resp, err := svc.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
