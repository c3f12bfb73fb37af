package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
)

func EconomicScoreHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, found := currentUser(c)
		if !found {
			return
		}
		res, err := svc.EconomicScore(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func ShockSimulateHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, found := currentUser(c)
		if !found {
			return
		}
		var req services.ShockRequest
		if !bind(c, &req) {
			return
		}
		res, err := svc.SimulateShock(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func OpportunitySimulateHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, found := currentUser(c)
		if !found {
			return
		}
		var req services.OpportunityRequest
		if !bind(c, &req) {
			return
		}
		res, err := svc.SimulateOpportunity(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
