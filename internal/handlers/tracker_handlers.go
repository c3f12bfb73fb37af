package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
)

type monthlyEntryResponse struct {
	Success         bool    `json:"success"`
	ResilienceScore float64 `json:"resilienceScore"`
	Message         string  `json:"message"`
}

func SaveMonthlyEntryHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, found := currentUser(c)
		if !found {
			return
		}
		var entry services.MonthlyEntry
		if !bind(c, &entry) {
			return
		}
		saved, err := svc.SaveMonthlyEntry(c.Request.Context(), userID, entry)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, monthlyEntryResponse{
			Success:         true,
			ResilienceScore: saved.ResilienceScore,
			Message:         "Monthly data saved successfully",
		})
	}
}

func TrackerHistoryHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, found := currentUser(c)
		if !found {
			return
		}
		history, err := svc.History(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, history)
	}
}
