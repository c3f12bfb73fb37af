package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

func GetProfileHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, found := currentUser(c)
		if !found {
			return
		}
		view, err := svc.Profile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func SaveFinancialProfileHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, found := currentUser(c)
		if !found {
			return
		}
		var fp models.FinancialProfile
		if !bind(c, &fp) {
			return
		}
		saved, err := svc.SaveFinancialProfile(c.Request.Context(), userID, fp)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, "Financial profile saved successfully", saved)
	}
}

func GetMembersHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, found := currentUser(c)
		if !found {
			return
		}
		members, err := svc.Members(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, members)
	}
}

// SaveMembersHandler replaces the household's members with the posted list.
func SaveMembersHandler(svc *services.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, found := currentUser(c)
		if !found {
			return
		}
		var members []models.FamilyMember
		if !bind(c, &members) {
			return
		}
		saved, err := svc.ReplaceMembers(c.Request.Context(), userID, members)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, "Members saved successfully", saved)
	}
}
