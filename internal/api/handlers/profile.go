package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/services"
	"github.com/jstittsworth/sportsdesk/pkg/utils"
)

// ProfileHandler serves the personalized-agent surface: profile creation,
// lookup, and preference updates.
type ProfileHandler struct {
	profiles *services.ProfileService
	logger   *logrus.Logger
}

func NewProfileHandler(profiles *services.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

func (h *ProfileHandler) PersonalizedAgent(c *gin.Context) {
	var req models.PersonalizedAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	sport := strings.ToLower(req.Sport)
	if sport == "" {
		sport = "mlb"
	}
	agentType := req.AgentType
	if agentType == "" {
		agentType = "team_agent"
	}
	runContext := req.Context
	if runContext == "" {
		runContext = fmt.Sprintf("Personalized agent for %s fan", req.FavoriteTeam)
	}

	profile := h.profiles.Upsert(req.UserID, req.FavoriteTeam, sport, req.Preferences)
	agentConfig := h.profiles.AgentConfig(c.Request.Context(), profile, agentType)
	manifest := services.RuntimeManifest(profile, agentConfig)

	c.JSON(http.StatusOK, gin.H{
		"agent":               "personalized-agent",
		"user_id":             req.UserID,
		"favorite_team":       req.FavoriteTeam,
		"sport":               strings.ToUpper(sport),
		"agent_type":          agentType,
		"personalized_config": agentConfig,
		"runtime_manifest":    manifest,
		"context":             runContext,
		"source":              "Personalized Agent System",
		"status":              "success",
		"summary":             fmt.Sprintf("Personalized %s created for %s fan with custom configuration", agentType, req.FavoriteTeam),
	})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Param("user_id")
	profile, ok := h.profiles.Get(userID)
	if !ok {
		utils.SendNotFound(c, "User profile not found")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	var req models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if !h.profiles.UpdatePreferences(req.UserID, req.Preferences) {
		utils.SendNotFound(c, "User profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Preferences updated",
	})
}
