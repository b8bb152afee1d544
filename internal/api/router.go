package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/api/handlers"
	"github.com/jstittsworth/sportsdesk/internal/api/middleware"
	"github.com/jstittsworth/sportsdesk/internal/gamification"
	"github.com/jstittsworth/sportsdesk/internal/services"
	"github.com/jstittsworth/sportsdesk/pkg/config"
)

// SetupRoutes mounts the health check and the /tools surface. Every tool
// endpoint sits behind the shared-secret check; health stays open.
func SetupRoutes(router *gin.Engine, cfg *config.Config, chains *services.ChainSet, aggregator *services.Aggregator, pipeline *services.Pipeline, profiles *services.ProfileService, ledger *gamification.Ledger, logger *logrus.Logger) {
	toolsHandler := handlers.NewToolsHandler(chains, aggregator, logger)
	sportsHandler := handlers.NewSportsHandler(chains, logger)
	agentsHandler := handlers.NewAgentsHandler(chains, pipeline, logger)
	gamificationHandler := handlers.NewGamificationHandler(ledger)
	profileHandler := handlers.NewProfileHandler(profiles, logger)
	healthHandler := handlers.NewHealthHandler(chains)

	router.GET("/health", healthHandler.Check)

	tools := router.Group("/tools")
	tools.Use(middleware.ToolAuth(cfg.ToolToken))
	{
		tools.POST("/echo", toolsHandler.Echo)
		tools.POST("/check_schedule", toolsHandler.CheckSchedule)
		tools.POST("/news", toolsHandler.News)
		tools.POST("/youtube", toolsHandler.YouTube)
		tools.POST("/compare_stats", toolsHandler.CompareStats)
		tools.POST("/team_intelligence", toolsHandler.TeamIntelligence)
		tools.POST("/aggregate", toolsHandler.Aggregate)

		tools.POST("/multi-sport", sportsHandler.MultiSport)
		tools.POST("/nba", sportsHandler.NBA)
		tools.POST("/nfl", sportsHandler.NFL)

		tools.POST("/sentiment", agentsHandler.Sentiment)
		tools.POST("/predict", agentsHandler.Predict)
		tools.POST("/visual-analytics", agentsHandler.VisualAnalytics)
		tools.POST("/pipeline", agentsHandler.Pipeline)

		tools.POST("/gamification-agent", gamificationHandler.Handle)

		tools.POST("/personalized-agent", profileHandler.PersonalizedAgent)
		tools.GET("/user-profile/:user_id", profileHandler.GetProfile)
		tools.POST("/update-preferences", profileHandler.UpdatePreferences)
	}
}
