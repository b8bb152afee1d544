package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/services"
	"github.com/jstittsworth/sportsdesk/internal/sources"
	"github.com/jstittsworth/sportsdesk/pkg/utils"
)

// AgentsHandler serves the analysis-agent endpoints: sentiment, prediction,
// visual analytics, and the multi-stage pipeline.
type AgentsHandler struct {
	chains   *services.ChainSet
	pipeline *services.Pipeline
	logger   *logrus.Logger
}

func NewAgentsHandler(chains *services.ChainSet, pipeline *services.Pipeline, logger *logrus.Logger) *AgentsHandler {
	return &AgentsHandler{chains: chains, pipeline: pipeline, logger: logger}
}

func (h *AgentsHandler) Sentiment(c *gin.Context) {
	var req models.SentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	sport := defaultString(req.Sport, "mlb")
	platform := defaultString(req.Platform, "twitter")
	daysBack := req.DaysBack
	if daysBack <= 0 {
		daysBack = 7
	}

	res, err := h.chains.Sentiment.Execute(c.Request.Context(), sources.Request{
		Team:     req.Team,
		Sport:    sport,
		Platform: platform,
		DaysBack: daysBack,
	})
	if err != nil {
		h.logger.WithError(err).Error("Sentiment chain failed")
		utils.SendInternalError(c, "Failed to analyze sentiment")
		return
	}

	data := res.Payload.Report.Data
	c.JSON(http.StatusOK, gin.H{
		"agent":         "sentiment-agent",
		"team":          req.Team,
		"sport":         strings.ToUpper(sport),
		"platform":      platform,
		"days_analyzed": daysBack,
		"data":          data,
		"source":        res.Payload.Source,
		"status":        "success",
		"summary": fmt.Sprintf("Fan sentiment analysis for %s shows %v sentiment with %.1f%% confidence.",
			req.Team, mapValue(data, "overall_sentiment", "neutral"), confidence(data)*100),
	})
}

func (h *AgentsHandler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	sport := defaultString(req.Sport, "mlb")
	predictionType := defaultString(req.PredictionType, "win_probability")
	runContext := req.Context
	if runContext == "" {
		runContext = fmt.Sprintf("Prediction analysis for %s vs %s", req.Team, req.Opponent)
	}

	res, err := h.chains.Prediction.Execute(c.Request.Context(), sources.Request{
		Team:           req.Team,
		Opponent:       req.Opponent,
		Sport:          sport,
		PredictionType: predictionType,
	})
	if err != nil {
		h.logger.WithError(err).Error("Prediction chain failed")
		utils.SendInternalError(c, "Failed to generate predictions")
		return
	}

	data := res.Payload.Report.Data
	c.JSON(http.StatusOK, gin.H{
		"agent":           "predict-agent",
		"team":            req.Team,
		"opponent":        req.Opponent,
		"sport":           strings.ToUpper(sport),
		"prediction_type": predictionType,
		"context":         runContext,
		"data":            data,
		"source":          res.Payload.Source,
		"status":          "success",
		"summary": fmt.Sprintf("Prediction analysis for %s vs %s: %v",
			req.Team, req.Opponent, mapValue(data, "prediction_summary", "Analysis complete")),
	})
}

func (h *AgentsHandler) VisualAnalytics(c *gin.Context) {
	var req models.VisualAnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	sport := defaultString(req.Sport, "mlb")
	chartType := defaultString(req.ChartType, "heatmap")
	dataPeriod := defaultString(req.DataPeriod, "season")
	metrics := req.Metrics
	if len(metrics) == 0 {
		metrics = []string{"performance", "statistics"}
	}
	runContext := req.Context
	if runContext == "" {
		runContext = fmt.Sprintf("Visual analytics for %s - %s", req.Team, chartType)
	}

	res, err := h.chains.Visual.Execute(c.Request.Context(), sources.Request{
		Team:       req.Team,
		Sport:      sport,
		ChartType:  chartType,
		DataPeriod: dataPeriod,
		Metrics:    metrics,
	})
	if err != nil {
		h.logger.WithError(err).Error("Visual analytics chain failed")
		utils.SendInternalError(c, "Failed to generate visual analytics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agent":       "visual-analytics-agent",
		"team":        req.Team,
		"sport":       strings.ToUpper(sport),
		"chart_type":  chartType,
		"data_period": dataPeriod,
		"metrics":     metrics,
		"context":     runContext,
		"data":        res.Payload.Report.Data,
		"source":      res.Payload.Source,
		"status":      "success",
		"summary":     fmt.Sprintf("Visual analytics for %s: %s analysis complete", req.Team, chartType),
	})
}

func (h *AgentsHandler) Pipeline(c *gin.Context) {
	var req models.PipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	sport := defaultString(req.Sport, "mlb")
	result := h.pipeline.Run(c.Request.Context(), req.Team, sport, req.Context)
	c.JSON(http.StatusOK, result)
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return strings.ToLower(v)
}

func mapValue(data map[string]interface{}, key string, fallback interface{}) interface{} {
	if data == nil {
		return fallback
	}
	if v, ok := data[key]; ok {
		return v
	}
	return fallback
}

func confidence(data map[string]interface{}) float64 {
	if data == nil {
		return 0.5
	}
	if v, ok := data["confidence_score"].(float64); ok {
		return v
	}
	return 0.5
}
