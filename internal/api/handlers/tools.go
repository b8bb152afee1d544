package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/services"
	"github.com/jstittsworth/sportsdesk/internal/sources"
	"github.com/jstittsworth/sportsdesk/pkg/utils"
)

// ToolsHandler serves the core MLB tool endpoints: schedule, news, videos,
// head-to-head comparison, and team intelligence.
type ToolsHandler struct {
	chains     *services.ChainSet
	aggregator *services.Aggregator
	logger     *logrus.Logger
}

func NewToolsHandler(chains *services.ChainSet, aggregator *services.Aggregator, logger *logrus.Logger) *ToolsHandler {
	return &ToolsHandler{chains: chains, aggregator: aggregator, logger: logger}
}

// Echo returns the request body unchanged. Used as a connectivity check by
// tool callers.
func (h *ToolsHandler) Echo(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		payload = map[string]interface{}{}
	}
	c.JSON(http.StatusOK, gin.H{"received": payload})
}

// CheckSchedule resolves the team locally before any source is consulted, so
// an unknown name is a 404 and never burns a chain execution.
func (h *ToolsHandler) CheckSchedule(c *gin.Context) {
	var req models.CheckScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	teamID, teamName, ok := services.ResolveMLBTeam(req.Team)
	if !ok {
		utils.SendNotFound(c, fmt.Sprintf("Team not found for input: %s", req.Team))
		return
	}

	days := req.Days
	if days <= 0 {
		days = 14
	}
	from := time.Now().UTC()
	if req.FromISO != "" {
		parsed, err := parseISO(req.FromISO)
		if err != nil {
			utils.SendValidationError(c, "Invalid from_iso timestamp", err.Error())
			return
		}
		from = parsed
	}

	res, err := h.chains.Schedule.Execute(c.Request.Context(), sources.Request{
		Team: teamName,
		Days: days,
		From: from,
	})
	if err != nil {
		h.logger.WithError(err).Error("Schedule chain failed")
		utils.SendInternalError(c, "Failed to fetch schedule")
		return
	}

	sched := res.Payload.Schedule
	if sched.TeamID == 0 {
		sched.TeamID = teamID
	}
	if sched.TeamName == "" {
		sched.TeamName = teamName
	}

	c.JSON(http.StatusOK, gin.H{
		"team_id":   sched.TeamID,
		"team_name": sched.TeamName,
		"from":      sched.From,
		"to":        sched.To,
		"next_game": sched.NextGame,
		"schedule":  sched.Schedule,
		"source":    res.Payload.Source,
	})
}

func (h *ToolsHandler) News(c *gin.Context) {
	var req models.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if req.DaysBack <= 0 {
		req.DaysBack = 7
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 10
	}

	res, err := h.chains.News.Execute(c.Request.Context(), sources.Request{
		Team:       req.Team,
		DaysBack:   req.DaysBack,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		h.logger.WithError(err).Error("News chain failed")
		utils.SendInternalError(c, "Failed to fetch news")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team":     req.Team,
		"articles": res.Payload.News.Articles,
		"source":   res.Payload.Source,
	})
}

func (h *ToolsHandler) YouTube(c *gin.Context) {
	var req models.YouTubeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if req.Query == "" && req.Team == "" {
		utils.SendValidationError(c, "Provide 'query' or 'team'", "")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 5
	}

	res, err := h.chains.Videos.Execute(c.Request.Context(), sources.Request{
		Query:      req.Query,
		Team:       req.Team,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		h.logger.WithError(err).Error("Videos chain failed")
		utils.SendInternalError(c, "Failed to fetch videos")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   res.Payload.Videos.Query,
		"results": res.Payload.Videos.Results,
		"source":  res.Payload.Source,
	})
}

func (h *ToolsHandler) CompareStats(c *gin.Context) {
	var req models.CompareStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	_, name1, ok1 := services.ResolveMLBTeam(req.Team1)
	_, name2, ok2 := services.ResolveMLBTeam(req.Team2)
	if !ok1 || !ok2 {
		utils.SendNotFound(c, "One or both teams could not be resolved")
		return
	}

	res, err := h.chains.Compare.Execute(c.Request.Context(), sources.Request{
		Team1:  name1,
		Team2:  name2,
		Season: req.Season,
	})
	if err != nil {
		h.logger.WithError(err).Error("Compare chain failed")
		utils.SendInternalError(c, "Failed to compare teams")
		return
	}

	cmp := res.Payload.Comparison
	c.JSON(http.StatusOK, gin.H{
		"team1":      cmp.Team1,
		"team2":      cmp.Team2,
		"comparison": cmp.Comparison,
		"source":     res.Payload.Source,
	})
}

func (h *ToolsHandler) TeamIntelligence(c *gin.Context) {
	var req models.TeamIntelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if req.DaysBack <= 0 {
		req.DaysBack = 7
	}
	if req.MaxNews <= 0 {
		req.MaxNews = 5
	}
	if req.MaxVideos <= 0 {
		req.MaxVideos = 5
	}

	intel, err := h.aggregator.TeamIntelligence(c.Request.Context(), req)
	if err != nil {
		h.logger.WithError(err).Error("Team intelligence failed")
		utils.SendInternalError(c, "Failed to build team intelligence")
		return
	}

	c.JSON(http.StatusOK, intel)
}

func (h *ToolsHandler) Aggregate(c *gin.Context) {
	var req models.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.aggregator.Aggregate(c.Request.Context(), req)
	if err != nil {
		h.logger.WithError(err).Error("Aggregate failed")
		utils.SendInternalError(c, "Failed to aggregate data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": result.Summary,
		"data":    result.Data,
		"sources": result.Sources,
	})
}

// parseISO accepts full RFC 3339 timestamps and bare dates.
func parseISO(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
