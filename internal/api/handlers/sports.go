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
	"github.com/jstittsworth/sportsdesk/internal/sports"
	"github.com/jstittsworth/sportsdesk/pkg/utils"
)

// SportsHandler serves the multi-sport stats endpoints plus the dedicated
// NBA and NFL variants. Sport and team are validated against the local
// rosters before any chain runs.
type SportsHandler struct {
	chains *services.ChainSet
	logger *logrus.Logger
}

func NewSportsHandler(chains *services.ChainSet, logger *logrus.Logger) *SportsHandler {
	return &SportsHandler{chains: chains, logger: logger}
}

func (h *SportsHandler) MultiSport(c *gin.Context) {
	var req models.MultiSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	sport := strings.ToLower(req.Sport)
	cfg, ok := sports.Configs[sport]
	if !ok {
		utils.SendValidationError(c,
			fmt.Sprintf("Sport '%s' not supported. Available: %s", sport, strings.Join(sports.Supported(), ", ")), "")
		return
	}
	if !sports.ValidTeam(sport, req.Team) {
		utils.SendValidationError(c,
			fmt.Sprintf("Team '%s' not found for %s. Available teams: %s", req.Team, sport, strings.Join(cfg.Teams, ", ")), "")
		return
	}

	action := strings.ToLower(req.Action)
	if action == "" {
		action = "all"
	}

	res, err := h.chains.MultiSport.Execute(c.Request.Context(), sources.Request{
		Sport:  sport,
		Team:   req.Team,
		Action: action,
	})
	if err != nil {
		h.logger.WithError(err).Error("Multi-sport chain failed")
		utils.SendInternalError(c, "Failed to fetch sport data")
		return
	}

	c.JSON(http.StatusOK, sliceStats(res.Payload, sport, req.Team, action))
}

func (h *SportsHandler) NBA(c *gin.Context) {
	var req models.SportStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if !sports.ValidTeam("nba", req.Team) {
		utils.SendValidationError(c,
			fmt.Sprintf("NBA team '%s' not found. Available teams: %s", req.Team, strings.Join(sports.Configs["nba"].Teams, ", ")), "")
		return
	}

	h.sportStats(c, h.chains.NBA, "nba", req)
}

func (h *SportsHandler) NFL(c *gin.Context) {
	var req models.SportStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if !sports.ValidNFLTeam(req.Team) {
		utils.SendValidationError(c,
			fmt.Sprintf("NFL team '%s' not found. Available teams: %s", req.Team, strings.Join(sports.NFLTeams, ", ")), "")
		return
	}

	h.sportStats(c, h.chains.NFL, "nfl", req)
}

func (h *SportsHandler) sportStats(c *gin.Context, chain *sources.Chain, sport string, req models.SportStatsRequest) {
	action := strings.ToLower(req.Action)
	if action == "" {
		action = "all"
	}

	res, err := chain.Execute(c.Request.Context(), sources.Request{
		Sport:  sport,
		Team:   req.Team,
		Action: action,
	})
	if err != nil {
		h.logger.WithError(err).Error("Sport stats chain failed")
		utils.SendInternalError(c, "Failed to fetch sport data")
		return
	}

	c.JSON(http.StatusOK, sliceStats(res.Payload, sport, req.Team, action))
}

// sliceStats carves the action's block out of a stats payload and attaches
// the matching summary line. Actions the payload has no block for fall back
// to the full dataset.
func sliceStats(payload *sources.Payload, sport, team, action string) gin.H {
	upper := strings.ToUpper(sport)
	stats := payload.Stats

	out := gin.H{
		"sport":  upper,
		"team":   team,
		"action": action,
		"source": payload.Source,
	}
	if stats.RawText != "" {
		out["raw_data"] = stats.RawText
	}

	block := func(key string) (interface{}, bool) {
		if stats.Data == nil {
			return nil, false
		}
		v, ok := stats.Data[key]
		return v, ok
	}

	switch action {
	case "stats":
		if v, ok := block("stats"); ok {
			out["stats"] = v
		} else {
			out["stats"] = stats.Data
		}
		out["summary"] = fmt.Sprintf("%s (%s) current season statistics and performance metrics.", team, upper)
	case "news":
		if v, ok := block("news"); ok {
			out["news"] = v
		} else {
			out["news"] = stats.Data
		}
		out["summary"] = fmt.Sprintf("Latest news and updates for %s in %s.", team, upper)
	case "schedule":
		if v, ok := block("schedule"); ok {
			out["schedule"] = v
		} else {
			out["schedule"] = stats.Data
		}
		out["summary"] = fmt.Sprintf("Upcoming games and schedule for %s in %s.", team, upper)
	case "compare":
		if v, ok := block("compare"); ok {
			out["comparison"] = v
		} else {
			out["comparison"] = stats.Data
		}
		out["summary"] = fmt.Sprintf("Performance comparison and analysis for %s in %s.", team, upper)
	default:
		out["data"] = stats.Data
		out["summary"] = fmt.Sprintf("Complete %s analysis for %s including stats, news, schedule, and comparisons.", upper, team)
	}

	return out
}
