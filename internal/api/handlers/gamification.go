package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/sportsdesk/internal/gamification"
	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/pkg/utils"
)

// GamificationHandler routes the gamification-agent actions to the ledger.
type GamificationHandler struct {
	ledger *gamification.Ledger
}

func NewGamificationHandler(ledger *gamification.Ledger) *GamificationHandler {
	return &GamificationHandler{ledger: ledger}
}

func (h *GamificationHandler) Handle(c *gin.Context) {
	var req models.GamificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	switch req.Action {
	case "get_trivia":
		question, stats := h.ledger.RandomQuestion(req.UserID)
		c.JSON(http.StatusOK, gin.H{
			"agent":      "gamification-agent",
			"action":     "get_trivia",
			"question":   question,
			"user_stats": stats,
			"status":     "success",
			"summary":    fmt.Sprintf("Trivia question loaded: %s", question.Question),
		})

	case "submit_answer":
		if req.QuestionID == "" || req.Answer == nil {
			utils.SendValidationError(c, "Missing question_id or answer", "")
			return
		}
		result, stats, err := h.ledger.SubmitAnswer(req.UserID, req.QuestionID, *req.Answer)
		if err != nil {
			if errors.Is(err, gamification.ErrQuestionNotFound) {
				utils.SendNotFound(c, "Question not found")
				return
			}
			utils.SendInternalError(c, "Failed to score answer")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"agent":      "gamification-agent",
			"action":     "submit_answer",
			"result":     result,
			"user_stats": stats,
			"status":     "success",
			"summary":    answerSummary(result),
		})

	case "make_prediction":
		if len(req.PredictionData) == 0 {
			utils.SendValidationError(c, "Missing prediction data", "")
			return
		}
		result, stats := h.ledger.MakePrediction(req.UserID, req.PredictionData)
		c.JSON(http.StatusOK, gin.H{
			"agent":      "gamification-agent",
			"action":     "make_prediction",
			"result":     result,
			"user_stats": stats,
			"status":     "success",
			"summary":    fmt.Sprintf("Prediction made successfully! +%d points", result.PointsAwarded),
		})

	case "get_leaderboard":
		entries, stats := h.ledger.Leaderboard(req.UserID)
		c.JSON(http.StatusOK, gin.H{
			"agent":       "gamification-agent",
			"action":      "get_leaderboard",
			"leaderboard": entries,
			"user_stats":  stats,
			"status":      "success",
			"summary":     fmt.Sprintf("Leaderboard loaded with %d entries", len(entries)),
		})

	default:
		utils.SendValidationError(c, fmt.Sprintf("Unknown action: %s", req.Action), "")
	}
}

func answerSummary(result gamification.AnswerResult) string {
	if result.Correct {
		return fmt.Sprintf("Answer correct! +%d points", result.PointsAwarded)
	}
	return "Answer incorrect! No points awarded"
}
