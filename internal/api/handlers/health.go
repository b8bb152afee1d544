package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/sportsdesk/internal/services"
)

// HealthHandler reports process liveness plus the LLM circuit states.
type HealthHandler struct {
	chains *services.ChainSet
}

func NewHealthHandler(chains *services.ChainSet) *HealthHandler {
	return &HealthHandler{chains: chains}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"sources":   h.chains.Healthy(),
	})
}
