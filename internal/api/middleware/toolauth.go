package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/sportsdesk/pkg/utils"
)

// ToolAuth enforces the shared-secret check on the tool endpoints. The token
// may arrive as the X-Tool-Token header or as a tool_token field in the JSON
// body. When no token is configured the check is open.
func ToolAuth(configuredToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if configuredToken == "" {
			c.Next()
			return
		}

		incoming := c.GetHeader("X-Tool-Token")
		if incoming == "" {
			incoming = bodyToolToken(c)
		}

		if incoming != configuredToken {
			utils.SendUnauthorized(c, "Invalid tool token")
			c.Abort()
			return
		}

		c.Next()
	}
}

// bodyToolToken peeks at the request body for a tool_token field and
// restores the body so handlers can still bind it.
func bodyToolToken(c *gin.Context) string {
	if c.Request.Body == nil || c.Request.Method != http.MethodPost {
		return ""
	}

	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
	if err != nil {
		return ""
	}

	var probe struct {
		ToolToken string `json:"tool_token"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.ToolToken
}
