// Package providers implements the concrete source adapters: chat-completion
// LLM generators, the MLB Stats API, NewsAPI, the YouTube Data API, and the
// static datasets that terminate every fallback chain.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/jstittsworth/sportsdesk/internal/sources"
)

// ChatMessage is one turn in a chat-completion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

type chatAPIError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// LLMClient talks to a chat-completions endpoint. Both OpenAI and Mistral
// expose the same request shape, so one client covers both with different
// base URLs and models.
type LLMClient struct {
	name          string
	apiKey        string
	baseURL       string
	model         string
	httpClient    *http.Client
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker
	retryAttempts int
	logger        *logrus.Logger
}

// NewLLMClient builds a client with rate limiting and a circuit breaker.
// requestsPerMinute caps outbound calls; breakerThreshold is the consecutive
// failure count that opens the circuit; name becomes the provenance tag on
// payloads generated through this client.
func NewLLMClient(name, apiKey, baseURL, model string, requestsPerMinute, breakerThreshold int, logger *logrus.Logger) *LLMClient {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if breakerThreshold <= 0 {
		breakerThreshold = 3
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > uint32(breakerThreshold)
		},
		OnStateChange: func(cbName string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"circuit":    cbName,
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Info("LLM circuit breaker state changed")
		},
	})

	return &LLMClient{
		name:          name,
		apiKey:        apiKey,
		baseURL:       baseURL,
		model:         model,
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		limiter:       rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		breaker:       cb,
		retryAttempts: 3,
		logger:        logger,
	}
}

// Name returns the provenance tag for this client.
func (c *LLMClient) Name() string { return c.name }

// Configured reports whether an API key is present.
func (c *LLMClient) Configured() bool { return c.apiKey != "" }

// IsHealthy reports whether the circuit breaker is closed.
func (c *LLMClient) IsHealthy() bool {
	return c.breaker.State() == gobreaker.StateClosed
}

// Complete sends a system+user prompt pair and returns the assistant text.
func (c *LLMClient) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	if !c.Configured() {
		return "", sources.ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	request := chatRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.makeRequest(ctx, request)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &sources.UpstreamError{Source: c.name, Status: http.StatusServiceUnavailable}
		}
		return "", err
	}
	return result.(string), nil
}

func (c *LLMClient) makeRequest(ctx context.Context, request chatRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &sources.UpstreamError{Source: c.name, Status: http.StatusBadGateway, Body: err.Error()}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			var parsed chatResponse
			err := json.NewDecoder(resp.Body).Decode(&parsed)
			resp.Body.Close()
			if err != nil {
				return "", fmt.Errorf("%s: %w", c.name, sources.ErrMalformed)
			}
			if len(parsed.Choices) == 0 {
				return "", fmt.Errorf("%s: empty choices: %w", c.name, sources.ErrMalformed)
			}
			return parsed.Choices[0].Message.Content, nil
		}

		var apiErr chatAPIError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		resp.Body.Close()

		upstream := &sources.UpstreamError{Source: c.name, Status: resp.StatusCode, Body: apiErr.Error.Message}
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusBadRequest:
			// Not worth retrying.
			return "", upstream
		default:
			lastErr = upstream
		}

		c.logger.WithFields(logrus.Fields{
			"provider": c.name,
			"status":   resp.StatusCode,
			"attempt":  attempt + 1,
		}).Warn("LLM request failed")
	}

	return "", fmt.Errorf("failed after %d attempts: %w", c.retryAttempts, lastErr)
}

// extractJSON strips markdown code fences that chat models wrap around JSON
// responses.
func extractJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}
	return strings.TrimSpace(trimmed)
}
