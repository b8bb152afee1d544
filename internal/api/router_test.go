package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/sportsdesk/internal/gamification"
	"github.com/jstittsworth/sportsdesk/internal/services"
	"github.com/jstittsworth/sportsdesk/pkg/config"
)

// testRouter assembles the full route surface against real chains. With no
// API keys configured the generative and structured adapters skip or fail,
// so requests degrade to the static dataset unless mlbURL serves data.
func testRouter(t *testing.T, mlbURL, token string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ToolToken:       token,
		OpenAITimeout:   50 * time.Millisecond,
		MistralTimeout:  50 * time.Millisecond,
		LLMRateLimit:    600,
		MLBStatsBaseURL: mlbURL,
		ProviderTimeout: 500 * time.Millisecond,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	chains, err := services.NewChainSet(cfg, nil, logger)
	require.NoError(t, err)

	aggregator := services.NewAggregator(chains, nil, logger)
	pipeline := services.NewPipeline(chains, logger)
	profiles := services.NewProfileService(chains.Mistral(), logger)
	ledger := gamification.NewLedger()

	router := gin.New()
	SetupRoutes(router, cfg, chains, aggregator, pipeline, profiles, ledger, logger)
	return router
}

// failingMLBServer always returns 500 and counts how often it is hit.
func failingMLBServer(t *testing.T) (*httptest.Server, *int64) {
	t.Helper()
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestToolAuth(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "secret")

	// No token at all
	w := postJSON(t, router, "/tools/echo", map[string]interface{}{"hello": "world"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong header token
	w = postJSON(t, router, "/tools/echo", map[string]interface{}{"hello": "world"},
		map[string]string{"X-Tool-Token": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct header token
	w = postJSON(t, router, "/tools/echo", map[string]interface{}{"hello": "world"},
		map[string]string{"X-Tool-Token": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Correct body token
	w = postJSON(t, router, "/tools/echo", map[string]interface{}{"hello": "world", "tool_token": "secret"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	received := body["received"].(map[string]interface{})
	assert.Equal(t, "world", received["hello"])
}

func TestToolAuth_OpenWhenUnconfigured(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/echo", map[string]interface{}{"ping": true}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckSchedule_UnknownTeamShortCircuits(t *testing.T) {
	srv, hits := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/check_schedule", map[string]interface{}{"team": "Space Cowboys"}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, atomic.LoadInt64(hits), "no source should be consulted for an unresolvable team")
}

func TestCheckSchedule_DegradesToMockOnUpstreamFailure(t *testing.T) {
	srv, hits := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/check_schedule", map[string]interface{}{"team": "Yankees"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Positive(t, atomic.LoadInt64(hits))

	body := decodeBody(t, w)
	assert.Equal(t, "Mock Data", body["source"])
	assert.Equal(t, float64(147), body["team_id"])
	assert.NotNil(t, body["next_game"])
}

func TestCheckSchedule_ServesMLBData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"dates": [{"date": "2026-08-30", "games": [{
				"gamePk": 777,
				"gameDate": "2099-08-30T23:05:00Z",
				"status": {"detailedState": "Scheduled"},
				"teams": {
					"away": {"team": {"id": 111, "name": "Boston Red Sox"}},
					"home": {"team": {"id": 147, "name": "New York Yankees"}}
				},
				"venue": {"name": "Yankee Stadium"}
			}]}]
		}`)
	}))
	defer srv.Close()
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/check_schedule", map[string]interface{}{"team": "Yankees", "days": 7}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "MLB API", body["source"])

	nextGame := body["next_game"].(map[string]interface{})
	assert.Equal(t, "Boston Red Sox", nextGame["opponent"])
	assert.Equal(t, true, nextGame["is_home"])
	assert.Equal(t, "Yankee Stadium", nextGame["venue"])
}

func TestNews_DegradesToMock(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/news", map[string]interface{}{"team": "Dodgers"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Mock Data", body["source"])
	assert.Equal(t, "Dodgers", body["team"])
	assert.NotEmpty(t, body["articles"])
}

func TestYouTube_RequiresQueryOrTeam(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/youtube", map[string]interface{}{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/tools/youtube", map[string]interface{}{"team": "Mets"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Mock Data", body["source"])
}

func TestCompareStats_UnresolvableTeam(t *testing.T) {
	srv, hits := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/compare_stats",
		map[string]interface{}{"team1": "Yankees", "team2": "Space Cowboys"}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, atomic.LoadInt64(hits))
}

func TestCompareStats_DegradesToMock(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/compare_stats",
		map[string]interface{}{"team1": "Yankees", "team2": "Red Sox"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Mock Data", body["source"])
	assert.NotNil(t, body["comparison"])

	team1 := body["team1"].(map[string]interface{})
	assert.Equal(t, "Yankees", team1["name"])
}

func TestAggregate_CombinesSlots(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/aggregate", map[string]interface{}{
		"team":            "Yankees",
		"team1":           "Yankees",
		"team2":           "Red Sox",
		"include_compare": true,
	}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	summary := body["summary"].(string)
	assert.Contains(t, summary, "Next game:")
	assert.Contains(t, summary, "Comparison data available.")
	assert.Contains(t, summary, "News:")
	assert.NotContains(t, summary, "YouTube:", "youtube is off unless requested")

	sourcesMap := body["sources"].(map[string]interface{})
	assert.Equal(t, "Mock Data", sourcesMap["schedule"])
	assert.Equal(t, "Mock Data", sourcesMap["news"])
}

func TestMultiSport_Validation(t *testing.T) {
	srv, hits := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/multi-sport",
		map[string]interface{}{"sport": "curling", "team": "Yankees"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not supported")

	w = postJSON(t, router, "/tools/multi-sport",
		map[string]interface{}{"sport": "mlb", "team": "Space Cowboys"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Available teams")

	assert.Zero(t, atomic.LoadInt64(hits))
}

func TestMultiSport_ActionSlicing(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/multi-sport",
		map[string]interface{}{"sport": "mlb", "team": "Yankees", "action": "stats"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "MLB", body["sport"])
	assert.Equal(t, "Mock Data", body["source"])

	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(85), stats["wins"])
	assert.Contains(t, body["summary"], "current season statistics")

	// action "all" returns the full dataset
	w = postJSON(t, router, "/tools/multi-sport",
		map[string]interface{}{"sport": "cricket", "team": "India"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "stats")
	assert.Contains(t, data, "schedule")
}

func TestNBAStats(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/nba", map[string]interface{}{"team": "Yankees"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/tools/nba", map[string]interface{}{"team": "Celtics"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "NBA", body["sport"])
	assert.Equal(t, "Mock Data", body["source"])
}

func TestNFLStats(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/nfl", map[string]interface{}{"team": "Lakers"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/tools/nfl", map[string]interface{}{"team": "Steelers"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "NFL", body["sport"])
	assert.Equal(t, "Mock Data", body["source"])
}

func TestSentimentAgent(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/sentiment", map[string]interface{}{"team": "Yankees"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "sentiment-agent", body["agent"])
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Mock Data", body["source"])
	assert.Contains(t, body["summary"], "positive sentiment")
	assert.Contains(t, body["summary"], "78.0% confidence")
}

func TestPredictAgent(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/predict", map[string]interface{}{"team": "Yankees"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "opponent is required")

	w = postJSON(t, router, "/tools/predict",
		map[string]interface{}{"team": "Yankees", "opponent": "Red Sox"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "predict-agent", body["agent"])
	assert.Equal(t, "win_probability", body["prediction_type"])

	data := body["data"].(map[string]interface{})
	assert.Contains(t, data, "win_probability")
}

func TestVisualAnalyticsAgent(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/visual-analytics",
		map[string]interface{}{"team": "Yankees", "chart_type": "spray_chart"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "visual-analytics-agent", body["agent"])
	assert.Equal(t, "spray_chart", body["chart_type"])
	assert.NotNil(t, body["data"])
}

func TestPipelineEndpoint(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	w := postJSON(t, router, "/tools/pipeline",
		map[string]interface{}{"team": "Yankees", "sport": "mlb"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Multi-Agent Pipeline", body["source"])

	_, err := uuid.Parse(body["pipeline_id"].(string))
	assert.NoError(t, err)

	agents := body["agents_executed"].([]interface{})
	assert.Len(t, agents, 3)

	results := body["results"].(map[string]interface{})
	assert.Contains(t, results, "stats")
	assert.Contains(t, results, "voice")
	assert.Contains(t, results, "scouting")
}

func TestGamificationAgent(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	// Trivia question
	w := postJSON(t, router, "/tools/gamification-agent",
		map[string]interface{}{"user_id": "u1", "action": "get_trivia"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	question := body["question"].(map[string]interface{})
	assert.NotEmpty(t, question["question_id"])

	// Correct answer scores points
	w = postJSON(t, router, "/tools/gamification-agent",
		map[string]interface{}{"user_id": "u1", "action": "submit_answer", "question_id": "q1", "answer": 0}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	result := body["result"].(map[string]interface{})
	assert.Equal(t, true, result["correct"])
	stats := body["user_stats"].(map[string]interface{})
	assert.Equal(t, float64(10), stats["total_points"])

	// Unknown question
	w = postJSON(t, router, "/tools/gamification-agent",
		map[string]interface{}{"user_id": "u1", "action": "submit_answer", "question_id": "q99", "answer": 0}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Missing answer
	w = postJSON(t, router, "/tools/gamification-agent",
		map[string]interface{}{"user_id": "u1", "action": "submit_answer", "question_id": "q1"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Prediction requires data
	w = postJSON(t, router, "/tools/gamification-agent",
		map[string]interface{}{"user_id": "u1", "action": "make_prediction"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Leaderboard includes seeded entries
	w = postJSON(t, router, "/tools/gamification-agent",
		map[string]interface{}{"user_id": "u1", "action": "get_leaderboard"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SportsFan_2024")

	// Unknown action
	w = postJSON(t, router, "/tools/gamification-agent",
		map[string]interface{}{"user_id": "u1", "action": "dance"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileLifecycle(t *testing.T) {
	srv, _ := failingMLBServer(t)
	router := testRouter(t, srv.URL, "")

	// Unknown profile
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tools/user-profile/nobody", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Create via personalized-agent
	w = postJSON(t, router, "/tools/personalized-agent", map[string]interface{}{
		"user_id":       "fan_1",
		"favorite_team": "Yankees",
		"preferences":   map[string]interface{}{"analysis_style": "concise"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "personalized-agent", body["agent"])
	assert.Equal(t, "team_agent", body["agent_type"])
	assert.NotNil(t, body["personalized_config"])
	assert.NotNil(t, body["runtime_manifest"])

	// Fetch it back
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/tools/user-profile/fan_1", nil))
	assert.Equal(t, http.StatusOK, w2.Code)
	profile := decodeBody(t, w2)
	assert.Equal(t, "Yankees", profile["favorite_team"])

	// Update preferences
	w = postJSON(t, router, "/tools/update-preferences", map[string]interface{}{
		"user_id":     "fan_1",
		"preferences": map[string]interface{}{"notifications": []string{"games"}},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Update for unknown user
	w = postJSON(t, router, "/tools/update-preferences", map[string]interface{}{
		"user_id":     "nobody",
		"preferences": map[string]interface{}{"x": 1},
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
