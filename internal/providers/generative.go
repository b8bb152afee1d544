package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/sources"
)

// GenerativeSchedule produces a team schedule from a chat model. A response
// that is not valid JSON is reported as malformed so the structured schedule
// source can take over.
type GenerativeSchedule struct {
	llm     *LLMClient
	timeout time.Duration
}

func NewGenerativeSchedule(llm *LLMClient, timeout time.Duration) *GenerativeSchedule {
	return &GenerativeSchedule{llm: llm, timeout: timeout}
}

func (g *GenerativeSchedule) Name() string           { return g.llm.Name() }
func (g *GenerativeSchedule) Timeout() time.Duration { return g.timeout }

func (g *GenerativeSchedule) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	system := "You are a sports scheduler. Generate realistic upcoming game schedules for sports teams. Format as JSON with next_game and schedule array."
	user := fmt.Sprintf("Generate upcoming schedule for %s. Include next 5 games with dates, opponents, venues, and game times. Make it realistic and current. Format as JSON.", req.Team)

	content, err := g.llm.Complete(ctx, system, user, 1000, 0.7)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		NextGame *models.Game  `json:"next_game"`
		Schedule []models.Game `json:"schedule"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &parsed); err != nil {
		return nil, fmt.Errorf("%s schedule: %w", g.llm.Name(), sources.ErrMalformed)
	}

	return &sources.Payload{
		Capability: sources.CapabilitySchedule,
		Source:     g.llm.Name(),
		Schedule: &models.SchedulePayload{
			TeamName: req.Team,
			NextGame: parsed.NextGame,
			Schedule: parsed.Schedule,
		},
	}, nil
}

// GenerativeNews produces news articles from a chat model. A non-JSON
// response degrades to a single article wrapping the raw text.
type GenerativeNews struct {
	llm     *LLMClient
	timeout time.Duration
}

func NewGenerativeNews(llm *LLMClient, timeout time.Duration) *GenerativeNews {
	return &GenerativeNews{llm: llm, timeout: timeout}
}

func (g *GenerativeNews) Name() string           { return g.llm.Name() }
func (g *GenerativeNews) Timeout() time.Duration { return g.timeout }

func (g *GenerativeNews) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	system := "You are a sports journalist. Generate realistic, current news articles about sports teams. Format as JSON array with title, description, source, published_at fields."
	user := fmt.Sprintf("Generate 5 recent news articles about %s. Include latest games, player updates, trades, injuries, and team developments. Make it realistic and current. Format as JSON array.", req.Team)

	content, err := g.llm.Complete(ctx, system, user, 1500, 0.7)
	if err != nil {
		return nil, err
	}

	var articles []models.Article
	if err := json.Unmarshal([]byte(extractJSON(content)), &articles); err != nil {
		articles = []models.Article{{
			Title:       content,
			Description: fmt.Sprintf("Latest news about %s", req.Team),
			Source:      g.llm.Name(),
			PublishedAt: time.Now().UTC().Format(time.RFC3339),
		}}
	}

	return &sources.Payload{
		Capability: sources.CapabilityNews,
		Source:     g.llm.Name(),
		News:       &models.NewsPayload{Team: req.Team, Articles: articles},
	}, nil
}

// GenerativeVideos produces video suggestions from a chat model, degrading a
// non-JSON response to a single text result.
type GenerativeVideos struct {
	llm     *LLMClient
	timeout time.Duration
}

func NewGenerativeVideos(llm *LLMClient, timeout time.Duration) *GenerativeVideos {
	return &GenerativeVideos{llm: llm, timeout: timeout}
}

func (g *GenerativeVideos) Name() string           { return g.llm.Name() }
func (g *GenerativeVideos) Timeout() time.Duration { return g.timeout }

func (g *GenerativeVideos) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	if req.Team == "" {
		// Free-text queries go straight to the search API.
		return nil, sources.ErrNotConfigured
	}

	system := "You are a sports content curator. Generate realistic YouTube video suggestions about sports teams. Format as JSON array with video_id, title, url, channel, view_count fields."
	user := fmt.Sprintf("Generate 5 YouTube video suggestions about %s. Include highlights, analysis, interviews, and fan content. Make it realistic and current. Format as JSON array.", req.Team)

	content, err := g.llm.Complete(ctx, system, user, 1500, 0.7)
	if err != nil {
		return nil, err
	}

	var videos []models.Video
	if err := json.Unmarshal([]byte(extractJSON(content)), &videos); err != nil {
		videos = []models.Video{{
			VideoID:   "generated",
			Title:     content,
			URL:       "https://youtube.com/watch?v=generated",
			Channel:   g.llm.Name(),
			ViewCount: "1000",
		}}
	}

	return &sources.Payload{
		Capability: sources.CapabilityVideos,
		Source:     g.llm.Name(),
		Videos:     &models.VideoPayload{Query: req.Team, Results: videos},
	}, nil
}

// GenerativeStats produces multi-sport team data from a chat model. Valid
// JSON lands in the structured Data map; anything else is carried as raw
// narrative text, which is still a successful fetch.
type GenerativeStats struct {
	llm     *LLMClient
	timeout time.Duration
}

func NewGenerativeStats(llm *LLMClient, timeout time.Duration) *GenerativeStats {
	return &GenerativeStats{llm: llm, timeout: timeout}
}

func (g *GenerativeStats) Name() string           { return g.llm.Name() }
func (g *GenerativeStats) Timeout() time.Duration { return g.timeout }

func (g *GenerativeStats) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	system := fmt.Sprintf("You are a professional %s analyst. Generate realistic and current sports data. Format responses as JSON with proper structure.", strings.ToUpper(req.Sport))
	user := statsPrompt(req.Sport, req.Action, req.Team)

	content, err := g.llm.Complete(ctx, system, user, 1000, 0.7)
	if err != nil {
		return nil, err
	}

	payload := &models.StatsPayload{
		Sport:  strings.ToUpper(req.Sport),
		Team:   req.Team,
		Action: req.Action,
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(extractJSON(content)), &data); err == nil {
		payload.Data = data
	} else {
		payload.RawText = content
	}

	return &sources.Payload{
		Capability: sources.CapabilityStats,
		Source:     g.llm.Name(),
		Stats:      payload,
	}, nil
}

// GenerativeReport produces the loosely structured agent reports: sentiment,
// predictions, and visual analytics. A non-JSON response is malformed; the
// static dataset at the end of the chain covers that case.
type GenerativeReport struct {
	llm        *LLMClient
	timeout    time.Duration
	capability sources.Capability
}

func NewGenerativeReport(llm *LLMClient, timeout time.Duration, capability sources.Capability) *GenerativeReport {
	return &GenerativeReport{llm: llm, timeout: timeout, capability: capability}
}

func (g *GenerativeReport) Name() string           { return g.llm.Name() }
func (g *GenerativeReport) Timeout() time.Duration { return g.timeout }

func (g *GenerativeReport) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	system, user, maxTokens := reportPrompt(g.capability, req)

	content, err := g.llm.Complete(ctx, system, user, maxTokens, 0.7)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(extractJSON(content)), &data); err != nil {
		return nil, fmt.Errorf("%s %s: %w", g.llm.Name(), g.capability, sources.ErrMalformed)
	}

	return &sources.Payload{
		Capability: g.capability,
		Source:     g.llm.Name(),
		Report:     &models.ReportPayload{Team: req.Team, Data: data},
	}, nil
}

func reportPrompt(capability sources.Capability, req sources.Request) (system, user string, maxTokens int) {
	switch capability {
	case sources.CapabilitySentiment:
		system = "You are an expert social media sentiment analyst. Generate realistic sentiment analysis data in JSON format."
		user = fmt.Sprintf(`Analyze fan sentiment for %s in %s from %s over the last %d days.

Provide a JSON response with:
- overall_sentiment: "positive", "negative", or "neutral"
- confidence_score: 0.0 to 1.0
- sentiment_breakdown: positive_percentage, negative_percentage, neutral_percentage
- key_positive_themes: list of positive talking points
- key_negative_themes: list of negative talking points
- trending_topics: list of trending topics
- sample_tweets: list of 3-5 representative social media posts
- engagement_metrics: likes, retweets, comments averages`,
			req.Team, strings.ToUpper(req.Sport), req.Platform, req.DaysBack)
		maxTokens = 2000
	case sources.CapabilityPrediction:
		system = "You are an expert sports analyst and prediction specialist. Generate realistic and data-driven predictions in JSON format."
		user = fmt.Sprintf(`Generate comprehensive sports predictions for %s vs %s in %s.

Prediction type: %s

Provide a JSON response with:
- win_probability: percentage chance for %s to win
- confidence_score: 0.0 to 1.0
- key_factors: list of factors affecting the prediction
- historical_performance: head-to-head record and trends
- prediction_summary: brief explanation of the prediction
- score_prediction: predicted final score (if applicable)
- season_outlook: overall season prospects (if applicable)
- betting_insights: odds and betting recommendations
- risk_factors: potential risks or uncertainties`,
			req.Team, req.Opponent, strings.ToUpper(req.Sport), req.PredictionType, req.Team)
		maxTokens = 2000
	case sources.CapabilityVisual:
		system = "You are an expert sports data analyst and visualization specialist. Generate realistic chart data in JSON format for sports analytics."
		user = fmt.Sprintf(`Generate comprehensive visual analytics data for %s in %s.

Chart type: %s
Data period: %s
Metrics: %s

Provide a JSON response with:
- chart_data: array of data points for visualization
- chart_config: configuration for the chart (colors, labels, etc.)
- insights: key insights from the data
- recommendations: actionable recommendations based on the analysis
- metadata: additional information about the data

For heatmap: provide 2D matrix data with performance metrics
For spray_chart: provide coordinate data for shot/play locations
For trend_analysis: provide time series data with trends
For performance_matrix: provide comparative performance data`,
			req.Team, strings.ToUpper(req.Sport), req.ChartType, req.DataPeriod, strings.Join(req.Metrics, ", "))
		maxTokens = 2500
	}
	return system, user, maxTokens
}

// statsPrompt builds the per-sport, per-action generation prompt for the
// multi-sport tools.
func statsPrompt(sport, action, team string) string {
	type promptSet map[string]string
	prompts := map[string]promptSet{
		"mlb": {
			"stats":    "Generate current MLB statistics for %s. Include wins, losses, batting average, ERA, recent form, and key players performance. Make it realistic and current.",
			"news":     "Generate recent news about %s in MLB. Include latest games, player updates, trades, injuries, and team developments. Make it realistic and current.",
			"schedule": "Generate upcoming schedule for %s in MLB. Include next 3 games with dates, opponents, venues, and game times. Make it realistic and current.",
			"compare":  "Generate performance comparison for %s vs other MLB teams. Include strengths, weaknesses, head-to-head records, and key matchups. Make it realistic and current.",
		},
		"nba": {
			"stats":    "Generate current NBA statistics for %s. Include wins, losses, points per game, assists, rebounds, recent form, and key players performance. Make it realistic and current.",
			"news":     "Generate recent news about %s in NBA. Include latest games, player updates, trades, injuries, and team developments. Make it realistic and current.",
			"schedule": "Generate upcoming schedule for %s in NBA. Include next 3 games with dates, opponents, venues, and game times. Make it realistic and current.",
			"compare":  "Generate performance comparison for %s vs other NBA teams. Include strengths, weaknesses, head-to-head records, and key matchups. Make it realistic and current.",
		},
		"nfl": {
			"stats":    "Generate current NFL statistics for %s. Include wins, losses, points for, points against, total yards, passing yards, rushing yards, turnovers, division record, conference record, playoff seed, recent form, and key players performance. Make it realistic and current.",
			"news":     "Generate recent news about %s in NFL. Include latest games, player updates, trades, injuries, coaching changes, and team developments. Make it realistic and current.",
			"schedule": "Generate upcoming schedule for %s in NFL. Include next 3 games with dates, opponents, venues, and game times. Make it realistic and current.",
			"compare":  "Generate performance comparison for %s vs other NFL teams. Include strengths, weaknesses, head-to-head records, Super Bowl odds, division standing, and key matchups. Make it realistic and current.",
		},
		"cricket": {
			"stats":    "Generate current cricket statistics for %s. Include matches played, wins, runs scored, batting average, bowling figures, recent form, and key players performance. Make it realistic and current.",
			"news":     "Generate recent news about %s in cricket. Include latest matches, player updates, series results, injuries, and team developments. Make it realistic and current.",
			"schedule": "Generate upcoming schedule for %s in cricket. Include next 3 matches with dates, opponents, venues, and match times. Make it realistic and current.",
			"compare":  "Generate performance comparison for %s vs other cricket teams. Include strengths, weaknesses, head-to-head records, and key matchups. Make it realistic and current.",
		},
		"football": {
			"stats":    "Generate current football/soccer statistics for %s. Include matches played, wins, goals scored, points, recent form, and key players performance. Make it realistic and current.",
			"news":     "Generate recent news about %s in football/soccer. Include latest matches, player updates, transfers, injuries, and team developments. Make it realistic and current.",
			"schedule": "Generate upcoming schedule for %s in football/soccer. Include next 3 matches with dates, opponents, venues, and match times. Make it realistic and current.",
			"compare":  "Generate performance comparison for %s vs other football/soccer teams. Include strengths, weaknesses, head-to-head records, and key matchups. Make it realistic and current.",
		},
		"f1": {
			"stats":    "Generate current Formula 1 statistics for %s. Include races completed, wins, points, current position, recent form, and driver performance. Make it realistic and current.",
			"news":     "Generate recent news about %s in Formula 1. Include latest races, driver updates, car developments, technical changes, and team developments. Make it realistic and current.",
			"schedule": "Generate upcoming schedule for %s in Formula 1. Include next 3 races with dates, circuits, and race times. Make it realistic and current.",
			"compare":  "Generate performance comparison for %s vs other F1 teams. Include strengths, weaknesses, head-to-head records, and key matchups. Make it realistic and current.",
		},
	}

	set, ok := prompts[sport]
	if !ok {
		return fmt.Sprintf("Generate %s data for %s in %s.\n\nPlease respond with valid JSON format including: sport, team, %s, and summary fields.", action, team, sport, action)
	}
	tmpl, ok := set[action]
	if !ok {
		tmpl = set["stats"]
	}
	return fmt.Sprintf(tmpl, team) + fmt.Sprintf("\n\nPlease respond with valid JSON format including: sport, team, %s, and summary fields.", action)
}
