package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/sources"
	"github.com/jstittsworth/sportsdesk/internal/sports"
)

// MockSourceName is the provenance tag on static fallback payloads. Callers
// detect degraded responses by this tag, never by HTTP status.
const MockSourceName = "Mock Data"

const mockTimeout = time.Second

// MockSchedule terminates the schedule chain with a synthesized next game.
type MockSchedule struct{}

func NewMockSchedule() *MockSchedule { return &MockSchedule{} }

func (m *MockSchedule) Name() string           { return MockSourceName }
func (m *MockSchedule) Timeout() time.Duration { return mockTimeout }

func (m *MockSchedule) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	from := req.From
	if from.IsZero() {
		from = time.Now().UTC()
	}
	days := req.Days
	if days <= 0 {
		days = 14
	}

	tomorrow := from.AddDate(0, 0, 1)
	game := models.Game{
		GameDate: tomorrow.Format(time.RFC3339),
		HomeTeam: req.Team,
		AwayTeam: "Rangers",
		IsHome:   true,
		Opponent: "Rangers",
		Venue:    "Home Stadium",
		Status:   "Scheduled",
	}

	return &sources.Payload{
		Capability: sources.CapabilitySchedule,
		Source:     MockSourceName,
		Schedule: &models.SchedulePayload{
			TeamName: req.Team,
			From:     from.Format(time.RFC3339),
			To:       from.AddDate(0, 0, days).Format("2006-01-02"),
			NextGame: &game,
			Schedule: []models.Game{game},
		},
	}, nil
}

// MockNews terminates the news chain.
type MockNews struct{}

func NewMockNews() *MockNews { return &MockNews{} }

func (m *MockNews) Name() string           { return MockSourceName }
func (m *MockNews) Timeout() time.Duration { return mockTimeout }

func (m *MockNews) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	return &sources.Payload{
		Capability: sources.CapabilityNews,
		Source:     MockSourceName,
		News: &models.NewsPayload{
			Team: req.Team,
			Articles: []models.Article{
				{
					Title:       fmt.Sprintf("%s clinches playoff spot", req.Team),
					Description: fmt.Sprintf("The %s secured their playoff spot with a strong late-season run.", req.Team),
					Source:      "ESPN",
					PublishedAt: "2024-01-15T00:00:00Z",
				},
			},
		},
	}, nil
}

// MockVideos terminates the video chain.
type MockVideos struct{}

func NewMockVideos() *MockVideos { return &MockVideos{} }

func (m *MockVideos) Name() string           { return MockSourceName }
func (m *MockVideos) Timeout() time.Duration { return mockTimeout }

func (m *MockVideos) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	query := req.Query
	if query == "" {
		query = fmt.Sprintf("%s MLB highlights analysis", req.Team)
	}
	return &sources.Payload{
		Capability: sources.CapabilityVideos,
		Source:     MockSourceName,
		Videos: &models.VideoPayload{
			Query: query,
			Results: []models.Video{
				{
					VideoID:   "mock_highlights",
					Title:     fmt.Sprintf("%s Season Highlights", req.Team),
					URL:       "https://www.youtube.com/watch?v=mock_highlights",
					Channel:   "Sports Highlights",
					ViewCount: "125000",
				},
				{
					VideoID:   "mock_analysis",
					Title:     fmt.Sprintf("%s Game Analysis and Breakdown", req.Team),
					URL:       "https://www.youtube.com/watch?v=mock_analysis",
					Channel:   "Baseball Analysis",
					ViewCount: "48000",
				},
			},
		},
	}, nil
}

// MockCompare terminates the comparison chain.
type MockCompare struct{}

func NewMockCompare() *MockCompare { return &MockCompare{} }

func (m *MockCompare) Name() string           { return MockSourceName }
func (m *MockCompare) Timeout() time.Duration { return mockTimeout }

func (m *MockCompare) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	id1, _ := sports.MLBTeamID(req.Team1)
	id2, _ := sports.MLBTeamID(req.Team2)
	return &sources.Payload{
		Capability: sources.CapabilityComparison,
		Source:     MockSourceName,
		Comparison: &models.ComparisonPayload{
			Team1: models.TeamRef{ID: id1, Name: req.Team1},
			Team2: models.TeamRef{ID: id2, Name: req.Team2},
			Comparison: map[string]interface{}{
				"team1": map[string]interface{}{"vs_league_avg": "+12% better", "strength": "Pitching rotation"},
				"team2": map[string]interface{}{"vs_league_avg": "+5% better", "strength": "Batting lineup"},
			},
		},
	}, nil
}

// MockStats terminates the multi-sport and league-specific stats chains. The
// dataset function selects between the generic per-sport block and the richer
// NBA/NFL blocks.
type MockStats struct {
	dataset func(sport, team string) map[string]interface{}
}

func NewMockMultiSport() *MockStats {
	return &MockStats{dataset: sports.MockDataset}
}

func NewMockNBA() *MockStats {
	return &MockStats{dataset: func(_, team string) map[string]interface{} {
		return sports.MockNBADataset(team)
	}}
}

func NewMockNFL() *MockStats {
	return &MockStats{dataset: func(_, team string) map[string]interface{} {
		return sports.MockNFLDataset(team)
	}}
}

func (m *MockStats) Name() string           { return MockSourceName }
func (m *MockStats) Timeout() time.Duration { return mockTimeout }

func (m *MockStats) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	return &sources.Payload{
		Capability: sources.CapabilityStats,
		Source:     MockSourceName,
		Stats: &models.StatsPayload{
			Sport:  strings.ToUpper(req.Sport),
			Team:   req.Team,
			Action: req.Action,
			Data:   m.dataset(strings.ToLower(req.Sport), req.Team),
		},
	}, nil
}

// MockReport terminates the sentiment, prediction, and visual analytics
// chains with canned report bodies.
type MockReport struct {
	capability sources.Capability
}

func NewMockReport(capability sources.Capability) *MockReport {
	return &MockReport{capability: capability}
}

func (m *MockReport) Name() string           { return MockSourceName }
func (m *MockReport) Timeout() time.Duration { return mockTimeout }

func (m *MockReport) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	var data map[string]interface{}
	switch m.capability {
	case sources.CapabilitySentiment:
		data = mockSentimentData(req.Team)
	case sources.CapabilityPrediction:
		data = mockPredictionData(req.Team, req.Opponent, req.PredictionType)
	case sources.CapabilityVisual:
		data = mockVisualData(req.Team, req.ChartType, req.DataPeriod)
	}

	return &sources.Payload{
		Capability: m.capability,
		Source:     MockSourceName,
		Report:     &models.ReportPayload{Team: req.Team, Data: data},
	}, nil
}

func mockSentimentData(team string) map[string]interface{} {
	return map[string]interface{}{
		"overall_sentiment": "positive",
		"confidence_score":  0.78,
		"sentiment_breakdown": map[string]interface{}{
			"positive_percentage": 68,
			"negative_percentage": 18,
			"neutral_percentage":  14,
		},
		"key_positive_themes": []string{
			"Excellent team chemistry",
			"Strong defensive performance",
			"Fan community support",
			"Coaching improvements",
		},
		"key_negative_themes": []string{
			"Recent inconsistent performances",
			"Injury concerns",
			"Trade deadline anxiety",
		},
		"trending_topics": []string{
			fmt.Sprintf("%s playoff chances", team),
			"Fan predictions",
			"Team statistics",
			"Upcoming games",
		},
		"sample_tweets": []string{
			fmt.Sprintf("Amazing win by %s today! The team is really coming together!", team),
			fmt.Sprintf("Love watching %s play. The energy is incredible!", team),
			fmt.Sprintf("%s needs to focus on consistency. Great potential though!", team),
			fmt.Sprintf("Can't wait for the next %s game. This season is exciting!", team),
			fmt.Sprintf("%s fans are the best! Great community support!", team),
		},
		"engagement_metrics": map[string]interface{}{
			"avg_likes":      185,
			"avg_retweets":   32,
			"avg_comments":   58,
			"total_mentions": 1250,
		},
		"sentiment_trend": map[string]interface{}{
			"last_7_days":     []float64{0.65, 0.72, 0.68, 0.75, 0.78, 0.82, 0.78},
			"trend_direction": "improving",
		},
	}
}

func mockPredictionData(team, opponent, predictionType string) map[string]interface{} {
	switch predictionType {
	case "score_prediction":
		return map[string]interface{}{
			"score_prediction": fmt.Sprintf("%s 28-24 %s", team, opponent),
			"confidence_score": 0.75,
			"predicted_stats": map[string]interface{}{
				team: map[string]interface{}{
					"total_yards":   385,
					"passing_yards": 245,
					"rushing_yards": 140,
					"turnovers":     1,
				},
				opponent: map[string]interface{}{
					"total_yards":   342,
					"passing_yards": 198,
					"rushing_yards": 144,
					"turnovers":     2,
				},
			},
			"key_factors": []string{
				"High-scoring offense vs strong defense",
				"Weather favors passing game",
				"Recent trends suggest close game",
			},
			"prediction_summary":    fmt.Sprintf("Expect a close, high-scoring game with %s edging out %s", team, opponent),
			"over_under_prediction": "Over 52.5 points",
			"betting_insights": map[string]interface{}{
				"total_points": "52.5",
				"spread":       fmt.Sprintf("%s -3.5", team),
				"moneyline":    fmt.Sprintf("%s -150", team),
			},
		}
	case "season_outlook":
		return map[string]interface{}{
			"season_outlook": map[string]interface{}{
				"playoff_probability": 78.5,
				"division_chance":     45.2,
				"championship_odds":   12.8,
			},
			"remaining_schedule_difficulty": "Moderate",
			"key_upcoming_games": []string{
				fmt.Sprintf("%s vs %s - Crucial division game", team, opponent),
				fmt.Sprintf("%s vs Top Contender - Potential playoff preview", team),
			},
			"prediction_summary": fmt.Sprintf("%s is well-positioned for playoffs with strong remaining schedule", team),
			"confidence_score":   0.73,
			"season_factors": []string{
				"Strong team chemistry",
				"Depth in key positions",
				"Favorable remaining schedule",
				"Injury management crucial",
			},
			"projected_final_record": "11-6",
			"playoff_scenarios": map[string]interface{}{
				"best_case":   "Division winner, home field advantage",
				"most_likely": "Wild card berth, road playoff game",
				"worst_case":  "Miss playoffs by 1 game",
			},
		}
	default: // win_probability
		return map[string]interface{}{
			"win_probability":  68.5,
			"confidence_score": 0.82,
			"key_factors": []string{
				fmt.Sprintf("%s has won 8 of last 10 games", team),
				"Strong home record this season",
				"Superior offensive statistics",
				fmt.Sprintf("Better recent form vs %s", opponent),
			},
			"historical_performance": map[string]interface{}{
				"head_to_head":   fmt.Sprintf("%s leads 12-8 in last 20 meetings", team),
				"recent_trend":   fmt.Sprintf("%s has won 4 of last 5 games against %s", team, opponent),
				"home_advantage": fmt.Sprintf("%s is 7-2 at home this season", team),
			},
			"prediction_summary": fmt.Sprintf("%s is favored to win with 68.5%% probability based on recent form and head-to-head record", team),
			"betting_insights": map[string]interface{}{
				"recommended_bet":  fmt.Sprintf("%s moneyline", team),
				"confidence_level": "High",
				"value_rating":     "Good value at current odds",
			},
			"risk_factors": []string{
				"Recent injuries to key players",
				"Weather conditions may affect gameplay",
				fmt.Sprintf("%s has strong defensive record", opponent),
			},
			"statistical_breakdown": map[string]interface{}{
				"offensive_rating":      112.3,
				"defensive_rating":      108.7,
				"pace_factor":           98.5,
				"efficiency_difference": "+3.6",
			},
		}
	}
}

func mockVisualData(team, chartType, dataPeriod string) map[string]interface{} {
	switch chartType {
	case "heatmap":
		return map[string]interface{}{
			"chart_data": map[string]interface{}{
				"z": [][]float64{
					{0.85, 0.72, 0.68, 0.75, 0.82},
					{0.78, 0.88, 0.76, 0.71, 0.69},
					{0.73, 0.81, 0.92, 0.85, 0.77},
					{0.69, 0.74, 0.86, 0.89, 0.83},
					{0.76, 0.79, 0.72, 0.78, 0.91},
				},
				"x": []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"},
				"y": []string{"Offense", "Defense", "Special Teams", "Coaching", "Overall"},
			},
			"chart_config": map[string]interface{}{
				"type":       "heatmap",
				"colorscale": "RdYlGn",
				"title":      fmt.Sprintf("%s Performance Heatmap - %s", team, dataPeriod),
				"x_title":    "Time Period",
				"y_title":    "Performance Areas",
			},
			"insights": []string{
				fmt.Sprintf("%s shows strongest performance in Special Teams", team),
				"Defense has been consistently strong throughout the period",
				"Overall performance trending upward in recent weeks",
			},
			"recommendations": []string{
				"Focus on offensive consistency improvements",
				"Maintain current defensive strategies",
				"Continue building on special teams success",
			},
		}
	case "spray_chart":
		return map[string]interface{}{
			"chart_data": map[string]interface{}{
				"x":      []int{120, 145, 98, 156, 134, 112, 167, 89, 143, 125, 178, 95, 132, 149, 167},
				"y":      []int{85, 92, 78, 95, 88, 72, 96, 65, 89, 94, 98, 68, 87, 91, 93},
				"types":  []string{"Hit", "Miss", "Hit", "Hit", "Miss", "Hit", "Hit", "Miss", "Hit", "Hit", "Hit", "Miss", "Hit", "Hit", "Hit"},
				"values": []int{85, 45, 92, 88, 52, 78, 94, 38, 89, 91, 96, 42, 87, 93, 95},
			},
			"chart_config": map[string]interface{}{
				"type":       "scatter",
				"title":      fmt.Sprintf("%s Shot/Play Location Chart - %s", team, dataPeriod),
				"x_title":    "Field Position X",
				"y_title":    "Field Position Y",
				"size_range": []int{5, 20},
				"color_map":  map[string]interface{}{"Hit": "#00ff00", "Miss": "#ff0000"},
			},
			"insights": []string{
				fmt.Sprintf("%s performs best in central field positions", team),
				"Higher success rate in right-side field areas",
				"Some consistency issues in left-field positions",
			},
			"recommendations": []string{
				"Focus on improving left-field positioning",
				"Maintain current central field strategies",
				"Analyze right-field success patterns",
			},
		}
	case "trend_analysis":
		return map[string]interface{}{
			"chart_data": map[string]interface{}{
				"x":         []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5", "Week 6", "Week 7", "Week 8"},
				"y":         []int{72, 78, 82, 85, 88, 84, 90, 87},
				"trend":     []int{72, 75, 79, 83, 86, 85, 89, 88},
				"benchmark": []int{70, 70, 70, 70, 70, 70, 70, 70},
			},
			"chart_config": map[string]interface{}{
				"type":        "line",
				"title":       fmt.Sprintf("%s Performance Trend - %s", team, dataPeriod),
				"x_title":     "Time Period",
				"y_title":     "Performance Score",
				"line_colors": []string{"#3b82f6", "#10b981", "#6b7280"},
				"line_names":  []string{"Actual Performance", "Trend Line", "Benchmark"},
			},
			"insights": []string{
				fmt.Sprintf("%s shows consistent upward trend in performance", team),
				"Performance is well above benchmark levels",
				"Some volatility in recent weeks but overall positive",
			},
			"recommendations": []string{
				"Continue current performance strategies",
				"Address recent volatility in performance",
				"Maintain focus on exceeding benchmark levels",
			},
		}
	default: // performance_matrix
		return map[string]interface{}{
			"chart_data": map[string]interface{}{
				"categories": []string{"Offense", "Defense", "Special Teams", "Coaching", "Team Chemistry"},
				"values":     []int{85, 92, 88, 90, 87},
				"benchmark":  []int{70, 70, 70, 70, 70},
				"league_avg": []int{75, 75, 75, 75, 75},
			},
			"chart_config": map[string]interface{}{
				"type":      "radar",
				"title":     fmt.Sprintf("%s Performance Matrix - %s", team, dataPeriod),
				"max_value": 100,
				"colors":    []string{"#3b82f6", "#10b981", "#f59e0b"},
			},
			"insights": []string{
				fmt.Sprintf("%s excels in defensive performance", team),
				"Strong coaching and team chemistry scores",
				"Offensive performance could be improved",
			},
			"recommendations": []string{
				"Focus on offensive improvements",
				"Maintain defensive excellence",
				"Continue building team chemistry",
			},
		}
	}
}
