package models

// Request bodies for the tool endpoints. Every mutating tool accepts an
// optional tool_token which, together with the X-Tool-Token header, feeds the
// shared-secret check.

type CheckScheduleRequest struct {
	Team      string `json:"team" binding:"required"`
	Days      int    `json:"days"`
	FromISO   string `json:"from_iso"`
	ToolToken string `json:"tool_token"`
}

type NewsRequest struct {
	Team       string `json:"team" binding:"required"`
	DaysBack   int    `json:"days_back"`
	MaxResults int    `json:"max_results"`
	ToolToken  string `json:"tool_token"`
}

type YouTubeRequest struct {
	Query      string `json:"query"`
	Team       string `json:"team"`
	MaxResults int    `json:"max_results"`
	ToolToken  string `json:"tool_token"`
}

type CompareStatsRequest struct {
	Team1     string `json:"team1" binding:"required"`
	Team2     string `json:"team2" binding:"required"`
	Season    *int   `json:"season"`
	ToolToken string `json:"tool_token"`
}

type TeamIntelRequest struct {
	Team      string `json:"team" binding:"required"`
	DaysBack  int    `json:"days_back"`
	MaxNews   int    `json:"max_news"`
	MaxVideos int    `json:"max_videos"`
	ToolToken string `json:"tool_token"`
}

// AggregateRequest drives the multi-capability aggregator. Include flags
// select the capability slots; everything else is shared parameters.
type AggregateRequest struct {
	Team            string `json:"team"`
	Team1           string `json:"team1"`
	Team2           string `json:"team2"`
	IncludeSchedule *bool  `json:"include_schedule"`
	IncludeCompare  *bool  `json:"include_compare"`
	IncludeNews     *bool  `json:"include_news"`
	IncludeYouTube  *bool  `json:"include_youtube"`
	Days            int    `json:"days"`
	DaysBack        int    `json:"days_back"`
	MaxNews         int    `json:"max_news"`
	MaxVideos       int    `json:"max_videos"`
	Season          *int   `json:"season"`
	ToolToken       string `json:"tool_token"`
}

type MultiSportRequest struct {
	Sport     string `json:"sport" binding:"required"`
	Team      string `json:"team" binding:"required"`
	Action    string `json:"action"`
	Context   string `json:"context"`
	ToolToken string `json:"tool_token"`
}

type SportStatsRequest struct {
	Team      string `json:"team" binding:"required"`
	Action    string `json:"action"`
	Context   string `json:"context"`
	ToolToken string `json:"tool_token"`
}

type SentimentRequest struct {
	Team      string `json:"team" binding:"required"`
	Sport     string `json:"sport"`
	Platform  string `json:"platform"`
	DaysBack  int    `json:"days_back"`
	ToolToken string `json:"tool_token"`
}

type PredictRequest struct {
	Team           string `json:"team" binding:"required"`
	Opponent       string `json:"opponent" binding:"required"`
	Sport          string `json:"sport"`
	PredictionType string `json:"prediction_type"`
	Context        string `json:"context"`
	ToolToken      string `json:"tool_token"`
}

type VisualAnalyticsRequest struct {
	Team       string   `json:"team" binding:"required"`
	Sport      string   `json:"sport"`
	ChartType  string   `json:"chart_type"`
	DataPeriod string   `json:"data_period"`
	Metrics    []string `json:"metrics"`
	Context    string   `json:"context"`
	ToolToken  string   `json:"tool_token"`
}

type PipelineRequest struct {
	Team      string `json:"team" binding:"required"`
	Sport     string `json:"sport"`
	Context   string `json:"context"`
	ToolToken string `json:"tool_token"`
}

type GamificationRequest struct {
	UserID         string                 `json:"user_id" binding:"required"`
	Action         string                 `json:"action" binding:"required"`
	QuestionID     string                 `json:"question_id"`
	Answer         *int                   `json:"answer"`
	PredictionData map[string]interface{} `json:"prediction_data"`
	ToolToken      string                 `json:"tool_token"`
}

type PersonalizedAgentRequest struct {
	UserID       string                 `json:"user_id" binding:"required"`
	FavoriteTeam string                 `json:"favorite_team" binding:"required"`
	Sport        string                 `json:"sport"`
	Preferences  map[string]interface{} `json:"preferences"`
	AgentType    string                 `json:"agent_type"`
	Context      string                 `json:"context"`
	ToolToken    string                 `json:"tool_token"`
}

type UpdatePreferencesRequest struct {
	UserID      string                 `json:"user_id" binding:"required"`
	Preferences map[string]interface{} `json:"preferences" binding:"required"`
	ToolToken   string                 `json:"tool_token"`
}
