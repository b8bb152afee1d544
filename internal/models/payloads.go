package models

import "time"

// Normalized payload bodies. Every source adapter for a capability maps its
// upstream response into one of these shapes, so consumers never see
// provider-specific structure. Provenance travels separately as a source tag.

// Game is a single scheduled or completed game.
type Game struct {
	GamePk   int    `json:"game_pk"`
	GameDate string `json:"game_date"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	IsHome   bool   `json:"is_home"`
	Opponent string `json:"opponent"`
	Venue    string `json:"venue,omitempty"`
	Status   string `json:"status"`
}

// SchedulePayload is the normalized schedule capability body.
type SchedulePayload struct {
	TeamID   int    `json:"team_id,omitempty"`
	TeamName string `json:"team_name"`
	From     string `json:"from"`
	To       string `json:"to"`
	NextGame *Game  `json:"next_game"`
	Schedule []Game `json:"schedule"`
}

// Article is one news item.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	URLToImage  string `json:"url_to_image,omitempty"`
}

// NewsPayload is the normalized news capability body.
type NewsPayload struct {
	Team     string    `json:"team"`
	Articles []Article `json:"articles"`
}

// Video is one video search result.
type Video struct {
	VideoID   string `json:"video_id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Channel   string `json:"channel"`
	ViewCount string `json:"view_count"`
}

// VideoPayload is the normalized video capability body.
type VideoPayload struct {
	Query   string  `json:"query"`
	Results []Video `json:"results"`
}

// TeamRef identifies one resolved team.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ComparisonPayload is the normalized head-to-head comparison body.
type ComparisonPayload struct {
	Team1      TeamRef                `json:"team1"`
	Team2      TeamRef                `json:"team2"`
	Comparison map[string]interface{} `json:"comparison"`
}

// StatsPayload carries per-sport team data for the multi-sport tools. The
// action selects which block the handler surfaces.
type StatsPayload struct {
	Sport   string                 `json:"sport"`
	Team    string                 `json:"team"`
	Action  string                 `json:"action"`
	Data    map[string]interface{} `json:"data"`
	RawText string                 `json:"raw_data,omitempty"`
}

// ReportPayload carries the generative-agent capabilities (sentiment,
// prediction, visual analytics) whose bodies are loosely structured.
type ReportPayload struct {
	Team string                 `json:"team"`
	Data map[string]interface{} `json:"data"`
}

// UserProfile is the in-memory personalized-agent profile record.
type UserProfile struct {
	UserID       string                 `json:"user_id"`
	FavoriteTeam string                 `json:"favorite_team"`
	Sport        string                 `json:"sport"`
	Preferences  map[string]interface{} `json:"preferences"`
	CreatedAt    time.Time              `json:"created_at"`
	LastUpdated  time.Time              `json:"last_updated"`
}
