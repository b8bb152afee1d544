package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/providers"
)

// ProfileService stores user profiles in memory and builds personalized
// agent configurations from them.
type ProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*models.UserProfile
	llm      *providers.LLMClient
	logger   *logrus.Logger
}

func NewProfileService(llm *providers.LLMClient, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		profiles: make(map[string]*models.UserProfile),
		llm:      llm,
		logger:   logger,
	}
}

// Upsert creates or replaces a user profile, preserving the original
// creation time on update.
func (s *ProfileService) Upsert(userID, favoriteTeam, sport string, preferences map[string]interface{}) *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	created := now
	if existing, ok := s.profiles[userID]; ok {
		created = existing.CreatedAt
	}
	if preferences == nil {
		preferences = map[string]interface{}{}
	}

	profile := &models.UserProfile{
		UserID:       userID,
		FavoriteTeam: favoriteTeam,
		Sport:        sport,
		Preferences:  preferences,
		CreatedAt:    created,
		LastUpdated:  now,
	}
	s.profiles[userID] = profile
	return profile
}

// Get returns a profile or false when the user is unknown.
func (s *ProfileService) Get(userID string) (*models.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	return p, ok
}

// UpdatePreferences merges new preference keys into an existing profile.
func (s *ProfileService) UpdatePreferences(userID string, preferences map[string]interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return false
	}
	for k, v := range preferences {
		profile.Preferences[k] = v
	}
	profile.LastUpdated = time.Now().UTC()
	return true
}

// AgentConfig builds a personalized agent configuration, preferring the
// generative model and falling back to the static templates.
func (s *ProfileService) AgentConfig(ctx context.Context, profile *models.UserProfile, agentType string) map[string]interface{} {
	if s.llm != nil && s.llm.Configured() {
		if cfg, err := s.generateConfig(ctx, profile, agentType); err == nil {
			return cfg
		} else {
			s.logger.WithError(err).Warn("Personalized agent generation failed, using template")
		}
	}
	return templateConfig(profile, agentType)
}

func (s *ProfileService) generateConfig(ctx context.Context, profile *models.UserProfile, agentType string) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(`Create a comprehensive personalized AI agent configuration for a %s fan who loves the %s team.

Agent Type: %s
Team: %s
Sport: %s
User Preferences: %v

Generate a detailed JSON configuration that includes:
1. agent_name: Creative name for the agent
2. description: Detailed description of the agent's purpose
3. specializations: List of specific areas the agent excels in
4. custom_prompts: Personalized greetings and interaction styles
5. data_sources: Relevant data sources for this team/sport
6. capabilities: Specific AI capabilities and features

Make it highly personalized and specific to the %s team and %s sport.
Return only valid JSON, no additional text.`,
		strings.ToUpper(profile.Sport), profile.FavoriteTeam, agentType, profile.FavoriteTeam,
		strings.ToUpper(profile.Sport), profile.Preferences, profile.FavoriteTeam, profile.Sport)

	content, err := s.llm.Complete(ctx, "", prompt, 2000, 0.7)
	if err != nil {
		return nil, err
	}

	var cfg map[string]interface{}
	if err := json.Unmarshal([]byte(content), &cfg); err != nil {
		return nil, fmt.Errorf("agent config not valid JSON: %w", err)
	}
	cfg["source"] = s.llm.Name()
	cfg["generated_at"] = time.Now().UTC().Format(time.RFC3339)
	return cfg, nil
}

func templateConfig(profile *models.UserProfile, agentType string) map[string]interface{} {
	team := profile.FavoriteTeam
	prefs := profile.Preferences

	pref := func(key string, fallback interface{}) interface{} {
		if v, ok := prefs[key]; ok {
			return v
		}
		return fallback
	}

	switch agentType {
	case "custom_analyst":
		return map[string]interface{}{
			"agent_name":  fmt.Sprintf("%s Custom Analyst", team),
			"description": fmt.Sprintf("Advanced analytics specialist for %s", team),
			"specializations": []string{
				"Advanced statistics analysis",
				"Predictive modeling",
				"Performance optimization",
				"Strategic insights",
			},
			"custom_prompts": map[string]interface{}{
				"greeting":          fmt.Sprintf("Welcome! I'm your %s analytics specialist. Ready to dive deep into the data?", team),
				"analysis_depth":    pref("analysis_depth", "expert"),
				"statistical_focus": pref("statistical_focus", []string{"advanced_metrics", "predictions"}),
				"report_format":     pref("report_format", "comprehensive"),
			},
			"data_sources": []string{
				"Advanced statistics databases",
				"Machine learning models",
				"Historical performance data",
				"League-wide comparisons",
			},
			"capabilities": []string{
				"Advanced metric calculations",
				"Predictive analytics",
				"Performance benchmarking",
				"Strategic recommendations",
				"Data visualization",
			},
		}
	case "personal_scout":
		return map[string]interface{}{
			"agent_name":  fmt.Sprintf("%s Personal Scout", team),
			"description": fmt.Sprintf("Your personal %s scout and talent evaluator", team),
			"specializations": []string{
				"Player scouting reports",
				"Talent evaluation",
				"Trade analysis",
				"Draft insights",
			},
			"custom_prompts": map[string]interface{}{
				"greeting":            fmt.Sprintf("Hey there! I'm your %s scout. Let's find the next star!", team),
				"scouting_focus":      pref("scouting_focus", []string{"prospects", "current_players"}),
				"evaluation_criteria": pref("evaluation_criteria", []string{"potential", "current_skill"}),
				"report_style":        pref("report_style", "detailed"),
			},
			"data_sources": []string{
				"Scouting databases",
				"Player development metrics",
				"League prospect rankings",
				"Performance analytics",
			},
			"capabilities": []string{
				"Player evaluation reports",
				"Trade value analysis",
				"Prospect tracking",
				"Talent comparison",
				"Development recommendations",
			},
		}
	default: // team_agent
		return map[string]interface{}{
			"agent_name":  fmt.Sprintf("%s Team Agent", team),
			"description": fmt.Sprintf("Your personal %s analyst and assistant", team),
			"specializations": []string{
				fmt.Sprintf("%s game analysis", team),
				fmt.Sprintf("%s player statistics", team),
				fmt.Sprintf("%s schedule tracking", team),
				fmt.Sprintf("%s news aggregation", team),
			},
			"custom_prompts": map[string]interface{}{
				"greeting":                 fmt.Sprintf("Hello! I'm your personal %s assistant. How can I help you today?", team),
				"analysis_style":           pref("analysis_style", "detailed"),
				"focus_areas":              pref("focus_areas", []string{"stats", "news", "predictions"}),
				"notification_preferences": pref("notifications", []string{"games", "news", "trades"}),
			},
			"data_sources": []string{
				fmt.Sprintf("%s official statistics", team),
				fmt.Sprintf("%s league data", profile.Sport),
				fmt.Sprintf("%s social media", team),
				fmt.Sprintf("%s news sources", team),
			},
			"capabilities": []string{
				"Real-time game analysis",
				"Player performance tracking",
				"Trade rumor analysis",
				"Schedule optimization",
				"Fan sentiment monitoring",
			},
		}
	}
}

// RuntimeManifest describes the personalized agent in a deployable form.
func RuntimeManifest(profile *models.UserProfile, agentConfig map[string]interface{}) map[string]interface{} {
	team := profile.FavoriteTeam
	return map[string]interface{}{
		"name":          fmt.Sprintf("Personalized %s Agent", team),
		"description":   agentConfig["description"],
		"version":       "1.0.0",
		"user_specific": true,
		"user_id":       profile.UserID,
		"agents": []map[string]interface{}{
			{
				"id":              fmt.Sprintf("personalized-%s-agent", strings.ReplaceAll(strings.ToLower(team), " ", "-")),
				"name":            agentConfig["agent_name"],
				"description":     agentConfig["description"],
				"user_id":         profile.UserID,
				"favorite_team":   team,
				"sport":           strings.ToUpper(profile.Sport),
				"specializations": agentConfig["specializations"],
				"custom_config":   agentConfig["custom_prompts"],
				"methods": []map[string]interface{}{
					{
						"name":        "analyze_team",
						"description": fmt.Sprintf("Analyze %s performance and provide insights", team),
					},
					{
						"name":        "get_insights",
						"description": fmt.Sprintf("Get personalized insights about %s", team),
					},
					{
						"name":        "track_preferences",
						"description": "Track and update user preferences",
					},
				},
			},
		},
		"capabilities": agentConfig["capabilities"],
		"data_sources": agentConfig["data_sources"],
		"created_at":   profile.CreatedAt.Format(time.RFC3339),
		"last_updated": profile.LastUpdated.Format(time.RFC3339),
	}
}
