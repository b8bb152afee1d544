package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Shared secret for the tool endpoints. Empty means open (dev).
	ToolToken string `mapstructure:"TOOL_TOKEN"`

	// Generative text providers
	OpenAIAPIKey   string        `mapstructure:"OPENAI_API_KEY"`
	MistralAPIKey  string        `mapstructure:"MISTRAL_API_KEY"`
	OpenAITimeout  time.Duration `mapstructure:"OPENAI_TIMEOUT"`
	MistralTimeout time.Duration `mapstructure:"MISTRAL_TIMEOUT"`
	LLMRateLimit   int           `mapstructure:"LLM_RATE_LIMIT"`

	// Structured data providers
	MLBStatsBaseURL string        `mapstructure:"MLB_STATS_BASE_URL"`
	NewsAPIKey      string        `mapstructure:"NEWS_API_KEY"`
	YouTubeAPIKey   string        `mapstructure:"YOUTUBE_API_KEY"`
	ProviderTimeout time.Duration `mapstructure:"PROVIDER_TIMEOUT"`

	// Circuit breaker
	CircuitBreakerThreshold int `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Background cache warming
	EnableBackgroundJobs bool     `mapstructure:"ENABLE_BACKGROUND_JOBS"`
	RefreshInterval      string   `mapstructure:"REFRESH_INTERVAL"`
	WarmTeams            []string `mapstructure:"WARM_TEAMS"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:8888")
	viper.SetDefault("TOOL_TOKEN", "")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("MISTRAL_API_KEY", "")
	viper.SetDefault("OPENAI_TIMEOUT", "5s")
	viper.SetDefault("MISTRAL_TIMEOUT", "8s")
	viper.SetDefault("LLM_RATE_LIMIT", 60) // requests per minute
	viper.SetDefault("MLB_STATS_BASE_URL", "https://statsapi.mlb.com/api/v1")
	viper.SetDefault("NEWS_API_KEY", "")
	viper.SetDefault("YOUTUBE_API_KEY", "")
	viper.SetDefault("PROVIDER_TIMEOUT", "8s")
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("ENABLE_BACKGROUND_JOBS", false)
	viper.SetDefault("REFRESH_INTERVAL", "2h")
	viper.SetDefault("WARM_TEAMS", "")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse comma-separated lists
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}
	if teamsStr := viper.GetString("WARM_TEAMS"); teamsStr != "" {
		config.WarmTeams = strings.Split(teamsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
