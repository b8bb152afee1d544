package services

import (
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/providers"
	"github.com/jstittsworth/sportsdesk/internal/sources"
	"github.com/jstittsworth/sportsdesk/pkg/config"
)

// ChainSet holds the assembled fallback chain for every capability the tool
// surface exposes. Handlers execute chains; they never talk to adapters
// directly.
type ChainSet struct {
	Schedule   *sources.Chain
	News       *sources.Chain
	Videos     *sources.Chain
	Compare    *sources.Chain
	MultiSport *sources.Chain
	NBA        *sources.Chain
	NFL        *sources.Chain
	Sentiment  *sources.Chain
	Prediction *sources.Chain
	Visual     *sources.Chain

	openai  *providers.LLMClient
	mistral *providers.LLMClient
}

// NewChainSet wires adapters into chains. Ordering encodes source priority:
// generative first, structured API second, static dataset last. Every chain
// ends in a static adapter so execution can never exhaust.
func NewChainSet(cfg *config.Config, cache sources.CacheProvider, logger *logrus.Logger) (*ChainSet, error) {
	openai := providers.NewLLMClient("GPT-5 API", cfg.OpenAIAPIKey, "https://api.openai.com/v1", "gpt-4o", cfg.LLMRateLimit, cfg.CircuitBreakerThreshold, logger)
	mistral := providers.NewLLMClient("Mistral AI", cfg.MistralAPIKey, "https://api.mistral.ai/v1", "mistral-large-latest", cfg.LLMRateLimit, cfg.CircuitBreakerThreshold, logger)

	mlb := providers.NewMLBClient(cfg.MLBStatsBaseURL, cache, logger)

	cs := &ChainSet{openai: openai, mistral: mistral}

	var err error
	if cs.Schedule, err = sources.NewChain(sources.CapabilitySchedule, logger,
		providers.NewGenerativeSchedule(openai, cfg.OpenAITimeout),
		providers.NewMLBScheduleAdapter(mlb, cfg.ProviderTimeout),
		providers.NewMockSchedule(),
	); err != nil {
		return nil, err
	}

	if cs.News, err = sources.NewChain(sources.CapabilityNews, logger,
		providers.NewGenerativeNews(openai, cfg.OpenAITimeout),
		providers.NewNewsAPIAdapter(cfg.NewsAPIKey, cache, cfg.ProviderTimeout),
		providers.NewMockNews(),
	); err != nil {
		return nil, err
	}

	if cs.Videos, err = sources.NewChain(sources.CapabilityVideos, logger,
		providers.NewGenerativeVideos(openai, cfg.OpenAITimeout),
		providers.NewYouTubeAdapter(cfg.YouTubeAPIKey, cache, cfg.ProviderTimeout),
		providers.NewMockVideos(),
	); err != nil {
		return nil, err
	}

	if cs.Compare, err = sources.NewChain(sources.CapabilityComparison, logger,
		providers.NewMLBCompareAdapter(mlb, cfg.ProviderTimeout),
		providers.NewMockCompare(),
	); err != nil {
		return nil, err
	}

	if cs.MultiSport, err = sources.NewChain(sources.CapabilityStats, logger,
		providers.NewGenerativeStats(mistral, cfg.MistralTimeout),
		providers.NewGenerativeStats(openai, cfg.OpenAITimeout),
		providers.NewMockMultiSport(),
	); err != nil {
		return nil, err
	}

	if cs.NBA, err = sources.NewChain(sources.CapabilityStats, logger,
		providers.NewGenerativeStats(mistral, cfg.MistralTimeout),
		providers.NewGenerativeStats(openai, cfg.OpenAITimeout),
		providers.NewMockNBA(),
	); err != nil {
		return nil, err
	}

	if cs.NFL, err = sources.NewChain(sources.CapabilityStats, logger,
		providers.NewGenerativeStats(mistral, cfg.MistralTimeout),
		providers.NewGenerativeStats(openai, cfg.OpenAITimeout),
		providers.NewMockNFL(),
	); err != nil {
		return nil, err
	}

	if cs.Sentiment, err = sources.NewChain(sources.CapabilitySentiment, logger,
		providers.NewGenerativeReport(mistral, cfg.MistralTimeout, sources.CapabilitySentiment),
		providers.NewMockReport(sources.CapabilitySentiment),
	); err != nil {
		return nil, err
	}

	if cs.Prediction, err = sources.NewChain(sources.CapabilityPrediction, logger,
		providers.NewGenerativeReport(mistral, cfg.MistralTimeout, sources.CapabilityPrediction),
		providers.NewMockReport(sources.CapabilityPrediction),
	); err != nil {
		return nil, err
	}

	if cs.Visual, err = sources.NewChain(sources.CapabilityVisual, logger,
		providers.NewGenerativeReport(mistral, cfg.MistralTimeout, sources.CapabilityVisual),
		providers.NewMockReport(sources.CapabilityVisual),
	); err != nil {
		return nil, err
	}

	return cs, nil
}

// Mistral exposes the Mistral client for services that prompt it directly,
// such as the analysis pipeline.
func (cs *ChainSet) Mistral() *providers.LLMClient { return cs.mistral }

// Healthy reports LLM circuit state for the health endpoint.
func (cs *ChainSet) Healthy() map[string]bool {
	return map[string]bool{
		"openai":  cs.openai.IsHealthy(),
		"mistral": cs.mistral.IsHealthy(),
	}
}
