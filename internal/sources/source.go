// Package sources defines the contract between the orchestration layer and
// the external data providers: a uniform adapter interface, a classified
// failure taxonomy, and the fallback chain executor that tries adapters in
// priority order until one produces a normalized payload.
package sources

import (
	"context"
	"time"

	"github.com/jstittsworth/sportsdesk/internal/models"
)

// Capability names one logical kind of data the system can produce.
type Capability string

const (
	CapabilitySchedule   Capability = "schedule"
	CapabilityNews       Capability = "news"
	CapabilityVideos     Capability = "videos"
	CapabilityComparison Capability = "comparison"
	CapabilityStats      Capability = "stats"
	CapabilitySentiment  Capability = "sentiment"
	CapabilityPrediction Capability = "prediction"
	CapabilityVisual     Capability = "visual"
)

// Request carries the shared parameters a chain invocation needs. Adapters
// read only the fields relevant to their capability.
type Request struct {
	Team       string
	Team1      string
	Team2      string
	Query      string
	Sport      string
	Action     string
	Opponent   string
	Days       int
	DaysBack   int
	MaxResults int
	Season     *int
	From       time.Time

	// Generative-agent options
	Platform       string
	PredictionType string
	ChartType      string
	DataPeriod     string
	Metrics        []string
}

// Payload is the normalized, capability-tagged result of a fetch. Exactly one
// body field is set, matching the Capability tag. Source records which
// adapter produced the data; it is the only provenance a consumer may use.
type Payload struct {
	Capability Capability
	Source     string

	Schedule   *models.SchedulePayload
	News       *models.NewsPayload
	Videos     *models.VideoPayload
	Comparison *models.ComparisonPayload
	Stats      *models.StatsPayload
	Report     *models.ReportPayload
}

// Adapter wraps one external capability behind a uniform fetch contract.
// Implementations are stateless across calls and issue at most one outbound
// request per invocation.
type Adapter interface {
	// Name is the provenance tag stamped on successful payloads.
	Name() string
	// Timeout bounds a single Fetch. Adapters early in a chain carry short
	// timeouts so a slow primary cannot starve later fallbacks.
	Timeout() time.Duration
	// Fetch returns a normalized payload or one of the classified failures
	// from this package.
	Fetch(ctx context.Context, req Request) (*Payload, error)
}

// CacheProvider is the subset of the cache service the structured adapters
// use for response caching.
type CacheProvider interface {
	GetSimple(key string, dest interface{}) error
	SetSimple(key string, value interface{}, expiration time.Duration) error
}
