package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/sources"
)

type stubAdapter struct {
	name    string
	payload *sources.Payload
}

func (s *stubAdapter) Name() string           { return s.name }
func (s *stubAdapter) Timeout() time.Duration { return time.Second }
func (s *stubAdapter) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	return s.payload, nil
}

type brokenAdapter struct {
	name string
}

func (b *brokenAdapter) Name() string           { return b.name }
func (b *brokenAdapter) Timeout() time.Duration { return time.Second }
func (b *brokenAdapter) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	return nil, sources.ErrTimeout
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func stubChainSet(t *testing.T) *ChainSet {
	t.Helper()
	logger := discardLogger()

	mustChain := func(cap sources.Capability, payload *sources.Payload) *sources.Chain {
		chain, err := sources.NewChain(cap, logger, &stubAdapter{name: payload.Source, payload: payload})
		require.NoError(t, err)
		return chain
	}

	return &ChainSet{
		Schedule: mustChain(sources.CapabilitySchedule, &sources.Payload{
			Capability: sources.CapabilitySchedule,
			Source:     "MLB API",
			Schedule: &models.SchedulePayload{
				TeamName: "Yankees",
				NextGame: &models.Game{AwayTeam: "Red Sox", HomeTeam: "Yankees", Status: "Scheduled"},
				Schedule: []models.Game{{AwayTeam: "Red Sox", HomeTeam: "Yankees", Status: "Scheduled"}},
			},
		}),
		Compare: mustChain(sources.CapabilityComparison, &sources.Payload{
			Capability: sources.CapabilityComparison,
			Source:     "MLB API",
			Comparison: &models.ComparisonPayload{
				Team1:      models.TeamRef{ID: 147, Name: "Yankees"},
				Team2:      models.TeamRef{ID: 111, Name: "Red Sox"},
				Comparison: map[string]interface{}{"team1": map[string]interface{}{}},
			},
		}),
		News: mustChain(sources.CapabilityNews, &sources.Payload{
			Capability: sources.CapabilityNews,
			Source:     "NewsAPI",
			News: &models.NewsPayload{
				Team:     "Yankees",
				Articles: []models.Article{{Title: "a"}, {Title: "b"}},
			},
		}),
		Videos: mustChain(sources.CapabilityVideos, &sources.Payload{
			Capability: sources.CapabilityVideos,
			Source:     "YouTube API",
			Videos: &models.VideoPayload{
				Query:   "Yankees MLB highlights analysis",
				Results: []models.Video{{VideoID: "1"}, {VideoID: "2"}, {VideoID: "3"}},
			},
		}),
	}
}

func boolPtr(v bool) *bool { return &v }

func TestAggregate_SummaryIsDeterministic(t *testing.T) {
	agg := NewAggregator(stubChainSet(t), nil, discardLogger())

	req := models.AggregateRequest{
		Team:           "Yankees",
		Team1:          "Yankees",
		Team2:          "Red Sox",
		IncludeCompare: boolPtr(true),
		IncludeYouTube: boolPtr(true),
	}

	want := "Next game: Red Sox at Yankees — Scheduled Comparison data available. News: 2 recent articles. YouTube: 3 videos."
	for i := 0; i < 10; i++ {
		result, err := agg.Aggregate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, want, result.Summary)
	}
}

func TestAggregate_PopulatesDataAndSources(t *testing.T) {
	agg := NewAggregator(stubChainSet(t), nil, discardLogger())

	result, err := agg.Aggregate(context.Background(), models.AggregateRequest{
		Team:           "Yankees",
		Team1:          "Yankees",
		Team2:          "Red Sox",
		IncludeCompare: boolPtr(true),
		IncludeYouTube: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Contains(t, result.Data, "schedule")
	assert.Contains(t, result.Data, "compare_stats")
	assert.Contains(t, result.Data, "news")
	assert.Contains(t, result.Data, "youtube")
	assert.Equal(t, "MLB API", result.Sources["schedule"])
	assert.Equal(t, "NewsAPI", result.Sources["news"])
}

func TestAggregate_EmptySelection(t *testing.T) {
	agg := NewAggregator(stubChainSet(t), nil, discardLogger())

	result, err := agg.Aggregate(context.Background(), models.AggregateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "No data available for the current selection.", result.Summary)
	assert.Empty(t, result.Data)
}

func TestAggregate_FlagsDisableSlots(t *testing.T) {
	agg := NewAggregator(stubChainSet(t), nil, discardLogger())

	result, err := agg.Aggregate(context.Background(), models.AggregateRequest{
		Team:            "Yankees",
		IncludeSchedule: boolPtr(false),
		IncludeNews:     boolPtr(false),
	})
	require.NoError(t, err)
	assert.NotContains(t, result.Data, "schedule")
	assert.NotContains(t, result.Data, "news")
	// YouTube defaults off.
	assert.NotContains(t, result.Data, "youtube")
}

func TestAggregate_CompareAndYouTubeAreOptIn(t *testing.T) {
	agg := NewAggregator(stubChainSet(t), nil, discardLogger())

	result, err := agg.Aggregate(context.Background(), models.AggregateRequest{
		Team:  "Yankees",
		Team1: "Yankees",
		Team2: "Red Sox",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Data, "schedule")
	assert.Contains(t, result.Data, "news")
	assert.NotContains(t, result.Data, "compare_stats")
	assert.NotContains(t, result.Data, "youtube")
	assert.NotContains(t, result.Summary, "Comparison data available.")
}

func TestAggregate_FailedSlotDoesNotAffectSiblings(t *testing.T) {
	cs := stubChainSet(t)
	broken, err := sources.NewChain(sources.CapabilityNews, discardLogger(), &brokenAdapter{name: "NewsAPI"})
	require.NoError(t, err)
	cs.News = broken

	agg := NewAggregator(cs, nil, discardLogger())
	result, err := agg.Aggregate(context.Background(), models.AggregateRequest{
		Team:           "Yankees",
		Team1:          "Yankees",
		Team2:          "Red Sox",
		IncludeCompare: boolPtr(true),
		IncludeYouTube: boolPtr(true),
	})
	require.NoError(t, err)

	assert.NotContains(t, result.Data, "news")
	assert.NotContains(t, result.Sources, "news")

	assert.Contains(t, result.Data, "schedule")
	assert.Contains(t, result.Data, "compare_stats")
	assert.Contains(t, result.Data, "youtube")
	assert.Equal(t, "MLB API", result.Sources["schedule"])
	assert.Equal(t, "YouTube API", result.Sources["youtube"])
	assert.Equal(t, "Next game: Red Sox at Yankees — Scheduled Comparison data available. YouTube: 3 videos.", result.Summary)
}

func TestTeamIntelligence(t *testing.T) {
	agg := NewAggregator(stubChainSet(t), nil, discardLogger())

	intel, err := agg.TeamIntelligence(context.Background(), models.TeamIntelRequest{Team: "Yankees"})
	require.NoError(t, err)
	assert.Equal(t, "Yankees", intel.Team)
	assert.Len(t, intel.News, 2)
	assert.Len(t, intel.YouTube, 3)
	assert.Equal(t, "NewsAPI", intel.Sources["news"])
}

func TestResolveMLBTeam(t *testing.T) {
	id, name, ok := ResolveMLBTeam("Yankees")
	require.True(t, ok)
	assert.Equal(t, 147, id)
	assert.Equal(t, "Yankees", name)

	_, _, ok = ResolveMLBTeam("Space Cowboys")
	assert.False(t, ok)
}
