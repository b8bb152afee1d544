package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/sources"
	"github.com/jstittsworth/sportsdesk/internal/sports"
)

// Aggregator fans requested capability slots out over their chains and
// combines the payloads into one response with a deterministic summary.
// Results are cached briefly when a cache service is attached.
type Aggregator struct {
	chains *ChainSet
	cache  *CacheService
	logger *logrus.Logger
}

func NewAggregator(chains *ChainSet, cache *CacheService, logger *logrus.Logger) *Aggregator {
	return &Aggregator{chains: chains, cache: cache, logger: logger}
}

// AggregateResult is the combined aggregator output. Data holds one entry
// per successful slot; Sources records which adapter served each slot.
type AggregateResult struct {
	Summary string                 `json:"summary"`
	Data    map[string]interface{} `json:"data"`
	Sources map[string]string      `json:"sources"`
}

// slotResult carries one chain execution back from the fan-out.
type slotResult struct {
	slot    string
	payload *sources.Payload
	err     error
}

// includeFlag treats a missing flag as true.
func includeFlag(v *bool) bool {
	return v == nil || *v
}

// optInFlag treats a missing flag as false.
func optInFlag(v *bool) bool {
	return v != nil && *v
}

// Aggregate runs the selected capability slots concurrently. A slot that
// fails is dropped rather than failing the whole aggregate; summary order is
// fixed regardless of which goroutine finished first. Schedule and news are
// on by default; compare and youtube are opt-in.
func (a *Aggregator) Aggregate(ctx context.Context, req models.AggregateRequest) (*AggregateResult, error) {
	days := req.Days
	if days <= 0 {
		days = 7
	}
	daysBack := req.DaysBack
	if daysBack <= 0 {
		daysBack = 7
	}
	maxNews := req.MaxNews
	if maxNews <= 0 {
		maxNews = 5
	}
	maxVideos := req.MaxVideos
	if maxVideos <= 0 {
		maxVideos = 5
	}

	cacheKey := aggregateCacheKey(req)
	if a.cache != nil {
		var cached AggregateResult
		if err := a.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var wg sync.WaitGroup
	results := make(chan slotResult, 4)

	if includeFlag(req.IncludeSchedule) && req.Team != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := a.chains.Schedule.Execute(ctx, sources.Request{
				Team: req.Team,
				Days: days,
				From: time.Now().UTC(),
			})
			results <- wrapSlot("schedule", res, err)
		}()
	}

	if optInFlag(req.IncludeCompare) && req.Team1 != "" && req.Team2 != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := a.chains.Compare.Execute(ctx, sources.Request{
				Team1:  req.Team1,
				Team2:  req.Team2,
				Season: req.Season,
			})
			results <- wrapSlot("compare_stats", res, err)
		}()
	}

	if includeFlag(req.IncludeNews) && req.Team != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := a.chains.News.Execute(ctx, sources.Request{
				Team:       req.Team,
				DaysBack:   daysBack,
				MaxResults: maxNews,
			})
			results <- wrapSlot("news", res, err)
		}()
	}

	if optInFlag(req.IncludeYouTube) && req.Team != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := a.chains.Videos.Execute(ctx, sources.Request{
				Team:       req.Team,
				MaxResults: maxVideos,
			})
			results <- wrapSlot("youtube", res, err)
		}()
	}

	wg.Wait()
	close(results)

	out := &AggregateResult{
		Data:    map[string]interface{}{},
		Sources: map[string]string{},
	}
	payloads := map[string]*sources.Payload{}
	for r := range results {
		if r.err != nil {
			a.logger.WithField("slot", r.slot).WithError(r.err).Warn("Aggregate slot failed")
			continue
		}
		payloads[r.slot] = r.payload
		out.Sources[r.slot] = r.payload.Source
	}

	if p, ok := payloads["schedule"]; ok {
		out.Data["schedule"] = p.Schedule
	}
	if p, ok := payloads["compare_stats"]; ok {
		out.Data["compare_stats"] = p.Comparison
	}
	if p, ok := payloads["news"]; ok {
		out.Data["news"] = p.News.Articles
	}
	if p, ok := payloads["youtube"]; ok {
		out.Data["youtube"] = p.Videos.Results
	}

	out.Summary = buildSummary(payloads)

	if a.cache != nil {
		if err := a.cache.SetWithRetry(ctx, cacheKey, out, 5*time.Minute, 3); err != nil {
			a.logger.WithError(err).Debug("Failed to cache aggregate result")
		}
	}
	return out, nil
}

// aggregateCacheKey folds every field that changes the response into the key
// so different selections never share an entry.
func aggregateCacheKey(req models.AggregateRequest) string {
	season := 0
	if req.Season != nil {
		season = *req.Season
	}
	return fmt.Sprintf("aggregate:%s:%s:%s:%d:%d:%d:%d:%d:%t:%t:%t:%t",
		req.Team, req.Team1, req.Team2,
		req.Days, req.DaysBack, req.MaxNews, req.MaxVideos, season,
		includeFlag(req.IncludeSchedule), optInFlag(req.IncludeCompare),
		includeFlag(req.IncludeNews), optInFlag(req.IncludeYouTube))
}

func wrapSlot(slot string, res *sources.Result, err error) slotResult {
	if err != nil {
		return slotResult{slot: slot, err: err}
	}
	return slotResult{slot: slot, payload: res.Payload}
}

// buildSummary concatenates the per-slot fragments in a fixed order so the
// same inputs always produce the same sentence.
func buildSummary(payloads map[string]*sources.Payload) string {
	var parts []string
	if p, ok := payloads["schedule"]; ok && p.Schedule != nil && p.Schedule.NextGame != nil {
		ng := p.Schedule.NextGame
		parts = append(parts, fmt.Sprintf("Next game: %s at %s — %s", ng.AwayTeam, ng.HomeTeam, ng.Status))
	}
	if _, ok := payloads["compare_stats"]; ok {
		parts = append(parts, "Comparison data available.")
	}
	if p, ok := payloads["news"]; ok && p.News != nil {
		parts = append(parts, fmt.Sprintf("News: %d recent articles.", len(p.News.Articles)))
	}
	if p, ok := payloads["youtube"]; ok && p.Videos != nil {
		parts = append(parts, fmt.Sprintf("YouTube: %d videos.", len(p.Videos.Results)))
	}
	if len(parts) == 0 {
		return "No data available for the current selection."
	}
	return strings.Join(parts, " ")
}

// TeamIntelligence fetches news and videos for one team concurrently.
type TeamIntelligence struct {
	Team        string           `json:"team"`
	GeneratedAt time.Time        `json:"generated_at"`
	News        []models.Article `json:"news"`
	YouTube     []models.Video   `json:"youtube"`
	Sources     map[string]string `json:"sources"`
}

func (a *Aggregator) TeamIntelligence(ctx context.Context, req models.TeamIntelRequest) (*TeamIntelligence, error) {
	cacheKey := TeamIntelCacheKey(req.Team, req.DaysBack, req.MaxNews, req.MaxVideos)
	if a.cache != nil {
		var cached TeamIntelligence
		if err := a.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var wg sync.WaitGroup
	results := make(chan slotResult, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		res, err := a.chains.News.Execute(ctx, sources.Request{
			Team:       req.Team,
			DaysBack:   req.DaysBack,
			MaxResults: req.MaxNews,
		})
		results <- wrapSlot("news", res, err)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		res, err := a.chains.Videos.Execute(ctx, sources.Request{
			Team:       req.Team,
			MaxResults: req.MaxVideos,
		})
		results <- wrapSlot("youtube", res, err)
	}()

	wg.Wait()
	close(results)

	intel := &TeamIntelligence{
		Team:        req.Team,
		GeneratedAt: time.Now().UTC(),
		Sources:     map[string]string{},
	}
	for r := range results {
		if r.err != nil {
			a.logger.WithField("slot", r.slot).WithError(r.err).Warn("Team intelligence slot failed")
			continue
		}
		intel.Sources[r.slot] = r.payload.Source
		switch r.slot {
		case "news":
			if r.payload.News != nil {
				intel.News = r.payload.News.Articles
			}
		case "youtube":
			if r.payload.Videos != nil {
				intel.YouTube = r.payload.Videos.Results
			}
		}
	}

	if a.cache != nil {
		if err := a.cache.SetWithRetry(ctx, cacheKey, intel, 5*time.Minute, 3); err != nil {
			a.logger.WithError(err).Debug("Failed to cache team intelligence")
		}
	}
	return intel, nil
}

// ResolveMLBTeam validates a team name against the local resolver. Handlers
// call this before executing a chain so bad input never reaches a source.
func ResolveMLBTeam(name string) (int, string, bool) {
	id, ok := sports.MLBTeamID(name)
	if !ok {
		return 0, "", false
	}
	full, _ := sports.MLBTeamName(id)
	return id, full, true
}
