package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/sources"
)

const newsSourceName = "NewsAPI"

// NewsAPIAdapter serves the news capability from newsapi.org. Responses are
// cached briefly so repeated lookups skip the upstream call.
type NewsAPIAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      sources.CacheProvider
	timeout    time.Duration
}

func NewNewsAPIAdapter(apiKey string, cache sources.CacheProvider, timeout time.Duration) *NewsAPIAdapter {
	return &NewsAPIAdapter{
		apiKey:     apiKey,
		baseURL:    "https://newsapi.org/v2",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		timeout:    timeout,
	}
}

func (a *NewsAPIAdapter) Name() string           { return newsSourceName }
func (a *NewsAPIAdapter) Timeout() time.Duration { return a.timeout }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (a *NewsAPIAdapter) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	if a.apiKey == "" {
		return nil, sources.ErrNotConfigured
	}

	daysBack := req.DaysBack
	if daysBack <= 0 {
		daysBack = 7
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	cacheKey := fmt.Sprintf("news:%s:%d:%d", req.Team, daysBack, maxResults)
	if a.cache != nil {
		var cached models.NewsPayload
		if err := a.cache.GetSimple(cacheKey, &cached); err == nil {
			return &sources.Payload{
				Capability: sources.CapabilityNews,
				Source:     newsSourceName,
				News:       &cached,
			}, nil
		}
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("%q baseball", req.Team))
	params.Set("from", time.Now().UTC().AddDate(0, 0, -daysBack).Format("2006-01-02"))
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", fmt.Sprintf("%d", maxResults))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("X-Api-Key", a.apiKey)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, &sources.UpstreamError{Source: newsSourceName, Status: http.StatusBadGateway, Body: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &sources.UpstreamError{Source: newsSourceName, Status: resp.StatusCode}
	}

	var parsed newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%s: %w", newsSourceName, sources.ErrMalformed)
	}

	articles := make([]models.Article, 0, len(parsed.Articles))
	for _, item := range parsed.Articles {
		articles = append(articles, models.Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      item.Source.Name,
			PublishedAt: item.PublishedAt,
			URLToImage:  item.URLToImage,
		})
	}

	payload := &models.NewsPayload{Team: req.Team, Articles: articles}
	if a.cache != nil {
		_ = a.cache.SetSimple(cacheKey, payload, 15*time.Minute)
	}

	return &sources.Payload{
		Capability: sources.CapabilityNews,
		Source:     newsSourceName,
		News:       payload,
	}, nil
}
