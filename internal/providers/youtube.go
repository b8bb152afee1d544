package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/sources"
)

const youtubeSourceName = "YouTube API"

// YouTubeAdapter serves the video capability from the YouTube Data API.
// Search results are cached briefly so repeated queries skip the upstream
// calls.
type YouTubeAdapter struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      sources.CacheProvider
	timeout    time.Duration
}

func NewYouTubeAdapter(apiKey string, cache sources.CacheProvider, timeout time.Duration) *YouTubeAdapter {
	return &YouTubeAdapter{
		apiKey:     apiKey,
		baseURL:    "https://www.googleapis.com/youtube/v3",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		timeout:    timeout,
	}
}

func (a *YouTubeAdapter) Name() string           { return youtubeSourceName }
func (a *YouTubeAdapter) Timeout() time.Duration { return a.timeout }

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type youtubeStatsResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (a *YouTubeAdapter) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	if a.apiKey == "" {
		return nil, sources.ErrNotConfigured
	}

	query := req.Query
	if query == "" {
		query = fmt.Sprintf("%s MLB highlights analysis", req.Team)
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	cacheKey := fmt.Sprintf("videos:%s:%d", query, maxResults)
	if a.cache != nil {
		var cached models.VideoPayload
		if err := a.cache.GetSimple(cacheKey, &cached); err == nil {
			return &sources.Payload{
				Capability: sources.CapabilityVideos,
				Source:     youtubeSourceName,
				Videos:     &cached,
			}, nil
		}
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("key", a.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, &sources.UpstreamError{Source: youtubeSourceName, Status: http.StatusBadGateway, Body: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &sources.UpstreamError{Source: youtubeSourceName, Status: resp.StatusCode}
	}

	var parsed youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%s: %w", youtubeSourceName, sources.ErrMalformed)
	}

	videos := make([]models.Video, 0, len(parsed.Items))
	ids := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		videos = append(videos, models.Video{
			VideoID: item.ID.VideoID,
			Title:   item.Snippet.Title,
			URL:     "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Channel: item.Snippet.ChannelTitle,
		})
		ids = append(ids, item.ID.VideoID)
	}

	// View counts come from a second call. A failure here degrades the
	// results, it does not fail them.
	if counts, err := a.viewCounts(ctx, ids); err == nil {
		for i := range videos {
			videos[i].ViewCount = counts[videos[i].VideoID]
		}
	}

	payload := &models.VideoPayload{Query: query, Results: videos}
	if a.cache != nil {
		_ = a.cache.SetSimple(cacheKey, payload, 15*time.Minute)
	}

	return &sources.Payload{
		Capability: sources.CapabilityVideos,
		Source:     youtubeSourceName,
		Videos:     payload,
	}, nil
}

func (a *YouTubeAdapter) viewCounts(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", a.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/videos?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &sources.UpstreamError{Source: youtubeSourceName, Status: resp.StatusCode}
	}

	var parsed youtubeStatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%s: %w", youtubeSourceName, sources.ErrMalformed)
	}

	counts := make(map[string]string, len(parsed.Items))
	for _, item := range parsed.Items {
		counts[item.ID] = item.Statistics.ViewCount
	}
	return counts, nil
}
