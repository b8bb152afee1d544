package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/sportsdesk/internal/models"
	"github.com/jstittsworth/sportsdesk/internal/sources"
	"github.com/jstittsworth/sportsdesk/internal/sports"
)

const mlbSourceName = "MLB API"

// MLBClient wraps the public MLB Stats API. Responses are cached briefly so
// the aggregator and the schedule tool do not hammer the upstream for the
// same team.
type MLBClient struct {
	baseURL    string
	httpClient *http.Client
	cache      sources.CacheProvider
	logger     *logrus.Logger
}

func NewMLBClient(baseURL string, cache sources.CacheProvider, logger *logrus.Logger) *MLBClient {
	return &MLBClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		logger:     logger,
	}
}

type mlbScheduleResponse struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePk   int    `json:"gamePk"`
			GameDate string `json:"gameDate"`
			Status   struct {
				DetailedState string `json:"detailedState"`
			} `json:"status"`
			Teams struct {
				Away struct {
					Team struct {
						ID   int    `json:"id"`
						Name string `json:"name"`
					} `json:"team"`
				} `json:"away"`
				Home struct {
					Team struct {
						ID   int    `json:"id"`
						Name string `json:"name"`
					} `json:"team"`
				} `json:"home"`
			} `json:"teams"`
			Venue struct {
				Name string `json:"name"`
			} `json:"venue"`
		} `json:"games"`
	} `json:"dates"`
}

// Schedule returns games for a team between two dates, inclusive.
func (c *MLBClient) Schedule(ctx context.Context, teamID int, start, end time.Time) ([]models.Game, error) {
	cacheKey := fmt.Sprintf("mlb:schedule:%d:%s:%s", teamID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if c.cache != nil {
		var cached []models.Game
		if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	params := url.Values{}
	params.Set("sportId", "1")
	params.Set("teamId", fmt.Sprintf("%d", teamID))
	params.Set("startDate", start.Format("2006-01-02"))
	params.Set("endDate", end.Format("2006-01-02"))

	var parsed mlbScheduleResponse
	if err := c.getJSON(ctx, "/schedule?"+params.Encode(), &parsed); err != nil {
		return nil, err
	}

	var games []models.Game
	for _, date := range parsed.Dates {
		for _, g := range date.Games {
			isHome := g.Teams.Home.Team.ID == teamID
			opponent := g.Teams.Home.Team.Name
			if isHome {
				opponent = g.Teams.Away.Team.Name
			}
			games = append(games, models.Game{
				GamePk:   g.GamePk,
				GameDate: g.GameDate,
				HomeTeam: g.Teams.Home.Team.Name,
				AwayTeam: g.Teams.Away.Team.Name,
				IsHome:   isHome,
				Opponent: opponent,
				Venue:    g.Venue.Name,
				Status:   g.Status.DetailedState,
			})
		}
	}

	if c.cache != nil {
		if err := c.cache.SetSimple(cacheKey, games, 10*time.Minute); err != nil {
			c.logger.WithError(err).Debug("Failed to cache schedule")
		}
	}
	return games, nil
}

// NextGame returns the first game at or after from within the search window.
func (c *MLBClient) NextGame(ctx context.Context, teamID int, from time.Time, searchDays int) (*models.Game, error) {
	games, err := c.Schedule(ctx, teamID, from, from.AddDate(0, 0, searchDays))
	if err != nil {
		return nil, err
	}
	for i, g := range games {
		if t, err := time.Parse(time.RFC3339, g.GameDate); err == nil && t.Before(from) {
			continue
		}
		return &games[i], nil
	}
	return nil, nil
}

type mlbStatsResponse struct {
	Stats []struct {
		Splits []struct {
			Stat map[string]interface{} `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

// TeamStats returns season stats for one group ("hitting" or "pitching").
func (c *MLBClient) TeamStats(ctx context.Context, teamID int, season *int, group string) (map[string]interface{}, error) {
	params := url.Values{}
	params.Set("stats", "season")
	params.Set("group", group)
	if season != nil {
		params.Set("season", fmt.Sprintf("%d", *season))
	}

	var parsed mlbStatsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/teams/%d/stats?%s", teamID, params.Encode()), &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Stats) == 0 || len(parsed.Stats[0].Splits) == 0 {
		return map[string]interface{}{}, nil
	}
	return parsed.Stats[0].Splits[0].Stat, nil
}

// Compare fetches hitting and pitching season stats for both teams.
func (c *MLBClient) Compare(ctx context.Context, team1ID, team2ID int, season *int) (map[string]interface{}, error) {
	seasonKey := "current"
	if season != nil {
		seasonKey = fmt.Sprintf("%d", *season)
	}
	cacheKey := fmt.Sprintf("mlb:compare:%d:%d:%s", team1ID, team2ID, seasonKey)
	if c.cache != nil {
		var cached map[string]interface{}
		if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	comparison := map[string]interface{}{}
	for _, side := range []struct {
		key string
		id  int
	}{
		{"team1", team1ID},
		{"team2", team2ID},
	} {
		hitting, err := c.TeamStats(ctx, side.id, season, "hitting")
		if err != nil {
			return nil, err
		}
		pitching, err := c.TeamStats(ctx, side.id, season, "pitching")
		if err != nil {
			return nil, err
		}
		comparison[side.key] = map[string]interface{}{
			"hitting":  hitting,
			"pitching": pitching,
		}
	}

	if c.cache != nil {
		if err := c.cache.SetSimple(cacheKey, comparison, time.Hour); err != nil {
			c.logger.WithError(err).Debug("Failed to cache comparison")
		}
	}
	return comparison, nil
}

func (c *MLBClient) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &sources.UpstreamError{Source: mlbSourceName, Status: http.StatusBadGateway, Body: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &sources.UpstreamError{Source: mlbSourceName, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s: %w", mlbSourceName, sources.ErrMalformed)
	}
	return nil
}

// MLBScheduleAdapter serves the schedule capability from the Stats API.
type MLBScheduleAdapter struct {
	client  *MLBClient
	timeout time.Duration
}

func NewMLBScheduleAdapter(client *MLBClient, timeout time.Duration) *MLBScheduleAdapter {
	return &MLBScheduleAdapter{client: client, timeout: timeout}
}

func (a *MLBScheduleAdapter) Name() string           { return mlbSourceName }
func (a *MLBScheduleAdapter) Timeout() time.Duration { return a.timeout }

func (a *MLBScheduleAdapter) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	teamID, ok := sports.MLBTeamID(req.Team)
	if !ok {
		// Callers resolve before chain execution; an unresolvable name here
		// just hands off to the next adapter.
		return nil, fmt.Errorf("%s: unresolvable team %q: %w", mlbSourceName, req.Team, sources.ErrMalformed)
	}
	teamName, _ := sports.MLBTeamName(teamID)

	from := req.From
	if from.IsZero() {
		from = time.Now().UTC()
	}
	days := req.Days
	if days <= 0 {
		days = 14
	}
	to := from.AddDate(0, 0, days)

	nextGame, err := a.client.NextGame(ctx, teamID, from, days)
	if err != nil {
		return nil, err
	}
	games, err := a.client.Schedule(ctx, teamID, from, to)
	if err != nil {
		return nil, err
	}

	return &sources.Payload{
		Capability: sources.CapabilitySchedule,
		Source:     mlbSourceName,
		Schedule: &models.SchedulePayload{
			TeamID:   teamID,
			TeamName: teamName,
			From:     from.Format(time.RFC3339),
			To:       to.Format("2006-01-02"),
			NextGame: nextGame,
			Schedule: games,
		},
	}, nil
}

// MLBCompareAdapter serves the head-to-head comparison capability.
type MLBCompareAdapter struct {
	client  *MLBClient
	timeout time.Duration
}

func NewMLBCompareAdapter(client *MLBClient, timeout time.Duration) *MLBCompareAdapter {
	return &MLBCompareAdapter{client: client, timeout: timeout}
}

func (a *MLBCompareAdapter) Name() string           { return mlbSourceName }
func (a *MLBCompareAdapter) Timeout() time.Duration { return a.timeout }

func (a *MLBCompareAdapter) Fetch(ctx context.Context, req sources.Request) (*sources.Payload, error) {
	id1, ok1 := sports.MLBTeamID(req.Team1)
	id2, ok2 := sports.MLBTeamID(req.Team2)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%s: unresolvable teams: %w", mlbSourceName, sources.ErrMalformed)
	}
	name1, _ := sports.MLBTeamName(id1)
	name2, _ := sports.MLBTeamName(id2)

	comparison, err := a.client.Compare(ctx, id1, id2, req.Season)
	if err != nil {
		return nil, err
	}

	return &sources.Payload{
		Capability: sources.CapabilityComparison,
		Source:     mlbSourceName,
		Comparison: &models.ComparisonPayload{
			Team1:      models.TeamRef{ID: id1, Name: name1},
			Team2:      models.TeamRef{ID: id2, Name: name2},
			Comparison: comparison,
		},
	}, nil
}
