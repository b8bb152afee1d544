package sports

import "fmt"

// MockDataset returns the canned {stats, news, schedule, compare} block for a
// sport, with the team name interpolated. The static fallback adapters serve
// these when every live source has failed.
func MockDataset(sport, team string) map[string]interface{} {
	switch sport {
	case "mlb":
		return map[string]interface{}{
			"stats": map[string]interface{}{"wins": 85, "losses": 77, "avg": 0.267, "era": 3.45},
			"news": []map[string]interface{}{
				{"title": fmt.Sprintf("%s clinches playoff spot", team), "source": "ESPN", "date": "2024-01-15"},
			},
			"schedule": map[string]interface{}{
				"next_game": fmt.Sprintf("%s vs Rangers - Tomorrow 7:00 PM", team),
				"venue":     "Home Stadium",
			},
			"compare": map[string]interface{}{"vs_league_avg": "+12% better", "strength": "Pitching rotation"},
		}
	case "nba":
		return map[string]interface{}{
			"stats": map[string]interface{}{"wins": 45, "losses": 37, "ppg": 112.3, "apg": 24.8},
			"news": []map[string]interface{}{
				{"title": fmt.Sprintf("%s advances to playoffs", team), "source": "NBA.com", "date": "2024-01-15"},
			},
			"schedule": map[string]interface{}{
				"next_game": fmt.Sprintf("%s vs Warriors - Friday 8:00 PM", team),
				"venue":     "Home Arena",
			},
			"compare": map[string]interface{}{"vs_conference": "+8% better", "strength": "Three-point shooting"},
		}
	case "cricket":
		return map[string]interface{}{
			"stats": map[string]interface{}{"matches": 15, "wins": 10, "runs": 1250, "avg": 83.3},
			"news": []map[string]interface{}{
				{"title": fmt.Sprintf("%s wins series", team), "source": "Cricinfo", "date": "2024-01-15"},
			},
			"schedule": map[string]interface{}{
				"next_match": fmt.Sprintf("%s vs Australia - Sunday 2:00 PM", team),
				"venue":      "Melbourne Cricket Ground",
			},
			"compare": map[string]interface{}{"vs_world": "+15% better", "strength": "Batting depth"},
		}
	case "football":
		return map[string]interface{}{
			"stats": map[string]interface{}{"matches": 20, "wins": 12, "goals": 35, "points": 36},
			"news": []map[string]interface{}{
				{"title": fmt.Sprintf("%s reaches Champions League", team), "source": "ESPN FC", "date": "2024-01-15"},
			},
			"schedule": map[string]interface{}{
				"next_match": fmt.Sprintf("%s vs Barcelona - Saturday 3:00 PM", team),
				"venue":      "Home Stadium",
			},
			"compare": map[string]interface{}{"vs_league": "+20% better", "strength": "Defensive organization"},
		}
	case "f1":
		return map[string]interface{}{
			"stats": map[string]interface{}{"races": 12, "wins": 3, "points": 156, "position": 4},
			"news": []map[string]interface{}{
				{"title": fmt.Sprintf("%s secures podium finish", team), "source": "F1.com", "date": "2024-01-15"},
			},
			"schedule": map[string]interface{}{
				"next_race": fmt.Sprintf("%s - Monaco GP - Sunday 2:00 PM", team),
				"venue":     "Monaco Circuit",
			},
			"compare": map[string]interface{}{"vs_grid": "+25% better", "strength": "Aerodynamics"},
		}
	}
	return nil
}

// MockNBADataset is the richer canned block backing the dedicated NBA
// endpoint.
func MockNBADataset(team string) map[string]interface{} {
	return map[string]interface{}{
		"stats": map[string]interface{}{
			"wins":                   45,
			"losses":                 37,
			"ppg":                    112.3,
			"apg":                    24.8,
			"rpg":                    44.2,
			"fg_percentage":          47.2,
			"three_point_percentage": 36.8,
			"ft_percentage":          82.1,
			"conference_rank":        6,
			"division_rank":          2,
		},
		"news": []map[string]interface{}{
			{
				"title":   fmt.Sprintf("%s advances to playoffs with strong finish", team),
				"source":  "NBA.com",
				"date":    "2024-01-15",
				"summary": fmt.Sprintf("The %s secured their playoff spot with impressive performances in the final stretch of the season.", team),
			},
		},
		"schedule": map[string]interface{}{
			"next_game":     fmt.Sprintf("%s vs Warriors - Friday 8:00 PM EST", team),
			"venue":         "Home Arena",
			"season_record": "45-37",
			"home_record":   "28-13",
			"away_record":   "17-24",
		},
		"compare": map[string]interface{}{
			"vs_conference": "+8% better than conference average",
			"strength":      "Three-point shooting and fast break offense",
			"weakness":      "Defensive rebounding",
			"playoff_odds":  "73%",
		},
	}
}

// MockNFLDataset is the richer canned block backing the dedicated NFL
// endpoint.
func MockNFLDataset(team string) map[string]interface{} {
	return map[string]interface{}{
		"stats": map[string]interface{}{
			"wins":              11,
			"losses":            6,
			"points_for":        385,
			"points_against":    312,
			"total_yards":       5847,
			"passing_yards":     3821,
			"rushing_yards":     2026,
			"turnovers":         16,
			"division_record":   "4-2",
			"conference_record": "8-4",
			"playoff_seed":      3,
		},
		"news": []map[string]interface{}{
			{
				"title":   fmt.Sprintf("%s clinches playoff berth with strong defensive performance", team),
				"source":  "NFL.com",
				"date":    "2024-01-15",
				"summary": fmt.Sprintf("The %s secured their playoff spot with a dominant defensive showing in the final weeks.", team),
			},
		},
		"schedule": map[string]interface{}{
			"next_game":      fmt.Sprintf("%s vs Chiefs - Sunday 4:25 PM EST", team),
			"venue":          "Home Stadium",
			"season_record":  "11-6",
			"home_record":    "7-2",
			"away_record":    "4-4",
			"playoff_status": "Qualified",
		},
		"compare": map[string]interface{}{
			"vs_division":     "+12% better than division average",
			"strength":        "Passing offense and red zone defense",
			"weakness":        "Rushing defense",
			"super_bowl_odds": "8%",
		},
	}
}
