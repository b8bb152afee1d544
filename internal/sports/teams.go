// Package sports holds the static sport and team reference data: supported
// sports with their rosters, the MLB Stats API team ID table, and the
// canned datasets the static fallback adapters serve.
package sports

import "strings"

// Config describes one supported sport.
type Config struct {
	Teams        []string
	APISource    string
	NewsKeywords []string
}

// Configs maps sport key to its configuration. Keys are lowercase.
var Configs = map[string]Config{
	"mlb": {
		Teams: []string{
			"Yankees", "Red Sox", "Blue Jays", "Rays", "Orioles", "Astros", "Angels",
			"Mariners", "Athletics", "Rangers", "Twins", "Guardians", "Tigers",
			"White Sox", "Royals", "Braves", "Mets", "Phillies", "Marlins",
			"Nationals", "Dodgers", "Padres", "Giants", "Diamondbacks", "Rockies",
			"Brewers", "Cubs", "Cardinals", "Pirates", "Reds",
		},
		APISource:    "mlb_api",
		NewsKeywords: []string{"MLB", "baseball", "Yankees", "Red Sox"},
	},
	"nba": {
		Teams: []string{
			"Lakers", "Warriors", "Celtics", "Heat", "Nuggets", "Suns", "Bucks",
			"76ers", "Nets", "Knicks", "Bulls", "Pistons", "Pacers", "Cavaliers",
			"Hawks", "Hornets", "Magic", "Wizards", "Mavericks", "Rockets",
			"Grizzlies", "Pelicans", "Spurs", "Jazz", "Trail Blazers", "Kings",
			"Thunder", "Timberwolves",
		},
		APISource:    "nba_api",
		NewsKeywords: []string{"NBA", "basketball", "Lakers", "Warriors"},
	},
	"cricket": {
		Teams: []string{
			"India", "Australia", "England", "Pakistan", "South Africa",
			"New Zealand", "West Indies", "Sri Lanka", "Bangladesh", "Afghanistan",
			"Ireland", "Scotland", "Netherlands", "Zimbabwe",
		},
		APISource:    "cricket_api",
		NewsKeywords: []string{"cricket", "IPL", "World Cup", "India", "Australia"},
	},
	"football": {
		Teams: []string{
			"Manchester United", "Manchester City", "Liverpool", "Arsenal",
			"Chelsea", "Tottenham", "Real Madrid", "Barcelona", "Bayern Munich",
			"PSG", "Juventus", "AC Milan", "Inter Milan", "Atletico Madrid",
		},
		APISource:    "football_api",
		NewsKeywords: []string{"football", "soccer", "Premier League", "Champions League"},
	},
	"f1": {
		Teams: []string{
			"Red Bull", "Mercedes", "Ferrari", "McLaren", "Aston Martin", "Alpine",
			"Williams", "AlphaTauri", "Alfa Romeo", "Haas",
		},
		APISource:    "f1_api",
		NewsKeywords: []string{"Formula 1", "F1", "racing", "Grand Prix"},
	},
}

// NFLTeams is the roster for the dedicated NFL endpoint; the NFL is not in
// Configs because the multi-sport surface never accepted it.
var NFLTeams = []string{
	"Chiefs", "Bills", "Bengals", "Ravens", "Dolphins", "Steelers", "Browns",
	"Jets", "Patriots", "Colts", "Jaguars", "Titans", "Texans", "Broncos",
	"Raiders", "Chargers", "Cowboys", "Eagles", "Giants", "Commanders",
	"Packers", "Vikings", "Lions", "Bears", "Buccaneers", "Saints", "Falcons",
	"Panthers", "49ers", "Rams", "Seahawks", "Cardinals",
}

// Supported returns the sport keys in a stable order.
func Supported() []string {
	return []string{"mlb", "nba", "cricket", "football", "f1"}
}

// ValidTeam reports whether team belongs to the given sport's roster. The
// match is exact; callers validate before any source is consulted.
func ValidTeam(sport, team string) bool {
	cfg, ok := Configs[strings.ToLower(sport)]
	if !ok {
		return false
	}
	return contains(cfg.Teams, team)
}

// ValidNFLTeam reports whether team is an NFL franchise name.
func ValidNFLTeam(team string) bool {
	return contains(NFLTeams, team)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// mlbTeamIDs maps MLB franchise names to their Stats API team IDs.
var mlbTeamIDs = map[string]int{
	"Angels":       108,
	"Diamondbacks": 109,
	"Orioles":      110,
	"Red Sox":      111,
	"Cubs":         112,
	"Reds":         113,
	"Guardians":    114,
	"Rockies":      115,
	"Tigers":       116,
	"Astros":       117,
	"Royals":       118,
	"Dodgers":      119,
	"Nationals":    120,
	"Mets":         121,
	"Athletics":    133,
	"Pirates":      134,
	"Padres":       135,
	"Mariners":     136,
	"Giants":       137,
	"Cardinals":    138,
	"Rays":         139,
	"Rangers":      140,
	"Blue Jays":    141,
	"Twins":        142,
	"Phillies":     143,
	"Braves":       144,
	"White Sox":    145,
	"Marlins":      146,
	"Yankees":      147,
	"Brewers":      158,
}

// mlbAliases maps common alternate spellings onto canonical franchise names.
var mlbAliases = map[string]string{
	"d-backs":              "Diamondbacks",
	"dbacks":               "Diamondbacks",
	"new york yankees":     "Yankees",
	"boston red sox":       "Red Sox",
	"los angeles dodgers":  "Dodgers",
	"san francisco giants": "Giants",
	"chicago cubs":         "Cubs",
	"chicago white sox":    "White Sox",
	"new york mets":        "Mets",
}

// MLBTeamID resolves a team name to its MLB Stats API ID. The lookup tries
// the exact franchise name first, then known aliases case-insensitively.
func MLBTeamID(name string) (int, bool) {
	if id, ok := mlbTeamIDs[name]; ok {
		return id, true
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := mlbAliases[lower]; ok {
		return mlbTeamIDs[canonical], true
	}
	for franchise, id := range mlbTeamIDs {
		if strings.EqualFold(franchise, lower) {
			return id, true
		}
	}
	return 0, false
}

// MLBTeamName returns the franchise name for a Stats API team ID.
func MLBTeamName(id int) (string, bool) {
	for name, teamID := range mlbTeamIDs {
		if teamID == id {
			return name, true
		}
	}
	return "", false
}
