// Package gamification holds the in-memory scoring ledger behind the trivia,
// prediction, and leaderboard actions. All mutation goes through one mutex;
// scores live only for the life of the process.
package gamification

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrQuestionNotFound reports an unknown trivia question ID.
var ErrQuestionNotFound = errors.New("question not found")

// PredictionPoints is the flat award for submitting any prediction.
const PredictionPoints = 5

// Question is one trivia question. CorrectAnswer indexes Options.
type Question struct {
	QuestionID    string   `json:"question_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Sport         string   `json:"sport"`
	Difficulty    string   `json:"difficulty"`
	Points        int      `json:"points"`
}

// UserStats is one user's running score.
type UserStats struct {
	TriviaPoints     int `json:"trivia_points"`
	PredictionPoints int `json:"prediction_points"`
	TotalPoints      int `json:"total_points"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank             int     `json:"rank"`
	UserID           string  `json:"user_id"`
	Username         string  `json:"username"`
	TotalPoints      int     `json:"total_points"`
	TriviaPoints     int     `json:"trivia_points"`
	PredictionPoints int     `json:"prediction_points"`
	GamesPlayed      int     `json:"games_played"`
	Accuracy         float64 `json:"accuracy"`
}

// AnswerResult is the outcome of a trivia answer submission.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	PointsAwarded int    `json:"points_awarded"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Prediction is one stored user prediction.
type Prediction struct {
	ID             string                 `json:"prediction_id"`
	UserID         string                 `json:"user_id"`
	PredictionType string                 `json:"prediction_type"`
	Data           map[string]interface{} `json:"prediction_data"`
	Timestamp      time.Time              `json:"timestamp"`
}

// PredictionResult is the outcome of storing a prediction.
type PredictionResult struct {
	PredictionID  string                 `json:"prediction_id"`
	PointsAwarded int                    `json:"points_awarded"`
	Data          map[string]interface{} `json:"prediction_data"`
}

type userRecord struct {
	stats       UserStats
	gamesPlayed int
	correct     int
}

// Ledger is the process-local scoring store.
type Ledger struct {
	mu          sync.Mutex
	questions   []Question
	predictions []Prediction
	seeded      []LeaderboardEntry
	users       map[string]*userRecord
	order       []string
	rng         *rand.Rand
}

// NewLedger seeds the question bank and the demo leaderboard rows.
func NewLedger() *Ledger {
	return &Ledger{
		questions: defaultQuestions(),
		seeded:    seededLeaderboard(),
		users:     make(map[string]*userRecord),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func defaultQuestions() []Question {
	return []Question{
		{
			QuestionID:    "q1",
			Question:      "Which team has won the most World Series championships?",
			Options:       []string{"Yankees", "Red Sox", "Dodgers", "Giants"},
			CorrectAnswer: 0,
			Sport:         "mlb",
			Difficulty:    "medium",
			Points:        10,
		},
		{
			QuestionID:    "q2",
			Question:      "Who holds the record for most home runs in a single season?",
			Options:       []string{"Barry Bonds", "Mark McGwire", "Sammy Sosa", "Babe Ruth"},
			CorrectAnswer: 0,
			Sport:         "mlb",
			Difficulty:    "hard",
			Points:        15,
		},
		{
			QuestionID:    "q3",
			Question:      "Which NBA team has the most championships?",
			Options:       []string{"Lakers", "Celtics", "Warriors", "Bulls"},
			CorrectAnswer: 1,
			Sport:         "nba",
			Difficulty:    "medium",
			Points:        10,
		},
		{
			QuestionID:    "q4",
			Question:      "Who is the all-time leading scorer in NBA history?",
			Options:       []string{"LeBron James", "Kareem Abdul-Jabbar", "Michael Jordan", "Kobe Bryant"},
			CorrectAnswer: 0,
			Sport:         "nba",
			Difficulty:    "hard",
			Points:        15,
		},
		{
			QuestionID:    "q5",
			Question:      "Which NFL team has won the most Super Bowls?",
			Options:       []string{"Patriots", "Steelers", "Cowboys", "Packers"},
			CorrectAnswer: 1,
			Sport:         "nfl",
			Difficulty:    "medium",
			Points:        10,
		},
	}
}

func seededLeaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{UserID: "user_demo_1", Username: "SportsFan_2024", TotalPoints: 150, TriviaPoints: 120, PredictionPoints: 30, GamesPlayed: 15, Accuracy: 0.85},
		{UserID: "user_demo_2", Username: "MLB_Expert", TotalPoints: 135, TriviaPoints: 100, PredictionPoints: 35, GamesPlayed: 12, Accuracy: 0.78},
		{UserID: "user_demo_3", Username: "NBA_Analyst", TotalPoints: 120, TriviaPoints: 90, PredictionPoints: 30, GamesPlayed: 10, Accuracy: 0.82},
		{UserID: "user_demo_4", Username: "Trivia_Master", TotalPoints: 110, TriviaPoints: 110, PredictionPoints: 0, GamesPlayed: 8, Accuracy: 0.90},
		{UserID: "user_demo_5", Username: "Prediction_Pro", TotalPoints: 95, TriviaPoints: 45, PredictionPoints: 50, GamesPlayed: 7, Accuracy: 0.75},
	}
}

// ensureUser must be called with the mutex held.
func (l *Ledger) ensureUser(userID string) *userRecord {
	if rec, ok := l.users[userID]; ok {
		return rec
	}
	rec := &userRecord{}
	l.users[userID] = rec
	l.order = append(l.order, userID)
	return rec
}

// Stats returns the user's current score, creating a zero record on first
// contact.
func (l *Ledger) Stats(userID string) UserStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ensureUser(userID).stats
}

// RandomQuestion returns a random trivia question.
func (l *Ledger) RandomQuestion(userID string) (Question, UserStats) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.ensureUser(userID)
	q := l.questions[l.rng.Intn(len(l.questions))]
	return q, rec.stats
}

// Question looks up a question by ID.
func (l *Ledger) Question(questionID string) (Question, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, q := range l.questions {
		if q.QuestionID == questionID {
			return q, true
		}
	}
	return Question{}, false
}

// SubmitAnswer scores a trivia answer. A wrong answer still counts as a game
// played but awards nothing.
func (l *Ledger) SubmitAnswer(userID, questionID string, answer int) (AnswerResult, UserStats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var question *Question
	for i := range l.questions {
		if l.questions[i].QuestionID == questionID {
			question = &l.questions[i]
			break
		}
	}
	if question == nil {
		return AnswerResult{}, UserStats{}, ErrQuestionNotFound
	}

	rec := l.ensureUser(userID)
	rec.gamesPlayed++

	correct := answer == question.CorrectAnswer
	awarded := 0
	if correct {
		awarded = question.Points
		rec.correct++
		rec.stats.TriviaPoints += awarded
		rec.stats.TotalPoints += awarded
	}

	return AnswerResult{
		Correct:       correct,
		PointsAwarded: awarded,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   "The correct answer is: " + question.Options[question.CorrectAnswer],
	}, rec.stats, nil
}

// MakePrediction stores a prediction and awards the flat bonus.
func (l *Ledger) MakePrediction(userID string, data map[string]interface{}) (PredictionResult, UserStats) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.ensureUser(userID)
	rec.gamesPlayed++

	predictionType := "game_outcome"
	if t, ok := data["type"].(string); ok && t != "" {
		predictionType = t
	}

	prediction := Prediction{
		ID:             uuid.New().String(),
		UserID:         userID,
		PredictionType: predictionType,
		Data:           data,
		Timestamp:      time.Now().UTC(),
	}
	l.predictions = append(l.predictions, prediction)

	rec.stats.PredictionPoints += PredictionPoints
	rec.stats.TotalPoints += PredictionPoints

	return PredictionResult{
		PredictionID:  prediction.ID,
		PointsAwarded: PredictionPoints,
		Data:          data,
	}, rec.stats
}

// Leaderboard recomputes rankings from scratch: seeded demo rows plus every
// live user, sorted by total points descending. Ties keep first-seen order,
// so a stable sort over the insertion order is enough.
func (l *Ledger) Leaderboard(userID string) ([]LeaderboardEntry, UserStats) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.ensureUser(userID)

	entries := make([]LeaderboardEntry, 0, len(l.seeded)+len(l.order))
	entries = append(entries, l.seeded...)
	for _, id := range l.order {
		u := l.users[id]
		accuracy := 0.0
		if u.gamesPlayed > 0 {
			accuracy = float64(u.correct) / float64(u.gamesPlayed)
		}
		entries = append(entries, LeaderboardEntry{
			UserID:           id,
			Username:         id,
			TotalPoints:      u.stats.TotalPoints,
			TriviaPoints:     u.stats.TriviaPoints,
			PredictionPoints: u.stats.PredictionPoints,
			GamesPlayed:      u.gamesPlayed,
			Accuracy:         accuracy,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, rec.stats
}
