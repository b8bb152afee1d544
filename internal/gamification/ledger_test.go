package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAnswer_CorrectAwardsPoints(t *testing.T) {
	ledger := NewLedger()

	result, stats, err := ledger.SubmitAnswer("user_1", "q1", 0)
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, 10, result.PointsAwarded)
	assert.Equal(t, "The correct answer is: Yankees", result.Explanation)
	assert.Equal(t, 10, stats.TriviaPoints)
	assert.Equal(t, 10, stats.TotalPoints)
	assert.Equal(t, 0, stats.PredictionPoints)
}

func TestSubmitAnswer_WrongAnswerScoresNothing(t *testing.T) {
	ledger := NewLedger()

	result, stats, err := ledger.SubmitAnswer("user_1", "q3", 0)
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, 0, result.PointsAwarded)
	assert.Equal(t, 1, result.CorrectAnswer)
	assert.Equal(t, "The correct answer is: Celtics", result.Explanation)
	assert.Equal(t, 0, stats.TotalPoints)
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	ledger := NewLedger()

	_, _, err := ledger.SubmitAnswer("user_1", "q99", 0)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestSubmitAnswer_PointsAccumulate(t *testing.T) {
	ledger := NewLedger()

	_, _, err := ledger.SubmitAnswer("user_1", "q1", 0)
	require.NoError(t, err)
	_, stats, err := ledger.SubmitAnswer("user_1", "q2", 0)
	require.NoError(t, err)

	assert.Equal(t, 25, stats.TriviaPoints)
	assert.Equal(t, 25, stats.TotalPoints)
}

func TestMakePrediction_FlatBonus(t *testing.T) {
	ledger := NewLedger()

	result, stats := ledger.MakePrediction("user_1", map[string]interface{}{
		"type":   "game_winner",
		"winner": "Yankees",
	})

	assert.NotEmpty(t, result.PredictionID)
	assert.Equal(t, PredictionPoints, result.PointsAwarded)
	assert.Equal(t, PredictionPoints, stats.PredictionPoints)
	assert.Equal(t, PredictionPoints, stats.TotalPoints)

	second, _ := ledger.MakePrediction("user_1", map[string]interface{}{"winner": "Red Sox"})
	assert.NotEqual(t, result.PredictionID, second.PredictionID)
}

func TestRandomQuestion_DrawsFromBank(t *testing.T) {
	ledger := NewLedger()

	for i := 0; i < 20; i++ {
		q, _ := ledger.RandomQuestion("user_1")
		assert.NotEmpty(t, q.QuestionID)
		assert.Len(t, q.Options, 4)
		assert.Greater(t, q.Points, 0)
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
		assert.Less(t, q.CorrectAnswer, len(q.Options))
	}
}

func TestLeaderboard_SeededAndSorted(t *testing.T) {
	ledger := NewLedger()

	entries, _ := ledger.Leaderboard("user_1")

	// 5 demo rows plus the requesting user's zero record.
	require.Len(t, entries, 6)
	assert.Equal(t, "SportsFan_2024", entries[0].Username)
	assert.Equal(t, 150, entries[0].TotalPoints)
	assert.Equal(t, "Prediction_Pro", entries[4].Username)
	assert.Equal(t, "user_1", entries[5].UserID)

	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, entries[i-1].TotalPoints, entry.TotalPoints)
		}
	}
}

func TestLeaderboard_LiveUserClimbs(t *testing.T) {
	ledger := NewLedger()

	// 8 correct hard answers plus one prediction lands at 125 points,
	// between MLB_Expert (135) and NBA_Analyst (120).
	for i := 0; i < 8; i++ {
		_, _, err := ledger.SubmitAnswer("grinder", "q2", 0)
		require.NoError(t, err)
	}
	ledger.MakePrediction("grinder", map[string]interface{}{"winner": "Dodgers"})

	entries, stats := ledger.Leaderboard("grinder")
	assert.Equal(t, 125, stats.TotalPoints)

	var rank int
	for _, entry := range entries {
		if entry.UserID == "grinder" {
			rank = entry.Rank
			assert.Equal(t, 120, entry.TriviaPoints)
			assert.Equal(t, 5, entry.PredictionPoints)
			assert.InDelta(t, 8.0/9.0, entry.Accuracy, 1e-9)
		}
	}
	// 150 and 135 outrank 125; 120 and below do not.
	assert.Equal(t, 3, rank)
}

func TestLeaderboard_TiesKeepFirstSeenOrder(t *testing.T) {
	ledger := NewLedger()

	ledger.MakePrediction("first", map[string]interface{}{})
	ledger.MakePrediction("second", map[string]interface{}{})

	entries, _ := ledger.Leaderboard("first")

	var firstRank, secondRank int
	for _, entry := range entries {
		switch entry.UserID {
		case "first":
			firstRank = entry.Rank
		case "second":
			secondRank = entry.Rank
		}
	}
	assert.Less(t, firstRank, secondRank)
}
