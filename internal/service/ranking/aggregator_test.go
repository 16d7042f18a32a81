package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func quizAttempt(attemptID, userID uint, username string, score int, startOffset, endOffset time.Duration) AttemptRecord {
	return AttemptRecord{
		AttemptID:      attemptID,
		UserID:         userID,
		Username:       username,
		QuizID:         1,
		TotalQuestions: 10,
		Score:          score,
		StartedAt:      baseTime.Add(startOffset),
		CompletedAt:    baseTime.Add(endOffset),
	}
}

func TestRankQuiz_OnlyFirstAttemptCounts(t *testing.T) {
	// Arrange: вторая попытка пользователя набрала больше очков,
	// но в рейтинг должна попасть первая
	quiz := QuizInfo{ID: 1, Title: "История", TotalQuestions: 10}
	attempts := []AttemptRecord{
		quizAttempt(1, 100, "alice", 4, 0, 5*time.Minute),
		quizAttempt(2, 100, "alice", 9, time.Hour, time.Hour+5*time.Minute),
	}

	// Act
	result := RankQuiz(quiz, attempts)

	// Assert
	require.Len(t, result.Ranking, 1, "Пользователь должен занимать ровно одну строку рейтинга")
	assert.Equal(t, 4, result.Ranking[0].Score, "В рейтинге должна быть первая попытка, а не лучшая")
	assert.Equal(t, 1, result.TotalParticipants)
}

func TestRankQuiz_SortByScoreThenCompletedAt(t *testing.T) {
	// Arrange
	quiz := QuizInfo{ID: 1, Title: "География", TotalQuestions: 10}
	attempts := []AttemptRecord{
		quizAttempt(1, 100, "alice", 7, 0, 10*time.Minute),
		quizAttempt(2, 200, "bob", 9, time.Minute, 12*time.Minute),
		quizAttempt(3, 300, "carol", 7, 2*time.Minute, 8*time.Minute),
	}

	// Act
	result := RankQuiz(quiz, attempts)

	// Assert: bob первый по очкам; carol выше alice, т.к. завершила раньше
	require.Len(t, result.Ranking, 3)
	assert.Equal(t, "bob", result.Ranking[0].Username)
	assert.Equal(t, "carol", result.Ranking[1].Username, "При равных очках выше тот, кто завершил раньше")
	assert.Equal(t, "alice", result.Ranking[2].Username)
}

func TestRankQuiz_OrderIndependent(t *testing.T) {
	// Arrange: один и тот же набор попыток в разном порядке
	quiz := QuizInfo{ID: 1, TotalQuestions: 10}
	attempts := []AttemptRecord{
		quizAttempt(1, 100, "alice", 4, 0, 5*time.Minute),
		quizAttempt(2, 100, "alice", 9, time.Hour, time.Hour+time.Minute),
		quizAttempt(3, 200, "bob", 6, 30*time.Minute, 40*time.Minute),
	}
	reversed := []AttemptRecord{attempts[2], attempts[1], attempts[0]}

	// Act
	first := RankQuiz(quiz, attempts)
	second := RankQuiz(quiz, reversed)

	// Assert
	assert.Equal(t, first, second, "Результат не должен зависеть от порядка входных попыток")
}

func TestRankQuiz_PercentageAndMaxScore(t *testing.T) {
	quiz := QuizInfo{ID: 1, TotalQuestions: 3}
	attempts := []AttemptRecord{
		{AttemptID: 1, UserID: 100, Username: "alice", QuizID: 1, TotalQuestions: 3, Score: 2,
			StartedAt: baseTime, CompletedAt: baseTime.Add(time.Minute)},
	}

	result := RankQuiz(quiz, attempts)

	require.Len(t, result.Ranking, 1)
	assert.Equal(t, 3, result.Ranking[0].MaxScore)
	assert.Equal(t, 67, result.Ranking[0].Percentage, "2 из 3 должно округлиться до 67%")
}

func TestRankQuiz_NoAttempts(t *testing.T) {
	result := RankQuiz(QuizInfo{ID: 1, TotalQuestions: 5}, nil)

	assert.Empty(t, result.Ranking, "Викторина без попыток должна дать пустой рейтинг")
	assert.Equal(t, 0, result.TotalParticipants)
}

func categoryAttempt(attemptID, userID, quizID uint, username string, score, total int, startOffset time.Duration) AttemptRecord {
	return AttemptRecord{
		AttemptID:      attemptID,
		UserID:         userID,
		Username:       username,
		QuizID:         quizID,
		TotalQuestions: total,
		Score:          score,
		StartedAt:      baseTime.Add(startOffset),
		CompletedAt:    baseTime.Add(startOffset + 5*time.Minute),
	}
}

func TestRankCategory_FirstAttemptPerQuiz(t *testing.T) {
	// Arrange: у пользователя по две попытки в каждой из двух викторин;
	// учитываться должна первая попытка в каждой
	category := CategoryInfo{ID: 1, Name: "Наука", TotalQuizzes: 2}
	attempts := []AttemptRecord{
		categoryAttempt(1, 100, 1, "alice", 5, 10, 0),
		categoryAttempt(2, 100, 1, "alice", 10, 10, time.Hour),   // повтор quiz 1
		categoryAttempt(3, 100, 2, "alice", 8, 10, 2*time.Hour),  // первая в quiz 2
		categoryAttempt(4, 100, 2, "alice", 10, 10, 3*time.Hour), // повтор quiz 2
	}

	// Act
	result := RankCategory(category, attempts)

	// Assert
	require.Len(t, result.Ranking, 1)
	entry := result.Ranking[0]
	assert.Equal(t, 2, entry.QuizCount, "Должны учитываться обе викторины")
	assert.Equal(t, 13, entry.TotalScore, "Сумма очков первых попыток: 5 + 8")
	assert.Equal(t, 20, entry.TotalQuestions)
	assert.Equal(t, 65, entry.AveragePercentage, "13 из 20 — это 65%")
	require.Len(t, entry.QuizAttempts, 2)
}

func TestRankCategory_SortOrder(t *testing.T) {
	// Arrange: alice 80% по одной викторине, bob 80% по двум,
	// carol 90% по одной
	category := CategoryInfo{ID: 1, Name: "Наука", TotalQuizzes: 2}
	attempts := []AttemptRecord{
		categoryAttempt(1, 100, 1, "alice", 8, 10, 0),
		categoryAttempt(2, 200, 1, "bob", 8, 10, time.Minute),
		categoryAttempt(3, 200, 2, "bob", 8, 10, 2*time.Minute),
		categoryAttempt(4, 300, 2, "carol", 9, 10, 3*time.Minute),
	}

	// Act
	result := RankCategory(category, attempts)

	// Assert: carol выше всех по проценту; bob выше alice по количеству викторин
	require.Len(t, result.Ranking, 3)
	assert.Equal(t, "carol", result.Ranking[0].Username)
	assert.Equal(t, "bob", result.Ranking[1].Username, "При равном проценте выше тот, кто прошел больше викторин")
	assert.Equal(t, "alice", result.Ranking[2].Username)
}

func TestRankCategory_EmptyCategory(t *testing.T) {
	// Категория без викторин — пустой рейтинг, не ошибка
	result := RankCategory(CategoryInfo{ID: 1, Name: "Пустая", TotalQuizzes: 0}, nil)

	assert.NotNil(t, result.Ranking, "Рейтинг должен быть пустым срезом, а не nil")
	assert.Empty(t, result.Ranking)
	assert.Equal(t, 0, result.TotalParticipants)
}

func TestRankCategory_ZeroQuestionQuiz(t *testing.T) {
	// Викторина без вопросов не должна ронять расчет процента
	category := CategoryInfo{ID: 1, TotalQuizzes: 1}
	attempts := []AttemptRecord{
		categoryAttempt(1, 100, 1, "alice", 0, 0, 0),
	}

	result := RankCategory(category, attempts)

	require.Len(t, result.Ranking, 1)
	assert.Equal(t, 0, result.Ranking[0].AveragePercentage, "Ноль вопросов должен давать 0%, а не панику")
}

func TestRankCategory_OrderIndependent(t *testing.T) {
	category := CategoryInfo{ID: 1, TotalQuizzes: 2}
	attempts := []AttemptRecord{
		categoryAttempt(1, 100, 1, "alice", 5, 10, 0),
		categoryAttempt(2, 100, 1, "alice", 9, 10, time.Hour),
		categoryAttempt(3, 200, 2, "bob", 7, 10, 30*time.Minute),
	}
	shuffled := []AttemptRecord{attempts[1], attempts[2], attempts[0]}

	first := RankCategory(category, attempts)
	second := RankCategory(category, shuffled)

	assert.Equal(t, first, second, "Результат не должен зависеть от порядка входных попыток")
}

func TestSortAttempts_TieBrokenByAttemptID(t *testing.T) {
	// Две попытки с одинаковым StartedAt должны упорядочиваться по ID
	a := AttemptRecord{AttemptID: 2, StartedAt: baseTime}
	b := AttemptRecord{AttemptID: 1, StartedAt: baseTime}

	sorted := sortAttempts([]AttemptRecord{a, b})

	require.Len(t, sorted, 2)
	assert.Equal(t, uint(1), sorted[0].AttemptID)
	assert.Equal(t, uint(2), sorted[1].AttemptID)
}
