package ranking

import (
	"time"
)

// Константы начисления XP
const (
	// XPPerCorrectAnswer - XP за каждый правильный ответ первой попытки
	XPPerCorrectAnswer = 10
	// XPPerQuizCreated - фиксированное начисление за создание викторины
	XPPerQuizCreated = 50
	// XPPerLevel - сколько XP нужно для повышения уровня при одном начислении
	XPPerLevel = 100
)

// QuizInfo содержит минимальные сведения о викторине для рейтинга
type QuizInfo struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Difficulty     string `json:"difficulty"`
	TotalQuestions int    `json:"total_questions"`
}

// CategoryInfo содержит минимальные сведения о категории для рейтинга
type CategoryInfo struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	TotalQuizzes int    `json:"total_quizzes"`
}

// AttemptRecord - попытка, объединенная с данными пользователя.
// Агрегаторы работают только с такими плоскими записями: они ничего
// не знают ни о GORM, ни о HTTP-слое.
type AttemptRecord struct {
	AttemptID      uint
	UserID         uint
	Username       string
	Level          int
	XP             int
	QuizID         uint
	TotalQuestions int // количество вопросов викторины этой попытки
	Score          int
	StartedAt      time.Time
	CompletedAt    time.Time
}

// RankEntry - одна строка рейтинга викторины
type RankEntry struct {
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	Level       int       `json:"level"`
	XP          int       `json:"xp"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"max_score"`
	Percentage  int       `json:"percentage"`
	CompletedAt time.Time `json:"completed_at"`
}

// QuizRanking - итоговый рейтинг одной викторины
type QuizRanking struct {
	Quiz              QuizInfo    `json:"quiz"`
	Ranking           []RankEntry `json:"ranking"`
	TotalParticipants int         `json:"total_participants"`
}

// QuizAttemptSummary - сводка первой попытки пользователя в одной викторине,
// входит в состав строки рейтинга категории
type QuizAttemptSummary struct {
	QuizID         uint      `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	CompletedAt    time.Time `json:"completed_at"`
}

// CategoryRankEntry - одна строка рейтинга категории
type CategoryRankEntry struct {
	UserID            uint                 `json:"user_id"`
	Username          string               `json:"username"`
	Level             int                  `json:"level"`
	XP                int                  `json:"xp"`
	TotalScore        int                  `json:"total_score"`
	TotalQuestions    int                  `json:"total_questions"`
	AveragePercentage int                  `json:"average_percentage"`
	QuizCount         int                  `json:"quiz_count"`
	QuizAttempts      []QuizAttemptSummary `json:"quiz_attempts"`
}

// CategoryRanking - итоговый рейтинг категории
type CategoryRanking struct {
	Category          CategoryInfo        `json:"category"`
	Ranking           []CategoryRankEntry `json:"ranking"`
	TotalParticipants int                 `json:"total_participants"`
}
