package dto

import (
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// CategoryResponse представляет категорию в API-ответах
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	QuizCount   int    `json:"quiz_count"`
}

// QuizSummaryResponse представляет краткую информацию о квизе (без вопросов)
type QuizSummaryResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CategoryID    uint      `json:"category_id"`
	CreatorID     uint      `json:"creator_id"`
	Difficulty    string    `json:"difficulty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewQuizSummaryResponse конвертирует сущность квиза в краткий ответ
func NewQuizSummaryResponse(quiz *entity.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		CategoryID:    quiz.CategoryID,
		CreatorID:     quiz.CreatorID,
		Difficulty:    quiz.Difficulty,
		QuestionCount: quiz.QuestionCount(),
		CreatedAt:     quiz.CreatedAt,
	}
}

// CreateQuestionRequest описывает один вопрос при создании квиза
type CreateQuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectOption int      `json:"correct_option"`
	TimeLimitSec  int      `json:"time_limit_sec"`
	Order         int      `json:"order"`
}

// CreateQuizRequest описывает запрос на создание квиза
type CreateQuizRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	CategoryID  uint                    `json:"category_id" binding:"required"`
	Difficulty  string                  `json:"difficulty" binding:"required"`
	Questions   []CreateQuestionRequest `json:"questions" binding:"required"`
}

// SubmittedAnswerRequest описывает один ответ в рамках попытки
type SubmittedAnswerRequest struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedOption int  `json:"selected_option"`
}

// SubmitAttemptRequest описывает запрос на отправку попытки прохождения квиза.
// Временные метки попытки клиент не задает, они выставляются на сервере.
type SubmitAttemptRequest struct {
	Answers []SubmittedAnswerRequest `json:"answers"`
}

// AttemptResultResponse представляет итог обработанной попытки
type AttemptResultResponse struct {
	AttemptID      uint      `json:"attempt_id"`
	QuizID         uint      `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	XPGained       int       `json:"xp_gained"`
	IsFirstAttempt bool      `json:"is_first_attempt"`
	CompletedAt    time.Time `json:"completed_at"`
}
