package entity

import (
	"time"
)

// Константы сложности викторины
const (
	QuizDifficultyEasy   = "EASY"
	QuizDifficultyMedium = "MEDIUM"
	QuizDifficultyHard   = "HARD"
)

// Ограничения на количество вопросов в викторине
const (
	MinQuestionsPerQuiz = 1
	MaxQuestionsPerQuiz = 20
)

// Quiz представляет викторину
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"size:500;not null;default:''" json:"description"`
	CategoryID  uint       `gorm:"not null;index" json:"category_id"`
	CreatorID   uint       `gorm:"not null;index" json:"creator_id"`
	Difficulty  string     `gorm:"size:10;not null;default:'EASY'" json:"difficulty"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// IsValidDifficulty проверяет, что строка является допустимой сложностью
func IsValidDifficulty(difficulty string) bool {
	switch difficulty {
	case QuizDifficultyEasy, QuizDifficultyMedium, QuizDifficultyHard:
		return true
	}
	return false
}

// QuestionCount возвращает количество загруженных вопросов
func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}

// AnswerKey строит отображение questionID -> индекс правильного варианта.
// Используется скорером для подсчета очков за попытку.
func (q *Quiz) AnswerKey() map[uint]int {
	key := make(map[uint]int, len(q.Questions))
	for _, question := range q.Questions {
		key[question.ID] = question.CorrectOption
	}
	return key
}
