package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	// Create создает викторину вместе с вопросами в одной транзакции
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetWithQuestions возвращает викторину с вопросами, отсортированными по order_num
	GetWithQuestions(id uint) (*entity.Quiz, error)
	ListByCategory(categoryID uint) ([]entity.Quiz, error)
}
