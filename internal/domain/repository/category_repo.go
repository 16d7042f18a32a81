package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	// List возвращает все категории вместе с их викторинами и вопросами
	List() ([]entity.Category, error)
	GetByID(id uint) (*entity.Category, error)
	// GetWithQuizzes возвращает категорию с викторинами и их вопросами.
	// Нужно для рейтинга категории: по вопросам считается totalQuestions.
	GetWithQuizzes(id uint) (*entity.Category, error)
}
