package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает викторину вместе с вопросами в одной транзакции.
// GORM сохраняет ассоциацию Questions вместе с родительской записью.
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
}

// GetByID возвращает викторину по ID без вопросов
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину с вопросами, отсортированными по order_num
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_num ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// ListByCategory возвращает викторины категории с вопросами
func (r *QuizRepo) ListByCategory(categoryID uint) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.
		Preload("Questions").
		Where("category_id = ?", categoryID).
		Order("id").
		Find(&quizzes).Error
	return quizzes, err
}
