package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List возвращает все категории с викторинами и их вопросами
func (r *CategoryRepo) List() ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.
		Preload("Quizzes").
		Preload("Quizzes.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_num ASC")
		}).
		Order("id").
		Find(&categories).Error
	return categories, err
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(id uint) (*entity.Category, error) {
	var category entity.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetWithQuizzes возвращает категорию с викторинами и их вопросами
func (r *CategoryRepo) GetWithQuizzes(id uint) (*entity.Category, error) {
	var category entity.Category
	err := r.db.
		Preload("Quizzes").
		Preload("Quizzes.Questions").
		First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}
