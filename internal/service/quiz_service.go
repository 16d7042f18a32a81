package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/internal/service/ranking"
)

// Время жизни кеша квиза. Кешируется только публичное представление:
// правильные ответы не сериализуются (json:"-"), поэтому кеш
// непригоден для подсчета очков и используется только для выдачи клиенту.
const quizCacheTTL = 5 * time.Minute

// QuizService предоставляет методы для работы с категориями и квизами
type QuizService struct {
	quizRepo     repository.QuizRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	cacheRepo    repository.CacheRepository
}

// NewQuizService создает новый сервис квизов. cacheRepo может быть nil,
// в этом случае кеширование отключено.
func NewQuizService(
	quizRepo repository.QuizRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
) (*QuizService, error) {
	if quizRepo == nil {
		return nil, fmt.Errorf("QuizRepository is required for QuizService")
	}
	if categoryRepo == nil {
		return nil, fmt.Errorf("CategoryRepository is required for QuizService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for QuizService")
	}
	return &QuizService{
		quizRepo:     quizRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		cacheRepo:    cacheRepo,
	}, nil
}

// GetAllCategories возвращает все категории с их квизами
func (s *QuizService) GetAllCategories() ([]entity.Category, error) {
	return s.categoryRepo.List()
}

// GetCategoryByID возвращает категорию с ее квизами
func (s *QuizService) GetCategoryByID(categoryID uint) (*entity.Category, error) {
	return s.categoryRepo.GetWithQuizzes(categoryID)
}

func quizCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:%d:full", quizID)
}

// GetQuizByID возвращает квиз с вопросами (без правильных ответов в JSON).
// Результат кешируется в Redis.
func (s *QuizService) GetQuizByID(quizID uint) (*entity.Quiz, error) {
	if s.cacheRepo != nil {
		var cached entity.Quiz
		if err := s.cacheRepo.GetJSON(quizCacheKey(quizID), &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizService] Ошибка чтения кеша квиза ID=%d: %v", quizID, err)
		}
	}

	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(quizCacheKey(quizID), quiz, quizCacheTTL); err != nil {
			log.Printf("[QuizService] Ошибка записи кеша квиза ID=%d: %v", quizID, err)
		}
	}

	return quiz, nil
}

// CreateQuestionInput описывает один вопрос при создании квиза
type CreateQuestionInput struct {
	Text          string
	Options       []string
	CorrectOption int
	TimeLimitSec  int
	Order         int
}

// CreateQuizInput содержит данные для создания квиза
type CreateQuizInput struct {
	Title       string
	Description string
	CategoryID  uint
	Difficulty  string
	Questions   []CreateQuestionInput
}

// CreateQuiz создает квиз с вопросами и начисляет автору XP
func (s *QuizService) CreateQuiz(creatorID uint, input CreateQuizInput) (*entity.Quiz, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if !entity.IsValidDifficulty(input.Difficulty) {
		return nil, fmt.Errorf("%w: invalid difficulty '%s'", apperrors.ErrValidation, input.Difficulty)
	}
	if len(input.Questions) < entity.MinQuestionsPerQuiz || len(input.Questions) > entity.MaxQuestionsPerQuiz {
		return nil, fmt.Errorf("%w: quiz must have between %d and %d questions",
			apperrors.ErrValidation, entity.MinQuestionsPerQuiz, entity.MaxQuestionsPerQuiz)
	}

	// Проверяем, что категория и автор существуют
	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %d not found", apperrors.ErrNotFound, input.CategoryID)
		}
		return nil, err
	}
	if _, err := s.userRepo.GetByID(creatorID); err != nil {
		return nil, err
	}

	questions := make([]entity.Question, len(input.Questions))
	for i, q := range input.Questions {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: question %d: text is required", apperrors.ErrValidation, i+1)
		}
		if len(q.Options) != entity.OptionsPerQuestion {
			return nil, fmt.Errorf("%w: question %d: exactly %d options required",
				apperrors.ErrValidation, i+1, entity.OptionsPerQuestion)
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d: correct_option out of range", apperrors.ErrValidation, i+1)
		}
		timeLimit := q.TimeLimitSec
		if timeLimit <= 0 {
			timeLimit = entity.DefaultQuestionTimeLimitSec
		}
		order := q.Order
		if order <= 0 {
			order = i + 1
		}
		questions[i] = entity.Question{
			Text:          text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			TimeLimitSec:  timeLimit,
			OrderNum:      order,
		}
	}

	quiz := &entity.Quiz{
		Title:       input.Title,
		Description: strings.TrimSpace(input.Description),
		CategoryID:  input.CategoryID,
		CreatorID:   creatorID,
		Difficulty:  input.Difficulty,
		Questions:   questions,
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		log.Printf("[QuizService] Ошибка при создании квиза '%s': %v", input.Title, err)
		return nil, err
	}

	// Сбрасываем кеш на случай, если под этим ключом что-то уже лежало
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(quizCacheKey(quiz.ID)); err != nil {
			log.Printf("[QuizService] Ошибка при сбросе кеша квиза ID=%d: %v", quiz.ID, err)
		}
	}

	// Начисляем автору XP за создание квиза
	xp := ranking.XPPerQuizCreated
	if err := s.userRepo.AwardXP(creatorID, xp, ranking.LevelDelta(xp)); err != nil {
		// Квиз уже создан, поэтому ошибку начисления только логируем
		log.Printf("[QuizService] Ошибка при начислении XP автору ID=%d за квиз ID=%d: %v",
			creatorID, quiz.ID, err)
	}

	log.Printf("[QuizService] Квиз '%s' (ID=%d) создан пользователем ID=%d", quiz.Title, quiz.ID, creatorID)
	return quiz, nil
}
