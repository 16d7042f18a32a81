package service

import (
	"fmt"
	"log"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	"github.com/yourusername/quizmaster-api/internal/service/ranking"
)

// RankingService строит рейтинги по квизам и категориям.
// Рейтинги всегда пересчитываются из попыток на момент запроса
// и никогда не кешируются.
type RankingService struct {
	quizRepo     repository.QuizRepository
	categoryRepo repository.CategoryRepository
	attemptRepo  repository.AttemptRepository
}

// NewRankingService создает новый сервис рейтингов
func NewRankingService(
	quizRepo repository.QuizRepository,
	categoryRepo repository.CategoryRepository,
	attemptRepo repository.AttemptRepository,
) (*RankingService, error) {
	if quizRepo == nil {
		return nil, fmt.Errorf("QuizRepository is required for RankingService")
	}
	if categoryRepo == nil {
		return nil, fmt.Errorf("CategoryRepository is required for RankingService")
	}
	if attemptRepo == nil {
		return nil, fmt.Errorf("AttemptRepository is required for RankingService")
	}
	return &RankingService{
		quizRepo:     quizRepo,
		categoryRepo: categoryRepo,
		attemptRepo:  attemptRepo,
	}, nil
}

// attemptRecord конвертирует сущность попытки в запись для подсчета рейтинга.
// Возвращает false, если попытка не загружена вместе с пользователем.
func attemptRecord(attempt *entity.Attempt, totalQuestions int) (ranking.AttemptRecord, bool) {
	if attempt.User == nil {
		return ranking.AttemptRecord{}, false
	}
	return ranking.AttemptRecord{
		AttemptID:      attempt.ID,
		UserID:         attempt.UserID,
		Username:       attempt.User.Username,
		Level:          attempt.User.Level,
		XP:             attempt.User.XP,
		QuizID:         attempt.QuizID,
		TotalQuestions: totalQuestions,
		Score:          attempt.Score,
		StartedAt:      attempt.StartedAt,
		CompletedAt:    attempt.EndedAt,
	}, true
}

// GetQuizRanking возвращает рейтинг по квизу: по одной записи на
// пользователя, по его первой попытке
func (s *RankingService) GetQuizRanking(quizID uint) (*ranking.QuizRanking, error) {
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.GetByQuizWithUsers(quizID)
	if err != nil {
		log.Printf("[RankingService] Ошибка при получении попыток квиза ID=%d: %v", quizID, err)
		return nil, err
	}

	records := make([]ranking.AttemptRecord, 0, len(attempts))
	for i := range attempts {
		record, ok := attemptRecord(&attempts[i], quiz.QuestionCount())
		if !ok {
			log.Printf("[RankingService] Попытка ID=%d без пользователя пропущена", attempts[i].ID)
			continue
		}
		records = append(records, record)
	}

	return ranking.RankQuiz(ranking.QuizInfo{
		ID:             quiz.ID,
		Title:          quiz.Title,
		Difficulty:     quiz.Difficulty,
		TotalQuestions: quiz.QuestionCount(),
	}, records), nil
}

// GetCategoryRanking возвращает рейтинг по категории, агрегированный
// по первым попыткам каждого пользователя в каждом квизе категории
func (s *RankingService) GetCategoryRanking(categoryID uint) (*ranking.CategoryRanking, error) {
	category, err := s.categoryRepo.GetWithQuizzes(categoryID)
	if err != nil {
		return nil, err
	}

	info := ranking.CategoryInfo{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		Color:        category.Color,
		TotalQuizzes: len(category.Quizzes),
	}

	// Категория без квизов дает пустой рейтинг без обращения к попыткам
	if len(category.Quizzes) == 0 {
		return ranking.RankCategory(info, nil), nil
	}

	quizIDs := make([]uint, len(category.Quizzes))
	questionCounts := make(map[uint]int, len(category.Quizzes))
	for i := range category.Quizzes {
		quiz := &category.Quizzes[i]
		quizIDs[i] = quiz.ID
		questionCounts[quiz.ID] = quiz.QuestionCount()
	}

	attempts, err := s.attemptRepo.GetByQuizIDsWithUsers(quizIDs)
	if err != nil {
		log.Printf("[RankingService] Ошибка при получении попыток категории ID=%d: %v", categoryID, err)
		return nil, err
	}

	records := make([]ranking.AttemptRecord, 0, len(attempts))
	for i := range attempts {
		record, ok := attemptRecord(&attempts[i], questionCounts[attempts[i].QuizID])
		if !ok {
			log.Printf("[RankingService] Попытка ID=%d без пользователя пропущена", attempts[i].ID)
			continue
		}
		records = append(records, record)
	}

	return ranking.RankCategory(info, records), nil
}
