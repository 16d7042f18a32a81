package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/internal/service/ranking"
)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
	}
}

// GetByID возвращает пользователя по его ID
func (s *UserService) GetByID(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfileInput содержит изменяемые поля профиля
type UpdateProfileInput struct {
	Username string
	Email    string
}

// UpdateProfile обновляет username и/или email пользователя
// с повторной проверкой уникальности
func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if username := strings.TrimSpace(input.Username); username != "" && username != user.Username {
		existing, err := s.userRepo.GetByUsername(username)
		if err == nil && existing.ID != userID {
			return nil, fmt.Errorf("%w: username already exists", apperrors.ErrConflict)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		updates["username"] = username
	}

	if email := normalizeEmail(input.Email); email != "" && email != user.Email {
		existing, err := s.userRepo.GetByEmail(email)
		if err == nil && existing.ID != userID {
			return nil, fmt.Errorf("%w: email already exists", apperrors.ErrConflict)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		updates["email"] = email
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.userRepo.UpdateProfile(userID, updates); err != nil {
		log.Printf("[UserService] Ошибка при обновлении профиля пользователя ID=%d: %v", userID, err)
		return nil, err
	}

	return s.userRepo.GetByID(userID)
}

// GetAttemptCount возвращает общее количество попыток пользователя
func (s *UserService) GetAttemptCount(userID uint) (int64, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return 0, err
	}
	return s.attemptRepo.CountByUser(userID)
}

// GetMainCategory определяет категорию, в которой пользователь
// проходил квизы чаще всего, и его средний процент в ней.
// Учитываются все попытки, включая повторные.
func (s *UserService) GetMainCategory(userID uint) (*dto.MainCategoryDTO, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.GetByUserWithQuiz(userID)
	if err != nil {
		log.Printf("[UserService] Ошибка при получении попыток пользователя ID=%d: %v", userID, err)
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, fmt.Errorf("%w: user has no attempts", apperrors.ErrNotFound)
	}

	type categoryStat struct {
		category       *entity.Category
		attemptCount   int
		totalScore     int
		totalQuestions int
	}

	stats := make(map[uint]*categoryStat)
	for _, attempt := range attempts {
		if attempt.Quiz == nil || attempt.Quiz.Category == nil {
			continue
		}
		cat := attempt.Quiz.Category
		st, ok := stats[cat.ID]
		if !ok {
			st = &categoryStat{category: cat}
			stats[cat.ID] = st
		}
		st.attemptCount++
		st.totalScore += attempt.Score
		st.totalQuestions += attempt.Quiz.QuestionCount()
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%w: user has no attempts", apperrors.ErrNotFound)
	}

	// Выбираем категорию с наибольшим числом попыток,
	// при равенстве — с меньшим ID для детерминизма
	var best *categoryStat
	for _, st := range stats {
		if best == nil || st.attemptCount > best.attemptCount ||
			(st.attemptCount == best.attemptCount && st.category.ID < best.category.ID) {
			best = st
		}
	}

	return &dto.MainCategoryDTO{
		CategoryID:        best.category.ID,
		Name:              best.category.Name,
		Color:             best.category.Color,
		Icon:              best.category.Icon,
		AttemptCount:      best.attemptCount,
		AveragePercentage: ranking.Percentage(best.totalScore, best.totalQuestions),
	}, nil
}

// GetLeaderboard возвращает пагинированный список пользователей по убыванию XP.
func (s *UserService) GetLeaderboard(page, pageSize int) (*dto.PaginatedLeaderboardResponse, error) {
	// Валидация параметров пагинации
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize

	users, total, err := s.userRepo.GetLeaderboard(pageSize, offset)
	if err != nil {
		log.Printf("[UserService] Ошибка при получении лидерборда из репозитория: %v", err)
		return nil, err
	}

	userDTOs := make([]*dto.LeaderboardUserDTO, len(users))
	for i, user := range users {
		userDTOs[i] = &dto.LeaderboardUserDTO{
			Rank:     offset + i + 1, // Ранг на основе смещения и индекса
			UserID:   user.ID,
			Username: user.Username,
			Level:    user.Level,
			XP:       user.XP,
		}
	}

	return &dto.PaginatedLeaderboardResponse{
		Users:   userDTOs,
		Total:   total,
		Page:    page,
		PerPage: pageSize,
	}, nil
}
