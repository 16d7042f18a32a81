package postgres

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/internal/service/ranking"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// SubmitFirstAware атомарно сохраняет попытку и начисляет XP за первую попытку.
// Последовательность "проверить прошлые попытки - вставить - начислить XP"
// выполняется в одной транзакции под блокировкой строки пользователя:
// конкурентные сабмиты одной пары (пользователь, викторина) сериализуются
// и XP не может быть начислен дважды.
func (r *AttemptRepo) SubmitFirstAware(attempt *entity.Attempt, xpIfFirst int) (bool, error) {
	isFirst := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Блокируем строку пользователя: она сериализует конкурентные
		// сабмиты и в любом случае понадобится для начисления XP
		var user entity.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, attempt.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrNotFound
			}
			return err
		}

		var prior int64
		if err := tx.Model(&entity.Attempt{}).
			Where("user_id = ? AND quiz_id = ?", attempt.UserID, attempt.QuizID).
			Count(&prior).Error; err != nil {
			return err
		}
		isFirst = prior == 0

		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		if isFirst && xpIfFirst > 0 {
			levelDelta := ranking.LevelDelta(xpIfFirst)
			if err := tx.Model(&entity.User{}).
				Where("id = ?", attempt.UserID).
				Updates(map[string]interface{}{
					"xp":    gorm.Expr("xp + ?", xpIfFirst),
					"level": gorm.Expr("level + ?", levelDelta),
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Printf("[AttemptRepo] Ошибка при сохранении попытки user=%d quiz=%d: %v",
			attempt.UserID, attempt.QuizID, err)
		return false, err
	}

	return isFirst, nil
}

// GetByQuizWithUsers возвращает все попытки викторины с данными пользователей,
// отсортированные по started_at ASC (самые ранние первыми)
func (r *AttemptRepo) GetByQuizWithUsers(quizID uint) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.
		Preload("User").
		Where("quiz_id = ?", quizID).
		Order("started_at ASC, id ASC").
		Find(&attempts).Error
	return attempts, err
}

// GetByQuizIDsWithUsers возвращает попытки по набору викторин с данными
// пользователей, отсортированные по started_at ASC
func (r *AttemptRepo) GetByQuizIDsWithUsers(quizIDs []uint) ([]entity.Attempt, error) {
	if len(quizIDs) == 0 {
		return []entity.Attempt{}, nil
	}
	var attempts []entity.Attempt
	err := r.db.
		Preload("User").
		Where("quiz_id IN ?", quizIDs).
		Order("started_at ASC, id ASC").
		Find(&attempts).Error
	return attempts, err
}

// CountByUser возвращает количество попыток пользователя
func (r *AttemptRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Attempt{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// GetByUserWithQuiz возвращает попытки пользователя с викториной,
// категорией и вопросами
func (r *AttemptRepo) GetByUserWithQuiz(userID uint) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.
		Preload("Quiz").
		Preload("Quiz.Category").
		Preload("Quiz.Questions").
		Where("user_id = ?", userID).
		Order("started_at ASC, id ASC").
		Find(&attempts).Error
	return attempts, err
}
